package ignore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLoadIgnoreFilesWithoutFiles(t *testing.T) {
	root := t.TempDir()

	gi, err := LoadIgnoreFiles(root, true, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 0, gi.Len())
	assert.False(t, gi.MatchesPath(filepath.Join(root, "a.js"), false))
}

func TestLoadIgnoreFilesLocal(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, LocalIgnoreFile), []byte("# generated code\ngenerated/\nbundle.js\n"), 0644))

	gi, err := LoadIgnoreFiles(root, false, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, gi.Len())

	assert.True(t, gi.MatchesPath(filepath.Join(root, "generated"), true))
	assert.True(t, gi.MatchesPath(filepath.Join(root, "bundle.js"), false))
	assert.False(t, gi.MatchesPath(filepath.Join(root, "main.js"), false))
}

func TestLoadIgnoreFilesGitIgnoreIsOptIn(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, GitIgnoreFile), []byte("secret.js\n"), 0644))
	secret := filepath.Join(root, "secret.js")

	without, err := LoadIgnoreFiles(root, false, zap.NewNop())
	require.NoError(t, err)
	assert.False(t, without.MatchesPath(secret, false))

	with, err := LoadIgnoreFiles(root, true, zap.NewNop())
	require.NoError(t, err)
	assert.True(t, with.MatchesPath(secret, false))
}

func TestIgnoreLinesNegation(t *testing.T) {
	root := t.TempDir()
	gi := NewGitIgnore(nil)
	gi.compileIgnoreLines(root, "*.min.js", "!keep.min.js")

	assert.True(t, gi.MatchesPath(filepath.Join(root, "app.min.js"), false))
	assert.False(t, gi.MatchesPath(filepath.Join(root, "keep.min.js"), false))
}

func TestNilGitIgnoreMatchesNothing(t *testing.T) {
	var gi *GitIgnore
	assert.False(t, gi.MatchesPath("/any/path", false))
	assert.Equal(t, 0, gi.Len())
}
