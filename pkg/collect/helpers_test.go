package collect

import (
	"os"
	"path/filepath"
	"slices"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

// writeTree creates files under root. Keys are slash-separated relative paths.
func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
}

// relPaths drains the walker and returns the sorted relative paths.
func relPaths(w *Walker) []string {
	var paths []string
	for c := range w.Candidates() {
		paths = append(paths, c.RelPath)
	}
	sort.Strings(paths)
	return paths
}

// tempLeftovers lists files in dir created by the pipeline's temp handling.
func tempLeftovers(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		if matched, _ := filepath.Match(".collect-code-*", e.Name()); matched {
			names = append(names, e.Name())
		}
	}
	return slices.Clip(names)
}
