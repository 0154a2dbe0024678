package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	assert.Equal(t, []string{".js", ".jsx", ".ts", ".tsx", ".html", ".css", ".scss", ".json"}, cfg.Extensions)
	assert.Equal(t, []string{"node_modules", ".git", "dist", "build", ".next", ".nuxt", "coverage", ".vscode", ".idea"}, cfg.ExcludeDirs)
	assert.Equal(t, []string{"package-lock.json", "yarn.lock", ".DS_Store"}, cfg.ExcludeFiles)
	assert.Equal(t, int64(10*1024*1024), cfg.MaxFileSize)
	assert.InDelta(t, 10.0, cfg.MaxFileSizeMB(), 0.0001)
}

func TestNormalizeExtension(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "js", want: ".js"},
		{in: ".js", want: ".js"},
		{in: ".TSX", want: ".tsx"},
		{in: "*.go", want: ".go"},
		{in: "  ..cfg ", want: ".cfg"},
		{in: "", want: ""},
		{in: "   ", want: ""},
		{in: ".", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeExtension(tt.in))
		})
	}
}

func TestNormalizeExtensions(t *testing.T) {
	got := NormalizeExtensions([]string{"js, .TS", "", "*.js", "css"})
	assert.Equal(t, []string{".js", ".ts", ".css"}, got)

	empty := NormalizeExtensions(nil)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestNormalizeNames(t *testing.T) {
	got := NormalizeNames([]string{" vendor , tmp", "vendor", "", "Build"})
	assert.Equal(t, []string{"vendor", "tmp", "Build"}, got)
}

func TestMergeOverridesOnlySetFields(t *testing.T) {
	base := Defaults()
	size := int64(2048)

	merged := base.Merge(Layer{
		Extensions:  []string{".go"},
		MaxFileSize: &size,
	})

	assert.Equal(t, []string{".go"}, merged.Extensions)
	assert.Equal(t, base.ExcludeDirs, merged.ExcludeDirs)
	assert.Equal(t, base.ExcludeFiles, merged.ExcludeFiles)
	assert.Equal(t, int64(2048), merged.MaxFileSize)
}

func TestMergeDoesNotMutateReceiver(t *testing.T) {
	base := Defaults()
	layer := Layer{ExcludeDirs: []string{"vendor"}}

	merged := base.Merge(layer)
	merged.Extensions[0] = ".mutated"
	layer.ExcludeDirs[0] = "changed"

	assert.Equal(t, ".js", base.Extensions[0])
	assert.Equal(t, "vendor", merged.ExcludeDirs[0])
}

func TestMergeEmptyListIsExplicit(t *testing.T) {
	merged := Defaults().Merge(Layer{ExcludeFiles: []string{}})
	assert.NotNil(t, merged.ExcludeFiles)
	assert.Empty(t, merged.ExcludeFiles)
}

func TestMegabytesToBytes(t *testing.T) {
	assert.Equal(t, int64(1048576), MegabytesToBytes(1))
	assert.Equal(t, int64(1048), MegabytesToBytes(0.001))
	assert.Equal(t, int64(0), MegabytesToBytes(0))
	assert.Equal(t, int64(math.MaxInt64), MegabytesToBytes(1e300))
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "collect.json", `{
		"extensions": ["go", ".MD"],
		"excludeDirs": ["vendor"],
		"maxFileSize": 4096
	}`)

	layer, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, []string{".go", ".md"}, layer.Extensions)
	assert.Equal(t, []string{"vendor"}, layer.ExcludeDirs)
	assert.Nil(t, layer.ExcludeFiles, "keys absent from the file must stay unset")
	require.NotNil(t, layer.MaxFileSize)
	assert.Equal(t, int64(4096), *layer.MaxFileSize)
}

func TestLoadFileWithoutExtensionIsJSON(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, ".collectrc", `{"excludeFiles": ["go.sum"]}`)

	layer, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"go.sum"}, layer.ExcludeFiles)
}

func TestLoadFileYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "collect.yaml", "extensions:\n  - py\n  - .pyi\n")

	layer, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{".py", ".pyi"}, layer.Extensions)
}

func TestLoadFileErrors(t *testing.T) {
	dir := t.TempDir()

	t.Run("malformed json", func(t *testing.T) {
		path := writeFile(t, dir, "bad.json", `{"extensions": [".js",`)
		_, err := LoadFile(path)
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadFile(filepath.Join(dir, "missing.json"))
		assert.Error(t, err)
	})

	t.Run("non numeric max size", func(t *testing.T) {
		path := writeFile(t, dir, "size.json", `{"maxFileSize": "big"}`)
		_, err := LoadFile(path)
		assert.Error(t, err)
	})

	t.Run("negative max size", func(t *testing.T) {
		path := writeFile(t, dir, "negative.json", `{"maxFileSize": -5}`)
		_, err := LoadFile(path)
		assert.Error(t, err)
	})
}

func newFlagSet(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	require.NoError(t, fs.Parse(args))
	return fs
}

func TestFlagLayer(t *testing.T) {
	fs := newFlagSet(t,
		"--extensions", "py,.GO",
		"--exclude-dirs", "venv, target",
		"--exclude-files", "go.sum",
		"--max-size", "0.5",
	)

	layer, err := FlagLayer(fs)
	require.NoError(t, err)

	assert.Equal(t, []string{".py", ".go"}, layer.Extensions)
	assert.Equal(t, []string{"venv", "target"}, layer.ExcludeDirs)
	assert.Equal(t, []string{"go.sum"}, layer.ExcludeFiles)
	require.NotNil(t, layer.MaxFileSize)
	assert.Equal(t, int64(512*1024), *layer.MaxFileSize)
}

func TestFlagLayerUnsetFlags(t *testing.T) {
	layer, err := FlagLayer(newFlagSet(t))
	require.NoError(t, err)
	assert.Equal(t, Layer{}, layer)
}

func TestFlagLayerLastValueWins(t *testing.T) {
	layer, err := FlagLayer(newFlagSet(t, "--extensions", ".js", "--extensions", ".ts"))
	require.NoError(t, err)
	assert.Equal(t, []string{".ts"}, layer.Extensions)
}

func TestFlagLayerInvalidMaxSize(t *testing.T) {
	layer, err := FlagLayer(newFlagSet(t, "--max-size", "huge", "--extensions", "go"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max-size")
	assert.Nil(t, layer.MaxFileSize)
	assert.Equal(t, []string{".go"}, layer.Extensions)
}

func TestFlagLayerRejectsOutOfRangeMaxSize(t *testing.T) {
	for _, value := range []string{"NaN", "Inf", "+Inf", "-Inf", "-1", "-0.5"} {
		t.Run(value, func(t *testing.T) {
			layer, err := FlagLayer(newFlagSet(t, "--max-size="+value, "--exclude-dirs", "vendor"))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "max-size")
			assert.Nil(t, layer.MaxFileSize)
			assert.Equal(t, []string{"vendor"}, layer.ExcludeDirs)
		})
	}
}

func TestFlagLayerAcceptsZeroMaxSize(t *testing.T) {
	layer, err := FlagLayer(newFlagSet(t, "--max-size", "0"))
	require.NoError(t, err)
	require.NotNil(t, layer.MaxFileSize)
	assert.Equal(t, int64(0), *layer.MaxFileSize)
}

func TestResolveOrder(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "cfg.json", `{"extensions": [".py"], "excludeDirs": ["venv"], "maxFileSize": 100}`)

	fs := newFlagSet(t, "--config", path, "--exclude-dirs", "env")
	cfg := Resolve(fs, zap.NewNop())

	assert.Equal(t, []string{".py"}, cfg.Extensions, "file overrides defaults")
	assert.Equal(t, []string{"env"}, cfg.ExcludeDirs, "flags override file")
	assert.Equal(t, Defaults().ExcludeFiles, cfg.ExcludeFiles, "untouched keys keep defaults")
	assert.Equal(t, int64(100), cfg.MaxFileSize)
}

func TestResolveMalformedConfigFallsBackToDefaults(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "bad.json", `not json at all`)

	core, logs := observer.New(zap.InfoLevel)
	fs := newFlagSet(t, "--config", path, "--extensions", ".go")
	cfg := Resolve(fs, zap.New(core))

	want := Defaults()
	assert.Equal(t, []string{".go"}, cfg.Extensions)
	assert.Equal(t, want.ExcludeDirs, cfg.ExcludeDirs)
	assert.Equal(t, want.MaxFileSize, cfg.MaxFileSize)

	warnings := logs.FilterLevelExact(zap.WarnLevel).All()
	require.Len(t, warnings, 1)
	assert.Equal(t, "Failed to load configuration, using defaults", warnings[0].Message)
}

func TestResolveMissingExplicitConfigWarns(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	fs := newFlagSet(t, "--config", filepath.Join(t.TempDir(), "nope.json"))

	cfg := Resolve(fs, zap.New(core))

	assert.Equal(t, Defaults(), cfg)
	assert.Equal(t, 1, logs.FilterLevelExact(zap.WarnLevel).Len())
}

func TestResolveDefaultConfigFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, DefaultConfigFile, `{"excludeFiles": ["secret.js"]}`)
	t.Chdir(dir)

	cfg := Resolve(newFlagSet(t), zap.NewNop())
	assert.Equal(t, []string{"secret.js"}, cfg.ExcludeFiles)
}

func TestResolveWithoutDefaultConfigFileIsSilent(t *testing.T) {
	t.Chdir(t.TempDir())

	core, logs := observer.New(zap.DebugLevel)
	cfg := Resolve(newFlagSet(t), zap.New(core))

	assert.Equal(t, Defaults(), cfg)
	assert.Equal(t, 0, logs.FilterLevelExact(zap.WarnLevel).Len())
}

func TestResolveInvalidMaxSizeWarns(t *testing.T) {
	t.Chdir(t.TempDir())

	core, logs := observer.New(zap.InfoLevel)
	cfg := Resolve(newFlagSet(t, "--max-size", "abc"), zap.New(core))

	assert.Equal(t, Defaults().MaxFileSize, cfg.MaxFileSize)
	assert.Equal(t, 1, logs.FilterMessage("Ignoring invalid command-line value").Len())
}
