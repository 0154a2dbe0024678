// Package config resolves the effective collect-code configuration from
// built-in defaults, an optional config file and command-line flags.
//
// Sources are applied in a fixed order, later sources winning per key:
//
//	Defaults() -> config file -> command-line flags
//
// Each source produces a Layer; Config.Merge folds one Layer into a new
// Config value and never mutates the receiver.
package config

import (
	"math"
	"strings"
)

const (
	// DefaultOutputFile is the artifact name used when no output positional is given.
	DefaultOutputFile = "all_code.txt"
	// DefaultDirectory is the traversal root used when no directory positional is given.
	DefaultDirectory = "."
	// DefaultConfigFile is looked up in the working directory when --config is absent.
	DefaultConfigFile = "collect-code-config.json"

	bytesPerMB = 1024 * 1024
)

// Config holds the effective settings for a single run.
type Config struct {
	Extensions   []string // Dot-prefixed, lowercase file extensions to include.
	ExcludeDirs  []string // Directory names skipped during traversal (exact match).
	ExcludeFiles []string // File names never included (exact match).
	MaxFileSize  int64    // Maximum size in bytes; larger files are skipped.
}

// Layer is a partial configuration produced by one source. Nil fields are
// left untouched by Merge.
type Layer struct {
	Extensions   []string
	ExcludeDirs  []string
	ExcludeFiles []string
	MaxFileSize  *int64
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Extensions:   []string{".js", ".jsx", ".ts", ".tsx", ".html", ".css", ".scss", ".json"},
		ExcludeDirs:  []string{"node_modules", ".git", "dist", "build", ".next", ".nuxt", "coverage", ".vscode", ".idea"},
		ExcludeFiles: []string{"package-lock.json", "yarn.lock", ".DS_Store"},
		MaxFileSize:  10 * bytesPerMB,
	}
}

// Merge returns a copy of c with every field set in l replaced.
func (c Config) Merge(l Layer) Config {
	out := Config{
		Extensions:   clone(c.Extensions),
		ExcludeDirs:  clone(c.ExcludeDirs),
		ExcludeFiles: clone(c.ExcludeFiles),
		MaxFileSize:  c.MaxFileSize,
	}
	if l.Extensions != nil {
		out.Extensions = clone(l.Extensions)
	}
	if l.ExcludeDirs != nil {
		out.ExcludeDirs = clone(l.ExcludeDirs)
	}
	if l.ExcludeFiles != nil {
		out.ExcludeFiles = clone(l.ExcludeFiles)
	}
	if l.MaxFileSize != nil {
		out.MaxFileSize = *l.MaxFileSize
	}
	return out
}

// MaxFileSizeMB returns the size limit in megabytes.
func (c Config) MaxFileSizeMB() float64 {
	return float64(c.MaxFileSize) / bytesPerMB
}

// MegabytesToBytes converts a megabyte value to whole bytes, saturating at
// math.MaxInt64.
func MegabytesToBytes(mb float64) int64 {
	size := mb * bytesPerMB
	if size >= math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(size)
}

// NormalizeExtension converts "js", ".JS" or "*.js" to ".js".
// It returns "" for values that carry no extension.
func NormalizeExtension(ext string) string {
	ext = strings.TrimSpace(ext)
	ext = strings.TrimPrefix(ext, "*")
	ext = strings.TrimLeft(ext, ".")
	ext = strings.ToLower(ext)
	if ext == "" {
		return ""
	}
	return "." + ext
}

// NormalizeExtensions normalizes every entry, splitting comma lists and
// dropping empty values and duplicates. Order is preserved.
func NormalizeExtensions(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]bool, len(values))
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			ext := NormalizeExtension(part)
			if ext == "" || seen[ext] {
				continue
			}
			seen[ext] = true
			out = append(out, ext)
		}
	}
	return out
}

// NormalizeNames trims names, splits comma lists, and drops empty values and
// duplicates. Names are matched exactly, so case is kept.
func NormalizeNames(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]bool, len(values))
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			name := strings.TrimSpace(part)
			if name == "" || seen[name] {
				continue
			}
			seen[name] = true
			out = append(out, name)
		}
	}
	return out
}

func clone(values []string) []string {
	if values == nil {
		return nil
	}
	out := make([]string, len(values))
	copy(out, values)
	return out
}
