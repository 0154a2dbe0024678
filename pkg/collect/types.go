package collect

import (
	"errors"
	"io"
	"time"

	"collectcode/pkg/config"
)

var (
	// ErrDirectoryNotFound is returned when the target directory does not exist.
	ErrDirectoryNotFound = errors.New("directory not found")
	// ErrNotDirectory is returned when the target path is not a directory.
	ErrNotDirectory = errors.New("path is not a directory")
)

// Options holds everything a single run needs.
type Options struct {
	Directory string        // Root of the traversal.
	Output    string        // Path of the artifact to write.
	Config    config.Config // Effective configuration.
	Tree      bool          // Append a tree of included files to the summary.
	GitIgnore bool          // Honor <root>/.gitignore in addition to .collectignore.
	Clipboard bool          // Copy the finished artifact to the system clipboard.
	Stdout    io.Writer     // Progress output; os.Stdout when nil.
}

// Candidate is a file that passed the traversal filters and awaits binary sniffing.
type Candidate struct {
	Path    string    // Absolute path.
	RelPath string    // Slash-separated path relative to the root.
	Size    int64     // Size in bytes at traversal time.
	ModTime time.Time // Modification time at traversal time.
}

// ExtensionStats counts files and lines for one extension.
type ExtensionStats struct {
	Files int
	Lines int
}

// Stats accumulates the totals of a run.
type Stats struct {
	TotalFiles  int
	TotalLines  int
	TotalSize   int64 // Characters, not bytes.
	ByExtension map[string]ExtensionStats
	Files       []string // Relative paths in the order they were written.
}

// NewStats returns empty statistics.
func NewStats() *Stats {
	return &Stats{ByExtension: make(map[string]ExtensionStats)}
}

// Add records one processed file.
func (s *Stats) Add(relPath, ext string, lines int, size int64) {
	s.TotalFiles++
	s.TotalLines += lines
	s.TotalSize += size
	bucket := s.ByExtension[ext]
	bucket.Files++
	bucket.Lines += lines
	s.ByExtension[ext] = bucket
	s.Files = append(s.Files, relPath)
}
