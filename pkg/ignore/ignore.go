// Package ignore loads gitignore-style pattern files that further restrict
// which paths collect-code reads.
package ignore

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	gitignore "github.com/monochromegane/go-gitignore"
	"go.uber.org/zap"
)

const (
	// LocalIgnoreFile is honored in the traversal root whenever it exists.
	LocalIgnoreFile = ".collectignore"
	// GitIgnoreFile is honored in the traversal root when requested.
	GitIgnoreFile = ".gitignore"
)

// GitIgnore represents a collection of compiled ignore files.
type GitIgnore struct {
	matchers []gitignore.IgnoreMatcher // One matcher per compiled source.
	sources  []string                  // Origin of each matcher, for logging.
	logger   *zap.Logger               // Optional logger for debug information.
}

// NewGitIgnore initializes a GitIgnore instance with an optional logger.
func NewGitIgnore(logger *zap.Logger) *GitIgnore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GitIgnore{logger: logger}
}

// LoadIgnoreFiles loads LocalIgnoreFile from root and, when useGitIgnore is
// set, GitIgnoreFile as well. Missing files are not an error.
func LoadIgnoreFiles(root string, useGitIgnore bool, logger *zap.Logger) (*GitIgnore, error) {
	gi := NewGitIgnore(logger)

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return gi, err
	}

	names := []string{LocalIgnoreFile}
	if useGitIgnore {
		names = append(names, GitIgnoreFile)
	}

	var errs []error
	for _, name := range names {
		if err := gi.CompileIgnoreFile(filepath.Join(absRoot, name), absRoot); err != nil {
			errs = append(errs, err)
		}
	}
	return gi, errors.Join(errs...)
}

// compileIgnoreLines compiles pattern lines relative to base.
func (gi *GitIgnore) compileIgnoreLines(base string, lines ...string) {
	matcher := gitignore.NewGitIgnoreFromReader(base, strings.NewReader(strings.Join(lines, "\n")))
	gi.matchers = append(gi.matchers, matcher)
	gi.sources = append(gi.sources, "inline")
	gi.logger.Debug("Compiled ignore patterns", zap.Int("lineCount", len(lines)))
}

// CompileIgnoreFile compiles an ignore file whose patterns are relative to base.
// A file that does not exist is skipped.
func (gi *GitIgnore) CompileIgnoreFile(filePath, base string) error {
	matcher, err := gitignore.NewGitIgnore(filePath, base)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			gi.logger.Debug("Ignore file does not exist and will be skipped", zap.String("filePath", filePath))
			return nil
		}
		gi.logger.Error("Failed to read ignore file", zap.String("filePath", filePath), zap.Error(err))
		return err
	}

	gi.matchers = append(gi.matchers, matcher)
	gi.sources = append(gi.sources, filePath)
	gi.logger.Info("Loaded ignore file", zap.String("filePath", filePath))
	return nil
}

// MatchesPath reports whether the absolute path is ignored by any source.
func (gi *GitIgnore) MatchesPath(path string, isDir bool) bool {
	if gi == nil {
		return false
	}
	for i, matcher := range gi.matchers {
		if matcher.Match(path, isDir) {
			gi.logger.Debug("Path matches ignore rules",
				zap.String("path", path),
				zap.String("source", gi.sources[i]))
			return true
		}
	}
	return false
}

// Len returns the number of compiled sources.
func (gi *GitIgnore) Len() int {
	if gi == nil {
		return 0
	}
	return len(gi.matchers)
}
