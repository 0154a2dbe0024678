package collect

import (
	"fmt"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"strings"

	"collectcode/pkg/config"

	"go.uber.org/zap"
)

// PathMatcher reports whether an absolute path is excluded by ignore rules.
type PathMatcher interface {
	MatchesPath(path string, isDir bool) bool
}

// Walker enumerates the files under Root that pass the configured filters.
type Walker struct {
	Root   string        // Absolute traversal root.
	Config config.Config // Extension, name and size filters.
	Ignore PathMatcher   // Optional ignore rules.
	Skip   []string      // Absolute paths never yielded (the artifact itself).
	Logger *zap.Logger
}

// Candidates returns a single-pass sequence of files in directory-listing order.
// Unreadable directories are logged and skipped; traversal continues.
func (w *Walker) Candidates() iter.Seq[Candidate] {
	logger := w.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	extensions := toSet(w.Config.Extensions)
	excludeDirs := toSet(w.Config.ExcludeDirs)
	excludeFiles := toSet(w.Config.ExcludeFiles)
	skip := make(map[string]bool, len(w.Skip))
	for _, p := range w.Skip {
		skip[filepath.Clean(p)] = true
	}

	return func(yield func(Candidate) bool) {
		logger.Debug("Starting file traversal", zap.String("root", w.Root), zap.Int64("maxFileSize", w.Config.MaxFileSize))

		err := filepath.WalkDir(w.Root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				if d == nil {
					return err
				}
				logger.Error("Failed to read directory, skipping", zap.String("directory", path), zap.Error(err))
				return nil
			}

			if path == w.Root {
				return nil
			}

			relPath := relativePath(w.Root, path)

			if d.IsDir() {
				if excludeDirs[d.Name()] {
					logger.Debug("Skipping excluded directory", zap.String("directory", relPath))
					return filepath.SkipDir
				}
				if w.Ignore != nil && w.Ignore.MatchesPath(path, true) {
					logger.Debug("Skipping ignored directory", zap.String("directory", relPath))
					return filepath.SkipDir
				}
				return nil
			}

			if !extensions[fileExtension(d.Name())] || excludeFiles[d.Name()] || skip[path] {
				return nil
			}

			info, err := fileInfo(path, d)
			if err != nil {
				logger.Warn("Failed to stat file, skipping", zap.String("file", relPath), zap.Error(err))
				return nil
			}
			if info.IsDir() {
				logger.Debug("Not following directory symlink", zap.String("path", relPath))
				return nil
			}
			if !info.Mode().IsRegular() {
				return nil
			}

			if w.Ignore != nil && w.Ignore.MatchesPath(path, false) {
				logger.Debug("Skipping ignored file", zap.String("file", relPath))
				return nil
			}

			if info.Size() > w.Config.MaxFileSize {
				logger.Warn("Skipping large file",
					zap.String("file", relPath),
					zap.String("size", fmt.Sprintf("%.2f MB", float64(info.Size())/1024/1024)))
				return nil
			}

			candidate := Candidate{
				Path:    path,
				RelPath: relPath,
				Size:    info.Size(),
				ModTime: info.ModTime(),
			}
			if !yield(candidate) {
				return filepath.SkipAll
			}
			return nil
		})
		if err != nil {
			logger.Error("Error during file traversal", zap.String("root", w.Root), zap.Error(err))
		}
	}
}

// fileInfo stats through symlinks so linked files are measured by their target.
func fileInfo(path string, d fs.DirEntry) (fs.FileInfo, error) {
	if d.Type()&fs.ModeSymlink != 0 {
		return os.Stat(path)
	}
	return d.Info()
}

// fileExtension returns the lowercase extension of a file name. A name whose
// only dot is the leading one, such as ".json", has no extension.
func fileExtension(name string) string {
	ext := filepath.Ext(name)
	if ext == name {
		return ""
	}
	return strings.ToLower(ext)
}

func relativePath(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

func toSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}
