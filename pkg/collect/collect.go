// Package collect walks a project tree and concatenates the selected source
// files into a single text artifact headed by a summary block.
package collect

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"collectcode/pkg/config"
	"collectcode/pkg/console"
	"collectcode/pkg/ignore"

	"github.com/atotto/clipboard"
	"go.uber.org/zap"
)

// writeClipboard is replaced in tests.
var writeClipboard = clipboard.WriteAll

// Run validates the target directory and produces the artifact.
// Only a missing or non-directory target is returned as an error; every
// other failure is logged and the run ends normally.
func Run(opts Options, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	root, err := ValidateRoot(opts.Directory)
	if err != nil {
		return err
	}

	if err := runCollect(root, opts, logger); err != nil {
		logger.Error("Failed to collect code", zap.Error(err))
	}
	return nil
}

// ValidateRoot resolves dir to an absolute path and checks that it is a directory.
func ValidateRoot(dir string) (string, error) {
	if dir == "" {
		dir = config.DefaultDirectory
	}

	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrDirectoryNotFound, dir)
		}
		return "", fmt.Errorf("failed to access directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrNotDirectory, dir)
	}

	absPath, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path: %w", err)
	}
	return absPath, nil
}

// runCollect orchestrates traversal, aggregation and finalization.
func runCollect(root string, opts Options, logger *zap.Logger) error {
	startTime := time.Now()
	cfg := opts.Config

	stdout := opts.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	con := console.New(stdout)
	con.Start(root, cfg.Extensions, cfg.ExcludeDirs)

	output := opts.Output
	if output == "" {
		output = config.DefaultOutputFile
	}
	outputPath, err := filepath.Abs(output)
	if err != nil {
		return fmt.Errorf("failed to resolve output path: %w", err)
	}
	if err := ensureDirectory(filepath.Dir(outputPath), logger); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	gi, err := ignore.LoadIgnoreFiles(root, opts.GitIgnore, logger)
	if err != nil {
		logger.Warn("Failed to load ignore files", zap.Error(err))
	}
	logger.Debug("Ignore rules ready", zap.Int("sources", gi.Len()), zap.Bool("gitignore", opts.GitIgnore))

	body, err := os.CreateTemp(filepath.Dir(outputPath), ".collect-code-body-*")
	if err != nil {
		return fmt.Errorf("failed to create body file: %w", err)
	}
	defer func() {
		body.Close()
		os.Remove(body.Name())
	}()

	walker := &Walker{
		Root:   root,
		Config: cfg,
		Ignore: gi,
		Skip:   []string{outputPath, body.Name()},
		Logger: logger,
	}

	writer := bufio.NewWriter(body)
	aggregator := NewAggregator(writer, con, logger)

	found := 0
	for candidate := range walker.Candidates() {
		found++
		binary, err := isBinaryFile(candidate.Path)
		if err != nil {
			logger.Warn("Cannot inspect file, skipping as binary", zap.String("file", candidate.RelPath), zap.Error(err))
			continue
		}
		if binary {
			logger.Warn("Skipping binary file", zap.String("file", candidate.RelPath))
			continue
		}
		if err := aggregator.Add(candidate); err != nil {
			return err
		}
	}

	if err := writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush output body: %w", err)
	}
	if found == 0 {
		con.NoFiles()
	}

	stats := aggregator.Stats()
	report := Report{
		Stats:       stats,
		Config:      cfg,
		Root:        root,
		GeneratedAt: time.Now(),
		Tree:        opts.Tree,
	}

	if _, err := body.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("failed to rewind output body: %w", err)
	}
	if err := Finalize(outputPath, report.String(), body); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	var outputSize int64
	if info, err := os.Stat(outputPath); err == nil {
		outputSize = info.Size()
	}
	con.Done(output, stats.TotalFiles, stats.TotalLines, outputSize)

	if opts.Clipboard {
		copyToClipboard(outputPath, logger)
	}

	logger.Debug("Collection completed",
		zap.Int("candidates", found),
		zap.Int("files", stats.TotalFiles),
		zap.Duration("elapsed", time.Since(startTime)))
	return nil
}

func copyToClipboard(outputPath string, logger *zap.Logger) {
	data, err := os.ReadFile(outputPath)
	if err != nil {
		logger.Warn("Failed to read output for clipboard", zap.String("file", outputPath), zap.Error(err))
		return
	}
	if err := writeClipboard(string(data)); err != nil {
		logger.Warn("Failed to copy output to clipboard", zap.Error(err))
		return
	}
	logger.Info("Output copied to clipboard")
}

// ensureDirectory ensures a directory exists, creating it if necessary.
func ensureDirectory(path string, logger *zap.Logger) error {
	if err := os.MkdirAll(path, os.ModePerm); err != nil {
		logger.Error("Failed to create directory", zap.String("path", path), zap.Error(err))
		return err
	}
	logger.Debug("Ensured directory exists", zap.String("path", path))
	return nil
}
