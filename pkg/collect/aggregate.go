package collect

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"collectcode/pkg/console"

	"go.uber.org/zap"
)

const (
	headerSeparatorWidth = 100
	// timeLayout renders timestamps the way en-US locales print them.
	timeLayout = "1/2/2006, 3:04:05 PM"
)

// Aggregator appends file headers and contents to the artifact body and
// accumulates statistics.
type Aggregator struct {
	writer  io.Writer
	stats   *Stats
	console *console.Console
	logger  *zap.Logger
}

// NewAggregator creates an Aggregator writing to w.
func NewAggregator(w io.Writer, con *console.Console, logger *zap.Logger) *Aggregator {
	if logger == nil {
		logger = zap.NewNop()
	}
	if con == nil {
		con = console.New(nil)
	}
	return &Aggregator{
		writer:  w,
		stats:   NewStats(),
		console: con,
		logger:  logger,
	}
}

// Add reads the candidate and appends its header and raw content.
// A file that cannot be read is logged and skipped; only write failures are
// returned.
func (a *Aggregator) Add(c Candidate) error {
	a.logger.Debug("Reading file content", zap.String("filePath", c.Path))

	content, err := os.ReadFile(c.Path)
	if err != nil {
		a.logger.Error("Failed to read file, skipping", zap.String("file", c.RelPath), zap.Error(err))
		return nil
	}

	if _, err := io.WriteString(a.writer, FormatHeader(c)); err != nil {
		return fmt.Errorf("failed to write header for %s: %w", c.RelPath, err)
	}
	if _, err := a.writer.Write(content); err != nil {
		return fmt.Errorf("failed to write content of %s: %w", c.RelPath, err)
	}

	lines := CountLines(content)
	ext := fileExtension(filepath.Base(c.Path))
	a.stats.Add(c.RelPath, ext, lines, int64(utf8.RuneCount(content)))
	a.console.File(c.RelPath, lines)
	return nil
}

// Stats returns the statistics gathered so far.
func (a *Aggregator) Stats() *Stats {
	return a.stats
}

// FormatHeader renders the block written before each file's content.
func FormatHeader(c Candidate) string {
	separator := strings.Repeat("=", headerSeparatorWidth)
	return fmt.Sprintf("\n\n%s\nFile: %s\nSize: %.2f KB\nModified: %s\n%s\n\n",
		separator,
		c.RelPath,
		float64(c.Size)/1024,
		c.ModTime.Local().Format(timeLayout),
		separator,
	)
}

// CountLines returns the number of newline-delimited segments in content.
// n newlines yield n+1 segments, so empty content counts as one line.
func CountLines(content []byte) int {
	return bytes.Count(content, []byte{'\n'}) + 1
}
