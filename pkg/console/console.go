// Package console prints the human-facing progress lines of a collect-code
// run. Diagnostics go through zap; this package only renders the banner,
// per-file progress and the final tally.
package console

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Console writes progress output to a writer, colored when the writer is a terminal.
type Console struct {
	writer      io.Writer
	colorOutput bool
}

// New creates a Console. A nil writer discards all output.
func New(w io.Writer) *Console {
	if w == nil {
		w = io.Discard
	}
	return &Console{
		writer:      w,
		colorOutput: isTerminal(w),
	}
}

// isTerminal reports whether w is a TTY that accepts color codes.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	if color.NoColor {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (c *Console) paint(attr color.Attribute, s string) string {
	if !c.colorOutput {
		return s
	}
	painter := color.New(attr)
	painter.EnableColor()
	return painter.Sprint(s)
}

// Start announces the traversal root and the active filters.
func (c *Console) Start(root string, extensions, excludeDirs []string) {
	fmt.Fprintf(c.writer, "%s %s\n", c.paint(color.FgCyan, "Searching files in:"), root)
	fmt.Fprintf(c.writer, "Extensions: %s\n", strings.Join(extensions, ", "))
	fmt.Fprintf(c.writer, "Excluded directories: %s\n", strings.Join(excludeDirs, ", "))
}

// File reports one file appended to the artifact.
func (c *Console) File(relPath string, lines int) {
	fmt.Fprintf(c.writer, "  %s (%d lines)\n", relPath, lines)
}

// NoFiles reports that nothing matched the filters.
func (c *Console) NoFiles() {
	fmt.Fprintln(c.writer, c.paint(color.FgYellow, "No code files found"))
}

// Done prints the final tally after the artifact has been written.
func (c *Console) Done(outputPath string, files, lines int, outputBytes int64) {
	fmt.Fprintf(c.writer, "\n%s %s\n", c.paint(color.FgGreen, "Done! Output saved to:"), outputPath)
	fmt.Fprintf(c.writer, "Files processed: %d\n", files)
	fmt.Fprintf(c.writer, "Total lines of code: %d\n", lines)
	fmt.Fprintf(c.writer, "Output file size: %.2f KB\n", float64(outputBytes)/1024)
}
