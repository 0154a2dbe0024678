package collect

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"collectcode/pkg/config"
)

const (
	summaryRuleWidth = 50
	sectionRuleWidth = 30
)

// Report is the summary block placed at the top of the artifact.
type Report struct {
	Stats       *Stats
	Config      config.Config
	Root        string // Absolute traversal root.
	GeneratedAt time.Time
	Tree        bool // Include a tree of the collected files.
}

// String renders the summary block.
func (r Report) String() string {
	stats := r.Stats
	if stats == nil {
		stats = NewStats()
	}
	summaryRule := strings.Repeat("=", summaryRuleWidth)
	sectionRule := strings.Repeat("-", sectionRuleWidth)

	var b strings.Builder
	b.WriteString("PROJECT SUMMARY\n")
	b.WriteString(summaryRule + "\n")
	fmt.Fprintf(&b, "Total files: %d\n", stats.TotalFiles)
	fmt.Fprintf(&b, "Total lines: %d\n", stats.TotalLines)
	fmt.Fprintf(&b, "Total size: %.2f KB\n", float64(stats.TotalSize)/1024)
	fmt.Fprintf(&b, "Generated: %s\n", r.GeneratedAt.Local().Format(timeLayout))
	fmt.Fprintf(&b, "Source directory: %s\n", r.Root)
	b.WriteString(summaryRule + "\n\n")

	b.WriteString("CONFIGURATION\n")
	b.WriteString(sectionRule + "\n")
	fmt.Fprintf(&b, "Extensions: %s\n", strings.Join(r.Config.Extensions, ", "))
	fmt.Fprintf(&b, "Excluded directories: %s\n", strings.Join(r.Config.ExcludeDirs, ", "))
	fmt.Fprintf(&b, "Excluded files: %s\n", strings.Join(r.Config.ExcludeFiles, ", "))
	fmt.Fprintf(&b, "Max file size: %.2f MB\n", r.Config.MaxFileSizeMB())
	b.WriteString(sectionRule + "\n\n")

	b.WriteString("DETAILED STATISTICS\n")
	b.WriteString(sectionRule + "\n")
	for _, ext := range r.Config.Extensions {
		bucket, ok := stats.ByExtension[ext]
		if !ok || bucket.Files == 0 {
			continue
		}
		fmt.Fprintf(&b, "%s: %d files, %d lines\n", ext, bucket.Files, bucket.Lines)
	}
	b.WriteString(sectionRule + "\n")

	if r.Tree && len(stats.Files) > 0 {
		b.WriteString("\nPROJECT TREE\n")
		b.WriteString(sectionRule + "\n")
		b.WriteString(GenerateTree(filepath.Base(r.Root), stats.Files))
		b.WriteString(sectionRule + "\n")
	}

	return b.String()
}

// Finalize writes summary followed by body to outputPath. The artifact is
// assembled in a temporary file next to outputPath and renamed into place,
// so readers never observe a partial file.
func Finalize(outputPath, summary string, body io.Reader) error {
	dir := filepath.Dir(outputPath)

	tempFile, err := os.CreateTemp(dir, ".collect-code-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tempPath := tempFile.Name()

	defer func() {
		if tempFile != nil {
			tempFile.Close()
			os.Remove(tempPath)
		}
	}()

	if _, err := io.WriteString(tempFile, summary); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	if _, err := io.Copy(tempFile, body); err != nil {
		return fmt.Errorf("failed to write body: %w", err)
	}
	if err := tempFile.Sync(); err != nil {
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tempPath, 0644); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := os.Rename(tempPath, outputPath); err != nil {
		return fmt.Errorf("failed to rename temp file to %s: %w", outputPath, err)
	}

	tempFile = nil
	return nil
}
