package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/nao1215/eolallowlist/internal/model"
)

// Writer defines the interface for run summary output.
//
// Design decision: We use an interface so the CLI can print a terminal
// summary and save a file summary through the same call, whatever the
// format.
type Writer interface {
	// Write outputs the run summary to the configured destination.
	// Returns the number of bytes written and any error encountered.
	Write(run *model.Run) (int, error)
}

// MultiWriter writes to multiple Writers in order.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write outputs the run to all configured Writers.
// Returns the total bytes written across all writers.
// Stops on first error encountered.
func (m *MultiWriter) Write(run *model.Run) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.Write(run)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// WriteFile saves the run summary to path, creating parent directories.
// A ".json" extension selects JSON; anything else is written as Markdown.
func WriteFile(path string, run *model.Run) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("failed to create summary directory: %w", err)
		}
	}

	f, err := os.Create(path) //nolint:gosec // path is chosen by the user
	if err != nil {
		return fmt.Errorf("failed to create summary file: %w", err)
	}

	var w Writer = NewMarkdownWriter(f)
	if strings.EqualFold(filepath.Ext(path), ".json") {
		w = NewJSONWriter(f, WithPrettyPrint())
	}

	if _, err := w.Write(run); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write summary: %w", err)
	}
	return f.Close()
}

// statusText returns a short status for the run.
func statusText(run *model.Run) string {
	if run.Failed() {
		return "failed: " + run.ErrorMessage
	}
	return "complete"
}

// truncateString truncates a string to maxLen characters with ellipsis.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
