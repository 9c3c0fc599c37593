package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/nao1215/eolallowlist/internal/model"
)

// SimpleWriter outputs a short human-readable run summary for the terminal.
//
// Design decision: Colour is on by default and follows fatih/color's
// terminal detection, so piping the output to a file yields plain text.
type SimpleWriter struct {
	baseWriter

	ok    *color.Color
	warn  *color.Color
	fail  *color.Color
	label *color.Color

	// verbose lists every skipped product instead of a count.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithColor forces colour on or off.
func WithColor(enabled bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		for _, c := range []*color.Color{w.ok, w.warn, w.fail, w.label} {
			if enabled {
				c.EnableColor()
			} else {
				c.DisableColor()
			}
		}
	}
}

// WithVerbose enables verbose output with additional details.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
		ok:         color.New(color.FgGreen, color.Bold),
		warn:       color.New(color.FgYellow),
		fail:       color.New(color.FgRed, color.Bold),
		label:      color.New(color.FgCyan),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the run summary.
func (w *SimpleWriter) Write(run *model.Run) (int, error) {
	var sb strings.Builder

	sb.WriteString("\n")
	if run.Failed() {
		sb.WriteString(w.fail.Sprint("Allowlist run failed") + "\n")
		fmt.Fprintf(&sb, "  %s %s\n", w.label.Sprint("Error:"), run.ErrorMessage)
	} else {
		sb.WriteString(w.ok.Sprint("Allowlist run complete") + "\n")
	}

	fmt.Fprintf(&sb, "  %s %s\n", w.label.Sprint("API:"), run.APIBaseURL)
	fmt.Fprintf(&sb, "  %s %d\n", w.label.Sprint("Products:"), run.Products)
	w.writeSkipped(&sb, run)
	fmt.Fprintf(&sb, "  %s %d\n", w.label.Sprint("Links:"), run.Links.Len())

	if run.Allowlist != nil {
		fmt.Fprintf(&sb, "  %s %d urls, %d ips, %d fqdns, %d discarded\n",
			w.label.Sprint("Classified:"),
			run.Allowlist.URLs.Len(),
			run.Allowlist.IPs.Len(),
			run.Allowlist.FQDNs.Len(),
			run.Discarded,
		)
	}

	for _, f := range run.Files {
		fmt.Fprintf(&sb, "  %s %s (%d entries, %s)\n", w.ok.Sprint("wrote"), f.Path, f.Count, f.Timestamp)
	}

	fmt.Fprintf(&sb, "  %s %s\n", w.label.Sprint("Duration:"), run.Duration().Round(time.Millisecond))

	return io.WriteString(w.output, sb.String())
}

func (w *SimpleWriter) writeSkipped(sb *strings.Builder, run *model.Run) {
	if len(run.Skipped) == 0 {
		return
	}
	fmt.Fprintf(sb, "  %s %d\n", w.warn.Sprint("Skipped:"), len(run.Skipped))
	if !w.verbose {
		return
	}
	for _, s := range run.Skipped {
		fmt.Fprintf(sb, "    - %s (HTTP %d)\n", s.Product, s.StatusCode)
	}
}
