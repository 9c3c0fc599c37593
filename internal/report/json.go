package report

import (
	"encoding/json"
	"io"

	"github.com/nao1215/eolallowlist/internal/model"
)

// JSONWriter outputs run summaries in JSON format.
// This format is designed for tool integration, e.g. a CI step that checks
// the counts before committing new allowlists.
//
// Design decision: We use standard encoding/json rather than a third-party
// JSON library because it is sufficient for a flat summary document.
type JSONWriter struct {
	baseWriter

	// indent enables pretty-printed JSON output.
	// When false, output is compact (no extra whitespace).
	indent bool

	// indentPrefix is the prefix for each line in indented output.
	indentPrefix string

	// indentString is the indentation string (typically "  " or "\t").
	indentString string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithIndent enables pretty-printed JSON output.
// The prefix is prepended to each line, and indent is used for each level.
func WithIndent(prefix, indent string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = prefix
		w.indentString = indent
	}
}

// WithPrettyPrint enables pretty-printed JSON with default indentation.
// This is a convenience wrapper for WithIndent("", "  ").
func WithPrettyPrint() JSONWriterOption {
	return WithIndent("", "  ")
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// JSONSummary wraps a run with the collection sizes, which the run itself
// does not serialize.
type JSONSummary struct {
	*model.Run

	// Links is the number of unique links collected.
	Links int `json:"links"`

	// URLs is the number of non-IP URLs classified.
	URLs int `json:"urls"`

	// IPs is the number of IPv4 addresses classified.
	IPs int `json:"ips"`

	// FQDNs is the number of FQDNs classified.
	FQDNs int `json:"fqdns"`
}

// NewJSONSummary creates the JSON view of a run.
func NewJSONSummary(run *model.Run) *JSONSummary {
	s := &JSONSummary{
		Run:   run,
		Links: run.Links.Len(),
	}
	if run.Allowlist != nil {
		s.URLs = run.Allowlist.URLs.Len()
		s.IPs = run.Allowlist.IPs.Len()
		s.FQDNs = run.Allowlist.FQDNs.Len()
	}
	return s
}

// Write outputs the run summary in JSON format.
func (w *JSONWriter) Write(run *model.Run) (int, error) {
	return w.writeJSON(NewJSONSummary(run))
}

// writeJSON marshals the given value to JSON and writes it to the output.
func (w *JSONWriter) writeJSON(v any) (int, error) {
	var data []byte
	var err error

	if w.indent {
		data, err = json.MarshalIndent(v, w.indentPrefix, w.indentString)
	} else {
		data, err = json.Marshal(v)
	}

	if err != nil {
		return 0, err
	}

	// Add trailing newline for better terminal output
	data = append(data, '\n')

	return w.output.Write(data)
}
