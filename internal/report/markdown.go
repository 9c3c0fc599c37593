package report

import (
	"io"
	"strconv"
	"time"

	"github.com/nao1215/markdown"

	"github.com/nao1215/eolallowlist/internal/model"
)

// MarkdownWriter outputs run summaries in Markdown format.
// This format is meant to be attached to CI job summaries or commits that
// update the allowlists.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables and lists
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the run summary in Markdown format.
func (w *MarkdownWriter) Write(run *model.Run) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, run)
	w.writeFiles(md, run)
	w.writeSkipped(md, run)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeHeader writes the run table and a status alert.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, run *model.Run) {
	md.H1("endoflife.date Allowlist Run")
	md.PlainText("")

	rows := [][]string{
		{"API", "`" + run.APIBaseURL + "`"},
		{"Started", run.StartedAt.UTC().Format("2006-01-02 15:04:05 MST")},
		{"Duration", run.Duration().Round(time.Millisecond).String()},
		{"Products", strconv.Itoa(run.Products)},
		{"Skipped products", strconv.Itoa(len(run.Skipped))},
		{"Unique links", strconv.Itoa(run.Links.Len())},
	}
	if run.Allowlist != nil {
		rows = append(rows,
			[]string{"URLs", strconv.Itoa(run.Allowlist.URLs.Len())},
			[]string{"IPs", strconv.Itoa(run.Allowlist.IPs.Len())},
			[]string{"FQDNs", strconv.Itoa(run.Allowlist.FQDNs.Len())},
		)
	}
	rows = append(rows,
		[]string{"Discarded links", strconv.Itoa(run.Discarded)},
		[]string{"Status", statusText(run)},
	)

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows:   rows,
	})
	md.PlainText("")

	if run.Failed() {
		md.Cautionf("The run failed and the allowlists were not updated: %s", run.ErrorMessage)
	} else {
		md.Tip("All allowlist files were rewritten.")
	}
	md.PlainText("")
}

// writeFiles writes the table of written files.
func (w *MarkdownWriter) writeFiles(md *markdown.Markdown, run *model.Run) {
	md.H2("Files")
	md.PlainText("")

	if len(run.Files) == 0 {
		md.PlainText("No files written.")
		md.PlainText("")
		return
	}

	rows := make([][]string, len(run.Files))
	for i, f := range run.Files {
		rows[i] = []string{"`" + f.Name + "`", strconv.Itoa(f.Count), f.Timestamp}
	}
	md.Table(markdown.TableSet{
		Header: []string{"File", "Entries", "Written at"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeSkipped writes the table of products whose payload was not retrieved.
func (w *MarkdownWriter) writeSkipped(md *markdown.Markdown, run *model.Run) {
	if len(run.Skipped) == 0 {
		return
	}

	md.H2("Skipped Products")
	md.PlainText("")

	rows := make([][]string, len(run.Skipped))
	for i, s := range run.Skipped {
		rows[i] = []string{truncateString(s.Product, 60), strconv.Itoa(s.StatusCode)}
	}
	md.Table(markdown.TableSet{
		Header: []string{"Product", "HTTP Status"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeFooter writes the summary footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Generated by [eolallowlist](https://github.com/nao1215/eolallowlist) from [endoflife.date](https://endoflife.date)*")
}
