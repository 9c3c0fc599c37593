// Package report renders the summary of an allowlist run.
//
// This package contains writers for different output formats:
//   - SimpleWriter: coloured text output for terminal display
//   - MarkdownWriter: Markdown for CI job summaries
//   - JSONWriter: structured JSON output for tool integration
//
// Design decision: We separate summary rendering from the run state (which
// lives in the model package) so new output formats can be added without
// touching the pipeline.
package report
