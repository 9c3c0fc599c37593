package model

import "time"

// SkippedProduct records a product whose cycle records could not be retrieved.
type SkippedProduct struct {
	// Product is the endoflife.date product identifier.
	Product string `json:"product"`

	// StatusCode is the HTTP status returned for the product payload.
	StatusCode int `json:"status_code"`
}

// WrittenFile describes one allowlist file written to disk.
type WrittenFile struct {
	// Name is the file name, e.g. "urls.txt".
	Name string `json:"name"`

	// Path is the full destination path.
	Path string `json:"path"`

	// Count is the number of entries written.
	Count int `json:"count"`

	// Timestamp is the capture timestamp in the allowlist log format.
	Timestamp string `json:"timestamp"`
}

// Run holds the state of a single batch run.
// Each pipeline step reads what the previous steps produced and adds its own
// results.
type Run struct {
	// StartedAt is when the run began.
	StartedAt time.Time `json:"started_at"`

	// FinishedAt is when the pipeline returned.
	FinishedAt time.Time `json:"finished_at"`

	// APIBaseURL is the endoflife.date API root the run fetched from.
	APIBaseURL string `json:"api_base_url"`

	// Products is the number of product identifiers listed by the API.
	Products int `json:"products"`

	// Skipped lists products whose payload returned a non-200 status.
	Skipped []SkippedProduct `json:"skipped,omitempty"`

	// Links is the set of unique raw link strings collected from all cycles.
	Links *Set `json:"-"`

	// Allowlist is the classified output.
	Allowlist *Allowlist `json:"-"`

	// Discarded counts links that were neither a domain URL nor an IPv4 literal.
	Discarded int `json:"discarded"`

	// Files lists the allowlist files written, in write order.
	Files []WrittenFile `json:"files,omitempty"`

	// PerformedSteps lists the pipeline steps that ran.
	PerformedSteps []string `json:"performed_steps,omitempty"`

	// Error is the error that stopped the run, if any.
	Error error `json:"-"`

	// ErrorMessage is Error as text.
	ErrorMessage string `json:"error,omitempty"`
}

// NewRun creates a Run against the given API base URL.
func NewRun(apiBaseURL string) *Run {
	return &Run{
		StartedAt:  time.Now(),
		APIBaseURL: apiBaseURL,
		Links:      NewSet(),
		Allowlist:  NewAllowlist(),
	}
}

// AddSkipped records a skipped product.
func (r *Run) AddSkipped(product string, statusCode int) {
	r.Skipped = append(r.Skipped, SkippedProduct{Product: product, StatusCode: statusCode})
}

// Failed reports whether the run stopped with an error.
func (r *Run) Failed() bool {
	return r.Error != nil
}

// Duration returns how long the run took, or the time elapsed so far when it
// has not finished.
func (r *Run) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return time.Since(r.StartedAt)
	}
	return r.FinishedAt.Sub(r.StartedAt)
}
