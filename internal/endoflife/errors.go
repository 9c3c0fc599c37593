package endoflife

import (
	"errors"
	"fmt"
)

var (
	// ErrUnexpectedStatus is returned when the API answers with a non-success status.
	ErrUnexpectedStatus = errors.New("unexpected HTTP status")

	// ErrSchema is returned when a payload does not have the expected JSON shape.
	ErrSchema = errors.New("unexpected payload schema")

	// ErrNoLinks is returned by Result.Err when the fetch succeeded but no link
	// was collected. Callers treat it like any other fetch failure.
	ErrNoLinks = errors.New("no links collected")
)

// FetchError reports a failure that aborts the whole fetch.
type FetchError struct {
	// URL is the request that failed.
	URL string

	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

// Unwrap returns the underlying cause.
func (e *FetchError) Unwrap() error {
	return e.Err
}

// StatusError reports a non-200 answer for a single product payload.
// It is recovered by CollectLinks: the product is skipped.
type StatusError struct {
	Product    string
	StatusCode int
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	return fmt.Sprintf("product %s: HTTP status %d", e.Product, e.StatusCode)
}

// Unwrap lets errors.Is match ErrUnexpectedStatus.
func (e *StatusError) Unwrap() error {
	return ErrUnexpectedStatus
}
