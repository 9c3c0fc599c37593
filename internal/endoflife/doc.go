// Package endoflife is a client for the endoflife.date public API.
//
// The client lists every product identifier (all.json), then fetches each
// product's cycle records ({product}.json) one at a time and collects the
// distinct "link" values. Requests are spaced by a fixed delay through a
// rate limiter to respect the API's rate limits; nothing is fetched
// concurrently.
//
// # Failure handling
//
// A failure to list the products is fatal and reported as a *FetchError.
// A product whose payload returns a non-200 status is skipped with a warning
// and reported in the Result; the run continues with the remaining products.
package endoflife
