// Package model defines the data structures shared by the fetcher, the
// classifier, the allowlist writer and the run summaries.
//
// This package contains the following main types:
//   - Set: A string set used for raw links and every output collection
//   - Allowlist: The three disjoint output collections of a run
//   - Run: The state of one batch run, threaded through the pipeline
//
// Models live in their own package so that pipeline, report and the
// component packages can share them without import cycles.
package model
