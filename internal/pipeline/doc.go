// Package pipeline runs the allowlist batch job as an ordered list of steps.
//
// A run goes through three stages: fetch the product links from the
// endoflife.date API, classify them into URLs, IPs and FQDNs, and write the
// allowlist files. Each stage is a Step that receives the shared model.Run
// and adds its results to it.
//
// Design decision: We keep the step pattern even for a three-stage job
// because:
// 1. Each stage can be tested against a hand-built Run without the others
// 2. Logging, cancellation and error recording live in one place
// 3. The CLI can report which stages ran when a run fails part way
//
// Steps run strictly in order and the pipeline stops at the first failing
// step. No stage runs concurrently with another.
package pipeline
