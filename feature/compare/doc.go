// Package compare exposes comparison runs and their results over HTTP.
//
// The Service wraps the comparison engine. Concurrent run requests share a
// single invocation, since runs reuse the same result rows and sample
// dataset names. After each run a report is exported when an exporter is
// configured; a failed export is logged and does not fail the run.
//
// # Routes
//
//   - POST /runs: run every rule once and return the summary
//   - GET /results: the result surface (failures_first=true puts non-PASS rows first)
//   - GET /results/:rule_id: one rule's result
//   - GET /rules: the configured rules
//   - GET /samples/:name: a sample dataset by qualified name
package compare
