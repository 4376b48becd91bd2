// Package results owns the comparison_results table, the per-rule result surface.
//
// Recorder implements reconcile.Recorder: every step of a rule updates the
// rule's single row in place and stamps run_date, so a reader always sees
// the latest values even while a run is in progress. Begin creates the row
// on a rule's first run and otherwise clears the previous run's values.
//
// Reader lists and fetches rows. Reports are JSON snapshots of every row
// after a run, exported to object storage when a report bucket is configured.
package results
