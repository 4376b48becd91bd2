// Package reconcile compares pairs of tables described by comparison rules.
//
// For every rule the engine checks row-count parity, counts the rows that
// differ between the two projected row sets, and, when rows differ, writes a
// two-record sample of one differing row plus a per-column MATCH/MISMATCH view
// of that sample.
//
// # Architecture
//
// The pipeline runs strictly sequentially, one rule fully before the next:
//
// 1. Resolver: lists each side's columns in ordinal order, drops ignored
//    columns (case-insensitive) and pairs the two sides, either by an explicit
//    column map or by position.
//
// 2. Differ: counts both tables, then computes the symmetric difference of the
//    distinct projected tuples and picks the anchor row (the differing tuple
//    that sorts first, so retries sample the same row).
//
// 3. ResolveKey and Sampler: find the anchor's primary key values (from the
//    anchor itself, else the source table, else the target table) and read
//    that key from both sides.
//
// 4. Transpose: pivots the sample into one row per column.
//
// Every step updates the rule's result record through a Recorder, so partial
// progress is visible while a run is in flight.
//
// # Failure handling
//
// An empty or misaligned projection marks the rule ERROR. Store failures
// while comparing a rule are logged and also mark it ERROR, so one broken
// table never stops the batch. Failing to list rules or to write a result
// record aborts the run.
//
// # Usage Example
//
//	engine := reconcile.NewEngine(ruleStore, catalog, recorder, sink, logger,
//	    reconcile.Options{OutputLocation: "UTIL"})
//	summary, err := engine.Run(ctx)
//	fmt.Println(summary) // Processed rows: 3; RUN_ID=20250811091523456
package reconcile
