package reconcile

import (
	"context"

	"table-reconciler/core/sqlbuild"
)

// Catalog is the data store the engine compares tables in.
// Implementations translate these capabilities into queries for a specific database.
type Catalog interface {
	// Columns lists the column names of a table in physical ordinal order.
	// A missing table yields an empty list rather than an error where the
	// database allows telling the two apart.
	Columns(ctx context.Context, ref TableRef) ([]string, error)

	// Count returns the number of rows in a table.
	Count(ctx context.Context, ref TableRef) (int64, error)

	// Select streams rows of a table restricted to columns (all when empty)
	// and filtered by NULL-safe equality conditions. A limit of zero means no limit.
	// The row slice passed to fn must not be retained without copying.
	Select(ctx context.Context, ref TableRef, columns []string, where []sqlbuild.Cond, limit int, fn func(row []any) error) error
}

// RuleSource supplies the ordered collection of comparison rules.
type RuleSource interface {
	// List returns every configured rule ordered by ID, active or not.
	List(ctx context.Context) ([]Rule, error)
}

// Recorder persists the per-rule result record. Every call updates the
// record in place and stamps the last run timestamp.
type Recorder interface {
	// Begin prepares the rule's record for a new run, creating it if needed
	// and clearing fields left over from the previous run.
	Begin(ctx context.Context, runID string, rule Rule) error

	// RecordCounts stores the row counts of both sides.
	RecordCounts(ctx context.Context, ruleID, sourceCount, targetCount int64) error

	// RecordDiff stores the differing row count.
	RecordDiff(ctx context.Context, ruleID, diffCount int64) error

	// RecordSampleOutput stores a sentinel or the comma-joined dataset names.
	RecordSampleOutput(ctx context.Context, ruleID int64, output string) error

	// RecordStatus stores the final classification.
	RecordStatus(ctx context.Context, ruleID int64, status Status) error
}

// Sink stores durable datasets (samples and transposed samples).
type Sink interface {
	// Write creates or replaces the dataset.
	Write(ctx context.Context, ds Dataset) error
}
