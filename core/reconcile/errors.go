package reconcile

import "errors"

var (
	// ErrEmptyProjection means a side resolved to no comparable columns.
	ErrEmptyProjection = errors.New("empty column projection")

	// ErrProjectionMismatch means positional pairing found different column counts.
	ErrProjectionMismatch = errors.New("source and target projections differ in arity")

	// ErrKeyNotFound means no primary key value could be resolved for the anchor row.
	ErrKeyNotFound = errors.New("primary key not found for sample")
)

// recordError marks a failure to write the result record. Unlike store
// failures while comparing, it aborts the whole invocation.
type recordError struct {
	err error
}

func (e *recordError) Error() string { return "record result: " + e.err.Error() }

func (e *recordError) Unwrap() error { return e.err }

func record(err error) error {
	if err == nil {
		return nil
	}
	return &recordError{err: err}
}
