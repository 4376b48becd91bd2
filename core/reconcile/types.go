package reconcile

import (
	"fmt"
	"strings"
	"time"
)

// TableRef locates a table in the data store.
type TableRef struct {
	Schema string `json:"schema" mapstructure:"schema"`
	Table  string `json:"table" mapstructure:"table"`
}

// String returns the schema-qualified name.
func (t TableRef) String() string {
	if t.Schema == "" {
		return t.Table
	}
	return t.Schema + "." + t.Table
}

// ColumnPair maps a source column to the target column it is compared with.
type ColumnPair struct {
	Source string `json:"source" mapstructure:"source"`
	Target string `json:"target" mapstructure:"target"`
}

// Rule is one configured source/target table pairing.
type Rule struct {
	// ID is the unique, stable ordering key of the rule.
	ID int64 `json:"rule_id"`

	// Source is the table treated as the reference side.
	Source TableRef `json:"source"`

	// SourceIgnore lists source columns excluded from the comparison (case-insensitive set).
	SourceIgnore []string `json:"source_ignore"`

	// Target is the table compared against the source.
	Target TableRef `json:"target"`

	// TargetIgnore lists target columns excluded from the comparison (case-insensitive set).
	TargetIgnore []string `json:"target_ignore"`

	// PrimaryKey is the ordered key used to anchor samples. Empty means no key.
	PrimaryKey []string `json:"primary_key"`

	// Columns optionally pairs source and target columns by name.
	// When empty, the resolved projections are paired by position.
	Columns []ColumnPair `json:"columns,omitempty"`

	// Active is carried from configuration but every rule is compared regardless.
	Active bool `json:"active"`

	// Note is free text describing the rule.
	Note string `json:"note"`
}

// Validate checks the fields every rule must carry.
func (r Rule) Validate() error {
	var missing []string
	if r.ID == 0 {
		missing = append(missing, "rule_id")
	}
	if r.Source.Schema == "" {
		missing = append(missing, "source schema")
	}
	if r.Source.Table == "" {
		missing = append(missing, "source table")
	}
	if r.Target.Schema == "" {
		missing = append(missing, "target schema")
	}
	if r.Target.Table == "" {
		missing = append(missing, "target table")
	}
	if len(missing) > 0 {
		return fmt.Errorf("rule %d: missing %s", r.ID, strings.Join(missing, ", "))
	}
	return nil
}

// Status is the classification of a rule's outcome.
type Status string

const (
	StatusPass  Status = "PASS"
	StatusFail  Status = "FAIL"
	StatusError Status = "ERROR"
)

// Sentinel values stored in the sample output field when no sample is written.
const (
	SampleNoPrimaryKey = "NO_PRIMARY_KEY_CONFIGURED"
	SampleKeyNotFound  = "PK_NOT_FOUND_FOR_SAMPLE"
)

// Side tags which table a sample record came from.
type Side string

const (
	SideSource Side = "SOURCE"
	SideTarget Side = "TARGET"
)

// DiffOutcome holds the counts computed for one rule.
type DiffOutcome struct {
	SourceCount int64 `json:"source_count"`
	TargetCount int64 `json:"target_count"`
	DiffCount   int64 `json:"diff_count"`
}

// Classify applies the pass rule: equal, non-zero counts and no differing rows.
func Classify(o DiffOutcome) Status {
	if o.SourceCount == o.TargetCount && o.SourceCount > 0 && o.DiffCount == 0 {
		return StatusPass
	}
	return StatusFail
}

// Result is the current-state record of a rule as exposed on the result surface.
type Result struct {
	RuleID       int64     `json:"rule_id"`
	Source       TableRef  `json:"source"`
	Target       TableRef  `json:"target"`
	SourceCount  *int64    `json:"source_count"`
	TargetCount  *int64    `json:"target_count"`
	DiffCount    *int64    `json:"diff_count"`
	Status       *Status   `json:"result"`
	SampleOutput *string   `json:"sample_output"`
	RunID        *string   `json:"run_id"`
	LastRunAt    time.Time `json:"last_run_at"`
}

// Summary is the return value of one invocation.
type Summary struct {
	Processed int    `json:"processed"`
	RunID     string `json:"run_id"`
}

// String renders the summary line returned to the caller.
func (s Summary) String() string {
	return fmt.Sprintf("Processed rows: %d; RUN_ID=%s", s.Processed, s.RunID)
}
