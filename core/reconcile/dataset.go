package reconcile

import (
	"fmt"
	"strings"
)

// DatasetName identifies a durable dataset as <location>.<table>.
type DatasetName struct {
	Location string `json:"location"`
	Table    string `json:"table"`
}

// String returns the qualified dataset name recorded on the result surface.
func (n DatasetName) String() string {
	if n.Location == "" {
		return n.Table
	}
	return n.Location + "." + n.Table
}

// ParseDatasetName splits a qualified name at its last dot.
func ParseDatasetName(s string) (DatasetName, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DatasetName{}, fmt.Errorf("empty dataset name")
	}
	i := strings.LastIndex(s, ".")
	if i < 0 {
		return DatasetName{Table: s}, nil
	}
	if i == len(s)-1 {
		return DatasetName{}, fmt.Errorf("dataset name %q has no table part", s)
	}
	return DatasetName{Location: s[:i], Table: s[i+1:]}, nil
}

// SampleName returns <location>.SAMPLE_<rule_id>_<run_id>.
func SampleName(location string, ruleID int64, runID string) DatasetName {
	return DatasetName{Location: location, Table: fmt.Sprintf("SAMPLE_%d_%s", ruleID, runID)}
}

// TransposedName returns <location>.SAMPLE_T_<rule_id>_<run_id>.
func TransposedName(location string, ruleID int64, runID string) DatasetName {
	return DatasetName{Location: location, Table: fmt.Sprintf("SAMPLE_T_%d_%s", ruleID, runID)}
}

// Dataset is a small table of stringified values; nil entries are NULL.
type Dataset struct {
	Name    DatasetName `json:"name"`
	Columns []string    `json:"columns"`
	Rows    [][]*string `json:"rows"`
}
