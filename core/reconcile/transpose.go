package reconcile

import (
	"sort"
	"strconv"

	"table-reconciler/core/utils"
)

// MatchStatus classifies one column of a transposed sample.
type MatchStatus string

const (
	Match    MatchStatus = "MATCH"
	Mismatch MatchStatus = "MISMATCH"
)

// TransposedRow is one column of the anchor comparison.
type TransposedRow struct {
	RunID       string      `json:"run_id"`
	RuleID      int64       `json:"rule_id"`
	Column      string      `json:"column_name"`
	SourceValue *string     `json:"src_value"`
	TargetValue *string     `json:"tgt_value"`
	Status      MatchStatus `json:"match_status"`
	Key         []*string   `json:"key"`
}

// Transpose pivots a sample into one row per column name found in either
// record, ordered by column name. Values are compared as strings with two
// NULLs counting as a match. Key values are taken from the resolved key and
// repeated on every row.
func Transpose(s *Sample) []TransposedRow {
	src := recordMap(s.Columns, s.Source)
	tgt := recordMap(s.Columns, s.Target)

	names := make([]string, 0, len(src))
	seen := make(map[string]struct{}, len(src))
	for _, m := range []map[string]*string{src, tgt} {
		for name := range m {
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			names = append(names, name)
		}
	}
	sort.Strings(names)

	key := make([]*string, len(s.Key.Values))
	for i, v := range s.Key.Values {
		key[i] = utils.Stringify(v)
	}

	rows := make([]TransposedRow, 0, len(names))
	for _, name := range names {
		sv, tv := src[name], tgt[name]
		status := Mismatch
		if utils.EqualNullSafe(sv, tv) {
			status = Match
		}
		rows = append(rows, TransposedRow{
			RunID:       s.RunID,
			RuleID:      s.RuleID,
			Column:      name,
			SourceValue: sv,
			TargetValue: tv,
			Status:      status,
			Key:         key,
		})
	}
	return rows
}

// recordMap maps column names to stringified values. A record that was not
// found still maps every column, to NULL.
func recordMap(columns []string, rec SampleRecord) map[string]*string {
	m := make(map[string]*string, len(columns))
	for i, c := range columns {
		if rec.Found && i < len(rec.Values) {
			m[c] = utils.Stringify(rec.Values[i])
			continue
		}
		m[c] = nil
	}
	return m
}

// TransposedDataset lays transposed rows out as RUN_ID, RULE_ID, COLUMN_NAME,
// SRC_VALUE, TGT_VALUE, MATCH_STATUS and the PK_ columns.
func TransposedDataset(name DatasetName, key KeyValues, rows []TransposedRow) Dataset {
	cols := []string{"RUN_ID", "RULE_ID", "COLUMN_NAME", "SRC_VALUE", "TGT_VALUE", "MATCH_STATUS"}
	cols = append(cols, key.KeyColumnNames()...)

	out := make([][]*string, 0, len(rows))
	for _, r := range rows {
		runID := r.RunID
		ruleID := strconv.FormatInt(r.RuleID, 10)
		column := r.Column
		status := string(r.Status)
		row := []*string{&runID, &ruleID, &column, r.SourceValue, r.TargetValue, &status}
		row = append(row, r.Key...)
		out = append(out, row)
	}
	return Dataset{Name: name, Columns: cols, Rows: out}
}
