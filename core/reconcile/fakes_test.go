package reconcile

import (
	"context"
	"fmt"
	"sort"
	"time"

	"table-reconciler/core/sqlbuild"
	"table-reconciler/core/utils"
)

// memTable is an in-memory table for the fake catalog.
type memTable struct {
	cols []string
	rows [][]any
}

// memCatalog implements Catalog over in-memory tables keyed by "schema.table".
type memCatalog struct {
	tables map[string]*memTable
	// fail makes every call touching the table return the error.
	fail map[string]error
	// hideFiltered makes filtered selects return nothing.
	hideFiltered bool
	selects      []string
}

func newMemCatalog() *memCatalog {
	return &memCatalog{tables: map[string]*memTable{}, fail: map[string]error{}}
}

func (m *memCatalog) add(schema, table string, cols []string, rows ...[]any) {
	m.tables[TableRef{Schema: schema, Table: table}.String()] = &memTable{cols: cols, rows: rows}
}

func (m *memCatalog) Columns(ctx context.Context, ref TableRef) ([]string, error) {
	if err := m.fail[ref.String()]; err != nil {
		return nil, err
	}
	t, ok := m.tables[ref.String()]
	if !ok {
		return nil, nil
	}
	return append([]string(nil), t.cols...), nil
}

func (m *memCatalog) Count(ctx context.Context, ref TableRef) (int64, error) {
	if err := m.fail[ref.String()]; err != nil {
		return 0, err
	}
	t, ok := m.tables[ref.String()]
	if !ok {
		return 0, fmt.Errorf("table %s not found", ref)
	}
	return int64(len(t.rows)), nil
}

func (m *memCatalog) Select(ctx context.Context, ref TableRef, columns []string, where []sqlbuild.Cond, limit int, fn func(row []any) error) error {
	m.selects = append(m.selects, ref.String())
	if err := m.fail[ref.String()]; err != nil {
		return err
	}
	t, ok := m.tables[ref.String()]
	if !ok {
		return fmt.Errorf("table %s not found", ref)
	}
	if len(where) > 0 && m.hideFiltered {
		return nil
	}

	idx := func(name string) int {
		for i, c := range t.cols {
			if c == name {
				return i
			}
		}
		return -1
	}

	if len(columns) == 0 {
		columns = t.cols
	}
	emitted := 0
	for _, r := range t.rows {
		match := true
		for _, c := range where {
			i := idx(c.Column)
			if i < 0 {
				return fmt.Errorf("column %s not found", c.Column)
			}
			if !utils.EqualNullSafe(utils.Stringify(r[i]), utils.Stringify(c.Value)) {
				match = false
				break
			}
		}
		if !match {
			continue
		}
		out := make([]any, len(columns))
		for j, c := range columns {
			i := idx(c)
			if i < 0 {
				return fmt.Errorf("column %s not found", c)
			}
			out[j] = r[i]
		}
		if err := fn(out); err != nil {
			return err
		}
		emitted++
		if limit > 0 && emitted >= limit {
			break
		}
	}
	return nil
}

// memRecorder implements Recorder and keeps an ordered event log.
type memRecorder struct {
	results map[int64]*Result
	events  []string
	failOn  string
}

func newMemRecorder() *memRecorder {
	return &memRecorder{results: map[int64]*Result{}}
}

func (r *memRecorder) log(event string, ruleID int64) error {
	r.events = append(r.events, fmt.Sprintf("%s:%d", event, ruleID))
	if r.failOn == event {
		return fmt.Errorf("recorder down")
	}
	return nil
}

func (r *memRecorder) Begin(ctx context.Context, runID string, rule Rule) error {
	if err := r.log("begin", rule.ID); err != nil {
		return err
	}
	id := runID
	r.results[rule.ID] = &Result{RuleID: rule.ID, Source: rule.Source, Target: rule.Target, RunID: &id, LastRunAt: time.Now()}
	return nil
}

func (r *memRecorder) RecordCounts(ctx context.Context, ruleID, sourceCount, targetCount int64) error {
	if err := r.log("counts", ruleID); err != nil {
		return err
	}
	r.results[ruleID].SourceCount = &sourceCount
	r.results[ruleID].TargetCount = &targetCount
	return nil
}

func (r *memRecorder) RecordDiff(ctx context.Context, ruleID, diffCount int64) error {
	if err := r.log("diff", ruleID); err != nil {
		return err
	}
	r.results[ruleID].DiffCount = &diffCount
	return nil
}

func (r *memRecorder) RecordSampleOutput(ctx context.Context, ruleID int64, output string) error {
	if err := r.log("sample", ruleID); err != nil {
		return err
	}
	r.results[ruleID].SampleOutput = &output
	return nil
}

func (r *memRecorder) RecordStatus(ctx context.Context, ruleID int64, status Status) error {
	if err := r.log("status", ruleID); err != nil {
		return err
	}
	r.results[ruleID].Status = &status
	return nil
}

// memSink implements Sink.
type memSink struct {
	datasets map[string]Dataset
	err      error
}

func newMemSink() *memSink {
	return &memSink{datasets: map[string]Dataset{}}
}

func (s *memSink) Write(ctx context.Context, ds Dataset) error {
	if s.err != nil {
		return s.err
	}
	s.datasets[ds.Name.String()] = ds
	return nil
}

func (s *memSink) names() []string {
	names := make([]string, 0, len(s.datasets))
	for n := range s.datasets {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// memRules implements RuleSource.
type memRules struct {
	rules []Rule
	err   error
}

func (m memRules) List(ctx context.Context) ([]Rule, error) {
	return m.rules, m.err
}

var fixedNow = time.Date(2025, 8, 11, 9, 15, 23, 456000000, time.UTC)

const fixedRunID = "20250811091523456"

func str(s string) *string { return &s }

// strs flattens nullable strings for readable assertions; nil becomes "<nil>".
func strs(values []*string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = utils.Deref(v, "<nil>")
	}
	return out
}
