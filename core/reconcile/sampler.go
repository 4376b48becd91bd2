package reconcile

import (
	"context"
	"fmt"
	"strconv"

	"table-reconciler/core/utils"
)

// SampleRecord is one side of a sample. Found is false when the side has no
// row with the resolved key; its values are then all NULL.
type SampleRecord struct {
	Side   Side
	Found  bool
	Values Tuple
}

// Sample is the two-record view of the anchor row on both sides.
type Sample struct {
	RunID   string
	RuleID  int64
	Columns []string
	Key     KeyValues
	Source  SampleRecord
	Target  SampleRecord
}

// Sampler reads anchor samples through the catalog.
type Sampler struct {
	catalog Catalog
}

// NewSampler creates a sampler over the given catalog.
func NewSampler(catalog Catalog) *Sampler {
	return &Sampler{catalog: catalog}
}

// Build reads the first row with the resolved key from each side.
func (s *Sampler) Build(ctx context.Context, runID string, rule Rule, proj Projection, key KeyValues) (*Sample, error) {
	src, err := s.read(ctx, SideSource, rule.Source, proj.Source(), key)
	if err != nil {
		return nil, err
	}
	tgt, err := s.read(ctx, SideTarget, rule.Target, proj.Target(), key)
	if err != nil {
		return nil, err
	}
	return &Sample{
		RunID:   runID,
		RuleID:  rule.ID,
		Columns: proj.Names(),
		Key:     key,
		Source:  src,
		Target:  tgt,
	}, nil
}

func (s *Sampler) read(ctx context.Context, side Side, ref TableRef, columns []string, key KeyValues) (SampleRecord, error) {
	rec := SampleRecord{Side: side, Values: make(Tuple, len(columns))}
	err := s.catalog.Select(ctx, ref, columns, key.Conds(side), 1, func(row []any) error {
		copy(rec.Values, row)
		rec.Found = true
		return nil
	})
	if err != nil {
		return SampleRecord{}, fmt.Errorf("sample %s: %w", ref, err)
	}
	return rec, nil
}

// KeyColumnNames returns the PK_<col> aliases carried on sample datasets.
func (k KeyValues) KeyColumnNames() []string {
	names := make([]string, len(k.Columns))
	for i, c := range k.Columns {
		names[i] = "PK_" + c
	}
	return names
}

// Dataset lays the sample out as RUN_ID, RULE_ID, SIDE, projected columns, PK_ columns.
func (s *Sample) Dataset(name DatasetName) Dataset {
	cols := append([]string{"RUN_ID", "RULE_ID", "SIDE"}, s.Columns...)
	cols = append(cols, s.Key.KeyColumnNames()...)

	ruleID := strconv.FormatInt(s.RuleID, 10)
	rows := make([][]*string, 0, 2)
	for _, rec := range []SampleRecord{s.Source, s.Target} {
		side := string(rec.Side)
		row := []*string{&s.RunID, &ruleID, &side}
		row = append(row, rec.Values.Strings()...)
		for _, v := range s.Key.Values {
			row = append(row, utils.Stringify(v))
		}
		rows = append(rows, row)
	}
	return Dataset{Name: name, Columns: cols, Rows: rows}
}
