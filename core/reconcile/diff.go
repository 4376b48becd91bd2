package reconcile

import (
	"context"
	"fmt"
)

// Anchor is the differing row chosen to build a sample.
type Anchor struct {
	// Side is the table whose projected row set holds the tuple.
	Side Side
	// Values are the projected values in projection order.
	Values Tuple
}

// Differ computes row counts and symmetric differences through the catalog.
type Differ struct {
	catalog Catalog
}

// NewDiffer creates a differ over the given catalog.
func NewDiffer(catalog Catalog) *Differ {
	return &Differ{catalog: catalog}
}

// Counts returns the cardinality of both tables.
func (d *Differ) Counts(ctx context.Context, rule Rule) (int64, int64, error) {
	src, err := d.catalog.Count(ctx, rule.Source)
	if err != nil {
		return 0, 0, fmt.Errorf("count %s: %w", rule.Source, err)
	}
	tgt, err := d.catalog.Count(ctx, rule.Target)
	if err != nil {
		return 0, 0, fmt.Errorf("count %s: %w", rule.Target, err)
	}
	return src, tgt, nil
}

// Diff returns the number of distinct projected tuples present on exactly one
// side, and the anchor: the differing tuple whose stringified form sorts first.
// Duplicates within a side collapse; the result ignores row order. The anchor
// is nil when there is no difference.
//
// Both projected tables are held in memory. Values compare by their string
// form, so numerically equal values of different types (1 and 1.00) differ.
func (d *Differ) Diff(ctx context.Context, rule Rule, proj Projection) (int64, *Anchor, error) {
	src, err := d.load(ctx, rule.Source, proj.Source())
	if err != nil {
		return 0, nil, err
	}
	tgt, err := d.load(ctx, rule.Target, proj.Target())
	if err != nil {
		return 0, nil, err
	}

	var (
		count   int64
		anchor  *Anchor
		anchorS []*string
	)
	consider := func(side Side, t Tuple) {
		count++
		s := t.Strings()
		if anchor == nil || compareStrings(s, anchorS) < 0 {
			anchor = &Anchor{Side: side, Values: t}
			anchorS = s
		}
	}

	for key, t := range src {
		if _, ok := tgt[key]; !ok {
			consider(SideSource, t)
		}
	}
	for key, t := range tgt {
		if _, ok := src[key]; !ok {
			consider(SideTarget, t)
		}
	}
	return count, anchor, nil
}

// load reads the distinct projected tuples of a table keyed by their encoding.
func (d *Differ) load(ctx context.Context, ref TableRef, columns []string) (map[string]Tuple, error) {
	set := make(map[string]Tuple)
	err := d.catalog.Select(ctx, ref, columns, nil, 0, func(row []any) error {
		t := Tuple(row)
		key := t.Key()
		if _, ok := set[key]; !ok {
			set[key] = t.clone()
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", ref, err)
	}
	return set, nil
}
