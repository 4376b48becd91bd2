package reconcile

import (
	"context"
	"fmt"
	"strings"
)

// Projection is the ordered list of compared column pairs for one rule.
type Projection []ColumnPair

// Source returns the source column names in order.
func (p Projection) Source() []string {
	names := make([]string, len(p))
	for i, c := range p {
		names[i] = c.Source
	}
	return names
}

// Target returns the target column names in order.
func (p Projection) Target() []string {
	names := make([]string, len(p))
	for i, c := range p {
		names[i] = c.Target
	}
	return names
}

// Names returns the comparison column names. Source names label both sides.
func (p Projection) Names() []string {
	return p.Source()
}

// indexOf finds a column by source name, case-insensitively.
func (p Projection) indexOf(name string) int {
	for i, c := range p {
		if strings.EqualFold(c.Source, name) {
			return i
		}
	}
	return -1
}

// Resolver computes column projections from the catalog.
type Resolver struct {
	catalog Catalog
}

// NewResolver creates a resolver over the given catalog.
func NewResolver(catalog Catalog) *Resolver {
	return &Resolver{catalog: catalog}
}

// Columns returns the table's columns in ordinal order without the ignored names.
// Matching is case-insensitive. An empty result means the table has no
// comparable columns (or does not exist).
func (r *Resolver) Columns(ctx context.Context, ref TableRef, ignore []string) ([]string, error) {
	physical, err := r.catalog.Columns(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("list columns of %s: %w", ref, err)
	}
	if len(ignore) == 0 {
		return physical, nil
	}

	skip := make(map[string]struct{}, len(ignore))
	for _, name := range ignore {
		skip[strings.ToUpper(strings.TrimSpace(name))] = struct{}{}
	}

	cols := make([]string, 0, len(physical))
	for _, name := range physical {
		if _, ok := skip[strings.ToUpper(name)]; ok {
			continue
		}
		cols = append(cols, name)
	}
	return cols, nil
}

// Resolve builds the projection for both sides of a rule.
// Sides are resolved independently; explicit column pairs take precedence
// over positional pairing.
func (r *Resolver) Resolve(ctx context.Context, rule Rule) (Projection, error) {
	src, err := r.Columns(ctx, rule.Source, rule.SourceIgnore)
	if err != nil {
		return nil, err
	}
	if len(src) == 0 {
		return nil, fmt.Errorf("source %s: %w", rule.Source, ErrEmptyProjection)
	}

	tgt, err := r.Columns(ctx, rule.Target, rule.TargetIgnore)
	if err != nil {
		return nil, err
	}
	if len(tgt) == 0 {
		return nil, fmt.Errorf("target %s: %w", rule.Target, ErrEmptyProjection)
	}

	if len(rule.Columns) > 0 {
		return pairByName(rule, src, tgt)
	}

	if len(src) != len(tgt) {
		return nil, fmt.Errorf("%w: %s has %d columns, %s has %d",
			ErrProjectionMismatch, rule.Source, len(src), rule.Target, len(tgt))
	}

	proj := make(Projection, len(src))
	for i := range src {
		proj[i] = ColumnPair{Source: src[i], Target: tgt[i]}
	}
	return proj, nil
}

// pairByName keeps the configured pairs whose columns survived exclusion on both sides,
// using the physical spelling of each name.
func pairByName(rule Rule, src, tgt []string) (Projection, error) {
	srcByName := upperIndex(src)
	tgtByName := upperIndex(tgt)

	proj := make(Projection, 0, len(rule.Columns))
	for _, pair := range rule.Columns {
		s, okS := srcByName[strings.ToUpper(pair.Source)]
		t, okT := tgtByName[strings.ToUpper(pair.Target)]
		if !okS || !okT {
			continue
		}
		proj = append(proj, ColumnPair{Source: s, Target: t})
	}
	if len(proj) == 0 {
		return nil, fmt.Errorf("rule %d column map: %w", rule.ID, ErrEmptyProjection)
	}
	return proj, nil
}

func upperIndex(names []string) map[string]string {
	m := make(map[string]string, len(names))
	for _, n := range names {
		m[strings.ToUpper(n)] = n
	}
	return m
}
