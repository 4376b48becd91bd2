package reconcile

import (
	"context"
	"fmt"
	"strings"

	"table-reconciler/core/sqlbuild"
)

// KeyValues are the resolved primary key values of an anchor row.
// Columns spells the key with source names, TargetColumns with the matching
// target names; an empty TargetColumns means the names are the same.
type KeyValues struct {
	Columns       []string
	TargetColumns []string
	Values        []any
}

// ColumnsFor returns the key column names as spelled on the given side.
func (k KeyValues) ColumnsFor(side Side) []string {
	if side == SideTarget && len(k.TargetColumns) == len(k.Columns) {
		return k.TargetColumns
	}
	return k.Columns
}

// Conds returns NULL-safe equality conditions selecting rows with this key
// on the given side.
func (k KeyValues) Conds(side Side) []sqlbuild.Cond {
	cols := k.ColumnsFor(side)
	conds := make([]sqlbuild.Cond, len(cols))
	for i, c := range cols {
		conds[i] = sqlbuild.NullSafeEq(c, k.Values[i])
	}
	return conds
}

// TargetKeyColumns spells the rule's primary key with target column names.
// Key columns are translated through the projection, then through the rule's
// column map; a column found in neither keeps its source name.
func TargetKeyColumns(rule Rule, proj Projection) []string {
	cols := make([]string, len(rule.PrimaryKey))
	for i, col := range rule.PrimaryKey {
		cols[i] = col
		if idx := proj.indexOf(col); idx >= 0 {
			cols[i] = proj[idx].Target
			continue
		}
		for _, pair := range rule.Columns {
			if strings.EqualFold(pair.Source, col) {
				cols[i] = pair.Target
				break
			}
		}
	}
	return cols
}

// KeySource records where resolved key values were read from.
type KeySource string

const (
	KeyFromAnchor KeySource = "anchor"
	KeyFromSource KeySource = "source"
	KeyFromTarget KeySource = "target"
)

// ResolveKey finds primary key values for the anchor row.
//
// When every key column is part of the projection the values are read from
// the anchor directly. Otherwise the anchor is matched (NULL-safe on every
// projected column) against the source table first and, only when that finds
// nothing, against the target table; the first matching row supplies the key.
// ErrKeyNotFound is returned when neither table matches.
func ResolveKey(ctx context.Context, catalog Catalog, rule Rule, proj Projection, anchor Anchor) (KeyValues, KeySource, error) {
	key := KeyValues{
		Columns:       rule.PrimaryKey,
		TargetColumns: TargetKeyColumns(rule, proj),
		Values:        make([]any, len(rule.PrimaryKey)),
	}

	inProjection := true
	for i, col := range rule.PrimaryKey {
		idx := proj.indexOf(col)
		if idx < 0 {
			inProjection = false
			break
		}
		key.Values[i] = anchor.Values[idx]
	}
	if inProjection {
		return key, KeyFromAnchor, nil
	}

	lookups := []struct {
		source KeySource
		ref    TableRef
		cols   []string
		key    []string
	}{
		{KeyFromSource, rule.Source, proj.Source(), key.ColumnsFor(SideSource)},
		{KeyFromTarget, rule.Target, proj.Target(), key.ColumnsFor(SideTarget)},
	}
	for _, l := range lookups {
		where := make([]sqlbuild.Cond, len(l.cols))
		for i, col := range l.cols {
			where[i] = sqlbuild.NullSafeEq(col, anchor.Values[i])
		}

		found := false
		err := catalog.Select(ctx, l.ref, l.key, where, 1, func(row []any) error {
			copy(key.Values, row)
			found = true
			return nil
		})
		if err != nil {
			return KeyValues{}, "", fmt.Errorf("resolve key in %s: %w", l.ref, err)
		}
		if found {
			return key, l.source, nil
		}
	}
	return KeyValues{}, "", ErrKeyNotFound
}
