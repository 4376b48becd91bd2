package results

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"table-reconciler/core/reconcile"

	"gorm.io/gorm"
)

// ErrNotFound is returned when a rule has no result row.
var ErrNotFound = errors.New("result not found")

// Reader queries the result table.
type Reader struct {
	db *gorm.DB
}

// NewReader creates a reader over the result table.
func NewReader(db *gorm.DB) *Reader {
	return &Reader{db: db}
}

// List returns every result, most recent run first.
func (r *Reader) List(ctx context.Context) ([]reconcile.Result, error) {
	var rows []ComparisonResult
	if err := r.db.WithContext(ctx).Order("run_date DESC").Order("rule_id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list results: %w", err)
	}
	out := make([]reconcile.Result, len(rows))
	for i, row := range rows {
		out[i] = row.ToResult()
	}
	return out, nil
}

// Get returns the result of one rule.
func (r *Reader) Get(ctx context.Context, ruleID int64) (*reconcile.Result, error) {
	var row ComparisonResult
	err := r.db.WithContext(ctx).Where("rule_id = ?", ruleID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("rule %d: %w", ruleID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get result of rule %d: %w", ruleID, err)
	}
	res := row.ToResult()
	return &res, nil
}

// FailuresFirst orders results so anything not PASS comes first, keeping
// the relative order otherwise.
func FailuresFirst(results []reconcile.Result) {
	rank := func(r reconcile.Result) int {
		switch {
		case r.Status == nil:
			return 2
		case *r.Status == reconcile.StatusPass:
			return 1
		default:
			return 0
		}
	}
	sort.SliceStable(results, func(i, j int) bool { return rank(results[i]) < rank(results[j]) })
}
