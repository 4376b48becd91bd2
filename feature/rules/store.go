package rules

import (
	"context"
	"fmt"

	"table-reconciler/core/reconcile"

	"gorm.io/gorm"
)

// Store supplies comparison rules ordered by rule id.
type Store interface {
	List(ctx context.Context) ([]reconcile.Rule, error)
}

// NewStore returns the store selected by the compare configuration.
func NewStore(cfg reconcile.Config, db *gorm.DB) (Store, error) {
	switch cfg.RuleSource {
	case reconcile.RuleSourceFile:
		return NewConfigStore(cfg.RulesFile), nil
	case reconcile.RuleSourceTable, "":
		if db == nil {
			return nil, fmt.Errorf("rule source %q requires a database connection", reconcile.RuleSourceTable)
		}
		return NewTableStore(db), nil
	default:
		return nil, fmt.Errorf("unknown rule source %q", cfg.RuleSource)
	}
}

// TableStore reads rules from meta_table_map.
type TableStore struct {
	db *gorm.DB
}

// NewTableStore creates a store over the rule table.
func NewTableStore(db *gorm.DB) *TableStore {
	return &TableStore{db: db}
}

// List returns every rule ordered by rule id.
func (s *TableStore) List(ctx context.Context) ([]reconcile.Rule, error) {
	var rows []MetaTableMap
	if err := s.db.WithContext(ctx).Order("rule_id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to read rules: %w", err)
	}

	rules := make([]reconcile.Rule, 0, len(rows))
	for _, row := range rows {
		rule := row.ToRule()
		if err := rule.Validate(); err != nil {
			return nil, fmt.Errorf("invalid rule in %s: %w", MetaTableMap{}.TableName(), err)
		}
		rules = append(rules, rule)
	}
	return rules, nil
}
