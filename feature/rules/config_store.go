package rules

import (
	"context"
	"fmt"
	"sort"

	"table-reconciler/core/reconcile"

	"github.com/spf13/viper"
)

// entry is the YAML shape of a rule.
type entry struct {
	RuleID       int64                  `mapstructure:"rule_id"`
	Source       reconcile.TableRef     `mapstructure:"source"`
	SourceIgnore []string               `mapstructure:"source_ignore"`
	Target       reconcile.TableRef     `mapstructure:"target"`
	TargetIgnore []string               `mapstructure:"target_ignore"`
	PrimaryKey   []string               `mapstructure:"primary_key"`
	Columns      []reconcile.ColumnPair `mapstructure:"columns"`
	Active       *bool                  `mapstructure:"active"`
	Note         string                 `mapstructure:"note"`
}

// ConfigStore reads rules from the rules key of a YAML file.
type ConfigStore struct {
	path string
}

// NewConfigStore creates a store over the given file.
func NewConfigStore(path string) *ConfigStore {
	return &ConfigStore{path: path}
}

// List reads, validates and sorts the rules. The file is read on every call.
func (s *ConfigStore) List(ctx context.Context) ([]reconcile.Rule, error) {
	v := viper.New()
	v.SetConfigFile(s.path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read rules file %s: %w", s.path, err)
	}

	var entries []entry
	if err := v.UnmarshalKey("rules", &entries); err != nil {
		return nil, fmt.Errorf("failed to decode rules in %s: %w", s.path, err)
	}

	seen := make(map[int64]struct{}, len(entries))
	rules := make([]reconcile.Rule, 0, len(entries))
	for _, e := range entries {
		rule := reconcile.Rule{
			ID:           e.RuleID,
			Source:       e.Source,
			SourceIgnore: e.SourceIgnore,
			Target:       e.Target,
			TargetIgnore: e.TargetIgnore,
			PrimaryKey:   e.PrimaryKey,
			Columns:      e.Columns,
			Active:       e.Active == nil || *e.Active,
			Note:         e.Note,
		}
		if err := rule.Validate(); err != nil {
			return nil, fmt.Errorf("invalid rule in %s: %w", s.path, err)
		}
		if _, dup := seen[rule.ID]; dup {
			return nil, fmt.Errorf("duplicate rule_id %d in %s", rule.ID, s.path)
		}
		seen[rule.ID] = struct{}{}
		rules = append(rules, rule)
	}

	sort.Slice(rules, func(i, j int) bool { return rules[i].ID < rules[j].ID })
	return rules, nil
}
