package rules

import (
	"time"

	"table-reconciler/core/reconcile"
)

// MetaTableMap is one row of the rule table.
type MetaTableMap struct {
	RuleID         int64                  `gorm:"primaryKey;column:rule_id"`
	SSchema        string                 `gorm:"column:s_schema;type:varchar(255);not null"`
	STable         string                 `gorm:"column:s_table;type:varchar(255);not null"`
	SIgnoreColumns []string               `gorm:"column:s_ignore_columns;type:text;serializer:json"`
	TSchema        string                 `gorm:"column:t_schema;type:varchar(255);not null"`
	TTable         string                 `gorm:"column:t_table;type:varchar(255);not null"`
	TIgnoreColumns []string               `gorm:"column:t_ignore_columns;type:text;serializer:json"`
	PrimaryKey     []string               `gorm:"column:primary_key;type:text;serializer:json"`
	ColumnMap      []reconcile.ColumnPair `gorm:"column:column_map;type:text;serializer:json"`
	IsActive       *bool                  `gorm:"column:is_active;default:true"` // NULL reads as active
	Note           *string                `gorm:"column:note;type:text"`
	CreatedAt      time.Time              `gorm:"column:created_at"`
}

func (MetaTableMap) TableName() string {
	return "meta_table_map"
}

// ToRule converts the row into an engine rule.
func (m MetaTableMap) ToRule() reconcile.Rule {
	rule := reconcile.Rule{
		ID:           m.RuleID,
		Source:       reconcile.TableRef{Schema: m.SSchema, Table: m.STable},
		SourceIgnore: m.SIgnoreColumns,
		Target:       reconcile.TableRef{Schema: m.TSchema, Table: m.TTable},
		TargetIgnore: m.TIgnoreColumns,
		PrimaryKey:   m.PrimaryKey,
		Columns:      m.ColumnMap,
		Active:       m.IsActive == nil || *m.IsActive,
	}
	if m.Note != nil {
		rule.Note = *m.Note
	}
	return rule
}
