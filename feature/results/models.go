package results

import (
	"time"

	"table-reconciler/core/reconcile"
)

// ComparisonResult is one row of the result table.
type ComparisonResult struct {
	RuleID            int64      `gorm:"primaryKey;autoIncrement:false;column:rule_id"`
	SSchema           string     `gorm:"column:s_schema;type:varchar(255)"`
	STable            string     `gorm:"column:s_table;type:varchar(255)"`
	TSchema           string     `gorm:"column:t_schema;type:varchar(255)"`
	TTable            string     `gorm:"column:t_table;type:varchar(255)"`
	SCount            *int64     `gorm:"column:s_count"`
	TCount            *int64     `gorm:"column:t_count"`
	RowsDifferent     *int64     `gorm:"column:rows_different"`
	Result            *string    `gorm:"column:result;type:varchar(16)"`
	SampleOutputTable *string    `gorm:"column:sample_output_table;type:text"`
	RunID             *string    `gorm:"column:run_id;type:varchar(64)"`
	RunDate           *time.Time `gorm:"column:run_date"`
}

func (ComparisonResult) TableName() string {
	return "comparison_results"
}

// ToResult converts the row into its API form.
func (c ComparisonResult) ToResult() reconcile.Result {
	res := reconcile.Result{
		RuleID:       c.RuleID,
		Source:       reconcile.TableRef{Schema: c.SSchema, Table: c.STable},
		Target:       reconcile.TableRef{Schema: c.TSchema, Table: c.TTable},
		SourceCount:  c.SCount,
		TargetCount:  c.TCount,
		DiffCount:    c.RowsDifferent,
		SampleOutput: c.SampleOutputTable,
		RunID:        c.RunID,
	}
	if c.Result != nil {
		status := reconcile.Status(*c.Result)
		res.Status = &status
	}
	if c.RunDate != nil {
		res.LastRunAt = *c.RunDate
	}
	return res
}
