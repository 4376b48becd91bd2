package results

import (
	"context"
	"fmt"
	"time"

	"table-reconciler/core/reconcile"

	"gorm.io/gorm"
)

// Recorder writes rule outcomes to the result table.
type Recorder struct {
	db  *gorm.DB
	now func() time.Time
}

// NewRecorder creates a recorder over the result table.
func NewRecorder(db *gorm.DB) *Recorder {
	return &Recorder{db: db, now: time.Now}
}

// Begin creates or resets the rule's row for a new run.
func (r *Recorder) Begin(ctx context.Context, runID string, rule reconcile.Rule) error {
	now := r.now()
	res := r.db.WithContext(ctx).Model(&ComparisonResult{}).
		Where("rule_id = ?", rule.ID).
		Updates(map[string]any{
			"s_schema":            rule.Source.Schema,
			"s_table":             rule.Source.Table,
			"t_schema":            rule.Target.Schema,
			"t_table":             rule.Target.Table,
			"s_count":             nil,
			"t_count":             nil,
			"rows_different":      nil,
			"result":              nil,
			"sample_output_table": nil,
			"run_id":              runID,
			"run_date":            now,
		})
	if res.Error != nil {
		return fmt.Errorf("failed to reset result of rule %d: %w", rule.ID, res.Error)
	}
	if res.RowsAffected > 0 {
		return nil
	}

	row := ComparisonResult{
		RuleID:  rule.ID,
		SSchema: rule.Source.Schema,
		STable:  rule.Source.Table,
		TSchema: rule.Target.Schema,
		TTable:  rule.Target.Table,
		RunID:   &runID,
		RunDate: &now,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to create result of rule %d: %w", rule.ID, err)
	}
	return nil
}

// RecordCounts stores both row counts.
func (r *Recorder) RecordCounts(ctx context.Context, ruleID, sourceCount, targetCount int64) error {
	return r.update(ctx, ruleID, map[string]any{"s_count": sourceCount, "t_count": targetCount})
}

// RecordDiff stores the differing row count.
func (r *Recorder) RecordDiff(ctx context.Context, ruleID, diffCount int64) error {
	return r.update(ctx, ruleID, map[string]any{"rows_different": diffCount})
}

// RecordSampleOutput stores the sample dataset names or a sentinel.
func (r *Recorder) RecordSampleOutput(ctx context.Context, ruleID int64, output string) error {
	return r.update(ctx, ruleID, map[string]any{"sample_output_table": output})
}

// RecordStatus stores the final classification.
func (r *Recorder) RecordStatus(ctx context.Context, ruleID int64, status reconcile.Status) error {
	return r.update(ctx, ruleID, map[string]any{"result": string(status)})
}

func (r *Recorder) update(ctx context.Context, ruleID int64, fields map[string]any) error {
	fields["run_date"] = r.now()
	err := r.db.WithContext(ctx).Model(&ComparisonResult{}).
		Where("rule_id = ?", ruleID).
		Updates(fields).Error
	if err != nil {
		return fmt.Errorf("failed to update result of rule %d: %w", ruleID, err)
	}
	return nil
}
