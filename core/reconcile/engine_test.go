package reconcile

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(rules []Rule, cat *memCatalog) (*Engine, *memRecorder, *memSink) {
	rec := newMemRecorder()
	sink := newMemSink()
	eng := NewEngine(memRules{rules: rules}, cat, rec, sink, nil, Options{
		OutputLocation: "UTIL",
		RunIDFormat:    RunIDTimestamp,
		Now:            func() time.Time { return fixedNow },
	})
	return eng, rec, sink
}

func basicRule(id int64) Rule {
	return Rule{
		ID:         id,
		Source:     TableRef{Schema: "SRC", Table: "CUSTOMERS"},
		Target:     TableRef{Schema: "TGT", Table: "CUSTOMERS"},
		PrimaryKey: []string{"ID"},
		Active:     true,
	}
}

// TestEngine_SingleMismatch compares two rows where one value differs.
func TestEngine_SingleMismatch(t *testing.T) {
	cat := newMemCatalog()
	cat.add("SRC", "CUSTOMERS", []string{"ID", "NAME"}, []any{1, "A"}, []any{2, "B"})
	cat.add("TGT", "CUSTOMERS", []string{"ID", "NAME"}, []any{1, "A"}, []any{2, "C"})

	eng, rec, sink := newTestEngine([]Rule{basicRule(7)}, cat)
	summary, err := eng.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Processed rows: 1; RUN_ID="+fixedRunID, summary.String())

	res := rec.results[7]
	require.NotNil(t, res)
	assert.Equal(t, int64(2), *res.SourceCount)
	assert.Equal(t, int64(2), *res.TargetCount)
	assert.Equal(t, int64(2), *res.DiffCount)
	assert.Equal(t, StatusFail, *res.Status)
	assert.Equal(t, "UTIL.SAMPLE_7_"+fixedRunID+",UTIL.SAMPLE_T_7_"+fixedRunID, *res.SampleOutput)
	assert.Equal(t, fixedRunID, *res.RunID)

	smp, ok := sink.datasets["UTIL.SAMPLE_7_"+fixedRunID]
	require.True(t, ok)
	assert.Equal(t, []string{"RUN_ID", "RULE_ID", "SIDE", "ID", "NAME", "PK_ID"}, smp.Columns)
	require.Len(t, smp.Rows, 2)
	assert.Equal(t, []string{fixedRunID, "7", "SOURCE", "2", "B", "2"}, strs(smp.Rows[0]))
	assert.Equal(t, []string{fixedRunID, "7", "TARGET", "2", "C", "2"}, strs(smp.Rows[1]))

	tr, ok := sink.datasets["UTIL.SAMPLE_T_7_"+fixedRunID]
	require.True(t, ok)
	require.Len(t, tr.Rows, 2)
	assert.Equal(t, []string{fixedRunID, "7", "ID", "2", "2", "MATCH", "2"}, strs(tr.Rows[0]))
	assert.Equal(t, []string{fixedRunID, "7", "NAME", "B", "C", "MISMATCH", "2"}, strs(tr.Rows[1]))
}

// TestEngine_StepOrder checks the record is written step by step in a fixed order.
func TestEngine_StepOrder(t *testing.T) {
	cat := newMemCatalog()
	cat.add("SRC", "CUSTOMERS", []string{"ID", "NAME"}, []any{1, "A"})
	cat.add("TGT", "CUSTOMERS", []string{"ID", "NAME"}, []any{1, "B"})

	eng, rec, _ := newTestEngine([]Rule{basicRule(1)}, cat)
	_, err := eng.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"begin:1", "counts:1", "diff:1", "sample:1", "sample:1", "status:1"}, rec.events)
}

func TestEngine_Pass(t *testing.T) {
	cat := newMemCatalog()
	cat.add("SRC", "CUSTOMERS", []string{"ID", "NAME"}, []any{1, "A"}, []any{2, "B"})
	cat.add("TGT", "CUSTOMERS", []string{"ID", "NAME"}, []any{2, "B"}, []any{1, "A"})

	eng, rec, sink := newTestEngine([]Rule{basicRule(1)}, cat)
	_, err := eng.Run(context.Background())
	require.NoError(t, err)

	res := rec.results[1]
	assert.Equal(t, int64(0), *res.DiffCount)
	assert.Equal(t, StatusPass, *res.Status)
	assert.Nil(t, res.SampleOutput)
	assert.Empty(t, sink.datasets)
}

// TestEngine_DuplicatesCollapse shows diff_count is a set difference while counts are not.
func TestEngine_DuplicatesCollapse(t *testing.T) {
	cat := newMemCatalog()
	cat.add("SRC", "T", []string{"ID"}, []any{1}, []any{1}, []any{2})
	cat.add("TGT", "T", []string{"ID"}, []any{1}, []any{2})

	rule := Rule{ID: 1, Source: TableRef{Schema: "SRC", Table: "T"}, Target: TableRef{Schema: "TGT", Table: "T"}}
	eng, rec, _ := newTestEngine([]Rule{rule}, cat)
	_, err := eng.Run(context.Background())
	require.NoError(t, err)

	res := rec.results[1]
	assert.Equal(t, int64(3), *res.SourceCount)
	assert.Equal(t, int64(2), *res.TargetCount)
	assert.Equal(t, int64(0), *res.DiffCount)
	assert.Equal(t, StatusFail, *res.Status)
}

func TestEngine_BothEmpty(t *testing.T) {
	cat := newMemCatalog()
	cat.add("SRC", "CUSTOMERS", []string{"ID", "NAME"})
	cat.add("TGT", "CUSTOMERS", []string{"ID", "NAME"})

	eng, rec, _ := newTestEngine([]Rule{basicRule(1)}, cat)
	_, err := eng.Run(context.Background())
	require.NoError(t, err)

	res := rec.results[1]
	assert.Equal(t, int64(0), *res.SourceCount)
	assert.Equal(t, int64(0), *res.DiffCount)
	assert.Equal(t, StatusFail, *res.Status)
}

func TestEngine_NoPrimaryKey(t *testing.T) {
	cat := newMemCatalog()
	cat.add("SRC", "CUSTOMERS", []string{"ID", "NAME"}, []any{1, "A"})
	cat.add("TGT", "CUSTOMERS", []string{"ID", "NAME"}, []any{1, "B"})

	rule := basicRule(3)
	rule.PrimaryKey = nil
	eng, rec, sink := newTestEngine([]Rule{rule}, cat)
	_, err := eng.Run(context.Background())
	require.NoError(t, err)

	res := rec.results[3]
	assert.Equal(t, SampleNoPrimaryKey, *res.SampleOutput)
	assert.Equal(t, StatusFail, *res.Status)
	assert.Empty(t, sink.datasets)
}

func TestEngine_EmptyProjection(t *testing.T) {
	tests := []struct {
		name  string
		setup func(cat *memCatalog, rule *Rule)
	}{
		{
			name: "all source columns ignored",
			setup: func(cat *memCatalog, rule *Rule) {
				rule.SourceIgnore = []string{"id", "Name"}
			},
		},
		{
			name: "target table missing",
			setup: func(cat *memCatalog, rule *Rule) {
				rule.Target.Table = "MISSING"
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cat := newMemCatalog()
			cat.add("SRC", "CUSTOMERS", []string{"ID", "NAME"}, []any{1, "A"})
			cat.add("TGT", "CUSTOMERS", []string{"ID", "NAME"}, []any{1, "A"})
			rule := basicRule(4)
			tt.setup(cat, &rule)

			eng, rec, _ := newTestEngine([]Rule{rule}, cat)
			_, err := eng.Run(context.Background())
			require.NoError(t, err)

			res := rec.results[4]
			assert.Equal(t, StatusError, *res.Status)
			assert.Nil(t, res.SourceCount)
			assert.Nil(t, res.DiffCount)
			assert.Equal(t, []string{"begin:4", "status:4"}, rec.events)
		})
	}
}

// TestEngine_KeyOutsideProjection resolves the key from the source table when it is ignored.
func TestEngine_KeyOutsideProjection(t *testing.T) {
	cat := newMemCatalog()
	cat.add("SRC", "CUSTOMERS", []string{"ID", "NAME"}, []any{1, "A"}, []any{2, "B"})
	cat.add("TGT", "CUSTOMERS", []string{"ID", "NAME"}, []any{1, "A"}, []any{2, "C"})

	rule := basicRule(5)
	rule.SourceIgnore = []string{"id"}
	rule.TargetIgnore = []string{"ID"}
	eng, rec, sink := newTestEngine([]Rule{rule}, cat)
	_, err := eng.Run(context.Background())
	require.NoError(t, err)

	res := rec.results[5]
	assert.Equal(t, int64(2), *res.DiffCount)
	assert.Equal(t, StatusFail, *res.Status)

	tr := sink.datasets["UTIL.SAMPLE_T_5_"+fixedRunID]
	require.Len(t, tr.Rows, 1)
	assert.Equal(t, []string{fixedRunID, "5", "NAME", "B", "C", "MISMATCH", "2"}, strs(tr.Rows[0]))
}

// TestEngine_KeyFromTarget falls back to the target table when the anchor is target-only.
func TestEngine_KeyFromTarget(t *testing.T) {
	cat := newMemCatalog()
	cat.add("SRC", "CUSTOMERS", []string{"ID", "NAME"}, []any{1, "A"}, []any{2, "Z"})
	cat.add("TGT", "CUSTOMERS", []string{"ID", "NAME"}, []any{1, "A"}, []any{3, "B"})

	rule := basicRule(6)
	rule.SourceIgnore = []string{"ID"}
	rule.TargetIgnore = []string{"ID"}
	eng, rec, sink := newTestEngine([]Rule{rule}, cat)
	_, err := eng.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StatusFail, *rec.results[6].Status)

	smp := sink.datasets["UTIL.SAMPLE_6_"+fixedRunID]
	require.Len(t, smp.Rows, 2)
	assert.Equal(t, []string{fixedRunID, "6", "SOURCE", "<nil>", "3"}, strs(smp.Rows[0]))
	assert.Equal(t, []string{fixedRunID, "6", "TARGET", "B", "3"}, strs(smp.Rows[1]))

	tr := sink.datasets["UTIL.SAMPLE_T_6_"+fixedRunID]
	require.Len(t, tr.Rows, 1)
	assert.Equal(t, []string{fixedRunID, "6", "NAME", "<nil>", "B", "MISMATCH", "3"}, strs(tr.Rows[0]))
}

func orderMapRule(id int64) Rule {
	return Rule{
		ID:         id,
		Source:     TableRef{Schema: "SRC", Table: "ORDERS"},
		Target:     TableRef{Schema: "TGT", Table: "ORDERS"},
		PrimaryKey: []string{"ID"},
		Columns: []ColumnPair{
			{Source: "ID", Target: "ORDER_ID"},
			{Source: "NAME", Target: "NAME"},
		},
		Active: true,
	}
}

// TestEngine_ColumnMapKey samples through a key column renamed on the target side.
func TestEngine_ColumnMapKey(t *testing.T) {
	cat := newMemCatalog()
	cat.add("SRC", "ORDERS", []string{"ID", "NAME"}, []any{1, "A"}, []any{2, "B"})
	cat.add("TGT", "ORDERS", []string{"ORDER_ID", "NAME"}, []any{1, "A"}, []any{2, "C"})

	eng, rec, sink := newTestEngine([]Rule{orderMapRule(8)}, cat)
	_, err := eng.Run(context.Background())
	require.NoError(t, err)

	res := rec.results[8]
	assert.Equal(t, int64(2), *res.DiffCount)
	assert.Equal(t, StatusFail, *res.Status)
	assert.Equal(t, "UTIL.SAMPLE_8_"+fixedRunID+",UTIL.SAMPLE_T_8_"+fixedRunID, *res.SampleOutput)

	smp := sink.datasets["UTIL.SAMPLE_8_"+fixedRunID]
	assert.Equal(t, []string{"RUN_ID", "RULE_ID", "SIDE", "ID", "NAME", "PK_ID"}, smp.Columns)
	require.Len(t, smp.Rows, 2)
	assert.Equal(t, []string{fixedRunID, "8", "SOURCE", "2", "B", "2"}, strs(smp.Rows[0]))
	assert.Equal(t, []string{fixedRunID, "8", "TARGET", "2", "C", "2"}, strs(smp.Rows[1]))

	tr := sink.datasets["UTIL.SAMPLE_T_8_"+fixedRunID]
	require.Len(t, tr.Rows, 2)
	assert.Equal(t, []string{fixedRunID, "8", "ID", "2", "2", "MATCH", "2"}, strs(tr.Rows[0]))
	assert.Equal(t, []string{fixedRunID, "8", "NAME", "B", "C", "MISMATCH", "2"}, strs(tr.Rows[1]))
}

// TestEngine_ColumnMapKeyOutsideProjection looks the key up and reads the
// target through the mapped name when the key column is ignored on both sides.
func TestEngine_ColumnMapKeyOutsideProjection(t *testing.T) {
	cat := newMemCatalog()
	cat.add("SRC", "ORDERS", []string{"ID", "NAME"}, []any{1, "A"}, []any{2, "B"})
	cat.add("TGT", "ORDERS", []string{"ORDER_ID", "NAME"}, []any{1, "A"}, []any{2, "C"})

	rule := orderMapRule(9)
	rule.SourceIgnore = []string{"ID"}
	rule.TargetIgnore = []string{"order_id"}
	eng, rec, sink := newTestEngine([]Rule{rule}, cat)
	_, err := eng.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StatusFail, *rec.results[9].Status)

	smp := sink.datasets["UTIL.SAMPLE_9_"+fixedRunID]
	require.Len(t, smp.Rows, 2)
	assert.Equal(t, []string{fixedRunID, "9", "SOURCE", "B", "2"}, strs(smp.Rows[0]))
	assert.Equal(t, []string{fixedRunID, "9", "TARGET", "C", "2"}, strs(smp.Rows[1]))

	tr := sink.datasets["UTIL.SAMPLE_T_9_"+fixedRunID]
	require.Len(t, tr.Rows, 1)
	assert.Equal(t, []string{fixedRunID, "9", "NAME", "B", "C", "MISMATCH", "2"}, strs(tr.Rows[0]))
}

func TestEngine_KeyNotFound(t *testing.T) {
	cat := newMemCatalog()
	cat.hideFiltered = true
	cat.add("SRC", "CUSTOMERS", []string{"ID", "NAME"}, []any{1, "A"})
	cat.add("TGT", "CUSTOMERS", []string{"ID", "NAME"}, []any{1, "B"})

	rule := basicRule(8)
	rule.SourceIgnore = []string{"ID"}
	rule.TargetIgnore = []string{"ID"}
	eng, rec, sink := newTestEngine([]Rule{rule}, cat)
	_, err := eng.Run(context.Background())
	require.NoError(t, err)

	res := rec.results[8]
	assert.Equal(t, SampleKeyNotFound, *res.SampleOutput)
	assert.Equal(t, StatusFail, *res.Status)
	assert.Empty(t, sink.datasets)
}

// TestEngine_StoreFailureContinues records ERROR for a failing rule and keeps going.
func TestEngine_StoreFailureContinues(t *testing.T) {
	cat := newMemCatalog()
	cat.add("SRC", "CUSTOMERS", []string{"ID", "NAME"}, []any{1, "A"})
	cat.add("TGT", "CUSTOMERS", []string{"ID", "NAME"}, []any{1, "A"})
	cat.add("SRC", "BROKEN", []string{"ID"}, []any{1})
	cat.add("TGT", "BROKEN", []string{"ID"}, []any{1})
	cat.fail["TGT.BROKEN"] = fmt.Errorf("connection reset")

	broken := Rule{ID: 1, Source: TableRef{Schema: "SRC", Table: "BROKEN"}, Target: TableRef{Schema: "TGT", Table: "BROKEN"}}
	eng, rec, _ := newTestEngine([]Rule{broken, basicRule(2)}, cat)
	summary, err := eng.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Processed)

	assert.Equal(t, StatusError, *rec.results[1].Status)
	assert.Equal(t, StatusPass, *rec.results[2].Status)
}

func TestEngine_SinkFailureIsError(t *testing.T) {
	cat := newMemCatalog()
	cat.add("SRC", "CUSTOMERS", []string{"ID", "NAME"}, []any{1, "A"})
	cat.add("TGT", "CUSTOMERS", []string{"ID", "NAME"}, []any{1, "B"})

	eng, rec, sink := newTestEngine([]Rule{basicRule(1)}, cat)
	sink.err = fmt.Errorf("disk full")
	_, err := eng.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StatusError, *rec.results[1].Status)
	assert.Equal(t, int64(1), *rec.results[1].DiffCount)
}

func TestEngine_RecorderFailureAborts(t *testing.T) {
	cat := newMemCatalog()
	cat.add("SRC", "CUSTOMERS", []string{"ID", "NAME"}, []any{1, "A"})
	cat.add("TGT", "CUSTOMERS", []string{"ID", "NAME"}, []any{1, "A"})

	eng, rec, _ := newTestEngine([]Rule{basicRule(1), basicRule(2)}, cat)
	rec.failOn = "counts"
	summary, err := eng.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "recorder down")
	assert.Equal(t, 0, summary.Processed)
	assert.NotContains(t, rec.events, "begin:2")
}

func TestEngine_RuleListFailure(t *testing.T) {
	eng := NewEngine(memRules{err: fmt.Errorf("no table")}, newMemCatalog(), newMemRecorder(), newMemSink(), nil, Options{})
	_, err := eng.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load rules")
}

// TestEngine_SharedRunID checks every rule and dataset carries the same run id.
func TestEngine_SharedRunID(t *testing.T) {
	cat := newMemCatalog()
	cat.add("SRC", "CUSTOMERS", []string{"ID", "NAME"}, []any{1, "A"})
	cat.add("TGT", "CUSTOMERS", []string{"ID", "NAME"}, []any{1, "B"})

	inactive := basicRule(2)
	inactive.Active = false
	eng, rec, sink := newTestEngine([]Rule{basicRule(1), inactive}, cat)
	summary, err := eng.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Processed)

	for _, id := range []int64{1, 2} {
		assert.Equal(t, summary.RunID, *rec.results[id].RunID)
	}
	assert.Equal(t, []string{
		"UTIL.SAMPLE_1_" + fixedRunID,
		"UTIL.SAMPLE_2_" + fixedRunID,
		"UTIL.SAMPLE_T_1_" + fixedRunID,
		"UTIL.SAMPLE_T_2_" + fixedRunID,
	}, sink.names())
}

func TestEngine_ContextCancelled(t *testing.T) {
	cat := newMemCatalog()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	eng, rec, _ := newTestEngine([]Rule{basicRule(1)}, cat)
	_, err := eng.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, rec.events)
}
