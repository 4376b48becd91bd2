package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"table-reconciler/core/reconcile"
	"table-reconciler/core/utils"

	"github.com/jedib0t/go-pretty/v6/table"
)

const nullText = "NULL"

func renderJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newTable(w io.Writer, header ...any) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row(header))
	return t
}

func formatCount(v *int64) string {
	if v == nil {
		return nullText
	}
	return strconv.FormatInt(*v, 10)
}

func renderResults(w io.Writer, list []reconcile.Result, format string) error {
	if format == "json" {
		return renderJSON(w, list)
	}
	if len(list) == 0 {
		_, _ = fmt.Fprintln(w, "(0 rows)")
		return nil
	}

	t := newTable(w, "RULE_ID", "SOURCE", "TARGET", "S_COUNT", "T_COUNT", "ROWS_DIFFERENT", "RESULT", "SAMPLE_OUTPUT", "RUN_ID", "LAST_RUN_AT")
	for _, r := range list {
		status := nullText
		if r.Status != nil {
			status = string(*r.Status)
		}
		lastRun := ""
		if !r.LastRunAt.IsZero() {
			lastRun = r.LastRunAt.Format(utils.TimestampLayout)
		}
		t.AppendRow(table.Row{
			r.RuleID,
			r.Source.String(),
			r.Target.String(),
			formatCount(r.SourceCount),
			formatCount(r.TargetCount),
			formatCount(r.DiffCount),
			status,
			utils.Deref(r.SampleOutput, ""),
			utils.Deref(r.RunID, ""),
			lastRun,
		})
	}
	t.Render()
	_, _ = fmt.Fprintf(w, "(%d rows)\n", len(list))
	return nil
}

func renderRules(w io.Writer, list []reconcile.Rule, format string) error {
	if format == "json" {
		return renderJSON(w, list)
	}
	if len(list) == 0 {
		_, _ = fmt.Fprintln(w, "(0 rows)")
		return nil
	}

	t := newTable(w, "RULE_ID", "SOURCE", "SOURCE_IGNORE", "TARGET", "TARGET_IGNORE", "PRIMARY_KEY", "ACTIVE", "NOTE")
	for _, r := range list {
		t.AppendRow(table.Row{
			r.ID,
			r.Source.String(),
			fmt.Sprint(r.SourceIgnore),
			r.Target.String(),
			fmt.Sprint(r.TargetIgnore),
			fmt.Sprint(r.PrimaryKey),
			r.Active,
			r.Note,
		})
	}
	t.Render()
	_, _ = fmt.Fprintf(w, "(%d rows)\n", len(list))
	return nil
}

func renderDataset(w io.Writer, ds *reconcile.Dataset, format string) error {
	if format == "json" {
		return renderJSON(w, ds)
	}
	_, _ = fmt.Fprintln(w, ds.Name.String())
	if len(ds.Rows) == 0 {
		_, _ = fmt.Fprintln(w, "(0 rows)")
		return nil
	}

	header := make([]any, len(ds.Columns))
	for i, c := range ds.Columns {
		header[i] = c
	}
	t := newTable(w, header...)
	for _, row := range ds.Rows {
		r := make(table.Row, len(row))
		for i, v := range row {
			r[i] = utils.Deref(v, nullText)
		}
		t.AppendRow(r)
	}
	t.Render()
	_, _ = fmt.Fprintf(w, "(%d rows)\n", len(ds.Rows))
	return nil
}
