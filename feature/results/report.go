package results

import (
	"context"
	"fmt"
	"time"

	"table-reconciler/core/reconcile"
	"table-reconciler/core/storage"
)

// Report is the snapshot of the result table exported after a run.
type Report struct {
	RunID       string             `json:"run_id"`
	Processed   int                `json:"processed"`
	GeneratedAt time.Time          `json:"generated_at"`
	Passed      int                `json:"passed"`
	Failed      int                `json:"failed"`
	Errored     int                `json:"errored"`
	Results     []reconcile.Result `json:"results"`
}

// NewReport summarizes the results recorded under the run.
// Results from other runs are left out.
func NewReport(summary reconcile.Summary, all []reconcile.Result, now time.Time) Report {
	rep := Report{RunID: summary.RunID, Processed: summary.Processed, GeneratedAt: now, Results: []reconcile.Result{}}
	for _, r := range all {
		if r.RunID == nil || *r.RunID != summary.RunID {
			continue
		}
		rep.Results = append(rep.Results, r)
		if r.Status == nil {
			continue
		}
		switch *r.Status {
		case reconcile.StatusPass:
			rep.Passed++
		case reconcile.StatusFail:
			rep.Failed++
		case reconcile.StatusError:
			rep.Errored++
		}
	}
	return rep
}

// ObjectName returns the storage key of a run's report.
func ObjectName(runID string) string {
	return fmt.Sprintf("runs/%s.json", runID)
}

// Exporter uploads run reports to object storage.
type Exporter struct {
	client storage.Client
	bucket string
}

// NewExporter creates an exporter for the bucket.
func NewExporter(client storage.Client, bucket string) *Exporter {
	return &Exporter{client: client, bucket: bucket}
}

// Export writes the report to runs/<run_id>.json.
func (e *Exporter) Export(ctx context.Context, rep Report) error {
	return storage.PutJSON(ctx, e.client, e.bucket, ObjectName(rep.RunID), rep)
}
