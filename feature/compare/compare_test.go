package compare

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"table-reconciler/core/reconcile"
	"table-reconciler/feature/results"
	"table-reconciler/feature/samples"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeRunner struct {
	calls   atomic.Int32
	release chan struct{}
	err     error
}

func (f *fakeRunner) Run(ctx context.Context) (*reconcile.Summary, error) {
	f.calls.Add(1)
	if f.release != nil {
		<-f.release
	}
	if f.err != nil {
		return nil, f.err
	}
	return &reconcile.Summary{Processed: 2, RunID: "20250811091523456"}, nil
}

type fakeRules []reconcile.Rule

func (f fakeRules) List(ctx context.Context) ([]reconcile.Rule, error) { return f, nil }

type fakeResults struct {
	list []reconcile.Result
	err  error
}

func (f *fakeResults) List(ctx context.Context) ([]reconcile.Result, error) {
	out := make([]reconcile.Result, len(f.list))
	copy(out, f.list)
	return out, f.err
}

func (f *fakeResults) Get(ctx context.Context, ruleID int64) (*reconcile.Result, error) {
	for _, r := range f.list {
		if r.RuleID == ruleID {
			return &r, nil
		}
	}
	return nil, fmt.Errorf("rule %d: %w", ruleID, results.ErrNotFound)
}

type fakeSamples map[string]reconcile.Dataset

func (f fakeSamples) Read(ctx context.Context, name reconcile.DatasetName) (*reconcile.Dataset, error) {
	ds, ok := f[name.String()]
	if !ok {
		return nil, fmt.Errorf("dataset %s: %w", name, samples.ErrNotFound)
	}
	return &ds, nil
}

type fakeExporter struct {
	reports []results.Report
	err     error
}

func (f *fakeExporter) Export(ctx context.Context, rep results.Report) error {
	f.reports = append(f.reports, rep)
	return f.err
}

func statusOf(s reconcile.Status) *reconcile.Status { return &s }
func strOf(s string) *string                        { return &s }

func testResults() *fakeResults {
	return &fakeResults{list: []reconcile.Result{
		{RuleID: 1, Status: statusOf(reconcile.StatusPass), RunID: strOf("20250811091523456")},
		{RuleID: 2, Status: statusOf(reconcile.StatusFail), RunID: strOf("20250811091523456"), SampleOutput: strOf(reconcile.SampleNoPrimaryKey)},
	}}
}

func setupTestApp(t *testing.T, runner *fakeRunner, exporter ReportExporter) (*fiber.App, *Service) {
	rules := fakeRules{{ID: 1, Source: reconcile.TableRef{Schema: "RAW", Table: "A"}, Target: reconcile.TableRef{Schema: "DW", Table: "A"}, Active: true}}
	sampleData := fakeSamples{
		"UTIL.SAMPLE_T_2_R": {Name: reconcile.DatasetName{Location: "UTIL", Table: "SAMPLE_T_2_R"}, Columns: []string{"COLUMN_NAME"}},
	}
	svc := NewService(runner, rules, testResults(), sampleData, exporter, zap.NewNop())

	app := fiber.New()
	feature := NewFeature(svc, time.Minute)
	assert.Equal(t, "compare", feature.Name())
	assert.True(t, feature.IsEnabled())
	require.NoError(t, feature.Load(app))
	return app, svc
}

func TestHandleRun(t *testing.T) {
	exporter := &fakeExporter{}
	app, _ := setupTestApp(t, &fakeRunner{}, exporter)

	resp, err := app.Test(httptest.NewRequest("POST", "/runs", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body RunResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, 2, body.Processed)
	assert.Equal(t, "Processed rows: 2; RUN_ID=20250811091523456", body.Message)
	assert.False(t, body.Shared)

	require.Len(t, exporter.reports, 1)
	assert.Equal(t, 1, exporter.reports[0].Passed)
	assert.Equal(t, 1, exporter.reports[0].Failed)
}

func TestHandleRun_Error(t *testing.T) {
	app, _ := setupTestApp(t, &fakeRunner{err: fmt.Errorf("failed to load rules")}, nil)

	resp, err := app.Test(httptest.NewRequest("POST", "/runs", nil))
	require.NoError(t, err)
	assert.Equal(t, 500, resp.StatusCode)
}

func TestService_RunExportFailureIgnored(t *testing.T) {
	_, svc := setupTestApp(t, &fakeRunner{}, &fakeExporter{err: fmt.Errorf("bucket gone")})

	summary, _, err := svc.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "20250811091523456", summary.RunID)
}

func TestService_RunShared(t *testing.T) {
	runner := &fakeRunner{release: make(chan struct{})}
	_, svc := setupTestApp(t, runner, nil)

	var wg sync.WaitGroup
	shared := make([]bool, 2)
	for i := range shared {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, s, err := svc.Run(context.Background())
			assert.NoError(t, err)
			shared[i] = s
		}(i)
	}

	// Let both callers reach the in-flight run before it completes.
	time.Sleep(100 * time.Millisecond)
	close(runner.release)
	wg.Wait()

	assert.Equal(t, int32(1), runner.calls.Load())
	assert.Equal(t, []bool{true, true}, shared)
}

func TestHandleListResults(t *testing.T) {
	app, _ := setupTestApp(t, &fakeRunner{}, nil)

	resp, err := app.Test(httptest.NewRequest("GET", "/results?failures_first=true", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body []reconcile.Result
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body, 2)
	assert.Equal(t, int64(2), body[0].RuleID)
}

func TestHandleGetResult(t *testing.T) {
	app, _ := setupTestApp(t, &fakeRunner{}, nil)

	tests := []struct {
		path       string
		wantStatus int
	}{
		{"/results/2", 200},
		{"/results/99", 404},
		{"/results/abc", 400},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest("GET", tt.path, nil))
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}
}

func TestHandleListRules(t *testing.T) {
	app, _ := setupTestApp(t, &fakeRunner{}, nil)

	resp, err := app.Test(httptest.NewRequest("GET", "/rules", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body []reconcile.Rule
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body, 1)
	assert.Equal(t, "RAW.A", body[0].Source.String())
}

func TestHandleGetSample(t *testing.T) {
	app, _ := setupTestApp(t, &fakeRunner{}, nil)

	resp, err := app.Test(httptest.NewRequest("GET", "/samples/UTIL.SAMPLE_T_2_R", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var ds reconcile.Dataset
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&ds))
	assert.Equal(t, []string{"COLUMN_NAME"}, ds.Columns)

	resp, err = app.Test(httptest.NewRequest("GET", "/samples/UTIL.SAMPLE_T_3_R", nil))
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/samples/UTIL.", nil))
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}
