package compare

import (
	"context"
	"fmt"
	"time"

	"table-reconciler/core/reconcile"
	"table-reconciler/feature/results"
	"table-reconciler/feature/rules"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Runner executes one comparison pass.
type Runner interface {
	Run(ctx context.Context) (*reconcile.Summary, error)
}

// ResultReader reads the result surface.
type ResultReader interface {
	List(ctx context.Context) ([]reconcile.Result, error)
	Get(ctx context.Context, ruleID int64) (*reconcile.Result, error)
}

// SampleReader reads stored sample datasets.
type SampleReader interface {
	Read(ctx context.Context, name reconcile.DatasetName) (*reconcile.Dataset, error)
}

// ReportExporter uploads run reports.
type ReportExporter interface {
	Export(ctx context.Context, rep results.Report) error
}

// Service coordinates runs and read access to their outcome.
type Service struct {
	runner   Runner
	rules    rules.Store
	results  ResultReader
	samples  SampleReader
	exporter ReportExporter
	logger   *zap.Logger
	now      func() time.Time

	runs singleflight.Group
}

// NewService creates the compare service. exporter may be nil.
func NewService(runner Runner, ruleStore rules.Store, resultReader ResultReader, sampleReader SampleReader, exporter ReportExporter, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		runner:   runner,
		rules:    ruleStore,
		results:  resultReader,
		samples:  sampleReader,
		exporter: exporter,
		logger:   logger,
		now:      time.Now,
	}
}

// Run performs one comparison pass. Callers arriving while a run is in
// progress wait for it and receive its summary; shared reports that case.
func (s *Service) Run(ctx context.Context) (*reconcile.Summary, bool, error) {
	v, err, shared := s.runs.Do("run", func() (any, error) {
		summary, err := s.runner.Run(ctx)
		if err != nil {
			return nil, err
		}
		s.export(ctx, *summary)
		return summary, nil
	})
	if err != nil {
		return nil, shared, fmt.Errorf("comparison run failed: %w", err)
	}
	return v.(*reconcile.Summary), shared, nil
}

func (s *Service) export(ctx context.Context, summary reconcile.Summary) {
	if s.exporter == nil {
		return
	}
	all, err := s.results.List(ctx)
	if err != nil {
		s.logger.Warn("Failed to read results for report", zap.String("run_id", summary.RunID), zap.Error(err))
		return
	}
	rep := results.NewReport(summary, all, s.now())
	if err := s.exporter.Export(ctx, rep); err != nil {
		s.logger.Warn("Failed to export run report", zap.String("run_id", summary.RunID), zap.Error(err))
		return
	}
	s.logger.Info("Run report exported", zap.String("object", results.ObjectName(summary.RunID)))
}

// Results lists every result, optionally with failures first.
func (s *Service) Results(ctx context.Context, failuresFirst bool) ([]reconcile.Result, error) {
	list, err := s.results.List(ctx)
	if err != nil {
		return nil, err
	}
	if failuresFirst {
		results.FailuresFirst(list)
	}
	return list, nil
}

// Result returns one rule's result.
func (s *Service) Result(ctx context.Context, ruleID int64) (*reconcile.Result, error) {
	return s.results.Get(ctx, ruleID)
}

// Rules lists the configured rules.
func (s *Service) Rules(ctx context.Context) ([]reconcile.Rule, error) {
	return s.rules.List(ctx)
}

// Sample reads a dataset by its qualified name.
func (s *Service) Sample(ctx context.Context, name string) (*reconcile.Dataset, error) {
	dn, err := reconcile.ParseDatasetName(name)
	if err != nil {
		return nil, err
	}
	return s.samples.Read(ctx, dn)
}
