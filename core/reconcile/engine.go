package reconcile

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Options configures an Engine.
type Options struct {
	// OutputLocation prefixes every sample dataset name.
	OutputLocation string
	// RunIDFormat is passed to NewRunID.
	RunIDFormat string
	// Now overrides the clock used for run identifiers.
	Now func() time.Time
}

// Engine runs one full comparison pass over every rule.
type Engine struct {
	rules    RuleSource
	catalog  Catalog
	recorder Recorder
	sink     Sink
	logger   *zap.Logger
	opts     Options

	resolver *Resolver
	differ   *Differ
	sampler  *Sampler
}

// NewEngine wires the pipeline components around a catalog.
func NewEngine(rules RuleSource, catalog Catalog, recorder Recorder, sink Sink, logger *zap.Logger, opts Options) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Engine{
		rules:    rules,
		catalog:  catalog,
		recorder: recorder,
		sink:     sink,
		logger:   logger,
		opts:     opts,
		resolver: NewResolver(catalog),
		differ:   NewDiffer(catalog),
		sampler:  NewSampler(catalog),
	}
}

// Run compares every rule in order, one at a time, and returns the number of
// rules processed with the run identifier. Per-rule problems are recorded on
// the result surface and never returned; an error means the rules could not
// be listed or a result record could not be written.
func (e *Engine) Run(ctx context.Context) (*Summary, error) {
	runID := NewRunID(e.opts.RunIDFormat, e.opts.Now())
	log := e.logger.With(zap.String("run_id", runID))
	log.Info("Starting comparison run", zap.String("output_location", e.opts.OutputLocation))

	rules, err := e.rules.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load rules: %w", err)
	}

	summary := &Summary{RunID: runID}
	for _, rule := range rules {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		if err := e.processRule(ctx, runID, rule, log); err != nil {
			return summary, err
		}
		summary.Processed++
	}

	log.Info("Comparison run finished", zap.Int("processed", summary.Processed))
	return summary, nil
}

func (e *Engine) processRule(ctx context.Context, runID string, rule Rule, log *zap.Logger) error {
	log = log.With(
		zap.Int64("rule_id", rule.ID),
		zap.String("source", rule.Source.String()),
		zap.String("target", rule.Target.String()),
	)
	log.Info("Comparing rule")
	if !rule.Active {
		log.Warn("Rule is marked inactive but is compared anyway")
	}

	if err := e.recorder.Begin(ctx, runID, rule); err != nil {
		return fmt.Errorf("rule %d: %w", rule.ID, record(err))
	}

	status, err := e.compare(ctx, runID, rule, log)
	if err != nil {
		var rerr *recordError
		if errors.As(err, &rerr) {
			return fmt.Errorf("rule %d: %w", rule.ID, err)
		}
		log.Error("Rule comparison failed", zap.Error(err))
		status = StatusError
	}

	if err := e.recorder.RecordStatus(ctx, rule.ID, status); err != nil {
		return fmt.Errorf("rule %d: %w", rule.ID, record(err))
	}
	log.Info("Rule compared", zap.String("result", string(status)))
	return nil
}

// compare runs the per-rule steps in order and returns the classification.
func (e *Engine) compare(ctx context.Context, runID string, rule Rule, log *zap.Logger) (Status, error) {
	proj, err := e.resolver.Resolve(ctx, rule)
	if err != nil {
		if errors.Is(err, ErrEmptyProjection) || errors.Is(err, ErrProjectionMismatch) {
			log.Warn("Projection could not be resolved", zap.Error(err))
			return StatusError, nil
		}
		return StatusError, err
	}

	var outcome DiffOutcome
	outcome.SourceCount, outcome.TargetCount, err = e.differ.Counts(ctx, rule)
	if err != nil {
		return StatusError, err
	}
	if err := e.recorder.RecordCounts(ctx, rule.ID, outcome.SourceCount, outcome.TargetCount); err != nil {
		return StatusError, record(err)
	}

	var anchor *Anchor
	outcome.DiffCount, anchor, err = e.differ.Diff(ctx, rule, proj)
	if err != nil {
		return StatusError, err
	}
	if err := e.recorder.RecordDiff(ctx, rule.ID, outcome.DiffCount); err != nil {
		return StatusError, record(err)
	}
	log.Info("Rule diffed",
		zap.Int64("source_count", outcome.SourceCount),
		zap.Int64("target_count", outcome.TargetCount),
		zap.Int64("diff_count", outcome.DiffCount),
	)

	if outcome.DiffCount > 0 && anchor != nil {
		if err := e.sample(ctx, runID, rule, proj, *anchor, log); err != nil {
			return StatusError, err
		}
	}

	return Classify(outcome), nil
}

// sample resolves the anchor key and writes the row and transposed datasets.
func (e *Engine) sample(ctx context.Context, runID string, rule Rule, proj Projection, anchor Anchor, log *zap.Logger) error {
	if len(rule.PrimaryKey) == 0 {
		log.Info("No primary key configured, skipping sample")
		return record(e.recorder.RecordSampleOutput(ctx, rule.ID, SampleNoPrimaryKey))
	}

	key, from, err := ResolveKey(ctx, e.catalog, rule, proj, anchor)
	if errors.Is(err, ErrKeyNotFound) {
		log.Warn("Primary key not found for anchor row", zap.String("anchor_side", string(anchor.Side)))
		return record(e.recorder.RecordSampleOutput(ctx, rule.ID, SampleKeyNotFound))
	}
	if err != nil {
		return err
	}
	log.Debug("Resolved anchor key", zap.String("from", string(from)), zap.Strings("key_columns", key.Columns))

	smp, err := e.sampler.Build(ctx, runID, rule, proj, key)
	if err != nil {
		return err
	}

	sampleName := SampleName(e.opts.OutputLocation, rule.ID, runID)
	if err := e.sink.Write(ctx, smp.Dataset(sampleName)); err != nil {
		return fmt.Errorf("write sample %s: %w", sampleName, err)
	}
	if err := e.recorder.RecordSampleOutput(ctx, rule.ID, sampleName.String()); err != nil {
		return record(err)
	}

	transposedName := TransposedName(e.opts.OutputLocation, rule.ID, runID)
	rows := Transpose(smp)
	if err := e.sink.Write(ctx, TransposedDataset(transposedName, key, rows)); err != nil {
		return fmt.Errorf("write transposed sample %s: %w", transposedName, err)
	}
	log.Info("Sample written", zap.String("sample", sampleName.String()), zap.String("transposed", transposedName.String()))

	return record(e.recorder.RecordSampleOutput(ctx, rule.ID, strings.Join([]string{sampleName.String(), transposedName.String()}, ",")))
}
