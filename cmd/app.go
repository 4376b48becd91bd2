package cmd

import (
	"context"
	"fmt"

	"table-reconciler/core/catalog"
	"table-reconciler/core/config"
	"table-reconciler/core/database"
	"table-reconciler/core/logger"
	"table-reconciler/core/reconcile"
	"table-reconciler/core/storage"
	"table-reconciler/feature/compare"
	"table-reconciler/feature/results"
	"table-reconciler/feature/rules"
	"table-reconciler/feature/samples"

	"go.uber.org/zap"
)

// app holds the components shared by every command.
type app struct {
	cfg     *config.Config
	log     *zap.Logger
	catalog *catalog.SQL
	client  storage.Client
	rules   rules.Store
	results *results.Reader
	samples samples.Store
	service *compare.Service
}

// needsStorage reports whether the configuration uses object storage.
func needsStorage(cfg reconcile.Config) bool {
	return cfg.SampleSink == reconcile.SinkStorage || cfg.ReportBucket != ""
}

// newApp loads configuration, applies overrides and wires the database,
// storage and services.
func newApp(ctx context.Context, overrides ...func(*config.Config)) (*app, error) {
	cfg, err := config.LoadConfig(configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	for _, o := range overrides {
		o(cfg)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("database connection required: %w", err)
	}
	cat := catalog.New(db, logg)

	a := &app{cfg: cfg, log: logg, catalog: cat, results: results.NewReader(db)}

	if needsStorage(cfg.Compare) {
		a.client, err = storage.NewClient(cfg.Storage)
		if err != nil {
			return nil, fmt.Errorf("failed to create storage client: %w", err)
		}
		buckets := []string{}
		if cfg.Compare.SampleSink == reconcile.SinkStorage {
			buckets = append(buckets, cfg.Storage.Bucket)
		}
		if cfg.Compare.ReportBucket != "" {
			buckets = append(buckets, cfg.Compare.ReportBucket)
		}
		for _, b := range buckets {
			if err := storage.EnsureBucket(ctx, a.client, b, cfg.Storage.Region); err != nil {
				return nil, err
			}
		}
	}

	a.rules, err = rules.NewStore(cfg.Compare, db)
	if err != nil {
		return nil, err
	}
	a.samples, err = samples.NewStore(cfg.Compare, cat, a.client, cfg.Storage.Bucket)
	if err != nil {
		return nil, err
	}

	engine := reconcile.NewEngine(a.rules, cat, results.NewRecorder(db), a.samples, logg, reconcile.Options{
		OutputLocation: cfg.Compare.OutputLocation,
		RunIDFormat:    cfg.Compare.RunIDFormat,
	})

	var exporter compare.ReportExporter
	if cfg.Compare.ReportBucket != "" {
		exporter = results.NewExporter(a.client, cfg.Compare.ReportBucket)
	}
	a.service = compare.NewService(engine, a.rules, a.results, a.samples, exporter, logg)
	return a, nil
}
