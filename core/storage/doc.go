// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client for the few operations the reconciler needs:
// sample datasets stored as JSON objects and run reports. Both AWS S3 and
// self-hosted MinIO are supported.
//
// The Client interface keeps storage mockable in unit tests (see core/storage/mocks).
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	if err := storage.EnsureBucket(ctx, client, cfg.Storage.Bucket, cfg.Storage.Region); err != nil {
//	    return err
//	}
//	err = storage.PutJSON(ctx, client, cfg.Storage.Bucket, "UTIL/SAMPLE_1_R.json", ds)
package storage
