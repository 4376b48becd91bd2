package samples

import (
	"context"
	"errors"
	"fmt"
	"path"

	"table-reconciler/core/reconcile"
	"table-reconciler/core/storage"

	"github.com/minio/minio-go/v7"
)

// ErrNotFound is returned when a dataset does not exist.
var ErrNotFound = errors.New("dataset not found")

// ObjectStore keeps datasets as JSON objects.
type ObjectStore struct {
	client storage.Client
	bucket string
}

// NewObjectStore creates a store in the bucket.
func NewObjectStore(client storage.Client, bucket string) *ObjectStore {
	return &ObjectStore{client: client, bucket: bucket}
}

// ObjectName returns <location>/<table>.json.
func ObjectName(name reconcile.DatasetName) string {
	return path.Join(name.Location, name.Table+".json")
}

// Write uploads the dataset, replacing any previous object.
func (s *ObjectStore) Write(ctx context.Context, ds reconcile.Dataset) error {
	return storage.PutJSON(ctx, s.client, s.bucket, ObjectName(ds.Name), ds)
}

// Read downloads a dataset.
func (s *ObjectStore) Read(ctx context.Context, name reconcile.DatasetName) (*reconcile.Dataset, error) {
	var ds reconcile.Dataset
	if err := storage.GetJSON(ctx, s.client, s.bucket, ObjectName(name), &ds); err != nil {
		if minio.ToErrorResponse(errors.Unwrap(err)).Code == "NoSuchKey" {
			return nil, fmt.Errorf("dataset %s: %w", name, ErrNotFound)
		}
		return nil, err
	}
	return &ds, nil
}
