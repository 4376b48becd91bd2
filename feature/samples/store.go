package samples

import (
	"context"
	"fmt"

	"table-reconciler/core/catalog"
	"table-reconciler/core/reconcile"
	"table-reconciler/core/storage"
)

// Store writes and reads sample datasets.
type Store interface {
	reconcile.Sink
	// Read loads a dataset by its qualified name.
	Read(ctx context.Context, name reconcile.DatasetName) (*reconcile.Dataset, error)
}

// NewStore returns the store selected by the compare configuration.
func NewStore(cfg reconcile.Config, cat *catalog.SQL, client storage.Client, bucket string) (Store, error) {
	switch cfg.SampleSink {
	case reconcile.SinkSQL, "":
		if cat == nil {
			return nil, fmt.Errorf("sample sink %q requires a database connection", reconcile.SinkSQL)
		}
		return NewSQLStore(cat), nil
	case reconcile.SinkStorage:
		if client == nil {
			return nil, fmt.Errorf("sample sink %q requires a storage client", reconcile.SinkStorage)
		}
		return NewObjectStore(client, bucket), nil
	default:
		return nil, fmt.Errorf("unknown sample sink %q", cfg.SampleSink)
	}
}
