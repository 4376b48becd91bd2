package samples

import (
	"context"
	"fmt"

	"table-reconciler/core/catalog"
	"table-reconciler/core/reconcile"
	"table-reconciler/core/utils"
)

// SQLStore keeps datasets as database tables.
type SQLStore struct {
	cat *catalog.SQL
}

// NewSQLStore creates a store writing through the catalog's connection.
func NewSQLStore(cat *catalog.SQL) *SQLStore {
	return &SQLStore{cat: cat}
}

// Write replaces the table with the dataset's rows.
func (s *SQLStore) Write(ctx context.Context, ds reconcile.Dataset) error {
	d := s.cat.Dialect()
	loc, table := ds.Name.Location, ds.Name.Table

	if err := s.cat.Exec(ctx, d.DropTable(loc, table)); err != nil {
		return err
	}
	if err := s.cat.Exec(ctx, d.CreateTextTable(loc, table, ds.Columns)); err != nil {
		return err
	}
	for _, row := range ds.Rows {
		values := make([]any, len(row))
		for i, v := range row {
			if v != nil {
				values[i] = *v
			}
		}
		if err := s.cat.Exec(ctx, d.Insert(loc, table, ds.Columns, values)); err != nil {
			return err
		}
	}
	return nil
}

// Read loads the table back as a dataset.
func (s *SQLStore) Read(ctx context.Context, name reconcile.DatasetName) (*reconcile.Dataset, error) {
	ref := reconcile.TableRef{Schema: name.Location, Table: name.Table}
	cols, err := s.cat.Columns(ctx, ref)
	if err != nil {
		return nil, err
	}
	if len(cols) == 0 {
		return nil, fmt.Errorf("dataset %s: %w", name, ErrNotFound)
	}

	ds := &reconcile.Dataset{Name: name, Columns: cols, Rows: [][]*string{}}
	err = s.cat.Select(ctx, ref, cols, nil, 0, func(row []any) error {
		values := make([]*string, len(row))
		for i, v := range row {
			values[i] = utils.Stringify(v)
		}
		ds.Rows = append(ds.Rows, values)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ds, nil
}
