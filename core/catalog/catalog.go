package catalog

import (
	"context"
	"fmt"

	"table-reconciler/core/reconcile"
	"table-reconciler/core/sqlbuild"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SQL implements reconcile.Catalog over a GORM connection.
type SQL struct {
	db      *gorm.DB
	dialect sqlbuild.Dialect
	logger  *zap.Logger
}

// New creates a catalog for the connection's dialect.
func New(db *gorm.DB, logger *zap.Logger) *SQL {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SQL{db: db, dialect: sqlbuild.For(db.Dialector.Name()), logger: logger}
}

// Dialect returns the query dialect of the connection.
func (c *SQL) Dialect() sqlbuild.Dialect {
	return c.dialect
}

// Columns lists the table's column names in ordinal order.
func (c *SQL) Columns(ctx context.Context, ref reconcile.TableRef) ([]string, error) {
	var (
		query string
		args  []any
	)
	switch c.dialect.Name {
	case sqlbuild.SQLite.Name:
		schema := ref.Schema
		if schema == "" {
			schema = "main"
		}
		query = "SELECT name FROM pragma_table_info(?, ?) ORDER BY cid"
		args = []any{ref.Table, schema}
	case sqlbuild.Postgres.Name:
		query = "SELECT column_name FROM information_schema.columns WHERE table_schema = COALESCE(NULLIF(?, ''), current_schema()) AND table_name = ? ORDER BY ordinal_position"
		args = []any{ref.Schema, ref.Table}
	default:
		query = "SELECT COLUMN_NAME FROM information_schema.COLUMNS WHERE TABLE_SCHEMA = COALESCE(NULLIF(?, ''), DATABASE()) AND TABLE_NAME = ? ORDER BY ORDINAL_POSITION"
		args = []any{ref.Schema, ref.Table}
	}

	var names []string
	if err := c.db.WithContext(ctx).Raw(query, args...).Scan(&names).Error; err != nil {
		return nil, fmt.Errorf("failed to get columns for table %s: %w", ref, err)
	}
	return names, nil
}

// Count returns the number of rows in the table.
func (c *SQL) Count(ctx context.Context, ref reconcile.TableRef) (int64, error) {
	q := c.dialect.Count(ref.Schema, ref.Table)
	c.logger.Debug("Counting rows", zap.String("sql", q.SQL))

	var n int64
	if err := c.db.WithContext(ctx).Raw(q.SQL).Scan(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count rows of %s: %w", ref, err)
	}
	return n, nil
}

// Select streams matching rows to fn. Each row is a fresh slice.
func (c *SQL) Select(ctx context.Context, ref reconcile.TableRef, columns []string, where []sqlbuild.Cond, limit int, fn func(row []any) error) error {
	q := c.dialect.Select(ref.Schema, ref.Table, columns, where, limit)
	c.logger.Debug("Selecting rows", zap.String("sql", q.String()))

	rows, err := c.db.WithContext(ctx).Raw(q.SQL, q.Args...).Rows()
	if err != nil {
		return fmt.Errorf("failed to query %s: %w", ref, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return fmt.Errorf("failed to read columns of %s: %w", ref, err)
	}

	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return fmt.Errorf("failed to scan %s: %w", ref, err)
		}
		if err := fn(values); err != nil {
			return err
		}
	}
	return rows.Err()
}

// Exec runs a statement built by sqlbuild.
func (c *SQL) Exec(ctx context.Context, q sqlbuild.Query) error {
	c.logger.Debug("Executing statement", zap.String("sql", q.String()))
	if err := c.db.WithContext(ctx).Exec(q.SQL, q.Args...).Error; err != nil {
		return fmt.Errorf("failed to execute %q: %w", q.SQL, err)
	}
	return nil
}
