// Package catalog exposes the compared tables of a GORM database to the
// comparison engine.
//
// It lists physical columns in ordinal order, counts rows and streams
// projected rows filtered by NULL-safe equality. Queries are built with
// core/sqlbuild for the connection's dialect, so identifiers are quoted and
// values are always bound as parameters.
//
// Column listing uses information_schema on MySQL and PostgreSQL and
// pragma_table_info on SQLite. A table that does not exist lists no columns.
//
// # Usage
//
//	cat := catalog.New(db, logger)
//	cols, err := cat.Columns(ctx, reconcile.TableRef{Schema: "sales", Table: "orders"})
package catalog
