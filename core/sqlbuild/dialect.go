package sqlbuild

import "strings"

// Dialect captures the per-database differences the builder cares about.
type Dialect struct {
	// Name is the GORM dialector name (mysql, postgres, sqlite).
	Name string
	// Quote is the identifier quote character.
	Quote string
	// TextType is the column type used for stringified dataset columns.
	TextType string
}

var (
	MySQL    = Dialect{Name: "mysql", Quote: "`", TextType: "TEXT"}
	Postgres = Dialect{Name: "postgres", Quote: `"`, TextType: "TEXT"}
	SQLite   = Dialect{Name: "sqlite", Quote: `"`, TextType: "TEXT"}
)

// For returns the dialect for a GORM dialector name.
// Unknown names fall back to ANSI double-quoted identifiers.
func For(name string) Dialect {
	switch strings.ToLower(name) {
	case "mysql":
		return MySQL
	case "postgres", "postgresql", "pgx":
		return Postgres
	case "sqlite", "sqlite3":
		return SQLite
	default:
		return Dialect{Name: name, Quote: `"`, TextType: "TEXT"}
	}
}

// Ident quotes a single identifier, doubling embedded quote characters.
func (d Dialect) Ident(name string) string {
	return d.Quote + strings.ReplaceAll(name, d.Quote, d.Quote+d.Quote) + d.Quote
}

// Table quotes a schema-qualified table name. An empty schema yields the bare table.
func (d Dialect) Table(schema, table string) string {
	if schema == "" {
		return d.Ident(table)
	}
	return d.Ident(schema) + "." + d.Ident(table)
}

// IdentList quotes and comma-joins column names.
func (d Dialect) IdentList(columns []string) string {
	quoted := make([]string, len(columns))
	for i, c := range columns {
		quoted[i] = d.Ident(c)
	}
	return strings.Join(quoted, ", ")
}
