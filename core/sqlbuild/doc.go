// Package sqlbuild builds the dynamic SQL used by the catalog and the sample
// writers without concatenating user values into statements.
//
// Identifiers (schema, table and column names come from rule configuration)
// are quoted with the dialect quote character, doubling any embedded quote
// character. Values are always passed as bind parameters ("?", rewritten by
// GORM for dialects with numbered placeholders). Literal renders a value with
// embedded single quotes doubled and is only used to log readable statements.
//
// # Usage
//
//	d := sqlbuild.For("postgres")
//	q := d.Select("raw", "customers", []string{"id", "name"},
//	    []sqlbuild.Cond{sqlbuild.NullSafeEq("id", 2)}, 1)
//	rows, err := db.Raw(q.SQL, q.Args...).Rows()
package sqlbuild
