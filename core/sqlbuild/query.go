package sqlbuild

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Query is a statement with its bind parameters.
type Query struct {
	SQL  string
	Args []any
}

// String renders the statement with its arguments inlined as literals, for logging.
func (q Query) String() string {
	if len(q.Args) == 0 {
		return q.SQL
	}
	var b strings.Builder
	arg := 0
	for _, r := range q.SQL {
		if r == '?' && arg < len(q.Args) {
			b.WriteString(Literal(q.Args[arg]))
			arg++
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Cond is a NULL-safe equality condition on one column.
type Cond struct {
	Column string
	Value  any
}

// NullSafeEq builds a condition matching rows where column equals value,
// with a nil value matching NULL.
func NullSafeEq(column string, value any) Cond {
	return Cond{Column: column, Value: value}
}

// Where renders conditions joined by AND. Nil values render as IS NULL
// and take no bind parameter.
func (d Dialect) Where(conds []Cond) (string, []any) {
	if len(conds) == 0 {
		return "", nil
	}
	parts := make([]string, 0, len(conds))
	args := make([]any, 0, len(conds))
	for _, c := range conds {
		if c.Value == nil {
			parts = append(parts, d.Ident(c.Column)+" IS NULL")
			continue
		}
		parts = append(parts, d.Ident(c.Column)+" = ?")
		args = append(args, c.Value)
	}
	return " WHERE " + strings.Join(parts, " AND "), args
}

// Select builds a projection query. An empty column list selects every column;
// a limit of zero or less means no limit.
func (d Dialect) Select(schema, table string, columns []string, conds []Cond, limit int) Query {
	cols := "*"
	if len(columns) > 0 {
		cols = d.IdentList(columns)
	}
	where, args := d.Where(conds)
	sql := fmt.Sprintf("SELECT %s FROM %s%s", cols, d.Table(schema, table), where)
	if limit > 0 {
		sql += " LIMIT " + strconv.Itoa(limit)
	}
	return Query{SQL: sql, Args: args}
}

// Count builds a row-count query.
func (d Dialect) Count(schema, table string) Query {
	return Query{SQL: "SELECT COUNT(*) FROM " + d.Table(schema, table)}
}

// DropTable builds a DROP TABLE IF EXISTS statement.
func (d Dialect) DropTable(schema, table string) Query {
	return Query{SQL: "DROP TABLE IF EXISTS " + d.Table(schema, table)}
}

// CreateTextTable builds a CREATE TABLE statement where every column is text.
func (d Dialect) CreateTextTable(schema, table string, columns []string) Query {
	defs := make([]string, len(columns))
	for i, c := range columns {
		defs[i] = d.Ident(c) + " " + d.TextType
	}
	return Query{SQL: fmt.Sprintf("CREATE TABLE %s (%s)", d.Table(schema, table), strings.Join(defs, ", "))}
}

// Insert builds a single-row INSERT statement.
func (d Dialect) Insert(schema, table string, columns []string, values []any) Query {
	marks := make([]string, len(columns))
	for i := range marks {
		marks[i] = "?"
	}
	return Query{
		SQL:  fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", d.Table(schema, table), d.IdentList(columns), strings.Join(marks, ", ")),
		Args: values,
	}
}

// Literal renders a value as a SQL literal, doubling embedded single quotes.
func Literal(v any) string {
	switch val := v.(type) {
	case nil:
		return "NULL"
	case *string:
		if val == nil {
			return "NULL"
		}
		return quoteString(*val)
	case string:
		return quoteString(val)
	case []byte:
		return quoteString(string(val))
	case bool:
		if val {
			return "TRUE"
		}
		return "FALSE"
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", val)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case time.Time:
		return quoteString(val.Format("2006-01-02 15:04:05.999999999"))
	default:
		return quoteString(fmt.Sprintf("%v", val))
	}
}

func quoteString(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
