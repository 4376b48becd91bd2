package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TimestampLayout is the layout used to stringify time values read from the database.
const TimestampLayout = "2006-01-02 15:04:05.999999999"

// ToInt64 converts various types to int64 using explicit type switching.
// It handles standard integer types, floats, strings, and byte slices.
func ToInt64(val any) int64 {
	switch v := val.(type) {
	case int:
		return int64(v)
	case int64:
		return v
	case int32:
		return int64(v)
	case int16:
		return int64(v)
	case int8:
		return int64(v)
	case uint:
		return int64(v)
	case uint64:
		return int64(v)
	case uint32:
		return int64(v)
	case uint16:
		return int64(v)
	case uint8:
		return int64(v)
	case float64:
		return int64(v)
	case float32:
		return int64(v)
	case string:
		i, _ := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		return i
	case []byte:
		i, _ := strconv.ParseInt(strings.TrimSpace(string(v)), 10, 64)
		return i
	default:
		s := fmt.Sprintf("%v", v)
		i, _ := strconv.ParseInt(s, 10, 64)
		return i
	}
}

// ToString converts various types to string.
// Nil converts to the empty string; use Stringify when NULL must stay distinguishable.
func ToString(val any) string {
	switch v := val.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case time.Time:
		return v.Format(TimestampLayout)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}

// Stringify converts a database value to its textual form, keeping NULL as nil.
func Stringify(val any) *string {
	if val == nil {
		return nil
	}
	s := ToString(val)
	return &s
}

// EqualNullSafe reports whether two stringified values are equal, treating two NULLs as equal.
func EqualNullSafe(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// Deref returns the string behind p, or def when p is nil.
func Deref(p *string, def string) string {
	if p == nil {
		return def
	}
	return *p
}
