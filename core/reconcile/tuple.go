package reconcile

import (
	"strconv"
	"strings"

	"table-reconciler/core/utils"
)

// Tuple is one projected row as scanned from the database.
type Tuple []any

// Strings stringifies every value, keeping NULL as nil.
func (t Tuple) Strings() []*string {
	out := make([]*string, len(t))
	for i, v := range t {
		out[i] = utils.Stringify(v)
	}
	return out
}

// Key encodes the stringified tuple unambiguously. Two tuples share a key
// exactly when they are NULL-safe equal value by value.
func (t Tuple) Key() string {
	var b strings.Builder
	for _, v := range t.Strings() {
		if v == nil {
			b.WriteString("N;")
			continue
		}
		b.WriteByte('S')
		b.WriteString(strconv.Itoa(len(*v)))
		b.WriteByte(':')
		b.WriteString(*v)
		b.WriteByte(';')
	}
	return b.String()
}

// clone copies a scanned row so the caller's buffer can be reused.
func (t Tuple) clone() Tuple {
	out := make(Tuple, len(t))
	copy(out, t)
	return out
}

// compareStrings orders stringified tuples lexicographically, value by value.
// NULL sorts before any string and a shorter tuple before its extensions.
func compareStrings(a, b []*string) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		switch {
		case a[i] == nil && b[i] == nil:
			continue
		case a[i] == nil:
			return -1
		case b[i] == nil:
			return 1
		}
		if c := strings.Compare(*a[i], *b[i]); c != 0 {
			return c
		}
	}
	return len(a) - len(b)
}
