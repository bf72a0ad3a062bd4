// Package table provides a minimal null-aware tabular structure and readers
// for the delimited and spreadsheet formats labelmint ingests.
//
// A [Table] is an ordered set of named columns plus rows of scalar values.
// Rows expose presence-or-null access via [Row.Lookup]; missing and null
// cells are indistinguishable by design, since every consumer treats both
// as "skip this field".
package table

import (
	"strconv"
	"strings"
	"time"
)

// Row maps column names to scalar values. A nil value means the cell is
// null; consumers should use Lookup rather than indexing directly.
type Row map[string]any

// Lookup returns the string form of a field's value. The second return is
// false when the field is absent, nil, or blank, which callers must treat
// as "do not render".
func (r Row) Lookup(field string) (string, bool) {
	v, ok := r[field]
	if !ok || v == nil {
		return "", false
	}
	switch t := v.(type) {
	case string:
		if strings.TrimSpace(t) == "" {
			return "", false
		}
		return t, true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case int:
		return strconv.Itoa(t), true
	case int64:
		return strconv.FormatInt(t, 10), true
	case bool:
		return strconv.FormatBool(t), true
	case time.Time:
		return t.Format("2006-01-02"), true
	default:
		return "", false
	}
}

// Float returns a field's value as a float64, parsing string cells that
// contain numbers. The second return is false for absent, null, or
// non-numeric values.
func (r Row) Float(field string) (float64, bool) {
	v, ok := r[field]
	if !ok || v == nil {
		return 0, false
	}
	switch t := v.(type) {
	case float64:
		return t, true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// Table is an ordered collection of rows sharing a column set.
type Table struct {
	Columns []string
	Rows    []Row
}

// Empty reports whether the table has no rows.
func (t *Table) Empty() bool {
	return t == nil || len(t.Rows) == 0
}

// HasColumn reports whether the table declares the named column.
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}
