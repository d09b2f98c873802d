package datatable

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ColumnType is the inferred type of a column, sampled once at
// construction time and cached (spec.md §3.1, §4.1).
type ColumnType int

const (
	Integer ColumnType = iota
	Float
	Text
	Boolean
	DateTime
	Null
	Mixed
)

func (t ColumnType) String() string {
	switch t {
	case Integer:
		return "Integer"
	case Float:
		return "Float"
	case Text:
		return "Text"
	case Boolean:
		return "Boolean"
	case DateTime:
		return "DateTime"
	case Null:
		return "Null"
	case Mixed:
		return "Mixed"
	default:
		return "Unknown"
	}
}

// Value is the tagged union every cell is stored as: one of the seven
// ColumnType variants, plus an Absent marker for JSON fields missing from
// a given object (spec.md §3.1). Absent is distinct from an explicit
// Null: Null means the source said "this value is null"; Absent means the
// source said nothing about this column for this row.
type Value struct {
	Type   ColumnType
	Absent bool

	i float64 // Integer/Float payload, stored widened for uniform arithmetic
	s string  // Text/Mixed payload, and the formatted DateTime/Boolean text
	b bool    // Boolean payload
	t time.Time
}

// AbsentValue returns the absent marker used for missing JSON fields.
func AbsentValue() Value { return Value{Type: Null, Absent: true} }

// NullValue returns an explicit null value.
func NullValue() Value { return Value{Type: Null} }

func IntValue(v int64) Value { return Value{Type: Integer, i: float64(v)} }

func FloatValue(v float64) Value { return Value{Type: Float, i: v} }

func TextValue(v string) Value { return Value{Type: Text, s: v} }

func BoolValue(v bool) Value { return Value{Type: Boolean, b: v, s: strconv.FormatBool(v)} }

func DateTimeValue(v time.Time) Value {
	return Value{Type: DateTime, t: v, s: v.Format(time.RFC3339)}
}

// MixedValue stores a value from a column whose type inference concluded
// Mixed; it is always compared lexically (spec.md §4.1).
func MixedValue(v string) Value { return Value{Type: Mixed, s: v} }

func (v Value) Int() int64       { return int64(v.i) }
func (v Value) Float64() float64 { return v.i }
func (v Value) Bool() bool       { return v.b }
func (v Value) Time() time.Time  { return v.t }

// String renders the value the way it should be displayed in the grid.
func (v Value) String() string {
	if v.Absent {
		return ""
	}
	switch v.Type {
	case Integer:
		return strconv.FormatInt(int64(v.i), 10)
	case Float:
		return strconv.FormatFloat(v.i, 'g', -1, 64)
	case Boolean:
		return strconv.FormatBool(v.b)
	case DateTime:
		return v.t.Format(time.RFC3339)
	case Null:
		return ""
	default: // Text, Mixed
		return v.s
	}
}

// IsNull reports whether the value is an explicit null or absent marker.
func (v Value) IsNull() bool {
	return v.Absent || v.Type == Null
}

// Compare orders two values of potentially different dynamic type. Numeric
// types compare numerically; everything else falls back to lexical string
// comparison on their displayed form, matching the Mixed-column rule of
// spec.md §4.1 generalized to cross-type comparisons.
func Compare(a, b Value) int {
	if a.IsNull() && b.IsNull() {
		return 0
	}
	if a.IsNull() {
		return -1
	}
	if b.IsNull() {
		return 1
	}
	if isNumeric(a.Type) && isNumeric(b.Type) {
		switch {
		case a.i < b.i:
			return -1
		case a.i > b.i:
			return 1
		default:
			return 0
		}
	}
	if a.Type == DateTime && b.Type == DateTime {
		switch {
		case a.t.Before(b.t):
			return -1
		case a.t.After(b.t):
			return 1
		default:
			return 0
		}
	}
	return strings.Compare(a.String(), b.String())
}

func isNumeric(t ColumnType) bool { return t == Integer || t == Float }

// CoerceNumeric attempts to read v as a float64, parsing a numeric string
// on demand for Text/Mixed columns (spec.md §4.3, "integer-string
// comparisons coerce numeric strings if possible").
func (v Value) CoerceNumeric() (float64, bool) {
	if isNumeric(v.Type) {
		return v.i, true
	}
	if v.IsNull() {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v.String()), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// ParseTime attempts to parse a value as a timestamp on demand, used by
// the query engine's cache-on-demand datetime comparisons (spec.md §4.3).
func (v Value) ParseTime() (time.Time, bool) {
	if v.Type == DateTime {
		return v.t, true
	}
	return parseISODateTime(v.String())
}

// commonLayouts are the ISO-ish layouts accepted during type inference and
// on-demand parsing.
var commonLayouts = []string{
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseISODateTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range commonLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// GoString supports fmt %#v debugging without exposing private fields in
// the normal %v/%s paths used by the grid.
func (v Value) GoString() string {
	return fmt.Sprintf("Value{Type:%s, Absent:%v, Display:%q}", v.Type, v.Absent, v.String())
}
