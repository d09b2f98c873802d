package datatable

import (
	"strconv"
	"strings"
)

// InferSampleSize is the number of non-null values sampled per column
// during type inference (spec.md §4.1: "sampling first ~100 rows per
// column").
const InferSampleSize = 100

// rawCell is the pre-typed representation a loader produces: a string
// value plus whether the source explicitly marked the field absent (JSON
// sparse objects) or literally null.
type rawCell struct {
	text    string
	absent  bool
	literal bool // true if the source already typed this (e.g. JSON bool/number)
	typ     ColumnType
	num     float64
	b       bool
}

func rawText(s string) rawCell { return rawCell{text: s} }

// BuildFromRaw infers column types from raw string/JSON cells and
// constructs a Table, implementing spec.md §4.1's inference rule: sample
// up to InferSampleSize non-null values per column; all-integer -> Integer;
// else all-float -> Float; else all-ISO-date -> DateTime; else all
// true/false (case-insensitive) -> Boolean; else Text; mixed incompatible
// types -> Mixed (stored as strings, compared lexically).
func BuildFromRaw(name string, header []string, raw [][]rawCell) (*Table, error) {
	columns := make([]ColumnSpec, len(header))
	for i, h := range header {
		columns[i] = ColumnSpec{Name: h, InferredType: inferColumn(raw, i)}
	}

	rows := make([]Row, len(raw))
	for r, rawRow := range raw {
		row := make(Row, len(header))
		for c := range header {
			if c >= len(rawRow) {
				row[c] = AbsentValue()
				continue
			}
			row[c] = materialize(rawRow[c], columns[c].InferredType)
		}
		rows[r] = row
	}
	return New(name, columns, rows)
}

func inferColumn(raw [][]rawCell, col int) ColumnType {
	sampled := 0
	sawInt, sawFloat, sawDate, sawBool, sawText := false, false, false, false, false

	for _, row := range raw {
		if col >= len(row) {
			continue
		}
		cell := row[col]
		if cell.absent || (cell.literal && cell.typ == Null) || (cell.text == "" && !cell.literal) {
			continue
		}
		if sampled >= InferSampleSize {
			break
		}
		sampled++

		switch classify(cell) {
		case Integer:
			sawInt = true
		case Float:
			sawFloat = true
		case DateTime:
			sawDate = true
		case Boolean:
			sawBool = true
		default:
			sawText = true
		}
	}

	if sampled == 0 {
		return Null
	}

	// Integers also parse as floats, so a column of integers and floats is
	// all-float, not Mixed.
	if sawInt && sawFloat {
		sawInt = false
	}

	types := 0
	if sawInt {
		types++
	}
	if sawFloat {
		types++
	}
	if sawDate {
		types++
	}
	if sawBool {
		types++
	}
	if sawText {
		types++
	}

	switch {
	case types > 1:
		return Mixed
	case sawInt:
		return Integer
	case sawFloat:
		return Float
	case sawDate:
		return DateTime
	case sawBool:
		return Boolean
	default:
		return Text
	}
}

// classify determines which single type a raw cell would be if its column
// were homogeneous. literal cells from JSON (already typed numbers/bools)
// short-circuit straight to their JSON type.
func classify(cell rawCell) ColumnType {
	if cell.literal {
		return cell.typ
	}
	s := strings.TrimSpace(cell.text)
	if s == "" {
		return Text
	}
	if looksLikeInt(s) {
		return Integer
	}
	if looksLikeFloat(s) {
		return Float
	}
	if _, ok := parseISODateTime(s); ok {
		return DateTime
	}
	if looksLikeBool(s) {
		return Boolean
	}
	return Text
}

func looksLikeInt(s string) bool {
	if s == "" {
		return false
	}
	i := 0
	if s[0] == '+' || s[0] == '-' {
		i++
	}
	if i == len(s) {
		return false
	}
	for ; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func looksLikeFloat(s string) bool {
	if s == "" {
		return false
	}
	seenDigit, seenDot, seenExp := false, false, false
	i := 0
	if s[0] == '+' || s[0] == '-' {
		i++
	}
	for ; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
			seenDigit = true
		case c == '.' && !seenDot && !seenExp:
			seenDot = true
		case (c == 'e' || c == 'E') && seenDigit && !seenExp:
			seenExp = true
			if i+1 < len(s) && (s[i+1] == '+' || s[i+1] == '-') {
				i++
			}
		default:
			return false
		}
	}
	return seenDigit && (seenDot || seenExp)
}

func looksLikeBool(s string) bool {
	lower := strings.ToLower(s)
	return lower == "true" || lower == "false"
}

func materialize(cell rawCell, colType ColumnType) Value {
	if cell.absent {
		return AbsentValue()
	}
	if cell.literal && cell.typ == Null {
		return NullValue()
	}
	// A Mixed column always stores its original text, lexically compared
	// (spec.md §4.1), regardless of whether this particular cell came in
	// as a JSON literal or a plain string.
	if colType == Mixed {
		return MixedValue(cell.text)
	}
	s := strings.TrimSpace(cell.text)
	switch colType {
	case Integer:
		if cell.literal && cell.typ == Integer {
			return IntValue(int64(cell.num))
		}
		if looksLikeInt(s) {
			return parseIntValue(s)
		}
		return MixedValue(cell.text)
	case Float:
		if cell.literal && (cell.typ == Integer || cell.typ == Float) {
			return FloatValue(cell.num)
		}
		if looksLikeFloat(s) || looksLikeInt(s) {
			return parseFloatValue(s)
		}
		return MixedValue(cell.text)
	case DateTime:
		if t, ok := parseISODateTime(s); ok {
			return DateTimeValue(t)
		}
		return MixedValue(cell.text)
	case Boolean:
		if cell.literal && cell.typ == Boolean {
			return BoolValue(cell.b)
		}
		if looksLikeBool(s) {
			return BoolValue(strings.ToLower(s) == "true")
		}
		return MixedValue(cell.text)
	case Text:
		return TextValue(cell.text)
	default: // Null: the whole column sampled to nothing but nulls/absent
		if cell.text == "" {
			return NullValue()
		}
		return TextValue(cell.text)
	}
}

func parseIntValue(s string) Value {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		// Overflows int64 (a very long digit run): fall back to float,
		// which still sorts and compares correctly for display purposes.
		return parseFloatValue(s)
	}
	return IntValue(n)
}

func parseFloatValue(s string) Value {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return MixedValue(s)
	}
	return FloatValue(f)
}
