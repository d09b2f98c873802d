// Package datatable implements the immutable, columnar, typed DataTable of
// spec.md §3.1, grounded on the teacher's fileloader package (CSV/JSON/XLSX
// ingestion, header normalization, type detection) and interfaces.Row.
package datatable

import "fmt"

// ColumnSpec describes one column: its display name and its inferred type
// (spec.md §3.1).
type ColumnSpec struct {
	Name         string
	InferredType ColumnType
}

// Row is an ordered sequence of Values, one per column.
type Row []Value

// Table is the immutable source of data. It is constructed once by a
// loader (CSV/JSON/XLSX/HTTP) or by query-result materialization, and
// shared by reference across every DataView built from it (spec.md §3.1,
// §5 "Shared DataTables").
type Table struct {
	name    string
	columns []ColumnSpec
	rows    []Row
}

// New constructs a Table, validating that every row has exactly
// len(columns) values (spec.md §3.1 invariant).
func New(name string, columns []ColumnSpec, rows []Row) (*Table, error) {
	for i, row := range rows {
		if len(row) != len(columns) {
			return nil, fmt.Errorf("row %d has %d values, want %d", i, len(row), len(columns))
		}
	}
	return &Table{name: name, columns: columns, rows: rows}, nil
}

func (t *Table) Name() string        { return t.name }
func (t *Table) ColumnCount() int     { return len(t.columns) }
func (t *Table) RowCount() int        { return len(t.rows) }
func (t *Table) Columns() []ColumnSpec {
	out := make([]ColumnSpec, len(t.columns))
	copy(out, t.columns)
	return out
}

// ColumnNames returns the ordered column names.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.columns))
	for i, c := range t.columns {
		names[i] = c.Name
	}
	return names
}

// ColumnIndex returns the source index of the named column, or -1.
// Matching is case-insensitive when caseInsensitive is true (spec.md §4.2,
// §9 "case-insensitivity is buffer-level").
func (t *Table) ColumnIndex(name string, caseInsensitive bool) int {
	for i, c := range t.columns {
		if c.Name == name {
			return i
		}
	}
	if caseInsensitive {
		for i, c := range t.columns {
			if equalFold(c.Name, name) {
				return i
			}
		}
	}
	return -1
}

func equalFold(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		ca, cb := a[i], b[i]
		if 'A' <= ca && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if 'A' <= cb && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}

// GetColumnType returns the inferred type of column idx.
func (t *Table) GetColumnType(idx int) ColumnType {
	if idx < 0 || idx >= len(t.columns) {
		return Null
	}
	return t.columns[idx].InferredType
}

// GetColumnTypes returns all inferred column types in order.
func (t *Table) GetColumnTypes() []ColumnType {
	out := make([]ColumnType, len(t.columns))
	for i, c := range t.columns {
		out[i] = c.InferredType
	}
	return out
}

// Row returns the row at source index idx. The caller must not mutate the
// returned slice; Table is immutable.
func (t *Table) Row(idx int) Row {
	return t.rows[idx]
}

// Cell returns the value at (row, col) in source space.
func (t *Table) Cell(row, col int) Value {
	return t.rows[row][col]
}
