// Package dataview implements the mutable DataView projection of
// spec.md §4.4: a filter/sort/hide/pin layer over a shared, immutable
// datatable.Table, grounded on the teacher's query/stages.go stage
// structure (FilterStage/SortStage) collapsed into a single mutable
// object instead of a cached multi-stage pipeline.
package dataview

import (
	"sqlterm/internal/datatable"
)

// SortOrder is the three-state cycle of spec.md §4.4's cycle_sort:
// None -> Ascending -> Descending -> None.
type SortOrder int

const (
	SortNone SortOrder = iota
	SortAscending
	SortDescending
)

// SortState records the column (in display space) and direction a view is
// currently sorted by, or is the zero value when unsorted.
type SortState struct {
	DisplayCol int
	Order      SortOrder
}

// View is the mutable projection spec.md §3.1 calls a DataView: a shared
// reference to an immutable Table, plus its own visible_rows/base_rows and
// display_columns/pinned_count state (spec.md §4.4: "All view operations
// mutate in place; none touch the source").
type View struct {
	table *datatable.Table

	baseRows    []int
	visibleRows []int

	baseColumns    []int
	displayColumns []int
	pinnedCount    int

	sort   SortState
	filter filterState
}

type filterState struct {
	active   bool
	pattern  string
	fuzzy    bool
	exact    bool
	caseSens bool
}

// New builds a view over rows (in source-row space) and displayColumns (in
// source-column space), as produced by sqlquery.Execute. Both slices
// become the view's base_rows/base_columns as well as its initial
// visible_rows/display_columns (spec.md §4.3: "The resulting DataView
// holds all indices passing the predicate as both visible_rows and
// base_rows").
func New(table *datatable.Table, rows, displayColumns []int) *View {
	base := append([]int(nil), rows...)
	visible := append([]int(nil), rows...)
	baseCols := append([]int(nil), displayColumns...)
	dispCols := append([]int(nil), displayColumns...)
	return &View{
		table:          table,
		baseRows:       base,
		visibleRows:    visible,
		baseColumns:    baseCols,
		displayColumns: dispCols,
	}
}

// Table returns the underlying shared DataTable.
func (v *View) Table() *datatable.Table { return v.table }

// RowCount returns the number of currently visible rows.
func (v *View) RowCount() int { return len(v.visibleRows) }

// ColumnCount returns the number of currently displayed columns.
func (v *View) ColumnCount() int { return len(v.displayColumns) }

// ColumnNames returns the display names of the currently displayed
// columns, in display order.
func (v *View) ColumnNames() []string {
	names := make([]string, len(v.displayColumns))
	cols := v.table.Columns()
	for i, srcIdx := range v.displayColumns {
		names[i] = cols[srcIdx].Name
	}
	return names
}

// PinnedCount returns how many of the leading display columns are pinned.
func (v *View) PinnedCount() int { return v.pinnedCount }

// DisplayColumns returns the current projection, source-column indices in
// display order (pinned entries first).
func (v *View) DisplayColumns() []int { return append([]int(nil), v.displayColumns...) }

// GetRow reads source.rows[visible_rows[i]] and permutes it per
// display_columns (spec.md §4.4).
func (v *View) GetRow(i int) datatable.Row {
	srcRow := v.table.Row(v.visibleRows[i])
	out := make(datatable.Row, len(v.displayColumns))
	for j, srcCol := range v.displayColumns {
		out[j] = srcRow[srcCol]
	}
	return out
}

// SourceRowIndex maps a display-space row position back to its source
// table row index (used by the viewport/search subsystems to report
// absolute row numbers).
func (v *View) SourceRowIndex(i int) int { return v.visibleRows[i] }

// Sort reports the view's current sort state.
func (v *View) Sort() SortState { return v.sort }
