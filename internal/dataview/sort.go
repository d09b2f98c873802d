package dataview

import (
	"sort"

	"sqlterm/internal/datatable"
)

// ApplySort translates display_col_idx to its source column via
// display_columns, stable-sorts visible_rows by typed comparison on that
// column, and stores the sort state (spec.md §4.4).
func (v *View) ApplySort(displayColIdx int, order SortOrder) {
	if displayColIdx < 0 || displayColIdx >= len(v.displayColumns) {
		return
	}
	v.sort = SortState{DisplayCol: displayColIdx, Order: order}
	v.reapplySort()
}

// CycleSort implements the three-state cycle None -> Ascending ->
// Descending -> None on displayColIdx. On reaching None, insertion order
// is restored by copying base_rows filtered through the current filter
// (spec.md §4.4).
func (v *View) CycleSort(displayColIdx int) {
	next := SortAscending
	if v.sort.DisplayCol == displayColIdx {
		switch v.sort.Order {
		case SortAscending:
			next = SortDescending
		case SortDescending:
			next = SortNone
		default:
			next = SortAscending
		}
	}

	if next == SortNone {
		v.sort = SortState{}
		v.restoreInsertionOrder()
		return
	}
	v.ApplySort(displayColIdx, next)
}

// restoreInsertionOrder rebuilds visible_rows from base_rows (preserving
// base_rows' order) filtered through whatever filter is currently active.
func (v *View) restoreInsertionOrder() {
	if !v.filter.active {
		v.visibleRows = append([]int(nil), v.baseRows...)
		return
	}
	if v.filter.fuzzy {
		v.ApplyFuzzyFilter(v.filter.pattern, v.filter.exact)
		return
	}
	_ = v.ApplyTextFilter(v.filter.pattern, v.filter.caseSens)
}

// reapplySort re-sorts visibleRows per the current sort state, a no-op if
// unsorted or the sorted column is no longer displayed.
func (v *View) reapplySort() {
	if v.sort.Order == SortNone {
		return
	}
	if v.sort.DisplayCol < 0 || v.sort.DisplayCol >= len(v.displayColumns) {
		v.sort = SortState{}
		return
	}
	srcCol := v.displayColumns[v.sort.DisplayCol]
	asc := v.sort.Order == SortAscending
	sort.SliceStable(v.visibleRows, func(i, j int) bool {
		cmp := datatable.Compare(v.table.Cell(v.visibleRows[i], srcCol), v.table.Cell(v.visibleRows[j], srcCol))
		if asc {
			return cmp < 0
		}
		return cmp > 0
	})
}
