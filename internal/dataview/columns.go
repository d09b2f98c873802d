package dataview

// HideColumn removes the entry at displayIdx from display_columns,
// decrementing pinned_count if the removed entry was pinned (spec.md
// §4.4).
func (v *View) HideColumn(displayIdx int) {
	if displayIdx < 0 || displayIdx >= len(v.displayColumns) {
		return
	}
	wasPinned := displayIdx < v.pinnedCount
	v.displayColumns = append(v.displayColumns[:displayIdx:displayIdx], v.displayColumns[displayIdx+1:]...)
	if wasPinned {
		v.pinnedCount--
	}
	if v.sort.Order != SortNone {
		switch {
		case v.sort.DisplayCol == displayIdx:
			v.sort = SortState{}
		case v.sort.DisplayCol > displayIdx:
			v.sort.DisplayCol--
		}
	}
	v.clampSortAfterColumnChange()
}

// HideColumnByName resolves name against the table's columns and hides it
// if currently displayed.
func (v *View) HideColumnByName(name string) {
	srcIdx := v.table.ColumnIndex(name, false)
	if srcIdx < 0 {
		return
	}
	for i, c := range v.displayColumns {
		if c == srcIdx {
			v.HideColumn(i)
			return
		}
	}
}

// UnhideAllColumns resets display_columns to base_columns, preserving pin
// order (spec.md §4.4): the currently pinned columns stay in front, in
// their pinned order, followed by the remaining base columns in base
// order. A pinned column that was hidden comes back unpinned. The sort
// keeps pointing at the same source column.
func (v *View) UnhideAllColumns() {
	sortSrc := -1
	if v.sort.Order != SortNone && v.sort.DisplayCol < len(v.displayColumns) {
		sortSrc = v.displayColumns[v.sort.DisplayCol]
	}
	pinned := make(map[int]bool, v.pinnedCount)
	out := append([]int(nil), v.displayColumns[:v.pinnedCount]...)
	for _, c := range out {
		pinned[c] = true
	}
	for _, c := range v.baseColumns {
		if !pinned[c] {
			out = append(out, c)
		}
	}
	v.displayColumns = out
	for i, c := range out {
		if c == sortSrc {
			v.sort.DisplayCol = i
		}
	}
	v.clampSortAfterColumnChange()
}

// PinColumn moves the entry at displayIdx to position pinned_count and
// increments pinned_count. Pinning is idempotent and cannot exceed the
// entire column set (spec.md §4.4).
func (v *View) PinColumn(displayIdx int) {
	if displayIdx < 0 || displayIdx >= len(v.displayColumns) {
		return
	}
	if displayIdx < v.pinnedCount {
		return // already pinned: idempotent
	}
	col := v.displayColumns[displayIdx]
	v.displayColumns = append(v.displayColumns[:displayIdx:displayIdx], v.displayColumns[displayIdx+1:]...)
	insertAt := v.pinnedCount
	v.displayColumns = append(v.displayColumns[:insertAt], append([]int{col}, v.displayColumns[insertAt:]...)...)
	v.pinnedCount++
	v.remapSortAfterMove(displayIdx, insertAt)
}

// UnpinAll sets pinned_count to 0, preserving the current column order
// (spec.md §4.4).
func (v *View) UnpinAll() {
	v.pinnedCount = 0
}

// MoveColumnLeft swaps the entry at displayIdx with its left neighbor,
// never crossing the pin boundary (spec.md §4.4).
func (v *View) MoveColumnLeft(displayIdx int) {
	v.swapWithinPartition(displayIdx, displayIdx-1)
}

// MoveColumnRight swaps the entry at displayIdx with its right neighbor,
// never crossing the pin boundary.
func (v *View) MoveColumnRight(displayIdx int) {
	v.swapWithinPartition(displayIdx, displayIdx+1)
}

func (v *View) swapWithinPartition(a, b int) {
	if a < 0 || a >= len(v.displayColumns) || b < 0 || b >= len(v.displayColumns) {
		return
	}
	aPinned := a < v.pinnedCount
	bPinned := b < v.pinnedCount
	if aPinned != bPinned {
		return // never cross the pin boundary
	}
	v.displayColumns[a], v.displayColumns[b] = v.displayColumns[b], v.displayColumns[a]
	if v.sort.DisplayCol == a {
		v.sort.DisplayCol = b
	} else if v.sort.DisplayCol == b {
		v.sort.DisplayCol = a
	}
}

// clampSortAfterColumnChange clears the sort if its column was hidden.
func (v *View) clampSortAfterColumnChange() {
	if v.sort.Order == SortNone {
		return
	}
	if v.sort.DisplayCol < 0 || v.sort.DisplayCol >= len(v.displayColumns) {
		v.sort = SortState{}
	}
}

// remapSortAfterMove keeps the sort's recorded display index pointing at
// the same source column after PinColumn reshuffles display_columns.
func (v *View) remapSortAfterMove(from, to int) {
	if v.sort.Order == SortNone {
		return
	}
	switch {
	case v.sort.DisplayCol == from:
		v.sort.DisplayCol = to
	case from < to && v.sort.DisplayCol > from && v.sort.DisplayCol <= to:
		v.sort.DisplayCol--
	case from > to && v.sort.DisplayCol >= to && v.sort.DisplayCol < from:
		v.sort.DisplayCol++
	}
}
