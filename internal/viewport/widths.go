package viewport

// ColumnWidths recomputes each displayed column's rendered width: the max
// of its header length and the longest stringified value over a sample of
// up to sampleSize rows, capped at 40 characters per column (spec.md §4.5).
// Compact mode halves that ceiling to 20 so more columns fit. The
// viewport's terminal width is not consulted.
func (m *Manager) ColumnWidths(sampleSize int, mode ColumnWidthMode) []int {
	names := m.view.ColumnNames()
	widths := make([]int, len(names))

	ceiling := 40
	if mode == Compact {
		ceiling = 20
	}

	rows := m.view.RowCount()
	if sampleSize > 0 && sampleSize < rows {
		rows = sampleSize
	}

	for c, name := range names {
		width := len([]rune(name))
		for r := 0; r < rows; r++ {
			cellLen := len([]rune(m.view.GetRow(r)[c].String()))
			if cellLen > width {
				width = cellLen
			}
		}
		if width > ceiling {
			width = ceiling
		}
		widths[c] = width
	}
	return widths
}
