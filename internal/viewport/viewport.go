// Package viewport implements the ViewportManager of spec.md §4.5: the
// single authoritative source of the crosshair position in display-space
// and the scroll offset. Built fresh in the teacher's idiom (no direct
// equivalent in the teacher's Wails/React grid, which delegated scroll
// position to the browser's own virtualized table component) but modeled
// on the same "one authoritative owner, everything else reads through it"
// shape the teacher applies to its tab/workspace state (app/tabs.go).
package viewport

import "sqlterm/internal/dataview"

// ColumnWidthMode controls how column_widths samples and bounds widths
// (spec.md §4.5).
type ColumnWidthMode int

const (
	Standard ColumnWidthMode = iota
	Compact
)

// Manager owns crosshair_row/crosshair_col, viewport_rows/viewport_cols,
// and the cursor/viewport lock flags for one active view.
type Manager struct {
	view *dataview.View

	crosshairRow int
	crosshairCol int

	viewportRowStart int
	viewportColStart int
	viewportHeight   int // visible data rows, excluding header/status lines
	viewportWidth    int // visible terminal columns for the grid

	cursorLock   bool
	viewportLock bool
}

// New constructs a Manager bound to view, sized to the given viewport
// dimensions (spec.md §4.5).
func New(view *dataview.View, viewportHeight, viewportWidth int) *Manager {
	m := &Manager{view: view, viewportHeight: viewportHeight, viewportWidth: viewportWidth}
	m.viewportColStart = view.PinnedCount()
	return m
}

// Rebind points the manager at a new view (e.g. after a query re-executes)
// and clamps the crosshair/scroll into the new view's bounds.
func (m *Manager) Rebind(view *dataview.View) {
	m.view = view
	m.clampRow()
	m.clampCol()
}

// Resize updates the viewport's visible dimensions (e.g. on terminal
// resize) and reclamps.
func (m *Manager) Resize(height, width int) {
	m.viewportHeight = height
	m.viewportWidth = width
	m.clampRow()
	m.clampCol()
}

func (m *Manager) CrosshairRow() int { return m.crosshairRow }
func (m *Manager) CrosshairCol() int { return m.crosshairCol }
func (m *Manager) ViewportRowStart() int { return m.viewportRowStart }
func (m *Manager) ViewportColStart() int { return m.viewportColStart }
func (m *Manager) CursorLock() bool      { return m.cursorLock }
func (m *Manager) ViewportLock() bool    { return m.viewportLock }

func (m *Manager) rowCount() int { return m.view.RowCount() }
func (m *Manager) colCount() int { return m.view.ColumnCount() }

func (m *Manager) clampRow() {
	if m.rowCount() == 0 {
		m.crosshairRow, m.viewportRowStart = 0, 0
		return
	}
	if m.crosshairRow >= m.rowCount() {
		m.crosshairRow = m.rowCount() - 1
	}
	if m.crosshairRow < 0 {
		m.crosshairRow = 0
	}
	m.scrollRowIntoView()
}

func (m *Manager) clampCol() {
	pinned := m.view.PinnedCount()
	if m.colCount() == 0 {
		m.crosshairCol, m.viewportColStart = 0, 0
		return
	}
	if m.crosshairCol >= m.colCount() {
		m.crosshairCol = m.colCount() - 1
	}
	if m.crosshairCol < pinned && m.crosshairCol >= 0 {
		// crosshair is allowed to sit in the pinned gutter (it is always
		// fully rendered); only the scroll offset must never land there.
	}
	if m.viewportColStart < pinned {
		m.viewportColStart = pinned
	}
	m.scrollColIntoView()
}

// NavigateRowDelta clamps crosshair_row + n to [0, |visible_rows|-1]. If
// viewport_lock is set, the clamp is further bounded to viewport_rows;
// otherwise the viewport scrolls minimally so the crosshair stays visible
// (spec.md §4.5).
func (m *Manager) NavigateRowDelta(n int) bool {
	before := m.crosshairRow
	target := m.crosshairRow + n
	if m.viewportLock {
		lo, hi := m.viewportRowStart, m.viewportRowStart+m.viewportHeight-1
		if target < lo {
			target = lo
		}
		if target > hi {
			target = hi
		}
	}
	if target < 0 {
		target = 0
	}
	if m.rowCount() > 0 && target > m.rowCount()-1 {
		target = m.rowCount() - 1
	}
	m.crosshairRow = target
	if !m.viewportLock {
		m.scrollRowIntoView()
	}
	return m.crosshairRow != before
}

// NavigateColDelta is the column analogue, but the crosshair cannot land
// in [0, pinned_count) via scrolling: the scroll offset clamps at
// pinned_count while the crosshair itself may still visit the pinned
// gutter directly (spec.md §4.5: "The pinned gutter is always rendered
// fully; scrolling adjusts only viewport_cols.start >= pinned_count").
func (m *Manager) NavigateColDelta(n int) bool {
	before := m.crosshairCol
	target := m.crosshairCol + n
	if target < 0 {
		target = 0
	}
	if m.colCount() > 0 && target > m.colCount()-1 {
		target = m.colCount() - 1
	}
	m.crosshairCol = target
	if !m.viewportLock {
		m.scrollColIntoView()
	}
	return m.crosshairCol != before
}

// GotoFirstRow / GotoLastRow jump with viewport follow.
func (m *Manager) GotoFirstRow() { m.crosshairRow = 0; m.scrollRowIntoView() }
func (m *Manager) GotoLastRow() {
	if m.rowCount() == 0 {
		return
	}
	m.crosshairRow = m.rowCount() - 1
	m.scrollRowIntoView()
}

// GotoFirstColumn / GotoLastColumn jump with viewport follow.
func (m *Manager) GotoFirstColumn() { m.crosshairCol = 0; m.scrollColIntoView() }
func (m *Manager) GotoLastColumn() {
	if m.colCount() == 0 {
		return
	}
	m.crosshairCol = m.colCount() - 1
	m.scrollColIntoView()
}

// PageDown/PageUp jump viewport_height-1 rows. With cursor lock, scroll
// beneath the crosshair (crosshair stays put in viewport-relative terms,
// data scrolls past it); with viewport lock, move the crosshair to the
// opposite edge without scrolling (spec.md §4.5).
func (m *Manager) PageDown() {
	step := m.viewportHeight - 1
	if step < 1 {
		step = 1
	}
	if m.viewportLock {
		m.crosshairRow = m.viewportRowStart + m.viewportHeight - 1
		m.clampRowOnly()
		return
	}
	offset := m.crosshairRow - m.viewportRowStart
	m.viewportRowStart += step
	m.clampViewportRowStart()
	m.crosshairRow += step
	m.clampRowOnly()
	if m.cursorLock {
		m.crosshairRow = m.viewportRowStart + offset
		m.clampRowOnly()
	}
}

func (m *Manager) PageUp() {
	step := m.viewportHeight - 1
	if step < 1 {
		step = 1
	}
	if m.viewportLock {
		m.crosshairRow = m.viewportRowStart
		m.clampRowOnly()
		return
	}
	offset := m.crosshairRow - m.viewportRowStart
	m.viewportRowStart -= step
	m.clampViewportRowStart()
	m.crosshairRow -= step
	m.clampRowOnly()
	if m.cursorLock {
		m.crosshairRow = m.viewportRowStart + offset
		m.clampRowOnly()
	}
}

// ViewportTop/Middle/Bottom set crosshair_row to the first/middle/last row
// of viewport_rows (H/M/L motions, spec.md §4.5).
func (m *Manager) ViewportTop() { m.crosshairRow = m.viewportRowStart; m.clampRowOnly() }
func (m *Manager) ViewportMiddle() {
	m.crosshairRow = m.viewportRowStart + (m.viewportHeight-1)/2
	m.clampRowOnly()
}
func (m *Manager) ViewportBottom() {
	m.crosshairRow = m.viewportRowStart + m.viewportHeight - 1
	m.clampRowOnly()
}

// ToggleCursorLock and ToggleViewportLock are mutually exclusive: enabling
// one disables the other (spec.md §4.5).
func (m *Manager) ToggleCursorLock() {
	m.cursorLock = !m.cursorLock
	if m.cursorLock {
		m.viewportLock = false
	}
}

func (m *Manager) ToggleViewportLock() {
	m.viewportLock = !m.viewportLock
	if m.viewportLock {
		m.cursorLock = false
	}
}

func (m *Manager) clampRowOnly() {
	if m.rowCount() == 0 {
		m.crosshairRow = 0
		return
	}
	if m.crosshairRow < 0 {
		m.crosshairRow = 0
	}
	if m.crosshairRow > m.rowCount()-1 {
		m.crosshairRow = m.rowCount() - 1
	}
}

func (m *Manager) clampViewportRowStart() {
	if m.viewportRowStart < 0 {
		m.viewportRowStart = 0
	}
	maxStart := m.rowCount() - m.viewportHeight
	if maxStart < 0 {
		maxStart = 0
	}
	if m.viewportRowStart > maxStart {
		m.viewportRowStart = maxStart
	}
}

// scrollRowIntoView scrolls minimally so the crosshair sits inside
// viewport_rows (spec.md §4.5: "scroll minimally so the crosshair is at
// the entering edge").
func (m *Manager) scrollRowIntoView() {
	if m.viewportHeight <= 0 {
		return
	}
	if m.crosshairRow < m.viewportRowStart {
		m.viewportRowStart = m.crosshairRow
	} else if m.crosshairRow > m.viewportRowStart+m.viewportHeight-1 {
		m.viewportRowStart = m.crosshairRow - m.viewportHeight + 1
	}
	m.clampViewportRowStart()
}

func (m *Manager) scrollColIntoView() {
	pinned := m.view.PinnedCount()
	if m.viewportWidth <= 0 {
		return
	}
	if m.crosshairCol < pinned {
		return // pinned gutter is always rendered, no scroll needed
	}
	if m.crosshairCol < m.viewportColStart {
		m.viewportColStart = m.crosshairCol
	} else if m.crosshairCol > m.viewportColStart+m.viewportWidth-1 {
		m.viewportColStart = m.crosshairCol - m.viewportWidth + 1
	}
	if m.viewportColStart < pinned {
		m.viewportColStart = pinned
	}
}
