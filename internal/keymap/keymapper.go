package keymap

import (
	"time"

	"sqlterm/internal/state"
)

// Mapper is the per-buffer key dispatcher: it owns the count accumulator
// and yank chord state a KeyMapper needs across keystrokes (spec.md §4.7).
// Debouncing is a separate, explicitly-ticked concern (see Debouncer) since
// it must survive across Dispatch calls on its own clock.
type Mapper struct {
	count CountAccumulator
	chord YankChord
}

// NewMapper returns a Mapper with no pending count or chord.
func NewMapper() *Mapper { return &Mapper{} }

// Dispatch maps one KeyEvent through the table for the given mode,
// producing an Action. now is used only to expire a pending yank chord.
// searchActive reports whether the buffer's vim in-grid search currently
// holds a pattern, which disambiguates Results mode's `N` binding (spec.md
// §4.9: previous-match while a search is live, toggle-row-numbers once
// Esc has cleared it) — the mapper decides this, since it owns the mode
// stack's dispatch and the caller otherwise has no single place to resolve
// the ambiguity consistently.
func (m *Mapper) Dispatch(mode state.Mode, ev KeyEvent, now time.Time, searchActive bool) Action {
	if m.chord.Pending() {
		if m.chord.Expired(now) {
			m.chord.Cancel()
		} else if ev.Code == KeyRune {
			if target, ok := m.chord.Resolve(ev.Rune); ok {
				return yank(target)
			}
			// Falls through: an unrecognized key after `y` cancels the
			// chord and is re-dispatched normally below.
		}
	}

	// Global bindings valid in any mode (spec.md §4.6 table's "Any" rows).
	if a, ok := m.dispatchGlobal(ev); ok {
		return a
	}

	switch mode {
	case state.ModeCommand:
		return m.dispatchCommand(ev)
	case state.ModeResults:
		return m.dispatchResults(ev, now, searchActive)
	case state.ModeSearch, state.ModeFilter:
		return m.dispatchSearchOrFilter(ev)
	case state.ModeJumpToRow:
		return m.dispatchJumpToRow(ev)
	case state.ModeHistory:
		return m.dispatchHistory(ev)
	default: // Help, Debug, ColumnStats: any key other than the globals below beeps
		return actionOf(ActionBeep)
	}
}

func (m *Mapper) dispatchGlobal(ev KeyEvent) (Action, bool) {
	switch {
	case ev.Code == KeyEsc:
		m.count.Reset()
		m.chord.Cancel()
		return actionOf(ActionExitCurrentMode), true
	case ev.Code == KeyF1:
		return actionOf(ActionToggleHelp), true
	case ev.Code == KeyF5:
		return actionOf(ActionToggleDebug), true
	case ev.Code == KeyF3:
		// Buffer cycling (spec.md §3.1: multiple buffers, selected by
		// index) is global rather than Results-only, so switching buffers
		// works the same whether the prior one was left mid-query in
		// Command mode or parked on a result set.
		return switchBuffer(-1), true
	case ev.Code == KeyF4:
		return switchBuffer(1), true
	case ev.Code == KeyRune && ev.Rune == 'r' && ev.has(ModCtrl):
		return actionOf(ActionHistorySearch), true
	case ev.Code == KeyRune && ev.Rune == 'x' && ev.has(ModCtrl):
		return actionOf(ActionCloseBuffer), true
	case ev.Code == KeyRune && ev.Rune == 't' && ev.has(ModCtrl):
		return actionOf(ActionOpenBuffer), true
	}
	return Action{}, false
}

func (m *Mapper) dispatchCommand(ev KeyEvent) Action {
	switch ev.Code {
	case KeyEnter:
		return actionOf(ActionExecuteQuery)
	case KeyBackspace:
		return actionOf(ActionBackspace)
	case KeyDelete:
		return actionOf(ActionDelete)
	case KeyTab:
		return actionOf(ActionCompletion)
	case KeyF2:
		return actionOf(ActionToResults)
	case KeyRune:
		switch {
		case ev.Rune == 'a' && ev.has(ModCtrl):
			return actionOf(ActionCursorHome)
		case ev.Rune == 'e' && ev.has(ModCtrl):
			return actionOf(ActionCursorEnd)
		case ev.Rune == 'w' && ev.has(ModCtrl):
			return actionOf(ActionDeleteWordBack)
		case ev.Rune == 'd' && ev.has(ModAlt):
			return actionOf(ActionDeleteWordForward)
		case ev.Rune == 'k' && ev.has(ModCtrl):
			return actionOf(ActionKillToEnd)
		case ev.Rune == 'u' && ev.has(ModCtrl):
			return actionOf(ActionKillLine)
		case ev.Rune == 'z' && ev.has(ModCtrl):
			return actionOf(ActionUndo)
		case ev.Rune == 'y' && ev.has(ModCtrl):
			return actionOf(ActionRedo)
		case ev.Rune == 'p' && ev.has(ModCtrl):
			return actionOf(ActionHistoryPrev)
		case ev.Rune == 'n' && ev.has(ModCtrl):
			return actionOf(ActionHistoryNext)
		case ev.Rune == 'c' && ev.has(ModCtrl):
			return actionOf(ActionForceQuit)
		case ev.Mod == ModNone:
			return insertRune(ev.Rune)
		}
	}
	return actionOf(ActionBeep)
}

func (m *Mapper) dispatchResults(ev KeyEvent, now time.Time, searchActive bool) Action {
	if ev.Code == KeyRune && ev.Rune >= '1' && ev.Rune <= '9' {
		m.count.Digit(int(ev.Rune - '0'))
		return actionOf(ActionNone)
	}
	if ev.Code == KeyRune && ev.Rune == '0' && m.count.Pending() {
		m.count.Digit(0)
		return actionOf(ActionNone)
	}

	takeCount := func() int { return m.count.Take() }

	switch ev.Code {
	case KeyLeft:
		return navigate(DirLeft, takeCount())
	case KeyRight:
		return navigate(DirRight, takeCount())
	case KeyUp:
		return navigate(DirUp, takeCount())
	case KeyDown:
		return navigate(DirDown, takeCount())
	case KeyPageUp:
		m.count.Reset()
		return actionOf(ActionPageUp)
	case KeyPageDown:
		m.count.Reset()
		return actionOf(ActionPageDown)
	case KeyHome:
		m.count.Reset()
		return actionOf(ActionGotoFirstColumn)
	case KeyEnd:
		m.count.Reset()
		return actionOf(ActionGotoLastColumn)
	case KeySpace:
		m.count.Reset()
		return actionOf(ActionToggleViewportLock)
	}

	if ev.Code != KeyRune {
		m.count.Reset()
		return actionOf(ActionBeep)
	}

	switch ev.Rune {
	case 'h':
		return navigate(DirLeft, takeCount())
	case 'l':
		return navigate(DirRight, takeCount())
	case 'k':
		return navigate(DirUp, takeCount())
	case 'j':
		return navigate(DirDown, takeCount())
	case 'g':
		m.count.Reset()
		return actionOf(ActionGotoFirst)
	case 'G':
		m.count.Reset()
		return actionOf(ActionGotoLast)
	case '0', '^':
		m.count.Reset()
		return actionOf(ActionGotoFirstColumn)
	case '$':
		m.count.Reset()
		return actionOf(ActionGotoLastColumn)
	case 's':
		m.count.Reset()
		return actionOf(ActionSort)
	case 'p':
		m.count.Reset()
		return actionOf(ActionPinColumn)
	case 'P':
		m.count.Reset()
		return actionOf(ActionUnpinAll)
	case '-':
		m.count.Reset()
		return actionOf(ActionHideColumn)
	case '+', '=':
		m.count.Reset()
		return actionOf(ActionUnhideAll)
	case '<':
		m.count.Reset()
		return actionOf(ActionMoveColumnLeft)
	case '>':
		m.count.Reset()
		return actionOf(ActionMoveColumnRight)
	case 'v':
		m.count.Reset()
		return actionOf(ActionToggleSelectionMode)
	case 'N':
		m.count.Reset()
		if searchActive {
			return actionOf(ActionPreviousMatch)
		}
		return actionOf(ActionToggleRowNumbers)
	case 'n':
		m.count.Reset()
		return actionOf(ActionNextMatch)
	case 'C':
		m.count.Reset()
		return actionOf(ActionToggleCompactMode)
	case 'x':
		m.count.Reset()
		return actionOf(ActionToggleCursorLock)
	case 'H':
		// Bound to viewport-top rather than hide: `-` is hide's sole key
		// (spec.md §6 lists both `-` and `H` for hide, but `H` collides
		// with the `H/M/L` viewport-position bindings listed in the same
		// sentence; resolved in favor of the unambiguous `-`, see DESIGN.md).
		m.count.Reset()
		return actionOf(ActionViewportTop)
	case 'M':
		m.count.Reset()
		return actionOf(ActionViewportMiddle)
	case 'L':
		m.count.Reset()
		return actionOf(ActionViewportBottom)
	case '/':
		m.count.Reset()
		return actionOf(ActionStartSearch)
	case '\\':
		m.count.Reset()
		return actionOf(ActionStartColumnSearch)
	case 'F':
		m.count.Reset()
		return startFilter(state.FilterRegex)
	case 'f':
		m.count.Reset()
		return startFilter(state.FilterFuzzy)
	case ':':
		m.count.Reset()
		return actionOf(ActionStartJumpToRow)
	case 'i', 'a', 'A':
		m.count.Reset()
		return actionOf(ActionToCommand)
	case 'q':
		m.count.Reset()
		return actionOf(ActionQuit)
	case 'y':
		m.count.Reset()
		m.chord.Begin(now)
		return actionOf(ActionNone)
	}

	m.count.Reset()
	return actionOf(ActionBeep)
}

func (m *Mapper) dispatchSearchOrFilter(ev KeyEvent) Action {
	switch ev.Code {
	case KeyEnter:
		return actionOf(ActionExecuteQuery) // caller flushes the debouncer and applies immediately
	case KeyBackspace:
		return actionOf(ActionBackspace)
	case KeyTab:
		return actionOf(ActionCompletion)
	case KeyShiftTab:
		return actionOf(ActionPreviousMatch)
	case KeyRune:
		return insertRune(ev.Rune)
	}
	return actionOf(ActionBeep)
}

func (m *Mapper) dispatchJumpToRow(ev KeyEvent) Action {
	switch ev.Code {
	case KeyEnter:
		return actionOf(ActionExecuteQuery)
	case KeyBackspace:
		return actionOf(ActionBackspace)
	case KeyRune:
		if ev.Rune >= '0' && ev.Rune <= '9' {
			return insertRune(ev.Rune)
		}
	}
	return actionOf(ActionBeep)
}

func (m *Mapper) dispatchHistory(ev KeyEvent) Action {
	switch ev.Code {
	case KeyUp:
		return navigate(DirUp, 1)
	case KeyDown:
		return navigate(DirDown, 1)
	case KeyEnter:
		return actionOf(ActionLoadFromHistory)
	}
	return actionOf(ActionBeep)
}
