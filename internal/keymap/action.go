// Package keymap implements the KeyMapper and Action dispatch machinery of
// spec.md §4.7: per-mode key tables, vim-style count accumulation, the yank
// chord state machine, and the poll-based search/filter debouncer. Grounded
// on app/app_tabs.go's static per-mode dispatch table shape and
// app/app_search.go's cancellable search state, adapted to the tagged-enum
// Action model spec.md describes.
package keymap

import "sqlterm/internal/state"

// Direction is a motion's axis and sign (spec.md §4.7: Navigate(Direction, count)).
type Direction int

const (
	DirLeft Direction = iota
	DirRight
	DirUp
	DirDown
)

// YankTarget is what a completed yank chord captures (spec.md §4.7).
type YankTarget int

const (
	YankCell YankTarget = iota
	YankRow
	YankColumn
	YankAll
	YankQuery
)

// ActionKind tags the variant of an Action.
type ActionKind int

const (
	ActionNone ActionKind = iota
	ActionInsertRune
	ActionBackspace
	ActionDelete
	ActionCursorHome
	ActionCursorEnd
	ActionDeleteWordBack
	ActionDeleteWordForward
	ActionKillToEnd
	ActionKillLine
	ActionUndo
	ActionRedo
	ActionHistoryPrev
	ActionHistoryNext
	ActionHistorySearch
	ActionCompletion
	ActionExecuteQuery
	ActionToCommand
	ActionToResults
	ActionNavigate
	ActionPageUp
	ActionPageDown
	ActionGotoFirst
	ActionGotoLast
	ActionGotoFirstColumn
	ActionGotoLastColumn
	ActionToggleCompactMode
	ActionToggleRowNumbers
	ActionToggleCursorLock
	ActionToggleViewportLock
	ActionStartSearch
	ActionStartColumnSearch
	ActionStartFilter
	ActionNextMatch
	ActionPreviousMatch
	ActionSort
	ActionPinColumn
	ActionUnpinAll
	ActionHideColumn
	ActionUnhideAll
	ActionMoveColumnLeft
	ActionMoveColumnRight
	ActionToggleSelectionMode
	ActionViewportTop
	ActionViewportMiddle
	ActionViewportBottom
	ActionStartJumpToRow
	ActionYank
	ActionLoadFromHistory
	ActionSwitchBuffer
	ActionOpenBuffer
	ActionCloseBuffer
	ActionExitCurrentMode
	ActionToggleHelp
	ActionToggleDebug
	ActionQuit
	ActionForceQuit
	ActionBeep
)

// Action is the tagged enum a KeyMapper produces from a KeyEvent. Only the
// fields relevant to Kind are populated; the rest are zero.
type Action struct {
	Kind YankTarget
	Rune rune

	ActionKind ActionKind

	Direction Direction
	Count     int

	FilterKind  state.FilterKind
	BufferDelta int
}

func actionOf(kind ActionKind) Action { return Action{ActionKind: kind} }

func navigate(dir Direction, count int) Action {
	return Action{ActionKind: ActionNavigate, Direction: dir, Count: count}
}

func yank(target YankTarget) Action {
	return Action{ActionKind: ActionYank, Kind: target}
}

func switchBuffer(delta int) Action {
	return Action{ActionKind: ActionSwitchBuffer, BufferDelta: delta}
}

func startFilter(kind state.FilterKind) Action {
	return Action{ActionKind: ActionStartFilter, FilterKind: kind}
}

func insertRune(r rune) Action {
	return Action{ActionKind: ActionInsertRune, Rune: r}
}
