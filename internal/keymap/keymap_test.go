package keymap_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sqlterm/internal/keymap"
	"sqlterm/internal/state"
)

func rk(r rune) keymap.KeyEvent { return keymap.KeyEvent{Code: keymap.KeyRune, Rune: r} }

func TestCountAccumulatesAcrossDigitsThenAppliesToMotion(t *testing.T) {
	m := keymap.NewMapper()
	now := time.Unix(0, 0)

	a := m.Dispatch(state.ModeResults, rk('3'), now, false)
	assert.Equal(t, keymap.ActionNone, a.ActionKind)

	a = m.Dispatch(state.ModeResults, rk('2'), now, false)
	assert.Equal(t, keymap.ActionNone, a.ActionKind)

	a = m.Dispatch(state.ModeResults, rk('j'), now, false)
	require.Equal(t, keymap.ActionNavigate, a.ActionKind)
	assert.Equal(t, keymap.DirDown, a.Direction)
	assert.Equal(t, 32, a.Count)
}

func TestMotionWithNoCountDefaultsToOne(t *testing.T) {
	m := keymap.NewMapper()
	now := time.Unix(0, 0)

	a := m.Dispatch(state.ModeResults, rk('l'), now, false)
	require.Equal(t, keymap.ActionNavigate, a.ActionKind)
	assert.Equal(t, 1, a.Count)
}

func TestNonMotionKeyClearsPendingCount(t *testing.T) {
	m := keymap.NewMapper()
	now := time.Unix(0, 0)

	m.Dispatch(state.ModeResults, rk('5'), now, false)
	a := m.Dispatch(state.ModeResults, rk('s'), now, false) // sort, a non-motion key
	assert.Equal(t, keymap.ActionSort, a.ActionKind)

	a = m.Dispatch(state.ModeResults, rk('j'), now, false)
	assert.Equal(t, 1, a.Count, "count buffer should have been cleared by the intervening `s`")
}

func TestYankChordResolvesRow(t *testing.T) {
	m := keymap.NewMapper()
	now := time.Unix(0, 0)

	a := m.Dispatch(state.ModeResults, rk('y'), now, false)
	assert.Equal(t, keymap.ActionNone, a.ActionKind)

	a = m.Dispatch(state.ModeResults, rk('y'), now.Add(100*time.Millisecond), false)
	require.Equal(t, keymap.ActionYank, a.ActionKind)
	assert.Equal(t, keymap.YankRow, a.Kind)
}

func TestYankChordExpiresAfterTimeout(t *testing.T) {
	m := keymap.NewMapper()
	now := time.Unix(0, 0)

	m.Dispatch(state.ModeResults, rk('y'), now, false)
	a := m.Dispatch(state.ModeResults, rk('y'), now.Add(2*time.Second), false)
	// The chord expired, so the second `y` is dispatched fresh and re-enters
	// YankPending rather than completing a chord.
	assert.Equal(t, keymap.ActionNone, a.ActionKind)

	a = m.Dispatch(state.ModeResults, rk('y'), now.Add(2100*time.Millisecond), false)
	require.Equal(t, keymap.ActionYank, a.ActionKind)
}

func TestYankChordCancelsOnUnknownKeyAndReDispatches(t *testing.T) {
	m := keymap.NewMapper()
	now := time.Unix(0, 0)

	m.Dispatch(state.ModeResults, rk('y'), now, false)
	a := m.Dispatch(state.ModeResults, rk('s'), now.Add(10*time.Millisecond), false)
	assert.Equal(t, keymap.ActionSort, a.ActionKind, "unknown chord continuation re-dispatches normally")
}

func TestEscIsGlobalAndExitsAnyMode(t *testing.T) {
	m := keymap.NewMapper()
	now := time.Unix(0, 0)

	a := m.Dispatch(state.ModeSearch, keymap.KeyEvent{Code: keymap.KeyEsc}, now, false)
	assert.Equal(t, keymap.ActionExitCurrentMode, a.ActionKind)
}

func TestCommandModeEnterExecutesQuery(t *testing.T) {
	m := keymap.NewMapper()
	now := time.Unix(0, 0)

	a := m.Dispatch(state.ModeCommand, keymap.KeyEvent{Code: keymap.KeyEnter}, now, false)
	assert.Equal(t, keymap.ActionExecuteQuery, a.ActionKind)
}

func TestCommandModePrintableCharInsertsRune(t *testing.T) {
	m := keymap.NewMapper()
	now := time.Unix(0, 0)

	a := m.Dispatch(state.ModeCommand, rk('x'), now, false)
	require.Equal(t, keymap.ActionInsertRune, a.ActionKind)
	assert.Equal(t, 'x', a.Rune)
}

func TestFilterKeysStartFilterWithCorrectKind(t *testing.T) {
	m := keymap.NewMapper()
	now := time.Unix(0, 0)

	a := m.Dispatch(state.ModeResults, rk('F'), now, false)
	require.Equal(t, keymap.ActionStartFilter, a.ActionKind)
	assert.Equal(t, state.FilterRegex, a.FilterKind)

	a = m.Dispatch(state.ModeResults, rk('f'), now, false)
	require.Equal(t, keymap.ActionStartFilter, a.ActionKind)
	assert.Equal(t, state.FilterFuzzy, a.FilterKind)
}

func TestHideUsesDashNotH(t *testing.T) {
	m := keymap.NewMapper()
	now := time.Unix(0, 0)

	a := m.Dispatch(state.ModeResults, rk('-'), now, false)
	assert.Equal(t, keymap.ActionHideColumn, a.ActionKind)

	a = m.Dispatch(state.ModeResults, rk('H'), now, false)
	assert.Equal(t, keymap.ActionViewportTop, a.ActionKind, "H is reserved for viewport-top, not hide")
}

func TestNTogglesRowNumbersWhenNoSearchActiveElsePreviousMatch(t *testing.T) {
	m := keymap.NewMapper()
	now := time.Unix(0, 0)

	a := m.Dispatch(state.ModeResults, rk('N'), now, false)
	assert.Equal(t, keymap.ActionToggleRowNumbers, a.ActionKind, "no active search: N toggles row numbers")

	a = m.Dispatch(state.ModeResults, rk('N'), now, true)
	assert.Equal(t, keymap.ActionPreviousMatch, a.ActionKind, "active search: N steps to the previous match")
}

func TestBufferBindingsAreGlobal(t *testing.T) {
	m := keymap.NewMapper()
	now := time.Unix(0, 0)

	a := m.Dispatch(state.ModeCommand, keymap.KeyEvent{Code: keymap.KeyRune, Rune: 't', Mod: keymap.ModCtrl}, now, false)
	require.Equal(t, keymap.ActionOpenBuffer, a.ActionKind)

	a = m.Dispatch(state.ModeResults, keymap.KeyEvent{Code: keymap.KeyF4}, now, false)
	require.Equal(t, keymap.ActionSwitchBuffer, a.ActionKind)
	assert.Equal(t, 1, a.BufferDelta)

	a = m.Dispatch(state.ModeResults, keymap.KeyEvent{Code: keymap.KeyF3}, now, false)
	require.Equal(t, keymap.ActionSwitchBuffer, a.ActionKind)
	assert.Equal(t, -1, a.BufferDelta)

	a = m.Dispatch(state.ModeCommand, keymap.KeyEvent{Code: keymap.KeyRune, Rune: 'x', Mod: keymap.ModCtrl}, now, false)
	require.Equal(t, keymap.ActionCloseBuffer, a.ActionKind)
}

func TestDebouncerFiresOnlyAfterThresholdElapsed(t *testing.T) {
	d := keymap.NewDebouncer(500 * time.Millisecond)
	start := time.Unix(0, 0)

	d.Update(start, "f")
	_, fired := d.Tick(start.Add(100 * time.Millisecond))
	assert.False(t, fired)

	d.Update(start.Add(100*time.Millisecond), "fo")
	_, fired = d.Tick(start.Add(400 * time.Millisecond))
	assert.False(t, fired, "still within threshold of the most recent keystroke")

	pattern, fired := d.Tick(start.Add(700 * time.Millisecond))
	require.True(t, fired)
	assert.Equal(t, "fo", pattern)

	_, fired = d.Tick(start.Add(800 * time.Millisecond))
	assert.False(t, fired, "already fired; nothing pending")
}

func TestDebouncerFlushNowBypassesThreshold(t *testing.T) {
	d := keymap.NewDebouncer(500 * time.Millisecond)
	now := time.Unix(0, 0)

	d.Update(now, "foo")
	pattern, fired := d.FlushNow()
	require.True(t, fired)
	assert.Equal(t, "foo", pattern)
}

func TestDebouncerCancelDiscardsPending(t *testing.T) {
	d := keymap.NewDebouncer(500 * time.Millisecond)
	now := time.Unix(0, 0)

	d.Update(now, "foo")
	d.Cancel()
	assert.False(t, d.HasPending())
}
