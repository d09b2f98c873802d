package main

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sqlterm/internal/history"
	"sqlterm/internal/keymap"
	"sqlterm/internal/state"
)

func newTestLoop(t *testing.T) *Loop {
	t.Helper()
	table := newTestTable(t)
	hist := history.Load(filepath.Join(t.TempDir(), "history.json"), 1000, 10)
	container := state.NewContainer(table.Name())
	return NewLoop(container, table, hist, "run-1", 500*time.Millisecond, 100)
}

func rk(r rune) keymap.KeyEvent { return keymap.KeyEvent{Code: keymap.KeyRune, Rune: r} }

func typeText(t *testing.T, loop *Loop, s string, now time.Time) {
	t.Helper()
	for _, r := range s {
		require.NoError(t, loop.Step(rk(r), now))
	}
}

func TestTypingAndEnterExecutesQueryAndEntersResultsMode(t *testing.T) {
	loop := newTestLoop(t)
	now := time.Unix(0, 0)

	typeText(t, loop, "SELECT * FROM people", now)
	require.NoError(t, loop.Step(keymap.KeyEvent{Code: keymap.KeyEnter}, now))

	buf := loop.Container.Active()
	assert.Equal(t, state.ModeResults, buf.Modes.Current())
	require.NotNil(t, buf.View)
	assert.Equal(t, 3, buf.View.RowCount())
	require.Len(t, loop.History.Entries, 1)
	assert.Equal(t, "SELECT * FROM people", loop.History.Entries[0].Query)
	assert.Equal(t, "run-1", loop.History.Entries[0].RunID)
}

func TestBadQueryReturnsTranslatedError(t *testing.T) {
	loop := newTestLoop(t)
	now := time.Unix(0, 0)

	typeText(t, loop, "SELECT nope FROM people", now)
	err := loop.Step(keymap.KeyEvent{Code: keymap.KeyEnter}, now)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown column")

	// A failed query must not have switched modes away from Command.
	assert.Equal(t, state.ModeCommand, loop.Container.Active().Modes.Current())
}

func TestNavigationMovesCrosshairInResultsMode(t *testing.T) {
	loop := newTestLoop(t)
	now := time.Unix(0, 0)
	typeText(t, loop, "SELECT * FROM people", now)
	require.NoError(t, loop.Step(keymap.KeyEvent{Code: keymap.KeyEnter}, now))

	buf := loop.Container.Active()
	require.Equal(t, 0, buf.Viewport.CrosshairRow())

	require.NoError(t, loop.Step(rk('j'), now))
	assert.Equal(t, 1, buf.Viewport.CrosshairRow())

	require.NoError(t, loop.Step(rk('k'), now))
	assert.Equal(t, 0, buf.Viewport.CrosshairRow())
}

func TestCountPrefixAppliesToNavigation(t *testing.T) {
	loop := newTestLoop(t)
	now := time.Unix(0, 0)
	typeText(t, loop, "SELECT * FROM people", now)
	require.NoError(t, loop.Step(keymap.KeyEvent{Code: keymap.KeyEnter}, now))

	buf := loop.Container.Active()
	require.NoError(t, loop.Step(rk('2'), now))
	require.NoError(t, loop.Step(rk('j'), now))
	// Only 3 rows exist (0,1,2); a count of 2 from row 0 clamps to row 2.
	assert.Equal(t, 2, buf.Viewport.CrosshairRow())
}

func TestEscAfterCommittedFilterClearsFilter(t *testing.T) {
	loop := newTestLoop(t)
	now := time.Unix(0, 0)
	typeText(t, loop, "SELECT * FROM people", now)
	require.NoError(t, loop.Step(keymap.KeyEvent{Code: keymap.KeyEnter}, now))

	require.NoError(t, loop.Step(rk('f'), now)) // start fuzzy filter
	buf := loop.Container.Active()
	require.Equal(t, state.ModeFilter, buf.Modes.Current())

	typeText(t, loop, "ali", now)
	require.NoError(t, loop.Step(keymap.KeyEvent{Code: keymap.KeyEnter}, now)) // commit
	assert.Equal(t, 1, buf.View.RowCount())

	require.NoError(t, loop.Step(keymap.KeyEvent{Code: keymap.KeyEsc}, now))
	assert.Equal(t, state.ModeResults, buf.Modes.Current())
	assert.Equal(t, 3, buf.View.RowCount(), "Esc after a committed filter should clear it")
}

func TestEscClearsSearchThenNTogglesRowNumbers(t *testing.T) {
	loop := newTestLoop(t)
	now := time.Unix(0, 0)
	typeText(t, loop, "SELECT * FROM people", now)
	require.NoError(t, loop.Step(keymap.KeyEvent{Code: keymap.KeyEnter}, now))

	require.NoError(t, loop.Step(rk('/'), now)) // start vim search
	buf := loop.Container.Active()
	require.Equal(t, state.ModeSearch, buf.Modes.Current())

	typeText(t, loop, "bob", now)
	require.NoError(t, loop.Step(keymap.KeyEvent{Code: keymap.KeyEnter}, now)) // commit
	require.Equal(t, state.ModeResults, buf.Modes.Current())
	require.NotEmpty(t, buf.Search.Pattern)

	require.NoError(t, loop.Step(rk('N'), now))
	assert.Equal(t, 0, buf.Search.CurrentIdx, "while a search is active, N steps through matches, it does not toggle row numbers")
	assert.False(t, buf.Search.RowNumbers)

	require.NoError(t, loop.Step(keymap.KeyEvent{Code: keymap.KeyEsc}, now))
	assert.Empty(t, buf.Search.Pattern, "Esc clears the search pattern")

	require.NoError(t, loop.Step(rk('N'), now))
	assert.True(t, buf.Search.RowNumbers, "once the search is cleared, N toggles row numbers")
}

func TestCtrlTOpensAndSwitchesBetweenBuffers(t *testing.T) {
	loop := newTestLoop(t)
	now := time.Unix(0, 0)
	typeText(t, loop, "SELECT * FROM people", now)
	require.NoError(t, loop.Step(keymap.KeyEvent{Code: keymap.KeyEnter}, now))
	first := loop.Container.Active()

	require.NoError(t, loop.Step(keymap.KeyEvent{Code: keymap.KeyRune, Rune: 't', Mod: keymap.ModCtrl}, now))
	require.Equal(t, 2, loop.Container.BufferCount())
	second := loop.Container.Active()
	assert.NotSame(t, first, second, "Ctrl+T opens a new buffer and switches to it")
	assert.Equal(t, state.ModeCommand, second.Modes.Current(), "a newly opened buffer starts empty in Command mode")

	require.NoError(t, loop.Step(keymap.KeyEvent{Code: keymap.KeyF3}, now))
	assert.Same(t, first, loop.Container.Active(), "F3 cycles to the previous buffer")

	require.NoError(t, loop.Step(keymap.KeyEvent{Code: keymap.KeyF4}, now))
	assert.Same(t, second, loop.Container.Active(), "F4 cycles to the next buffer")

	require.NoError(t, loop.Step(keymap.KeyEvent{Code: keymap.KeyRune, Rune: 'x', Mod: keymap.ModCtrl}, now))
	assert.Equal(t, 1, loop.Container.BufferCount(), "Ctrl+X closes the active buffer")
	assert.Same(t, first, loop.Container.Active())
}

func TestYankCellCopiesCrosshairValue(t *testing.T) {
	loop := newTestLoop(t)
	now := time.Unix(0, 0)
	typeText(t, loop, "SELECT * FROM people", now)
	require.NoError(t, loop.Step(keymap.KeyEvent{Code: keymap.KeyEnter}, now))

	require.NoError(t, loop.Step(rk('y'), now))
	require.NoError(t, loop.Step(rk('c'), now))

	assert.Equal(t, "1", loop.Container.Active().ClipboardText)
}

func TestQuitSetsLoopQuitFlag(t *testing.T) {
	loop := newTestLoop(t)
	now := time.Unix(0, 0)
	typeText(t, loop, "SELECT * FROM people", now)
	require.NoError(t, loop.Step(keymap.KeyEvent{Code: keymap.KeyEnter}, now))

	require.NoError(t, loop.Step(rk('q'), now))
	assert.True(t, loop.Quit)
	assert.False(t, loop.ForceQuit)
}

func TestDebounceTickAppliesFilterAfterThreshold(t *testing.T) {
	loop := newTestLoop(t)
	now := time.Unix(0, 0)
	typeText(t, loop, "SELECT * FROM people", now)
	require.NoError(t, loop.Step(keymap.KeyEvent{Code: keymap.KeyEnter}, now))

	require.NoError(t, loop.Step(rk('f'), now))
	typeText(t, loop, "bob", now)

	buf := loop.Container.Active()
	require.Equal(t, 3, buf.View.RowCount(), "filter not yet committed or debounced")

	require.NoError(t, loop.Tick(now.Add(600*time.Millisecond)))
	assert.Equal(t, 1, buf.View.RowCount())
}
