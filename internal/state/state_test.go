package state_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sqlterm/internal/state"
)

func TestModeStackNeverEmpty(t *testing.T) {
	s := state.NewModeStack()
	assert.Equal(t, state.ModeCommand, s.Current())

	_, _, _ = s.Pop() // popping the base frame is a no-op
	assert.Equal(t, 1, s.Depth())
}

func TestCommandToResultsReplacesNotPushes(t *testing.T) {
	s := state.NewModeStack()
	s.Replace(state.ModeResults)
	assert.Equal(t, state.ModeResults, s.Current())
	assert.Equal(t, 1, s.Depth())
}

func TestSearchModeSavesAndRestoresInputText(t *testing.T) {
	s := state.NewModeStack()
	s.Replace(state.ModeResults)
	s.PushSearch(state.SearchVim, "SELECT * FROM t", 5)
	assert.Equal(t, state.ModeSearch, s.Current())

	saved, pos, had := s.Pop()
	require.True(t, had)
	assert.Equal(t, "SELECT * FROM t", saved)
	assert.Equal(t, 5, pos)
	assert.Equal(t, state.ModeResults, s.Current())
}

func TestHelpTogglePushesThenPops(t *testing.T) {
	s := state.NewModeStack()
	s.PushToggle(state.ModeHelp)
	assert.Equal(t, state.ModeHelp, s.Current())
	assert.Equal(t, 2, s.Depth())

	s.PushToggle(state.ModeHelp)
	assert.Equal(t, state.ModeCommand, s.Current())
	assert.Equal(t, 1, s.Depth())
}

func TestSwitchBufferWraps(t *testing.T) {
	c := state.NewContainer("first")
	c.OpenBuffer("second")
	c.OpenBuffer("third")

	c.SwitchBuffer(1)
	assert.Equal(t, "first", c.Active().Name) // wrapped from third back to first

	c.SwitchBuffer(-1)
	assert.Equal(t, "third", c.Active().Name)
}

func TestCloseLastBufferFails(t *testing.T) {
	c := state.NewContainer("only")
	err := c.CloseActive()
	assert.Error(t, err)
}
