package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sqlterm/internal/config"
	"sqlterm/internal/history"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	dir := t.TempDir()
	hist := history.Load(filepath.Join(dir, "history.json"), 1000, 10)
	return NewApp(config.Default(), newTestTable(t), hist)
}

func TestRunClassicDefaultsToSelectStar(t *testing.T) {
	app := newTestApp(t)
	var buf bytes.Buffer

	require.NoError(t, app.RunClassic(&buf, ""))

	out := buf.String()
	assert.Contains(t, out, "id")
	assert.Contains(t, out, "alice")
	assert.Contains(t, out, "(3 rows)")
}

func TestRunClassicRunsGivenQuery(t *testing.T) {
	app := newTestApp(t)
	var buf bytes.Buffer

	require.NoError(t, app.RunClassic(&buf, "SELECT name FROM people WHERE score > 8"))

	out := buf.String()
	assert.Contains(t, out, "alice")
	assert.NotContains(t, out, "bob")
	assert.Contains(t, out, "(1 row)")
}

func TestRunClassicAppendsHistoryEntry(t *testing.T) {
	app := newTestApp(t)
	var buf bytes.Buffer

	require.NoError(t, app.RunClassic(&buf, "SELECT * FROM people"))

	require.Len(t, app.History.Entries, 1)
	assert.Equal(t, "SELECT * FROM people", app.History.Entries[0].Query)
	assert.Equal(t, app.RunID, app.History.Entries[0].RunID)
}

func TestRunClassicTranslatesQueryErrors(t *testing.T) {
	app := newTestApp(t)
	var buf bytes.Buffer

	err := app.RunClassic(&buf, "SELECT nope FROM people")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown column")
}

func TestNewAppAssignsUniqueRunID(t *testing.T) {
	a := newTestApp(t)
	b := newTestApp(t)
	assert.NotEmpty(t, a.RunID)
	assert.NotEqual(t, a.RunID, b.RunID)
}
