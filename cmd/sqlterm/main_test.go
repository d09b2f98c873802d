package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommandClassicModeWritesResultTable(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "people.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("id,name\n1,alice\n2,bob\n"), 0o644))

	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("XDG_CACHE_HOME", dir)

	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--classic", csvPath})

	var stdout bytes.Buffer
	origStdout := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	err = cmd.Execute()

	w.Close()
	os.Stdout = origStdout
	_, _ = stdout.ReadFrom(r)

	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "alice")
}

func TestRootCommandGenerateConfigWritesFile(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.toml")

	cmd := newRootCommand()
	cmd.SetArgs([]string{"--generate-config", "--config", configPath})

	require.NoError(t, cmd.Execute())

	data, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "debounce_millis")
}

func TestRootCommandRequiresADataSource(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	cmd := newRootCommand()
	cmd.SetArgs([]string{"--classic"})

	err := cmd.Execute()
	require.Error(t, err)
}
