package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sqlterm/internal/datatable"
)

func TestLoadSourceSingleFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.csv")
	require.NoError(t, os.WriteFile(path, []byte("id,name\n1,alice\n"), 0o644))

	table, err := loadSource(context.Background(), []string{path}, "", sourceOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "name"}, table.ColumnNames())
	assert.Equal(t, 1, table.RowCount())
}

func TestLoadSourceNoPathsOrURLErrors(t *testing.T) {
	_, err := loadSource(context.Background(), nil, "", sourceOptions{})
	require.Error(t, err)
}

func TestLoadSourceDirectoryUsesPattern(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.csv"), []byte("id\n1\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.txt"), []byte("not csv"), 0o644))

	table, err := loadSource(context.Background(), []string{dir}, "", sourceOptions{pattern: "*.csv"})
	require.NoError(t, err)
	assert.Equal(t, 1, table.RowCount())
}

func TestLoadAndUnionFilesUnionsColumnsAndFillsAbsent(t *testing.T) {
	dir := t.TempDir()
	pathA := filepath.Join(dir, "a.csv")
	pathB := filepath.Join(dir, "b.csv")
	require.NoError(t, os.WriteFile(pathA, []byte("id,name\n1,alice\n"), 0o644))
	require.NoError(t, os.WriteFile(pathB, []byte("id,score\n2,9.5\n"), 0o644))

	table, err := loadAndUnionFiles([]string{pathA, pathB}, false)
	require.NoError(t, err)

	names := table.ColumnNames()
	assert.Equal(t, []string{datatable.SourceFileColumn, "id", "name", "score"}, names)
	assert.Equal(t, 2, table.RowCount())

	row0 := table.Row(0)
	assert.Equal(t, datatable.TextValue(pathA), row0[names2idx(names, "SourceFile")])
	assert.True(t, row0[names2idx(names, "score")].Absent)

	row1 := table.Row(1)
	assert.True(t, row1[names2idx(names, "name")].Absent)
}

func names2idx(names []string, target string) int {
	for i, n := range names {
		if n == target {
			return i
		}
	}
	return -1
}
