package main

import (
	"testing"

	"github.com/stretchr/testify/require"

	"sqlterm/internal/datatable"
)

func newTestTable(t *testing.T) *datatable.Table {
	t.Helper()
	columns := []datatable.ColumnSpec{
		{Name: "id", InferredType: datatable.Integer},
		{Name: "name", InferredType: datatable.Text},
		{Name: "score", InferredType: datatable.Float},
	}
	rows := []datatable.Row{
		{datatable.IntValue(1), datatable.TextValue("alice"), datatable.FloatValue(9.5)},
		{datatable.IntValue(2), datatable.TextValue("bob"), datatable.FloatValue(7.25)},
		{datatable.IntValue(3), datatable.TextValue("carol"), datatable.FloatValue(8.0)},
	}
	table, err := datatable.New("people", columns, rows)
	require.NoError(t, err)
	return table
}
