package dataview_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sqlterm/internal/datatable"
	"sqlterm/internal/dataview"
)

func sampleTable(t *testing.T) *datatable.Table {
	t.Helper()
	cols := []datatable.ColumnSpec{
		{Name: "id", InferredType: datatable.Integer},
		{Name: "name", InferredType: datatable.Text},
		{Name: "status", InferredType: datatable.Text},
	}
	rows := []datatable.Row{
		{datatable.IntValue(1), datatable.TextValue("charlie"), datatable.TextValue("x")},
		{datatable.IntValue(2), datatable.TextValue("alice"), datatable.TextValue("y")},
		{datatable.IntValue(3), datatable.TextValue("bob"), datatable.TextValue("x")},
	}
	tbl, err := datatable.New("t", cols, rows)
	require.NoError(t, err)
	return tbl
}

func fullView(t *testing.T) *dataview.View {
	tbl := sampleTable(t)
	rows := []int{0, 1, 2}
	cols := []int{0, 1, 2}
	return dataview.New(tbl, rows, cols)
}

func TestSelectStarInvariant(t *testing.T) {
	v := fullView(t)
	assert.Equal(t, 3, v.RowCount())
	assert.Equal(t, 3, v.ColumnCount())
}

func TestCycleSortThreeTimesIsIdentity(t *testing.T) {
	v := fullView(t)
	before := make([]int, v.RowCount())
	for i := range before {
		before[i] = v.SourceRowIndex(i)
	}

	v.CycleSort(1) // name ascending
	v.CycleSort(1) // name descending
	v.CycleSort(1) // back to None/insertion order

	after := make([]int, v.RowCount())
	for i := range after {
		after[i] = v.SourceRowIndex(i)
	}
	assert.Equal(t, before, after)
}

func TestCycleSortAscendingThenDescending(t *testing.T) {
	v := fullView(t)
	v.CycleSort(1) // name ascending: alice, bob, charlie -> source 1,2,0
	assert.Equal(t, []int{1, 2, 0}, []int{v.SourceRowIndex(0), v.SourceRowIndex(1), v.SourceRowIndex(2)})

	v.CycleSort(1) // descending: charlie, bob, alice -> source 0,2,1
	assert.Equal(t, []int{0, 2, 1}, []int{v.SourceRowIndex(0), v.SourceRowIndex(1), v.SourceRowIndex(2)})
}

func TestClearFilterIsIdentityOnBaseRows(t *testing.T) {
	v := fullView(t)
	require.NoError(t, v.ApplyTextFilter("x", true))
	assert.Equal(t, 2, v.RowCount())

	v.ClearFilter()
	assert.Equal(t, 3, v.RowCount())
}

func TestHideThenUnhideIsIdentityOnDisplayColumns(t *testing.T) {
	v := fullView(t)
	before := v.DisplayColumns()

	v.HideColumn(1)
	assert.Equal(t, 2, v.ColumnCount())

	v.UnhideAllColumns()
	assert.Equal(t, before, v.DisplayColumns())
}

func TestPinIsIdempotent(t *testing.T) {
	v := fullView(t)
	v.PinColumn(2)
	assert.Equal(t, 1, v.PinnedCount())
	assert.Equal(t, []int{2, 0, 1}, v.DisplayColumns())

	v.PinColumn(0) // already pinned (position 0 < pinnedCount)
	assert.Equal(t, 1, v.PinnedCount())
	assert.Equal(t, []int{2, 0, 1}, v.DisplayColumns())
}

func TestUnpinAllPreservesOrder(t *testing.T) {
	v := fullView(t)
	v.PinColumn(2)
	v.UnpinAll()
	assert.Equal(t, 0, v.PinnedCount())
	assert.Equal(t, []int{2, 0, 1}, v.DisplayColumns())
}

func TestMoveColumnNeverCrossesPinBoundary(t *testing.T) {
	v := fullView(t)
	v.PinColumn(0) // pin id: pinnedCount=1, displayColumns=[0,1,2]
	v.MoveColumnRight(0) // would cross into non-pinned partition: no-op
	assert.Equal(t, []int{0, 1, 2}, v.DisplayColumns())
}

func TestGetRowPermutesPerDisplayColumns(t *testing.T) {
	v := fullView(t)
	v.PinColumn(2) // status first now
	row := v.GetRow(0)
	assert.Equal(t, "x", row[0].String())
	assert.Equal(t, "1", row[1].String())
}
