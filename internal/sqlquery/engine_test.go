package sqlquery_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sqlterm/internal/datatable"
	"sqlterm/internal/sqlquery"
)

func sampleTable(t *testing.T) *datatable.Table {
	t.Helper()
	cols := []datatable.ColumnSpec{
		{Name: "id", InferredType: datatable.Integer},
		{Name: "name", InferredType: datatable.Text},
		{Name: "status", InferredType: datatable.Text},
	}
	rows := []datatable.Row{
		{datatable.IntValue(1), datatable.TextValue("a"), datatable.TextValue("x")},
		{datatable.IntValue(2), datatable.TextValue("b"), datatable.TextValue("y")},
		{datatable.IntValue(3), datatable.TextValue("c"), datatable.TextValue("x")},
	}
	tbl, err := datatable.New("t", cols, rows)
	require.NoError(t, err)
	return tbl
}

// TestSelectWhereEquals is spec.md §8 scenario 1, verbatim.
func TestSelectWhereEquals(t *testing.T) {
	tbl := sampleTable(t)
	res, err := sqlquery.Execute(tbl, "SELECT * FROM t WHERE status = 'x'", false)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 2}, res.Rows)
	assert.Equal(t, []int{0, 1, 2}, res.DisplayColumns)
}

func TestSelectStarYieldsFullRowAndColumnCount(t *testing.T) {
	tbl := sampleTable(t)
	res, err := sqlquery.Execute(tbl, "SELECT * FROM t", false)
	require.NoError(t, err)
	assert.Len(t, res.Rows, tbl.RowCount())
	assert.Len(t, res.DisplayColumns, tbl.ColumnCount())
}

func TestSelectColumnProjection(t *testing.T) {
	tbl := sampleTable(t)
	res, err := sqlquery.Execute(tbl, "SELECT name, id FROM t", false)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 0}, res.DisplayColumns)
}

func TestWhereAndOr(t *testing.T) {
	tbl := sampleTable(t)
	res, err := sqlquery.Execute(tbl, "SELECT * FROM t WHERE status = 'x' AND id > 1", false)
	require.NoError(t, err)
	assert.Equal(t, []int{2}, res.Rows)

	res, err = sqlquery.Execute(tbl, "SELECT * FROM t WHERE status = 'y' OR id = 1", false)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, res.Rows)
}

func TestWhereNot(t *testing.T) {
	tbl := sampleTable(t)
	res, err := sqlquery.Execute(tbl, "SELECT * FROM t WHERE NOT status = 'x'", false)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, res.Rows)
}

func TestWhereIn(t *testing.T) {
	tbl := sampleTable(t)
	res, err := sqlquery.Execute(tbl, "SELECT * FROM t WHERE id IN (1, 3)", false)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 2}, res.Rows)
}

func TestWhereBetween(t *testing.T) {
	tbl := sampleTable(t)
	res, err := sqlquery.Execute(tbl, "SELECT * FROM t WHERE id BETWEEN 2 AND 3", false)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, res.Rows)
}

func TestWhereLike(t *testing.T) {
	tbl := sampleTable(t)
	res, err := sqlquery.Execute(tbl, "SELECT * FROM t WHERE name LIKE 'a%'", false)
	require.NoError(t, err)
	assert.Equal(t, []int{0}, res.Rows)
}

func TestMethodCallContains(t *testing.T) {
	tbl := sampleTable(t)
	res, err := sqlquery.Execute(tbl, "SELECT * FROM t WHERE name.Contains('b')", false)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, res.Rows)
}

func TestMethodCallContainsIgnoreCase(t *testing.T) {
	tbl := sampleTable(t)
	res, err := sqlquery.Execute(tbl, "SELECT * FROM t WHERE name.Contains_IGNORE_CASE('B')", false)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, res.Rows)
}

func TestOrderByDescThenLimitOffset(t *testing.T) {
	tbl := sampleTable(t)
	res, err := sqlquery.Execute(tbl, "SELECT * FROM t ORDER BY id DESC LIMIT 1 OFFSET 1", false)
	require.NoError(t, err)
	require.Len(t, res.Rows, 1)
	assert.Equal(t, 1, res.Rows[0]) // id=2 is second-highest
}

func TestUnknownColumnReportsSuggestion(t *testing.T) {
	tbl := sampleTable(t)
	_, err := sqlquery.Execute(tbl, "SELECT * FROM t WHERE statuz = 'x'", false)
	require.Error(t, err)
	var unk *sqlquery.UnknownColumnError
	require.ErrorAs(t, err, &unk)
	assert.Equal(t, "status", unk.Suggestion)
}

func TestUnknownTable(t *testing.T) {
	tbl := sampleTable(t)
	_, err := sqlquery.Execute(tbl, "SELECT * FROM other", false)
	var unk *sqlquery.UnknownTableError
	require.ErrorAs(t, err, &unk)
}

func TestParseErrorHasPosition(t *testing.T) {
	tbl := sampleTable(t)
	_, err := sqlquery.Execute(tbl, "SELECT FROM t", false)
	var perr *sqlquery.ParseError
	require.ErrorAs(t, err, &perr)
}

func TestJPathColumnAccess(t *testing.T) {
	cols := []datatable.ColumnSpec{
		{Name: "id", InferredType: datatable.Integer},
		{Name: "payload", InferredType: datatable.Text},
	}
	rows := []datatable.Row{
		{datatable.IntValue(1), datatable.TextValue(`{"duration": 12}`)},
		{datatable.IntValue(2), datatable.TextValue(`{"duration": 99}`)},
	}
	tbl, err := datatable.New("t", cols, rows)
	require.NoError(t, err)

	res, err := sqlquery.Execute(tbl, `SELECT * FROM t WHERE "payload{$.duration}" > 50`, false)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, res.Rows)
}

func TestCaseInsensitiveColumnResolution(t *testing.T) {
	tbl := sampleTable(t)
	res, err := sqlquery.Execute(tbl, "SELECT * FROM t WHERE STATUS = 'x'", true)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 2}, res.Rows)
}
