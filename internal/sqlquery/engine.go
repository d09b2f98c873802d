package sqlquery

import (
	"sort"
	"strings"

	"sqlterm/internal/datatable"
	"sqlterm/internal/logging"
)

var engineLog = logging.Component("sqlquery")

// Result is what a successful Execute produces: the row indices (in
// source-table space) that survive WHERE/ORDER BY/LIMIT/OFFSET, and the
// projected column indices from SELECT (spec.md §4.3: "The resulting
// DataView holds all indices passing the predicate as both visible_rows
// and base_rows; display_columns equals the SELECT projection").
type Result struct {
	Table          *datatable.Table
	Rows           []int
	DisplayColumns []int
}

// Execute parses query, validates it against table, evaluates WHERE
// row-by-row, applies ORDER BY with a stable sort, then LIMIT/OFFSET
// (spec.md §4.3). caseInsensitive governs both column-name resolution and
// default string comparisons, per spec.md §9 ("case-insensitivity is
// buffer-level").
func Execute(table *datatable.Table, queryText string, caseInsensitive bool) (*Result, error) {
	q, err := Parse(queryText)
	if err != nil {
		return nil, err
	}

	if !strings.EqualFold(q.Table, table.Name()) {
		return nil, &UnknownTableError{Table: q.Table}
	}

	displayCols, err := resolveDisplayColumns(q, table, caseInsensitive)
	if err != nil {
		return nil, err
	}

	ev := &evaluator{table: table, caseInsensitive: caseInsensitive}
	if q.Where != nil {
		if err := ev.validate(q.Where); err != nil {
			return nil, err
		}
	}

	var rows []int
	for i := 0; i < table.RowCount(); i++ {
		if q.Where == nil {
			rows = append(rows, i)
			continue
		}
		match, err := ev.eval(q.Where, i)
		if err != nil {
			return nil, err
		}
		if match {
			rows = append(rows, i)
		}
	}

	if q.HasOrder {
		idx, _, err := resolveColumn(table, q.OrderBy, caseInsensitive)
		if err != nil {
			return nil, err
		}
		sort.SliceStable(rows, func(i, j int) bool {
			cmp := datatable.Compare(table.Cell(rows[i], idx), table.Cell(rows[j], idx))
			if q.OrderAsc {
				return cmp < 0
			}
			return cmp > 0
		})
	}

	if q.HasLimit {
		start := q.Offset
		if start > len(rows) {
			start = len(rows)
		}
		end := start + q.Limit
		if end > len(rows) {
			end = len(rows)
		}
		if end < start {
			end = start
		}
		rows = rows[start:end]
	} else if q.Offset > 0 {
		if q.Offset > len(rows) {
			rows = nil
		} else {
			rows = rows[q.Offset:]
		}
	}

	engineLog.Debug().Str("table", table.Name()).Int("matched", len(rows)).Msg("query executed")
	return &Result{Table: table, Rows: rows, DisplayColumns: displayCols}, nil
}

func resolveDisplayColumns(q *Query, table *datatable.Table, caseInsensitive bool) ([]int, error) {
	if q.Star {
		cols := make([]int, table.ColumnCount())
		for i := range cols {
			cols[i] = i
		}
		return cols, nil
	}
	cols := make([]int, 0, len(q.Columns))
	for _, name := range q.Columns {
		idx, _, err := resolveColumn(table, name, caseInsensitive)
		if err != nil {
			return nil, err
		}
		cols = append(cols, idx)
	}
	return cols, nil
}

// resolveColumn resolves a column name against table, matching
// case-insensitively only when caseInsensitive is set (spec.md §4.2:
// "Identifiers are resolved against the active table's column names
// case-insensitively when the flag is set; otherwise exact match"),
// suggesting the closest name on failure.
func resolveColumn(table *datatable.Table, name string, caseInsensitive bool) (int, string, error) {
	if base, _, ok := ParseColumnJPath(name); ok {
		name = base
	}
	idx := table.ColumnIndex(name, caseInsensitive)
	if idx >= 0 {
		return idx, table.Columns()[idx].Name, nil
	}
	return -1, "", &UnknownColumnError{Column: name, Suggestion: suggestColumn(table, name)}
}

// suggestColumn returns the closest column name by a small edit-distance
// threshold, or "" if nothing is close.
func suggestColumn(table *datatable.Table, name string) string {
	best, bestDist := "", -1
	lower := strings.ToLower(name)
	for _, c := range table.ColumnNames() {
		d := levenshtein(lower, strings.ToLower(c))
		if bestDist == -1 || d < bestDist {
			best, bestDist = c, d
		}
	}
	if bestDist >= 0 && bestDist <= 2 {
		return best
	}
	return ""
}

func levenshtein(a, b string) int {
	if a == b {
		return 0
	}
	ra, rb := []rune(a), []rune(b)
	prev := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		cur := make([]int, len(rb)+1)
		cur[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			cur[j] = min3(cur[j-1]+1, prev[j]+1, prev[j-1]+cost)
		}
		prev = cur
	}
	return prev[len(rb)]
}

func min3(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}
