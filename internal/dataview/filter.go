package dataview

import (
	"regexp"
	"strings"
)

// ApplyTextFilter rebuilds visible_rows by scanning base_rows and keeping
// rows whose concatenated display string matches pattern as a regular
// expression (spec.md §4.4). Prior sort is cleared only if the sorted
// column is no longer displayed (hidden); otherwise it is reapplied over
// the new visible_rows.
func (v *View) ApplyTextFilter(pattern string, caseSensitive bool) error {
	re, err := compilePattern(pattern, caseSensitive)
	if err != nil {
		return err
	}
	v.filter = filterState{active: true, pattern: pattern, caseSens: caseSensitive}
	v.rebuildVisible(func(rowText string) bool {
		return re.MatchString(rowText)
	})
	v.reapplySort()
	return nil
}

// ApplyFuzzyFilter rebuilds visible_rows using a subsequence match when
// !exactMode, else a plain substring match (spec.md §4.4).
func (v *View) ApplyFuzzyFilter(pattern string, exactMode bool) {
	v.filter = filterState{active: true, pattern: pattern, fuzzy: true, exact: exactMode}
	v.rebuildVisible(func(rowText string) bool {
		if exactMode {
			return strings.Contains(strings.ToLower(rowText), strings.ToLower(pattern))
		}
		return isSubsequence(strings.ToLower(pattern), strings.ToLower(rowText))
	})
	v.reapplySort()
}

// ClearFilter restores visible_rows to base_rows and reapplies the current
// sort, if any (spec.md §4.4: "visible_rows <- base_rows; reapply sort if
// set").
func (v *View) ClearFilter() {
	v.filter = filterState{}
	v.visibleRows = append([]int(nil), v.baseRows...)
	v.reapplySort()
}

func (v *View) rebuildVisible(keep func(rowText string) bool) {
	visible := make([]int, 0, len(v.baseRows))
	for _, srcRow := range v.baseRows {
		if keep(v.rowDisplayText(srcRow)) {
			visible = append(visible, srcRow)
		}
	}
	v.visibleRows = visible
}

// rowDisplayText concatenates the displayed columns of a source row, space
// separated, the text a text/fuzzy filter pattern matches against.
func (v *View) rowDisplayText(srcRow int) string {
	row := v.table.Row(srcRow)
	var sb strings.Builder
	for i, srcCol := range v.displayColumns {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(row[srcCol].String())
	}
	return sb.String()
}

func compilePattern(pattern string, caseSensitive bool) (*regexp.Regexp, error) {
	if caseSensitive {
		return regexp.Compile(pattern)
	}
	return regexp.Compile("(?i)" + pattern)
}

// isSubsequence reports whether every rune of needle appears in haystack in
// order, not necessarily contiguously (a fuzzy-finder match).
func isSubsequence(needle, haystack string) bool {
	if needle == "" {
		return true
	}
	ni := 0
	needleRunes := []rune(needle)
	for _, r := range haystack {
		if r == needleRunes[ni] {
			ni++
			if ni == len(needleRunes) {
				return true
			}
		}
	}
	return false
}
