package datatable

import "strings"

// excelColumnName converts a 0-based index to an Excel-style column name:
// 0 -> A, 25 -> Z, 26 -> AA, ... Grounded on fileloader/headers.go.
func excelColumnName(index int) string {
	result := ""
	index++
	for index > 0 {
		index--
		result = string(rune('A'+index%26)) + result
		index /= 26
	}
	return result
}

// NormalizeHeaders replaces empty or whitespace-only headers with
// Excel-style synthetic names taken from the column's position (the
// second column becomes Unnamed_B, the fourth Unnamed_D, ...), matching
// fileloader/headers.go's NormalizeHeaders so every loader (CSV, JSON,
// XLSX) produces consistently-named columns for headerless input.
func NormalizeHeaders(header []string) []string {
	normalized := make([]string, len(header))
	for i, h := range header {
		if strings.TrimSpace(h) == "" {
			normalized[i] = "Unnamed_" + excelColumnName(i)
		} else {
			normalized[i] = h
		}
	}
	return normalized
}
