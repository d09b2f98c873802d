package datatable

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// LoadXLSX reads the first sheet of an XLSX workbook into a Table, the
// same way it reads a CSV: row 1 is the header unless noHeaderRow is set
// (SPEC_FULL.md §4.14, grounded on fileloader/xlsx.go's
// ReadXLSXHeaderWithOptions/GetXLSXReader).
func LoadXLSX(name, path string, noHeaderRow bool) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets found in %q", path)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read xlsx rows: %w", err)
	}
	if len(rows) == 0 {
		return New(name, nil, nil)
	}

	var header []string
	var dataRows [][]string
	if noHeaderRow {
		header = NormalizeHeaders(make([]string, len(rows[0])))
		dataRows = rows
	} else {
		header = NormalizeHeaders(rows[0])
		dataRows = rows[1:]
	}

	raw := make([][]rawCell, len(dataRows))
	for i, record := range dataRows {
		raw[i] = toRawRow(record, len(header))
	}
	return BuildFromRaw(name, header, raw)
}
