package datatable

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"sqlterm/internal/logging"
)

var csvLog = logging.Component("load_csv")

// CSVOptions controls how a CSV file is read into a Table (spec.md §4.1).
type CSVOptions struct {
	NoHeaderRow bool
}

// LoadCSV tokenizes rows directly from r, infers column types by sampling,
// and constructs a Table named after name (the caller-supplied identifier
// or file stem, spec.md §4.1: "Loading from CSV is direct ... do not route
// through JSON").
func LoadCSV(name string, r io.Reader, opts CSVOptions) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	first, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return New(name, nil, nil)
		}
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	var header []string
	var firstDataRow []string
	if opts.NoHeaderRow {
		header = NormalizeHeaders(make([]string, len(first)))
		firstDataRow = first
	} else {
		header = NormalizeHeaders(first)
	}

	var raw [][]rawCell
	if firstDataRow != nil {
		raw = append(raw, toRawRow(firstDataRow, len(header)))
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			csvLog.Warn().Err(err).Str("table", name).Msg("skipping malformed csv row")
			continue
		}
		raw = append(raw, toRawRow(record, len(header)))
	}

	return BuildFromRaw(name, header, raw)
}

func toRawRow(record []string, width int) []rawCell {
	row := make([]rawCell, width)
	for i := 0; i < width; i++ {
		if i < len(record) {
			row[i] = rawText(record[i])
		} else {
			row[i] = rawCell{absent: true}
		}
	}
	return row
}

// TableNameFromPath derives a table identifier from a file path: the file
// stem, extension stripped (spec.md §4.1: "The table name is the file stem
// or caller-supplied identifier").
func TableNameFromPath(path string) string {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	return strings.TrimSuffix(base, ext)
}
