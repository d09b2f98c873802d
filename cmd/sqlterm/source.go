package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"sqlterm/internal/datatable"
)

// sourceOptions collects the flags that influence how loadSource ingests
// its data, independent of which of the file/dir/url paths it takes.
type sourceOptions struct {
	noHeaderRow      bool
	pattern          string // doublestar glob for directory ingestion, SPEC_FULL.md §4.12
	includeSourceCol bool   // force a SourceFile column even for a single match
	timeout          time.Duration
}

// loadSource resolves the data the process will query: a single file, a
// directory (globbed the way LoadDir does), several files unioned the same
// way, or a --url remote fetch. Exactly one of paths/url is expected to be
// meaningful; callers validate that before calling in.
func loadSource(ctx context.Context, paths []string, url string, opts sourceOptions) (*datatable.Table, error) {
	if url != "" {
		httpOpts := datatable.DefaultHTTPOptions()
		httpOpts.NoHeaderRow = opts.noHeaderRow
		if opts.timeout > 0 {
			httpOpts.Timeout = opts.timeout
		}
		return datatable.LoadHTTP(ctx, "", url, httpOpts)
	}

	if len(paths) == 0 {
		return nil, fmt.Errorf("no data source given: pass a file path, a directory, or --url")
	}

	if len(paths) == 1 {
		info, err := os.Stat(paths[0])
		if err != nil {
			return nil, fmt.Errorf("stat %q: %w", paths[0], err)
		}
		if info.IsDir() {
			return datatable.LoadDir(datatable.TableNameFromPath(paths[0]), paths[0], datatable.DirOptions{
				Pattern:          opts.pattern,
				NoHeaderRow:      opts.noHeaderRow,
				IncludeSourceCol: opts.includeSourceCol,
			})
		}
		return datatable.LoadFile(paths[0], datatable.LoadOptions{NoHeaderRow: opts.noHeaderRow})
	}

	return loadAndUnionFiles(paths, opts.noHeaderRow)
}

// loadAndUnionFiles loads each of paths independently and unions their
// column sets, the same rule LoadDir applies to a directory's matches: a
// column present in some files but absent in others reads as Absent there,
// and a SourceFile column is added so rows stay traceable to their file
// (spec.md §4.12).
func loadAndUnionFiles(paths []string, noHeaderRow bool) (*datatable.Table, error) {
	tables := make([]*datatable.Table, 0, len(paths))
	for _, p := range paths {
		t, err := datatable.LoadFile(p, datatable.LoadOptions{NoHeaderRow: noHeaderRow})
		if err != nil {
			return nil, fmt.Errorf("load %q: %w", p, err)
		}
		tables = append(tables, t)
	}

	colIndex := make(map[string]int)
	header := []string{datatable.SourceFileColumn}
	colIndex[datatable.SourceFileColumn] = 0
	for _, t := range tables {
		for _, c := range t.ColumnNames() {
			if _, ok := colIndex[c]; !ok {
				colIndex[c] = len(header)
				header = append(header, c)
			}
		}
	}

	columnType := make(map[string]datatable.ColumnType)
	for _, t := range tables {
		cols := t.Columns()
		for _, c := range cols {
			if existing, seen := columnType[c.Name]; seen && existing != c.InferredType {
				columnType[c.Name] = datatable.Mixed
			} else if !seen {
				columnType[c.Name] = c.InferredType
			}
		}
	}

	var rows []datatable.Row
	for i, t := range tables {
		names := t.ColumnNames()
		for r := 0; r < t.RowCount(); r++ {
			row := make(datatable.Row, len(header))
			for c := range row {
				row[c] = datatable.AbsentValue()
			}
			row[0] = datatable.TextValue(paths[i])
			src := t.Row(r)
			for c, name := range names {
				row[colIndex[name]] = src[c]
			}
			rows = append(rows, row)
		}
	}

	columns := make([]datatable.ColumnSpec, len(header))
	columns[0] = datatable.ColumnSpec{Name: datatable.SourceFileColumn, InferredType: datatable.Text}
	for i := 1; i < len(header); i++ {
		columns[i] = datatable.ColumnSpec{Name: header[i], InferredType: columnType[header[i]]}
	}

	return datatable.New("union", columns, rows)
}
