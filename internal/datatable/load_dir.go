package datatable

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"

	"sqlterm/internal/logging"
)

var dirLog = logging.Component("load_dir")

// DirOptions controls directory/glob ingestion (SPEC_FULL.md §4.12).
type DirOptions struct {
	Pattern          string // doublestar glob, relative to the root dir, default "*"
	NoHeaderRow      bool
	IncludeSourceCol bool // force a SourceFile column even for a single match
}

// SourceFileColumn is the synthetic column name added when a directory load
// spans more than one file (SPEC_FULL.md §4.12, grounded on fileloader's
// IncludeSourceColumn file option).
const SourceFileColumn = "SourceFile"

// LoadDir discovers every file under dir matching opts.Pattern (default
// "*"), loads each with LoadFile, and unions their column sets the same way
// LoadJSON unions object fields: a column present in some files but not
// others is Absent there. When more than one file matches (or
// opts.IncludeSourceCol is set), a SourceFile column carrying the matched
// path is added as the first column so rows remain traceable to their
// origin file.
func LoadDir(name, dir string, opts DirOptions) (*Table, error) {
	pattern := opts.Pattern
	if pattern == "" {
		pattern = "*"
	}

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve directory %q: %w", dir, err)
	}

	matches, err := doublestar.FilepathGlob(filepath.Join(absDir, pattern))
	if err != nil {
		return nil, fmt.Errorf("glob %q: %w", pattern, err)
	}

	var files []string
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil || info.IsDir() {
			continue
		}
		files = append(files, m)
	}
	sort.Strings(files)

	if len(files) == 0 {
		return nil, fmt.Errorf("no files matched pattern %q under %q", pattern, dir)
	}

	tables := make([]*Table, 0, len(files))
	for _, f := range files {
		t, err := LoadFile(f, LoadOptions{NoHeaderRow: opts.NoHeaderRow})
		if err != nil {
			dirLog.Warn().Err(err).Str("path", f).Msg("skipping unreadable file")
			continue
		}
		tables = append(tables, t)
	}
	if len(tables) == 0 {
		return nil, fmt.Errorf("no files under %q could be loaded", dir)
	}

	withSource := opts.IncludeSourceCol || len(tables) > 1

	colIndex := make(map[string]int)
	var header []string
	if withSource {
		colIndex[SourceFileColumn] = 0
		header = append(header, SourceFileColumn)
	}
	for _, t := range tables {
		for _, c := range t.ColumnNames() {
			if _, ok := colIndex[c]; !ok {
				colIndex[c] = len(header)
				header = append(header, c)
			}
		}
	}

	var rows []Row
	for i, t := range tables {
		names := t.ColumnNames()
		for r := 0; r < t.RowCount(); r++ {
			row := make(Row, len(header))
			for c := range row {
				row[c] = AbsentValue()
			}
			if withSource {
				row[colIndex[SourceFileColumn]] = TextValue(files[i])
			}
			src := t.Row(r)
			for c, colName := range names {
				row[colIndex[colName]] = src[c]
			}
			rows = append(rows, row)
		}
	}

	columns := make([]ColumnSpec, len(header))
	for i, h := range header {
		columns[i] = ColumnSpec{Name: h, InferredType: columnTypeAcross(tables, h, withSource && h == SourceFileColumn)}
	}

	return New(name, columns, rows)
}

// columnTypeAcross reports the inferred type a unioned column should carry:
// Text if it is the synthetic SourceFile column, the single contributing
// table's type if only one table has it, or Mixed if contributing tables
// disagree on its type (same rule BuildFromRaw applies within one file).
func columnTypeAcross(tables []*Table, name string, isSourceCol bool) ColumnType {
	if isSourceCol {
		return Text
	}
	var found ColumnType
	seen := false
	for _, t := range tables {
		idx := t.ColumnIndex(name, false)
		if idx < 0 {
			continue
		}
		ct := t.Columns()[idx].InferredType
		if !seen {
			found, seen = ct, true
			continue
		}
		if found != ct {
			return Mixed
		}
	}
	if !seen {
		return Null
	}
	return found
}
