package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"sqlterm/internal/dataview"
)

// renderClassic prints view as an aligned plain-text table, the non-TUI
// rendering path for --classic mode and for piping sqlterm's output to
// other tools. Terminal rendering primitives (a raw-mode grid, a
// crosshair, scrolling) are out of scope; this is the one rendering
// surface sqlterm owns directly.
func renderClassic(w io.Writer, view *dataview.View) error {
	tw := tabwriter.NewWriter(w, 0, 2, 2, ' ', 0)

	names := view.ColumnNames()
	fmt.Fprintln(tw, strings.Join(names, "\t"))

	n := view.RowCount()
	for i := 0; i < n; i++ {
		row := view.GetRow(i)
		cells := make([]string, len(row))
		for c, v := range row {
			cells[c] = v.String()
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("render results: %w", err)
	}
	if n == 0 {
		fmt.Fprintln(w, "(0 rows)")
	} else {
		fmt.Fprintf(w, "(%d row", n)
		if n != 1 {
			fmt.Fprint(w, "s")
		}
		fmt.Fprintln(w, ")")
	}
	return nil
}
