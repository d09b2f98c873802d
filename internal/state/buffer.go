package state

import (
	"sqlterm/internal/dataview"
	"sqlterm/internal/viewport"
)

// SelectionKind distinguishes what a yank targets (spec.md §4.7: Yank
// target in {Cell, Row, Column, All, Query}).
type SelectionKind int

const (
	SelectCell SelectionKind = iota
	SelectRow
	SelectColumn
	SelectAll
	SelectQuery
)

// Match is one (display_row, display_col) hit of a vim-style search
// (spec.md §4.9).
type Match struct {
	DisplayRow int
	DisplayCol int
}

// SearchState holds the vim in-grid search's pattern and ordered matches.
type SearchState struct {
	Pattern     string
	Matches     []Match
	CurrentIdx  int
	RowNumbers  bool // toggled by N once search is inactive (spec.md §4.9)
}

// ColumnSearchState holds the column-name search's pattern and matches.
type ColumnSearchState struct {
	Pattern    string
	Matches    []int // display column indices
	CurrentIdx int
}

// FilterState mirrors the view's active filter so the UI can redisplay the
// pattern the user typed (the authoritative filter lives on the View
// itself, spec.md §4.4).
type FilterState struct {
	Kind    FilterKind
	Pattern string
}

// CompletionState holds the Tab-completion candidates for Command mode
// (column/table name completion while typing a query).
type CompletionState struct {
	Candidates []string
	Index      int
	Prefix     string
}

// Buffer is one independent (table, query, view, viewport) unit; sqlterm
// is multi-buffer the way the teacher is multi-tab (spec.md §3.1, grounded
// on app/tabs.go's FileTab-per-open-file generalized to one buffer per
// query/table pairing, not strictly one per file).
type Buffer struct {
	Name  string
	Modes *ModeStack

	InputText string
	CursorPos int

	View     *dataview.View
	Viewport *viewport.Manager

	CaseInsensitive bool
	CompactMode     bool

	Search       SearchState
	ColumnSearch ColumnSearchState
	Filter       FilterState
	Completion   CompletionState

	SelectionKind  SelectionKind
	SelectionRow   int
	SelectionCol   int
	ClipboardText  string

	Count int // vim-style pending count accumulator (spec.md §4.7)
}

// NewBuffer starts a fresh buffer in Command mode with no view yet bound
// (a buffer exists before its first query executes).
func NewBuffer(name string) *Buffer {
	return &Buffer{Name: name, Modes: NewModeStack()}
}

// BindView attaches a freshly executed query's view/viewport to the
// buffer, replacing whatever was there (spec.md §5: "When a new query
// executes, the new DataView replaces the old; the old is dropped when no
// references remain").
func (b *Buffer) BindView(view *dataview.View, viewportHeight, viewportWidth int) {
	b.View = view
	b.Viewport = viewport.New(view, viewportHeight, viewportWidth)
}
