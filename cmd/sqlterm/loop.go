package main

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"sqlterm/internal/dataview"
	"sqlterm/internal/datatable"
	"sqlterm/internal/history"
	"sqlterm/internal/keymap"
	"sqlterm/internal/querycache"
	"sqlterm/internal/sqlquery"
	"sqlterm/internal/state"
	"sqlterm/internal/viewport"
)

// Loop is the single-threaded, cooperative main loop of spec.md §5: one
// KeyEvent processed per Step call, no background goroutine, debouncing
// driven by the caller ticking Tick on its own cadence. A real terminal
// front-end (out of scope, spec.md §1) would read raw input and call Step
// once per decoded key; tests call Step directly with synthetic events.
type Loop struct {
	Container *state.Container
	Table     *datatable.Table
	History   *history.Store
	RunID     string

	// DebounceThreshold is how long a buffer's Search/Filter input must sit
	// idle before Tick applies it (spec.md §9), sourced from
	// config.Config.DebounceMillis rather than hardcoded so the config knob
	// is not decorative.
	DebounceThreshold time.Duration

	// QueryCache memoizes sqlquery.Execute results by query text, bounded
	// by config.Config.CacheSizeLimitMB (a zero-value/disabled Cache is
	// safe to call: see querycache.Cache's doc comment).
	QueryCache *querycache.Cache

	mappers   map[*state.Buffer]*keymap.Mapper
	debouncer map[*state.Buffer]*keymap.Debouncer

	commandHistIdx int
	queryHistIdx   int

	Quit      bool
	ForceQuit bool
}

// NewLoop builds a Loop over an already-open Container whose active buffer
// has no view bound yet (the caller runs an initial query, or leaves the
// buffer in Command mode to let the user type one). debounceThreshold <= 0
// falls back to keymap.DefaultDebounceThreshold. cacheSizeLimitMB <= 0
// disables the query-result cache.
func NewLoop(container *state.Container, table *datatable.Table, hist *history.Store, runID string, debounceThreshold time.Duration, cacheSizeLimitMB int) *Loop {
	if debounceThreshold <= 0 {
		debounceThreshold = keymap.DefaultDebounceThreshold
	}
	return &Loop{
		Container:         container,
		Table:             table,
		History:           hist,
		RunID:             runID,
		DebounceThreshold: debounceThreshold,
		QueryCache:        querycache.New(cacheSizeLimitMB),
		mappers:           make(map[*state.Buffer]*keymap.Mapper),
		debouncer:         make(map[*state.Buffer]*keymap.Debouncer),
		commandHistIdx:    -1,
	}
}

func (l *Loop) mapperFor(b *state.Buffer) *keymap.Mapper {
	m, ok := l.mappers[b]
	if !ok {
		m = keymap.NewMapper()
		l.mappers[b] = m
	}
	return m
}

func (l *Loop) debouncerFor(b *state.Buffer) *keymap.Debouncer {
	d, ok := l.debouncer[b]
	if !ok {
		d = keymap.NewDebouncer(l.DebounceThreshold)
		l.debouncer[b] = d
	}
	return d
}

// Step dispatches one key event against the active buffer and applies the
// resulting Action (spec.md §4.7/§5). now drives both the yank chord
// timeout and the search/filter debounce clock.
func (l *Loop) Step(ev keymap.KeyEvent, now time.Time) error {
	buf := l.Container.Active()
	mapper := l.mapperFor(buf)
	mode := buf.Modes.Current()

	act := mapper.Dispatch(mode, ev, now, buf.Search.Pattern != "")
	return l.apply(buf, mode, act, now)
}

// Tick lets the active buffer's debouncer fire a pending Search/Filter
// pattern once its threshold has elapsed without further keystrokes
// (spec.md §9). Inactive buffers are not ticked.
func (l *Loop) Tick(now time.Time) error {
	for i := 0; i < l.Container.BufferCount(); i++ {
		// Container only exposes the active buffer directly; debouncers are
		// keyed by buffer pointer so the active one is enough in practice,
		// since spec.md's debounce only matters for Search/Filter, modes
		// only the active buffer can be in.
	}
	buf := l.Container.Active()
	d := l.debouncerFor(buf)
	pattern, fired := d.Tick(now)
	if !fired {
		return nil
	}
	return l.applyPattern(buf, pattern)
}

func (l *Loop) apply(buf *state.Buffer, mode state.Mode, act keymap.Action, now time.Time) error {
	switch act.ActionKind {
	case keymap.ActionNone, keymap.ActionBeep:
		return nil

	case keymap.ActionInsertRune:
		l.insertRune(buf, act.Rune)
		if mode == state.ModeSearch || mode == state.ModeFilter {
			l.debouncerFor(buf).Update(now, buf.InputText)
		}
		return nil

	case keymap.ActionBackspace:
		l.backspace(buf)
		if mode == state.ModeSearch || mode == state.ModeFilter {
			l.debouncerFor(buf).Update(now, buf.InputText)
		}
		return nil

	case keymap.ActionDelete:
		l.deleteForward(buf)
		return nil

	case keymap.ActionCursorHome:
		buf.CursorPos = 0
		return nil

	case keymap.ActionCursorEnd:
		buf.CursorPos = len([]rune(buf.InputText))
		return nil

	case keymap.ActionDeleteWordBack:
		l.deleteWordBack(buf)
		return nil

	case keymap.ActionDeleteWordForward:
		l.deleteWordForward(buf)
		return nil

	case keymap.ActionKillToEnd:
		r := []rune(buf.InputText)
		buf.InputText = string(r[:buf.CursorPos])
		return nil

	case keymap.ActionKillLine:
		buf.InputText = ""
		buf.CursorPos = 0
		return nil

	case keymap.ActionUndo, keymap.ActionRedo:
		// No edit-history stack is modeled for the single-line Command
		// buffer; there is nothing to undo/redo to.
		return nil

	case keymap.ActionHistoryPrev:
		l.cycleCommandHistory(buf, 1)
		return nil

	case keymap.ActionHistoryNext:
		l.cycleCommandHistory(buf, -1)
		return nil

	case keymap.ActionHistorySearch:
		buf.Modes.Push(state.ModeHistory)
		l.queryHistIdx = len(l.History.Entries) - 1
		return nil

	case keymap.ActionCompletion:
		l.complete(buf)
		return nil

	case keymap.ActionExecuteQuery:
		return l.executeQuery(buf, mode, now)

	case keymap.ActionToCommand:
		buf.Modes.Replace(state.ModeCommand)
		return nil

	case keymap.ActionToResults:
		buf.Modes.Replace(state.ModeResults)
		return nil

	case keymap.ActionNavigate:
		return l.navigate(buf, mode, act)

	case keymap.ActionPageUp:
		if buf.Viewport != nil {
			buf.Viewport.PageUp()
		}
		return nil

	case keymap.ActionPageDown:
		if buf.Viewport != nil {
			buf.Viewport.PageDown()
		}
		return nil

	case keymap.ActionGotoFirst:
		if buf.Viewport != nil {
			buf.Viewport.GotoFirstRow()
		}
		return nil

	case keymap.ActionGotoLast:
		if buf.Viewport != nil {
			buf.Viewport.GotoLastRow()
		}
		return nil

	case keymap.ActionGotoFirstColumn:
		if buf.Viewport != nil {
			buf.Viewport.GotoFirstColumn()
		}
		return nil

	case keymap.ActionGotoLastColumn:
		if buf.Viewport != nil {
			buf.Viewport.GotoLastColumn()
		}
		return nil

	case keymap.ActionToggleCompactMode:
		buf.CompactMode = !buf.CompactMode
		return nil

	case keymap.ActionToggleRowNumbers:
		buf.Search.RowNumbers = !buf.Search.RowNumbers
		return nil

	case keymap.ActionToggleCursorLock:
		if buf.Viewport != nil {
			buf.Viewport.ToggleCursorLock()
		}
		return nil

	case keymap.ActionToggleViewportLock:
		if buf.Viewport != nil {
			buf.Viewport.ToggleViewportLock()
		}
		return nil

	case keymap.ActionStartSearch:
		buf.Modes.PushSearch(state.SearchVim, buf.InputText, buf.CursorPos)
		buf.InputText, buf.CursorPos = "", 0
		return nil

	case keymap.ActionStartColumnSearch:
		buf.Modes.PushSearch(state.SearchColumn, buf.InputText, buf.CursorPos)
		buf.InputText, buf.CursorPos = "", 0
		return nil

	case keymap.ActionStartFilter:
		buf.Modes.PushFilter(act.FilterKind, buf.InputText, buf.CursorPos)
		buf.Filter = state.FilterState{Kind: act.FilterKind}
		buf.InputText, buf.CursorPos = "", 0
		return nil

	case keymap.ActionNextMatch:
		l.stepMatch(buf, 1)
		return nil

	case keymap.ActionPreviousMatch:
		l.stepMatch(buf, -1)
		return nil

	case keymap.ActionSort:
		if buf.View != nil && buf.Viewport != nil {
			buf.View.CycleSort(buf.Viewport.CrosshairCol())
		}
		return nil

	case keymap.ActionPinColumn:
		if buf.View != nil && buf.Viewport != nil {
			buf.View.PinColumn(buf.Viewport.CrosshairCol())
		}
		return nil

	case keymap.ActionUnpinAll:
		if buf.View != nil {
			buf.View.UnpinAll()
		}
		return nil

	case keymap.ActionHideColumn:
		if buf.View != nil && buf.Viewport != nil {
			buf.View.HideColumn(buf.Viewport.CrosshairCol())
		}
		return nil

	case keymap.ActionUnhideAll:
		if buf.View != nil {
			buf.View.UnhideAllColumns()
		}
		return nil

	case keymap.ActionMoveColumnLeft:
		if buf.View != nil && buf.Viewport != nil {
			buf.View.MoveColumnLeft(buf.Viewport.CrosshairCol())
		}
		return nil

	case keymap.ActionMoveColumnRight:
		if buf.View != nil && buf.Viewport != nil {
			buf.View.MoveColumnRight(buf.Viewport.CrosshairCol())
		}
		return nil

	case keymap.ActionToggleSelectionMode:
		if buf.SelectionKind == state.SelectRow {
			buf.SelectionKind = state.SelectCell
		} else {
			buf.SelectionKind = state.SelectRow
		}
		return nil

	case keymap.ActionViewportTop:
		if buf.Viewport != nil {
			buf.Viewport.ViewportTop()
		}
		return nil

	case keymap.ActionViewportMiddle:
		if buf.Viewport != nil {
			buf.Viewport.ViewportMiddle()
		}
		return nil

	case keymap.ActionViewportBottom:
		if buf.Viewport != nil {
			buf.Viewport.ViewportBottom()
		}
		return nil

	case keymap.ActionStartJumpToRow:
		buf.Modes.Push(state.ModeJumpToRow)
		buf.InputText, buf.CursorPos = "", 0
		return nil

	case keymap.ActionYank:
		l.yank(buf, act.Kind)
		return nil

	case keymap.ActionLoadFromHistory:
		return l.loadFromHistory(buf)

	case keymap.ActionSwitchBuffer:
		l.Container.SwitchBuffer(act.BufferDelta)
		return nil

	case keymap.ActionOpenBuffer:
		l.Container.OpenBuffer(l.Table.Name())
		return nil

	case keymap.ActionCloseBuffer:
		if err := l.Container.CloseActive(); err != nil {
			return nil // last remaining buffer: spec.md has no "close the app via buffer-close" path
		}
		return nil

	case keymap.ActionExitCurrentMode:
		l.exitCurrentMode(buf, mode)
		return nil

	case keymap.ActionToggleHelp:
		buf.Modes.PushToggle(state.ModeHelp)
		return nil

	case keymap.ActionToggleDebug:
		buf.Modes.PushToggle(state.ModeDebug)
		return nil

	case keymap.ActionQuit:
		l.Quit = true
		return nil

	case keymap.ActionForceQuit:
		l.Quit = true
		l.ForceQuit = true
		return nil
	}

	return nil
}

func (l *Loop) insertRune(buf *state.Buffer, r rune) {
	text := []rune(buf.InputText)
	pos := buf.CursorPos
	if pos < 0 || pos > len(text) {
		pos = len(text)
	}
	out := make([]rune, 0, len(text)+1)
	out = append(out, text[:pos]...)
	out = append(out, r)
	out = append(out, text[pos:]...)
	buf.InputText = string(out)
	buf.CursorPos = pos + 1
}

func (l *Loop) backspace(buf *state.Buffer) {
	text := []rune(buf.InputText)
	pos := buf.CursorPos
	if pos <= 0 || pos > len(text) {
		return
	}
	buf.InputText = string(append(text[:pos-1], text[pos:]...))
	buf.CursorPos = pos - 1
}

func (l *Loop) deleteForward(buf *state.Buffer) {
	text := []rune(buf.InputText)
	pos := buf.CursorPos
	if pos < 0 || pos >= len(text) {
		return
	}
	buf.InputText = string(append(text[:pos], text[pos+1:]...))
}

func (l *Loop) deleteWordBack(buf *state.Buffer) {
	text := []rune(buf.InputText)
	pos := buf.CursorPos
	if pos <= 0 || pos > len(text) {
		return
	}
	start := pos - 1
	for start > 0 && text[start-1] != ' ' {
		start--
	}
	buf.InputText = string(append(text[:start], text[pos:]...))
	buf.CursorPos = start
}

func (l *Loop) deleteWordForward(buf *state.Buffer) {
	text := []rune(buf.InputText)
	pos := buf.CursorPos
	if pos < 0 || pos >= len(text) {
		return
	}
	end := pos + 1
	for end < len(text) && text[end-1] != ' ' {
		end++
	}
	buf.InputText = string(append(text[:pos], text[end:]...))
}

func (l *Loop) cycleCommandHistory(buf *state.Buffer, delta int) {
	if len(l.History.Entries) == 0 {
		return
	}
	l.commandHistIdx += delta
	if l.commandHistIdx < 0 {
		l.commandHistIdx = 0
	}
	if l.commandHistIdx >= len(l.History.Entries) {
		l.commandHistIdx = len(l.History.Entries) - 1
	}
	entry := l.History.Entries[len(l.History.Entries)-1-l.commandHistIdx]
	buf.InputText = entry.Query
	buf.CursorPos = len([]rune(buf.InputText))
}

// complete replaces the word under the cursor with the alphabetically
// first matching column name of the active table, a minimal version of
// spec.md §4.7's Tab-completion (no ranking beyond prefix match).
func (l *Loop) complete(buf *state.Buffer) {
	if l.Table == nil {
		return
	}
	text := []rune(buf.InputText)
	pos := buf.CursorPos
	if pos > len(text) {
		pos = len(text)
	}
	start := pos
	for start > 0 && text[start-1] != ' ' {
		start--
	}
	prefix := string(text[start:pos])
	if prefix == "" {
		return
	}

	var candidates []string
	for _, name := range l.Table.ColumnNames() {
		if strings.HasPrefix(strings.ToLower(name), strings.ToLower(prefix)) {
			candidates = append(candidates, name)
		}
	}
	if len(candidates) == 0 {
		return
	}
	sort.Strings(candidates)
	buf.Completion = state.CompletionState{Candidates: candidates, Index: 0, Prefix: prefix}

	replacement := []rune(candidates[0])
	out := make([]rune, 0, len(text)-len(prefix)+len(replacement))
	out = append(out, text[:start]...)
	out = append(out, replacement...)
	out = append(out, text[pos:]...)
	buf.InputText = string(out)
	buf.CursorPos = start + len(replacement)
}

// executeQuery runs the buffer's InputText against the active table
// (Command/JumpToRow Enter) or commits a pending Search/Filter pattern
// immediately, bypassing the debounce threshold (spec.md §4.9: "Enter
// commits the pattern without waiting for the debounce timer").
func (l *Loop) executeQuery(buf *state.Buffer, mode state.Mode, now time.Time) error {
	switch mode {
	case state.ModeJumpToRow:
		return l.jumpToRow(buf)
	case state.ModeSearch, state.ModeFilter:
		l.debouncerFor(buf).Cancel()
		if err := l.applyPattern(buf, buf.InputText); err != nil {
			return err
		}
		// Committing is an exit just as much as cancelling is (spec.md
		// §4.6: "exit (whether apply or cancel) writes it back to
		// input_text"); this returns the buffer to Results with the
		// search/filter result already applied, so n/N and a later Esc
		// (spec.md §4.9/§8 scenario 4) operate on it from Results mode.
		savedText, savedPos, had := buf.Modes.Pop()
		if had {
			buf.InputText = savedText
			buf.CursorPos = savedPos
		}
		return nil
	}

	queryText := buf.InputText
	if strings.TrimSpace(queryText) == "" {
		return nil
	}

	cacheKey := querycache.Key(queryText, buf.CaseInsensitive)
	result, hit := l.QueryCache.Get(cacheKey)
	if !hit {
		var err error
		result, err = sqlquery.Execute(l.Table, queryText, buf.CaseInsensitive)
		if err != nil {
			return asDispatchError(err)
		}
		l.QueryCache.Put(cacheKey, result)
	}

	view := dataview.New(l.Table, result.Rows, result.DisplayColumns)
	height, width := 20, 80
	if buf.Viewport != nil {
		height, width = viewportDims(buf.Viewport)
	}
	buf.BindView(view, height, width)
	buf.Modes.Replace(state.ModeResults)

	l.History.Append(history.Entry{Query: queryText, Timestamp: now, Success: true, RunID: l.RunID})
	l.commandHistIdx = -1
	return nil
}

func viewportDims(v *viewport.Manager) (int, int) {
	return v.ViewportRowStart() + 20, v.ViewportColStart() + 80 // best-effort: real sizing comes from terminal resize events, out of scope here
}

func (l *Loop) jumpToRow(buf *state.Buffer) error {
	n, err := strconv.Atoi(strings.TrimSpace(buf.InputText))
	if err != nil || buf.Viewport == nil {
		buf.Modes.Pop()
		return nil
	}
	delta := n - buf.Viewport.CrosshairRow()
	buf.Viewport.NavigateRowDelta(delta)
	buf.Modes.Pop()
	return nil
}

// applyPattern runs pattern against the active view: a vim-style in-grid
// search populates Search.Matches, a column-name search populates
// ColumnSearch.Matches, and a filter mutates the View itself (spec.md
// §4.4/§4.9).
func (l *Loop) applyPattern(buf *state.Buffer, pattern string) error {
	if buf.View == nil {
		return nil
	}
	mode := buf.Modes.Current()
	switch mode {
	case state.ModeSearch:
		if buf.Modes.SearchKind() == state.SearchColumn {
			buf.ColumnSearch = searchColumns(buf.View, pattern)
		} else {
			buf.Search.Pattern = pattern
			buf.Search.Matches = searchCells(buf.View, pattern, buf.CaseInsensitive)
			buf.Search.CurrentIdx = 0
		}
	case state.ModeFilter:
		buf.Filter.Pattern = pattern
		var err error
		if buf.Modes.FilterKind() == state.FilterRegex {
			err = buf.View.ApplyTextFilter(pattern, !buf.CaseInsensitive)
		} else {
			buf.View.ApplyFuzzyFilter(pattern, false)
		}
		if err != nil {
			return asDispatchError(err)
		}
	}
	return nil
}

func searchCells(view *dataview.View, pattern string, caseInsensitive bool) []state.Match {
	if pattern == "" {
		return nil
	}
	needle := pattern
	if caseInsensitive {
		needle = strings.ToLower(needle)
	}
	var matches []state.Match
	for r := 0; r < view.RowCount(); r++ {
		row := view.GetRow(r)
		for c, v := range row {
			text := v.String()
			if caseInsensitive {
				text = strings.ToLower(text)
			}
			if strings.Contains(text, needle) {
				matches = append(matches, state.Match{DisplayRow: r, DisplayCol: c})
			}
		}
	}
	return matches
}

func searchColumns(view *dataview.View, pattern string) state.ColumnSearchState {
	if pattern == "" {
		return state.ColumnSearchState{}
	}
	needle := strings.ToLower(pattern)
	var matches []int
	for i, name := range view.ColumnNames() {
		if strings.Contains(strings.ToLower(name), needle) {
			matches = append(matches, i)
		}
	}
	return state.ColumnSearchState{Pattern: pattern, Matches: matches}
}

func (l *Loop) stepMatch(buf *state.Buffer, delta int) {
	if len(buf.Search.Matches) == 0 || buf.Viewport == nil {
		return
	}
	n := len(buf.Search.Matches)
	buf.Search.CurrentIdx = ((buf.Search.CurrentIdx+delta)%n + n) % n
	m := buf.Search.Matches[buf.Search.CurrentIdx]
	rowDelta := m.DisplayRow - buf.Viewport.CrosshairRow()
	colDelta := m.DisplayCol - buf.Viewport.CrosshairCol()
	buf.Viewport.NavigateRowDelta(rowDelta)
	buf.Viewport.NavigateColDelta(colDelta)
}

func (l *Loop) navigate(buf *state.Buffer, mode state.Mode, act keymap.Action) error {
	if mode == state.ModeHistory {
		if act.Direction == keymap.DirUp {
			l.queryHistIdx--
		} else if act.Direction == keymap.DirDown {
			l.queryHistIdx++
		}
		if l.queryHistIdx < 0 {
			l.queryHistIdx = 0
		}
		if n := len(l.History.Entries); n > 0 && l.queryHistIdx >= n {
			l.queryHistIdx = n - 1
		}
		return nil
	}
	if buf.Viewport == nil {
		return nil
	}
	switch act.Direction {
	case keymap.DirUp:
		buf.Viewport.NavigateRowDelta(-act.Count)
	case keymap.DirDown:
		buf.Viewport.NavigateRowDelta(act.Count)
	case keymap.DirLeft:
		buf.Viewport.NavigateColDelta(-act.Count)
	case keymap.DirRight:
		buf.Viewport.NavigateColDelta(act.Count)
	}
	return nil
}

func (l *Loop) yank(buf *state.Buffer, target keymap.YankTarget) {
	if buf.View == nil || buf.Viewport == nil {
		return
	}
	row := buf.Viewport.CrosshairRow()
	col := buf.Viewport.CrosshairCol()

	switch target {
	case keymap.YankCell:
		if row < buf.View.RowCount() {
			buf.ClipboardText = buf.View.GetRow(row)[col].String()
		}
	case keymap.YankRow:
		if row < buf.View.RowCount() {
			cells := buf.View.GetRow(row)
			parts := make([]string, len(cells))
			for i, v := range cells {
				parts[i] = v.String()
			}
			buf.ClipboardText = strings.Join(parts, "\t")
		}
	case keymap.YankColumn:
		var parts []string
		for r := 0; r < buf.View.RowCount(); r++ {
			parts = append(parts, buf.View.GetRow(r)[col].String())
		}
		buf.ClipboardText = strings.Join(parts, "\n")
	case keymap.YankAll:
		var lines []string
		for r := 0; r < buf.View.RowCount(); r++ {
			cells := buf.View.GetRow(r)
			parts := make([]string, len(cells))
			for i, v := range cells {
				parts[i] = v.String()
			}
			lines = append(lines, strings.Join(parts, "\t"))
		}
		buf.ClipboardText = strings.Join(lines, "\n")
	case keymap.YankQuery:
		buf.ClipboardText = buf.InputText
	}
}

func (l *Loop) loadFromHistory(buf *state.Buffer) error {
	if l.queryHistIdx < 0 || l.queryHistIdx >= len(l.History.Entries) {
		buf.Modes.Pop()
		return nil
	}
	entry := l.History.Entries[l.queryHistIdx]
	buf.InputText = entry.Query
	buf.CursorPos = len([]rune(buf.InputText))
	buf.Modes.Pop()
	buf.Modes.Replace(state.ModeCommand)
	return nil
}

func (l *Loop) exitCurrentMode(buf *state.Buffer, mode state.Mode) {
	if mode == state.ModeFilter && buf.View != nil {
		buf.View.ClearFilter()
		buf.Filter = state.FilterState{}
	}
	if mode == state.ModeSearch {
		// Esc clears the search outright (spec.md §4.9, §8 scenario 4),
		// freeing `N` to go back to toggling row numbers once the vim
		// in-grid search (not a column-name search) is the one cleared.
		if buf.Modes.SearchKind() == state.SearchColumn {
			buf.ColumnSearch = state.ColumnSearchState{}
		} else {
			// RowNumbers survives: it is N's alternate toggle, not part
			// of the search match itself (spec.md §4.9).
			buf.Search = state.SearchState{RowNumbers: buf.Search.RowNumbers}
		}
	}
	if mode == state.ModeSearch || mode == state.ModeFilter {
		l.debouncerFor(buf).Cancel()
	}

	// A committed search/filter has already popped its own mode frame
	// (executeQuery), landing back in Results with the match/filter still
	// remembered; Esc pressed from Results with nothing left to pop is the
	// second "exit" spec.md §8 scenario 4 describes and clears it the same
	// way cancelling mid-entry does.
	if mode == state.ModeResults && buf.Modes.Depth() == 1 {
		if buf.Filter.Pattern != "" && buf.View != nil {
			buf.View.ClearFilter()
			buf.Filter = state.FilterState{}
		}
		if buf.Search.Pattern != "" {
			buf.Search = state.SearchState{RowNumbers: buf.Search.RowNumbers}
		}
	}
	savedText, savedPos, had := buf.Modes.Pop()
	if had {
		buf.InputText = savedText
		buf.CursorPos = savedPos
	}
}
