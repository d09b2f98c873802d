// Package state implements the StateContainer and mode stack of spec.md
// §4.6: the multi-buffer model and the transitions between Command,
// Results, Search, Filter, JumpToRow, Help, Debug, History, and
// ColumnStats modes. Grounded on the teacher's per-tab state shape
// (app/tabs.go's FileTab, app_tabs.go's tab-switching) generalized from
// "one tab per open file" to "one buffer per (table, mode stack, saved
// SQL) tuple", and on app_search.go's cancellable searchState pattern for
// the save/restore-on-Esc behavior of Search/Filter modes.
package state

// Mode identifies one frame of the mode stack (spec.md §3.1, §4.6).
type Mode int

const (
	ModeCommand Mode = iota
	ModeResults
	ModeSearch
	ModeFilter
	ModeJumpToRow
	ModeHelp
	ModeDebug
	ModeHistory
	ModeColumnStats
)

func (m Mode) String() string {
	switch m {
	case ModeCommand:
		return "Command"
	case ModeResults:
		return "Results"
	case ModeSearch:
		return "Search"
	case ModeFilter:
		return "Filter"
	case ModeJumpToRow:
		return "JumpToRow"
	case ModeHelp:
		return "Help"
	case ModeDebug:
		return "Debug"
	case ModeHistory:
		return "History"
	case ModeColumnStats:
		return "ColumnStats"
	default:
		return "Unknown"
	}
}

// SearchKind distinguishes the two search-flavored Search-mode pushes
// (spec.md §4.6: `/` -> VimSearch, `\` -> ColumnSearch).
type SearchKind int

const (
	SearchVim SearchKind = iota
	SearchColumn
)

// FilterKind distinguishes the two Filter-mode pushes (spec.md §4.6:
// `F` -> Regex, `f` -> Fuzzy).
type FilterKind int

const (
	FilterRegex FilterKind = iota
	FilterFuzzy
)

// frame is one entry of the mode stack. It carries whatever a mode needs
// to restore on pop (spec.md §9: "Mode transitions that save/restore UI
// state: implement as a stack of mode frames, each carrying the data it
// needs to restore").
type frame struct {
	mode Mode

	// Saved on entry to Search/Filter, restored to the buffer's input
	// text on exit regardless of apply-or-cancel (spec.md §4.6).
	savedInputText   string
	savedCursorPos   int
	hasSavedInput    bool

	searchKind SearchKind
	filterKind FilterKind
}

// ModeStack is never empty; Command or Results sits at its base (spec.md
// §8 invariant).
type ModeStack struct {
	frames []frame
}

// NewModeStack starts a stack with Command as its sole, base frame.
func NewModeStack() *ModeStack {
	return &ModeStack{frames: []frame{{mode: ModeCommand}}}
}

// Current returns the mode on top of the stack.
func (s *ModeStack) Current() Mode { return s.frames[len(s.frames)-1].mode }

// Depth returns the number of frames, always >= 1.
func (s *ModeStack) Depth() int { return len(s.frames) }

// Replace swaps the base/top frame without pushing (spec.md §4.6: "Command
// -> Enter -> Results: replace, not push").
func (s *ModeStack) Replace(m Mode) {
	s.frames[len(s.frames)-1] = frame{mode: m}
}

// Push enters a new mode frame on top of the stack.
func (s *ModeStack) Push(m Mode) {
	s.frames = append(s.frames, frame{mode: m})
}

// PushSearch pushes a Search frame, saving the buffer's current input text
// so Esc can restore it (spec.md §4.6).
func (s *ModeStack) PushSearch(kind SearchKind, inputText string, cursorPos int) {
	s.frames = append(s.frames, frame{
		mode: ModeSearch, searchKind: kind,
		savedInputText: inputText, savedCursorPos: cursorPos, hasSavedInput: true,
	})
}

// PushFilter is PushSearch's Filter-mode analogue.
func (s *ModeStack) PushFilter(kind FilterKind, inputText string, cursorPos int) {
	s.frames = append(s.frames, frame{
		mode: ModeFilter, filterKind: kind,
		savedInputText: inputText, savedCursorPos: cursorPos, hasSavedInput: true,
	})
}

// PushToggle pushes m unless it is already the current mode, in which case
// it pops instead (spec.md §4.6: "F1/? -> Help: push, toggle").
func (s *ModeStack) PushToggle(m Mode) {
	if s.Current() == m {
		s.Pop()
		return
	}
	s.Push(m)
}

// Pop removes the top frame, unless it is the last one (the stack is never
// empty, spec.md §8). It returns the popped frame's saved input text (if
// any) and whether one was present, so the caller can restore it.
func (s *ModeStack) Pop() (savedInputText string, cursorPos int, hadSavedInput bool) {
	if len(s.frames) <= 1 {
		return "", 0, false
	}
	top := s.frames[len(s.frames)-1]
	s.frames = s.frames[:len(s.frames)-1]
	return top.savedInputText, top.savedCursorPos, top.hasSavedInput
}

// SearchKind reports the active Search frame's kind; valid only when
// Current() == ModeSearch.
func (s *ModeStack) SearchKind() SearchKind { return s.frames[len(s.frames)-1].searchKind }

// FilterKind reports the active Filter frame's kind; valid only when
// Current() == ModeFilter.
func (s *ModeStack) FilterKind() FilterKind { return s.frames[len(s.frames)-1].filterKind }
