package keymap

// KeyCode names a key independent of the terminal backend that produced it.
// Terminal rendering and raw input decoding are out of scope (spec.md §1);
// a KeyMapper only ever sees already-decoded KeyEvents.
type KeyCode int

const (
	KeyRune KeyCode = iota // Rune holds the printable character
	KeyEnter
	KeyEsc
	KeyBackspace
	KeyDelete
	KeyTab
	KeyShiftTab
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyPageUp
	KeyPageDown
	KeyHome
	KeyEnd
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeySpace
)

// Mod is a bitmask of held modifier keys.
type Mod int

const (
	ModNone  Mod = 0
	ModCtrl  Mod = 1 << iota
	ModAlt
	ModShift
)

// KeyEvent is one decoded keypress (spec.md §4.7: "a per-mode table from
// KeyEvent ... to Action").
type KeyEvent struct {
	Code KeyCode
	Rune rune
	Mod  Mod
}

func (k KeyEvent) has(m Mod) bool { return k.Mod&m != 0 }
