package keymap

import "time"

// ChordState is the yank chord's small state machine (spec.md §9: "a small
// enum {Idle, YankPending} tracked in the KeyMapper; the pending state times
// out after ~1s").
type ChordState int

const (
	ChordIdle ChordState = iota
	ChordYankPending
)

const yankChordTimeout = time.Second

// yankTargets maps the key that follows a leading `y` to the Yank target it
// produces (spec.md §4.7: "the following key (y, c, a, v, q, r) produces the
// corresponding Yank(target) action").
var yankTargets = map[rune]YankTarget{
	'y': YankRow,
	'c': YankCell,
	'a': YankAll,
	'v': YankColumn,
	'q': YankQuery,
	'r': YankRow,
}

// YankChord tracks the transient "yank pending" substate entered by a bare
// `y` keypress in Results mode.
type YankChord struct {
	state     ChordState
	enteredAt time.Time
}

// Begin enters YankPending at time now.
func (c *YankChord) Begin(now time.Time) {
	c.state = ChordYankPending
	c.enteredAt = now
}

// Expired reports whether a pending chord has timed out as of now.
func (c *YankChord) Expired(now time.Time) bool {
	return c.state == ChordYankPending && now.Sub(c.enteredAt) > yankChordTimeout
}

// Cancel returns the chord to Idle.
func (c *YankChord) Cancel() { c.state = ChordIdle }

// Pending reports whether a yank chord is awaiting its second key.
func (c *YankChord) Pending() bool { return c.state == ChordYankPending }

// Resolve consumes the second key of a pending chord. ok is false if r does
// not complete a known chord (caller cancels and re-dispatches r normally).
func (c *YankChord) Resolve(r rune) (target YankTarget, ok bool) {
	target, ok = yankTargets[r]
	c.Cancel()
	return target, ok
}
