package keymap

import "time"

// DefaultDebounceThreshold is the 500ms search/filter debounce window
// (spec.md §9: "the exact debouncer threshold in the source is 500 ms in
// most paths"; exposed here as a default rather than hardcoded so callers
// can override it, per spec.md's note that implementers may expose it as a
// config value).
const DefaultDebounceThreshold = 500 * time.Millisecond

// Debouncer implements spec.md §5/§9's poll-based debounce: a
// last_input_at timestamp and a pending pattern, checked on every main-loop
// tick. No timer or goroutine is started; Tick must be called once per
// iteration of the main event loop for the pending pattern to ever fire.
type Debouncer struct {
	threshold time.Duration

	lastInputAt time.Time
	pending     string
	hasPending  bool
}

// NewDebouncer builds a Debouncer with the given threshold.
func NewDebouncer(threshold time.Duration) *Debouncer {
	return &Debouncer{threshold: threshold}
}

// Update records a new keystroke's pattern and resets the inactivity clock.
// It does not itself fire anything; Tick (or FlushNow) does.
func (d *Debouncer) Update(now time.Time, pattern string) {
	d.pending = pattern
	d.hasPending = true
	d.lastInputAt = now
}

// Tick checks elapsed time against the last keystroke and, if the threshold
// has passed, returns the pending pattern and true, clearing it. Call this
// once per main-loop iteration while a Search/Filter mode is active.
func (d *Debouncer) Tick(now time.Time) (pattern string, fired bool) {
	if !d.hasPending {
		return "", false
	}
	if now.Sub(d.lastInputAt) <= d.threshold {
		return "", false
	}
	pattern = d.pending
	d.hasPending = false
	return pattern, true
}

// FlushNow forces immediate application of the pending pattern, bypassing
// the threshold (spec.md §4.7: "or immediately on Enter").
func (d *Debouncer) FlushNow() (pattern string, fired bool) {
	if !d.hasPending {
		return "", false
	}
	pattern = d.pending
	d.hasPending = false
	return pattern, true
}

// Cancel discards any pending pattern without applying it (e.g. on Esc).
func (d *Debouncer) Cancel() {
	d.pending = ""
	d.hasPending = false
}

// HasPending reports whether an update is awaiting the threshold or a flush.
func (d *Debouncer) HasPending() bool { return d.hasPending }
