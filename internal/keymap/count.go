package keymap

// CountAccumulator implements vim-style digit-prefix counting (spec.md
// §4.7): digit keys 1-9, then 0-9, accumulate into an integer that the next
// motion action consumes; any non-motion key clears it.
type CountAccumulator struct {
	value int
	has   bool
}

// Digit folds one digit key into the pending count. The leading digit must
// be 1-9 (a leading 0 is not a count digit — it's the `0` motion, handled
// by the caller before Digit is reached).
func (c *CountAccumulator) Digit(d int) {
	if !c.has {
		c.value = d
		c.has = true
		return
	}
	c.value = c.value*10 + d
}

// Take returns the accumulated count (defaulting to 1 when none was
// entered) and resets the accumulator.
func (c *CountAccumulator) Take() int {
	n := 1
	if c.has {
		n = c.value
	}
	c.Reset()
	return n
}

// Reset clears any pending digits without consuming them.
func (c *CountAccumulator) Reset() {
	c.value = 0
	c.has = false
}

// Pending reports whether a count is currently being accumulated.
func (c *CountAccumulator) Pending() bool { return c.has }
