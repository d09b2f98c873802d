package state

import "fmt"

// Container is the top-level StateContainer of spec.md §3.1/§4.6: it owns
// every open Buffer and which one is active. It holds no case-insensitivity
// default: NewBuffer starts every buffer with CaseInsensitive false. It is the single object
// the main loop mutates each event-loop iteration (spec.md §5).
type Container struct {
	buffers []*Buffer
	active  int
}

// NewContainer starts a container with one buffer already open.
func NewContainer(initialBufferName string) *Container {
	return &Container{buffers: []*Buffer{NewBuffer(initialBufferName)}, active: 0}
}

// Active returns the currently selected buffer.
func (c *Container) Active() *Buffer { return c.buffers[c.active] }

// BufferCount reports how many buffers are open.
func (c *Container) BufferCount() int { return len(c.buffers) }

// OpenBuffer appends a new buffer and switches to it.
func (c *Container) OpenBuffer(name string) *Buffer {
	b := NewBuffer(name)
	c.buffers = append(c.buffers, b)
	c.active = len(c.buffers) - 1
	return b
}

// CloseActive closes the active buffer, unless it is the only one open.
// The new active buffer is the one before it, or the new first buffer if
// the closed buffer was at index 0.
func (c *Container) CloseActive() error {
	if len(c.buffers) <= 1 {
		return fmt.Errorf("cannot close the last remaining buffer")
	}
	idx := c.active
	c.buffers = append(c.buffers[:idx:idx], c.buffers[idx+1:]...)
	if idx > 0 {
		c.active = idx - 1
	}
	return nil
}

// SwitchBuffer moves the active index by delta, wrapping around (spec.md
// §4.7: `SwitchBuffer(delta)`).
func (c *Container) SwitchBuffer(delta int) {
	n := len(c.buffers)
	c.active = ((c.active+delta)%n + n) % n
}
