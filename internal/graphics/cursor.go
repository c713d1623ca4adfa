package graphics

import (
	"car-showroom/internal/input"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Cursor captures the mouse for the first-person camera. Requests take effect
// immediately but their events are delivered on the next Flush, the way a
// browser reports pointer-lock changes asynchronously.
type Cursor struct {
	locked   bool
	queue    []bool
	onLock   func()
	onUnlock func()
}

func NewCursor() *Cursor { return &Cursor{} }

func (c *Cursor) Lock() {
	if c.locked {
		return
	}
	rl.DisableCursor()
	c.locked = true
	c.queue = append(c.queue, true)
}

func (c *Cursor) Unlock() {
	if !c.locked {
		return
	}
	rl.EnableCursor()
	c.locked = false
	c.queue = append(c.queue, false)
}

func (c *Cursor) IsLocked() bool { return c.locked }

func (c *Cursor) Subscribe(onLock, onUnlock func()) func() {
	c.onLock, c.onUnlock = onLock, onUnlock
	return func() { c.onLock, c.onUnlock = nil, nil }
}

// Flush releases the capture on Escape or focus loss, then delivers queued events.
func (c *Cursor) Flush() {
	if c.locked && (rl.IsKeyPressed(int32(input.KeyEscape)) || !rl.IsWindowFocused()) {
		c.Unlock()
	}
	q := c.queue
	c.queue = nil
	for _, locked := range q {
		switch {
		case locked && c.onLock != nil:
			c.onLock()
		case !locked && c.onUnlock != nil:
			c.onUnlock()
		}
	}
}

// Keys reads held keys from raylib.
type Keys struct{}

func (Keys) IsKeyDown(k input.KeyCode) bool { return rl.IsKeyDown(int32(k)) }
