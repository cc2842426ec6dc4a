// Package visibility owns the process-wide show/hide state. Two goroutines
// mutate it: the global hotkey listener through Toggle and the render loop
// through Frame. Both go through the same mutex, so a toggle that lands while
// a frame is running is applied after that frame and seen by the next one.
package visibility

import (
	"sync"

	"github.com/atomicstack/kmouse/internal/focus"
	"github.com/atomicstack/kmouse/internal/logging/events"
)

// Host receives fire-and-forget window commands.
type Host interface {
	Show()
	Hide()
	SetFullscreen(on bool)
}

// Snapshot is a consistent read of the shared state.
type Snapshot struct {
	Visible   bool
	Initiated bool
	Focus     focus.State
}

// Controller guards visible, initiated and the focus state.
type Controller struct {
	mu        sync.Mutex
	visible   bool
	initiated bool
	focus     focus.State

	// hostMu orders host commands; it is never taken while mu is held.
	hostMu     sync.Mutex
	host       Host
	hostSynced bool
	hostShown  bool
	fullKnown  bool
	fullscreen bool
}

// New creates a controller. initiated starts false and only ever latches to
// true.
func New(host Host, visible bool) *Controller {
	return &Controller{host: host, visible: visible}
}

// Snapshot returns the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{Visible: c.visible, Initiated: c.initiated, Focus: c.focus}
}

// Toggle flips visibility on behalf of the hotkey listener. Showing resets
// the focus state and latches initiated.
func (c *Controller) Toggle() {
	c.mu.Lock()
	c.visible = !c.visible
	if c.visible {
		c.initiated = true
		c.focus = focus.New()
	}
	visible, initiated := c.visible, c.initiated
	c.mu.Unlock()

	events.Visibility.Toggle(visible, initiated)
	c.Sync()
}

// Frame runs fn with the shared state locked for the whole frame. Host
// commands caused by the frame are issued after the lock is released.
func (c *Controller) Frame(fn func(f *Frame)) {
	f := &Frame{c: c}
	func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		fn(f)
		f.c = nil
	}()
	if f.dismissed {
		c.Sync()
	}
}

// Sync brings the host in line with the current visible flag. Repeated calls
// with no change issue nothing.
func (c *Controller) Sync() {
	if c.host == nil {
		return
	}
	c.hostMu.Lock()
	defer c.hostMu.Unlock()

	c.mu.Lock()
	want := c.visible
	c.mu.Unlock()

	if c.hostSynced && c.hostShown == want {
		return
	}
	c.hostSynced = true
	c.hostShown = want
	if want {
		events.Visibility.Host("show")
		c.host.Show()
		return
	}
	events.Visibility.Host("hide")
	c.host.Hide()
	// The window manager drops fullscreen state on unmap; the next visible
	// frame must ask again.
	c.fullKnown = false
}

// Fullscreen forwards a fullscreen request when it differs from the last one.
func (c *Controller) Fullscreen(on bool) {
	if c.host == nil {
		return
	}
	c.hostMu.Lock()
	defer c.hostMu.Unlock()
	if c.fullKnown && c.fullscreen == on {
		return
	}
	c.fullKnown = true
	c.fullscreen = on
	c.host.SetFullscreen(on)
}

// Frame is the render loop's handle on the locked state. It is only valid
// inside the callback passed to Controller.Frame.
type Frame struct {
	c         *Controller
	dismissed bool
}

func (f *Frame) Visible() bool {
	return f.c.visible
}

func (f *Frame) Initiated() bool {
	return f.c.initiated
}

func (f *Frame) Focus() focus.State {
	return f.c.focus
}

func (f *Frame) SetFocus(s focus.State) {
	f.c.focus = s
}

// Dismiss hides the overlay and resets the focus state after a successful
// targeting action.
func (f *Frame) Dismiss() {
	f.c.visible = false
	f.c.focus = focus.New()
	f.dismissed = true
	events.Visibility.Dismiss()
}
