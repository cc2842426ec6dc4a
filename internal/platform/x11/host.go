package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"

	"github.com/atomicstack/kmouse/internal/logging"
)

const (
	stateAbove      = "_NET_WM_STATE_ABOVE"
	stateFullscreen = "_NET_WM_STATE_FULLSCREEN"
)

// WindowHost drives the overlay's top-level window. Commands are fire and
// forget; failures are logged.
type WindowHost struct {
	session *Session
	window  xproto.Window
}

// NewWindowHost wraps the window with the given id.
func NewWindowHost(s *Session, id uint32) *WindowHost {
	return &WindowHost{session: s, window: xproto.Window(id)}
}

// Show maps the window. While it is withdrawn the window manager ignores
// state requests, so the initial _NET_WM_STATE is written as a property
// before the map request.
func (h *WindowHost) Show() {
	states, err := ewmh.WmStateGet(h.session.xu, h.window)
	if err != nil {
		states = nil
	}
	states = withStates(states, stateAbove, stateFullscreen)
	if err := ewmh.WmStateSet(h.session.xu, h.window, states); err != nil {
		logging.Error(fmt.Errorf("set initial state on 0x%x: %w", h.window, err))
	}
	if err := xproto.MapWindowChecked(h.session.xu.Conn(), h.window).Check(); err != nil {
		logging.Error(fmt.Errorf("map overlay window 0x%x: %w", h.window, err))
	}
}

// withStates appends each wanted atom name not already present.
func withStates(states []string, want ...string) []string {
	out := append([]string(nil), states...)
	for _, w := range want {
		found := false
		for _, s := range out {
			if s == w {
				found = true
				break
			}
		}
		if !found {
			out = append(out, w)
		}
	}
	return out
}

func (h *WindowHost) Hide() {
	if err := xproto.UnmapWindowChecked(h.session.xu.Conn(), h.window).Check(); err != nil {
		logging.Error(fmt.Errorf("unmap overlay window 0x%x: %w", h.window, err))
	}
}

func (h *WindowHost) SetFullscreen(on bool) {
	action := ewmh.StateRemove
	if on {
		action = ewmh.StateAdd
	}
	if err := ewmh.WmStateReq(h.session.xu, h.window, action, stateFullscreen); err != nil {
		logging.Error(fmt.Errorf("set fullscreen=%v on 0x%x: %w", on, h.window, err))
	}
}
