// Package x11 implements the desktop collaborators on an X11 display: the
// EWMH work-area query, the global toggle hotkey, XTEST pointer injection and
// the overlay window commands.
package x11

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/xgbutil"
)

var (
	ErrWorkAreaUnavailable = errors.New("work area unavailable")
	ErrListenerStart       = errors.New("global key listener could not start")
	ErrListenerStopped     = errors.New("global key listener stopped")
	ErrInputInjection      = errors.New("pointer injection failed")
)

// Session is one connection to the X server.
type Session struct {
	xu *xgbutil.XUtil
}

// Connect opens a connection to display ("" uses $DISPLAY).
func Connect(display string) (*Session, error) {
	xu, err := connect(display)
	if err != nil {
		return nil, err
	}
	return &Session{xu: xu}, nil
}

func connect(display string) (*xgbutil.XUtil, error) {
	var (
		xu  *xgbutil.XUtil
		err error
	)
	if display == "" {
		xu, err = xgbutil.NewConn()
	} else {
		xu, err = xgbutil.NewConnDisplay(display)
	}
	if err != nil {
		return nil, fmt.Errorf("connect to X display %q: %w", display, err)
	}
	return xu, nil
}

// ScreenSize returns the root window size in pixels.
func (s *Session) ScreenSize() (int, int) {
	screen := s.xu.Screen()
	return int(screen.WidthInPixels), int(screen.HeightInPixels)
}

// Close releases the connection.
func (s *Session) Close() {
	if s == nil || s.xu == nil {
		return
	}
	s.xu.Conn().Close()
}
