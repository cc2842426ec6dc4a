package x11

import (
	"fmt"

	"github.com/BurntSushi/xgbutil/ewmh"

	"github.com/atomicstack/kmouse/internal/coords"
)

// WorkArea queries _NET_WORKAREA for the current desktop.
func (s *Session) WorkArea() (coords.WorkArea, error) {
	areas, err := ewmh.WorkareaGet(s.xu)
	if err != nil {
		return coords.WorkArea{}, fmt.Errorf("%w: %v", ErrWorkAreaUnavailable, err)
	}
	desktop, err := ewmh.CurrentDesktopGet(s.xu)
	if err != nil {
		desktop = 0
	}
	return pickWorkArea(areas, desktop)
}

func pickWorkArea(areas []ewmh.Workarea, desktop uint) (coords.WorkArea, error) {
	if len(areas) == 0 {
		return coords.WorkArea{}, fmt.Errorf("%w: _NET_WORKAREA is empty", ErrWorkAreaUnavailable)
	}
	if desktop >= uint(len(areas)) {
		desktop = 0
	}
	a := areas[desktop]
	if a.Width == 0 || a.Height == 0 {
		return coords.WorkArea{}, fmt.Errorf("%w: degenerate work area %dx%d", ErrWorkAreaUnavailable, a.Width, a.Height)
	}
	return coords.WorkArea{X: a.X, Y: a.Y, Width: int(a.Width), Height: int(a.Height)}, nil
}

// StartupMargin derives the physical screen insets from the work area. Failure is
// reported alongside a zero margin so startup can continue.
func (s *Session) StartupMargin() (coords.Margin, error) {
	wa, err := s.WorkArea()
	if err != nil {
		return coords.Zero, err
	}
	w, h := s.ScreenSize()
	return coords.MarginFromWorkArea(w, h, wa), nil
}
