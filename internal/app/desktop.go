package app

import (
	"errors"

	"github.com/atomicstack/kmouse/internal/coords"
	"github.com/atomicstack/kmouse/internal/engine"
	"github.com/atomicstack/kmouse/internal/logging"
	"github.com/atomicstack/kmouse/internal/logging/events"
	"github.com/atomicstack/kmouse/internal/platform/x11"
	"github.com/atomicstack/kmouse/internal/visibility"
)

// desktop bundles the collaborators resolved at startup. Every field has a
// usable fallback so that only the overlay host itself can fail startup.
type desktop struct {
	session    *x11.Session
	margin     coords.Margin
	screenW    int
	screenH    int
	dispatcher engine.Dispatcher
	host       visibility.Host
}

func openDesktop(cfg Config) desktop {
	d := desktop{
		screenW: cfg.ScreenWidth,
		screenH: cfg.ScreenHeight,
	}

	session, err := x11.Connect(cfg.Display)
	if err != nil {
		logging.Error(err)
		d.fallbackMargin(err)
		d.defaultScreen()
		return d
	}
	d.session = session

	if d.screenW <= 0 || d.screenH <= 0 {
		d.screenW, d.screenH = session.ScreenSize()
	}
	if margin, err := session.StartupMargin(); err != nil {
		logging.Error(err)
		d.fallbackMargin(err)
	} else {
		d.margin = margin
	}
	events.App.Margins(d.margin.Top, d.margin.Left, d.margin.Right, d.margin.Bottom)

	if pointer, err := x11.NewPointer(session); err != nil {
		logging.Error(err)
	} else {
		d.dispatcher = pointer
	}
	if cfg.WindowID != 0 {
		d.host = x11.NewWindowHost(session, cfg.WindowID)
	}
	d.defaultScreen()
	return d
}

func (d *desktop) fallbackMargin(err error) {
	if !errors.Is(err, x11.ErrWorkAreaUnavailable) {
		err = errors.Join(x11.ErrWorkAreaUnavailable, err)
	}
	d.margin = coords.Zero
	events.App.WorkAreaFallback(err)
}

func (d *desktop) defaultScreen() {
	if d.screenW <= 0 || d.screenH <= 0 {
		d.screenW, d.screenH = fallbackScreenWidth, fallbackScreenHeight
	}
}

// viewport converts the physical screen size to logical units.
func (d desktop) viewport(scale float64) engine.Viewport {
	if scale <= 0 {
		scale = 1
	}
	return engine.Viewport{Width: float64(d.screenW) / scale, Height: float64(d.screenH) / scale}
}

func (d desktop) Close() {
	d.session.Close()
}
