package events

import "github.com/atomicstack/kmouse/internal/logging"

type FocusTracer struct{}

type VisibilityTracer struct{}

type PointerTracer struct{}

type ReloadTracer struct{}

var (
	Focus      = FocusTracer{}
	Visibility = VisibilityTracer{}
	Pointer    = PointerTracer{}
	Reload     = ReloadTracer{}
)

func (FocusTracer) Transition(from, to string) {
	logging.Trace("focus.transition", map[string]interface{}{"from": from, "to": to})
}

func (FocusTracer) Reset(from string) {
	logging.Trace("focus.reset", map[string]interface{}{"from": from})
}

func (FocusTracer) Ignored(state, symbol string) {
	logging.Trace("focus.ignored", map[string]interface{}{"state": state, "symbol": symbol})
}

func (VisibilityTracer) Toggle(visible, initiated bool) {
	logging.Trace("visibility.toggle", map[string]interface{}{"visible": visible, "initiated": initiated})
}

func (VisibilityTracer) Dismiss() {
	logging.Trace("visibility.dismiss", nil)
}

func (VisibilityTracer) Host(command string) {
	logging.Trace("visibility.host", map[string]interface{}{"command": command})
}

func (PointerTracer) Dispatch(x, y int, symbol string) {
	logging.Trace("pointer.dispatch", map[string]interface{}{"x": x, "y": y, "symbol": symbol})
}

func (PointerTracer) Error(err error) {
	if err == nil {
		return
	}
	logging.Trace("pointer.error", map[string]interface{}{"error": err.Error()})
}

func (ReloadTracer) Applied(path string) {
	logging.Trace("reload.applied", map[string]interface{}{"path": path})
}

func (ReloadTracer) Error(path string, err error) {
	logging.Trace("reload.error", map[string]interface{}{"path": path, "error": errString(err)})
}
