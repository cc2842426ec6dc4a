package events

import "github.com/atomicstack/kmouse/internal/logging"

type AppTracer struct{}

var App = AppTracer{}

func (AppTracer) Start(payload map[string]interface{}) {
	logging.Trace("app.start", payload)
}

// WorkAreaFallback records that startup continued with zero margins.
func (AppTracer) WorkAreaFallback(err error) {
	logging.Trace("app.workarea-fallback", map[string]interface{}{"error": errString(err)})
}

// Margins records the physical work-area insets found at startup.
func (AppTracer) Margins(top, left, right, bottom float64) {
	logging.Trace("app.margins", map[string]interface{}{
		"top":    top,
		"left":   left,
		"right":  right,
		"bottom": bottom,
	})
}

// ListenerFailure is emitted once; the hotkey stays disabled afterwards.
func (AppTracer) ListenerFailure(err error) {
	logging.Trace("app.listener-failure", map[string]interface{}{"error": errString(err)})
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
