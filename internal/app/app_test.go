package app

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atomicstack/kmouse/internal/coords"
	"github.com/atomicstack/kmouse/internal/engine"
	"github.com/atomicstack/kmouse/internal/grid"
	"github.com/atomicstack/kmouse/internal/logging"
	"github.com/atomicstack/kmouse/internal/platform/x11"
	"github.com/atomicstack/kmouse/internal/visibility"
)

func useTempLog(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "kmouse.log")
	logging.Configure(path)
	t.Cleanup(func() { logging.Configure("") })
	return path
}

func twoByTwo(t *testing.T) engine.Settings {
	t.Helper()
	ab, err := grid.ParseAlphabet("ab")
	require.NoError(t, err)
	s := engine.DefaultSettings()
	s.Primary = ab
	s.Secondary = ab
	return s
}

func TestPrintGridListsDrawableAddresses(t *testing.T) {
	var buf bytes.Buffer
	err := PrintGrid(&buf, twoByTwo(t), coords.Zero, engine.Viewport{Width: 128, Height: 128})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, []string{"ADDR", "ROW", "COL", "CENTER", "TARGET"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"AA", "0", "0", "32.0,32.0", "32,32"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"BB", "1", "1", "96.0,96.0", "96,96"}, strings.Fields(lines[4]))
}

func TestPrintGridTargetsIncludeClickMargin(t *testing.T) {
	var buf bytes.Buffer
	margin := coords.Margin{Top: 10, Left: 20}
	err := PrintGrid(&buf, twoByTwo(t), margin, engine.Viewport{Width: 148, Height: 138})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 5)
	// Before the first show the grid is drawn inside the work area and the
	// click margin is added on top.
	assert.Equal(t, []string{"AA", "0", "0", "52.0,42.0", "72,52"}, strings.Fields(lines[1]))
}

func TestPrintGridConvertsMarginAtScale(t *testing.T) {
	var buf bytes.Buffer
	settings := twoByTwo(t)
	settings.Scale = 2
	// A 256x276 physical screen with a 20 px top panel.
	err := PrintGrid(&buf, settings, coords.Margin{Top: 20}, engine.Viewport{Width: 128, Height: 138})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, []string{"AA", "0", "0", "32.0,42.0", "64,104"}, strings.Fields(lines[1]))
}

func TestStartListenerLogsFailureOnce(t *testing.T) {
	logPath := useTempLog(t)
	prev := listen
	t.Cleanup(func() { listen = prev })

	calls := 0
	listen = func(display, key string, onPress func()) error {
		calls++
		return fmt.Errorf("%w: grab failed", x11.ErrListenerStart)
	}

	done := startListener(Config{Display: ":9", ToggleKey: "Control_R"}, visibility.New(nil, true))
	select {
	case err := <-done:
		require.ErrorIs(t, err, x11.ErrListenerStart)
	case <-time.After(2 * time.Second):
		t.Fatal("listener goroutine did not finish")
	}
	assert.Equal(t, 1, calls)

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(data), "toggle hotkey disabled"))
}

func TestStartListenerTogglesController(t *testing.T) {
	useTempLog(t)
	prev := listen
	t.Cleanup(func() { listen = prev })

	listen = func(display, key string, onPress func()) error {
		onPress()
		onPress()
		onPress()
		return x11.ErrListenerStopped
	}
	ctrl := visibility.New(nil, true)
	<-startListener(Config{}, ctrl)

	snap := ctrl.Snapshot()
	assert.False(t, snap.Visible)
	assert.True(t, snap.Initiated)
}

func TestFallbackMarginIsZeroAndWrapped(t *testing.T) {
	useTempLog(t)
	d := desktop{margin: coords.Margin{Top: 5}}
	d.fallbackMargin(errors.New("no ewmh"))
	assert.True(t, d.margin.IsZero())
}

func TestDesktopViewportUsesScale(t *testing.T) {
	d := desktop{screenW: 1600, screenH: 1200}
	assert.Equal(t, engine.Viewport{Width: 800, Height: 600}, d.viewport(2))
	assert.Equal(t, engine.Viewport{Width: 1600, Height: 1200}, d.viewport(0))
}

func TestDefaultScreenFallback(t *testing.T) {
	d := desktop{}
	d.defaultScreen()
	assert.Equal(t, fallbackScreenWidth, d.screenW)
	assert.Equal(t, fallbackScreenHeight, d.screenH)

	d = desktop{screenW: 640, screenH: 480}
	d.defaultScreen()
	assert.Equal(t, 640, d.screenW)
}
