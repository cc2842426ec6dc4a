package app

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/kmouse/internal/coords"
	"github.com/atomicstack/kmouse/internal/engine"
	"github.com/atomicstack/kmouse/internal/logging"
	"github.com/atomicstack/kmouse/internal/logging/events"
	"github.com/atomicstack/kmouse/internal/platform/x11"
	"github.com/atomicstack/kmouse/internal/reload"
	"github.com/atomicstack/kmouse/internal/ui"
	"github.com/atomicstack/kmouse/internal/visibility"
)

// Used when neither -screen nor the X server provide a size.
const (
	fallbackScreenWidth  = 1920
	fallbackScreenHeight = 1080
)

const reloadQuiet = 250 * time.Millisecond

// Config describes user-provided application options.
type Config struct {
	Display      string
	WindowID     uint32
	ToggleKey    string
	FPS          int
	StartVisible bool
	ScreenWidth  int
	ScreenHeight int
	PrintGrid    bool
	SettingsFile string
	Pinned       reload.Pinned
	BaseSettings engine.Settings
	Settings     engine.Settings
}

// listenFunc blocks delivering toggle-key presses; it returns only on failure.
type listenFunc func(display, key string, onPress func()) error

var listen listenFunc = x11.Listen

// Run bootstraps the desktop collaborators and executes the Bubble Tea
// program that hosts the overlay.
func Run(cfg Config) error {
	d := openDesktop(cfg)
	defer d.Close()

	if cfg.PrintGrid {
		return PrintGrid(os.Stdout, cfg.Settings, d.margin, d.viewport(cfg.Settings.Scale))
	}

	ctrl := visibility.New(d.host, cfg.StartVisible)
	var opts []engine.Option
	if cfg.SettingsFile != "" {
		w, err := reload.NewWatcher(cfg.SettingsFile, cfg.BaseSettings, cfg.Pinned, reloadQuiet)
		if err != nil {
			logging.Error(fmt.Errorf("settings reload disabled: %w", err))
		} else {
			defer w.Stop()
			opts = append(opts, engine.WithUpdates(w.Settings()))
		}
	}
	eng := engine.New(ctrl, d.dispatcher, coords.NewMargins(d.margin), cfg.Settings, opts...)

	startListener(cfg, ctrl)
	ctrl.Sync()

	model := ui.NewModel(eng, ctrl, ui.Options{
		Screen: ui.Size{Width: d.screenW, Height: d.screenH},
		FPS:    cfg.FPS,
	})
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("overlay host: %w", err)
	}
	return nil
}

// startListener runs the hotkey listener for the life of the process. A
// failure is logged once and the hotkey stays disabled.
func startListener(cfg Config, ctrl *visibility.Controller) <-chan error {
	done := make(chan error, 1)
	go func() {
		err := listen(cfg.Display, cfg.ToggleKey, ctrl.Toggle)
		if err != nil {
			logging.Error(fmt.Errorf("toggle hotkey disabled: %w", err))
			events.App.ListenerFailure(err)
		}
		done <- err
	}()
	return done
}

// PrintGrid writes the address table for the given screen. margin is the
// physical work-area inset and vp the logical viewport.
func PrintGrid(w io.Writer, settings engine.Settings, margin coords.Margin, vp engine.Viewport) error {
	ctrl := visibility.New(nil, true)
	eng := engine.New(ctrl, nil, coords.NewMargins(margin), settings)
	for _, line := range GridTable(eng, vp) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
