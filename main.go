package main

import (
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/atomicstack/kmouse/internal/app"
	"github.com/atomicstack/kmouse/internal/config"
	"github.com/atomicstack/kmouse/internal/logging"
	"github.com/atomicstack/kmouse/internal/logging/events"
)

func main() {
	runtimeCfg := config.MustLoad()
	if err := config.Validate(runtimeCfg); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	logging.Configure(runtimeCfg.Logging.FilePath)
	logging.SetTraceEnabled(runtimeCfg.Logging.Trace)

	events.App.Start(startupTracePayload(runtimeCfg))

	if err := app.Run(runtimeCfg.App); err != nil {
		logging.Error(err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// startupTracePayload bundles runtime context for trace logging.
func startupTracePayload(cfg config.Config) map[string]interface{} {
	flags := make(map[string]interface{}, len(cfg.Flags))
	for k, v := range cfg.Flags {
		flags[k] = v
	}
	flags["trace"] = cfg.Logging.Trace
	flags["logFile"] = cfg.Logging.FilePath
	payload := map[string]interface{}{
		"argv":  cfg.Args,
		"flags": flags,
		"desktop": desktopDetails{
			Display:      cfg.App.Display,
			WindowID:     cfg.App.WindowID,
			SettingsFile: cfg.App.SettingsFile,
			Pinned:       pinnedKeys(cfg),
		},
		"settings": settingsDetails(cfg),
	}
	if exe, err := os.Executable(); err == nil {
		payload["executable"] = exe
	} else {
		payload["executableError"] = err.Error()
	}
	payload["tty"] = collectTTYDetails()
	return payload
}

type desktopDetails struct {
	Display      string   `json:"display"`
	WindowID     uint32   `json:"window_id,omitempty"`
	SettingsFile string   `json:"settings_file,omitempty"`
	Pinned       []string `json:"pinned,omitempty"`
}

func pinnedKeys(cfg config.Config) []string {
	keys := make([]string, 0, len(cfg.App.Pinned))
	for k, pinned := range cfg.App.Pinned {
		if pinned {
			keys = append(keys, k)
		}
	}
	return keys
}

func settingsDetails(cfg config.Config) map[string]interface{} {
	s := cfg.App.Settings
	return map[string]interface{}{
		"cellSize":  s.CellSize,
		"primary":   s.Primary.String(),
		"secondary": s.Secondary.String(),
		"resetKey":  s.ResetKey.String(),
		"scale":     s.Scale,
		"toggleKey": cfg.App.ToggleKey,
		"fps":       cfg.App.FPS,
		"visible":   cfg.App.StartVisible,
	}
}

type ttyDetails struct {
	Detected *ttyDetected     `json:"detected,omitempty"`
	Probes   []ttyProbeResult `json:"probes"`
}

type ttyDetected struct {
	Source string `json:"source"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type ttyProbeResult struct {
	Name       string `json:"name"`
	IsTerminal bool   `json:"is_terminal"`
	Width      int    `json:"width,omitempty"`
	Height     int    `json:"height,omitempty"`
	Error      string `json:"error,omitempty"`
}

// collectTTYDetails records which standard descriptors the overlay can draw
// on and their size.
func collectTTYDetails() ttyDetails {
	probes := []struct {
		name string
		fd   uintptr
	}{
		{"stdin", os.Stdin.Fd()},
		{"stdout", os.Stdout.Fd()},
		{"stderr", os.Stderr.Fd()},
	}
	results := make([]ttyProbeResult, 0, len(probes))
	var detected *ttyDetected
	for _, probe := range probes {
		entry := ttyProbeResult{Name: probe.name}
		fd := int(probe.fd)
		if fd < 0 || !term.IsTerminal(fd) {
			results = append(results, entry)
			continue
		}
		entry.IsTerminal = true
		if width, height, err := term.GetSize(fd); err == nil {
			entry.Width = width
			entry.Height = height
			if detected == nil {
				detected = &ttyDetected{Source: probe.name, Width: width, Height: height}
			}
		} else {
			entry.Error = err.Error()
		}
		results = append(results, entry)
	}
	return ttyDetails{Detected: detected, Probes: results}
}
