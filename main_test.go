package main

import (
	"sort"
	"testing"

	"github.com/atomicstack/kmouse/internal/app"
	"github.com/atomicstack/kmouse/internal/config"
	"github.com/atomicstack/kmouse/internal/engine"
	"github.com/atomicstack/kmouse/internal/reload"
)

func TestCollectTTYDetailsIncludesStandardDescriptors(t *testing.T) {
	info := collectTTYDetails()
	if len(info.Probes) != 3 {
		t.Fatalf("expected 3 probe entries, got %d", len(info.Probes))
	}
	expected := []string{"stdin", "stdout", "stderr"}
	for i, name := range expected {
		if info.Probes[i].Name != name {
			t.Fatalf("expected probe %d name %q, got %q", i, name, info.Probes[i].Name)
		}
	}
}

func TestStartupTracePayloadIncludesFlags(t *testing.T) {
	cfg := config.Config{
		App: app.Config{
			Display:      ":1",
			WindowID:     0x3a00007,
			ToggleKey:    "Control_R",
			FPS:          30,
			StartVisible: true,
			SettingsFile: "/tmp/kmouse.toml",
			Pinned:       reload.Pinned{reload.KeyCellSize: true, reload.KeyScale: false},
			Settings:     engine.DefaultSettings(),
		},
		Logging: config.Logging{
			FilePath: "trace.log",
			Trace:    true,
		},
		Flags: map[string]string{
			"display":   ":1",
			"cell-size": "48",
		},
		Args: []string{"-display", ":1", "-cell-size", "48"},
	}

	payload := startupTracePayload(cfg)

	flagsValue, ok := payload["flags"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected flags map in payload")
	}
	if flagsValue["display"] != ":1" {
		t.Fatalf("expected display flag %q, got %v", ":1", flagsValue["display"])
	}
	if flagsValue["cell-size"] != "48" {
		t.Fatalf("expected cell-size 48, got %v", flagsValue["cell-size"])
	}
	if flagsValue["trace"] != true {
		t.Fatalf("expected trace flag true, got %v", flagsValue["trace"])
	}
	if flagsValue["logFile"] != "trace.log" {
		t.Fatalf("expected log file trace.log, got %v", flagsValue["logFile"])
	}

	desktop, ok := payload["desktop"].(desktopDetails)
	if !ok {
		t.Fatalf("expected desktop details in payload")
	}
	if desktop.WindowID != 0x3a00007 || desktop.Display != ":1" {
		t.Fatalf("unexpected desktop details %#v", desktop)
	}
	sort.Strings(desktop.Pinned)
	if len(desktop.Pinned) != 1 || desktop.Pinned[0] != reload.KeyCellSize {
		t.Fatalf("expected only cell-size pinned, got %v", desktop.Pinned)
	}

	settings, ok := payload["settings"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected settings in payload")
	}
	if settings["resetKey"] != "esc" {
		t.Fatalf("expected esc reset key, got %v", settings["resetKey"])
	}
	if settings["primary"] != "ABCDEFGHIJKLMNOPQRSTUVWXYZ" {
		t.Fatalf("expected A-Z primary alphabet, got %v", settings["primary"])
	}

	if _, ok := payload["tty"].(ttyDetails); !ok {
		t.Fatalf("expected tty details in payload")
	}
}
