package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/atomicstack/kmouse/internal/app"
	"github.com/atomicstack/kmouse/internal/engine"
	"github.com/atomicstack/kmouse/internal/grid"
	"github.com/atomicstack/kmouse/internal/reload"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	Flags   map[string]string
	Args    []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	envConfig      = "KMOUSE_CONFIG"
	envDisplay     = "KMOUSE_DISPLAY"
	envWindowID    = "KMOUSE_WINDOW_ID"
	envCellSize    = "KMOUSE_CELL_SIZE"
	envPrimary     = "KMOUSE_PRIMARY"
	envSecondary   = "KMOUSE_SECONDARY"
	envResetKey    = "KMOUSE_RESET_KEY"
	envScale       = "KMOUSE_SCALE"
	envToggleKey   = "KMOUSE_TOGGLE_KEY"
	envFPS         = "KMOUSE_FPS"
	envStartHidden = "KMOUSE_START_HIDDEN"
	envScreen      = "KMOUSE_SCREEN"
	envTrace       = "KMOUSE_TRACE"
	envLogFile     = "KMOUSE_LOG_FILE"

	// Set by most X terminal emulators to the id of their top-level window.
	envTerminalWindow = "WINDOWID"
	envDisplayX       = "DISPLAY"
)

const (
	defaultToggleKey = "Control_R"
	defaultFPS       = 30
)

// settingEnv links each engine-level setting to its environment override.
var settingEnv = map[string]string{
	reload.KeyCellSize:    envCellSize,
	reload.KeyPrimary:     envPrimary,
	reload.KeySecondary:   envSecondary,
	reload.KeyResetKey:    envResetKey,
	reload.KeyScale:       envScale,
	reload.KeyToggleKey:   envToggleKey,
	reload.KeyFPS:         envFPS,
	reload.KeyStartHidden: envStartHidden,
}

// Load parses configuration from CLI arguments, environment variables and
// the settings file.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment. Precedence is
// flag, then environment, then settings file, then built-in default.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)
	defaults := engine.DefaultSettings()

	fs := flag.NewFlagSet("kmouse", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	configPath := fs.String("config", envOrDefault(env, envConfig, ""), "path to the TOML settings file")
	display := fs.String("display", envOrDefault(env, envDisplay, envOrDefault(env, envDisplayX, "")), "X display to connect to")
	windowID := fs.String("window-id", envOrDefault(env, envWindowID, envOrDefault(env, envTerminalWindow, "")), "X window id of the overlay window (defaults to $WINDOWID)")
	cellSize := fs.Float64(reload.KeyCellSize, envOrFloat(env, envCellSize, defaults.CellSize), "desired cell size in logical pixels")
	primary := fs.String(reload.KeyPrimary, envOrDefault(env, envPrimary, defaults.Primary.String()), "symbols for the first address position")
	secondary := fs.String(reload.KeySecondary, envOrDefault(env, envSecondary, defaults.Secondary.String()), "symbols for the second address position")
	resetKey := fs.String(reload.KeyResetKey, envOrDefault(env, envResetKey, "esc"), "key that clears the current selection")
	scale := fs.Float64(reload.KeyScale, envOrFloat(env, envScale, defaults.Scale), "device scale (physical pixels per logical pixel)")
	toggleKey := fs.String(reload.KeyToggleKey, envOrDefault(env, envToggleKey, defaultToggleKey), "X keysym that shows and hides the overlay")
	fps := fs.Int(reload.KeyFPS, envOrInt(env, envFPS, defaultFPS), "frames per second of the render loop")
	startHidden := fs.Bool(reload.KeyStartHidden, envOrBool(env, envStartHidden, false), "start with the overlay hidden")
	screen := fs.String("screen", envOrDefault(env, envScreen, ""), "screen size WxH, used when no X display is reachable")
	printGrid := fs.Bool("print-grid", false, "print the address table for the current screen and exit")
	trace := fs.Bool("trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, ""), "path to the log file")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	explicit := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { explicit[f.Name] = true })
	pinned := reload.Pinned{}
	for key, envKey := range settingEnv {
		if _, ok := env[envKey]; ok || explicit[key] {
			pinned[key] = true
		}
	}

	var (
		file     reload.File
		filePath = *configPath
	)
	switch {
	case filePath != "":
		f, err := reload.Decode(filePath)
		if err != nil {
			return Config{}, err
		}
		file = f
	default:
		if candidate := defaultConfigPath(env); candidate != "" {
			if _, err := os.Stat(candidate); err == nil {
				f, err := reload.Decode(candidate)
				if err != nil {
					return Config{}, err
				}
				file, filePath = f, candidate
			}
		}
	}

	p, err := grid.ParseAlphabet(*primary)
	if err != nil {
		return Config{}, fmt.Errorf("primary: %w", err)
	}
	s, err := grid.ParseAlphabet(*secondary)
	if err != nil {
		return Config{}, fmt.Errorf("secondary: %w", err)
	}
	reset, err := reload.ParseSymbol(*resetKey)
	if err != nil {
		return Config{}, fmt.Errorf("reset-key: %w", err)
	}
	base := engine.Settings{CellSize: *cellSize, Primary: p, Secondary: s, ResetKey: reset, Scale: *scale}
	settings, err := file.Merge(base, pinned)
	if err != nil {
		return Config{}, err
	}

	if file.ToggleKey != nil && !pinned[reload.KeyToggleKey] {
		*toggleKey = *file.ToggleKey
	}
	if file.FPS != nil && !pinned[reload.KeyFPS] {
		*fps = *file.FPS
	}
	if file.StartHidden != nil && !pinned[reload.KeyStartHidden] {
		*startHidden = *file.StartHidden
	}

	wid, err := parseWindowID(*windowID)
	if err != nil {
		return Config{}, err
	}
	screenW, screenH, err := parseScreen(*screen)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		App: app.Config{
			Display:      *display,
			WindowID:     wid,
			ToggleKey:    *toggleKey,
			FPS:          *fps,
			StartVisible: !*startHidden,
			ScreenWidth:  screenW,
			ScreenHeight: screenH,
			PrintGrid:    *printGrid,
			SettingsFile: filePath,
			Pinned:       pinned,
			BaseSettings: base,
			Settings:     settings,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		Flags: map[string]string{
			"config":              filePath,
			"display":             *display,
			"windowID":            *windowID,
			reload.KeyCellSize:    strconv.FormatFloat(settings.CellSize, 'g', -1, 64),
			reload.KeyPrimary:     settings.Primary.String(),
			reload.KeySecondary:   settings.Secondary.String(),
			reload.KeyResetKey:    settings.ResetKey.String(),
			reload.KeyScale:       strconv.FormatFloat(settings.Scale, 'g', -1, 64),
			reload.KeyToggleKey:   *toggleKey,
			reload.KeyFPS:         strconv.Itoa(*fps),
			reload.KeyStartHidden: strconv.FormatBool(*startHidden),
			"screen":              *screen,
			"printGrid":           strconv.FormatBool(*printGrid),
			"trace":               strconv.FormatBool(*trace),
			"logFile":             *logFile,
		},
		Args: append([]string(nil), args...),
	}

	return cfg, nil
}

func defaultConfigPath(env map[string]string) string {
	if dir := strings.TrimSpace(env["XDG_CONFIG_HOME"]); dir != "" {
		return filepath.Join(dir, "kmouse", "config.toml")
	}
	if home := strings.TrimSpace(env["HOME"]); home != "" {
		return filepath.Join(home, ".config", "kmouse", "config.toml")
	}
	return ""
}

func parseWindowID(v string) (uint32, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0, nil
	}
	id, err := strconv.ParseUint(v, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("window-id %q: %w", v, err)
	}
	return uint32(id), nil
}

func parseScreen(v string) (int, int, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0, 0, nil
	}
	parts := strings.SplitN(strings.ToLower(v), "x", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("screen %q: expected WxH", v)
	}
	w, werr := strconv.Atoi(parts[0])
	h, herr := strconv.Atoi(parts[1])
	if werr != nil || herr != nil || w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("screen %q: expected positive WxH", v)
	}
	return w, h, nil
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrFloat(env map[string]string, key string, fallback float64) float64 {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate ensures the loaded configuration is usable.
func Validate(cfg Config) error {
	var errs []error
	if err := cfg.App.Settings.Validate(); err != nil {
		errs = append(errs, err)
	}
	if cfg.App.FPS <= 0 {
		errs = append(errs, fmt.Errorf("fps must be > 0 (got %d)", cfg.App.FPS))
	}
	if strings.TrimSpace(cfg.App.ToggleKey) == "" {
		errs = append(errs, errors.New("toggle key must not be empty"))
	}
	return errors.Join(errs...)
}
