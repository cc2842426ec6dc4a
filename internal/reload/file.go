// Package reload reads the TOML settings file and watches it for edits.
package reload

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/atomicstack/kmouse/internal/engine"
	"github.com/atomicstack/kmouse/internal/grid"
)

// Setting names shared by the file, flags and environment.
const (
	KeyCellSize    = "cell-size"
	KeyPrimary     = "primary"
	KeySecondary   = "secondary"
	KeyResetKey    = "reset-key"
	KeyScale       = "scale"
	KeyToggleKey   = "toggle-key"
	KeyFPS         = "fps"
	KeyStartHidden = "start-hidden"
)

// File mirrors config.toml. Absent keys stay nil.
type File struct {
	CellSize    *float64 `toml:"cell_size"`
	Primary     *string  `toml:"primary"`
	Secondary   *string  `toml:"secondary"`
	ResetKey    *string  `toml:"reset_key"`
	Scale       *float64 `toml:"scale"`
	ToggleKey   *string  `toml:"toggle_key"`
	FPS         *int     `toml:"fps"`
	StartHidden *bool    `toml:"start_hidden"`
}

// Decode reads path. Unknown keys are rejected so typos surface.
func Decode(path string) (File, error) {
	var f File
	md, err := toml.DecodeFile(path, &f)
	if err != nil {
		return File{}, fmt.Errorf("decode %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return File{}, fmt.Errorf("decode %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	return f, nil
}

// Pinned names settings fixed by flags or environment; file values never
// override them.
type Pinned map[string]bool

// Merge applies the file's engine settings on top of base and validates the
// result.
func (f File) Merge(base engine.Settings, pinned Pinned) (engine.Settings, error) {
	out := base
	if f.CellSize != nil && !pinned[KeyCellSize] {
		out.CellSize = *f.CellSize
	}
	if f.Scale != nil && !pinned[KeyScale] {
		out.Scale = *f.Scale
	}
	if f.Primary != nil && !pinned[KeyPrimary] {
		a, err := grid.ParseAlphabet(*f.Primary)
		if err != nil {
			return base, fmt.Errorf("primary: %w", err)
		}
		out.Primary = a
	}
	if f.Secondary != nil && !pinned[KeySecondary] {
		a, err := grid.ParseAlphabet(*f.Secondary)
		if err != nil {
			return base, fmt.Errorf("secondary: %w", err)
		}
		out.Secondary = a
	}
	if f.ResetKey != nil && !pinned[KeyResetKey] {
		sym, err := ParseSymbol(*f.ResetKey)
		if err != nil {
			return base, fmt.Errorf("reset_key: %w", err)
		}
		out.ResetKey = sym
	}
	if err := out.Validate(); err != nil {
		return base, err
	}
	return out, nil
}

// ParseSymbol accepts a single character or "esc"/"escape".
func ParseSymbol(s string) (grid.Symbol, error) {
	trimmed := strings.TrimSpace(s)
	switch strings.ToLower(trimmed) {
	case "esc", "escape":
		return grid.SymbolEscape, nil
	}
	runes := []rune(strings.ToUpper(trimmed))
	if len(runes) != 1 {
		return 0, fmt.Errorf("expected a single key, got %q", s)
	}
	return grid.Symbol(runes[0]), nil
}
