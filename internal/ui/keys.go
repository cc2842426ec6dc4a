package ui

import (
	"unicode"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/kmouse/internal/grid"
)

type keyMap struct {
	Quit key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// frameKeys reports a single key as both pressed and released. Terminals
// deliver discrete key events, so each one is a complete press and release.
type frameKeys struct {
	sym grid.Symbol
	ok  bool
}

func noKeys() frameKeys {
	return frameKeys{}
}

func keysFor(sym grid.Symbol) frameKeys {
	return frameKeys{sym: sym, ok: true}
}

func (k frameKeys) Pressed(sym grid.Symbol) bool {
	return k.ok && k.sym == sym
}

func (k frameKeys) Released(sym grid.Symbol) bool {
	return k.ok && k.sym == sym
}

// symbolFromKey maps a terminal key to a grid symbol. Letters are
// upper-cased; modified keys and multi-rune pastes are not symbols.
func symbolFromKey(msg tea.KeyMsg) (grid.Symbol, bool) {
	switch msg.Type {
	case tea.KeyEsc:
		return grid.SymbolEscape, true
	case tea.KeyRunes:
		if msg.Alt || len(msg.Runes) != 1 {
			return 0, false
		}
		return grid.Symbol(unicode.ToUpper(msg.Runes[0])), true
	default:
		return 0, false
	}
}
