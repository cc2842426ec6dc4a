// Package focus holds the two-level selection state machine. A first symbol
// release pins the first address position, a second pins the last one and
// locks the cell; the lock is what enables the micro grid.
package focus

import (
	"fmt"

	"github.com/atomicstack/kmouse/internal/grid"
)

// Phase names the state machine's states.
type Phase int

const (
	PhaseEmpty Phase = iota
	PhaseFirstChosen
	PhaseLocked
)

func (p Phase) String() string {
	switch p {
	case PhaseEmpty:
		return "empty"
	case PhaseFirstChosen:
		return "first-chosen"
	case PhaseLocked:
		return "locked"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// State is the current selection. The zero value is Empty.
type State struct {
	first    grid.Symbol
	last     grid.Symbol
	hasFirst bool
	hasLast  bool
}

// New returns an Empty state.
func New() State {
	return State{}
}

// Phase derives the machine state from the pinned symbols.
func (s State) Phase() Phase {
	switch {
	case s.hasFirst && s.hasLast:
		return PhaseLocked
	case s.hasFirst:
		return PhaseFirstChosen
	default:
		return PhaseEmpty
	}
}

// First returns the pinned first symbol, if any.
func (s State) First() (grid.Symbol, bool) {
	return s.first, s.hasFirst
}

// Last returns the pinned last symbol, if any.
func (s State) Last() (grid.Symbol, bool) {
	return s.last, s.hasLast
}

// IsComplete reports whether both positions are pinned.
func (s State) IsComplete() bool {
	return s.Phase() == PhaseLocked
}

// Address returns the locked address.
func (s State) Address() (grid.Address, bool) {
	if !s.IsComplete() {
		return grid.Address{}, false
	}
	return grid.Address{First: s.first, Last: s.last}, true
}

// Matches reports whether addr survives the current pins. Non-matching
// cells are excluded from both painting and key matching.
func (s State) Matches(addr grid.Address) bool {
	if s.hasFirst && addr.First != s.first {
		return false
	}
	if s.hasLast && addr.Last != s.last {
		return false
	}
	return true
}

// Filter keeps the cells that survive the current pins.
func (s State) Filter(cells []grid.Cell) []grid.Cell {
	if s.Phase() == PhaseEmpty {
		return cells
	}
	out := make([]grid.Cell, 0, len(cells))
	for _, c := range cells {
		if s.Matches(c.Address) {
			out = append(out, c)
		}
	}
	return out
}

func (s State) String() string {
	switch s.Phase() {
	case PhaseLocked:
		return fmt.Sprintf("locked(%s,%s)", s.first, s.last)
	case PhaseFirstChosen:
		return fmt.Sprintf("first-chosen(%s)", s.first)
	default:
		return "empty"
	}
}
