package engine

import (
	"github.com/atomicstack/kmouse/internal/focus"
	"github.com/atomicstack/kmouse/internal/grid"
)

// Outcome reports what a frame did. The concrete types below are the only
// implementations.
type Outcome interface {
	outcome()
}

// Hidden means the overlay was not visible; no input was consumed.
type Hidden struct{}

// Idle means nothing changed this frame.
type Idle struct{}

// Cleared means the reset key emptied the focus state.
type Cleared struct{}

// Advanced means one or more symbol releases moved the focus state forward.
type Advanced struct {
	From focus.State
	To   focus.State
}

// ActionFired means the pointer was moved and clicked; the overlay is now
// hidden and the focus state empty.
type ActionFired struct {
	X      int
	Y      int
	Symbol grid.Symbol
}

// StillLocked means a micro key was pressed but the dispatch failed. The
// focus state stays locked so the user can retry.
type StillLocked struct {
	Symbol grid.Symbol
	Err    error
}

func (Hidden) outcome()      {}
func (Idle) outcome()        {}
func (Cleared) outcome()     {}
func (Advanced) outcome()    {}
func (ActionFired) outcome() {}
func (StillLocked) outcome() {}
