package focus

import "github.com/atomicstack/kmouse/internal/grid"

// EventKind enumerates the inputs the machine reacts to.
type EventKind int

const (
	EventReset EventKind = iota
	EventRelease
	EventMicroPress
)

// Event is one keyboard input after key matching.
type Event struct {
	Kind   EventKind
	Symbol grid.Symbol
}

// Reset builds a reset event.
func Reset() Event { return Event{Kind: EventReset} }

// Release builds a first-level symbol release.
func Release(sym grid.Symbol) Event { return Event{Kind: EventRelease, Symbol: sym} }

// MicroPress builds a micro-symbol press.
func MicroPress(sym grid.Symbol) Event { return Event{Kind: EventMicroPress, Symbol: sym} }

// Transition returns the next state for every (state, event) pair.
//
// A micro press never changes the state here: firing and the return to Empty
// depend on the pointer dispatch, which the caller performs and then resets.
func Transition(s State, ev Event) State {
	switch ev.Kind {
	case EventReset:
		return New()
	case EventRelease:
		switch s.Phase() {
		case PhaseEmpty:
			return State{first: ev.Symbol, hasFirst: true}
		case PhaseFirstChosen:
			return State{first: s.first, hasFirst: true, last: ev.Symbol, hasLast: true}
		}
		return s
	default:
		return s
	}
}
