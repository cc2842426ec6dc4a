// Package engine runs one targeting step per displayed frame: it lays out the
// grid for the available area, feeds the frame's key events through the
// focus state machine, places the micro grid once a cell is locked and turns
// a micro key into a pointer move and click.
package engine

import (
	"errors"
	"fmt"

	"github.com/atomicstack/kmouse/internal/coords"
	"github.com/atomicstack/kmouse/internal/focus"
	"github.com/atomicstack/kmouse/internal/grid"
	"github.com/atomicstack/kmouse/internal/logging"
	"github.com/atomicstack/kmouse/internal/logging/events"
	"github.com/atomicstack/kmouse/internal/visibility"
)

// ErrNoDispatcher is returned for targeting attempts without a dispatcher.
var ErrNoDispatcher = errors.New("no pointer dispatcher configured")

// Keys answers per-frame key polling queries.
type Keys interface {
	Pressed(sym grid.Symbol) bool
	Released(sym grid.Symbol) bool
}

// Dispatcher moves the pointer to an absolute pixel and clicks.
type Dispatcher interface {
	MoveAndClick(x, y int) error
}

// DispatcherFunc adapts a function to Dispatcher.
type DispatcherFunc func(x, y int) error

func (f DispatcherFunc) MoveAndClick(x, y int) error {
	return f(x, y)
}

// Settings are the tunables that may change between frames.
type Settings struct {
	CellSize  float64
	Primary   grid.Alphabet
	Secondary grid.Alphabet
	ResetKey  grid.Symbol
	Scale     float64
}

// DefaultSettings mirrors the stock configuration.
func DefaultSettings() Settings {
	return Settings{
		CellSize:  64,
		Primary:   grid.Letters,
		Secondary: grid.Letters,
		ResetKey:  grid.SymbolEscape,
		Scale:     1,
	}
}

// Viewport is the overlay's full drawable size in logical units.
type Viewport struct {
	Width  float64
	Height float64
}

// Plan is everything the host needs to paint one frame.
type Plan struct {
	Visible bool
	Margin  coords.Margin
	Area    grid.Rect
	Layout  grid.Layout
	Cells   []grid.Cell
	Focus   focus.State
	Locked  *grid.Cell
	Micro   []grid.MicroCell
}

// Engine is driven by the render loop only; it is not safe for concurrent
// Frame calls.
type Engine struct {
	controller *visibility.Controller
	dispatcher Dispatcher
	margins    coords.Margins

	settings Settings
	addrs    []grid.Address
	symbols  grid.Alphabet

	updates <-chan Settings
}

// Option customises an Engine.
type Option func(*Engine)

// WithUpdates makes the engine pick up settings posted on ch at the start of
// each frame.
func WithUpdates(ch <-chan Settings) Option {
	return func(e *Engine) {
		e.updates = ch
	}
}

// New builds an engine around the shared controller.
func New(controller *visibility.Controller, dispatcher Dispatcher, margins coords.Margins, settings Settings, opts ...Option) *Engine {
	e := &Engine{
		controller: controller,
		dispatcher: dispatcher,
		margins:    margins,
	}
	e.Apply(settings)
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Apply replaces the settings. Addresses are regenerated immediately.
func (e *Engine) Apply(s Settings) {
	e.settings = s
	e.addrs = grid.Generate(s.Primary, s.Secondary)
	e.symbols = grid.Union(s.Primary, s.Secondary)
}

// Settings returns the active settings.
func (e *Engine) Settings() Settings {
	return e.settings
}

// Addresses returns the addresses generated for the active settings.
func (e *Engine) Addresses() []grid.Address {
	return e.addrs
}

// Mapper returns the coordinate mapper for click targets.
func (e *Engine) Mapper() coords.Mapper {
	return coords.Mapper{Margins: e.margins, Scale: e.settings.Scale}
}

// Frame runs one targeting step. The shared state stays locked for the
// duration of the step, pointer dispatch included.
func (e *Engine) Frame(keys Keys, vp Viewport) (Plan, Outcome) {
	e.drainUpdates()
	var (
		plan Plan
		out  Outcome
	)
	e.controller.Frame(func(f *visibility.Frame) {
		plan, out = e.step(f, keys, vp)
	})
	return plan, out
}

func (e *Engine) drainUpdates() {
	if e.updates == nil {
		return
	}
	for {
		select {
		case s, ok := <-e.updates:
			if !ok {
				e.updates = nil
				return
			}
			e.Apply(s)
		default:
			return
		}
	}
}

// Layout computes the grid for vp from the current render margin.
func (e *Engine) Layout(vp Viewport) (coords.Margin, grid.Rect, grid.Layout) {
	margin := e.margins.Render(e.settings.Scale)
	area := grid.Rect{
		Min: grid.Point{X: margin.Left, Y: margin.Top},
		W:   nonNegative(vp.Width - (margin.Left + margin.Right)),
		H:   nonNegative(vp.Height - (margin.Top + margin.Bottom)),
	}
	return margin, area, grid.ComputeLayout(area.W, area.H, e.settings.CellSize, area.Min)
}

func (e *Engine) step(f *visibility.Frame, keys Keys, vp Viewport) (Plan, Outcome) {
	if f.Initiated() {
		e.margins.Collapse()
	}
	if !f.Visible() {
		return Plan{}, Hidden{}
	}

	margin, area, layout := e.Layout(vp)
	cells := layout.Cells(e.addrs)
	state := f.Focus()

	var out Outcome = Idle{}
	enteredLock := false
	switch {
	case keys.Pressed(e.settings.ResetKey):
		if state.Phase() != focus.PhaseEmpty {
			events.Focus.Reset(state.String())
		}
		state = focus.Transition(state, focus.Reset())
		out = Cleared{}
	case !state.IsComplete():
		from := state
		for _, sym := range e.symbols {
			if state.IsComplete() {
				break
			}
			if !keys.Released(sym) {
				continue
			}
			if !e.acceptsRelease(state, sym, cells) {
				events.Focus.Ignored(state.String(), sym.String())
				continue
			}
			next := focus.Transition(state, focus.Release(sym))
			events.Focus.Transition(state.String(), next.String())
			state = next
		}
		if state != from {
			out = Advanced{From: from, To: state}
			enteredLock = state.IsComplete()
		}
	}
	f.SetFocus(state)

	survivors := state.Filter(cells)
	plan := Plan{
		Visible: true,
		Margin:  margin,
		Area:    area,
		Layout:  layout,
		Cells:   survivors,
		Focus:   state,
	}
	if !state.IsComplete() || len(survivors) != 1 {
		return plan, out
	}

	parent := survivors[0]
	plan.Locked = &parent
	plan.Micro = grid.MicroLayout(parent.Rect)
	if enteredLock {
		return plan, out
	}
	for _, mc := range plan.Micro {
		if !keys.Pressed(mc.Symbol) {
			continue
		}
		fired := e.fire(f, mc)
		if _, ok := fired.(ActionFired); ok {
			return Plan{}, fired
		}
		return plan, fired
	}
	return plan, out
}

// acceptsRelease rejects symbols from the wrong alphabet and symbols that
// would leave no drawable candidate this frame.
func (e *Engine) acceptsRelease(state focus.State, sym grid.Symbol, cells []grid.Cell) bool {
	switch state.Phase() {
	case focus.PhaseEmpty:
		if !e.settings.Primary.Contains(sym) {
			return false
		}
	case focus.PhaseFirstChosen:
		if !e.settings.Secondary.Contains(sym) {
			return false
		}
	default:
		return false
	}
	candidate := focus.Transition(state, focus.Release(sym))
	for _, c := range cells {
		if candidate.Matches(c.Address) {
			return true
		}
	}
	return false
}

func (e *Engine) fire(f *visibility.Frame, mc grid.MicroCell) Outcome {
	x, y := e.Mapper().Target(mc.Rect.Center())
	events.Pointer.Dispatch(x, y, mc.Symbol.String())
	if err := e.dispatch(x, y); err != nil {
		err = fmt.Errorf("move and click at %d,%d: %w", x, y, err)
		logging.Error(err)
		events.Pointer.Error(err)
		return StillLocked{Symbol: mc.Symbol, Err: err}
	}
	f.Dismiss()
	return ActionFired{X: x, Y: y, Symbol: mc.Symbol}
}

func (e *Engine) dispatch(x, y int) (err error) {
	if e.dispatcher == nil {
		return ErrNoDispatcher
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pointer dispatch panicked: %v", r)
		}
	}()
	return e.dispatcher.MoveAndClick(x, y)
}

func nonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
