package ui

import (
	"fmt"
	"reflect"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/kmouse/internal/engine"
	"github.com/atomicstack/kmouse/internal/theme"
	"github.com/atomicstack/kmouse/internal/visibility"
)

// Terminal size assumed until the first WindowSizeMsg arrives.
const (
	defaultTermWidth  = 80
	defaultTermHeight = 24
)

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// frameMsg asks for one key-less engine frame.
type frameMsg struct {
	at time.Time
}

// Size is a width and height in whole units.
type Size struct {
	Width  int
	Height int
}

// Options configures a Model.
type Options struct {
	// Screen is the physical screen size in pixels.
	Screen Size
	// FPS is the key-less frame rate. Zero disables periodic frames.
	FPS int
}

// Model implements the Bubble Tea model for the overlay.
type Model struct {
	engine *engine.Engine
	ctrl   *visibility.Controller

	screen Size
	fps    int
	width  int
	height int

	plan      engine.Plan
	outcome   engine.Outcome
	status    string
	statusErr bool
	quitting  bool

	keys     keyMap
	handlers map[reflect.Type]msgHandler
}

// NewModel wires the model to the engine and the controller it shares with
// the hotkey listener.
func NewModel(eng *engine.Engine, ctrl *visibility.Controller, opts Options) *Model {
	m := &Model{
		engine:  eng,
		ctrl:    ctrl,
		screen:  opts.Screen,
		fps:     opts.FPS,
		outcome: engine.Idle{},
		keys:    defaultKeyMap(),
	}
	m.registerHandlers()
	return m
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	return func() tea.Msg {
		return frameMsg{at: time.Now()}
	}
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if handler := m.handlerFor(msg); handler != nil {
		return m, handler(msg)
	}
	return m, nil
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(frameMsg{}):          m.handleFrameMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg := msg.(tea.KeyMsg)
	if key.Matches(keyMsg, m.keys.Quit) {
		m.quitting = true
		return tea.Quit
	}
	sym, ok := symbolFromKey(keyMsg)
	if !ok {
		return nil
	}
	m.runFrame(keysFor(sym))
	return nil
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	size := msg.(tea.WindowSizeMsg)
	m.width = size.Width
	m.height = size.Height
	return nil
}

func (m *Model) handleFrameMsg(tea.Msg) tea.Cmd {
	m.runFrame(noKeys())
	return m.tick()
}

func (m *Model) tick() tea.Cmd {
	if m.fps <= 0 {
		return nil
	}
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg {
		return frameMsg{at: t}
	})
}

func (m *Model) runFrame(keys frameKeys) {
	plan, out := m.engine.Frame(keys, m.viewport())
	m.plan = plan
	m.outcome = out
	if plan.Visible {
		m.ctrl.Fullscreen(true)
	}
	m.applyOutcome(out)
}

// viewport is the screen in logical units at the active scale.
func (m *Model) viewport() engine.Viewport {
	scale := m.engine.Settings().Scale
	if scale <= 0 {
		scale = 1
	}
	return engine.Viewport{
		Width:  float64(m.screen.Width) / scale,
		Height: float64(m.screen.Height) / scale,
	}
}

func (m *Model) applyOutcome(out engine.Outcome) {
	switch o := out.(type) {
	case engine.Cleared:
		m.setStatus("cleared", false)
	case engine.Advanced:
		m.setStatus(o.To.String(), false)
	case engine.ActionFired:
		m.setStatus(fmt.Sprintf("clicked %d,%d", o.X, o.Y), false)
	case engine.StillLocked:
		m.setStatus(fmt.Sprintf("click failed: %v", o.Err), true)
	}
}

func (m *Model) setStatus(text string, isErr bool) {
	m.status = text
	m.statusErr = isErr
}

// Plan returns the plan painted by the last frame.
func (m *Model) Plan() engine.Plan {
	return m.plan
}

// Outcome returns the result of the last frame.
func (m *Model) Outcome() engine.Outcome {
	return m.outcome
}

// Status returns the status line text and whether it reports an error.
func (m *Model) Status() (string, bool) {
	return m.status, m.statusErr
}

// Quitting reports whether the quit key was pressed.
func (m *Model) Quitting() bool {
	return m.quitting
}

func (m *Model) termSize() (int, int) {
	w, h := m.width, m.height
	if w <= 0 {
		w = defaultTermWidth
	}
	if h <= 0 {
		h = defaultTermHeight
	}
	return w, h
}
