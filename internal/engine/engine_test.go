package engine

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/atomicstack/kmouse/internal/coords"
	"github.com/atomicstack/kmouse/internal/focus"
	"github.com/atomicstack/kmouse/internal/grid"
	"github.com/atomicstack/kmouse/internal/logging"
	"github.com/atomicstack/kmouse/internal/visibility"
)

type testKeys struct {
	pressed  map[grid.Symbol]bool
	released map[grid.Symbol]bool
}

func (k testKeys) Pressed(sym grid.Symbol) bool  { return k.pressed[sym] }
func (k testKeys) Released(sym grid.Symbol) bool { return k.released[sym] }

func released(syms ...grid.Symbol) testKeys {
	k := testKeys{released: map[grid.Symbol]bool{}}
	for _, s := range syms {
		k.released[s] = true
	}
	return k
}

func pressed(syms ...grid.Symbol) testKeys {
	k := testKeys{pressed: map[grid.Symbol]bool{}}
	for _, s := range syms {
		k.pressed[s] = true
	}
	return k
}

type recordingDispatcher struct {
	calls [][2]int
	err   error
}

func (d *recordingDispatcher) MoveAndClick(x, y int) error {
	d.calls = append(d.calls, [2]int{x, y})
	return d.err
}

var viewport = Viewport{Width: 800, Height: 600}

func newEngine(t *testing.T, d Dispatcher, m coords.Margin) (*Engine, *visibility.Controller) {
	t.Helper()
	logging.Configure(filepath.Join(t.TempDir(), "kmouse.log"))
	t.Cleanup(func() { logging.Configure("") })
	ctrl := visibility.New(nil, true)
	return New(ctrl, d, coords.NewMargins(m), DefaultSettings()), ctrl
}

func TestScenarioSelectLockAndFire(t *testing.T) {
	d := &recordingDispatcher{}
	e, ctrl := newEngine(t, d, coords.Zero)

	plan, out := e.Frame(testKeys{}, viewport)
	if _, ok := out.(Idle); !ok {
		t.Fatalf("expected idle, got %#v", out)
	}
	if plan.Layout.Cols != 12 || plan.Layout.Rows != 9 || len(plan.Cells) != 108 {
		t.Fatalf("unexpected layout %#v with %d cells", plan.Layout, len(plan.Cells))
	}

	plan, out = e.Frame(released('A'), viewport)
	adv, ok := out.(Advanced)
	if !ok || adv.To.Phase() != focus.PhaseFirstChosen {
		t.Fatalf("expected advance to first-chosen, got %#v", out)
	}
	for _, c := range plan.Cells {
		if c.Address.First != 'A' {
			t.Fatalf("cell %s survived pruning", c.Address.Label())
		}
	}

	plan, out = e.Frame(released('B'), viewport)
	if adv, ok := out.(Advanced); !ok || !adv.To.IsComplete() {
		t.Fatalf("expected lock, got %#v", out)
	}
	if plan.Locked == nil || plan.Locked.Address.Label() != "AB" {
		t.Fatalf("expected AB locked, got %#v", plan.Locked)
	}
	if len(plan.Micro) != 16 {
		t.Fatalf("expected 16 micro cells, got %d", len(plan.Micro))
	}

	plan, out = e.Frame(pressed('Q'), viewport)
	fired, ok := out.(ActionFired)
	if !ok {
		t.Fatalf("expected action fired, got %#v", out)
	}
	if fired.X != 75 || fired.Y != 8 {
		t.Fatalf("expected click at 75,8, got %d,%d", fired.X, fired.Y)
	}
	if len(d.calls) != 1 || d.calls[0] != [2]int{75, 8} {
		t.Fatalf("unexpected dispatcher calls %v", d.calls)
	}
	if plan.Visible {
		t.Fatalf("expected hidden plan after firing")
	}
	snap := ctrl.Snapshot()
	if snap.Visible || snap.Focus != focus.New() {
		t.Fatalf("expected hidden and empty, got %#v", snap)
	}
}

func lock(t *testing.T, e *Engine) {
	t.Helper()
	e.Frame(released('A'), viewport)
	e.Frame(released('B'), viewport)
}

func TestDispatchFailureStaysLocked(t *testing.T) {
	d := &recordingDispatcher{err: errors.New("xtest unavailable")}
	e, ctrl := newEngine(t, d, coords.Zero)
	lock(t, e)

	_, out := e.Frame(pressed('W'), viewport)
	still, ok := out.(StillLocked)
	if !ok || still.Symbol != 'W' || !errors.Is(still.Err, d.err) {
		t.Fatalf("expected still locked with wrapped error, got %#v", out)
	}
	snap := ctrl.Snapshot()
	if !snap.Visible || !snap.Focus.IsComplete() {
		t.Fatalf("failure must not change state, got %#v", snap)
	}

	d.err = nil
	if _, out := e.Frame(pressed('E'), viewport); out == nil {
		t.Fatalf("expected outcome")
	} else if _, ok := out.(ActionFired); !ok {
		t.Fatalf("expected retry to fire, got %#v", out)
	}
	if len(d.calls) != 2 {
		t.Fatalf("expected two attempts, got %v", d.calls)
	}
}

func TestPanickingDispatcherIsContained(t *testing.T) {
	e, ctrl := newEngine(t, DispatcherFunc(func(x, y int) error { panic("boom") }), coords.Zero)
	lock(t, e)
	if _, out := e.Frame(pressed('Q'), viewport); out == nil {
		t.Fatalf("expected outcome")
	} else if _, ok := out.(StillLocked); !ok {
		t.Fatalf("expected still locked, got %#v", out)
	}
	if !ctrl.Snapshot().Focus.IsComplete() {
		t.Fatalf("expected focus to remain locked")
	}
}

func TestMissingDispatcher(t *testing.T) {
	e, _ := newEngine(t, nil, coords.Zero)
	lock(t, e)
	_, out := e.Frame(pressed('Q'), viewport)
	still, ok := out.(StillLocked)
	if !ok || !errors.Is(still.Err, ErrNoDispatcher) {
		t.Fatalf("expected ErrNoDispatcher, got %#v", out)
	}
}

func TestResetPreemptsOtherInput(t *testing.T) {
	d := &recordingDispatcher{}
	e, ctrl := newEngine(t, d, coords.Zero)
	lock(t, e)

	keys := testKeys{
		pressed:  map[grid.Symbol]bool{grid.SymbolEscape: true, 'Q': true},
		released: map[grid.Symbol]bool{'C': true},
	}
	plan, out := e.Frame(keys, viewport)
	if _, ok := out.(Cleared); !ok {
		t.Fatalf("expected cleared, got %#v", out)
	}
	if len(d.calls) != 0 {
		t.Fatalf("reset frame must not dispatch")
	}
	if ctrl.Snapshot().Focus != focus.New() || plan.Locked != nil || len(plan.Cells) != 108 {
		t.Fatalf("expected empty focus and full grid")
	}
}

func TestLockingFrameDoesNotEvaluateMicroKeys(t *testing.T) {
	d := &recordingDispatcher{}
	e, ctrl := newEngine(t, d, coords.Zero)
	e.Frame(released('A'), viewport)

	keys := testKeys{
		pressed:  map[grid.Symbol]bool{'Q': true},
		released: map[grid.Symbol]bool{'Q': true},
	}
	_, out := e.Frame(keys, viewport)
	if adv, ok := out.(Advanced); !ok || !adv.To.IsComplete() {
		t.Fatalf("expected lock on AQ, got %#v", out)
	}
	if len(d.calls) != 0 {
		t.Fatalf("micro key fired on the locking frame")
	}
	if !ctrl.Snapshot().Visible {
		t.Fatalf("overlay should still be visible")
	}
}

func TestReleasesWhileLockedAreIgnored(t *testing.T) {
	e, ctrl := newEngine(t, &recordingDispatcher{}, coords.Zero)
	lock(t, e)
	_, out := e.Frame(released('C', 'D'), viewport)
	if _, ok := out.(Idle); !ok {
		t.Fatalf("expected idle, got %#v", out)
	}
	addr, _ := ctrl.Snapshot().Focus.Address()
	if addr.Label() != "AB" {
		t.Fatalf("expected AB to stay locked, got %s", addr.Label())
	}
}

func TestReleaseWithoutDrawableCandidateIsIgnored(t *testing.T) {
	e, ctrl := newEngine(t, &recordingDispatcher{}, coords.Zero)
	small := Viewport{Width: 130, Height: 64}

	plan, _ := e.Frame(testKeys{}, small)
	if len(plan.Cells) != 2 {
		t.Fatalf("expected 2 drawable cells, got %d", len(plan.Cells))
	}
	_, out := e.Frame(released('B'), small)
	if _, ok := out.(Idle); !ok {
		t.Fatalf("expected B to be ignored, got %#v", out)
	}
	if ctrl.Snapshot().Focus.Phase() != focus.PhaseEmpty {
		t.Fatalf("expected focus to stay empty")
	}

	e.Frame(released('A'), small)
	_, out = e.Frame(released('C'), small)
	if _, ok := out.(Idle); !ok {
		t.Fatalf("expected AC to be ignored, got %#v", out)
	}
}

func TestHiddenFrameConsumesNothing(t *testing.T) {
	e, ctrl := newEngine(t, &recordingDispatcher{}, coords.Zero)
	ctrl.Toggle()
	plan, out := e.Frame(released('A'), viewport)
	if _, ok := out.(Hidden); !ok || plan.Visible {
		t.Fatalf("expected hidden, got %#v", out)
	}
	if ctrl.Snapshot().Focus.Phase() != focus.PhaseEmpty {
		t.Fatalf("hidden frame changed focus")
	}
}

func TestRenderMarginCollapsesAfterFirstShowButClickMarginStays(t *testing.T) {
	d := &recordingDispatcher{}
	m := coords.Margin{Top: 36, Left: 64}
	e, ctrl := newEngine(t, d, m)

	plan, _ := e.Frame(testKeys{}, Viewport{Width: 864, Height: 636})
	if plan.Margin != m || plan.Area.Min != (grid.Point{X: 64, Y: 36}) {
		t.Fatalf("expected render margin before first show, got %#v", plan.Margin)
	}
	if plan.Area.W != 800 || plan.Area.H != 600 {
		t.Fatalf("unexpected area %#v", plan.Area)
	}

	ctrl.Toggle()
	ctrl.Toggle()
	plan, _ = e.Frame(testKeys{}, viewport)
	if !plan.Margin.IsZero() || plan.Area.Min != (grid.Point{}) {
		t.Fatalf("expected zero render margin after first show, got %#v", plan.Margin)
	}

	lock(t, e)
	_, out := e.Frame(pressed('Q'), viewport)
	fired, ok := out.(ActionFired)
	if !ok {
		t.Fatalf("expected fire, got %#v", out)
	}
	if fired.X != 75+64 || fired.Y != 8+36 {
		t.Fatalf("expected click margin added back, got %d,%d", fired.X, fired.Y)
	}
}

func TestWorkAreaMarginIsLogicalAtScale(t *testing.T) {
	d := &recordingDispatcher{}
	e, ctrl := newEngine(t, d, coords.Margin{Top: 64})
	s := e.Settings()
	s.Scale = 2
	e.Apply(s)
	// 3840x2160 physical at scale 2.
	vp := Viewport{Width: 1920, Height: 1080}

	plan, _ := e.Frame(testKeys{}, vp)
	if plan.Area.Min != (grid.Point{X: 0, Y: 32}) || plan.Area.H != 1048 {
		t.Fatalf("expected a 32 unit top inset, got %#v", plan.Area)
	}
	fireAB := func() {
		e.Frame(released('A'), vp)
		e.Frame(released('B'), vp)
		e.Frame(pressed('Q'), vp)
	}
	fireAB()
	if len(d.calls) != 1 || d.calls[0] != [2]int{144, 144} {
		t.Fatalf("expected click at 144,144, got %v", d.calls)
	}

	// Firing hid the overlay; the hotkey shows it again.
	ctrl.Toggle()
	plan, _ = e.Frame(testKeys{}, vp)
	if plan.Area.Min != (grid.Point{}) || plan.Area.H != 1080 {
		t.Fatalf("expected full area after first show, got %#v", plan.Area)
	}
	fireAB()
	if len(d.calls) != 2 || d.calls[1] != [2]int{144, 81} {
		t.Fatalf("expected the 64 px panel added back once, got %v", d.calls)
	}
}

func TestDeviceScaleMultipliesTarget(t *testing.T) {
	d := &recordingDispatcher{}
	e, _ := newEngine(t, d, coords.Zero)
	s := e.Settings()
	s.Scale = 2
	e.Apply(s)
	lock(t, e)
	e.Frame(pressed('Q'), viewport)
	if len(d.calls) != 1 || d.calls[0] != [2]int{150, 17} {
		t.Fatalf("expected scaled click, got %v", d.calls)
	}
}

func TestSettingsUpdatesApplyAtFrameStart(t *testing.T) {
	updates := make(chan Settings, 1)
	ctrl := visibility.New(nil, true)
	e := New(ctrl, nil, coords.NewMargins(coords.Zero), DefaultSettings(), WithUpdates(updates))

	s := DefaultSettings()
	s.CellSize = 100
	s.Primary = grid.Alphabet{'X', 'Y'}
	updates <- s

	plan, _ := e.Frame(testKeys{}, viewport)
	if plan.Layout.Cols != 8 || plan.Layout.Rows != 6 {
		t.Fatalf("expected reloaded cell size, got %#v", plan.Layout)
	}
	if len(e.Addresses()) != 2*26 || plan.Cells[0].Address.Label() != "XA" {
		t.Fatalf("expected regenerated addresses, got %d", len(e.Addresses()))
	}

	close(updates)
	e.Frame(testKeys{}, viewport)
	e.Frame(testKeys{}, viewport)
}

func TestSettingsValidate(t *testing.T) {
	if err := DefaultSettings().Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
	s := DefaultSettings()
	s.CellSize = 0
	s.Scale = -1
	s.ResetKey = 'A'
	err := s.Validate()
	if err == nil {
		t.Fatalf("expected validation errors")
	}
	for _, want := range []string{"cell size", "scale", "collides with an alphabet"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("expected %q in %v", want, err)
		}
	}

	s = DefaultSettings()
	s.Primary = nil
	s.ResetKey = ';'
	err = s.Validate()
	if err == nil || !strings.Contains(err.Error(), "primary") || !strings.Contains(err.Error(), "micro") {
		t.Fatalf("unexpected validation result %v", err)
	}
}
