package term

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/iburimskiy/bounce/internal/config"
	"github.com/iburimskiy/bounce/internal/game"
)

type recorder struct {
	events []game.Events
}

func (r *recorder) Play(ev game.Events) { r.events = append(r.events, ev) }

func newTestGame(t *testing.T) (*Game, *recorder) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init screen: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(80, 41)

	rec := &recorder{}
	s := game.New(config.Default(), rand.New(rand.NewSource(1)))
	return New(screen, s, rec), rec
}

func key(k tcell.Key) *tcell.EventKey { return tcell.NewEventKey(k, 0, tcell.ModNone) }

func runeKey(r rune) *tcell.EventKey { return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone) }

func TestHandleEventLifecycleKeys(t *testing.T) {
	g, _ := newTestGame(t)

	if !g.HandleEvent(runeKey('s')) || g.state.Phase != game.PhasePlaying {
		t.Fatalf("s should start a round, phase=%v", g.state.Phase)
	}
	g.HandleEvent(runeKey('p'))
	if g.state.Phase != game.PhasePaused {
		t.Fatalf("p should pause, phase=%v", g.state.Phase)
	}
	g.HandleEvent(runeKey(' '))
	if g.state.Phase != game.PhasePlaying {
		t.Fatalf("space should resume, phase=%v", g.state.Phase)
	}
	if g.HandleEvent(runeKey('q')) {
		t.Fatalf("q should quit")
	}
	if g.HandleEvent(key(tcell.KeyEscape)) {
		t.Fatalf("escape should quit")
	}
}

func TestArrowHoldsDirectionForHoldTicks(t *testing.T) {
	g, _ := newTestGame(t)
	g.HandleEvent(key(tcell.KeyEnter))
	g.HandleEvent(key(tcell.KeyLeft))

	hold := g.cfg.Terminal.HoldTicks
	for i := 0; i < hold; i++ {
		if in := g.Input(); !in.Left || in.Right {
			t.Fatalf("tick %d: expected left held, got %+v", i, in)
		}
	}
	if in := g.Input(); in.Left {
		t.Fatalf("left still held after %d ticks", hold)
	}
}

func TestOppositeArrowCancelsHold(t *testing.T) {
	g, _ := newTestGame(t)
	g.HandleEvent(key(tcell.KeyLeft))
	g.HandleEvent(key(tcell.KeyRight))
	if in := g.Input(); in.Left || !in.Right {
		t.Fatalf("expected only right held, got %+v", in)
	}
}

func TestMouseMapsColumnToField(t *testing.T) {
	g, _ := newTestGame(t)
	g.HandleEvent(tcell.NewEventMouse(40, 10, tcell.ButtonNone, tcell.ModNone))

	in := g.Input()
	want := 40.5 * g.state.W / 80
	if !in.HasPointer || in.PointerX != want {
		t.Fatalf("pointer = %+v, want x %f", in, want)
	}
	if g.Input().HasPointer {
		t.Fatalf("pointer target should apply once per motion event")
	}
}

func TestCellMapping(t *testing.T) {
	g, _ := newTestGame(t)

	col, row, ok := g.cell(0, 0)
	if !ok || col != 0 || row != 1 {
		t.Fatalf("origin -> (%d,%d,%v)", col, row, ok)
	}
	col, row, ok = g.cell(g.state.W-0.001, g.state.H-0.001)
	if !ok || col != 79 || row != 40 {
		t.Fatalf("far corner -> (%d,%d,%v)", col, row, ok)
	}
	if _, _, ok := g.cell(-1, 5); ok {
		t.Fatalf("negative x should be off screen")
	}
	if _, _, ok := g.cell(5, g.state.H+1); ok {
		t.Fatalf("below the field should be off screen")
	}
}

func TestTickForwardsEvents(t *testing.T) {
	g, rec := newTestGame(t)
	g.HandleEvent(runeKey('s'))
	g.state.Ball.X, g.state.Ball.Y = 20, g.state.H+5

	g.Tick()
	g.Draw()

	if len(rec.events) != 1 {
		t.Fatalf("expected one batch of events, got %d", len(rec.events))
	}
	ev := rec.events[0]
	if !ev.Has(game.EventStart) || !ev.Has(game.EventGameOver) {
		t.Fatalf("events = %b, want start and game over", ev)
	}
	if len(g.state.Particles) != 120 {
		t.Fatalf("particles = %d", len(g.state.Particles))
	}
}

func TestRunStopsOnQuitKey(t *testing.T) {
	g, _ := newTestGame(t)
	g.screen.PostEvent(runeKey('q'))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := g.Run(ctx); err != nil {
		t.Fatalf("Run returned %v, want nil on quit", err)
	}
}

func TestRunStopsOnContext(t *testing.T) {
	g, _ := newTestGame(t)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if err := g.Run(ctx); err != context.DeadlineExceeded {
		t.Fatalf("Run returned %v, want deadline exceeded", err)
	}
}
