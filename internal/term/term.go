// Package term plays the game in a terminal.
package term

import (
	"context"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/iburimskiy/bounce/internal/config"
	"github.com/iburimskiy/bounce/internal/game"
)

// Sounder receives the events raised by every tick.
type Sounder interface {
	Play(ev game.Events)
}

var (
	styleBall     = tcell.StyleDefault.Foreground(tcell.NewRGBColor(245, 158, 11))
	stylePaddle   = tcell.StyleDefault.Foreground(tcell.NewRGBColor(96, 165, 250))
	styleHUD      = tcell.StyleDefault.Foreground(tcell.NewRGBColor(60, 70, 90))
	styleStatus   = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	styleGameOver = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
)

// Game drives a game.State from tcell events and a fixed ticker.
type Game struct {
	screen tcell.Screen
	state  *game.State
	sfx    Sounder
	cfg    config.Config

	cols, rows int

	// Terminals report key presses but not releases, so a press holds its
	// direction for a few ticks and key repeat re-arms it.
	holdLeft, holdRight int

	hasPointer bool
	pointerCol int
}

// New wraps an initialised screen. sfx may be nil.
func New(screen tcell.Screen, s *game.State, sfx Sounder) *Game {
	g := &Game{
		screen: screen,
		state:  s,
		sfx:    sfx,
		cfg:    s.Config(),
	}
	g.cols, g.rows = screen.Size()
	return g
}

// Run polls events on a goroutine and steps the game on a ticker until ctx is
// done or the player quits.
func (g *Game) Run(ctx context.Context) error {
	g.screen.EnableMouse(tcell.MouseMotionEvents)
	g.screen.HideCursor()

	tick := time.Second / time.Duration(g.cfg.Window.TPS)
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := g.screen.PollEvent()
			if ev == nil {
				// screen finalised
				return
			}
			eventChan <- ev
		}
	}()

	g.Draw()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-eventChan:
			if !g.HandleEvent(ev) {
				return nil
			}
		case <-ticker.C:
			g.Tick()
			g.Draw()
		}
	}
}

// HandleEvent applies one terminal event. It returns false when the player quits.
func (g *Game) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyLeft:
			g.holdLeft = g.cfg.Terminal.HoldTicks
			g.holdRight = 0
			g.hasPointer = false
		case tcell.KeyRight:
			g.holdRight = g.cfg.Terminal.HoldTicks
			g.holdLeft = 0
			g.hasPointer = false
		case tcell.KeyEnter:
			g.start()
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q', 'Q':
				return false
			case 's', 'S':
				g.start()
			case 'p', 'P', ' ':
				g.state.TogglePause()
			case 'a', 'h':
				g.holdLeft = g.cfg.Terminal.HoldTicks
				g.holdRight = 0
			case 'd', 'l':
				g.holdRight = g.cfg.Terminal.HoldTicks
				g.holdLeft = 0
			}
		}

	case *tcell.EventMouse:
		col, _ := ev.Position()
		g.pointerCol = col
		g.hasPointer = true

	case *tcell.EventResize:
		g.screen.Sync()
		g.cols, g.rows = g.screen.Size()
	}
	return true
}

func (g *Game) start() {
	g.state.Start()
	log.Printf("terminal: round started")
}

// Input builds the snapshot for the next step and consumes one tick of any
// held direction.
func (g *Game) Input() game.Input {
	in := game.Input{
		Left:  g.holdLeft > 0,
		Right: g.holdRight > 0,
	}
	if g.holdLeft > 0 {
		g.holdLeft--
	}
	if g.holdRight > 0 {
		g.holdRight--
	}
	if g.hasPointer {
		in.HasPointer = true
		in.PointerX = g.colToField(g.pointerCol)
		g.hasPointer = false
	}
	return in
}

func (g *Game) Tick() {
	g.state.Step(g.Input())
	ev := g.state.TakeEvents()
	if ev.Has(game.EventGameOver) {
		log.Printf("terminal: game over, score %d", g.state.Score)
	}
	if g.sfx != nil {
		g.sfx.Play(ev)
	}
}

func (g *Game) colToField(col int) float64 {
	if g.cols <= 0 {
		return 0
	}
	return (float64(col) + 0.5) * g.state.W / float64(g.cols)
}

// cell maps a field position to a screen cell. Row 0 is the status line.
func (g *Game) cell(x, y float64) (int, int, bool) {
	fieldRows := g.rows - 1
	if g.cols <= 0 || fieldRows <= 0 || x < 0 || y < 0 || x >= g.state.W || y >= g.state.H {
		return 0, 0, false
	}
	col := int(x / g.state.W * float64(g.cols))
	row := 1 + int(y/g.state.H*float64(fieldRows))
	return col, row, true
}

func (g *Game) Draw() {
	g.screen.Clear()
	s := g.state

	if _, row, ok := g.cell(0, config.HUDLineY); ok {
		for col := 0; col < g.cols; col++ {
			g.screen.SetContent(col, row, '─', nil, styleHUD)
		}
	}

	left, row, ok := g.cell(s.Paddle.X, s.Paddle.Y)
	if ok {
		right, _, _ := g.cell(math.Min(s.Paddle.X+s.Paddle.W, s.W-1e-9), s.Paddle.Y)
		for col := left; col <= right; col++ {
			g.screen.SetContent(col, row, '▀', nil, stylePaddle)
		}
	}

	for _, p := range s.Particles {
		if col, row, ok := g.cell(p.X, p.Y); ok {
			c := tcell.NewRGBColor(int32(p.Color.R), int32(p.Color.G), int32(p.Color.B))
			g.screen.SetContent(col, row, '*', nil, tcell.StyleDefault.Foreground(c))
		}
	}

	if s.Phase != game.PhaseIdle {
		if col, row, ok := g.cell(s.Ball.X, s.Ball.Y); ok {
			g.screen.SetContent(col, row, '●', nil, styleBall)
		}
	}

	style := styleStatus
	if s.Phase == game.PhaseGameOver {
		style = styleGameOver
	}
	g.drawText(0, 0, fmt.Sprintf("%s  Score: %d  [s]tart [p]ause [q]uit", s.Status, s.Score), style)

	g.screen.Show()
}

func (g *Game) drawText(x, y int, text string, style tcell.Style) {
	for _, r := range text {
		if x >= g.cols {
			return
		}
		g.screen.SetContent(x, y, r, nil, style)
		x++
	}
}
