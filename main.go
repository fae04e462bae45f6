package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/iburimskiy/bounce/internal/config"
	"github.com/iburimskiy/bounce/internal/game"
	"github.com/iburimskiy/bounce/internal/render"
	"github.com/iburimskiy/bounce/internal/sound"
	"github.com/iburimskiy/bounce/internal/term"
)

const (
	logDir      = "logs"
	logFileName = "bounce.log"
)

var (
	configFlag      = flag.String("config", "", "Path to a TOML config file (default ~/.config/bounce/config.toml)")
	termFlag        = flag.Bool("term", false, "Play in the terminal instead of a window")
	seedFlag        = flag.Int64("seed", 0, "Random seed (0 picks one from the clock)")
	debugFlag       = flag.Bool("debug", false, "Write a debug log to logs/bounce.log")
	writeConfigFlag = flag.String("write-config", "", "Write the effective config to this path and exit")
)

// setupLogging sends the standard logger to a file when debug is set and
// discards it otherwise. The returned file must be closed by the caller.
func setupLogging(debug bool) *os.File {
	if !debug {
		log.SetOutput(io.Discard)
		return nil
	}
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create log dir: %v\n", err)
		log.SetOutput(io.Discard)
		return nil
	}
	f, err := os.OpenFile(filepath.Join(logDir, logFileName), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
		log.SetOutput(io.Discard)
		return nil
	}
	log.SetOutput(f)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	return f
}

// loadConfig reads the file named by -config, or the default path when it exists.
func loadConfig(path string) (config.Config, error) {
	if path != "" {
		return config.Load(path, false)
	}
	return config.Load(config.DefaultPath(), true)
}

type app struct {
	state  *game.State
	field  *render.Field
	player *sound.Player

	startButton *render.Button
	pauseButton *render.Button

	// pointer motion detection
	lastCursorX, lastCursorY int
	touchIDs                 []ebiten.TouchID

	lastErr error
}

func newApp(s *game.State, player *sound.Player) *app {
	w := int(s.W)
	startX := w - 2*config.ButtonWidth - config.ButtonGap - config.StatusX
	a := &app{
		state:       s,
		player:      player,
		startButton: render.NewButton("Start", startX, config.ButtonY, config.ButtonWidth, config.ButtonHeight),
		pauseButton: render.NewButton("Pause", startX+config.ButtonWidth+config.ButtonGap, config.ButtonY, config.ButtonWidth, config.ButtonHeight),
		lastCursorX: -1,
		lastCursorY: -1,
	}
	a.field = render.NewField(a.startButton, a.pauseButton)
	return a
}

func (a *app) Update() error {
	mouseX, mouseY := ebiten.CursorPosition()
	pressed := inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	released := inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft)

	if a.startButton.Update(mouseX, mouseY, pressed, released) {
		a.start()
	}
	if a.pauseButton.Update(mouseX, mouseY, pressed, released) {
		a.state.TogglePause()
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyS) {
		a.start()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) || inpututil.IsKeyJustPressed(ebiten.KeyP) {
		a.state.TogglePause()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		a.player.ToggleMute()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyO) {
		a.chooseHitSound()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	a.state.Step(a.sampleInput(mouseX, mouseY))

	ev := a.state.TakeEvents()
	if ev.Has(game.EventGameOver) {
		log.Printf("game over, score %d after %d ticks", a.state.Score, a.state.Ticks)
	}
	a.player.Play(ev)
	return nil
}

// sampleInput maps this tick's keyboard, mouse and touch state to the
// simulation input. Pointer targets are only sent when the pointer moved.
func (a *app) sampleInput(mouseX, mouseY int) game.Input {
	in := game.Input{
		Left:  ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA),
		Right: ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD),
	}

	a.touchIDs = ebiten.AppendTouchIDs(a.touchIDs[:0])
	if len(a.touchIDs) > 0 {
		tx, _ := ebiten.TouchPosition(a.touchIDs[0])
		in.HasPointer = true
		in.PointerX = float64(tx)
		return in
	}

	moved := mouseX != a.lastCursorX || mouseY != a.lastCursorY
	inField := mouseY > config.HUDLineY && mouseX >= 0 && mouseX < int(a.state.W)
	if moved && a.lastCursorX >= 0 && inField {
		in.HasPointer = true
		in.PointerX = float64(mouseX)
	}
	a.lastCursorX, a.lastCursorY = mouseX, mouseY
	return in
}

func (a *app) start() {
	a.state.Start()
	a.lastErr = nil
	log.Printf("round started")
}

func (a *app) chooseHitSound() {
	if !a.player.Started() {
		a.lastErr = errors.New("audio is not available")
		return
	}
	path, err := a.player.ChooseHitSound()
	if err != nil {
		a.lastErr = err
		log.Printf("hit sound: %v", err)
		return
	}
	if path != "" {
		a.lastErr = nil
	}
}

func (a *app) Draw(screen *ebiten.Image) {
	a.field.Draw(screen, a.state, render.HUD{
		Level:     a.player.Level(),
		Muted:     a.player.Muted(),
		CustomHit: a.player.HasCustomHit(),
		TPS:       ebiten.TPS(),
		Err:       a.lastErr,
	})
}

func (a *app) Layout(outsideWidth, outsideHeight int) (int, int) {
	return int(a.state.W), int(a.state.H)
}

func runWindow(cfg config.Config, s *game.State, player *sound.Player) error {
	ebiten.SetWindowSize(int(cfg.Field.Width*cfg.Window.Scale), int(cfg.Field.Height*cfg.Window.Scale))
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetTPS(cfg.Window.TPS)

	err := ebiten.RunGame(newApp(s, player))
	if err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

func runTerminal(s *game.State, player *sound.Player) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	// Fini also runs while a panic unwinds, leaving the terminal usable.
	defer screen.Fini()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err = term.New(screen, s, player).Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func main() {
	flag.Parse()

	if logFile := setupLogging(*debugFlag); logFile != nil {
		defer logFile.Close()
	}

	cfg, err := loadConfig(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *writeConfigFlag != "" {
		if err := config.Save(*writeConfigFlag, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write config: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Config written to %s\n", *writeConfigFlag)
		return
	}

	seed := *seedFlag
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	log.Printf("starting: seed=%d term=%v field=%.0fx%.0f", seed, *termFlag, cfg.Field.Width, cfg.Field.Height)

	state := game.New(cfg, rand.New(rand.NewSource(seed)))

	player := sound.NewPlayer(cfg.Audio)
	if cfg.Audio.Enabled {
		if err := player.Start(); err != nil {
			// Non-fatal, the game runs silently
			log.Printf("audio disabled: %v", err)
		} else if cfg.Audio.HitSound != "" {
			if err := player.LoadHitSound(cfg.Audio.HitSound); err != nil {
				log.Printf("hit sound: %v", err)
			}
		}
	}

	if *termFlag {
		err = runTerminal(state, player)
	} else {
		err = runWindow(cfg, state, player)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "bounce: %v\n", err)
		os.Exit(1)
	}
}
