package config

import (
	"math"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

const (
	FieldWidth  = 480
	FieldHeight = 640

	VisualRingSize  = 4096
	SmoothingFactor = 0.6

	// Button dimensions
	ButtonWidth  = 96
	ButtonHeight = 28
	ButtonY      = 18
	ButtonGap    = 12

	// HUD
	HUDLineY   = 60
	StatusX    = 12
	StatusY    = 4
	CullMargin = 40
)

// Config holds every tunable of the game. Zero-valued keys missing from the
// TOML file keep their defaults because Load decodes on top of Default().
type Config struct {
	Field    Field    `toml:"field"`
	Ball     Ball     `toml:"ball"`
	Paddle   Paddle   `toml:"paddle"`
	Physics  Physics  `toml:"physics"`
	Confetti Confetti `toml:"confetti"`
	Window   Window   `toml:"window"`
	Audio    Audio    `toml:"audio"`
	Terminal Terminal `toml:"terminal"`
}

type Field struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
}

type Ball struct {
	Radius float64 `toml:"radius"`
	// StartYRatio places the ball at Height*StartYRatio on start.
	StartYRatio float64 `toml:"start_y_ratio"`
	InitialVX   float64 `toml:"initial_vx"`
	InitialVY   float64 `toml:"initial_vy"`
}

type Paddle struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
	Speed  float64 `toml:"speed"`
	// BottomOffset is the distance from the field bottom to the paddle top.
	BottomOffset float64 `toml:"bottom_offset"`
}

type Physics struct {
	SpeedUp           float64 `toml:"speed_up"`
	MaxBounceAngleDeg float64 `toml:"max_bounce_angle_deg"`
	// MaxSpeed caps the ball speed after a paddle hit. 0 disables the cap.
	MaxSpeed float64 `toml:"max_speed"`
}

type Confetti struct {
	Count      int     `toml:"count"`
	Gravity    float64 `toml:"gravity"`
	CullMargin float64 `toml:"cull_margin"`
	MinLife    float64 `toml:"min_life"`
	LifeSpread float64 `toml:"life_spread"`
	MinSize    float64 `toml:"min_size"`
	SizeSpread float64 `toml:"size_spread"`
	Saturation float64 `toml:"saturation"`
	Lightness  float64 `toml:"lightness"`
}

type Window struct {
	Title string  `toml:"title"`
	Scale float64 `toml:"scale"`
	TPS   int     `toml:"tps"`
}

type Audio struct {
	Enabled    bool    `toml:"enabled"`
	Volume     float64 `toml:"volume"`
	SampleRate int     `toml:"sample_rate"`
	HitSound   string  `toml:"hit_sound"`
}

type Terminal struct {
	HoldTicks int `toml:"hold_ticks"`
}

// Default returns the tuning of the original game.
func Default() Config {
	return Config{
		Field: Field{Width: FieldWidth, Height: FieldHeight},
		Ball: Ball{
			Radius:      8,
			StartYRatio: 0.3,
			InitialVX:   4,
			InitialVY:   5,
		},
		Paddle: Paddle{
			Width:        100,
			Height:       14,
			Speed:        10,
			BottomOffset: 30,
		},
		Physics: Physics{
			SpeedUp:           1.03,
			MaxBounceAngleDeg: 60,
		},
		Confetti: Confetti{
			Count:      120,
			Gravity:    0.15,
			CullMargin: CullMargin,
			MinLife:    90,
			LifeSpread: 60,
			MinSize:    3,
			SizeSpread: 4,
			Saturation: 0.85,
			Lightness:  0.6,
		},
		Window: Window{
			Title: "Bounce - Arrows/mouse: move, Enter: start, Space: pause, O: hit sound, Esc/Q: quit",
			Scale: 1,
			TPS:   60,
		},
		Audio: Audio{
			Enabled:    true,
			Volume:     0,
			SampleRate: 44100,
		},
		Terminal: Terminal{HoldTicks: 6},
	}
}

// DefaultPath is ~/.config/bounce/config.toml.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "bounce", "config.toml")
}

// Load reads path on top of the defaults. When optional is true a missing file
// is not an error.
func Load(path string, optional bool) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if optional && errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return cfg, errors.Wrapf(err, "load config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, errors.Errorf("config %s: unknown key %q", path, undecoded[0].String())
	}

	if err := cfg.Validate(); err != nil {
		return cfg, errors.Wrapf(err, "config %s", path)
	}
	return cfg, nil
}

// Save writes cfg as TOML, creating parent directories.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "create config dir")
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create config file")
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return errors.Wrapf(err, "encode config %s", path)
	}
	return nil
}

func (c Config) Validate() error {
	switch {
	case c.Field.Width <= 0 || c.Field.Height <= 0:
		return errors.New("field size must be positive")
	case c.Ball.Radius <= 0:
		return errors.New("ball radius must be positive")
	case c.Ball.Radius*2 >= c.Field.Width:
		return errors.New("ball does not fit the field")
	case c.Ball.StartYRatio <= 0 || c.Ball.StartYRatio >= 1:
		return errors.New("ball start_y_ratio must be in (0, 1)")
	case c.Paddle.Width <= 0 || c.Paddle.Height <= 0:
		return errors.New("paddle size must be positive")
	case c.Paddle.Width > c.Field.Width:
		return errors.New("paddle is wider than the field")
	case c.Paddle.Speed <= 0:
		return errors.New("paddle speed must be positive")
	case c.Paddle.BottomOffset < c.Paddle.Height || c.Paddle.BottomOffset >= c.Field.Height:
		return errors.Errorf("paddle bottom_offset %.1f out of range", c.Paddle.BottomOffset)
	case c.Physics.SpeedUp < 1:
		return errors.Errorf("physics speed_up %.3f below 1", c.Physics.SpeedUp)
	case c.Physics.MaxBounceAngleDeg <= 0 || c.Physics.MaxBounceAngleDeg >= 90:
		return errors.New("physics max_bounce_angle_deg must be in (0, 90)")
	case c.Physics.MaxSpeed < 0:
		return errors.New("physics max_speed must not be negative")
	case c.Confetti.Count < 0:
		return errors.New("confetti count must not be negative")
	case c.Confetti.MinLife <= 0 || c.Confetti.LifeSpread < 0:
		return errors.New("confetti life must be positive")
	case c.Confetti.CullMargin < 0:
		return errors.New("confetti cull_margin must not be negative")
	case c.Window.Scale <= 0:
		return errors.New("window scale must be positive")
	case c.Window.TPS <= 0:
		return errors.New("window tps must be positive")
	case c.Audio.SampleRate <= 0:
		return errors.New("audio sample_rate must be positive")
	case c.Terminal.HoldTicks <= 0:
		return errors.New("terminal hold_ticks must be positive")
	}
	return nil
}

// MaxBounceAngle in radians.
func (p Physics) MaxBounceAngle() float64 {
	return p.MaxBounceAngleDeg * math.Pi / 180
}
