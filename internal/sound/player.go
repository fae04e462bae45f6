package sound

import (
	"log"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"
	"github.com/ncruces/zenity"
	"github.com/pkg/errors"

	"github.com/iburimskiy/bounce/internal/config"
	"github.com/iburimskiy/bounce/internal/game"
)

const (
	levelWindow     = 1024
	resampleQuality = 4
)

// Player turns game events into sound. Everything it plays goes through one
// mixer, a volume stage and the level tap, in that order.
type Player struct {
	sr      beep.SampleRate
	mixer   *beep.Mixer
	volume  *effects.Volume
	tap     *levelTap
	hit     *beep.Buffer
	level   float64
	started bool
}

func NewPlayer(cfg config.Audio) *Player {
	mixer := &beep.Mixer{}
	vol := &effects.Volume{
		Streamer: mixer,
		Base:     2,
		Volume:   cfg.Volume,
		Silent:   !cfg.Enabled,
	}
	return &Player{
		sr:     beep.SampleRate(cfg.SampleRate),
		mixer:  mixer,
		volume: vol,
		tap:    newLevelTap(vol, config.VisualRingSize),
	}
}

// Start opens the speaker and keeps the chain playing for the life of the
// process. The mixer streams silence while nothing is queued.
func (p *Player) Start() error {
	if p.started {
		return nil
	}
	if err := speaker.Init(p.sr, p.sr.N(time.Second/20)); err != nil {
		return errors.Wrap(err, "init speaker")
	}
	speaker.Play(p.tap)
	p.started = true
	return nil
}

// Started reports whether the speaker is running.
func (p *Player) Started() bool { return p.started }

// Play queues the sounds for a batch of game events.
func (p *Player) Play(ev game.Events) {
	if !p.started || ev == 0 {
		return
	}
	var queue []beep.Streamer
	if ev.Has(game.EventWall) {
		queue = append(queue, blip(p.sr, 440, 60*time.Millisecond, 0.25))
	}
	if ev.Has(game.EventTop) {
		queue = append(queue, blip(p.sr, 660, 90*time.Millisecond, 0.3))
	}
	if ev.Has(game.EventPaddle) {
		queue = append(queue, p.hitSound())
	}
	if ev.Has(game.EventGameOver) {
		queue = append(queue, gameOverJingle(p.sr))
	}
	if ev.Has(game.EventStart) {
		queue = append(queue, blip(p.sr, 784, 80*time.Millisecond, 0.2))
	}
	if len(queue) == 0 {
		return
	}

	speaker.Lock()
	p.mixer.Add(queue...)
	speaker.Unlock()
}

func (p *Player) hitSound() beep.Streamer {
	if p.hit != nil {
		return p.hit.Streamer(0, p.hit.Len())
	}
	return blip(p.sr, 880, 70*time.Millisecond, 0.3)
}

// ToggleMute flips the silent flag and returns the new state.
func (p *Player) ToggleMute() bool {
	speaker.Lock()
	p.volume.Silent = !p.volume.Silent
	muted := p.volume.Silent
	speaker.Unlock()
	return muted
}

func (p *Player) Muted() bool {
	speaker.Lock()
	defer speaker.Unlock()
	return p.volume.Silent
}

// Level returns a smoothed loudness of the recent output in [0, 1]. Call it
// once per frame.
func (p *Player) Level() float64 {
	mag := math.Pow(p.tap.rms(levelWindow), 0.3)
	if mag > 1 {
		mag = 1
	}
	p.level = config.SmoothingFactor*p.level + (1-config.SmoothingFactor)*mag
	return p.level
}

// HasCustomHit reports whether a user sound replaces the paddle tone.
func (p *Player) HasCustomHit() bool { return p.hit != nil }

// LoadHitSound decodes a wav, mp3 or flac file into memory and uses it for
// paddle hits.
func (p *Player) LoadHitSound(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrap(err, "open hit sound")
	}

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".wav":
		streamer, format, err = wav.Decode(f)
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".flac":
		streamer, format, err = flac.Decode(f)
	default:
		_ = f.Close()
		return errors.Errorf("unsupported file type: %q", ext)
	}
	if err != nil {
		_ = f.Close()
		return errors.Wrapf(err, "decode %s", filepath.Base(path))
	}
	defer streamer.Close()

	var src beep.Streamer = streamer
	if format.SampleRate != p.sr {
		src = beep.Resample(resampleQuality, format.SampleRate, p.sr, streamer)
	}

	buf := beep.NewBuffer(beep.Format{SampleRate: p.sr, NumChannels: 2, Precision: 2})
	buf.Append(src)
	if err := streamer.Err(); err != nil {
		return errors.Wrapf(err, "read %s", filepath.Base(path))
	}
	if buf.Len() == 0 {
		return errors.Errorf("%s is empty", filepath.Base(path))
	}

	speaker.Lock()
	p.hit = buf
	speaker.Unlock()
	log.Printf("hit sound loaded: %s (%d samples)", path, buf.Len())
	return nil
}

// ChooseHitSound asks for a file with a native dialog and loads it. It returns
// the chosen path, or "" when the dialog was cancelled.
func (p *Player) ChooseHitSound() (string, error) {
	filename, err := zenity.SelectFile(
		zenity.Title("Choose Paddle Hit Sound"),
		zenity.FileFilters{{
			Name:     "Audio",
			Patterns: []string{"*.wav", "*.mp3", "*.flac"},
		}},
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return "", nil
		}
		return "", errors.Wrap(err, "file dialog")
	}
	if err := p.LoadHitSound(filename); err != nil {
		return "", err
	}
	return filename, nil
}
