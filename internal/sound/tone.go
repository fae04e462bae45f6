package sound

import (
	"math"
	"time"

	"github.com/faiface/beep"
)

// blip is a sine tone with a linear fade-out.
func blip(sr beep.SampleRate, freq float64, d time.Duration, gain float64) beep.Streamer {
	total := sr.N(d)
	pos := 0
	step := 2 * math.Pi * freq / float64(sr)
	return beep.StreamerFunc(func(samples [][2]float64) (n int, ok bool) {
		if pos >= total {
			return 0, false
		}
		for i := range samples {
			if pos >= total {
				return i, true
			}
			env := 1 - float64(pos)/float64(total)
			v := math.Sin(step*float64(pos)) * env * gain
			samples[i][0] = v
			samples[i][1] = v
			pos++
		}
		return len(samples), true
	})
}

// gameOverJingle plays three falling notes.
func gameOverJingle(sr beep.SampleRate) beep.Streamer {
	const note = 140 * time.Millisecond
	return beep.Seq(
		blip(sr, 523.25, note, 0.35),
		blip(sr, 392.00, note, 0.35),
		blip(sr, 261.63, 2*note, 0.35),
	)
}
