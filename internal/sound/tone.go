// Package sound plays the countdown completion cue through beep.
package sound

import (
	"math"
	"time"

	"github.com/faiface/beep"
)

// ToneConfig describes a sine tone whose gain decays exponentially from
// Gain to FloorGain over Length.
type ToneConfig struct {
	Frequency float64
	Gain      float64
	FloorGain float64
	Length    time.Duration
}

// DefaultTone is an 800 Hz beep decaying from 0.3 to 0.01 over one second.
var DefaultTone = ToneConfig{
	Frequency: 800,
	Gain:      0.3,
	FloorGain: 0.01,
	Length:    time.Second,
}

// Tone synthesizes cfg at sample rate sr. The same value goes to both
// channels. The streamer drains after exactly sr.N(cfg.Length) samples.
func Tone(sr beep.SampleRate, cfg ToneConfig) beep.Streamer {
	total := sr.N(cfg.Length)
	if total <= 0 {
		return beep.Silence(0)
	}
	// gain(pos) = Gain * exp(rate*pos) reaches FloorGain at pos == total.
	rate := math.Log(cfg.FloorGain/cfg.Gain) / float64(total)
	step := 2 * math.Pi * cfg.Frequency / float64(sr)

	pos := 0
	return beep.StreamerFunc(func(samples [][2]float64) (n int, ok bool) {
		if pos >= total {
			return 0, false
		}
		for i := range samples {
			if pos >= total {
				break
			}
			v := cfg.Gain * math.Exp(rate*float64(pos)) * math.Sin(step*float64(pos))
			samples[i][0] = v
			samples[i][1] = v
			pos++
			n++
		}
		return n, true
	})
}
