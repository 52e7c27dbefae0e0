package sound

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YunKonstantin/timer-final/internal/config"
)

const testRate = beep.SampleRate(8000)

func drain(t *testing.T, s beep.Streamer) [][2]float64 {
	t.Helper()
	var out [][2]float64
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		out = append(out, buf[:n]...)
		if !ok {
			return out
		}
		require.Less(t, len(out), 10*int(testRate), "streamer never drained")
	}
}

func peak(samples [][2]float64) float64 {
	var m float64
	for _, s := range samples {
		m = math.Max(m, math.Abs(s[0]))
	}
	return m
}

func TestToneLengthAndEnvelope(t *testing.T) {
	samples := drain(t, Tone(testRate, DefaultTone))
	require.Len(t, samples, testRate.N(time.Second))

	for _, s := range samples {
		assert.Equal(t, s[0], s[1])
	}

	tenth := len(samples) / 10
	head := peak(samples[:tenth])
	tail := peak(samples[len(samples)-tenth:])
	assert.InDelta(t, DefaultTone.Gain, head, 0.03)
	assert.Less(t, tail, 0.02)
	assert.Greater(t, head, tail*10)
}

func TestToneFrequency(t *testing.T) {
	cfg := DefaultTone
	cfg.FloorGain = cfg.Gain * 0.999 // keep the envelope nearly flat
	samples := drain(t, Tone(testRate, cfg))

	crossings := 0
	for i := 1; i < len(samples); i++ {
		if (samples[i-1][0] < 0) != (samples[i][0] < 0) {
			crossings++
		}
	}
	// Two zero crossings per period.
	assert.InDelta(t, 2*cfg.Frequency, float64(crossings), 4)
}

func TestToneZeroLength(t *testing.T) {
	cfg := DefaultTone
	cfg.Length = 0
	assert.Empty(t, drain(t, Tone(testRate, cfg)))
}

func writeWAV(t *testing.T, rate beep.SampleRate, length time.Duration) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cue.wav")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	format := beep.Format{SampleRate: rate, NumChannels: 2, Precision: 2}
	require.NoError(t, wav.Encode(f, Tone(rate, ToneConfig{
		Frequency: 440, Gain: 0.5, FloorGain: 0.1, Length: length,
	}), format))
	return path
}

func TestLoadWAV(t *testing.T) {
	path := writeWAV(t, testRate, 250*time.Millisecond)

	buf, err := LoadWAV(path, testRate)
	require.NoError(t, err)
	assert.Equal(t, testRate.N(250*time.Millisecond), buf.Len())
	assert.Equal(t, testRate, buf.Format().SampleRate)
}

func TestLoadWAVResamples(t *testing.T) {
	path := writeWAV(t, testRate, 500*time.Millisecond)

	buf, err := LoadWAV(path, 2*testRate)
	require.NoError(t, err)
	assert.Equal(t, 2*testRate, buf.Format().SampleRate)
	assert.InDelta(t, (2 * testRate).N(500*time.Millisecond), buf.Len(), 64)
}

func TestLoadWAVErrors(t *testing.T) {
	_, err := LoadWAV(filepath.Join(t.TempDir(), "missing.wav"), testRate)
	assert.ErrorIs(t, err, os.ErrNotExist)

	junk := filepath.Join(t.TempDir(), "junk.wav")
	require.NoError(t, os.WriteFile(junk, []byte("not a wav file at all"), 0644))
	_, err = LoadWAV(junk, testRate)
	assert.Error(t, err)
}

func TestPlayerCue(t *testing.T) {
	cfg := config.DefaultConfig().Sound
	cfg.SampleRate = int(testRate)

	p := NewPlayer(cfg, nil)
	samples := drain(t, p.cue())
	assert.Len(t, samples, testRate.N(cfg.Length))

	cfg.Volume = -1
	p = NewPlayer(cfg, nil)
	s := p.cue()
	require.IsType(t, &effects.Volume{}, s)
	assert.InDelta(t, cfg.Gain/2, peak(drain(t, s)), 0.02)
}

func TestPlayerCueFromBuffer(t *testing.T) {
	cfg := config.DefaultConfig().Sound
	cfg.SampleRate = int(testRate)

	buf, err := LoadWAV(writeWAV(t, testRate, 100*time.Millisecond), testRate)
	require.NoError(t, err)

	p := NewPlayer(cfg, nil)
	p.buffer = buf
	// Each playback starts from the beginning.
	assert.Len(t, drain(t, p.cue()), buf.Len())
	assert.Len(t, drain(t, p.cue()), buf.Len())
}

func TestMute(t *testing.T) {
	assert.NotPanics(t, func() { Mute{}.Play() })
}
