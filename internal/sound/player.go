package sound

import (
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"

	"github.com/YunKonstantin/timer-final/internal/config"
)

// speaker.Init may only succeed once per process.
var (
	speakerOnce sync.Once
	speakerRate beep.SampleRate
	speakerErr  error
)

func initSpeaker(rate beep.SampleRate) (beep.SampleRate, error) {
	speakerOnce.Do(func() {
		speakerRate = rate
		speakerErr = speaker.Init(rate, rate.N(time.Second/10))
	})
	return speakerRate, speakerErr
}

// Player plays the completion cue on the default audio device.
type Player struct {
	cfg    config.SoundConfig
	logger *slog.Logger

	once   sync.Once
	rate   beep.SampleRate
	buffer *beep.Buffer
	err    error
}

func NewPlayer(cfg config.SoundConfig, logger *slog.Logger) *Player {
	if logger == nil {
		logger = slog.Default()
	}
	return &Player{
		cfg:    cfg,
		logger: logger.With("component", "sound"),
		rate:   beep.SampleRate(cfg.SampleRate),
	}
}

// Play starts the cue and returns immediately. Audio problems are logged
// once and the cue is skipped from then on.
func (p *Player) Play() {
	p.once.Do(p.setup)
	if p.err != nil {
		return
	}
	speaker.Play(p.cue())
}

func (p *Player) setup() {
	rate, err := initSpeaker(p.rate)
	if err != nil {
		p.err = fmt.Errorf("init speaker: %w", err)
		p.logger.Warn("audio disabled", "err", p.err)
		return
	}
	p.rate = rate

	if p.cfg.File == "" {
		return
	}
	buf, err := LoadWAV(p.cfg.File, p.rate)
	if err != nil {
		// Fall back to the synthesized tone.
		p.logger.Warn("cannot load cue file", "file", p.cfg.File, "err", err)
		return
	}
	p.buffer = buf
}

// cue builds a fresh streamer for one playback.
func (p *Player) cue() beep.Streamer {
	var s beep.Streamer
	if p.buffer != nil {
		s = p.buffer.Streamer(0, p.buffer.Len())
	} else {
		s = Tone(p.rate, ToneConfig{
			Frequency: p.cfg.Frequency,
			Gain:      p.cfg.Gain,
			FloorGain: p.cfg.FloorGain,
			Length:    p.cfg.Length,
		})
	}

	if p.cfg.Volume == 0 {
		return s
	}
	return &effects.Volume{
		Streamer: s,
		Base:     2,
		Volume:   p.cfg.Volume,
		Silent:   false,
	}
}

// LoadWAV decodes a WAV file into memory, resampled to rate.
func LoadWAV(path string, rate beep.SampleRate) (*beep.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	streamer, format, err := wav.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	defer streamer.Close()

	var s beep.Streamer = streamer
	if format.SampleRate != rate {
		s = beep.Resample(4, format.SampleRate, rate, streamer)
		format.SampleRate = rate
	}

	buffer := beep.NewBuffer(format)
	buffer.Append(s)
	return buffer, nil
}

// Mute is a cue that does nothing.
type Mute struct{}

func (Mute) Play() {}
