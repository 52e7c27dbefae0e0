package engine

import (
	"log/slog"
	"sync"
	"time"

	"github.com/YunKonstantin/timer-final/internal/clock"
	"github.com/YunKonstantin/timer-final/internal/models"
)

// DefaultCountdownInterval is the length of one countdown tick.
const DefaultCountdownInterval = time.Second

// Cue is played once when a countdown reaches zero.
type Cue interface {
	Play()
}

type CountdownConfig struct {
	// Interval is the wall time consumed per tick; defaults to DefaultCountdownInterval.
	Interval time.Duration
	Duration models.Duration
	Clock    clock.Clock
	Cue      Cue
	Logger   *slog.Logger
}

// Countdown counts whole seconds down to zero and then stays Finished until
// restarted or reset.
type Countdown struct {
	mu sync.Mutex

	clock    clock.Clock
	interval time.Duration
	cue      Cue
	logger   *slog.Logger

	state     models.CountdownState
	startedAt time.Time
	loop      *loop
	gen       uint64
	closed    bool

	onChange func(models.CountdownState)
	onFinish func(models.SessionRecord)
}

func NewCountdown(cfg CountdownConfig) *Countdown {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultCountdownInterval
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.NewReal()
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	return &Countdown{
		clock:    cfg.Clock,
		interval: cfg.Interval,
		cue:      cfg.Cue,
		logger:   cfg.Logger.With("component", "countdown"),
		state:    models.NewCountdownState(cfg.Duration),
	}
}

// SetOnChange registers a listener for every state change. It is called
// with the countdown lock held and must not call back into the countdown.
func (c *Countdown) SetOnChange(fn func(models.CountdownState)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onChange = fn
}

// SetOnFinish registers a listener called after the countdown reaches zero.
// It runs without the lock held.
func (c *Countdown) SetOnFinish(fn func(models.SessionRecord)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onFinish = fn
}

// Configure sets the duration. It fails with models.ErrConfigureLocked
// unless the countdown is Idle.
func (c *Countdown) Configure(d models.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	next, err := c.state.Configure(d)
	if err != nil {
		c.logger.Debug("configure rejected", "phase", c.state.Phase, "err", err)
		return err
	}
	if next == c.state {
		return nil
	}
	c.state = next
	c.publishLocked()
	return nil
}

// StartOrPause starts, resumes, restarts or pauses the countdown. With no
// duration configured it returns models.ErrZeroDuration and changes nothing.
func (c *Countdown) StartOrPause() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClosed
	}

	prev := c.state
	next, err := prev.StartOrPause()
	if err != nil {
		c.logger.Debug("start rejected", "err", err)
		return err
	}

	c.state = next
	switch {
	case next.Running() && (prev.Idle() || prev.Finished()):
		c.startedAt = c.clock.Now()
		c.startLoopLocked()
		c.logger.Debug("started", "total", next.Total)
	case next.Running():
		c.startLoopLocked()
		c.logger.Debug("resumed", "remaining", next.Remaining)
	default:
		c.stopLoopLocked()
		c.logger.Debug("paused", "remaining", next.Remaining)
	}
	c.publishLocked()
	return nil
}

// Reset returns to Idle with the full duration remaining.
func (c *Countdown) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stopLoopLocked()
	c.state = c.state.Reset()
	c.startedAt = time.Time{}
	c.logger.Debug("reset", "total", c.state.Total)
	c.publishLocked()
}

// Close cancels the ticker for good. Later starts fail with ErrClosed.
func (c *Countdown) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stopLoopLocked()
	if c.state.Running() {
		c.state, _ = c.state.StartOrPause()
	}
	c.closed = true
}

func (c *Countdown) State() models.CountdownState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Countdown) tick(gen uint64) {
	c.mu.Lock()

	if gen != c.gen || !c.state.Running() {
		c.mu.Unlock()
		return
	}

	c.state = c.state.Tick()
	if !c.state.Finished() {
		c.publishLocked()
		c.mu.Unlock()
		return
	}

	c.stopLoopLocked()
	now := c.clock.Now()
	rec := models.SessionRecord{
		Kind:      models.KindCountdown,
		StartedAt: c.startedAt,
		EndedAt:   now,
		Duration:  time.Duration(c.state.Total) * time.Second,
	}
	c.logger.Info("countdown finished", "total", c.state.Total)
	c.publishLocked()
	cue, onFinish := c.cue, c.onFinish
	c.mu.Unlock()

	if cue != nil {
		cue.Play()
	}
	if onFinish != nil {
		onFinish(rec)
	}
}

func (c *Countdown) startLoopLocked() {
	c.stopLoopLocked()
	gen := c.gen
	c.loop = startLoop(c.clock, c.interval, func() { c.tick(gen) })
}

func (c *Countdown) stopLoopLocked() {
	c.gen++
	if c.loop != nil {
		c.loop.cancel()
		c.loop = nil
	}
}

func (c *Countdown) publishLocked() {
	if c.onChange != nil {
		c.onChange(c.state)
	}
}
