package engine

import (
	"log/slog"
	"sync"
	"time"

	"github.com/YunKonstantin/timer-final/internal/clock"
	"github.com/YunKonstantin/timer-final/internal/models"
)

// DefaultStopwatchInterval is how often a running stopwatch republishes.
const DefaultStopwatchInterval = 10 * time.Millisecond

type StopwatchConfig struct {
	// Interval between display refreshes; defaults to DefaultStopwatchInterval.
	Interval time.Duration
	// Initial is the value shown after construction and after Reset.
	Initial time.Duration
	Clock   clock.Clock
	Logger  *slog.Logger
}

// Stopwatch counts up while running. Elapsed time is always derived from
// the wall clock, so late or dropped ticks never cause drift.
type Stopwatch struct {
	mu sync.Mutex

	clock    clock.Clock
	interval time.Duration
	initial  time.Duration
	logger   *slog.Logger

	state     models.StopwatchState
	startedAt time.Time
	loop      *loop
	gen       uint64
	closed    bool

	onTick  func(models.StopwatchState)
	onReset func(models.SessionRecord)
}

func NewStopwatch(cfg StopwatchConfig) *Stopwatch {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultStopwatchInterval
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.NewReal()
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Initial < 0 {
		cfg.Initial = 0
	}

	return &Stopwatch{
		clock:    cfg.Clock,
		interval: cfg.Interval,
		initial:  cfg.Initial,
		logger:   cfg.Logger.With("component", "stopwatch"),
		state:    models.NewStopwatchState(cfg.Initial),
	}
}

// SetOnTick registers a listener for every state change, including ticks.
// It is called with the stopwatch lock held and must not call back into
// the stopwatch.
func (s *Stopwatch) SetOnTick(fn func(models.StopwatchState)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onTick = fn
}

// SetOnReset registers a listener that receives the run discarded by Reset.
// It is only called when the run had accumulated time.
func (s *Stopwatch) SetOnReset(fn func(models.SessionRecord)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onReset = fn
}

// Start begins counting. It returns false if the stopwatch was already
// running or has been closed.
func (s *Stopwatch) Start() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || s.state.Running {
		return false
	}

	now := s.clock.Now()
	if s.startedAt.IsZero() {
		s.startedAt = now
	}
	s.state = s.state.Start(now)
	s.startLoopLocked()
	s.logger.Debug("started", "elapsed", s.state.Elapsed)
	s.publishLocked()
	return true
}

// Pause freezes the elapsed time. It returns false if not running.
func (s *Stopwatch) Pause() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.state.Running {
		return false
	}

	s.stopLoopLocked()
	s.state = s.state.Pause(s.clock.Now())
	s.logger.Debug("paused", "elapsed", s.state.Elapsed)
	s.publishLocked()
	return true
}

// Toggle starts a stopped stopwatch or pauses a running one.
func (s *Stopwatch) Toggle() {
	if s.Running() {
		s.Pause()
		return
	}
	s.Start()
}

// Reset stops the stopwatch and restores the initial value.
func (s *Stopwatch) Reset() {
	s.mu.Lock()

	s.stopLoopLocked()
	now := s.clock.Now()
	elapsed := s.state.At(now)

	var rec *models.SessionRecord
	if !s.startedAt.IsZero() && elapsed > s.initial {
		rec = &models.SessionRecord{
			Kind:      models.KindStopwatch,
			StartedAt: s.startedAt,
			EndedAt:   now,
			Duration:  elapsed - s.initial,
		}
	}

	s.state = s.state.Reset(s.initial)
	s.startedAt = time.Time{}
	s.logger.Debug("reset", "discarded", elapsed)
	s.publishLocked()
	onReset := s.onReset
	s.mu.Unlock()

	if rec != nil && onReset != nil {
		onReset(*rec)
	}
}

// Close cancels sampling for good. Later calls to Start are ignored.
func (s *Stopwatch) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Running {
		s.state = s.state.Pause(s.clock.Now())
	}
	s.stopLoopLocked()
	s.closed = true
}

// State returns a snapshot with Elapsed computed as of now.
func (s *Stopwatch) State() models.StopwatchState {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.state
	st.Elapsed = st.At(s.clock.Now())
	return st
}

func (s *Stopwatch) Elapsed() time.Duration {
	return s.State().Elapsed
}

func (s *Stopwatch) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Running
}

// Dirty reports whether Reset would change anything.
func (s *Stopwatch) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Running || s.state.Elapsed != s.initial
}

func (s *Stopwatch) tick(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.gen || !s.state.Running {
		return
	}
	s.state = s.state.Tick(s.clock.Now())
	s.publishLocked()
}

func (s *Stopwatch) startLoopLocked() {
	s.stopLoopLocked()
	gen := s.gen
	s.loop = startLoop(s.clock, s.interval, func() { s.tick(gen) })
}

func (s *Stopwatch) stopLoopLocked() {
	s.gen++
	if s.loop != nil {
		s.loop.cancel()
		s.loop = nil
	}
}

func (s *Stopwatch) publishLocked() {
	if s.onTick != nil {
		s.onTick(s.state)
	}
}
