package models

import "time"

// StopwatchState tracks elapsed time. While Running, Anchor is the
// authoritative instant at which Elapsed was zero and Elapsed is a cache
// refreshed by Tick. While stopped, Elapsed is authoritative.
type StopwatchState struct {
	Elapsed time.Duration
	Running bool
	Anchor  time.Time
}

// NewStopwatchState returns a stopped stopwatch showing initial.
func NewStopwatchState(initial time.Duration) StopwatchState {
	return StopwatchState{Elapsed: nonNegative(initial)}
}

// Start resumes counting from the current Elapsed value.
func (s StopwatchState) Start(now time.Time) StopwatchState {
	if s.Running {
		return s
	}
	s.Anchor = now.Add(-s.Elapsed)
	s.Running = true
	return s
}

// Pause freezes Elapsed at now.
func (s StopwatchState) Pause(now time.Time) StopwatchState {
	if !s.Running {
		return s
	}
	s.Elapsed = s.At(now)
	s.Running = false
	return s
}

// Reset stops the stopwatch and sets Elapsed back to initial.
func (s StopwatchState) Reset(initial time.Duration) StopwatchState {
	return NewStopwatchState(initial)
}

// Tick refreshes the cached Elapsed of a running stopwatch.
func (s StopwatchState) Tick(now time.Time) StopwatchState {
	if !s.Running {
		return s
	}
	s.Elapsed = s.At(now)
	return s
}

// At returns the elapsed time as of now without changing the state.
func (s StopwatchState) At(now time.Time) time.Duration {
	if !s.Running {
		return s.Elapsed
	}
	return nonNegative(now.Sub(s.Anchor))
}

func nonNegative(d time.Duration) time.Duration {
	if d < 0 {
		return 0
	}
	return d
}
