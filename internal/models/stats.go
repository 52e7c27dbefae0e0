package models

import "time"

type SessionKind string

const (
	KindStopwatch SessionKind = "stopwatch"
	KindCountdown SessionKind = "countdown"
)

// SessionRecord is one finished countdown or one discarded stopwatch run.
type SessionRecord struct {
	ID        int64
	Kind      SessionKind
	StartedAt time.Time
	EndedAt   time.Time
	Duration  time.Duration
}

type SessionStats struct {
	Sessions int
	Total    time.Duration
	Average  time.Duration
	Longest  time.Duration
}
