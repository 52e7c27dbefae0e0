// Package clock abstracts wall-clock reads and periodic tickers so the
// timer engines can run against a manual clock in tests.
package clock

import "time"

// Clock provides the current time and repeating tickers.
type Clock interface {
	Now() time.Time
	NewTicker(d time.Duration) Ticker
}

// Ticker delivers ticks on C until Stop is called.
type Ticker interface {
	C() <-chan time.Time
	// Stop turns off the ticker. No more ticks are sent after Stop returns,
	// but a tick already sent may still be sitting in the channel.
	Stop()
}

// Real implements Clock using the standard time package.
type Real struct{}

// NewReal creates a Real clock.
func NewReal() Real {
	return Real{}
}

func (Real) Now() time.Time {
	return time.Now()
}

func (Real) NewTicker(d time.Duration) Ticker {
	return &realTicker{t: time.NewTicker(d)}
}

type realTicker struct {
	t *time.Ticker
}

func (r *realTicker) C() <-chan time.Time {
	return r.t.C
}

func (r *realTicker) Stop() {
	r.t.Stop()
}
