package engine

import (
	"errors"
	"time"

	"github.com/YunKonstantin/timer-final/internal/clock"
)

// ErrClosed is returned by transitions on an engine that has been closed.
var ErrClosed = errors.New("engine: closed")

// loop calls fn on every tick until cancel is called. fn may still run once
// after cancel if a tick was already delivered; callers guard against that
// with a run generation.
type loop struct {
	ticker clock.Ticker
	stop   chan struct{}
}

func startLoop(clk clock.Clock, every time.Duration, fn func()) *loop {
	l := &loop{
		ticker: clk.NewTicker(every),
		stop:   make(chan struct{}),
	}
	go l.run(fn)
	return l
}

func (l *loop) run(fn func()) {
	for {
		select {
		case <-l.stop:
			return
		case <-l.ticker.C():
			fn()
		}
	}
}

func (l *loop) cancel() {
	l.ticker.Stop()
	close(l.stop)
}
