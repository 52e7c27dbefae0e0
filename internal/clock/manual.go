package clock

import (
	"sync"
	"time"
)

// Manual is a Clock whose time only moves when Advance or Set is called.
// Ticks are handed to the receiver synchronously, so a tick is never
// dropped while the ticker is alive.
type Manual struct {
	mu      sync.Mutex
	now     time.Time
	tickers []*manualTicker
}

// NewManual creates a Manual clock starting at start.
func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

func (m *Manual) NewTicker(d time.Duration) Ticker {
	if d <= 0 {
		panic("clock: non-positive interval for NewTicker")
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	t := &manualTicker{
		clock: m,
		every: d,
		next:  m.now.Add(d),
		c:     make(chan time.Time),
		done:  make(chan struct{}),
	}
	m.tickers = append(m.tickers, t)
	return t
}

// Set jumps to t without firing any tickers.
func (m *Manual) Set(t time.Time) {
	m.mu.Lock()
	m.now = t
	for _, tk := range m.tickers {
		tk.next = t.Add(tk.every)
	}
	m.mu.Unlock()
}

// Advance moves the clock forward by d, delivering every tick that falls
// due on the way in chronological order. Advance blocks until each tick is
// received or its ticker is stopped.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now.Add(d)
	for {
		tk := m.nextDueLocked(target)
		if tk == nil {
			m.now = target
			m.mu.Unlock()
			return
		}
		m.now = tk.next
		tk.next = tk.next.Add(tk.every)
		at := m.now
		m.mu.Unlock()

		select {
		case tk.c <- at:
		case <-tk.done:
		}

		m.mu.Lock()
	}
}

// ActiveTickers reports how many tickers have not been stopped.
func (m *Manual) ActiveTickers() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tickers)
}

func (m *Manual) nextDueLocked(target time.Time) *manualTicker {
	var due *manualTicker
	for _, tk := range m.tickers {
		if tk.next.After(target) {
			continue
		}
		if due == nil || tk.next.Before(due.next) {
			due = tk
		}
	}
	return due
}

func (m *Manual) remove(t *manualTicker) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, tk := range m.tickers {
		if tk == t {
			m.tickers = append(m.tickers[:i], m.tickers[i+1:]...)
			return
		}
	}
}

type manualTicker struct {
	clock *Manual
	every time.Duration
	next  time.Time
	c     chan time.Time
	done  chan struct{}
	once  sync.Once
}

func (t *manualTicker) C() <-chan time.Time {
	return t.c
}

func (t *manualTicker) Stop() {
	t.once.Do(func() {
		close(t.done)
		t.clock.remove(t)
	})
}
