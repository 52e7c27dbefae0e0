package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func TestManualNowAndSet(t *testing.T) {
	c := NewManual(epoch)
	assert.Equal(t, epoch, c.Now())

	c.Advance(1500 * time.Millisecond)
	assert.Equal(t, epoch.Add(1500*time.Millisecond), c.Now())

	later := epoch.Add(time.Hour)
	c.Set(later)
	assert.Equal(t, later, c.Now())
}

func TestManualTickerDeliversEveryTick(t *testing.T) {
	c := NewManual(epoch)
	tk := c.NewTicker(time.Second)
	defer tk.Stop()

	got := make(chan time.Time, 10)
	go func() {
		for at := range tk.C() {
			got <- at
		}
	}()

	c.Advance(3500 * time.Millisecond)

	for i := 1; i <= 3; i++ {
		select {
		case at := <-got:
			assert.Equal(t, epoch.Add(time.Duration(i)*time.Second), at)
		case <-time.After(time.Second):
			t.Fatalf("tick %d not delivered", i)
		}
	}
	assert.Equal(t, epoch.Add(3500*time.Millisecond), c.Now())
}

func TestManualTickerStopUnblocksAdvance(t *testing.T) {
	c := NewManual(epoch)
	tk := c.NewTicker(time.Second)
	require.Equal(t, 1, c.ActiveTickers())

	tk.Stop()
	tk.Stop()
	assert.Equal(t, 0, c.ActiveTickers())

	// Nobody is reading; this must not block.
	c.Advance(5 * time.Second)
	assert.Equal(t, epoch.Add(5*time.Second), c.Now())
}

func TestManualTickersFireInOrder(t *testing.T) {
	c := NewManual(epoch)
	fast := c.NewTicker(10 * time.Millisecond)
	slow := c.NewTicker(25 * time.Millisecond)
	defer fast.Stop()
	defer slow.Stop()

	type tick struct {
		name string
		at   time.Time
	}
	got := make(chan tick, 16)
	go func() {
		for {
			select {
			case at := <-fast.C():
				got <- tick{"fast", at}
			case at := <-slow.C():
				got <- tick{"slow", at}
			}
		}
	}()

	c.Advance(30 * time.Millisecond)

	want := []tick{
		{"fast", epoch.Add(10 * time.Millisecond)},
		{"fast", epoch.Add(20 * time.Millisecond)},
		{"slow", epoch.Add(25 * time.Millisecond)},
		{"fast", epoch.Add(30 * time.Millisecond)},
	}
	for _, w := range want {
		select {
		case g := <-got:
			assert.Equal(t, w, g)
		case <-time.After(time.Second):
			t.Fatalf("missing tick %v", w)
		}
	}
}

func TestRealClock(t *testing.T) {
	c := NewReal()
	before := time.Now()
	assert.False(t, c.Now().Before(before))

	tk := c.NewTicker(time.Millisecond)
	defer tk.Stop()
	select {
	case <-tk.C():
	case <-time.After(time.Second):
		t.Fatal("real ticker never fired")
	}
}
