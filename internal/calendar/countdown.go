package calendar

import (
	"context"
	"maps"
	"sync"
	"sync/atomic"
	"time"

	"golfcart-dashboard/internal/domain"
)

// Countdown recomputes the remaining time of a set of rentals on a fixed
// interval. It owns at most one ticker goroutine at a time: Load replaces the
// running one and Stop tears it down. Neither returns until the previous
// goroutine has exited, so no tick is observed after Stop.
type Countdown struct {
	interval time.Duration
	now      func() time.Time

	// lifecycle serializes Load and Stop.
	lifecycle sync.Mutex
	cancel    context.CancelFunc
	done      chan struct{}
	active    atomic.Int32

	mu       sync.Mutex
	rentals  []domain.Rental
	snapshot map[int]string
	subs     map[int]chan map[int]string
	nextSub  int
	closed   bool
}

// NewCountdown creates a stopped countdown. A nil now uses time.Now.
func NewCountdown(interval time.Duration, now func() time.Time) *Countdown {
	if interval <= 0 {
		interval = time.Second
	}
	if now == nil {
		now = time.Now
	}
	return &Countdown{
		interval: interval,
		now:      now,
		snapshot: map[int]string{},
		subs:     map[int]chan map[int]string{},
	}
}

// Load swaps in a new rental set, computes it immediately and restarts the ticker.
func (c *Countdown) Load(rentals []domain.Rental) {
	c.lifecycle.Lock()
	defer c.lifecycle.Unlock()

	c.stopLocked()

	c.mu.Lock()
	c.rentals = append([]domain.Rental(nil), rentals...)
	c.mu.Unlock()
	c.tick()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	c.cancel = cancel
	c.done = done
	c.active.Add(1)
	go c.run(ctx, done)
}

// Stop cancels the ticker and waits for it to exit. Safe to call repeatedly.
func (c *Countdown) Stop() {
	c.lifecycle.Lock()
	defer c.lifecycle.Unlock()
	c.stopLocked()
}

// Close stops the ticker and closes every subscriber channel. Later
// subscriptions receive an already closed channel.
func (c *Countdown) Close() {
	c.Stop()

	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	for id, ch := range c.subs {
		delete(c.subs, id)
		close(ch)
	}
}

func (c *Countdown) stopLocked() {
	if c.cancel == nil {
		return
	}
	c.cancel()
	<-c.done
	c.cancel = nil
	c.done = nil
}

func (c *Countdown) run(ctx context.Context, done chan struct{}) {
	defer close(done)
	defer c.active.Add(-1)

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if ctx.Err() != nil {
				return
			}
			c.tick()
		}
	}
}

func (c *Countdown) tick() {
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	snap := make(map[int]string, len(c.rentals))
	for _, r := range c.rentals {
		snap[r.ID] = FormatRemainingFor(r.End, now)
	}
	c.snapshot = snap

	for _, ch := range c.subs {
		publish(ch, maps.Clone(snap))
	}
}

// publish delivers the latest snapshot without blocking; a slow reader only
// ever sees the newest value.
func publish(ch chan map[int]string, snap map[int]string) {
	select {
	case ch <- snap:
		return
	default:
	}
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- snap:
	default:
	}
}

// Snapshot returns a copy of the latest rental id to remaining-time map.
func (c *Countdown) Snapshot() map[int]string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return maps.Clone(c.snapshot)
}

// Subscribe returns a channel that receives every new snapshot and a function
// that ends the subscription and closes the channel.
func (c *Countdown) Subscribe() (<-chan map[int]string, func()) {
	ch := make(chan map[int]string, 1)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		close(ch)
		return ch, func() {}
	}
	id := c.nextSub
	c.nextSub++
	c.subs[id] = ch

	return ch, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if _, ok := c.subs[id]; ok {
			delete(c.subs, id)
			close(ch)
		}
	}
}

// Running reports whether a ticker goroutine is live.
func (c *Countdown) Running() bool {
	return c.active.Load() > 0
}
