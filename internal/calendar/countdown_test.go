package calendar

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golfcart-dashboard/internal/domain"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func TestCountdown(t *testing.T) {
	start := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	rentals := []domain.Rental{
		{ID: 1, Start: start, End: start.Add(2 * time.Hour)},
		{ID: 2, Start: start}, // end failed to parse
	}

	t.Run("Load computes immediately", func(t *testing.T) {
		clock := &fakeClock{now: start}
		cd := NewCountdown(time.Hour, clock.Now)
		defer cd.Stop()

		cd.Load(rentals)
		snap := cd.Snapshot()
		assert.Equal(t, "2 horas 0 minutos", snap[1])
		assert.Equal(t, NoEndLabel, snap[2])
	})

	t.Run("Ticks until stopped", func(t *testing.T) {
		clock := &fakeClock{now: start}
		cd := NewCountdown(5*time.Millisecond, clock.Now)
		ch, unsubscribe := cd.Subscribe()
		defer unsubscribe()

		cd.Load(rentals)
		assert.True(t, cd.Running())

		clock.Advance(30 * time.Minute)
		require.Eventually(t, func() bool {
			select {
			case snap := <-ch:
				return snap[1] == "1 horas 30 minutos"
			default:
				return false
			}
		}, time.Second, 2*time.Millisecond)

		cd.Stop()
		assert.False(t, cd.Running())

		select {
		case <-ch:
		default:
		}
		clock.Advance(time.Hour)
		time.Sleep(30 * time.Millisecond)

		select {
		case snap := <-ch:
			t.Fatalf("tick after Stop: %v", snap)
		default:
		}
		assert.Equal(t, "1 horas 30 minutos", cd.Snapshot()[1])
	})

	t.Run("Load replaces the running ticker", func(t *testing.T) {
		clock := &fakeClock{now: start}
		cd := NewCountdown(5*time.Millisecond, clock.Now)
		defer cd.Stop()

		cd.Load(rentals)
		cd.Load([]domain.Rental{{ID: 9, End: start.Add(time.Hour)}})

		assert.Equal(t, int32(1), cd.active.Load())
		snap := cd.Snapshot()
		assert.Len(t, snap, 1)
		assert.Equal(t, "1 horas 0 minutos", snap[9])
	})

	t.Run("Stop is idempotent", func(t *testing.T) {
		cd := NewCountdown(time.Millisecond, nil)
		cd.Stop()
		cd.Load(nil)
		cd.Stop()
		cd.Stop()
		assert.False(t, cd.Running())
	})

	t.Run("Unsubscribe closes channel", func(t *testing.T) {
		cd := NewCountdown(time.Hour, nil)
		ch, unsubscribe := cd.Subscribe()
		unsubscribe()
		unsubscribe()
		_, open := <-ch
		assert.False(t, open)

		cd.Load(rentals) // must not send on the closed channel
		cd.Stop()
	})

	t.Run("Close ends subscriptions", func(t *testing.T) {
		cd := NewCountdown(time.Millisecond, nil)
		ch, unsubscribe := cd.Subscribe()
		cd.Load(rentals)

		cd.Close()
		assert.False(t, cd.Running())
		require.Eventually(t, func() bool {
			select {
			case _, open := <-ch:
				return !open
			default:
				return false
			}
		}, time.Second, time.Millisecond)
		unsubscribe()

		late, lateUnsubscribe := cd.Subscribe()
		_, open := <-late
		assert.False(t, open)
		lateUnsubscribe()
	})
}
