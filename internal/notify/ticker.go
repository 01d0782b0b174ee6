package notify

import (
	"context"
	"sync"
	"time"
)

// Ticker is the periodic source driving countdown recomputation. It delivers
// the current time once per interval until the context is cancelled or Stop
// is called, at which point the channel closes and the underlying timer is
// released.
type Ticker struct {
	interval time.Duration
	stop     chan struct{}
	once     sync.Once
}

// NewTicker creates a Ticker. A non-positive interval falls back to one
// second, the period countdown views refresh at.
func NewTicker(interval time.Duration) *Ticker {
	if interval <= 0 {
		interval = time.Second
	}
	return &Ticker{
		interval: interval,
		stop:     make(chan struct{}),
	}
}

// Start begins ticking. The returned channel closes once the ticker stops.
func (t *Ticker) Start(ctx context.Context) <-chan time.Time {
	out := make(chan time.Time)

	go func() {
		defer close(out)
		ticker := time.NewTicker(t.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-t.stop:
				return
			case now := <-ticker.C:
				select {
				case out <- now:
				case <-ctx.Done():
					return
				case <-t.stop:
					return
				}
			}
		}
	}()

	return out
}

// Stop ends the tick stream. Safe to call more than once.
func (t *Ticker) Stop() {
	t.once.Do(func() {
		close(t.stop)
	})
}
