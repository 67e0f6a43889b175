package engine

import (
	"context"
	"time"
)

// Heartbeat advances logical time from the wall clock. Each tick calls
// advance with the tick's Unix time in seconds.
type Heartbeat struct {
	interval time.Duration
	advance  func(ts int64)
}

// NewHeartbeat creates a Heartbeat that ticks every interval.
func NewHeartbeat(interval time.Duration, advance func(ts int64)) *Heartbeat {
	return &Heartbeat{
		interval: interval,
		advance:  advance,
	}
}

// Start launches a background goroutine that ticks at the configured
// interval. It stops when ctx is cancelled.
func (h *Heartbeat) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(h.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case t := <-ticker.C:
				h.advance(t.Unix())
			}
		}
	}()
}
