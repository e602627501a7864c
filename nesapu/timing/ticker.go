package timing

import (
	"context"
	"time"
)

// TickerLimiter uses time.Ticker for simple, consistent frame timing.
// Less accurate than AdaptiveLimiter but simpler and good enough for the scope.
type TickerLimiter struct {
	ticker  *time.Ticker
	period  time.Duration
	stopped bool
}

func NewTickerLimiter(period time.Duration) *TickerLimiter {
	return &TickerLimiter{
		ticker: time.NewTicker(period),
		period: period,
	}
}

func (t *TickerLimiter) WaitForNextFrame(ctx context.Context) error {
	select {
	case <-t.ticker.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (t *TickerLimiter) Reset() {
	t.ticker.Reset(t.period)
}

func (t *TickerLimiter) Stop() {
	t.ticker.Stop()
	t.stopped = true
}

// Stopped reports whether Stop has been called.
func (t *TickerLimiter) Stopped() bool {
	return t.stopped
}
