package timing

import (
	"context"
	"log/slog"
	"time"
)

// driftCheckFrames is how often, in frames, accumulated drift is corrected.
const driftCheckFrames = 60

// AdaptiveLimiter sleeps until each frame deadline and corrects drift
// periodically. Falling more than 5ms behind resynchronises instead of
// trying to catch up.
type AdaptiveLimiter struct {
	targetFrameTime time.Duration
	nextFrameTime   time.Time
	frameCounter    int64

	now func() time.Time
}

func NewAdaptiveLimiter(frame time.Duration) *AdaptiveLimiter {
	return &AdaptiveLimiter{
		targetFrameTime: frame,
		nextFrameTime:   time.Now(),
		now:             time.Now,
	}
}

func (a *AdaptiveLimiter) WaitForNextFrame(ctx context.Context) error {
	now := a.now()
	sleepTime := a.nextFrameTime.Sub(now)

	if sleepTime > 0 {
		timer := time.NewTimer(sleepTime)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		}
	} else if sleepTime < -5*time.Millisecond {
		a.nextFrameTime = now
	}

	a.nextFrameTime = a.nextFrameTime.Add(a.targetFrameTime)
	a.frameCounter++

	if a.frameCounter%driftCheckFrames == 0 {
		drift := a.now().Sub(a.nextFrameTime.Add(-a.targetFrameTime))
		if drift.Abs() > 10*time.Millisecond {
			a.nextFrameTime = a.nextFrameTime.Add(drift / 10)
			slog.Debug("Frame timing drift correction", "drift_ms", drift.Milliseconds(), "frames", a.frameCounter)
		}
	}
	return nil
}

func (a *AdaptiveLimiter) Reset() {
	a.nextFrameTime = a.now()
	a.frameCounter = 0
}

// Stop is a no-op: each wait owns its own timer.
func (a *AdaptiveLimiter) Stop() {}

// Frames returns the number of frames waited for since the last reset.
func (a *AdaptiveLimiter) Frames() int64 {
	return a.frameCounter
}
