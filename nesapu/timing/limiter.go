package timing

import (
	"context"
	"time"
)

// Limiter paces playback to real time, one video frame at a time.
type Limiter interface {
	// WaitForNextFrame blocks until it's time for the next frame, or until
	// ctx is done. Returns immediately if timing is behind schedule.
	WaitForNextFrame(ctx context.Context) error

	// Reset resets the timing state, useful after pauses.
	Reset()

	// Stop releases any timer held by the limiter.
	Stop()
}

// NewNoOpLimiter returns a limiter that doesn't limit (for offline rendering).
func NewNoOpLimiter() Limiter {
	return &noOpLimiter{}
}

type noOpLimiter struct{}

var (
	_ Limiter = (*noOpLimiter)(nil)
	_ Limiter = (*TickerLimiter)(nil)
	_ Limiter = (*AdaptiveLimiter)(nil)
)

func (n *noOpLimiter) WaitForNextFrame(ctx context.Context) error { return ctx.Err() }
func (n *noOpLimiter) Reset()                                     {}
func (n *noOpLimiter) Stop()                                      {}

// NTSC timing. A video frame is two full 4-step frame sequences.
const (
	TicksPerFrame = 29830
	CPUFrequency  = 1789773
)

// TargetFPS calculates the frame rate implied by TicksPerFrame.
func TargetFPS() float64 {
	return float64(CPUFrequency) / float64(TicksPerFrame)
}

// FrameDuration returns the target duration of a single frame.
func FrameDuration() time.Duration {
	return time.Duration(float64(time.Second) / TargetFPS())
}

// FramesFor returns the number of whole frames spanning ticks master ticks,
// rounding up.
func FramesFor(ticks uint64) uint64 {
	return (ticks + TicksPerFrame - 1) / TicksPerFrame
}
