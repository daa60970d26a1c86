package saccade

import (
	"sync/atomic"
	"time"
)

// Clock reports elapsed time on a monotonic timeline. Only differences
// between readings are meaningful.
type Clock interface {
	Now() time.Duration
}

type monotonicClock struct {
	start time.Time
}

// NewMonotonicClock measures time since its creation using the runtime's
// monotonic reading, so wall-clock adjustments never move it.
func NewMonotonicClock() Clock {
	return monotonicClock{start: time.Now()}
}

func (c monotonicClock) Now() time.Duration {
	return time.Since(c.start)
}

// ManualClock only moves when told to. Offline runs advance it once per
// frame; tests set it directly.
type ManualClock struct {
	now atomic.Int64
}

func (c *ManualClock) Now() time.Duration {
	return time.Duration(c.now.Load())
}

func (c *ManualClock) Advance(d time.Duration) {
	c.now.Add(int64(d))
}

func (c *ManualClock) Set(d time.Duration) {
	c.now.Store(int64(d))
}
