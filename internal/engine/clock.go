package engine

import (
	"math"
	"sync/atomic"
)

// Clock is the sketch clock: seconds since the sketch began.
//
// Time is stored in whole microseconds so that timestamps derived from it
// are reproducible across runs with the same frame deltas.
//
// Thread-safety: Clock is safe for concurrent use (atomic operations).
// Only the frame loop advances it.
type Clock struct {
	micros atomic.Int64
}

// NewClock creates a clock at time 0.
func NewClock() *Clock {
	return &Clock{}
}

// NewClockAt creates a clock starting at seconds.
// Used when resuming a sketch.
func NewClockAt(seconds float64) *Clock {
	c := &Clock{}
	c.micros.Store(toMicros(seconds))
	return c
}

// Advance moves the clock forward by dt seconds. Negative dt is ignored.
func (c *Clock) Advance(dt float64) {
	if dt <= 0 {
		return
	}
	c.micros.Add(toMicros(dt))
}

// Now returns the current sketch time in seconds.
func (c *Clock) Now() float64 {
	return float64(c.micros.Load()) / 1e6
}

func toMicros(seconds float64) int64 {
	return int64(math.Round(seconds * 1e6))
}
