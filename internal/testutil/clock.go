package testutil

import (
	"math"
	"sync"
)

// ManualClock is a sketch clock driven explicitly by tests.
//
// Time is kept in whole microseconds so repeated Advance calls with the same
// step produce exact, reproducible timestamps.
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type ManualClock struct {
	mu     sync.Mutex
	micros int64
}

// NewManualClock creates a clock at the given time in seconds.
func NewManualClock(seconds float64) *ManualClock {
	c := &ManualClock{}
	c.Set(seconds)
	return c
}

// Now returns the current time in seconds.
func (c *ManualClock) Now() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return float64(c.micros) / 1e6
}

// Set moves the clock to seconds.
func (c *ManualClock) Set(seconds float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.micros = int64(math.Round(seconds * 1e6))
}

// Advance moves the clock forward by dt seconds.
func (c *ManualClock) Advance(dt float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.micros += int64(math.Round(dt * 1e6))
}

// Reset moves the clock back to zero.
func (c *ManualClock) Reset() {
	c.Set(0)
}
