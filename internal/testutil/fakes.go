package testutil

import (
	"context"
	"sync"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/roach88/strokecap/internal/stroke"
)

// MemorySink collects finalized strokes in memory.
type MemorySink struct {
	mu      sync.Mutex
	strokes []stroke.Stroke
	Err     error
}

// WriteStroke records s, or returns Err when set.
func (m *MemorySink) WriteStroke(_ context.Context, s stroke.Stroke) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.strokes = append(m.strokes, s)
	return nil
}

// Strokes returns a copy of the strokes written so far.
func (m *MemorySink) Strokes() []stroke.Stroke {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]stroke.Stroke(nil), m.strokes...)
}

// HapticsRecorder records every pulse duration requested.
type HapticsRecorder struct {
	mu     sync.Mutex
	pulses []float32
}

// Pulse records a pulse.
func (h *HapticsRecorder) Pulse(seconds float32) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.pulses = append(h.pulses, seconds)
}

// Pulses returns the recorded pulse durations.
func (h *HapticsRecorder) Pulses() []float32 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]float32(nil), h.pulses...)
}

// GestureOutcome is the result ScriptedGesture reports on a given update.
type GestureOutcome int

const (
	GesturePending GestureOutcome = iota
	GestureSucceeded
	GestureFailed
)

// ScriptedGesture is a gesture detector whose outcomes are queued by the
// test. Each Update consumes one queued outcome; an empty queue is pending.
type ScriptedGesture struct {
	mu       sync.Mutex
	queue    []GestureOutcome
	Begins   int
	Resets   int
	Position []mgl32.Vec3
}

// Queue appends outcomes for subsequent updates.
func (g *ScriptedGesture) Queue(outcomes ...GestureOutcome) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.queue = append(g.queue, outcomes...)
}

// Begin starts a new gesture.
func (g *ScriptedGesture) Begin(mgl32.Vec3) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.Begins++
}

// Update reports whether the gesture completed and whether it succeeded.
func (g *ScriptedGesture) Update(pos mgl32.Vec3) (complete, succeeded bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.Position = append(g.Position, pos)
	if len(g.queue) == 0 {
		return false, false
	}
	next := g.queue[0]
	g.queue = g.queue[1:]
	switch next {
	case GestureSucceeded:
		return true, true
	case GestureFailed:
		return true, false
	}
	return false, false
}

// Reset clears the current gesture.
func (g *ScriptedGesture) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.Resets++
}
