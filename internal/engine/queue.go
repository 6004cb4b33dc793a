package engine

import (
	"sync"

	"github.com/roach88/strokecap/internal/geom"
)

// InputKind distinguishes queued input.
type InputKind int

const (
	// InputPose moves the main pointer.
	InputPose InputKind = iota + 1
	// InputDraw presses or releases the draw button.
	InputDraw
	// InputPressure sets pointer pressure.
	InputPressure
)

// Input is one controller sample delivered through Enqueue.
type Input struct {
	Kind     InputKind
	Pose     geom.Pose
	Enabled  bool
	Pressure float32
}

// inputQueue is a thread-safe FIFO of controller input.
//
// Input threads enqueue at their own rate; the frame loop drains everything
// pending at the start of each Tick.
type inputQueue struct {
	mu     sync.Mutex
	inputs []Input
	closed bool
}

func newInputQueue() *inputQueue {
	return &inputQueue{inputs: make([]Input, 0, 16)}
}

// Enqueue adds an input to the back of the queue.
// Returns false if the queue is closed.
func (q *inputQueue) Enqueue(in Input) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return false
	}
	q.inputs = append(q.inputs, in)
	return true
}

// Drain removes and returns every pending input in arrival order.
func (q *inputQueue) Drain() []Input {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.inputs) == 0 {
		return nil
	}
	out := q.inputs
	q.inputs = make([]Input, 0, cap(out))
	return out
}

// Len returns the number of pending inputs.
func (q *inputQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.inputs)
}

// Close rejects further input.
func (q *inputQueue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.closed = true
}
