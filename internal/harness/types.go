package harness

import (
	"fmt"
	"strings"

	"github.com/roach88/strokecap/internal/stroke"
)

// TraceEvent is one engine event observed during a run.
type TraceEvent struct {
	Frame  int64
	Kind   string
	Detail string
}

func (e TraceEvent) String() string {
	if e.Detail == "" {
		return fmt.Sprintf("%04d %s", e.Frame, e.Kind)
	}
	return fmt.Sprintf("%04d %s %s", e.Frame, e.Kind, e.Detail)
}

// Result is the outcome of a scenario run.
type Result struct {
	// Pass is true if every assertion held.
	Pass bool

	// Trace lists engine events in order.
	Trace []TraceEvent

	// Errors contains assertion failure messages.
	Errors []string

	// Strokes are the live strokes read back from the store.
	Strokes []stroke.Stroke

	// FinalState is the engine state name after the last frame.
	FinalState string

	// Pulses are the haptic pulses fired, in seconds.
	Pulses []float32
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:    true,
		Trace:   []TraceEvent{},
		Errors:  []string{},
		Strokes: []stroke.Stroke{},
	}
}

// AddError adds a failure message and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// FormatTrace renders the trace one event per line under a header naming
// the scenario.
func FormatTrace(name string, trace []TraceEvent) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "scenario: %s\n", name)
	for _, ev := range trace {
		b.WriteString(ev.String())
		b.WriteByte('\n')
	}
	return []byte(b.String())
}
