package engine

import (
	"github.com/roach88/strokecap/internal/creator"
	"github.com/roach88/strokecap/internal/stroke"
	"github.com/roach88/strokecap/internal/symmetry"
)

// EventKind identifies what changed.
type EventKind int

const (
	EventStateChanged EventKind = iota + 1
	EventBrushChanged
	EventColorChanged
	EventSizeChanged
	EventSymmetryChanged
	EventShapeChanged
	EventStrokeFinalized
	EventDrawDisallowed
)

func (k EventKind) String() string {
	switch k {
	case EventStateChanged:
		return "state_changed"
	case EventBrushChanged:
		return "brush_changed"
	case EventColorChanged:
		return "color_changed"
	case EventSizeChanged:
		return "size_changed"
	case EventSymmetryChanged:
		return "symmetry_changed"
	case EventShapeChanged:
		return "shape_changed"
	case EventStrokeFinalized:
		return "stroke_finalized"
	case EventDrawDisallowed:
		return "draw_disallowed"
	}
	return "unknown"
}

// Event describes one engine change. Only the fields relevant to Kind are set.
type Event struct {
	Kind   EventKind
	Frame  int64
	From   State
	To     State
	Brush  stroke.Brush
	Color  stroke.Color
	Size   float32
	Mode   symmetry.Mode
	Shape  creator.Shape
	Stroke *stroke.Stroke
}

// Observer receives engine events synchronously on the frame goroutine.
type Observer func(Event)

// Subscribe registers o and returns a function that removes it.
func (e *Engine) Subscribe(o Observer) (unsubscribe func()) {
	e.nextObserver++
	id := e.nextObserver
	e.observers = append(e.observers, observerEntry{id: id, fn: o})
	return func() {
		// Build a new slice: publish may be ranging over the current one.
		kept := make([]observerEntry, 0, len(e.observers))
		for _, ob := range e.observers {
			if ob.id != id {
				kept = append(kept, ob)
			}
		}
		e.observers = kept
	}
}

type observerEntry struct {
	id int
	fn Observer
}

func (e *Engine) publish(ev Event) {
	ev.Frame = e.frame
	for _, ob := range e.observers {
		ob.fn(ev)
	}
}
