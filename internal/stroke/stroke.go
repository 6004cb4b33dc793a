package stroke

import (
	"github.com/google/uuid"

	"github.com/roach88/strokecap/internal/controlpoint"
)

// Flags are per-stroke bits persisted with the stroke.
type Flags uint32

const (
	FlagNone Flags = 0

	// FlagDeprecated1 is reserved; older files may still set it.
	FlagDeprecated1 Flags = 1 << 0

	// FlagIsGroupContinue marks a stroke that belongs to the same undo group
	// as the stroke before it. All strokes in one group share the head
	// stroke's first timestamp.
	FlagIsGroupContinue Flags = 1 << 1
)

// Has reports whether all bits of f2 are set.
func (f Flags) Has(f2 Flags) bool { return f&f2 == f2 }

// Color is a linear RGBA color.
type Color struct {
	R, G, B, A float32
}

// White is the default brush color.
var White = Color{1, 1, 1, 1}

// Stroke is a finalized stroke ready for persistence.
type Stroke struct {
	// ID is unique per stroke.
	ID string

	// GroupID identifies the logical drawing action. Symmetric replicas
	// and budget continuations of one gesture share it.
	GroupID string

	// Slot is the pointer slot index that produced the stroke.
	Slot int

	BrushID    uuid.UUID
	BrushName  string
	BrushSize  float32
	BrushScale float32
	Color      Color
	Flags      Flags

	ControlPoints []controlpoint.ControlPoint
}

// HeadTimestampMs returns the first control point's timestamp, or 0.
func (s *Stroke) HeadTimestampMs() uint32 {
	if len(s.ControlPoints) == 0 {
		return 0
	}
	return s.ControlPoints[0].TimestampMs
}
