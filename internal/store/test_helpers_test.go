package store

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/require"

	"github.com/roach88/strokecap/internal/controlpoint"
	"github.com/roach88/strokecap/internal/stroke"
)

// createTestStore creates a new in-memory store for testing.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestStroke creates a two-point stroke.
func createTestStroke(id, groupID string, slot int, flags stroke.Flags) stroke.Stroke {
	brush := stroke.NewBrush("Ink")
	return stroke.Stroke{
		ID:         id,
		GroupID:    groupID,
		Slot:       slot,
		BrushID:    brush.ID,
		BrushName:  brush.Name,
		BrushSize:  0.25,
		BrushScale: 1,
		Color:      stroke.Color{R: 1, G: 0.5, B: 0, A: 1},
		Flags:      flags,
		ControlPoints: []controlpoint.ControlPoint{
			{Position: mgl32.Vec3{0, 0, 0}, Orientation: mgl32.QuatIdent(), Pressure: 1, TimestampMs: 100},
			{Position: mgl32.Vec3{1, 0, 0}, Orientation: mgl32.QuatIdent(), Pressure: 0.5, TimestampMs: 150},
		},
	}
}
