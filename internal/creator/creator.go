package creator

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/roach88/strokecap/internal/controlpoint"
	"github.com/roach88/strokecap/internal/geom"
)

// DefaultSegments is the number of segments emitted by Line and Circle.
const DefaultSegments = 30

// Clock reports the current sketch time in seconds.
type Clock interface {
	Now() float64
}

// Creator synthesizes the control points of a parametric stroke.
type Creator interface {
	// Shape reports which shape this creator draws.
	Shape() Shape

	// Initial returns the pose the creator was seeded with.
	Initial() geom.Pose

	// GetPoints returns the complete point sequence for a stroke ending at
	// final. Each call recomputes from scratch and advances smoothing state.
	GetPoints(final geom.Pose) []controlpoint.ControlPoint

	// ProcessBrushSize returns the brush size to use for this stroke, given
	// the requested room-space size.
	ProcessBrushSize(sizeRS float32) float32
}

// Shape names a parametric stroke shape.
type Shape int

const (
	ShapeLine Shape = iota
	ShapeCircle
	ShapeSphere
)

// Next cycles Line, Circle, Sphere, Line.
func (s Shape) Next() Shape {
	switch s {
	case ShapeLine:
		return ShapeCircle
	case ShapeCircle:
		return ShapeSphere
	default:
		return ShapeLine
	}
}

func (s Shape) String() string {
	switch s {
	case ShapeLine:
		return "line"
	case ShapeCircle:
		return "circle"
	case ShapeSphere:
		return "sphere"
	default:
		return fmt.Sprintf("Shape(%d)", int(s))
	}
}

// ParseShape parses the lowercase shape name.
func ParseShape(s string) (Shape, error) {
	switch s {
	case "line":
		return ShapeLine, nil
	case "circle":
		return ShapeCircle, nil
	case "sphere":
		return ShapeSphere, nil
	}
	return 0, fmt.Errorf("unknown shape %q", s)
}

// base holds state every creator shares.
type base struct {
	clock       Clock
	initial     geom.Pose
	initialTime float64
	prevFinal   mgl32.Quat
}

func newBase(initial geom.Pose, clock Clock) base {
	return base{
		clock:       clock,
		initial:     initial,
		initialTime: clock.Now(),
		prevFinal:   initial.Rotation,
	}
}

func (b *base) Initial() geom.Pose { return b.initial }

// condition keeps the end rotation in the hemisphere of the previous one so
// downstream slerps do not take the long way round.
func (b *base) condition(final geom.Pose) geom.Pose {
	if final.Rotation.Dot(b.prevFinal) < 0 {
		final.Rotation = geom.Negate(final.Rotation)
	}
	b.prevFinal = final.Rotation
	return final
}

// timestampAt interpolates between the start time and now.
func (b *base) timestampAt(now float64, t float32) uint32 {
	return controlpoint.TimestampFromSeconds(geom.Lerp64(b.initialTime, now, float64(t)))
}

func (b *base) ProcessBrushSize(sizeRS float32) float32 { return sizeRS }

// New returns a creator of the given shape seeded at initial.
// brushSize, canvasScale and minSphereSize are only used by ShapeSphere.
func New(shape Shape, initial geom.Pose, clock Clock, brushSize, canvasScale, minSphereSize float32) Creator {
	switch shape {
	case ShapeCircle:
		return NewCircle(initial, clock)
	case ShapeSphere:
		return NewSphereWithMin(initial, clock, brushSize, canvasScale, minSphereSize)
	default:
		return NewLine(initial, clock, true)
	}
}
