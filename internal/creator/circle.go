package creator

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/roach88/strokecap/internal/controlpoint"
	"github.com/roach88/strokecap/internal/geom"
)

// Circle draws a ring centered at the initial position passing through the
// end pose. The ring's plane is chosen from the end orientation and is kept
// consistent with the previous frame's tangent.
//
// The tangent can still pop when the controller rotates quickly through a
// degenerate orientation.
type Circle struct {
	base
	segments  int
	preferred mgl32.Vec3
}

// NewCircle returns a Circle creator centered at initial.
func NewCircle(initial geom.Pose, clock Clock) *Circle {
	return &Circle{
		base:     newBase(initial, clock),
		segments: DefaultSegments,
	}
}

func (c *Circle) Shape() Shape { return ShapeCircle }

func (c *Circle) GetPoints(final geom.Pose) []controlpoint.ControlPoint {
	final = c.condition(final)
	now := c.clock.Now()

	center := c.initial.Position
	radial := final.Position.Sub(center)
	radius := radial.Len()
	if radius < geom.Epsilon {
		return []controlpoint.ControlPoint{
			controlpoint.New(c.initial, 1, controlpoint.TimestampFromSeconds(c.initialTime)),
			controlpoint.New(final, 1, controlpoint.TimestampFromSeconds(now)),
		}
	}
	radial = radial.Mul(1 / radius)

	tangent := c.tangent(radial, final.Rotation)
	c.preferred = tangent
	axis := geom.NormalizeOrZero(tangent.Cross(radial))

	out := make([]controlpoint.ControlPoint, 0, c.segments+1)
	for i := 0; i <= c.segments; i++ {
		t := float32(i) / float32(c.segments)
		spin := geom.R(geom.AngleAxis(360*t, axis)).TransformBy(geom.T(center))
		out = append(out, controlpoint.New(spin.Mul(final), 1, c.timestampAt(now, t)))
	}
	return out
}

// tangent picks a direction perpendicular to radial, preferring the
// controller's right axis and falling back to its up axis as right aligns
// with the radius.
func (c *Circle) tangent(radial mgl32.Vec3, rot mgl32.Quat) mgl32.Vec3 {
	t1 := geom.InDirectionOf(c.preferred, geom.PerpendicularPart(radial, rot.Rotate(geom.Right)))
	t2 := geom.InDirectionOf(c.preferred, geom.PerpendicularPart(radial, rot.Rotate(geom.Up)))
	w := float32(math.Sqrt(math.Max(0, float64(1-t1.Dot(t1)))))
	return geom.NormalizeOrZero(t1.Add(t2.Mul(w)))
}
