package creator

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/roach88/strokecap/internal/controlpoint"
	"github.com/roach88/strokecap/internal/geom"
)

// Line draws a segment from the initial pose to the end pose.
//
// The end orientation is smoothed so that the stroke's normal (forward axis)
// converges to the plane perpendicular to the line as the line gets longer.
// When flat is set both ends share the smoothed orientation.
type Line struct {
	base
	flat     bool
	segments int

	prevInput  mgl32.Quat
	prevOutput mgl32.Quat
}

// NewLine returns a Line creator seeded at initial.
func NewLine(initial geom.Pose, clock Clock, flat bool) *Line {
	return &Line{
		base:       newBase(initial, clock),
		flat:       flat,
		segments:   DefaultSegments,
		prevInput:  initial.Rotation,
		prevOutput: initial.Rotation,
	}
}

func (l *Line) Shape() Shape { return ShapeLine }

func (l *Line) GetPoints(final geom.Pose) []controlpoint.ControlPoint {
	final = l.condition(final)
	now := l.clock.Now()

	xf0 := l.initial
	xf1 := geom.TR(final.Position, l.smooth(final))
	if l.flat {
		xf0.Rotation = xf1.Rotation
	}

	out := make([]controlpoint.ControlPoint, 0, l.segments+1)
	for i := 0; i <= l.segments; i++ {
		t := float32(i) / float32(l.segments)
		out = append(out, controlpoint.New(geom.Lerp(xf0, xf1, t), 1, l.timestampAt(now, t)))
	}
	return out
}

// smooth carries the previous frame's output rotation forward by the input
// delta, then pulls the result toward a normal perpendicular to the line.
func (l *Line) smooth(final geom.Pose) mgl32.Quat {
	q := final.Rotation.Mul(l.prevInput.Inverse()).Mul(l.prevOutput)

	axis := final.Position.Sub(l.initial.Position)
	if axis == (mgl32.Vec3{}) {
		axis = mgl32.Vec3{0, 0.0001, 0}
	}
	mag := axis.Len()
	axis = axis.Mul(1 / mag)

	// Stronger pull as the line grows.
	converge := 1 - 1/(1+mag)

	normal := q.Rotate(geom.Forward)
	normalNoAxis := geom.NormalizeOrZero(geom.PerpendicularPart(axis, normal))
	q = geom.Slerp(q, geom.FromTo(normal, normalNoAxis).Mul(q), converge)

	// Then toward the raw input, unless the input normal lies along the line.
	oldNormal := q.Rotate(geom.Forward)
	newNormal := final.Rotation.Rotate(geom.Forward)
	newNoAxis := geom.NormalizeOrZero(geom.PerpendicularPart(axis, newNormal))
	if oldNormal.Dot(newNormal) < 0 {
		newNoAxis = newNoAxis.Mul(-1)
	}
	converge *= 1 - mgl32.Abs(newNormal.Dot(axis))
	q = geom.Slerp(q, geom.FromTo(newNormal, newNoAxis).Mul(final.Rotation), converge)

	l.prevOutput = q
	l.prevInput = final.Rotation
	return q
}
