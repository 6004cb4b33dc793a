package creator

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/strokecap/internal/controlpoint"
	"github.com/roach88/strokecap/internal/geom"
	"github.com/roach88/strokecap/internal/testutil"
)

const eps = 1e-4

func assertUnitRotations(t *testing.T, cps []controlpoint.ControlPoint) {
	t.Helper()
	for i, cp := range cps {
		assert.InDelta(t, 1, cp.Orientation.Len(), 1e-3, "point %d", i)
		assert.True(t, cp.Pose().IsFinite(), "point %d", i)
	}
}

func assertMonotonic(t *testing.T, cps []controlpoint.ControlPoint) {
	t.Helper()
	for i := 1; i < len(cps); i++ {
		assert.LessOrEqual(t, cps[i-1].TimestampMs, cps[i].TimestampMs, "point %d", i)
	}
}

func TestShape_Next(t *testing.T) {
	assert.Equal(t, ShapeCircle, ShapeLine.Next())
	assert.Equal(t, ShapeSphere, ShapeCircle.Next())
	assert.Equal(t, ShapeLine, ShapeSphere.Next())
}

func TestParseShape(t *testing.T) {
	s, err := ParseShape("sphere")
	require.NoError(t, err)
	assert.Equal(t, ShapeSphere, s)

	_, err = ParseShape("cube")
	assert.Error(t, err)
}

func TestLine_GetPoints_Endpoints(t *testing.T) {
	clock := testutil.NewManualClock(0.5)
	a := geom.TR(mgl32.Vec3{1, 0, 0}, mgl32.QuatIdent())
	l := NewLine(a, clock, true)

	clock.Set(1.25)
	b := geom.TR(mgl32.Vec3{3, 1, 0}, mgl32.QuatIdent())
	cps := l.GetPoints(b)

	require.Len(t, cps, DefaultSegments+1)
	assert.True(t, cps[0].Position.ApproxEqualThreshold(a.Position, eps))
	assert.True(t, cps[len(cps)-1].Position.ApproxEqualThreshold(b.Position, eps))
	assert.Equal(t, uint32(500), cps[0].TimestampMs)
	assert.Equal(t, uint32(1250), cps[len(cps)-1].TimestampMs)
	for _, cp := range cps {
		assert.Equal(t, float32(1), cp.Pressure)
	}
	assertUnitRotations(t, cps)
	assertMonotonic(t, cps)
}

func TestLine_GetPoints_FlatSharesOrientation(t *testing.T) {
	clock := testutil.NewManualClock(0)
	l := NewLine(geom.Identity(), clock, true)

	cps := l.GetPoints(geom.TR(mgl32.Vec3{0, 0, 2}, geom.AngleAxis(40, geom.Up)))
	assert.True(t, geom.SameRotation(cps[0].Orientation, cps[len(cps)-1].Orientation, eps))
}

func TestLine_GetPoints_NormalPerpendicularToLine(t *testing.T) {
	clock := testutil.NewManualClock(0)
	l := NewLine(geom.Identity(), clock, false)

	// Input normal is 45 degrees off the line; smoothing pulls it close to
	// perpendicular on a long line.
	cps := l.GetPoints(geom.TR(mgl32.Vec3{0, 0, 10}, geom.AngleAxis(45, geom.Up)))
	normal := cps[len(cps)-1].Orientation.Rotate(geom.Forward)
	assert.Less(t, mgl32.Abs(normal.Dot(geom.Forward)), float32(0.2))
}

func TestLine_GetPoints_ZeroLength(t *testing.T) {
	clock := testutil.NewManualClock(0)
	l := NewLine(geom.Identity(), clock, true)

	cps := l.GetPoints(geom.Identity())
	require.Len(t, cps, DefaultSegments+1)
	assertUnitRotations(t, cps)
}

func TestCreator_ConditionsQuaternionSign(t *testing.T) {
	clock := testutil.NewManualClock(0)
	start := geom.TR(mgl32.Vec3{}, geom.AngleAxis(10, geom.Up))
	end := geom.TR(mgl32.Vec3{1, 0, 0}, geom.AngleAxis(30, geom.Up))
	flipped := geom.TR(end.Position, geom.Negate(end.Rotation))

	a := NewLine(start, clock, false).GetPoints(end)
	b := NewLine(start, clock, false).GetPoints(flipped)

	require.Len(t, b, len(a))
	for i := range a {
		assert.True(t, geom.SameRotation(a[i].Orientation, b[i].Orientation, eps), "point %d", i)
		assert.GreaterOrEqual(t, a[i].Orientation.Dot(b[i].Orientation), float32(0), "point %d", i)
	}
}

func TestCircle_GetPoints_Degenerate(t *testing.T) {
	clock := testutil.NewManualClock(0.25)
	start := geom.TR(mgl32.Vec3{1, 1, 1}, mgl32.QuatIdent())
	c := NewCircle(start, clock)

	clock.Set(0.75)
	cps := c.GetPoints(start)

	require.Len(t, cps, 2)
	assert.Equal(t, start.Position, cps[0].Position)
	assert.Equal(t, start.Position, cps[1].Position)
	assert.True(t, geom.SameRotation(start.Rotation, cps[0].Orientation, eps))
	assert.Equal(t, uint32(250), cps[0].TimestampMs)
	assert.Equal(t, uint32(750), cps[1].TimestampMs)
}

func TestCircle_GetPoints_Ring(t *testing.T) {
	clock := testutil.NewManualClock(0)
	center := mgl32.Vec3{0, 1, 0}
	c := NewCircle(geom.T(center), clock)

	end := geom.TR(mgl32.Vec3{2, 1, 0}, mgl32.QuatIdent())
	cps := c.GetPoints(end)

	require.Len(t, cps, DefaultSegments+1)
	for i, cp := range cps {
		assert.InDelta(t, 2, cp.Position.Sub(center).Len(), 1e-3, "point %d", i)
	}
	assert.True(t, cps[0].Position.ApproxEqualThreshold(end.Position, 1e-3))
	assert.True(t, cps[len(cps)-1].Position.ApproxEqualThreshold(end.Position, 1e-3))
	assertUnitRotations(t, cps)
	assertMonotonic(t, cps)
}

func TestCircle_GetPoints_TangentStable(t *testing.T) {
	clock := testutil.NewManualClock(0)
	c := NewCircle(geom.Identity(), clock)

	end := geom.TR(mgl32.Vec3{1, 0, 0}, mgl32.QuatIdent())
	first := c.GetPoints(end)
	second := c.GetPoints(end)
	for i := range first {
		assert.True(t, first[i].Position.ApproxEqualThreshold(second[i].Position, eps), "point %d", i)
	}
}

func TestSphere_GetPoints(t *testing.T) {
	clock := testutil.NewManualClock(0)
	center := mgl32.Vec3{1, 0, 0}
	s := NewSphere(geom.T(center), clock, 0.1, 1)

	cps := s.GetPoints(geom.TR(mgl32.Vec3{2, 0, 0}, mgl32.QuatIdent()))

	// loops = pi/0.3, total = int(loops*20) rounded up to even.
	assert.Len(t, cps, 210)
	assert.Zero(t, len(cps)%2)
	for i, cp := range cps {
		assert.InDelta(t, 1, cp.Position.Sub(center).Len(), 1e-3, "point %d", i)
	}
	assertUnitRotations(t, cps)
	assertMonotonic(t, cps)
}

func TestSphere_GetPoints_ZeroRadius(t *testing.T) {
	clock := testutil.NewManualClock(0)
	s := NewSphere(geom.Identity(), clock, 0.5, 1)

	cps := s.GetPoints(geom.Identity())
	require.Len(t, cps, 2)
	assertUnitRotations(t, cps)
}

func TestSphere_ProcessBrushSize(t *testing.T) {
	clock := testutil.NewManualClock(0)
	assert.Equal(t, DefaultMinSphereBrushSize, NewSphere(geom.Identity(), clock, 0.1, 2).ProcessBrushSize(0.1))
	assert.Equal(t, float32(0.5), NewSphere(geom.Identity(), clock, 0.5, 2).ProcessBrushSize(0.1))

	assert.Equal(t, float32(0.2), NewLine(geom.Identity(), clock, true).ProcessBrushSize(0.2))
}

func TestSphere_NonPositiveMinimumUsesDefault(t *testing.T) {
	clock := testutil.NewManualClock(0)
	s := NewSphereWithMin(geom.Identity(), clock, 0, 1, 0)
	assert.Equal(t, DefaultMinSphereBrushSize, s.ProcessBrushSize(0))

	cps := s.GetPoints(geom.T(mgl32.Vec3{1, 0, 0}))
	assert.Len(t, cps, 210)
}

func TestSphere_LoopCountBounded(t *testing.T) {
	clock := testutil.NewManualClock(0)
	s := NewSphereWithMin(geom.Identity(), clock, 0, 1, 1e-30)

	cps := s.GetPoints(geom.T(mgl32.Vec3{1, 0, 0}))
	assert.Len(t, cps, maxSphereLoops*20)
}

func TestNew_SelectsShape(t *testing.T) {
	clock := testutil.NewManualClock(0)
	assert.Equal(t, ShapeLine, New(ShapeLine, geom.Identity(), clock, 1, 1, 0.3).Shape())
	assert.Equal(t, ShapeCircle, New(ShapeCircle, geom.Identity(), clock, 1, 1, 0.3).Shape())
	assert.Equal(t, ShapeSphere, New(ShapeSphere, geom.Identity(), clock, 1, 1, 0.3).Shape())

	sphere := New(ShapeSphere, geom.Identity(), clock, 0.1, 1, 0.6)
	assert.Equal(t, float32(0.6), sphere.ProcessBrushSize(0.1))
}
