package geom

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

const eps = 1e-4

func TestPose_MulInverse(t *testing.T) {
	a := TR(mgl32.Vec3{1, 2, 3}, AngleAxis(37, mgl32.Vec3{0.2, 1, 0.4}))
	got := a.Mul(a.Inverse())
	assert.True(t, got.ApproxEqual(Identity(), eps), "got %v", got)
}

func TestPose_MulOrder(t *testing.T) {
	a := T(mgl32.Vec3{1, 0, 0})
	b := R(AngleAxis(90, Up))
	p := mgl32.Vec3{0, 0, 1}

	assert.True(t, a.Mul(b).Apply(p).ApproxEqualThreshold(a.Apply(b.Apply(p)), eps))
}

func TestPose_TransformBy_RotationAboutCenter(t *testing.T) {
	center := mgl32.Vec3{2, 0, 0}
	spin := R(AngleAxis(180, Up)).TransformBy(T(center))

	got := spin.Apply(mgl32.Vec3{3, 0, 0})
	assert.True(t, got.ApproxEqualThreshold(mgl32.Vec3{1, 0, 0}, eps), "got %v", got)
	assert.True(t, spin.Apply(center).ApproxEqualThreshold(center, eps))
}

func TestFromTo_Degenerate(t *testing.T) {
	assert.Equal(t, mgl32.QuatIdent(), FromTo(Forward, mgl32.Vec3{}))
	assert.Equal(t, mgl32.QuatIdent(), FromTo(mgl32.Vec3{}, Up))

	q := FromTo(Forward, Up)
	assert.True(t, q.Rotate(Forward).ApproxEqualThreshold(Up, eps))
}

func TestNormalizeOrZero(t *testing.T) {
	assert.Equal(t, mgl32.Vec3{}, NormalizeOrZero(mgl32.Vec3{1e-7, 0, 0}))
	assert.InDelta(t, 1, NormalizeOrZero(mgl32.Vec3{3, 4, 0}).Len(), eps)
}

func TestSlerp_ShortestPath(t *testing.T) {
	a := AngleAxis(10, Up)
	b := Negate(AngleAxis(20, Up))

	mid := Slerp(a, b, 0.5)
	assert.True(t, SameRotation(mid, AngleAxis(15, Up), eps), "got %v", mid)
}

func TestLerp64_Endpoints(t *testing.T) {
	assert.Equal(t, 0.1, Lerp64(0.1, 0.7, 0))
	assert.Equal(t, 0.7, Lerp64(0.1, 0.7, 1))
}

func TestPlane_ReflectPoint(t *testing.T) {
	pl := NewPlane(Right, mgl32.Vec3{})
	assert.True(t, pl.ReflectPoint(mgl32.Vec3{1, 2, 3}).ApproxEqualThreshold(mgl32.Vec3{-1, 2, 3}, eps))

	offset := NewPlane(Right, mgl32.Vec3{1, 0, 0})
	assert.True(t, offset.ReflectPoint(mgl32.Vec3{3, 0, 0}).ApproxEqualThreshold(mgl32.Vec3{-1, 0, 0}, eps))
}

func TestPlane_ReflectPoseKeepHandedness_Involution(t *testing.T) {
	pl := NewPlane(mgl32.Vec3{1, 0.3, 0}, mgl32.Vec3{0.5, 0, 0})
	xf := TR(mgl32.Vec3{1, 2, 3}, AngleAxis(63, mgl32.Vec3{0.3, 0.7, 0.1}))

	once := pl.ReflectPoseKeepHandedness(xf)
	twice := pl.ReflectPoseKeepHandedness(once)
	assert.True(t, twice.ApproxEqual(xf, eps), "got %v want %v", twice, xf)
}

func TestPlane_ReflectPoseKeepHandedness_MirrorsForward(t *testing.T) {
	pl := NewPlane(Right, mgl32.Vec3{})
	xf := R(FromTo(Forward, mgl32.Vec3{1, 0, 1}))

	got := pl.ReflectPoseKeepHandedness(xf).Forward()
	want := NormalizeOrZero(mgl32.Vec3{-1, 0, 1})
	assert.True(t, got.ApproxEqualThreshold(want, eps), "got %v want %v", got, want)
}

func TestInDirectionOf(t *testing.T) {
	assert.Equal(t, Up, InDirectionOf(Up, Up))
	assert.Equal(t, Up.Mul(-1), InDirectionOf(Up.Mul(-1), Up))
	assert.Equal(t, Up, InDirectionOf(mgl32.Vec3{}, Up))
}
