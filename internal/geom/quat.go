package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Negate returns -q, which represents the same rotation as q.
func Negate(q mgl32.Quat) mgl32.Quat {
	return mgl32.Quat{W: -q.W, V: q.V.Mul(-1)}
}

// SameRotation reports whether a and b describe the same rotation within eps,
// treating q and -q as equal.
func SameRotation(a, b mgl32.Quat, eps float32) bool {
	return a.ApproxEqualThreshold(b, eps) || a.ApproxEqualThreshold(Negate(b), eps)
}

// Slerp interpolates along the shortest arc between a and b.
func Slerp(a, b mgl32.Quat, t float32) mgl32.Quat {
	if a.Dot(b) < 0 {
		b = Negate(b)
	}
	switch t {
	case 0:
		return a.Normalize()
	case 1:
		return b.Normalize()
	}
	return mgl32.QuatSlerp(a, b, t)
}

// AngleAxis returns a rotation of deg degrees about axis.
func AngleAxis(deg float32, axis mgl32.Vec3) mgl32.Quat {
	return AngleAxisRad(mgl32.DegToRad(deg), axis)
}

// AngleAxisRad returns a rotation of rad radians about axis.
// A zero axis yields the identity.
func AngleAxisRad(rad float32, axis mgl32.Vec3) mgl32.Quat {
	n := NormalizeOrZero(axis)
	if n == (mgl32.Vec3{}) {
		return mgl32.QuatIdent()
	}
	return mgl32.QuatRotate(rad, n)
}

// FromTo returns the rotation taking direction from onto direction to.
// If either vector is shorter than Epsilon the identity is returned.
func FromTo(from, to mgl32.Vec3) mgl32.Quat {
	if from.Len() < Epsilon || to.Len() < Epsilon {
		return mgl32.QuatIdent()
	}
	return mgl32.QuatBetweenVectors(from, to)
}

// NormalizeOrZero returns v scaled to unit length, or the zero vector when v
// is shorter than Epsilon.
func NormalizeOrZero(v mgl32.Vec3) mgl32.Vec3 {
	l := v.Len()
	if l < Epsilon {
		return mgl32.Vec3{}
	}
	return v.Mul(1 / l)
}

// PerpendicularPart returns the component of v perpendicular to the unit vector n.
func PerpendicularPart(n, v mgl32.Vec3) mgl32.Vec3 {
	return v.Sub(n.Mul(n.Dot(v)))
}

// InDirectionOf returns v, flipped if needed so it points along desired.
// A zero desired vector leaves v unchanged.
func InDirectionOf(desired, v mgl32.Vec3) mgl32.Vec3 {
	if v.Dot(desired) >= 0 {
		return v
	}
	return v.Mul(-1)
}

// LerpVec interpolates linearly between a and b.
func LerpVec(a, b mgl32.Vec3, t float32) mgl32.Vec3 {
	return a.Mul(1 - t).Add(b.Mul(t))
}

// Lerp64 interpolates linearly in float64 and is exact at both endpoints.
func Lerp64(a, b, t float64) float64 {
	return a*(1-t) + b*t
}

// Clamp01 clamps f to [0, 1].
func Clamp01(f float32) float32 {
	return float32(math.Max(0, math.Min(1, float64(f))))
}
