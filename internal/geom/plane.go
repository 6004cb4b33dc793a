package geom

import "github.com/go-gl/mathgl/mgl32"

// Plane is the set of points p with Normal·p + Distance == 0.
// Normal is unit length.
type Plane struct {
	Normal   mgl32.Vec3
	Distance float32
}

// NewPlane returns the plane through point with the given normal.
func NewPlane(normal, point mgl32.Vec3) Plane {
	n := NormalizeOrZero(normal)
	return Plane{Normal: n, Distance: -n.Dot(point)}
}

// SignedDistance returns the signed distance from p to the plane.
func (pl Plane) SignedDistance(p mgl32.Vec3) float32 {
	return pl.Normal.Dot(p) + pl.Distance
}

// ReflectPoint mirrors p across the plane.
func (pl Plane) ReflectPoint(p mgl32.Vec3) mgl32.Vec3 {
	return p.Sub(pl.Normal.Mul(2 * pl.SignedDistance(p)))
}

// ReflectPoseKeepHandedness mirrors a pose across the plane while keeping it
// a proper rotation.
//
// A naive mirror flips the frame's chirality. Here the rotation is conjugated
// by the reflection (M R M), which is equivalent to mirroring the frame and
// then negating its axis along the plane normal. Applying it twice returns
// the original pose exactly, up to quaternion sign.
func (pl Plane) ReflectPoseKeepHandedness(xf Pose) Pose {
	n := mgl32.Quat{W: 0, V: pl.Normal}
	return Pose{
		Position: pl.ReflectPoint(xf.Position),
		Rotation: n.Mul(xf.Rotation).Mul(n).Normalize(),
	}
}
