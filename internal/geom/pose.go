package geom

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Epsilon is the length below which a vector is treated as zero.
const Epsilon = 1e-5

// Axis unit vectors.
var (
	Right   = mgl32.Vec3{1, 0, 0}
	Up      = mgl32.Vec3{0, 1, 0}
	Forward = mgl32.Vec3{0, 0, 1}
)

// Pose is a rigid transform: rotation followed by translation.
// Poses handed to creators are always in canvas space.
type Pose struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
}

// Identity returns the identity pose.
func Identity() Pose {
	return Pose{Rotation: mgl32.QuatIdent()}
}

// T returns a pure translation.
func T(v mgl32.Vec3) Pose {
	return Pose{Position: v, Rotation: mgl32.QuatIdent()}
}

// R returns a pure rotation.
func R(q mgl32.Quat) Pose {
	return Pose{Rotation: q}
}

// TR returns a pose with the given translation and rotation.
func TR(v mgl32.Vec3, q mgl32.Quat) Pose {
	return Pose{Position: v, Rotation: q}
}

// Mul composes a and b so that (a.Mul(b)).Apply(p) == a.Apply(b.Apply(p)).
func (a Pose) Mul(b Pose) Pose {
	return Pose{
		Position: a.Rotation.Rotate(b.Position).Add(a.Position),
		Rotation: a.Rotation.Mul(b.Rotation),
	}
}

// Apply transforms a point.
func (a Pose) Apply(p mgl32.Vec3) mgl32.Vec3 {
	return a.Rotation.Rotate(p).Add(a.Position)
}

// Inverse returns the pose that undoes a.
func (a Pose) Inverse() Pose {
	inv := a.Rotation.Inverse()
	return Pose{
		Position: inv.Rotate(a.Position).Mul(-1),
		Rotation: inv,
	}
}

// TransformBy changes the coordinate system of an active transformation.
//
// a is an action such as "rotate 90 degrees about up"; rhs is a pose whose
// input frame is the frame a operates in. The result performs the same
// action expressed in rhs's output frame, i.e. rhs * a * inverse(rhs).
func (a Pose) TransformBy(rhs Pose) Pose {
	similar := rhs.Rotation.Mul(a.Rotation).Mul(rhs.Rotation.Inverse())
	pos := similar.Rotate(rhs.Position.Mul(-1)).
		Add(rhs.Rotation.Rotate(a.Position)).
		Add(rhs.Position)
	return Pose{Position: pos, Rotation: similar}
}

// Forward returns the pose's rotated +Z axis.
func (a Pose) Forward() mgl32.Vec3 { return a.Rotation.Rotate(Forward) }

// Up returns the pose's rotated +Y axis.
func (a Pose) Up() mgl32.Vec3 { return a.Rotation.Rotate(Up) }

// Right returns the pose's rotated +X axis.
func (a Pose) Right() mgl32.Vec3 { return a.Rotation.Rotate(Right) }

// IsFinite reports whether every component is a finite number.
func (a Pose) IsFinite() bool {
	vals := [7]float32{
		a.Position[0], a.Position[1], a.Position[2],
		a.Rotation.W, a.Rotation.V[0], a.Rotation.V[1], a.Rotation.V[2],
	}
	for _, f := range vals {
		if math.IsNaN(float64(f)) || math.IsInf(float64(f), 0) {
			return false
		}
	}
	return true
}

// ApproxEqual compares positions within eps and rotations up to sign.
func (a Pose) ApproxEqual(b Pose, eps float32) bool {
	return a.Position.ApproxEqualThreshold(b.Position, eps) && SameRotation(a.Rotation, b.Rotation, eps)
}

func (a Pose) String() string {
	return fmt.Sprintf("T(%.4f %.4f %.4f) R(%.4f %.4f %.4f %.4f)",
		a.Position[0], a.Position[1], a.Position[2],
		a.Rotation.V[0], a.Rotation.V[1], a.Rotation.V[2], a.Rotation.W)
}

// Lerp interpolates position linearly and rotation along the shortest arc.
func Lerp(a, b Pose, t float32) Pose {
	return Pose{
		Position: LerpVec(a.Position, b.Position, t),
		Rotation: Slerp(a.Rotation, b.Rotation, t),
	}
}
