package pointer

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/roach88/strokecap/internal/geom"
	"github.com/roach88/strokecap/internal/stroke"
)

// Builder is the geometry side of an open line. The pipeline only needs to
// know whether samples produced geometry and whether the budget is spent.
type Builder interface {
	// Reset discards all geometry and restarts at first.
	Reset(first geom.Pose)

	// Append extends the geometry and reports whether the sample was kept
	// as a new control point.
	Append(xf geom.Pose, pressure float32) bool

	// OutOfVerts reports whether the geometry budget is exhausted.
	OutOfVerts() bool

	// ShouldDiscard reports whether the finished geometry is worthless.
	ShouldDiscard() bool
}

// BuilderFactory creates the builder for a new line.
type BuilderFactory func(b stroke.Brush, size float32) Builder

// NewBudgetBuilder is the default BuilderFactory. It keeps a sample when
// it is at least the brush's spawn distance from the last kept sample and
// runs out after the brush's MaxControlPoints.
func NewBudgetBuilder(b stroke.Brush, _ float32) Builder {
	return &BudgetBuilder{max: b.MaxControlPoints, spawn: b.SpawnDistance}
}

// BudgetBuilder counts kept samples against a fixed budget.
type BudgetBuilder struct {
	max   int
	spawn float32
	count int
	last  mgl32.Vec3
}

func (b *BudgetBuilder) Reset(first geom.Pose) {
	b.count = 0
	b.last = first.Position
}

func (b *BudgetBuilder) Append(xf geom.Pose, _ float32) bool {
	if b.OutOfVerts() {
		return false
	}
	if b.count > 0 && xf.Position.Sub(b.last).Len() < b.spawn {
		return false
	}
	b.count++
	b.last = xf.Position
	return true
}

func (b *BudgetBuilder) OutOfVerts() bool {
	return b.max > 0 && b.count >= b.max
}

func (b *BudgetBuilder) ShouldDiscard() bool { return false }

// Count returns the number of kept samples.
func (b *BudgetBuilder) Count() int { return b.count }
