package pointer

import (
	"github.com/roach88/strokecap/internal/controlpoint"
	"github.com/roach88/strokecap/internal/creator"
	"github.com/roach88/strokecap/internal/geom"
	"github.com/roach88/strokecap/internal/stroke"
)

// Slot is a single drawing pointer.
type Slot struct {
	index int

	pose     geom.Pose
	brush    stroke.Brush
	size     float32
	color    stroke.Color
	pressure float32

	straightEdgeStart geom.Pose

	line *line
}

// line is the open stroke on a slot. It exists only between BeginLine and
// EndLine.
type line struct {
	creator    creator.Creator
	builder    Builder
	brush      stroke.Brush
	points     []controlpoint.ControlPoint
	lastKeeper bool
	backupSize float32
}

func newSlot(index int) *Slot {
	return &Slot{
		index:    index,
		pose:     geom.Identity(),
		color:    stroke.White,
		pressure: 1,
	}
}

// Index returns the slot's position in the pool.
func (s *Slot) Index() int { return s.index }

// Pose returns the slot's canvas-space pose.
func (s *Slot) Pose() geom.Pose { return s.pose }

// SetPose moves the slot.
func (s *Slot) SetPose(p geom.Pose) { s.pose = p }

// Brush returns the slot's brush.
func (s *Slot) Brush() stroke.Brush { return s.brush }

// SetBrush changes the brush and clamps the size into its range.
func (s *Slot) SetBrush(b stroke.Brush) {
	s.brush = b
	if b.SizeMax > b.SizeMin {
		s.size = min(max(s.size, b.SizeMin), b.SizeMax)
	}
}

// Size returns the absolute room-space brush size.
func (s *Slot) Size() float32 { return s.size }

// SetSize sets the absolute room-space brush size.
func (s *Slot) SetSize(size float32) { s.size = size }

// Size01 returns the size normalized to the brush's range.
func (s *Slot) Size01() float32 { return s.brush.Normalized(s.size) }

// SetSize01 sets the size from a value in [0,1].
func (s *Slot) SetSize01(f float32) { s.size = s.brush.SizeFromNormalized(geom.Clamp01(f)) }

// Color returns the slot's color.
func (s *Slot) Color() stroke.Color { return s.color }

// SetColor sets the slot's color.
func (s *Slot) SetColor(c stroke.Color) { s.color = c }

// Pressure returns the current pressure.
func (s *Slot) Pressure() float32 { return s.pressure }

// SetPressure sets pressure, clamped to [0,1].
func (s *Slot) SetPressure(p float32) { s.pressure = geom.Clamp01(p) }

// StraightEdgeStart returns the pose captured when the current
// straight-edge stroke began.
func (s *Slot) StraightEdgeStart() geom.Pose { return s.straightEdgeStart }

// MarkStraightEdgeStart records the current pose as the straight-edge start.
func (s *Slot) MarkStraightEdgeStart() { s.straightEdgeStart = s.pose }

// IsCreatingStroke reports whether a line is open.
func (s *Slot) IsCreatingStroke() bool { return s.line != nil }

// Creator returns the open line's creator, or nil for freehand or idle.
func (s *Slot) Creator() creator.Creator {
	if s.line == nil {
		return nil
	}
	return s.line.creator
}

// BeginLine opens a line at the slot's pose. c may be nil for freehand.
// When override is non-nil that brush draws the line instead of the slot's
// own, e.g. a straight-edge proxy.
func (s *Slot) BeginLine(c creator.Creator, override *stroke.Brush, factory BuilderFactory) {
	if factory == nil {
		factory = NewBudgetBuilder
	}
	b := s.brush
	if override != nil {
		b = *override
	}
	ln := &line{creator: c, brush: b, backupSize: s.size}
	if c != nil {
		s.size = c.ProcessBrushSize(s.size)
	}
	ln.builder = factory(b, s.size)
	ln.builder.Reset(s.pose)
	ln.builder.Append(s.pose, s.pressure)
	s.line = ln
}

// SetControlPoint records xf as the newest control point at sketch time now.
// If the previous point was not a keeper it is overwritten.
func (s *Slot) SetControlPoint(xf geom.Pose, keeper bool, now float64) {
	if s.line == nil {
		return
	}
	cp := controlpoint.New(xf, s.pressure, controlpoint.TimestampFromSeconds(now))
	ln := s.line
	if len(ln.points) == 0 || ln.lastKeeper {
		ln.points = append(ln.points, cp)
	} else {
		ln.points[len(ln.points)-1] = cp
	}
	ln.lastKeeper = keeper
}

// UpdateLine feeds the slot's current pose into the open line.
//
// With a creator, and outside straight-edge replay, the whole point list is
// regenerated and truncated to the builder's budget. Otherwise the pose is
// appended under the keeper rule.
func (s *Slot) UpdateLine(now float64, replaying bool) {
	ln := s.line
	if ln == nil {
		return
	}
	if ln.creator != nil && !replaying {
		points := ln.creator.GetPoints(s.pose)
		if len(points) == 0 {
			return
		}
		ln.builder.Reset(points[0].Pose())
		kept := 0
		for _, cp := range points {
			if ln.builder.OutOfVerts() {
				break
			}
			ln.builder.Append(cp.Pose(), cp.Pressure)
			kept++
		}
		ln.points = append(ln.points[:0], points[:kept]...)
		ln.lastKeeper = true
		return
	}
	keeper := ln.builder.Append(s.pose, s.pressure)
	s.SetControlPoint(s.pose, keeper, now)
}

// ControlPoints returns a copy of the open line's points.
func (s *Slot) ControlPoints() []controlpoint.ControlPoint {
	if s.line == nil {
		return nil
	}
	return append([]controlpoint.ControlPoint(nil), s.line.points...)
}

// ShouldLineEnd reports whether the open line has spent its budget.
func (s *Slot) ShouldLineEnd() bool {
	return s.line != nil && s.line.builder.OutOfVerts()
}

// ShouldDiscard reports whether the open line is too small to keep.
func (s *Slot) ShouldDiscard() bool {
	if s.line == nil {
		return true
	}
	return len(s.line.points) <= 1 || s.line.builder.ShouldDiscard()
}

// EndLine closes the open line. Unless discard is set it returns the
// finished stroke; its ID and GroupID are left for the caller.
// The brush size is restored to its value before BeginLine.
func (s *Slot) EndLine(discard bool, flags stroke.Flags) *stroke.Stroke {
	ln := s.line
	if ln == nil {
		return nil
	}
	size := s.size
	s.size = ln.backupSize
	s.line = nil
	if discard {
		return nil
	}
	return &stroke.Stroke{
		Slot:          s.index,
		BrushID:       ln.brush.ID,
		BrushName:     ln.brush.Name,
		BrushSize:     size,
		BrushScale:    1,
		Color:         s.color,
		Flags:         flags,
		ControlPoints: ln.points,
	}
}

// copyInternals copies drawing attributes from src.
func (s *Slot) copyInternals(src *Slot) {
	s.brush = src.brush
	s.size = src.size
	s.color = src.color
	s.pressure = src.pressure
}
