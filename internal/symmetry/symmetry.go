package symmetry

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/roach88/strokecap/internal/geom"
)

// Mode selects how replica poses are derived.
type Mode int

const (
	ModeNone Mode = iota
	ModeSinglePlane
	ModeFourAroundY
	ModeDebugMultiple
)

// Default debug layout.
const DefaultDebugCount = 3

var DefaultDebugOffset = mgl32.Vec3{2, 0, 2}

func (m Mode) String() string {
	switch m {
	case ModeNone:
		return "none"
	case ModeSinglePlane:
		return "single_plane"
	case ModeFourAroundY:
		return "four_around_y"
	case ModeDebugMultiple:
		return "debug_multiple"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode parses the names produced by String.
func ParseMode(s string) (Mode, error) {
	for _, m := range []Mode{ModeNone, ModeSinglePlane, ModeFourAroundY, ModeDebugMultiple} {
		if m.String() == s {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown symmetry mode %q", s)
}

// Widget is the user-placed symmetry gizmo.
type Widget struct {
	Pose geom.Pose
}

// ReflectionPlane is the plane through the widget facing its right axis.
func (w Widget) ReflectionPlane() geom.Plane {
	return geom.NewPlane(w.Pose.Right(), w.Pose.Position)
}

// Engine derives replica poses from the main pose.
type Engine struct {
	mode        Mode
	widget      Widget
	debugCount  int
	debugOffset mgl32.Vec3
}

// Option configures an Engine.
type Option func(*Engine)

// WithDebugLayout sets the pointer count and per-copy offset for
// ModeDebugMultiple.
func WithDebugLayout(count int, offset mgl32.Vec3) Option {
	return func(e *Engine) {
		if count >= 1 {
			e.debugCount = count
		}
		e.debugOffset = offset
	}
}

// WithWidget sets the initial widget pose.
func WithWidget(w Widget) Option {
	return func(e *Engine) {
		e.widget = w
	}
}

// New returns an engine in ModeNone with the widget at the origin.
func New(opts ...Option) *Engine {
	e := &Engine{
		widget:      Widget{Pose: geom.Identity()},
		debugCount:  DefaultDebugCount,
		debugOffset: DefaultDebugOffset,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Mode returns the current mode.
func (e *Engine) Mode() Mode { return e.mode }

// SetMode changes the mode. Capacity checks belong to the caller.
func (e *Engine) SetMode(m Mode) { e.mode = m }

// Widget returns the current widget.
func (e *Engine) Widget() Widget { return e.widget }

// SetWidget moves the widget.
func (e *Engine) SetWidget(w Widget) { e.widget = w }

// PointerCount returns how many pointers mode m keeps active.
func (e *Engine) PointerCount(m Mode) int {
	switch m {
	case ModeSinglePlane:
		return 2
	case ModeFourAroundY:
		return 4
	case ModeDebugMultiple:
		return e.debugCount
	default:
		return 1
	}
}

// Transform returns the transform that maps the main pose onto replica k
// in the current mode. k == 0 and out-of-range k yield the identity.
// For ModeSinglePlane the mapping is a reflection; use Replica for that mode.
func (e *Engine) Transform(k int) geom.Pose {
	n := e.PointerCount(e.mode)
	if k <= 0 || k >= n {
		return geom.Identity()
	}
	switch e.mode {
	case ModeFourAroundY:
		angle := 360 * float32(k) / float32(n)
		return geom.R(geom.AngleAxis(angle, geom.Up)).TransformBy(e.widget.Pose)
	case ModeDebugMultiple:
		return geom.T(e.debugOffset.Mul(float32(k)))
	}
	return geom.Identity()
}

// Replica returns the pose of replica k given the main pose.
func (e *Engine) Replica(k int, main geom.Pose) geom.Pose {
	if k <= 0 || k >= e.PointerCount(e.mode) {
		return main
	}
	if e.mode == ModeSinglePlane {
		return e.widget.ReflectionPlane().ReflectPoseKeepHandedness(main)
	}
	return e.Transform(k).Mul(main)
}

// Replicas fills out[k] for every active pointer, out[0] being main.
// It returns the filled prefix of out.
func (e *Engine) Replicas(main geom.Pose, out []geom.Pose) []geom.Pose {
	n := e.PointerCount(e.mode)
	out = out[:0]
	for k := 0; k < n; k++ {
		out = append(out, e.Replica(k, main))
	}
	return out
}
