package pointer

import (
	"github.com/roach88/strokecap/internal/geom"
	"github.com/roach88/strokecap/internal/stroke"
	"github.com/roach88/strokecap/internal/symmetry"
)

// Default pool dimensions.
const (
	DefaultCapacity     = 8
	DefaultUserPointers = 4
)

// Pool is the fixed set of pointer slots.
type Pool struct {
	user      []*Slot
	transient []*Slot

	sym     *symmetry.Engine
	active  int
	factory BuilderFactory

	stored *brushInfo
	poses  []geom.Pose
}

type brushInfo struct {
	brush    stroke.Brush
	size     float32
	color    stroke.Color
	pressure float32
}

// PoolOption configures a Pool.
type PoolOption func(*Pool)

// WithBuilderFactory sets the factory used for every new line.
func WithBuilderFactory(f BuilderFactory) PoolOption {
	return func(p *Pool) {
		if f != nil {
			p.factory = f
		}
	}
}

// WithSymmetry sets the symmetry engine. A default engine is used otherwise.
func WithSymmetry(e *symmetry.Engine) PoolOption {
	return func(p *Pool) {
		if e != nil {
			p.sym = e
		}
	}
}

// NewPool allocates capacity slots, the first userPointers of which are
// reserved for the main pointer and its replicas.
func NewPool(capacity, userPointers int, opts ...PoolOption) (*Pool, error) {
	if userPointers < 1 || capacity < userPointers {
		return nil, NewInvalidPoolError(capacity, userPointers)
	}
	slots := make([]*Slot, capacity)
	for i := range slots {
		slots[i] = newSlot(i)
	}
	p := &Pool{
		user:      slots[:userPointers:userPointers],
		transient: slots[userPointers:capacity:capacity],
		sym:       symmetry.New(),
		active:    1,
		factory:   NewBudgetBuilder,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.sym.SetMode(symmetry.ModeNone)
	return p, nil
}

// Capacity returns the total slot count.
func (p *Pool) Capacity() int { return len(p.user) + len(p.transient) }

// Main returns slot 0.
func (p *Pool) Main() *Slot { return p.user[0] }

// Active returns the main slot followed by the enabled replicas.
func (p *Pool) Active() []*Slot { return p.user[:p.active:p.active] }

// NumActive returns len(Active()).
func (p *Pool) NumActive() int { return p.active }

// UserSlots returns all user slots, active or not.
func (p *Pool) UserSlots() []*Slot { return p.user }

// Transient returns transient slot i. Transient slots belong to playback
// and redo consumers; the line-creation state machine only counts the free
// ones and never draws on them.
func (p *Pool) Transient(i int) (*Slot, error) {
	if i < 0 || i >= len(p.transient) {
		return nil, NewSlotRangeError("transient", i, len(p.transient))
	}
	return p.transient[i], nil
}

// NumTransient returns the number of transient slots.
func (p *Pool) NumTransient() int { return len(p.transient) }

// FreeTransient returns the number of transient slots not drawing.
func (p *Pool) FreeTransient() int {
	n := 0
	for _, s := range p.transient {
		if !s.IsCreatingStroke() {
			n++
		}
	}
	return n
}

// Factory returns the builder factory lines should use.
func (p *Pool) Factory() BuilderFactory { return p.factory }

// Symmetry returns the symmetry engine.
func (p *Pool) Symmetry() *symmetry.Engine { return p.sym }

// SymmetryMode returns the current mode.
func (p *Pool) SymmetryMode() symmetry.Mode { return p.sym.Mode() }

// SetSymmetryMode switches mode and enables the replicas it needs. Newly
// enabled replicas copy the main slot's brush, size, color and pressure.
// If the pool is too small, or a user slot has a line open, the mode is
// left unchanged.
func (p *Pool) SetSymmetryMode(m symmetry.Mode) error {
	need := p.sym.PointerCount(m)
	if need > len(p.user) {
		return NewCapacityError(m.String(), need, len(p.user))
	}
	for _, s := range p.user {
		if s.IsCreatingStroke() {
			return NewStrokeOpenError(m.String(), s.Index())
		}
	}
	p.sym.SetMode(m)
	prev := p.active
	p.active = need
	for i := prev; i < need; i++ {
		p.user[i].copyInternals(p.user[0])
	}
	p.UpdateReplicas()
	return nil
}

// SetWidget moves the symmetry widget and repositions the replicas.
func (p *Pool) SetWidget(w symmetry.Widget) {
	p.sym.SetWidget(w)
	p.UpdateReplicas()
}

// SetMainPose moves the main slot and repositions the replicas.
func (p *Pool) SetMainPose(pose geom.Pose) {
	p.user[0].SetPose(pose)
	p.UpdateReplicas()
}

// UpdateReplicas recomputes every active replica pose from the main pose.
func (p *Pool) UpdateReplicas() {
	p.poses = p.sym.Replicas(p.user[0].Pose(), p.poses)
	for i := 1; i < p.active && i < len(p.poses); i++ {
		p.user[i].SetPose(p.poses[i])
	}
}

// SetBrush sets the brush on every active slot.
func (p *Pool) SetBrush(b stroke.Brush) {
	for _, s := range p.Active() {
		s.SetBrush(b)
	}
}

// SetColor sets the color on every active slot.
func (p *Pool) SetColor(c stroke.Color) {
	for _, s := range p.Active() {
		s.SetColor(c)
	}
}

// SetSize01 sets the normalized brush size on every active slot.
func (p *Pool) SetSize01(f float32) {
	for _, s := range p.Active() {
		s.SetSize01(f)
	}
}

// SetSize sets the absolute brush size on every active slot.
func (p *Pool) SetSize(size float32) {
	for _, s := range p.Active() {
		s.SetSize(size)
	}
}

// SetPressure sets pressure on every active slot.
func (p *Pool) SetPressure(f float32) {
	for _, s := range p.Active() {
		s.SetPressure(f)
	}
}

// StoreBrushInfo remembers the main slot's drawing attributes.
func (p *Pool) StoreBrushInfo() {
	m := p.Main()
	p.stored = &brushInfo{brush: m.brush, size: m.size, color: m.color, pressure: m.pressure}
}

// RestoreBrushInfo reapplies stored attributes to every active slot.
// It reports false if nothing was stored.
func (p *Pool) RestoreBrushInfo() bool {
	if p.stored == nil {
		return false
	}
	for _, s := range p.Active() {
		s.brush = p.stored.brush
		s.size = p.stored.size
		s.color = p.stored.color
		s.pressure = p.stored.pressure
	}
	p.stored = nil
	return true
}
