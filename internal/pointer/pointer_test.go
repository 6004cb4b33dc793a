package pointer

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/strokecap/internal/creator"
	"github.com/roach88/strokecap/internal/geom"
	"github.com/roach88/strokecap/internal/stroke"
	"github.com/roach88/strokecap/internal/symmetry"
	"github.com/roach88/strokecap/internal/testutil"
)

func newTestPool(t *testing.T, capacity, user int) *Pool {
	t.Helper()
	p, err := NewPool(capacity, user)
	require.NoError(t, err)
	return p
}

func TestNewPool_Invalid(t *testing.T) {
	_, err := NewPool(2, 3)
	assert.True(t, IsConfigError(err))

	_, err = NewPool(4, 0)
	assert.True(t, IsConfigError(err))
}

func TestPool_Layout(t *testing.T) {
	p := newTestPool(t, 8, 4)

	assert.Equal(t, 8, p.Capacity())
	assert.Equal(t, 4, p.NumTransient())
	assert.Equal(t, 1, p.NumActive())
	assert.Len(t, p.UserSlots(), 4)
	assert.Equal(t, 4, cap(p.UserSlots()), "user view cannot grow into transient slots")

	tr, err := p.Transient(0)
	require.NoError(t, err)
	assert.Equal(t, 4, tr.Index())

	_, err = p.Transient(4)
	assert.True(t, IsConfigError(err))
}

func TestPool_SetSymmetryMode_CapacityRejected(t *testing.T) {
	p := newTestPool(t, 3, 3)
	require.NoError(t, p.SetSymmetryMode(symmetry.ModeSinglePlane))

	err := p.SetSymmetryMode(symmetry.ModeFourAroundY)
	require.Error(t, err)
	assert.True(t, IsCapacityError(err))
	assert.Equal(t, symmetry.ModeSinglePlane, p.SymmetryMode())
	assert.Equal(t, 2, p.NumActive())
}

func TestPool_SetSymmetryMode_RejectedWhileDrawing(t *testing.T) {
	p := newTestPool(t, 8, 4)
	require.NoError(t, p.SetSymmetryMode(symmetry.ModeFourAroundY))
	for _, s := range p.Active() {
		s.BeginLine(nil, nil, nil)
	}

	err := p.SetSymmetryMode(symmetry.ModeNone)
	assert.True(t, IsStrokeOpenError(err))
	assert.Equal(t, symmetry.ModeFourAroundY, p.SymmetryMode())
	assert.Equal(t, 4, p.NumActive())

	for _, s := range p.Active() {
		s.EndLine(true, stroke.FlagNone)
	}
	require.NoError(t, p.SetSymmetryMode(symmetry.ModeNone))
	assert.Equal(t, 1, p.NumActive())
}

func TestPool_SetSymmetryMode_IgnoresTransientLines(t *testing.T) {
	p := newTestPool(t, 8, 4)
	tr, _ := p.Transient(0)
	tr.BeginLine(nil, nil, nil)

	require.NoError(t, p.SetSymmetryMode(symmetry.ModeSinglePlane))
}

func TestPool_BroadcastSkipsTransientSlots(t *testing.T) {
	p := newTestPool(t, 8, 4)
	require.NoError(t, p.SetSymmetryMode(symmetry.ModeFourAroundY))
	p.SetBrush(stroke.NewBrush("Ink"))
	p.SetColor(stroke.Color{B: 1, A: 1})

	for i := 0; i < p.NumTransient(); i++ {
		tr, err := p.Transient(i)
		require.NoError(t, err)
		assert.Empty(t, tr.Brush().Name)
		assert.Equal(t, stroke.White, tr.Color())
	}
}

func TestPool_SetSymmetryMode_CopiesMainAttributes(t *testing.T) {
	p := newTestPool(t, 8, 4)
	brush := stroke.NewBrush("Ink")
	p.Main().SetBrush(brush)
	p.Main().SetSize(0.4)
	p.Main().SetColor(stroke.Color{R: 1, A: 1})
	p.Main().SetPressure(0.5)

	require.NoError(t, p.SetSymmetryMode(symmetry.ModeFourAroundY))
	for _, s := range p.Active()[1:] {
		assert.Equal(t, brush.ID, s.Brush().ID)
		assert.Equal(t, float32(0.4), s.Size())
		assert.Equal(t, stroke.Color{R: 1, A: 1}, s.Color())
		assert.Equal(t, float32(0.5), s.Pressure())
	}
}

func TestPool_SetMainPose_UpdatesReplicas(t *testing.T) {
	p := newTestPool(t, 8, 4)
	require.NoError(t, p.SetSymmetryMode(symmetry.ModeSinglePlane))

	p.SetMainPose(geom.T(mgl32.Vec3{1, 0, 0}))
	got := p.Active()[1].Pose().Position
	assert.True(t, got.ApproxEqualThreshold(mgl32.Vec3{-1, 0, 0}, 1e-5), "got %v", got)
}

func TestPool_FreeTransient(t *testing.T) {
	p := newTestPool(t, 6, 4)
	assert.Equal(t, 2, p.FreeTransient())

	tr, _ := p.Transient(1)
	tr.BeginLine(nil, nil, nil)
	assert.Equal(t, 1, p.FreeTransient())
}

func TestPool_StoreRestoreBrushInfo(t *testing.T) {
	p := newTestPool(t, 8, 4)
	assert.False(t, p.RestoreBrushInfo())

	p.Main().SetColor(stroke.Color{G: 1, A: 1})
	p.StoreBrushInfo()
	p.SetColor(stroke.White)

	assert.True(t, p.RestoreBrushInfo())
	assert.Equal(t, stroke.Color{G: 1, A: 1}, p.Main().Color())
}

func TestSlot_KeeperRule(t *testing.T) {
	s := newSlot(0)
	s.BeginLine(nil, nil, nil)

	s.SetControlPoint(geom.T(mgl32.Vec3{0, 0, 0}), false, 0)
	s.SetControlPoint(geom.T(mgl32.Vec3{1, 0, 0}), true, 0.25)
	s.SetControlPoint(geom.T(mgl32.Vec3{2, 0, 0}), false, 0.5)
	s.SetControlPoint(geom.T(mgl32.Vec3{3, 0, 0}), true, 0.75)

	cps := s.ControlPoints()
	require.Len(t, cps, 2)
	assert.Equal(t, mgl32.Vec3{1, 0, 0}, cps[0].Position, "first non-keeper overwritten")
	assert.Equal(t, mgl32.Vec3{3, 0, 0}, cps[1].Position, "non-keeper after keeper overwritten")
	assert.Equal(t, uint32(750), cps[1].TimestampMs)
}

func TestSlot_UpdateLine_Freehand(t *testing.T) {
	s := newSlot(0)
	s.BeginLine(nil, nil, nil)
	s.SetControlPoint(s.Pose(), true, 0)

	s.SetPose(geom.T(mgl32.Vec3{1, 0, 0}))
	s.UpdateLine(0.25, false)

	cps := s.ControlPoints()
	require.Len(t, cps, 2)
	assert.False(t, s.ShouldDiscard())
}

func TestSlot_UpdateLine_StationaryOverwrites(t *testing.T) {
	brush := stroke.Brush{SpawnDistance: 0.5}
	s := newSlot(0)
	s.SetBrush(brush)
	s.BeginLine(nil, nil, nil)
	s.SetControlPoint(s.Pose(), true, 0)

	for i := 0; i < 5; i++ {
		s.UpdateLine(float64(i), false)
	}
	assert.Len(t, s.ControlPoints(), 2)
}

func TestSlot_UpdateLine_BudgetExhausted(t *testing.T) {
	s := newSlot(0)
	s.SetBrush(stroke.Brush{MaxControlPoints: 3})
	s.BeginLine(nil, nil, nil)
	s.SetControlPoint(s.Pose(), true, 0)

	s.SetPose(geom.T(mgl32.Vec3{1, 0, 0}))
	s.UpdateLine(1, false)
	assert.False(t, s.ShouldLineEnd())

	s.SetPose(geom.T(mgl32.Vec3{2, 0, 0}))
	s.UpdateLine(2, false)
	assert.True(t, s.ShouldLineEnd())
	assert.Len(t, s.ControlPoints(), 3)
}

func TestSlot_UpdateLine_CreatorRegenerates(t *testing.T) {
	clock := testutil.NewManualClock(0)
	s := newSlot(0)
	s.SetBrush(stroke.Brush{MaxControlPoints: 10})
	c := creator.NewLine(s.Pose(), clock, true)
	s.BeginLine(c, nil, nil)

	s.SetPose(geom.T(mgl32.Vec3{0, 0, 1}))
	s.UpdateLine(0, false)
	assert.Len(t, s.ControlPoints(), 10, "truncated to budget")

	s.SetBrush(stroke.Brush{})
	s.UpdateLine(0, false)
	assert.Len(t, s.ControlPoints(), 10, "builder captured at BeginLine")
	assert.Same(t, c, s.Creator())
}

func TestSlot_UpdateLine_ReplayingIgnoresCreator(t *testing.T) {
	clock := testutil.NewManualClock(0)
	s := newSlot(0)
	s.BeginLine(creator.NewLine(s.Pose(), clock, true), nil, nil)
	s.SetControlPoint(s.Pose(), true, 0)

	s.SetPose(geom.T(mgl32.Vec3{0, 0, 1}))
	s.UpdateLine(0, true)
	assert.Len(t, s.ControlPoints(), 2)
}

func TestSlot_BeginEndLine_RestoresSize(t *testing.T) {
	clock := testutil.NewManualClock(0)
	s := newSlot(2)
	s.SetSize(0.1)
	s.BeginLine(creator.NewSphere(s.Pose(), clock, 0.1, 1), nil, nil)
	assert.Equal(t, creator.DefaultMinSphereBrushSize, s.Size())

	s.SetControlPoint(s.Pose(), true, 0)
	s.SetControlPoint(geom.T(mgl32.Vec3{1, 0, 0}), true, 0.5)
	st := s.EndLine(false, stroke.FlagIsGroupContinue)

	require.NotNil(t, st)
	assert.Equal(t, 2, st.Slot)
	assert.Equal(t, creator.DefaultMinSphereBrushSize, st.BrushSize)
	assert.Equal(t, stroke.FlagIsGroupContinue, st.Flags)
	assert.Len(t, st.ControlPoints, 2)
	assert.Equal(t, float32(0.1), s.Size())
	assert.False(t, s.IsCreatingStroke())
	assert.Nil(t, s.Creator())
}

func TestSlot_EndLine_Discard(t *testing.T) {
	s := newSlot(0)
	s.BeginLine(nil, nil, nil)
	s.SetControlPoint(s.Pose(), true, 0)
	assert.True(t, s.ShouldDiscard(), "single point")

	assert.Nil(t, s.EndLine(true, 0))
	assert.Nil(t, s.EndLine(false, 0), "no open line")
}

func TestSlot_BeginLine_Override(t *testing.T) {
	proxy := stroke.NewBrush("Proxy")
	s := newSlot(0)
	s.SetBrush(stroke.NewBrush("Smoke"))
	s.BeginLine(nil, &proxy, nil)
	s.SetControlPoint(s.Pose(), true, 0)
	s.SetControlPoint(geom.T(mgl32.Vec3{1, 0, 0}), true, 0)

	st := s.EndLine(false, 0)
	require.NotNil(t, st)
	assert.Equal(t, proxy.ID, st.BrushID)
	assert.Equal(t, "Smoke", s.Brush().Name)
}

func TestBudgetBuilder(t *testing.T) {
	b := NewBudgetBuilder(stroke.Brush{MaxControlPoints: 2, SpawnDistance: 1}, 0)
	b.Reset(geom.Identity())

	assert.True(t, b.Append(geom.Identity(), 1))
	assert.False(t, b.Append(geom.T(mgl32.Vec3{0.5, 0, 0}), 1))
	assert.True(t, b.Append(geom.T(mgl32.Vec3{1, 0, 0}), 1))
	assert.True(t, b.OutOfVerts())
	assert.False(t, b.Append(geom.T(mgl32.Vec3{5, 0, 0}), 1))
	assert.False(t, b.ShouldDiscard())
}
