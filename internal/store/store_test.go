package store

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/strokecap/internal/controlpoint"
	"github.com/roach88/strokecap/internal/geom"
	"github.com/roach88/strokecap/internal/stroke"
	"github.com/roach88/strokecap/internal/symmetry"
)

func TestOpen_CreatesNewDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	_, err = os.Stat(path)
	assert.NoError(t, err, "database file was not created")
}

func TestOpen_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	for i := 0; i < 3; i++ {
		s, err := Open(path)
		require.NoError(t, err, "Open() iteration %d", i)
		v, err := s.schemaVersion()
		require.NoError(t, err)
		assert.Equal(t, migrations[len(migrations)-1].version, v)
		s.Close()
	}
}

func TestStore_WriteReadStroke(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	want := createTestStroke("s-1", "g-1", 0, stroke.FlagNone)

	require.NoError(t, s.WriteStroke(ctx, want))

	got, err := s.ReadStroke(ctx, "s-1")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestStore_WriteStroke_Idempotent(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	st := createTestStroke("s-1", "g-1", 0, stroke.FlagNone)

	require.NoError(t, s.WriteStroke(ctx, st))
	require.NoError(t, s.WriteStroke(ctx, st))

	n, err := s.CountStrokes(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestStore_ReadStroke_Missing(t *testing.T) {
	s := createTestStore(t)

	_, err := s.ReadStroke(context.Background(), "nope")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestStore_ReadStrokes_Ordered(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	empty, err := s.ReadStrokes(ctx)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	for _, id := range []string{"c", "a", "b"} {
		require.NoError(t, s.WriteStroke(ctx, createTestStroke(id, "g", 0, 0)))
	}
	got, err := s.ReadStrokes(ctx)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "c", got[0].ID, "insertion order, not ID order")
	assert.Equal(t, "a", got[1].ID)
	assert.Equal(t, "b", got[2].ID)
}

func TestStore_UndoLastGroup(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.WriteStroke(ctx, createTestStroke("s-1", "g-1", 0, 0)))
	require.NoError(t, s.WriteStroke(ctx, createTestStroke("s-2", "g-2", 0, 0)))
	require.NoError(t, s.WriteStroke(ctx, createTestStroke("s-3", "g-2", 1, stroke.FlagIsGroupContinue)))

	group, n, err := s.UndoLastGroup(ctx)
	require.NoError(t, err)
	assert.Equal(t, "g-2", group)
	assert.Equal(t, 2, n)

	live, err := s.ReadStrokes(ctx)
	require.NoError(t, err)
	require.Len(t, live, 1)
	assert.Equal(t, "s-1", live[0].ID)

	// Undone strokes stay readable by ID.
	_, err = s.ReadStroke(ctx, "s-3")
	assert.NoError(t, err)

	group, n, err = s.UndoLastGroup(ctx)
	require.NoError(t, err)
	assert.Equal(t, "g-1", group)
	assert.Equal(t, 1, n)

	group, n, err = s.UndoLastGroup(ctx)
	require.NoError(t, err)
	assert.Empty(t, group)
	assert.Zero(t, n)
}

func TestStore_CorruptBlob(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.WriteStroke(ctx, createTestStroke("s-1", "g-1", 0, 0)))

	_, err := s.db.ExecContext(ctx, `UPDATE strokes SET control_points = substr(control_points, 1, 40)`)
	require.NoError(t, err)

	_, err = s.ReadStrokes(ctx)
	require.Error(t, err)
	assert.True(t, controlpoint.IsDataError(err))
}

func TestStore_LegacyExtensionMask(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	// A record without pressure or timestamp fields.
	rec, _ := controlpoint.ControlPoint{Position: mgl32.Vec3{1, 2, 3}, Orientation: mgl32.QuatIdent()}.MarshalBinary()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO strokes
		(id, group_id, slot, brush_id, brush_name, brush_size, brush_scale,
		 color_r, color_g, color_b, color_a, flags, head_timestamp,
		 extension_mask, point_count, control_points)
		VALUES ('old', 'g', 0, ?, 'Ink', 0.1, 1, 1, 1, 1, 1, 0, 0, 0, 1, ?)
	`, stroke.NewBrush("Ink").ID.String(), rec[:controlpoint.BaseSize])
	require.NoError(t, err)

	got, err := s.ReadStroke(ctx, "old")
	require.NoError(t, err)
	require.Len(t, got.ControlPoints, 1)
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, got.ControlPoints[0].Position)
	assert.Equal(t, controlpoint.DefaultPressure, got.ControlPoints[0].Pressure)
}

func TestStore_Mirror(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	_, _, ok, err := s.ReadMirror(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	m := symmetry.Mirror{Transform: geom.TR(mgl32.Vec3{1, 2, 3}, geom.AngleAxis(90, geom.Up))}
	require.NoError(t, s.WriteMirror(ctx, m, symmetry.ModeSinglePlane))
	require.NoError(t, s.WriteMirror(ctx, m, symmetry.ModeFourAroundY))

	got, mode, ok, err := s.ReadMirror(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, symmetry.ModeFourAroundY, mode)
	assert.True(t, got.Transform.ApproxEqual(m.Transform, 1e-6))
}
