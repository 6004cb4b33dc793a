package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"

	"github.com/roach88/strokecap/internal/controlpoint"
	"github.com/roach88/strokecap/internal/geom"
	"github.com/roach88/strokecap/internal/stroke"
	"github.com/roach88/strokecap/internal/symmetry"
)

const strokeColumns = `id, group_id, slot, brush_id, brush_name, brush_size, brush_scale,
	color_r, color_g, color_b, color_a, flags, extension_mask, point_count, control_points`

// ReadStrokes returns every live stroke in finalization order.
//
// Returns an empty slice (not nil) if the store holds none.
func (s *Store) ReadStrokes(ctx context.Context) ([]stroke.Stroke, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+strokeColumns+`
		FROM strokes
		WHERE undone = 0
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query strokes: %w", err)
	}
	defer rows.Close()

	strokes := []stroke.Stroke{}
	for rows.Next() {
		st, err := scanStroke(rows)
		if err != nil {
			return nil, err
		}
		strokes = append(strokes, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate strokes: %w", err)
	}
	return strokes, nil
}

// ReadStroke returns one stroke by ID, including undone strokes.
// Returns sql.ErrNoRows wrapped if no stroke has that ID.
func (s *Store) ReadStroke(ctx context.Context, id string) (stroke.Stroke, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+strokeColumns+`
		FROM strokes
		WHERE id = ?
	`, id)
	st, err := scanStroke(row)
	if err != nil {
		return stroke.Stroke{}, fmt.Errorf("read stroke %s: %w", id, err)
	}
	return st, nil
}

// CountStrokes returns the number of live strokes.
func (s *Store) CountStrokes(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM strokes WHERE undone = 0`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count strokes: %w", err)
	}
	return n, nil
}

// ReadMirror returns the stored widget and mode. ok is false if none is stored.
func (s *Store) ReadMirror(ctx context.Context) (m symmetry.Mirror, mode symmetry.Mode, ok bool, err error) {
	var p mgl32.Vec3
	var r mgl32.Quat
	var modeName string
	err = s.db.QueryRowContext(ctx, `
		SELECT px, py, pz, rx, ry, rz, rw, mode FROM mirror WHERE id = 1
	`).Scan(&p[0], &p[1], &p[2], &r.V[0], &r.V[1], &r.V[2], &r.W, &modeName)
	if errors.Is(err, sql.ErrNoRows) {
		return symmetry.Mirror{}, symmetry.ModeNone, false, nil
	}
	if err != nil {
		return symmetry.Mirror{}, symmetry.ModeNone, false, fmt.Errorf("read mirror: %w", err)
	}
	mode, err = symmetry.ParseMode(modeName)
	if err != nil {
		return symmetry.Mirror{}, symmetry.ModeNone, false, fmt.Errorf("read mirror: %w", err)
	}
	return symmetry.Mirror{Transform: geom.TR(p, r)}, mode, true, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanStroke(row scanner) (stroke.Stroke, error) {
	var (
		st      stroke.Stroke
		brushID string
		flags   uint32
		mask    uint32
		count   int
		blob    []byte
	)
	err := row.Scan(
		&st.ID, &st.GroupID, &st.Slot, &brushID, &st.BrushName, &st.BrushSize, &st.BrushScale,
		&st.Color.R, &st.Color.G, &st.Color.B, &st.Color.A,
		&flags, &mask, &count, &blob,
	)
	if err != nil {
		return stroke.Stroke{}, fmt.Errorf("scan stroke: %w", err)
	}

	st.BrushID, err = uuid.Parse(brushID)
	if err != nil {
		return stroke.Stroke{}, fmt.Errorf("stroke %s: brush id: %w", st.ID, err)
	}
	st.Flags = stroke.Flags(flags)

	if controlpoint.Extension(mask) == controlpoint.ExtAll && len(blob) == count*controlpoint.RecordSize {
		st.ControlPoints, err = controlpoint.DecodeSlice(blob)
	} else {
		st.ControlPoints, err = controlpoint.DecodeWithMask(blob, count, controlpoint.Extension(mask))
	}
	if err != nil {
		return stroke.Stroke{}, fmt.Errorf("stroke %s: %w", st.ID, err)
	}
	return st, nil
}
