package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/strokecap/internal/controlpoint"
	"github.com/roach88/strokecap/internal/stroke"
	"github.com/roach88/strokecap/internal/symmetry"
)

// WriteStroke inserts a finalized stroke.
// Uses ON CONFLICT(id) DO NOTHING for idempotency - rewriting a stroke ID
// is silently ignored.
func (s *Store) WriteStroke(ctx context.Context, st stroke.Stroke) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO strokes
		(id, group_id, slot, brush_id, brush_name, brush_size, brush_scale,
		 color_r, color_g, color_b, color_a, flags, head_timestamp,
		 extension_mask, point_count, control_points)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		st.ID,
		st.GroupID,
		st.Slot,
		st.BrushID.String(),
		st.BrushName,
		st.BrushSize,
		st.BrushScale,
		st.Color.R, st.Color.G, st.Color.B, st.Color.A,
		uint32(st.Flags),
		st.HeadTimestampMs(),
		uint32(controlpoint.ExtAll),
		len(st.ControlPoints),
		controlpoint.EncodeSlice(st.ControlPoints),
	)
	if err != nil {
		return fmt.Errorf("write stroke: %w", err)
	}
	return nil
}

// UndoLastGroup marks every stroke in the most recent live group as undone
// and returns the group ID and how many strokes it held. An empty store
// returns "", 0, nil.
func (s *Store) UndoLastGroup(ctx context.Context) (string, int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", 0, fmt.Errorf("undo: %w", err)
	}
	defer tx.Rollback()

	var groupID string
	err = tx.QueryRowContext(ctx, `
		SELECT group_id FROM strokes
		WHERE undone = 0
		ORDER BY seq DESC
		LIMIT 1
	`).Scan(&groupID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", 0, nil
	}
	if err != nil {
		return "", 0, fmt.Errorf("undo: find group: %w", err)
	}

	res, err := tx.ExecContext(ctx, `
		UPDATE strokes SET undone = 1
		WHERE group_id = ? AND undone = 0
	`, groupID)
	if err != nil {
		return "", 0, fmt.Errorf("undo: mark group: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return "", 0, fmt.Errorf("undo: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return "", 0, fmt.Errorf("undo: commit: %w", err)
	}
	return groupID, int(n), nil
}

// WriteMirror stores the symmetry widget and mode, replacing any previous one.
func (s *Store) WriteMirror(ctx context.Context, m symmetry.Mirror, mode symmetry.Mode) error {
	p, r := m.Transform.Position, m.Transform.Rotation
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO mirror (id, px, py, pz, rx, ry, rz, rw, mode)
		VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			px = excluded.px, py = excluded.py, pz = excluded.pz,
			rx = excluded.rx, ry = excluded.ry, rz = excluded.rz, rw = excluded.rw,
			mode = excluded.mode
	`, p[0], p[1], p[2], r.V[0], r.V[1], r.V[2], r.W, mode.String())
	if err != nil {
		return fmt.Errorf("write mirror: %w", err)
	}
	return nil
}
