// Package creator turns a start pose and a moving end pose into the full
// control point sequence of a parametric stroke.
//
// A Creator is seeded with the pose at which a straight-edge stroke began.
// Every frame the owning pointer calls GetPoints with its current pose and
// replaces the in-progress stroke's points with the result, so the preview
// always reflects the latest end pose.
//
// Three shapes exist:
//
//   - Line:   a segment between the two poses, with orientation smoothing
//     that keeps the stroke's surface normal perpendicular to the line.
//   - Circle: a ring centered on the start pose through the end pose.
//   - Sphere: a spiral covering a sphere centered on the start pose.
//
// Freehand strokes have no Creator; the pointer appends samples directly.
//
// Creators are stateful. Line and Circle remember the previous frame's
// output to suppress flips, and every creator conditions the incoming end
// rotation so it stays in the same quaternion hemisphere as the last one.
// Callers must feed poses in frame order and must not share a Creator
// between pointers.
package creator
