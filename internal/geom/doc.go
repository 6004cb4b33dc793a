// Package geom provides the pose and plane math shared by the stroke pipeline.
//
// All types are built on github.com/go-gl/mathgl/mgl32 so that values can be
// written straight into float32 control point records without conversion.
//
// # Axis Convention
//
// Poses use a left-handed, Y-up frame:
//   - Right   = +X
//   - Up      = +Y
//   - Forward = +Z
//
// A pose's "normal" in stroke terms is its rotated Forward axis.
//
// # Degenerate Input
//
// Helpers in this package never return NaN for zero-length vectors.
// NormalizeOrZero and FromTo treat vectors shorter than Epsilon as zero,
// and callers are expected to fall back to a simpler shape in that case.
package geom
