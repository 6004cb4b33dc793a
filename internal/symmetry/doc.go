// Package symmetry computes where each replica pointer should be, given the
// main pointer's pose and the symmetry widget.
//
// Modes and their active pointer counts:
//
//	none              1
//	single_plane      2   mirror across the widget's right-facing plane
//	four_around_y     4   0, 90, 180, 270 degrees about the widget's up axis
//	debug_multiple    N   copies offset by a constant translation
//
// Mirrored poses keep a proper rotation (see geom.Plane.ReflectPoseKeepHandedness)
// so brush geometry is never generated inside out.
package symmetry
