// Package pointer owns the fixed pool of pointer slots that draw strokes.
//
// # Slots
//
// A Slot is one drawing cursor. While a stroke is in progress the slot owns
// an open line: the accumulating control points, the geometry Builder that
// budgets them, and optionally a creator.Creator for straight-edge shapes.
// Freehand lines have no creator; each frame's pose is appended directly.
//
// # Keeper Rule
//
// The Builder reports whether each appended pose produced new geometry.
// When it did not, the next sample overwrites the last control point
// instead of appending, so a stationary pointer does not grow the stroke.
//
// # Pool Layout
//
// The pool is allocated once with Capacity slots:
//
//	[0]                       main pointer, driven by input
//	[1, UserPointers)         symmetry replicas
//	[UserPointers, Capacity)  transient slots for stroke playback
//
// User and transient slots are exposed through separate slices whose
// capacities are clipped, so no view can reach into the other region.
// Capacity is fixed after construction; symmetry modes that need more
// user slots than exist are rejected.
package pointer
