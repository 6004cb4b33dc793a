// Package harness runs frame-scripted drawing scenarios against the real
// engine.
//
// # Scenario Format
//
// Scenarios are YAML files:
//
//	name: mirror_line
//	description: "A straight line drawn with one mirror plane"
//	symmetry: single_plane
//	straight_edge: true
//	brush: Ink
//	frames:
//	  - position: [1, 0, 0]
//	    draw: true
//	  - position: [2, 0, 0]
//	    draw: true
//	  - draw: false
//	assertions:
//	  - type: stroke_count
//	    count: 2
//	  - type: stroke_endpoints
//	    index: 1
//	    first: [-1, 0, 0]
//	    last: [-2, 0, 0]
//
// Each frame sets the main pointer, the draw button and optionally pressure
// or a gesture outcome, then ticks the engine once by dt (default 0.25s).
// A frame with repeat: N is ticked N times. position omitted keeps the
// previous pose.
//
// # Assertion Types
//
//   - stroke_count: number of live strokes in the store
//   - final_state: engine state after the last frame
//   - stroke_points: control point count of stroke[index]
//   - stroke_endpoints: first and last control point positions of stroke[index]
//   - stroke_flags: whether stroke[index] continues a group
//   - haptic_pulses: number of draw-disallowed pulses
//
// # Deterministic Testing
//
// Every run uses a fresh in-memory store, the sketch clock driven only by
// frame dt, sequential IDs ("id-1", "id-2", ...) and a scripted gesture
// detector. The engine's observer events form the trace compared against
// golden files.
package harness
