// Package engine runs the per-frame line-creation state machine.
//
// The engine drives a pointer.Pool from controller input. Each Tick:
//
//  1. advances the sketch clock,
//  2. applies queued input (pose, draw button, pressure),
//  3. feeds every active slot's pose into its open line,
//  4. steps the state machine.
//
// STATES:
//
//	WaitingForInput          no stroke in progress
//	RecordingInput           the draw button is held and lines are open
//	ProcessingStraightEdge   a proxy-drawn straight edge is being replayed
//	                         with the real brush over several frames
//
// Transitions happen at most once per Tick.
//
// STARVATION:
// Stroke playback borrows transient pool slots. Drawing is only allowed
// while at least as many transient slots are free as there are active
// pointers. When starved the engine pulses haptics and refuses to start,
// ends a freehand stroke, cancels a pending straight-edge replay, or cuts
// a running replay short.
//
// GROUPS:
// Strokes finalized together (symmetry replicas) form one undo group. The
// first kept stroke is the head; the rest carry stroke.FlagIsGroupContinue
// and share the head's first timestamp. A freehand stroke that exhausts its
// geometry budget is finalized and immediately continued; the continuation
// reuses the group ID so the two pieces undo as one action.
//
// THREADING:
// Tick and the setters are single-writer and must be called from one
// goroutine, normally the frame loop. Enqueue is safe from any goroutine and
// is how other threads deliver input.
package engine
