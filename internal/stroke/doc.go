// Package stroke holds the value types that leave the capture pipeline:
// finalized strokes, their flags, and the brush and color descriptors that
// travel with them.
package stroke
