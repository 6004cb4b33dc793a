// Package controlpoint defines the atomic sample of a stroke and its binary
// record layout.
//
// A ControlPoint is a pose (position and orientation), a pressure in [0,1],
// and a millisecond timestamp on the sketch clock. Its record is packed,
// little-endian, in this field order:
//
//	offset  size  field
//	0       12    position     float32 x, y, z
//	12      16    orientation  float32 x, y, z, w
//	28      4     pressure     float32
//	32      4     timestamp    uint32 milliseconds
//
// RecordSize is the full 36 bytes. Field order and widths must not change
// without a format version bump, since persisted sketches depend on them.
//
// Files may also store only a subset of the extension fields (pressure,
// timestamp) or fields this version does not know about. DecodeWithMask
// reads such records given the extension mask stored with the stroke:
// unknown extension bits are skipped four bytes each, and absent fields
// fall back to DefaultPressure and a zero timestamp.
package controlpoint
