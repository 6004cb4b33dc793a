package controlpoint

import (
	"encoding/binary"
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/roach88/strokecap/internal/geom"
)

const (
	// BaseSize is the size of the position and orientation block.
	BaseSize = 28

	// RecordSize is the size of one fully populated record.
	RecordSize = BaseSize + 4 + 4

	// DefaultPressure is used when a record carries no pressure field.
	DefaultPressure float32 = 1
)

// ControlPoint is one sample of a stroke in canvas space.
type ControlPoint struct {
	Position    mgl32.Vec3
	Orientation mgl32.Quat
	Pressure    float32
	TimestampMs uint32
}

// New returns a control point for pose at the given pressure and time.
func New(pose geom.Pose, pressure float32, timestampMs uint32) ControlPoint {
	return ControlPoint{
		Position:    pose.Position,
		Orientation: pose.Rotation,
		Pressure:    pressure,
		TimestampMs: timestampMs,
	}
}

// Pose returns the point's position and orientation.
func (cp ControlPoint) Pose() geom.Pose {
	return geom.TR(cp.Position, cp.Orientation)
}

// TimestampFromSeconds converts a sketch time in seconds to the record's
// millisecond timestamp, truncating toward zero.
func TimestampFromSeconds(seconds float64) uint32 {
	if seconds <= 0 {
		return 0
	}
	return uint32(seconds * 1000)
}

// AppendBinary appends the full record for cp to dst.
func (cp ControlPoint) AppendBinary(dst []byte) ([]byte, error) {
	dst = appendFloat(dst, cp.Position[0])
	dst = appendFloat(dst, cp.Position[1])
	dst = appendFloat(dst, cp.Position[2])
	dst = appendFloat(dst, cp.Orientation.V[0])
	dst = appendFloat(dst, cp.Orientation.V[1])
	dst = appendFloat(dst, cp.Orientation.V[2])
	dst = appendFloat(dst, cp.Orientation.W)
	dst = appendFloat(dst, cp.Pressure)
	dst = binary.LittleEndian.AppendUint32(dst, cp.TimestampMs)
	return dst, nil
}

// MarshalBinary returns the RecordSize-byte record for cp.
func (cp ControlPoint) MarshalBinary() ([]byte, error) {
	return cp.AppendBinary(make([]byte, 0, RecordSize))
}

// UnmarshalBinary decodes a single full record.
func (cp *ControlPoint) UnmarshalBinary(data []byte) error {
	if len(data) != RecordSize {
		return NewShortRecordError(len(data), RecordSize)
	}
	*cp = decodeFull(data)
	return nil
}

func decodeFull(b []byte) ControlPoint {
	return ControlPoint{
		Position:    mgl32.Vec3{readFloat(b, 0), readFloat(b, 4), readFloat(b, 8)},
		Orientation: mgl32.Quat{W: readFloat(b, 24), V: mgl32.Vec3{readFloat(b, 12), readFloat(b, 16), readFloat(b, 20)}},
		Pressure:    readFloat(b, 28),
		TimestampMs: binary.LittleEndian.Uint32(b[32:]),
	}
}

func appendFloat(dst []byte, f float32) []byte {
	return binary.LittleEndian.AppendUint32(dst, math.Float32bits(f))
}

func readFloat(b []byte, off int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b[off:]))
}
