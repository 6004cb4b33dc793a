package controlpoint

import (
	"encoding/binary"
	"math/bits"

	"github.com/go-gl/mathgl/mgl32"
)

// Extension is a bit in a stroke's control point extension mask.
type Extension uint32

const (
	ExtPressure  Extension = 1 << 0
	ExtTimestamp Extension = 1 << 1

	// ExtAll is the mask written by this package.
	ExtAll = ExtPressure | ExtTimestamp
)

// RecordSizeFor returns the per-point record size for mask.
func RecordSizeFor(mask Extension) int {
	return BaseSize + 4*bits.OnesCount32(uint32(mask))
}

// EncodeSlice concatenates the full records for cps.
func EncodeSlice(cps []ControlPoint) []byte {
	out := make([]byte, 0, len(cps)*RecordSize)
	for _, cp := range cps {
		out, _ = cp.AppendBinary(out)
	}
	return out
}

// DecodeSlice decodes a buffer of full records.
func DecodeSlice(data []byte) ([]ControlPoint, error) {
	if len(data)%RecordSize != 0 {
		return nil, NewTrailingBytesError(len(data) % RecordSize)
	}
	out := make([]ControlPoint, len(data)/RecordSize)
	for i := range out {
		out[i] = decodeFull(data[i*RecordSize : (i+1)*RecordSize])
	}
	return out, nil
}

// DecodeWithMask decodes exactly count records laid out according to mask.
func DecodeWithMask(data []byte, count int, mask Extension) ([]ControlPoint, error) {
	if count < 0 {
		return nil, NewBadCountError(count)
	}
	size := RecordSizeFor(mask)
	if len(data) < count*size {
		return nil, NewShortRecordError(len(data), count*size)
	}
	if len(data) > count*size {
		return nil, NewTrailingBytesError(len(data) - count*size)
	}

	out := make([]ControlPoint, count)
	for i := range out {
		rec := data[i*size : (i+1)*size]
		cp := ControlPoint{
			Position:    mgl32.Vec3{readFloat(rec, 0), readFloat(rec, 4), readFloat(rec, 8)},
			Orientation: mgl32.Quat{W: readFloat(rec, 24), V: mgl32.Vec3{readFloat(rec, 12), readFloat(rec, 16), readFloat(rec, 20)}},
			Pressure:    DefaultPressure,
		}

		off := BaseSize
		for b := 0; b < 32; b++ {
			bit := Extension(1) << b
			if mask&bit == 0 {
				continue
			}
			switch bit {
			case ExtPressure:
				cp.Pressure = readFloat(rec, off)
			case ExtTimestamp:
				cp.TimestampMs = binary.LittleEndian.Uint32(rec[off:])
			}
			off += 4
		}
		out[i] = cp
	}
	return out, nil
}
