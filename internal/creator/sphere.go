package creator

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/roach88/strokecap/internal/controlpoint"
	"github.com/roach88/strokecap/internal/geom"
)

// DefaultMinSphereBrushSize is the smallest room-space brush size a sphere
// is drawn with.
const DefaultMinSphereBrushSize float32 = 0.3

// maxSphereLoops bounds the spiral for huge radii or tiny brushes.
const maxSphereLoops = 1000

// Sphere draws a spiral covering a sphere centered at the initial position
// whose radius is the distance to the end pose. Loop count scales with the
// radius so adjacent loops stay about one brush width apart.
type Sphere struct {
	base
	brushSizeCS float32
	brushSizeRS float32
}

// NewSphere returns a Sphere creator. brushSizeRS is pinned to at least
// DefaultMinSphereBrushSize and converted to canvas space by canvasScale.
func NewSphere(initial geom.Pose, clock Clock, brushSizeRS, canvasScale float32) *Sphere {
	return NewSphereWithMin(initial, clock, brushSizeRS, canvasScale, DefaultMinSphereBrushSize)
}

// NewSphereWithMin is NewSphere with an explicit minimum brush size.
// A non-positive minSize means DefaultMinSphereBrushSize.
func NewSphereWithMin(initial geom.Pose, clock Clock, brushSizeRS, canvasScale, minSize float32) *Sphere {
	if canvasScale <= 0 {
		canvasScale = 1
	}
	if !(minSize > 0) {
		minSize = DefaultMinSphereBrushSize
	}
	size := float32(math.Max(float64(brushSizeRS), float64(minSize)))
	return &Sphere{
		base:        newBase(initial, clock),
		brushSizeRS: size,
		brushSizeCS: size / canvasScale,
	}
}

func (s *Sphere) Shape() Shape { return ShapeSphere }

// ProcessBrushSize returns the pinned room-space size.
func (s *Sphere) ProcessBrushSize(float32) float32 { return s.brushSizeRS }

func (s *Sphere) GetPoints(final geom.Pose) []controlpoint.ControlPoint {
	final = s.condition(final)
	now := s.clock.Now()

	center := s.initial.Position
	offset := final.Position.Sub(center)
	radius := float64(offset.Len())

	loops := radius * math.Pi / float64(s.brushSizeCS)
	if math.IsNaN(loops) {
		loops = 0
	}
	loops = math.Min(loops, maxSphereLoops)
	thetaOffset := -loops * math.Pi
	total := int(math.Max(loops*20, 2))
	if total%2 == 1 {
		total++
	}

	pose := geom.TR(center, geom.FromTo(geom.Forward, geom.NormalizeOrZero(offset)))

	out := make([]controlpoint.ControlPoint, 0, total)
	for k := 0; k < total; k++ {
		t := float64(k) / float64(total-1)
		theta := t*loops*2*math.Pi + thetaOffset
		phi := t * math.Pi
		st, ct := math.Sincos(theta)
		sp, cp := math.Sincos(phi)

		local := geom.TR(
			mgl32.Vec3{float32(radius * ct * sp), float32(radius * st * sp), float32(radius * cp)},
			geom.AngleAxisRad(float32(theta), geom.Forward).Mul(geom.AngleAxisRad(float32(phi), geom.Up)),
		)
		out = append(out, controlpoint.New(pose.Mul(local), 1, s.timestampAt(now, float32(t))))
	}
	return out
}
