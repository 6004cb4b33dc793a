// Package export renders stored strokes to documents outside the sketch.
package export

import (
	"fmt"
	"io"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/jung-kurt/gofpdf"

	"github.com/roach88/strokecap/internal/geom"
	"github.com/roach88/strokecap/internal/stroke"
)

// Plane selects the orthographic projection used for export.
type Plane int

const (
	// PlaneXY looks down +Z (front view).
	PlaneXY Plane = iota
	// PlaneXZ looks down -Y (top view).
	PlaneXZ
	// PlaneZY looks down -X (side view).
	PlaneZY
)

func (p Plane) String() string {
	switch p {
	case PlaneXY:
		return "xy"
	case PlaneXZ:
		return "xz"
	case PlaneZY:
		return "zy"
	}
	return fmt.Sprintf("Plane(%d)", int(p))
}

// ParsePlane parses a plane name.
func ParsePlane(s string) (Plane, error) {
	for _, p := range []Plane{PlaneXY, PlaneXZ, PlaneZY} {
		if p.String() == s {
			return p, nil
		}
	}
	return 0, fmt.Errorf("unknown plane %q: must be xy, xz or zy", s)
}

func (p Plane) project(v mgl32.Vec3) (float64, float64) {
	switch p {
	case PlaneXZ:
		return float64(v.X()), float64(v.Z())
	case PlaneZY:
		return float64(v.Z()), float64(v.Y())
	}
	return float64(v.X()), float64(v.Y())
}

// Page geometry in millimetres (A4 portrait).
const (
	pageWidth  = 210.0
	pageHeight = 297.0
	margin     = 15.0
	minLineMM  = 0.2
)

// PDF writes strokes as polylines on one A4 page, fitted to the page with a
// uniform scale. Line width follows brush size, color follows stroke color.
func PDF(w io.Writer, strokes []stroke.Stroke, plane Plane) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("strokecap export", true)
	pdf.AddPage()
	pdf.SetLineCapStyle("round")
	pdf.SetLineJoinStyle("round")

	fit := fitTo(strokes, plane)
	for _, st := range strokes {
		if len(st.ControlPoints) < 2 {
			continue
		}
		pdf.SetDrawColor(colorByte(st.Color.R), colorByte(st.Color.G), colorByte(st.Color.B))
		pdf.SetLineWidth(math.Max(float64(st.BrushSize)*fit.scale, minLineMM))

		px, py := fit.apply(plane.project(st.ControlPoints[0].Position))
		for _, cp := range st.ControlPoints[1:] {
			x, y := fit.apply(plane.project(cp.Position))
			pdf.Line(px, py, x, y)
			px, py = x, y
		}
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

// fit maps projected sketch coordinates onto the page. Sketch +Y is page up.
type fit struct {
	minX, maxY float64
	scale      float64
	offX, offY float64
}

func fitTo(strokes []stroke.Stroke, plane Plane) fit {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, st := range strokes {
		for _, cp := range st.ControlPoints {
			x, y := plane.project(cp.Position)
			minX, maxX = math.Min(minX, x), math.Max(maxX, x)
			minY, maxY = math.Min(minY, y), math.Max(maxY, y)
		}
	}
	if math.IsInf(minX, 1) {
		return fit{scale: 1, offX: margin, offY: margin}
	}

	w, h := maxX-minX, maxY-minY
	availW, availH := pageWidth-2*margin, pageHeight-2*margin
	scale := 1.0
	switch {
	case w > 0 && h > 0:
		scale = math.Min(availW/w, availH/h)
	case w > 0:
		scale = availW / w
	case h > 0:
		scale = availH / h
	}

	// Centre the drawing.
	return fit{
		minX:  minX,
		maxY:  maxY,
		scale: scale,
		offX:  margin + (availW-w*scale)/2,
		offY:  margin + (availH-h*scale)/2,
	}
}

func (f fit) apply(x, y float64) (float64, float64) {
	return f.offX + (x-f.minX)*f.scale, f.offY + (f.maxY-y)*f.scale
}

func colorByte(c float32) int {
	return int(math.Round(float64(geom.Clamp01(c)) * 255))
}
