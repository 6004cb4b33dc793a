package symmetry

import (
	"github.com/roach88/strokecap/internal/geom"
)

// Mirror is the persisted form of the widget, expressed relative to the
// canvas so it survives canvas moves.
type Mirror struct {
	Transform geom.Pose
}

// ToMirror captures the widget pose relative to canvas.
func (w Widget) ToMirror(canvas geom.Pose) Mirror {
	return Mirror{Transform: canvas.Inverse().Mul(w.Pose)}
}

// FromMirror restores a widget from m under canvas.
func FromMirror(m Mirror, canvas geom.Pose) Widget {
	return Widget{Pose: canvas.Mul(m.Transform)}
}
