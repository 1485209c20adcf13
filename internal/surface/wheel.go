package surface

import (
	"math"

	"github.com/opd-ai/go-colorpicker/internal/canvas"
	"github.com/opd-ai/go-colorpicker/internal/colors"
	"github.com/opd-ai/go-colorpicker/internal/gradient"
)

// HueWheel is the hue/saturation disk. Hue runs clockwise from the right
// edge and saturation grows from the white center to the rim. It builds on
// the spectrum square but replaces its geometry, drawing and sampling.
type HueWheel struct {
	*SpectrumSquare
	ring *gradient.Conical
}

// NewWheel creates the hue wheel.
func NewWheel(state State, marker *Marker) *HueWheel {
	sq := &SpectrumSquare{base: newBase(Wheel, state, marker)}
	return &HueWheel{
		SpectrumSquare: sq,
		ring:           gradient.NewConical(gradient.HueStops()...),
	}
}

// Draw renders the conical hue ring and the white center. The result does
// not depend on the current color.
func (w *HueWheel) Draw() {
	r := w.mapper.Radius()
	w.cv.Clear()
	w.ring.Fill(w.cv, r, r, r, math.Pi/180, math.Pi/180, false)

	center := canvas.NewRadialGradient(r, r, r, r, r, 0).
		AddColorStop(0, whiteClear).
		AddColorStop(1, whiteOpaque)
	w.cv.Fill(center)
}

// ColorAt returns the hue at the angle of (x, y) and the saturation at its
// distance from the center. Value and alpha come from the current color.
func (w *HueWheel) ColorAt(x, y float64) colors.Color {
	q := w.mapper.Forward(Point{X: x, Y: y})
	cur := w.state.Color()
	return colors.HSVA(q.U, q.V, cur.V, cur.A)
}

// OnColorSet moves the marker to the current hue and saturation.
func (w *HueWheel) OnColorSet() {
	c := w.state.Color()
	p := w.mapper.Inverse(Param{U: c.H, V: c.S})
	w.SetMarkerCenter(p.X, p.Y)
}
