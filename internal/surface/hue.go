package surface

import (
	"image/color"

	"github.com/opd-ai/go-colorpicker/internal/canvas"
	"github.com/opd-ai/go-colorpicker/internal/colors"
	"github.com/opd-ai/go-colorpicker/internal/gradient"
)

// HueStrip is the vertical hue surface: red at the top through the full
// spectrum back to red at the bottom.
type HueStrip struct {
	base
}

// NewHue creates the hue strip.
func NewHue(state State, marker *Marker) *HueStrip {
	return &HueStrip{base: newBase(Hue, state, marker)}
}

// Draw fills the strip with the seven-stop hue gradient.
func (s *HueStrip) Draw() {
	grd := canvas.NewLinearGradient(90, 0, 90, s.height())
	for _, st := range gradient.HueStops() {
		grd.AddColorStop(st.Offset, color.NRGBA{
			R: uint8(st.Color.R), G: uint8(st.Color.G), B: uint8(st.Color.B), A: 255,
		})
	}
	s.cv.Clear()
	s.cv.Fill(grd)
}

// ColorAt returns the current color with the hue at y.
func (s *HueStrip) ColorAt(x, y float64) colors.Color {
	q := s.mapper.Forward(Point{X: x, Y: y})
	cur := s.state.Color()
	return colors.HSVA(360*q.U, cur.S, cur.V, cur.A)
}

// OnColorSet moves the marker to the cached hue. The strip itself does not
// depend on the color.
func (s *HueStrip) OnColorSet() {
	p := s.mapper.Inverse(Param{U: s.state.Hue() / 360})
	s.SetMarkerCenter(p.X, p.Y)
}
