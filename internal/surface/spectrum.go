package surface

import (
	"image/color"

	"github.com/opd-ai/go-colorpicker/internal/canvas"
	"github.com/opd-ai/go-colorpicker/internal/colors"
)

// SpectrumSquare is the saturation/value surface for the cached hue.
// Saturation grows to the right and value grows upward.
type SpectrumSquare struct {
	base
}

// NewSpectrum creates the spectrum square.
func NewSpectrum(state State, marker *Marker) *SpectrumSquare {
	return &SpectrumSquare{base: newBase(Spectrum, state, marker)}
}

var (
	whiteOpaque = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	whiteClear  = color.NRGBA{R: 255, G: 255, B: 255}
	blackOpaque = color.NRGBA{A: 255}
	blackClear  = color.NRGBA{}
)

// Draw fills the pure hue, then a white ramp from the left, then a black
// ramp toward the bottom. The order matters for compositing.
func (s *SpectrumSquare) Draw() {
	w, h := s.width(), s.height()

	white := canvas.NewLinearGradient(0, 0, w, 0).
		AddColorStop(0.01, whiteOpaque).
		AddColorStop(0.99, whiteClear)
	black := canvas.NewLinearGradient(0, 0, 0, h).
		AddColorStop(0.01, blackClear).
		AddColorStop(0.99, blackOpaque)

	s.cv.Clear()
	s.cv.Fill(canvas.Solid(colors.HSV(s.state.Hue(), 1, 1).NRGBA()))
	s.cv.Fill(white)
	s.cv.Fill(black)
}

// ColorAt returns the cached hue with the saturation at x and the value
// at y.
func (s *SpectrumSquare) ColorAt(x, y float64) colors.Color {
	q := s.mapper.Forward(Point{X: x, Y: y})
	return colors.HSVA(s.state.Hue(), q.V, q.U, s.state.Color().A)
}

// OnColorSet redraws for the current hue and moves the marker to the
// current saturation and value.
func (s *SpectrumSquare) OnColorSet() {
	s.Draw()
	c := s.state.Color()
	p := s.mapper.Inverse(Param{U: c.V, V: c.S})
	s.SetMarkerCenter(p.X, p.Y)
}
