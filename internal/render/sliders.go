package render

import (
	"image"
	"math"

	"github.com/opd-ai/go-colorpicker/internal/canvas"
	"github.com/opd-ai/go-colorpicker/internal/colors"
)

// Channel is one component edited by the sliders tab.
type Channel int

const (
	Red Channel = iota
	Green
	Blue
	Alpha
)

var channelLabels = [...]string{Red: "R", Green: "G", Blue: "B", Alpha: "A"}

// Label returns the one-letter slider label.
func (ch Channel) Label() string {
	if ch < 0 || int(ch) >= len(channelLabels) {
		return "?"
	}
	return channelLabels[ch]
}

// Channels returns the slider channels in display order.
func Channels(alphaChannel bool) []Channel {
	if alphaChannel {
		return []Channel{Red, Green, Blue, Alpha}
	}
	return []Channel{Red, Green, Blue}
}

// Value returns the channel of c as a fraction in [0,1].
func (ch Channel) Value(c colors.Color) float64 {
	r, g, b := c.RGB()
	switch ch {
	case Red:
		return float64(r) / 255
	case Green:
		return float64(g) / 255
	case Blue:
		return float64(b) / 255
	case Alpha:
		return c.A
	}
	return 0
}

// Apply returns c with the channel set to v, a fraction in [0,1]. Color
// channels are rounded to whole 8-bit values.
func (ch Channel) Apply(c colors.Color, v float64) colors.Color {
	v = math.Max(0, math.Min(1, v))
	if ch == Alpha {
		return c.WithAlpha(v)
	}
	r, g, b := c.RGB()
	u := uint8(math.Round(v * 255))
	switch ch {
	case Red:
		r = u
	case Green:
		g = u
	case Blue:
		b = u
	}
	out := colors.RGBA(r, g, b, c.A)
	if out.S == 0 {
		// Gray has no hue of its own; keep the one the user was on.
		out.H = c.H
	}
	return out
}

// SliderValue maps a client x coordinate on slider rectangle r to a
// fraction in [0,1].
func SliderValue(r image.Rectangle, x float64) float64 {
	w := float64(r.Dx() - 1)
	if w <= 0 {
		return 0
	}
	return math.Max(0, math.Min(1, (x-float64(r.Min.X))/w))
}

// SliderX is the inverse of SliderValue.
func SliderX(r image.Rectangle, v float64) float64 {
	return float64(r.Min.X) + v*float64(r.Dx()-1)
}

// PaintSlider fills cv with the ramp of channel ch from 0 to 1 around c.
func PaintSlider(cv *canvas.Canvas, ch Channel, c colors.Color) {
	from, to := ch.Apply(c, 0), ch.Apply(c, 1)
	if ch != Alpha {
		from, to = from.Opaque(), to.Opaque()
	}
	// Pixel centers of the first and last column hit the end stops.
	grd := canvas.NewLinearGradient(0.5, 0, float64(cv.Width())-0.5, 0).
		AddColorStop(0, from.NRGBA()).
		AddColorStop(1, to.NRGBA())
	cv.Clear()
	cv.Fill(grd)
}
