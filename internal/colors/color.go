// Package colors implements the color value shared by every picker surface.
// A Color stores hue, saturation, value and alpha; RGB and HSL views are
// derived on demand through go-colorful.
package colors

import (
	"image/color"
	"math"
	"math/rand"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is an HSVA color.
// H is in [0,360), S, V and A are in [0,1].
type Color struct {
	H float64
	S float64
	V float64
	A float64
}

// HSVA returns a normalized Color. Hue wraps into [0,360); the other
// components are clamped to [0,1].
func HSVA(h, s, v, a float64) Color {
	return Color{
		H: NormalizeHue(h),
		S: clamp01(s),
		V: clamp01(v),
		A: clamp01(a),
	}
}

// HSV returns an opaque Color.
func HSV(h, s, v float64) Color {
	return HSVA(h, s, v, 1)
}

// RGBA returns a Color from 8-bit channels and a [0,1] alpha.
func RGBA(r, g, b uint8, a float64) Color {
	c := colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
	h, s, v := c.Hsv()
	return HSVA(h, s, v, a)
}

// RGB returns an opaque Color from 8-bit channels.
func RGB(r, g, b uint8) Color {
	return RGBA(r, g, b, 1)
}

// FromColor converts any image/color value, un-premultiplying alpha.
func FromColor(c color.Color) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return RGBA(n.R, n.G, n.B, float64(n.A)/255)
}

// Random returns an opaque color with uniformly random channels.
func Random() Color {
	c := colorful.Color{R: rand.Float64(), G: rand.Float64(), B: rand.Float64()}
	h, s, v := c.Hsv()
	return HSVA(h, s, v, 1)
}

func (c Color) colorful() colorful.Color {
	return colorful.Hsv(c.H, c.S, c.V).Clamped()
}

// RGB returns the 8-bit red, green and blue channels.
func (c Color) RGB() (r, g, b uint8) {
	return c.colorful().RGB255()
}

// HSL returns hue in degrees and saturation/lightness in [0,1].
// The hue is the stored hue so grays keep theirs.
func (c Color) HSL() (h, s, l float64) {
	_, s, l = c.colorful().Hsl()
	return c.H, s, l
}

// NRGBA returns the non-premultiplied 8-bit form of c.
func (c Color) NRGBA() color.NRGBA {
	r, g, b := c.RGB()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(math.Round(c.A * 255))}
}

// Opaque returns c with alpha forced to 1.
func (c Color) Opaque() Color {
	c.A = 1
	return c
}

// WithAlpha returns c with the given alpha, clamped to [0,1].
func (c Color) WithAlpha(a float64) Color {
	c.A = clamp01(a)
	return c
}

// WithHue returns c with the given hue.
func (c Color) WithHue(h float64) Color {
	c.H = NormalizeHue(h)
	return c
}

// Brightness is the perceived brightness in [0,255] (W3C formula).
func (c Color) Brightness() float64 {
	r, g, b := c.RGB()
	return (float64(r)*299 + float64(g)*587 + float64(b)*114) / 1000
}

// IsDark reports whether text drawn over c should be light.
func (c Color) IsDark() bool {
	return c.Brightness() < 128
}

// SameRGBA reports whether two colors render to the same 8-bit channels and
// the same rounded alpha.
func (c Color) SameRGBA(o Color) bool {
	return c.RGBString() == o.RGBString()
}

// NormalizeHue wraps h into [0,360).
func NormalizeHue(h float64) float64 {
	if math.IsNaN(h) || math.IsInf(h, 0) {
		return 0
	}
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	if h >= 360 {
		h = 0
	}
	return h
}

func clamp01(x float64) float64 {
	if math.IsNaN(x) || x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
