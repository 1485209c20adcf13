package canvas

import (
	"image"
	"image/color"
	"math"
	"sort"
)

// Stop is a gradient color stop.
type Stop struct {
	Offset float64
	Color  color.NRGBA
}

// patternBounds is large enough to cover any canvas a pattern is drawn on.
var patternBounds = image.Rect(-1<<20, -1<<20, 1<<20, 1<<20)

// stopList keeps stops ordered by offset; stops with equal offsets keep
// insertion order.
type stopList []Stop

func (s *stopList) add(offset float64, c color.NRGBA) {
	offset = math.Max(0, math.Min(1, offset))
	i := sort.Search(len(*s), func(i int) bool { return (*s)[i].Offset > offset })
	*s = append(*s, Stop{})
	copy((*s)[i+1:], (*s)[i:])
	(*s)[i] = Stop{Offset: offset, Color: c}
}

// at returns the interpolated color at t, padding with the edge stops.
func (s stopList) at(t float64) color.NRGBA {
	switch len(s) {
	case 0:
		return color.NRGBA{}
	case 1:
		return s[0].Color
	}
	if t <= s[0].Offset {
		return s[0].Color
	}
	last := s[len(s)-1]
	if t >= last.Offset {
		return last.Color
	}
	for i := 0; i < len(s)-1; i++ {
		before, after := s[i], s[i+1]
		if t < before.Offset || t >= after.Offset {
			continue
		}
		return lerp(before.Color, after.Color, (t-before.Offset)/(after.Offset-before.Offset))
	}
	return last.Color
}

func lerp(a, b color.NRGBA, t float64) color.NRGBA {
	ch := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x) + t*(float64(y)-float64(x))))
	}
	return color.NRGBA{R: ch(a.R, b.R), G: ch(a.G, b.G), B: ch(a.B, b.B), A: ch(a.A, b.A)}
}

// Solid returns a uniform pattern.
func Solid(c color.Color) image.Image {
	return image.NewUniform(c)
}

// LinearGradient is a gradient along the line (X0,Y0)-(X1,Y1). Pixels are
// sampled at their centers.
type LinearGradient struct {
	X0, Y0, X1, Y1 float64
	stops          stopList
}

// NewLinearGradient creates a linear gradient without stops.
func NewLinearGradient(x0, y0, x1, y1 float64) *LinearGradient {
	return &LinearGradient{X0: x0, Y0: y0, X1: x1, Y1: y1}
}

// AddColorStop adds a stop; offset is clamped to [0,1].
func (g *LinearGradient) AddColorStop(offset float64, c color.Color) *LinearGradient {
	g.stops.add(offset, color.NRGBAModel.Convert(c).(color.NRGBA))
	return g
}

// Stops returns a copy of the ordered stops.
func (g *LinearGradient) Stops() []Stop {
	return append([]Stop(nil), g.stops...)
}

// ColorAtPoint returns the gradient color at (x, y).
func (g *LinearGradient) ColorAtPoint(x, y float64) color.NRGBA {
	dx, dy := g.X1-g.X0, g.Y1-g.Y0
	lengthSq := dx*dx + dy*dy
	if lengthSq == 0 {
		return g.stops.at(0)
	}
	return g.stops.at(((x-g.X0)*dx + (y-g.Y0)*dy) / lengthSq)
}

func (g *LinearGradient) ColorModel() color.Model { return color.NRGBAModel }
func (g *LinearGradient) Bounds() image.Rectangle { return patternBounds }
func (g *LinearGradient) At(x, y int) color.Color {
	return g.ColorAtPoint(float64(x)+0.5, float64(y)+0.5)
}

// RadialGradient is a gradient between two circles. Only concentric circles
// are supported: the position is the distance from (CX1, CY1) mapped from
// R0 to R1, so R0 > R1 runs from the rim toward the center.
type RadialGradient struct {
	CX0, CY0, R0 float64
	CX1, CY1, R1 float64
	stops        stopList
}

// NewRadialGradient creates a radial gradient without stops.
func NewRadialGradient(cx0, cy0, r0, cx1, cy1, r1 float64) *RadialGradient {
	return &RadialGradient{CX0: cx0, CY0: cy0, R0: r0, CX1: cx1, CY1: cy1, R1: r1}
}

// AddColorStop adds a stop; offset is clamped to [0,1].
func (g *RadialGradient) AddColorStop(offset float64, c color.Color) *RadialGradient {
	g.stops.add(offset, color.NRGBAModel.Convert(c).(color.NRGBA))
	return g
}

// ColorAtPoint returns the gradient color at (x, y).
func (g *RadialGradient) ColorAtPoint(x, y float64) color.NRGBA {
	dist := math.Hypot(x-g.CX1, y-g.CY1)
	if g.R1 == g.R0 {
		if dist <= g.R1 {
			return g.stops.at(1)
		}
		return g.stops.at(0)
	}
	return g.stops.at((dist - g.R0) / (g.R1 - g.R0))
}

func (g *RadialGradient) ColorModel() color.Model { return color.NRGBAModel }
func (g *RadialGradient) Bounds() image.Rectangle { return patternBounds }
func (g *RadialGradient) At(x, y int) color.Color {
	return g.ColorAtPoint(float64(x)+0.5, float64(y)+0.5)
}
