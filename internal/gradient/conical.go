// Package gradient rasterizes angular (conical) multi-stop gradients as a
// sweep of one-degree pie wedges.
package gradient

import (
	"image/color"
	"math"
)

const (
	// StepAngle is the angular size of one wedge.
	StepAngle = math.Pi / 180
	// SeamOverlap is how far before its nominal start each wedge is drawn,
	// hiding seams between neighbours.
	SeamOverlap = 0.02
	// angleEpsilon treats start and end angles this close as equal.
	angleEpsilon = 1e-4
)

// Color is a stop color with channels in [0,255] and alpha in [0,1].
// Alpha defaults to 1 unless set explicitly, so an explicit 0 is kept.
type Color struct {
	R, G, B  float64
	A        float64
	alphaSet bool
}

// RGB returns an opaque stop color.
func RGB(r, g, b float64) Color {
	return Color{R: r, G: g, B: b}
}

// RGBA returns a stop color with explicit alpha.
func RGBA(r, g, b, a float64) Color {
	return Color{R: r, G: g, B: b, A: a, alphaSet: true}
}

// Alpha returns the effective alpha.
func (c Color) Alpha() float64 {
	if !c.alphaSet {
		return 1
	}
	return c.A
}

// Stop is a gradient control point.
type Stop struct {
	Offset float64
	Color  Color
}

// HueStops returns the seven-stop full hue spectrum: red, yellow, green,
// cyan, blue, magenta and back to red at sixths.
func HueStops() []Stop {
	return []Stop{
		{0, RGB(255, 0, 0)},
		{1.0 / 6, RGB(255, 255, 0)},
		{2.0 / 6, RGB(0, 255, 0)},
		{3.0 / 6, RGB(0, 255, 255)},
		{4.0 / 6, RGB(0, 0, 255)},
		{5.0 / 6, RGB(255, 0, 255)},
		{1, RGB(255, 0, 0)},
	}
}

// Wedge is one filled pie slice of a sweep.
type Wedge struct {
	Start, End float64
	R, G, B    uint8
	A          float64
}

// NRGBA returns the wedge fill color.
func (w Wedge) NRGBA() color.NRGBA {
	return color.NRGBA{R: w.R, G: w.G, B: w.B, A: uint8(math.Round(clampUnit(w.A) * 255))}
}

// Target is a surface that can fill pie wedges.
type Target interface {
	FillWedge(cx, cy, radius, a0, a1 float64, c color.Color)
}

// Conical is an angular gradient. Stops must be ordered by ascending offset.
type Conical struct {
	stops []Stop
}

// NewConical creates a conical gradient from the given stops. The slice is
// copied.
func NewConical(stops ...Stop) *Conical {
	return &Conical{stops: append([]Stop(nil), stops...)}
}

// AddColorStop appends a stop.
func (g *Conical) AddColorStop(offset float64, c Color) {
	g.stops = append(g.stops, Stop{Offset: offset, Color: c})
}

// Stops returns a copy of the stops.
func (g *Conical) Stops() []Stop {
	return append([]Stop(nil), g.stops...)
}

// Fill paints the sweep centered at (cx, cy) onto dst.
func (g *Conical) Fill(dst Target, cx, cy, radius, start, end float64, anticlockwise bool) {
	for _, w := range g.Wedges(start, end, anticlockwise) {
		dst.FillWedge(cx, cy, radius, w.Start-SeamOverlap, w.End, w.NRGBA())
	}
}

// Wedges computes the wedge sequence of a sweep from start to end without
// drawing it. Wedge k covers [start+k°, start+(k+1)°]; the nominal start is
// returned, Fill applies the seam overlap.
func (g *Conical) Wedges(start, end float64, anticlockwise bool) []Wedge {
	stops := g.stops
	start, end = normalizeAngle(start), normalizeAngle(end)
	if anticlockwise {
		start, end = end, start
		stops = reversed(stops)
	}
	if start >= end || math.Abs(start-end) < angleEpsilon {
		end += 2 * math.Pi
	}

	switch len(stops) {
	case 0:
		return nil
	case 1:
		c := stops[0].Color
		return []Wedge{{
			Start: start, End: end,
			R: truncChannel(c.R), G: truncChannel(c.G), B: truncChannel(c.B),
			A: c.Alpha(),
		}}
	}

	totalDeg := (end - start) * 180 / math.Pi
	wedges := make([]Wedge, 0, int(math.Ceil(totalDeg)))
	next := 0
	for k := 0; float64(k)/totalDeg < 1; k++ {
		i := float64(k) / totalDeg
		for next < len(stops) && i >= stops[next].Offset {
			next++
		}
		a0 := start + float64(k)*StepAngle
		w := Wedge{Start: a0, End: a0 + StepAngle}
		switch next {
		case 0:
			w.R, w.G, w.B, w.A = solid(stops[0].Color)
		case len(stops):
			w.R, w.G, w.B, w.A = solid(stops[len(stops)-1].Color)
		default:
			w.R, w.G, w.B, w.A = interpolate(stops[next-1], stops[next], i)
		}
		wedges = append(wedges, w)
	}
	return wedges
}

func solid(c Color) (r, g, b uint8, a float64) {
	return truncChannel(c.R), truncChannel(c.G), truncChannel(c.B), c.Alpha()
}

func interpolate(prev, next Stop, i float64) (r, g, b uint8, a float64) {
	t := (i - prev.Offset) / (next.Offset - prev.Offset)
	c1, c2 := prev.Color, next.Color
	r = truncChannel((c2.R-c1.R)*t + c1.R)
	g = truncChannel((c2.G-c1.G)*t + c1.G)
	b = truncChannel((c2.B-c1.B)*t + c1.B)
	a1 := c1.Alpha()
	a = (c2.Alpha()-a1)*t + a1
	return r, g, b, a
}

// truncChannel truncates toward zero and keeps the low eight bits, so
// out-of-range values wrap rather than saturate.
func truncChannel(v float64) uint8 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return uint8(int64(math.Trunc(v)) & 255)
}

// reversed returns the stops in reverse order with mirrored offsets.
func reversed(stops []Stop) []Stop {
	out := make([]Stop, len(stops))
	for i, s := range stops {
		out[len(stops)-1-i] = Stop{Offset: 1 - s.Offset, Color: s.Color}
	}
	return out
}

func normalizeAngle(a float64) float64 {
	if math.IsNaN(a) || math.IsInf(a, 0) {
		return 0
	}
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	if a >= 2*math.Pi {
		a = 0
	}
	return a
}

func clampUnit(x float64) float64 {
	return math.Max(0, math.Min(1, x))
}
