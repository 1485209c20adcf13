package colors

import (
	"fmt"
	"math"
	"strconv"
)

// Hex returns the "#rrggbb" form of c. Alpha is not represented.
func (c Color) Hex() string {
	return c.colorful().Hex()
}

// RGBString returns "rgb(r, g, b)" for opaque colors and
// "rgba(r, g, b, a)" otherwise.
func (c Color) RGBString() string {
	r, g, b := c.RGB()
	a := roundAlpha(c.A)
	if a == 1 {
		return fmt.Sprintf("rgb(%d, %d, %d)", r, g, b)
	}
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", r, g, b, formatAlpha(a))
}

// HSLString returns "hsl(h, s%, l%)" for opaque colors and
// "hsla(h, s%, l%, a)" otherwise.
func (c Color) HSLString() string {
	h, s, l := c.HSL()
	hi := int(math.Round(h)) % 360
	si := int(math.Round(s * 100))
	li := int(math.Round(l * 100))
	a := roundAlpha(c.A)
	if a == 1 {
		return fmt.Sprintf("hsl(%d, %d%%, %d%%)", hi, si, li)
	}
	return fmt.Sprintf("hsla(%d, %d%%, %d%%, %s)", hi, si, li, formatAlpha(a))
}

// HSVString returns "hsv(h, s%, v%)" or "hsva(h, s%, v%, a)".
func (c Color) HSVString() string {
	hi := int(math.Round(c.H)) % 360
	si := int(math.Round(c.S * 100))
	vi := int(math.Round(c.V * 100))
	a := roundAlpha(c.A)
	if a == 1 {
		return fmt.Sprintf("hsv(%d, %d%%, %d%%)", hi, si, vi)
	}
	return fmt.Sprintf("hsva(%d, %d%%, %d%%, %s)", hi, si, vi, formatAlpha(a))
}

// String implements fmt.Stringer using the rgb form.
func (c Color) String() string {
	return c.RGBString()
}

// roundAlpha rounds to two decimals, the precision used in every string form.
func roundAlpha(a float64) float64 {
	return math.Round(a*100) / 100
}

func formatAlpha(a float64) string {
	return strconv.FormatFloat(a, 'f', -1, 64)
}
