package colors

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// ErrInvalidColor is returned (wrapped) when a color string cannot be parsed.
var ErrInvalidColor = errors.New("invalid color")

// Parse parses a color string. Supported formats:
//   - Named colors: "red", "rebeccapurple", "transparent"
//   - Hex: "#RGB", "#RGBA", "#RRGGBB", "#RRGGBBAA", with or without "#"
//   - "rgb(255, 0, 0)", "rgba(255, 0, 0, 0.5)"
//   - "hsl(120, 100%, 50%)", "hsla(120, 100%, 50%, 0.5)"
//   - "hsv(120, 100%, 100%)", "hsva(120, 100%, 100%, 0.5)"
func Parse(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Color{}, fmt.Errorf("%w: empty string", ErrInvalidColor)
	}
	lower := strings.ToLower(s)

	if lower == "transparent" {
		return HSVA(0, 0, 0, 0), nil
	}
	if rgba, ok := colornames.Map[lower]; ok {
		return RGB(rgba.R, rgba.G, rgba.B), nil
	}

	if strings.HasPrefix(lower, "#") || isHexString(lower) {
		return parseHex(lower)
	}

	name, args, ok := splitFunc(lower)
	if !ok {
		return Color{}, fmt.Errorf("%w: unrecognized format %q", ErrInvalidColor, s)
	}
	switch name {
	case "rgb", "rgba":
		return parseRGBFunc(args, s)
	case "hsl", "hsla":
		return parseHSLFunc(args, s)
	case "hsv", "hsva":
		return parseHSVFunc(args, s)
	}
	return Color{}, fmt.Errorf("%w: unknown function %q", ErrInvalidColor, name)
}

// MustParse parses s and panics on failure.
// Use this only for known-good values in initialization code.
func MustParse(s string) Color {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

func isHexString(s string) bool {
	switch len(s) {
	case 3, 4, 6, 8:
	default:
		return false
	}
	for _, c := range s {
		if !isHexDigit(c) {
			return false
		}
	}
	return true
}

func isHexDigit(c rune) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f')
}

// parseHex parses the 3- and 6-digit forms with colorful.Hex. The 4- and
// 8-digit forms carry alpha in their trailing digits, which are split off
// first.
func parseHex(s string) (Color, error) {
	hex := strings.TrimPrefix(s, "#")
	if !isHexString(hex) {
		return Color{}, fmt.Errorf("%w: bad hex %q", ErrInvalidColor, s)
	}
	a := 1.0
	switch len(hex) {
	case 4, 8:
		n := len(hex) / 4
		digits := hex[len(hex)-n:]
		if n == 1 {
			digits += digits
		}
		v, err := strconv.ParseUint(digits, 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("%w: alpha of %q: %v", ErrInvalidColor, s, err)
		}
		a = float64(v) / 255
		hex = hex[:len(hex)-n]
	}
	c, err := colorful.Hex("#" + hex)
	if err != nil {
		return Color{}, fmt.Errorf("%w: %q: %v", ErrInvalidColor, s, err)
	}
	h, sat, v := c.Clamped().Hsv()
	return HSVA(h, sat, v, a), nil
}

// splitFunc splits "name(a, b, c)" into its name and trimmed arguments.
// Arguments may be separated by commas or whitespace.
func splitFunc(s string) (string, []string, bool) {
	open := strings.IndexByte(s, '(')
	if open <= 0 || !strings.HasSuffix(s, ")") {
		return "", nil, false
	}
	name := strings.TrimSpace(s[:open])
	body := s[open+1 : len(s)-1]
	fields := strings.FieldsFunc(body, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '/'
	})
	return name, fields, true
}

func checkArity(args []string, orig string) error {
	if len(args) != 3 && len(args) != 4 {
		return fmt.Errorf("%w: %q needs 3 or 4 components, got %d", ErrInvalidColor, orig, len(args))
	}
	return nil
}

// parseAlpha accepts "0.5" or "50%"; a missing component means opaque.
func parseAlpha(args []string) (float64, error) {
	if len(args) < 4 {
		return 1, nil
	}
	return parseUnit(args[3], 1)
}

// parseUnit parses a number or percentage. Bare numbers are divided by scale
// so "255" with scale 255 and "100%" both yield 1. Saturation, lightness and
// value use scale 100, so a bare "50" there means 50%.
func parseUnit(s string, scale float64) (float64, error) {
	if strings.HasSuffix(s, "%") {
		v, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
		if err != nil {
			return 0, err
		}
		return v / 100, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	return v / scale, nil
}

func parseRGBFunc(args []string, orig string) (Color, error) {
	if err := checkArity(args, orig); err != nil {
		return Color{}, err
	}
	var ch [3]uint8
	for i := 0; i < 3; i++ {
		v, err := parseUnit(args[i], 255)
		if err != nil {
			return Color{}, fmt.Errorf("%w: component %d of %q: %v", ErrInvalidColor, i, orig, err)
		}
		ch[i] = uint8(clamp01(v)*255 + 0.5)
	}
	a, err := parseAlpha(args)
	if err != nil {
		return Color{}, fmt.Errorf("%w: alpha of %q: %v", ErrInvalidColor, orig, err)
	}
	return RGBA(ch[0], ch[1], ch[2], a), nil
}

func parseHueAndPair(args []string, orig string) (h, x, y, a float64, err error) {
	if err = checkArity(args, orig); err != nil {
		return
	}
	h, err = strconv.ParseFloat(strings.TrimSuffix(args[0], "deg"), 64)
	if err != nil {
		err = fmt.Errorf("%w: hue of %q: %v", ErrInvalidColor, orig, err)
		return
	}
	if x, err = parseUnit(args[1], 100); err != nil {
		err = fmt.Errorf("%w: component 1 of %q: %v", ErrInvalidColor, orig, err)
		return
	}
	if y, err = parseUnit(args[2], 100); err != nil {
		err = fmt.Errorf("%w: component 2 of %q: %v", ErrInvalidColor, orig, err)
		return
	}
	if a, err = parseAlpha(args); err != nil {
		err = fmt.Errorf("%w: alpha of %q: %v", ErrInvalidColor, orig, err)
	}
	return
}

func parseHSLFunc(args []string, orig string) (Color, error) {
	h, s, l, a, err := parseHueAndPair(args, orig)
	if err != nil {
		return Color{}, err
	}
	s, l = clamp01(s), clamp01(l)
	// HSL to HSV keeps the hue, which matters for grays.
	v := l + s*min(l, 1-l)
	sv := 0.0
	if v > 0 {
		sv = 2 * (1 - l/v)
	}
	return HSVA(h, sv, v, a), nil
}

func parseHSVFunc(args []string, orig string) (Color, error) {
	h, s, v, a, err := parseHueAndPair(args, orig)
	if err != nil {
		return Color{}, err
	}
	return HSVA(h, s, v, a), nil
}
