// Package surface implements the interactive gradient surfaces of the color
// picker: how each one is drawn from the current color, how a pointer
// position maps back to a color, where the marker sits, and how press, move
// and release events drive a drag gesture.
//
// All types in this package are meant to be used from a single goroutine,
// the host's UI loop. Nothing here blocks or locks.
package surface

import (
	"errors"
	"fmt"
	"strings"
)

// Size is the side of every surface in pixels, one unit per 8-bit channel
// value.
const Size = 256

// ErrUnknownKind is returned for an unrecognized surface name or kind.
var ErrUnknownKind = errors.New("unknown surface kind")

// Kind identifies a surface variant.
type Kind int

const (
	// Hue is the vertical full-spectrum hue strip.
	Hue Kind = iota
	// Alpha is the vertical opacity strip.
	Alpha
	// Spectrum is the saturation/value square for the current hue.
	Spectrum
	// Wheel is the hue/saturation disk.
	Wheel
	// Value is the vertical brightness strip.
	Value
)

var kindNames = [...]string{
	Hue:      "hue",
	Alpha:    "alpha",
	Spectrum: "spectrum",
	Wheel:    "wheel",
	Value:    "value",
}

// Kinds returns every surface kind in declaration order.
func Kinds() []Kind {
	return []Kind{Hue, Alpha, Spectrum, Wheel, Value}
}

// String returns the lower-case surface name.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// IgnoresX reports whether only the vertical coordinate matters.
func (k Kind) IgnoresX() bool {
	return k == Hue || k == Alpha || k == Value
}

// ParseKind returns the kind with the given name, case-insensitively.
func ParseKind(name string) (Kind, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for k, n := range kindNames {
		if n == name {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, name)
}
