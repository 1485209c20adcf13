// Package notation keeps the registry of text notations a picked color can
// be shown and typed in: hex, rgb and hsl by default.
package notation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/opd-ai/go-colorpicker/internal/colors"
)

// ErrInvalidNotation is returned when a notation lacks a name or formatter.
var ErrInvalidNotation = errors.New("invalid notation")

// Notation converts a color to one text format and recognizes strings
// written in it.
type Notation struct {
	Name string
	// Format renders a color in this notation.
	Format func(colors.Color) string
	// Test reports whether a string is written in this notation.
	Test func(string) bool
	// Disabled reports whether the notation cannot represent a color.
	// A nil Disabled never disables.
	Disabled func(colors.Color) bool
}

// IsDisabled reports whether n cannot represent c.
func (n Notation) IsDisabled(c colors.Color) bool {
	return n.Disabled != nil && n.Disabled(c)
}

// Matches reports whether s is written in this notation.
func (n Notation) Matches(s string) bool {
	return n.Test != nil && n.Test(s)
}

var hexExp = regexp.MustCompile(`#[a-fA-F0-9]{3,6}`)

func containsFold(sub string) func(string) bool {
	return func(s string) bool {
		return strings.Contains(strings.ToLower(s), sub)
	}
}

// Hex is "#rrggbb". It cannot show transparency.
var Hex = Notation{
	Name:   "hex",
	Format: colors.Color.Hex,
	Test:   hexExp.MatchString,
	Disabled: func(c colors.Color) bool {
		return c.NRGBA().A != 255
	},
}

// RGB is "rgb(r, g, b)" or "rgba(r, g, b, a)".
var RGB = Notation{
	Name:   "rgb",
	Format: colors.Color.RGBString,
	Test:   containsFold("rgb"),
}

// HSL is "hsl(h, s%, l%)" or "hsla(h, s%, l%, a)".
var HSL = Notation{
	Name:   "hsl",
	Format: colors.Color.HSLString,
	Test:   containsFold("hsl"),
}

// Registry holds notations by name plus the display order.
type Registry struct {
	mu         sync.RWMutex
	byName     map[string]Notation
	registered []string
	order      []string
}

// NewRegistry returns a registry holding hex, rgb and hsl in that order.
func NewRegistry() *Registry {
	r := &Registry{byName: make(map[string]Notation)}
	for _, n := range []Notation{Hex, RGB, HSL} {
		_ = r.Add(n, true)
	}
	return r
}

// Add registers n, replacing any notation with the same name. When
// pushToOrder is set and the name is not yet ordered it is appended to the
// display order.
func (r *Registry) Add(n Notation, pushToOrder bool) error {
	if n.Name == "" || n.Format == nil {
		return fmt.Errorf("%w: name and format are required", ErrInvalidNotation)
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byName[n.Name]; !ok {
		r.registered = append(r.registered, n.Name)
	}
	r.byName[n.Name] = n
	if pushToOrder && indexOf(r.order, n.Name) < 0 {
		r.order = append(r.order, n.Name)
	}
	return nil
}

// Get returns the notation with the given name.
func (r *Registry) Get(name string) (Notation, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n, ok := r.byName[name]
	return n, ok
}

// At returns the notation at position i of the display order.
func (r *Registry) At(i int) (Notation, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if i < 0 || i >= len(r.order) {
		return Notation{}, false
	}
	n, ok := r.byName[r.order[i]]
	return n, ok
}

// Index returns the display position of name, or -1.
func (r *Registry) Index(name string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return indexOf(r.order, name)
}

// All returns the ordered notations.
func (r *Registry) All() []Notation {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Notation, 0, len(r.order))
	for _, name := range r.order {
		if n, ok := r.byName[name]; ok {
			out = append(out, n)
		}
	}
	return out
}

// Names returns the ordered notation names.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.order...)
}

// Select returns the notation a color string is written in. Every
// registered notation is tested in registration order and the last match
// wins; with no match the first ordered notation is returned.
func (r *Registry) Select(s string) Notation {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var selected Notation
	if len(r.order) > 0 {
		selected = r.byName[r.order[0]]
	}
	for _, name := range r.registered {
		if n := r.byName[name]; n.Matches(s) {
			selected = n
		}
	}
	return selected
}

func indexOf(list []string, s string) int {
	for i, v := range list {
		if v == s {
			return i
		}
	}
	return -1
}
