// Package tabs holds the picker's tab registry: which panes exist, what
// they contain and the order they are shown in.
package tabs

import (
	"fmt"
	"sync"

	"github.com/opd-ai/go-colorpicker/internal/surface"
)

// Error types reported by TabError.
const (
	ErrorTypeName    = "Name Error"
	ErrorTypeContent = "Content Error"
	ErrorTypeOrder   = "Order Error"
)

// TabError describes an invalid tab definition or order.
type TabError struct {
	Type    string
	Message string
}

func (e *TabError) Error() string {
	return fmt.Sprintf("tab: %s - %s", e.Type, e.Message)
}

// Content is what a tab shows.
type Content int

const (
	// Surfaces shows gradient surfaces side by side.
	Surfaces Content = iota
	// Sliders shows numeric red, green, blue and alpha controls.
	Sliders
	// Palette shows a fixed set of swatches.
	Palette
	// History shows the recently picked colors.
	History
	// MaterialPalette shows the Material Design groups as a scrolling list.
	MaterialPalette
)

// Tab is one pane of the picker.
type Tab struct {
	Name     string
	Icon     string
	Content  Content
	Surfaces []surface.Kind
}

// Validate checks that the tab has a name and, for surface tabs, at least
// one surface.
func (t Tab) Validate() error {
	if t.Name == "" {
		return &TabError{Type: ErrorTypeName, Message: "a non empty tab name must be specified"}
	}
	if t.Content == Surfaces && len(t.Surfaces) == 0 {
		return &TabError{Type: ErrorTypeContent, Message: fmt.Sprintf("tab %q has no surfaces", t.Name)}
	}
	return nil
}

// Visible returns the surfaces to show. The alpha strip is left out when
// the alpha channel is disabled.
func (t Tab) Visible(alphaChannel bool) []surface.Kind {
	out := make([]surface.Kind, 0, len(t.Surfaces))
	for _, k := range t.Surfaces {
		if k == surface.Alpha && !alphaChannel {
			continue
		}
		out = append(out, k)
	}
	return out
}

// Built-in tabs.
var (
	SpectrumTab = Tab{
		Name: "spectrum", Icon: "gradient.svg", Content: Surfaces,
		Surfaces: []surface.Kind{surface.Spectrum, surface.Hue, surface.Alpha},
	}
	WheelTab = Tab{
		Name: "wheel", Icon: "wheel.svg", Content: Surfaces,
		Surfaces: []surface.Kind{surface.Wheel, surface.Value, surface.Alpha},
	}
	SlidersTab = Tab{Name: "colorSliders", Icon: "tune.svg", Content: Sliders}
	PaletteTab = Tab{Name: "palette", Icon: "view_module.svg", Content: Palette}
	HistoryTab = Tab{Name: "history", Icon: "history.svg", Content: History}

	MaterialPaletteTab = Tab{
		Name: "materialPalette", Icon: "view_headline.svg", Content: MaterialPalette,
	}
)

// Position says where Add inserts a tab into the display order.
type Position struct {
	mode  int
	index int
}

const (
	modeEnd = iota
	modeStart
	modeIndex
	modeSkip
)

var (
	// End appends to the order.
	End = Position{mode: modeEnd}
	// Start prepends to the order.
	Start = Position{mode: modeStart}
	// Skip registers the tab without showing it.
	Skip = Position{mode: modeSkip}
)

// At inserts before index i. An index past the end appends; a negative
// index counts from the end.
func At(i int) Position {
	return Position{mode: modeIndex, index: i}
}

// Registry maps tab names to tabs and keeps the display order. Only ordered
// tabs are shown.
type Registry struct {
	mu    sync.RWMutex
	tabs  map[string]Tab
	order []string
}

// NewRegistry returns a registry with every built-in tab registered and
// spectrum then colorSliders ordered.
func NewRegistry() *Registry {
	r := &Registry{tabs: make(map[string]Tab)}
	_ = r.Add(SpectrumTab, End)
	_ = r.Add(SlidersTab, End)
	_ = r.Add(WheelTab, Skip)
	_ = r.Add(PaletteTab, Skip)
	_ = r.Add(MaterialPaletteTab, Skip)
	_ = r.Add(HistoryTab, Skip)
	return r
}

// Add registers t, replacing a tab of the same name, and inserts it into the
// order at pos unless it is already ordered.
func (r *Registry) Add(t Tab, pos Position) error {
	if err := t.Validate(); err != nil {
		return err
	}
	t.Surfaces = append([]surface.Kind(nil), t.Surfaces...)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.tabs[t.Name] = t
	if pos.mode == modeSkip || indexOf(r.order, t.Name) >= 0 {
		return nil
	}
	switch pos.mode {
	case modeStart:
		r.order = append([]string{t.Name}, r.order...)
	case modeIndex:
		i := pos.index
		if i < 0 {
			i = max(len(r.order)+i, 0)
		}
		i = min(i, len(r.order))
		r.order = append(r.order[:i], append([]string{t.Name}, r.order[i:]...)...)
	default:
		r.order = append(r.order, t.Name)
	}
	return nil
}

// Get returns the tab with the given name.
func (r *Registry) Get(name string) (Tab, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tabs[name]
	return t, ok
}

// Ordered returns the shown tabs in display order.
func (r *Registry) Ordered() []Tab {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Tab, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.tabs[name])
	}
	return out
}

// Names returns the display order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.order...)
}

// Index returns the display position of name, or -1.
func (r *Registry) Index(name string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return indexOf(r.order, name)
}

// SetOrder replaces the display order. Every name must be registered and
// appear once.
func (r *Registry) SetOrder(names []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		if _, ok := r.tabs[n]; !ok {
			return &TabError{Type: ErrorTypeOrder, Message: fmt.Sprintf("unknown tab %q", n)}
		}
		if seen[n] {
			return &TabError{Type: ErrorTypeOrder, Message: fmt.Sprintf("tab %q listed twice", n)}
		}
		seen[n] = true
	}
	r.order = append([]string(nil), names...)
	return nil
}

func indexOf(list []string, s string) int {
	for i, v := range list {
		if v == s {
			return i
		}
	}
	return -1
}
