package colorpicker

import (
	"sync"
	"sync/atomic"

	"github.com/opd-ai/go-colorpicker/internal/colors"
	"github.com/opd-ai/go-colorpicker/internal/surface"
)

// colorState owns the selected color, the hue cache and the attached
// surfaces. Surfaces are single-goroutine objects, so every call into them
// happens with mu held. Watchers run after mu is released.
type colorState struct {
	mu       sync.Mutex
	color    colors.Color
	hue      float64
	alpha    bool
	marker   float64
	win      *surface.Dispatcher
	atts     []*surface.Attachment
	watchers map[int]func(colors.Color)
	nextID   int
	pending  []colors.Color

	// version grows on every visible change: color, notation, history.
	version atomic.Uint64
	// onChange observes every applied color with mu held.
	onChange func(c colors.Color, sample bool)
}

func newColorState(c colors.Color, alpha bool, markerSize int) *colorState {
	s := &colorState{
		alpha:    alpha,
		marker:   float64(markerSize),
		win:      surface.NewDispatcher(),
		watchers: make(map[int]func(colors.Color)),
	}
	if !alpha {
		c = c.WithAlpha(1)
	}
	s.color, s.hue = c, c.H
	return s
}

// stateView is what surfaces read. Its methods assume mu is held.
type stateView struct{ s *colorState }

func (v stateView) Color() colors.Color { return v.s.color }
func (v stateView) Hue() float64        { return v.s.hue }

// setLocked applies c and lets every surface follow. The hue cache only
// moves here for chromatic colors and pointer samples so a gray color keeps
// the spectrum on its hue. setHSV moves it before calling in.
func (s *colorState) setLocked(c colors.Color, sample bool) colors.Color {
	if !s.alpha {
		c = c.WithAlpha(1)
	}
	if sample || (c.S > 0 && c.V > 0) {
		s.hue = c.H
	}
	s.color = c
	s.version.Add(1)
	for _, a := range s.atts {
		a.OnColorSet()
	}
	if s.onChange != nil {
		s.onChange(c, sample)
	}
	return c
}

// publishLocked is the publisher handed to surface controllers. It runs
// inside pointer with mu held.
func (s *colorState) publishLocked(c colors.Color) {
	s.pending = append(s.pending, s.setLocked(c, true))
}

func (s *colorState) watcherList() []func(colors.Color) {
	if len(s.watchers) == 0 {
		return nil
	}
	ids := make([]int, 0, len(s.watchers))
	for id := range s.watchers {
		ids = append(ids, id)
	}
	// Registration order.
	for i := 1; i < len(ids); i++ {
		for j := i; j > 0 && ids[j] < ids[j-1]; j-- {
			ids[j], ids[j-1] = ids[j-1], ids[j]
		}
	}
	fns := make([]func(colors.Color), len(ids))
	for i, id := range ids {
		fns[i] = s.watchers[id]
	}
	return fns
}

// notify calls every watcher with each color in order.
func notify(fns []func(colors.Color), cs ...colors.Color) {
	for _, c := range cs {
		for _, fn := range fns {
			fn(c)
		}
	}
}

func (s *colorState) current() colors.Color {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.color
}

func (s *colorState) currentHue() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hue
}

// set applies c as a programmatic change, or as a pointer sample when
// sample is true, and notifies watchers.
func (s *colorState) set(c colors.Color, sample bool) colors.Color {
	s.mu.Lock()
	c = s.setLocked(c, sample)
	fns := s.watcherList()
	s.mu.Unlock()
	notify(fns, c)
	return c
}

// setHSV applies an explicit hue, saturation and value, keeping alpha. The
// hue cache takes h even when the result is gray.
func (s *colorState) setHSV(h, sat, v float64) colors.Color {
	s.mu.Lock()
	c := colors.HSVA(h, sat, v, s.color.A)
	s.hue = c.H
	c = s.setLocked(c, false)
	fns := s.watcherList()
	s.mu.Unlock()
	notify(fns, c)
	return c
}

// update applies fn to the current color atomically.
func (s *colorState) update(fn func(colors.Color) colors.Color) colors.Color {
	s.mu.Lock()
	c := s.setLocked(fn(s.color), false)
	fns := s.watcherList()
	s.mu.Unlock()
	notify(fns, c)
	return c
}

// pointer delivers a pointer event. A press goes to the first surface
// under it; moves and releases go to the window dispatcher that drives
// drags. It returns the samples the event published.
func (s *colorState) pointer(e *surface.PointerEvent) []colors.Color {
	s.mu.Lock()
	s.pending = s.pending[:0]
	if e.Type == surface.Press {
		x, y := e.Client()
		for _, a := range s.atts {
			if a.Element.Contains(x, y) {
				a.Element.Press(e)
				break
			}
		}
	} else {
		s.win.Dispatch(e)
	}
	published := append([]colors.Color(nil), s.pending...)
	s.pending = s.pending[:0]
	fns := s.watcherList()
	s.mu.Unlock()

	notify(fns, published...)
	return published
}

func (s *colorState) attach(k surface.Kind, el *surface.Element) (*surface.Attachment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	marker := surface.NewMarker(s.marker, s.marker)
	att, err := surface.Attach(k, stateView{s}, surface.PublisherFunc(s.publishLocked), el, s.win, marker)
	if err != nil {
		return nil, err
	}
	s.atts = append(s.atts, att)
	att.OnDetach(func() {
		for i, a := range s.atts {
			if a == att {
				s.atts = append(s.atts[:i], s.atts[i+1:]...)
				return
			}
		}
	})
	return att, nil
}

func (s *colorState) detach(a *surface.Attachment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a.Detach()
}

func (s *colorState) detachAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for len(s.atts) > 0 {
		s.atts[len(s.atts)-1].Detach()
	}
}

func (s *colorState) attached() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.atts)
}

// locked runs fn with mu held.
func (s *colorState) locked(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn()
}

// configure changes the alpha channel and marker size. Turning the alpha
// channel off makes the current color opaque.
func (s *colorState) configure(alpha bool, markerSize int) {
	s.mu.Lock()
	s.alpha = alpha
	s.marker = float64(markerSize)
	var fns []func(colors.Color)
	var c colors.Color
	changed := !alpha && s.color.A != 1
	if changed {
		c = s.setLocked(s.color, false)
		fns = s.watcherList()
	}
	s.mu.Unlock()
	if changed {
		notify(fns, c)
	}
}

func (s *colorState) alphaChannel() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.alpha
}

func (s *colorState) subscribe(fn func(colors.Color)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	id := s.nextID
	s.watchers[id] = fn
	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.watchers, id)
			s.mu.Unlock()
		})
	}
}

func (s *colorState) bump() {
	s.version.Add(1)
}
