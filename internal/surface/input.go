package surface

// EventType is the phase of a pointer event.
type EventType int

const (
	// Press is a mouse-down or touch-start.
	Press EventType = iota
	// Move is a mouse-move or touch-move.
	Move
	// Release is a mouse-up or touch-end.
	Release
)

func (t EventType) String() string {
	switch t {
	case Press:
		return "press"
	case Move:
		return "move"
	case Release:
		return "release"
	}
	return "unknown"
}

// Touch is one contact point of a touch event.
type Touch struct {
	ClientX, ClientY float64
}

// PointerEvent is a mouse or touch event in client (window) coordinates.
// When Touches is non-empty the first touch point is used.
type PointerEvent struct {
	Type             EventType
	ClientX, ClientY float64
	Touches          []Touch

	defaultPrevented bool
	stopped          bool
}

// Client returns the effective client coordinates of the event.
func (e *PointerEvent) Client() (x, y float64) {
	if len(e.Touches) > 0 {
		return e.Touches[0].ClientX, e.Touches[0].ClientY
	}
	return e.ClientX, e.ClientY
}

// PreventDefault marks the host's default action as suppressed.
func (e *PointerEvent) PreventDefault() { e.defaultPrevented = true }

// DefaultPrevented reports whether PreventDefault was called.
func (e *PointerEvent) DefaultPrevented() bool { return e.defaultPrevented }

// StopImmediatePropagation stops delivery to any remaining listener.
func (e *PointerEvent) StopImmediatePropagation() { e.stopped = true }

// PropagationStopped reports whether StopImmediatePropagation was called.
func (e *PointerEvent) PropagationStopped() bool { return e.stopped }

// Listener handles a pointer event.
type Listener func(e *PointerEvent)

// Cursor is the pointer appearance over an element.
type Cursor int

const (
	// CursorCrosshair is shown while idle.
	CursorCrosshair Cursor = iota
	// CursorNone hides the pointer during a drag.
	CursorNone
)

func (c Cursor) String() string {
	if c == CursorNone {
		return "none"
	}
	return "crosshair"
}

// listeners is an ordered set of listeners addressed by handle.
type listeners struct {
	next  int
	items []listenerEntry
}

type listenerEntry struct {
	id   int
	fn   Listener
	once bool
}

func (l *listeners) add(fn Listener, once bool) int {
	l.next++
	l.items = append(l.items, listenerEntry{id: l.next, fn: fn, once: once})
	return l.next
}

func (l *listeners) remove(id int) {
	for i, it := range l.items {
		if it.id == id {
			l.items = append(l.items[:i:i], l.items[i+1:]...)
			return
		}
	}
}

// dispatch calls a snapshot of the listeners in registration order. One-shot
// listeners are removed before they run.
func (l *listeners) dispatch(e *PointerEvent) {
	snapshot := append([]listenerEntry(nil), l.items...)
	for _, it := range snapshot {
		if it.once {
			l.remove(it.id)
		}
	}
	for _, it := range snapshot {
		if e.stopped {
			return
		}
		it.fn(e)
	}
}

// Element is the on-screen placement of a surface. The host calls Press when
// a press lands inside it.
type Element struct {
	origin Point
	extent Point
	cursor Cursor
	press  listeners
}

// NewElement creates a Size by Size element whose top-left corner is at
// origin in client coordinates.
func NewElement(origin Point) *Element {
	return &Element{origin: origin, extent: Point{X: Size, Y: Size}}
}

// NewElementExtent creates an element with an explicit on-screen extent.
// Single-axis strips are usually shown narrower than Size.
func NewElementExtent(origin, extent Point) *Element {
	return &Element{origin: origin, extent: extent}
}

// Origin returns the client-space top-left corner of the element.
func (el *Element) Origin() Point { return el.origin }

// SetOrigin moves the element.
func (el *Element) SetOrigin(p Point) { el.origin = p }

// Extent returns the on-screen width and height of the element.
func (el *Element) Extent() Point { return el.extent }

// Cursor returns the current cursor.
func (el *Element) Cursor() Cursor { return el.cursor }

// SetCursor changes the cursor.
func (el *Element) SetCursor(c Cursor) { el.cursor = c }

// Contains reports whether a client coordinate falls inside the element.
func (el *Element) Contains(x, y float64) bool {
	return x >= el.origin.X && x < el.origin.X+el.extent.X &&
		y >= el.origin.Y && y < el.origin.Y+el.extent.Y
}

// OnPress registers a press listener and returns its remover.
func (el *Element) OnPress(fn Listener) (off func()) {
	id := el.press.add(fn, false)
	return func() { el.press.remove(id) }
}

// Press delivers a press event to the element's listeners.
func (el *Element) Press(e *PointerEvent) {
	el.press.dispatch(e)
}

// PressListeners returns the number of registered press listeners.
func (el *Element) PressListeners() int { return len(el.press.items) }

// Dispatcher is the window-level event target. Move and release listeners
// live here so a drag keeps tracking after the pointer leaves the surface.
type Dispatcher struct {
	move    listeners
	release listeners
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

// OnMove registers a move listener and returns its remover.
func (d *Dispatcher) OnMove(fn Listener) (off func()) {
	id := d.move.add(fn, false)
	return func() { d.move.remove(id) }
}

// OnceRelease registers a listener that runs for the next release only.
func (d *Dispatcher) OnceRelease(fn Listener) (off func()) {
	id := d.release.add(fn, true)
	return func() { d.release.remove(id) }
}

// Dispatch delivers a window-level move or release event. Press events are
// delivered to elements, not here.
func (d *Dispatcher) Dispatch(e *PointerEvent) {
	switch e.Type {
	case Move:
		d.move.dispatch(e)
	case Release:
		d.release.dispatch(e)
	}
}

// Listeners returns the number of registered move and release listeners.
func (d *Dispatcher) Listeners() int {
	return len(d.move.items) + len(d.release.items)
}
