package surface

import "math"

// Controller turns press, move and release events on one surface into color
// samples. It is idle until a press on its element, drags until the next
// window-level release, then returns to idle.
type Controller struct {
	r   Renderer
	el  *Element
	win *Dispatcher
	pub Publisher

	offset     Point
	dragging   bool
	offPress   func()
	offMove    func()
	offRelease func()
}

// NewController creates an unbound controller.
func NewController(r Renderer, el *Element, win *Dispatcher, pub Publisher) *Controller {
	return &Controller{r: r, el: el, win: win, pub: pub}
}

// Bind starts listening for presses on the element.
func (c *Controller) Bind() {
	if c.offPress != nil {
		return
	}
	c.el.SetCursor(CursorCrosshair)
	c.offPress = c.el.OnPress(c.onPress)
}

// Unbind removes every listener the controller registered, including those
// of a drag in progress.
func (c *Controller) Unbind() {
	c.endDrag()
	if c.offPress != nil {
		c.offPress()
		c.offPress = nil
	}
}

// Dragging reports whether a drag gesture is in progress.
func (c *Controller) Dragging() bool { return c.dragging }

func (c *Controller) onPress(e *PointerEvent) {
	e.PreventDefault()
	e.StopImmediatePropagation()

	// A press without a matching release restarts the gesture.
	c.endDrag()

	c.el.SetCursor(CursorNone)
	c.offset = c.el.Origin()
	c.dragging = true
	c.offMove = c.win.OnMove(c.onMove)
	c.offRelease = c.win.OnceRelease(func(*PointerEvent) {
		c.offRelease = nil
		c.endDrag()
	})

	c.onMove(e)
}

func (c *Controller) onMove(e *PointerEvent) {
	p := c.coordinates(e)
	c.pub.Publish(c.r.ColorAt(p.X, p.Y))
	c.r.SetMarkerCenter(p.X, p.Y)
}

func (c *Controller) endDrag() {
	if c.offMove != nil {
		c.offMove()
		c.offMove = nil
	}
	if c.offRelease != nil {
		c.offRelease()
		c.offRelease = nil
	}
	if c.dragging {
		c.el.SetCursor(CursorCrosshair)
	}
	c.dragging = false
}

// coordinates converts the event position to an adjusted surface
// coordinate, rounding half up to whole pixels.
func (c *Controller) coordinates(e *PointerEvent) Point {
	cx, cy := e.Client()
	x := math.Floor(cx - c.offset.X + 0.5)
	y := math.Floor(cy - c.offset.Y + 0.5)
	return c.r.Adjust(x, y)
}
