package surface

// Attachment is a renderer placed on screen: its element, its pointer
// controller and whatever else must be released when it goes away.
type Attachment struct {
	Renderer
	Element    *Element
	controller *Controller
	onDetach   []func()
	detached   bool
}

// Attach creates the surface of kind k, binds pointer input and draws it
// once from the current state.
func Attach(k Kind, state State, pub Publisher, el *Element, win *Dispatcher, marker *Marker) (*Attachment, error) {
	r, err := New(k, state, marker)
	if err != nil {
		return nil, err
	}
	ctl := NewController(r, el, win, pub)
	ctl.Bind()

	r.Draw()
	r.OnColorSet()

	return &Attachment{Renderer: r, Element: el, controller: ctl}, nil
}

// Controller returns the pointer controller of the attachment.
func (a *Attachment) Controller() *Controller { return a.controller }

// OnDetach registers fn to run on Detach.
func (a *Attachment) OnDetach(fn func()) {
	a.onDetach = append(a.onDetach, fn)
}

// Detach unbinds every listener and runs the detach hooks. It is safe to
// call more than once.
func (a *Attachment) Detach() {
	if a.detached {
		return
	}
	a.detached = true
	a.controller.Unbind()
	for i := len(a.onDetach) - 1; i >= 0; i-- {
		a.onDetach[i]()
	}
	a.onDetach = nil
}

// Detached reports whether Detach has run.
func (a *Attachment) Detached() bool { return a.detached }
