//go:build linux

package render

import (
	"sync"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

// WindowHintApplier sets EWMH state hints on the picker window. It caches
// the X11 connection and interned atoms.
type WindowHintApplier struct {
	mu       sync.Mutex
	conn     *xgb.Conn
	atoms    map[string]xproto.Atom
	initDone bool
}

var globalHintApplier = &WindowHintApplier{
	atoms: make(map[string]xproto.Atom),
}

// ApplyWindowHints adds the requested hints to the _NET_WM_STATE of the
// active window. Call it once the window is mapped, from the first Update.
// Without an X11 display it does nothing.
func ApplyWindowHints(h WindowHints) error {
	if h.Empty() {
		return nil
	}
	return globalHintApplier.Apply(h)
}

// Apply sets the requested hints on the active X11 window.
func (a *WindowHintApplier) Apply(h WindowHints) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.ensureInit(); err != nil {
		return nil // no X server, e.g. Wayland without XWayland
	}

	window, err := a.getActiveWindow()
	if err != nil || window == xproto.WindowNone {
		return nil
	}

	var add []xproto.Atom
	for _, name := range h.StateAtoms() {
		if atom, err := a.getAtom(name); err == nil {
			add = append(add, atom)
		}
	}
	if len(add) == 0 {
		return nil
	}

	stateAtom, err := a.getAtom("_NET_WM_STATE")
	if err != nil {
		return nil
	}
	atomAtom, err := a.getAtom("ATOM")
	if err != nil {
		return nil
	}

	current, err := a.getWindowState(window, stateAtom)
	if err != nil {
		current = nil
	}
	final := mergeAtoms(current, add)

	data := make([]byte, len(final)*4)
	for i, atom := range final {
		xgb.Put32(data[i*4:], uint32(atom))
	}
	xproto.ChangeProperty(a.conn, xproto.PropModeReplace, window,
		stateAtom, atomAtom, 32, uint32(len(final)), data)
	return nil
}

// mergeAtoms appends the atoms of add missing from current, keeping order.
func mergeAtoms(current, add []xproto.Atom) []xproto.Atom {
	seen := make(map[xproto.Atom]bool, len(current)+len(add))
	out := make([]xproto.Atom, 0, len(current)+len(add))
	for _, list := range [][]xproto.Atom{current, add} {
		for _, atom := range list {
			if !seen[atom] {
				seen[atom] = true
				out = append(out, atom)
			}
		}
	}
	return out
}

func (a *WindowHintApplier) ensureInit() error {
	if a.initDone {
		return nil
	}
	conn, err := xgb.NewConn()
	if err != nil {
		return err
	}
	a.conn = conn
	a.initDone = true
	return nil
}

// getAtom retrieves or interns an X11 atom by name.
func (a *WindowHintApplier) getAtom(name string) (xproto.Atom, error) {
	if atom, ok := a.atoms[name]; ok {
		return atom, nil
	}
	reply, err := xproto.InternAtom(a.conn, false, uint16(len(name)), name).Reply()
	if err != nil {
		return 0, err
	}
	a.atoms[name] = reply.Atom
	return reply.Atom, nil
}

// getActiveWindow returns _NET_ACTIVE_WINDOW, falling back to the input
// focus.
func (a *WindowHintApplier) getActiveWindow() (xproto.Window, error) {
	setup := xproto.Setup(a.conn)
	if len(setup.Roots) == 0 {
		return xproto.WindowNone, nil
	}
	root := setup.Roots[0].Root

	if activeAtom, err := a.getAtom("_NET_ACTIVE_WINDOW"); err == nil {
		reply, err := xproto.GetProperty(a.conn, false, root, activeAtom,
			xproto.AtomWindow, 0, 1).Reply()
		if err == nil && reply != nil && len(reply.Value) >= 4 {
			return xproto.Window(xgb.Get32(reply.Value)), nil
		}
	}

	focus, err := xproto.GetInputFocus(a.conn).Reply()
	if err != nil {
		return xproto.WindowNone, err
	}
	return focus.Focus, nil
}

func (a *WindowHintApplier) getWindowState(window xproto.Window, stateAtom xproto.Atom) ([]xproto.Atom, error) {
	atomAtom, err := a.getAtom("ATOM")
	if err != nil {
		return nil, err
	}
	reply, err := xproto.GetProperty(a.conn, false, window, stateAtom,
		atomAtom, 0, 256).Reply()
	if err != nil || reply == nil {
		return nil, err
	}
	atoms := make([]xproto.Atom, 0, len(reply.Value)/4)
	for i := 0; i+4 <= len(reply.Value); i += 4 {
		atoms = append(atoms, xproto.Atom(xgb.Get32(reply.Value[i:])))
	}
	return atoms, nil
}

// Close releases the X11 connection.
func (a *WindowHintApplier) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.conn != nil {
		a.conn.Close()
		a.conn = nil
	}
	a.initDone = false
	a.atoms = make(map[string]xproto.Atom)
}

// CloseWindowHints releases the connection used to apply hints.
func CloseWindowHints() {
	globalHintApplier.Close()
}
