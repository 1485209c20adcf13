package render

// WindowHints are the EWMH window state hints the picker can request.
type WindowHints struct {
	KeepAbove   bool
	SkipTaskbar bool
	SkipPager   bool
}

// Empty reports whether no hint is requested.
func (h WindowHints) Empty() bool {
	return !h.KeepAbove && !h.SkipTaskbar && !h.SkipPager
}

// StateAtoms returns the _NET_WM_STATE atom names for the requested hints.
func (h WindowHints) StateAtoms() []string {
	var names []string
	if h.KeepAbove {
		names = append(names, "_NET_WM_STATE_ABOVE")
	}
	if h.SkipTaskbar {
		names = append(names, "_NET_WM_STATE_SKIP_TASKBAR")
	}
	if h.SkipPager {
		names = append(names, "_NET_WM_STATE_SKIP_PAGER")
	}
	return names
}
