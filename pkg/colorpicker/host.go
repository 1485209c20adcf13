package colorpicker

import (
	"github.com/opd-ai/go-colorpicker/internal/surface"
	"github.com/opd-ai/go-colorpicker/internal/tabs"
)

// The methods below serve the picker window.

// Version changes whenever the color, the notation or the history changes.
func (p *pickerImpl) Version() uint64 {
	return p.state.version.Load()
}

// Tabs returns the shown tabs in display order.
func (p *pickerImpl) Tabs() []tabs.Tab {
	return p.tabs.Ordered()
}

// DefaultTab returns the configured first tab.
func (p *pickerImpl) DefaultTab() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.cfg.Picker.DefaultTab
}

// AlphaChannel reports whether the alpha strip is shown.
func (p *pickerImpl) AlphaChannel() bool {
	return p.state.alphaChannel()
}

// Attach creates a surface bound to the picker's color.
func (p *pickerImpl) Attach(k surface.Kind, el *surface.Element) (*surface.Attachment, error) {
	att, err := p.state.attach(k, el)
	if err != nil {
		return nil, err
	}
	p.metrics.SetAttachedSurfaces(p.state.attached())
	return att, nil
}

// Detach removes a surface.
func (p *pickerImpl) Detach(a *surface.Attachment) {
	p.state.detach(a)
	p.metrics.SetAttachedSurfaces(p.state.attached())
}

// Pointer delivers a pointer event to the attached surfaces.
func (p *pickerImpl) Pointer(e *surface.PointerEvent) {
	p.state.pointer(e)
}

// WithSurfaces runs fn while no surface can change.
func (p *pickerImpl) WithSurfaces(fn func()) {
	p.state.locked(fn)
}
