package colorpicker

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/opd-ai/go-colorpicker/internal/surface"
)

// Export renders every surface of every shown tab into dir as
// <tab>-<surface>.png. The alpha strip is skipped while the alpha channel
// is disabled.
func (p *pickerImpl) Export(dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		ce := NewCategorizedError(fmt.Errorf("export: %w", err), ErrorCategoryIO, SeverityError)
		p.notifyError(ce)
		return nil, ce
	}

	alpha := p.AlphaChannel()
	var written []string
	for _, t := range p.Tabs() {
		for _, k := range t.Visible(alpha) {
			path := filepath.Join(dir, fmt.Sprintf("%s-%s.png", t.Name, k))
			if err := p.exportSurface(k, path); err != nil {
				ce := NewCategorizedError(fmt.Errorf("export %s: %w", path, err), ErrorCategoryIO, SeverityError)
				p.notifyError(ce)
				return written, ce
			}
			p.metrics.IncrementSurfaceExports()
			written = append(written, path)
		}
	}
	p.logger().Info("surfaces exported", "dir", dir, "count", len(written))
	return written, nil
}

func (p *pickerImpl) exportSurface(k surface.Kind, path string) (err error) {
	att, err := p.Attach(k, surface.NewElement(surface.Point{}))
	if err != nil {
		return err
	}
	s := &Surface{p: p, att: att}
	defer s.Detach()

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return s.WritePNG(f)
}
