//go:build !noebiten

package colorpicker

import (
	"context"
	"errors"
	"fmt"

	"github.com/opd-ai/go-colorpicker/internal/render"
)

// Verify the window contract at compile time.
var _ render.Host = (*pickerImpl)(nil)

// renderConfig builds the window configuration from the picker config and
// options.
func (p *pickerImpl) renderConfig() render.Config {
	p.mu.RLock()
	wc := p.cfg.Window
	title := p.opts.WindowTitle
	p.mu.RUnlock()

	rc := render.DefaultConfig()
	if title == "" {
		title = wc.Title
	}
	if title != "" {
		rc.Title = title
	}
	if wc.Scale > 0 {
		rc.Scale = wc.Scale
	}
	rc.KeepAbove = wc.KeepAbove
	rc.SkipTaskbar = wc.SkipTaskbar
	return rc
}

// runRenderLoop opens the window and blocks until it closes or ctx is
// cancelled. Closing the window answers the dialog unless OK or Cancel
// already did.
func (p *pickerImpl) runRenderLoop(ctx context.Context) {
	game, err := render.NewGame(p.renderConfig(), p)
	if err != nil {
		p.notifyError(NewCategorizedError(fmt.Errorf("create window: %w", err), ErrorCategoryRender, SeverityCritical))
		return
	}
	game.SetContext(ctx)
	game.SetErrorHandler(func(err error) {
		p.notifyError(NewCategorizedError(err, ErrorCategoryRender, SeverityWarning))
	})

	p.answered.Store(false)
	p.mu.Lock()
	p.window = game
	p.mu.Unlock()

	runErr := game.Run()

	p.mu.Lock()
	p.window = nil
	p.mu.Unlock()
	if frames := game.Frames(); frames.Frames() > 0 {
		p.metrics.RecordRedrawLatency(frames.AverageFrameTime())
	}

	if runErr != nil && !errors.Is(runErr, render.ErrGameTerminated) {
		p.notifyError(NewCategorizedError(fmt.Errorf("render loop error: %w", runErr), ErrorCategoryRender, SeverityError))
	}
	if p.answered.Load() {
		return
	}
	switch game.Result() {
	case render.Accepted:
		_, _ = p.OK()
	case render.Cancelled:
		p.Cancel()
	}
}
