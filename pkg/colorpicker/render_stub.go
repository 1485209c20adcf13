//go:build noebiten

package colorpicker

import "context"

// runRenderLoop waits for the session to end in noebiten builds; there is
// no window to open.
func (p *pickerImpl) runRenderLoop(ctx context.Context) {
	<-ctx.Done()
}
