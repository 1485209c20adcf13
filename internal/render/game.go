package render

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
	"os"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/opd-ai/go-colorpicker/internal/canvas"
	"github.com/opd-ai/go-colorpicker/internal/colors"
	"github.com/opd-ai/go-colorpicker/internal/palette"
	"github.com/opd-ai/go-colorpicker/internal/surface"
	"github.com/opd-ai/go-colorpicker/internal/tabs"
)

// ErrGameTerminated is returned when the game loop is terminated via context cancellation.
var ErrGameTerminated = errors.New("game terminated")

// ErrNoTabs is returned by NewGame when the host shows no tabs.
var ErrNoTabs = errors.New("no tabs to show")

// ErrorHandler is a function type for handling errors during game updates.
type ErrorHandler func(err error)

// DefaultErrorHandler writes errors to stderr.
func DefaultErrorHandler(err error) {
	fmt.Fprintf(os.Stderr, "update error: %v\n", err)
}

// TextRendererInterface defines the interface for text rendering.
// This allows for mocking in tests.
type TextRendererInterface interface {
	DrawText(screen *ebiten.Image, textStr string, x, y float64, clr color.RGBA)
	DrawCentered(screen *ebiten.Image, textStr string, r image.Rectangle, clr color.RGBA)
	MeasureText(textStr string) (width, height float64)
	Fit(textStr string, maxWidth float64) string
	LineHeight() float64
	SetFontSize(size float64)
	FontSize() float64
}

// surfaceView is an attached surface and the pixels last copied from it.
type surfaceView struct {
	SurfaceSlot
	att    *surface.Attachment
	pix    []byte
	marker surface.Marker
	dirty  bool
	img    *ebiten.Image
}

// sliderView is one channel slider and its ramp.
type sliderView struct {
	SliderSlot
	cv    *canvas.Canvas
	dirty bool
	img   *ebiten.Image
}

// Game implements ebiten.Game for the picker window.
type Game struct {
	config       Config
	host         Host
	input        InputSource
	translator   Translator
	textRenderer TextRendererInterface
	background   BackgroundRenderer
	checker      *CheckerBackground
	errorHandler ErrorHandler
	frames       *FrameMetrics
	opts         *DrawOptionsPool
	ctx          context.Context

	mu           sync.RWMutex
	tabList      []tabs.Tab
	active       int
	layout       Layout
	surfaces     []*surfaceView
	sliders      []*sliderView
	swatches     []colors.Color
	material     []MaterialSlot
	scroll       int
	dragging     int
	version      uint64
	synced       bool
	color        colors.Color
	value        string
	result       Result
	hintsApplied bool
	running      bool
}

// NewGame creates the picker window for host.
func NewGame(config Config, host Host) (*Game, error) {
	return NewGameWithRenderer(config, host, NewTextRenderer(), NewEbitenInput())
}

// NewGameWithRenderer creates the picker window with a custom text
// renderer and input source. This is useful for testing.
func NewGameWithRenderer(config Config, host Host, renderer TextRendererInterface, input InputSource) (*Game, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	tabList := host.Tabs()
	if len(tabList) == 0 {
		return nil, ErrNoTabs
	}
	renderer.SetFontSize(config.FontSize)

	g := &Game{
		config:       config,
		host:         host,
		input:        input,
		textRenderer: renderer,
		background:   NewSolidBackground(config.BackgroundColor),
		checker:      NewCheckerBackground(WindowWidth, WindowHeight, defaultCheckerCell),
		errorHandler: DefaultErrorHandler,
		frames:       NewFrameMetrics(time.Second),
		opts:         NewDrawOptionsPool(),
		tabList:      tabList,
		dragging:     -1,
		active:       -1,
	}

	start := 0
	for i, t := range tabList {
		if t.Name == host.DefaultTab() {
			start = i
			break
		}
	}
	g.selectTab(start)
	return g, nil
}

// SetErrorHandler sets a custom error handler for update errors.
// If nil is passed, errors will be silently ignored.
func (g *Game) SetErrorHandler(handler ErrorHandler) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.errorHandler = handler
}

// SetContext sets a context for the game loop. When the context is cancelled,
// the game loop will terminate gracefully.
func (g *Game) SetContext(ctx context.Context) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.ctx = ctx
}

// Frames returns the frame timing metrics.
func (g *Game) Frames() *FrameMetrics {
	return g.frames
}

// Result returns how the window was closed, or Pending while it is open.
func (g *Game) Result() Result {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.result
}

// Accept closes the window keeping the current color.
func (g *Game) Accept() {
	g.finish(Accepted)
}

// Cancel closes the window discarding the choice.
func (g *Game) Cancel() {
	g.finish(Cancelled)
}

func (g *Game) finish(r Result) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.result == Pending {
		g.result = r
	}
}

// ActiveTab returns the name of the shown tab.
func (g *Game) ActiveTab() string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.tabList[g.active].Name
}

// SelectTab shows the tab with the given name.
func (g *Game) SelectTab(name string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	for i, t := range g.tabList {
		if t.Name == name {
			g.selectTab(i)
			return nil
		}
	}
	return fmt.Errorf("unknown tab %q", name)
}

// RefreshTabs re-reads the tab list and alpha setting from the host. The
// active tab stays selected when it is still listed.
func (g *Game) RefreshTabs() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	list := g.host.Tabs()
	if len(list) == 0 {
		return ErrNoTabs
	}
	current := g.tabList[g.active].Name
	g.detachAll()
	g.tabList = list
	g.active = -1

	next := 0
	for i, t := range list {
		if t.Name == current {
			next = i
			break
		}
	}
	g.selectTab(next)
	return nil
}

// selectTab detaches the surfaces of the current tab and attaches those of
// tab i. Selecting the current tab again does nothing.
func (g *Game) selectTab(i int) {
	if i == g.active {
		return
	}
	g.detachAll()
	g.active = i
	g.dragging = -1
	g.synced = false

	t := g.tabList[i]
	g.layout = NewLayout(len(g.tabList), t, g.host.AlphaChannel())
	for _, slot := range g.layout.Surfaces {
		origin, extent := slot.SurfaceOrigin()
		att, err := g.host.Attach(slot.Kind, surface.NewElementExtent(origin, extent))
		if err != nil {
			g.reportError(fmt.Errorf("attach %s: %w", slot.Kind, err))
			continue
		}
		g.surfaces = append(g.surfaces, &surfaceView{SurfaceSlot: slot, att: att})
	}
	for _, slot := range g.layout.Sliders {
		g.sliders = append(g.sliders, &sliderView{
			SliderSlot: slot,
			cv:         canvas.New(slot.Rect.Dx(), slot.Rect.Dy()),
		})
	}
	g.scroll = 0
	if t.Content == tabs.MaterialPalette {
		g.material = g.layout.MaterialSlots(palette.Rows(g.host.MaterialPalette()))
	}
}

// scrollBy moves the material list by dy pixels, staying within the list.
func (g *Game) scrollBy(dy int) {
	g.scroll = min(max(g.scroll+dy, 0), g.layout.MaxScroll(g.material))
}

func (g *Game) detachAll() {
	for _, v := range g.surfaces {
		g.host.Detach(v.att)
		if v.img != nil {
			v.img.Deallocate()
		}
	}
	for _, s := range g.sliders {
		if s.img != nil {
			s.img.Deallocate()
		}
	}
	g.surfaces = g.surfaces[:0]
	g.sliders = g.sliders[:0]
	g.swatches = nil
	g.material = nil
}

// Close detaches every surface from the host.
func (g *Game) Close() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.detachAll()
}

func (g *Game) reportError(err error) {
	if g.errorHandler != nil {
		g.errorHandler(err)
	}
}

// Update implements ebiten.Game.Update.
// It is called every tick (typically 60 times per second).
func (g *Game) Update() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.ctx != nil {
		select {
		case <-g.ctx.Done():
			return ErrGameTerminated
		default:
		}
	}

	// The window exists by the first tick.
	if !g.hintsApplied {
		g.hintsApplied = true
		if err := ApplyWindowHints(g.config.Hints()); err != nil {
			g.reportError(err)
		}
	}

	if ebiten.IsWindowBeingClosed() && g.result == Pending {
		g.result = Accepted
	}
	for _, k := range []ebiten.Key{ebiten.KeyEnter, ebiten.KeyNumpadEnter, ebiten.KeyEscape, ebiten.KeyTab, ebiten.KeyN, ebiten.KeyArrowUp, ebiten.KeyArrowDown} {
		if inpututil.IsKeyJustPressed(k) {
			g.handleKey(k, ebiten.IsKeyPressed(ebiten.KeyShift))
		}
	}
	if g.result != Pending {
		return ebiten.Termination
	}

	g.step()
	return nil
}

// step feeds one pointer sample through the window and refreshes what
// changed.
func (g *Game) step() {
	st := g.input.Pointer()
	if st.WheelY != 0 && g.material != nil {
		g.scrollBy(-int(math.Round(st.WheelY * MaterialRowHeight)))
	}
	for _, e := range g.translator.Next(st) {
		g.handlePointer(e)
	}
	g.sync()
}

func (g *Game) handleKey(k ebiten.Key, shift bool) {
	switch k {
	case ebiten.KeyEnter, ebiten.KeyNumpadEnter:
		if g.result == Pending {
			g.result = Accepted
		}
	case ebiten.KeyEscape:
		if g.result == Pending {
			g.result = Cancelled
		}
	case ebiten.KeyTab:
		n := len(g.tabList)
		if shift {
			g.selectTab((g.active + n - 1) % n)
		} else {
			g.selectTab((g.active + 1) % n)
		}
	case ebiten.KeyN:
		g.host.CycleNotation()
	case ebiten.KeyArrowUp:
		g.scrollBy(-MaterialRowHeight)
	case ebiten.KeyArrowDown:
		g.scrollBy(MaterialRowHeight)
	}
}

// handlePointer routes a pointer event. Window controls take presses first;
// everything else goes to the host, which delivers it to the surfaces.
func (g *Game) handlePointer(e *surface.PointerEvent) {
	x, y := e.Client()
	p := image.Pt(int(math.Floor(x)), int(math.Floor(y)))

	switch e.Type {
	case surface.Press:
		if i := g.layout.TabAt(p); i >= 0 {
			g.selectTab(i)
			return
		}
		if i := g.layout.SliderAt(p); i >= 0 {
			g.dragging = i
			g.applySlider(x)
			return
		}
		if g.material != nil {
			if i := g.layout.MaterialAt(p, g.material, g.scroll); i >= 0 {
				g.host.SetColor(g.material[i].Row.Color)
			}
			return
		}
		if g.showsSwatches() {
			if i := g.layout.SwatchAt(p, len(g.swatches)); i >= 0 {
				g.host.SetColor(g.swatches[i])
			}
			return
		}
	case surface.Move:
		if g.dragging >= 0 {
			g.applySlider(x)
			return
		}
	case surface.Release:
		if g.dragging >= 0 {
			g.dragging = -1
			return
		}
	}
	g.host.Pointer(e)
}

func (g *Game) showsSwatches() bool {
	c := g.tabList[g.active].Content
	return c == tabs.Palette || c == tabs.History
}

func (g *Game) applySlider(x float64) {
	s := g.layout.Sliders[g.dragging]
	g.host.SetColor(s.Channel.Apply(g.host.Color(), SliderValue(s.Rect, x)))
}

// sync copies whatever changed in the host since the last tick.
func (g *Game) sync() {
	v := g.host.Version()
	if g.synced && v == g.version {
		return
	}
	g.version, g.synced = v, true
	g.color = g.host.Color()
	g.value = g.host.Value()

	g.host.WithSurfaces(func() {
		for _, sv := range g.surfaces {
			sv.pix = append(sv.pix[:0], sv.att.Canvas().Image().Pix...)
			sv.marker = *sv.att.Marker()
			sv.dirty = true
		}
	})
	for _, s := range g.sliders {
		PaintSlider(s.cv, s.Channel, g.color)
		s.dirty = true
	}
	switch g.tabList[g.active].Content {
	case tabs.Palette:
		g.swatches = g.host.Palette()
	case tabs.History:
		g.swatches = g.host.History()
	}
}

// Draw implements ebiten.Game.Draw.
func (g *Game) Draw(screen *ebiten.Image) {
	start := time.Now()
	g.mu.Lock()
	defer g.mu.Unlock()

	g.background.Draw(screen)
	g.drawTabs(screen)
	switch g.tabList[g.active].Content {
	case tabs.Surfaces:
		g.drawSurfaces(screen)
	case tabs.Sliders:
		g.drawSliders(screen)
	case tabs.MaterialPalette:
		g.drawMaterial(screen)
	default:
		g.drawSwatches(screen)
	}
	g.drawValue(screen)

	g.frames.RecordFrame(time.Since(start))
}

// markerColor contrasts with the picked color.
func (g *Game) markerColor() color.Color {
	if g.color.IsDark() {
		return color.White
	}
	return color.Black
}

func (g *Game) drawTabs(screen *ebiten.Image) {
	fg := g.config.ForegroundColor
	for i, r := range g.layout.Tabs {
		if i == g.active {
			hl := fg
			hl.A = 0x40
			vector.DrawFilledRect(screen, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), hl, false)
		}
		vector.StrokeRect(screen, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), 1, fg, false)
		g.textRenderer.DrawCentered(screen, g.tabList[i].Name, r.Inset(2), fg)
	}
}

func (g *Game) drawSurfaces(screen *ebiten.Image) {
	mc := g.markerColor()
	for _, sv := range g.surfaces {
		if sv.img == nil {
			sv.img = ebiten.NewImage(surface.Size, surface.Size)
		}
		if sv.dirty && len(sv.pix) == 4*surface.Size*surface.Size {
			sv.img.WritePixels(sv.pix)
			sv.dirty = false
		}
		if sv.Kind == surface.Alpha {
			g.checker.DrawRect(screen, sv.Rect)
		}

		op := g.opts.Get()
		op.GeoM.Scale(float64(sv.Rect.Dx())/surface.Size, float64(sv.Rect.Dy())/surface.Size)
		op.GeoM.Translate(float64(sv.Rect.Min.X), float64(sv.Rect.Min.Y))
		screen.DrawImage(sv.img, op)
		g.opts.Put(op)

		x0, y0 := float32(sv.Rect.Min.X), float32(sv.Rect.Min.Y)
		m := sv.marker
		if sv.Kind.IgnoresX() {
			vector.StrokeRect(screen, x0, y0+float32(m.Top), float32(sv.Rect.Dx()), float32(m.Height), 2, mc, false)
			continue
		}
		cx := x0 + float32(m.Left+m.Width/2)
		cy := y0 + float32(m.Top+m.Height/2)
		vector.StrokeCircle(screen, cx, cy, float32(m.Width/2), 2, mc, true)
	}
}

func (g *Game) drawSliders(screen *ebiten.Image) {
	fg := g.config.ForegroundColor
	for _, s := range g.sliders {
		r := s.Rect
		if s.img == nil {
			s.img = ebiten.NewImage(r.Dx(), r.Dy())
		}
		if s.dirty {
			s.img.WritePixels(s.cv.Image().Pix)
			s.dirty = false
		}

		label := image.Rect(g.layout.Content.Min.X, r.Min.Y, r.Min.X, r.Max.Y)
		g.textRenderer.DrawCentered(screen, s.Channel.Label(), label, fg)
		if s.Channel == Alpha {
			g.checker.DrawRect(screen, r)
		}

		op := g.opts.Get()
		op.GeoM.Translate(float64(r.Min.X), float64(r.Min.Y))
		screen.DrawImage(s.img, op)
		g.opts.Put(op)

		x := float32(SliderX(r, s.Channel.Value(g.color)))
		vector.StrokeRect(screen, x-2, float32(r.Min.Y-2), 4, float32(r.Dy()+4), 2, fg, false)
	}
}

func (g *Game) drawSwatches(screen *ebiten.Image) {
	fg := g.config.ForegroundColor
	n := min(len(g.swatches), g.layout.SwatchCapacity())
	for i := 0; i < n; i++ {
		c := g.swatches[i]
		r := g.layout.SwatchRect(i)
		g.checker.DrawRect(screen, r)
		vector.DrawFilledRect(screen, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), c.NRGBA(), false)
		if c.SameRGBA(g.color) {
			vector.StrokeRect(screen, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), 2, fg, false)
		}
	}
}

// drawMaterial paints the visible part of the material list, clipped to
// the content area. Labels contrast with their row.
func (g *Game) drawMaterial(screen *ebiten.Image) {
	content := screen.SubImage(g.layout.Content).(*ebiten.Image)
	for _, s := range g.material {
		r := g.layout.MaterialScreenRect(s, g.scroll)
		if !r.Overlaps(g.layout.Content) {
			continue
		}
		vector.DrawFilledRect(content, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), s.Row.Color.NRGBA(), false)
		label := palette.LabelColor(s.Row.Color)
		y := float64(r.Min.Y) + (float64(r.Dy())-g.textRenderer.LineHeight())/2
		g.textRenderer.DrawText(content, s.Row.Text, float64(r.Min.X+Padding), y, label)
		if !s.Row.Title && s.Row.Color.SameRGBA(g.color) {
			vector.StrokeRect(content, float32(r.Min.X+1), float32(r.Min.Y+1), float32(r.Dx()-2), float32(r.Dy()-2), 2, label, false)
		}
	}
}

func (g *Game) drawValue(screen *ebiten.Image) {
	fg := g.config.ForegroundColor
	r := g.layout.Swatch
	g.checker.DrawRect(screen, r)
	vector.DrawFilledRect(screen, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), g.color.NRGBA(), false)
	vector.StrokeRect(screen, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), 1, fg, false)

	t := g.layout.Text
	value := g.textRenderer.Fit(g.value, float64(t.Dx()))
	y := float64(t.Min.Y) + (float64(t.Dy())-g.textRenderer.LineHeight())/2
	g.textRenderer.DrawText(screen, value, float64(t.Min.X), y, fg)
}

// Layout implements ebiten.Game.Layout.
// It returns the game's logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return WindowWidth, WindowHeight
}

// Config returns the current configuration.
func (g *Game) Config() Config {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.config
}

// Run opens the window and blocks until it closes. It must be called from
// the main goroutine.
func (g *Game) Run() error {
	ebiten.SetWindowSize(WindowWidth*g.config.Scale, WindowHeight*g.config.Scale)
	ebiten.SetWindowTitle(g.config.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeDisabled)
	ebiten.SetWindowClosingHandled(true)

	g.mu.Lock()
	g.running = true
	g.mu.Unlock()

	err := ebiten.RunGame(g)

	g.mu.Lock()
	g.running = false
	g.detachAll()
	g.mu.Unlock()

	return err
}

// IsRunning returns whether the game loop is currently running.
func (g *Game) IsRunning() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.running
}
