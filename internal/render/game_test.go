//go:build !noebiten

package render

import (
	"context"
	"errors"
	"image"
	"image/color"
	"sync"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/opd-ai/go-colorpicker/internal/colors"
	"github.com/opd-ai/go-colorpicker/internal/palette"
	"github.com/opd-ai/go-colorpicker/internal/surface"
	"github.com/opd-ai/go-colorpicker/internal/tabs"
)

// mockTextRenderer implements TextRendererInterface for testing
type mockTextRenderer struct {
	mu            sync.RWMutex
	drawTextCalls int
	fontSize      float64
}

func newMockTextRenderer() *mockTextRenderer {
	return &mockTextRenderer{fontSize: 14.0}
}

func (m *mockTextRenderer) DrawText(screen *ebiten.Image, textStr string, x, y float64, clr color.RGBA) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.drawTextCalls++
}

func (m *mockTextRenderer) DrawCentered(screen *ebiten.Image, textStr string, r image.Rectangle, clr color.RGBA) {
	m.DrawText(screen, textStr, float64(r.Min.X), float64(r.Min.Y), clr)
}

func (m *mockTextRenderer) MeasureText(textStr string) (width, height float64) {
	return float64(len(textStr)) * 10, 16
}

func (m *mockTextRenderer) Fit(textStr string, maxWidth float64) string {
	return textStr
}

func (m *mockTextRenderer) LineHeight() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.fontSize * 1.2
}

func (m *mockTextRenderer) SetFontSize(size float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fontSize = size
}

func (m *mockTextRenderer) FontSize() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.fontSize
}

// fakeInput returns whatever pointer state the test sets.
type fakeInput struct {
	st PointerState
}

func (f *fakeInput) Pointer() PointerState { return f.st }

// fakeHost is a minimal single-goroutine color owner.
type fakeHost struct {
	c         colors.Color
	hue       float64
	version   uint64
	tabList   []tabs.Tab
	defTab    string
	alpha     bool
	history   []colors.Color
	palette   []colors.Color
	win       *surface.Dispatcher
	atts      []*surface.Attachment
	detached  int
	cycles    int
	forwarded []surface.EventType
}

func newFakeHost(c colors.Color) *fakeHost {
	return &fakeHost{
		c:       c,
		hue:     c.H,
		tabList: []tabs.Tab{tabs.SpectrumTab, tabs.WheelTab, tabs.SlidersTab, tabs.HistoryTab},
		defTab:  "wheel",
		alpha:   true,
		win:     surface.NewDispatcher(),
	}
}

func (h *fakeHost) Color() colors.Color { return h.c }
func (h *fakeHost) Hue() float64 { return h.hue }

func (h *fakeHost) SetColor(c colors.Color) {
	h.c, h.hue = c, c.H
	h.version++
	for _, a := range h.atts {
		a.OnColorSet()
	}
}

func (h *fakeHost) Value() string { return h.c.Hex() }
func (h *fakeHost) Notation() string { return "hex" }
func (h *fakeHost) CycleNotation() { h.cycles++; h.version++ }
func (h *fakeHost) Version() uint64 { return h.version }
func (h *fakeHost) Tabs() []tabs.Tab { return h.tabList }
func (h *fakeHost) DefaultTab() string { return h.defTab }
func (h *fakeHost) AlphaChannel() bool { return h.alpha }
func (h *fakeHost) History() []colors.Color { return h.history }
func (h *fakeHost) Palette() []colors.Color { return h.palette }
func (h *fakeHost) MaterialPalette() []palette.Group { return palette.Material() }
func (h *fakeHost) WithSurfaces(fn func()) { fn() }

func (h *fakeHost) Attach(k surface.Kind, el *surface.Element) (*surface.Attachment, error) {
	att, err := surface.Attach(k, h, surface.PublisherFunc(h.SetColor), el, h.win, nil)
	if err != nil {
		return nil, err
	}
	h.atts = append(h.atts, att)
	h.version++
	return att, nil
}

func (h *fakeHost) Detach(a *surface.Attachment) {
	for i, x := range h.atts {
		if x == a {
			h.atts = append(h.atts[:i], h.atts[i+1:]...)
			break
		}
	}
	a.Detach()
	h.detached++
	h.version++
}

func (h *fakeHost) Pointer(e *surface.PointerEvent) {
	h.forwarded = append(h.forwarded, e.Type)
	if e.Type == surface.Press {
		x, y := e.Client()
		for _, a := range h.atts {
			if a.Element.Contains(x, y) {
				a.Element.Press(e)
				return
			}
		}
		return
	}
	h.win.Dispatch(e)
}

func newTestGame(t *testing.T, host *fakeHost) (*Game, *fakeInput) {
	t.Helper()
	in := &fakeInput{}
	g, err := NewGameWithRenderer(DefaultConfig(), host, newMockTextRenderer(), in)
	if err != nil {
		t.Fatalf("NewGameWithRenderer() error = %v", err)
	}
	g.SetErrorHandler(nil)
	return g, in
}

// pointer feeds one pointer sample through the game.
func pointer(g *Game, in *fakeInput, x, y int, down bool) {
	in.st = PointerState{X: float64(x), Y: float64(y), Down: down}
	g.step()
}

func TestNewGameStartsOnDefaultTab(t *testing.T) {
	host := newFakeHost(colors.RGB(200, 40, 40))
	g, _ := newTestGame(t, host)

	if got := g.ActiveTab(); got != "wheel" {
		t.Errorf("ActiveTab() = %q, want wheel", got)
	}
	if len(host.atts) != 3 {
		t.Fatalf("attachments = %d, want 3 (wheel, value, alpha)", len(host.atts))
	}
	if got := host.atts[0].Kind(); got != surface.Wheel {
		t.Errorf("first surface = %v, want wheel", got)
	}
	if g.textRenderer.FontSize() != DefaultConfig().FontSize {
		t.Errorf("font size = %v, want %v", g.textRenderer.FontSize(), DefaultConfig().FontSize)
	}
}

func TestNewGameErrors(t *testing.T) {
	host := newFakeHost(colors.RGB(0, 0, 0))
	host.tabList = nil
	if _, err := NewGameWithRenderer(DefaultConfig(), host, newMockTextRenderer(), &fakeInput{}); !errors.Is(err, ErrNoTabs) {
		t.Errorf("no tabs: error = %v, want ErrNoTabs", err)
	}

	cfg := DefaultConfig()
	cfg.Scale = 0
	if _, err := NewGameWithRenderer(cfg, newFakeHost(colors.RGB(0, 0, 0)), newMockTextRenderer(), &fakeInput{}); err == nil {
		t.Error("zero scale: expected error")
	}
}

func TestUnknownDefaultTabFallsBackToFirst(t *testing.T) {
	host := newFakeHost(colors.RGB(0, 0, 0))
	host.defTab = "missing"
	g, _ := newTestGame(t, host)
	if got := g.ActiveTab(); got != "spectrum" {
		t.Errorf("ActiveTab() = %q, want spectrum", got)
	}
}

func TestAlphaStripHiddenWithoutAlphaChannel(t *testing.T) {
	host := newFakeHost(colors.RGB(0, 0, 0))
	host.alpha = false
	newTestGame(t, host)

	for _, a := range host.atts {
		if a.Kind() == surface.Alpha {
			t.Error("alpha strip attached with the alpha channel disabled")
		}
	}
	if len(host.atts) != 2 {
		t.Errorf("attachments = %d, want 2", len(host.atts))
	}
}

func TestTabClickSwitchesSurfaces(t *testing.T) {
	host := newFakeHost(colors.RGB(10, 20, 30))
	g, in := newTestGame(t, host)

	x, y := center(g.layout.Tabs[0])
	pointer(g, in, x, y, true)
	pointer(g, in, x, y, false)

	if got := g.ActiveTab(); got != "spectrum" {
		t.Errorf("ActiveTab() = %q, want spectrum", got)
	}
	if host.detached != 3 {
		t.Errorf("detached = %d, want 3", host.detached)
	}
	if len(host.atts) != 3 || host.atts[0].Kind() != surface.Spectrum {
		t.Errorf("attachments after switch = %d, first %v", len(host.atts), host.atts[0].Kind())
	}
	for _, typ := range host.forwarded {
		if typ == surface.Press {
			t.Error("tab press should not reach the surfaces")
		}
	}
}

func TestSelectTab(t *testing.T) {
	host := newFakeHost(colors.RGB(10, 20, 30))
	g, _ := newTestGame(t, host)

	if err := g.SelectTab("wheel"); err != nil {
		t.Fatalf("SelectTab(wheel) error = %v", err)
	}
	if host.detached != 0 {
		t.Errorf("reselecting the shown tab detached %d surfaces", host.detached)
	}
	if err := g.SelectTab("nope"); err == nil {
		t.Error("SelectTab(nope) expected error")
	}
}

func TestRefreshTabs(t *testing.T) {
	host := newFakeHost(colors.RGB(10, 120, 200))
	g, _ := newTestGame(t, host)

	host.tabList = []tabs.Tab{tabs.HistoryTab, tabs.WheelTab}
	host.alpha = false
	if err := g.RefreshTabs(); err != nil {
		t.Fatalf("RefreshTabs() error = %v", err)
	}
	if got := g.ActiveTab(); got != "wheel" {
		t.Errorf("ActiveTab() = %q, want wheel kept", got)
	}
	if len(g.layout.Tabs) != 2 {
		t.Errorf("tab buttons = %d, want 2", len(g.layout.Tabs))
	}
	if len(host.atts) != 2 {
		t.Errorf("attachments = %d, want 2 without the alpha strip", len(host.atts))
	}

	host.tabList = []tabs.Tab{tabs.PaletteTab}
	if err := g.RefreshTabs(); err != nil {
		t.Fatalf("RefreshTabs() error = %v", err)
	}
	if got := g.ActiveTab(); got != "palette" {
		t.Errorf("ActiveTab() = %q, want palette", got)
	}
	if len(host.atts) != 0 {
		t.Errorf("attachments = %d, want 0", len(host.atts))
	}

	host.tabList = nil
	if err := g.RefreshTabs(); !errors.Is(err, ErrNoTabs) {
		t.Errorf("RefreshTabs() with no tabs = %v, want ErrNoTabs", err)
	}
}

func TestSurfaceDrag(t *testing.T) {
	host := newFakeHost(colors.HSV(120, 0.5, 0.5))
	g, in := newTestGame(t, host)
	if err := g.SelectTab("spectrum"); err != nil {
		t.Fatal(err)
	}

	sq := g.layout.Surfaces[0].Rect
	pointer(g, in, sq.Min.X+100, sq.Min.Y+100, true)
	if !host.atts[0].Controller().Dragging() {
		t.Fatal("press on the spectrum should start a drag")
	}

	// Leaving the square clamps to its top-right corner.
	pointer(g, in, sq.Max.X+50, sq.Min.Y-50, true)
	if c := host.Color(); c.S < 0.99 || c.V < 0.99 || c.H != 120 {
		t.Errorf("color after drag = %+v, want hue 120 at full saturation and value", c)
	}

	pointer(g, in, sq.Max.X+50, sq.Min.Y-50, false)
	if host.atts[0].Controller().Dragging() {
		t.Error("release should end the drag")
	}
	if host.win.Listeners() != 0 {
		t.Errorf("window listeners after release = %d, want 0", host.win.Listeners())
	}
}

func TestSliderDrag(t *testing.T) {
	host := newFakeHost(colors.RGB(10, 20, 30))
	g, in := newTestGame(t, host)
	if err := g.SelectTab("colorSliders"); err != nil {
		t.Fatal(err)
	}
	if len(g.layout.Sliders) != 4 {
		t.Fatalf("sliders = %d, want 4", len(g.layout.Sliders))
	}

	red := g.layout.Sliders[0].Rect
	_, y := center(red)
	pointer(g, in, red.Min.X, y, true)
	if r, gr, b := host.Color().RGB(); r != 0 || gr != 20 || b != 30 {
		t.Errorf("after press at the left end rgb = %d,%d,%d, want 0,20,30", r, gr, b)
	}

	// The drag keeps tracking outside the slider.
	pointer(g, in, red.Max.X+40, y+60, true)
	if r, _, _ := host.Color().RGB(); r != 255 {
		t.Errorf("after drag past the right end red = %d, want 255", r)
	}

	pointer(g, in, red.Max.X+40, y+60, false)
	if g.dragging != -1 {
		t.Errorf("dragging = %d after release, want -1", g.dragging)
	}
	if len(host.forwarded) != 0 {
		t.Errorf("slider gesture forwarded %v to the host", host.forwarded)
	}
}

func TestSwatchClick(t *testing.T) {
	host := newFakeHost(colors.RGB(0, 0, 0))
	host.history = []colors.Color{colors.RGB(255, 0, 0), colors.RGB(0, 255, 0)}
	g, in := newTestGame(t, host)
	if err := g.SelectTab("history"); err != nil {
		t.Fatal(err)
	}
	pointer(g, in, 0, 0, false)
	if len(g.swatches) != 2 {
		t.Fatalf("swatches = %d, want 2", len(g.swatches))
	}

	x, y := center(g.layout.SwatchRect(1))
	pointer(g, in, x, y, true)
	if got := host.Color().Hex(); got != "#00ff00" {
		t.Errorf("color after swatch click = %s, want #00ff00", got)
	}
}

func TestMaterialPalette(t *testing.T) {
	host := newFakeHost(colors.RGB(0, 0, 0))
	host.tabList = []tabs.Tab{tabs.SpectrumTab, tabs.MaterialPaletteTab}
	g, in := newTestGame(t, host)
	if err := g.SelectTab("materialPalette"); err != nil {
		t.Fatal(err)
	}
	if len(host.atts) != 0 {
		t.Errorf("attachments = %d, want 0", len(host.atts))
	}
	if want := len(palette.Rows(palette.Material())); len(g.material) != want {
		t.Fatalf("material rows = %d, want %d", len(g.material), want)
	}

	c := g.layout.Content
	x := c.Min.X + 20

	// The red title is not selectable.
	pointer(g, in, x, c.Min.Y+5, true)
	pointer(g, in, x, c.Min.Y+5, false)
	if got := host.Color().Hex(); got != "#000000" {
		t.Errorf("title click changed the color to %s", got)
	}

	y := c.Min.Y + MaterialTitleHeight + 2
	pointer(g, in, x, y, true)
	pointer(g, in, x, y, false)
	if got := host.Color().Hex(); got != "#ffebee" {
		t.Errorf("color after clicking red 50 = %s, want #ffebee", got)
	}

	// Scrolling down one row puts red 100 under the pointer.
	in.st = PointerState{X: float64(x), Y: float64(y), WheelY: -1}
	g.step()
	if g.scroll != MaterialRowHeight {
		t.Fatalf("scroll = %d, want %d", g.scroll, MaterialRowHeight)
	}
	pointer(g, in, x, y, true)
	pointer(g, in, x, y, false)
	if got := host.Color().Hex(); got != "#ffcdd2" {
		t.Errorf("color after scrolling and clicking = %s, want #ffcdd2", got)
	}

	in.st = PointerState{X: float64(x), Y: float64(y), WheelY: 10}
	g.step()
	if g.scroll != 0 {
		t.Errorf("scroll = %d, want 0 at the top", g.scroll)
	}
	in.st = PointerState{X: float64(x), Y: float64(y), WheelY: -1000}
	g.step()
	if want := g.layout.MaxScroll(g.material); g.scroll != want {
		t.Errorf("scroll = %d, want %d at the bottom", g.scroll, want)
	}

	g.handleKey(ebiten.KeyArrowUp, false)
	if want := g.layout.MaxScroll(g.material) - MaterialRowHeight; g.scroll != want {
		t.Errorf("scroll after arrow up = %d, want %d", g.scroll, want)
	}

	if err := g.SelectTab("spectrum"); err != nil {
		t.Fatal(err)
	}
	if g.material != nil || g.scroll != 0 {
		t.Errorf("material list kept after leaving the tab: %d rows, scroll %d", len(g.material), g.scroll)
	}
}

func TestSyncCopiesHostState(t *testing.T) {
	host := newFakeHost(colors.RGB(0, 0, 255))
	g, in := newTestGame(t, host)
	pointer(g, in, 0, 0, false)

	if g.value != "#0000ff" {
		t.Errorf("value = %q, want #0000ff", g.value)
	}
	for _, sv := range g.surfaces {
		if len(sv.pix) != 4*surface.Size*surface.Size {
			t.Errorf("%v: copied %d bytes", sv.Kind, len(sv.pix))
		}
		if !sv.dirty {
			t.Errorf("%v: not marked dirty", sv.Kind)
		}
	}

	host.SetColor(colors.RGB(255, 255, 0))
	pointer(g, in, 0, 0, false)
	if g.value != "#ffff00" {
		t.Errorf("value after SetColor = %q, want #ffff00", g.value)
	}
	if g.version != host.version {
		t.Errorf("version = %d, want %d", g.version, host.version)
	}
}

func TestHandleKey(t *testing.T) {
	host := newFakeHost(colors.RGB(0, 0, 0))
	g, _ := newTestGame(t, host)

	g.handleKey(ebiten.KeyTab, false)
	if got := g.ActiveTab(); got != "colorSliders" {
		t.Errorf("after Tab ActiveTab() = %q, want colorSliders", got)
	}
	g.handleKey(ebiten.KeyTab, true)
	g.handleKey(ebiten.KeyTab, true)
	if got := g.ActiveTab(); got != "spectrum" {
		t.Errorf("after two Shift+Tab ActiveTab() = %q, want spectrum", got)
	}

	g.handleKey(ebiten.KeyN, false)
	if host.cycles != 1 {
		t.Errorf("notation cycles = %d, want 1", host.cycles)
	}

	g.handleKey(ebiten.KeyEnter, false)
	g.handleKey(ebiten.KeyEscape, false)
	if g.Result() != Accepted {
		t.Errorf("Result() = %v, want accepted", g.Result())
	}
}

func TestAcceptCancel(t *testing.T) {
	g, _ := newTestGame(t, newFakeHost(colors.RGB(0, 0, 0)))
	if g.Result() != Pending {
		t.Fatalf("initial Result() = %v, want pending", g.Result())
	}
	g.Cancel()
	g.Accept()
	if g.Result() != Cancelled {
		t.Errorf("Result() = %v, want cancelled (first one wins)", g.Result())
	}
}

func TestGameUpdateContextCancellation(t *testing.T) {
	g, _ := newTestGame(t, newFakeHost(colors.RGB(0, 0, 0)))

	ctx, cancel := context.WithCancel(context.Background())
	g.SetContext(ctx)
	cancel()

	if err := g.Update(); !errors.Is(err, ErrGameTerminated) {
		t.Errorf("Update() after cancel = %v, want ErrGameTerminated", err)
	}
}

func TestGameClose(t *testing.T) {
	host := newFakeHost(colors.RGB(0, 0, 0))
	g, _ := newTestGame(t, host)
	g.Close()

	if len(host.atts) != 0 {
		t.Errorf("attachments after Close = %d, want 0", len(host.atts))
	}
	if host.win.Listeners() != 0 {
		t.Errorf("window listeners after Close = %d", host.win.Listeners())
	}
}

func TestGameLayout(t *testing.T) {
	g, _ := newTestGame(t, newFakeHost(colors.RGB(0, 0, 0)))
	w, h := g.Layout(1920, 1080)
	if w != WindowWidth || h != WindowHeight {
		t.Errorf("Layout() = %dx%d, want %dx%d", w, h, WindowWidth, WindowHeight)
	}
	if g.IsRunning() {
		t.Error("IsRunning() = true before Run")
	}
}
