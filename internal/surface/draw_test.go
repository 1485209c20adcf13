package surface

import (
	"image/color"
	"testing"

	"github.com/opd-ai/go-colorpicker/internal/colors"
)

func within(got color.NRGBA, want color.NRGBA, tol int) bool {
	d := func(a, b uint8) int {
		x := int(a) - int(b)
		if x < 0 {
			return -x
		}
		return x
	}
	return d(got.R, want.R) <= tol && d(got.G, want.G) <= tol &&
		d(got.B, want.B) <= tol && d(got.A, want.A) <= tol
}

func TestHueDraw(t *testing.T) {
	r := NewHue(newFakeState(colors.HSV(0, 1, 1)), nil)
	r.Draw()
	cv := r.Canvas()
	tests := []struct {
		y    int
		want color.NRGBA
	}{
		{0, color.NRGBA{R: 255, A: 255}},
		{128, color.NRGBA{G: 255, B: 255, A: 255}},
		{255, color.NRGBA{R: 255, A: 255}},
	}
	for _, tt := range tests {
		if got := cv.At(10, tt.y); !within(got, tt.want, 6) {
			t.Errorf("At(10,%d) = %v, want ~%v", tt.y, got, tt.want)
		}
	}
}

func TestAlphaDraw(t *testing.T) {
	r := NewAlpha(newFakeState(colors.RGBA(0, 0, 255, 0.3)), nil)
	r.Draw()
	top := r.Canvas().At(5, 0)
	if top.B != 255 || top.A < 253 {
		t.Errorf("top = %v, want opaque blue", top)
	}
	if bottom := r.Canvas().At(5, 255); bottom.A > 1 {
		t.Errorf("bottom alpha = %d, want ~0", bottom.A)
	}
}

func TestSpectrumDraw(t *testing.T) {
	state := newFakeState(colors.HSV(0, 1, 1))
	r := NewSpectrum(state, nil)
	r.Draw()
	cv := r.Canvas()
	tests := []struct {
		name string
		x, y int
		want color.NRGBA
	}{
		{"top left white", 0, 0, color.NRGBA{R: 255, G: 255, B: 255, A: 255}},
		{"top right hue", 255, 0, color.NRGBA{R: 255, A: 255}},
		{"bottom black", 128, 255, color.NRGBA{A: 255}},
	}
	for _, tt := range tests {
		if got := cv.At(tt.x, tt.y); !within(got, tt.want, 1) {
			t.Errorf("%s: At(%d,%d) = %v, want %v", tt.name, tt.x, tt.y, got, tt.want)
		}
	}

	state.hue = 120
	r.OnColorSet()
	if got := cv.At(255, 0); !within(got, color.NRGBA{G: 255, A: 255}, 1) {
		t.Errorf("after hue change top right = %v, want green", got)
	}
}

func TestWheelDraw(t *testing.T) {
	r := NewWheel(newFakeState(colors.HSV(0, 1, 1)), nil)
	r.Draw()
	cv := r.Canvas()

	if got := cv.At(128, 128); got.R < 250 || got.G < 250 || got.B < 250 || got.A < 250 {
		t.Errorf("center = %v, want white", got)
	}
	if got := cv.At(0, 0); got.A != 0 {
		t.Errorf("corner = %v, want transparent", got)
	}
	if got := cv.At(250, 128); got.R < 240 || got.G > 30 || got.B > 30 {
		t.Errorf("rim at 0° = %v, want red", got)
	}
	if got := cv.At(128, 250); got.G < 240 || got.R < 110 || got.R > 160 || got.B > 30 {
		t.Errorf("rim at 90° = %v, want yellow-green", got)
	}
}

func TestValueDraw(t *testing.T) {
	r := NewValue(newFakeState(colors.HSV(120, 1, 0.2)), nil)
	r.Draw()
	if got := r.Canvas().At(3, 0); !within(got, color.NRGBA{G: 255, A: 255}, 2) {
		t.Errorf("top = %v, want green at full value", got)
	}
	if got := r.Canvas().At(3, 255); !within(got, color.NRGBA{A: 255}, 2) {
		t.Errorf("bottom = %v, want black", got)
	}
}

func TestColorIndependentSurfacesDoNotRedraw(t *testing.T) {
	state := newFakeState(colors.HSV(30, 1, 1))
	for _, r := range []Renderer{NewHue(state, nil), NewWheel(state, nil)} {
		r.OnColorSet()
		for _, v := range r.Canvas().Image().Pix {
			if v != 0 {
				t.Errorf("%s: OnColorSet drew pixels", r.Kind())
				break
			}
		}
	}
}

func TestOnColorSetMarker(t *testing.T) {
	tests := []struct {
		name      string
		kind      Kind
		c         colors.Color
		hue       float64
		left, top float64
	}{
		{"hue middle", Hue, colors.HSV(0, 1, 1), 180, 0, 123},
		{"hue top", Hue, colors.HSV(0, 1, 1), 0, 0, -5},
		{"alpha half", Alpha, colors.HSVA(0, 1, 1, 0.5), 0, 0, 123},
		{"alpha zero", Alpha, colors.HSVA(0, 1, 1, 0), 0, 0, 250},
		{"alpha one", Alpha, colors.HSV(0, 1, 1), 0, 0, -5},
		{"value quarter", Value, colors.HSV(0, 1, 0.25), 0, 0, 187},
		{"spectrum corner", Spectrum, colors.HSV(0, 1, 1), 0, 251, -5},
		{"spectrum middle", Spectrum, colors.HSV(0, 0.5, 0.5), 0, 123, 123},
		{"wheel half sat", Wheel, colors.HSV(0, 0.5, 1), 0, 187, 123},
		{"wheel center", Wheel, colors.HSV(0, 0, 1), 0, 123, 123},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := newFakeState(tt.c)
			state.hue = tt.hue
			r, err := New(tt.kind, state, NewMarker(10, 10))
			if err != nil {
				t.Fatal(err)
			}
			r.OnColorSet()
			m := r.Marker()
			if m.Left != tt.left || m.Top != tt.top {
				t.Errorf("marker = (%v,%v), want (%v,%v)", m.Left, m.Top, tt.left, tt.top)
			}
		})
	}
}

func TestMarkerClampAndCenter(t *testing.T) {
	m := NewMarker(10, 10)
	m.place(mapperFor(Spectrum), -50, 1000)
	if m.Left != -5 || m.Top != 251 {
		t.Errorf("2D clamp = (%v,%v), want (-5,251)", m.Left, m.Top)
	}
	if c := m.Center(); c != (Point{0, 256}) {
		t.Errorf("Center() = %v", c)
	}

	m.place(mapperFor(Value), 77, 1000)
	if m.Left != 0 || m.Top != 250 {
		t.Errorf("strip clamp = (%v,%v), want (0,250)", m.Left, m.Top)
	}

	m.place(mapperFor(Value), 0, 100.5)
	if m.Top != 96 {
		t.Errorf("strip rounding top = %v, want 96", m.Top)
	}

	if d := NewMarker(0, -1); d.Width != DefaultMarkerSize || d.Height != DefaultMarkerSize {
		t.Errorf("default marker = %+v", d)
	}
}
