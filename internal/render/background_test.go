package render

import (
	"image/color"
	"testing"
)

func TestNewSolidBackground(t *testing.T) {
	c := color.RGBA{R: 100, G: 150, B: 200, A: 255}
	bg := NewSolidBackground(c)

	if bg.Mode() != BackgroundModeSolid {
		t.Errorf("Mode() = %v, want BackgroundModeSolid", bg.Mode())
	}

	if bg.Color() != c {
		t.Errorf("Color() = %v, want %v", bg.Color(), c)
	}
}

func TestNewCheckerBackground(t *testing.T) {
	tests := []struct {
		name     string
		cell     int
		wantCell int
	}{
		{"explicit cell", 4, 4},
		{"zero cell uses default", 0, defaultCheckerCell},
		{"negative cell uses default", -3, defaultCheckerCell},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bg := NewCheckerBackground(64, 64, tt.cell)
			if bg.Mode() != BackgroundModeChecker {
				t.Errorf("Mode() = %v, want BackgroundModeChecker", bg.Mode())
			}
			if bg.Cell() != tt.wantCell {
				t.Errorf("Cell() = %d, want %d", bg.Cell(), tt.wantCell)
			}
		})
	}
}

func TestCheckerImage(t *testing.T) {
	img := CheckerImage(32, 16, 8, CheckerLight, CheckerDark)

	if img.Bounds().Dx() != 32 || img.Bounds().Dy() != 16 {
		t.Fatalf("bounds = %v, want 32x16", img.Bounds())
	}

	tests := []struct {
		x, y int
		want color.RGBA
	}{
		{0, 0, CheckerLight},
		{7, 7, CheckerLight},
		{8, 0, CheckerDark},
		{0, 8, CheckerDark},
		{8, 8, CheckerLight},
		{31, 15, CheckerLight},
		{23, 15, CheckerDark},
	}
	for _, tt := range tests {
		if got := img.RGBAAt(tt.x, tt.y); got != tt.want {
			t.Errorf("RGBAAt(%d, %d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestNewBackgroundRenderer(t *testing.T) {
	tests := []struct {
		name     string
		mode     BackgroundMode
		wantMode BackgroundMode
	}{
		{"solid mode", BackgroundModeSolid, BackgroundModeSolid},
		{"checker mode", BackgroundModeChecker, BackgroundModeChecker},
		{"unknown mode defaults to solid", BackgroundMode(99), BackgroundModeSolid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bg := NewBackgroundRenderer(tt.mode, color.RGBA{A: 255}, 16, 16)
			if bg == nil {
				t.Fatal("NewBackgroundRenderer returned nil")
			}
			if bg.Mode() != tt.wantMode {
				t.Errorf("Mode() = %v, want %v", bg.Mode(), tt.wantMode)
			}
		})
	}
}
