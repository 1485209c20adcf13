package colorpicker

import "github.com/opd-ai/go-colorpicker/internal/colors"

// paletteRGB is the swatch grid of the palette tab, ten rows of ten:
// five tints, four shades, then a gray ramp.
var paletteRGB = [...][3]uint8{
	{255, 204, 204}, {255, 230, 204}, {255, 255, 204}, {204, 255, 204}, {204, 255, 230}, {204, 255, 255}, {204, 230, 255}, {204, 204, 255}, {230, 204, 255}, {255, 204, 255},
	{255, 153, 153}, {255, 204, 153}, {255, 255, 153}, {153, 255, 153}, {153, 255, 204}, {153, 255, 255}, {153, 204, 255}, {153, 153, 255}, {204, 153, 255}, {255, 153, 255},
	{255, 102, 102}, {255, 179, 102}, {255, 255, 102}, {102, 255, 102}, {102, 255, 179}, {102, 255, 255}, {102, 179, 255}, {102, 102, 255}, {179, 102, 255}, {255, 102, 255},
	{255, 51, 51}, {255, 153, 51}, {255, 255, 51}, {51, 255, 51}, {51, 255, 153}, {51, 255, 255}, {51, 153, 255}, {51, 51, 255}, {153, 51, 255}, {255, 51, 255},
	{255, 0, 0}, {255, 128, 0}, {255, 255, 0}, {0, 255, 0}, {0, 255, 128}, {0, 255, 255}, {0, 128, 255}, {0, 0, 255}, {128, 0, 255}, {255, 0, 255},
	{235, 0, 0}, {235, 118, 0}, {235, 235, 0}, {0, 235, 0}, {0, 235, 118}, {0, 235, 235}, {0, 118, 235}, {0, 0, 235}, {118, 0, 235}, {235, 0, 235},
	{214, 0, 0}, {214, 108, 0}, {214, 214, 0}, {0, 214, 0}, {0, 214, 108}, {0, 214, 214}, {0, 108, 214}, {0, 0, 214}, {108, 0, 214}, {214, 0, 214},
	{163, 0, 0}, {163, 82, 0}, {163, 163, 0}, {0, 163, 0}, {0, 163, 82}, {0, 163, 163}, {0, 82, 163}, {0, 0, 163}, {82, 0, 163}, {163, 0, 163},
	{92, 0, 0}, {92, 46, 0}, {92, 92, 0}, {0, 92, 0}, {0, 92, 46}, {0, 92, 92}, {0, 46, 92}, {0, 0, 92}, {46, 0, 92}, {92, 0, 92},
	{255, 255, 255}, {205, 205, 205}, {178, 178, 178}, {153, 153, 153}, {127, 127, 127}, {102, 102, 102}, {76, 76, 76}, {51, 51, 51}, {25, 25, 25}, {0, 0, 0},
}

func defaultPalette() []colors.Color {
	out := make([]colors.Color, len(paletteRGB))
	for i, c := range paletteRGB {
		out[i] = colors.RGB(c[0], c[1], c[2])
	}
	return out
}
