package render

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// HSL is hue in degrees [0,360), saturation and lightness in [0,1]
type HSL struct {
	H, S, L float64
}

// RGBToHSL converts an 8-bit color to HSL
func RGBToHSL(c RGB) HSL {
	h, s, l := toColorful(c).Hsl()
	if math.IsNaN(h) {
		h = 0
	}
	return HSL{H: h, S: s, L: l}
}

// HSLToRGB converts back to 8-bit, clamping out-of-range inputs
func HSLToRGB(v HSL) RGB {
	h := math.Mod(v.H, 360)
	if h < 0 {
		h += 360
	}
	s := min(max(v.S, 0), 1)
	l := min(max(v.L, 0), 1)
	return fromColorful(colorful.Hsl(h, s, l))
}

func toColorful(c RGB) colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

func fromColorful(c colorful.Color) RGB {
	r, g, b := c.Clamped().RGB255()
	return RGB{R: r, G: g, B: b}
}
