package render

import (
	"github.com/lixenwraith/digital-rain/terminal"
)

// RGB is an alias to terminal.RGB for colors, allowing render package to extend functionality
type RGB = terminal.RGB

// Background is the color of an empty cell
var Background = RGB{R: 0, G: 0, B: 0}

// clamp converts float to uint8, rounding to nearest
func clamp(v float64) uint8 {
	if v >= 255.0 {
		return 255
	}
	if v <= 0.0 {
		return 0
	}
	return uint8(v + 0.5)
}

// add is addition with clamping
func add(a, b uint8) uint8 {
	sum := int(a) + int(b)
	if sum > 255 {
		return 255
	}
	return uint8(sum)
}

// Lerp linearly interpolates between two colors
// t is clamped to [0,1]; t=0 returns a, t=1 returns b exactly
func Lerp(a, b RGB, t float64) RGB {
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}
	return RGB{
		R: clamp(float64(a.R) + t*float64(int(b.R)-int(a.R))),
		G: clamp(float64(a.G) + t*float64(int(b.G)-int(a.G))),
		B: clamp(float64(a.B) + t*float64(int(b.B)-int(a.B))),
	}
}

// Scale multiplies all channels by factor, saturating above 255
func Scale(c RGB, factor float64) RGB {
	if factor == 1 {
		return c
	}
	return RGB{
		R: clamp(float64(c.R) * factor),
		G: clamp(float64(c.G) * factor),
		B: clamp(float64(c.B) * factor),
	}
}

// Add performs a per-channel saturating add
func Add(c, src RGB) RGB {
	return RGB{
		R: add(c.R, src.R),
		G: add(c.G, src.G),
		B: add(c.B, src.B),
	}
}

// Brightness is the largest channel value
func Brightness(c RGB) uint8 {
	return max(c.R, c.G, c.B)
}

// Luma returns Rec. 601 luma in 0-255
// Integer math: (R*299 + G*587 + B*114) / 1000
func Luma(c RGB) uint8 {
	return uint8((int(c.R)*299 + int(c.G)*587 + int(c.B)*114) / 1000)
}

// SwapRB exchanges the red and blue channels
func SwapRB(c RGB) RGB {
	return RGB{R: c.B, G: c.G, B: c.R}
}
