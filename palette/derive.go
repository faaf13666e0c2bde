package palette

import (
	"github.com/lixenwraith/digital-rain/render"
)

// Lightness anchors for derived gradients
const (
	deriveTailL  = 0.08
	deriveMinL   = 0.3
	deriveHeadL  = 0.92
	deriveHeadS  = 0.3
	deriveMidMul = 0.6
)

// FromBase derives a rain gradient from one color by sweeping HSL lightness
// near-black tail, base hue body, desaturated near-white head
// Very dark bases are lifted so the body stays visible
func FromBase(name string, base RGB) *Palette {
	hsl := render.RGBToHSL(base)
	body := base
	if hsl.L < deriveMinL {
		body = render.HSLToRGB(render.HSL{H: hsl.H, S: hsl.S, L: deriveMinL})
	}
	bodyL := max(hsl.L, deriveMinL)

	tail := render.HSLToRGB(render.HSL{H: hsl.H, S: hsl.S, L: deriveTailL})
	mid := render.HSLToRGB(render.HSL{H: hsl.H, S: hsl.S, L: bodyL * deriveMidMul})
	head := render.HSLToRGB(render.HSL{H: hsl.H, S: hsl.S * deriveHeadS, L: max(deriveHeadL, bodyL)})

	return mustNew(name, Gold,
		Stop{0, tail},
		Stop{0.5, mid},
		Stop{0.85, body},
		Stop{1, head},
	)
}
