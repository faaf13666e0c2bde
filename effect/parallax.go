package effect

import (
	"math/rand/v2"

	"github.com/lixenwraith/digital-rain/render"
)

// parallaxLayer is one depth plane
type parallaxLayer struct {
	field      *Field
	brightness float64
}

// Parallax draws a slow dim far layer under a fast bright near layer
type Parallax struct {
	layers [2]parallaxLayer
}

// NewParallax creates the parallax effect
func NewParallax(rng *rand.Rand) Effect {
	return &Parallax{layers: [2]parallaxLayer{
		{
			field:      NewField(rng, FieldConfig{SpeedScale: 0.4, DensityScale: 0.6, GoldGlyph: goldPerGlyph}),
			brightness: 0.35,
		},
		{
			field:      NewField(rng, FieldConfig{SpeedScale: 1.2, DensityScale: 1.0, GoldGlyph: goldPerGlyph}),
			brightness: 1.0,
		},
	}}
}

func (e *Parallax) Name() string { return NameParallax }

func (e *Parallax) Update(p *Params, buf *render.Buffer) {
	w, h := buf.Width(), buf.Height()
	for i := range e.layers {
		l := &e.layers[i]
		l.field.Update(p, w, h)

		var shade Shader
		if l.brightness != 1 {
			b := l.brightness
			shade = func(_, _ int, c render.RGB) render.RGB { return render.Scale(c, b) }
		}
		l.field.Render(buf, p, shade)
	}
}
