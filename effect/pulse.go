package effect

import (
	"math"
	"math/rand/v2"

	"github.com/lixenwraith/digital-rain/render"
)

const (
	pulseWavelength = 0.6  // share of screen height between peaks
	pulseAmplitude  = 0.5  // brightness swing
	pulseRate       = 12.0 // rows per second at speed 1
)

// Pulse is classic rain under a vertical brightness wave
type Pulse struct {
	field *Field
	phase float64
}

// NewPulse creates the pulse effect
func NewPulse(rng *rand.Rand) Effect {
	return &Pulse{field: NewField(rng, FieldConfig{GoldGlyph: goldPerGlyph})}
}

func (e *Pulse) Name() string { return NamePulse }

func (e *Pulse) Update(p *Params, buf *render.Buffer) {
	e.field.Update(p, buf.Width(), buf.Height())
	e.phase += pulseRate * p.Speed * p.Delta

	wavelength := max(1, float64(buf.Height())*pulseWavelength)
	if e.phase > wavelength {
		e.phase = math.Mod(e.phase, wavelength)
	}
	e.field.Render(buf, p, func(_, y int, c render.RGB) render.RGB {
		return render.Scale(c, pulseBrightness(float64(y), e.phase, wavelength))
	})
}

// pulseBrightness is 1 on a crest and 1-amplitude in a trough
func pulseBrightness(y, phase, wavelength float64) float64 {
	wave := math.Cos((y - phase) * 2 * math.Pi / wavelength)
	return 1 - pulseAmplitude*(1-wave)/2
}
