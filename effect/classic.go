package effect

import (
	"math/rand/v2"

	"github.com/lixenwraith/digital-rain/charset"
	"github.com/lixenwraith/digital-rain/render"
)

// Effect names in catalog order
const (
	NameClassic  = "classic"
	NameBinary   = "binary"
	NameCascade  = "cascade"
	NamePulse    = "pulse"
	NameGlitch   = "glitch"
	NameFire     = "fire"
	NameOcean    = "ocean"
	NameParallax = "parallax"
)

// Classic is the plain falling-glyph rain
type Classic struct {
	field *Field
}

// NewClassic creates the classic effect
func NewClassic(rng *rand.Rand) Effect {
	return &Classic{field: NewField(rng, FieldConfig{GoldGlyph: goldPerGlyph})}
}

func (e *Classic) Name() string { return NameClassic }

func (e *Classic) Update(p *Params, buf *render.Buffer) {
	e.field.Update(p, buf.Width(), buf.Height())
	e.field.Render(buf, p, nil)
}

// binaryDensity thickens the stream of 0s and 1s
const binaryDensity = 1.3

// Binary is classic rain restricted to 0 and 1 with whole gold columns
type Binary struct {
	field *Field
}

// NewBinary creates the binary effect
func NewBinary(rng *rand.Rand) Effect {
	return &Binary{field: NewField(rng, FieldConfig{
		DensityScale: binaryDensity,
		GoldColumn:   goldPerColumn,
		Charset:      charset.Binary,
	})}
}

func (e *Binary) Name() string { return NameBinary }

func (e *Binary) Update(p *Params, buf *render.Buffer) {
	e.field.Update(p, buf.Width(), buf.Height())
	e.field.Render(buf, p, nil)
}
