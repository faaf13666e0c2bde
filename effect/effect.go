// Package effect holds the animation catalog. Every effect advances private
// state by Params.Delta and paints the frame into a buffer's back grid.
package effect

import (
	"math/rand/v2"

	"github.com/lixenwraith/digital-rain/charset"
	"github.com/lixenwraith/digital-rain/palette"
	"github.com/lixenwraith/digital-rain/render"
)

// Params are the per-tick inputs; effects read them and never write them
type Params struct {
	Speed   float64 // > 0, multiplies every motion rate
	Density float64 // > 0, scales spawn rate and lane population
	Palette *palette.Palette
	Charset *charset.Set
	Elapsed float64 // seconds of animated (unpaused) time
	Delta   float64 // seconds since the previous tick
	Forward bool    // column gradients run bright at the tail and dim at the head
}

// Effect is one animation algorithm
// Update is called exactly once per tick and must not keep buf after returning
type Effect interface {
	Name() string
	Update(p *Params, buf *render.Buffer)
}

// Factory builds a fresh effect drawing randomness from rng
type Factory func(rng *rand.Rand) Effect

// Shader adjusts a foreground color at a cell before it is written
type Shader func(x, y int, c render.RGB) render.RGB

// Gold highlight probabilities
const (
	goldPerGlyph  = 0.03
	goldPerColumn = 0.05
)

// randRange returns a uniform float in [lo, hi)
func randRange(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

// randIntRange returns a uniform int in [lo, hi]
func randIntRange(rng *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.IntN(hi-lo+1)
}
