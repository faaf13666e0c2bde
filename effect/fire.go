package effect

import (
	"math"
	"math/rand/v2"

	"github.com/lixenwraith/digital-rain/palette"
	"github.com/lixenwraith/digital-rain/render"
)

const (
	fireStepRate  = 60.0 // automaton steps per second at speed 1
	fireMaxSteps  = 8    // per tick, so a long stall cannot spin
	fireCooling   = 0.04 // upper bound of random cooling per step
	fireSeedMin   = 0.6
	fireSeedMax   = 1.0
	fireSeedFill  = 0.75 // share of bottom cells reseeded per step at density 1
	fireSeedDecay = 0.6  // unseeded bottom cells keep this share of their heat
	fireVisible   = 0.01
	fireBgShare   = 0.25
)

// fireRunes run from cool to hot
var fireRunes = []rune(" .:^*#%@")

// Fire is a heat-diffusion automaton fed from the bottom row
// Every cell takes the average of the three cells below it and the one two rows below, minus cooling
type Fire struct {
	rng    *rand.Rand
	heat   []float64
	width  int
	height int
	acc    float64
}

// NewFire creates the fire effect
func NewFire(rng *rand.Rand) Effect {
	return &Fire{rng: rng}
}

func (e *Fire) Name() string { return NameFire }

// Heat returns the heat at a cell, 0 when out of bounds
func (e *Fire) Heat(x, y int) float64 {
	if x < 0 || x >= e.width || y < 0 || y >= e.height {
		return 0
	}
	return e.heat[y*e.width+x]
}

func (e *Fire) Update(p *Params, buf *render.Buffer) {
	w, h := buf.Width(), buf.Height()
	if w != e.width || h != e.height {
		e.width, e.height = w, h
		e.heat = make([]float64, w*h)
	}

	e.acc += fireStepRate * p.Speed * p.Delta
	steps := int(e.acc)
	e.acc -= float64(steps)
	fill := min(1, fireSeedFill*p.Density)
	for range min(steps, fireMaxSteps) {
		e.step(fill)
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			heat := e.heat[y*w+x]
			if heat < fireVisible {
				continue
			}
			idx := int(math.Round(min(heat, 1) * float64(len(fireRunes)-1)))
			fg := palette.Fire.Lookup(heat)
			buf.SetCell(x, y, fireRunes[idx], fg, render.Scale(fg, fireBgShare))
		}
	}
}

func (e *Fire) step(fill float64) {
	w, h := e.width, e.height
	bottom := (h - 1) * w
	for x := 0; x < w; x++ {
		if e.rng.Float64() < fill {
			e.heat[bottom+x] = randRange(e.rng, fireSeedMin, fireSeedMax)
		} else {
			e.heat[bottom+x] *= fireSeedDecay
		}
	}

	// Top-down so every read below still holds the previous step
	for y := 0; y < h-1; y++ {
		below := (y + 1) * w
		far := below
		if y+2 < h {
			far = (y + 2) * w
		}
		for x := 0; x < w; x++ {
			left, right := max(x-1, 0), min(x+1, w-1)
			avg := (e.heat[below+x] + e.heat[below+left] + e.heat[below+right] + e.heat[far+x]) / 4
			e.heat[y*w+x] = max(avg-e.rng.Float64()*fireCooling, 0)
		}
	}
}
