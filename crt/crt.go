// Package crt applies a cathode-ray look to a rendered buffer
package crt

import (
	"math"
	"math/rand/v2"

	"github.com/lixenwraith/digital-rain/render"
)

const (
	scanlineDim   = 0.3
	glowThreshold = 170
	glowShare     = 0.07
	flickerDepth  = 0.08
	flickerRate   = 1.9
	noiseRate     = 0.002
	phi           = 1.618033988749895
)

// DefaultIntensity is used when CRT is enabled without an explicit strength
const DefaultIntensity = 0.7

// noiseRunes are the static glyphs dropped onto lit cells
var noiseRunes = []rune(`#%&@!/\|.:`)

// Filter runs the four CRT passes in place: scanlines, glow, flicker, noise
type Filter struct {
	rng    *rand.Rand
	bright []uint8
}

// NewFilter creates a filter drawing noise from rng
func NewFilter(rng *rand.Rand) *Filter {
	return &Filter{rng: rng}
}

// Apply post-processes the back grid; intensity <= 0 leaves it untouched
func (f *Filter) Apply(buf *render.Buffer, intensity, elapsed float64) {
	if intensity <= 0 {
		return
	}
	intensity = min(intensity, 1)
	w, h := buf.Width(), buf.Height()
	cells := buf.Cells()

	f.scanlines(cells, w, h, intensity)
	f.glow(cells, w, h, intensity)
	f.flicker(cells, intensity, elapsed)
	f.noise(cells, intensity)
}

func blank(c render.Cell) bool {
	return c.Rune == ' ' && c.Fg == render.Background && c.Bg == render.Background
}

// scanlines darkens every even row
func (f *Filter) scanlines(cells []render.Cell, w, h int, intensity float64) {
	factor := 1 - scanlineDim*intensity
	for y := 0; y < h; y += 2 {
		row := cells[y*w : (y+1)*w]
		for x := range row {
			if blank(row[x]) {
				continue
			}
			row[x].Fg = render.Scale(row[x].Fg, factor)
			row[x].Bg = render.Scale(row[x].Bg, factor)
		}
	}
}

// glow bleeds bright glyphs into the backgrounds beside them
// Brightness is sampled before any cell is touched so glow does not chain
func (f *Filter) glow(cells []render.Cell, w, h int, intensity float64) {
	if cap(f.bright) < len(cells) {
		f.bright = make([]uint8, len(cells))
	}
	f.bright = f.bright[:len(cells)]
	for i, c := range cells {
		f.bright[i] = render.Brightness(c.Fg)
	}

	share := glowShare * intensity
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			if f.bright[i] < glowThreshold || cells[i].Rune == ' ' {
				continue
			}
			bleed := render.Scale(cells[i].Fg, share)
			if x > 0 {
				cells[i-1].Bg = render.Add(cells[i-1].Bg, bleed)
			}
			if x < w-1 {
				cells[i+1].Bg = render.Add(cells[i+1].Bg, bleed)
			}
		}
	}
}

// flicker scales the whole frame by two incommensurate sines
func (f *Filter) flicker(cells []render.Cell, intensity, elapsed float64) {
	factor := FlickerFactor(intensity, elapsed)
	if factor == 1 {
		return
	}
	for i := range cells {
		if blank(cells[i]) {
			continue
		}
		cells[i].Fg = render.Scale(cells[i].Fg, factor)
		cells[i].Bg = render.Scale(cells[i].Bg, factor)
	}
}

// FlickerFactor is the global brightness multiplier at time elapsed
func FlickerFactor(intensity, elapsed float64) float64 {
	wave := (math.Sin(elapsed*flickerRate) + math.Sin(elapsed*flickerRate*phi)) / 2
	return 1 + intensity*flickerDepth*wave
}

// noise swaps a few lit glyphs for static, keeping their colors
func (f *Filter) noise(cells []render.Cell, intensity float64) {
	p := noiseRate * intensity
	for i := range cells {
		if cells[i].Rune == ' ' {
			continue
		}
		if f.rng.Float64() < p {
			cells[i].Rune = noiseRunes[f.rng.IntN(len(noiseRunes))]
		}
	}
}
