package effect

import (
	"math"
	"math/rand/v2"

	"github.com/lixenwraith/digital-rain/palette"
	"github.com/lixenwraith/digital-rain/render"
)

const (
	oceanSurface   = 0.4  // resting surface as a share of height from the top
	oceanFoamSlope = 0.45 // |dh/dx| above which the crest breaks into foam
	oceanBgDepth   = 0.3
	oceanBgShare   = 0.5
)

// oceanRunes run from the deep floor up to the crest
var oceanRunes = []rune(" .,;~=#")

// oceanFoam marks a breaking crest
const oceanFoam = '*'

// wave is one sine component of the surface
type wave struct {
	freq, amp, speed, phase float64
}

// Ocean shades a height field built from four sine waves
type Ocean struct {
	waves [4]wave
	time  float64
}

// NewOcean creates the ocean effect with random wave phases
func NewOcean(rng *rand.Rand) Effect {
	e := &Ocean{waves: [4]wave{
		{freq: 0.08, amp: 3.0, speed: 1.2},
		{freq: 0.15, amp: 1.5, speed: -0.8},
		{freq: 0.25, amp: 0.8, speed: 2.0},
		{freq: 0.04, amp: 5.0, speed: 0.5},
	}}
	for i := range e.waves {
		e.waves[i].phase = rng.Float64() * 2 * math.Pi
	}
	return e
}

func (e *Ocean) Name() string { return NameOcean }

// height is the wave displacement at column x, scaled by density
func (e *Ocean) height(x, scale float64) float64 {
	total := 0.0
	for _, w := range e.waves {
		total += w.amp * math.Sin(w.freq*x+w.speed*e.time+w.phase)
	}
	return total * scale
}

// slope is the central difference of the displacement
func (e *Ocean) slope(x, scale float64) float64 {
	return (e.height(x+1, scale) - e.height(x-1, scale)) / 2
}

func (e *Ocean) Update(p *Params, buf *render.Buffer) {
	e.time += p.Delta * p.Speed

	w, h := buf.Width(), buf.Height()
	scale := min(max(p.Density, 0.3), 2)
	rest := float64(h) * oceanSurface
	pal := palette.Ocean

	for x := 0; x < w; x++ {
		fx := float64(x)
		surface := math.Round(rest + e.height(fx, scale))
		foam := math.Abs(e.slope(fx, scale)) > oceanFoamSlope
		span := float64(h) - surface + 1

		for y := max(0, int(surface)-1); y < h; y++ {
			depth := min(max((float64(y)-surface+1)/span, 0), 1)

			var r rune
			switch {
			case depth < 0.05:
				r = oceanRunes[len(oceanRunes)-1]
			case depth < 0.15:
				r = oceanRunes[len(oceanRunes)-2]
			default:
				r = oceanRunes[min(int(math.Round(depth*float64(len(oceanRunes)-3))), len(oceanRunes)-3)]
			}

			shimmer := 1 + 0.1*math.Sin(fx*0.3+float64(y)*0.2+e.time*2)
			fg := render.Scale(pal.Lookup(1-depth), shimmer)
			bg := render.Scale(pal.Lookup(max(1-depth-oceanBgDepth, 0)), oceanBgShare)

			if foam && float64(y) == surface-1 {
				r, fg = oceanFoam, pal.Accent()
			}
			buf.SetCell(x, y, r, fg, bg)
		}
	}
}
