package effect

import (
	"math/rand/v2"

	"github.com/lixenwraith/digital-rain/charset"
	"github.com/lixenwraith/digital-rain/render"
)

const (
	// cascadeSweep is the number of seconds a sweep takes to cross the screen at speed 1
	cascadeSweep = 3.5
	// cascadeTrail is how far past the right edge the wavefront runs before a restart is allowed
	cascadeTrail = 10.0
	// cascadeFill is the chance a lane starts a column when reached, at density 1
	cascadeFill = 0.7
)

// Cascade starts each lane only when a left-to-right wavefront reaches it
// Columns drain without respawning; the sweep restarts once the screen is empty
type Cascade struct {
	rng       *rand.Rand
	cols      []*Column
	activated []bool
	wave      float64
	width     int
	height    int
}

// NewCascade creates the cascade effect
func NewCascade(rng *rand.Rand) Effect {
	return &Cascade{rng: rng}
}

func (e *Cascade) Name() string { return NameCascade }

// Wave returns the wavefront column position
func (e *Cascade) Wave() float64 { return e.wave }

func (e *Cascade) reset() {
	e.wave = 0
	e.activated = make([]bool, e.width)
}

func (e *Cascade) Update(p *Params, buf *render.Buffer) {
	w, h := buf.Width(), buf.Height()
	if w != e.width || h != e.height {
		e.width, e.height = w, h
		kept := e.cols[:0]
		for _, c := range e.cols {
			if c.X < w {
				kept = append(kept, c)
			}
		}
		clear(e.cols[len(kept):])
		e.cols = kept
		e.reset()
	}

	e.wave += float64(w) / cascadeSweep * p.Speed * p.Delta
	fill := min(1, cascadeFill*p.Density)
	reach := min(int(e.wave), w)
	for x := 0; x < reach; x++ {
		if e.activated[x] {
			continue
		}
		e.activated[x] = true
		if e.rng.Float64() < fill {
			e.cols = append(e.cols, newColumn(x, h, e.rng, goldPerColumn))
		}
	}

	kept := e.cols[:0]
	for _, c := range e.cols {
		if !c.advance(p.Delta, p.Speed, h, p.Charset, charset.DefaultMutation, 0, e.rng) {
			kept = append(kept, c)
		}
	}
	clear(e.cols[len(kept):])
	e.cols = kept

	if e.wave > float64(w)+cascadeTrail && len(e.cols) == 0 {
		e.reset()
	}

	for _, c := range e.cols {
		c.render(buf, p.Palette, p.Forward, nil)
	}
}
