package effect

import (
	"math/rand/v2"
	"slices"

	"github.com/lixenwraith/digital-rain/render"
)

// glitchRunes replace glyphs inside a corrupted block
var glitchRunes = []rune(`#%&@!/\|.:<>~^*=`)

type glitchKind uint8

const (
	glitchTear glitchKind = iota // rows rotated horizontally
	glitchSwap                   // red and blue channels exchanged
	glitchBlock                  // glyphs replaced with noise
)

// glitchEvent is a rectangle distortion that lives for ttl seconds
type glitchEvent struct {
	kind       glitchKind
	x, y, w, h int
	offset     int
	ttl        float64
}

// Glitch is classic rain with short-lived rectangular distortions
type Glitch struct {
	field  *Field
	rng    *rand.Rand
	events []glitchEvent
	timer  float64
	width  int
	height int
}

// NewGlitch creates the glitch effect
func NewGlitch(rng *rand.Rand) Effect {
	return &Glitch{
		field: NewField(rng, FieldConfig{GoldGlyph: goldPerGlyph}),
		rng:   rng,
		timer: 0.5,
	}
}

func (e *Glitch) Name() string { return NameGlitch }

func (e *Glitch) Update(p *Params, buf *render.Buffer) {
	w, h := buf.Width(), buf.Height()
	if w != e.width || h != e.height {
		e.width, e.height = w, h
		e.events = e.events[:0]
	}

	e.field.Update(p, w, h)

	e.timer -= p.Delta
	if e.timer <= 0 {
		for range randIntRange(e.rng, 1, 3) {
			e.events = append(e.events, e.newEvent())
		}
		e.timer = randRange(e.rng, 0.3, 1.5) / max(p.Speed, 0.5)
	}

	kept := e.events[:0]
	for _, ev := range e.events {
		ev.ttl -= p.Delta
		if ev.ttl > 0 {
			kept = append(kept, ev)
		}
	}
	e.events = kept

	e.field.Render(buf, p, nil)
	for i := range e.events {
		e.apply(&e.events[i], buf)
	}
}

func (e *Glitch) newEvent() glitchEvent {
	ev := glitchEvent{
		kind: glitchKind(e.rng.IntN(3)),
		ttl:  randRange(e.rng, 0.05, 0.2),
	}
	ev.x = e.rng.IntN(e.width)
	ev.y = e.rng.IntN(e.height)
	switch ev.kind {
	case glitchTear:
		ev.x, ev.w = 0, e.width
		ev.h = randIntRange(e.rng, 1, 4)
		ev.offset = randIntRange(e.rng, 1, 8)
		if e.rng.IntN(2) == 0 {
			ev.offset = -ev.offset
		}
	case glitchSwap:
		ev.x, ev.w = 0, e.width
		ev.h = randIntRange(e.rng, 2, 6)
	case glitchBlock:
		ev.w = randIntRange(e.rng, 3, 12)
		ev.h = randIntRange(e.rng, 2, 5)
	}
	ev.w = min(ev.w, e.width-ev.x)
	ev.h = min(ev.h, e.height-ev.y)
	return ev
}

func (e *Glitch) apply(ev *glitchEvent, buf *render.Buffer) {
	for y := ev.y; y < ev.y+ev.h; y++ {
		row := buf.Row(y)
		if row == nil {
			continue
		}
		switch ev.kind {
		case glitchTear:
			rotateRow(row, ev.offset)
		case glitchSwap:
			for x := ev.x; x < ev.x+ev.w && x < len(row); x++ {
				row[x].Fg = render.SwapRB(row[x].Fg)
				row[x].Bg = render.SwapRB(row[x].Bg)
			}
		case glitchBlock:
			for x := ev.x; x < ev.x+ev.w && x < len(row); x++ {
				if row[x].Rune == ' ' {
					continue
				}
				row[x].Rune = glitchRunes[e.rng.IntN(len(glitchRunes))]
				row[x].Fg = render.Scale(row[x].Fg, randRange(e.rng, 0.5, 1.5))
			}
		}
	}
}

// rotateRow shifts cells right for positive n, left for negative
func rotateRow(row []render.Cell, n int) {
	l := len(row)
	if l == 0 {
		return
	}
	n %= l
	if n < 0 {
		n += l
	}
	if n == 0 {
		return
	}
	slices.Reverse(row)
	slices.Reverse(row[:n])
	slices.Reverse(row[n:])
}
