package effect

import (
	"math"
	"math/rand/v2"

	"github.com/lixenwraith/digital-rain/charset"
	"github.com/lixenwraith/digital-rain/palette"
	"github.com/lixenwraith/digital-rain/render"
)

// Base fall speed range in rows per second, before the speed multiplier
const (
	minColumnSpeed = 8.0
	maxColumnSpeed = 25.0
)

// Glyph is one trail cell
type Glyph struct {
	Rune rune
	Gold bool
}

// Column is a single falling stream
// Glyph ages run from 0 at the head row upward; a glyph of age a sits at row floor(Head)-a
type Column struct {
	X      int
	Head   float64
	Speed  float64
	Length int
	Gold   bool

	trail     []Glyph // oldest first, the head glyph is last
	mutateAcc float64 // seconds since the last mutation chance
}

func newColumn(x, height int, rng *rand.Rand, goldColumn float64) *Column {
	c := &Column{X: x}
	c.respawn(height, rng, goldColumn)
	return c
}

// respawn re-enters the column from above the top edge with fresh speed and length
func (c *Column) respawn(height int, rng *rand.Rand, goldColumn float64) {
	c.Head = -randRange(rng, 0, float64(height)/2)
	c.Speed = randRange(rng, minColumnSpeed, maxColumnSpeed)
	lo := max(1, height/3)
	c.Length = randIntRange(rng, lo, max(lo, height))
	c.Gold = goldColumn > 0 && rng.Float64() < goldColumn
	c.trail = c.trail[:0]
	c.mutateAcc = 0
}

// HeadRow is the row of the leading glyph
func (c *Column) HeadRow() int {
	return int(math.Floor(c.Head))
}

// TailRow is the row of the oldest glyph still in the trail
func (c *Column) TailRow() int {
	if len(c.trail) == 0 {
		return c.HeadRow()
	}
	return c.HeadRow() - (len(c.trail) - 1)
}

// Glyphs returns the trail length currently held
func (c *Column) Glyphs() int {
	return len(c.trail)
}

// advance moves the head and reports whether the whole trail has left the screen
func (c *Column) advance(dt, speed float64, height int, set *charset.Set, mut charset.Mutation, goldGlyph float64, rng *rand.Rand) bool {
	prev := math.Floor(c.Head)
	c.Head += c.Speed * speed * dt
	steps := int(math.Floor(c.Head) - prev)

	// A jump longer than the trail replaces every glyph
	if steps >= c.Length {
		c.trail = c.trail[:0]
		steps = c.Length
	}
	for range steps {
		c.trail = append(c.trail, Glyph{
			Rune: set.Random(rng),
			Gold: goldGlyph > 0 && rng.Float64() < goldGlyph,
		})
	}
	if over := len(c.trail) - c.Length; over > 0 {
		n := copy(c.trail, c.trail[over:])
		c.trail = c.trail[:n]
	}

	c.mutate(dt, set, mut, rng)
	return c.TailRow() >= height
}

// mutate swaps non-leading glyphs on each elapsed mutation chance
func (c *Column) mutate(dt float64, set *charset.Set, mut charset.Mutation, rng *rand.Rand) {
	n, left := mut.Chances(c.mutateAcc + dt)
	c.mutateAcc = left
	// Long stalls collapse into a few chances
	n = min(n, 4)
	last := len(c.trail) - 1
	for range n {
		for i := 0; i < last; i++ {
			if mut.Roll(rng) {
				c.trail[i].Rune = set.Random(rng)
			}
		}
	}
}

// shadePos maps a glyph age to its palette position, head bright unless forward
func (c *Column) shadePos(age int, forward bool) float64 {
	pos := float64(age) / float64(c.Length)
	if forward {
		return pos
	}
	return 1 - pos
}

// render paints the visible part of the trail
func (c *Column) render(buf *render.Buffer, pal *palette.Palette, forward bool, shade Shader) {
	head := c.HeadRow()
	n := len(c.trail)
	height := buf.Height()
	for age := 0; age < n; age++ {
		y := head - age
		if y < 0 {
			break
		}
		if y >= height {
			continue
		}
		g := c.trail[n-1-age]

		var fg render.RGB
		switch {
		case age == 0:
			fg = pal.Lookup(c.shadePos(0, forward))
		case g.Gold || c.Gold:
			fg = pal.Accent()
		default:
			fg = pal.Lookup(c.shadePos(age, forward))
		}
		if shade != nil {
			fg = shade(c.X, y, fg)
		}
		buf.SetCell(c.X, y, g.Rune, fg, render.Background)
	}
}
