package effect

import (
	"testing"

	"github.com/lixenwraith/digital-rain/charset"
	"github.com/lixenwraith/digital-rain/palette"
	"github.com/lixenwraith/digital-rain/render"
)

func TestColumnRespawnsOnlyAfterTrailLeaves(t *testing.T) {
	rng := testRNG(1)
	c := &Column{X: 0, Head: 0, Speed: 10, Length: 5}
	const height = 10

	for step := 1; step <= 20; step++ {
		done := c.advance(0.1, 1, height, charset.Digits, charset.DefaultMutation, 0, rng)
		if c.HeadRow() != step {
			t.Fatalf("step %d: head row %d", step, c.HeadRow())
		}
		wantDone := c.TailRow() >= height
		if done != wantDone {
			t.Fatalf("step %d: done=%v, tail row %d", step, done, c.TailRow())
		}
		if done {
			// Head has passed the bottom by the trail length
			if step != height+c.Length-1 {
				t.Errorf("expired at step %d, want %d", step, height+c.Length-1)
			}
			return
		}
		if c.Glyphs() > c.Length {
			t.Fatalf("trail %d exceeds length %d", c.Glyphs(), c.Length)
		}
	}
	t.Fatal("column never expired")
}

func TestColumnRespawnState(t *testing.T) {
	rng := testRNG(2)
	const height = 24
	for range 200 {
		c := newColumn(3, height, rng, 0)
		if c.Head > 0 || c.Head <= -float64(height)/2-1 {
			t.Fatalf("spawn head %v outside (-h/2, 0]", c.Head)
		}
		if c.Speed < minColumnSpeed || c.Speed >= maxColumnSpeed {
			t.Fatalf("speed %v out of range", c.Speed)
		}
		if c.Length < height/3 || c.Length > height {
			t.Fatalf("length %d out of range", c.Length)
		}
		if c.X != 3 {
			t.Fatalf("lane changed to %d", c.X)
		}
	}

	// Height 1 still yields a valid column
	c := newColumn(0, 1, rng, 0)
	if c.Length != 1 {
		t.Errorf("length on 1-row screen = %d", c.Length)
	}
}

func TestColumnRenderGradient(t *testing.T) {
	buf := testBuffer(t, 2, 6)
	pal := palette.Classic
	c := &Column{X: 1, Head: 3.4, Length: 4}
	c.trail = []Glyph{{Rune: 'a'}, {Rune: 'b'}, {Rune: 'c', Gold: true}, {Rune: 'd'}}

	c.render(buf, pal, false, nil)

	want := []struct {
		y  int
		r  rune
		fg render.RGB
	}{
		{3, 'd', pal.Lookup(1)},
		{2, 'c', pal.Accent()},
		{1, 'b', pal.Lookup(0.5)},
		{0, 'a', pal.Lookup(0.25)},
	}
	for _, w := range want {
		got, _ := buf.Get(1, w.y)
		if got.Rune != w.r || got.Fg != w.fg {
			t.Errorf("row %d = %q %v, want %q %v", w.y, got.Rune, got.Fg, w.r, w.fg)
		}
	}
	if got, _ := buf.Get(1, 4); got != render.Empty {
		t.Errorf("row below head painted: %+v", got)
	}
}

func TestColumnRenderForwardReversesGradient(t *testing.T) {
	buf := testBuffer(t, 2, 6)
	pal := palette.Classic
	c := &Column{X: 0, Head: 3, Length: 4}
	c.trail = []Glyph{{Rune: 'a'}, {Rune: 'b'}, {Rune: 'c'}, {Rune: 'd'}}

	c.render(buf, pal, true, nil)

	want := []struct {
		y  int
		fg render.RGB
	}{
		{3, pal.Lookup(0)},
		{2, pal.Lookup(0.25)},
		{1, pal.Lookup(0.5)},
		{0, pal.Lookup(0.75)},
	}
	for _, w := range want {
		got, _ := buf.Get(0, w.y)
		if got.Fg != w.fg {
			t.Errorf("row %d fg = %v, want %v", w.y, got.Fg, w.fg)
		}
	}
	head, _ := buf.Get(0, 3)
	tail, _ := buf.Get(0, 0)
	if render.Brightness(head.Fg) >= render.Brightness(tail.Fg) {
		t.Errorf("head %v not dimmer than tail %v", head.Fg, tail.Fg)
	}
}

func TestColumnRenderClipsAtEdges(t *testing.T) {
	buf := testBuffer(t, 1, 3)
	c := &Column{X: 0, Head: 4, Length: 6}
	for range 6 {
		c.trail = append(c.trail, Glyph{Rune: 'x'})
	}
	c.render(buf, palette.Classic, false, nil)

	// Rows 4 and 3 are below the screen; rows 2..0 visible; -1 above
	for y := 0; y < 3; y++ {
		if got, _ := buf.Get(0, y); got.Rune != 'x' {
			t.Errorf("row %d not painted", y)
		}
	}
}

func TestColumnMutationSparesHead(t *testing.T) {
	rng := testRNG(3)
	always := charset.Mutation{Probability: 1, Interval: 0.01}
	c := &Column{X: 0, Head: 5, Length: 3}
	c.trail = []Glyph{{Rune: 'a'}, {Rune: 'a'}, {Rune: 'Z'}}

	c.mutate(0.05, charset.Digits, always, rng)
	if c.trail[2].Rune != 'Z' {
		t.Error("leading glyph mutated")
	}
	for i := 0; i < 2; i++ {
		if !charset.Digits.Contains(c.trail[i].Rune) {
			t.Errorf("glyph %d not mutated: %q", i, c.trail[i].Rune)
		}
	}
}
