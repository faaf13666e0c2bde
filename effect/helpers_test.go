package effect

import (
	"math/rand/v2"
	"testing"

	"github.com/lixenwraith/digital-rain/charset"
	"github.com/lixenwraith/digital-rain/palette"
	"github.com/lixenwraith/digital-rain/render"
)

const testDelta = 1.0 / 30

func testRNG(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func testParams() *Params {
	return &Params{
		Speed:   1,
		Density: 1,
		Palette: palette.Classic,
		Charset: charset.Matrix,
		Delta:   testDelta,
	}
}

func testBuffer(t *testing.T, w, h int) *render.Buffer {
	t.Helper()
	b, err := render.NewBuffer(w, h)
	if err != nil {
		t.Fatalf("NewBuffer: %v", err)
	}
	return b
}

// runTicks drives e the way the frame driver does: clear, update, swap
func runTicks(e Effect, p *Params, buf *render.Buffer, n int) {
	for range n {
		buf.Clear()
		p.Elapsed += p.Delta
		e.Update(p, buf)
		buf.Swap()
	}
}
