package effect

import (
	"math"
	"math/rand/v2"

	"github.com/lixenwraith/digital-rain/charset"
	"github.com/lixenwraith/digital-rain/render"
)

const (
	// laneFill is the target share of lanes holding a column at density 1
	laneFill = 0.5
	// spawnRate is new columns per lane per second at density 1
	spawnRate = 0.25
	// laneProbes is how many random lanes are tried when looking for an empty one
	laneProbes = 8
)

// FieldConfig tunes one column population
// Zero scales mean 1; a zero Mutation means charset.DefaultMutation
type FieldConfig struct {
	SpeedScale   float64
	DensityScale float64
	GoldGlyph    float64
	GoldColumn   float64
	Charset      *charset.Set // overrides Params.Charset when set
	Mutation     charset.Mutation
}

// Field is a population of columns sized by width and density
type Field struct {
	cfg    FieldConfig
	rng    *rand.Rand
	cols   []*Column
	width  int
	height int

	spawnAcc float64
	seeded   bool
}

// NewField creates an empty field; columns appear on the first Update
func NewField(rng *rand.Rand, cfg FieldConfig) *Field {
	if cfg.SpeedScale <= 0 {
		cfg.SpeedScale = 1
	}
	if cfg.DensityScale <= 0 {
		cfg.DensityScale = 1
	}
	if cfg.Mutation == (charset.Mutation{}) {
		cfg.Mutation = charset.DefaultMutation
	}
	return &Field{cfg: cfg, rng: rng}
}

// Columns exposes the live columns
func (f *Field) Columns() []*Column {
	return f.cols
}

// target is the column population the field grows toward
func (f *Field) target(density float64) int {
	t := int(math.Round(float64(f.width) * laneFill * density * f.cfg.DensityScale))
	return min(max(t, 1), 2*f.width)
}

func (f *Field) charset(p *Params) *charset.Set {
	if f.cfg.Charset != nil {
		return f.cfg.Charset
	}
	return p.Charset
}

// resize drops lanes beyond the new width
func (f *Field) resize(width, height int) {
	if width == f.width && height == f.height {
		return
	}
	kept := f.cols[:0]
	for _, c := range f.cols {
		if c.X < width {
			kept = append(kept, c)
		}
	}
	clear(f.cols[len(kept):])
	f.cols = kept
	f.width = width
	f.height = height
}

// Update advances every column, respawning or retiring finished ones, then spawns toward the target
func (f *Field) Update(p *Params, width, height int) {
	f.resize(width, height)
	if width <= 0 || height <= 0 {
		return
	}
	set := f.charset(p)
	speed := p.Speed * f.cfg.SpeedScale
	target := f.target(p.Density)

	if !f.seeded {
		for range (target + 1) / 2 {
			f.spawn()
		}
		f.seeded = true
	}

	kept := f.cols[:0]
	for i, c := range f.cols {
		if c.advance(p.Delta, speed, height, set, f.cfg.Mutation, f.cfg.GoldGlyph, f.rng) {
			// Retire instead of respawning while over target
			if len(kept)+len(f.cols)-i > target {
				continue
			}
			c.respawn(height, f.rng, f.cfg.GoldColumn)
		}
		kept = append(kept, c)
	}
	clear(f.cols[len(kept):])
	f.cols = kept

	if len(f.cols) >= target {
		f.spawnAcc = 0
		return
	}
	f.spawnAcc += float64(width) * spawnRate * p.Density * f.cfg.DensityScale * p.Delta
	for f.spawnAcc >= 1 && len(f.cols) < target {
		f.spawnAcc--
		f.spawn()
	}
}

func (f *Field) spawn() {
	f.cols = append(f.cols, newColumn(f.pickLane(), f.height, f.rng, f.cfg.GoldColumn))
}

// pickLane prefers a lane with no column in it
func (f *Field) pickLane() int {
	x := f.rng.IntN(f.width)
	for range laneProbes {
		if !f.occupied(x) {
			return x
		}
		x = f.rng.IntN(f.width)
	}
	return x
}

func (f *Field) occupied(x int) bool {
	for _, c := range f.cols {
		if c.X == x {
			return true
		}
	}
	return false
}

// Render paints every column with the tick's palette and gradient direction, passing colors through shade when set
func (f *Field) Render(buf *render.Buffer, p *Params, shade Shader) {
	for _, c := range f.cols {
		c.render(buf, p.Palette, p.Forward, shade)
	}
}
