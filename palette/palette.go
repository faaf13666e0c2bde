// Package palette maps a brightness position in [0,1] to a color through
// ordered gradient stops. Position 1 is the leading glyph, 0 the tail end.
package palette

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/lixenwraith/digital-rain/render"
)

// RGB is an alias to render.RGB
type RGB = render.RGB

var (
	// ErrDegenerateGradient is returned for fewer than two stops or stops not spanning [0,1]
	ErrDegenerateGradient = errors.New("degenerate gradient")
	// ErrUnknownPalette is returned by ByName for an unresolvable name
	ErrUnknownPalette = errors.New("unknown palette")
)

// Gold is the highlight color for gold glyphs
var Gold = RGB{R: 255, G: 215, B: 0}

// Stop is one gradient keyframe
type Stop struct {
	Pos   float64
	Color RGB
}

// Palette is an immutable gradient
type Palette struct {
	name   string
	stops  []Stop
	accent RGB
}

// New sorts the stops and validates that they span exactly [0,1]
func New(name string, stops ...Stop) (*Palette, error) {
	if len(stops) < 2 {
		return nil, fmt.Errorf("%w: %q has %d stops", ErrDegenerateGradient, name, len(stops))
	}
	sorted := slices.Clone(stops)
	slices.SortStableFunc(sorted, func(a, b Stop) int {
		switch {
		case a.Pos < b.Pos:
			return -1
		case a.Pos > b.Pos:
			return 1
		}
		return 0
	})
	for _, s := range sorted {
		if math.IsNaN(s.Pos) || s.Pos < 0 || s.Pos > 1 {
			return nil, fmt.Errorf("%w: %q stop at %v", ErrDegenerateGradient, name, s.Pos)
		}
	}
	if sorted[0].Pos != 0 || sorted[len(sorted)-1].Pos != 1 {
		return nil, fmt.Errorf("%w: %q must have stops at 0 and 1", ErrDegenerateGradient, name)
	}
	return &Palette{name: name, stops: sorted, accent: Gold}, nil
}

// mustNew is for package-level tables known to be valid
func mustNew(name string, accent RGB, stops ...Stop) *Palette {
	p, err := New(name, stops...)
	if err != nil {
		panic(err)
	}
	p.accent = accent
	return p
}

// Name returns the palette name
func (p *Palette) Name() string { return p.name }

// Accent returns the highlight color used for gold glyphs
func (p *Palette) Accent() RGB { return p.accent }

// Stops returns a copy of the sorted stops
func (p *Palette) Stops() []Stop { return slices.Clone(p.stops) }

// Lookup returns the color at pos, clamped to [0,1]
// Exact stop positions return the stop color unchanged
func (p *Palette) Lookup(pos float64) RGB {
	if math.IsNaN(pos) || pos <= 0 {
		return p.stops[0].Color
	}
	last := len(p.stops) - 1
	if pos >= 1 {
		return p.stops[last].Color
	}
	for i := 1; i <= last; i++ {
		hi := p.stops[i]
		if pos > hi.Pos {
			continue
		}
		lo := p.stops[i-1]
		span := hi.Pos - lo.Pos
		if span <= 0 {
			return hi.Color
		}
		return render.Lerp(lo.Color, hi.Color, (pos-lo.Pos)/span)
	}
	return p.stops[last].Color
}
