// Package transition blends the outgoing and incoming effect during a switch
package transition

import (
	"github.com/lixenwraith/digital-rain/effect"
	"github.com/lixenwraith/digital-rain/render"
)

// DefaultDuration is the crossfade length in seconds
const DefaultDuration = 0.75

// Blend writes the mix of out and in at progress t into dst
// Colors are interpolated; the glyph comes from out below the midpoint and from in after it
// Mismatched dimensions leave dst untouched
func Blend(dst, out, in *render.Buffer, t float64) bool {
	w, h := dst.Width(), dst.Height()
	if out.Width() != w || out.Height() != h || in.Width() != w || in.Height() != h {
		return false
	}
	t = min(max(t, 0), 1)

	d, a, b := dst.Cells(), out.Cells(), in.Cells()
	for i := range d {
		r := a[i].Rune
		if t >= 0.5 {
			r = b[i].Rune
		}
		d[i] = render.Cell{
			Rune: r,
			Fg:   render.Lerp(a[i].Fg, b[i].Fg, t),
			Bg:   render.Lerp(a[i].Bg, b[i].Bg, t),
		}
	}
	return true
}

// Crossfade runs two effects side by side for DefaultDuration seconds
// Both keep updating into private buffers; the blend lands in the caller's buffer
type Crossfade struct {
	outgoing effect.Effect
	incoming effect.Effect
	elapsed  float64
	duration float64

	outBuf *render.Buffer
	inBuf  *render.Buffer
}

// New starts a crossfade between two running effects
func New(outgoing, incoming effect.Effect) *Crossfade {
	return &Crossfade{
		outgoing: outgoing,
		incoming: incoming,
		duration: DefaultDuration,
	}
}

// Progress returns elapsed over duration in [0,1]
func (c *Crossfade) Progress() float64 {
	return min(c.elapsed/c.duration, 1)
}

// Done reports whether the incoming effect has fully taken over
func (c *Crossfade) Done() bool {
	return c.elapsed >= c.duration
}

// Incoming is the effect that survives the transition
func (c *Crossfade) Incoming() effect.Effect {
	return c.incoming
}

// Outgoing is the effect being replaced
func (c *Crossfade) Outgoing() effect.Effect {
	return c.outgoing
}

// Step updates both effects and blends them into dst
func (c *Crossfade) Step(p *effect.Params, dst *render.Buffer) error {
	w, h := dst.Width(), dst.Height()
	var err error
	if c.outBuf, err = fit(c.outBuf, w, h); err != nil {
		return err
	}
	if c.inBuf, err = fit(c.inBuf, w, h); err != nil {
		return err
	}

	c.elapsed += p.Delta
	c.outBuf.Clear()
	c.outgoing.Update(p, c.outBuf)
	c.inBuf.Clear()
	c.incoming.Update(p, c.inBuf)

	Blend(dst, c.outBuf, c.inBuf, c.Progress())
	return nil
}

// fit returns a buffer of the requested size, reusing b when possible
func fit(b *render.Buffer, w, h int) (*render.Buffer, error) {
	if b == nil {
		return render.NewBuffer(w, h)
	}
	if b.Width() == w && b.Height() == h {
		return b, nil
	}
	return b, b.Resize(w, h)
}
