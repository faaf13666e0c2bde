package effect

import (
	"math"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/lixenwraith/digital-rain/charset"
	"github.com/lixenwraith/digital-rain/render"
)

func TestCatalogRunsAndNames(t *testing.T) {
	reg := NewDefaultRegistry()
	for _, name := range reg.Names() {
		t.Run(name, func(t *testing.T) {
			e, err := reg.Create(name, testRNG(11))
			if err != nil {
				t.Fatalf("Create: %v", err)
			}
			if e.Name() != name {
				t.Errorf("Name() = %q, want %q", e.Name(), name)
			}

			buf := testBuffer(t, 80, 24)
			p := testParams()
			runTicks(e, p, buf, 120)

			painted := 0
			for _, c := range buf.Cells() {
				if c != render.Empty {
					painted++
				}
			}
			if painted == 0 {
				t.Error("nothing painted after 120 ticks")
			}
		})
	}
}

func TestCatalogDeterministic(t *testing.T) {
	reg := NewDefaultRegistry()
	for _, name := range reg.Names() {
		t.Run(name, func(t *testing.T) {
			frames := make([][]render.Cell, 2)
			for i := range frames {
				e, _ := reg.Create(name, testRNG(42))
				buf := testBuffer(t, 60, 20)
				runTicks(e, testParams(), buf, 90)
				frames[i] = slices.Clone(buf.Cells())
			}
			if diff := cmp.Diff(frames[0], frames[1]); diff != "" {
				t.Errorf("same seed produced different frames:\n%s", diff)
			}
		})
	}
}

func TestCatalogSurvivesResize(t *testing.T) {
	reg := NewDefaultRegistry()
	for _, name := range reg.Names() {
		t.Run(name, func(t *testing.T) {
			e, _ := reg.Create(name, testRNG(5))
			p := testParams()
			buf := testBuffer(t, 80, 24)
			runTicks(e, p, buf, 30)
			if err := buf.Resize(40, 20); err != nil {
				t.Fatal(err)
			}
			runTicks(e, p, buf, 30)
			if err := buf.Resize(1, 1); err != nil {
				t.Fatal(err)
			}
			runTicks(e, p, buf, 10)
			if err := buf.Resize(120, 40); err != nil {
				t.Fatal(err)
			}
			runTicks(e, p, buf, 10)
		})
	}
}

// Column motion is strictly increasing between respawns and respawn re-enters from above
func TestColumnEffectsMove(t *testing.T) {
	fields := map[string]func(Effect) []*Field{
		NameClassic:  func(e Effect) []*Field { return []*Field{e.(*Classic).field} },
		NameBinary:   func(e Effect) []*Field { return []*Field{e.(*Binary).field} },
		NamePulse:    func(e Effect) []*Field { return []*Field{e.(*Pulse).field} },
		NameGlitch:   func(e Effect) []*Field { return []*Field{e.(*Glitch).field} },
		NameParallax: func(e Effect) []*Field { return []*Field{e.(*Parallax).layers[0].field, e.(*Parallax).layers[1].field} },
	}
	reg := NewDefaultRegistry()
	for name, get := range fields {
		t.Run(name, func(t *testing.T) {
			e, _ := reg.Create(name, testRNG(9))
			buf := testBuffer(t, 80, 24)
			p := testParams()

			last := make(map[*Column]float64)
			best := 0
			streak := make(map[*Column]int)
			for range 100 {
				runTicks(e, p, buf, 1)
				for _, f := range get(e) {
					for _, c := range f.Columns() {
						prev, seen := last[c]
						switch {
						case !seen:
						case c.Head > prev:
							streak[c]++
							best = max(best, streak[c])
						case c.Head < prev:
							if c.Head > 0 {
								t.Fatalf("head moved back to %v without respawning", c.Head)
							}
							streak[c] = 0
						}
						last[c] = c.Head
					}
				}
			}
			if best < 10 {
				t.Errorf("longest strictly increasing head run = %d ticks", best)
			}
		})
	}
}

// Every column with trail on screen shows at least one non-background glyph in its lane
func TestClassicSpawnedColumnsVisible(t *testing.T) {
	e := NewClassic(testRNG(2024))
	buf := testBuffer(t, 80, 24)
	p := testParams()
	runTicks(e, p, buf, 100)

	cols := e.(*Classic).field.Columns()
	if len(cols) == 0 {
		t.Fatal("no columns after 100 ticks")
	}
	checked := 0
	for _, c := range cols {
		top, bottom := max(c.TailRow(), 0), min(c.HeadRow(), buf.Height()-1)
		if c.Glyphs() == 0 || top > bottom {
			continue
		}
		checked++
		lit := false
		for y := top; y <= bottom; y++ {
			if cell, _ := buf.Get(c.X, y); cell.Fg != render.Background && cell.Rune != ' ' {
				lit = true
				break
			}
		}
		if !lit {
			t.Errorf("column at x=%d rows %d..%d is blank", c.X, top, bottom)
		}
	}
	if checked == 0 {
		t.Error("no visible columns to check")
	}
}

func TestFieldPopulationFollowsDensity(t *testing.T) {
	tests := []struct {
		density float64
		min     int
		max     int
	}{
		{0.2, 1, 8},
		{1, 30, 40},
		{3, 100, 120},
	}
	for _, tt := range tests {
		f := NewField(testRNG(4), FieldConfig{})
		p := testParams()
		p.Density = tt.density
		for range 300 {
			f.Update(p, 80, 24)
		}
		n := len(f.Columns())
		if n < tt.min || n > tt.max {
			t.Errorf("density %v: %d columns, want %d..%d", tt.density, n, tt.min, tt.max)
		}
	}
}

func TestFieldResizeDropsLanes(t *testing.T) {
	f := NewField(testRNG(6), FieldConfig{})
	p := testParams()
	for range 60 {
		f.Update(p, 80, 24)
	}
	f.Update(p, 10, 24)
	for _, c := range f.Columns() {
		if c.X >= 10 {
			t.Fatalf("column at x=%d survived shrink to 10", c.X)
		}
	}
}

func TestBinaryUsesBinaryGlyphs(t *testing.T) {
	e := NewBinary(testRNG(8))
	buf := testBuffer(t, 40, 20)
	runTicks(e, testParams(), buf, 60)
	for _, c := range buf.Cells() {
		if c.Rune != ' ' && !charset.Binary.Contains(c.Rune) {
			t.Fatalf("binary effect drew %q", c.Rune)
		}
	}
}

func TestCascadeGatesLanesBehindWave(t *testing.T) {
	e := NewCascade(testRNG(12)).(*Cascade)
	buf := testBuffer(t, 70, 20)
	p := testParams()
	for range 15 {
		runTicks(e, p, buf, 1)
		wave := int(e.Wave())
		for _, c := range e.cols {
			if c.X >= wave {
				t.Fatalf("column at x=%d ahead of wave %d", c.X, wave)
			}
		}
	}
	if len(e.cols) == 0 {
		t.Error("no lanes started behind the wave")
	}
}

func TestCascadeRestartsSweep(t *testing.T) {
	e := NewCascade(testRNG(13)).(*Cascade)
	buf := testBuffer(t, 20, 10)
	p := testParams()
	restarted := false
	prev := 0.0
	for range 600 {
		runTicks(e, p, buf, 1)
		if e.Wave() < prev {
			restarted = true
			break
		}
		prev = e.Wave()
	}
	if !restarted {
		t.Error("wavefront never restarted")
	}
}

func TestPulseBrightness(t *testing.T) {
	if got := pulseBrightness(5, 5, 10); math.Abs(got-1) > 1e-9 {
		t.Errorf("crest brightness = %v", got)
	}
	if got := pulseBrightness(10, 5, 10); math.Abs(got-(1-pulseAmplitude)) > 1e-9 {
		t.Errorf("trough brightness = %v", got)
	}
}

func TestRotateRow(t *testing.T) {
	mk := func(s string) []render.Cell {
		out := make([]render.Cell, 0, len(s))
		for _, r := range s {
			out = append(out, render.Cell{Rune: r})
		}
		return out
	}
	tests := []struct {
		n    int
		want string
	}{
		{2, "deabc"},
		{-1, "bcdea"},
		{5, "abcde"},
		{7, "deabc"},
		{0, "abcde"},
	}
	for _, tt := range tests {
		row := mk("abcde")
		rotateRow(row, tt.n)
		got := ""
		for _, c := range row {
			got += string(c.Rune)
		}
		if got != tt.want {
			t.Errorf("rotateRow(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestGlitchEventsExpire(t *testing.T) {
	e := NewGlitch(testRNG(14)).(*Glitch)
	buf := testBuffer(t, 50, 20)
	p := testParams()
	seen := false
	for range 200 {
		runTicks(e, p, buf, 1)
		for _, ev := range e.events {
			seen = true
			if ev.ttl <= 0 || ev.ttl > 0.2 {
				t.Fatalf("live event ttl %v", ev.ttl)
			}
			if ev.x < 0 || ev.y < 0 || ev.x+ev.w > 50 || ev.y+ev.h > 20 {
				t.Fatalf("event outside screen: %+v", ev)
			}
		}
	}
	if !seen {
		t.Error("no glitch events in 200 ticks")
	}
}

func TestFireHeat(t *testing.T) {
	e := NewFire(testRNG(15)).(*Fire)
	buf := testBuffer(t, 40, 20)
	runTicks(e, testParams(), buf, 60)

	for y := 0; y < 20; y++ {
		for x := 0; x < 40; x++ {
			if h := e.Heat(x, y); h < 0 || h > 1 {
				t.Fatalf("heat(%d,%d) = %v", x, y, h)
			}
		}
	}
	bottom, top := 0.0, 0.0
	for x := 0; x < 40; x++ {
		bottom += e.Heat(x, 19)
		top += e.Heat(x, 0)
	}
	if bottom <= top {
		t.Errorf("fire not hotter at the bottom: bottom %v top %v", bottom, top)
	}
	if e.Heat(-1, 0) != 0 || e.Heat(0, 99) != 0 {
		t.Error("out of bounds heat not zero")
	}
}

func TestOceanFillsBelowSurface(t *testing.T) {
	e := NewOcean(testRNG(16))
	buf := testBuffer(t, 60, 40)
	runTicks(e, testParams(), buf, 10)

	// The bottom row is always under water; the top row is always sky
	for x := 0; x < 60; x++ {
		if c, _ := buf.Get(x, 39); c.Bg == render.Background {
			t.Fatalf("bottom cell %d unshaded", x)
		}
		if c, _ := buf.Get(x, 0); c != render.Empty {
			t.Fatalf("sky cell %d painted: %+v", x, c)
		}
	}
}
