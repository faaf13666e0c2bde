package palette

import (
	"fmt"
	"slices"
	"strings"
)

// Selectable palettes in display order
var (
	Classic = mustNew("classic", Gold,
		Stop{0, RGB{R: 0, G: 60, B: 15}},
		Stop{0.5, RGB{R: 0, G: 150, B: 30}},
		Stop{0.85, RGB{R: 0, G: 230, B: 50}},
		Stop{1, RGB{R: 220, G: 255, B: 220}},
	)
	GoldPalette = mustNew("gold", RGB{R: 255, G: 250, B: 235},
		Stop{0, RGB{R: 60, G: 40, B: 0}},
		Stop{0.5, RGB{R: 170, G: 120, B: 0}},
		Stop{0.85, RGB{R: 255, G: 190, B: 0}},
		Stop{1, RGB{R: 255, G: 250, B: 210}},
	)
	Cyan = mustNew("cyan", Gold,
		Stop{0, RGB{R: 0, G: 40, B: 60}},
		Stop{0.5, RGB{R: 0, G: 130, B: 160}},
		Stop{0.85, RGB{R: 0, G: 220, B: 255}},
		Stop{1, RGB{R: 210, G: 255, B: 255}},
	)
	Red = mustNew("red", Gold,
		Stop{0, RGB{R: 60, G: 0, B: 0}},
		Stop{0.5, RGB{R: 160, G: 0, B: 10}},
		Stop{0.85, RGB{R: 255, G: 30, B: 30}},
		Stop{1, RGB{R: 255, G: 210, B: 200}},
	)
	Monochrome = mustNew("monochrome", Gold,
		Stop{0, RGB{R: 50, G: 50, B: 50}},
		Stop{0.5, RGB{R: 130, G: 130, B: 130}},
		Stop{0.85, RGB{R: 200, G: 200, B: 200}},
		Stop{1, RGB{R: 255, G: 255, B: 255}},
	)
	Purple = mustNew("purple", Gold,
		Stop{0, RGB{R: 40, G: 0, B: 60}},
		Stop{0.5, RGB{R: 110, G: 20, B: 160}},
		Stop{0.85, RGB{R: 190, G: 60, B: 255}},
		Stop{1, RGB{R: 240, G: 210, B: 255}},
	)
)

// Fixed palettes owned by the fire and ocean effects
var (
	Fire = mustNew("fire", RGB{R: 255, G: 255, B: 200},
		Stop{0, RGB{R: 0, G: 0, B: 0}},
		Stop{0.2, RGB{R: 120, G: 0, B: 0}},
		Stop{0.4, RGB{R: 220, G: 30, B: 0}},
		Stop{0.6, RGB{R: 255, G: 130, B: 0}},
		Stop{0.8, RGB{R: 255, G: 220, B: 50}},
		Stop{1, RGB{R: 255, G: 255, B: 200}},
	)
	Ocean = mustNew("ocean", RGB{R: 220, G: 240, B: 255},
		Stop{0, RGB{R: 0, G: 20, B: 60}},
		Stop{0.4, RGB{R: 0, G: 60, B: 140}},
		Stop{0.7, RGB{R: 30, G: 120, B: 200}},
		Stop{0.9, RGB{R: 80, G: 200, B: 220}},
		Stop{1, RGB{R: 220, G: 240, B: 255}},
	)
)

var builtins = []*Palette{Classic, GoldPalette, Cyan, Red, Monochrome, Purple}

// Names lists the selectable builtin palettes in display order
func Names() []string {
	names := make([]string, len(builtins))
	for i, p := range builtins {
		names[i] = p.name
	}
	return names
}

// CSSNames lists every CSS color name usable with ByName, sorted
func CSSNames() []string {
	names := make([]string, 0, len(cssColors))
	for n := range cssColors {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// CSSColor returns the RGB value of a CSS named color
func CSSColor(name string) (RGB, bool) {
	c, ok := cssColors[strings.ToLower(name)]
	return c, ok
}

// ByName resolves a builtin palette, then a CSS color through FromBase
func ByName(name string) (*Palette, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for _, p := range builtins {
		if p.name == key {
			return p, nil
		}
	}
	switch key {
	case Fire.name:
		return Fire, nil
	case Ocean.name:
		return Ocean, nil
	}
	if c, ok := cssColors[key]; ok {
		return FromBase(key, c), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownPalette, name)
}
