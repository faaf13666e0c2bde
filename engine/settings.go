package engine

import (
	"math/rand/v2"
	"time"

	"github.com/lixenwraith/digital-rain/charset"
	"github.com/lixenwraith/digital-rain/effect"
	"github.com/lixenwraith/digital-rain/palette"
)

// Parameter limits and defaults
const (
	DefaultFPS   = 30
	MinFPS       = 10
	MaxFPS       = 120
	MinSpeed     = 0.1
	MaxSpeed     = 10.0
	MinDensity   = 0.1
	MaxDensity   = 10.0
	SpeedStep    = 0.2
	DensityStep  = 0.2
	MinAutoCycle = time.Second
)

// Ranges drawn by Randomize
const (
	randomSpeedMin   = 0.5
	randomSpeedMax   = 2.5
	randomDensityMin = 0.3
	randomDensityMax = 2.0
)

// Settings are the live parameters the driver reads every tick
type Settings struct {
	Effect  string
	Palette string
	Charset string

	Speed        float64
	Density      float64
	CRTIntensity float64
	FPS          int

	CRT         bool
	Transitions bool
	Forward     bool // reverse column gradients: dim head, bright tail
	AutoCycle   time.Duration
}

// DefaultSettings returns classic green rain at normal speed
func DefaultSettings() Settings {
	return Settings{
		Effect:       effect.NameClassic,
		Palette:      palette.Classic.Name(),
		Charset:      charset.Matrix.Name(),
		Speed:        1,
		Density:      1,
		CRTIntensity: 0.7,
		FPS:          DefaultFPS,
		Transitions:  true,
	}
}

// Normalize clamps every numeric field into its legal range
func (s Settings) Normalize() Settings {
	s.Speed = clamp(s.Speed, MinSpeed, MaxSpeed)
	s.Density = clamp(s.Density, MinDensity, MaxDensity)
	s.CRTIntensity = clamp(s.CRTIntensity, 0, 1)
	s.FPS = min(max(s.FPS, MinFPS), MaxFPS)
	if s.AutoCycle < 0 {
		s.AutoCycle = 0
	}
	if s.AutoCycle > 0 && s.AutoCycle < MinAutoCycle {
		s.AutoCycle = MinAutoCycle
	}
	return s
}

// Randomize picks effect, palette, charset, speed and density; the rest is kept
func Randomize(s Settings, rng *rand.Rand, reg *effect.Registry) Settings {
	if name := reg.Random(rng); name != "" {
		s.Effect = name
	}
	palettes := palette.Names()
	s.Palette = palettes[rng.IntN(len(palettes))]
	sets := charset.Names()
	s.Charset = sets[rng.IntN(len(sets))]
	s.Speed = randomSpeedMin + rng.Float64()*(randomSpeedMax-randomSpeedMin)
	s.Density = randomDensityMin + rng.Float64()*(randomDensityMax-randomDensityMin)
	return s
}

func clamp(v, lo, hi float64) float64 {
	if v != v {
		return lo
	}
	return min(max(v, lo), hi)
}
