// Package config loads animation parameters from TOML files and named presets
package config

import (
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/lixenwraith/digital-rain/effect"
	"github.com/lixenwraith/digital-rain/engine"
)

// AppName names the directory under the user config dir
const AppName = "digital-rain"

// Config is the on-disk form of the animation parameters
type Config struct {
	Effect       string  `toml:"effect"`
	Color        string  `toml:"color"`
	Charset      string  `toml:"charset"`
	Speed        float64 `toml:"speed"`
	Density      float64 `toml:"density"`
	FPS          int     `toml:"fps"`
	Timer        float64 `toml:"timer"` // auto-cycle seconds, 0 disables
	CRT          bool    `toml:"crt"`
	CRTIntensity float64 `toml:"crt_intensity"`
	Transitions  bool    `toml:"transitions"`
	Forward      bool    `toml:"forward"` // bright tail at the top, dim head at the bottom
	Seed         uint64  `toml:"seed,omitempty"` // 0 means time-seeded
}

// Default returns the built-in parameters
func Default() Config {
	return FromSettings(engine.DefaultSettings())
}

// FromSettings converts live driver settings to the file form
func FromSettings(s engine.Settings) Config {
	return Config{
		Effect:       s.Effect,
		Color:        s.Palette,
		Charset:      s.Charset,
		Speed:        s.Speed,
		Density:      s.Density,
		FPS:          s.FPS,
		Timer:        s.AutoCycle.Seconds(),
		CRT:          s.CRT,
		CRTIntensity: s.CRTIntensity,
		Transitions:  s.Transitions,
		Forward:      s.Forward,
	}
}

// Settings converts to driver settings
func (c Config) Settings() engine.Settings {
	return engine.Settings{
		Effect:       c.Effect,
		Palette:      c.Color,
		Charset:      c.Charset,
		Speed:        c.Speed,
		Density:      c.Density,
		FPS:          c.FPS,
		AutoCycle:    time.Duration(c.Timer * float64(time.Second)),
		CRT:          c.CRT,
		CRTIntensity: c.CRTIntensity,
		Transitions:  c.Transitions,
		Forward:      c.Forward,
	}
}

// Normalize clamps speed and density to 0.1-10, fps to 10-120, crt_intensity to 0-1,
// and a positive timer to at least one second
// An explicit crt_intensity of 0 is kept; the CRT filter is then an identity pass
func (c Config) Normalize() Config {
	n := FromSettings(c.Settings().Normalize())
	n.Seed = c.Seed
	return n
}

// Randomized replaces effect, color, charset, speed and density with random picks
func (c Config) Randomized(rng *rand.Rand, reg *effect.Registry) Config {
	r := FromSettings(engine.Randomize(c.Settings(), rng, reg))
	r.Seed = c.Seed
	return r
}

// Load overlays the TOML file at path on the defaults
func Load(path string) (Config, error) {
	c := Default()
	if err := decodeFile(path, &c); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Overlay decodes path on top of c; keys missing from the file keep their value
func (c Config) Overlay(path string) (Config, error) {
	if err := decodeFile(path, &c); err != nil {
		return Config{}, err
	}
	return c, nil
}

func decodeFile(path string, c *Config) error {
	md, err := toml.DecodeFile(path, c)
	if err != nil {
		return fmt.Errorf("config %s: %w", path, err)
	}
	if keys := md.Undecoded(); len(keys) > 0 {
		names := make([]string, len(keys))
		for i, k := range keys {
			names[i] = k.String()
		}
		log.Printf("config %s: ignoring unknown keys %s", path, strings.Join(names, ", "))
	}
	return nil
}

// Write encodes c as TOML at path, creating parent directories
func Write(path string, c Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".preset-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := toml.NewEncoder(tmp).Encode(c); err != nil {
		tmp.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// Dir returns the application config directory under os.UserConfigDir
func Dir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, AppName), nil
}
