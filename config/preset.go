package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
)

var (
	ErrPresetNotFound    = errors.New("preset not found")
	ErrInvalidPresetName = errors.New("invalid preset name")
)

const presetExt = ".toml"

var presetName = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.-]{0,63}$`)

// Presets stores named configs as one TOML file each
type Presets struct {
	dir string
}

// NewPresets uses dir as the preset directory
func NewPresets(dir string) *Presets {
	return &Presets{dir: dir}
}

// DefaultPresets uses <UserConfigDir>/digital-rain/presets
func DefaultPresets() (*Presets, error) {
	dir, err := Dir()
	if err != nil {
		return nil, err
	}
	return NewPresets(filepath.Join(dir, "presets")), nil
}

// Dir returns the preset directory
func (p *Presets) Dir() string { return p.dir }

// Path returns the file a preset is stored in
func (p *Presets) Path(name string) (string, error) {
	if !presetName.MatchString(name) || strings.HasSuffix(name, ".") {
		return "", fmt.Errorf("%w: %q", ErrInvalidPresetName, name)
	}
	return filepath.Join(p.dir, name+presetExt), nil
}

// Save writes c under name, replacing any existing preset
func (p *Presets) Save(name string, c Config) error {
	path, err := p.Path(name)
	if err != nil {
		return err
	}
	return Write(path, c)
}

// Load reads a preset over the defaults
func (p *Presets) Load(name string) (Config, error) {
	return p.Apply(name, Default())
}

// Apply reads a preset over base
func (p *Presets) Apply(name string, base Config) (Config, error) {
	path, err := p.Path(name)
	if err != nil {
		return Config{}, err
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("%w: %s", ErrPresetNotFound, name)
	}
	return base.Overlay(path)
}

// List returns preset names sorted; a missing directory is an empty list
func (p *Presets) List() ([]string, error) {
	entries, err := os.ReadDir(p.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), presetExt) {
			continue
		}
		name := strings.TrimSuffix(e.Name(), presetExt)
		if presetName.MatchString(name) {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names, nil
}

// Delete removes a preset
func (p *Presets) Delete(name string) error {
	path, err := p.Path(name)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrPresetNotFound, name)
		}
		return err
	}
	return nil
}
