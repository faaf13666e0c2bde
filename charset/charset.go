// Package charset holds the glyph pools rain columns draw from
package charset

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"

	"github.com/mattn/go-runewidth"
)

var (
	ErrEmptySet       = errors.New("empty character set")
	ErrWideRune       = errors.New("glyph is not single-width")
	ErrUnknownCharset = errors.New("unknown character set")
)

// Set is an immutable, non-empty pool of single-width runes
type Set struct {
	name  string
	runes []rune
}

// New validates that every rune occupies exactly one terminal column
func New(name string, runes []rune) (*Set, error) {
	if len(runes) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrEmptySet, name)
	}
	for _, r := range runes {
		if runewidth.RuneWidth(r) != 1 {
			return nil, fmt.Errorf("%w: %q in %q", ErrWideRune, r, name)
		}
	}
	return &Set{name: name, runes: slices.Clone(runes)}, nil
}

func mustNew(name string, runes []rune) *Set {
	s, err := New(name, runes)
	if err != nil {
		panic(err)
	}
	return s
}

// Name returns the set name
func (s *Set) Name() string { return s.name }

// Len returns the number of glyphs
func (s *Set) Len() int { return len(s.runes) }

// Random picks a uniformly distributed glyph
func (s *Set) Random(rng *rand.Rand) rune {
	return s.runes[rng.IntN(len(s.runes))]
}

// Contains reports whether r belongs to the set
func (s *Set) Contains(r rune) bool {
	return slices.Contains(s.runes, r)
}

// Sample returns up to n leading glyphs as a string, for listings
func (s *Set) Sample(n int) string {
	return string(s.runes[:min(n, len(s.runes))])
}

// Mutation decides when a visible glyph is replaced by another from its set
// Probability is checked once per Interval seconds so flicker does not depend on frame rate
type Mutation struct {
	Probability float64
	Interval    float64
}

// DefaultMutation is a 2% chance per glyph per 1/30 s
var DefaultMutation = Mutation{Probability: 0.02, Interval: 1.0 / 30}

// Chances returns how many whole intervals fit in elapsed and the leftover
func (m Mutation) Chances(elapsed float64) (int, float64) {
	if m.Interval <= 0 || elapsed <= 0 {
		return 0, max(elapsed, 0)
	}
	n := int(elapsed / m.Interval)
	return n, elapsed - float64(n)*m.Interval
}

// Roll reports whether a glyph mutates on one chance
func (m Mutation) Roll(rng *rand.Rand) bool {
	return rng.Float64() < m.Probability
}

// ByName resolves a builtin set, case-insensitive
func ByName(name string) (*Set, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for _, s := range builtins {
		if s.name == key {
			return s, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownCharset, name)
}

// Names lists the builtin sets in display order
func Names() []string {
	names := make([]string, len(builtins))
	for i, s := range builtins {
		names[i] = s.name
	}
	return names
}
