package effect

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/lixenwraith/digital-rain/render"
)

type stubEffect struct{ name string }

func (s *stubEffect) Name() string                       { return s.name }
func (s *stubEffect) Update(_ *Params, _ *render.Buffer) {}

func TestRegistryCreate(t *testing.T) {
	r := NewRegistry()
	r.Register(NameClassic, NewClassic)
	r.Register(NameFire, NewFire)

	e, err := r.Create(NameFire, testRNG(1))
	if err != nil {
		t.Fatalf("Create(fire): %v", err)
	}
	if _, ok := e.(*Fire); !ok {
		t.Errorf("Create(fire) returned %T", e)
	}

	_, err = r.Create("nope", testRNG(1))
	if !errors.Is(err, ErrUnknownEffect) {
		t.Errorf("Create(nope) err = %v, want ErrUnknownEffect", err)
	}
}

func TestRegistryOrder(t *testing.T) {
	want := []string{"classic", "binary", "cascade", "pulse", "glitch", "fire", "ocean", "parallax"}
	r := NewDefaultRegistry()
	if diff := cmp.Diff(want, r.Names()); diff != "" {
		t.Errorf("Names (-want +got):\n%s", diff)
	}

	// Re-registering keeps position and swaps the factory
	r.Register(NamePulse, func(*rand.Rand) Effect { return &stubEffect{name: "stub"} })
	if diff := cmp.Diff(want, r.Names()); diff != "" {
		t.Errorf("Names after re-register (-want +got):\n%s", diff)
	}
	e, _ := r.Create(NamePulse, testRNG(1))
	if e.Name() != "stub" {
		t.Errorf("re-registered factory not used")
	}

	names := r.Names()
	names[0] = "mutated"
	if r.Names()[0] != "classic" {
		t.Error("Names exposes internal slice")
	}
}

func TestRegistryNextAndRandom(t *testing.T) {
	r := NewDefaultRegistry()
	tests := []struct{ in, want string }{
		{"classic", "binary"},
		{"parallax", "classic"},
		{"unknown", "classic"},
	}
	for _, tt := range tests {
		if got := r.Next(tt.in); got != tt.want {
			t.Errorf("Next(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}

	rng := testRNG(3)
	seen := make(map[string]bool)
	for range 400 {
		name := r.Random(rng)
		if !r.Has(name) {
			t.Fatalf("Random returned unregistered %q", name)
		}
		seen[name] = true
	}
	if len(seen) != len(r.Names()) {
		t.Errorf("Random covered %d of %d names", len(seen), len(r.Names()))
	}

	empty := NewRegistry()
	if empty.Random(rng) != "" || empty.Next("x") != "" {
		t.Error("empty registry should return empty names")
	}
}
