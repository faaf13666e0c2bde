// Package status holds lock-free runtime counters published by the frame driver
package status

import (
	"fmt"
	"io"
	"math"
	"slices"
	"sync"
	"sync/atomic"
	"unicode/utf8"
)

// Float is an atomic float64; the zero value reads 0
type Float struct {
	bits atomic.Uint64
}

// Set stores v
func (f *Float) Set(v float64) {
	f.bits.Store(math.Float64bits(v))
}

// Get loads the value
func (f *Float) Get() float64 {
	return math.Float64frombits(f.bits.Load())
}

// Max raises the value to v when v is larger
func (f *Float) Max(v float64) {
	for {
		old := f.bits.Load()
		if math.Float64frombits(old) >= v {
			return
		}
		if f.bits.CompareAndSwap(old, math.Float64bits(v)) {
			return
		}
	}
}

// maxTextLen truncates labels so a long name cannot blow the status line
const maxTextLen = 32

// Text is an atomic short string; the zero value reads ""
type Text struct {
	ptr atomic.Pointer[string]
}

// Set stores s, truncated to at most maxTextLen bytes on a rune boundary
func (t *Text) Set(s string) {
	if len(s) > maxTextLen {
		cut := maxTextLen
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}
		s = s[:cut]
	}
	t.ptr.Store(&s)
}

// Get loads the value
func (t *Text) Get() string {
	if p := t.ptr.Load(); p != nil {
		return *p
	}
	return ""
}

// Map creates metrics on first use; callers cache the returned pointer
type Map[T any] struct {
	mu    sync.RWMutex
	items map[string]*T
}

func newMap[T any]() *Map[T] {
	return &Map[T]{items: make(map[string]*T)}
}

// Get returns the metric for key, creating it when absent
func (m *Map[T]) Get(key string) *T {
	m.mu.RLock()
	p, ok := m.items[key]
	m.mu.RUnlock()
	if ok {
		return p
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.items[key]; ok {
		return p
	}
	p = new(T)
	m.items[key] = p
	return p
}

// Keys returns the registered keys sorted
func (m *Map[T]) Keys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]string, 0, len(m.items))
	for k := range m.items {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Registry groups counters, gauges and labels
type Registry struct {
	Ints   *Map[atomic.Int64]
	Floats *Map[Float]
	Texts  *Map[Text]
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		Ints:   newMap[atomic.Int64](),
		Floats: newMap[Float](),
		Texts:  newMap[Text](),
	}
}

// Count returns the number of registered metrics
func (r *Registry) Count() int {
	return len(r.Ints.Keys()) + len(r.Floats.Keys()) + len(r.Texts.Keys())
}

// Dump writes every metric as "key value", one per line, sorted by key within each kind
func (r *Registry) Dump(w io.Writer) error {
	for _, k := range r.Texts.Keys() {
		if _, err := fmt.Fprintf(w, "%s %s\n", k, r.Texts.Get(k).Get()); err != nil {
			return err
		}
	}
	for _, k := range r.Ints.Keys() {
		if _, err := fmt.Fprintf(w, "%s %d\n", k, r.Ints.Get(k).Load()); err != nil {
			return err
		}
	}
	for _, k := range r.Floats.Keys() {
		if _, err := fmt.Fprintf(w, "%s %.3f\n", k, r.Floats.Get(k).Get()); err != nil {
			return err
		}
	}
	return nil
}
