package render

import (
	"errors"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/lixenwraith/digital-rain/terminal"
)

func mustBuffer(t *testing.T, w, h int) *Buffer {
	t.Helper()
	b, err := NewBuffer(w, h)
	if err != nil {
		t.Fatalf("NewBuffer(%d, %d): %v", w, h, err)
	}
	return b
}

func TestNewBufferFullDiff(t *testing.T) {
	b := mustBuffer(t, 7, 3)
	changes := slices.Collect(b.Diff())
	if len(changes) != 21 {
		t.Fatalf("first diff = %d changes, want 21", len(changes))
	}
	// Row-major order
	if changes[0].X != 0 || changes[0].Y != 0 || changes[7].X != 0 || changes[7].Y != 1 {
		t.Errorf("diff not row-major: %+v %+v", changes[0], changes[7])
	}
	for _, ch := range changes {
		if ch.Cell != Empty {
			t.Fatalf("fresh cell at %d,%d = %+v, want empty", ch.X, ch.Y, ch.Cell)
		}
	}
}

func TestDiffAfterSwap(t *testing.T) {
	b := mustBuffer(t, 4, 4)
	b.Swap()
	if n := len(slices.Collect(b.Diff())); n != 0 {
		t.Fatalf("diff after swap = %d, want 0", n)
	}

	fg := RGB{R: 0, G: 230, B: 50}
	b.SetCell(2, 1, 'ア', fg, Background)

	got := slices.Collect(b.Diff())
	want := []terminal.Change{{X: 2, Y: 1, Cell: Cell{Rune: 'ア', Fg: fg, Bg: Background}}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Diff mismatch (-want +got):\n%s", diff)
	}
	if b.DirtyCount() != 1 {
		t.Errorf("DirtyCount = %d, want 1", b.DirtyCount())
	}

	b.Swap()
	if n := len(slices.Collect(b.Diff())); n != 0 {
		t.Errorf("diff after second swap = %d, want 0", n)
	}

	// Same content redrawn after clear yields nothing
	b.Clear()
	b.SetCell(2, 1, 'ア', fg, Background)
	if n := len(slices.Collect(b.Diff())); n != 0 {
		t.Errorf("identical frame produced %d changes", n)
	}
}

func TestSetOutOfBoundsIsNoop(t *testing.T) {
	b := mustBuffer(t, 3, 2)
	before := slices.Clone(b.Cells())

	for _, p := range [][2]int{{-1, 0}, {0, -1}, {3, 0}, {0, 2}, {100, 100}} {
		b.SetCell(p[0], p[1], 'x', RGB{R: 255, G: 0, B: 0}, Background)
		b.SetFg(p[0], p[1], 'x', RGB{R: 255, G: 0, B: 0})
		if _, ok := b.Get(p[0], p[1]); ok {
			t.Errorf("Get(%d,%d) reported in bounds", p[0], p[1])
		}
	}
	if diff := cmp.Diff(before, b.Cells()); diff != "" {
		t.Errorf("out-of-bounds write changed grid:\n%s", diff)
	}
}

func TestSetZeroRuneStoredAsSpace(t *testing.T) {
	b := mustBuffer(t, 2, 2)
	b.SetCell(1, 1, 0, RGB{R: 1, G: 2, B: 3}, Background)
	c, _ := b.Get(1, 1)
	if c.Rune != ' ' {
		t.Errorf("rune = %q, want space", c.Rune)
	}
}

func TestResize(t *testing.T) {
	b := mustBuffer(t, 4, 4)
	b.Swap()

	if err := b.Resize(6, 2); err != nil {
		t.Fatalf("Resize: %v", err)
	}
	if b.Width() != 6 || b.Height() != 2 {
		t.Fatalf("dims = %dx%d, want 6x2", b.Width(), b.Height())
	}
	if n := len(slices.Collect(b.Diff())); n != 12 {
		t.Errorf("diff after resize = %d, want 12", n)
	}
}

func TestResizeInvalidKeepsBuffer(t *testing.T) {
	tests := []struct {
		name string
		w, h int
	}{
		{"zero width", 0, 5},
		{"zero height", 5, 0},
		{"negative", -3, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := mustBuffer(t, 5, 5)
			b.SetCell(1, 1, 'z', RGB{R: 9, G: 9, B: 9}, Background)

			err := b.Resize(tt.w, tt.h)
			if !errors.Is(err, ErrInvalidDimensions) {
				t.Fatalf("Resize(%d,%d) err = %v, want ErrInvalidDimensions", tt.w, tt.h, err)
			}
			if b.Width() != 5 || b.Height() != 5 {
				t.Errorf("dims changed to %dx%d", b.Width(), b.Height())
			}
			if c, _ := b.Get(1, 1); c.Rune != 'z' {
				t.Errorf("content lost after failed resize")
			}
		})
	}

	if _, err := NewBuffer(0, 0); !errors.Is(err, ErrInvalidDimensions) {
		t.Errorf("NewBuffer(0,0) err = %v", err)
	}
}

func TestInvalidateAndCopyFrom(t *testing.T) {
	a := mustBuffer(t, 3, 3)
	a.Swap()
	a.Invalidate()
	if n := a.DirtyCount(); n != 9 {
		t.Errorf("DirtyCount after Invalidate = %d, want 9", n)
	}

	src := mustBuffer(t, 3, 3)
	src.SetCell(0, 2, 'k', RGB{R: 5, G: 5, B: 5}, Background)
	if !a.CopyFrom(src) {
		t.Fatal("CopyFrom same size returned false")
	}
	if c, _ := a.Get(0, 2); c.Rune != 'k' {
		t.Errorf("CopyFrom did not copy content")
	}
	if a.CopyFrom(mustBuffer(t, 2, 3)) {
		t.Error("CopyFrom accepted mismatched dimensions")
	}
}

func TestDiffStopsEarly(t *testing.T) {
	b := mustBuffer(t, 10, 10)
	n := 0
	for range b.Diff() {
		n++
		if n == 3 {
			break
		}
	}
	if n != 3 {
		t.Errorf("iterated %d, want 3", n)
	}
}
