package render

import (
	"errors"
	"fmt"
	"iter"

	"github.com/lixenwraith/digital-rain/terminal"
)

// ErrInvalidDimensions is returned for a zero or negative width or height
var ErrInvalidDimensions = errors.New("invalid buffer dimensions")

// Cell is an alias to terminal.Cell
type Cell = terminal.Cell

// Empty is the cell every back-grid position holds after Clear
var Empty = Cell{Rune: ' ', Fg: Background, Bg: Background}

// stale never equals a written cell: Set stores rune 0 as a space
var stale = Cell{Rune: 0}

// Buffer is a double-buffered cell grid
// The back grid is drawn into each frame; the front grid mirrors what the terminal shows
type Buffer struct {
	width  int
	height int
	front  []Cell
	back   []Cell
}

// NewBuffer creates a buffer whose first Diff covers every cell
func NewBuffer(width, height int) (*Buffer, error) {
	b := &Buffer{}
	if err := b.Resize(width, height); err != nil {
		return nil, err
	}
	return b, nil
}

// Resize replaces both grids; the prior grids survive an error
// The front grid is invalidated so the next Diff is a full redraw
func (b *Buffer) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	size := width * height
	if cap(b.back) < size {
		b.back = make([]Cell, size)
		b.front = make([]Cell, size)
	} else {
		b.back = b.back[:size]
		b.front = b.front[:size]
	}
	b.width = width
	b.height = height
	b.Clear()
	b.Invalidate()
	return nil
}

// Width returns the column count
func (b *Buffer) Width() int { return b.width }

// Height returns the row count
func (b *Buffer) Height() int { return b.height }

// inBounds returns true if in screen bounds
func (b *Buffer) inBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// Clear resets the back grid to empty cells using exponential copy
func (b *Buffer) Clear() {
	if len(b.back) == 0 {
		return
	}
	b.back[0] = Empty
	for filled := 1; filled < len(b.back); filled *= 2 {
		copy(b.back[filled:], b.back[:filled])
	}
}

// Invalidate forces every cell into the next Diff
func (b *Buffer) Invalidate() {
	if len(b.front) == 0 {
		return
	}
	b.front[0] = stale
	for filled := 1; filled < len(b.front); filled *= 2 {
		copy(b.front[filled:], b.front[:filled])
	}
}

// Set writes a cell into the back grid; out-of-bounds writes are ignored
func (b *Buffer) Set(x, y int, c Cell) {
	if !b.inBounds(x, y) {
		return
	}
	if c.Rune == 0 {
		c.Rune = ' '
	}
	b.back[y*b.width+x] = c
}

// SetCell writes rune and colors into the back grid
func (b *Buffer) SetCell(x, y int, r rune, fg, bg RGB) {
	b.Set(x, y, Cell{Rune: r, Fg: fg, Bg: bg})
}

// SetFg replaces rune and foreground, keeping the existing background
func (b *Buffer) SetFg(x, y int, r rune, fg RGB) {
	if !b.inBounds(x, y) {
		return
	}
	if r == 0 {
		r = ' '
	}
	dst := &b.back[y*b.width+x]
	dst.Rune = r
	dst.Fg = fg
}

// Get returns the back-grid cell, false when out of bounds
func (b *Buffer) Get(x, y int) (Cell, bool) {
	if !b.inBounds(x, y) {
		return Cell{}, false
	}
	return b.back[y*b.width+x], true
}

// Cells exposes the back grid row-major for in-place post passes
func (b *Buffer) Cells() []Cell {
	return b.back
}

// Row exposes one back-grid row
func (b *Buffer) Row(y int) []Cell {
	if y < 0 || y >= b.height {
		return nil
	}
	return b.back[y*b.width : (y+1)*b.width]
}

// CopyFrom copies src's back grid when dimensions match
func (b *Buffer) CopyFrom(src *Buffer) bool {
	if src.width != b.width || src.height != b.height {
		return false
	}
	copy(b.back, src.back)
	return true
}

// Diff yields, row-major, every cell whose back value differs from front
// Evaluated lazily; Swap after consuming it
func (b *Buffer) Diff() iter.Seq[terminal.Change] {
	return func(yield func(terminal.Change) bool) {
		for y := 0; y < b.height; y++ {
			row := y * b.width
			for x := 0; x < b.width; x++ {
				c := b.back[row+x]
				if c == b.front[row+x] {
					continue
				}
				if !yield(terminal.Change{X: x, Y: y, Cell: c}) {
					return
				}
			}
		}
	}
}

// DirtyCount returns how many cells Diff would yield
func (b *Buffer) DirtyCount() int {
	n := 0
	for i, c := range b.back {
		if c != b.front[i] {
			n++
		}
	}
	return n
}

// Swap makes the back grid the new front; the back grid keeps its content
func (b *Buffer) Swap() {
	copy(b.front, b.back)
}
