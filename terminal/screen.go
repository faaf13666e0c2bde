package terminal

import (
	"iter"
)

// Cell represents a single terminal cell
// Rune 0 never reaches a backend; it marks a cell that must be redrawn
type Cell struct {
	Rune rune
	Fg   RGB
	Bg   RGB
}

// Change is one cell that differs from what the terminal currently shows
type Change struct {
	X, Y int
	Cell Cell
}

// Screen is the sink a frame is drawn into and the source of input events
type Screen interface {
	// Init prepares the terminal (alternate screen, hidden cursor)
	Init() error

	// Fini restores terminal state. Safe to call multiple times
	Fini()

	// Size returns current terminal dimensions
	Size() (width, height int)

	// Draw writes the given changes and presents them
	Draw(changes iter.Seq[Change]) error

	// Sync forces a full repaint on the next Draw
	Sync()

	// Events delivers input and resize events; nil for output-only screens
	Events() <-chan Event
}

// EventType classifies an Event
type EventType uint8

const (
	EventKey EventType = iota
	EventResize
	EventInterrupt
)

// Key identifies a non-printable key; printable input arrives as KeyRune
type Key uint8

const (
	KeyRune Key = iota
	KeyEscape
	KeyCtrlC
	KeyEnter
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyOther
)

// Event is an input or resize notification
type Event struct {
	Type   EventType
	Key    Key
	Rune   rune
	Width  int
	Height int
}
