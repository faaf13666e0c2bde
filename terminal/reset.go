package terminal

import (
	"io"
	"os"

	"golang.org/x/term"
)

// EmergencyReset writes the sequences that undo Init on any screen
// Safe to call from a panic handler with the raw stdout
func EmergencyReset(w io.Writer) {
	w.Write(csiCursorShow)
	w.Write(csiAltScreenExit)
	w.Write(csiSGR0)
	w.Write(csiAutoWrapOn)
	w.Write(csiRIS)

	if f, ok := w.(*os.File); ok {
		f.Sync()
	}

	// Escape sequences alone don't restore termios
	resetTerminalMode()
}

// Default dimensions when stdout is not a terminal
const (
	DefaultWidth  = 80
	DefaultHeight = 24
)

// StdoutSize returns the dimensions of the terminal on stdout, or 80x24
func StdoutSize() (int, int) {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return DefaultWidth, DefaultHeight
	}
	w, h, err := term.GetSize(fd)
	if err != nil || w <= 0 || h <= 0 {
		return DefaultWidth, DefaultHeight
	}
	return w, h
}
