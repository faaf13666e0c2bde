package terminal

import (
	"bufio"
	"io"
	"iter"
)

// Stream is an output-only Screen that writes ANSI sequences to an io.Writer
// Used for headless frame dumps and benchmarks where no tty is attached
type Stream struct {
	writer    *bufio.Writer
	width     int
	height    int
	colorMode ColorMode
	started   bool

	cursorX     int
	cursorY     int
	cursorValid bool

	// Style state for coalescing
	lastFg    RGB
	lastBg    RGB
	lastValid bool

	written int
}

// NewStream creates a stream screen of fixed dimensions
func NewStream(w io.Writer, width, height int, mode ColorMode) *Stream {
	return &Stream{
		writer:    bufio.NewWriterSize(w, 131072), // 128KB buffer
		width:     width,
		height:    height,
		colorMode: mode,
	}
}

// Init hides the cursor, disables auto-wrap and clears the screen
func (s *Stream) Init() error {
	w := s.writer
	w.Write(csiCursorHide)
	w.Write(csiAutoWrapOff)
	w.Write(csiSGR0)
	w.Write(csiClear)
	s.started = true
	s.invalidate()
	return w.Flush()
}

// Fini restores cursor and wrapping and leaves the cursor below the frame
func (s *Stream) Fini() {
	if !s.started {
		return
	}
	s.started = false
	w := s.writer
	w.Write(csiSGR0)
	w.Write(csiAutoWrapOn)
	writeCursorPos(w, 0, s.height)
	w.Write(csiCursorShow)
	w.Flush()
}

// Size returns the fixed stream dimensions
func (s *Stream) Size() (int, int) {
	return s.width, s.height
}

// Events returns nil; a stream never produces input
func (s *Stream) Events() <-chan Event {
	return nil
}

// Sync clears the output so the next full-frame Draw repaints cleanly
func (s *Stream) Sync() {
	s.writer.Write(csiSGR0)
	s.writer.Write(csiClear)
	s.invalidate()
}

// CellsWritten returns the total number of cells emitted since creation
func (s *Stream) CellsWritten() int {
	return s.written
}

func (s *Stream) invalidate() {
	s.cursorValid = false
	s.lastValid = false
}

// Draw emits the changes in order, positioning the cursor only on gaps
func (s *Stream) Draw(changes iter.Seq[Change]) error {
	w := s.writer

	for ch := range changes {
		if ch.X < 0 || ch.X >= s.width || ch.Y < 0 || ch.Y >= s.height {
			continue
		}

		if !s.cursorValid || ch.X != s.cursorX || ch.Y != s.cursorY {
			if s.cursorValid && ch.Y == s.cursorY && ch.X > s.cursorX {
				writeCursorForward(w, ch.X-s.cursorX)
			} else {
				writeCursorPos(w, ch.X, ch.Y)
			}
			s.cursorX = ch.X
			s.cursorY = ch.Y
			s.cursorValid = true
		}

		s.writeStyleCoalesced(w, ch.Cell.Fg, ch.Cell.Bg)

		r := ch.Cell.Rune
		if r == 0 {
			r = ' '
		}
		if r < 0x80 {
			w.WriteByte(byte(r))
		} else {
			w.WriteRune(r)
		}
		s.cursorX++
		s.written++
	}

	w.Write(csiSGR0)
	s.lastValid = false

	return w.Flush()
}

// writeStyleCoalesced emits a single combined SGR sequence when colors change
func (s *Stream) writeStyleCoalesced(w *bufio.Writer, fg, bg RGB) {
	fgChanged := !s.lastValid || fg != s.lastFg
	bgChanged := !s.lastValid || bg != s.lastBg

	switch {
	case fgChanged && bgChanged:
		w.Write(csi)
		s.writeColorInline(w, fg, '3')
		w.WriteByte(';')
		s.writeColorInline(w, bg, '4')
		w.WriteByte('m')
	case fgChanged:
		s.writeColorFull(w, fg, csiFgRGB, csiFg256)
	case bgChanged:
		s.writeColorFull(w, bg, csiBgRGB, csiBg256)
	default:
		return
	}

	s.lastFg = fg
	s.lastBg = bg
	s.lastValid = true
}

// writeColorInline writes 38;... or 48;... parameters (no CSI prefix, no 'm' suffix)
func (s *Stream) writeColorInline(w *bufio.Writer, c RGB, layer byte) {
	w.WriteByte(layer)
	if s.colorMode == ColorModeTrueColor {
		w.Write([]byte("8;2;"))
		writeInt(w, int(c.R))
		w.WriteByte(';')
		writeInt(w, int(c.G))
		w.WriteByte(';')
		writeInt(w, int(c.B))
		return
	}
	w.Write([]byte("8;5;"))
	writeInt(w, int(RGBTo256(c)))
}

// writeColorFull writes a complete single-layer color sequence
func (s *Stream) writeColorFull(w *bufio.Writer, c RGB, rgbPrefix, palettePrefix []byte) {
	if s.colorMode == ColorModeTrueColor {
		w.Write(rgbPrefix)
		writeInt(w, int(c.R))
		w.WriteByte(';')
		writeInt(w, int(c.G))
		w.WriteByte(';')
		writeInt(w, int(c.B))
		w.WriteByte('m')
		return
	}
	w.Write(palettePrefix)
	writeInt(w, int(RGBTo256(c)))
	w.WriteByte('m')
}
