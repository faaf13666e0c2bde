package engine

import (
	"github.com/lixenwraith/digital-rain/render"
)

// Overlay colors
var (
	overlayBg    = render.RGB{R: 10, G: 10, B: 10}
	overlayFg    = render.RGB{R: 180, G: 180, B: 180}
	overlayTitle = render.RGB{R: 0, G: 200, B: 80}
)

// statusFrames is how many frames a status message stays up
const statusFrames = 60

const helpWidth = 38

var helpLines = []string{
	"",
	"  KEYBINDINGS",
	"",
	"  Space     Pause / Resume",
	"  +  -      Speed up / down",
	"  [  ]      Density down / up",
	"  n         Next effect",
	"  r         Randomize",
	"  c         Toggle CRT filter",
	"  t         Toggle auto-cycle timer",
	"  ?         Toggle this help",
	"  q / Esc   Quit",
	"",
}

// drawHelp centers the key help box; skipped when the screen is too small
func drawHelp(buf *render.Buffer) {
	w, h := buf.Width(), buf.Height()
	if w < helpWidth+4 || h < len(helpLines)+2 {
		return
	}
	x0 := (w - helpWidth) / 2
	y0 := (h - len(helpLines)) / 2

	for row, line := range helpLines {
		fg := overlayFg
		if row == 1 {
			fg = overlayTitle
		}
		text := []rune(line)
		for col := range helpWidth {
			r := ' '
			if col < len(text) {
				r = text[col]
			}
			buf.SetCell(x0+col, y0+row, r, fg, overlayBg)
		}
	}
}

// drawStatus centers msg on the bottom row with one cell of padding each side
func drawStatus(buf *render.Buffer, msg string) {
	w, h := buf.Width(), buf.Height()
	if w < 10 || msg == "" {
		return
	}
	text := []rune(msg)
	if len(text) > w {
		text = text[:w]
	}
	y := h - 1
	x0 := (w - len(text)) / 2

	for x := max(x0-1, 0); x < min(x0+len(text)+1, w); x++ {
		r := ' '
		if i := x - x0; i >= 0 && i < len(text) {
			r = text[i]
		}
		buf.SetCell(x, y, r, overlayTitle, overlayBg)
	}
}
