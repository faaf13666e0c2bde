package terminal

import (
	"iter"
	"sync"

	"github.com/gdamore/tcell/v2"
)

// TcellScreen is the interactive Screen backed by a tcell.Screen
type TcellScreen struct {
	screen    tcell.Screen
	colorMode ColorMode
	events    chan Event
	done      chan struct{}
	crash     func(any)

	finiOnce sync.Once
	wg       sync.WaitGroup
}

// NewTcellScreen wraps an uninitialized tcell screen
// Tests pass tcell.NewSimulationScreen
func NewTcellScreen(s tcell.Screen, mode ColorMode) *TcellScreen {
	return &TcellScreen{
		screen:    s,
		colorMode: mode,
		events:    make(chan Event, 16),
		done:      make(chan struct{}),
	}
}

// SetCrashHandler installs the function called when the input goroutine panics
func (t *TcellScreen) SetCrashHandler(fn func(any)) {
	t.crash = fn
}

// Init initializes tcell and starts the input poller
func (t *TcellScreen) Init() error {
	if err := t.screen.Init(); err != nil {
		return err
	}
	t.screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	t.screen.HideCursor()
	t.screen.Clear()

	t.wg.Add(1)
	go t.pollLoop()
	return nil
}

// Fini stops the poller and restores the terminal
func (t *TcellScreen) Fini() {
	t.finiOnce.Do(func() {
		close(t.done)
		t.screen.Fini()
		t.wg.Wait()
	})
}

// Size returns current terminal dimensions
func (t *TcellScreen) Size() (int, int) {
	return t.screen.Size()
}

// Events returns the input channel; closed once the poller exits
func (t *TcellScreen) Events() <-chan Event {
	return t.events
}

// Sync forces tcell to repaint everything on the next Show
func (t *TcellScreen) Sync() {
	t.screen.Sync()
}

// Draw sets every changed cell and presents the result
func (t *TcellScreen) Draw(changes iter.Seq[Change]) error {
	for ch := range changes {
		r := ch.Cell.Rune
		if r == 0 {
			r = ' '
		}
		t.screen.SetContent(ch.X, ch.Y, r, nil, t.style(ch.Cell))
	}
	t.screen.Show()
	return nil
}

func (t *TcellScreen) style(c Cell) tcell.Style {
	return tcell.StyleDefault.Foreground(t.color(c.Fg)).Background(t.color(c.Bg))
}

func (t *TcellScreen) color(c RGB) tcell.Color {
	if t.colorMode == ColorModeTrueColor {
		return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
	}
	return tcell.PaletteColor(int(RGBTo256(c)))
}

// pollLoop converts tcell events until the screen is finalized
func (t *TcellScreen) pollLoop() {
	defer t.wg.Done()
	defer close(t.events)
	defer func() {
		if r := recover(); r != nil {
			if t.crash != nil {
				t.crash(r)
				return
			}
			panic(r)
		}
	}()

	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return
		}
		out, ok := convertEvent(ev)
		if !ok {
			continue
		}
		select {
		case t.events <- out:
		case <-t.done:
			return
		}
	}
}

// convertEvent maps a tcell event to an Event; unknown kinds are dropped
func convertEvent(ev tcell.Event) (Event, bool) {
	switch e := ev.(type) {
	case *tcell.EventKey:
		return Event{Type: EventKey, Key: convertKey(e), Rune: e.Rune()}, true
	case *tcell.EventResize:
		w, h := e.Size()
		return Event{Type: EventResize, Width: w, Height: h}, true
	case *tcell.EventInterrupt:
		return Event{Type: EventInterrupt}, true
	}
	return Event{}, false
}

func convertKey(e *tcell.EventKey) Key {
	switch e.Key() {
	case tcell.KeyRune:
		return KeyRune
	case tcell.KeyEscape:
		return KeyEscape
	case tcell.KeyCtrlC:
		return KeyCtrlC
	case tcell.KeyEnter:
		return KeyEnter
	case tcell.KeyUp:
		return KeyUp
	case tcell.KeyDown:
		return KeyDown
	case tcell.KeyLeft:
		return KeyLeft
	case tcell.KeyRight:
		return KeyRight
	}
	return KeyOther
}
