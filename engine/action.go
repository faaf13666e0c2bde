package engine

import (
	"github.com/lixenwraith/digital-rain/terminal"
)

// ActionKind names a driver command
type ActionKind uint8

const (
	ActionPause ActionKind = iota
	ActionSpeedUp
	ActionSpeedDown
	ActionDensityUp
	ActionDensityDown
	ActionNextEffect
	ActionRandomize
	ActionToggleCRT
	ActionToggleTimer
	ActionToggleHelp
	ActionQuit
	ActionResize
)

// Action is one queued command; Width and Height are set for ActionResize only
type Action struct {
	Kind   ActionKind
	Width  int
	Height int
}

// Resize builds a resize action
func Resize(w, h int) Action {
	return Action{Kind: ActionResize, Width: w, Height: h}
}

// runeActions is the keyboard map for printable keys
var runeActions = map[rune]ActionKind{
	' ': ActionPause,
	'+': ActionSpeedUp,
	'=': ActionSpeedUp,
	'-': ActionSpeedDown,
	']': ActionDensityUp,
	'[': ActionDensityDown,
	'n': ActionNextEffect,
	'r': ActionRandomize,
	'c': ActionToggleCRT,
	't': ActionToggleTimer,
	'?': ActionToggleHelp,
	'q': ActionQuit,
}

// ActionForEvent maps a terminal event to a driver action
func ActionForEvent(ev terminal.Event) (Action, bool) {
	switch ev.Type {
	case terminal.EventResize:
		return Resize(ev.Width, ev.Height), true
	case terminal.EventKey:
		switch ev.Key {
		case terminal.KeyEscape, terminal.KeyCtrlC:
			return Action{Kind: ActionQuit}, true
		case terminal.KeyRune:
			if kind, ok := runeActions[ev.Rune]; ok {
				return Action{Kind: kind}, true
			}
		}
	}
	return Action{}, false
}
