package viewer

import "github.com/gdamore/tcell/v2"

// Action represents a user-requested viewer action.
type Action uint8

const (
	ActionNone Action = iota
	ActionRegenerate
	ActionReplay
	ActionPanN
	ActionPanS
	ActionPanE
	ActionPanW
	ActionPanFarN
	ActionPanFarS
	ActionPanFarE
	ActionPanFarW
	ActionRecenter
	ActionNextTheme
	ActionQuit
)

// farPan is how many tiles a shifted pan key moves.
const farPan = 10

// keyToAction maps a tcell key event to a viewer action.
func keyToAction(ev *tcell.EventKey) Action {
	switch ev.Key() {
	case tcell.KeyUp:
		return ActionPanN
	case tcell.KeyDown:
		return ActionPanS
	case tcell.KeyRight:
		return ActionPanE
	case tcell.KeyLeft:
		return ActionPanW
	case tcell.KeyEnter:
		return ActionRegenerate
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return ActionQuit
	}

	switch ev.Rune() {
	case ' ', 'n':
		return ActionRegenerate
	case 'r', 'R':
		return ActionReplay
	case 'k':
		return ActionPanN
	case 'j':
		return ActionPanS
	case 'l':
		return ActionPanE
	case 'h':
		return ActionPanW
	case 'K':
		return ActionPanFarN
	case 'J':
		return ActionPanFarS
	case 'L':
		return ActionPanFarE
	case 'H':
		return ActionPanFarW
	case 'c', 'C':
		return ActionRecenter
	case 't', 'T':
		return ActionNextTheme
	case 'q', 'Q':
		return ActionQuit
	}
	return ActionNone
}

// actionToDelta converts a pan action to (dx, dy) in tiles; +dy is up.
func actionToDelta(a Action) (int, int) {
	switch a {
	case ActionPanN:
		return 0, 1
	case ActionPanS:
		return 0, -1
	case ActionPanE:
		return 1, 0
	case ActionPanW:
		return -1, 0
	case ActionPanFarN:
		return 0, farPan
	case ActionPanFarS:
		return 0, -farPan
	case ActionPanFarE:
		return farPan, 0
	case ActionPanFarW:
		return -farPan, 0
	}
	return 0, 0
}
