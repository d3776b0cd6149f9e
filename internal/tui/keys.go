package tui

import "github.com/gdamore/tcell/v2"

// KeyName maps a tcell key event onto the same small vocabulary of
// symbolic names the reference's CODE_TO_CHAR table produces from
// curses getch() codes: printable runes pass through as themselves,
// and the handful of named keys the Controller recognizes get their
// curses KEY_* names (minus the "KEY_" prefix).
func KeyName(ev *tcell.EventKey) string {
	switch ev.Key() {
	case tcell.KeyEnter:
		return "ENTER"
	case tcell.KeyUp:
		return "UP"
	case tcell.KeyDown:
		return "DOWN"
	case tcell.KeyPgDn:
		return "NPAGE"
	case tcell.KeyPgUp:
		return "PPAGE"
	case tcell.KeyHome:
		return "HOME"
	case tcell.KeyEnd:
		return "END"
	case tcell.KeyRune:
		return string(ev.Rune())
	default:
		return ""
	}
}
