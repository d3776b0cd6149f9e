package tui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/relpath/pathpick/internal/text"
)

// ColorPrinter is a thin wrapper over Screen that caches the
// "current" attributes set by a Text's format segments, the same
// role the reference's ColorPrinter plays over curses color pairs --
// tcell needs no pair-allocation bookkeeping, so this is simpler than
// its ancestor.
type ColorPrinter struct {
	screen  Screen
	current text.Format
}

// NewColorPrinter wraps screen.
func NewColorPrinter(screen Screen) *ColorPrinter {
	return &ColorPrinter{screen: screen, current: text.Format{FgColor: -1, BgColor: -1}}
}

// AddStr implements text.Printer. The sentinel text.CurrentFormat
// means "keep using whatever SetAttributes last set".
func (p *ColorPrinter) AddStr(y, x int, s string, f text.Format) {
	style := p.current
	if f != text.CurrentFormat {
		style = f
	}
	p.screen.AddStr(y, x, s, styleFor(style))
}

func (p *ColorPrinter) SetAttributes(f text.Format) { p.current = f }

func (p *ColorPrinter) Current() text.Format { return p.current }

// AddPlain writes s at (y, x) with the default tcell style, bypassing
// the Format/Text machinery; used for chrome text that carries no
// ANSI formatting of its own.
func (p *ColorPrinter) AddPlain(y, x int, s string) {
	p.screen.AddStr(y, x, s, tcell.StyleDefault)
}

// AddStyled writes s at (y, x) with an explicit tcell style.
func (p *ColorPrinter) AddStyled(y, x int, s string, style tcell.Style) {
	p.screen.AddStr(y, x, s, style)
}

// ClearSquare blanks out the rectangle [leftX, rightX) x [topY, bottomY).
func (p *ColorPrinter) ClearSquare(topY, bottomY, leftX, rightX int) {
	if rightX <= leftX {
		return
	}
	blank := make([]byte, rightX-leftX)
	for i := range blank {
		blank[i] = ' '
	}
	for y := topY; y < bottomY; y++ {
		p.AddPlain(y, leftX, string(blank))
	}
}
