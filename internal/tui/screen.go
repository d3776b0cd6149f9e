// Package tui implements the curses-like Screen Controller: a state
// machine over Select / Quick-Select / Command modes that renders the
// ingested Line Map through tcell and turns keystrokes into hover,
// selection, and command-composition actions.
package tui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/relpath/pathpick/internal/text"
)

// Screen is the thin terminal abstraction the Controller drives; it
// mirrors the reference's ScreenBase, trading curses primitives for
// tcell ones.
type Screen interface {
	Size() (width, height int)
	Erase()
	Show()
	Move(x, y int)
	AddStr(y, x int, s string, style tcell.Style)
	PollEvent() tcell.Event
	ReadLine(y, x, maxLen int) (string, error)
	Close()
}

type tcellScreen struct {
	s tcell.Screen
}

// NewScreen initializes a tcell screen in the same mode the reference
// enters via curses.wrapper: raw input, no input echo, hidden cursor
// by default.
func NewScreen() (Screen, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("creating terminal screen: %w", err)
	}
	if err := s.Init(); err != nil {
		return nil, fmt.Errorf("initializing terminal screen: %w", err)
	}
	s.HideCursor()
	s.EnableMouse()
	return &tcellScreen{s: s}, nil
}

func (t *tcellScreen) Size() (int, int) { return t.s.Size() }

func (t *tcellScreen) Erase() { t.s.Clear() }

func (t *tcellScreen) Show() { t.s.Show() }

func (t *tcellScreen) Move(x, y int) { t.s.ShowCursor(x, y) }

func (t *tcellScreen) AddStr(y, x int, str string, style tcell.Style) {
	col := x
	for _, r := range str {
		t.s.SetContent(col, y, r, nil, style)
		col++
	}
}

func (t *tcellScreen) PollEvent() tcell.Event { return t.s.PollEvent() }

// ReadLine switches to a blocking line-edit loop at (y, x), echoing
// keystrokes as typed; it is only used for the Command-mode prompt.
func (t *tcellScreen) ReadLine(y, x, maxLen int) (string, error) {
	var runes []rune
	col := x
	t.s.ShowCursor(col, y)
	t.s.Show()
	for {
		ev := t.s.PollEvent()
		key, ok := ev.(*tcell.EventKey)
		if !ok {
			continue
		}
		switch key.Key() {
		case tcell.KeyEnter:
			return string(runes), nil
		case tcell.KeyCtrlC:
			return "", fmt.Errorf("interrupted")
		case tcell.KeyBackspace, tcell.KeyBackspace2:
			if len(runes) > 0 {
				runes = runes[:len(runes)-1]
				col--
				t.s.SetContent(col, y, ' ', nil, tcell.StyleDefault)
			}
		case tcell.KeyRune:
			if len(runes) < maxLen {
				runes = append(runes, key.Rune())
				t.s.SetContent(col, y, key.Rune(), nil, tcell.StyleDefault)
				col++
			}
		}
		t.s.ShowCursor(col, y)
		t.s.Show()
	}
}

func (t *tcellScreen) Close() { t.s.Fini() }

// styleFor converts a formatted-text Format into a tcell style, ANSI
// 8-color indices 0-7 mapped to tcell's named colors.
func styleFor(f text.Format) tcell.Style {
	style := tcell.StyleDefault
	if f.FgColor >= 0 {
		style = style.Foreground(ansiColor(f.FgColor))
	}
	if f.BgColor >= 0 {
		style = style.Background(ansiColor(f.BgColor))
	}
	if f.Attr&text.AttrBold != 0 {
		style = style.Bold(true)
	}
	if f.Attr&text.AttrUnderline != 0 {
		style = style.Underline(true)
	}
	return style
}

var ansiColors = [8]tcell.Color{
	tcell.ColorBlack,
	tcell.ColorMaroon,
	tcell.ColorGreen,
	tcell.ColorOlive,
	tcell.ColorNavy,
	tcell.ColorPurple,
	tcell.ColorTeal,
	tcell.ColorSilver,
}

func ansiColor(index int) tcell.Color {
	if index < 0 || index >= len(ansiColors) {
		return tcell.ColorDefault
	}
	return ansiColors[index]
}
