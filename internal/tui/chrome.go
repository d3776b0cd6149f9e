package tui

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/tview"
)

// chromeStyle is the tcell style the bottom bar, sidebar, and
// scrollbar chrome render with -- tview's default palette, so a
// terminal's chrome reads consistently with any tview-based tooling
// the same box is running alongside.
var chromeStyle = tcell.StyleDefault.
	Foreground(tview.Styles.PrimaryTextColor).
	Background(tview.Styles.PrimitiveBackgroundColor)

// labelStyle highlights the Quick-Select alphabet row labels.
var labelStyle = tcell.StyleDefault.
	Foreground(tview.Styles.ContrastSecondaryTextColor).
	Background(tview.Styles.ContrastBackgroundColor)

// Mode is the Controller's three-way state: normal hover/select,
// quick-select label entry, or the command-composition prompt.
type Mode int

const (
	SelectMode Mode = iota
	QuickSelectMode
	CommandMode
)

const (
	chromeMinX = 5
	chromeMinY = 0
	sidebarMin = 200 // terminals wider than this get the sidebar layout
	sidebarW   = 50
)

// Labels is the Quick-Select alphabet: one keystroke per visible row,
// 57 characters wide. Rows beyond the alphabet's length, or a
// keypress that maps past the end of the line map, are silently
// ignored rather than causing a crash -- a deliberate hardening of
// the reference's bare index lookup.
const Labels = "ABCDEFGHIJKLMNOPQRSTUVWXYZ1234567890~!@#$%^&*()_+<>?{}|;'"

// HelperChrome renders the bottom usage bar (narrow terminals) or the
// right-hand sidebar plus description pane (wide terminals). In
// Command mode it also moves the cursor to the bottom row; it never
// hides the cursor, so the cursor stays visible in every mode.
type HelperChrome struct {
	printer         *ColorPrinter
	ctrl            *Controller
	allInput        bool
	mode            Mode
	width           int
	sidebarY        int
	descriptionFull bool
}

func newHelperChrome(printer *ColorPrinter, ctrl *Controller, allInput bool) *HelperChrome {
	return &HelperChrome{printer: printer, ctrl: ctrl, allInput: allInput, width: sidebarW}
}

func (h *HelperChrome) isSidebarMode() bool {
	_, maxX := h.ctrl.screenDimensions()
	return maxX > sidebarMin
}

func (h *HelperChrome) reduceMaxY(maxY int) int {
	if h.isSidebarMode() {
		return maxY
	}
	return maxY - 4
}

func (h *HelperChrome) reduceMaxX(maxX int) int {
	if !h.isSidebarMode() {
		return maxX
	}
	return maxX - h.width
}

func (h *HelperChrome) minX() int {
	if h.mode == CommandMode {
		return 0
	}
	return h.ctrl.chromeBoundaries().MinX
}

func (h *HelperChrome) minY() int { return h.ctrl.chromeBoundaries().MinY }

func trim(s string, width int) string {
	return runewidth.Truncate(s, width, "")
}

// Output repaints every chrome element for mode, swallowing
// out-of-bounds writes the way the reference swallows curses.error.
func (h *HelperChrome) Output(mode Mode) {
	h.mode = mode
	safeCall(h.outputSide)
	safeCall(h.outputBottom)
	h.toggleCursor()
}

func safeCall(f func()) {
	defer func() { recover() }() //nolint:errcheck
	f()
}

func (h *HelperChrome) toggleCursor() {
	_, maxY := h.ctrl.screen.Size()
	if h.mode == CommandMode {
		h.ctrl.screen.Move(0, maxY-1)
	}
}

func (h *HelperChrome) outputSide() {
	if !h.isSidebarMode() {
		return
	}
	_, maxX := h.ctrl.screenDimensions()
	borderX := maxX - h.width
	usageLines := usagePage
	if h.mode == CommandMode {
		borderX = len(shortCommandPrompt) + 20
		usageLines = usageCommand
	}
	for i, line := range usageLines {
		h.printer.AddStyled(h.minY()+i, borderX+2, line, chromeStyle)
		h.sidebarY = h.minY() + i
	}
	maxY, _ := h.ctrl.screenDimensions()
	for y := h.minY(); y < maxY; y++ {
		h.printer.AddStyled(y, borderX, "|", chromeStyle)
	}
}

const (
	shortNavSelection   = "[f|A] selection"
	shortNavNavigation  = "[down|j|up|k|space|b] navigation"
	shortNavOpen        = "[enter] open"
	shortNavQuickSelect = "[x] quick select mode"
	shortNavCommand     = "[c] command mode"
	shortCommandUsage   = "command examples: | git add | git checkout HEAD~1 -- | mv $F ../here/ |"
	shortCommandPrompt  = "Type a command below! Paths will be appended or replace $F"
	shortCommandPrompt2 = "Enter a blank line to go back to the selection process"
	shortPathsHeader    = "Paths you have selected:"
)

func (h *HelperChrome) shortNavUsage() string {
	opts := []string{shortNavSelection, shortNavNavigation, shortNavOpen, shortNavQuickSelect, shortNavCommand}
	if h.allInput {
		// it does not make sense to offer "open" on all-input mode
		filtered := opts[:0]
		for _, o := range opts {
			if o != shortNavOpen {
				filtered = append(filtered, o)
			}
		}
		opts = filtered
	}
	return strings.Join(opts, ", ")
}

func (h *HelperChrome) outputBottom() {
	if h.isSidebarMode() {
		return
	}
	maxY, maxX := h.ctrl.screenDimensions()
	borderY := maxY - 2
	usageStr := h.shortNavUsage()
	if h.mode == CommandMode {
		usageStr = shortCommandUsage
	}
	width := maxX - h.minX()
	if width < 0 {
		width = 0
	}
	h.printer.AddStyled(borderY, h.minX(), strings.Repeat("_", width), chromeStyle)
	h.printer.AddStyled(borderY+1, h.minX(), usageStr, chromeStyle)
}

// describable is the subset of *line.Match the description pane
// needs; defined here so HelperChrome does not have to import the
// concrete file-stat plumbing.
type describable interface {
	GetPath() string
	DescriptionLines() []string
}

func (h *HelperChrome) outputDescription(obj describable) {
	if !h.isSidebarMode() {
		return
	}
	_, maxX := h.ctrl.screenDimensions()
	borderX := maxX - h.width
	startY := h.sidebarY + 1
	startX := borderX + 2
	header := "Description for " + obj.GetPath() + " :"
	prefix := "    * "
	h.printer.AddPlain(startY, startX, header)
	yPos := startY + 2
	for _, dl := range obj.DescriptionLines() {
		dl = trim(dl, maxX-startX-len(prefix))
		h.printer.AddPlain(yPos, startX, prefix+dl)
		yPos++
	}
	h.descriptionFull = true
}

// clearDescriptionPane blanks out a previously-drawn description, so
// scrolling away from a described line does not leave it behind.
func (h *HelperChrome) clearDescriptionPane() {
	if !h.descriptionFull {
		return
	}
	maxY, maxX := h.ctrl.screenDimensions()
	borderX := maxX - h.width
	startY := h.sidebarY + 1
	h.printer.ClearSquare(startY, maxY-1, borderX+2, maxX)
	h.descriptionFull = false
}

// ScrollBar draws the left-hand scroll indicator when the line map
// doesn't fit on one screen.
type ScrollBar struct {
	printer           *ColorPrinter
	ctrl              *Controller
	numLines          int
	activated         bool
	startFrac         float64
	stopFrac          float64
}

func newScrollBar(printer *ColorPrinter, ctrl *Controller, numLines int) *ScrollBar {
	sb := &ScrollBar{printer: printer, ctrl: ctrl, numLines: numLines}
	maxY, _ := ctrl.screenDimensions()
	sb.activated = numLines >= maxY
	sb.calcBoxFractions()
	return sb
}

func (sb *ScrollBar) IsActivated() bool { return sb.activated }

func (sb *ScrollBar) calcBoxFractions() {
	maxY, _ := sb.ctrl.screenDimensions()
	fracDisplayed := float64(maxY) / float64(sb.numLines)
	if fracDisplayed > 1.0 {
		fracDisplayed = 1.0
	}
	sb.startFrac = -float64(sb.ctrl.scrollOffset) / float64(sb.numLines)
	sb.stopFrac = sb.startFrac + fracDisplayed
}

func (sb *ScrollBar) minY() int { return sb.ctrl.chromeBoundaries().MinY + 1 }

func (sb *ScrollBar) Output() {
	if !sb.activated {
		return
	}
	safeCall(sb.outputCaps)
	safeCall(sb.outputBase)
	safeCall(sb.outputBox)
	safeCall(sb.outputBorder)
}

func (sb *ScrollBar) outputBorder() {
	maxY, _ := sb.ctrl.screenDimensions()
	for y := 0; y < maxY; y++ {
		sb.printer.AddPlain(y, 4, " ")
	}
}

func (sb *ScrollBar) outputBox() {
	maxY, _ := sb.ctrl.screenDimensions()
	topY := maxY - 2
	minY := sb.minY()
	diff := topY - minY
	boxStartY := int(float64(diff)*sb.startFrac) + minY
	boxStopY := int(float64(diff)*sb.stopFrac) + minY
	sb.printer.AddPlain(boxStartY, 0, "/-\\")
	for y := boxStartY + 1; y < boxStopY; y++ {
		sb.printer.AddPlain(y, 0, "|-|")
	}
	sb.printer.AddPlain(boxStopY, 0, `\-/`)
}

func (sb *ScrollBar) outputCaps() {
	maxY, _ := sb.ctrl.screenDimensions()
	sb.printer.AddPlain(sb.minY()-1, 0, "===")
	sb.printer.AddPlain(maxY-1, 0, "===")
}

func (sb *ScrollBar) outputBase() {
	maxY, _ := sb.ctrl.screenDimensions()
	for y := sb.minY(); y < maxY-1; y++ {
		sb.printer.AddPlain(y, 0, " . ")
	}
}
