package tui

import (
	"fmt"
	"sort"

	"github.com/gdamore/tcell/v2"

	"github.com/relpath/pathpick/internal/line"
)

// QuitError is returned from Control to signal a clean exit; Code
// records the exit status, and pipeline.RunChoose treats the error as
// success rather than a real failure.
type QuitError struct{ Code int }

func (q *QuitError) Error() string { return fmt.Sprintf("quit(%d)", q.Code) }

// CommandExecutor is the output-composition boundary the Controller
// calls into once a selection (or a command to run against it) is
// finalized; it is an interface so tests can inject a spy instead of
// touching the filesystem, the same role the reference's curses_api
// "allow_file_output" dependency injection plays.
type CommandExecutor interface {
	ExecComposedCommand(command string, matches []*line.Match) error
	EditFiles(matches []*line.Match) error
	OutputSelection(indices []int) error
	OutputNothing() error
}

// Flags is the subset of the CLI configuration the Controller reads.
type Flags struct {
	AllInput      bool
	SelectAll     bool
	PresetCommand string
	ExecuteKeys   []string
}

// Controller drives the Select/Quick-Select/Command mode state
// machine over a Line Map, mirroring screen_control.Controller.
type Controller struct {
	screen   Screen
	printer  *ColorPrinter
	executor CommandExecutor

	flags       Flags
	keyBindings []KeyBinding

	lineObjs map[int]line.Line
	order    []int
	matches  []*line.Match

	hoverIndex   int
	scrollOffset int
	mode         Mode

	scrollBar *ScrollBar
	chrome    *HelperChrome

	dirty        bool
	dirtyIndexes []int

	oldMaxY, oldMaxX int
}

// New builds a Controller over lineObjs (keyed by display index) and
// wires it to the terminal via screen.
func New(screen Screen, flags Flags, keyBindings []KeyBinding, lineObjs map[int]line.Line, executor CommandExecutor) (*Controller, error) {
	c := &Controller{
		screen:      screen,
		printer:     NewColorPrinter(screen),
		executor:    executor,
		flags:       flags,
		keyBindings: keyBindings,
		lineObjs:    lineObjs,
	}

	for idx := range lineObjs {
		c.order = append(c.order, idx)
	}
	sort.Ints(c.order)

	for _, idx := range c.order {
		if m, ok := lineObjs[idx].(*line.Match); ok {
			m.SetNotifier(c)
			c.matches = append(c.matches, m)
		}
	}
	if len(c.matches) == 0 {
		return nil, fmt.Errorf("no matched lines to select from")
	}

	c.scrollBar = newScrollBar(c.printer, c, len(lineObjs))
	c.chrome = newHelperChrome(c.printer, c, flags.AllInput)
	c.oldMaxY, c.oldMaxX = c.screenDimensions()

	if flags.SelectAll {
		c.toggleSelectAll()
	}

	c.setHover(c.hoverIndex, true)
	c.updateScrollOffset()

	return c, nil
}

func (c *Controller) screenDimensions() (maxY, maxX int) {
	w, h := c.screen.Size()
	return h, w
}

// Bounds is re-exported from the line package so callers constructing
// a Controller don't need a second import for the same rectangle.
type Bounds = line.Bounds

func (c *Controller) chromeBoundaries() Bounds {
	maxY, maxX := c.screenDimensions()
	minX := 0
	if c.scrollBar.IsActivated() || c.mode == QuickSelectMode {
		minX = chromeMinX
	}
	maxY = c.chrome.reduceMaxY(maxY)
	maxX = c.chrome.reduceMaxX(maxX)
	return Bounds{MinX: minX, MinY: chromeMinY, MaxX: maxX, MaxY: maxY}
}

func (c *Controller) viewportHeight() int {
	b := c.chromeBoundaries()
	return b.MaxY - b.MinY
}

func (c *Controller) setHover(matchIndex int, val bool) {
	c.matches[matchIndex].SetHover(val)
}

func (c *Controller) toggleSelect() {
	c.matches[c.hoverIndex].ToggleSelect()
}

func (c *Controller) toggleSelectAll() {
	seen := map[string]bool{}
	for _, m := range c.matches {
		if !seen[m.GetPath()] {
			seen[m.GetPath()] = true
			m.ToggleSelect()
		}
	}
}

// Control is the main event loop: it prints the initial screen, then
// alternates between reading a key (from the queued execute-keys list
// first, the terminal after) and dispatching it.
func (c *Controller) Control() error {
	c.printAll()
	c.resetDirty()
	c.moveCursor()
	c.screen.Show()

	keys := append([]string{}, c.flags.ExecuteKeys...)
	for {
		var key string
		if len(keys) > 0 {
			key = keys[0]
			keys = keys[1:]
		} else {
			ev := c.screen.PollEvent()
			switch e := ev.(type) {
			case *tcell.EventKey:
				key = KeyName(e)
			case *tcell.EventResize:
				c.checkResize()
				continue
			default:
				continue
			}
		}

		c.checkResize()
		if err := c.processInput(key); err != nil {
			return err
		}
		c.processDirty()
		c.resetDirty()
		c.moveCursor()
		c.screen.Show()
	}
}

func (c *Controller) checkResize() {
	maxY, maxX := c.screenDimensions()
	if maxY != c.oldMaxY || maxX != c.oldMaxX {
		c.printAll()
		c.resetDirty()
		c.updateScrollOffset()
		c.screen.Show()
	}
	c.oldMaxY, c.oldMaxX = c.screenDimensions()
}

// updateScrollOffset centers the viewport on the hovered match,
// but only moves it when the hovered line has drifted more than a
// quarter of the viewport away from where it currently sits -- this
// avoids a jittery scrollbar that re-centers on every single keypress.
func (c *Controller) updateScrollOffset() {
	windowHeight := c.viewportHeight()
	halfHeight := int(float64(windowHeight)/2.0 + 0.5)

	hovered := c.matches[c.hoverIndex]
	desiredTopRow := hovered.Index() - halfHeight
	if desiredTopRow < 0 {
		desiredTopRow = 0
	}

	oldOffset := c.scrollOffset
	newOffset := -desiredTopRow

	if absInt(newOffset-oldOffset) > halfHeight/2 || c.hoverIndex+oldOffset < 0 {
		c.scrollOffset = newOffset
	}
	if oldOffset != c.scrollOffset {
		c.dirtyAll()
	}
	c.scrollBar.calcBoxFractions()
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func (c *Controller) pageDown() {
	c.moveIndex(int(float64(c.viewportHeight()) * 0.5))
}

func (c *Controller) pageUp() {
	c.moveIndex(-int(float64(c.viewportHeight()) * 0.5))
}

func (c *Controller) moveIndex(delta int) {
	n := len(c.matches)
	newIndex := ((c.hoverIndex+delta)%n + n) % n
	c.jumpToIndex(newIndex)
	c.chrome.clearDescriptionPane()
}

func (c *Controller) jumpToIndex(newIndex int) {
	c.setHover(c.hoverIndex, false)
	c.hoverIndex = newIndex
	c.setHover(c.hoverIndex, true)
	c.updateScrollOffset()
}

func (c *Controller) processInput(key string) error {
	switch {
	case key == "k" || key == "UP":
		c.moveIndex(-1)
	case key == "j" || key == "DOWN":
		c.moveIndex(1)
	case key == "x":
		c.toggleQuickSelectMode()
	case key == "c":
		return c.beginEnterCommand()
	case key == " " || key == "NPAGE":
		c.pageDown()
	case key == "b" || key == "PPAGE":
		c.pageUp()
	case key == "g" || key == "HOME":
		c.jumpToIndex(0)
	case (key == "G" && c.mode != QuickSelectMode) || key == "END":
		c.jumpToIndex(len(c.matches) - 1)
	case key == "d":
		c.describeFile()
	case key == "f":
		c.toggleSelect()
	case key == "F":
		c.toggleSelect()
		c.moveIndex(1)
	case key == "A" && c.mode != QuickSelectMode:
		c.toggleSelectAll()
	case key == "ENTER" && (!c.flags.AllInput || c.flags.PresetCommand != ""):
		return c.onEnter()
	case key == "q":
		if err := c.executor.OutputNothing(); err != nil {
			return err
		}
		c.getPathsToUse()
		return &QuitError{Code: 0}
	case c.mode == QuickSelectMode && containsRune(Labels, key):
		c.selectQuickMode(key)
	}

	for _, kb := range c.keyBindings {
		if key == kb.Key {
			return c.executePreconfiguredCommand(kb.Command)
		}
	}
	return nil
}

func containsRune(alphabet, key string) bool {
	return len(key) == 1 && indexOf(alphabet, key[0]) >= 0
}

func indexOf(alphabet string, b byte) int {
	for i := 0; i < len(alphabet); i++ {
		if alphabet[i] == b {
			return i
		}
	}
	return -1
}

func (c *Controller) getPathsToUse() []*line.Match {
	toUse := c.selectedMatches()
	if len(toUse) == 0 {
		toUse = c.hoveredMatches()
	}
	indices := make([]int, len(toUse))
	for i, m := range toUse {
		indices[i] = m.Index()
	}
	_ = c.executor.OutputSelection(indices)
	return toUse
}

func (c *Controller) selectedMatches() []*line.Match {
	var out []*line.Match
	for _, m := range c.matches {
		if m.Selected() {
			out = append(out, m)
		}
	}
	return out
}

func (c *Controller) hoveredMatches() []*line.Match {
	return []*line.Match{c.matches[c.hoverIndex]}
}

func (c *Controller) describeFile() {
	c.chrome.outputDescription(c.matches[c.hoverIndex])
}

func (c *Controller) beginEnterCommand() error {
	c.screen.Erase()
	if c.flags.PresetCommand != "" {
		c.chrome.Output(c.mode)
		b := c.chromeBoundaries()
		yStart := (b.MaxY+b.MinY)/2 - 3
		c.printProvidedCommandWarning(yStart, b.MinX)
		c.screen.Show()
		c.screen.PollEvent()
		c.mode = SelectMode
		c.dirtyAll()
		return nil
	}

	c.mode = CommandMode
	c.chrome.Output(c.mode)

	command, err := c.showAndGetCommand()
	if err != nil {
		return err
	}
	if command == "" {
		c.mode = SelectMode
		c.dirtyAll()
		return nil
	}
	matches := c.getPathsToUse()
	if err := c.executor.ExecComposedCommand(command, matches); err != nil {
		return err
	}
	return &QuitError{Code: 0}
}

func (c *Controller) printProvidedCommandWarning(yStart, xStart int) {
	c.printer.AddStyled(yStart, xStart,
		"Oh no! You already provided a command so you cannot enter command mode.",
		tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorMaroon))
	c.printer.AddPlain(yStart+1, xStart, fmt.Sprintf(`The command you provided was "%s" `, c.flags.PresetCommand))
	c.printer.AddPlain(yStart+2, xStart, "Press any key to go back to selecting paths.")
}

func (c *Controller) showAndGetCommand() (string, error) {
	paths := c.getPathsToUse()
	maxY, maxX := c.screenDimensions()

	beginHeight := int(float64(maxY)/2.0+0.5) - len(paths)/2
	if beginHeight <= 1 {
		beginHeight = maxY - 6
	}

	border := repeatStr("=", len(shortCommandPrompt))
	promptLine := repeatStr(".", len(shortCommandPrompt))
	maxPathLength := maxX - 5
	if c.chrome.isSidebarMode() {
		maxPathLength = len(shortCommandPrompt) + 18
	}

	startHeight := beginHeight - 1 - len(paths)
	c.printer.AddPlain(startHeight-3, 0, border)
	c.printer.AddPlain(startHeight-2, 0, shortPathsHeader)
	c.printer.AddPlain(startHeight-1, 0, border)

	for i, p := range paths {
		path := p.GetPath()
		if len(path) > maxPathLength {
			path = path[:maxPathLength]
		}
		c.printer.AddPlain(startHeight+i, 0, path)
	}

	c.printer.AddPlain(beginHeight, 0, shortCommandPrompt)
	c.printer.AddPlain(beginHeight+1, 0, shortCommandPrompt2)
	c.printer.AddPlain(beginHeight-1, 0, border)
	c.printer.AddPlain(beginHeight+2, 0, border)
	c.printer.AddPlain(beginHeight+3, 0, promptLine)

	c.screen.Show()
	return c.screen.ReadLine(beginHeight+3, 0, maxX-1)
}

func repeatStr(s string, n int) string {
	if n <= 0 {
		return ""
	}
	b := make([]byte, n)
	for i := range b {
		b[i] = s[0]
	}
	return string(b)
}

func (c *Controller) executePreconfiguredCommand(command string) error {
	matches := c.getPathsToUse()
	if err := c.executor.ExecComposedCommand(command, matches); err != nil {
		return err
	}
	return &QuitError{Code: 0}
}

func (c *Controller) onEnter() error {
	matches := c.getPathsToUse()
	if len(matches) == 0 {
		matches = c.hoveredMatches()
	}
	var err error
	if c.flags.PresetCommand != "" {
		err = c.executor.ExecComposedCommand(c.flags.PresetCommand, matches)
	} else {
		err = c.executor.EditFiles(matches)
	}
	if err != nil {
		return err
	}
	return &QuitError{Code: 0}
}

func (c *Controller) resetDirty() {
	c.dirty = false
	c.dirtyIndexes = nil
}

// MarkDirty implements line.DirtyNotifier.
func (c *Controller) MarkDirty(index int) { c.dirtyIndexes = append(c.dirtyIndexes, index) }

func (c *Controller) dirtyAll() { c.dirty = true }

func (c *Controller) processDirty() {
	if c.dirty {
		c.printAll()
		return
	}
	b := c.chromeBoundaries()
	clearedAny := false
	for _, idx := range c.dirtyIndexes {
		yPos := b.MinY + idx + c.scrollOffset
		if yPos >= b.MinY && yPos < b.MaxY {
			clearedAny = true
			c.clearLine(yPos)
			if l, ok := c.lineObjs[idx]; ok {
				l.Render(c.printer, b, c.scrollOffset)
			}
		}
	}
	if clearedAny && c.chrome.isSidebarMode() {
		c.chrome.Output(c.mode)
	}
}

func (c *Controller) clearLine(yPos int) {
	b := c.chromeBoundaries()
	_, maxX := c.screenDimensions()
	c.printer.ClearSquare(yPos, yPos+1, b.MinX, maxX)
}

func (c *Controller) printAll() {
	c.screen.Erase()
	c.printLines()
	c.scrollBar.Output()
	c.printQuickSelectLabels()
	c.chrome.Output(c.mode)
}

func (c *Controller) printLines() {
	b := c.chromeBoundaries()
	for _, idx := range c.order {
		c.lineObjs[idx].Render(c.printer, b, c.scrollOffset)
	}
}

func (c *Controller) printQuickSelectLabels() {
	if c.mode != QuickSelectMode {
		return
	}
	maxY, _ := c.screenDimensions()
	topY := maxY - 2
	minY := c.scrollBar.minY() - 1
	for i := minY; i <= topY; i++ {
		idx := i - minY
		if idx < len(Labels) {
			c.printer.AddStyled(i, 1, string(Labels[idx]), labelStyle)
		}
	}
}

func (c *Controller) moveCursor() {
	xPos := 0
	if c.scrollBar.IsActivated() {
		xPos = chromeMinX
	}
	yPos := c.matches[c.hoverIndex].Index() + c.scrollOffset
	c.screen.Move(xPos, yPos)
}

func (c *Controller) toggleQuickSelectMode() {
	if c.mode == QuickSelectMode {
		c.mode = SelectMode
	} else {
		c.mode = QuickSelectMode
	}
	c.printAll()
}

// selectQuickMode resolves a Quick-Select label keypress to a line
// index, ignoring it outright when the label names a row that is out
// of range (no line at that screen position, or the line there is a
// Simple line rather than a Match) instead of indexing past the end
// of the line map.
func (c *Controller) selectQuickMode(key string) {
	labelIndex := indexOf(Labels, key[0])
	if labelIndex < 0 || labelIndex >= len(c.lineObjs) {
		return
	}
	target := labelIndex - c.scrollOffset
	obj, ok := c.lineObjs[target]
	if !ok {
		return
	}
	m, ok := obj.(*line.Match)
	if !ok {
		return
	}
	for i, cand := range c.matches {
		if cand == m {
			c.hoverIndex = i
			c.toggleSelect()
			return
		}
	}
}
