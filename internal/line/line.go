// Package line implements the two Line variants the Screen Controller
// renders: Simple (unmatched, display-only) and Match (matched,
// selectable, hoverable, render-truncatable).
package line

import (
	"strings"

	"github.com/relpath/pathpick/internal/extract"
	"github.com/relpath/pathpick/internal/text"
)

// Bounds is the chrome-adjusted drawable rectangle: [MinX,MaxX) x
// [MinY,MaxY), in screen cells.
type Bounds struct {
	MinX, MinY, MaxX, MaxY int
}

// DirtyNotifier lets a Match request a partial repaint of its own row
// without holding an owning pointer back to the Controller -- only a
// narrow "mark this index dirty" capability.
type DirtyNotifier interface {
	MarkDirty(index int)
}

// Line is the tagged-variant interface both Simple and Match satisfy;
// there is a single Render operation and no inheritance.
type Line interface {
	Index() int
	Render(p text.Printer, bounds Bounds, scrollOffset int)
}

// Simple is an unmatched, display-only line.
type Simple struct {
	Formatted text.Text
	index     int
}

// NewSimple builds a Simple line at the given display index.
func NewSimple(formatted text.Text, index int) *Simple {
	return &Simple{Formatted: formatted, index: index}
}

func (s *Simple) Index() int { return s.index }

func (s *Simple) Render(p text.Printer, b Bounds, scrollOffset int) {
	yPos := b.MinY + s.index + scrollOffset
	if yPos < b.MinY || yPos >= b.MaxY {
		return
	}
	maxLen := b.MaxX - b.MinX
	if plainLen := s.Formatted.Len(); plainLen < maxLen {
		maxLen = plainLen
	}
	s.Formatted.PrintText(yPos, b.MinX, p, maxLen)
}

const (
	arrowDecorator    = "|===>"
	truncateDecorator = "|...|"
)

// Match is a matched, selectable, hoverable line.
type Match struct {
	Formatted text.Text
	Path      string
	Number    int
	AllInput  bool

	index int

	span  extract.Span
	group string

	selected  bool
	hovered   bool
	truncated bool

	beforeText     text.Text
	afterText      text.Text
	decoratedMatch text.Text

	notifier DirtyNotifier

	stat StatReader
}

// StatReader supplies the filesystem facts the description pane
// shows; it is read on demand so Match construction never touches
// the filesystem unless asked to.
type StatReader interface {
	FileSize(path string) (string, error)
	LineCount(path string) (string, error)
	OwnerUser(path string) (string, error)
	OwnerGroup(path string) (string, error)
	LastAccessed(path string) (string, error)
	LastModified(path string) (string, error)
}

// NewMatch builds a Match from a formatted source line and an
// extractor result. resolvedPath is the already path-resolved form
// (extract.Resolver.PrependDir output, or the raw path verbatim when
// allInput is set).
func NewMatch(formatted text.Text, result extract.MatchResult, resolvedPath string, index int, allInput bool, stat StatReader) *Match {
	m := &Match{
		Formatted: formatted,
		Path:      resolvedPath,
		Number:    result.Number,
		AllInput:  allInput,
		index:     index,
		stat:      stat,
	}

	plain := formatted.Plain()
	start := result.Span.Start
	end := result.Span.End
	if end > len(plain) {
		end = len(plain)
	}
	if start > end {
		start = end
	}
	m.span = extract.Span{Start: start, End: end}

	// Matches like "README        " aggressively include trailing
	// whitespace; strip it from both the span and the captured text.
	subset := plain[start:end]
	stripped := strings.TrimRight(subset, " \t")
	trailing := len(subset) - len(stripped)
	m.span.End -= trailing
	m.group = stripped

	m.beforeText, _ = formatted.BreakAt(runeIndex(plain, m.span.Start))
	_, m.afterText = formatted.BreakAt(runeIndex(plain, m.span.End))

	m.updateDecoratedMatch(nil)
	return m
}

// runeIndex converts a byte offset into plain into a rune offset, the
// unit Text.BreakAt operates in.
func runeIndex(plain string, byteOffset int) int {
	if byteOffset >= len(plain) {
		return len([]rune(plain))
	}
	return len([]rune(plain[:byteOffset]))
}

func (m *Match) Index() int { return m.index }

// SetNotifier attaches the dirty-marking capability; called once when
// the Controller takes ownership of the Line Map.
func (m *Match) SetNotifier(n DirtyNotifier) { m.notifier = n }

func (m *Match) Selected() bool  { return m.selected }
func (m *Match) Hovered() bool   { return m.hovered }
func (m *Match) Truncated() bool { return m.truncated }
func (m *Match) GetPath() string { return m.Path }
func (m *Match) LineNum() int    { return m.Number }
func (m *Match) Group() string   { return m.group }
func (m *Match) Before() string  { return m.beforeText.Plain() }
func (m *Match) After() string   { return m.afterText.Plain() }

// ToggleSelect flips the selection flag; toggling twice is a no-op.
func (m *Match) ToggleSelect() { m.SetSelect(!m.selected) }

func (m *Match) SetSelect(val bool) {
	m.selected = val
	m.updateDecoratedMatch(nil)
}

func (m *Match) SetHover(val bool) {
	m.hovered = val
	m.updateDecoratedMatch(nil)
}

// DescriptionLines returns the six description-pane lines the
// sidebar shows for this match: access/modify time, owner user and
// group, size, and line count, in that fixed order. Any stat error
// degrades to an inline message rather than failing the render. A
// Match with no StatReader returns a single placeholder line instead.
func (m *Match) DescriptionLines() []string {
	if m.stat == nil {
		return []string{"(no file information available)"}
	}
	fetch := func(f func(string) (string, error)) string {
		s, err := f(m.Path)
		if err != nil {
			return "unavailable: " + err.Error()
		}
		return s
	}
	return []string{
		fetch(m.stat.LastAccessed),
		fetch(m.stat.LastModified),
		fetch(m.stat.OwnerUser),
		fetch(m.stat.OwnerGroup),
		fetch(m.stat.FileSize),
		fetch(m.stat.LineCount),
	}
}

// IsGitAbbreviatedPath reports whether Path is one of git's
// triple-dot abbreviated paths (".../foo/bar").
func (m *Match) IsGitAbbreviatedPath() bool {
	return strings.HasPrefix(m.Path, ".../")
}

// IsResolvable is the negation of IsGitAbbreviatedPath.
func (m *Match) IsResolvable() bool { return !m.IsGitAbbreviatedPath() }

func (m *Match) decorator() string {
	if m.selected {
		return arrowDecorator
	}
	return ""
}

// updateDecoratedMatch recomputes the cached decorated-match Text
// from current selected/hovered/allInput state, optionally truncating
// the middle to fit within maxLen plain characters, and marks the
// line dirty so the next tick repaints it.
func (m *Match) updateDecoratedMatch(maxLen *int) {
	var fg, bg int
	var attr text.Attr
	switch {
	case m.hovered && m.selected:
		fg, bg, attr = 7, 1, text.AttrBold // white, red, bold
	case m.hovered:
		fg, bg, attr = 7, 4, text.AttrBold // white, blue, bold
	case m.selected:
		fg, bg, attr = 7, 2, text.AttrBold // white, green, bold
	case !m.AllInput:
		fg, bg, attr = -1, -1, text.AttrUnderline // default colors, underlined
	default:
		fg, bg, attr = -1, -1, 0 // no decoration
	}

	decoratorText := m.decorator()
	if m.notifier != nil {
		m.notifier.MarkDirty(m.index)
	}

	plain := decoratorText + m.group
	if maxLen != nil {
		if spaceAllowed := *maxLen - len(truncateDecorator) - len(decoratorText) - len(m.beforeText.Plain()); len(plain) > *maxLen-len(m.beforeText.Plain()) && spaceAllowed > 0 {
			midPoint := spaceAllowed / 2
			beginMatch := plain[:midPoint]
			endMatch := plain[len(plain)-midPoint:]
			plain = beginMatch + truncateDecorator + endMatch
		}
	}

	m.decoratedMatch = text.Parse(text.Sequence(text.Format{FgColor: fg, BgColor: bg, Attr: attr}) + plain)
}

// printUpTo prints up to maxLen plain characters of t at (y, xPos),
// returning the updated (x, remaining) pair.
func printUpTo(t text.Text, p text.Printer, y, xPos, maxLen int) (int, int) {
	if maxLen <= 0 {
		return xPos, maxLen
	}
	printable := t.Len()
	if printable > maxLen {
		printable = maxLen
	}
	t.PrintText(y, xPos, p, printable)
	return xPos + printable, maxLen - printable
}

func (m *Match) Render(p text.Printer, b Bounds, scrollOffset int) {
	yPos := b.MinY + m.index + scrollOffset
	if yPos < b.MinY || yPos >= b.MaxY {
		return
	}

	importantLen := len(m.beforeText.Plain()) + m.decoratedMatch.Len()
	spaceForPrinting := b.MaxX - b.MinX
	if importantLen > spaceForPrinting {
		m.updateDecoratedMatch(&spaceForPrinting)
		m.truncated = true
	} else if expanded := len(m.beforeText.Plain()) + len(m.group); expanded < spaceForPrinting && m.truncated {
		m.updateDecoratedMatch(nil)
		m.truncated = false
	}

	maxLen := b.MaxX - b.MinX
	x, remaining := b.MinX, maxLen
	x, remaining = printUpTo(m.beforeText, p, yPos, x, remaining)
	x, remaining = printUpTo(m.decoratedMatch, p, yPos, x, remaining)
	_, _ = printUpTo(m.afterText, p, yPos, x, remaining)
}
