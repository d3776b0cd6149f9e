// Package text implements the ANSI-formatted text model: a sequence of
// alternating format/literal segments that carries color and style
// attributes through slicing, truncation, and rendering.
package text

import (
	"regexp"
	"strconv"
	"strings"
)

// Attr bits, mirroring the curses A_BOLD / A_UNDERLINE bit flags the
// reference packs into its "other" attribute field.
type Attr int

const (
	AttrBold Attr = 1 << iota
	AttrUnderline
)

// Format describes one SGR-derived style: a foreground color index, a
// background color index (both -1 meaning "use terminal default"),
// and an attribute bitmask.
type Format struct {
	FgColor int
	BgColor int
	Attr    Attr
}

const (
	foregroundBase = 30
	foregroundTop  = 39
	backgroundBase = 40
	backgroundTop  = 49
	boldCode       = 1
	underlineCode  = 4
)

var ansiEscape = regexp.MustCompile(`\x1b\[([^mK]*)[mK]`)

// Text is a sequence of alternating (format, literal) segments. The
// invariant is that the sequence always begins with a format segment
// (possibly the default Format), so even indices hold formats and odd
// indices hold literal text. The plain-text view is the concatenation
// of the odd-indexed segments.
type Text struct {
	segments []segment
}

type segment struct {
	isFormat bool
	format   Format
	literal  string
}

// Parse splits raw into alternating format/text segments by SGR escape
// sequences. Unknown codes are ignored; 0/empty resets to defaults.
func Parse(raw string) Text {
	defaultFormat := Format{FgColor: -1, BgColor: -1}
	if raw == "" {
		return Text{segments: []segment{{isFormat: true, format: defaultFormat}}}
	}
	pieces := splitAlternating(raw)
	segs := make([]segment, 0, len(pieces))
	segs = append(segs, segment{isFormat: true, format: defaultFormat}) // leading empty format
	for i, p := range pieces {
		if i%2 == 0 {
			segs = append(segs, segment{literal: p})
		} else {
			segs = append(segs, segment{isFormat: true, format: parseFormatting(p)})
		}
	}
	return Text{segments: segs}
}

// splitAlternating mimics Python's re.split: returns text, code, text,
// code, ..., text around each match of the escape pattern.
func splitAlternating(raw string) []string {
	locs := ansiEscape.FindAllStringSubmatchIndex(raw, -1)
	if locs == nil {
		return []string{raw}
	}
	var out []string
	prev := 0
	for _, loc := range locs {
		out = append(out, raw[prev:loc[0]])
		out = append(out, raw[loc[2]:loc[3]])
		prev = loc[1]
	}
	out = append(out, raw[prev:])
	return out
}

func parseFormatting(codes string) Format {
	f := Format{FgColor: -1, BgColor: -1}
	for _, field := range strings.Split(codes, ";") {
		if field == "" {
			continue
		}
		n, err := strconv.Atoi(field)
		if err != nil {
			continue
		}
		switch {
		case n >= foregroundBase && n <= foregroundTop:
			f.FgColor = n - foregroundBase
		case n >= backgroundBase && n <= backgroundTop:
			f.BgColor = n - backgroundBase
		case n == boldCode:
			f.Attr |= AttrBold
		case n == underlineCode:
			f.Attr |= AttrUnderline
		}
	}
	return f
}

// Sequence renders f back into an SGR escape sequence (fg;bg;attrs),
// so a decorated match's synthesized Format survives Parse: bold and
// underline become codes 1 and 4, and a negative (terminal default)
// color becomes 39/49, which render as the terminal default.
func Sequence(f Format) string {
	fg, bg := foregroundBase+f.FgColor, backgroundBase+f.BgColor
	if f.FgColor < 0 {
		fg = foregroundTop
	}
	if f.BgColor < 0 {
		bg = backgroundTop
	}
	attrs := "0"
	switch {
	case f.Attr&AttrBold != 0 && f.Attr&AttrUnderline != 0:
		attrs = "1;4"
	case f.Attr&AttrBold != 0:
		attrs = "1"
	case f.Attr&AttrUnderline != 0:
		attrs = "4"
	}
	return "\x1b[" + strconv.Itoa(fg) + ";" + strconv.Itoa(bg) + ";" + attrs + "m"
}

// New builds a Text from a raw string that may contain ANSI escapes.
func New(raw string) Text { return Parse(raw) }

// Plain returns the plain-text view: all literal segments concatenated.
func (t Text) Plain() string {
	var b strings.Builder
	for _, s := range t.segments {
		if !s.isFormat {
			b.WriteString(s.literal)
		}
	}
	return b.String()
}

func (t Text) String() string { return t.Plain() }

// Len returns the rune count of the plain-text view.
func (t Text) Len() int { return len([]rune(t.Plain())) }

// findSegmentPlace locates the segment index and in-segment rune
// offset of the `at`-th plain-text rune, mirroring
// FormattedText.find_segment_place.
func (t Text) findSegmentPlace(at int) (index int, offset int) {
	toGo := at
	for i := 1; i < len(t.segments); i += 2 {
		runes := []rune(t.segments[i].literal)
		toGo -= len(runes)
		if toGo < 0 {
			return i, len(runes) + toGo
		}
	}
	if toGo == 0 {
		last := len(t.segments) - 2
		if last < 1 {
			last = 1
		}
		return last, len([]rune(t.segments[last].literal))
	}
	// Out-of-range offset: clamp to the end, matching defensive
	// behavior expected of a terminal-facing splitter.
	return len(t.segments) - 2, len([]rune(t.segments[len(t.segments)-2].literal))
}

// BreakAt splits t at the `where`-th plain-text rune into two Texts
// whose plain-text concatenation equals t.Plain(), and whose
// right-hand Text begins with the format active at the break point.
func (t Text) BreakAt(where int) (before Text, after Text) {
	if where >= t.Len() {
		return t, Text{segments: []segment{{isFormat: true}}}
	}
	index, splitPoint := t.findSegmentPlace(where)
	runes := []rune(t.segments[index].literal)
	beforeText := string(runes[:splitPoint])
	afterText := string(runes[splitPoint:])

	beforeSegs := append([]segment{}, t.segments[:index]...)
	beforeSegs = append(beforeSegs, segment{literal: beforeText})

	formatForSegment := t.segments[index-1]
	afterSegs := append([]segment{formatForSegment, {literal: afterText}}, t.segments[index+1:]...)

	return Text{segments: beforeSegs}, Text{segments: afterSegs}
}

// Printer is the rendering sink a Text prints itself into: a cell
// addressed by (y, x) with the printer's currently-set attributes.
type Printer interface {
	// AddStr writes s at (y, x) with the given format.
	AddStr(y, x int, s string, f Format)
	// SetAttributes updates the printer's "current" format, used when
	// a caller passes the CurrentFormat sentinel to AddStr.
	SetAttributes(f Format)
	// Current returns the printer's active format.
	Current() Format
}

// CurrentFormat is a sentinel passed to PrintText's callers; segments
// use it to mean "whatever the printer's current attributes are".
var CurrentFormat = Format{FgColor: -2, BgColor: -2}

// PrintText emits t's segments left to right starting at (y, x),
// updating the printer's current attributes on each format segment.
// No attribute is restored when the call returns: callers that need
// isolation must set their own attributes beforehand. Text is
// truncated at maxLen plain runes.
func (t Text) PrintText(y, x int, p Printer, maxLen int) {
	printed := 0
	for _, s := range t.segments {
		if printed >= maxLen {
			break
		}
		if s.isFormat {
			p.SetAttributes(s.format)
			continue
		}
		runes := []rune(s.literal)
		remaining := maxLen - printed
		if remaining < len(runes) {
			runes = runes[:remaining]
		}
		p.AddStr(y, x+printed, string(runes), CurrentFormat)
		printed += len(runes)
	}
}
