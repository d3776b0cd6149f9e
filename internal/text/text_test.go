package text

import "testing"

func TestParsePlain(t *testing.T) {
	got := Parse("hello world").Plain()
	if got != "hello world" {
		t.Fatalf("Plain() = %q, want %q", got, "hello world")
	}
}

func TestParseStripsEscapes(t *testing.T) {
	raw := "\x1b[31;40;1mred\x1b[0m plain"
	txt := Parse(raw)
	if got := txt.Plain(); got != "red plain" {
		t.Fatalf("Plain() = %q, want %q", got, "red plain")
	}
	if txt.Len() != len([]rune("red plain")) {
		t.Fatalf("Len() = %d, want %d", txt.Len(), len([]rune("red plain")))
	}
}

func TestParseEmpty(t *testing.T) {
	txt := Parse("")
	if txt.Plain() != "" || txt.Len() != 0 {
		t.Fatalf("Parse(\"\") not empty: %+v", txt)
	}
}

func TestSequenceRoundTrips(t *testing.T) {
	f := Format{FgColor: 1, BgColor: 4, Attr: AttrBold | AttrUnderline}
	seq := Sequence(f)
	reparsed := Parse(seq + "x")
	before, after := reparsed.BreakAt(0)
	if before.Plain() != "" {
		t.Fatalf("before = %q, want empty", before.Plain())
	}
	if after.Plain() != "x" {
		t.Fatalf("after = %q, want %q", after.Plain(), "x")
	}
}

func TestBreakAtMidSegment(t *testing.T) {
	txt := Parse("\x1b[31;40;0mhello\x1b[0m world")
	before, after := txt.BreakAt(3)
	if before.Plain() != "hel" {
		t.Fatalf("before.Plain() = %q, want %q", before.Plain(), "hel")
	}
	if after.Plain() != "lo world" {
		t.Fatalf("after.Plain() = %q, want %q", after.Plain(), "lo world")
	}
	if before.Plain()+after.Plain() != txt.Plain() {
		t.Fatalf("split does not reconstruct original: %q + %q != %q", before.Plain(), after.Plain(), txt.Plain())
	}
}

func TestBreakAtEnd(t *testing.T) {
	txt := Parse("abc")
	before, after := txt.BreakAt(txt.Len())
	if before.Plain() != "abc" || after.Plain() != "" {
		t.Fatalf("BreakAt(Len()) = %q / %q, want %q / %q", before.Plain(), after.Plain(), "abc", "")
	}
}

type recordingPrinter struct {
	writes  []string
	current Format
}

func (r *recordingPrinter) AddStr(y, x int, s string, f Format) {
	r.writes = append(r.writes, s)
}
func (r *recordingPrinter) SetAttributes(f Format) { r.current = f }
func (r *recordingPrinter) Current() Format        { return r.current }

func TestPrintTextTruncates(t *testing.T) {
	txt := Parse("abcdef")
	p := &recordingPrinter{}
	txt.PrintText(0, 0, p, 3)
	if len(p.writes) != 1 || p.writes[0] != "abc" {
		t.Fatalf("writes = %v, want [\"abc\"]", p.writes)
	}
}
