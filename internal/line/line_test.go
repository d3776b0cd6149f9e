package line

import (
	"testing"

	"github.com/relpath/pathpick/internal/extract"
	"github.com/relpath/pathpick/internal/text"
)

type noStat struct{}

func (noStat) FileSize(string) (string, error)     { return "", errUnavailable }
func (noStat) LineCount(string) (string, error)     { return "", errUnavailable }
func (noStat) OwnerUser(string) (string, error)     { return "", errUnavailable }
func (noStat) OwnerGroup(string) (string, error)    { return "", errUnavailable }
func (noStat) LastAccessed(string) (string, error)  { return "", errUnavailable }
func (noStat) LastModified(string) (string, error)  { return "", errUnavailable }

var errUnavailable = &statError{"stat unavailable"}

type statError struct{ msg string }

func (e *statError) Error() string { return e.msg }

func TestNewMatchStripsTrailingWhitespace(t *testing.T) {
	raw := "src/main.go   "
	formatted := text.Parse(raw)
	result := extract.MatchResult{Path: "src/main.go", Number: 0, Span: extract.Span{Start: 0, End: len(raw)}}
	m := NewMatch(formatted, result, "./src/main.go", 3, false, noStat{})
	if m.Group() != "src/main.go" {
		t.Fatalf("Group() = %q, want trimmed", m.Group())
	}
	if m.Index() != 3 {
		t.Fatalf("Index() = %d", m.Index())
	}
}

func TestMatchToggleSelectAndHover(t *testing.T) {
	formatted := text.Parse("src/main.go")
	result := extract.MatchResult{Path: "src/main.go", Span: extract.Span{Start: 0, End: 11}}
	m := NewMatch(formatted, result, "./src/main.go", 0, false, noStat{})
	if m.Selected() {
		t.Fatal("should start unselected")
	}
	m.ToggleSelect()
	if !m.Selected() {
		t.Fatal("ToggleSelect should select")
	}
	m.SetHover(true)
	if !m.Hovered() {
		t.Fatal("SetHover(true) should hover")
	}
}

func TestMatchSpanClampedToPlainLength(t *testing.T) {
	formatted := text.Parse("short")
	result := extract.MatchResult{Path: "short", Span: extract.Span{Start: 0, End: 999}}
	m := NewMatch(formatted, result, "short", 0, false, noStat{})
	if m.Group() != "short" {
		t.Fatalf("Group() = %q, want clamped to plain text", m.Group())
	}
}

func TestDescriptionLinesDegradesOnStatError(t *testing.T) {
	formatted := text.Parse("src/main.go")
	result := extract.MatchResult{Path: "src/main.go", Span: extract.Span{Start: 0, End: 11}}
	m := NewMatch(formatted, result, "src/main.go", 0, false, noStat{})
	lines := m.DescriptionLines()
	if len(lines) != 6 {
		t.Fatalf("len(lines) = %d, want 6", len(lines))
	}
	for _, l := range lines {
		if l == "" {
			t.Fatal("description line should not be empty even on stat error")
		}
	}
}

func TestSimpleRenderOutOfBoundsNoOp(t *testing.T) {
	s := NewSimple(text.Parse("hello"), 100)
	s.Render(nil, Bounds{MinX: 0, MinY: 0, MaxX: 80, MaxY: 10}, 0)
}
