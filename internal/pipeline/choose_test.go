package pipeline

import (
	"testing"

	"github.com/relpath/pathpick/internal/line"
	"github.com/relpath/pathpick/internal/state"
)

func TestApplySelectionFiltersBadIndices(t *testing.T) {
	dir := t.TempDir()
	paths, err := state.Resolve(dir)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	lm := state.LineMap{
		0: {IsMatch: true, Raw: "src/a.go"},
		1: {IsMatch: false, Raw: "plain text"},
	}
	selected := applySelection(paths, lm, []int{0, 1, 99})
	if !selected[0] {
		t.Fatal("index 0 is a valid match and should be selected")
	}
	if selected[1] {
		t.Fatal("index 1 is not a match and should not be selected")
	}
	if selected[99] {
		t.Fatal("out-of-range index should not be selected")
	}
	if len(selected) != 1 {
		t.Fatalf("len(selected) = %d, want 1", len(selected))
	}
}

func TestBuildLinesReconstructsMatchAndSimple(t *testing.T) {
	lm := state.LineMap{
		0: {IsMatch: false, Raw: "plain line"},
		1: {IsMatch: true, Raw: "src/a.go:7", Path: "./src/a.go", Number: 7, SpanStart: 0, SpanEnd: 10},
	}
	objs := BuildLines(lm, line.OSStat{})
	if _, ok := objs[0].(*line.Simple); !ok {
		t.Fatalf("index 0 should build a *line.Simple, got %T", objs[0])
	}
	m, ok := objs[1].(*line.Match)
	if !ok {
		t.Fatalf("index 1 should build a *line.Match, got %T", objs[1])
	}
	if m.GetPath() != "./src/a.go" || m.LineNum() != 7 {
		t.Fatalf("GetPath/LineNum mismatch: %q %d", m.GetPath(), m.LineNum())
	}
}
