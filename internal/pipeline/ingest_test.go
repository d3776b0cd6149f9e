package pipeline

import "testing"

type passthroughResolver struct{}

func (passthroughResolver) PrependDir(file string, withFileInspection bool) string { return file }

func TestBuildLineMapMixesSimpleAndMatch(t *testing.T) {
	lines := []string{
		"On branch main",
		"modified: internal/tui/controller.go:42",
		"",
	}
	lm := BuildLineMap(lines, passthroughResolver{}, false, false)
	if len(lm) != 3 {
		t.Fatalf("len(lm) = %d, want 3", len(lm))
	}
	if lm[0].IsMatch {
		t.Fatalf("line 0 should not match: %+v", lm[0])
	}
	if !lm[1].IsMatch || lm[1].Path != "internal/tui/controller.go" || lm[1].Number != 42 {
		t.Fatalf("line 1 mismatch: %+v", lm[1])
	}
	if lm[2].IsMatch {
		t.Fatalf("blank line should not match: %+v", lm[2])
	}
}

func TestBuildLineMapAllInput(t *testing.T) {
	lines := []string{"  any line at all  "}
	lm := BuildLineMap(lines, passthroughResolver{}, false, true)
	if !lm[0].IsMatch || !lm[0].AllInput {
		t.Fatalf("all-input line should match and be flagged: %+v", lm[0])
	}
	if lm[0].Path != "any line at all" {
		t.Fatalf("Path = %q", lm[0].Path)
	}
}

func TestBuildLineMapExpandsTabs(t *testing.T) {
	lines := []string{"\tsrc/main.go:1"}
	lm := BuildLineMap(lines, passthroughResolver{}, false, false)
	if lm[0].Raw[0] != ' ' {
		t.Fatalf("Raw should have tabs expanded: %q", lm[0].Raw)
	}
}
