package output

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/relpath/pathpick/internal/extract"
	"github.com/relpath/pathpick/internal/line"
	"github.com/relpath/pathpick/internal/runtime"
	"github.com/relpath/pathpick/internal/state"
	"github.com/relpath/pathpick/internal/text"
)

func newMatch(t *testing.T, path string) *line.Match {
	t.Helper()
	raw := path
	formatted := text.Parse(raw)
	result := extract.MatchResult{Path: path, Number: 5, Span: extract.Span{Start: 0, End: len(raw)}}
	return line.NewMatch(formatted, result, path, 0, false, line.OSStat{})
}

func setup(t *testing.T) (state.Paths, *Executor) {
	t.Helper()
	paths, err := state.Resolve(t.TempDir())
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	cfg := runtime.Config{Shell: "/bin/bash"}
	return paths, NewExecutor(paths, cfg)
}

func readOutput(t *testing.T, paths state.Paths) string {
	t.Helper()
	data, err := os.ReadFile(paths.Output)
	if err != nil {
		t.Fatalf("reading output script: %v", err)
	}
	return string(data)
}

func TestEditFilesDefaultVim(t *testing.T) {
	paths, exec := setup(t)
	t.Setenv("FPP_EDITOR", "")
	t.Setenv("VISUAL", "")
	t.Setenv("EDITOR", "")
	m := newMatch(t, "src/main.go")
	if err := exec.EditFiles([]*line.Match{m}); err != nil {
		t.Fatalf("EditFiles: %v", err)
	}
	got := readOutput(t, paths)
	if !strings.Contains(got, "vim  +5 src/main.go") {
		t.Fatalf("output = %q, want a vim +5 invocation", got)
	}
	if !strings.Contains(got, "exit $?") {
		t.Fatalf("output = %q, want a bash exit line", got)
	}
}

func TestExecComposedCommandSubstitutesF(t *testing.T) {
	paths, exec := setup(t)
	m := newMatch(t, "src/main.go")
	if err := exec.ExecComposedCommand("git add $F", []*line.Match{m}); err != nil {
		t.Fatalf("ExecComposedCommand: %v", err)
	}
	got := readOutput(t, paths)
	if !strings.Contains(got, "git add 'src/main.go'") {
		t.Fatalf("output = %q, want $F substituted", got)
	}
}

func TestExecComposedCommandCdSpecialCase(t *testing.T) {
	paths, exec := setup(t)
	m := newMatch(t, "src/main.go")
	if err := exec.ExecComposedCommand("cd", []*line.Match{m}); err != nil {
		t.Fatalf("ExecComposedCommand: %v", err)
	}
	got := readOutput(t, paths)
	home, _ := os.UserHomeDir()
	if !strings.Contains(got, filepath.Join(home, ".dircopy")) {
		t.Fatalf("output = %q, want a .dircopy write", got)
	}
}

func TestOutputSelectionPersists(t *testing.T) {
	paths, exec := setup(t)
	if err := exec.OutputSelection([]int{1, 2, 3}); err != nil {
		t.Fatalf("OutputSelection: %v", err)
	}
	got, err := state.LoadSelection(paths.Selection)
	if err != nil {
		t.Fatalf("LoadSelection: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %v", got)
	}
}

func TestAliasExpansionSkippedForFish(t *testing.T) {
	paths, err := state.Resolve(t.TempDir())
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	exec := NewExecutor(paths, runtime.Config{Shell: "/usr/bin/fish"})
	m := newMatch(t, "src/main.go")
	if err := exec.ExecComposedCommand("ls $F", []*line.Match{m}); err != nil {
		t.Fatalf("ExecComposedCommand: %v", err)
	}
	got := readOutput(t, paths)
	if strings.Contains(got, "expand_aliases") {
		t.Fatalf("output = %q, fish should not get alias expansion", got)
	}
}
