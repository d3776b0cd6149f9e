package state

import (
	"path/filepath"
	"testing"
)

func TestResolveCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "fpp")
	paths, err := Resolve(dir)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if paths.Pickle != filepath.Join(dir, ".pickle") {
		t.Fatalf("Pickle = %q", paths.Pickle)
	}
	if paths.Output != filepath.Join(dir, ".fpp.sh") {
		t.Fatalf("Output = %q", paths.Output)
	}
}

func TestSaveLoadLineMap(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".pickle")
	lm := LineMap{
		0: {IsMatch: false, Raw: "plain line"},
		1: {IsMatch: true, Raw: "src/main.go:10", Path: "./src/main.go", Number: 10, SpanStart: 0, SpanEnd: 14},
	}
	if err := SaveLineMap(path, lm); err != nil {
		t.Fatalf("SaveLineMap: %v", err)
	}
	got, err := LoadLineMap(path)
	if err != nil {
		t.Fatalf("LoadLineMap: %v", err)
	}
	if len(got) != 2 || got[1].Path != "./src/main.go" || got[1].Number != 10 {
		t.Fatalf("got %+v", got)
	}
}

func TestSaveLoadSelection(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".selection.pickle")
	want := []int{2, 5, 9}
	if err := SaveSelection(path, want); err != nil {
		t.Fatalf("SaveSelection: %v", err)
	}
	got, err := LoadSelection(path)
	if err != nil {
		t.Fatalf("LoadSelection: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestRemoveAllIgnoresMissing(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "fpp")
	paths, err := Resolve(dir)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if err := RemoveAll(paths); err != nil {
		t.Fatalf("RemoveAll on empty dir: %v", err)
	}
}

func TestClearFileTruncates(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".fpp.sh")
	if err := SaveSelection(path, []int{1, 2, 3}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := ClearFile(path); err != nil {
		t.Fatalf("ClearFile: %v", err)
	}
	if _, err := LoadSelection(path); err == nil {
		t.Fatal("expected decoding an empty file to fail")
	}
}
