package extract

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

type fakeResolver struct{}

func (fakeResolver) PrependDir(file string, withFileInspection bool) string { return file }

func TestMatchLineMasterRegex(t *testing.T) {
	r, ok := MatchLine("modified: internal/tui/controller.go:42", false, false, fakeResolver{}, nil)
	if !ok {
		t.Fatal("expected a match")
	}
	want := MatchResult{
		Path:   "internal/tui/controller.go",
		Number: 42,
		Span:   Span{Start: 10, End: 39},
	}
	if diff := cmp.Diff(want, r); diff != "" {
		t.Fatalf("MatchResult mismatch (-want +got):\n%s", diff)
	}
}

func TestMatchLineHomedir(t *testing.T) {
	r, ok := MatchLine("see ~/src/project/main.go:10 for details", false, false, fakeResolver{}, nil)
	if !ok {
		t.Fatal("expected a match")
	}
	if r.Path != "~/src/project/main.go" {
		t.Fatalf("Path = %q", r.Path)
	}
}

func TestMatchLineNoMatch(t *testing.T) {
	if _, ok := MatchLine("just some words here", false, false, fakeResolver{}, nil); ok {
		t.Fatal("expected no match for a line with no path-like token")
	}
}

func TestMatchLineAllInput(t *testing.T) {
	r, ok := MatchLine("   whatever this line says   ", false, true, fakeResolver{}, nil)
	if !ok {
		t.Fatal("all-input mode should always match a non-blank line")
	}
	if r.Path != "whatever this line says" {
		t.Fatalf("Path = %q, want trimmed whole line", r.Path)
	}
}

func TestMatchLineValidateFileExists(t *testing.T) {
	exists := func(path string) bool { return path == "/repo/src/real.go" }
	resolver := Resolver{RepoRoot: "/repo/", Exists: exists}
	r, ok := MatchLine("touching src/real.go and src/fake.go", true, false, resolver, exists)
	if !ok {
		t.Fatal("expected a match against the existing file")
	}
	if r.Path != "src/real.go" {
		t.Fatalf("Path = %q, want the first path whose resolution exists", r.Path)
	}
}

func TestPrependDirAbsoluteUnchanged(t *testing.T) {
	r := Resolver{RepoRoot: "/repo/"}
	if got := r.PrependDir("/abs/path.go", false); got != "/abs/path.go" {
		t.Fatalf("got %q", got)
	}
}

func TestPrependDirRelativeUnchanged(t *testing.T) {
	r := Resolver{RepoRoot: "/repo/"}
	for _, in := range []string{"./rel.go", "../rel.go", ".../short.go"} {
		if got := r.PrependDir(in, false); got != in {
			t.Fatalf("PrependDir(%q) = %q, want unchanged", in, got)
		}
	}
}

func TestPrependDirJoinsRepoRoot(t *testing.T) {
	r := Resolver{RepoRoot: "/repo/"}
	got := r.PrependDir("src/main.go", false)
	if got != "/repo/src/main.go" {
		t.Fatalf("got %q, want %q", got, "/repo/src/main.go")
	}
}

func TestPrependDirSingleFileGetsDotSlash(t *testing.T) {
	r := Resolver{RepoRoot: "/repo/"}
	if got := r.PrependDir("README.md", false); got != "./README.md" {
		t.Fatalf("got %q, want %q", got, "./README.md")
	}
}

func TestPrependDirGitAPrefix(t *testing.T) {
	r := Resolver{RepoRoot: "/repo/"}
	got := r.PrependDir("a/src/main.go", false)
	if got != "/repo/src/main.go" {
		t.Fatalf("got %q, want %q", got, "/repo/src/main.go")
	}
}

func TestPrependDirFileInspectionPrefersRelative(t *testing.T) {
	exists := func(path string) bool { return path == "./src/main.go" }
	r := Resolver{RepoRoot: "/repo/", Exists: exists}
	got := r.PrependDir("src/main.go", true)
	if got != "./src/main.go" {
		t.Fatalf("got %q, want the relative path since only it exists", got)
	}
}
