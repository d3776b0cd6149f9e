package runtime

import "testing"

func TestExitStatusVar(t *testing.T) {
	cases := []struct {
		shell string
		want  string
	}{
		{"/bin/bash", "$?"},
		{"/usr/bin/zsh", "$?"},
		{"/usr/bin/fish", "$status"},
		{"/bin/csh", "$status"},
		{"/usr/bin/tcsh", "$status"},
	}
	for _, c := range cases {
		cfg := Config{Shell: c.shell}
		if got := cfg.ExitStatusVar(); got != c.want {
			t.Errorf("ExitStatusVar(%q) = %q, want %q", c.shell, got, c.want)
		}
	}
}

func TestUsesFish(t *testing.T) {
	if !(Config{Shell: "/usr/bin/fish"}).UsesFish() {
		t.Fatal("expected fish to be detected")
	}
	if (Config{Shell: "/bin/bash"}).UsesFish() {
		t.Fatal("bash should not be detected as fish")
	}
}

func TestEditorFallsBackToVim(t *testing.T) {
	t.Setenv("FPP_EDITOR", "")
	t.Setenv("VISUAL", "")
	t.Setenv("EDITOR", "")
	cfg := Config{}
	name, command := cfg.Editor()
	if name != "vim" || command != "vim" {
		t.Fatalf("Editor() = (%q, %q), want (vim, vim)", name, command)
	}
}

func TestEditorPrefersFPPEditor(t *testing.T) {
	t.Setenv("FPP_EDITOR", "/usr/local/bin/nvim")
	t.Setenv("VISUAL", "emacs")
	t.Setenv("EDITOR", "nano")
	cfg := Config{}
	name, command := cfg.Editor()
	if name != "nvim" || command != "/usr/local/bin/nvim" {
		t.Fatalf("Editor() = (%q, %q), want (nvim, /usr/local/bin/nvim)", name, command)
	}
}
