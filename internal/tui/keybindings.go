package tui

import (
	"os"

	"gopkg.in/ini.v1"
)

// KeyBinding is one user-configured (key, command) pair from the
// `[bindings]` section of the key-bindings file.
type KeyBinding struct {
	Key     string
	Command string
}

// LoadKeyBindings parses the INI file at path's `[bindings]` section.
// A missing file, or one with no such section, yields an empty,
// non-error result -- key bindings are an optional layer over the
// built-in keymap.
func LoadKeyBindings(path string) ([]KeyBinding, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, nil
	}
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, err
	}
	if !cfg.HasSection("bindings") {
		return nil, nil
	}
	section := cfg.Section("bindings")
	var bindings []KeyBinding
	for _, key := range section.Keys() {
		bindings = append(bindings, KeyBinding{Key: key.Name(), Command: key.Value()})
	}
	return bindings, nil
}
