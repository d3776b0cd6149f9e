// Package state persists the line map and selection between the
// ingest pass and the pick pass. The reference implementation uses
// Python's pickle; since neither process is Python here, this package
// swaps in encoding/gob but keeps the same on-disk filenames so the
// external fpp shell wrapper keeps working unmodified.
package state

import (
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	pickleFile      = ".pickle"
	selectionPickle = ".selection.pickle"
	outputFile      = ".fpp.sh"
	loggerFile      = ".fpp.log"
)

// Paths is the resolved set of state file locations under a state
// directory (FPP_DIR, defaulting to ~/.cache/fpp).
type Paths struct {
	Dir       string
	Pickle    string
	Selection string
	Output    string
	Logger    string
}

// Resolve expands stateDir (honoring a leading ~) and ensures it
// exists, then returns the full set of state file paths inside it.
func Resolve(stateDir string) (Paths, error) {
	dir, err := expandHome(stateDir)
	if err != nil {
		return Paths{}, err
	}
	if info, err := os.Stat(dir); err != nil {
		if !os.IsNotExist(err) {
			return Paths{}, err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return Paths{}, fmt.Errorf("creating state dir %s: %w", dir, err)
		}
	} else if !info.IsDir() {
		return Paths{}, fmt.Errorf("state path %s exists and is not a directory", dir)
	}
	return Paths{
		Dir:       dir,
		Pickle:    filepath.Join(dir, pickleFile),
		Selection: filepath.Join(dir, selectionPickle),
		Output:    filepath.Join(dir, outputFile),
		Logger:    filepath.Join(dir, loggerFile),
	}, nil
}

func expandHome(p string) (string, error) {
	if !strings.HasPrefix(p, "~") {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~")), nil
}

// AllStateFiles lists every state file --clean should remove: the
// line map, the selection, the log, and the script output.
func (p Paths) AllStateFiles() []string {
	return []string{p.Pickle, p.Selection, p.Logger, p.Output}
}

// LineRecord is the on-disk shape of one line, kept deliberately flat
// so it gob-encodes without needing to register any interface types.
type LineRecord struct {
	IsMatch   bool
	Raw       string
	Path      string
	Number    int
	SpanStart int
	SpanEnd   int
	AllInput  bool
}

// LineMap is the full set of ingested lines, keyed by display index.
type LineMap map[int]LineRecord

// SaveLineMap gob-encodes lm to path, replacing any existing file.
func SaveLineMap(path string, lm LineMap) error {
	return saveGob(path, lm)
}

// LoadLineMap decodes a LineMap previously written by SaveLineMap.
func LoadLineMap(path string) (LineMap, error) {
	var lm LineMap
	if err := loadGob(path, &lm); err != nil {
		return nil, err
	}
	return lm, nil
}

// SaveSelection gob-encodes the selected display indices to path.
func SaveSelection(path string, indices []int) error {
	return saveGob(path, indices)
}

// LoadSelection decodes a selection list previously written by
// SaveSelection.
func LoadSelection(path string) ([]int, error) {
	var indices []int
	if err := loadGob(path, &indices); err != nil {
		return nil, err
	}
	return indices, nil
}

func saveGob(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()
	if err := gob.NewEncoder(f).Encode(v); err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return nil
}

func loadGob(path string, v any) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()
	if err := gob.NewDecoder(f).Decode(v); err != nil {
		return fmt.Errorf("decoding %s: %w", path, err)
	}
	return nil
}

// ClearFile truncates path to empty, creating it if necessary; used
// to reset the log at the start of each pick pass.
func ClearFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("clearing %s: %w", path, err)
	}
	return f.Close()
}

// RemoveAll deletes every state file, ignoring "already gone" errors;
// used by the --clean flag.
func RemoveAll(p Paths) error {
	for _, f := range p.AllStateFiles() {
		if err := os.Remove(f); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("removing %s: %w", f, err)
		}
	}
	return nil
}
