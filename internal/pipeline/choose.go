package pipeline

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/relpath/pathpick/internal/extract"
	"github.com/relpath/pathpick/internal/line"
	"github.com/relpath/pathpick/internal/output"
	"github.com/relpath/pathpick/internal/runtime"
	"github.com/relpath/pathpick/internal/state"
	"github.com/relpath/pathpick/internal/text"
	"github.com/relpath/pathpick/internal/tui"
)

const loadSelectionWarning = `WARNING! Loading the standard input and previous selection
failed. This is probably due to a backwards compatibility issue
with upgrading PathPicker or an internal error. Please pipe
a new set of input to PathPicker to start fresh (after which
this error will go away)`

// ScreenFactory lets RunChoose defer terminal initialization until
// it knows there is actually something to show -- opening the
// terminal (and its alternate screen buffer) is itself a visible,
// somewhat expensive side effect the caller may want to avoid when
// choose is about to bail out early.
type ScreenFactory func() (tui.Screen, error)

// RunChoose implements the `choose` pass: reload the persisted Line
// Map, merge in any previous selection, and hand control to the
// Screen Controller.
func RunChoose(cfg runtime.Config, flags tui.Flags, newScreen ScreenFactory, logger *slog.Logger) error {
	paths, err := state.Resolve(cfg.StateDir)
	if err != nil {
		return err
	}
	if err := output.WriteToFile(paths, ""); err != nil {
		return err
	}
	if err := state.ClearFile(paths.Logger); err != nil {
		return err
	}

	lm, err := state.LoadLineMap(paths.Pickle)
	if err != nil {
		return failLoad(paths, err)
	}
	logger.Info("loaded line map", "total", len(lm))

	selected := map[int]bool{}
	if _, err := os.Stat(paths.Selection); err == nil {
		indices, err := state.LoadSelection(paths.Selection)
		if err != nil {
			return failLoad(paths, err)
		}
		selected = applySelection(paths, lm, indices)
	}

	hasMatch := false
	for _, rec := range lm {
		if rec.IsMatch {
			hasMatch = true
			break
		}
	}
	if !hasMatch {
		return output.WriteToFile(paths, `echo "No lines matched!";`)
	}

	lineObjs := BuildLines(lm, line.OSStat{})

	screen, err := newScreen()
	if err != nil {
		return err
	}
	defer screen.Close()

	keyBindings, err := tui.LoadKeyBindings(keyBindingsPath(paths))
	if err != nil {
		logger.Warn("failed to load key bindings", "error", err)
	}

	executor := output.NewExecutor(paths, cfg)
	ctrl, err := tui.New(screen, flags, keyBindings, lineObjs, executor)
	if err != nil {
		return err
	}
	for idx := range selected {
		if m, ok := lineObjs[idx].(*line.Match); ok {
			m.SetSelect(true)
		}
	}

	if err := ctrl.Control(); err != nil {
		if _, ok := err.(*tui.QuitError); ok {
			return nil
		}
		return err
	}
	return nil
}

func keyBindingsPath(p state.Paths) string {
	return p.Dir + "/.fpp.keys"
}

func failLoad(paths state.Paths, cause error) error {
	_ = output.WriteToFile(paths, fmt.Sprintf("printf \"%s\\n\"; exit 1", loadSelectionWarning))
	return fmt.Errorf("loading state: %w", cause)
}

// applySelection validates a loaded selection against lm, warning
// (via the output script) about any index that is out of range or
// names a Simple rather than a Match line, and returns the subset
// that is safe to pre-select -- mirroring setSelectionsFromPickle.
func applySelection(paths state.Paths, lm state.LineMap, indices []int) map[int]bool {
	selected := make(map[int]bool, len(indices))
	warnings := ""
	warn := func(msg string) {
		if warnings != "" {
			warnings += "\n"
		}
		warnings += msg
	}
	for _, idx := range indices {
		rec, ok := lm[idx]
		if !ok {
			warn(fmt.Sprintf("printf \"Found index %d more than total matches\\n\"", idx))
			continue
		}
		if !rec.IsMatch {
			warn(fmt.Sprintf("printf \"Line %d was selected but is not a match\\n\"", idx))
			continue
		}
		selected[idx] = true
	}
	if warnings != "" {
		_ = output.WriteToFile(paths, warnings)
	}
	return selected
}

// BuildLines reconstructs the renderable Line Map from its persisted
// records.
func BuildLines(lm state.LineMap, stat line.StatReader) map[int]line.Line {
	lineObjs := make(map[int]line.Line, len(lm))
	for idx, rec := range lm {
		formatted := text.Parse(rec.Raw)
		if !rec.IsMatch {
			lineObjs[idx] = line.NewSimple(formatted, idx)
			continue
		}
		result := extract.MatchResult{
			Path:   rec.Path,
			Number: rec.Number,
			Span:   extract.Span{Start: rec.SpanStart, End: rec.SpanEnd},
		}
		lineObjs[idx] = line.NewMatch(formatted, result, rec.Path, idx, rec.AllInput, stat)
	}
	return lineObjs
}
