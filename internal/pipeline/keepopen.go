package pipeline

import (
	"log/slog"

	"github.com/fsnotify/fsnotify"

	"github.com/relpath/pathpick/internal/runtime"
	"github.com/relpath/pathpick/internal/state"
	"github.com/relpath/pathpick/internal/tui"
)

// RunKeepOpen repeats RunChoose until the process is interrupted,
// re-entering the picker each time the pickle file is rewritten out
// from under it -- e.g. by a fresh `... | pathpick` invocation in
// another terminal sharing the same FPP_DIR. Between iterations it
// blocks on an fsnotify watch of the state directory rather than
// polling.
func RunKeepOpen(cfg runtime.Config, flags tui.Flags, newScreen ScreenFactory, logger *slog.Logger) error {
	paths, err := state.Resolve(cfg.StateDir)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()
	if err := watcher.Add(paths.Dir); err != nil {
		return err
	}

	for {
		if err := RunChoose(cfg, flags, newScreen, logger); err != nil {
			return err
		}
		if err := waitForRewrite(watcher, paths.Pickle); err != nil {
			return err
		}
	}
}

func waitForRewrite(watcher *fsnotify.Watcher, pickle string) error {
	for {
		select {
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if ev.Name == pickle && (ev.Op&(fsnotify.Write|fsnotify.Create) != 0) {
				return nil
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return err
		}
	}
}
