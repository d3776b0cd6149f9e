// Package pipeline wires the two fpp passes together: ingest reads
// stdin into a persisted Line Map, and choose reloads that map (plus
// any previous selection) and drives the Screen Controller.
package pipeline

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/relpath/pathpick/internal/extract"
	"github.com/relpath/pathpick/internal/runtime"
	"github.com/relpath/pathpick/internal/state"
	"github.com/relpath/pathpick/internal/text"
)

// IngestFlags is the subset of CLI flags the ingest pass reads.
type IngestFlags struct {
	Clean             bool
	KeepOpen          bool
	DisableFileChecks bool
	AllInput          bool
}

// RunIngest implements the `process-input` pass: on a clean run it
// removes all state files; on a TTY (no piped input) it leaves any
// previous Line Map in place for the pick pass to reuse; otherwise it
// reads stdin, runs the extractor over every line, and persists the
// resulting Line Map.
func RunIngest(cfg runtime.Config, isTTY bool, flags IngestFlags, stdin []string, stdout *os.File, logger *slog.Logger) error {
	paths, err := state.Resolve(cfg.StateDir)
	if err != nil {
		return err
	}

	if flags.Clean {
		fmt.Fprintln(stdout, "Cleaning out state files...")
		if err := state.RemoveAll(paths); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Done! Removed %d files\n", len(paths.AllStateFiles()))
		return nil
	}

	if isTTY {
		if flags.KeepOpen {
			os.Remove(paths.Selection)
		}
		if _, err := os.Stat(paths.Pickle); err == nil {
			fmt.Fprintln(stdout, "Using previous input piped to fpp...")
		} else {
			fmt.Fprintln(os.Stderr, usageBanner)
		}
		return nil
	}

	os.Remove(paths.Selection)

	repoRoot := runtime.RepoRoot(logger)
	resolver := extract.NewResolver(repoRoot, cfg.ExtraRepos, cfg.DisablePrependingHomeWithSlash)

	lm := BuildLineMap(stdin, resolver, !flags.DisableFileChecks, flags.AllInput)
	logger.Info("ingested lines", "total", len(lm))
	return state.SaveLineMap(paths.Pickle, lm)
}

// BuildLineMap runs the extractor over every input line, producing a
// persistable record for each: a Simple record for lines with no
// recognized path, a Match record (with the already path-resolved
// location) otherwise.
func BuildLineMap(lines []string, resolver extract.PathResolver, validateFileExists, allInput bool) state.LineMap {
	lm := make(state.LineMap, len(lines))
	for index, raw := range lines {
		cleaned := strings.ReplaceAll(raw, "\t", "    ")
		cleaned = strings.TrimRight(cleaned, "\n")

		plain := text.Parse(cleaned).Plain()
		result, ok := extract.MatchLine(plain, validateFileExists, allInput, resolver, nil)
		if !ok {
			lm[index] = state.LineRecord{IsMatch: false, Raw: cleaned}
			continue
		}
		resolvedPath := result.Path
		if allInput {
			resolvedPath = result.Path
		} else {
			resolvedPath = resolver.PrependDir(result.Path, validateFileExists)
		}
		lm[index] = state.LineRecord{
			IsMatch:   true,
			Raw:       cleaned,
			Path:      resolvedPath,
			Number:    result.Number,
			SpanStart: result.Span.Start,
			SpanEnd:   result.Span.End,
			AllInput:  allInput,
		}
	}
	return lm
}

const usageBanner = `Welcome to fpp, the pathpick clone of the Facebook PathPicker!

Pipe some command output in to get started, e.g.:

    * git status | pathpick
    * grep -rn "TODO" . | pathpick
`
