// Command pathpick is the interactive file-picker the `fpp` shell
// wrapper drives in two passes: `process-input` ingests piped stdin
// into a persisted Line Map, and `choose` reloads it and runs the
// terminal UI. Both subcommands accept the same flag set so the
// wrapper can forward its arguments to either unchanged.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/relpath/pathpick/internal/pipeline"
	"github.com/relpath/pathpick/internal/runtime"
	"github.com/relpath/pathpick/internal/state"
	"github.com/relpath/pathpick/internal/tui"
)

// version is stamped at build time via -ldflags; "dev" otherwise.
var version = "dev"

type cliFlags struct {
	record         bool
	showVersion    bool
	clean          bool
	keepOpen       bool
	command        string
	executeKeys    []string
	noFileChecks   bool
	allInput       bool
	nonInteractive bool
	selectAll      bool
}

func parseFlags(args []string) (cliFlags, error) {
	fs := flag.NewFlagSet("pathpick", flag.ContinueOnError)
	var f cliFlags
	var command, executeKeys string
	fs.BoolVar(&f.record, "r", false, "record input and output")
	fs.BoolVar(&f.record, "record", false, "record input and output")
	fs.BoolVar(&f.showVersion, "version", false, "print the version of pathpick and exit")
	fs.BoolVar(&f.clean, "clean", false, "remove the state files pathpick uses when starting up")
	fs.BoolVar(&f.keepOpen, "ko", false, "keep pathpick open once a selection is performed")
	fs.BoolVar(&f.keepOpen, "keep-open", false, "keep pathpick open once a selection is performed")
	fs.StringVar(&command, "c", "", "run this command once files have been selected")
	fs.StringVar(&command, "command", "", "run this command once files have been selected")
	fs.StringVar(&executeKeys, "e", "", "automatically execute these keys on startup")
	fs.StringVar(&executeKeys, "execute-keys", "", "automatically execute these keys on startup")
	fs.BoolVar(&f.noFileChecks, "nfc", false, "disable filesystem validation of matches")
	fs.BoolVar(&f.noFileChecks, "no-file-checks", false, "disable filesystem validation of matches")
	fs.BoolVar(&f.allInput, "ai", false, "treat every input line as a match")
	fs.BoolVar(&f.allInput, "all-input", false, "treat every input line as a match")
	fs.BoolVar(&f.nonInteractive, "ni", false, "run the composed command non-interactively")
	fs.BoolVar(&f.nonInteractive, "non-interactive", false, "run the composed command non-interactively")
	fs.BoolVar(&f.selectAll, "a", false, "select all available lines on startup")
	fs.BoolVar(&f.selectAll, "all", false, "select all available lines on startup")
	if err := fs.Parse(args); err != nil {
		return cliFlags{}, err
	}
	f.command = command
	if executeKeys != "" {
		f.executeKeys = strings.Fields(executeKeys)
	}
	return f, nil
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: pathpick <process-input|choose> [flags]")
		os.Exit(1)
	}
	subcommand := os.Args[1]
	flags, err := parseFlags(os.Args[2:])
	if err != nil {
		os.Exit(2)
	}
	if flags.showVersion {
		fmt.Printf("pathpick %s\n", version)
		return
	}

	cfg := runtime.LoadConfig()
	logger, closeLog := newLogger(cfg)
	defer closeLog()

	switch subcommand {
	case "process-input":
		err = runProcessInput(cfg, flags, logger)
	case "choose":
		err = runChoose(cfg, flags, logger)
	default:
		err = fmt.Errorf("unknown subcommand %q", subcommand)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "pathpick:", err)
		os.Exit(1)
	}
}

// newLogger opens the structured event log alongside the other state
// files; failing to resolve the state directory degrades to stderr
// logging rather than aborting the whole program.
func newLogger(cfg runtime.Config) (*slog.Logger, func()) {
	paths, err := state.Resolve(cfg.StateDir)
	if err != nil {
		return runtime.NewLogger(nil), func() {}
	}
	f, err := os.OpenFile(paths.Logger, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return runtime.NewLogger(nil), func() {}
	}
	return runtime.NewLogger(f), func() { f.Close() }
}

func runProcessInput(cfg runtime.Config, f cliFlags, logger *slog.Logger) error {
	isTTY := term.IsTerminal(int(os.Stdin.Fd()))
	var lines []string
	if !isTTY {
		scanner := bufio.NewScanner(os.Stdin)
		buf := make([]byte, 0, 64*1024)
		scanner.Buffer(buf, 4*1024*1024)
		for scanner.Scan() {
			lines = append(lines, scanner.Text())
		}
	}
	ingestFlags := pipeline.IngestFlags{
		Clean:             f.clean,
		KeepOpen:          f.keepOpen,
		DisableFileChecks: f.noFileChecks || f.allInput,
		AllInput:          f.allInput,
	}
	return pipeline.RunIngest(cfg, isTTY, ingestFlags, lines, os.Stdout, logger)
}

func runChoose(cfg runtime.Config, f cliFlags, logger *slog.Logger) error {
	flags := tui.Flags{
		AllInput:      f.allInput,
		SelectAll:     f.selectAll,
		PresetCommand: f.command,
		ExecuteKeys:   f.executeKeys,
	}
	newScreen := func() (tui.Screen, error) { return tui.NewScreen() }
	if f.keepOpen {
		return pipeline.RunKeepOpen(cfg, flags, newScreen, logger)
	}
	return pipeline.RunChoose(cfg, flags, newScreen, logger)
}
