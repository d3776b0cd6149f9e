// Package output composes the shell script the `fpp` wrapper sources
// after the TUI exits: the edit/command invocation, alias-expansion
// and invalid-path guards, and the final exit-status line. It
// implements tui.CommandExecutor structurally, without importing the
// tui package.
package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/relpath/pathpick/internal/line"
	"github.com/relpath/pathpick/internal/runtime"
	"github.com/relpath/pathpick/internal/state"
)

const (
	redColor = "\x1b[0;31m"
	noColor  = "\x1b[0m"

	invalidFileWarning = "\nWarning! Some invalid or unresolvable files were detected.\n"
	gitAbbrevWarning   = "\nIt looks like one of these is a git abbreviated file with\n" +
		"a triple dot path (.../). Try to turn off git's abbreviation\n" +
		"with --numstat so we get actual paths (not abbreviated\n" +
		"versions which cannot be resolved.\n"
	continueWarning = "Are you sure you want to continue? Ctrl-C to quit"
)

// Executor writes the composed shell script and selection state to
// disk; it is the concrete CommandExecutor the pick pass wires into
// the Controller.
type Executor struct {
	Paths  state.Paths
	Config runtime.Config
}

// NewExecutor builds an Executor over paths/cfg, ready to compose commands.
func NewExecutor(paths state.Paths, cfg runtime.Config) *Executor {
	return &Executor{Paths: paths, Config: cfg}
}

// ExecComposedCommand implements tui.CommandExecutor: "cd ..." gets
// the special clipboard-copy treatment, everything else becomes
// command appended-or-$F-substituted with the selected paths.
func (e *Executor) ExecComposedCommand(command string, matches []*line.Match) error {
	if command == "" {
		return e.EditFiles(matches)
	}
	var composed string
	if isCdCommand(command) {
		composed = e.composeCdCommand(matches)
	} else {
		composed = composeFileCommand(command, matches)
	}
	if err := e.appendAliasExpansion(); err != nil {
		return err
	}
	if err := e.appendIfInvalid(matches); err != nil {
		return err
	}
	if err := e.appendFriendlyCommand(composed); err != nil {
		return err
	}
	return e.appendExit()
}

// EditFiles implements tui.CommandExecutor: opens every match in the
// configured editor, honoring each editor's own line-number argument
// convention.
func (e *Executor) EditFiles(matches []*line.Match) error {
	filesAndLines := make([][2]string, len(matches))
	for i, m := range matches {
		filesAndLines[i] = [2]string{m.GetPath(), strconv.Itoa(m.LineNum())}
	}
	command, err := e.joinFilesIntoCommand(filesAndLines)
	if err != nil {
		return err
	}
	if err := e.appendIfInvalid(matches); err != nil {
		return err
	}
	if err := e.appendToFile(command); err != nil {
		return err
	}
	return e.appendExit()
}

// OutputSelection implements tui.CommandExecutor: persists the
// display indices the user ultimately acted on, so a subsequent
// --keep-open iteration (or external pickle reload) can restore it.
func (e *Executor) OutputSelection(indices []int) error {
	return state.SaveSelection(e.Paths.Selection, indices)
}

// OutputNothing implements tui.CommandExecutor: the 'q' quit path.
func (e *Executor) OutputNothing() error {
	return e.appendToFile(`echo "nothing to do!"; exit 1`)
}

func isCdCommand(command string) bool {
	return strings.HasPrefix(command, "cd ") || command == "cd"
}

func (e *Executor) composeCdCommand(matches []*line.Match) string {
	dir := filepath.Dir(matches[0].GetPath())
	abs, err := filepath.Abs(expandHome(dir))
	if err != nil {
		abs = dir
	}
	home, _ := os.UserHomeDir()
	return fmt.Sprintf(`echo "%s" > %s`, abs, filepath.Join(home, ".dircopy"))
}

func composeFileCommand(command string, matches []*line.Match) string {
	paths := make([]string, len(matches))
	for i, m := range matches {
		paths[i] = "'" + m.GetPath() + "'"
	}
	pathStr := strings.Join(paths, " ")
	if strings.Contains(command, "$F") {
		return strings.ReplaceAll(command, "$F", pathStr)
	}
	return command + " " + pathStr
}

func expandHome(p string) string {
	if !strings.HasPrefix(p, "~") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}

// editorsWithNumericFlag take a plain "+N" argument ahead of the path.
var editorsWithNumericFlag = map[string]bool{
	"vi": true, "nvim": true, "nano": true, "joe": true,
	"emacs": true, "emacsclient": true, "micro": true,
}

// editorsWithColonSuffix take "path:N" as one argument.
var editorsWithColonSuffix = map[string]bool{
	"subl": true, "sublime": true, "atom": true,
}

func (e *Executor) joinFilesIntoCommand(filesAndLines [][2]string) (string, error) {
	editor, editorCommand := e.Config.Editor()
	cmd := editorCommand + " "

	switch {
	case editor == "vim -p":
		first := filesAndLines[0]
		cmd += fmt.Sprintf(" +%s %s", first[1], first[0])
		for _, fl := range filesAndLines[1:] {
			cmd += fmt.Sprintf(` +"tabnew +%s %s"`, fl[1], fl[0])
		}
	case (editor == "vim" || editor == "mvim" || editor == "nvim") && !e.Config.DisableSplit:
		first := filesAndLines[0]
		cmd += fmt.Sprintf(" +%s %s", first[1], first[0])
		for _, fl := range filesAndLines[1:] {
			cmd += fmt.Sprintf(` +"vsp +%s %s"`, fl[1], fl[0])
		}
	default:
		editorBase := strings.Fields(editor)
		base := editor
		if len(editorBase) > 0 {
			base = editorBase[0]
		}
		for _, fl := range filesAndLines {
			path, num := fl[0], fl[1]
			switch {
			case editorsWithNumericFlag[base] && num != "0":
				cmd += fmt.Sprintf(" +%s '%s'", num, path)
			case editorsWithColonSuffix[base] && num != "0":
				cmd += fmt.Sprintf(" '%s:%s'", path, num)
			case num != "0" && e.Config.LineNumSep != "":
				cmd += fmt.Sprintf(" '%s%s%s'", path, e.Config.LineNumSep, num)
			default:
				cmd += fmt.Sprintf(" '%s'", path)
			}
		}
	}
	return cmd, nil
}

func (e *Executor) appendIfInvalid(matches []*line.Match) error {
	var invalid []*line.Match
	for _, m := range matches {
		if !m.IsResolvable() {
			invalid = append(invalid, m)
		}
	}
	if len(invalid) == 0 {
		return nil
	}
	if err := e.appendError(invalidFileWarning); err != nil {
		return err
	}
	for _, m := range invalid {
		if m.IsGitAbbreviatedPath() {
			if err := e.appendError(gitAbbrevWarning); err != nil {
				return err
			}
			break
		}
	}
	return e.appendToFile(fmt.Sprintf(`read -p "%s" -r`, continueWarning))
}

func (e *Executor) appendAliasExpansion() error {
	// zsh expands aliases by default in interactive mode; bash needs
	// shopt to opt back in. fish has no equivalent and doesn't need it.
	if e.Config.UsesFish() {
		return nil
	}
	return e.appendToFile("\nif type shopt > /dev/null; then\n  shopt -s expand_aliases\nfi\n")
}

func (e *Executor) appendFriendlyCommand(command string) error {
	header := "echo \"executing command:\"\necho \"" + strings.ReplaceAll(command, `"`, `\"`) + "\""
	if err := e.appendToFile(header); err != nil {
		return err
	}
	return e.appendToFile(command)
}

func (e *Executor) appendError(text string) error {
	return e.appendToFile(fmt.Sprintf("printf \"%s%s%s\n\"", redColor, text, noColor))
}

func (e *Executor) appendExit() error {
	return e.appendToFile(fmt.Sprintf("exit %s;", e.Config.ExitStatusVar()))
}

func (e *Executor) appendToFile(command string) error {
	f, err := os.OpenFile(e.Paths.Output, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("appending to %s: %w", e.Paths.Output, err)
	}
	defer f.Close()
	_, err = f.WriteString(command + "\n")
	return err
}

// WriteToFile overwrites the output script with a single command,
// used by the pipeline's "nothing matched" fast path.
func WriteToFile(paths state.Paths, command string) error {
	return os.WriteFile(paths.Output, []byte(command+"\n"), 0o644)
}
