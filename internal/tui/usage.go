package tui

// usagePage and usageCommand are the sidebar help text shown in
// Select and Command mode respectively.
var usagePage = []string{
	"    * [f] toggle the selection of a file",
	"    * [F] toggle and move downward by 1",
	"    * [A] toggle selection of all (unique) files",
	"    * [down arrow|j] move downward by 1",
	"    * [up arrow|k] move upward by 1",
	"    * [<space>] page down",
	"    * [b] page up",
	"    * [x] quick select mode",
	"    * [d] describe file",
	"",
	"Once you have your files selected, you can",
	"either open them in your favorite",
	"text editor or execute commands with",
	"them via command mode:",
	"",
	"    * [<Enter>] open all selected files",
	"        (or file under cursor if none selected)",
	"        in $EDITOR",
	"    * [c] enter command mode",
}

var usageCommand = []string{
	"Command mode is helpful when you want to",
	"execute bash commands with the filenames",
	"you have selected. By default the filenames",
	"are appended automatically to command you",
	"enter before it is executed, so all you have",
	"to do is type the prefix. Some examples:",
	"",
	"    * git add",
	"    * git checkout HEAD~1 --",
	"    * rm -rf",
	"",
	"If your command needs filenames in the middle,",
	`the token "$F" will be replaced with your`,
	"selected filenames if it is found in the command",
	"string. Examples include:",
	"",
	"    * scp $F dev:~/backup",
	"    * mv $F ../over/here",
}
