// Package extract implements the prioritized regex waterfall that
// recognizes file references (with an optional line number) inside
// noisy terminal output, and the path-normalization rules that turn a
// raw capture into a usable filesystem path.
package extract

import (
	"os"
	"regexp"
	"strconv"
	"strings"
)

// Span is a half-open byte range [Start, End) into the source line.
type Span struct {
	Start, End int
}

// MatchResult is a single extractor hit: the raw captured path, the
// line number (0 = none), and the span of the match within the line.
type MatchResult struct {
	Path   string
	Number int
	Span   Span
}

type waterfallEntry struct {
	name                   string
	regex                  *regexp.Regexp
	preferred              *regexp.Regexp
	pathGroup              int
	numGroup               int // 0 means noNum
	noNum                  bool
	onlyWithFileInspection bool
	withAllLinesMatched    bool
}

var (
	homedirRegex      = regexp.MustCompile(`(~/([a-z.A-Z0-9\-_]+/)+[@a-zA-Z0-9\-_+.]+\.[a-zA-Z0-9]{1,10})[:-]?(\d+)?`)
	masterRegex       = regexp.MustCompile(`(/?([a-z.A-Z0-9\-_]+/)+[@a-zA-Z0-9\-_+.]+\.[a-zA-Z0-9]{1,10})[:-]?(\d+)?`)
	otherBgsRegex     = regexp.MustCompile(`(/?([a-z.A-Z0-9\-_]+/)+[a-zA-Z0-9_.]{3,})[:-]?(\d+)`)
	masterMoreExtRe   = regexp.MustCompile(`(/?([a-z.A-Z0-9\-_]+/)+[@a-zA-Z0-9\-_+.]+\.[a-zA-Z0-9-~]{1,30})[:-]?(\d+)?`)
	masterSpacesRe    = regexp.MustCompile(`((?:\.?/)?(([a-z.A-Z0-9\-_]|\s[a-zA-Z0-9\-_])+/)+([(),%@a-zA-Z0-9\-_+.]|\s[,()@%a-zA-Z0-9\-_+.])+\.[a-zA-Z0-9-]{1,30})[:-]?(\d+)?`)
	masterSpacesWeird = regexp.MustCompile(`((?:\.?/)?(([a-z.A-Z0-9\-_]|\s[a-zA-Z0-9\-_])+/)+((/?([a-z.A-Z0-9\-_]+/))?\.[a-zA-Z0-9\-_]{3,}[a-zA-Z0-9\-_/]*)|([a-z.A-Z0-9\-_/]+/[a-zA-Z0-9\-_]+)|([A-Z][a-zA-Z]{2,}file))`)
	vimTempRegex      = regexp.MustCompile(`(#[@%+a-z.A-Z0-9\-_]+\.[a-zA-Z]{1,10}#)(\s|$|:)+`)
	emacsTempRegex    = regexp.MustCompile(`([@%+a-z.A-Z0-9\-_]+\.[a-zA-Z]{1,10}~)(\s|$|:)+`)
	fileWithNumberRe  = regexp.MustCompile(`([@%+a-z.A-Z0-9\-_]+\.[a-zA-Z]{1,10})[:-](\d+)(\s|$|:)+`)
	justFileRegex     = regexp.MustCompile(`([@%+a-z.A-Z0-9\-_]+\.[a-zA-Z]{1,10})(\s|$|:)+`)
	fileWithSpacesRe  = regexp.MustCompile(`([a-zA-Z][@+a-z. A-Z0-9\-_]+\.[a-zA-Z]{1,10})(\s|$|:)+`)
	noPeriodsRegex    = regexp.MustCompile(`(((/?([a-z.A-Z0-9\-_]+/))?\.[a-zA-Z0-9\-_]{3,}[a-zA-Z0-9\-_/]*)|([a-z.A-Z0-9\-_/]+/[a-zA-Z0-9\-_]+)|([A-Z][a-zA-Z]{2,}file))(\s|$|:)+`)
	entireLineRegex   = regexp.MustCompile(`(\S.*\S|\S)`)
)

var waterfall = []waterfallEntry{
	{name: "homedir", regex: homedirRegex, pathGroup: 1, numGroup: 3},
	{name: "master", regex: masterRegex, preferred: otherBgsRegex, pathGroup: 1, numGroup: 3},
	{name: "other_bgs_result", regex: otherBgsRegex, pathGroup: 1, numGroup: 3},
	{name: "master_more_extensions", regex: masterMoreExtRe, pathGroup: 1, numGroup: 3, onlyWithFileInspection: true},
	{name: "master_with_spaces", regex: masterSpacesRe, pathGroup: 1, numGroup: 5, onlyWithFileInspection: true},
	{name: "master_with_spaces_and_weird_files", regex: masterSpacesWeird, pathGroup: 1, numGroup: 5, onlyWithFileInspection: true},
	{name: "just_vim_temp_file", regex: vimTempRegex, pathGroup: 1, noNum: true},
	{name: "just_emacs_temp_file", regex: emacsTempRegex, pathGroup: 1, noNum: true},
	{name: "just_file_with_number", regex: fileWithNumberRe, pathGroup: 1, numGroup: 2},
	{name: "just_file", regex: justFileRegex, pathGroup: 1, noNum: true},
	{name: "just_file_with_spaces", regex: fileWithSpacesRe, pathGroup: 1, noNum: true, onlyWithFileInspection: true},
	{name: "file_no_periods", regex: noPeriodsRegex, pathGroup: 1, noNum: true},
	{name: "entire_trimmed_line", regex: entireLineRegex, pathGroup: 1, noNum: true, withAllLinesMatched: true},
}

// FileExists abstracts filesystem validation so tests can stub it.
type FileExists func(path string) bool

// OSFileExists checks whether path names an existing regular file.
func OSFileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// PathResolver is satisfied by Resolver; it is an interface so tests
// can supply a stub that never touches the filesystem.
type PathResolver interface {
	PrependDir(file string, withFileInspection bool) string
}

// MatchLine runs the waterfall against line. When validateFileExists
// is false, the first eligible match wins immediately. When true,
// every eligible regex is tried (in waterfall order) and the first
// whose resolved path exists as a file (or begins with ".../") wins.
func MatchLine(line string, validateFileExists, allInput bool, resolver PathResolver, exists FileExists) (MatchResult, bool) {
	if !validateFileExists {
		results := matchLineImpl(line, false, allInput)
		if len(results) == 0 {
			return MatchResult{}, false
		}
		return results[0], true
	}
	if exists == nil {
		exists = OSFileExists
	}
	results := matchLineImpl(line, true, allInput)
	for _, r := range results {
		resolved := resolver.PrependDir(r.Path, true)
		if exists(resolved) || strings.HasPrefix(r.Path, ".../") {
			return r, true
		}
	}
	return MatchResult{}, false
}

func matchLineImpl(line string, withFileInspection, withAllLinesMatched bool) []MatchResult {
	var results []MatchResult
	for _, entry := range waterfall {
		if entry.withAllLinesMatched != withAllLinesMatched {
			continue
		}
		if entry.onlyWithFileInspection && !withFileInspection {
			continue
		}
		loc := entry.regex.FindStringSubmatchIndex(line)
		if loc == nil {
			continue
		}
		if entry.preferred != nil {
			if otherLoc := entry.preferred.FindStringSubmatchIndex(line); otherLoc != nil && otherLoc[0] < loc[0] {
				if r, ok := unpack(line, otherLoc, entryFor(entry.preferred)); ok {
					results = append(results, r)
				}
				continue
			}
		}
		if r, ok := unpack(line, loc, entry); ok {
			results = append(results, r)
		}
	}
	return results
}

func entryFor(re *regexp.Regexp) waterfallEntry {
	for _, e := range waterfall {
		if e.regex == re {
			return e
		}
	}
	return waterfallEntry{pathGroup: 1, noNum: true}
}

func unpack(line string, loc []int, entry waterfallEntry) (MatchResult, bool) {
	groupText := func(g int) (string, bool) {
		i := 2 * g
		if i+1 >= len(loc) || loc[i] < 0 {
			return "", false
		}
		return line[loc[i]:loc[i+1]], true
	}
	path, ok := groupText(entry.pathGroup)
	if !ok {
		return MatchResult{}, false
	}
	num := 0
	if !entry.noNum {
		if numText, ok := groupText(entry.numGroup); ok {
			if n, err := strconv.Atoi(numText); err == nil {
				num = n
			}
		}
	}
	return MatchResult{
		Path:   path,
		Number: num,
		Span:   Span{Start: loc[0], End: loc[1]},
	}, true
}
