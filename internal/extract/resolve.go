package extract

import (
	"os"
	"path/filepath"
	"strings"
)

// Resolver turns a raw captured path into the display/dispatch path,
// per the prepend_dir rules: absolute paths, git abbreviations, and
// explicit relative paths pass through unchanged; tilde paths are
// home-expanded; everything else gets the repo root (or a tilde-
// expanded repo-short-name) prepended.
type Resolver struct {
	RepoRoot                       string // always ends in "/"
	Repos                          []string
	DisablePrependingHomeWithSlash bool
	Exists                         FileExists
}

// NewResolver builds a Resolver from the repo root and the configured
// repo-short-name list (the built-in "www" plus any FPP_REPOS entries).
func NewResolver(repoRoot string, extraRepos []string, disableHomeSlash bool) Resolver {
	repos := append(append([]string{}, DefaultRepos...), extraRepos...)
	return Resolver{
		RepoRoot:                       repoRoot,
		Repos:                          repos,
		DisablePrependingHomeWithSlash: disableHomeSlash,
		Exists:                         OSFileExists,
	}
}

// PrependDir resolves file into a filesystem path. withFileInspection
// enables the final relative-vs-toplevel existence check that favors
// "./path" over the repo-root path when git status returns paths
// already relative to the current directory.
func (r Resolver) PrependDir(file string, withFileInspection bool) string {
	if len(file) < 2 {
		return file
	}
	if file[0] == '/' {
		return file
	}
	if strings.HasPrefix(file, ".../") {
		return file
	}
	if strings.HasPrefix(file, "~/") {
		return expandHome(file)
	}
	if strings.HasPrefix(file, "./") || strings.HasPrefix(file, "../") {
		return file
	}

	first := strings.SplitN(file, "/", 2)[0]
	if first == "home" && !r.DisablePrependingHomeWithSlash {
		return "/" + file
	}
	for _, repo := range r.Repos {
		if repo != "" && first == repo {
			return expandHome("~/" + file)
		}
	}
	if !strings.Contains(file, "/") {
		return "./" + file
	}
	if strings.HasPrefix(file, "a/") || strings.HasPrefix(file, "b/") {
		return r.RepoRoot + file[2:]
	}
	split := strings.Split(file, "/")
	if split[0] == "www" {
		return r.RepoRoot + strings.Join(split[1:], "/")
	}
	if !withFileInspection {
		return r.RepoRoot + strings.Join(split, "/")
	}
	topLevel := r.RepoRoot + strings.Join(split, "/")
	relative := "./" + strings.Join(split, "/")
	exists := r.Exists
	if exists == nil {
		exists = OSFileExists
	}
	if !exists(topLevel) && exists(relative) {
		return relative
	}
	return topLevel
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
