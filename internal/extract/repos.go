package extract

// DefaultRepos are the repo-short-names that get resolved to ~/<name>/...
// (see Resolver.PrependDir). Callers append FPP_REPOS entries to this list.
var DefaultRepos = []string{"www"}
