package gharchive

import "strings"

var repoURLPrefixes = []string{"https://github.com/", "http://github.com/"}

// RepoKey turns a repository URL into its owner/name key by stripping a
// leading github.com host; other URLs are returned unchanged
func RepoKey(url string) string {
	for _, p := range repoURLPrefixes {
		if k, ok := strings.CutPrefix(url, p); ok {
			return k
		}
	}
	return url
}
