package stage

import (
	"os"
	"sort"

	"github.com/gobwas/glob"
)

// ListCandidates returns the basenames of entries in dir matching
// pattern (a gobwas/glob pattern, e.g. "*.xml"), in sorted filename
// order.
func ListCandidates(dir, pattern string) ([]string, error) {
	g, err := glob.Compile(pattern)
	if err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if g.Match(e.Name()) {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// Pending subtracts done's recorded names from candidates, preserving
// the sorted order of candidates.
func Pending(candidates []string, done *Manifest) []string {
	var out []string
	for _, c := range candidates {
		if !done.Done(c) {
			out = append(out, c)
		}
	}
	return out
}
