package repository

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// MatchNames picks the best candidates for query among names and returns their indexes.
// Case-insensitive exact matches win; failing that, substring matches; failing that,
// names within an edit distance of max(2, len(query)/4), closest first.
func MatchNames(query string, names []string) []int {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}

	var exact, partial []int
	for i, name := range names {
		n := strings.ToLower(name)
		switch {
		case n == q:
			exact = append(exact, i)
		case strings.Contains(n, q):
			partial = append(partial, i)
		}
	}
	if len(exact) > 0 {
		return exact
	}
	if len(partial) > 0 {
		return partial
	}

	maxDistance := len([]rune(q)) / 4
	if maxDistance < 2 {
		maxDistance = 2
	}

	type scored struct {
		index    int
		distance int
	}
	var near []scored
	for i, name := range names {
		d := levenshtein.ComputeDistance(q, strings.ToLower(name))
		if d <= maxDistance {
			near = append(near, scored{index: i, distance: d})
		}
	}
	sort.SliceStable(near, func(a, b int) bool { return near[a].distance < near[b].distance })

	out := make([]int, 0, len(near))
	for _, c := range near {
		out = append(out, c.index)
	}
	return out
}
