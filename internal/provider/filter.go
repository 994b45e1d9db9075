package provider

import (
	"strings"

	"github.com/sahilm/fuzzy"
)

// Match is a provider that matched a filter pattern
type Match struct {
	Definition     Definition
	MatchedIndexes []int // Positions in Definition.Name that matched (for highlighting)
}

// Filter returns providers whose names fuzzy-match pattern, best first.
// An empty pattern returns every provider in name order.
func Filter(pattern string) []Match {
	all := All()

	pattern = strings.ToLower(strings.TrimSpace(pattern))
	if pattern == "" {
		out := make([]Match, len(all))
		for i, def := range all {
			out[i] = Match{Definition: def}
		}
		return out
	}

	names := make([]string, len(all))
	for i, def := range all {
		names[i] = def.Name
	}

	matches := fuzzy.Find(pattern, names)

	out := make([]Match, len(matches))
	for i, m := range matches {
		out[i] = Match{
			Definition:     all[m.Index],
			MatchedIndexes: m.MatchedIndexes,
		}
	}
	return out
}
