package provider

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/mmcdole/imgdl/internal/domain"
)

// AuthScheme identifies how the API key is attached to a search request
type AuthScheme string

const (
	AuthQueryParam AuthScheme = "query"  // key sent as a query parameter
	AuthHeader     AuthScheme = "header" // key sent as a request header
)

// Provider names
const (
	NamePixabay = "pixabay"
	NamePexels  = "pexels"
)

// Definition describes everything the search client needs to talk to one provider.
type Definition struct {
	Name       string
	Endpoint   string     // Default search endpoint
	QueryParam string     // Parameter carrying the joined query terms
	Separator  string     // Term separator for the query string
	Auth       AuthScheme // Where the API key goes
	AuthParam  string     // Query parameter or header name for the key

	// ResultsPath is a gjson path resolving to the array of image URLs
	ResultsPath string

	// Optional page size parameter; MinPageSize/MaxPageSize clamp the requested value
	PageSizeParam string
	MinPageSize   int
	MaxPageSize   int
}

var (
	Pixabay = Definition{
		Name:          NamePixabay,
		Endpoint:      "https://pixabay.com/api/",
		QueryParam:    "q",
		Separator:     "+",
		Auth:          AuthQueryParam,
		AuthParam:     "key",
		ResultsPath:   "hits.#.webformatURL",
		PageSizeParam: "per_page",
		MinPageSize:   3,
		MaxPageSize:   200,
	}

	Pexels = Definition{
		Name:          NamePexels,
		Endpoint:      "https://api.pexels.com/v1/search",
		QueryParam:    "query",
		Separator:     " ",
		Auth:          AuthHeader,
		AuthParam:     "Authorization",
		ResultsPath:   "photos.#.src.original",
		PageSizeParam: "per_page",
		MinPageSize:   1,
		MaxPageSize:   80,
	}
)

var definitions = map[string]Definition{
	NamePixabay: Pixabay,
	NamePexels:  Pexels,
}

// All returns every known provider sorted by name
func All() []Definition {
	out := make([]Definition, 0, len(definitions))
	for _, def := range definitions {
		out = append(out, def)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Names returns the sorted provider names
func Names() []string {
	all := All()
	names := make([]string, len(all))
	for i, def := range all {
		names[i] = def.Name
	}
	return names
}

// Lookup returns the definition for name (case-insensitive).
// Unknown names yield ErrUnknownProvider, with a suggestion when one is close enough.
func Lookup(name string) (Definition, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if def, ok := definitions[key]; ok {
		return def, nil
	}

	if suggestion := suggest(key); suggestion != "" {
		return Definition{}, fmt.Errorf("%w: %q (did you mean %q?)", domain.ErrUnknownProvider, name, suggestion)
	}
	return Definition{}, fmt.Errorf("%w: %q (available: %s)", domain.ErrUnknownProvider, name, strings.Join(Names(), ", "))
}

// maxSuggestDistance bounds how far a typo may be from a provider name
const maxSuggestDistance = 3

// suggest returns the closest provider name, or "" if none is close enough
func suggest(name string) string {
	if name == "" {
		return ""
	}

	// Prefix and subsequence matches first ("pix" -> pixabay)
	if ranks := fuzzy.RankFindFold(name, Names()); len(ranks) > 0 {
		sort.Sort(ranks)
		return ranks[0].Target
	}

	best := ""
	bestDistance := maxSuggestDistance + 1
	for _, candidate := range Names() {
		d := fuzzy.LevenshteinDistance(name, candidate)
		if d < bestDistance {
			best, bestDistance = candidate, d
		}
	}
	return best
}
