package search

import (
	"net/url"
	"strings"

	"github.com/mmcdole/imgdl/internal/domain"
)

// FormatQuery joins the query terms with the provider separator.
func FormatQuery(q domain.SearchQuery, sep string) string {
	return strings.Join(q.Terms(), sep)
}

// encodeQuery returns the query-string form of the joined terms.
// A "+" separator is already a form-encoded space and stays literal.
func encodeQuery(q domain.SearchQuery, sep string) string {
	terms := q.Terms()
	for i, t := range terms {
		terms[i] = url.QueryEscape(t)
	}
	if sep == "+" {
		return strings.Join(terms, "+")
	}
	return strings.Join(terms, url.QueryEscape(sep))
}
