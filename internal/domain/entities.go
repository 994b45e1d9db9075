package domain

import (
	"strings"
)

// SearchQuery is an ordered, immutable list of search terms.
type SearchQuery struct {
	terms []string
}

// NewSearchQuery builds a query from the given terms.
// Blank terms are dropped and surrounding whitespace is trimmed.
func NewSearchQuery(terms ...string) SearchQuery {
	cleaned := make([]string, 0, len(terms))
	for _, t := range terms {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		cleaned = append(cleaned, t)
	}
	return SearchQuery{terms: cleaned}
}

// Terms returns a copy of the query terms
func (q SearchQuery) Terms() []string {
	out := make([]string, len(q.terms))
	copy(out, q.terms)
	return out
}

// Len returns the number of terms
func (q SearchQuery) Len() int {
	return len(q.terms)
}

// IsEmpty reports whether the query has no terms
func (q SearchQuery) IsEmpty() bool {
	return len(q.terms) == 0
}

// Prefix returns the terms joined with underscores, used as the default file name prefix.
func (q SearchQuery) Prefix() string {
	return strings.Join(q.terms, "_")
}

// String returns the terms joined with spaces (for display and logging)
func (q SearchQuery) String() string {
	return strings.Join(q.terms, " ")
}

// DownloadTask describes a single image to fetch and where to put it.
type DownloadTask struct {
	URL    string // Source URL of the image
	Dir    string // Target directory
	Prefix string // File name prefix, may be empty
}

// ErrorKind classifies a failed download.
type ErrorKind int

const (
	KindNone ErrorKind = iota
	KindNetwork
	KindFilesystem
)

// String returns the error kind name
func (k ErrorKind) String() string {
	switch k {
	case KindNetwork:
		return "NetworkError"
	case KindFilesystem:
		return "FilesystemError"
	default:
		return "None"
	}
}

// DownloadOutcome is the result of one DownloadTask.
type DownloadOutcome struct {
	Task  DownloadTask
	Path  string    // Final file path (success only)
	Bytes int64     // Bytes written (success only)
	Kind  ErrorKind // KindNone on success
	Err   error
}

// OK reports whether the task succeeded
func (o DownloadOutcome) OK() bool {
	return o.Kind == KindNone && o.Err == nil
}

// Message returns the failure message, or an empty string on success
func (o DownloadOutcome) Message() string {
	if o.Err == nil {
		return ""
	}
	return o.Err.Error()
}

// NewSuccess builds a successful outcome
func NewSuccess(task DownloadTask, path string, n int64) DownloadOutcome {
	return DownloadOutcome{Task: task, Path: path, Bytes: n}
}

// NewFailure builds a failed outcome
func NewFailure(task DownloadTask, kind ErrorKind, err error) DownloadOutcome {
	return DownloadOutcome{Task: task, Kind: kind, Err: err}
}
