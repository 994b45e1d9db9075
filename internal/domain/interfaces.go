package domain

import "context"

// Searcher resolves a query into at most limit image URLs.
type Searcher interface {
	Name() string
	Search(ctx context.Context, query SearchQuery, limit int) ([]string, error)
}

// Fetcher downloads one task to disk. Failures are reported in the outcome, never returned.
type Fetcher interface {
	FetchAndSave(ctx context.Context, task DownloadTask) DownloadOutcome
}
