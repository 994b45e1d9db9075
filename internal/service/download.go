package service

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/mmcdole/imgdl/internal/domain"
	"github.com/mmcdole/imgdl/internal/download"
)

// Request describes one search-and-download run
type Request struct {
	Query       domain.SearchQuery
	Limit       int
	Dir         string
	Prefix      string // Empty uses the query prefix
	Concurrency int
}

// Report summarizes a run
type Report struct {
	Provider  string
	Query     domain.SearchQuery
	URLs      []string
	Outcomes  []domain.DownloadOutcome
	NoResults bool          // The search succeeded but matched nothing
	Elapsed   time.Duration // Wall time from search to last download
}

// Succeeded returns the number of saved images
func (r Report) Succeeded() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.OK() {
			n++
		}
	}
	return n
}

// Failed returns the number of failed downloads
func (r Report) Failed() int {
	return len(r.Outcomes) - r.Succeeded()
}

// Failures returns the failed outcomes in submission order
func (r Report) Failures() []domain.DownloadOutcome {
	var out []domain.DownloadOutcome
	for _, o := range r.Outcomes {
		if !o.OK() {
			out = append(out, o)
		}
	}
	return out
}

// DownloadService searches a provider and downloads the results
type DownloadService struct {
	searcher domain.Searcher
	fetcher  domain.Fetcher
	observer domain.ProgressObserver
	logger   *slog.Logger
}

// NewDownloadService creates a new download service
func NewDownloadService(searcher domain.Searcher, fetcher domain.Fetcher, observer domain.ProgressObserver, logger *slog.Logger) *DownloadService {
	if observer == nil {
		observer = domain.NoOpObserver{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &DownloadService{
		searcher: searcher,
		fetcher:  fetcher,
		observer: observer,
		logger:   logger,
	}
}

// Run searches, builds one task per result URL and downloads them.
// A search failure is returned as an error; download failures are in the report.
func (s *DownloadService) Run(ctx context.Context, req Request) (Report, error) {
	start := time.Now()
	report := Report{Provider: s.searcher.Name(), Query: req.Query}

	if req.Query.IsEmpty() {
		return report, domain.ErrEmptyQuery
	}
	if req.Limit < 1 {
		return report, fmt.Errorf("%w: got %d", domain.ErrInvalidLimit, req.Limit)
	}

	urls, err := s.searcher.Search(ctx, req.Query, req.Limit)
	if err != nil {
		return report, err
	}
	report.URLs = urls

	if len(urls) == 0 {
		s.logger.Info("search returned no results", "provider", report.Provider, "query", req.Query.String())
		report.NoResults = true
		report.Elapsed = time.Since(start)
		return report, nil
	}

	prefix := req.Prefix
	if prefix == "" {
		prefix = req.Query.Prefix()
	}

	tasks := make([]domain.DownloadTask, len(urls))
	for i, u := range urls {
		tasks[i] = domain.DownloadTask{URL: u, Dir: req.Dir, Prefix: prefix}
	}

	coordinator := download.NewCoordinator(s.fetcher, s.observer, s.logger)
	report.Outcomes = coordinator.Run(ctx, tasks, req.Concurrency)
	report.Elapsed = time.Since(start)

	s.logger.Info("run complete",
		"provider", report.Provider,
		"query", req.Query.String(),
		"saved", report.Succeeded(),
		"failed", report.Failed(),
		"took", report.Elapsed,
	)
	return report, nil
}

// PrepareDirectory creates dir if needed and checks that files can be written to it.
func PrepareDirectory(dir string) (string, error) {
	if dir == "" {
		return "", fmt.Errorf("%w: no directory given", domain.ErrInvalidDirectory)
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrInvalidDirectory, err)
	}

	if err := os.MkdirAll(abs, 0755); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrInvalidDirectory, err)
	}

	check, err := os.CreateTemp(abs, ".imgdl-write-check-*")
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrInvalidDirectory, err)
	}
	name := check.Name()
	check.Close()
	os.Remove(name)

	return abs, nil
}
