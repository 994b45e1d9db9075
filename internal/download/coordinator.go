// Package download runs fetch tasks on a bounded worker pool and reports progress.
package download

import (
	"context"
	"log/slog"

	"github.com/mmcdole/imgdl/internal/domain"
	"github.com/sourcegraph/conc/pool"
)

// DefaultConcurrency is the pool width used when none is given
const DefaultConcurrency = 10

// Coordinator fans tasks out to a Fetcher and collects outcomes.
type Coordinator struct {
	fetcher  domain.Fetcher
	observer domain.ProgressObserver
	logger   *slog.Logger
}

// NewCoordinator creates a coordinator. A nil observer discards progress.
func NewCoordinator(fetcher domain.Fetcher, observer domain.ProgressObserver, logger *slog.Logger) *Coordinator {
	if observer == nil {
		observer = domain.NoOpObserver{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Coordinator{
		fetcher:  fetcher,
		observer: observer,
		logger:   logger,
	}
}

// Run executes every task with at most concurrency in flight and returns one outcome
// per task, in the order the tasks were given.
func (c *Coordinator) Run(ctx context.Context, tasks []domain.DownloadTask, concurrency int) []domain.DownloadOutcome {
	width := Width(concurrency, len(tasks))
	state := domain.NewProgressState(len(tasks))
	outcomes := make([]domain.DownloadOutcome, len(tasks))

	c.logger.Info("starting downloads", "tasks", len(tasks), "concurrency", width)
	c.observer.OnStart(len(tasks))
	defer c.observer.OnFinish()

	if len(tasks) == 0 {
		return outcomes
	}

	p := pool.New().WithMaxGoroutines(width)
	for i, task := range tasks {
		p.Go(func() {
			outcome := c.fetcher.FetchAndSave(ctx, task)
			outcomes[i] = outcome

			if err := state.Advance(outcome, c.observer.OnProgress); err != nil {
				c.logger.Error("progress update rejected", "url", task.URL, "error", err)
			}
		})
	}
	p.Wait()

	completed, total := state.Snapshot()
	c.logger.Info("downloads finished", "completed", completed, "total", total)
	return outcomes
}

// Width returns the pool size for n tasks: DefaultConcurrency when concurrency is not
// positive, and never more than n.
func Width(concurrency, n int) int {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	if n > 0 && concurrency > n {
		concurrency = n
	}
	return concurrency
}
