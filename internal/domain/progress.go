package domain

import (
	"errors"
	"sync"
)

// ErrProgressOverflow is returned when more completions are recorded than tasks exist.
var ErrProgressOverflow = errors.New("progress already complete")

// Progress is one snapshot reported to a ProgressObserver.
type Progress struct {
	Completed int
	Total     int
	Outcome   DownloadOutcome // Outcome of the task that just finished
}

// Percent returns completed/total as a percentage in [0, 100].
// An empty run counts as fully complete.
func (p Progress) Percent() float64 {
	if p.Total <= 0 {
		return 100
	}
	return float64(p.Completed) / float64(p.Total) * 100
}

// Remaining returns the number of tasks still outstanding
func (p Progress) Remaining() int {
	return p.Total - p.Completed
}

// ProgressObserver receives progress updates from one coordinator run.
// OnProgress calls are serialized and arrive with strictly increasing Completed.
type ProgressObserver interface {
	OnStart(total int)
	OnProgress(p Progress)
	OnFinish()
}

// NoOpObserver discards progress updates (for testing/batch operations).
type NoOpObserver struct{}

func (NoOpObserver) OnStart(int)         {}
func (NoOpObserver) OnProgress(Progress) {}
func (NoOpObserver) OnFinish()           {}

// ProgressState tracks completed/total for a single run.
// total is fixed at construction; completed only grows and never exceeds total.
type ProgressState struct {
	mu        sync.Mutex
	total     int
	completed int
}

// NewProgressState creates a state for total tasks
func NewProgressState(total int) *ProgressState {
	if total < 0 {
		total = 0
	}
	return &ProgressState{total: total}
}

// Advance records one completion and calls report with the new snapshot while the
// state is still locked, so reports are observed in completion order.
func (s *ProgressState) Advance(outcome DownloadOutcome, report func(Progress)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.completed >= s.total {
		return ErrProgressOverflow
	}
	s.completed++

	if report != nil {
		report(Progress{Completed: s.completed, Total: s.total, Outcome: outcome})
	}
	return nil
}

// Snapshot returns the current counters
func (s *ProgressState) Snapshot() (completed, total int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.completed, s.total
}
