package domain

import (
	"errors"
	"sync"
	"testing"
)

func TestNewSearchQuery(t *testing.T) {
	q := NewSearchQuery("  new york ", "", "night", "   ")

	if q.Len() != 2 || q.IsEmpty() {
		t.Fatalf("unexpected terms: %v", q.Terms())
	}
	if q.String() != "new york night" {
		t.Errorf("String() = %q", q.String())
	}
	if q.Prefix() != "new york_night" {
		t.Errorf("Prefix() = %q", q.Prefix())
	}

	terms := q.Terms()
	terms[0] = "changed"
	if q.Terms()[0] != "new york" {
		t.Error("Terms() should return a copy")
	}

	if !NewSearchQuery().IsEmpty() || !NewSearchQuery(" ", "\t").IsEmpty() {
		t.Error("blank input should produce an empty query")
	}
}

func TestSearchQueryDoesNotAliasInput(t *testing.T) {
	input := []string{"canada", "lake"}
	q := NewSearchQuery(input...)
	input[0] = "mutated"

	if q.Terms()[0] != "canada" {
		t.Errorf("query changed with its input slice: %v", q.Terms())
	}
}

func TestProgressPercent(t *testing.T) {
	tests := []struct {
		p        Progress
		expected float64
	}{
		{Progress{Completed: 1, Total: 2}, 50},
		{Progress{Completed: 2, Total: 2}, 100},
		{Progress{Completed: 0, Total: 4}, 0},
		{Progress{Completed: 0, Total: 0}, 100},
	}

	for _, test := range tests {
		if got := test.p.Percent(); got != test.expected {
			t.Errorf("Percent(%d/%d) = %v, expected %v", test.p.Completed, test.p.Total, got, test.expected)
		}
	}
}

func TestProgressStateAdvance(t *testing.T) {
	s := NewProgressState(2)
	var seen []int

	report := func(p Progress) { seen = append(seen, p.Completed) }
	for i := 0; i < 2; i++ {
		if err := s.Advance(DownloadOutcome{}, report); err != nil {
			t.Fatalf("advance %d: %v", i, err)
		}
	}

	if err := s.Advance(DownloadOutcome{}, report); !errors.Is(err, ErrProgressOverflow) {
		t.Errorf("expected ErrProgressOverflow, got %v", err)
	}
	if completed, total := s.Snapshot(); completed != 2 || total != 2 {
		t.Errorf("snapshot = %d/%d, expected 2/2", completed, total)
	}
	if len(seen) != 2 || seen[0] != 1 || seen[1] != 2 {
		t.Errorf("reports = %v, expected [1 2]", seen)
	}
}

func TestProgressStateConcurrentAdvance(t *testing.T) {
	const n = 200
	s := NewProgressState(n)

	var (
		mu   sync.Mutex
		seen []int
		wg   sync.WaitGroup
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Advance(DownloadOutcome{}, func(p Progress) {
				mu.Lock()
				seen = append(seen, p.Completed)
				mu.Unlock()
			})
		}()
	}
	wg.Wait()

	if len(seen) != n {
		t.Fatalf("got %d reports, expected %d", len(seen), n)
	}
	for i, c := range seen {
		if c != i+1 {
			t.Fatalf("report %d has completed=%d; reports must be strictly increasing", i, c)
		}
	}
}

func TestDownloadOutcome(t *testing.T) {
	task := DownloadTask{URL: "https://cdn.example/a.jpg", Dir: "out"}

	ok := NewSuccess(task, "out/a.jpg", 42)
	if !ok.OK() || ok.Message() != "" || ok.Kind.String() != "None" {
		t.Errorf("unexpected success outcome: %+v", ok)
	}

	bad := NewFailure(task, KindFilesystem, errors.New("disk full"))
	if bad.OK() || bad.Message() != "disk full" || bad.Kind.String() != "FilesystemError" {
		t.Errorf("unexpected failure outcome: %+v", bad)
	}
	if KindNetwork.String() != "NetworkError" {
		t.Errorf("KindNetwork.String() = %q", KindNetwork.String())
	}
}

func TestSearchErrorMessages(t *testing.T) {
	withStatus := &SearchError{Provider: "pixabay", StatusCode: 400, Err: errors.New("bad")}
	if got := withStatus.Error(); got != "pixabay search failed: unexpected HTTP status 400 Bad Request" {
		t.Errorf("Error() = %q", got)
	}

	cause := errors.New("connection refused")
	transport := &SearchError{Provider: "pexels", Err: cause}
	if !errors.Is(transport, cause) {
		t.Error("SearchError should unwrap to its cause")
	}
}
