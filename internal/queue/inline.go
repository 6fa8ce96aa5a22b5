package queue

import (
	"context"
	"sync"
)

// Inline is a Scheduler that runs work synchronously on a detached context.
// Tests use it to observe follow-up work deterministically.
type Inline struct {
	mu   sync.Mutex
	runs []InlineRun
}

// InlineRun records one scheduled job.
type InlineRun struct {
	Name string
	Err  error
}

// Schedule runs fn immediately.
func (s *Inline) Schedule(ctx context.Context, name string, fn func(ctx context.Context) error) {
	job := NewJob(ctx, name, fn)
	err := fn(job.Context(context.Background()))

	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs = append(s.runs, InlineRun{Name: name, Err: err})
}

// Runs returns the jobs run so far.
func (s *Inline) Runs() []InlineRun {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]InlineRun(nil), s.runs...)
}

// Names returns the names of the jobs run so far.
func (s *Inline) Names() []string {
	runs := s.Runs()
	names := make([]string, len(runs))
	for i, r := range runs {
		names[i] = r.Name
	}
	return names
}

