package queue

import "context"

//go:generate mockgen -destination=mocks/mock_queue.go -package=mocks teamtrack/internal/queue Queue,Scheduler

// Queue is the buffer between Schedule and the workers of a Processor.
// Enqueue must not block.
type Queue interface {
	Enqueue(job Job) error
	Dequeue(ctx context.Context) (Job, error)
	Close()
	Len() int
	Capacity() int
}

// Scheduler runs work after the current request has been answered.
// Schedule never blocks and never fails the caller; work that cannot be
// accepted is dropped and logged by the implementation.
type Scheduler interface {
	Schedule(ctx context.Context, name string, fn func(ctx context.Context) error)
}

var (
	_ Queue     = (*MemoryQueue)(nil)
	_ Scheduler = (*Processor)(nil)
	_ Scheduler = (*Inline)(nil)
)
