// Package queue runs background work for the services: outbox deliveries
// with retries and fire-and-forget side effects.
package queue

import (
	"context"
	"errors"
	"sync"
)

var (
	ErrQueueFull   = errors.New("queue is full")
	ErrQueueClosed = errors.New("queue is closed")
)

// MemoryQueue is a bounded FIFO held in process memory. Jobs still pending
// when the process exits are lost, outbox jobs included.
type MemoryQueue struct {
	mu       sync.Mutex
	pending  []Job
	capacity int
	closed   bool

	// wake holds at most one token; done is closed by Close.
	wake chan struct{}
	done chan struct{}
}

func NewMemoryQueue(capacity int) *MemoryQueue {
	return &MemoryQueue{
		pending:  make([]Job, 0, capacity),
		capacity: capacity,
		wake:     make(chan struct{}, 1),
		done:     make(chan struct{}),
	}
}

// Enqueue never blocks. It fails with ErrQueueFull at capacity and with
// ErrQueueClosed after Close.
func (q *MemoryQueue) Enqueue(job Job) error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return ErrQueueClosed
	}
	if len(q.pending) >= q.capacity {
		q.mu.Unlock()
		return ErrQueueFull
	}
	q.pending = append(q.pending, job)
	q.mu.Unlock()

	q.signal()
	return nil
}

// Dequeue blocks until a job is available, ctx ends, or the queue is closed
// and drained.
func (q *MemoryQueue) Dequeue(ctx context.Context) (Job, error) {
	for {
		job, ok, closed := q.pop()
		if ok {
			return job, nil
		}
		if closed {
			return Job{}, ErrQueueClosed
		}

		select {
		case <-ctx.Done():
			return Job{}, ctx.Err()
		case <-q.wake:
		case <-q.done:
		}
	}
}

func (q *MemoryQueue) pop() (job Job, ok bool, closed bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.pending) == 0 {
		return Job{}, false, q.closed
	}
	job = q.pending[0]
	q.pending[0] = Job{}
	q.pending = q.pending[1:]

	// Pass the token on so a second waiting worker picks up the rest.
	if len(q.pending) > 0 {
		q.signal()
	}
	return job, true, q.closed
}

func (q *MemoryQueue) signal() {
	select {
	case q.wake <- struct{}{}:
	default:
	}
}

// Close stops new jobs from being accepted. Jobs already queued can still be
// dequeued. Close is idempotent.
func (q *MemoryQueue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return
	}
	q.closed = true
	close(q.done)
}

func (q *MemoryQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

func (q *MemoryQueue) Capacity() int {
	return q.capacity
}
