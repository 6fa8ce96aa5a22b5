package queue

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"teamtrack/internal/metrics"
)

// Job outcomes reported to metrics.
const (
	OutcomeSucceeded = "succeeded"
	OutcomeRetrying  = "retrying"
	OutcomeExhausted = "exhausted"
	OutcomeDropped   = "dropped"
)

var errJobPanicked = errors.New("job panicked")

// Options configures a Processor.
type Options struct {
	// Name labels logs and metrics, e.g. "outbox" or "side-effects".
	Name string
	// Workers is the number of worker goroutines.
	Workers int
	// MaxAttempts bounds how often a failing job runs. 1 disables retries.
	MaxAttempts int
	// RetryDelay is the base delay between retries (exponential backoff).
	RetryDelay time.Duration
	// JobTimeout bounds a single attempt.
	JobTimeout time.Duration
}

// Processor runs jobs from a Queue on a pool of workers.
type Processor struct {
	queue        Queue
	opts         Options
	log          *slog.Logger
	metrics      *metrics.Metrics
	wg           sync.WaitGroup
	retries      sync.WaitGroup
	mu           sync.Mutex
	stopping     bool
	shutdownOnce sync.Once
	shutdownCh   chan struct{}
}

// NewProcessor creates a new job processor.
func NewProcessor(queue Queue, opts Options, log *slog.Logger, m *metrics.Metrics) *Processor {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	if opts.MaxAttempts < 1 {
		opts.MaxAttempts = 1
	}
	return &Processor{
		queue:      queue,
		opts:       opts,
		log:        log.With("queue", opts.Name),
		metrics:    m,
		shutdownCh: make(chan struct{}),
	}
}

// Schedule enqueues fn as a job. A full or closed queue drops the job.
func (p *Processor) Schedule(ctx context.Context, name string, fn func(ctx context.Context) error) {
	job := NewJob(ctx, name, fn)
	if err := p.queue.Enqueue(job); err != nil {
		p.log.Warn("job dropped", "job", name, "job_id", job.ID, "request_id", job.RequestID, "error", err)
		p.metrics.JobResult(p.opts.Name, name, OutcomeDropped)
	}
}

// Start begins processing jobs with the configured number of workers.
func (p *Processor) Start(ctx context.Context) {
	for i := 0; i < p.opts.Workers; i++ {
		p.wg.Add(1)
		go p.worker(ctx, i)
	}
	p.log.Info("processor started", "workers", p.opts.Workers)
}

// Stop gracefully stops the processor. Jobs already queued are drained;
// jobs waiting for a retry are abandoned and logged.
func (p *Processor) Stop() {
	p.shutdownOnce.Do(func() {
		p.mu.Lock()
		p.stopping = true
		close(p.shutdownCh)
		p.mu.Unlock()

		p.retries.Wait()
		p.queue.Close()
	})
	p.wg.Wait()
	p.log.Info("processor stopped")
}

func (p *Processor) worker(ctx context.Context, id int) {
	defer p.wg.Done()

	for {
		job, err := p.queue.Dequeue(ctx)
		if err != nil {
			if errors.Is(err, ErrQueueClosed) || errors.Is(err, context.Canceled) {
				p.log.Debug("worker shutting down", "worker", id)
				return
			}
			continue
		}
		p.processJob(job)
	}
}

func (p *Processor) processJob(job Job) {
	job.Attempt++

	err := p.run(job)
	if err == nil {
		p.metrics.JobResult(p.opts.Name, job.Name, OutcomeSucceeded)
		if job.Attempt > 1 {
			p.log.Info("job succeeded after retry", "job", job.Name, "job_id", job.ID, "attempt", job.Attempt)
		}
		return
	}

	p.handleFailure(job, err)
}

// run executes one attempt with a fresh context so that a cancelled request
// never aborts its follow-up work.
func (p *Processor) run(job Job) (err error) {
	parent := context.Background()
	var cancel context.CancelFunc
	if p.opts.JobTimeout > 0 {
		parent, cancel = context.WithTimeout(parent, p.opts.JobTimeout)
		defer cancel()
	}

	start := time.Now()
	defer func() {
		p.metrics.ObserveJob(p.opts.Name, job.Name, time.Since(start))
		if r := recover(); r != nil {
			p.log.Error("job panicked", "job", job.Name, "job_id", job.ID, "panic", r)
			err = errJobPanicked
		}
	}()

	return job.Run(job.Context(parent))
}

func (p *Processor) handleFailure(job Job, err error) {
	if job.Attempt >= p.opts.MaxAttempts {
		p.metrics.JobResult(p.opts.Name, job.Name, OutcomeExhausted)
		p.log.Error("job failed",
			"job", job.Name,
			"job_id", job.ID,
			"request_id", job.RequestID,
			"attempts", job.Attempt,
			"error", err,
		)
		return
	}

	p.mu.Lock()
	if p.stopping {
		p.mu.Unlock()
		p.metrics.JobResult(p.opts.Name, job.Name, OutcomeExhausted)
		p.log.Error("shutdown in progress, job abandoned", "job", job.Name, "job_id", job.ID, "attempts", job.Attempt, "error", err)
		return
	}
	p.retries.Add(1)
	p.mu.Unlock()

	p.metrics.JobResult(p.opts.Name, job.Name, OutcomeRetrying)

	delay := p.opts.RetryDelay * time.Duration(1<<uint(job.Attempt-1))
	p.log.Warn("job failed, retrying",
		"job", job.Name,
		"job_id", job.ID,
		"attempt", job.Attempt,
		"max_attempts", p.opts.MaxAttempts,
		"delay", delay.String(),
		"error", err,
	)

	// Uses shutdownCh instead of a context so that Stop can abandon pending
	// retries before closing the queue.
	go func() {
		defer p.retries.Done()
		select {
		case <-p.shutdownCh:
			p.metrics.JobResult(p.opts.Name, job.Name, OutcomeExhausted)
			p.log.Error("shutdown during retry delay, job abandoned", "job", job.Name, "job_id", job.ID, "attempts", job.Attempt)
		case <-time.After(delay):
			if err := p.queue.Enqueue(job); err != nil {
				p.metrics.JobResult(p.opts.Name, job.Name, OutcomeDropped)
				p.log.Error("failed to re-enqueue job", "job", job.Name, "job_id", job.ID, "error", err)
			}
		}
	}()
}
