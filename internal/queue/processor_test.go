package queue

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"teamtrack/internal/logger"
	"teamtrack/internal/metrics"
	"teamtrack/pkg/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProcessor(opts Options) *Processor {
	return NewProcessor(NewMemoryQueue(10), opts, logger.Discard(), metrics.New("test"))
}

func TestNewProcessor_Defaults(t *testing.T) {
	p := NewProcessor(NewMemoryQueue(1), Options{Name: "q"}, logger.Discard(), nil)

	assert.Equal(t, 1, p.opts.Workers)
	assert.Equal(t, 1, p.opts.MaxAttempts)
}

func TestProcessor_RunsScheduledJobs(t *testing.T) {
	p := newTestProcessor(Options{Name: "side-effects", Workers: 2, MaxAttempts: 1})
	p.Start(context.Background())
	defer p.Stop()

	var wg sync.WaitGroup
	var count atomic.Int32
	wg.Add(3)
	for i := 0; i < 3; i++ {
		p.Schedule(context.Background(), "activity", func(context.Context) error {
			count.Add(1)
			wg.Done()
			return nil
		})
	}

	wg.Wait()
	assert.Equal(t, int32(3), count.Load())
}

func TestProcessor_CarriesCredentialAndRequestID(t *testing.T) {
	p := newTestProcessor(Options{Name: "outbox", Workers: 1, MaxAttempts: 1})
	p.Start(context.Background())
	defer p.Stop()

	reqCtx, cancel := context.WithCancel(context.Background())
	reqCtx = auth.WithCredential(reqCtx, "token-1")
	reqCtx = logger.WithRequestID(reqCtx, "req-1")

	type seen struct {
		credential string
		requestID  string
		ctxErr     error
	}
	got := make(chan seen, 1)

	p.Schedule(reqCtx, "cascade", func(ctx context.Context) error {
		got <- seen{auth.CredentialFrom(ctx), logger.RequestID(ctx), ctx.Err()}
		return nil
	})
	cancel()

	select {
	case s := <-got:
		assert.Equal(t, "token-1", s.credential)
		assert.Equal(t, "req-1", s.requestID)
		assert.NoError(t, s.ctxErr, "job context must not inherit request cancellation")
	case <-time.After(2 * time.Second):
		t.Fatal("job did not run")
	}
}

func TestProcessor_RetriesWithBackoff(t *testing.T) {
	p := newTestProcessor(Options{Name: "outbox", Workers: 1, MaxAttempts: 3, RetryDelay: 10 * time.Millisecond})
	p.Start(context.Background())
	defer p.Stop()

	var attempts atomic.Int32
	done := make(chan struct{})

	p.Schedule(context.Background(), "cascade", func(context.Context) error {
		n := attempts.Add(1)
		if n < 3 {
			return errors.New("downstream unavailable")
		}
		close(done)
		return nil
	})

	select {
	case <-done:
		assert.Equal(t, int32(3), attempts.Load())
	case <-time.After(2 * time.Second):
		t.Fatalf("job did not succeed, attempts=%d", attempts.Load())
	}
}

func TestProcessor_GivesUpAfterMaxAttempts(t *testing.T) {
	p := newTestProcessor(Options{Name: "outbox", Workers: 1, MaxAttempts: 2, RetryDelay: 5 * time.Millisecond})
	p.Start(context.Background())

	var attempts atomic.Int32
	p.Schedule(context.Background(), "cascade", func(context.Context) error {
		attempts.Add(1)
		return errors.New("boom")
	})

	require.Eventually(t, func() bool { return attempts.Load() == 2 }, time.Second, 5*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	p.Stop()

	assert.Equal(t, int32(2), attempts.Load())
}

func TestProcessor_NoRetryWhenSingleAttempt(t *testing.T) {
	p := newTestProcessor(Options{Name: "side-effects", Workers: 1, MaxAttempts: 1, RetryDelay: time.Millisecond})
	p.Start(context.Background())

	var attempts atomic.Int32
	p.Schedule(context.Background(), "notify", func(context.Context) error {
		attempts.Add(1)
		return errors.New("boom")
	})

	require.Eventually(t, func() bool { return attempts.Load() == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	p.Stop()

	assert.Equal(t, int32(1), attempts.Load())
}

func TestProcessor_RecoversFromPanic(t *testing.T) {
	p := newTestProcessor(Options{Name: "side-effects", Workers: 1, MaxAttempts: 1})
	p.Start(context.Background())
	defer p.Stop()

	p.Schedule(context.Background(), "bad", func(context.Context) error { panic("boom") })

	done := make(chan struct{})
	p.Schedule(context.Background(), "good", func(context.Context) error {
		close(done)
		return nil
	})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker died after panic")
	}
}

func TestProcessor_JobTimeout(t *testing.T) {
	p := newTestProcessor(Options{Name: "outbox", Workers: 1, MaxAttempts: 1, JobTimeout: 20 * time.Millisecond})
	p.Start(context.Background())
	defer p.Stop()

	got := make(chan error, 1)
	p.Schedule(context.Background(), "slow", func(ctx context.Context) error {
		<-ctx.Done()
		got <- ctx.Err()
		return ctx.Err()
	})

	select {
	case err := <-got:
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	case <-time.After(2 * time.Second):
		t.Fatal("job was not cancelled")
	}
}

func TestProcessor_DropsWhenFull(t *testing.T) {
	q := NewMemoryQueue(1)
	p := NewProcessor(q, Options{Name: "side-effects"}, logger.Discard(), nil)

	var ran atomic.Int32
	fn := func(context.Context) error { ran.Add(1); return nil }

	p.Schedule(context.Background(), "a", fn)
	p.Schedule(context.Background(), "b", fn)

	assert.Equal(t, 1, q.Len())

	p.Start(context.Background())
	p.Stop()
	assert.Equal(t, int32(1), ran.Load())
}

func TestProcessor_StopDrainsQueuedJobs(t *testing.T) {
	q := NewMemoryQueue(10)
	p := NewProcessor(q, Options{Name: "outbox", Workers: 1}, logger.Discard(), nil)

	var ran atomic.Int32
	for i := 0; i < 5; i++ {
		p.Schedule(context.Background(), "cascade", func(context.Context) error { ran.Add(1); return nil })
	}

	p.Start(context.Background())
	p.Stop()

	assert.Equal(t, int32(5), ran.Load())
}

func TestInline(t *testing.T) {
	s := &Inline{}
	ctx := auth.WithCredential(context.Background(), "tok")

	var credential string
	s.Schedule(ctx, "first", func(ctx context.Context) error {
		credential = auth.CredentialFrom(ctx)
		return nil
	})
	s.Schedule(ctx, "second", func(context.Context) error { return errors.New("x") })

	assert.Equal(t, "tok", credential)
	assert.Equal(t, []string{"first", "second"}, s.Names())
	assert.Error(t, s.Runs()[1].Err)
}
