package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func namedJob(name string) Job {
	return Job{ID: name, Name: name, Run: func(context.Context) error { return nil }}
}

func TestMemoryQueue_Bounds(t *testing.T) {
	q := NewMemoryQueue(2)
	assert.Equal(t, 2, q.Capacity())

	require.NoError(t, q.Enqueue(namedJob("cascade")))
	require.NoError(t, q.Enqueue(namedJob("repair")))
	assert.ErrorIs(t, q.Enqueue(namedJob("overflow")), ErrQueueFull)
	assert.Equal(t, 2, q.Len())

	_, err := q.Dequeue(context.Background())
	require.NoError(t, err)
	assert.NoError(t, q.Enqueue(namedJob("fits again")))
}

func TestMemoryQueue_ZeroCapacityRejectsEverything(t *testing.T) {
	q := NewMemoryQueue(0)

	assert.ErrorIs(t, q.Enqueue(namedJob("a")), ErrQueueFull)
	assert.Zero(t, q.Len())
}

func TestMemoryQueue_FIFO(t *testing.T) {
	q := NewMemoryQueue(8)
	for _, name := range []string{"first", "second", "third"} {
		require.NoError(t, q.Enqueue(namedJob(name)))
	}

	var got []string
	for i := 0; i < 3; i++ {
		job, err := q.Dequeue(context.Background())
		require.NoError(t, err)
		got = append(got, job.Name)
	}

	assert.Equal(t, []string{"first", "second", "third"}, got)
	assert.Zero(t, q.Len())
}

func TestMemoryQueue_DequeueStops(t *testing.T) {
	tests := []struct {
		name    string
		ctx     func() (context.Context, context.CancelFunc)
		close   bool
		wantErr error
	}{
		{
			name: "cancelled context",
			ctx: func() (context.Context, context.CancelFunc) {
				ctx, cancel := context.WithCancel(context.Background())
				cancel()
				return ctx, cancel
			},
			wantErr: context.Canceled,
		},
		{
			name: "deadline",
			ctx: func() (context.Context, context.CancelFunc) {
				return context.WithTimeout(context.Background(), 10*time.Millisecond)
			},
			wantErr: context.DeadlineExceeded,
		},
		{
			name:    "closed while waiting",
			ctx:     func() (context.Context, context.CancelFunc) { return context.WithCancel(context.Background()) },
			close:   true,
			wantErr: ErrQueueClosed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := NewMemoryQueue(4)
			ctx, cancel := tt.ctx()
			defer cancel()

			if tt.close {
				time.AfterFunc(20*time.Millisecond, q.Close)
			}

			_, err := q.Dequeue(ctx)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestMemoryQueue_WakesWaitingWorker(t *testing.T) {
	q := NewMemoryQueue(4)
	time.AfterFunc(20*time.Millisecond, func() { _ = q.Enqueue(namedJob("late")) })

	job, err := q.Dequeue(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "late", job.Name)
}

func TestMemoryQueue_ConcurrentWorkersDrainEverything(t *testing.T) {
	const jobs = 50
	q := NewMemoryQueue(jobs)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var (
		mu   sync.Mutex
		seen = map[string]bool{}
		wg   sync.WaitGroup
	)
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				job, err := q.Dequeue(ctx)
				if err != nil {
					return
				}
				mu.Lock()
				seen[job.ID] = true
				mu.Unlock()
			}
		}()
	}

	for i := 0; i < jobs; i++ {
		require.NoError(t, q.Enqueue(namedJob(string(rune('A'+i)))))
	}
	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(seen) == jobs
	}, 2*time.Second, 5*time.Millisecond)

	q.Close()
	wg.Wait()
}

func TestMemoryQueue_Close(t *testing.T) {
	q := NewMemoryQueue(4)
	require.NoError(t, q.Enqueue(namedJob("pending")))

	q.Close()
	q.Close()

	assert.ErrorIs(t, q.Enqueue(namedJob("rejected")), ErrQueueClosed)

	job, err := q.Dequeue(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "pending", job.Name, "queued work survives close")

	_, err = q.Dequeue(context.Background())
	assert.ErrorIs(t, err, ErrQueueClosed)
}
