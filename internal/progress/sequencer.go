package progress

import (
	"context"
	"fmt"
	"sync"

	"teamtrack/internal/cache"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Sequencer hands out strictly increasing versions per project.
type Sequencer interface {
	Next(ctx context.Context, projectID primitive.ObjectID) (int64, error)
	// Advance lifts the project's sequence to at least floor and reports
	// whether it was behind.
	Advance(ctx context.Context, projectID primitive.ObjectID, floor int64) (bool, error)
}

// RedisSequencer draws versions from a Redis counter so that every Task
// Service replica shares one sequence per project.
type RedisSequencer struct {
	cache cache.Cache
}

// NewRedisSequencer creates a sequencer backed by the given cache.
func NewRedisSequencer(c cache.Cache) *RedisSequencer {
	return &RedisSequencer{cache: c}
}

// Next increments and returns the project's sequence.
func (s *RedisSequencer) Next(ctx context.Context, projectID primitive.ObjectID) (int64, error) {
	v, err := s.cache.Incr(ctx, cache.ProgressSequenceKey(projectID.Hex()))
	if err != nil {
		return 0, fmt.Errorf("draw progress version: %w", err)
	}
	return v, nil
}

// Advance raises the project's counter to floor when it lags behind.
func (s *RedisSequencer) Advance(ctx context.Context, projectID primitive.ObjectID, floor int64) (bool, error) {
	raised, err := s.cache.RaiseTo(ctx, cache.ProgressSequenceKey(projectID.Hex()), floor)
	if err != nil {
		return false, fmt.Errorf("advance progress version: %w", err)
	}
	return raised, nil
}

// MemorySequencer is a process-local Sequencer.
type MemorySequencer struct {
	mu  sync.Mutex
	seq map[primitive.ObjectID]int64
}

// NewMemorySequencer creates an empty in-memory sequencer.
func NewMemorySequencer() *MemorySequencer {
	return &MemorySequencer{seq: make(map[primitive.ObjectID]int64)}
}

// Next increments and returns the project's sequence.
func (s *MemorySequencer) Next(_ context.Context, projectID primitive.ObjectID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq[projectID]++
	return s.seq[projectID], nil
}

// Advance raises the project's counter to floor when it lags behind.
func (s *MemorySequencer) Advance(_ context.Context, projectID primitive.ObjectID, floor int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.seq[projectID] >= floor {
		return false, nil
	}
	s.seq[projectID] = floor
	return true, nil
}

// Reset forgets every counter, as a Redis flush does.
func (s *MemorySequencer) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq = make(map[primitive.ObjectID]int64)
}

var (
	_ Sequencer = (*RedisSequencer)(nil)
	_ Sequencer = (*MemorySequencer)(nil)
)
