// Package cache holds the Redis-backed key/value store shared by the
// services: user summaries for expansion and per-project progress counters.
package cache

import (
	"context"
	"time"
)

//go:generate mockgen -destination=mocks/mock_cache.go -package=mocks teamtrack/internal/cache Cache

// Cache is the subset of Redis the services depend on. Values are stored
// as JSON.
type Cache interface {
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	// Get decodes the value at key into dest. A missing key reports false
	// with a nil error.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Delete(ctx context.Context, key string) error
	// Incr is atomic across processes; the first call on a key returns 1.
	Incr(ctx context.Context, key string) (int64, error)
	// RaiseTo atomically sets the counter at key to floor when it is lower
	// and reports whether it did.
	RaiseTo(ctx context.Context, key string, floor int64) (bool, error)
}

var _ Cache = (*Redis)(nil)

const (
	userKeyPrefix     = "user:"
	progressSeqPrefix = "progress:seq:"
)

// UserCacheKey is the key under which a user summary is cached.
func UserCacheKey(userID string) string {
	return userKeyPrefix + userID
}

// ProgressSequenceKey is the key of a project's progress version counter.
func ProgressSequenceKey(projectID string) string {
	return progressSeqPrefix + projectID
}
