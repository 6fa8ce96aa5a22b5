package client

import (
	"context"
	"log/slog"
	"time"

	"teamtrack/internal/cache"
	"teamtrack/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserResolver resolves user ids to directory entries.
type UserResolver interface {
	ResolveUsers(ctx context.Context, ids []primitive.ObjectID) ([]models.UserSummary, error)
}

// CachedUsers puts a read-through cache in front of a UserResolver.
// Cache errors are logged and fall through to the resolver.
type CachedUsers struct {
	next  UserResolver
	cache cache.Cache
	ttl   time.Duration
	log   *slog.Logger
}

// NewCachedUsers creates a CachedUsers.
func NewCachedUsers(next UserResolver, c cache.Cache, ttl time.Duration, log *slog.Logger) *CachedUsers {
	return &CachedUsers{next: next, cache: c, ttl: ttl, log: log}
}

// ResolveUsers returns cached entries and resolves the rest.
func (u *CachedUsers) ResolveUsers(ctx context.Context, ids []primitive.ObjectID) ([]models.UserSummary, error) {
	result := make([]models.UserSummary, 0, len(ids))
	var misses []primitive.ObjectID
	seen := make(map[primitive.ObjectID]bool, len(ids))

	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true

		var summary models.UserSummary
		found, err := u.cache.Get(ctx, cache.UserCacheKey(id.Hex()), &summary)
		if err != nil {
			u.log.WarnContext(ctx, "user cache read failed", "user_id", id.Hex(), "error", err)
		}
		if found {
			result = append(result, summary)
			continue
		}
		misses = append(misses, id)
	}

	if len(misses) == 0 {
		return result, nil
	}

	resolved, err := u.next.ResolveUsers(ctx, misses)
	if err != nil {
		return nil, err
	}
	for _, summary := range resolved {
		if err := u.cache.Set(ctx, cache.UserCacheKey(summary.ID.Hex()), summary, u.ttl); err != nil {
			u.log.WarnContext(ctx, "user cache write failed", "user_id", summary.ID.Hex(), "error", err)
		}
		result = append(result, summary)
	}
	return result, nil
}

var _ UserResolver = (*CachedUsers)(nil)
var _ UserResolver = (*TeamClient)(nil)
