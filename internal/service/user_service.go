package service

import (
	"context"
	"log/slog"
	"time"

	"teamtrack/internal/cache"
	"teamtrack/internal/models"
	"teamtrack/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserService serves the read-only user directory through a read-through
// Redis cache. Cache failures degrade to a store read and are only logged.
type UserService struct {
	repo  repository.UserRepository
	cache cache.Cache
	ttl   time.Duration
}

func NewUserService(repo repository.UserRepository, cache cache.Cache, ttl time.Duration) *UserService {
	return &UserService{repo: repo, cache: cache, ttl: ttl}
}

func (s *UserService) GetUser(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	if user, ok := s.cached(ctx, id); ok {
		return user, nil
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.remember(ctx, user)
	return user, nil
}

// ResolveUsers returns summaries for the known users among ids, in the order
// first requested. Duplicates collapse and unknown ids are skipped. Cache
// misses are loaded with a single store query.
func (s *UserService) ResolveUsers(ctx context.Context, ids []primitive.ObjectID) ([]models.UserSummary, error) {
	if len(ids) == 0 {
		return []models.UserSummary{}, nil
	}

	found := make(map[primitive.ObjectID]*models.User, len(ids))
	var order, missing []primitive.ObjectID
	for _, id := range ids {
		if _, seen := found[id]; seen {
			continue
		}
		order = append(order, id)
		user, ok := s.cached(ctx, id)
		found[id] = user
		if !ok {
			missing = append(missing, id)
		}
	}

	if len(missing) > 0 {
		users, err := s.repo.FindByIDs(ctx, missing)
		if err != nil {
			return nil, err
		}
		for i := range users {
			found[users[i].ID] = &users[i]
			s.remember(ctx, &users[i])
		}
	}

	summaries := make([]models.UserSummary, 0, len(order))
	for _, id := range order {
		if user := found[id]; user != nil {
			summaries = append(summaries, user.Summary())
		}
	}
	return summaries, nil
}

func (s *UserService) cached(ctx context.Context, id primitive.ObjectID) (*models.User, bool) {
	var user models.User
	hit, err := s.cache.Get(ctx, cache.UserCacheKey(id.Hex()), &user)
	if err != nil {
		slog.WarnContext(ctx, "user cache read failed", "user_id", id.Hex(), "error", err)
		return nil, false
	}
	if !hit {
		return nil, false
	}
	return &user, true
}

func (s *UserService) remember(ctx context.Context, user *models.User) {
	if err := s.cache.Set(ctx, cache.UserCacheKey(user.ID.Hex()), user, s.ttl); err != nil {
		slog.WarnContext(ctx, "user cache write failed", "user_id", user.ID.Hex(), "error", err)
	}
}
