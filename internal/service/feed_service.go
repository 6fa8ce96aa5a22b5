package service

import (
	"context"

	"teamtrack/internal/models"
	"teamtrack/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	defaultFeedLimit = 50
	maxFeedLimit     = 200
)

// FeedService stores and lists activity entries and notifications.
type FeedService struct {
	activityRepo     repository.ActivityRepository
	notificationRepo repository.NotificationRepository
	memberRepo       repository.MembershipRepository
}

// NewFeedService creates a new FeedService.
func NewFeedService(activityRepo repository.ActivityRepository, notificationRepo repository.NotificationRepository, memberRepo repository.MembershipRepository) *FeedService {
	return &FeedService{
		activityRepo:     activityRepo,
		notificationRepo: notificationRepo,
		memberRepo:       memberRepo,
	}
}

// RecordActivity appends an entry posted by a sibling service.
func (s *FeedService) RecordActivity(ctx context.Context, entry *models.ActivityLogEntry) error {
	return s.activityRepo.Create(ctx, entry)
}

// RecordNotification stores a notification posted by a sibling service.
func (s *FeedService) RecordNotification(ctx context.Context, notification *models.Notification) error {
	notification.Read = false
	return s.notificationRepo.Create(ctx, notification)
}

// ListActivity returns the newest entries of the viewer's current teams,
// optionally for one entity.
func (s *FeedService) ListActivity(ctx context.Context, viewerID primitive.ObjectID, entityID *primitive.ObjectID, limit int) (*models.ActivityListResponse, error) {
	teamIDs, err := s.memberRepo.TeamIDsByUser(ctx, viewerID)
	if err != nil {
		return nil, err
	}

	entries, err := s.activityRepo.List(ctx, teamIDs, entityID, clampLimit(limit))
	if err != nil {
		return nil, err
	}
	return &models.ActivityListResponse{Items: entries}, nil
}

// ListNotifications returns the user's newest notifications.
func (s *FeedService) ListNotifications(ctx context.Context, userID primitive.ObjectID, unreadOnly bool, limit int) (*models.NotificationListResponse, error) {
	items, err := s.notificationRepo.ListByRecipient(ctx, userID, unreadOnly, clampLimit(limit))
	if err != nil {
		return nil, err
	}
	return &models.NotificationListResponse{Items: items}, nil
}

// MarkNotificationRead marks one of the user's notifications as read.
func (s *FeedService) MarkNotificationRead(ctx context.Context, userID, notificationID primitive.ObjectID) error {
	return s.notificationRepo.MarkRead(ctx, notificationID, userID)
}

func clampLimit(limit int) int {
	if limit < 1 {
		return defaultFeedLimit
	}
	if limit > maxFeedLimit {
		return maxFeedLimit
	}
	return limit
}
