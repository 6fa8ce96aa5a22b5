package repository

import (
	"context"
	"time"

	apperrors "teamtrack/internal/errors"
	"teamtrack/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

//go:generate mockgen -destination=mocks/mock_feed_repository.go -package=mocks teamtrack/internal/repository ActivityRepository,NotificationRepository

// ActivityRepository stores the append-only activity log.
type ActivityRepository interface {
	Create(ctx context.Context, entry *models.ActivityLogEntry) error
	List(ctx context.Context, teamIDs []primitive.ObjectID, entityID *primitive.ObjectID, limit int) ([]models.ActivityLogEntry, error)
}

// NotificationRepository stores per-recipient notifications.
type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	ListByRecipient(ctx context.Context, recipientID primitive.ObjectID, unreadOnly bool, limit int) ([]models.Notification, error)
	MarkRead(ctx context.Context, id, recipientID primitive.ObjectID) error
}

type activityRepository struct {
	collection *mongo.Collection
}

// NewActivityRepository creates a new ActivityRepository.
func NewActivityRepository(db *mongo.Database) ActivityRepository {
	return &activityRepository{
		collection: db.Collection(CollectionActivity),
	}
}

// Create appends an entry.
func (r *activityRepository) Create(ctx context.Context, entry *models.ActivityLogEntry) error {
	entry.ID = primitive.NewObjectID()
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	_, err := r.collection.InsertOne(ctx, entry)
	return err
}

// List returns the newest entries of the given teams, optionally narrowed
// to a single entity.
func (r *activityRepository) List(ctx context.Context, teamIDs []primitive.ObjectID, entityID *primitive.ObjectID, limit int) ([]models.ActivityLogEntry, error) {
	if len(teamIDs) == 0 {
		return []models.ActivityLogEntry{}, nil
	}

	filter := bson.M{"teamId": bson.M{"$in": teamIDs}}
	if entityID != nil {
		filter["entityId"] = *entityID
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit))

	return findAll[models.ActivityLogEntry](ctx, r.collection, filter, opts)
}

type notificationRepository struct {
	collection *mongo.Collection
}

// NewNotificationRepository creates a new NotificationRepository.
func NewNotificationRepository(db *mongo.Database) NotificationRepository {
	return &notificationRepository{
		collection: db.Collection(CollectionNotifications),
	}
}

// Create stores an unread notification.
func (r *notificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	notification.ID = primitive.NewObjectID()
	notification.Read = false
	if notification.CreatedAt.IsZero() {
		notification.CreatedAt = time.Now()
	}

	_, err := r.collection.InsertOne(ctx, notification)
	return err
}

// ListByRecipient returns a user's newest notifications.
func (r *notificationRepository) ListByRecipient(ctx context.Context, recipientID primitive.ObjectID, unreadOnly bool, limit int) ([]models.Notification, error) {
	filter := bson.M{"recipientId": recipientID}
	if unreadOnly {
		filter["read"] = false
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit))

	return findAll[models.Notification](ctx, r.collection, filter, opts)
}

// MarkRead flags a notification as read. Only its recipient may do so.
func (r *notificationRepository) MarkRead(ctx context.Context, id, recipientID primitive.ObjectID) error {
	filter := bson.M{
		"_id":         id,
		"recipientId": recipientID,
	}

	result, err := r.collection.UpdateOne(ctx, filter, bson.M{"$set": bson.M{"read": true}})
	if err != nil {
		return err
	}

	if result.MatchedCount == 0 {
		return apperrors.ErrNotificationNotFound
	}

	return nil
}

