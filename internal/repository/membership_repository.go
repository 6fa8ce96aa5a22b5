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

//go:generate mockgen -destination=mocks/mock_membership_repository.go -package=mocks teamtrack/internal/repository MembershipRepository

// MembershipRepository defines the interface for membership data operations.
type MembershipRepository interface {
	Create(ctx context.Context, membership *models.Membership) error
	FindByTeamID(ctx context.Context, teamID primitive.ObjectID) ([]models.Membership, error)
	FindByTeamAndUser(ctx context.Context, teamID, userID primitive.ObjectID) (*models.Membership, error)
	Delete(ctx context.Context, teamID, userID primitive.ObjectID) error
	DeleteAllByTeamID(ctx context.Context, teamID primitive.ObjectID) (int64, error)
	TeamIDsByUser(ctx context.Context, userID primitive.ObjectID) ([]primitive.ObjectID, error)
}

// membershipRepository implements MembershipRepository using MongoDB.
type membershipRepository struct {
	collection *mongo.Collection
}

// NewMembershipRepository creates a new MembershipRepository.
func NewMembershipRepository(db *mongo.Database) MembershipRepository {
	return &membershipRepository{
		collection: db.Collection(CollectionMemberships),
	}
}

// Create inserts a membership. The (teamId, userId) pair is unique.
func (r *membershipRepository) Create(ctx context.Context, membership *models.Membership) error {
	membership.ID = primitive.NewObjectID()
	membership.JoinedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, membership)
	if mongo.IsDuplicateKeyError(err) {
		return apperrors.ErrAlreadyMember
	}
	return err
}

// FindByTeamID returns all memberships of a team, oldest first.
func (r *membershipRepository) FindByTeamID(ctx context.Context, teamID primitive.ObjectID) ([]models.Membership, error) {
	opts := options.Find().SetSort(bson.D{{Key: "joinedAt", Value: 1}})

	return findAll[models.Membership](ctx, r.collection, bson.M{"teamId": teamID}, opts)
}

// FindByTeamAndUser returns a membership by team and user ID.
func (r *membershipRepository) FindByTeamAndUser(ctx context.Context, teamID, userID primitive.ObjectID) (*models.Membership, error) {
	filter := bson.M{
		"teamId": teamID,
		"userId": userID,
	}

	return findOne[models.Membership](ctx, r.collection, filter, apperrors.ErrNotTeamMember)
}

// Delete removes a membership.
func (r *membershipRepository) Delete(ctx context.Context, teamID, userID primitive.ObjectID) error {
	filter := bson.M{
		"teamId": teamID,
		"userId": userID,
	}

	result, err := r.collection.DeleteOne(ctx, filter)
	if err != nil {
		return err
	}

	if result.DeletedCount == 0 {
		return apperrors.ErrNotTeamMember
	}

	return nil
}

// TeamIDsByUser returns the teams userID currently belongs to.
func (r *membershipRepository) TeamIDsByUser(ctx context.Context, userID primitive.ObjectID) ([]primitive.ObjectID, error) {
	values, err := r.collection.Distinct(ctx, "teamId", bson.M{"userId": userID})
	if err != nil {
		return nil, err
	}

	ids := make([]primitive.ObjectID, 0, len(values))
	for _, v := range values {
		if id, ok := v.(primitive.ObjectID); ok {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// DeleteAllByTeamID removes all memberships of a team (used when deleting a team).
func (r *membershipRepository) DeleteAllByTeamID(ctx context.Context, teamID primitive.ObjectID) (int64, error) {
	result, err := r.collection.DeleteMany(ctx, bson.M{"teamId": teamID})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}
