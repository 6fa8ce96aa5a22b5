package repository

import (
	"context"
	"time"

	apperrors "teamtrack/internal/errors"
	"teamtrack/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

//go:generate mockgen -destination=mocks/mock_team_repository.go -package=mocks teamtrack/internal/repository TeamRepository

// TeamRepository defines the interface for team data operations.
type TeamRepository interface {
	Create(ctx context.Context, team *models.Team) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Team, error)
	FindByName(ctx context.Context, name string) (*models.Team, error)
	FindByUserID(ctx context.Context, userID primitive.ObjectID, page, limit int) ([]models.Team, int, error)
	Update(ctx context.Context, team *models.Team) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// teamRepository implements TeamRepository using MongoDB.
type teamRepository struct {
	collection *mongo.Collection
}

// NewTeamRepository creates a new TeamRepository.
func NewTeamRepository(db *mongo.Database) TeamRepository {
	return &teamRepository{
		collection: db.Collection(CollectionTeams),
	}
}

// Create inserts a new team. Team names are globally unique.
func (r *teamRepository) Create(ctx context.Context, team *models.Team) error {
	team.ID = primitive.NewObjectID()
	team.CreatedAt = time.Now()
	team.UpdatedAt = team.CreatedAt

	_, err := r.collection.InsertOne(ctx, team)
	if mongo.IsDuplicateKeyError(err) {
		return apperrors.ErrTeamNameTaken
	}
	return err
}

// FindByID retrieves a team by ID.
func (r *teamRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Team, error) {
	return findOne[models.Team](ctx, r.collection, bson.M{"_id": id}, apperrors.ErrTeamNotFound)
}

// FindByName retrieves a team by its unique name.
func (r *teamRepository) FindByName(ctx context.Context, name string) (*models.Team, error) {
	return findOne[models.Team](ctx, r.collection, bson.M{"name": name}, apperrors.ErrTeamNotFound)
}

// FindByUserID pages through the teams userID belongs to, newest first.
// Membership lives in its own collection, so one $facet round trip joins it
// and counts the total alongside the page.
func (r *teamRepository) FindByUserID(ctx context.Context, userID primitive.ObjectID, page, limit int) ([]models.Team, int, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$lookup", Value: bson.M{
			"from":         CollectionMemberships,
			"localField":   "_id",
			"foreignField": "teamId",
			"as":           "members",
		}}},
		{{Key: "$match", Value: bson.M{"members.userId": userID}}},
		{{Key: "$project", Value: bson.M{"members": 0}}},
		{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}}},
		{{Key: "$facet", Value: bson.M{
			"total": bson.A{bson.M{"$count": "n"}},
			"page": bson.A{
				bson.M{"$skip": int64((page - 1) * limit)},
				bson.M{"$limit": int64(limit)},
			},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, 0, err
	}

	facets, err := drain[struct {
		Total []struct {
			N int `bson:"n"`
		} `bson:"total"`
		Page []models.Team `bson:"page"`
	}](ctx, cursor)
	if err != nil || len(facets) == 0 {
		return []models.Team{}, 0, err
	}

	teams := facets[0].Page
	if teams == nil {
		teams = []models.Team{}
	}
	total := 0
	if len(facets[0].Total) > 0 {
		total = facets[0].Total[0].N
	}
	return teams, total, nil
}

// Update updates an existing team.
func (r *teamRepository) Update(ctx context.Context, team *models.Team) error {
	team.UpdatedAt = time.Now()

	update := bson.M{
		"$set": bson.M{
			"name":        team.Name,
			"description": team.Description,
			"updatedAt":   team.UpdatedAt,
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": team.ID}, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperrors.ErrTeamNameTaken
		}
		return err
	}

	if result.MatchedCount == 0 {
		return apperrors.ErrTeamNotFound
	}

	return nil
}

// Delete removes a team row. Memberships are removed separately.
func (r *teamRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}

	if result.DeletedCount == 0 {
		return apperrors.ErrTeamNotFound
	}

	return nil
}
