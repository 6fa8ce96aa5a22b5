package repository

import (
	"context"
	"errors"
	"time"

	apperrors "teamtrack/internal/errors"
	"teamtrack/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

//go:generate mockgen -destination=mocks/mock_project_repository.go -package=mocks teamtrack/internal/repository ProjectRepository

// ProjectRepository defines the interface for project data operations.
type ProjectRepository interface {
	Create(ctx context.Context, project *models.Project) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Project, error)
	FindByTeamID(ctx context.Context, teamID primitive.ObjectID) ([]models.Project, error)
	FindIDsByTeamID(ctx context.Context, teamID primitive.ObjectID) ([]primitive.ObjectID, error)
	Update(ctx context.Context, project *models.Project) error
	SetProgress(ctx context.Context, id primitive.ObjectID, progress int, version int64) (*models.ProgressResult, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	DeleteByIDs(ctx context.Context, ids []primitive.ObjectID) (int64, error)
}

type projectRepository struct {
	collection *mongo.Collection
}

// NewProjectRepository creates a new ProjectRepository.
func NewProjectRepository(db *mongo.Database) ProjectRepository {
	return &projectRepository{
		collection: db.Collection(CollectionProjects),
	}
}

// Create inserts a project with zero progress.
func (r *projectRepository) Create(ctx context.Context, project *models.Project) error {
	project.ID = primitive.NewObjectID()
	project.Progress = 0
	project.ProgressVersion = 0
	project.CreatedAt = time.Now()
	project.UpdatedAt = project.CreatedAt

	_, err := r.collection.InsertOne(ctx, project)
	return err
}

// FindByID retrieves a project by ID.
func (r *projectRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Project, error) {
	return findOne[models.Project](ctx, r.collection, bson.M{"_id": id}, apperrors.ErrProjectNotFound)
}

// FindByTeamID returns the projects of a team, newest first.
func (r *projectRepository) FindByTeamID(ctx context.Context, teamID primitive.ObjectID) ([]models.Project, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	return findAll[models.Project](ctx, r.collection, bson.M{"teamId": teamID}, opts)
}

// FindIDsByTeamID returns only the ids of a team's projects.
func (r *projectRepository) FindIDsByTeamID(ctx context.Context, teamID primitive.ObjectID) ([]primitive.ObjectID, error) {
	opts := options.Find().SetProjection(bson.M{"_id": 1})

	cursor, err := r.collection.Find(ctx, bson.M{"teamId": teamID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	ids := []primitive.ObjectID{}
	for cursor.Next(ctx) {
		var doc struct {
			ID primitive.ObjectID `bson:"_id"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		ids = append(ids, doc.ID)
	}

	return ids, cursor.Err()
}

// Update writes the editable project fields. Progress is never touched here.
func (r *projectRepository) Update(ctx context.Context, project *models.Project) error {
	project.UpdatedAt = time.Now()

	update := bson.M{
		"$set": bson.M{
			"name":        project.Name,
			"description": project.Description,
			"startDate":   project.StartDate,
			"endDate":     project.EndDate,
			"updatedAt":   project.UpdatedAt,
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": project.ID}, update)
	if err != nil {
		return err
	}

	if result.MatchedCount == 0 {
		return apperrors.ErrProjectNotFound
	}

	return nil
}

// SetProgress stores a pushed progress value.
//
// A positive version is applied only when it is greater than the stored
// progressVersion; otherwise the write is reported as stale and nothing
// changes. Version 0 is applied unconditionally and leaves the stored
// version as it is.
func (r *projectRepository) SetProgress(ctx context.Context, id primitive.ObjectID, progress int, version int64) (*models.ProgressResult, error) {
	now := time.Now()
	filter := bson.M{"_id": id}
	set := bson.M{"progress": progress, "updatedAt": now}
	if version > 0 {
		filter["progressVersion"] = bson.M{"$lt": version}
		set["progressVersion"] = version
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.Project
	err := r.collection.FindOneAndUpdate(ctx, filter, bson.M{"$set": set}, opts).Decode(&updated)
	if err == nil {
		return &models.ProgressResult{
			State:    models.ProgressFresh,
			Progress: updated.Progress,
			Version:  updated.ProgressVersion,
		}, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	// No match: either the project is gone or a newer version is stored.
	current, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return &models.ProgressResult{
		State:    models.ProgressStale,
		Progress: current.Progress,
		Version:  current.ProgressVersion,
	}, nil
}

// Delete removes a single project row.
func (r *projectRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}

	if result.DeletedCount == 0 {
		return apperrors.ErrProjectNotFound
	}

	return nil
}

// DeleteByIDs removes the given projects and returns how many were deleted.
func (r *projectRepository) DeleteByIDs(ctx context.Context, ids []primitive.ObjectID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	result, err := r.collection.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return 0, err
	}

	return result.DeletedCount, nil
}
