package repository

import (
	"context"
	"time"

	"teamtrack/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

//go:generate mockgen -destination=mocks/mock_comment_repository.go -package=mocks teamtrack/internal/repository CommentRepository

// CommentRepository defines the interface for task comment operations.
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	FindByTaskID(ctx context.Context, taskID primitive.ObjectID) ([]models.Comment, error)
	DeleteByTaskID(ctx context.Context, taskID primitive.ObjectID) (int64, error)
	DeleteByProjectID(ctx context.Context, projectID primitive.ObjectID) (int64, error)
}

type commentRepository struct {
	collection *mongo.Collection
}

// NewCommentRepository creates a new CommentRepository.
func NewCommentRepository(db *mongo.Database) CommentRepository {
	return &commentRepository{
		collection: db.Collection(CollectionComments),
	}
}

// Create inserts a comment.
func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	comment.ID = primitive.NewObjectID()
	comment.CreatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, comment)
	return err
}

// FindByTaskID returns a task's comments, oldest first.
func (r *commentRepository) FindByTaskID(ctx context.Context, taskID primitive.ObjectID) ([]models.Comment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})

	return findAll[models.Comment](ctx, r.collection, bson.M{"taskId": taskID}, opts)
}

// DeleteByTaskID removes every comment of a task.
func (r *commentRepository) DeleteByTaskID(ctx context.Context, taskID primitive.ObjectID) (int64, error) {
	result, err := r.collection.DeleteMany(ctx, bson.M{"taskId": taskID})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}

// DeleteByProjectID removes every comment attached to a project's tasks.
func (r *commentRepository) DeleteByProjectID(ctx context.Context, projectID primitive.ObjectID) (int64, error) {
	result, err := r.collection.DeleteMany(ctx, bson.M{"projectId": projectID})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}
