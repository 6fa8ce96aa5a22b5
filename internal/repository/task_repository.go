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

//go:generate mockgen -destination=mocks/mock_task_repository.go -package=mocks teamtrack/internal/repository TaskRepository

// TaskRepository defines the interface for task data operations.
type TaskRepository interface {
	Create(ctx context.Context, task *models.Task) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Task, error)
	FindByProjectID(ctx context.Context, projectID primitive.ObjectID) ([]models.Task, error)
	Update(ctx context.Context, id primitive.ObjectID, patch models.TaskPatch) (*models.Task, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	DeleteByProjectID(ctx context.Context, projectID primitive.ObjectID) (int64, error)
	ProgressTotals(ctx context.Context, projectID primitive.ObjectID) (sum, count int64, err error)
	UnassignInProjects(ctx context.Context, userID primitive.ObjectID, projectIDs []primitive.ObjectID) ([]primitive.ObjectID, int64, error)
	UnassignInTeam(ctx context.Context, userID, teamID primitive.ObjectID) ([]primitive.ObjectID, int64, error)
}

type taskRepository struct {
	collection *mongo.Collection
}

// NewTaskRepository creates a new TaskRepository.
func NewTaskRepository(db *mongo.Database) TaskRepository {
	return &taskRepository{
		collection: db.Collection(CollectionTasks),
	}
}

// Create inserts a task. Task names are unique within a project.
func (r *taskRepository) Create(ctx context.Context, task *models.Task) error {
	task.ID = primitive.NewObjectID()
	task.CreatedAt = time.Now()
	task.UpdatedAt = task.CreatedAt

	_, err := r.collection.InsertOne(ctx, task)
	if mongo.IsDuplicateKeyError(err) {
		return apperrors.ErrTaskNameTaken
	}
	return err
}

// FindByID retrieves a task by ID.
func (r *taskRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Task, error) {
	return findOne[models.Task](ctx, r.collection, bson.M{"_id": id}, apperrors.ErrTaskNotFound)
}

// FindByProjectID returns the tasks of a project ordered by due date.
func (r *taskRepository) FindByProjectID(ctx context.Context, projectID primitive.ObjectID) ([]models.Task, error) {
	opts := options.Find().SetSort(bson.D{{Key: "dueDate", Value: 1}, {Key: "_id", Value: 1}})

	return findAll[models.Task](ctx, r.collection, bson.M{"projectId": projectID}, opts)
}

// Update writes the fields set in patch and returns the stored task.
// An assignee write that lost a race with another writer fails with
// ErrAssigneeChanged.
func (r *taskRepository) Update(ctx context.Context, id primitive.ObjectID, patch models.TaskPatch) (*models.Task, error) {
	set := bson.M{"updatedAt": time.Now()}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.StartDate != nil {
		set["startDate"] = *patch.StartDate
	}
	if patch.DueDate != nil {
		set["dueDate"] = *patch.DueDate
	}
	if patch.Status != nil {
		set["status"] = *patch.Status
	}
	if patch.Priority != nil {
		set["priority"] = *patch.Priority
	}
	if patch.Progress != nil {
		set["progress"] = *patch.Progress
	}

	filter := bson.M{"_id": id}
	if patch.Assign {
		set["assignedTo"] = patch.AssignedTo
		filter["assignedTo"] = patch.ExpectAssignee
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var task models.Task
	err := r.collection.FindOneAndUpdate(ctx, filter, bson.M{"$set": set}, opts).Decode(&task)
	switch {
	case err == nil:
		return &task, nil
	case mongo.IsDuplicateKeyError(err):
		return nil, apperrors.ErrTaskNameTaken
	case !errors.Is(err, mongo.ErrNoDocuments):
		return nil, err
	}

	if !patch.Assign {
		return nil, apperrors.ErrTaskNotFound
	}
	n, err := r.collection.CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, apperrors.ErrTaskNotFound
	}
	return nil, apperrors.ErrAssigneeChanged
}

// Delete removes a single task.
func (r *taskRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}

	if result.DeletedCount == 0 {
		return apperrors.ErrTaskNotFound
	}

	return nil
}

// DeleteByProjectID removes every task of a project and returns the count.
func (r *taskRepository) DeleteByProjectID(ctx context.Context, projectID primitive.ObjectID) (int64, error) {
	result, err := r.collection.DeleteMany(ctx, bson.M{"projectId": projectID})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}

// ProgressTotals returns the sum of progress values and the task count of a
// project in a single aggregation.
func (r *taskRepository) ProgressTotals(ctx context.Context, projectID primitive.ObjectID) (int64, int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"projectId": projectID}}},
		{{Key: "$group", Value: bson.M{
			"_id":   nil,
			"sum":   bson.M{"$sum": "$progress"},
			"count": bson.M{"$sum": 1},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, 0, err
	}
	result, err := drain[struct {
		Sum   int64 `bson:"sum"`
		Count int64 `bson:"count"`
	}](ctx, cursor)
	if err != nil || len(result) == 0 {
		return 0, 0, err
	}

	return result[0].Sum, result[0].Count, nil
}

// UnassignInProjects clears the assignee on every task of userID inside the
// given projects. Progress and status are left untouched. It returns the
// projects that had at least one task unassigned.
func (r *taskRepository) UnassignInProjects(ctx context.Context, userID primitive.ObjectID, projectIDs []primitive.ObjectID) ([]primitive.ObjectID, int64, error) {
	if len(projectIDs) == 0 {
		return []primitive.ObjectID{}, 0, nil
	}

	return r.unassign(ctx, bson.M{
		"assignedTo": userID,
		"projectId":  bson.M{"$in": projectIDs},
	})
}

// UnassignInTeam is UnassignInProjects scoped by the denormalized teamId
// field. Tasks without a teamId are not reached.
func (r *taskRepository) UnassignInTeam(ctx context.Context, userID, teamID primitive.ObjectID) ([]primitive.ObjectID, int64, error) {
	return r.unassign(ctx, bson.M{
		"assignedTo": userID,
		"teamId":     teamID,
	})
}

func (r *taskRepository) unassign(ctx context.Context, filter bson.M) ([]primitive.ObjectID, int64, error) {
	values, err := r.collection.Distinct(ctx, "projectId", filter)
	if err != nil {
		return nil, 0, err
	}

	affected := make([]primitive.ObjectID, 0, len(values))
	for _, v := range values {
		if id, ok := v.(primitive.ObjectID); ok {
			affected = append(affected, id)
		}
	}

	if len(affected) == 0 {
		return affected, 0, nil
	}

	update := bson.M{"$set": bson.M{"assignedTo": nil, "updatedAt": time.Now()}}
	result, err := r.collection.UpdateMany(ctx, filter, update)
	if err != nil {
		return nil, 0, err
	}

	return affected, result.ModifiedCount, nil
}
