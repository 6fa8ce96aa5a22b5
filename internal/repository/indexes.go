package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Index describes a single index on a collection.
type Index struct {
	Collection string
	Keys       bson.D
	Unique     bool
}

// TeamIndexes are the indexes of the Team Service database.
var TeamIndexes = []Index{
	{Collection: CollectionTeams, Keys: bson.D{{Key: "name", Value: 1}}, Unique: true},
	{Collection: CollectionTeams, Keys: bson.D{{Key: "ownerId", Value: 1}}},
	{Collection: CollectionMemberships, Keys: bson.D{{Key: "teamId", Value: 1}, {Key: "userId", Value: 1}}, Unique: true},
	{Collection: CollectionMemberships, Keys: bson.D{{Key: "userId", Value: 1}}},
	{Collection: CollectionUsers, Keys: bson.D{{Key: "email", Value: 1}}, Unique: true},
	{Collection: CollectionActivity, Keys: bson.D{{Key: "entityId", Value: 1}, {Key: "createdAt", Value: -1}}},
	{Collection: CollectionActivity, Keys: bson.D{{Key: "createdAt", Value: -1}}},
	{Collection: CollectionNotifications, Keys: bson.D{{Key: "recipientId", Value: 1}, {Key: "createdAt", Value: -1}}},
}

// ProjectIndexes are the indexes of the Project Service database.
var ProjectIndexes = []Index{
	{Collection: CollectionProjects, Keys: bson.D{{Key: "teamId", Value: 1}, {Key: "createdAt", Value: -1}}},
}

// TaskIndexes are the indexes of the Task Service database.
var TaskIndexes = []Index{
	{Collection: CollectionTasks, Keys: bson.D{{Key: "projectId", Value: 1}, {Key: "name", Value: 1}}, Unique: true},
	{Collection: CollectionTasks, Keys: bson.D{{Key: "assignedTo", Value: 1}, {Key: "projectId", Value: 1}}},
	{Collection: CollectionTasks, Keys: bson.D{{Key: "assignedTo", Value: 1}, {Key: "teamId", Value: 1}}},
	{Collection: CollectionComments, Keys: bson.D{{Key: "taskId", Value: 1}, {Key: "createdAt", Value: 1}}},
	{Collection: CollectionComments, Keys: bson.D{{Key: "projectId", Value: 1}}},
}

// IndexesFor returns the index set of a service database by service name.
func IndexesFor(service string) ([]Index, error) {
	switch service {
	case "team-service":
		return TeamIndexes, nil
	case "project-service":
		return ProjectIndexes, nil
	case "task-service":
		return TaskIndexes, nil
	}
	return nil, fmt.Errorf("unknown service %q", service)
}

// EnsureIndexes creates the given indexes. Creating an existing index is a no-op.
func EnsureIndexes(ctx context.Context, db *mongo.Database, indexes []Index) ([]string, error) {
	names := make([]string, 0, len(indexes))
	for _, idx := range indexes {
		model := mongo.IndexModel{Keys: idx.Keys}
		if idx.Unique {
			model.Options = options.Index().SetUnique(true)
		}

		name, err := db.Collection(idx.Collection).Indexes().CreateOne(ctx, model)
		if err != nil {
			return names, fmt.Errorf("create index on %s: %w", idx.Collection, err)
		}
		names = append(names, idx.Collection+"."+name)
	}
	return names, nil
}
