//go:build api

// Package testdb starts the MongoDB and Redis containers behind the API
// suite.
package testdb

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoContainer is one mongod holding a database per service, the same
// layout as a real deployment.
type MongoContainer struct {
	container *mongodb.MongoDBContainer
	Client    *mongo.Client

	mu        sync.Mutex
	databases map[string]*mongo.Database
}

func SetupMongoDB(ctx context.Context) (*MongoContainer, error) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	container, err := mongodb.Run(ctx, "mongo:7")
	if err != nil {
		return nil, fmt.Errorf("start mongo: %w", err)
	}

	fail := func(step string, err error) (*MongoContainer, error) {
		_ = container.Terminate(ctx)
		return nil, fmt.Errorf("%s: %w", step, err)
	}

	uri, err := container.ConnectionString(ctx)
	if err != nil {
		return fail("mongo connection string", err)
	}
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return fail("connect mongo", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return fail("ping mongo", err)
	}

	return &MongoContainer{
		container: container,
		Client:    client,
		databases: map[string]*mongo.Database{},
	}, nil
}

// Database hands out a service database and remembers it for
// CleanupCollections.
func (mc *MongoContainer) Database(name string) *mongo.Database {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	if db, ok := mc.databases[name]; ok {
		return db
	}
	db := mc.Client.Database(name)
	mc.databases[name] = db
	return db
}

// CleanupCollections deletes every document of every handed-out database.
// Collections stay so their indexes keep enforcing uniqueness.
func (mc *MongoContainer) CleanupCollections(ctx context.Context) error {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	for name, db := range mc.databases {
		collections, err := db.ListCollectionNames(ctx, bson.M{})
		if err != nil {
			return fmt.Errorf("list %s: %w", name, err)
		}
		for _, coll := range collections {
			if _, err := db.Collection(coll).DeleteMany(ctx, bson.M{}); err != nil {
				return fmt.Errorf("clear %s.%s: %w", name, coll, err)
			}
		}
	}
	return nil
}

func (mc *MongoContainer) Cleanup(ctx context.Context) error {
	_ = mc.Client.Disconnect(ctx)
	return mc.container.Terminate(ctx)
}
