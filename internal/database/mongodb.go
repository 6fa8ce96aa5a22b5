// Package database owns the MongoDB connection of a service.
package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	connectTimeout    = 10 * time.Second
	disconnectTimeout = 5 * time.Second
)

// MongoDB is a connected client bound to the service's own database.
type MongoDB struct {
	Client   *mongo.Client
	Database *mongo.Database
	log      *slog.Logger
}

// NewMongoDB connects and waits for the primary before returning, so a
// service never starts against an unreachable database.
func NewMongoDB(uri, dbName string, log *slog.Logger) (*MongoDB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(uri).
		SetServerSelectionTimeout(connectTimeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	log.Info("connected to mongodb", "database", dbName)
	return &MongoDB{Client: client, Database: client.Database(dbName), log: log}, nil
}

func (m *MongoDB) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), disconnectTimeout)
	defer cancel()

	if err := m.Client.Disconnect(ctx); err != nil {
		m.log.Error("disconnecting from mongodb", "error", err)
		return
	}
	m.log.Info("disconnected from mongodb")
}

// Ping backs the readiness check.
func (m *MongoDB) Ping(ctx context.Context) error {
	return m.Client.Ping(ctx, readpref.Primary())
}

func (m *MongoDB) Collection(name string) *mongo.Collection {
	return m.Database.Collection(name)
}
