package repository

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// One mongod serves the whole package; every test gets its own database.
var shared struct {
	once      sync.Once
	container *mongodb.MongoDBContainer
	client    *mongo.Client
	err       error
}

func TestMain(m *testing.M) {
	code := m.Run()

	ctx := context.Background()
	if shared.client != nil {
		_ = shared.client.Disconnect(ctx)
	}
	if shared.container != nil {
		_ = shared.container.Terminate(ctx)
	}
	os.Exit(code)
}

func sharedClient(t *testing.T) *mongo.Client {
	t.Helper()

	if testing.Short() {
		t.Skip("repository tests need docker")
	}

	shared.once.Do(func() {
		ctx := context.Background()

		container, err := mongodb.Run(ctx, "mongo:7.0")
		if err != nil {
			shared.err = fmt.Errorf("start mongo container: %w", err)
			return
		}
		shared.container = container

		uri, err := container.ConnectionString(ctx)
		if err != nil {
			shared.err = fmt.Errorf("mongo connection string: %w", err)
			return
		}
		client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
		if err != nil {
			shared.err = fmt.Errorf("connect mongo: %w", err)
			return
		}
		shared.client = client
		shared.err = client.Ping(ctx, nil)
	})
	require.NoError(t, shared.err)
	return shared.client
}

// TestDB is a database private to one test, carrying every service's indexes.
type TestDB struct {
	Database *mongo.Database
}

func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()
	db := sharedClient(t).Database(databaseName(t))

	for _, set := range [][]Index{TeamIndexes, ProjectIndexes, TaskIndexes} {
		_, err := EnsureIndexes(ctx, db, set)
		require.NoError(t, err)
	}
	return &TestDB{Database: db}
}

// databaseName stays under mongod's 63 byte limit and avoids '/' from subtests.
func databaseName(t *testing.T) string {
	name := strings.NewReplacer("/", "_", " ", "_", ".", "_").Replace(t.Name())
	if len(name) > 50 {
		name = name[:50]
	}
	return "repo_" + name
}

func (tdb *TestDB) Cleanup(t *testing.T) {
	t.Helper()
	_ = tdb.Database.Drop(context.Background())
}

// ClearCollection empties a collection and keeps its indexes.
func (tdb *TestDB) ClearCollection(t *testing.T, name string) {
	t.Helper()

	_, err := tdb.Database.Collection(name).DeleteMany(context.Background(), bson.M{})
	require.NoError(t, err, "clear %s", name)
}
