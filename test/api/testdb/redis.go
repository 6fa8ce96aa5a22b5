//go:build api

package testdb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"teamtrack/internal/cache"
	"teamtrack/internal/logger"

	"github.com/redis/go-redis/v9"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// RedisContainer is the Redis shared by the three services under test. The
// services reach it through Cache; tests inspect keys through Client.
type RedisContainer struct {
	container testcontainers.Container
	Client    *redis.Client
	Cache     *cache.Redis
}

func SetupRedis(ctx context.Context) (*RedisContainer, error) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor: wait.ForAll(
				wait.ForLog("Ready to accept connections"),
				wait.ForListeningPort("6379/tcp"),
			),
		},
		Started: true,
	})
	if err != nil {
		return nil, fmt.Errorf("start redis: %w", err)
	}

	addr, err := container.Endpoint(ctx, "")
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, fmt.Errorf("redis endpoint: %w", err)
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		_ = container.Terminate(ctx)
		return nil, fmt.Errorf("ping redis at %s: %w", addr, err)
	}

	return &RedisContainer{
		container: container,
		Client:    client,
		Cache:     cache.NewRedisFromClient(client, logger.Discard()),
	}, nil
}

// Sequence reads a project's progress version counter; 0 when unset.
func (rc *RedisContainer) Sequence(ctx context.Context, projectID string) (int64, error) {
	n, err := rc.Client.Get(ctx, cache.ProgressSequenceKey(projectID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return n, err
}

func (rc *RedisContainer) FlushDB(ctx context.Context) error {
	return rc.Client.FlushDB(ctx).Err()
}

func (rc *RedisContainer) Cleanup(ctx context.Context) error {
	_ = rc.Client.Close()
	return rc.container.Terminate(ctx)
}
