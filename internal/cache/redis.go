package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const dialTimeout = 5 * time.Second

// Redis is the Cache backed by a go-redis client.
type Redis struct {
	client *redis.Client
	log    *slog.Logger
}

// NewRedis connects to uri, which is either host:port or a redis:// or
// rediss:// URL carrying credentials and a database number.
func NewRedis(uri string, log *slog.Logger) (*Redis, error) {
	opt, err := parseRedisURI(uri)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), dialTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis at %s: %w", opt.Addr, err)
	}

	log.Info("connected to redis", "addr", opt.Addr, "db", opt.DB)
	return &Redis{client: client, log: log}, nil
}

func parseRedisURI(uri string) (*redis.Options, error) {
	if !strings.Contains(uri, "://") {
		uri = "redis://" + uri
	}
	opt, err := redis.ParseURL(uri)
	if err != nil {
		return nil, fmt.Errorf("parse redis uri: %w", err)
	}
	return opt, nil
}

// NewRedisFromClient wraps a client whose lifecycle the caller owns.
func NewRedisFromClient(client *redis.Client, log *slog.Logger) *Redis {
	return &Redis{client: client, log: log}
}

func (r *Redis) Close() {
	if err := r.client.Close(); err != nil {
		r.log.Error("closing redis", "error", err)
		return
	}
	r.log.Info("disconnected from redis")
}

// Ping backs the readiness check.
func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Set stores value as JSON. A zero ttl keeps the key until deleted.
func (r *Redis) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return r.client.Set(ctx, key, data, ttl).Err()
}

func (r *Redis) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, err := r.client.Get(ctx, key).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		return false, nil
	case err != nil:
		return false, err
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

func (r *Redis) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}

func (r *Redis) Incr(ctx context.Context, key string) (int64, error) {
	return r.client.Incr(ctx, key).Result()
}

var raiseScript = redis.NewScript(`
local current = tonumber(redis.call("GET", KEYS[1]) or "0")
local floor = tonumber(ARGV[1])
if current < floor then
	redis.call("SET", KEYS[1], floor)
	return 1
end
return 0
`)

func (r *Redis) RaiseTo(ctx context.Context, key string, floor int64) (bool, error) {
	raised, err := raiseScript.Run(ctx, r.client, []string{key}, floor).Int64()
	if err != nil {
		return false, err
	}
	return raised == 1, nil
}
