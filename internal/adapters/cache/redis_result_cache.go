package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"fleet-sim-service/internal/domain"
	"fleet-sim-service/internal/platform/obs"

	"github.com/redis/go-redis/v9"
)

const latestResultKey = "simulation:latest"

// NewClient connects to Redis and verifies the connection.
func NewClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis client: parse url: %w", err)
	}

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis client: verify connection: %w", err)
	}

	return client, nil
}

// Redis-backed implementation of the ResultCache port. The latest
// report is stored JSON-encoded under a single key with a TTL, so a
// stale dashboard entry ages out on its own.
type RedisResultCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisResultCache(client *redis.Client, ttl time.Duration) *RedisResultCache {
	return &RedisResultCache{Client: client, TTL: ttl}
}

func (c *RedisResultCache) SetLatest(ctx context.Context, res *domain.SimulationResult) (err error) {
	defer obs.Time(ctx, "cache.SetLatest")(&err)

	if c.Client == nil {
		return errors.New("result cache: client is nil")
	}

	payload, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("result cache: marshal result: %w", err)
	}

	if err := c.Client.Set(ctx, latestResultKey, payload, c.TTL).Err(); err != nil {
		return fmt.Errorf("result cache: set latest: %w", err)
	}

	return nil
}

// Latest returns (nil, nil) when no result is cached.
func (c *RedisResultCache) Latest(ctx context.Context) (*domain.SimulationResult, error) {
	if c.Client == nil {
		return nil, errors.New("result cache: client is nil")
	}

	payload, err := c.Client.Get(ctx, latestResultKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("result cache: get latest: %w", err)
	}

	var res domain.SimulationResult
	if err := json.Unmarshal(payload, &res); err != nil {
		return nil, fmt.Errorf("result cache: decode latest: %w", err)
	}

	return &res, nil
}
