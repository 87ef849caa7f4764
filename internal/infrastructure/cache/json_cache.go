package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// JSONCache stores values of T as JSON strings with a fixed TTL.
type JSONCache[T any] struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewJSONCache[T any](rdb *redis.Client, ttl time.Duration) *JSONCache[T] {
	return &JSONCache[T]{rdb: rdb, ttl: ttl}
}

// Get returns (nil, nil) on a miss.
func (c *JSONCache[T]) Get(ctx context.Context, key string) (*T, error) {
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		// a stale shape is a miss
		return nil, nil
	}
	return &v, nil
}

func (c *JSONCache[T]) Set(ctx context.Context, key string, v *T) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, key, payload, c.ttl).Err()
}
