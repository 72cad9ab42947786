package recent

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"
)

// RedisStore implements Store on Redis, encoding lists as JSON text.
type RedisStore struct {
	rdb *redis.Client
}

// NewRedisStore constructs a RedisStore.
func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

// Load reads and decodes a recency list. A missing key is a miss, not an
// error: (nil, nil).
func (s *RedisStore) Load(ctx context.Context, key string) ([]string, error) {
	raw, err := s.rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var keys []string
	if err := json.Unmarshal([]byte(raw), &keys); err != nil {
		return nil, err
	}
	return keys, nil
}

// Save encodes and writes a recency list.
func (s *RedisStore) Save(ctx context.Context, key string, keys []string) error {
	raw, err := json.Marshal(keys)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, key, raw, 0).Err()
}
