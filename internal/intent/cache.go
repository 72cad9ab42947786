package intent

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

// Cache persists the last known application id per (user, selection key)
// pair in Redis. All operations are best-effort: storage failures are
// logged and swallowed so the UI degrades to "no cached value" rather than
// crashing, but Load's error return keeps the miss/error distinction
// visible to callers that want to log it.
type Cache struct {
	rdb    *redis.Client
	logger *slog.Logger
}

// NewCache constructs a Cache.
func NewCache(rdb *redis.Client, logger *slog.Logger) *Cache {
	return &Cache{rdb: rdb, logger: logger}
}

func cacheKey(userID, selectionKey string) string {
	return fmt.Sprintf("applicationId:%s:%s", userID, selectionKey)
}

// Save stores applicationID for the pair, best-effort.
func (c *Cache) Save(ctx context.Context, userID, selectionKey, applicationID string) {
	if userID == "" || selectionKey == "" || applicationID == "" {
		return
	}
	if err := c.rdb.Set(ctx, cacheKey(userID, selectionKey), applicationID, 0).Err(); err != nil {
		c.logger.Warn("application intent write failed",
			"userId", userID, "selection", selectionKey, "err", err)
	}
}

// Load returns the cached application id, or "" when either argument is
// absent, no entry exists, or the storage read fails. The error is non-nil
// only for genuine storage failures — a miss is ("", nil).
func (c *Cache) Load(ctx context.Context, userID, selectionKey string) (string, error) {
	if userID == "" || selectionKey == "" {
		return "", nil
	}
	id, err := c.rdb.Get(ctx, cacheKey(userID, selectionKey)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return id, nil
}

// Clear removes the entry, best-effort.
func (c *Cache) Clear(ctx context.Context, userID, selectionKey string) {
	if userID == "" || selectionKey == "" {
		return
	}
	if err := c.rdb.Del(ctx, cacheKey(userID, selectionKey)).Err(); err != nil {
		c.logger.Warn("application intent delete failed",
			"userId", userID, "selection", selectionKey, "err", err)
	}
}
