package redis

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultSuggestionTTL = time.Hour

// SuggestionCache stores generated suggestions in Redis.
// Key format: suggestions:<user_id>:<fnv64a(prompt) hex>
//
// The prompt encodes the user's full habit history, so a new entry changes
// the key and naturally invalidates the previous answer.
type SuggestionCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSuggestionCache wraps the given Redis client. A non-positive ttl falls
// back to one hour.
func NewSuggestionCache(client *redis.Client, ttl time.Duration) *SuggestionCache {
	if ttl <= 0 {
		ttl = defaultSuggestionTTL
	}
	return &SuggestionCache{client: client, ttl: ttl}
}

// Get returns the cached suggestions. A miss is ("", false, nil).
func (c *SuggestionCache) Get(ctx context.Context, userID, prompt string) (string, bool, error) {
	val, err := c.client.Get(ctx, suggestionKey(userID, prompt)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("suggestion cache get: %w", err)
	}
	return val, true, nil
}

// Set stores suggestions until the TTL elapses.
func (c *SuggestionCache) Set(ctx context.Context, userID, prompt, suggestions string) error {
	if err := c.client.Set(ctx, suggestionKey(userID, prompt), suggestions, c.ttl).Err(); err != nil {
		return fmt.Errorf("suggestion cache set: %w", err)
	}
	return nil
}

func suggestionKey(userID, prompt string) string {
	h := fnv.New64a()
	_, _ = h.Write([]byte(prompt))
	return fmt.Sprintf("suggestions:%s:%016x", userID, h.Sum64())
}
