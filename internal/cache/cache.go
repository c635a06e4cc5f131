// Package cache holds the rendered-page cache that fronts the public site.
// Mutating handlers invalidate the routes they touch; the next read
// recomputes and repopulates.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultTTL = time.Hour

// Cache wraps a Redis client and stores JSON payloads keyed by public route.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache constructs a Cache with a 1-hour TTL.
func NewCache(client *redis.Client) *Cache {
	return &Cache{client: client, ttl: defaultTTL}
}

// key returns the Redis key for the given route.
func key(route string) string {
	return "page:" + strings.TrimPrefix(route, "/")
}

// GetPage retrieves the cached payload for route.
// Returns nil, nil on a cache miss (not an error).
func (c *Cache) GetPage(ctx context.Context, route string) (json.RawMessage, error) {
	val, err := c.client.Get(ctx, key(route)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("cache get for route %s: %w", route, err)
	}
	return val, nil
}

// SetPage stores payload for route with the configured TTL.
func (c *Cache) SetPage(ctx context.Context, route string, payload any) error {
	b, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling payload for route %s: %w", route, err)
	}

	if err := c.client.Set(ctx, key(route), b, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set for route %s: %w", route, err)
	}
	return nil
}

// Invalidate removes the cached payloads for the given routes.
func (c *Cache) Invalidate(ctx context.Context, routes ...string) error {
	if len(routes) == 0 {
		return nil
	}

	keys := make([]string, len(routes))
	for i, r := range routes {
		keys[i] = key(r)
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("cache invalidate %v: %w", routes, err)
	}
	return nil
}
