package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// CacheResolution stores a query -> site ID resolution in cache
func (s *Store) CacheResolution(ctx context.Context, query, siteID string, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	key := CacheKey(query)
	if err := s.client.Set(ctx, key, siteID, ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache resolution: %w", err)
	}
	return nil
}

// GetCachedResolution retrieves a cached site ID, "" on a miss
func (s *Store) GetCachedResolution(ctx context.Context, query string) (string, error) {
	key := CacheKey(query)
	siteID, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil // Cache miss
		}
		return "", fmt.Errorf("failed to get cached resolution: %w", err)
	}
	return siteID, nil
}

// InvalidateCache removes a cached resolution
func (s *Store) InvalidateCache(ctx context.Context, query string) error {
	key := CacheKey(query)
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to invalidate cache: %w", err)
	}
	return nil
}

// FlushCache removes all cached resolutions. Called after the document
// changes, since cached site IDs may no longer exist.
func (s *Store) FlushCache(ctx context.Context) error {
	iter := s.client.Scan(ctx, 0, KeyPrefixCache+"*", 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to flush cache: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to delete cache keys: %w", err)
	}
	return nil
}
