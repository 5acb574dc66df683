package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// IncrementUsage adds one click to a site and returns the stored total.
func (s *Store) IncrementUsage(ctx context.Context, siteID string) (int64, error) {
	pipe := s.client.TxPipeline()
	incr := pipe.Incr(ctx, ClicksKey(siteID))
	pipe.SAdd(ctx, AllClicksKey(), siteID)

	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("failed to increment usage: %w", err)
	}
	return incr.Val(), nil
}

// GetUsage returns the clicks of one site, 0 when never clicked.
func (s *Store) GetUsage(ctx context.Context, siteID string) (int64, error) {
	n, err := s.client.Get(ctx, ClicksKey(siteID)).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get usage: %w", err)
	}
	return n, nil
}

// GetUsageStats retrieves click counters for all sites
func (s *Store) GetUsageStats(ctx context.Context) (map[string]int64, error) {
	ids, err := s.client.SMembers(ctx, AllClicksKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get counted site IDs: %w", err)
	}

	stats := make(map[string]int64, len(ids))
	if len(ids) == 0 {
		return stats, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = ClicksKey(id)
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get usage stats: %w", err)
	}

	for i, v := range values {
		str, ok := v.(string)
		if !ok {
			// Counter expired or deleted while still in the set
			continue
		}
		n, err := strconv.ParseInt(str, 10, 64)
		if err != nil {
			continue
		}
		stats[ids[i]] = n
	}

	return stats, nil
}

// DeleteUsage removes a site's counter
func (s *Store) DeleteUsage(ctx context.Context, siteID string) error {
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, ClicksKey(siteID))
	pipe.SRem(ctx, AllClicksKey(), siteID)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete usage: %w", err)
	}
	return nil
}
