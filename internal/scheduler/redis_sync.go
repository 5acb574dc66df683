package scheduler

import (
	"context"

	"github.com/MrSnakeDoc/navsite/internal/index"
	"github.com/MrSnakeDoc/navsite/internal/logger"
	redisstore "github.com/MrSnakeDoc/navsite/internal/store/redis"
)

// RedisSyncer restores click counters from Redis into the memory index on startup
type RedisSyncer struct {
	store  *redisstore.Store
	index  *index.MemoryIndex
	logger logger.Logger
}

// NewRedisSyncer creates a new Redis syncer
func NewRedisSyncer(
	store *redisstore.Store,
	idx *index.MemoryIndex,
	log logger.Logger,
) *RedisSyncer {
	return &RedisSyncer{
		store:  store,
		index:  idx,
		logger: log,
	}
}

// Sync loads counters from Redis and merges them into the memory index
func (rs *RedisSyncer) Sync(ctx context.Context) error {
	rs.logger.Info("restoring click counters from redis")

	stats, err := rs.store.GetUsageStats(ctx)
	if err != nil {
		return err
	}

	if len(stats) == 0 {
		rs.logger.Info("no click counters found in redis")
		return nil
	}

	rs.index.MergeCounters(stats)

	rs.logger.Info("restored click counters from redis",
		logger.Int("count", len(stats)))

	return nil
}
