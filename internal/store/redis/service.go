package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// DefaultCacheTTL is the default TTL for cached resolutions (24 hours)
	DefaultCacheTTL = 24 * time.Hour
)

// Store persists click counters and the jump cache in Redis.
// The memory index stays the source of truth for the document itself.
type Store struct {
	client redis.UniversalClient
}

// NewStore creates a new Redis store
func NewStore(client redis.UniversalClient) *Store {
	return &Store{
		client: client,
	}
}

// Ping checks that Redis answers.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

// Close releases the underlying client.
func (s *Store) Close() error {
	return s.client.Close()
}
