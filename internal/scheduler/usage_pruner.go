package scheduler

import (
	"context"
	"time"

	"github.com/MrSnakeDoc/navsite/internal/index"
	"github.com/MrSnakeDoc/navsite/internal/logger"
	redisstore "github.com/MrSnakeDoc/navsite/internal/store/redis"
)

const (
	// DefaultPruneGrace is how long a counter survives after its site
	// disappeared from the document, so an accidental removal followed by
	// a re-import keeps the history.
	DefaultPruneGrace = 30 * 24 * time.Hour // 30 days
)

// UsagePruner deletes click counters of sites that are no longer served.
type UsagePruner struct {
	store    *redisstore.Store
	index    *index.MemoryIndex
	logger   logger.Logger
	interval time.Duration
	grace    time.Duration
	now      func() time.Time
	missing  map[string]time.Time // site ID -> first seen missing
	stopCh   chan struct{}
}

// NewUsagePruner creates a new pruner. store may be nil.
func NewUsagePruner(
	store *redisstore.Store,
	idx *index.MemoryIndex,
	log logger.Logger,
	interval time.Duration,
	grace time.Duration,
) *UsagePruner {
	if grace == 0 {
		grace = DefaultPruneGrace
	}

	return &UsagePruner{
		store:    store,
		index:    idx,
		logger:   log,
		interval: interval,
		grace:    grace,
		now:      time.Now,
		missing:  make(map[string]time.Time),
		stopCh:   make(chan struct{}),
	}
}

// Start begins the periodic pruning process
func (p *UsagePruner) Start(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				p.Prune(ctx)
			case <-p.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop stops the pruner
func (p *UsagePruner) Stop() {
	close(p.stopCh)
}

// Prune removes counters whose site has been missing for longer than the
// grace period. It returns the number of counters deleted. Not safe for
// concurrent use; the ticker goroutine is its only caller in production.
func (p *UsagePruner) Prune(ctx context.Context) int {
	now := p.now()
	deleted := 0

	for id := range p.index.Counters() {
		if p.index.HasSite(id) {
			delete(p.missing, id)
			continue
		}

		since, seen := p.missing[id]
		if !seen {
			p.missing[id] = now
			continue
		}
		if now.Sub(since) < p.grace {
			continue
		}

		p.index.DeleteCounter(id)
		delete(p.missing, id)

		if p.store != nil {
			if err := p.store.DeleteUsage(ctx, id); err != nil {
				p.logger.Warn("failed to delete counter from redis",
					logger.String("site_id", id),
					logger.Error(err))
			}
		}

		p.logger.Info("pruned click counter of removed site",
			logger.String("site_id", id),
			logger.String("missing_for", now.Sub(since).String()))
		deleted++
	}

	if deleted > 0 {
		p.logger.Info("usage pruning completed", logger.Int("deleted", deleted))
	} else {
		p.logger.Debug("no counters to prune")
	}

	return deleted
}
