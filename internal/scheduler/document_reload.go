package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MrSnakeDoc/navsite/internal/index"
	"github.com/MrSnakeDoc/navsite/internal/logger"
	redisstore "github.com/MrSnakeDoc/navsite/internal/store/redis"
	"github.com/MrSnakeDoc/navsite/internal/store/sitesfile"
)

// DocumentReloader handles periodic reloading of sites.json
type DocumentReloader struct {
	path          string
	store         *redisstore.Store
	index         *index.MemoryIndex
	logger        logger.Logger
	interval      time.Duration
	stopCh        chan struct{}
	manualTrigger chan struct{}
}

// NewDocumentReloader creates a new document reloader. store may be nil.
func NewDocumentReloader(
	sitesFile string,
	store *redisstore.Store,
	idx *index.MemoryIndex,
	log logger.Logger,
	interval time.Duration,
	manualTrigger chan struct{},
) *DocumentReloader {
	return &DocumentReloader{
		path:          sitesFile,
		store:         store,
		index:         idx,
		logger:        log,
		interval:      interval,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start loads the document once, then reloads it on every tick and manual
// trigger. A missing file at start is served as an empty document; a
// malformed one is an error.
func (dr *DocumentReloader) Start(ctx context.Context) error {
	if err := dr.Reload(ctx); err != nil {
		if !errors.Is(err, sitesfile.ErrNotFound) {
			return fmt.Errorf("initial document load failed: %w", err)
		}
		dr.logger.Warn("sites file not found, serving an empty document",
			logger.String("path", dr.path))
	}

	ticker := time.NewTicker(dr.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				dr.reloadAndLog(ctx)
			case <-dr.manualTrigger:
				dr.logger.Info("manual reload triggered")
				dr.reloadAndLog(ctx)
			case <-dr.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the reloader
func (dr *DocumentReloader) Stop() {
	close(dr.stopCh)
}

func (dr *DocumentReloader) reloadAndLog(ctx context.Context) {
	if err := dr.Reload(ctx); err != nil {
		dr.logger.Error("failed to reload sites file, keeping previous document",
			logger.String("path", dr.path),
			logger.Error(err))
	}
}

// Reload reads sites.json and swaps it into the index. On error the
// previously served document is left in place.
func (dr *DocumentReloader) Reload(ctx context.Context) error {
	doc, err := sitesfile.Load(dr.path)
	if err != nil {
		return err
	}

	dr.index.UpdateDocument(doc)

	dr.logger.Info("loaded sites file",
		logger.String("path", dr.path),
		logger.Int("categories", len(doc.Categories)),
		logger.Int("sites", doc.SiteCount()))

	// Cached resolutions may point at sites that are gone (best effort)
	if dr.store != nil {
		if err := dr.store.FlushCache(ctx); err != nil {
			dr.logger.Warn("failed to flush jump cache", logger.Error(err))
		}
	}

	return nil
}
