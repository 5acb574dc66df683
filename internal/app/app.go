package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MrSnakeDoc/navsite/internal/config"
	"github.com/MrSnakeDoc/navsite/internal/httpserver"
	"github.com/MrSnakeDoc/navsite/internal/httpserver/deps"
	"github.com/MrSnakeDoc/navsite/internal/icons"
	"github.com/MrSnakeDoc/navsite/internal/index"
	"github.com/MrSnakeDoc/navsite/internal/logger"
	"github.com/MrSnakeDoc/navsite/internal/redis"
	"github.com/MrSnakeDoc/navsite/internal/scheduler"
	redisstore "github.com/MrSnakeDoc/navsite/internal/store/redis"
	"github.com/MrSnakeDoc/navsite/internal/utils"
	"github.com/MrSnakeDoc/navsite/internal/version"
)

type App struct {
	cfg      *config.Config
	logger   logger.Logger
	server   *httpserver.Server
	store    *redisstore.Store
	memIndex *index.MemoryIndex
	reloader *scheduler.DocumentReloader
	pruner   *scheduler.UsagePruner
}

// New wires the serving side. Redis is optional: without an address, or when
// it cannot be reached in time, click counters live in memory only.
func New(ctx context.Context, cfg *config.Config, loggerClient logger.Logger) (*App, error) {
	engines, err := config.LoadEngines(cfg.EnginesFile)
	if err != nil {
		return nil, err
	}

	manifest := icons.EmptyManifest()
	if cfg.AssetDir != "" {
		manifest, err = icons.BuildManifest(cfg.AssetDir, "/asset")
		if err != nil {
			return nil, fmt.Errorf("failed to scan asset dir: %w", err)
		}
		loggerClient.Info("asset manifest built",
			logger.String("dir", cfg.AssetDir), logger.Int("files", manifest.Len()))
	}

	memIndex := index.NewMemoryIndex()
	store := connectStore(ctx, cfg, loggerClient)

	if store != nil {
		syncer := scheduler.NewRedisSyncer(store, memIndex, loggerClient)
		if err := syncer.Sync(ctx); err != nil {
			loggerClient.Warn("failed to restore counters from redis, starting from zero",
				logger.Error(err))
		}
	}

	// Create manual reload trigger channel
	reloadTrigger := make(chan struct{}, 1)

	reloader := scheduler.NewDocumentReloader(
		cfg.SitesFile,
		store,
		memIndex,
		loggerClient,
		cfg.ReloadInterval,
		reloadTrigger,
	)

	pruner := scheduler.NewUsagePruner(
		store,
		memIndex,
		loggerClient,
		cfg.PruneInterval,
		cfg.PruneGrace,
	)

	d := deps.Deps{
		Logger:        loggerClient,
		StartTime:     time.Now(),
		Version:       version.Version,
		Commit:        version.Commit,
		BuildDate:     version.BuildDate,
		GoVersion:     version.GoVersion,
		TimeNow:       time.Now,
		AllowedHosts:  cfg.AllowedHosts,
		AllowedCIDRS:  cfg.AllowedCIDRS,
		TrustProxy:    cfg.TrustProxy,
		CORSOrigins:   cfg.CORSOrigins,
		SitesFile:     cfg.SitesFile,
		Store:         store,
		MemoryIndex:   memIndex,
		Engines:       engines,
		Icons:         manifest,
		StaticDir:     cfg.StaticDir,
		AssetDir:      cfg.AssetDir,
		CacheTTL:      cfg.CacheTTL,
		RateBurst:     cfg.RateBurst,
		RatePerMin:    cfg.RatePerMin,
		ReloadTrigger: reloadTrigger,
	}

	return &App{
		cfg:      cfg,
		logger:   loggerClient,
		server:   httpserver.New(cfg, loggerClient, d),
		store:    store,
		memIndex: memIndex,
		reloader: reloader,
		pruner:   pruner,
	}, nil
}

func connectStore(ctx context.Context, cfg *config.Config, loggerClient logger.Logger) *redisstore.Store {
	if !cfg.RedisEnabled() {
		loggerClient.Info("redis not configured, click counters kept in memory only")
		return nil
	}

	loggerClient.Infof("Connecting to Redis at %s", cfg.RedisAddr)
	client, err := redis.New(ctx, redis.ConnectOptions{
		Addr:           cfg.RedisAddr,
		User:           cfg.RedisUser,
		Password:       cfg.RedisPassword,
		DB:             cfg.RedisDB,
		DialTimeout:    cfg.RedisDT,
		ReadTimeout:    cfg.RedisRT,
		WriteTimeout:   cfg.RedisWT,
		PoolSize:       cfg.RedisPoolSize,
		ConnectTimeout: cfg.RedisConnectTimeout,
		RetryInterval:  cfg.RedisRetryInterval,
		MaxWait:        cfg.RedisMaxWait,
		PingTimeout:    cfg.RedisPingTimeout,
		WarnThreshold:  cfg.RedisWarnThreshold,
	}, loggerClient)
	if err != nil {
		loggerClient.Warn("redis unavailable, running degraded (in-memory counters)",
			logger.Error(err))
		return nil
	}

	loggerClient.Info("Redis initialized successfully")
	return redisstore.NewStore(client)
}

func (a *App) Run(ctx context.Context) error {
	a.logger.Infof("🚀 Starting navsite v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("navsite %s", version.String())

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Loads sites.json and starts periodic refresh
	if err := a.reloader.Start(ctx); err != nil {
		return fmt.Errorf("failed to start document reloader: %w", err)
	}
	a.logger.Info("document reloader started",
		logger.Duration("interval", a.cfg.ReloadInterval))

	a.pruner.Start(ctx)
	a.logger.Info("usage pruner started",
		logger.Duration("interval", a.cfg.PruneInterval),
		logger.Duration("grace", a.cfg.PruneGrace))

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		a.reloader.Stop()
		a.pruner.Stop()
		return err
	}

	a.reloader.Stop()
	a.pruner.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	if a.store != nil {
		utils.CloseLogged(a.store, "redis", a.logger)
	}

	a.logger.Info("✅ navsite stopped cleanly")
	return nil
}
