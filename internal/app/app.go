package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/adbrdt/folio/internal/config"
	"github.com/adbrdt/folio/internal/domain"
	"github.com/adbrdt/folio/internal/httpserver"
	"github.com/adbrdt/folio/internal/httpserver/deps"
	"github.com/adbrdt/folio/internal/logger"
	"github.com/adbrdt/folio/internal/redis"
	"github.com/adbrdt/folio/internal/resource"
	"github.com/adbrdt/folio/internal/sources/seed"
	"github.com/adbrdt/folio/internal/store"
	"github.com/adbrdt/folio/internal/store/memory"
	redisstore "github.com/adbrdt/folio/internal/store/redis"
	"github.com/adbrdt/folio/internal/version"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	recordStore store.Store
}

func New() *App {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	recordStore := openStore(cfg, loggerClient)

	timeline := resource.NewClient(domain.Timeline(), recordStore, loggerClient)
	career := resource.NewClient(domain.Career(), recordStore, loggerClient)
	posts := resource.NewClient(domain.Posts(), recordStore, loggerClient)

	if cfg.SeedFile != "" {
		loggerClient.Info("seed file configured", logger.String("file", cfg.SeedFile))
		importer := seed.NewImporter(cfg.SeedFile, loggerClient)
		if err := importer.Run(context.Background(), timeline, career, posts); err != nil {
			loggerClient.Errorf("Failed to seed content: %v", err)
			os.Exit(1)
		}
	}

	// Dependencies passed to routes (extend as needed).
	d := deps.Deps{
		Logger:      loggerClient,
		StartTime:   time.Now(),
		Version:     version.Version,
		Commit:      version.Commit,
		BuildDate:   version.BuildDate,
		GoVersion:   version.GoVersion,
		TimeNow:     time.Now,
		AdminSecret: cfg.AdminPassword,
		Store:       recordStore,
		Timeline:    timeline,
		Career:      career,
		Posts:       posts,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      server,
		recordStore: recordStore,
	}
}

// openStore builds the record store for the configured driver. Closing the
// store also closes the underlying redis client when one is in play.
func openStore(cfg *config.Config, loggerClient logger.Logger) store.Store {
	if cfg.StoreDriver == "memory" {
		loggerClient.Warn("using in-memory store, content will not survive restarts")
		return memory.New()
	}

	// Fail fast if Redis is unavailable.
	loggerClient.Infof("Connecting to Redis at %s", cfg.RedisAddr)
	redisClient, err := redis.New(redis.ConnectOptions{
		Addr:           cfg.RedisAddr,
		User:           cfg.RedisUser,
		Password:       cfg.RedisPassword,
		RedisDB:        cfg.RedisDB,
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
		loggerClient.Errorf("Failed to connect to Redis: %v", err)
		os.Exit(1)
	}
	loggerClient.Info("Redis initialized successfully")

	// Only career and posts carry a numeric rank the store can index; the
	// timeline sorts on a date string, so its reads take the client-side
	// sort path.
	indexed := map[string]string{
		domain.Career().Collection: "order",
		domain.Posts().Collection:  "order",
	}
	return redisstore.New(redisClient, indexed)
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting Folio v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("Folio %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

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
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	if err := a.recordStore.Close(); err != nil {
		a.logger.Warnf("failed to close store: %v", err)
	} else {
		a.logger.Info("✅ Store closed cleanly")
	}

	a.logger.Info("✅ Folio stopped cleanly")
	return nil
}
