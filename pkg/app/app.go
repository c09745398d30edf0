// Package app wires storage, services and the HTTP router from a Config.
// The server, the CLI and the serverless entrypoint all start here.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/wadjakorntonsri/landing-console/pkg/adapters/handler"
	"github.com/wadjakorntonsri/landing-console/pkg/adapters/repository/rediscache"
	"github.com/wadjakorntonsri/landing-console/pkg/adapters/repository/sqlite"
	"github.com/wadjakorntonsri/landing-console/pkg/config"
	"github.com/wadjakorntonsri/landing-console/pkg/core/color"
	"github.com/wadjakorntonsri/landing-console/pkg/core/services"
	"github.com/wadjakorntonsri/landing-console/pkg/ports"
)

type App struct {
	Config *config.Config
	Logger *slog.Logger
	Sync   *services.SyncService
	Editor *services.EditorService
	Colors *color.Extractor

	closers []io.Closer
}

// New opens the local cache and, when configured, the remote store. A remote
// that cannot be reached at startup leaves the console in local-only mode.
func New(cfg *config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}
	a := &App{Config: cfg, Logger: logger}

	local, err := a.openLocal()
	if err != nil {
		return nil, err
	}

	var remote ports.RemoteStore
	if cfg.RemoteAvailable() {
		repo, err := sqlite.NewRemoteRepository(sqlite.RemoteDSN(cfg.RemoteDatabaseURL, cfg.RemoteAuthToken))
		if err != nil {
			logger.Error("remote store unreachable, running local-only", "error", err)
		} else {
			a.closers = append(a.closers, repo)
			remote = repo
		}
	} else {
		logger.Info("remote store not configured, running local-only")
	}

	a.Sync = services.NewSyncService(local, remote, services.SyncOptions{
		ConfigID:       cfg.ConfigID,
		ThrottleWindow: cfg.ThrottleWindow,
		SyncInterval:   cfg.SyncInterval,
		Logger:         logger,
	})
	a.Colors = color.NewExtractor(logger)
	a.Editor = services.NewEditorService(a.Sync, remote, a.Colors, logger)
	return a, nil
}

func (a *App) openLocal() (ports.LocalCache, error) {
	if a.Config.UseRedisCache() {
		opts := rediscache.DefaultOptions()
		opts.URL = a.Config.RedisURL
		opts.Prefix = a.Config.RedisPrefix
		store, err := rediscache.NewLocalStore(opts, a.Logger)
		if err != nil {
			return nil, fmt.Errorf("opening redis cache: %w", err)
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := store.Ping(ctx); err != nil {
			store.Close()
			return nil, fmt.Errorf("connecting to redis: %w", err)
		}
		a.closers = append(a.closers, store)
		a.Logger.Info("local cache on redis", "prefix", opts.Prefix)
		return store, nil
	}

	store, err := sqlite.NewLocalStore(a.Config.LocalDatabaseURL, a.Logger)
	if err != nil {
		return nil, fmt.Errorf("opening local cache: %w", err)
	}
	a.closers = append(a.closers, store)
	return store, nil
}

func (a *App) Handler() http.Handler {
	return handler.NewRouter(a.Config, a.Sync, a.Editor, a.Colors, a.Logger)
}

// Close stops auto-sync and releases the stores
func (a *App) Close() error {
	a.Sync.Stop()
	var first error
	for _, c := range a.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
