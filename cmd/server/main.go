package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/wadjakorntonsri/landing-console/pkg/app"
	"github.com/wadjakorntonsri/landing-console/pkg/config"
	"github.com/wadjakorntonsri/landing-console/pkg/observe"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logger := observe.InitLogger(cfg.LogLevel)
	observe.Register()

	console, err := app.New(cfg, logger)
	if err != nil {
		log.Fatalf("Failed to initialise storage: %v", err)
	}
	defer console.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Prime the local cache from remote before serving
	console.Sync.GetConfig(ctx)
	if err := console.Sync.StartAutoSync(ctx); err != nil {
		console.Close()
		log.Fatalf("Failed to start auto-sync: %v", err)
	}

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      console.Handler(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 20 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown failed", "error", err)
		}
	}()

	logger.Info("server starting", "port", cfg.Port, "remote", console.Sync.RemoteAvailable())
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		console.Close()
		log.Fatal(err)
	}
	logger.Info("server stopped")
}
