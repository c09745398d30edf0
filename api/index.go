package handler

import (
	"net/http"

	"github.com/wadjakorntonsri/landing-console/pkg/app"
	"github.com/wadjakorntonsri/landing-console/pkg/config"
	"github.com/wadjakorntonsri/landing-console/pkg/observe"
)

var mux http.Handler

func init() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	logger := observe.InitLogger(cfg.LogLevel)
	observe.Register()

	// On Vercel the local SQLite file is ephemeral; configure REMOTE_DATABASE_URL
	// so edits survive cold starts. Auto-sync is not started, each request
	// refreshes through the throttled GetConfig instead.
	console, err := app.New(cfg, logger)
	if err != nil {
		panic(err)
	}
	mux = console.Handler()
}

// Handler is the entrypoint for Vercel
func Handler(w http.ResponseWriter, r *http.Request) {
	mux.ServeHTTP(w, r)
}
