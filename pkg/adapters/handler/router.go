package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/wadjakorntonsri/landing-console/pkg/config"
	"github.com/wadjakorntonsri/landing-console/pkg/observe"
	"github.com/wadjakorntonsri/landing-console/pkg/ports"
)

// NewRouter creates and configures the main application router
func NewRouter(cfg *config.Config, configService ports.ConfigService, editor ports.EditorService, colors ports.ColorExtractor, logger *slog.Logger) http.Handler {
	h := NewConfigHandler(configService, editor, colors)
	mw := NewMiddleware(cfg)
	authHandler := NewAuthHandler(cfg, func(ctx context.Context) time.Duration {
		return editor.Current(ctx).AdminSettings.SessionDuration()
	}, logger)

	mux := http.NewServeMux()

	// Public Routes
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "ok"})
	})
	mux.Handle("GET /metrics", observe.Handler())
	mux.HandleFunc("GET /api/public/config", h.PublicConfig)
	mux.HandleFunc("GET /api/public/layout", h.PublicLayout)
	mux.HandleFunc("POST /auth/login", authHandler.Login)
	mux.HandleFunc("GET /auth/logout", authHandler.Logout)
	if authHandler.GoogleEnabled() {
		mux.HandleFunc("GET /auth/google/login", authHandler.GoogleLogin)
		mux.HandleFunc("GET /auth/google/callback", authHandler.GoogleCallback)
	}

	// Protected Routes
	protectedMux := http.NewServeMux()
	protectedMux.HandleFunc("GET /api/v1/session", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"user": UserFromContext(r.Context())})
	})

	// Whole configuration
	protectedMux.HandleFunc("GET /api/v1/config", h.Get)
	protectedMux.HandleFunc("PUT /api/v1/config", h.Put)
	protectedMux.HandleFunc("GET /api/v1/config/export", h.Export)
	protectedMux.HandleFunc("POST /api/v1/config/import", h.Import)
	protectedMux.HandleFunc("POST /api/v1/config/reset", h.Reset)
	protectedMux.HandleFunc("POST /api/v1/sync", h.ForceSync)
	protectedMux.HandleFunc("GET /api/v1/sync/status", h.Status)

	// Sections
	protectedMux.HandleFunc("PUT /api/v1/site-config", h.UpdateSiteConfig())
	protectedMux.HandleFunc("PUT /api/v1/theme-colors", h.UpdateThemeColors())
	protectedMux.HandleFunc("DELETE /api/v1/theme-colors", h.ResetThemeColors)
	protectedMux.HandleFunc("PUT /api/v1/categories-control", h.UpdateCategoriesControl())
	protectedMux.HandleFunc("PUT /api/v1/social-links", h.UpdateSocialLinks())
	protectedMux.HandleFunc("PUT /api/v1/popup-settings", h.UpdatePopupSettings())
	protectedMux.HandleFunc("PUT /api/v1/footer", h.UpdateFooter())
	protectedMux.HandleFunc("PUT /api/v1/site-limits", h.UpdateSiteLimits())
	protectedMux.HandleFunc("PUT /api/v1/admin-settings", h.UpdateAdminSettings())

	// Sites & header links
	protectedMux.HandleFunc("GET /api/v1/sites", h.ListSites)
	protectedMux.HandleFunc("POST /api/v1/sites", h.CreateSite)
	protectedMux.HandleFunc("PUT /api/v1/sites/{id}", h.UpdateSite)
	protectedMux.HandleFunc("DELETE /api/v1/sites/{id}", h.DeleteSite)
	protectedMux.HandleFunc("GET /api/v1/header-links", h.ListHeaderLinks)
	protectedMux.HandleFunc("POST /api/v1/header-links", h.CreateHeaderLink)
	protectedMux.HandleFunc("PUT /api/v1/header-links/{id}", h.UpdateHeaderLink)
	protectedMux.HandleFunc("DELETE /api/v1/header-links/{id}", h.DeleteHeaderLink)

	// Categories
	protectedMux.HandleFunc("GET /api/v1/categories", h.ListCategories)
	protectedMux.HandleFunc("PUT /api/v1/categories/{category}", h.SetCategoryOrder)
	protectedMux.HandleFunc("POST /api/v1/categories/{category}/sites", h.AddToCategory)
	protectedMux.HandleFunc("DELETE /api/v1/categories/{category}/sites/{site}", h.RemoveFromCategory)
	protectedMux.HandleFunc("POST /api/v1/categories/{category}/sites/{site}/move", h.MoveInCategory)
	protectedMux.HandleFunc("PUT /api/v1/bottom-banner/interval", h.SetBottomBannerInterval)

	// Snapshots & colors
	protectedMux.HandleFunc("POST /api/v1/snapshots", h.UploadSnapshot)
	protectedMux.HandleFunc("GET /api/v1/snapshots/{code}", h.ValidateSnapshot)
	protectedMux.HandleFunc("POST /api/v1/snapshots/{code}/apply", h.ApplySnapshot)
	protectedMux.HandleFunc("POST /api/v1/colors/extract", h.ExtractColor)
	protectedMux.HandleFunc("GET /api/v1/colors/random", h.RandomColor)

	mux.Handle("/api/v1/", mw.AuthMiddleware(protectedMux))

	return mux
}
