package handler

import (
	"io"
	"net/http"

	"github.com/wadjakorntonsri/landing-console/pkg/core/domain"
	"github.com/wadjakorntonsri/landing-console/pkg/ports"
)

// ConfigHandler serves the whole-configuration endpoints and the editor sections
type ConfigHandler struct {
	config ports.ConfigService
	editor ports.EditorService
	colors ports.ColorExtractor
}

func NewConfigHandler(config ports.ConfigService, editor ports.EditorService, colors ports.ColorExtractor) *ConfigHandler {
	return &ConfigHandler{config: config, editor: editor, colors: colors}
}

type SyncStatus struct {
	State           string `json:"state"`
	RemoteAvailable bool   `json:"remote_available"`
	Connected       bool   `json:"connected"`
}

// PublicConfig is what the landing page itself loads
func (h *ConfigHandler) PublicConfig(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.config.GetConfig(r.Context()))
}

func (h *ConfigHandler) PublicLayout(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.editor.Layout(r.Context()))
}

func (h *ConfigHandler) Get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.config.GetConfig(r.Context()))
}

func (h *ConfigHandler) Put(w http.ResponseWriter, r *http.Request) {
	var cfg domain.Configuration
	if !decodeJSON(w, r, &cfg) {
		return
	}
	updated, err := h.editor.Replace(r.Context(), cfg)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *ConfigHandler) Export(w http.ResponseWriter, r *http.Request) {
	data, err := h.config.ExportConfig(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="landing-config.json"`)
	_, _ = io.WriteString(w, data)
}

func (h *ConfigHandler) Import(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.config.ImportConfig(r.Context(), string(body)); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.config.LocalConfig(r.Context()))
}

func (h *ConfigHandler) Reset(w http.ResponseWriter, r *http.Request) {
	if res := h.config.ResetConfig(r.Context()); !res.OK() {
		writeError(w, res.RemoteErr)
		return
	}
	writeJSON(w, http.StatusOK, h.config.LocalConfig(r.Context()))
}

func (h *ConfigHandler) ForceSync(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.config.ForceSync(r.Context()))
}

func (h *ConfigHandler) Status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, SyncStatus{
		State:           h.config.State(),
		RemoteAvailable: h.config.RemoteAvailable(),
		Connected:       h.config.TestConnection(r.Context()),
	})
}

// section decodes a T and hands it to update, answering with the new configuration
func section[T any](update func(r *http.Request, v T) (domain.Configuration, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var v T
		if !decodeJSON(w, r, &v) {
			return
		}
		cfg, err := update(r, v)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, cfg)
	}
}

func (h *ConfigHandler) UpdateSiteConfig() http.HandlerFunc {
	return section(func(r *http.Request, v domain.SiteConfig) (domain.Configuration, error) {
		return h.editor.UpdateSiteConfig(r.Context(), v)
	})
}

func (h *ConfigHandler) UpdateThemeColors() http.HandlerFunc {
	return section(func(r *http.Request, v domain.ThemeColors) (domain.Configuration, error) {
		return h.editor.UpdateThemeColors(r.Context(), v)
	})
}

func (h *ConfigHandler) ResetThemeColors(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.editor.ResetThemeColors(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cfg)
}

func (h *ConfigHandler) UpdateCategoriesControl() http.HandlerFunc {
	return section(func(r *http.Request, v domain.CategoriesControl) (domain.Configuration, error) {
		return h.editor.UpdateCategoriesControl(r.Context(), v)
	})
}

func (h *ConfigHandler) UpdateSocialLinks() http.HandlerFunc {
	return section(func(r *http.Request, v domain.SocialLinks) (domain.Configuration, error) {
		return h.editor.UpdateSocialLinks(r.Context(), v)
	})
}

func (h *ConfigHandler) UpdatePopupSettings() http.HandlerFunc {
	return section(func(r *http.Request, v domain.PopupSettings) (domain.Configuration, error) {
		return h.editor.UpdatePopupSettings(r.Context(), v)
	})
}

func (h *ConfigHandler) UpdateFooter() http.HandlerFunc {
	return section(func(r *http.Request, v domain.Footer) (domain.Configuration, error) {
		return h.editor.UpdateFooter(r.Context(), v)
	})
}

func (h *ConfigHandler) UpdateSiteLimits() http.HandlerFunc {
	return section(func(r *http.Request, v domain.SiteLimits) (domain.Configuration, error) {
		return h.editor.UpdateSiteLimits(r.Context(), v)
	})
}

func (h *ConfigHandler) UpdateAdminSettings() http.HandlerFunc {
	return section(func(r *http.Request, v domain.AdminSettings) (domain.Configuration, error) {
		return h.editor.UpdateAdminSettings(r.Context(), v)
	})
}
