package handler

import (
	"net/http"
	"strings"

	"github.com/wadjakorntonsri/landing-console/pkg/core/color"
)

type UploadSnapshotRequest struct {
	Description string `json:"description"`
}

type UploadSnapshotResponse struct {
	ShareCode string `json:"share_code"`
}

type ExtractColorRequest struct {
	Source string `json:"source"` // http(s) URL or data URI
}

type ExtractColorResponse struct {
	Color    string `json:"color"`
	Fallback bool   `json:"fallback"`
}

func (h *ConfigHandler) UploadSnapshot(w http.ResponseWriter, r *http.Request) {
	var req UploadSnapshotRequest
	if r.ContentLength != 0 && !decodeJSON(w, r, &req) {
		return
	}
	code, err := h.editor.UploadSnapshot(r.Context(), req.Description)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, UploadSnapshotResponse{ShareCode: code})
}

// ValidateSnapshot checks a share code without counting it as a download
func (h *ConfigHandler) ValidateSnapshot(w http.ResponseWriter, r *http.Request) {
	if !h.editor.ValidateShareCode(r.Context(), r.PathValue("code")) {
		http.Error(w, "Share code not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"valid": true})
}

// ApplySnapshot downloads a snapshot and makes it the live configuration
func (h *ConfigHandler) ApplySnapshot(w http.ResponseWriter, r *http.Request) {
	snap, err := h.editor.DownloadSnapshot(r.Context(), r.PathValue("code"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (h *ConfigHandler) ExtractColor(w http.ResponseWriter, r *http.Request) {
	var req ExtractColorRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if !remoteOrInline(req.Source) {
		http.Error(w, "source must be an http(s) URL or a data URI", http.StatusBadRequest)
		return
	}
	c := h.colors.Extract(r.Context(), req.Source)
	writeJSON(w, http.StatusOK, ExtractColorResponse{Color: c, Fallback: c == color.FallbackColor})
}

func (h *ConfigHandler) RandomColor(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, ExtractColorResponse{Color: color.RandomGamingColor()})
}

// Local paths are only accepted from the CLI
func remoteOrInline(src string) bool {
	return strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") || strings.HasPrefix(src, "data:")
}
