package handler

import (
	"net/http"

	"github.com/wadjakorntonsri/landing-console/pkg/core/domain"
)

func (h *ConfigHandler) ListSites(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.editor.Current(r.Context()).Sites)
}

func (h *ConfigHandler) CreateSite(w http.ResponseWriter, r *http.Request) {
	var req domain.Site
	if !decodeJSON(w, r, &req) {
		return
	}
	site, err := h.editor.AddSite(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, site)
}

// UpdateSite merges the non-empty fields of the body into the site
func (h *ConfigHandler) UpdateSite(w http.ResponseWriter, r *http.Request) {
	var req domain.Site
	if !decodeJSON(w, r, &req) {
		return
	}
	site, err := h.editor.UpdateSite(r.Context(), r.PathValue("id"), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, site)
}

func (h *ConfigHandler) DeleteSite(w http.ResponseWriter, r *http.Request) {
	if err := h.editor.DeleteSite(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ConfigHandler) ListHeaderLinks(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.editor.Current(r.Context()).HeaderLinks)
}

func (h *ConfigHandler) CreateHeaderLink(w http.ResponseWriter, r *http.Request) {
	var req domain.HeaderLink
	if !decodeJSON(w, r, &req) {
		return
	}
	link, err := h.editor.AddHeaderLink(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, link)
}

func (h *ConfigHandler) UpdateHeaderLink(w http.ResponseWriter, r *http.Request) {
	var req domain.HeaderLink
	if !decodeJSON(w, r, &req) {
		return
	}
	link, err := h.editor.UpdateHeaderLink(r.Context(), r.PathValue("id"), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, link)
}

func (h *ConfigHandler) DeleteHeaderLink(w http.ResponseWriter, r *http.Request) {
	if err := h.editor.DeleteHeaderLink(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
