package handler

import (
	"net/http"

	"github.com/wadjakorntonsri/landing-console/pkg/core/domain"
)

type AddMemberRequest struct {
	Site string `json:"site"`
}

type MoveMemberRequest struct {
	Direction domain.Direction `json:"direction"`
}

type CategoryOrderRequest struct {
	Sites []string `json:"sites"`
}

type RotationRequest struct {
	RotationInterval int `json:"rotation_interval"`
}

func (h *ConfigHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.editor.Current(r.Context()).Categories)
}

func (h *ConfigHandler) AddToCategory(w http.ResponseWriter, r *http.Request) {
	cat, ok := categoryParam(w, r)
	if !ok {
		return
	}
	var req AddMemberRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Site == "" {
		http.Error(w, "site is required", http.StatusBadRequest)
		return
	}
	cats, err := h.editor.AddToCategory(r.Context(), cat, req.Site)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cats)
}

func (h *ConfigHandler) RemoveFromCategory(w http.ResponseWriter, r *http.Request) {
	cat, ok := categoryParam(w, r)
	if !ok {
		return
	}
	cats, err := h.editor.RemoveFromCategory(r.Context(), cat, r.PathValue("site"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cats)
}

func (h *ConfigHandler) MoveInCategory(w http.ResponseWriter, r *http.Request) {
	cat, ok := categoryParam(w, r)
	if !ok {
		return
	}
	var req MoveMemberRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	cats, err := h.editor.MoveInCategory(r.Context(), cat, r.PathValue("site"), req.Direction)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cats)
}

func (h *ConfigHandler) SetCategoryOrder(w http.ResponseWriter, r *http.Request) {
	cat, ok := categoryParam(w, r)
	if !ok {
		return
	}
	var req CategoryOrderRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	cats, err := h.editor.SetCategoryOrder(r.Context(), cat, req.Sites)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cats)
}

func (h *ConfigHandler) SetBottomBannerInterval(w http.ResponseWriter, r *http.Request) {
	var req RotationRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	cats, err := h.editor.SetBottomBannerInterval(r.Context(), req.RotationInterval)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cats)
}

func categoryParam(w http.ResponseWriter, r *http.Request) (domain.Category, bool) {
	cat, err := domain.ParseCategory(r.PathValue("category"))
	if err != nil {
		writeError(w, err)
		return "", false
	}
	return cat, true
}
