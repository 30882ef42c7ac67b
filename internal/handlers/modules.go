package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/GregMSThompson/vehicle-dashboard/internal/dto"
	"github.com/GregMSThompson/vehicle-dashboard/internal/middleware"
	"github.com/GregMSThompson/vehicle-dashboard/internal/models"
)

type moduleService interface {
	ListModules(ctx context.Context, uid string) ([]models.ModulePreference, error)
	SetModuleVisibility(ctx context.Context, uid, moduleID string, req dto.ModuleVisibilityRequest) (models.ModulePreference, error)
	SetModuleSize(ctx context.Context, uid, moduleID string, req dto.ModuleSizeRequest) (models.ModulePreference, error)
	ReorderModules(ctx context.Context, uid string, req dto.ReorderModulesRequest) ([]models.ModulePreference, error)
}

func (h *dashboardHandlers) ListModules(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UID(r.Context())
	prefs, err := h.ModuleSvc.ListModules(r.Context(), uid)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, prefs)
}

func (h *dashboardHandlers) SetModuleVisibility(w http.ResponseWriter, r *http.Request) {
	moduleID := chi.URLParam(r, "moduleId")
	var req dto.ModuleVisibilityRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	uid := middleware.UID(r.Context())
	pref, err := h.ModuleSvc.SetModuleVisibility(r.Context(), uid, moduleID, req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, pref)
}

func (h *dashboardHandlers) SetModuleSize(w http.ResponseWriter, r *http.Request) {
	moduleID := chi.URLParam(r, "moduleId")
	var req dto.ModuleSizeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	uid := middleware.UID(r.Context())
	pref, err := h.ModuleSvc.SetModuleSize(r.Context(), uid, moduleID, req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, pref)
}

func (h *dashboardHandlers) ReorderModules(w http.ResponseWriter, r *http.Request) {
	var req dto.ReorderModulesRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	uid := middleware.UID(r.Context())
	prefs, err := h.ModuleSvc.ReorderModules(r.Context(), uid, req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, prefs)
}
