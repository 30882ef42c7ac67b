package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/GregMSThompson/vehicle-dashboard/internal/dto"
	"github.com/GregMSThompson/vehicle-dashboard/internal/middleware"
	"github.com/GregMSThompson/vehicle-dashboard/internal/response"
)

type dashboardService interface {
	GetDashboard(ctx context.Context, uid string) (dto.DashboardResponse, error)
	AddWidget(ctx context.Context, uid string, req dto.CreateWidgetRequest) (dto.WidgetResult, error)
	RemoveWidget(ctx context.Context, uid, widgetID string) (dto.RemoveWidgetResult, error)
	MoveWidget(ctx context.Context, uid, widgetID string, req dto.MoveWidgetRequest) (dto.WidgetResult, error)
	ResizeWidget(ctx context.Context, uid, widgetID string, req dto.ResizeWidgetRequest) (dto.WidgetResult, error)
	RenameWidget(ctx context.Context, uid, widgetID string, req dto.RenameWidgetRequest) (dto.WidgetResult, error)
}

type dashboardHandlers struct {
	ResponseHandler response.ResponseHandler
	DashboardSvc    dashboardService
	ModuleSvc       moduleService
}

func NewDashboardHandlers(deps *Deps) *dashboardHandlers {
	return &dashboardHandlers{
		ResponseHandler: deps.ResponseHandler,
		DashboardSvc:    deps.DashboardSvc,
		ModuleSvc:       deps.ModuleSvc,
	}
}

func (h *dashboardHandlers) DashboardRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.GetDashboard)
	r.Post("/widgets", h.AddWidget)
	r.Delete("/widgets/{widgetId}", h.RemoveWidget)
	r.Put("/widgets/{widgetId}/position", h.MoveWidget)
	r.Put("/widgets/{widgetId}/size", h.ResizeWidget)
	r.Put("/widgets/{widgetId}/title", h.RenameWidget)
	r.Get("/widget-types", h.GetWidgetTypes)

	r.Get("/modules", h.ListModules)
	r.Put("/modules/order", h.ReorderModules) // must be before /{moduleId}
	r.Put("/modules/{moduleId}/visibility", h.SetModuleVisibility)
	r.Put("/modules/{moduleId}/size", h.SetModuleSize)
	return r
}

func (h *dashboardHandlers) GetDashboard(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UID(r.Context())
	dash, err := h.DashboardSvc.GetDashboard(r.Context(), uid)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, dash)
}

func (h *dashboardHandlers) AddWidget(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateWidgetRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	uid := middleware.UID(r.Context())
	res, err := h.DashboardSvc.AddWidget(r.Context(), uid, req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, res)
}

func (h *dashboardHandlers) RemoveWidget(w http.ResponseWriter, r *http.Request) {
	widgetID := chi.URLParam(r, "widgetId")
	uid := middleware.UID(r.Context())
	res, err := h.DashboardSvc.RemoveWidget(r.Context(), uid, widgetID)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, res)
}

func (h *dashboardHandlers) MoveWidget(w http.ResponseWriter, r *http.Request) {
	widgetID := chi.URLParam(r, "widgetId")
	var req dto.MoveWidgetRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	uid := middleware.UID(r.Context())
	res, err := h.DashboardSvc.MoveWidget(r.Context(), uid, widgetID, req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, res)
}

func (h *dashboardHandlers) ResizeWidget(w http.ResponseWriter, r *http.Request) {
	widgetID := chi.URLParam(r, "widgetId")
	var req dto.ResizeWidgetRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	uid := middleware.UID(r.Context())
	res, err := h.DashboardSvc.ResizeWidget(r.Context(), uid, widgetID, req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, res)
}

func (h *dashboardHandlers) RenameWidget(w http.ResponseWriter, r *http.Request) {
	widgetID := chi.URLParam(r, "widgetId")
	var req dto.RenameWidgetRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	uid := middleware.UID(r.Context())
	res, err := h.DashboardSvc.RenameWidget(r.Context(), uid, widgetID, req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, res)
}

// GetWidgetTypes returns the static catalog of widget types with their default size and color.
func (h *dashboardHandlers) GetWidgetTypes(w http.ResponseWriter, r *http.Request) {
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, dto.WidgetCatalog)
}
