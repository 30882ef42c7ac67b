package handlers

import (
	"log/slog"

	"github.com/GregMSThompson/vehicle-dashboard/internal/response"
)

type Deps struct {
	Log             *slog.Logger
	ResponseHandler response.ResponseHandler
	DashboardSvc    dashboardService
	ModuleSvc       moduleService
}
