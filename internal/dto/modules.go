package dto

import "github.com/GregMSThompson/vehicle-dashboard/internal/models"

// Module ids of the ordered-list dashboard, in default order.
const (
	ModuleQuickActions     = "quickActions"
	ModuleVehicleSummary   = "vehicleSummary"
	ModuleUpcomingRenewals = "upcomingRenewals"
	ModuleRecentTrips      = "recentTrips"
	ModuleFuelStats        = "fuelStats"
	ModuleServiceReminders = "serviceReminders"
)

var DefaultModules = []string{
	ModuleQuickActions,
	ModuleVehicleSummary,
	ModuleUpcomingRenewals,
	ModuleRecentTrips,
	ModuleFuelStats,
	ModuleServiceReminders,
}

type ModuleVisibilityRequest struct {
	Visible *bool `json:"visible"`
}

type ModuleSizeRequest struct {
	Size models.ModuleSize `json:"size"`
}

type ReorderModulesRequest struct {
	ModuleOrder []string `json:"moduleOrder"`
}
