package dto

import (
	"github.com/GregMSThompson/vehicle-dashboard/internal/models"
)

// --- Request types ---

type CreateWidgetRequest struct {
	Type  models.WidgetType `json:"type"`
	Title string            `json:"title"`
	Size  models.SizeClass  `json:"size"`
	Color string            `json:"color"`
}

// MoveWidgetRequest names the cell the widget's top-left corner is dropped on.
type MoveWidgetRequest struct {
	X *int `json:"x"`
	Y *int `json:"y"`
}

type ResizeWidgetRequest struct {
	Size models.SizeClass `json:"size"`
}

type RenameWidgetRequest struct {
	Title string `json:"title"`
}

// --- Response types ---

type DashboardResponse struct {
	Columns int             `json:"columns"`
	Widgets []models.Widget `json:"widgets"`
}

// WidgetResult is returned by every successful widget mutation. Persisted is false
// when the change was applied but could not be saved.
type WidgetResult struct {
	Widget    models.Widget `json:"widget"`
	Persisted bool          `json:"persisted"`
}

type RemoveWidgetResult struct {
	WidgetID  string `json:"widgetId"`
	Persisted bool   `json:"persisted"`
}

// --- Catalog ---

type WidgetTypeEntry struct {
	Type         models.WidgetType  `json:"type"`
	DefaultTitle string             `json:"defaultTitle"`
	DefaultSize  models.SizeClass   `json:"defaultSize"`
	DefaultColor string             `json:"defaultColor"`
	Sizes        []models.SizeClass `json:"sizes"`
}

var allSizes = []models.SizeClass{models.SizeSmall, models.SizeMedium, models.SizeLarge}

// WidgetCatalog is the closed set of widget types the dashboard can show.
var WidgetCatalog = []WidgetTypeEntry{
	{Type: models.WidgetVehicles, DefaultTitle: "My Vehicles", DefaultSize: models.SizeLarge, DefaultColor: "blue", Sizes: allSizes},
	{Type: models.WidgetDocuments, DefaultTitle: "Documents", DefaultSize: models.SizeMedium, DefaultColor: "purple", Sizes: allSizes},
	{Type: models.WidgetRTO, DefaultTitle: "RTO Services", DefaultSize: models.SizeSmall, DefaultColor: "orange", Sizes: allSizes},
	{Type: models.WidgetTrip, DefaultTitle: "Trip Planner", DefaultSize: models.SizeMedium, DefaultColor: "green", Sizes: allSizes},
	{Type: models.WidgetCalculator, DefaultTitle: "Fuel Calculator", DefaultSize: models.SizeSmall, DefaultColor: "teal", Sizes: allSizes},
	{Type: models.WidgetNearby, DefaultTitle: "Nearby", DefaultSize: models.SizeMedium, DefaultColor: "red", Sizes: allSizes},
	{Type: models.WidgetMaintenance, DefaultTitle: "Maintenance", DefaultSize: models.SizeMedium, DefaultColor: "yellow", Sizes: allSizes},
	{Type: models.WidgetStats, DefaultTitle: "Statistics", DefaultSize: models.SizeLarge, DefaultColor: "indigo", Sizes: allSizes},
}

// CatalogEntry returns the catalog entry for t.
func CatalogEntry(t models.WidgetType) (WidgetTypeEntry, bool) {
	for _, e := range WidgetCatalog {
		if e.Type == t {
			return e, true
		}
	}
	return WidgetTypeEntry{}, false
}
