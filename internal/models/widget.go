package models

import "time"

// SizeClass is the closed set of widget sizes. It is the only input to footprint resolution.
type SizeClass string

const (
	SizeSmall  SizeClass = "small"
	SizeMedium SizeClass = "medium"
	SizeLarge  SizeClass = "large"
)

// WidgetType selects the content a widget renders. The layout engine never branches on it.
type WidgetType string

const (
	WidgetVehicles    WidgetType = "vehicles"
	WidgetDocuments   WidgetType = "documents"
	WidgetRTO         WidgetType = "rto"
	WidgetTrip        WidgetType = "trip"
	WidgetCalculator  WidgetType = "calculator"
	WidgetNearby      WidgetType = "nearby"
	WidgetMaintenance WidgetType = "maintenance"
	WidgetStats       WidgetType = "stats"
)

// WidgetTypes lists every known widget type in catalog order.
var WidgetTypes = []WidgetType{
	WidgetVehicles,
	WidgetDocuments,
	WidgetRTO,
	WidgetTrip,
	WidgetCalculator,
	WidgetNearby,
	WidgetMaintenance,
	WidgetStats,
}

// Valid reports whether t is one of the known widget types.
func (t WidgetType) Valid() bool {
	for _, known := range WidgetTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Position is the zero-based grid coordinate of a widget's top-left cell.
type Position struct {
	X int `firestore:"x" json:"x"`
	Y int `firestore:"y" json:"y"`
}

// Footprint is the width×height rectangle, in cells, a widget covers.
type Footprint struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Widget is one dashboard tile.
type Widget struct {
	ID        string     `firestore:"id" json:"id"`
	Type      WidgetType `firestore:"type" json:"type"`
	Title     string     `firestore:"title" json:"title"`
	Size      SizeClass  `firestore:"size" json:"size"`
	Position  Position   `firestore:"position" json:"position"`
	Color     string     `firestore:"color,omitempty" json:"color,omitempty"`
	CreatedAt time.Time  `firestore:"createdAt" json:"createdAt"`
	UpdatedAt time.Time  `firestore:"updatedAt" json:"updatedAt"`
}

// Layout is the persisted document wrapping a user's widget collection.
type Layout struct {
	Widgets   []Widget  `firestore:"widgets" json:"widgets"`
	UpdatedAt time.Time `firestore:"updatedAt" json:"updatedAt"`
}
