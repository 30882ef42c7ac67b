package models

import "time"

// ModuleSize is the display density of an ordered dashboard module.
type ModuleSize string

const (
	ModuleCompact ModuleSize = "compact"
	ModuleFull    ModuleSize = "full"
)

// ModulePreference is a user's toggle for one module of the ordered-list dashboard.
// It is independent of the widget grid layout.
type ModulePreference struct {
	ModuleID  string     `firestore:"moduleId" json:"moduleId"`
	Visible   bool       `firestore:"visible" json:"visible"`
	Size      ModuleSize `firestore:"size" json:"size"`
	Position  int        `firestore:"position" json:"position"`
	UpdatedAt time.Time  `firestore:"updatedAt" json:"updatedAt"`
}
