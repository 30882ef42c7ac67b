package store

import (
	"context"

	"github.com/GregMSThompson/vehicle-dashboard/internal/models"
)

// LayoutBackend persists widget collections for many owners.
type LayoutBackend interface {
	LoadLayout(ctx context.Context, owner string) ([]models.Widget, error)
	SaveLayout(ctx context.Context, owner string, widgets []models.Widget) error
}

// ModuleBackend persists the ordered-list module preferences.
type ModuleBackend interface {
	ListModules(ctx context.Context, uid string) ([]models.ModulePreference, error)
	SaveModules(ctx context.Context, uid string, prefs []models.ModulePreference) error
	BulkUpdatePositions(ctx context.Context, uid string, positions map[string]int) error
}

// Scoped binds a LayoutBackend to one owner so it can back a single layout engine.
type Scoped struct {
	backend LayoutBackend
	owner   string
}

func Scope(backend LayoutBackend, owner string) *Scoped {
	return &Scoped{backend: backend, owner: owner}
}

func (s *Scoped) Owner() string { return s.owner }

func (s *Scoped) Load(ctx context.Context) ([]models.Widget, error) {
	return s.backend.LoadLayout(ctx, s.owner)
}

func (s *Scoped) Save(ctx context.Context, widgets []models.Widget) error {
	return s.backend.SaveLayout(ctx, s.owner, widgets)
}
