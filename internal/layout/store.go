package layout

import (
	"context"

	"github.com/GregMSThompson/vehicle-dashboard/internal/models"
)

// Store persists one dashboard's widget collection.
// Load returns a nil slice and no error when nothing has been saved yet.
type Store interface {
	Load(ctx context.Context) ([]models.Widget, error)
	Save(ctx context.Context, widgets []models.Widget) error
}
