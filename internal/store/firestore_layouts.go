package store

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/GregMSThompson/vehicle-dashboard/internal/errs"
	"github.com/GregMSThompson/vehicle-dashboard/internal/models"
)

// FirestoreLayouts keeps each user's layout in a single document so a save replaces
// the whole collection atomically.
type FirestoreLayouts struct {
	client *firestore.Client
}

func NewFirestoreLayouts(client *firestore.Client) *FirestoreLayouts {
	return &FirestoreLayouts{client: client}
}

func (s *FirestoreLayouts) doc(uid string) *firestore.DocumentRef {
	return s.client.Collection("users").Doc(uid).Collection("dashboard").Doc("layout")
}

func (s *FirestoreLayouts) LoadLayout(ctx context.Context, uid string) ([]models.Widget, error) {
	snap, err := s.doc(uid).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, errs.NewDatabaseError("read", "failed to get layout", err)
	}
	var layout models.Layout
	if err := snap.DataTo(&layout); err != nil {
		return nil, fmt.Errorf("decoding layout: %w", err)
	}
	return layout.Widgets, nil
}

func (s *FirestoreLayouts) SaveLayout(ctx context.Context, uid string, widgets []models.Widget) error {
	if widgets == nil {
		widgets = []models.Widget{}
	}
	layout := models.Layout{Widgets: widgets, UpdatedAt: time.Now()}
	if _, err := s.doc(uid).Set(ctx, layout); err != nil {
		return errs.NewDatabaseError("update", "failed to save layout", err)
	}
	return nil
}
