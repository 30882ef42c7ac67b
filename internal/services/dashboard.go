package services

import (
	"context"
	"errors"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/GregMSThompson/vehicle-dashboard/internal/dto"
	"github.com/GregMSThompson/vehicle-dashboard/internal/errs"
	"github.com/GregMSThompson/vehicle-dashboard/internal/layout"
	"github.com/GregMSThompson/vehicle-dashboard/internal/models"
	"github.com/GregMSThompson/vehicle-dashboard/pkg/helpers"
	"github.com/GregMSThompson/vehicle-dashboard/pkg/logger"
)

const maxTitleLength = 60

// LayoutStoreFactory returns the store backing one user's layout.
type LayoutStoreFactory func(uid string) layout.Store

// dashboardService keeps one layout engine per user. An engine is created, and its
// layout loaded, the first time the user is seen; after that the engine's in-memory
// collection is the source of truth and every change is written through to the store.
// Engines live for the lifetime of the process.
type dashboardService struct {
	storeFor LayoutStoreFactory
	opts     []layout.Option

	loads   singleflight.Group
	mu      sync.RWMutex
	engines map[string]*layout.Engine
}

func NewDashboardService(storeFor LayoutStoreFactory, opts ...layout.Option) *dashboardService {
	return &dashboardService{
		storeFor: storeFor,
		opts:     opts,
		engines:  make(map[string]*layout.Engine),
	}
}

// engine returns the user's engine, loading it on first use. Concurrent first requests
// for one user share a single load; loads for different users run in parallel. A failed
// load is not cached so the next request retries.
func (s *dashboardService) engine(ctx context.Context, uid string) (*layout.Engine, error) {
	if e, ok := s.cached(uid); ok {
		return e, nil
	}
	v, err, _ := s.loads.Do(uid, func() (any, error) {
		if e, ok := s.cached(uid); ok {
			return e, nil
		}
		e, err := layout.New(ctx, s.storeFor(uid), s.opts...)
		if err != nil {
			return nil, err
		}
		s.mu.Lock()
		s.engines[uid] = e
		s.mu.Unlock()
		return e, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*layout.Engine), nil
}

func (s *dashboardService) cached(uid string) (*layout.Engine, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.engines[uid]
	return e, ok
}

// --- Public service methods ---

func (s *dashboardService) GetDashboard(ctx context.Context, uid string) (dto.DashboardResponse, error) {
	e, err := s.engine(ctx, uid)
	if err != nil {
		return dto.DashboardResponse{}, err
	}
	return dto.DashboardResponse{Columns: e.Columns(), Widgets: e.List()}, nil
}

func (s *dashboardService) AddWidget(ctx context.Context, uid string, req dto.CreateWidgetRequest) (dto.WidgetResult, error) {
	entry, ok := dto.CatalogEntry(req.Type)
	if !ok {
		return dto.WidgetResult{}, errs.NewValidationError("unknown widget type: " + string(req.Type))
	}
	if req.Size == "" {
		req.Size = entry.DefaultSize
	}
	if err := validateSize(req.Size); err != nil {
		return dto.WidgetResult{}, err
	}
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		req.Title = entry.DefaultTitle
	}
	if err := validateTitle(req.Title); err != nil {
		return dto.WidgetResult{}, err
	}
	if req.Color == "" {
		req.Color = entry.DefaultColor
	}

	e, err := s.engine(ctx, uid)
	if err != nil {
		return dto.WidgetResult{}, err
	}
	w, err := e.AddWidget(ctx, layout.WidgetSpec{
		Type:  req.Type,
		Title: req.Title,
		Size:  req.Size,
		Color: req.Color,
	})
	return widgetResult(ctx, w, err)
}

func (s *dashboardService) RemoveWidget(ctx context.Context, uid, widgetID string) (dto.RemoveWidgetResult, error) {
	e, err := s.engine(ctx, uid)
	if err != nil {
		return dto.RemoveWidgetResult{}, err
	}
	persisted, err := committed(ctx, e.RemoveWidget(ctx, widgetID))
	if err != nil {
		return dto.RemoveWidgetResult{}, err
	}
	return dto.RemoveWidgetResult{WidgetID: widgetID, Persisted: persisted}, nil
}

func (s *dashboardService) MoveWidget(ctx context.Context, uid, widgetID string, req dto.MoveWidgetRequest) (dto.WidgetResult, error) {
	if req.X == nil || req.Y == nil {
		return dto.WidgetResult{}, errs.NewValidationError("x and y are required")
	}
	e, err := s.engine(ctx, uid)
	if err != nil {
		return dto.WidgetResult{}, err
	}
	w, err := e.MoveWidget(ctx, widgetID, models.Position{X: helpers.Value(req.X), Y: helpers.Value(req.Y)})
	return widgetResult(ctx, w, err)
}

func (s *dashboardService) ResizeWidget(ctx context.Context, uid, widgetID string, req dto.ResizeWidgetRequest) (dto.WidgetResult, error) {
	if err := validateSize(req.Size); err != nil {
		return dto.WidgetResult{}, err
	}
	e, err := s.engine(ctx, uid)
	if err != nil {
		return dto.WidgetResult{}, err
	}
	w, err := e.ResizeWidget(ctx, widgetID, req.Size)
	return widgetResult(ctx, w, err)
}

func (s *dashboardService) RenameWidget(ctx context.Context, uid, widgetID string, req dto.RenameWidgetRequest) (dto.WidgetResult, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return dto.WidgetResult{}, errs.NewValidationError("title is required")
	}
	if err := validateTitle(title); err != nil {
		return dto.WidgetResult{}, err
	}
	e, err := s.engine(ctx, uid)
	if err != nil {
		return dto.WidgetResult{}, err
	}
	w, err := e.RenameWidget(ctx, widgetID, title)
	return widgetResult(ctx, w, err)
}

// --- Helpers ---

// committed separates "applied but not saved" from real failures.
func committed(ctx context.Context, err error) (bool, error) {
	if err == nil {
		return true, nil
	}
	var persistErr *errs.PersistError
	if errors.As(err, &persistErr) {
		logger.FromContext(ctx).Warn("serving unsaved layout change", "error", persistErr.Err)
		return false, nil
	}
	return false, err
}

func widgetResult(ctx context.Context, w models.Widget, err error) (dto.WidgetResult, error) {
	persisted, err := committed(ctx, err)
	if err != nil {
		return dto.WidgetResult{}, err
	}
	return dto.WidgetResult{Widget: w, Persisted: persisted}, nil
}

// --- Validation ---

func validateSize(size models.SizeClass) error {
	if !layout.ValidSize(size) {
		return errs.NewValidationError(`size must be one of: small, medium, large`)
	}
	return nil
}

func validateTitle(title string) error {
	if len([]rune(title)) > maxTitleLength {
		return errs.NewValidationError("title must be at most 60 characters")
	}
	return nil
}
