package services

import (
	"context"
	"slices"
	"time"

	"github.com/GregMSThompson/vehicle-dashboard/internal/dto"
	"github.com/GregMSThompson/vehicle-dashboard/internal/errs"
	"github.com/GregMSThompson/vehicle-dashboard/internal/models"
	"github.com/GregMSThompson/vehicle-dashboard/pkg/logger"
)

// moduleStore persists the ordered-list module preferences.
type moduleStore interface {
	ListModules(ctx context.Context, uid string) ([]models.ModulePreference, error)
	SaveModules(ctx context.Context, uid string, prefs []models.ModulePreference) error
	BulkUpdatePositions(ctx context.Context, uid string, positions map[string]int) error
}

// moduleService manages the ordered module list. It is a separate preference set from
// the widget grid and never touches the grid layout.
type moduleService struct {
	store moduleStore
}

func NewModuleService(store moduleStore) *moduleService {
	return &moduleService{store: store}
}

// ListModules returns every known module in display order. Modules the user never
// changed appear with their defaults after the stored ones.
func (s *moduleService) ListModules(ctx context.Context, uid string) ([]models.ModulePreference, error) {
	prefs, _, err := s.load(ctx, uid)
	return prefs, err
}

func (s *moduleService) SetModuleVisibility(ctx context.Context, uid, moduleID string, req dto.ModuleVisibilityRequest) (models.ModulePreference, error) {
	if req.Visible == nil {
		return models.ModulePreference{}, errs.NewValidationError("visible is required")
	}
	return s.update(ctx, uid, moduleID, func(p *models.ModulePreference) { p.Visible = *req.Visible })
}

func (s *moduleService) SetModuleSize(ctx context.Context, uid, moduleID string, req dto.ModuleSizeRequest) (models.ModulePreference, error) {
	switch req.Size {
	case models.ModuleCompact, models.ModuleFull:
	default:
		return models.ModulePreference{}, errs.NewValidationError(`size must be "compact" or "full"`)
	}
	return s.update(ctx, uid, moduleID, func(p *models.ModulePreference) { p.Size = req.Size })
}

// ReorderModules reindexes positions 0..n-1 in the given order. The order must name
// every module exactly once.
func (s *moduleService) ReorderModules(ctx context.Context, uid string, req dto.ReorderModulesRequest) ([]models.ModulePreference, error) {
	if err := validateModuleOrder(req.ModuleOrder); err != nil {
		return nil, err
	}
	prefs, complete, err := s.load(ctx, uid)
	if err != nil {
		return nil, err
	}

	positions := make(map[string]int, len(req.ModuleOrder))
	for i, id := range req.ModuleOrder {
		positions[id] = i
	}
	for i := range prefs {
		prefs[i].Position = positions[prefs[i].ModuleID]
	}
	slices.SortFunc(prefs, func(a, b models.ModulePreference) int { return a.Position - b.Position })

	// position updates can only patch existing documents
	if complete {
		err = s.store.BulkUpdatePositions(ctx, uid, positions)
	} else {
		err = s.store.SaveModules(ctx, uid, prefs)
	}
	if err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Info("dashboard modules reordered", "modules", len(prefs))
	return prefs, nil
}

func (s *moduleService) update(ctx context.Context, uid, moduleID string, apply func(*models.ModulePreference)) (models.ModulePreference, error) {
	if !slices.Contains(dto.DefaultModules, moduleID) {
		return models.ModulePreference{}, errs.NewNotFoundError("module not found: " + moduleID)
	}
	prefs, complete, err := s.load(ctx, uid)
	if err != nil {
		return models.ModulePreference{}, err
	}
	idx := slices.IndexFunc(prefs, func(p models.ModulePreference) bool { return p.ModuleID == moduleID })
	apply(&prefs[idx])
	prefs[idx].UpdatedAt = time.Now().UTC()

	toSave := prefs[idx : idx+1]
	if !complete {
		toSave = prefs
	}
	if err := s.store.SaveModules(ctx, uid, toSave); err != nil {
		return models.ModulePreference{}, err
	}
	return prefs[idx], nil
}

// load merges stored preferences with the defaults. complete reports whether every
// known module already has a stored document.
func (s *moduleService) load(ctx context.Context, uid string) ([]models.ModulePreference, bool, error) {
	stored, err := s.store.ListModules(ctx, uid)
	if err != nil {
		return nil, false, err
	}

	prefs := make([]models.ModulePreference, 0, len(dto.DefaultModules))
	seen := make(map[string]bool, len(stored))
	for _, p := range stored {
		if !slices.Contains(dto.DefaultModules, p.ModuleID) || seen[p.ModuleID] {
			continue
		}
		seen[p.ModuleID] = true
		prefs = append(prefs, p)
	}
	complete := len(prefs) == len(dto.DefaultModules)
	for _, id := range dto.DefaultModules {
		if seen[id] {
			continue
		}
		prefs = append(prefs, models.ModulePreference{ModuleID: id, Visible: true, Size: models.ModuleFull})
	}
	for i := range prefs {
		prefs[i].Position = i
	}
	return prefs, complete, nil
}

func validateModuleOrder(order []string) error {
	if len(order) != len(dto.DefaultModules) {
		return errs.NewValidationError("moduleOrder must list every module exactly once")
	}
	seen := make(map[string]bool, len(order))
	for _, id := range order {
		if !slices.Contains(dto.DefaultModules, id) {
			return errs.NewValidationError("unknown module: " + id)
		}
		if seen[id] {
			return errs.NewValidationError("duplicate module: " + id)
		}
		seen[id] = true
	}
	return nil
}
