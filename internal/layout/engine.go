package layout

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/GregMSThompson/vehicle-dashboard/internal/errs"
	"github.com/GregMSThompson/vehicle-dashboard/internal/models"
	"github.com/GregMSThompson/vehicle-dashboard/pkg/logger"
)

// DefaultColumns is the grid width used when none is configured.
const DefaultColumns = 4

// WidgetSpec describes a widget to add. Position and id are assigned by the engine.
type WidgetSpec struct {
	Type  models.WidgetType
	Title string
	Size  models.SizeClass
	Color string
}

// Engine owns the widget collection of a single dashboard. All methods are safe for
// concurrent use; mutations are applied one at a time.
type Engine struct {
	mu      sync.Mutex
	columns int
	store   Store
	widgets []models.Widget
	newID   func() string
	now     func() time.Time
}

type Option func(*Engine)

// WithColumns sets the grid width.
func WithColumns(columns int) Option {
	return func(e *Engine) { e.columns = columns }
}

// WithIDGenerator replaces the uuid generator used for new widgets.
func WithIDGenerator(fn func() string) Option {
	return func(e *Engine) { e.newID = fn }
}

// WithClock replaces time.Now for widget timestamps.
func WithClock(fn func() time.Time) Option {
	return func(e *Engine) { e.now = fn }
}

// New builds an engine and loads the saved layout from store. A missing, undecodable
// or inconsistent payload yields an empty dashboard. A *errs.DatabaseError from the
// store is returned as is, since the saved layout may still be intact.
func New(ctx context.Context, store Store, opts ...Option) (*Engine, error) {
	e := &Engine{
		columns: DefaultColumns,
		store:   store,
		newID:   func() string { return uuid.New().String() },
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.columns < 1 {
		return nil, fmt.Errorf("grid needs at least one column, got %d", e.columns)
	}
	if err := e.load(ctx); err != nil {
		return nil, err
	}
	return e, nil
}

func (e *Engine) load(ctx context.Context) error {
	log := logger.FromContext(ctx)

	widgets, err := e.store.Load(ctx)
	if err != nil {
		var dbErr *errs.DatabaseError
		if errors.As(err, &dbErr) {
			log.Error("failed to load dashboard layout", "operation", dbErr.Operation, "error", err)
			return err
		}
		log.Warn("discarding unreadable dashboard layout", "error", err)
		return nil
	}
	if err := Validate(widgets, e.columns); err != nil {
		log.Warn("discarding inconsistent dashboard layout", "error", err, "widgets", len(widgets))
		return nil
	}
	e.widgets = slices.Clone(widgets)
	if logger.IsDebugEnabled(ctx) {
		log.Debug("dashboard layout loaded", "widgets", len(e.widgets), "placements", placements(e.widgets))
	}
	return nil
}

// placements summarises a layout as "id:size@x,y" entries for debug logs.
func placements(widgets []models.Widget) []string {
	out := make([]string, len(widgets))
	for i, w := range widgets {
		out[i] = fmt.Sprintf("%s:%s@%d,%d", w.ID, w.Size, w.Position.X, w.Position.Y)
	}
	return out
}

// Columns returns the grid width.
func (e *Engine) Columns() int { return e.columns }

// List returns a copy of the widgets in insertion order.
func (e *Engine) List() []models.Widget {
	e.mu.Lock()
	defer e.mu.Unlock()
	return slices.Clone(e.widgets)
}

// Get returns the widget with id.
func (e *Engine) Get(id string) (models.Widget, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	idx := e.indexOf(id)
	if idx < 0 {
		return models.Widget{}, errs.NewUnknownWidgetError(id)
	}
	return e.widgets[idx], nil
}

// AddWidget places a new widget in the first free slot and appends it.
// A *errs.PersistError return means the widget was added but not saved.
func (e *Engine) AddWidget(ctx context.Context, spec WidgetSpec) (models.Widget, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	fp, err := FootprintOf(spec.Size)
	if err != nil {
		return models.Widget{}, err
	}
	occ, err := e.occupancy()
	if err != nil {
		return models.Widget{}, err
	}
	pos, err := FindSlot(fp, occ)
	if err != nil {
		return models.Widget{}, err
	}

	now := e.now()
	w := models.Widget{
		ID:        e.newID(),
		Type:      spec.Type,
		Title:     strings.TrimSpace(spec.Title),
		Size:      spec.Size,
		Position:  pos,
		Color:     spec.Color,
		CreatedAt: now,
		UpdatedAt: now,
	}
	e.widgets = append(e.widgets, w)

	logger.FromContext(ctx).Debug("widget added", "widget_id", w.ID, "size", w.Size, "x", pos.X, "y", pos.Y)
	return w, e.persist(ctx)
}

// RemoveWidget deletes a widget. Its cells become free and nothing else moves.
func (e *Engine) RemoveWidget(ctx context.Context, id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	idx := e.indexOf(id)
	if idx < 0 {
		return errs.NewUnknownWidgetError(id)
	}
	e.widgets = slices.Delete(e.widgets, idx, idx+1)

	logger.FromContext(ctx).Debug("widget removed", "widget_id", id)
	return e.persist(ctx)
}

// MoveWidget drops a widget with its top-left cell at target. A free target moves the
// widget; a target anchored on a widget of the same footprint swaps the two; anything
// else is rejected with *errs.MoveRejectedError and nothing changes.
func (e *Engine) MoveWidget(ctx context.Context, id string, target models.Position) (models.Widget, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	log := logger.FromContext(ctx)

	idx := e.indexOf(id)
	if idx < 0 {
		return models.Widget{}, errs.NewUnknownWidgetError(id)
	}
	w := e.widgets[idx]
	fp, err := FootprintOf(w.Size)
	if err != nil {
		return models.Widget{}, err
	}
	occ, err := e.occupancy()
	if err != nil {
		return models.Widget{}, err
	}
	if !occ.InBounds(target, fp) {
		log.Info("move rejected", "widget_id", id, "reason", errs.RejectOutOfBounds, "x", target.X, "y", target.Y)
		return w, errs.NewMoveRejectedError(id, errs.RejectOutOfBounds)
	}

	next := slices.Clone(e.widgets)
	now := e.now()

	switch {
	case occ.IsFree(target, fp, id):
		next[idx].Position = target
		next[idx].UpdatedAt = now

	default:
		oi := e.swapPartner(occ, id, target, fp)
		if oi < 0 {
			log.Info("move rejected", "widget_id", id, "reason", errs.RejectConflict, "x", target.X, "y", target.Y)
			return w, errs.NewMoveRejectedError(id, errs.RejectConflict)
		}
		next[oi].Position = w.Position
		next[oi].UpdatedAt = now
		next[idx].Position = target
		next[idx].UpdatedAt = now
		log.Debug("widgets swapped", "widget_id", id, "other_id", next[oi].ID)
	}

	if err := Validate(next, e.columns); err != nil {
		log.Info("move rejected", "widget_id", id, "reason", errs.RejectConflict, "error", err)
		return w, errs.NewMoveRejectedError(id, errs.RejectConflict)
	}
	e.widgets = next

	log.Debug("widget moved", "widget_id", id, "x", target.X, "y", target.Y)
	return e.widgets[idx], e.persist(ctx)
}

// swapPartner returns the index of the widget anchored exactly at target with the same
// footprint as the moving widget, or -1.
func (e *Engine) swapPartner(occ *Occupancy, id string, target models.Position, fp models.Footprint) int {
	occupant, ok := occ.OccupantAt(target)
	if !ok || occupant == id {
		return -1
	}
	oi := e.indexOf(occupant)
	if oi < 0 {
		return -1
	}
	other := e.widgets[oi]
	ofp, err := FootprintOf(other.Size)
	if err != nil || ofp != fp || other.Position != target {
		return -1
	}
	return oi
}

// ResizeWidget changes a widget's size class in place, keeping its top-left cell.
func (e *Engine) ResizeWidget(ctx context.Context, id string, size models.SizeClass) (models.Widget, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	log := logger.FromContext(ctx)

	idx := e.indexOf(id)
	if idx < 0 {
		return models.Widget{}, errs.NewUnknownWidgetError(id)
	}
	w := e.widgets[idx]
	fp, err := FootprintOf(size)
	if err != nil {
		return w, err
	}
	occ, err := e.occupancy()
	if err != nil {
		return w, err
	}
	if !occ.InBounds(w.Position, fp) {
		log.Info("resize rejected", "widget_id", id, "reason", errs.RejectOutOfBounds, "size", size)
		return w, errs.NewMoveRejectedError(id, errs.RejectOutOfBounds)
	}
	if !occ.IsFree(w.Position, fp, id) {
		log.Info("resize rejected", "widget_id", id, "reason", errs.RejectConflict, "size", size)
		return w, errs.NewMoveRejectedError(id, errs.RejectConflict)
	}

	e.widgets[idx].Size = size
	e.widgets[idx].UpdatedAt = e.now()

	log.Debug("widget resized", "widget_id", id, "size", size)
	return e.widgets[idx], e.persist(ctx)
}

// RenameWidget replaces a widget's title. Titles carry no layout meaning.
func (e *Engine) RenameWidget(ctx context.Context, id, title string) (models.Widget, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	idx := e.indexOf(id)
	if idx < 0 {
		return models.Widget{}, errs.NewUnknownWidgetError(id)
	}
	e.widgets[idx].Title = strings.TrimSpace(title)
	e.widgets[idx].UpdatedAt = e.now()

	logger.FromContext(ctx).Debug("widget renamed", "widget_id", id)
	return e.widgets[idx], e.persist(ctx)
}

func (e *Engine) indexOf(id string) int {
	return slices.IndexFunc(e.widgets, func(w models.Widget) bool { return w.ID == id })
}

func (e *Engine) occupancy() (*Occupancy, error) {
	return NewOccupancy(e.widgets, e.columns)
}

// persist saves the current collection. A failed save is logged and reported but the
// in-memory change stands.
func (e *Engine) persist(ctx context.Context) error {
	if err := e.store.Save(ctx, slices.Clone(e.widgets)); err != nil {
		logger.FromContext(ctx).Error("failed to save dashboard layout", "error", err, "widgets", len(e.widgets))
		return errs.NewPersistError(err)
	}
	return nil
}

// Validate checks that widgets form a legal layout for a grid of the given width:
// non-empty unique ids, known size classes, every rectangle inside the columns and no
// two rectangles overlapping.
func Validate(widgets []models.Widget, columns int) error {
	seen := make(map[string]struct{}, len(widgets))
	for _, w := range widgets {
		if w.ID == "" {
			return errors.New("widget without id")
		}
		if _, dup := seen[w.ID]; dup {
			return fmt.Errorf("duplicate widget id %q", w.ID)
		}
		seen[w.ID] = struct{}{}

		fp, err := FootprintOf(w.Size)
		if err != nil {
			return err
		}
		if w.Position.X < 0 || w.Position.Y < 0 || w.Position.X+fp.Width > columns {
			return fmt.Errorf("widget %q at (%d,%d) is outside the grid", w.ID, w.Position.X, w.Position.Y)
		}
	}
	_, err := NewOccupancy(widgets, columns)
	return err
}
