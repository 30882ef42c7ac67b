package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/GregMSThompson/vehicle-dashboard/internal/dto"
	"github.com/GregMSThompson/vehicle-dashboard/internal/errs"
	"github.com/GregMSThompson/vehicle-dashboard/internal/layout"
	"github.com/GregMSThompson/vehicle-dashboard/internal/models"
	"github.com/GregMSThompson/vehicle-dashboard/pkg/helpers"
)

// --- Fakes ---

type fakeLayoutStore struct {
	widgets  []models.Widget
	loadErrs []error // returned by successive Load calls before succeeding
	saveErr  error
	loads    int
	saves    int
}

func (f *fakeLayoutStore) Load(_ context.Context) ([]models.Widget, error) {
	f.loads++
	if len(f.loadErrs) > 0 {
		err := f.loadErrs[0]
		f.loadErrs = f.loadErrs[1:]
		return nil, err
	}
	return f.widgets, nil
}

// blockingLayoutStore holds every Load until release is closed.
type blockingLayoutStore struct {
	started chan<- string
	release <-chan struct{}
	uid     string
	loads   *atomic.Int32
}

func (b *blockingLayoutStore) Load(ctx context.Context) ([]models.Widget, error) {
	b.loads.Add(1)
	b.started <- b.uid
	select {
	case <-b.release:
		return nil, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (b *blockingLayoutStore) Save(context.Context, []models.Widget) error { return nil }

func (f *fakeLayoutStore) Save(_ context.Context, widgets []models.Widget) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saves++
	f.widgets = widgets
	return nil
}

type fakeLayoutStores map[string]*fakeLayoutStore

func (f fakeLayoutStores) factory(uid string) layout.Store {
	if _, ok := f[uid]; !ok {
		f[uid] = &fakeLayoutStore{}
	}
	return f[uid]
}

func newDashboardService(stores fakeLayoutStores) *dashboardService {
	return NewDashboardService(stores.factory)
}

func addWidget(t *testing.T, svc *dashboardService, uid string, req dto.CreateWidgetRequest) models.Widget {
	t.Helper()
	res, err := svc.AddWidget(helpers.TestCtx(), uid, req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return res.Widget
}

func intp(v int) *int { return helpers.Ptr(v) }

// --- AddWidget tests ---

func TestAddWidget_CatalogDefaults(t *testing.T) {
	stores := fakeLayoutStores{}
	svc := newDashboardService(stores)

	res, err := svc.AddWidget(helpers.TestCtx(), "uid1", dto.CreateWidgetRequest{Type: models.WidgetVehicles})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Widget.Size != models.SizeLarge {
		t.Errorf("expected default size large, got %s", res.Widget.Size)
	}
	if res.Widget.Title != "My Vehicles" {
		t.Errorf("expected default title, got %q", res.Widget.Title)
	}
	if res.Widget.Color != "blue" {
		t.Errorf("expected default color, got %q", res.Widget.Color)
	}
	if res.Widget.ID == "" {
		t.Error("expected non-empty id")
	}
	if !res.Persisted || stores["uid1"].saves != 1 {
		t.Errorf("expected one save, persisted=%v saves=%d", res.Persisted, stores["uid1"].saves)
	}
}

func TestAddWidget_FirstFit(t *testing.T) {
	svc := newDashboardService(fakeLayoutStores{})

	small := addWidget(t, svc, "uid1", dto.CreateWidgetRequest{Type: models.WidgetRTO, Size: models.SizeSmall})
	medium := addWidget(t, svc, "uid1", dto.CreateWidgetRequest{Type: models.WidgetTrip, Size: models.SizeMedium})
	large := addWidget(t, svc, "uid1", dto.CreateWidgetRequest{Type: models.WidgetStats, Size: models.SizeLarge})

	if small.Position != (models.Position{X: 0, Y: 0}) {
		t.Errorf("small at %+v", small.Position)
	}
	if medium.Position != (models.Position{X: 1, Y: 0}) {
		t.Errorf("medium at %+v", medium.Position)
	}
	if large.Position != (models.Position{X: 0, Y: 1}) {
		t.Errorf("large at %+v", large.Position)
	}
}

func TestAddWidget_Validation(t *testing.T) {
	svc := newDashboardService(fakeLayoutStores{})
	cases := map[string]dto.CreateWidgetRequest{
		"unknown type": {Type: "weather"},
		"bad size":     {Type: models.WidgetTrip, Size: "huge"},
		"long title":   {Type: models.WidgetTrip, Title: strings.Repeat("x", 61)},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.AddWidget(helpers.TestCtx(), "uid1", req)
			var ve *errs.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected ValidationError, got %T: %v", err, err)
			}
		})
	}
}

func TestAddWidget_SaveFailureStillApplied(t *testing.T) {
	stores := fakeLayoutStores{"uid1": {saveErr: errors.New("unavailable")}}
	svc := newDashboardService(stores)

	res, err := svc.AddWidget(helpers.TestCtx(), "uid1", dto.CreateWidgetRequest{Type: models.WidgetNearby})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Persisted {
		t.Error("expected persisted=false")
	}
	dash, _ := svc.GetDashboard(helpers.TestCtx(), "uid1")
	if len(dash.Widgets) != 1 {
		t.Errorf("expected widget kept in memory, got %d", len(dash.Widgets))
	}
}

// --- Engine lifecycle ---

func TestGetDashboard_LoadsOncePerUser(t *testing.T) {
	stores := fakeLayoutStores{}
	svc := newDashboardService(stores)

	addWidget(t, svc, "uid1", dto.CreateWidgetRequest{Type: models.WidgetRTO})
	for i := 0; i < 3; i++ {
		if _, err := svc.GetDashboard(helpers.TestCtx(), "uid1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	other, err := svc.GetDashboard(helpers.TestCtx(), "uid2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if stores["uid1"].loads != 1 {
		t.Errorf("expected a single load for uid1, got %d", stores["uid1"].loads)
	}
	if len(other.Widgets) != 0 {
		t.Errorf("expected uid2 to start empty, got %d widgets", len(other.Widgets))
	}
	if other.Columns != layout.DefaultColumns {
		t.Errorf("expected %d columns, got %d", layout.DefaultColumns, other.Columns)
	}
}

func TestNewDashboardService_Columns(t *testing.T) {
	svc := NewDashboardService(fakeLayoutStores{}.factory, layout.WithColumns(6))
	dash, err := svc.GetDashboard(helpers.TestCtx(), "uid1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dash.Columns != 6 {
		t.Errorf("expected 6 columns, got %d", dash.Columns)
	}
}

// --- MoveWidget tests ---

func TestMoveWidget_MissingCoordinates(t *testing.T) {
	svc := newDashboardService(fakeLayoutStores{})
	w := addWidget(t, svc, "uid1", dto.CreateWidgetRequest{Type: models.WidgetRTO})

	_, err := svc.MoveWidget(helpers.TestCtx(), "uid1", w.ID, dto.MoveWidgetRequest{X: intp(1)})
	var ve *errs.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %T: %v", err, err)
	}
}

func TestMoveWidget_SwapAndReject(t *testing.T) {
	svc := newDashboardService(fakeLayoutStores{})
	a := addWidget(t, svc, "uid1", dto.CreateWidgetRequest{Type: models.WidgetTrip, Size: models.SizeMedium})
	b := addWidget(t, svc, "uid1", dto.CreateWidgetRequest{Type: models.WidgetDocuments, Size: models.SizeMedium})

	res, err := svc.MoveWidget(helpers.TestCtx(), "uid1", a.ID, dto.MoveWidgetRequest{X: intp(2), Y: intp(0)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Widget.Position != b.Position {
		t.Errorf("expected swap into %+v, got %+v", b.Position, res.Widget.Position)
	}

	_, err = svc.MoveWidget(helpers.TestCtx(), "uid1", a.ID, dto.MoveWidgetRequest{X: intp(3), Y: intp(0)})
	var rejected *errs.MoveRejectedError
	if !errors.As(err, &rejected) || rejected.Reason != errs.RejectOutOfBounds {
		t.Fatalf("expected out_of_bounds rejection, got %T: %v", err, err)
	}

	_, err = svc.MoveWidget(helpers.TestCtx(), "uid1", a.ID, dto.MoveWidgetRequest{X: intp(1), Y: intp(0)})
	if !errors.As(err, &rejected) || rejected.Reason != errs.RejectConflict {
		t.Fatalf("expected conflict rejection, got %T: %v", err, err)
	}
}

func TestMoveWidget_Unknown(t *testing.T) {
	svc := newDashboardService(fakeLayoutStores{})
	_, err := svc.MoveWidget(helpers.TestCtx(), "uid1", "ghost", dto.MoveWidgetRequest{X: intp(0), Y: intp(0)})
	var unknown *errs.UnknownWidgetError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownWidgetError, got %T: %v", err, err)
	}
}

// --- Resize / rename / remove ---

func TestResizeWidget_InvalidSizeIsValidationError(t *testing.T) {
	svc := newDashboardService(fakeLayoutStores{})
	w := addWidget(t, svc, "uid1", dto.CreateWidgetRequest{Type: models.WidgetRTO})

	_, err := svc.ResizeWidget(helpers.TestCtx(), "uid1", w.ID, dto.ResizeWidgetRequest{Size: "tiny"})
	var ve *errs.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %T: %v", err, err)
	}
}

func TestResizeWidget_OK(t *testing.T) {
	svc := newDashboardService(fakeLayoutStores{})
	w := addWidget(t, svc, "uid1", dto.CreateWidgetRequest{Type: models.WidgetRTO, Size: models.SizeSmall})

	res, err := svc.ResizeWidget(helpers.TestCtx(), "uid1", w.ID, dto.ResizeWidgetRequest{Size: models.SizeLarge})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Widget.Size != models.SizeLarge {
		t.Errorf("expected large, got %s", res.Widget.Size)
	}
}

func TestRenameWidget(t *testing.T) {
	svc := newDashboardService(fakeLayoutStores{})
	w := addWidget(t, svc, "uid1", dto.CreateWidgetRequest{Type: models.WidgetRTO})

	_, err := svc.RenameWidget(helpers.TestCtx(), "uid1", w.ID, dto.RenameWidgetRequest{Title: "   "})
	var ve *errs.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %T: %v", err, err)
	}

	res, err := svc.RenameWidget(helpers.TestCtx(), "uid1", w.ID, dto.RenameWidgetRequest{Title: "Challans"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Widget.Title != "Challans" {
		t.Errorf("title not updated, got %q", res.Widget.Title)
	}
}

func TestRemoveWidget(t *testing.T) {
	stores := fakeLayoutStores{}
	svc := newDashboardService(stores)
	a := addWidget(t, svc, "uid1", dto.CreateWidgetRequest{Type: models.WidgetRTO})
	b := addWidget(t, svc, "uid1", dto.CreateWidgetRequest{Type: models.WidgetCalculator})

	res, err := svc.RemoveWidget(helpers.TestCtx(), "uid1", a.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Persisted || res.WidgetID != a.ID {
		t.Errorf("unexpected result %+v", res)
	}
	if len(stores["uid1"].widgets) != 1 || stores["uid1"].widgets[0].Position != b.Position {
		t.Errorf("expected only b left in place, got %+v", stores["uid1"].widgets)
	}

	_, err = svc.RemoveWidget(helpers.TestCtx(), "uid1", a.ID)
	var unknown *errs.UnknownWidgetError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownWidgetError, got %T: %v", err, err)
	}
}

// --- Engine cache tests ---

func TestEngine_LoadFailureIsNotCached(t *testing.T) {
	saved := []models.Widget{
		{ID: "a", Type: models.WidgetRTO, Size: models.SizeSmall, Position: models.Position{X: 0, Y: 0}},
		{ID: "b", Type: models.WidgetTrip, Size: models.SizeMedium, Position: models.Position{X: 1, Y: 0}},
		{ID: "c", Type: models.WidgetStats, Size: models.SizeLarge, Position: models.Position{X: 0, Y: 1}},
	}
	store := &fakeLayoutStore{
		widgets:  saved,
		loadErrs: []error{errs.NewDatabaseError("read", "failed to get layout", errors.New("deadline exceeded"))},
	}
	stores := fakeLayoutStores{"uid1": store}
	svc := newDashboardService(stores)

	_, err := svc.AddWidget(helpers.TestCtx(), "uid1", dto.CreateWidgetRequest{Type: models.WidgetRTO})
	var dbErr *errs.DatabaseError
	if !errors.As(err, &dbErr) {
		t.Fatalf("expected DatabaseError, got %T: %v", err, err)
	}
	if store.saves != 0 || len(store.widgets) != 3 {
		t.Fatalf("saved layout touched after failed load: saves=%d widgets=%d", store.saves, len(store.widgets))
	}

	res, err := svc.AddWidget(helpers.TestCtx(), "uid1", dto.CreateWidgetRequest{Type: models.WidgetRTO})
	if err != nil {
		t.Fatalf("unexpected error on retry: %v", err)
	}
	if store.loads != 2 {
		t.Errorf("expected the retry to load again, loads=%d", store.loads)
	}
	if len(store.widgets) != 4 {
		t.Errorf("expected saved widgets kept plus the new one, got %d", len(store.widgets))
	}
	if res.Widget.Position != (models.Position{X: 3, Y: 0}) {
		t.Errorf("expected new widget in first free slot, got %+v", res.Widget.Position)
	}
}

func TestEngine_DifferentUsersLoadConcurrently(t *testing.T) {
	started := make(chan string, 2)
	release := make(chan struct{})
	var loads atomic.Int32
	svc := NewDashboardService(func(uid string) layout.Store {
		return &blockingLayoutStore{started: started, release: release, uid: uid, loads: &loads}
	})

	var wg sync.WaitGroup
	for _, uid := range []string{"uid1", "uid2"} {
		uid := uid
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.GetDashboard(helpers.TestCtx(), uid); err != nil {
				t.Errorf("%s: unexpected error: %v", uid, err)
			}
		}()
	}

	seen := map[string]bool{}
	timeout := time.After(2 * time.Second)
	for len(seen) < 2 {
		select {
		case uid := <-started:
			seen[uid] = true
		case <-timeout:
			close(release)
			wg.Wait()
			t.Fatalf("loads did not overlap, started: %v", seen)
		}
	}
	close(release)
	wg.Wait()
}

func TestEngine_SameUserSharesOneLoad(t *testing.T) {
	started := make(chan string, 8)
	release := make(chan struct{})
	var loads atomic.Int32
	svc := NewDashboardService(func(uid string) layout.Store {
		return &blockingLayoutStore{started: started, release: release, uid: uid, loads: &loads}
	})

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.GetDashboard(helpers.TestCtx(), "uid1"); err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	<-started
	close(release)
	wg.Wait()

	if n := loads.Load(); n != 1 {
		t.Errorf("expected one load, got %d", n)
	}
}
