package bootstrap

import (
	"context"
	"errors"
	"log/slog"

	"cloud.google.com/go/firestore"
	"firebase.google.com/go/v4/auth"

	"github.com/GregMSThompson/vehicle-dashboard/internal/config"
	"github.com/GregMSThompson/vehicle-dashboard/internal/store"
	"github.com/GregMSThompson/vehicle-dashboard/pkg/logger"
)

type Bootstrap struct {
	Log       *slog.Logger
	Firestore *firestore.Client
	Firebase  *auth.Client
	Layouts   store.LayoutBackend
	Modules   store.ModuleBackend

	closers []func() error
}

func Run(cfg *config.Config) (*Bootstrap, error) {
	var err error
	applicationCtx := context.Background()
	bs := new(Bootstrap)

	bs.Log = logger.New(cfg.Log.Level, logger.HandlerFor(cfg.Log.Format))
	if cfg.Store.Backend == config.BackendFirestore {
		bs.Firestore, err = InitFirestore(applicationCtx, cfg.ProjectID)
		if err != nil {
			return bs, err
		}
		bs.closers = append(bs.closers, bs.Firestore.Close)
	}
	bs.Firebase, err = InitFirebase(applicationCtx, cfg.ProjectID)
	if err != nil {
		return bs, err
	}

	layouts, closeLayouts, err := OpenLayouts(applicationCtx, cfg.Store, bs.Firestore)
	if err != nil {
		return bs, err
	}
	bs.Layouts = layouts
	bs.closers = append(bs.closers, closeLayouts)

	// Module preferences only have a Firestore implementation.
	if bs.Firestore != nil {
		bs.Modules = store.NewFirestoreModules(bs.Firestore)
	} else {
		bs.Modules = store.NewMemoryModules()
	}

	bs.Log.Info("bootstrap complete", "store_backend", cfg.Store.Backend, "grid_columns", cfg.Grid.Columns)
	return bs, nil
}

// Close releases every client opened by Run, newest first.
func (bs *Bootstrap) Close() error {
	var errList []error
	for i := len(bs.closers) - 1; i >= 0; i-- {
		if err := bs.closers[i](); err != nil {
			errList = append(errList, err)
		}
	}
	return errors.Join(errList...)
}
