package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"

	"github.com/GregMSThompson/vehicle-dashboard/internal/config"
	"github.com/GregMSThompson/vehicle-dashboard/internal/store"
)

const connectTimeout = 10 * time.Second

func noopClose() error { return nil }

// OpenLayouts connects the layout backend named in cfg. The returned func closes it.
// fs is only used by the firestore backend.
func OpenLayouts(ctx context.Context, cfg config.StoreConfig, fs *firestore.Client) (store.LayoutBackend, func() error, error) {
	switch cfg.Backend {
	case config.BackendFirestore:
		if fs == nil {
			return nil, nil, errors.New("firestore backend selected without a firestore client")
		}
		return store.NewFirestoreLayouts(fs), noopClose, nil

	case config.BackendSQLite:
		s, err := store.NewSQLiteLayouts(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil

	case config.BackendRedis:
		connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
		defer cancel()
		s, err := store.NewRedisLayouts(connectCtx, store.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil

	case config.BackendMongo:
		connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
		defer cancel()
		s, err := store.NewMongoLayouts(connectCtx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, nil, err
		}
		return s, func() error {
			closeCtx, cancel := context.WithTimeout(context.Background(), connectTimeout)
			defer cancel()
			return s.Close(closeCtx)
		}, nil

	case config.BackendMemory:
		return store.NewMemoryLayouts(), noopClose, nil

	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}
