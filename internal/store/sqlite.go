package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/GregMSThompson/vehicle-dashboard/internal/errs"
	"github.com/GregMSThompson/vehicle-dashboard/internal/models"
)

// SQLiteLayouts stores one JSON payload row per owner.
type SQLiteLayouts struct {
	db *sql.DB
}

// NewSQLiteLayouts opens the database at path and creates the schema if needed.
func NewSQLiteLayouts(path string) (*SQLiteLayouts, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &SQLiteLayouts{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return s, nil
}

func (s *SQLiteLayouts) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS layouts (
			owner      TEXT PRIMARY KEY,
			payload    TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)
	`)
	return err
}

func (s *SQLiteLayouts) Close() error {
	return s.db.Close()
}

func (s *SQLiteLayouts) LoadLayout(ctx context.Context, owner string) ([]models.Widget, error) {
	var payload string
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM layouts WHERE owner = ?`, owner).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errs.NewDatabaseError("read", "failed to get layout", err)
	}
	return decodeWidgets([]byte(payload))
}

func (s *SQLiteLayouts) SaveLayout(ctx context.Context, owner string, widgets []models.Widget) error {
	payload, err := encodeWidgets(widgets)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO layouts (owner, payload, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(owner) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at
	`, owner, string(payload), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return errs.NewDatabaseError("update", "failed to save layout", err)
	}
	return nil
}
