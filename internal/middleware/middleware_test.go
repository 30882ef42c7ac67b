package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/GregMSThompson/vehicle-dashboard/pkg/logger"
)

func TestLoggerMiddleware_AddsRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(logger.NewCloudRunHandlerTo(&buf, slog.LevelInfo))
	mw := NewLoggerMiddleware(base)

	h := chimiddleware.RequestID(mw.LoggerMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.FromContext(r.Context()).Info("handled")
	})))

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	h.ServeHTTP(httptest.NewRecorder(), req)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected one JSON log line, got %q: %v", buf.String(), err)
	}
	data, _ := entry["data"].(map[string]any)
	if data["path"] != "/dashboard" || data["method"] != http.MethodGet {
		t.Errorf("missing request attributes: %v", entry)
	}
	if id, _ := data["request_id"].(string); id == "" {
		t.Errorf("expected request_id, got %v", entry)
	}
}

func TestFirebaseAuth_RejectsMissingHeader(t *testing.T) {
	m := NewMiddleware(nil)
	called := false
	h := m.FirebaseAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true }))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/dashboard", nil))

	if rr.Code != http.StatusUnauthorized || called {
		t.Fatalf("expected 401 without calling next, got %d called=%v", rr.Code, called)
	}
}

func TestFirebaseAuth_RejectsMalformedHeader(t *testing.T) {
	m := NewMiddleware(nil)
	h := m.FirebaseAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.Header.Set("Authorization", "Basic abc")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
}

func TestUID(t *testing.T) {
	if got := UID(context.Background()); got != "" {
		t.Errorf("expected empty uid, got %q", got)
	}
	ctx := context.WithValue(context.Background(), UIDKey, "uid1")
	if got := UID(ctx); got != "uid1" {
		t.Errorf("expected uid1, got %q", got)
	}
}
