package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GregMSThompson/vehicle-dashboard/internal/errs"
	"github.com/GregMSThompson/vehicle-dashboard/pkg/helpers"
	"github.com/GregMSThompson/vehicle-dashboard/pkg/logger"
)

func newTestHandler() *responseHandler {
	return New(slog.New(logger.NewTestHandler(slog.LevelInfo)))
}

func newRequest() *http.Request {
	return httptest.NewRequest(http.MethodGet, "/", nil).WithContext(helpers.TestCtx())
}

func TestHandleError_Mapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
		reason string
	}{
		{"validation", errs.NewValidationError("bad"), http.StatusBadRequest, "invalid_input", ""},
		{"not found", errs.NewNotFoundError("missing"), http.StatusNotFound, "not_found", ""},
		{"unknown widget", errs.NewUnknownWidgetError("w1"), http.StatusNotFound, "unknown_widget", ""},
		{"out of bounds", errs.NewMoveRejectedError("w1", errs.RejectOutOfBounds), http.StatusConflict, "move_rejected", "out_of_bounds"},
		{"conflict", errs.NewMoveRejectedError("w1", errs.RejectConflict), http.StatusConflict, "move_rejected", "conflict"},
		{"invalid size", errs.NewInvalidSizeClassError("huge"), http.StatusInternalServerError, "internal_error", ""},
		{"too wide", errs.NewFootprintExceedsGridWidthError(2, 1), http.StatusInternalServerError, "internal_error", ""},
		{"database", errs.NewDatabaseError("save", "boom", errors.New("x")), http.StatusInternalServerError, "internal_error", ""},
		{"persist", errs.NewPersistError(errors.New("x")), http.StatusInternalServerError, "internal_error", ""},
		{"other", errors.New("x"), http.StatusInternalServerError, "internal_error", ""},
		{"wrapped unknown widget", fmt.Errorf("removing: %w", errs.NewUnknownWidgetError("w1")), http.StatusNotFound, "unknown_widget", ""},
		{"wrapped validation", fmt.Errorf("decoding: %w", errs.NewValidationError("bad")), http.StatusBadRequest, "invalid_input", ""},
		{"wrapped conflict", fmt.Errorf("moving: %w", errs.NewMoveRejectedError("w1", errs.RejectConflict)), http.StatusConflict, "move_rejected", "conflict"},
	}

	h := newTestHandler()
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.HandleError(rec, newRequest(), tc.err)

			assert.Equal(t, tc.status, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var body ErrorResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.Equal(t, tc.code, body.Code)
			assert.Equal(t, tc.reason, body.Reason)
			assert.NotEmpty(t, body.Message)
		})
	}
}

func TestHandleError_HidesInternalDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestHandler().HandleError(rec, newRequest(), errs.NewDatabaseError("save", "connection string leaked", errors.New("x")))

	var body ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "An error occurred", body.Message)
}

func TestWriteSuccess(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestHandler().WriteSuccess(rec, newRequest(), http.StatusCreated, map[string]int{"columns": 4})

	assert.Equal(t, http.StatusCreated, rec.Code)
	var body struct {
		Success bool           `json:"success"`
		Data    map[string]int `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.True(t, body.Success)
	assert.Equal(t, 4, body.Data["columns"])
}
