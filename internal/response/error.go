package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/GregMSThompson/vehicle-dashboard/internal/errs"
	"github.com/GregMSThompson/vehicle-dashboard/pkg/logger"
)

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	// Reason is set for rejected moves: "out_of_bounds" or "conflict".
	Reason string `json:"reason,omitempty"`
}

func (h *responseHandler) WriteError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	h.writeError(w, r, status, ErrorResponse{Code: code, Message: message})
}

func (h *responseHandler) writeError(w http.ResponseWriter, r *http.Request, status int, body ErrorResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		// Use context logger if encoding fails
		log := logger.FromContext(r.Context())
		log.Error("failed to encode error response", "error", err, "status", status, "code", body.Code)
	}
}

func (h *responseHandler) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContext(r.Context())

	var (
		unknownErr  *errs.UnknownWidgetError
		notFoundErr *errs.NotFoundError
		validErr    *errs.ValidationError
		rejectedErr *errs.MoveRejectedError
		sizeErr     *errs.InvalidSizeClassError
		widthErr    *errs.FootprintExceedsGridWidthError
		persistErr  *errs.PersistError
		dbErr       *errs.DatabaseError
	)

	switch {
	case errors.As(err, &unknownErr):
		log.Warn("unknown widget", "widget_id", unknownErr.WidgetID)
		h.WriteError(w, r, http.StatusNotFound, "unknown_widget", unknownErr.Message)

	case errors.As(err, &notFoundErr):
		log.Warn("resource not found", "error", notFoundErr.Message)
		h.WriteError(w, r, http.StatusNotFound, "not_found", notFoundErr.Message)

	case errors.As(err, &validErr):
		log.Warn("validation failed", "error", validErr.Message)
		h.WriteError(w, r, http.StatusBadRequest, "invalid_input", validErr.Message)

	case errors.As(err, &rejectedErr):
		h.writeError(w, r, http.StatusConflict, ErrorResponse{
			Code:    "move_rejected",
			Message: rejectedErr.Message,
			Reason:  string(rejectedErr.Reason),
		})

	case errors.As(err, &sizeErr), errors.As(err, &widthErr):
		// Sizes are validated before they reach the engine, so this is a server fault.
		log.Error("layout configuration error", "error", err)
		h.WriteError(w, r, http.StatusInternalServerError, "internal_error",
			"An error occurred")

	// PersistError wraps the store's DatabaseError, so it is matched first.
	case errors.As(err, &persistErr):
		log.Error("layout not saved", "error", persistErr.Err)
		h.WriteError(w, r, http.StatusInternalServerError, "internal_error",
			"An error occurred")

	case errors.As(err, &dbErr):
		log.Error("database error",
			"operation", dbErr.Operation,
			"error", dbErr.Message)
		h.WriteError(w, r, http.StatusInternalServerError, "internal_error",
			"An error occurred")

	default:
		log.Error("unexpected error",
			"error", err,
			"type", fmt.Sprintf("%T", err))
		h.WriteError(w, r, http.StatusInternalServerError, "internal_error",
			"An unexpected error occurred")
	}
}
