package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/GregMSThompson/vehicle-dashboard/internal/errs"
)

const maxBodyBytes = 1 << 16

// decodeJSON reads the request body into dst. Malformed bodies are client errors.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return errs.NewValidationError("invalid request body: " + err.Error())
	}
	return nil
}
