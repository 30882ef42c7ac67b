package store

import (
	"encoding/json"
	"fmt"

	"github.com/GregMSThompson/vehicle-dashboard/internal/models"
)

// encodeWidgets serializes a widget collection as a JSON array.
func encodeWidgets(widgets []models.Widget) ([]byte, error) {
	if widgets == nil {
		widgets = []models.Widget{}
	}
	b, err := json.Marshal(widgets)
	if err != nil {
		return nil, fmt.Errorf("encoding layout: %w", err)
	}
	return b, nil
}

// decodeWidgets parses a payload written by encodeWidgets. An empty payload is an
// empty layout.
func decodeWidgets(payload []byte) ([]models.Widget, error) {
	if len(payload) == 0 {
		return nil, nil
	}
	var widgets []models.Widget
	if err := json.Unmarshal(payload, &widgets); err != nil {
		return nil, fmt.Errorf("decoding layout: %w", err)
	}
	return widgets, nil
}
