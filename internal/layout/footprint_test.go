package layout

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GregMSThompson/vehicle-dashboard/internal/errs"
	"github.com/GregMSThompson/vehicle-dashboard/internal/models"
)

func TestFootprintOf(t *testing.T) {
	tests := []struct {
		size models.SizeClass
		want models.Footprint
	}{
		{models.SizeSmall, models.Footprint{Width: 1, Height: 1}},
		{models.SizeMedium, models.Footprint{Width: 2, Height: 1}},
		{models.SizeLarge, models.Footprint{Width: 2, Height: 2}},
	}
	for _, tt := range tests {
		t.Run(string(tt.size), func(t *testing.T) {
			got, err := FootprintOf(tt.size)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFootprintOf_Invalid(t *testing.T) {
	_, err := FootprintOf("huge")

	var sizeErr *errs.InvalidSizeClassError
	require.True(t, errors.As(err, &sizeErr), "expected InvalidSizeClassError, got %T", err)
	assert.Equal(t, "huge", sizeErr.Size)
}

func TestMustFootprintOf_Panics(t *testing.T) {
	assert.Panics(t, func() { MustFootprintOf("") })
	assert.NotPanics(t, func() { MustFootprintOf(models.SizeLarge) })
}
