package layout

import (
	"github.com/GregMSThompson/vehicle-dashboard/internal/errs"
	"github.com/GregMSThompson/vehicle-dashboard/internal/models"
)

var footprints = map[models.SizeClass]models.Footprint{
	models.SizeSmall:  {Width: 1, Height: 1},
	models.SizeMedium: {Width: 2, Height: 1},
	models.SizeLarge:  {Width: 2, Height: 2},
}

// FootprintOf returns the cells covered by a widget of the given size class.
func FootprintOf(size models.SizeClass) (models.Footprint, error) {
	fp, ok := footprints[size]
	if !ok {
		return models.Footprint{}, errs.NewInvalidSizeClassError(string(size))
	}
	return fp, nil
}

// MustFootprintOf is FootprintOf for size classes that were already validated.
func MustFootprintOf(size models.SizeClass) models.Footprint {
	fp, err := FootprintOf(size)
	if err != nil {
		panic(err)
	}
	return fp
}

// ValidSize reports whether size has a footprint.
func ValidSize(size models.SizeClass) bool {
	_, ok := footprints[size]
	return ok
}
