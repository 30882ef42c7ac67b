package layout

import (
	"github.com/GregMSThompson/vehicle-dashboard/internal/errs"
	"github.com/GregMSThompson/vehicle-dashboard/internal/models"
)

// FindSlot returns the first free top-left cell for fp, scanning rows from the top and
// cells left to right. The row below the lowest widget is always empty, so the scan
// never needs to look past it.
func FindSlot(fp models.Footprint, occ *Occupancy) (models.Position, error) {
	if fp.Width > occ.Columns() {
		return models.Position{}, errs.NewFootprintExceedsGridWidthError(fp.Width, occ.Columns())
	}
	bound := occ.Rows()
	for y := 0; y <= bound; y++ {
		for x := 0; x+fp.Width <= occ.Columns(); x++ {
			cell := models.Position{X: x, Y: y}
			if occ.IsFree(cell, fp, "") {
				return cell, nil
			}
		}
	}
	return models.Position{X: 0, Y: bound}, nil
}
