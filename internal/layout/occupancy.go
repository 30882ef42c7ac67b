package layout

import (
	"fmt"

	"github.com/GregMSThompson/vehicle-dashboard/internal/models"
)

// Occupancy is a read-only view of which widget covers which cell.
type Occupancy struct {
	columns int
	rows    int
	cells   map[models.Position]string
}

// NewOccupancy derives the occupied cells from widgets. It fails on an unknown size
// class or when two widgets claim the same cell.
func NewOccupancy(widgets []models.Widget, columns int) (*Occupancy, error) {
	occ := &Occupancy{
		columns: columns,
		cells:   make(map[models.Position]string, len(widgets)*2),
	}
	for _, w := range widgets {
		fp, err := FootprintOf(w.Size)
		if err != nil {
			return nil, err
		}
		for _, c := range cellsOf(w.Position, fp) {
			if other, taken := occ.cells[c]; taken {
				return nil, fmt.Errorf("widgets %q and %q overlap at (%d,%d)", other, w.ID, c.X, c.Y)
			}
			occ.cells[c] = w.ID
		}
		if bottom := w.Position.Y + fp.Height; bottom > occ.rows {
			occ.rows = bottom
		}
	}
	return occ, nil
}

// Columns is the grid width.
func (o *Occupancy) Columns() int { return o.columns }

// Rows is one past the lowest occupied row. Every row at or below it is empty.
func (o *Occupancy) Rows() int { return o.rows }

// InBounds reports whether a footprint anchored at cell stays inside the grid columns.
func (o *Occupancy) InBounds(cell models.Position, fp models.Footprint) bool {
	return cell.X >= 0 && cell.Y >= 0 && cell.X+fp.Width <= o.columns
}

// IsFree reports whether the rectangle anchored at cell is in bounds and covered by no
// widget other than excludeID. Pass an empty excludeID to consider every widget.
func (o *Occupancy) IsFree(cell models.Position, fp models.Footprint, excludeID string) bool {
	if !o.InBounds(cell, fp) {
		return false
	}
	for _, c := range cellsOf(cell, fp) {
		if id, taken := o.cells[c]; taken && (excludeID == "" || id != excludeID) {
			return false
		}
	}
	return true
}

// OccupantAt returns the id of the widget covering cell.
func (o *Occupancy) OccupantAt(cell models.Position) (string, bool) {
	id, ok := o.cells[cell]
	return id, ok
}

func cellsOf(origin models.Position, fp models.Footprint) []models.Position {
	cells := make([]models.Position, 0, fp.Width*fp.Height)
	for dy := 0; dy < fp.Height; dy++ {
		for dx := 0; dx < fp.Width; dx++ {
			cells = append(cells, models.Position{X: origin.X + dx, Y: origin.Y + dy})
		}
	}
	return cells
}
