package cli

import (
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/GregMSThompson/vehicle-dashboard/internal/layout"
	"github.com/GregMSThompson/vehicle-dashboard/internal/models"
)

// Terminal size of one grid cell, borders included.
const (
	cellWidth  = 16
	cellHeight = 4
)

var widgetColors = map[string]lipgloss.Color{
	"blue":   lipgloss.Color("12"),
	"purple": lipgloss.Color("13"),
	"orange": lipgloss.Color("208"),
	"green":  lipgloss.Color("10"),
	"teal":   lipgloss.Color("14"),
	"red":    lipgloss.Color("9"),
	"yellow": lipgloss.Color("11"),
	"indigo": lipgloss.Color("63"),
}

var emptyCellStyle = lipgloss.NewStyle().
	Border(lipgloss.HiddenBorder()).
	Width(cellWidth - 2).
	Height(cellHeight - 2).
	Align(lipgloss.Center, lipgloss.Center).
	Foreground(lipgloss.Color("240"))

// RenderGrid draws the layout one grid row at a time. A widget taller than one row is
// drawn as a stack of segments that only carry the borders at its outer edges.
func RenderGrid(widgets []models.Widget, columns int) (string, error) {
	if len(widgets) == 0 {
		return "empty layout", nil
	}
	occ, err := layout.NewOccupancy(widgets, columns)
	if err != nil {
		return "", err
	}
	byID := make(map[string]models.Widget, len(widgets))
	for _, w := range widgets {
		byID[w.ID] = w
	}

	bands := make([]string, 0, occ.Rows())
	for y := 0; y < occ.Rows(); y++ {
		var blocks []string
		for x := 0; x < columns; {
			id, ok := occ.OccupantAt(models.Position{X: x, Y: y})
			if !ok {
				blocks = append(blocks, emptyCellStyle.Render("·"))
				x++
				continue
			}
			w := byID[id]
			fp := layout.MustFootprintOf(w.Size)
			blocks = append(blocks, renderSegment(w, fp, y-w.Position.Y))
			x += fp.Width - (x - w.Position.X)
		}
		bands = append(bands, lipgloss.JoinHorizontal(lipgloss.Top, blocks...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, bands...), nil
}

// renderSegment draws row offset dy of widget w.
func renderSegment(w models.Widget, fp models.Footprint, dy int) string {
	top := dy == 0
	bottom := dy == fp.Height-1

	height := cellHeight
	if top {
		height--
	}
	if bottom {
		height--
	}
	contentWidth := fp.Width*cellWidth - 2

	color, ok := widgetColors[w.Color]
	if !ok {
		color = lipgloss.Color("7")
	}
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder(), top, true, bottom, true).
		BorderForeground(color).
		Width(contentWidth).
		Height(height)

	var lines []string
	if top {
		lines = append(lines,
			lipgloss.NewStyle().Bold(true).Foreground(color).Render(truncate(w.Title, contentWidth)),
			truncate(string(w.Size)+" · "+w.ID, contentWidth),
		)
	}
	return style.Render(strings.Join(lines[:min(len(lines), height)], "\n"))
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width <= 1 {
		return string(r[:width])
	}
	return string(r[:width-1]) + "…"
}

// sortedByPosition orders widgets row-major by their top-left cell.
func sortedByPosition(widgets []models.Widget) []models.Widget {
	out := slices.Clone(widgets)
	slices.SortFunc(out, func(a, b models.Widget) int {
		if a.Position.Y != b.Position.Y {
			return a.Position.Y - b.Position.Y
		}
		return a.Position.X - b.Position.X
	})
	return out
}
