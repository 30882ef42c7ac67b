// Package layout implements the dashboard widget grid.
//
// The grid has a fixed number of columns and unbounded rows. Each widget covers a
// rectangle derived from its size class, and no two rectangles may overlap. The
// Engine owns the live widget collection for one dashboard, places new widgets with
// a row-major first-fit scan, and mirrors every successful change to a Store.
//
// Occupancy is never stored. It is rebuilt from the widget collection whenever an
// operation needs it, so it cannot drift from the widgets it describes.
package layout
