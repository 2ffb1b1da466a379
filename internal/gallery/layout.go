// Package gallery computes the grid arrangement of note thumbnails.
package gallery

import (
	"math"
	"strings"

	"github.com/starford/stickynote/internal/geom"
	"github.com/starford/stickynote/internal/models"
)

// Params are the sizing rules for the thumbnail grid.
type Params struct {
	MinCellWidth  int
	MaxCellWidth  int
	Gutter        int
	MinCellHeight int
	// Aspect is window width divided by window height. Thumbnails keep the
	// editor's proportions.
	Aspect float64
}

// DefaultParams returns the stock grid sizing.
func DefaultParams() Params {
	return Params{
		MinCellWidth:  210,
		MaxCellWidth:  260,
		Gutter:        14,
		MinCellHeight: 120,
		Aspect:        860.0 / 620.0,
	}
}

// Layout is one computed arrangement. It is derived data and never persisted.
type Layout struct {
	Width      int
	Columns    int
	CellWidth  int
	CellHeight int
	Gutter     int
	Order      []models.NoteID
	EditMode   bool
}

// Compute arranges order into a grid that fits width. The focused note is
// moved to the middle slot of the first row; everything else keeps its
// relative order. The result depends only on the arguments.
func Compute(p Params, width int, order []models.NoteID, focus models.NoteID, editMode bool) Layout {
	if width < 1 {
		width = 1
	}
	columns := max(1, width/(p.MinCellWidth+p.Gutter))

	available := width - p.Gutter*(columns+1)
	if available <= 0 {
		available = width - 2*p.Gutter
	}
	cellW := min(p.MaxCellWidth, available/columns)
	cellW = max(p.MinCellWidth, cellW)

	aspect := p.Aspect
	if aspect <= 0 || math.IsNaN(aspect) || math.IsInf(aspect, 0) {
		aspect = DefaultParams().Aspect
	}
	cellH := max(p.MinCellHeight, int(float64(cellW)/aspect))

	return Layout{
		Width:      width,
		Columns:    columns,
		CellWidth:  cellW,
		CellHeight: cellH,
		Gutter:     p.Gutter,
		Order:      VisualOrder(order, focus, columns),
		EditMode:   editMode,
	}
}

// VisualOrder places focus at slot min(total-1, columns/2) and fills the
// remaining slots with the other ids in their existing order. If focus is
// not in order, a copy of order is returned unchanged.
func VisualOrder(order []models.NoteID, focus models.NoteID, columns int) []models.NoteID {
	out := make([]models.NoteID, 0, len(order))
	if models.IndexOf(order, focus) < 0 {
		return append(out, order...)
	}

	center := min(len(order)-1, max(0, columns/2))
	for _, id := range order {
		if id == focus {
			continue
		}
		if len(out) == center {
			out = append(out, focus)
		}
		out = append(out, id)
	}
	if len(out) == center {
		out = append(out, focus)
	}
	return out
}

// Index returns the slot of id in the layout, or -1.
func (l Layout) Index(id models.NoteID) int {
	return models.IndexOf(l.Order, id)
}

// Rows returns the number of grid rows.
func (l Layout) Rows() int {
	if l.Columns <= 0 || len(l.Order) == 0 {
		return 0
	}
	return (len(l.Order) + l.Columns - 1) / l.Columns
}

// CellRect is the rectangle of slot i relative to the top-left of the
// scrollable canvas. Each column gets an equal share of the canvas width and
// the cell sits centered in its share; rows stack by cell height plus gutter.
func (l Layout) CellRect(i int) geom.Rect {
	if l.Columns <= 0 || i < 0 {
		return geom.Rect{}
	}
	row, col := i/l.Columns, i%l.Columns
	colW := float64(l.Width) / float64(l.Columns)
	half := float64(l.Gutter / 2)

	x := float64(col)*colW + (colW-float64(l.CellWidth))/2
	y := half + float64(row)*float64(l.CellHeight+2*(l.Gutter/2))
	return geom.XYWH(x, y, float64(l.CellWidth), float64(l.CellHeight))
}

// Rects maps every laid-out id to its CellRect translated by origin and
// shifted up by scroll.
func (l Layout) Rects(origin geom.Point, scroll float64) map[models.NoteID]geom.Rect {
	out := make(map[models.NoteID]geom.Rect, len(l.Order))
	for i, id := range l.Order {
		out[id] = l.CellRect(i).Offset(origin.X, origin.Y-scroll)
	}
	return out
}

// ContentHeight is the total scrollable height of the grid.
func (l Layout) ContentHeight() float64 {
	rows := l.Rows()
	if rows == 0 {
		return 0
	}
	return float64(rows * (l.CellHeight + 2*(l.Gutter/2)))
}

// HitTest returns the id whose cell contains the canvas-relative point.
func (l Layout) HitTest(x, y float64) (models.NoteID, bool) {
	for i, id := range l.Order {
		if l.CellRect(i).Contains(x, y) {
			return id, true
		}
	}
	return "", false
}

// Key identifies everything that changes what the grid looks like.
type Key struct {
	Width      int
	Columns    int
	CellWidth  int
	CellHeight int
	Order      string
	EditMode   bool
}

// Key returns the layout key of l.
func (l Layout) Key() Key {
	ids := make([]string, len(l.Order))
	for i, id := range l.Order {
		ids[i] = string(id)
	}
	return Key{
		Width:      l.Width,
		Columns:    l.Columns,
		CellWidth:  l.CellWidth,
		CellHeight: l.CellHeight,
		Order:      strings.Join(ids, "\x00"),
		EditMode:   l.EditMode,
	}
}

// Cache remembers the last built layout key so identical refreshes can be
// skipped.
type Cache struct {
	key   Key
	valid bool
}

// Changed reports whether a rebuild is needed for k and records k as built
// when it is. force always rebuilds.
func (c *Cache) Changed(k Key, force bool) bool {
	if !force && c.valid && c.key == k {
		return false
	}
	c.key, c.valid = k, true
	return true
}

// Reset forgets the cached key.
func (c *Cache) Reset() {
	c.valid = false
}
