package widget

import "github.com/starford/stickynote/internal/geom"

// Metrics are the fixed window chrome sizes shared by the controller and
// the surfaces.
type Metrics struct {
	OuterPad     float64
	SidebarWidth float64
	SidebarGap   float64
	IconSize     float64
	TopBar       float64
	Scrollbar    float64
}

// DefaultMetrics returns the stock chrome.
func DefaultMetrics() Metrics {
	return Metrics{
		OuterPad:     10,
		SidebarWidth: 68,
		SidebarGap:   6,
		IconSize:     42,
		TopBar:       50,
		Scrollbar:    12,
	}
}

// EditorTextRect is the editor text area for a viewport: inset by the outer
// pad with the sidebar on the right. Too-small viewports collapse onto the
// viewport center instead of inverting.
func (m Metrics) EditorTextRect(vp geom.Rect) geom.Rect {
	x1 := vp.X1 + m.OuterPad
	y1 := vp.Y1 + m.OuterPad
	x2 := vp.X2 - (m.OuterPad + m.SidebarWidth + m.SidebarGap)
	y2 := vp.Y2 - m.OuterPad
	if x2 <= x1 || y2 <= y1 {
		c := vp.Center()
		return geom.Rect{X1: c.X, Y1: c.Y, X2: c.X, Y2: c.Y}
	}
	return geom.Rect{X1: x1, Y1: y1, X2: x2, Y2: y2}
}

// Sidebar is the editor's right-hand button column.
func (m Metrics) Sidebar(vp geom.Rect) geom.Rect {
	x2 := vp.X2 - m.OuterPad
	return geom.R(max(vp.X1, x2-m.SidebarWidth), vp.Y1+m.OuterPad, x2, max(vp.Y1+m.OuterPad, vp.Y2-m.OuterPad))
}

// GalleryButton is the icon at the top of the sidebar.
func (m Metrics) GalleryButton(vp geom.Rect) geom.Rect {
	sb := m.Sidebar(vp)
	x := sb.Center().X - m.IconSize/2
	return geom.XYWH(x, sb.Y1+m.OuterPad, m.IconSize, m.IconSize)
}

// PlusButton is the new-note button at the bottom of the sidebar.
func (m Metrics) PlusButton(vp geom.Rect) geom.Rect {
	sb := m.Sidebar(vp)
	x := sb.Center().X - m.IconSize/2
	return geom.XYWH(x, sb.Y2-m.OuterPad-m.IconSize, m.IconSize, m.IconSize)
}

// GalleryTopBar holds the edit and cancel buttons.
func (m Metrics) GalleryTopBar(vp geom.Rect) geom.Rect {
	return geom.R(vp.X1+m.OuterPad, vp.Y1, vp.X2-m.OuterPad, vp.Y1+m.TopBar)
}

// EditButton is the pencil at the right of the gallery top bar.
func (m Metrics) EditButton(vp geom.Rect) geom.Rect {
	bar := m.GalleryTopBar(vp)
	return geom.XYWH(bar.X2-34, bar.Y1+8, 34, 34)
}

// CancelButton is the chevron at the left of the gallery top bar.
func (m Metrics) CancelButton(vp geom.Rect) geom.Rect {
	bar := m.GalleryTopBar(vp)
	return geom.XYWH(bar.X1, bar.Y1+8, 34, 34)
}

// GalleryCanvas is the scrollable thumbnail area, left of the scrollbar.
func (m Metrics) GalleryCanvas(vp geom.Rect) geom.Rect {
	x1 := vp.X1 + m.OuterPad
	y1 := vp.Y1 + m.TopBar
	x2 := max(x1, vp.X2-m.OuterPad-m.Scrollbar)
	y2 := max(y1, vp.Y2-m.OuterPad)
	return geom.Rect{X1: x1, Y1: y1, X2: x2, Y2: y2}
}

// ScrollbarTrack is the strip right of the gallery canvas.
func (m Metrics) ScrollbarTrack(vp geom.Rect) geom.Rect {
	c := m.GalleryCanvas(vp)
	return geom.Rect{X1: c.X2, Y1: c.Y1, X2: c.X2 + m.Scrollbar, Y2: c.Y2}
}

// DeleteBadge is the round delete control inside a thumbnail cell.
func DeleteBadge(cell geom.Rect) geom.Rect {
	return geom.R(cell.X2-28, cell.Y1+8, cell.X2-8, cell.Y1+28)
}
