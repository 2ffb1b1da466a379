// Package screen is the host-independent picture of the window: the view
// the controller swapped in, the animation overlay, the gallery scroll
// offset and the editor buffer. Hosts draw it and route input through it.
package screen

import (
	"github.com/starford/stickynote/internal/editor"
	"github.com/starford/stickynote/internal/geom"
	"github.com/starford/stickynote/internal/models"
	"github.com/starford/stickynote/internal/transition"
	"github.com/starford/stickynote/internal/view"
	"github.com/starford/stickynote/internal/widget"
)

// ScrollStep is how far one wheel notch moves the gallery.
const ScrollStep = 40

// Model implements widget.Surface. It is not safe for concurrent use.
type Model struct {
	metrics widget.Metrics
	vp      geom.Rect
	view    widget.View
	overlay *transition.Frame
	scroll  float64
	buffer  *editor.Buffer
}

// New returns a model for a w by h window.
func New(metrics widget.Metrics, w, h int) *Model {
	return &Model{
		metrics: metrics,
		vp:      geom.XYWH(0, 0, float64(w), float64(h)),
		buffer:  editor.New(""),
	}
}

// Metrics returns the chrome sizes.
func (m *Model) Metrics() widget.Metrics { return m.metrics }

// Resize sets the window size and reports whether it changed.
func (m *Model) Resize(w, h int) bool {
	vp := geom.XYWH(0, 0, float64(w), float64(h))
	if vp == m.vp {
		return false
	}
	m.vp = vp
	m.clampScroll()
	return true
}

// Viewport is the window client area.
func (m *Model) Viewport() geom.Rect { return m.vp }

// MeasureEditor reports the editor text rect while the editor is shown.
func (m *Model) MeasureEditor() (geom.Rect, bool) {
	if m.view.State.Kind != view.Editor {
		return geom.Rect{}, false
	}
	r := m.metrics.EditorTextRect(m.vp)
	return r, !r.Empty()
}

// MeasureThumbnail reports the on-screen rect of a gallery thumbnail. Cells
// scrolled out of the canvas have no on-screen counterpart.
func (m *Model) MeasureThumbnail(id models.NoteID) (geom.Rect, bool) {
	if m.view.State.Kind != view.Gallery {
		return geom.Rect{}, false
	}
	i := m.view.Layout.Index(id)
	if i < 0 {
		return geom.Rect{}, false
	}
	r := m.thumbRect(i)
	canvas := m.Canvas()
	if r.Y2 <= canvas.Y1 || r.Y1 >= canvas.Y2 {
		return geom.Rect{}, false
	}
	return r, true
}

// PaintFrame stores f as the overlay.
func (m *Model) PaintFrame(f transition.Frame) {
	m.overlay = &f
}

// ClearOverlay drops the overlay.
func (m *Model) ClearOverlay() { m.overlay = nil }

// SwapView replaces the settled content. Entering the gallery from another
// view starts at the top; rebuilding it keeps the scroll offset.
func (m *Model) SwapView(v widget.View) {
	prev := m.view.State.Kind
	m.view = v
	switch v.State.Kind {
	case view.Editor:
		m.buffer.SetText(v.Text)
	case view.Gallery:
		if prev != view.Gallery {
			m.scroll = 0
		}
		m.clampScroll()
	}
}

// View returns the settled content.
func (m *Model) View() widget.View { return m.view }

// Overlay returns the animation frame being shown, if any.
func (m *Model) Overlay() (transition.Frame, bool) {
	if m.overlay == nil {
		return transition.Frame{}, false
	}
	return *m.overlay, true
}

// Buffer is the editor text buffer.
func (m *Model) Buffer() *editor.Buffer { return m.buffer }

// Canvas is the gallery thumbnail area.
func (m *Model) Canvas() geom.Rect { return m.metrics.GalleryCanvas(m.vp) }

// ScrollOffset is how far the gallery is scrolled down.
func (m *Model) ScrollOffset() float64 { return m.scroll }

// Scroll moves the gallery by dy pixels, clamped to the content.
func (m *Model) Scroll(dy float64) {
	m.scroll += dy
	m.clampScroll()
}

func (m *Model) maxScroll() float64 {
	if m.view.State.Kind != view.Gallery {
		return 0
	}
	return max(0, m.view.Layout.ContentHeight()-m.Canvas().Height())
}

func (m *Model) clampScroll() {
	m.scroll = max(0, min(m.scroll, m.maxScroll()))
}

func (m *Model) thumbRect(i int) geom.Rect {
	canvas := m.Canvas()
	return m.view.Layout.CellRect(i).Offset(canvas.X1, canvas.Y1-m.scroll)
}

// Thumb is one gallery thumbnail as drawn.
type Thumb struct {
	ID      models.NoteID
	Rect    geom.Rect
	Badge   geom.Rect
	Preview string
	Focus   bool
}

// Thumbs returns the thumbnails intersecting the canvas in visual order.
func (m *Model) Thumbs() []Thumb {
	if m.view.State.Kind != view.Gallery {
		return nil
	}
	canvas := m.Canvas()
	var out []Thumb
	for i, id := range m.view.Layout.Order {
		r := m.thumbRect(i)
		if r.Y2 <= canvas.Y1 || r.Y1 >= canvas.Y2 {
			continue
		}
		out = append(out, Thumb{
			ID:      id,
			Rect:    r,
			Badge:   widget.DeleteBadge(r),
			Preview: m.view.Previews[id],
			Focus:   id == m.view.State.Focus,
		})
	}
	return out
}

// ScrollbarThumb is the draggable part of the scrollbar. ok is false when
// everything fits.
func (m *Model) ScrollbarThumb() (geom.Rect, bool) {
	total := m.view.Layout.ContentHeight()
	track := m.metrics.ScrollbarTrack(m.vp)
	if m.view.State.Kind != view.Gallery || total <= track.Height() || track.Height() <= 0 {
		return geom.Rect{}, false
	}
	h := max(24, track.Height()*track.Height()/total)
	span := track.Height() - h
	y := track.Y1 + span*(m.scroll/m.maxScroll())
	return geom.R(track.X1+2, y, track.X2-2, y+h), true
}
