package screen

import (
	"github.com/starford/stickynote/internal/editor"
	"github.com/starford/stickynote/internal/geom"
	"github.com/starford/stickynote/internal/icon"
	"github.com/starford/stickynote/internal/transition"
	"github.com/starford/stickynote/internal/view"
)

// Painter is the drawing backend of a host.
type Painter interface {
	// Fill paints the whole target.
	Fill(c geom.Color)
	// FillPolygon paints a convex polygon.
	FillPolygon(pts []geom.Point, c geom.Color)
	// Text draws one line with its top-left corner at x, y.
	Text(s string, x, y, size float64, c geom.Color)
	// Measure returns the advance width of s.
	Measure(s string, size float64) float64
	// LineHeight is the distance between baselines.
	LineHeight(size float64) float64
	// Icon draws k centered in r.
	Icon(k icon.Kind, r geom.Rect, tint, bg geom.Color)
}

// Decor is transient presentation state owned by the host.
type Decor struct {
	Hover   Target
	CaretOn bool
}

// Draw paints the model: the settled view, then the overlay on top.
func Draw(m *Model, p Painter, th Theme, d Decor) {
	if f, ok := m.Overlay(); ok {
		drawFrame(p, th, f)
		return
	}
	switch m.view.State.Kind {
	case view.Gallery:
		drawGallery(m, p, th, d)
	default:
		drawEditor(m, p, th, d)
	}
}

func drawFrame(p Painter, th Theme, f transition.Frame) {
	p.Fill(f.Background)
	for _, c := range f.Cards {
		p.FillPolygon(c.Outline, c.Fill)
		if c.TextVisible {
			drawTextBox(p, c.Text, c.TextBox(), th.ThumbFontSize, c.TextColor)
		}
	}
}

func drawEditor(m *Model, p Painter, th Theme, d Decor) {
	vp := m.vp
	p.Fill(th.EditorBG)

	box := m.metrics.EditorTextRect(vp)
	if !box.Empty() {
		measure := func(s string) float64 { return p.Measure(s, th.FontSize) }
		lines := editor.Wrap(m.buffer.Text(), box.Width(), measure)
		lh := p.LineHeight(th.FontSize)
		visible := max(1, int(box.Height()/lh))
		caretLine, before := editor.CaretPosition(lines, m.buffer.Caret())
		first := max(0, caretLine-visible+1)
		for i := first; i < len(lines) && i < first+visible; i++ {
			p.Text(lines[i].Text, box.X1, box.Y1+float64(i-first)*lh, th.FontSize, th.Text)
		}
		if d.CaretOn {
			x := box.X1 + measure(before)
			y := box.Y1 + float64(caretLine-first)*lh
			p.FillPolygon(rectPoints(geom.R(x, y+2, x+2, y+lh-2)), th.Cursor)
		}
	}

	drawButton(p, th, m.metrics.GalleryButton(vp), icon.Notes, d.Hover.Kind == TargetGalleryButton, th.EditorBG)
	drawButton(p, th, m.metrics.PlusButton(vp), icon.Plus, d.Hover.Kind == TargetPlusButton, th.EditorBG)
}

func drawGallery(m *Model, p Painter, th Theme, d Decor) {
	vp := m.vp
	p.Fill(th.GalleryBG)
	canvas := m.Canvas()

	for _, t := range m.Thumbs() {
		r := clip(t.Rect, canvas)
		if r.Empty() {
			continue
		}
		fill := th.ThumbFill
		if d.Hover.Kind == TargetThumbnail && d.Hover.ID == t.ID {
			fill = geom.MixColor(th.ThumbFill, th.Hover, 0.15)
		}
		p.FillPolygon(geom.RoundedRectOutline(r, geom.CardRadius(r, th.ThumbRadius)), fill)
		if t.Rect.Y1 >= canvas.Y1 && t.Rect.Y2 <= canvas.Y2 {
			box := t.Rect.Inset(10)
			drawTextBox(p, t.Preview, box, th.ThumbFontSize, th.Text)
		}
		if m.view.State.EditMode && t.Badge.Y1 >= canvas.Y1 && t.Badge.Y2 <= canvas.Y2 {
			badge := th.Badge
			if d.Hover.Kind == TargetDeleteBadge && d.Hover.ID == t.ID {
				badge = geom.MixColor(th.Badge, th.Hover, 0.3)
			}
			p.FillPolygon(geom.RoundedRectOutline(t.Badge, t.Badge.Width()/2), badge)
			p.Icon(icon.Cross, t.Badge.Inset(3), th.Text, badge)
		}
	}

	// Top bar drawn last so scrolled thumbnails never cover it.
	top := m.metrics.GalleryTopBar(vp)
	bar := geom.R(vp.X1, top.Y1, vp.X2, max(top.Y2, canvas.Y1))
	p.FillPolygon(rectPoints(bar), th.GalleryBG)
	if m.view.State.EditMode {
		drawButton(p, th, m.metrics.CancelButton(vp), icon.Chevron, d.Hover.Kind == TargetCancelButton, th.GalleryBG)
	} else {
		drawButton(p, th, m.metrics.EditButton(vp), icon.Pencil, d.Hover.Kind == TargetEditButton, th.GalleryBG)
	}

	if sb, ok := m.ScrollbarThumb(); ok {
		p.FillPolygon(geom.RoundedRectOutline(sb, sb.Width()/2), geom.MixColor(th.GalleryBG, th.Text, 0.35))
	}
}

func drawButton(p Painter, th Theme, r geom.Rect, k icon.Kind, hover bool, bg geom.Color) {
	if hover {
		p.FillPolygon(geom.RoundedRectOutline(r, 8), geom.MixColor(bg, th.Hover, 0.25))
	}
	tint := th.Text
	if hover {
		tint = th.Hover
	}
	p.Icon(k, r.Inset(6), tint, bg)
}

// drawTextBox draws text wrapped to box, dropping lines that do not fit.
func drawTextBox(p Painter, text string, box geom.Rect, size float64, c geom.Color) {
	if box.Width() <= 0 || box.Height() <= 0 {
		return
	}
	lh := p.LineHeight(size)
	lines := editor.Wrap(text, box.Width(), func(s string) float64 { return p.Measure(s, size) })
	for i, l := range lines {
		y := box.Y1 + float64(i)*lh
		if y+lh > box.Y2 {
			break
		}
		p.Text(l.Text, box.X1, y, size, c)
	}
}

func rectPoints(r geom.Rect) []geom.Point {
	return []geom.Point{{X: r.X1, Y: r.Y1}, {X: r.X2, Y: r.Y1}, {X: r.X2, Y: r.Y2}, {X: r.X1, Y: r.Y2}}
}

func clip(r, bounds geom.Rect) geom.Rect {
	out := geom.Rect{
		X1: max(r.X1, bounds.X1),
		Y1: max(r.Y1, bounds.Y1),
		X2: min(r.X2, bounds.X2),
		Y2: min(r.Y2, bounds.Y2),
	}
	if out.X2 < out.X1 || out.Y2 < out.Y1 {
		return geom.Rect{}
	}
	return out
}
