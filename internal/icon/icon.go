// Package icon draws the window's button icons with gg and caches them as
// PNG files keyed by kind and color.
package icon

import (
	"fmt"
	"image"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/fogleman/gg"

	"github.com/starford/stickynote/internal/geom"
)

// Version is bumped whenever the artwork changes so stale cache files are
// not reused.
const Version = "v3"

// Kind names an icon.
type Kind string

const (
	Notes   Kind = "notes"
	Plus    Kind = "plus"
	Pencil  Kind = "pencil"
	Chevron Kind = "chevron"
	Cross   Kind = "cross"
)

// Kinds lists every icon.
var Kinds = []Kind{Notes, Plus, Pencil, Chevron, Cross}

// Fallback is a text glyph shown when an icon image is unavailable.
func Fallback(k Kind) string {
	switch k {
	case Notes:
		return "#"
	case Plus:
		return "+"
	case Pencil:
		return "/"
	case Chevron:
		return "<"
	case Cross:
		return "x"
	}
	return "?"
}

// Shades are the layered colors of the notes icon, each mixed from the
// tint toward the background.
type Shades struct {
	Back, Middle, Front, Stroke, Lines geom.Color
}

// ShadesFor derives the notes icon shades from tint and bg.
func ShadesFor(tint, bg geom.Color) Shades {
	return Shades{
		Back:   geom.MixColor(tint, bg, 0.42),
		Middle: geom.MixColor(tint, bg, 0.30),
		Front:  geom.MixColor(tint, bg, 0.16),
		Stroke: geom.MixColor(tint, bg, 0.55),
		Lines:  geom.MixColor(tint, bg, 0.62),
	}
}

// Draw paints k into r on dc.
func Draw(dc *gg.Context, k Kind, r geom.Rect, tint, bg geom.Color) {
	s := math.Min(r.Width(), r.Height())
	if s <= 0 {
		return
	}
	c := r.Center()
	dc.Push()
	defer dc.Pop()
	dc.Translate(c.X-s/2, c.Y-s/2)
	dc.Scale(s/24, s/24)
	dc.SetLineCapRound()
	dc.SetLineJoinRound()

	switch k {
	case Notes:
		drawNotes(dc, ShadesFor(tint, bg))
	case Plus:
		dc.SetColor(tint)
		dc.SetLineWidth(2.4)
		dc.DrawLine(12, 5, 12, 19)
		dc.DrawLine(5, 12, 19, 12)
		dc.Stroke()
	case Pencil:
		dc.SetColor(tint)
		dc.SetLineWidth(2)
		dc.MoveTo(5, 19)
		dc.LineTo(6, 15)
		dc.LineTo(16, 5)
		dc.LineTo(19, 8)
		dc.LineTo(9, 18)
		dc.ClosePath()
		dc.Stroke()
		dc.DrawLine(14, 7, 17, 10)
		dc.Stroke()
	case Chevron:
		dc.SetColor(tint)
		dc.SetLineWidth(2.6)
		dc.MoveTo(15, 5)
		dc.LineTo(8, 12)
		dc.LineTo(15, 19)
		dc.Stroke()
	case Cross:
		dc.SetColor(tint)
		dc.SetLineWidth(2.4)
		dc.DrawLine(7, 7, 17, 17)
		dc.DrawLine(17, 7, 7, 17)
		dc.Stroke()
	}
}

// drawNotes paints three stacked notes, back to front.
func drawNotes(dc *gg.Context, sh Shades) {
	layers := []struct {
		x, y float64
		fill geom.Color
	}{
		{7, 2, sh.Back},
		{4.5, 4.5, sh.Middle},
		{2, 7, sh.Front},
	}
	for _, l := range layers {
		dc.DrawRoundedRectangle(l.x, l.y, 15, 15, 2.5)
		dc.SetColor(l.fill)
		dc.FillPreserve()
		dc.SetColor(sh.Stroke)
		dc.SetLineWidth(1.2)
		dc.Stroke()
	}
	dc.SetColor(sh.Lines)
	dc.SetLineWidth(1.3)
	for _, y := range []float64{11.5, 14.5, 17.5} {
		dc.DrawLine(5, y, 14, y)
	}
	dc.Stroke()
}

// Render returns k as a size by size image.
func Render(k Kind, tint, bg geom.Color, size int) image.Image {
	dc := gg.NewContext(size, size)
	Draw(dc, k, geom.XYWH(0, 0, float64(size), float64(size)), tint, bg)
	return dc.Image()
}

// CachePath is where k in tint is cached under dir.
func CachePath(dir string, k Kind, tint geom.Color) string {
	return filepath.Join(dir, fmt.Sprintf("%s_icon_%s_%s.png", k, Version, strings.TrimPrefix(tint.Hex(), "#")))
}

// Load returns k from the cache under dir, rendering and storing it first
// when it is missing or unreadable.
func Load(dir string, k Kind, tint, bg geom.Color, size int) (image.Image, error) {
	path := CachePath(dir, k, tint)
	if img, err := gg.LoadPNG(path); err == nil && img.Bounds().Dx() == size {
		return img, nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("icon: mkdir cache: %w", err)
	}
	img := Render(k, tint, bg, size)
	tmp := path + ".tmp"
	if err := gg.SavePNG(tmp, img); err != nil {
		_ = os.Remove(tmp)
		return nil, fmt.Errorf("icon: save %s: %w", k, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return nil, fmt.Errorf("icon: rename %s: %w", k, err)
	}
	return img, nil
}
