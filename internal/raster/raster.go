// Package raster renders the window offscreen with gg. It backs the
// snapshot command and the drawing tests.
package raster

import (
	"fmt"
	"image"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/starford/stickynote/internal/geom"
	"github.com/starford/stickynote/internal/icon"
	"github.com/starford/stickynote/internal/screen"
)

// Painter draws into a gg context.
type Painter struct {
	dc    *gg.Context
	font  *truetype.Font
	faces map[float64]font.Face
	size  float64
}

// NewPainter returns a painter for a w by h image.
func NewPainter(w, h int) (*Painter, error) {
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("raster: parse font: %w", err)
	}
	return &Painter{
		dc:    gg.NewContext(w, h),
		font:  f,
		faces: make(map[float64]font.Face),
	}, nil
}

// Image returns the rendered image.
func (p *Painter) Image() image.Image { return p.dc.Image() }

func (p *Painter) face(size float64) font.Face {
	fc, ok := p.faces[size]
	if !ok {
		fc = truetype.NewFace(p.font, &truetype.Options{Size: size, DPI: 72, Hinting: font.HintingFull})
		p.faces[size] = fc
	}
	if p.size != size {
		p.dc.SetFontFace(fc)
		p.size = size
	}
	return fc
}

func (p *Painter) Fill(c geom.Color) {
	p.dc.SetColor(c)
	p.dc.Clear()
}

func (p *Painter) FillPolygon(pts []geom.Point, c geom.Color) {
	if len(pts) < 3 {
		return
	}
	p.dc.NewSubPath()
	p.dc.MoveTo(pts[0].X, pts[0].Y)
	for _, pt := range pts[1:] {
		p.dc.LineTo(pt.X, pt.Y)
	}
	p.dc.ClosePath()
	p.dc.SetColor(c)
	p.dc.Fill()
}

func (p *Painter) Text(s string, x, y, size float64, c geom.Color) {
	fc := p.face(size)
	ascent := float64(fc.Metrics().Ascent) / 64
	p.dc.SetColor(c)
	p.dc.DrawString(s, x, y+ascent)
}

func (p *Painter) Measure(s string, size float64) float64 {
	p.face(size)
	w, _ := p.dc.MeasureString(s)
	return w
}

func (p *Painter) LineHeight(size float64) float64 {
	return float64(p.face(size).Metrics().Height) / 64
}

func (p *Painter) Icon(k icon.Kind, r geom.Rect, tint, bg geom.Color) {
	icon.Draw(p.dc, k, r, tint, bg)
}

// Render draws m as it currently stands.
func Render(m *screen.Model, th screen.Theme) (image.Image, error) {
	vp := m.Viewport()
	p, err := NewPainter(int(vp.Width()), int(vp.Height()))
	if err != nil {
		return nil, err
	}
	screen.Draw(m, p, th, screen.Decor{})
	return p.Image(), nil
}

// SavePNG renders m to path.
func SavePNG(path string, m *screen.Model, th screen.Theme) error {
	img, err := Render(m, th)
	if err != nil {
		return err
	}
	if err := gg.SavePNG(path, img); err != nil {
		return fmt.Errorf("raster: save %s: %w", path, err)
	}
	return nil
}
