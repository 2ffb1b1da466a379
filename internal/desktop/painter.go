package desktop

import (
	"bytes"
	"fmt"
	"image/color"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/starford/stickynote/internal/geom"
	"github.com/starford/stickynote/internal/icon"
)

// painter implements screen.Painter on an ebiten image.
type painter struct {
	dst      *ebiten.Image
	source   *text.GoTextFaceSource
	faces    map[float64]*text.GoTextFace
	white    *ebiten.Image
	icons    map[iconKey]*ebiten.Image
	iconDir  string
	log      *slog.Logger
	vertices []ebiten.Vertex
	indices  []uint16
}

type iconKey struct {
	kind     icon.Kind
	tint, bg geom.Color
	size     int
}

func newPainter(iconDir string, logger *slog.Logger) (*painter, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("desktop: parse font: %w", err)
	}
	white := ebiten.NewImage(1, 1)
	white.Fill(color.White)
	return &painter{
		source:  source,
		faces:   make(map[float64]*text.GoTextFace),
		white:   white,
		icons:   make(map[iconKey]*ebiten.Image),
		iconDir: iconDir,
		log:     logger,
	}, nil
}

func (p *painter) face(size float64) *text.GoTextFace {
	f, ok := p.faces[size]
	if !ok {
		f = &text.GoTextFace{Source: p.source, Size: size}
		p.faces[size] = f
	}
	return f
}

func (p *painter) Fill(c geom.Color) { p.dst.Fill(c) }

// FillPolygon fans the convex outline from its first point.
func (p *painter) FillPolygon(pts []geom.Point, c geom.Color) {
	n := len(pts)
	if n < 3 {
		return
	}
	r, g, b := c.Floats()
	p.vertices = p.vertices[:0]
	for _, pt := range pts {
		p.vertices = append(p.vertices, ebiten.Vertex{
			DstX: float32(pt.X), DstY: float32(pt.Y),
			SrcX: 0.5, SrcY: 0.5,
			ColorR: r, ColorG: g, ColorB: b, ColorA: 1,
		})
	}
	p.indices = p.indices[:0]
	for i := 0; i < n-2; i++ {
		p.indices = append(p.indices, 0, uint16(i+1), uint16(i+2))
	}
	p.dst.DrawTriangles(p.vertices, p.indices, p.white, &ebiten.DrawTrianglesOptions{})
}

func (p *painter) Text(s string, x, y, size float64, c geom.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	text.Draw(p.dst, s, p.face(size), op)
}

func (p *painter) Measure(s string, size float64) float64 {
	w, _ := text.Measure(s, p.face(size), 0)
	return w
}

func (p *painter) LineHeight(size float64) float64 {
	m := p.face(size).Metrics()
	return m.HAscent + m.HDescent + m.HLineGap
}

// Icon draws the cached icon image, or the fallback glyph when the cache
// cannot be produced.
func (p *painter) Icon(k icon.Kind, r geom.Rect, tint, bg geom.Color) {
	size := int(min(r.Width(), r.Height()))
	if size <= 0 {
		return
	}
	key := iconKey{kind: k, tint: tint, bg: bg, size: size}
	img, ok := p.icons[key]
	if !ok {
		src, err := icon.Load(p.iconDir, k, tint, bg, size)
		if err != nil {
			p.log.Warn("load icon failed", "icon", string(k), "error", err)
		} else {
			img = ebiten.NewImageFromImage(src)
		}
		p.icons[key] = img
	}
	c := r.Center()
	if img == nil {
		glyph := icon.Fallback(k)
		fs := float64(size) * 0.8
		p.Text(glyph, c.X-p.Measure(glyph, fs)/2, c.Y-p.LineHeight(fs)/2, fs, tint)
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(c.X-float64(size)/2, c.Y-float64(size)/2)
	p.dst.DrawImage(img, op)
}
