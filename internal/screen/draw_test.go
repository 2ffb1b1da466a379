package screen

import (
	"testing"
	"unicode/utf8"

	"github.com/starford/stickynote/internal/geom"
	"github.com/starford/stickynote/internal/icon"
	"github.com/starford/stickynote/internal/transition"
	"github.com/starford/stickynote/internal/view"
	"github.com/starford/stickynote/internal/widget"
)

// recPainter records draw calls with 8px monospace glyphs.
type recPainter struct {
	fills    []geom.Color
	polygons int
	texts    []string
	icons    []icon.Kind
}

func (p *recPainter) Fill(c geom.Color) { p.fills = append(p.fills, c) }

func (p *recPainter) FillPolygon(pts []geom.Point, _ geom.Color) {
	if len(pts) >= 3 {
		p.polygons++
	}
}

func (p *recPainter) Text(s string, _, _, _ float64, _ geom.Color) { p.texts = append(p.texts, s) }

func (p *recPainter) Measure(s string, _ float64) float64 {
	return float64(utf8.RuneCountInString(s)) * 8
}

func (p *recPainter) LineHeight(float64) float64 { return 20 }

func (p *recPainter) Icon(k icon.Kind, _ geom.Rect, _, _ geom.Color) { p.icons = append(p.icons, k) }

func (p *recPainter) iconCount(k icon.Kind) int {
	n := 0
	for _, got := range p.icons {
		if got == k {
			n++
		}
	}
	return n
}

func testTheme() Theme { return DefaultTheme(transition.DefaultPalette()) }

func TestDraw_Editor(t *testing.T) {
	m := newModel()
	m.SwapView(widget.View{State: view.State{Kind: view.Editor, Focus: "a"}, Text: "first line\nsecond line"})

	p := &recPainter{}
	Draw(m, p, testTheme(), Decor{})

	if len(p.fills) != 1 || p.fills[0] != testTheme().EditorBG {
		t.Errorf("fills = %v, want editor background", p.fills)
	}
	if len(p.texts) != 2 || p.texts[0] != "first line" || p.texts[1] != "second line" {
		t.Errorf("texts = %q", p.texts)
	}
	if p.iconCount(icon.Notes) != 1 || p.iconCount(icon.Plus) != 1 {
		t.Errorf("icons = %v, want notes and plus", p.icons)
	}
	if p.polygons != 0 {
		t.Errorf("polygons = %d, want 0 without caret or hover", p.polygons)
	}

	p = &recPainter{}
	Draw(m, p, testTheme(), Decor{CaretOn: true, Hover: Target{Kind: TargetPlusButton}})
	if p.polygons != 2 {
		t.Errorf("polygons = %d, want caret and hover", p.polygons)
	}
}

func TestDraw_GalleryBadgesOnlyInEditMode(t *testing.T) {
	m := newModel()
	m.SwapView(galleryView(m, ids(3), "n0", false))

	p := &recPainter{}
	Draw(m, p, testTheme(), Decor{})
	if n := p.iconCount(icon.Cross); n != 0 {
		t.Errorf("badges = %d, want 0", n)
	}
	if p.iconCount(icon.Pencil) != 1 || p.iconCount(icon.Chevron) != 0 {
		t.Errorf("icons = %v, want pencil only", p.icons)
	}
	if len(p.texts) != 3 {
		t.Errorf("texts = %q, want one preview per thumbnail", p.texts)
	}

	m.SwapView(galleryView(m, ids(3), "n0", true))
	p = &recPainter{}
	Draw(m, p, testTheme(), Decor{})
	if n := p.iconCount(icon.Cross); n != 3 {
		t.Errorf("badges = %d, want 3", n)
	}
	if p.iconCount(icon.Chevron) != 1 || p.iconCount(icon.Pencil) != 0 {
		t.Errorf("icons = %v, want chevron only", p.icons)
	}
}

func TestDraw_OverlayReplacesView(t *testing.T) {
	m := newModel()
	m.SwapView(widget.View{State: view.State{Kind: view.Editor, Focus: "a"}, Text: "body"})

	bg := geom.MustHex("#102030")
	card := transition.CardFrame{
		ID:          "a",
		Rect:        geom.XYWH(10, 10, 200, 150),
		Outline:     geom.RoundedRectOutline(geom.XYWH(10, 10, 200, 150), 12),
		Text:        "label",
		TextVisible: true,
	}
	m.PaintFrame(transition.Frame{Background: bg, Cards: []transition.CardFrame{card, card}})

	p := &recPainter{}
	Draw(m, p, testTheme(), Decor{CaretOn: true})
	if len(p.fills) != 1 || p.fills[0] != bg {
		t.Errorf("fills = %v, want frame background", p.fills)
	}
	if p.polygons != 2 {
		t.Errorf("polygons = %d, want 2 cards", p.polygons)
	}
	if len(p.icons) != 0 {
		t.Errorf("icons = %v, want none under overlay", p.icons)
	}
	if len(p.texts) != 2 || p.texts[0] != "label" {
		t.Errorf("texts = %q, want card labels", p.texts)
	}
}

func TestClip(t *testing.T) {
	bounds := geom.R(0, 50, 100, 200)
	if got := clip(geom.R(10, 20, 90, 80), bounds); got != geom.R(10, 50, 90, 80) {
		t.Errorf("clip = %+v", got)
	}
	if got := clip(geom.R(10, 210, 90, 300), bounds); !got.Empty() {
		t.Errorf("clip outside = %+v, want empty", got)
	}
}
