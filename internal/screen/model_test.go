package screen

import (
	"fmt"
	"math"
	"testing"

	"github.com/starford/stickynote/internal/gallery"
	"github.com/starford/stickynote/internal/geom"
	"github.com/starford/stickynote/internal/models"
	"github.com/starford/stickynote/internal/transition"
	"github.com/starford/stickynote/internal/view"
	"github.com/starford/stickynote/internal/widget"
)

func ids(n int) []models.NoteID {
	out := make([]models.NoteID, n)
	for i := range out {
		out[i] = models.NoteID(fmt.Sprintf("n%d", i))
	}
	return out
}

func newModel() *Model {
	return New(widget.DefaultMetrics(), 860, 620)
}

func galleryView(m *Model, order []models.NoteID, focus models.NoteID, editMode bool) widget.View {
	layout := gallery.Compute(gallery.DefaultParams(), int(m.Canvas().Width()), order, focus, editMode)
	previews := make(map[models.NoteID]string, len(order))
	for _, id := range order {
		previews[id] = "preview " + string(id)
	}
	return widget.View{
		State:    view.State{Kind: view.Gallery, Focus: focus, EditMode: editMode},
		Layout:   layout,
		Previews: previews,
	}
}

func TestModel_MeasureEditorOnlyInEditor(t *testing.T) {
	m := newModel()
	m.SwapView(widget.View{State: view.State{Kind: view.Editor, Focus: "a"}, Text: "hello"})
	r, ok := m.MeasureEditor()
	if !ok {
		t.Fatal("editor not measured")
	}
	if want := geom.R(10, 10, 776, 610); r != want {
		t.Errorf("editor rect = %+v, want %+v", r, want)
	}
	if m.Buffer().Text() != "hello" {
		t.Errorf("buffer = %q, want %q", m.Buffer().Text(), "hello")
	}

	m.SwapView(galleryView(m, ids(3), "n0", false))
	if _, ok := m.MeasureEditor(); ok {
		t.Error("editor measured while gallery shown")
	}
}

func TestModel_MeasureThumbnail(t *testing.T) {
	m := newModel()
	m.SwapView(galleryView(m, ids(3), "n1", false))
	// 828 wide canvas: 3 columns of 257 centered in 276 wide shares.
	r, ok := m.MeasureThumbnail("n0")
	if !ok {
		t.Fatal("thumbnail not measured")
	}
	if want := geom.XYWH(19.5, 57, 257, 185); r != want {
		t.Errorf("rect = %+v, want %+v", r, want)
	}
	if _, ok := m.MeasureThumbnail("zz"); ok {
		t.Error("unknown id measured")
	}
}

func TestModel_ScrolledOutThumbnailHasNoRect(t *testing.T) {
	m := newModel()
	m.SwapView(galleryView(m, ids(12), "n0", false))
	m.Scroll(10000)
	if got, want := m.ScrollOffset(), 4*199.0-560; got != want {
		t.Fatalf("scroll = %v, want %v", got, want)
	}
	first := m.View().Layout.Order[0]
	if _, ok := m.MeasureThumbnail(first); ok {
		t.Error("thumbnail above the canvas still measured")
	}
	for _, th := range m.Thumbs() {
		if th.ID == first {
			t.Error("hidden thumbnail listed")
		}
	}
}

func TestModel_ScrollResetsOnEntry(t *testing.T) {
	m := newModel()
	m.SwapView(galleryView(m, ids(12), "n0", false))
	m.Scroll(100)

	m.SwapView(galleryView(m, ids(12), "n0", true))
	if m.ScrollOffset() != 100 {
		t.Errorf("rebuild scroll = %v, want 100", m.ScrollOffset())
	}

	m.SwapView(widget.View{State: view.State{Kind: view.Editor, Focus: "n0"}})
	m.SwapView(galleryView(m, ids(12), "n0", false))
	if m.ScrollOffset() != 0 {
		t.Errorf("entry scroll = %v, want 0", m.ScrollOffset())
	}

	m.Scroll(-50)
	if m.ScrollOffset() != 0 {
		t.Errorf("scroll = %v, want clamp to 0", m.ScrollOffset())
	}
}

func TestModel_ScrollbarThumb(t *testing.T) {
	m := newModel()
	m.SwapView(galleryView(m, ids(3), "n0", false))
	if _, ok := m.ScrollbarThumb(); ok {
		t.Error("scrollbar shown when content fits")
	}
	m.SwapView(galleryView(m, ids(12), "n0", false))
	top, ok := m.ScrollbarThumb()
	if !ok {
		t.Fatal("scrollbar hidden for overflowing content")
	}
	m.Scroll(10000)
	bottom, _ := m.ScrollbarThumb()
	track := m.Metrics().ScrollbarTrack(m.Viewport())
	if math.Abs(top.Y1-track.Y1) > 1e-9 || math.Abs(bottom.Y2-track.Y2) > 1e-9 {
		t.Errorf("thumb travel %v..%v, want %v..%v", top.Y1, bottom.Y2, track.Y1, track.Y2)
	}
}

func TestModel_Overlay(t *testing.T) {
	m := newModel()
	if _, ok := m.Overlay(); ok {
		t.Fatal("overlay before any frame")
	}
	m.PaintFrame(transition.Frame{Step: 3, Steps: 16})
	f, ok := m.Overlay()
	if !ok || f.Step != 3 {
		t.Errorf("overlay = %+v, %v", f, ok)
	}
	m.ClearOverlay()
	if _, ok := m.Overlay(); ok {
		t.Error("overlay survived ClearOverlay")
	}
}

func TestModel_Resize(t *testing.T) {
	m := newModel()
	if m.Resize(860, 620) {
		t.Error("same size reported as change")
	}
	if !m.Resize(600, 400) {
		t.Error("new size not reported")
	}
	if m.Viewport() != geom.XYWH(0, 0, 600, 400) {
		t.Errorf("viewport = %+v", m.Viewport())
	}
}

func TestHitTest_Editor(t *testing.T) {
	m := newModel()
	m.SwapView(widget.View{State: view.State{Kind: view.Editor, Focus: "a"}})
	mt := m.Metrics()

	cases := []struct {
		name string
		at   geom.Point
		want TargetKind
	}{
		{"gallery button", mt.GalleryButton(m.Viewport()).Center(), TargetGalleryButton},
		{"plus button", mt.PlusButton(m.Viewport()).Center(), TargetPlusButton},
		{"text", geom.Point{X: 100, Y: 100}, TargetEditorText},
		{"outside", geom.Point{X: 2, Y: 2}, TargetNone},
	}
	for _, c := range cases {
		if got := m.HitTest(c.at.X, c.at.Y).Kind; got != c.want {
			t.Errorf("%s: kind = %d, want %d", c.name, got, c.want)
		}
	}
}

func TestHitTest_Gallery(t *testing.T) {
	m := newModel()
	m.SwapView(galleryView(m, ids(3), "n1", false))
	vp := m.Viewport()

	if got := m.HitTest(m.Metrics().EditButton(vp).Center().X, m.Metrics().EditButton(vp).Center().Y); got.Kind != TargetEditButton {
		t.Errorf("edit button kind = %d", got.Kind)
	}
	r, _ := m.MeasureThumbnail("n2")
	got := m.HitTest(r.Center().X, r.Center().Y)
	if got.Kind != TargetThumbnail || got.ID != "n2" {
		t.Errorf("thumbnail hit = %+v", got)
	}
	badge := widget.DeleteBadge(r).Center()
	if got := m.HitTest(badge.X, badge.Y); got.Kind != TargetThumbnail {
		t.Errorf("badge outside edit mode = %+v, want thumbnail", got)
	}

	m.SwapView(galleryView(m, ids(3), "n1", true))
	if got := m.HitTest(badge.X, badge.Y); got.Kind != TargetDeleteBadge || got.ID != "n2" {
		t.Errorf("badge in edit mode = %+v", got)
	}
	cancel := m.Metrics().CancelButton(vp).Center()
	if got := m.HitTest(cancel.X, cancel.Y); got.Kind != TargetCancelButton {
		t.Errorf("cancel kind = %d", got.Kind)
	}
}

func TestHitTest_BlockedByOverlay(t *testing.T) {
	m := newModel()
	m.SwapView(widget.View{State: view.State{Kind: view.Editor, Focus: "a"}})
	m.PaintFrame(transition.Frame{})
	c := m.Metrics().GalleryButton(m.Viewport()).Center()
	if got := m.HitTest(c.X, c.Y); got.Kind != TargetNone {
		t.Errorf("hit during overlay = %+v", got)
	}
}

func TestTarget_Command(t *testing.T) {
	cases := []struct {
		target Target
		kind   widget.CommandKind
	}{
		{Target{Kind: TargetGalleryButton}, widget.CmdZoomOut},
		{Target{Kind: TargetPlusButton}, widget.CmdCreate},
		{Target{Kind: TargetEditButton}, widget.CmdEnterEditMode},
		{Target{Kind: TargetCancelButton}, widget.CmdCancelEditMode},
		{Target{Kind: TargetThumbnail, ID: "x"}, widget.CmdSelect},
		{Target{Kind: TargetDeleteBadge, ID: "x"}, widget.CmdDelete},
	}
	for _, c := range cases {
		cmd, ok := c.target.Command()
		if !ok || cmd.Kind != c.kind || cmd.ID != c.target.ID {
			t.Errorf("Command(%+v) = %+v, %v", c.target, cmd, ok)
		}
	}
	if _, ok := (Target{Kind: TargetEditorText}).Command(); ok {
		t.Error("editor text produced a command")
	}
}
