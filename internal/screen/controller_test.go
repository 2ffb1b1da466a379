package screen

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/starford/stickynote/internal/apperr"
	"github.com/starford/stickynote/internal/models"
	"github.com/starford/stickynote/internal/sched"
	"github.com/starford/stickynote/internal/transition"
	"github.com/starford/stickynote/internal/view"
	"github.com/starford/stickynote/internal/widget"
)

type stubGateway struct {
	order []models.NoteID
	texts map[models.NoteID]string
}

func (g *stubGateway) LoadState() ([]models.NoteID, models.NoteID, error) {
	return g.order, g.order[0], nil
}

func (g *stubGateway) SaveState([]models.NoteID, models.NoteID) error { return nil }

func (g *stubGateway) LoadNoteText(id models.NoteID) (string, error) {
	t, ok := g.texts[id]
	if !ok {
		return "", apperr.ErrNotFound
	}
	return t, nil
}

func (g *stubGateway) SaveNoteText(id models.NoteID, text string) error {
	g.texts[id] = text
	return nil
}

func (g *stubGateway) DeleteNote(id models.NoteID) error {
	delete(g.texts, id)
	return nil
}

func (g *stubGateway) CreateNote(string) (models.NoteID, error) { return "", apperr.ErrNotFound }

// framesModel keeps every painted frame.
type framesModel struct {
	*Model
	frames []transition.Frame
}

func (f *framesModel) PaintFrame(fr transition.Frame) {
	f.frames = append(f.frames, fr)
	f.Model.PaintFrame(fr)
}

func TestModel_LandsOnThumbnails(t *testing.T) {
	order := ids(5)
	gw := &stubGateway{order: order, texts: map[models.NoteID]string{}}
	for _, id := range order {
		gw.texts[id] = "note " + string(id)
	}
	m := newModel()
	rec := &framesModel{Model: m}
	c, err := widget.New(widget.DefaultConfig(), widget.Deps{
		Gateway:   gw,
		Surface:   rec,
		Scheduler: sched.New(),
		Logger:    slog.New(slog.NewJSONHandler(io.Discard, nil)),
	})
	if err != nil {
		t.Fatal(err)
	}
	if m.Buffer().Text() != "note n0" {
		t.Fatalf("buffer = %q", m.Buffer().Text())
	}

	if err := c.ZoomOut(); err != nil {
		t.Fatal(err)
	}
	for c.Busy() {
		c.Update(20 * time.Millisecond)
	}
	final := rec.frames[len(rec.frames)-1]
	if !final.Final() {
		t.Fatalf("last frame step %d of %d", final.Step, final.Steps)
	}
	for _, card := range final.Cards {
		r, ok := m.MeasureThumbnail(card.ID)
		if !ok || r != card.Rect {
			t.Errorf("card %s ends at %+v, thumbnail at %+v (%v)", card.ID, card.Rect, r, ok)
		}
	}
	if m.View().State.Kind != view.Gallery {
		t.Fatalf("view = %s", m.View().State)
	}
	if _, ok := m.Overlay(); ok {
		t.Error("overlay left after commit")
	}

	r, _ := m.MeasureThumbnail("n3")
	target := m.HitTest(r.Center().X, r.Center().Y)
	cmd, ok := target.Command()
	if !ok {
		t.Fatalf("no command for %+v", target)
	}
	c.Submit(cmd)
	c.Update(time.Second)
	if m.View().State.Kind != view.Editor || m.Buffer().Text() != "note n3" {
		t.Errorf("after select: %s buffer %q", m.View().State, m.Buffer().Text())
	}
}
