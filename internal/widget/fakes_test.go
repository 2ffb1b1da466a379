package widget

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/starford/stickynote/internal/apperr"
	"github.com/starford/stickynote/internal/geom"
	"github.com/starford/stickynote/internal/models"
	"github.com/starford/stickynote/internal/sched"
	"github.com/starford/stickynote/internal/transition"
	"github.com/starford/stickynote/internal/view"
)

// memGateway keeps notes in memory and counts writes.
type memGateway struct {
	order  []models.NoteID
	active models.NoteID
	texts  map[models.NoteID]string
	next   int

	saves      []string
	stateSaves int
	failSave   bool
}

func newMemGateway(ids ...models.NoteID) *memGateway {
	g := &memGateway{texts: map[models.NoteID]string{}}
	for _, id := range ids {
		g.order = append(g.order, id)
		g.texts[id] = "text of " + string(id)
	}
	if len(ids) > 0 {
		g.active = ids[0]
	}
	return g
}

func (g *memGateway) LoadState() ([]models.NoteID, models.NoteID, error) {
	return append([]models.NoteID(nil), g.order...), g.active, nil
}

func (g *memGateway) SaveState(order []models.NoteID, active models.NoteID) error {
	g.order = append([]models.NoteID(nil), order...)
	g.active = active
	g.stateSaves++
	return nil
}

func (g *memGateway) LoadNoteText(id models.NoteID) (string, error) {
	t, ok := g.texts[id]
	if !ok {
		return "", apperr.ErrNotFound
	}
	return t, nil
}

func (g *memGateway) SaveNoteText(id models.NoteID, text string) error {
	if g.failSave {
		return errors.New("disk full")
	}
	g.texts[id] = text
	g.saves = append(g.saves, string(id)+"="+text)
	return nil
}

func (g *memGateway) DeleteNote(id models.NoteID) error {
	delete(g.texts, id)
	return nil
}

func (g *memGateway) CreateNote(initial string) (models.NoteID, error) {
	g.next++
	id := models.NoteID(fmt.Sprintf("new%d", g.next))
	g.texts[id] = initial
	return id, nil
}

// recSurface records every surface call in order.
type recSurface struct {
	vp       geom.Rect
	metrics  Metrics
	calls    []string
	frames   []transition.Frame
	views    []View
	current  View
	panicAt  int
	noEditor bool
	// swapPanics makes the next n SwapView calls panic.
	swapPanics int
}

func newRecSurface() *recSurface {
	return &recSurface{vp: geom.XYWH(0, 0, 860, 620), metrics: DefaultMetrics(), panicAt: -1}
}

func (s *recSurface) Viewport() geom.Rect { return s.vp }

func (s *recSurface) MeasureEditor() (geom.Rect, bool) {
	if s.noEditor {
		return geom.Rect{}, false
	}
	return s.metrics.EditorTextRect(s.vp), true
}

func (s *recSurface) MeasureThumbnail(id models.NoteID) (geom.Rect, bool) {
	if s.current.State.Kind != view.Gallery {
		return geom.Rect{}, false
	}
	i := s.current.Layout.Index(id)
	if i < 0 {
		return geom.Rect{}, false
	}
	canvas := s.metrics.GalleryCanvas(s.vp)
	return s.current.Layout.CellRect(i).Offset(canvas.X1, canvas.Y1), true
}

func (s *recSurface) PaintFrame(f transition.Frame) {
	if s.panicAt == len(s.frames) {
		s.frames = append(s.frames, f)
		panic("paint failed")
	}
	s.frames = append(s.frames, f)
	s.calls = append(s.calls, "paint")
}

func (s *recSurface) ClearOverlay() { s.calls = append(s.calls, "clear") }

func (s *recSurface) SwapView(v View) {
	if s.swapPanics > 0 {
		s.swapPanics--
		panic("swap failed")
	}
	s.current = v
	s.views = append(s.views, v)
	s.calls = append(s.calls, "swap:"+v.State.Kind.String())
}

func (s *recSurface) count(call string) int {
	n := 0
	for _, c := range s.calls {
		if c == call {
			n++
		}
	}
	return n
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func newTestController(t *testing.T, gw *memGateway) (*Controller, *recSurface) {
	t.Helper()
	s := newRecSurface()
	c, err := New(DefaultConfig(), Deps{
		Gateway:   gw,
		Surface:   s,
		Scheduler: sched.New(),
		Logger:    quietLogger(),
	})
	if err != nil {
		t.Fatal(err)
	}
	return c, s
}

// settle advances well past one full transition.
func settle(c *Controller) {
	c.Update(time.Second)
}
