package widget

import (
	"github.com/starford/stickynote/internal/gallery"
	"github.com/starford/stickynote/internal/geom"
	"github.com/starford/stickynote/internal/models"
	"github.com/starford/stickynote/internal/transition"
	"github.com/starford/stickynote/internal/view"
)

// Gateway persists notes and the note order. Every call is synchronous.
type Gateway interface {
	LoadState() ([]models.NoteID, models.NoteID, error)
	SaveState(order []models.NoteID, active models.NoteID) error
	LoadNoteText(id models.NoteID) (string, error)
	SaveNoteText(id models.NoteID, text string) error
	DeleteNote(id models.NoteID) error
	CreateNote(initial string) (models.NoteID, error)
}

// Previewer is implemented by gateways that keep thumbnail previews
// indexed. Without it previews are derived from the note text.
type Previewer interface {
	Previews(ids []models.NoteID) (map[models.NoteID]string, error)
}

// Surface is the drawing layer. Calls are immediate-mode and idempotent.
type Surface interface {
	// Viewport is the window client area.
	Viewport() geom.Rect
	// MeasureEditor reports the on-screen editor text rect, if laid out.
	MeasureEditor() (geom.Rect, bool)
	// MeasureThumbnail reports where a gallery thumbnail currently is.
	MeasureThumbnail(id models.NoteID) (geom.Rect, bool)
	// PaintFrame draws one animation frame over the current view.
	PaintFrame(f transition.Frame)
	// ClearOverlay removes the animation overlay.
	ClearOverlay()
	// SwapView replaces the content underneath the overlay.
	SwapView(v View)
}

// View is the settled content the surface shows.
type View struct {
	State view.State
	// Text is the editor content when State.Kind is view.Editor.
	Text string
	// Layout and Previews describe the gallery when State.Kind is
	// view.Gallery.
	Layout   gallery.Layout
	Previews map[models.NoteID]string
}
