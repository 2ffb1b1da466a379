package screen

import (
	"github.com/starford/stickynote/internal/models"
	"github.com/starford/stickynote/internal/view"
	"github.com/starford/stickynote/internal/widget"
)

// TargetKind names what is under the pointer.
type TargetKind int

const (
	TargetNone TargetKind = iota
	TargetEditorText
	TargetGalleryButton
	TargetPlusButton
	TargetEditButton
	TargetCancelButton
	TargetThumbnail
	TargetDeleteBadge
)

// Target is a hit-test result.
type Target struct {
	Kind TargetKind
	ID   models.NoteID
}

// HitTest finds the control at x, y. Nothing is hit while an overlay is
// shown.
func (m *Model) HitTest(x, y float64) Target {
	if m.overlay != nil {
		return Target{}
	}
	switch m.view.State.Kind {
	case view.Editor:
		switch {
		case m.metrics.GalleryButton(m.vp).Contains(x, y):
			return Target{Kind: TargetGalleryButton}
		case m.metrics.PlusButton(m.vp).Contains(x, y):
			return Target{Kind: TargetPlusButton}
		case m.metrics.EditorTextRect(m.vp).Contains(x, y):
			return Target{Kind: TargetEditorText}
		}
	case view.Gallery:
		if m.view.State.EditMode && m.metrics.CancelButton(m.vp).Contains(x, y) {
			return Target{Kind: TargetCancelButton}
		}
		if !m.view.State.EditMode && m.metrics.EditButton(m.vp).Contains(x, y) {
			return Target{Kind: TargetEditButton}
		}
		canvas := m.Canvas()
		if !canvas.Contains(x, y) {
			return Target{}
		}
		id, ok := m.view.Layout.HitTest(x-canvas.X1, y-canvas.Y1+m.scroll)
		if !ok {
			return Target{}
		}
		if m.view.State.EditMode {
			r := m.thumbRect(m.view.Layout.Index(id))
			if widget.DeleteBadge(r).Contains(x, y) {
				return Target{Kind: TargetDeleteBadge, ID: id}
			}
		}
		return Target{Kind: TargetThumbnail, ID: id}
	}
	return Target{}
}

// Command maps a click on t to a controller command.
func (t Target) Command() (widget.Command, bool) {
	switch t.Kind {
	case TargetGalleryButton:
		return widget.Command{Kind: widget.CmdZoomOut}, true
	case TargetPlusButton:
		return widget.Command{Kind: widget.CmdCreate}, true
	case TargetEditButton:
		return widget.Command{Kind: widget.CmdEnterEditMode}, true
	case TargetCancelButton:
		return widget.Command{Kind: widget.CmdCancelEditMode}, true
	case TargetThumbnail:
		return widget.Command{Kind: widget.CmdSelect, ID: t.ID}, true
	case TargetDeleteBadge:
		return widget.Command{Kind: widget.CmdDelete, ID: t.ID}, true
	}
	return widget.Command{}, false
}
