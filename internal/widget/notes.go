package widget

import (
	"fmt"

	"github.com/starford/stickynote/internal/apperr"
	"github.com/starford/stickynote/internal/models"
	"github.com/starford/stickynote/internal/parser"
	"github.com/starford/stickynote/internal/view"
)

func previewOf(text string) string {
	return parser.Parse([]byte(text)).Preview
}

// Edit records new editor text and schedules a debounced save.
func (c *Controller) Edit(text string) error {
	if st := c.machine.State(); st.Kind != view.Editor {
		return fmt.Errorf("widget: edit in %s: %w", st, apperr.ErrInvalidTransition)
	}
	c.text = text
	c.dirty = true
	c.sched.Cancel(c.saveTimer)
	c.saveTimer = c.sched.After(c.cfg.SaveDelay, c.saveNow)
	return nil
}

func (c *Controller) saveNow() {
	c.saveTimer = 0
	if !c.dirty {
		return
	}
	c.dirty = false
	if err := c.gw.SaveNoteText(c.active, c.text); err != nil {
		c.log.Error("save note failed", "id", string(c.active), "error", err)
	}
}

// flush cancels the debounce timer and writes pending text now.
func (c *Controller) flush() {
	if c.saveTimer != 0 {
		c.sched.Cancel(c.saveTimer)
	}
	c.saveNow()
}

// Dirty reports whether there is unsaved text.
func (c *Controller) Dirty() bool { return c.dirty }

// Create flushes the current note, creates an empty one at the front of the
// order and opens it in the editor without animation.
func (c *Controller) Create() error {
	if err := c.machine.Allow(view.Editor); err != nil {
		return err
	}
	c.flush()
	id, err := c.gw.CreateNote("")
	if err != nil {
		return fmt.Errorf("widget: create: %w", err)
	}
	if err := c.machine.Create(id); err != nil {
		return err
	}
	c.order = append([]models.NoteID{id}, c.order...)
	c.showEditor(id)
	return nil
}

// Delete removes a note from the gallery in edit mode. Deleting the last
// note creates a fresh one so the order is never empty.
func (c *Controller) Delete(id models.NoteID) error {
	if err := c.machine.Delete(id); err != nil {
		return err
	}
	if models.IndexOf(c.order, id) < 0 {
		return fmt.Errorf("widget: delete %s: %w", id, apperr.ErrNotFound)
	}
	c.flush()
	if err := c.gw.DeleteNote(id); err != nil {
		c.log.Error("delete note failed", "id", string(id), "error", err)
	}
	c.forget(id)
	c.persist()
	c.QueueRefresh(true)
	return nil
}

// forget drops id from the order and repairs the active and focus ids.
func (c *Controller) forget(id models.NoteID) {
	c.order = models.Without(c.order, id)
	c.ensureActive()
	if st := c.machine.State(); st.Focus != c.active && models.IndexOf(c.order, st.Focus) < 0 {
		if err := c.machine.Repoint(c.active); err != nil {
			c.log.Warn("repoint failed", "error", err)
		}
	}
}

// EnterEditMode shows delete badges on the thumbnails.
func (c *Controller) EnterEditMode() error {
	if err := c.machine.EnterEditMode(); err != nil {
		return err
	}
	c.QueueRefresh(true)
	return nil
}

// CancelEditMode hides the delete badges.
func (c *Controller) CancelEditMode() error {
	if err := c.machine.CancelEditMode(); err != nil {
		return err
	}
	c.QueueRefresh(true)
	return nil
}

// External reconciles a note file changed by another program. While a
// transition runs the change is held until commit. A change to the open
// note is shown at the end of the current Update, and only if no edit
// arrived first.
func (c *Controller) External(op ExternalOp, id models.NoteID) error {
	if c.machine.Busy() {
		c.deferred = append(c.deferred, Command{Kind: CmdExternal, Op: op, ID: id})
		return nil
	}
	st := c.machine.State()
	switch op {
	case ExternalRemove:
		if models.IndexOf(c.order, id) < 0 {
			return nil
		}
		wasActive := id == c.active
		c.forget(id)
		if wasActive && st.Kind == view.Editor {
			c.sched.Cancel(c.saveTimer)
			c.saveTimer, c.dirty = 0, false
			if err := c.machine.Repoint(c.active); err != nil {
				return err
			}
			c.showEditor(c.active)
		} else {
			c.persist()
		}
	case ExternalUpsert:
		if models.IndexOf(c.order, id) < 0 {
			c.order = append(c.order, id)
			c.persist()
		} else if id == c.active && st.Kind == view.Editor {
			c.reloadActive = true
		}
	default:
		return fmt.Errorf("widget: external op %q: %w", op, apperr.ErrInvalidTransition)
	}
	c.QueueRefresh(true)
	return nil
}

// reloadIfClean shows the active note's stored text after an outside
// change unless the editor holds unsaved text.
func (c *Controller) reloadIfClean() {
	if !c.reloadActive {
		return
	}
	c.reloadActive = false
	if c.dirty || c.machine.Busy() || c.machine.State().Kind != view.Editor {
		return
	}
	text, err := c.gw.LoadNoteText(c.active)
	if err != nil {
		c.log.Warn("reload note failed", "id", string(c.active), "error", err)
		return
	}
	if text != c.text {
		c.showEditor(c.active)
	}
}
