package widget

import (
	"fmt"

	"github.com/starford/stickynote/internal/apperr"
	"github.com/starford/stickynote/internal/gallery"
	"github.com/starford/stickynote/internal/geom"
	"github.com/starford/stickynote/internal/models"
	"github.com/starford/stickynote/internal/transition"
	"github.com/starford/stickynote/internal/view"
)

// ZoomOut morphs the editor into the gallery. Pending text is flushed first.
func (c *Controller) ZoomOut() error {
	if err := c.machine.ZoomOut(); err != nil {
		return err
	}
	c.flush()

	st := c.machine.State()
	vp := c.surface.Viewport()
	layout := c.computeLayout(st.Focus, false)
	canvas := c.cfg.Metrics.GalleryCanvas(vp)

	sc := transition.Scene{
		Viewport: vp,
		Editor:   c.editorRect(vp),
		Thumbs:   layout.Rects(geom.Point{X: canvas.X1, Y: canvas.Y1}, 0),
		Labels:   c.previews(transition.SelectCards(c.order, st.Focus, c.cfg.Transition.MaxCards)),
	}
	plan, err := transition.PlanOut(c.cfg.Transition, c.cfg.Palette, st.Focus, c.order, sc)
	c.start(plan, err)
	return nil
}

// Select morphs the chosen thumbnail into the editor.
func (c *Controller) Select(id models.NoteID) error {
	if models.IndexOf(c.order, id) < 0 {
		return fmt.Errorf("widget: select %s: %w", id, apperr.ErrNotFound)
	}
	if err := c.machine.Select(id); err != nil {
		return err
	}

	vp := c.surface.Viewport()
	ids := transition.SelectCards(c.order, id, c.cfg.Transition.MaxCards)
	thumbs := make(map[models.NoteID]geom.Rect, len(ids))
	for _, nid := range ids {
		if r, ok := c.surface.MeasureThumbnail(nid); ok {
			thumbs[nid] = r
		}
	}
	sc := transition.Scene{
		Viewport: vp,
		Editor:   c.editorRect(vp),
		Thumbs:   thumbs,
		Labels:   c.previews(ids),
	}
	plan, err := transition.PlanIn(c.cfg.Transition, c.cfg.Palette, id, c.order, sc)
	c.start(plan, err)
	return nil
}

// editorRect measures the editor text area, synthesizing it from the
// viewport when the surface has not laid it out.
func (c *Controller) editorRect(vp geom.Rect) geom.Rect {
	if r, ok := c.surface.MeasureEditor(); ok && !r.Empty() {
		return r
	}
	c.log.Debug("editor geometry unavailable, using estimate")
	return c.cfg.Metrics.EditorTextRect(vp)
}

// start begins ticking plan. A planning failure skips straight to commit so
// the view never stays half switched.
func (c *Controller) start(plan transition.Plan, err error) {
	if err != nil {
		c.log.Error("plan transition failed", "error", err)
		c.finish()
		return
	}
	c.run = transition.NewRun(c.cfg.Transition, plan)
	c.frameTimer = c.sched.After(0, c.tick)
}

// tick paints one frame and schedules the next. After the final frame it
// commits. A panic while painting or committing still leaves the widget
// settled in a real view.
func (c *Controller) tick() {
	defer func() {
		if r := recover(); r != nil {
			c.log.Error("transition frame failed", "panic", fmt.Sprint(r))
			if !c.guard("transition commit", c.failOpen) {
				c.guard("transition cleanup", c.settleAfterFailure)
			}
		}
	}()
	if c.run == nil {
		return
	}
	f, last := c.run.Tick()
	c.surface.PaintFrame(f)
	if last {
		c.finish()
		return
	}
	c.frameTimer = c.sched.After(c.cfg.Transition.FrameInterval, c.tick)
}

// guard runs fn and reports whether it returned without panicking.
func (c *Controller) guard(what string, fn func()) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			c.log.Error(what+" failed", "panic", fmt.Sprint(r))
			ok = false
		}
	}()
	fn()
	return true
}

// failOpen commits a transition that is still in flight, or settles the
// overlay when the commit already ran.
func (c *Controller) failOpen() {
	if c.machine.Busy() {
		c.finish()
		return
	}
	c.settleAfterFailure()
}

func (c *Controller) settleAfterFailure() {
	c.run = nil
	c.frameTimer = 0
	c.surface.ClearOverlay()
	c.dispatchDeferred()
	c.runPendingRefresh()
}

// finish commits the transition: the real view is swapped while the final
// frame is still on screen, then the overlay is cleared.
func (c *Controller) finish() {
	c.run = nil
	c.frameTimer = 0

	st, err := c.machine.Complete()
	if err != nil {
		c.log.Error("complete transition failed", "error", err)
	} else {
		c.commits++
		c.apply(st)
	}
	c.surface.ClearOverlay()
	c.dispatchDeferred()
	c.runPendingRefresh()
}

// dispatchDeferred replays commands held back while a transition ran.
func (c *Controller) dispatchDeferred() {
	deferred := c.deferred
	c.deferred = nil
	for _, cmd := range deferred {
		if err := c.Dispatch(cmd); err != nil {
			c.log.Warn("deferred command failed", "command", cmd.Kind.String(), "error", err)
		}
	}
}

// apply shows the settled view for st.
func (c *Controller) apply(st view.State) {
	switch st.Kind {
	case view.Editor:
		c.showEditor(st.Focus)
	case view.Gallery:
		c.persist()
		c.refreshPending, c.refreshForce = false, false
		c.refreshGallery(true)
	}
}

func (c *Controller) computeLayout(focus models.NoteID, editMode bool) gallery.Layout {
	canvas := c.cfg.Metrics.GalleryCanvas(c.surface.Viewport())
	return gallery.Compute(c.cfg.Gallery, int(canvas.Width()), c.order, focus, editMode)
}

// QueueRefresh asks for a gallery rebuild. Requests are collapsed into one;
// force is sticky until the rebuild runs. While a transition is in flight
// the rebuild waits for its commit.
func (c *Controller) QueueRefresh(force bool) {
	if force {
		c.refreshForce = true
	}
	c.refreshPending = true
}

func (c *Controller) runPendingRefresh() {
	if !c.refreshPending || c.machine.Busy() {
		return
	}
	force := c.refreshForce
	c.refreshPending, c.refreshForce = false, false
	c.refreshGallery(force)
}

// refreshGallery rebuilds the gallery view when its layout key changed or
// force is set. Scrolling never reaches here.
func (c *Controller) refreshGallery(force bool) {
	st := c.machine.State()
	if st.Kind != view.Gallery {
		return
	}
	layout := c.computeLayout(st.Focus, st.EditMode)
	if !c.cache.Changed(layout.Key(), force) {
		return
	}
	c.layout = layout
	c.surface.SwapView(View{State: st, Layout: layout, Previews: c.previews(layout.Order)})
}

// previews returns thumbnail text for ids, from the gateway index when it
// has one and from the note text otherwise.
func (c *Controller) previews(ids []models.NoteID) map[models.NoteID]string {
	if p, ok := c.gw.(Previewer); ok {
		out, err := p.Previews(ids)
		if err == nil {
			return out
		}
		c.log.Warn("load previews failed", "error", err)
	}
	out := make(map[models.NoteID]string, len(ids))
	for _, id := range ids {
		text, err := c.gw.LoadNoteText(id)
		if err != nil {
			c.log.Debug("load preview failed", "id", string(id), "error", err)
		}
		out[id] = previewOf(text)
	}
	return out
}
