// Package widget is the sticky-note controller. It owns the note order, the
// view state machine and the in-flight transition, and turns commands into
// surface calls. Everything runs on the host's update goroutine.
package widget

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/yohamta/donburi"

	"github.com/starford/stickynote/internal/gallery"
	"github.com/starford/stickynote/internal/models"
	"github.com/starford/stickynote/internal/sched"
	"github.com/starford/stickynote/internal/transition"
	"github.com/starford/stickynote/internal/view"
)

// Config tunes the controller.
type Config struct {
	Transition transition.Config
	Palette    transition.Palette
	Gallery    gallery.Params
	Metrics    Metrics
	// SaveDelay debounces text saves after an edit.
	SaveDelay time.Duration
}

// DefaultConfig returns the stock settings.
func DefaultConfig() Config {
	return Config{
		Transition: transition.DefaultConfig(),
		Palette:    transition.DefaultPalette(),
		Gallery:    gallery.DefaultParams(),
		Metrics:    DefaultMetrics(),
		SaveDelay:  250 * time.Millisecond,
	}
}

// Deps are the collaborators a controller drives.
type Deps struct {
	Gateway   Gateway
	Surface   Surface
	Scheduler *sched.Scheduler
	Logger    *slog.Logger
}

// Controller coordinates the views. It is not safe for concurrent use.
type Controller struct {
	cfg     Config
	gw      Gateway
	surface Surface
	sched   *sched.Scheduler
	log     *slog.Logger
	world   donburi.World

	machine *view.Machine
	order   []models.NoteID
	active  models.NoteID

	text      string
	dirty     bool
	saveTimer sched.Handle

	run        *transition.Run
	frameTimer sched.Handle

	layout         gallery.Layout
	cache          gallery.Cache
	refreshPending bool
	refreshForce   bool
	deferred       []Command
	reloadActive   bool

	commits int
	closed  bool
}

// New loads the persisted state, repairs it if needed and shows the editor
// for the active note.
func New(cfg Config, deps Deps) (*Controller, error) {
	if deps.Gateway == nil || deps.Surface == nil {
		return nil, fmt.Errorf("widget: gateway and surface are required")
	}
	if deps.Scheduler == nil {
		deps.Scheduler = sched.New()
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}

	c := &Controller{
		cfg:     cfg,
		gw:      deps.Gateway,
		surface: deps.Surface,
		sched:   deps.Scheduler,
		log:     deps.Logger,
		world:   donburi.NewWorld(),
	}
	c.subscribe()

	order, active, err := c.gw.LoadState()
	if err != nil {
		c.log.Error("load state failed", "error", err)
	}
	c.order = append([]models.NoteID(nil), order...)
	c.active = active
	c.ensureActive()

	c.machine = view.New(c.active)
	c.showEditor(c.active)
	return c, nil
}

// Update handles queued commands, reloads the open note if it changed on
// disk, advances timers by dt and runs a pending gallery refresh. The host calls it once per tick.
func (c *Controller) Update(dt time.Duration) {
	CommandEvent.ProcessEvents(c.world)
	c.reloadIfClean()
	c.sched.Advance(dt)
	c.runPendingRefresh()
}

// State returns the current view state.
func (c *Controller) State() view.State { return c.machine.State() }

// Busy reports whether a transition is in flight.
func (c *Controller) Busy() bool { return c.machine.Busy() }

// Order returns a copy of the note order.
func (c *Controller) Order() []models.NoteID {
	return append([]models.NoteID(nil), c.order...)
}

// Active returns the active note.
func (c *Controller) Active() models.NoteID { return c.active }

// Text returns the editor text as last seen by the controller.
func (c *Controller) Text() string { return c.text }

// Layout returns the gallery layout currently shown.
func (c *Controller) Layout() gallery.Layout { return c.layout }

// Commits counts completed transitions.
func (c *Controller) Commits() int { return c.commits }

// Closed reports whether Close has run.
func (c *Controller) Closed() bool { return c.closed }

// ensureActive keeps the active id a member of a non-empty order.
func (c *Controller) ensureActive() {
	if len(c.order) == 0 {
		id, err := c.gw.CreateNote("")
		if err != nil {
			id = models.NewNoteID()
			c.log.Error("create note failed", "id", string(id), "error", err)
		}
		c.order = []models.NoteID{id}
		c.active = id
		c.log.Warn("note order was empty, created note", "id", string(id))
		return
	}
	if models.IndexOf(c.order, c.active) < 0 {
		c.log.Warn("active note missing, repointing", "stale", string(c.active), "id", string(c.order[0]))
		c.active = c.order[0]
	}
}

// persist writes the order and active id. Failures are logged; the
// in-memory state stays authoritative.
func (c *Controller) persist() {
	if err := c.gw.SaveState(c.order, c.active); err != nil {
		c.log.Error("save state failed", "error", err)
	}
}

func (c *Controller) showEditor(id models.NoteID) {
	c.active = id
	text, err := c.gw.LoadNoteText(id)
	if err != nil {
		c.log.Error("load note failed", "id", string(id), "error", err)
		text = ""
	}
	c.text = text
	c.dirty = false
	c.persist()
	c.surface.SwapView(View{State: c.machine.State(), Text: text})
}

// Close finishes any transition, flushes the pending save and persists the
// state. The controller keeps working afterwards but the host is expected
// to exit.
func (c *Controller) Close() error {
	if c.run != nil {
		c.sched.Cancel(c.frameTimer)
		c.finish()
	}
	c.flush()
	c.persist()
	c.closed = true
	return nil
}
