package widget

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"

	"github.com/starford/stickynote/internal/models"
)

// CommandKind names a user or system request.
type CommandKind int

const (
	CmdZoomOut CommandKind = iota
	CmdSelect
	CmdEnterEditMode
	CmdCancelEditMode
	CmdDelete
	CmdCreate
	CmdEdit
	CmdResize
	CmdExternal
	CmdClose
)

var commandNames = [...]string{
	CmdZoomOut:        "zoom-out",
	CmdSelect:         "select",
	CmdEnterEditMode:  "enter-edit-mode",
	CmdCancelEditMode: "cancel-edit-mode",
	CmdDelete:         "delete",
	CmdCreate:         "create",
	CmdEdit:           "edit",
	CmdResize:         "resize",
	CmdExternal:       "external",
	CmdClose:          "close",
}

func (k CommandKind) String() string {
	if int(k) < len(commandNames) {
		return commandNames[k]
	}
	return "unknown"
}

// ExternalOp is what happened to a note file outside the widget.
type ExternalOp string

const (
	ExternalUpsert ExternalOp = "upsert"
	ExternalRemove ExternalOp = "remove"
)

// Command is one request for the controller. Input handlers only build
// commands; the controller is the only thing that changes view state.
type Command struct {
	Kind CommandKind
	ID   models.NoteID
	Text string
	Op   ExternalOp
}

// CommandEvent carries commands through the controller's donburi world.
var CommandEvent = events.NewEventType[Command]()

// Submit queues cmd. It is handled on the next Update.
func (c *Controller) Submit(cmd Command) {
	CommandEvent.Publish(c.world, cmd)
}

func (c *Controller) subscribe() {
	CommandEvent.Subscribe(c.world, func(_ donburi.World, cmd Command) {
		if err := c.Dispatch(cmd); err != nil {
			c.log.Debug("command rejected", "command", cmd.Kind.String(), "id", string(cmd.ID), "error", err)
		}
	})
}

// Dispatch handles cmd immediately.
func (c *Controller) Dispatch(cmd Command) error {
	switch cmd.Kind {
	case CmdZoomOut:
		return c.ZoomOut()
	case CmdSelect:
		return c.Select(cmd.ID)
	case CmdEnterEditMode:
		return c.EnterEditMode()
	case CmdCancelEditMode:
		return c.CancelEditMode()
	case CmdDelete:
		return c.Delete(cmd.ID)
	case CmdCreate:
		return c.Create()
	case CmdEdit:
		return c.Edit(cmd.Text)
	case CmdResize:
		c.QueueRefresh(false)
		return nil
	case CmdExternal:
		return c.External(cmd.Op, cmd.ID)
	case CmdClose:
		return c.Close()
	}
	return nil
}
