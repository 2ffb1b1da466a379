// Package view tracks which view of the widget is active and rejects
// requests that would start a second transition.
package view

import (
	"fmt"

	"github.com/starford/stickynote/internal/apperr"
	"github.com/starford/stickynote/internal/models"
)

// Kind is the active view.
type Kind int

const (
	Editor Kind = iota
	Gallery
	TransitioningOut
	TransitioningIn
)

func (k Kind) String() string {
	switch k {
	case Editor:
		return "editor"
	case Gallery:
		return "gallery"
	case TransitioningOut:
		return "transitioning-out"
	case TransitioningIn:
		return "transitioning-in"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// State is a snapshot of the machine. Focus is the note shown in the editor,
// or in the gallery the note the grid is centered on. EditMode only applies
// to Gallery.
type State struct {
	Kind     Kind
	Focus    models.NoteID
	EditMode bool
}

// Transitioning reports whether an animation owns the view.
func (s State) Transitioning() bool {
	return s.Kind == TransitioningOut || s.Kind == TransitioningIn
}

func (s State) String() string {
	switch s.Kind {
	case Gallery:
		return fmt.Sprintf("gallery(edit=%t)", s.EditMode)
	default:
		return fmt.Sprintf("%s(%s)", s.Kind, s.Focus)
	}
}

// Machine is the view state machine. It is not safe for concurrent use; the
// host drives it from a single goroutine.
type Machine struct {
	state State
}

// New starts the machine in Editor(focus).
func New(focus models.NoteID) *Machine {
	return &Machine{state: State{Kind: Editor, Focus: focus}}
}

// State returns the current state.
func (m *Machine) State() State { return m.state }

// Busy reports whether a transition is in flight.
func (m *Machine) Busy() bool { return m.state.Transitioning() }

// Allow checks that a request needing view kind k could start now, without
// changing state.
func (m *Machine) Allow(k Kind) error {
	return m.guard("check", k)
}

func (m *Machine) guard(op string, want Kind) error {
	if m.state.Transitioning() {
		return fmt.Errorf("view: %s: %w", op, apperr.ErrBusy)
	}
	if m.state.Kind != want {
		return fmt.Errorf("view: %s from %s: %w", op, m.state, apperr.ErrInvalidTransition)
	}
	return nil
}

// ZoomOut starts Editor(id) -> TransitioningOut(id).
func (m *Machine) ZoomOut() error {
	if err := m.guard("zoom out", Editor); err != nil {
		return err
	}
	m.state = State{Kind: TransitioningOut, Focus: m.state.Focus}
	return nil
}

// Select starts Gallery -> TransitioningIn(id). Edit mode is dropped.
func (m *Machine) Select(id models.NoteID) error {
	if err := m.guard("select", Gallery); err != nil {
		return err
	}
	if id == "" {
		return fmt.Errorf("view: select: empty id: %w", apperr.ErrInvalidTransition)
	}
	m.state = State{Kind: TransitioningIn, Focus: id}
	return nil
}

// Complete finishes the in-flight transition and returns the settled state.
func (m *Machine) Complete() (State, error) {
	switch m.state.Kind {
	case TransitioningOut:
		m.state = State{Kind: Gallery, Focus: m.state.Focus}
	case TransitioningIn:
		m.state = State{Kind: Editor, Focus: m.state.Focus}
	default:
		return m.state, fmt.Errorf("view: complete from %s: %w", m.state, apperr.ErrInvalidTransition)
	}
	return m.state, nil
}

// EnterEditMode switches Gallery(false) -> Gallery(true).
func (m *Machine) EnterEditMode() error {
	if err := m.guard("enter edit mode", Gallery); err != nil {
		return err
	}
	m.state.EditMode = true
	return nil
}

// CancelEditMode switches Gallery(true) -> Gallery(false).
func (m *Machine) CancelEditMode() error {
	if err := m.guard("cancel edit mode", Gallery); err != nil {
		return err
	}
	m.state.EditMode = false
	return nil
}

// Delete validates a thumbnail delete. Only legal in Gallery(true); the
// state does not change.
func (m *Machine) Delete(id models.NoteID) error {
	if err := m.guard("delete", Gallery); err != nil {
		return err
	}
	if !m.state.EditMode {
		return fmt.Errorf("view: delete outside edit mode: %w", apperr.ErrInvalidTransition)
	}
	if id == "" {
		return fmt.Errorf("view: delete: empty id: %w", apperr.ErrInvalidTransition)
	}
	return nil
}

// Create switches Editor(id) -> Editor(newID) without animation.
func (m *Machine) Create(newID models.NoteID) error {
	if err := m.guard("create", Editor); err != nil {
		return err
	}
	if newID == "" {
		return fmt.Errorf("view: create: empty id: %w", apperr.ErrInvalidTransition)
	}
	m.state.Focus = newID
	return nil
}

// Repoint replaces a stale focus without changing the view kind. It is
// refused while a transition is in flight.
func (m *Machine) Repoint(id models.NoteID) error {
	if m.state.Transitioning() {
		return fmt.Errorf("view: repoint: %w", apperr.ErrBusy)
	}
	m.state.Focus = id
	return nil
}
