package view

import (
	"errors"
	"testing"

	"github.com/starford/stickynote/internal/apperr"
)

func TestMachine_ZoomOutAndBack(t *testing.T) {
	m := New("a")
	if err := m.ZoomOut(); err != nil {
		t.Fatalf("ZoomOut: %v", err)
	}
	if got := m.State(); got.Kind != TransitioningOut || got.Focus != "a" {
		t.Fatalf("state = %s, want transitioning-out(a)", got)
	}
	st, err := m.Complete()
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if st.Kind != Gallery || st.EditMode {
		t.Fatalf("state = %s, want gallery(edit=false)", st)
	}

	if err := m.Select("b"); err != nil {
		t.Fatalf("Select: %v", err)
	}
	st, err = m.Complete()
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if st.Kind != Editor || st.Focus != "b" {
		t.Fatalf("state = %s, want editor(b)", st)
	}
}

func TestMachine_RejectsWhileTransitioning(t *testing.T) {
	m := New("a")
	if err := m.ZoomOut(); err != nil {
		t.Fatal(err)
	}
	before := m.State()

	calls := map[string]func() error{
		"zoom out":    m.ZoomOut,
		"select":      func() error { return m.Select("b") },
		"enter edit":  m.EnterEditMode,
		"cancel edit": m.CancelEditMode,
		"delete":      func() error { return m.Delete("a") },
		"create":      func() error { return m.Create("c") },
		"repoint":     func() error { return m.Repoint("c") },
	}
	for name, call := range calls {
		if err := call(); !errors.Is(err, apperr.ErrBusy) {
			t.Errorf("%s: err = %v, want ErrBusy", name, err)
		}
		if m.State() != before {
			t.Errorf("%s changed state to %s", name, m.State())
		}
	}
}

func TestMachine_EditMode(t *testing.T) {
	m := New("a")
	if err := m.EnterEditMode(); !errors.Is(err, apperr.ErrInvalidTransition) {
		t.Errorf("EnterEditMode from editor: err = %v", err)
	}
	m.ZoomOut()
	m.Complete()

	if err := m.Delete("a"); !errors.Is(err, apperr.ErrInvalidTransition) {
		t.Errorf("Delete outside edit mode: err = %v", err)
	}
	if err := m.EnterEditMode(); err != nil {
		t.Fatal(err)
	}
	if !m.State().EditMode {
		t.Fatal("edit mode not set")
	}
	if err := m.Delete("a"); err != nil {
		t.Errorf("Delete: %v", err)
	}
	if st := m.State(); st.Kind != Gallery || !st.EditMode {
		t.Errorf("Delete changed state to %s", st)
	}
	if err := m.CancelEditMode(); err != nil {
		t.Fatal(err)
	}
	if m.State().EditMode {
		t.Error("edit mode still set after cancel")
	}
}

func TestMachine_SelectDropsEditMode(t *testing.T) {
	m := New("a")
	m.ZoomOut()
	m.Complete()
	m.EnterEditMode()
	if err := m.Select("b"); err != nil {
		t.Fatal(err)
	}
	st, _ := m.Complete()
	if st.EditMode {
		t.Errorf("state = %s, edit mode leaked into editor", st)
	}
}

func TestMachine_Create(t *testing.T) {
	m := New("a")
	if err := m.Create("n"); err != nil {
		t.Fatal(err)
	}
	if st := m.State(); st.Kind != Editor || st.Focus != "n" {
		t.Errorf("state = %s, want editor(n)", st)
	}
	m.ZoomOut()
	m.Complete()
	if err := m.Create("x"); !errors.Is(err, apperr.ErrInvalidTransition) {
		t.Errorf("Create from gallery: err = %v", err)
	}
}

func TestMachine_CompleteWithoutTransition(t *testing.T) {
	m := New("a")
	if _, err := m.Complete(); !errors.Is(err, apperr.ErrInvalidTransition) {
		t.Errorf("err = %v, want ErrInvalidTransition", err)
	}
	if m.State().Kind != Editor {
		t.Errorf("state changed to %s", m.State())
	}
}

func TestMachine_Repoint(t *testing.T) {
	m := New("gone")
	if err := m.Repoint("b"); err != nil {
		t.Fatal(err)
	}
	if st := m.State(); st.Kind != Editor || st.Focus != "b" {
		t.Errorf("state = %s, want editor(b)", st)
	}
}
