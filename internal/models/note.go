// Package models defines the domain types for stickynote.
package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// NoteID identifies a note for its whole lifetime. IDs are never reused.
type NoteID string

// NewNoteID returns a fresh random id: a UUIDv4 rendered as 32 hex digits.
func NewNoteID() NoteID {
	return NoteID(strings.ReplaceAll(uuid.NewString(), "-", ""))
}

// ValidNoteID reports whether s is safe to use as a note file stem.
func ValidNoteID(s string) bool {
	if s == "" || len(s) > 64 {
		return false
	}
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '-', r == '_':
		default:
			return false
		}
	}
	return true
}

// Note is one note as stored on disk.
type Note struct {
	ID        NoteID    `json:"id"`
	Body      string    `json:"body"`
	Checksum  string    `json:"checksum"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NoteMetadata is a lightweight representation returned by list operations.
type NoteMetadata struct {
	ID        NoteID    `json:"id"`
	Position  int       `json:"position"`
	Preview   string    `json:"preview"`
	Checksum  string    `json:"checksum"`
	UpdatedAt time.Time `json:"updated_at"`
}

// State is the persisted note order plus the active note.
type State struct {
	Order  []NoteID `json:"note_ids"`
	Active NoteID   `json:"active_id"`
}

// Contains reports whether id is in the order.
func (s State) Contains(id NoteID) bool {
	return IndexOf(s.Order, id) >= 0
}

// IndexOf returns the position of id in order, or -1.
func IndexOf(order []NoteID, id NoteID) int {
	for i, v := range order {
		if v == id {
			return i
		}
	}
	return -1
}

// Without returns a copy of order with id removed.
func Without(order []NoteID, id NoteID) []NoteID {
	out := make([]NoteID, 0, len(order))
	for _, v := range order {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
