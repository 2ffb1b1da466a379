// Package storage defines the data-directory file abstraction.
package storage

import (
	"path"

	"github.com/starford/stickynote/internal/models"
)

// NotesDir is the directory, relative to the data root, holding one text
// file per note.
const NotesDir = "notes"

// NoteExt is the extension of note files.
const NoteExt = ".txt"

// NotePath returns the root-relative path of the file for id.
func NotePath(id models.NoteID) string {
	return path.Join(NotesDir, string(id)+NoteExt)
}

// Provider is the interface for data-directory file operations. Paths are
// relative to the data root.
type Provider interface {
	// ListNotes returns metadata for every note file, oldest first.
	ListNotes() ([]models.NoteMetadata, error)
	// Read returns the raw bytes of the file at path.
	Read(path string) ([]byte, error)
	// Write atomically writes content to path.
	Write(path string, content []byte) error
	// Delete removes the file at path.
	Delete(path string) error
	// Move renames oldPath to newPath.
	Move(oldPath, newPath string) error
	// Exists reports whether a regular file is at path.
	Exists(path string) bool
}
