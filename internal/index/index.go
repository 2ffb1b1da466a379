package index

import "github.com/starford/stickynote/internal/models"

// NoteIndex defines the interface for note indexing operations.
// Consumers should depend on this interface rather than the concrete *DB type
// to facilitate testing with fakes.
type NoteIndex interface {
	UpsertNote(n NoteRow, body string) error
	DeleteNote(id models.NoteID) error
	GetChecksum(id models.NoteID) (string, error)
	GetNote(id models.NoteID) (*NoteRow, error)
	ListNotes() ([]NoteRow, error)
	AllChecksums() (map[models.NoteID]string, error)
	Previews(ids []models.NoteID) (map[models.NoteID]string, error)
	SaveState(order []models.NoteID, active models.NoteID) error
	LoadState() (models.State, bool, error)
	Search(query string, limit int) ([]SearchResult, error)
	Close() error
}

// Verify *DB satisfies NoteIndex at compile time.
var _ NoteIndex = (*DB)(nil)
