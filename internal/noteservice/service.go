// Package noteservice is the persistence gateway: note text lives in the
// storage provider, order, active id and previews in the index.
package noteservice

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/starford/stickynote/internal/apperr"
	"github.com/starford/stickynote/internal/index"
	"github.com/starford/stickynote/internal/models"
	"github.com/starford/stickynote/internal/parser"
	"github.com/starford/stickynote/internal/storage"
)

// Service coordinates storage and index operations.
type Service struct {
	store  storage.Provider
	db     index.NoteIndex
	logger *slog.Logger
	now    func() time.Time
}

// NewService creates a new note service.
func NewService(store storage.Provider, db index.NoteIndex, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, db: db, logger: logger, now: time.Now}
}

// Bootstrap reconciles disk, saved state and index. Call it once before
// the widget loads its state.
func (s *Service) Bootstrap() (models.State, error) {
	return index.Sync(s.db, s.store, s.logger)
}

// LoadState returns the saved order and active note.
func (s *Service) LoadState() ([]models.NoteID, models.NoteID, error) {
	st, _, err := s.db.LoadState()
	if err != nil {
		return nil, "", err
	}
	return st.Order, st.Active, nil
}

// SaveState persists the order and active note.
func (s *Service) SaveState(order []models.NoteID, active models.NoteID) error {
	return s.db.SaveState(order, active)
}

// LoadNoteText reads a note's text.
func (s *Service) LoadNoteText(id models.NoteID) (string, error) {
	if !models.ValidNoteID(string(id)) {
		return "", fmt.Errorf("noteservice: load %q: %w", id, apperr.ErrNotFound)
	}
	data, err := s.store.Read(storage.NotePath(id))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("noteservice: load %s: %w", id, apperr.ErrNotFound)
		}
		return "", err
	}
	return string(data), nil
}

// SaveNoteText writes a note's text. The index is updated before the file
// so the watcher recognizes the write as our own.
func (s *Service) SaveNoteText(id models.NoteID, text string) error {
	if !models.ValidNoteID(string(id)) {
		return fmt.Errorf("noteservice: invalid note id %q", id)
	}
	data := []byte(text)
	if err := index.IndexNote(s.db, id, data, s.now()); err != nil {
		return err
	}
	return s.store.Write(storage.NotePath(id), data)
}

// DeleteNote removes a note from index and storage. A missing file is not
// an error.
func (s *Service) DeleteNote(id models.NoteID) error {
	if err := s.db.DeleteNote(id); err != nil {
		return err
	}
	if err := s.store.Delete(storage.NotePath(id)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// CreateNote writes a new note with a fresh id.
func (s *Service) CreateNote(initial string) (models.NoteID, error) {
	id := models.NewNoteID()
	if err := s.SaveNoteText(id, initial); err != nil {
		return "", err
	}
	s.logger.Debug("note created", slog.String("id", string(id)))
	return id, nil
}

// Previews returns thumbnail text for ids. Notes missing from the index
// are read from disk.
func (s *Service) Previews(ids []models.NoteID) (map[models.NoteID]string, error) {
	out, err := s.db.Previews(ids)
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		if _, ok := out[id]; ok {
			continue
		}
		text, err := s.LoadNoteText(id)
		if err != nil {
			out[id] = parser.EmptyPreview
			continue
		}
		out[id] = parser.Parse([]byte(text)).Preview
	}
	return out, nil
}

// Notes returns the ordered notes with their previews.
func (s *Service) Notes() ([]models.NoteMetadata, error) {
	order, _, err := s.LoadState()
	if err != nil {
		return nil, err
	}
	previews, err := s.Previews(order)
	if err != nil {
		return nil, err
	}
	out := make([]models.NoteMetadata, len(order))
	for i, id := range order {
		out[i] = models.NoteMetadata{ID: id, Position: i, Preview: previews[id]}
		if row, err := s.db.GetNote(id); err == nil {
			out[i].Checksum = row.Checksum
			out[i].UpdatedAt = row.UpdatedAt
		}
	}
	return out, nil
}

// Search delegates text search to the index.
func (s *Service) Search(query string, limit int) ([]index.SearchResult, error) {
	return s.db.Search(query, limit)
}
