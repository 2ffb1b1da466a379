package index

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/starford/stickynote/internal/checksum"
	"github.com/starford/stickynote/internal/models"
	"github.com/starford/stickynote/internal/parser"
	"github.com/starford/stickynote/internal/storage"
)

// Files from the single-note and JSON-state releases.
const (
	LegacyNoteFile  = "note.txt"
	LegacyStateFile = "state.json"
)

// Sync reconciles the notes directory, the saved state and the index at
// startup:
//   - an empty notes directory gets one note, seeded from the legacy note
//     file when present
//   - the saved order keeps the ids whose files still exist; unseen files
//     are appended oldest first
//   - the saved active id is kept if it survived, else the first id wins
//   - new or changed files are re-indexed, rows for vanished files removed
//
// The reconciled state is saved and returned.
func Sync(db NoteIndex, store storage.Provider, logger *slog.Logger) (models.State, error) {
	metas, err := store.ListNotes()
	if err != nil {
		return models.State{}, err
	}
	if len(metas) == 0 {
		if metas, err = seedFirstNote(store, logger); err != nil {
			return models.State{}, err
		}
	}

	disk := make([]models.NoteID, len(metas))
	onDisk := make(map[models.NoteID]struct{}, len(metas))
	for i, m := range metas {
		disk[i] = m.ID
		onDisk[m.ID] = struct{}{}
	}

	saved, ok, err := db.LoadState()
	if err != nil {
		return models.State{}, err
	}
	if !ok {
		if legacy, found := importLegacyState(store, logger); found {
			saved = legacy
		}
	}
	st := merge(saved, disk, onDisk)

	if err := reindex(db, store, metas, onDisk, logger); err != nil {
		return models.State{}, err
	}
	if err := db.SaveState(st.Order, st.Active); err != nil {
		return models.State{}, err
	}
	logger.Info("sync: state reconciled", slog.Int("notes", len(st.Order)), slog.String("active", string(st.Active)))
	return st, nil
}

// merge filters saved to ids on disk and appends the rest of disk in order.
func merge(saved models.State, disk []models.NoteID, onDisk map[models.NoteID]struct{}) models.State {
	var order []models.NoteID
	seen := make(map[models.NoteID]struct{}, len(disk))
	for _, id := range saved.Order {
		if _, ok := onDisk[id]; !ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		order = append(order, id)
	}
	for _, id := range disk {
		if _, ok := seen[id]; !ok {
			order = append(order, id)
		}
	}

	st := models.State{Order: order}
	if len(order) > 0 {
		st.Active = order[0]
	}
	if saved.Active != "" && st.Contains(saved.Active) {
		st.Active = saved.Active
	}
	return st
}

func seedFirstNote(store storage.Provider, logger *slog.Logger) ([]models.NoteMetadata, error) {
	var content []byte
	if store.Exists(LegacyNoteFile) {
		data, err := store.Read(LegacyNoteFile)
		if err != nil {
			logger.Warn("sync: read legacy note failed", slog.String("error", err.Error()))
		} else {
			content = data
			logger.Info("sync: migrating legacy note")
		}
	}
	id := models.NewNoteID()
	if err := store.Write(storage.NotePath(id), content); err != nil {
		return nil, fmt.Errorf("index: seed note: %w", err)
	}
	return store.ListNotes()
}

// importLegacyState reads the old JSON state file and renames it so the
// import runs once.
func importLegacyState(store storage.Provider, logger *slog.Logger) (models.State, bool) {
	if !store.Exists(LegacyStateFile) {
		return models.State{}, false
	}
	data, err := store.Read(LegacyStateFile)
	if err != nil {
		logger.Warn("sync: read legacy state failed", slog.String("error", err.Error()))
		return models.State{}, false
	}
	var st models.State
	if err := json.Unmarshal(data, &st); err != nil {
		logger.Warn("sync: parse legacy state failed", slog.String("error", err.Error()))
		return models.State{}, false
	}
	if err := store.Move(LegacyStateFile, LegacyStateFile+".imported"); err != nil {
		logger.Warn("sync: retire legacy state failed", slog.String("error", err.Error()))
	}
	logger.Info("sync: imported legacy state", slog.Int("notes", len(st.Order)))
	return st, true
}

func reindex(db NoteIndex, store storage.Provider, metas []models.NoteMetadata, onDisk map[models.NoteID]struct{}, logger *slog.Logger) error {
	checksums, err := db.AllChecksums()
	if err != nil {
		return err
	}
	for _, m := range metas {
		if checksums[m.ID] == m.Checksum {
			continue
		}
		data, err := store.Read(storage.NotePath(m.ID))
		if err != nil {
			logger.Warn("sync: read failed", slog.String("id", string(m.ID)), slog.String("error", err.Error()))
			continue
		}
		if err := IndexNote(db, m.ID, data, m.UpdatedAt); err != nil {
			logger.Warn("sync: index failed", slog.String("id", string(m.ID)), slog.String("error", err.Error()))
		} else {
			logger.Debug("sync: indexed", slog.String("id", string(m.ID)))
		}
	}

	for id := range checksums {
		if _, ok := onDisk[id]; ok {
			continue
		}
		if err := db.DeleteNote(id); err != nil {
			logger.Warn("sync: delete failed", slog.String("id", string(id)), slog.String("error", err.Error()))
		} else {
			logger.Debug("sync: removed stale", slog.String("id", string(id)))
		}
	}
	return nil
}

// IndexNote parses data and upserts it into the index.
func IndexNote(db NoteIndex, id models.NoteID, data []byte, at time.Time) error {
	res := parser.Parse(data)
	return db.UpsertNote(NoteRow{
		ID:        id,
		Title:     res.Title,
		Checksum:  checksum.Sum(data),
		Preview:   res.Preview,
		UpdatedAt: at,
	}, res.Body)
}
