package index

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/starford/stickynote/internal/checksum"
	"github.com/starford/stickynote/internal/models"
	"github.com/starford/stickynote/internal/storage"
)

// EventKind says what happened to a note file.
type EventKind string

const (
	EventCreated EventKind = "created"
	EventUpdated EventKind = "updated"
	EventDeleted EventKind = "deleted"
)

// EventCallback is called after a watcher-driven index change. It runs on
// the watcher goroutine.
type EventCallback func(kind EventKind, id models.NoteID)

// reconcileDelay debounces the reconciliation pass after renames.
const reconcileDelay = 200 * time.Millisecond

// Watch starts an fsnotify watcher on notesDir and processes note file
// changes until ctx is cancelled. It calls cb (if non-nil) after each index
// mutation.
//
// Changes whose checksum already matches the index are the widget's own
// writes and are skipped. Rename events trigger a reconciliation pass that
// brings the index back in line with the directory.
func Watch(ctx context.Context, db NoteIndex, store storage.Provider, notesDir string, logger *slog.Logger, cb EventCallback) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Add(notesDir); err != nil {
		return err
	}

	logger.Info("watcher: started", slog.String("dir", notesDir))

	var reconcileTimer *time.Timer
	var reconcileCh <-chan time.Time

	scheduleReconcile := func() {
		if reconcileTimer == nil {
			reconcileTimer = time.NewTimer(reconcileDelay)
			reconcileCh = reconcileTimer.C
		} else {
			reconcileTimer.Reset(reconcileDelay)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if reconcileTimer != nil {
				reconcileTimer.Stop()
			}
			logger.Info("watcher: stopped")
			return nil

		case <-reconcileCh:
			reconcile(db, store, logger, cb)

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Dir(ev.Name) != filepath.Clean(notesDir) {
				continue
			}
			id, isNote := storage.IDFromName(ev.Name)
			if !isNote {
				continue
			}

			switch {
			case ev.Op&(fsnotify.Create|fsnotify.Write) != 0:
				handleChange(db, store, id, ev.Op&fsnotify.Create != 0, logger, cb)

			case ev.Op&fsnotify.Remove != 0:
				handleRemove(db, id, logger, cb)

			case ev.Op&fsnotify.Rename != 0:
				// fsnotify reports Rename on the old name only; a move
				// into the directory arrives as Create.
				handleRemove(db, id, logger, cb)
				scheduleReconcile()
			}

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher: error", slog.String("error", watchErr.Error()))
		}
	}
}

func handleChange(db NoteIndex, store storage.Provider, id models.NoteID, created bool, logger *slog.Logger, cb EventCallback) {
	data, err := store.Read(storage.NotePath(id))
	if err != nil {
		logger.Warn("watcher: read failed", slog.String("id", string(id)), slog.String("error", err.Error()))
		return
	}
	indexed, err := db.GetChecksum(id)
	if err != nil {
		logger.Warn("watcher: checksum lookup failed", slog.String("id", string(id)), slog.String("error", err.Error()))
		return
	}
	if indexed == checksum.Sum(data) {
		return
	}
	if err := IndexNote(db, id, data, time.Now()); err != nil {
		logger.Warn("watcher: index failed", slog.String("id", string(id)), slog.String("error", err.Error()))
		return
	}
	kind := EventUpdated
	if created || indexed == "" {
		kind = EventCreated
	}
	logger.Debug("watcher: indexed", slog.String("id", string(id)), slog.String("op", string(kind)))
	if cb != nil {
		cb(kind, id)
	}
}

func handleRemove(db NoteIndex, id models.NoteID, logger *slog.Logger, cb EventCallback) {
	indexed, err := db.GetChecksum(id)
	if err != nil || indexed == "" {
		// Already gone: the widget deleted it itself.
		return
	}
	if err := db.DeleteNote(id); err != nil {
		logger.Warn("watcher: delete failed", slog.String("id", string(id)), slog.String("error", err.Error()))
		return
	}
	logger.Debug("watcher: deleted", slog.String("id", string(id)))
	if cb != nil {
		cb(EventDeleted, id)
	}
}

// reconcile removes index entries whose file is gone and indexes files that
// are new or changed.
func reconcile(db NoteIndex, store storage.Provider, logger *slog.Logger, cb EventCallback) {
	checksums, err := db.AllChecksums()
	if err != nil {
		logger.Warn("reconcile: all checksums failed", slog.String("error", err.Error()))
		return
	}
	metas, err := store.ListNotes()
	if err != nil {
		logger.Warn("reconcile: list failed", slog.String("error", err.Error()))
		return
	}

	disk := make(map[models.NoteID]string, len(metas))
	for _, m := range metas {
		disk[m.ID] = m.Checksum
	}

	for id := range checksums {
		if _, ok := disk[id]; ok {
			continue
		}
		if err := db.DeleteNote(id); err == nil {
			logger.Debug("reconcile: removed stale", slog.String("id", string(id)))
			if cb != nil {
				cb(EventDeleted, id)
			}
		}
	}

	for _, m := range metas {
		old, known := checksums[m.ID]
		if old == m.Checksum {
			continue
		}
		data, err := store.Read(storage.NotePath(m.ID))
		if err != nil {
			continue
		}
		if err := IndexNote(db, m.ID, data, m.UpdatedAt); err != nil {
			continue
		}
		kind := EventUpdated
		if !known {
			kind = EventCreated
		}
		logger.Debug("reconcile: indexed", slog.String("id", string(m.ID)), slog.String("op", string(kind)))
		if cb != nil {
			cb(kind, m.ID)
		}
	}
}
