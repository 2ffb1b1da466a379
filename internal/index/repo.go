package index

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/starford/stickynote/internal/apperr"
	"github.com/starford/stickynote/internal/models"
)

// NoteRow represents a row in the notes table. Position is -1 for notes
// that are not in the saved order.
type NoteRow struct {
	ID        models.NoteID
	Position  int
	Title     string
	Checksum  string
	Preview   string
	UpdatedAt time.Time
}

// SearchResult represents one search hit.
type SearchResult struct {
	ID      models.NoteID
	Title   string
	Snippet string
}

// UpsertNote inserts or replaces a note's content and its FTS entry. The
// note's position is left alone.
func (db *DB) UpsertNote(n NoteRow, body string) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("index: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // best-effort on failure path

	_, err = tx.Exec(`
		INSERT INTO notes (id, position, title, checksum, preview, body, updated_at)
		VALUES (?, -1, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title      = excluded.title,
			checksum   = excluded.checksum,
			preview    = excluded.preview,
			body       = excluded.body,
			updated_at = excluded.updated_at
	`, string(n.ID), n.Title, n.Checksum, n.Preview, body, n.UpdatedAt)
	if err != nil {
		return fmt.Errorf("index: upsert note: %w", err)
	}

	// FTS upsert (no-op when FTS5 tag is absent).
	if err := ftsUpsert(tx, string(n.ID), n.Title, body); err != nil {
		return err
	}
	return tx.Commit()
}

// DeleteNote removes a note and its FTS entry.
func (db *DB) DeleteNote(id models.NoteID) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("index: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	ftsDelete(tx, string(id))
	if _, err := tx.Exec(`DELETE FROM notes WHERE id = ?`, string(id)); err != nil {
		return fmt.Errorf("index: delete note: %w", err)
	}
	return tx.Commit()
}

// GetChecksum returns the stored checksum for a note, or empty string if not found.
func (db *DB) GetChecksum(id models.NoteID) (string, error) {
	var cs string
	err := db.conn.QueryRow(`SELECT checksum FROM notes WHERE id = ?`, string(id)).Scan(&cs)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("index: get checksum: %w", err)
	}
	return cs, nil
}

// GetNote returns one row.
func (db *DB) GetNote(id models.NoteID) (*NoteRow, error) {
	var n NoteRow
	var rid string
	err := db.conn.QueryRow(`
		SELECT id, position, title, checksum, preview, updated_at
		FROM notes WHERE id = ?
	`, string(id)).Scan(&rid, &n.Position, &n.Title, &n.Checksum, &n.Preview, &n.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("index: get note %s: %w", id, apperr.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("index: get note: %w", err)
	}
	n.ID = models.NoteID(rid)
	return &n, nil
}

// ListNotes returns every row: ordered notes by position, then the rest by
// age.
func (db *DB) ListNotes() ([]NoteRow, error) {
	rows, err := db.conn.Query(`
		SELECT id, position, title, checksum, preview, updated_at
		FROM notes
		ORDER BY CASE WHEN position < 0 THEN 1 ELSE 0 END, position, updated_at, id
	`)
	if err != nil {
		return nil, fmt.Errorf("index: list notes: %w", err)
	}
	defer rows.Close()

	var out []NoteRow
	for rows.Next() {
		var n NoteRow
		var id string
		if err := rows.Scan(&id, &n.Position, &n.Title, &n.Checksum, &n.Preview, &n.UpdatedAt); err != nil {
			return nil, err
		}
		n.ID = models.NoteID(id)
		out = append(out, n)
	}
	return out, rows.Err()
}

// AllChecksums returns the checksum of every indexed note with content.
func (db *DB) AllChecksums() (map[models.NoteID]string, error) {
	rows, err := db.conn.Query(`SELECT id, checksum FROM notes WHERE checksum != ''`)
	if err != nil {
		return nil, fmt.Errorf("index: all checksums: %w", err)
	}
	defer rows.Close()
	out := make(map[models.NoteID]string)
	for rows.Next() {
		var id, cs string
		if err := rows.Scan(&id, &cs); err != nil {
			return nil, err
		}
		out[models.NoteID(id)] = cs
	}
	return out, rows.Err()
}

// Previews returns the stored preview text for the ids that have one.
func (db *DB) Previews(ids []models.NoteID) (map[models.NoteID]string, error) {
	out := make(map[models.NoteID]string, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = string(id)
	}
	marks := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	rows, err := db.conn.Query(`SELECT id, preview FROM notes WHERE preview != '' AND id IN (`+marks+`)`, args...)
	if err != nil {
		return nil, fmt.Errorf("index: previews: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var id, p string
		if err := rows.Scan(&id, &p); err != nil {
			return nil, err
		}
		out[models.NoteID(id)] = p
	}
	return out, rows.Err()
}

// SaveState rewrites every note position and the active id in one
// transaction. Ids without a row get one.
func (db *DB) SaveState(order []models.NoteID, active models.NoteID) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("index: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.Exec(`UPDATE notes SET position = -1 WHERE position >= 0`); err != nil {
		return fmt.Errorf("index: reset positions: %w", err)
	}
	stmt, err := tx.Prepare(`
		INSERT INTO notes (id, position) VALUES (?, ?)
		ON CONFLICT(id) DO UPDATE SET position = excluded.position
	`)
	if err != nil {
		return fmt.Errorf("index: prepare position: %w", err)
	}
	defer stmt.Close()
	for i, id := range order {
		if _, err := stmt.Exec(string(id), i); err != nil {
			return fmt.Errorf("index: set position %s: %w", id, err)
		}
	}
	// Rows created only to hold a position and no longer ordered.
	if _, err := tx.Exec(`DELETE FROM notes WHERE position < 0 AND checksum = ''`); err != nil {
		return fmt.Errorf("index: prune rows: %w", err)
	}
	if err := setMeta(tx, metaActiveID, string(active)); err != nil {
		return err
	}
	if err := setMeta(tx, metaStateSaved, "1"); err != nil {
		return err
	}
	return tx.Commit()
}

// LoadState returns the saved order and active id. saved is false when no
// state was ever written.
func (db *DB) LoadState() (st models.State, saved bool, err error) {
	rows, err := db.conn.Query(`SELECT id FROM notes WHERE position >= 0 ORDER BY position`)
	if err != nil {
		return st, false, fmt.Errorf("index: load order: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return st, false, err
		}
		st.Order = append(st.Order, models.NoteID(id))
	}
	if err := rows.Err(); err != nil {
		return st, false, err
	}

	active, _, err := db.getMeta(metaActiveID)
	if err != nil {
		return st, false, err
	}
	st.Active = models.NoteID(active)
	_, saved, err = db.getMeta(metaStateSaved)
	if err != nil {
		return st, false, err
	}
	return st, saved, nil
}

func (db *DB) getMeta(key string) (string, bool, error) {
	var v string
	err := db.conn.QueryRow(`SELECT value FROM meta WHERE key = ?`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("index: get meta %s: %w", key, err)
	}
	return v, true, nil
}

func setMeta(tx *sql.Tx, key, value string) error {
	_, err := tx.Exec(`
		INSERT INTO meta (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("index: set meta %s: %w", key, err)
	}
	return nil
}
