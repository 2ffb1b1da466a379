//go:build !sqlite_fts5

package index

import (
	"database/sql"
	"fmt"

	"github.com/starford/stickynote/internal/models"
)

func initFTS(_ *sql.DB) error {
	// FTS5 not available; search uses LIKE on the notes.body column.
	return nil
}

func ftsUpsert(_ *sql.Tx, _, _, _ string) error {
	// Body is already stored in the notes table; nothing extra to do.
	return nil
}

func ftsDelete(_ *sql.Tx, _ string) {}

// Search performs a LIKE-based search in note order (fallback when FTS5 is
// not compiled in).
func (db *DB) Search(query string, limit int) ([]SearchResult, error) {
	if limit <= 0 {
		limit = 20
	}
	like := "%" + query + "%"
	rows, err := db.conn.Query(`
		SELECT id, title, preview
		FROM notes
		WHERE checksum != '' AND (title LIKE ? OR body LIKE ?)
		ORDER BY CASE WHEN position < 0 THEN 1 ELSE 0 END, position, updated_at
		LIMIT ?
	`, like, like, limit)
	if err != nil {
		return nil, fmt.Errorf("index: search: %w", err)
	}
	defer rows.Close()

	var out []SearchResult
	for rows.Next() {
		var r SearchResult
		var id string
		if err := rows.Scan(&id, &r.Title, &r.Snippet); err != nil {
			return nil, err
		}
		r.ID = models.NoteID(id)
		out = append(out, r)
	}
	return out, rows.Err()
}
