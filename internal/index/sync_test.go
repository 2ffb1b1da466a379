package index

import (
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/starford/stickynote/internal/models"
	"github.com/starford/stickynote/internal/storage"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// writeAged writes note files with increasing modification times.
func writeAged(t *testing.T, store *storage.FS, ids ...models.NoteID) {
	t.Helper()
	base := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	for i, id := range ids {
		if err := store.Write(storage.NotePath(id), []byte("text of "+string(id))); err != nil {
			t.Fatal(err)
		}
		mt := base.Add(time.Duration(i) * time.Hour)
		if err := os.Chtimes(filepath.Join(store.NotesRoot(), string(id)+storage.NoteExt), mt, mt); err != nil {
			t.Fatal(err)
		}
	}
}

func TestSync_EmptyDirSeedsNote(t *testing.T) {
	store, db := watcherTestEnv(t)
	st, err := Sync(db, store, quietLogger())
	if err != nil {
		t.Fatalf("Sync: %v", err)
	}
	if len(st.Order) != 1 || st.Active != st.Order[0] {
		t.Fatalf("state = %+v, want one active note", st)
	}
	if !store.Exists(storage.NotePath(st.Active)) {
		t.Error("seeded note file missing")
	}
	saved, ok, _ := db.LoadState()
	if !ok || !reflect.DeepEqual(saved.Order, st.Order) {
		t.Errorf("persisted = %+v, want %+v", saved, st)
	}
}

func TestSync_MigratesLegacyNote(t *testing.T) {
	store, db := watcherTestEnv(t)
	_ = store.Write(LegacyNoteFile, []byte("from the old widget"))

	st, err := Sync(db, store, quietLogger())
	if err != nil {
		t.Fatal(err)
	}
	got, err := store.Read(storage.NotePath(st.Active))
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "from the old widget" {
		t.Errorf("migrated text = %q", got)
	}
}

func TestSync_DiskOrderOldestFirst(t *testing.T) {
	store, db := watcherTestEnv(t)
	writeAged(t, store, "c", "a", "b")

	st, err := Sync(db, store, quietLogger())
	if err != nil {
		t.Fatal(err)
	}
	if want := []models.NoteID{"c", "a", "b"}; !reflect.DeepEqual(st.Order, want) {
		t.Errorf("order = %v, want %v", st.Order, want)
	}
	if st.Active != "c" {
		t.Errorf("active = %q, want c", st.Active)
	}
}

func TestSync_SavedOrderFilteredAndExtended(t *testing.T) {
	store, db := watcherTestEnv(t)
	writeAged(t, store, "a", "b", "c", "d")
	if err := db.SaveState([]models.NoteID{"c", "gone", "a"}, "a"); err != nil {
		t.Fatal(err)
	}

	st, err := Sync(db, store, quietLogger())
	if err != nil {
		t.Fatal(err)
	}
	if want := []models.NoteID{"c", "a", "b", "d"}; !reflect.DeepEqual(st.Order, want) {
		t.Errorf("order = %v, want %v", st.Order, want)
	}
	if st.Active != "a" {
		t.Errorf("active = %q, want a", st.Active)
	}
}

func TestSync_StaleActiveFallsBackToFirst(t *testing.T) {
	store, db := watcherTestEnv(t)
	writeAged(t, store, "a", "b")
	_ = db.SaveState([]models.NoteID{"b", "a"}, "gone")

	st, _ := Sync(db, store, quietLogger())
	if st.Active != "b" {
		t.Errorf("active = %q, want b", st.Active)
	}
}

func TestSync_ImportsLegacyState(t *testing.T) {
	store, db := watcherTestEnv(t)
	writeAged(t, store, "a", "b", "c")
	_ = store.Write(LegacyStateFile, []byte(`{"note_ids": ["b", "x", "c"], "active_id": "c"}`))

	st, err := Sync(db, store, quietLogger())
	if err != nil {
		t.Fatal(err)
	}
	if want := []models.NoteID{"b", "c", "a"}; !reflect.DeepEqual(st.Order, want) {
		t.Errorf("order = %v, want %v", st.Order, want)
	}
	if st.Active != "c" {
		t.Errorf("active = %q, want c", st.Active)
	}
	if store.Exists(LegacyStateFile) {
		t.Error("legacy state file not retired")
	}
}

func TestSync_BrokenLegacyStateIgnored(t *testing.T) {
	store, db := watcherTestEnv(t)
	writeAged(t, store, "a", "b")
	_ = store.Write(LegacyStateFile, []byte(`{not json`))

	st, err := Sync(db, store, quietLogger())
	if err != nil {
		t.Fatal(err)
	}
	if want := []models.NoteID{"a", "b"}; !reflect.DeepEqual(st.Order, want) {
		t.Errorf("order = %v, want %v", st.Order, want)
	}
}

func TestSync_ReindexesAndRemovesStale(t *testing.T) {
	store, db := watcherTestEnv(t)
	writeAged(t, store, "a", "b")
	if _, err := Sync(db, store, quietLogger()); err != nil {
		t.Fatal(err)
	}

	_ = store.Write(storage.NotePath("a"), []byte("rewritten offline"))
	_ = store.Delete(storage.NotePath("b"))
	if _, err := Sync(db, store, quietLogger()); err != nil {
		t.Fatal(err)
	}

	n, err := db.GetNote("a")
	if err != nil {
		t.Fatal(err)
	}
	if n.Preview != "rewritten offline" {
		t.Errorf("preview = %q, want re-indexed text", n.Preview)
	}
	if cs, _ := db.GetChecksum("b"); cs != "" {
		t.Error("stale row for b not removed")
	}
}
