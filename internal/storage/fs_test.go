package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/starford/stickynote/internal/checksum"
	"github.com/starford/stickynote/internal/models"
)

func tempData(t *testing.T) *FS {
	t.Helper()
	fs, err := NewFS(t.TempDir())
	if err != nil {
		t.Fatalf("NewFS: %v", err)
	}
	return fs
}

func TestNewFS_CreatesNotesDir(t *testing.T) {
	s := tempData(t)
	info, err := os.Stat(s.NotesRoot())
	if err != nil {
		t.Fatalf("stat notes dir: %v", err)
	}
	if !info.IsDir() {
		t.Error("notes root is not a directory")
	}
}

func TestNotePath(t *testing.T) {
	if got := NotePath("abc"); got != "notes/abc.txt" {
		t.Errorf("NotePath = %q, want %q", got, "notes/abc.txt")
	}
}

func TestWriteAndRead(t *testing.T) {
	s := tempData(t)
	content := []byte("buy milk\ncall mum\n")
	if err := s.Write(NotePath("a1"), content); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := s.Read(NotePath("a1"))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(got) != string(content) {
		t.Errorf("content mismatch: got %q", got)
	}
	if !s.Exists(NotePath("a1")) {
		t.Error("Exists = false after write")
	}
}

func TestDelete(t *testing.T) {
	s := tempData(t)
	_ = s.Write(NotePath("gone"), []byte("bye"))
	if err := s.Delete(NotePath("gone")); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Read(NotePath("gone")); err == nil {
		t.Error("expected error reading deleted file")
	}
	if s.Exists(NotePath("gone")) {
		t.Error("Exists = true after delete")
	}
}

func TestMove(t *testing.T) {
	s := tempData(t)
	_ = s.Write("state.json", []byte("{}"))
	if err := s.Move("state.json", "state.json.imported"); err != nil {
		t.Fatalf("Move: %v", err)
	}
	if s.Exists("state.json") {
		t.Error("old path should not exist")
	}
	got, err := s.Read("state.json.imported")
	if err != nil {
		t.Fatalf("Read after move: %v", err)
	}
	if string(got) != "{}" {
		t.Errorf("content = %q", got)
	}
}

func TestListNotes_OldestFirst(t *testing.T) {
	s := tempData(t)
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	for i, id := range []models.NoteID{"c", "a", "b"} {
		if err := s.Write(NotePath(id), []byte(id)); err != nil {
			t.Fatal(err)
		}
		mt := base.Add(time.Duration(i) * time.Minute)
		if err := os.Chtimes(filepath.Join(s.NotesRoot(), string(id)+NoteExt), mt, mt); err != nil {
			t.Fatal(err)
		}
	}
	_ = s.Write("notes/readme.md", []byte("not a note"))
	_ = s.Write("notes/bad name.txt", []byte("invalid id"))

	items, err := s.ListNotes()
	if err != nil {
		t.Fatalf("ListNotes: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("len = %d, want 3", len(items))
	}
	want := []models.NoteID{"c", "a", "b"}
	for i, m := range items {
		if m.ID != want[i] {
			t.Errorf("items[%d].ID = %q, want %q", i, m.ID, want[i])
		}
		if m.Position != i {
			t.Errorf("items[%d].Position = %d, want %d", i, m.Position, i)
		}
		if m.Checksum != checksum.Sum([]byte(want[i])) {
			t.Errorf("items[%d].Checksum mismatch", i)
		}
	}
}

func TestIDFromName(t *testing.T) {
	cases := []struct {
		name string
		id   models.NoteID
		ok   bool
	}{
		{"abc.txt", "abc", true},
		{"/x/y/0f9e.txt", "0f9e", true},
		{"abc.md", "", false},
		{".stickynote-tmp-123", "", false},
		{".txt", "", false},
		{"a b.txt", "", false},
	}
	for _, c := range cases {
		id, ok := IDFromName(c.name)
		if id != c.id || ok != c.ok {
			t.Errorf("IDFromName(%q) = %q, %v, want %q, %v", c.name, id, ok, c.id, c.ok)
		}
	}
}

func TestTraversalBlocked(t *testing.T) {
	s := tempData(t)

	cases := []string{
		"../../etc/passwd",
		"../outside.txt",
		"/etc/shadow",
	}
	for _, p := range cases {
		if _, err := s.Read(p); err == nil {
			t.Errorf("expected error for path %q", p)
		}
		if err := s.Write(p, []byte("x")); err == nil {
			t.Errorf("expected error for write to %q", p)
		}
	}
}

func TestAtomicWriteLeavesNoTemp(t *testing.T) {
	s := tempData(t)
	_ = s.Write(NotePath("n"), []byte("original content"))

	updated := []byte("updated content")
	if err := s.Write(NotePath("n"), updated); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, _ := s.Read(NotePath("n"))
	if string(got) != string(updated) {
		t.Errorf("expected updated content, got %q", got)
	}

	matches, _ := filepath.Glob(filepath.Join(s.NotesRoot(), tmpPattern))
	if len(matches) != 0 {
		t.Errorf("leftover temp files: %v", matches)
	}
}

func TestNewFS_NonExistentDir(t *testing.T) {
	_, err := NewFS(filepath.Join(t.TempDir(), "does-not-exist"))
	if err == nil {
		t.Error("expected error for non-existent dir")
	}
}

func TestNewFS_FileNotDir(t *testing.T) {
	f, _ := os.CreateTemp("", "stickynote-test-*")
	_ = f.Close()
	defer os.Remove(f.Name())
	_, err := NewFS(f.Name())
	if err == nil {
		t.Error("expected error when root is a file")
	}
}
