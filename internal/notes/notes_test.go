package notes

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeNote(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "note.md")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeNote(t, "# title\n")

	note, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if note.Content != "# title\n" {
		t.Errorf("Content = %q, want %q", note.Content, "# title\n")
	}
	if note.MTime == 0 {
		t.Error("MTime should be set")
	}

	hash, err := ComputeHash(path)
	if err != nil {
		t.Fatalf("ComputeHash failed: %v", err)
	}
	if note.Hash != hash {
		t.Errorf("Hash = %s, want %s", note.Hash, hash)
	}
}

func TestLoadNonExistent(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.md")); err == nil {
		t.Error("Load should fail on a missing file")
	}
}

func TestComputeHash(t *testing.T) {
	path := writeNote(t, "Hello, World!")

	hash, err := ComputeHash(path)
	if err != nil {
		t.Fatalf("ComputeHash failed: %v", err)
	}
	if hash[:7] != "sha256:" {
		t.Errorf("Hash should start with 'sha256:', got: %s", hash)
	}
	if hash != HashBytes([]byte("Hello, World!")) {
		t.Error("ComputeHash and HashBytes disagree")
	}

	// Change content - hash should change
	if err := os.WriteFile(path, []byte("Different content"), 0644); err != nil {
		t.Fatalf("Failed to update test file: %v", err)
	}
	hash2, err := ComputeHash(path)
	if err != nil {
		t.Fatalf("Second ComputeHash failed: %v", err)
	}
	if hash == hash2 {
		t.Error("Hash should change when content changes")
	}
}

func TestHasChanged(t *testing.T) {
	path := writeNote(t, "Initial content")
	note, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	changed, err := note.HasChanged()
	if err != nil {
		t.Fatalf("HasChanged failed: %v", err)
	}
	if changed {
		t.Error("Unchanged file should not be marked as changed")
	}

	// Touch file (change mtime but not content)
	newTime := time.Now().Add(2 * time.Second)
	if err := os.Chtimes(path, newTime, newTime); err != nil {
		t.Fatalf("Failed to touch file: %v", err)
	}
	changed, err = note.HasChanged()
	if err != nil {
		t.Fatalf("HasChanged failed after touch: %v", err)
	}
	if changed {
		t.Error("File with only mtime change should not be marked as changed")
	}

	if err := os.WriteFile(path, []byte("New content"), 0644); err != nil {
		t.Fatalf("Failed to update file: %v", err)
	}
	later := time.Now().Add(4 * time.Second)
	if err := os.Chtimes(path, later, later); err != nil {
		t.Fatalf("Failed to touch file: %v", err)
	}
	changed, err = note.HasChanged()
	if err != nil {
		t.Fatalf("HasChanged failed after content change: %v", err)
	}
	if !changed {
		t.Error("File with content change should be marked as changed")
	}
}

func TestSave(t *testing.T) {
	path := writeNote(t, "- [ ] task\n")
	note, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if err := note.Save("- [x] task\n"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "- [x] task\n" {
		t.Errorf("file = %q, want %q", data, "- [x] task\n")
	}
	if note.Hash != HashBytes(data) {
		t.Error("Hash was not updated after save")
	}

	// a second save from the same note is allowed
	if err := note.Save("- [ ] task\n"); err != nil {
		t.Errorf("second Save failed: %v", err)
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("directory has %d entries, want only the note", len(entries))
	}
}

func TestSaveRefusesModifiedFile(t *testing.T) {
	path := writeNote(t, "original")
	note, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if err := os.WriteFile(path, []byte("edited elsewhere"), 0644); err != nil {
		t.Fatal(err)
	}
	later := time.Now().Add(2 * time.Second)
	if err := os.Chtimes(path, later, later); err != nil {
		t.Fatal(err)
	}

	err = note.Save("mine")
	if !errors.Is(err, ErrModified) {
		t.Fatalf("Save error = %v, want %v", err, ErrModified)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "edited elsewhere" {
		t.Errorf("file was overwritten: %q", data)
	}
}

func TestGetMTime(t *testing.T) {
	note := &Note{MTime: 1234567890123456789}
	if note.GetMTime().UnixNano() != 1234567890123456789 {
		t.Errorf("MTime mismatch: got %d, want 1234567890123456789", note.GetMTime().UnixNano())
	}
}

func TestSaveRefusesEditInSameSecond(t *testing.T) {
	path := writeNote(t, "original")
	loaded := time.Unix(1700000000, 100)
	if err := os.Chtimes(path, loaded, loaded); err != nil {
		t.Fatal(err)
	}
	note, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if err := os.WriteFile(path, []byte("edited elsewhere"), 0644); err != nil {
		t.Fatal(err)
	}
	edited := time.Unix(1700000000, 600)
	if err := os.Chtimes(path, edited, edited); err != nil {
		t.Fatal(err)
	}

	if err := note.Save("mine"); !errors.Is(err, ErrModified) {
		t.Fatalf("Save error = %v, want %v", err, ErrModified)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "edited elsewhere" {
		t.Errorf("file was overwritten: %q", data)
	}
}
