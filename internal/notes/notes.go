// Package notes reads and writes markdown note files. A note remembers the
// hash of the content it was loaded with and refuses to overwrite a file
// that changed on disk in the meantime.
package notes

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// ErrModified is returned by Save when the file changed since it was loaded.
var ErrModified = errors.New("file was modified since it was loaded")

// Note is the content of a markdown file at load time
type Note struct {
	Path    string
	Content string
	Hash    string
	MTime   int64 // nanoseconds, so edits within the same second are seen
}

// Load reads the note at path
func Load(path string) (*Note, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read note: %w", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat note: %w", err)
	}
	return &Note{
		Path:    path,
		Content: string(data),
		Hash:    HashBytes(data),
		MTime:   info.ModTime().UnixNano(),
	}, nil
}

// ComputeHash computes SHA256 hash of a file
func ComputeHash(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}

	return fmt.Sprintf("sha256:%x", h.Sum(nil)), nil
}

// HashBytes computes the SHA256 hash of data in the ComputeHash format
func HashBytes(data []byte) string {
	return fmt.Sprintf("sha256:%x", sha256.Sum256(data))
}

// HasChanged checks if the file has changed since it was loaded
// Uses hybrid mtime + hash approach
func (n *Note) HasChanged() (bool, error) {
	info, err := os.Stat(n.Path)
	if err != nil {
		return false, err
	}

	// Fast path: check mtime first
	if info.ModTime().UnixNano() == n.MTime {
		return false, nil
	}

	// mtime changed, compute hash to check for actual content changes
	hash, err := ComputeHash(n.Path)
	if err != nil {
		return false, err
	}

	return hash != n.Hash, nil
}

// Save replaces the file with content. The write goes through a temporary
// file in the same directory so readers never see a partial note.
func (n *Note) Save(content string) error {
	changed, err := n.HasChanged()
	if err != nil {
		return fmt.Errorf("failed to check note: %w", err)
	}
	if changed {
		return fmt.Errorf("%s: %w", n.Path, ErrModified)
	}

	mode := os.FileMode(0644)
	if info, err := os.Stat(n.Path); err == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(n.Path), "."+filepath.Base(n.Path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write note: %w", err)
	}
	if err := tmp.Chmod(mode); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), n.Path); err != nil {
		return fmt.Errorf("failed to replace note: %w", err)
	}

	n.Content = content
	n.Hash = HashBytes([]byte(content))
	if info, err := os.Stat(n.Path); err == nil {
		n.MTime = info.ModTime().UnixNano()
	}
	return nil
}

// GetMTime returns the modification time recorded at load or save
func (n *Note) GetMTime() time.Time {
	return time.Unix(0, n.MTime)
}
