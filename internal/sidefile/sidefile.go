// Package sidefile stores binary clipboard payloads (images, documents)
// outside the database index, referenced by filename.
package sidefile

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/clipvault/clipvault/internal/clip"
)

// Store writes and reads side-files under a single objects directory. The
// directory is created lazily on first write.
type Store struct {
	dir  string
	once sync.Once
}

// New returns a store rooted at dir.
func New(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the objects directory.
func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) ensureDir() error {
	var setupErr error
	s.once.Do(func() {
		setupErr = os.MkdirAll(s.dir, 0o750)
	})
	return setupErr
}

// Save writes payload bytes for the entry id and returns the side-file name.
// The extension is sniffed from the payload so previews and write-back can
// pick the right pasteboard format.
func (s *Store) Save(id string, data []byte) (string, error) {
	if err := s.ensureDir(); err != nil {
		return "", err
	}

	name := id + extensionFor(data)
	path := filepath.Join(s.dir, name)

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", err
	}

	return name, nil
}

// Read returns the payload bytes for a side-file name.
func (s *Store) Read(name string) ([]byte, error) {
	//nolint:gosec // G304: name is from database, controlled by application
	return os.ReadFile(filepath.Join(s.dir, name))
}

// Delete removes a side-file if it exists.
func (s *Store) Delete(name string) error {
	path := filepath.Join(s.dir, name)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return os.Remove(path)
}

// Exists reports whether the side-file is present.
func (s *Store) Exists(name string) bool {
	_, err := os.Stat(filepath.Join(s.dir, name))
	return err == nil
}

// Verify ensures the side-file exists and its SHA-256 hash matches.
func (s *Store) Verify(name, expectedHash string) (bool, error) {
	if !s.Exists(name) {
		return false, nil
	}

	data, err := s.Read(name)
	if err != nil {
		return false, err
	}

	return clip.Fingerprint(data) == expectedHash, nil
}

// List returns the names of all side-files in the store.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		names = append(names, entry.Name())
	}
	return names, nil
}

func extensionFor(data []byte) string {
	contentType := http.DetectContentType(data)
	if idx := strings.Index(contentType, ";"); idx >= 0 {
		contentType = contentType[:idx]
	}

	switch contentType {
	case "image/png":
		return ".png"
	case "image/jpeg":
		return ".jpg"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	case "application/pdf":
		return ".pdf"
	case "text/plain":
		return ".txt"
	default:
		return ".bin"
	}
}

// KindFor classifies a binary payload by its sniffed content type.
func KindFor(data []byte) clip.Kind {
	if strings.HasPrefix(http.DetectContentType(data), "image/") {
		return clip.KindImage
	}
	return clip.KindFile
}

// PlaceholderContent is the textual payload stored for binary entries. It is
// a label, not the payload itself.
func PlaceholderContent(kind clip.Kind, name string) string {
	if kind == clip.KindImage {
		return fmt.Sprintf("[image %s]", name)
	}
	return fmt.Sprintf("[file %s]", name)
}
