// Package file provides a storage.Store that keeps each document as a JSON
// file on disk, the way the standalone save server did.
package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/mmynk/groceries/internal/storage"
)

var _ storage.Store = (*FileStore)(nil)

// FileStore stores documents under basePath.
// Documents of the empty owner live directly in basePath; every other owner
// gets its own sub-directory.
type FileStore struct {
	basePath string
}

// New creates a FileStore and ensures the base directory exists.
func New(basePath string) (*FileStore, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	return &FileStore{basePath: basePath}, nil
}

// sanitizeOwner makes the owner id safe for use as a directory name.
func sanitizeOwner(ownerID string) string {
	r := strings.NewReplacer("/", "_", "\\", "_", "..", "_", ":", "-")
	return r.Replace(ownerID)
}

// path returns the full path of a document.
func (s *FileStore) path(ownerID string, doc storage.Document) string {
	if ownerID == "" {
		return filepath.Join(s.basePath, doc.FileName())
	}
	return filepath.Join(s.basePath, sanitizeOwner(ownerID), doc.FileName())
}

// Load reads a document file.
func (s *FileStore) Load(_ context.Context, ownerID string, doc storage.Document) ([]byte, error) {
	data, err := os.ReadFile(s.path(ownerID, doc))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", doc.FileName(), err)
	}
	return data, nil
}

// Save writes a document file. The write goes through a temporary file and a
// rename so readers never see a partial document.
func (s *FileStore) Save(_ context.Context, ownerID string, doc storage.Document, data []byte) error {
	filePath := s.path(ownerID, doc)
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return fmt.Errorf("failed to create owner directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(filePath), doc.FileName()+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", doc.FileName(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), filePath); err != nil {
		return fmt.Errorf("failed to replace %s: %w", doc.FileName(), err)
	}
	return nil
}

// Close is a no-op.
func (s *FileStore) Close() error {
	return nil
}
