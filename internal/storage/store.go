// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Load when no document has been saved yet.
var ErrNotFound = errors.New("document not found")

// Document names one of the JSON documents kept per owner.
type Document string

const (
	// ItemsDocument holds the JSON array of grocery items.
	ItemsDocument Document = "grocery-data"

	// SummariesDocument holds the JSON array of trip summaries.
	SummariesDocument Document = "grocery-summaries"
)

// FileName returns the file name used by file-based backends.
func (d Document) FileName() string {
	return string(d) + ".json"
}

// Store defines the interface for document persistence.
// This abstraction allows swapping storage backends (SQLite, JSON files,
// Google Drive) without changing the service layer.
//
// Documents are opaque JSON payloads; decoding is the caller's job.
type Store interface {
	// Load returns the last saved payload of doc for ownerID.
	// Returns ErrNotFound if nothing was saved yet.
	Load(ctx context.Context, ownerID string, doc Document) ([]byte, error)

	// Save replaces the payload of doc for ownerID.
	Save(ctx context.Context, ownerID string, doc Document, data []byte) error

	// Close releases any resources held by the store.
	Close() error
}

// Backup describes a stored document file that can be restored.
type Backup struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	ModifiedTime string `json:"modifiedTime,omitempty"`
	Size         int64  `json:"size"`
}

// BackupLister is implemented by stores that can enumerate their documents.
// Only the documents of ownerID are listed.
type BackupLister interface {
	ListBackups(ctx context.Context, ownerID string) ([]Backup, error)
}
