// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
//
// It plays the role of the browser's local storage: one JSON document per
// owner and document name.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/mmynk/groceries/internal/storage"
)

// Ensure SQLiteStore implements storage.Store and storage.BackupLister
var (
	_ storage.Store        = (*SQLiteStore)(nil)
	_ storage.BackupLister = (*SQLiteStore)(nil)
)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	// Create parent directory if it doesn't exist
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Load returns the stored payload for the owner's document.
func (s *SQLiteStore) Load(ctx context.Context, ownerID string, doc storage.Document) ([]byte, error) {
	var payload string
	err := s.db.QueryRowContext(ctx,
		"SELECT payload FROM documents WHERE owner_id = ? AND name = ?",
		ownerID, string(doc),
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load document %s: %w", doc, err)
	}

	return []byte(payload), nil
}

// Save upserts the owner's document.
func (s *SQLiteStore) Save(ctx context.Context, ownerID string, doc storage.Document, data []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO documents (id, owner_id, name, payload, updated_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT (owner_id, name) DO UPDATE SET
		     payload = excluded.payload,
		     updated_at = excluded.updated_at`,
		uuid.New().String(), ownerID, string(doc), string(data), time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to save document %s: %w", doc, err)
	}

	return nil
}

// ListBackups lists the documents of ownerID, most recently saved first.
func (s *SQLiteStore) ListBackups(ctx context.Context, ownerID string) ([]storage.Backup, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, updated_at, length(payload)
		FROM documents
		WHERE owner_id = ?
		ORDER BY updated_at DESC, name
	`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	backups := []storage.Backup{}
	for rows.Next() {
		var (
			b         storage.Backup
			name      string
			updatedAt int64
		)
		if err := rows.Scan(&b.ID, &name, &updatedAt, &b.Size); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		b.Name = name
		if ownerID != "" {
			b.Name = name + "-" + ownerID
		}
		b.ModifiedTime = time.Unix(updatedAt, 0).UTC().Format(time.RFC3339)
		backups = append(backups, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate documents: %w", err)
	}

	return backups, nil
}
