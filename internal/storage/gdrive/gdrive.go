// Package gdrive provides a storage.Store backed by Google Drive.
//
// Documents are JSON files kept in a single folder (GroceryManager by
// default). The folder is looked up by name and created on first use.
package gdrive

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/mmynk/groceries/internal/storage"
)

const (
	// DefaultFolder is the Drive folder used when none is configured.
	DefaultFolder = "GroceryManager"

	folderMimeType = "application/vnd.google-apps.folder"
	jsonMimeType   = "application/json"
)

var (
	_ storage.Store        = (*DriveStore)(nil)
	_ storage.BackupLister = (*DriveStore)(nil)
)

// DriveStore implements storage.Store on top of the Drive v3 files API.
type DriveStore struct {
	files      *drive.FilesService
	folderName string

	mu       sync.Mutex
	folderID string
}

// New creates a DriveStore. Authentication is supplied through opts, e.g.
// option.WithCredentialsFile or option.WithTokenSource.
func New(ctx context.Context, folderName string, opts ...option.ClientOption) (*DriveStore, error) {
	if folderName == "" {
		folderName = DefaultFolder
	}

	srv, err := drive.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}

	return &DriveStore{files: srv.Files, folderName: folderName}, nil
}

// fileName returns the Drive file name of an owner's document.
func fileName(ownerID string, doc storage.Document) string {
	if ownerID == "" {
		return doc.FileName()
	}
	return fmt.Sprintf("%s-%s.json", doc, ownerID)
}

func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `\'`) + "'"
}

func isNotFound(err error) bool {
	var gerr *googleapi.Error
	return errors.As(err, &gerr) && gerr.Code == http.StatusNotFound
}

// folder returns the id of the backing folder, creating it if needed.
// A remembered id is verified first since the folder may have been deleted.
func (s *DriveStore) folder(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.folderID != "" {
		_, err := s.files.Get(s.folderID).Fields("id").Context(ctx).Do()
		if err == nil {
			return s.folderID, nil
		}
		if !isNotFound(err) {
			return "", fmt.Errorf("failed to verify drive folder: %w", err)
		}
		s.folderID = ""
	}

	q := fmt.Sprintf("name=%s and mimeType='%s' and trashed=false", quote(s.folderName), folderMimeType)
	list, err := s.files.List().Q(q).Fields("files(id, name)").Spaces("drive").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to search drive folder: %w", err)
	}
	if len(list.Files) > 0 {
		s.folderID = list.Files[0].Id
		return s.folderID, nil
	}

	created, err := s.files.Create(&drive.File{
		Name:     s.folderName,
		MimeType: folderMimeType,
	}).Fields("id").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to create drive folder: %w", err)
	}

	s.folderID = created.Id
	return s.folderID, nil
}

// find returns the most recently modified file with the given name in the
// folder, or nil.
func (s *DriveStore) find(ctx context.Context, folderID, name string) (*drive.File, error) {
	q := fmt.Sprintf("name=%s and %s in parents and trashed=false", quote(name), quote(folderID))
	list, err := s.files.List().
		Q(q).
		Fields("files(id, name, modifiedTime, size)").
		OrderBy("modifiedTime desc").
		PageSize(1).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to search drive file %s: %w", name, err)
	}
	if len(list.Files) == 0 {
		return nil, nil
	}
	return list.Files[0], nil
}

// Load downloads the owner's document.
func (s *DriveStore) Load(ctx context.Context, ownerID string, doc storage.Document) ([]byte, error) {
	folderID, err := s.folder(ctx)
	if err != nil {
		return nil, err
	}

	f, err := s.find(ctx, folderID, fileName(ownerID, doc))
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, storage.ErrNotFound
	}

	resp, err := s.files.Get(f.Id).Context(ctx).Download()
	if err != nil {
		if isNotFound(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("failed to download drive file %s: %w", f.Id, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read drive file %s: %w", f.Id, err)
	}
	return data, nil
}

// Save uploads the owner's document, replacing the content of an existing
// file with the same name.
func (s *DriveStore) Save(ctx context.Context, ownerID string, doc storage.Document, data []byte) error {
	folderID, err := s.folder(ctx)
	if err != nil {
		return err
	}

	name := fileName(ownerID, doc)
	existing, err := s.find(ctx, folderID, name)
	if err != nil {
		return err
	}

	media := bytes.NewReader(data)
	if existing != nil {
		_, err = s.files.Update(existing.Id, &drive.File{}).
			Media(media, googleapi.ContentType(jsonMimeType)).
			Fields("id").
			Context(ctx).
			Do()
		if err != nil {
			return fmt.Errorf("failed to update drive file %s: %w", name, err)
		}
		return nil
	}

	_, err = s.files.Create(&drive.File{
		Name:     name,
		MimeType: jsonMimeType,
		Parents:  []string{folderID},
	}).Media(media, googleapi.ContentType(jsonMimeType)).Fields("id").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to upload drive file %s: %w", name, err)
	}
	return nil
}

// ListBackups lists the JSON files of ownerID in the folder, newest first.
func (s *DriveStore) ListBackups(ctx context.Context, ownerID string) ([]storage.Backup, error) {
	folderID, err := s.folder(ctx)
	if err != nil {
		return nil, err
	}

	q := fmt.Sprintf("%s in parents and mimeType='%s' and trashed=false", quote(folderID), jsonMimeType)
	list, err := s.files.List().
		Q(q).
		Fields("files(id, name, modifiedTime, size)").
		OrderBy("modifiedTime desc").
		PageSize(100).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list drive files: %w", err)
	}

	owned := map[string]bool{
		fileName(ownerID, storage.ItemsDocument):     true,
		fileName(ownerID, storage.SummariesDocument): true,
	}

	backups := make([]storage.Backup, 0, len(list.Files))
	for _, f := range list.Files {
		if !owned[f.Name] {
			continue
		}
		backups = append(backups, storage.Backup{
			ID:           f.Id,
			Name:         f.Name,
			ModifiedTime: f.ModifiedTime,
			Size:         f.Size,
		})
	}
	return backups, nil
}

// Close is a no-op; the underlying HTTP client is owned by the caller.
func (s *DriveStore) Close() error {
	return nil
}
