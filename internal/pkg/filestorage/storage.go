package filestorage

import (
	"context"
	"errors"
	"mime/multipart"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Upload directories, one per kind of record that owns a file.
const (
	DirProfiles   = "profiles"
	DirPapers     = "papers"
	DirActivities = "activities"
	DirResources  = "resources"
)

var ErrInvalidKey = errors.New("invalid file key")

// FileStorage defines the interface for file storage operations.
// Keys are slash separated paths relative to the storage root, e.g.
// "papers/0b6c....pdf", and are what records persist.
type FileStorage interface {
	// Save stores the upload under dir and returns its key.
	Save(ctx context.Context, fileHeader *multipart.FileHeader, dir string) (string, error)

	// Delete removes the file. Deleting a missing file is not an error.
	Delete(ctx context.Context, key string) error

	// URL returns the public address of the file.
	URL(key string) string
}

// newKey builds a collision free key that keeps the original extension.
func newKey(dir, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	name := uuid.New().String() + ext
	if dir == "" {
		return name
	}
	return path.Join(dir, name)
}

// cleanKey rejects keys that would escape the storage root.
func cleanKey(key string) (string, error) {
	key = strings.TrimPrefix(strings.TrimSpace(key), "/")
	if key == "" {
		return "", ErrInvalidKey
	}
	cleaned := path.Clean(key)
	if cleaned == "." || strings.HasPrefix(cleaned, "../") || cleaned == ".." {
		return "", ErrInvalidKey
	}
	return cleaned, nil
}
