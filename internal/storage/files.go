// Package storage persists uploaded attachments on local disk under
// generated names and hands back the name as an opaque reference.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"taskhub/backend/internal/apperrors"

	"github.com/gofrs/uuid"
)

// FileStore is the collaborator tasks delegate attachment storage to.
type FileStore interface {
	Store(r io.Reader, originalName string) (string, error)
}

var allowedExtensions = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".png":  true,
	".pdf":  true,
	".doc":  true,
	".docx": true,
	".txt":  true,
	".xlsx": true,
	".xls":  true,
}

type DiskStore struct {
	dir          string
	maxSizeBytes int64
}

func NewDiskStore(dir string, maxSizeBytes int64) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &DiskStore{dir: dir, maxSizeBytes: maxSizeBytes}, nil
}

// Store writes the payload under a generated name and returns that
// name. The extension allow-list and the size cap are enforced here,
// before anything reaches the task record.
func (s *DiskStore) Store(r io.Reader, originalName string) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	if !allowedExtensions[ext] {
		return "", fmt.Errorf("%w: only images, PDFs, Word, Excel and text files are allowed", apperrors.ErrValidation)
	}

	name := fmt.Sprintf("attachment-%s%s", uuid.Must(uuid.NewV4()).String(), ext)
	path := filepath.Join(s.dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create attachment file: %w", err)
	}
	defer f.Close()

	// Read one byte past the cap so an oversized payload is detected
	// without buffering it whole.
	written, err := io.Copy(f, io.LimitReader(r, s.maxSizeBytes+1))
	if err != nil {
		os.Remove(path)
		return "", fmt.Errorf("write attachment file: %w", err)
	}
	if written > s.maxSizeBytes {
		os.Remove(path)
		return "", fmt.Errorf("%w: file exceeds the %d byte limit", apperrors.ErrValidation, s.maxSizeBytes)
	}

	return name, nil
}

// Dir exposes the root so the router can serve files statically.
func (s *DiskStore) Dir() string {
	return s.dir
}
