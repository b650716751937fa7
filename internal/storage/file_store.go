// Package storage persists uploaded cover images on local disk. Files
// are served back under the /uploads static route.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// FileStore writes uploads under a base directory with generated names,
// so a hostile original filename can never escape the directory or
// collide with an existing file.
type FileStore struct {
	basePath string
}

// NewFileStore creates the base directory if missing.
func NewFileStore(basePath string) (*FileStore, error) {
	if strings.TrimSpace(basePath) == "" {
		return nil, fmt.Errorf("storage base path is required")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &FileStore{basePath: basePath}, nil
}

// Save streams an upload to disk and returns the generated filename.
// Only the extension of the original name is kept.
func (f *FileStore) Save(originalName string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(filepath.Base(originalName)))
	name := uuid.NewString() + ext

	out, err := os.Create(filepath.Join(f.basePath, name))
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer out.Close()
	if _, err := io.Copy(out, r); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}
	return name, nil
}

// Dir returns the base directory, for mounting as a static route.
func (f *FileStore) Dir() string { return f.basePath }
