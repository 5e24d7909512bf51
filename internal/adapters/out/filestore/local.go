// Package filestore persists review attachments on the local filesystem.
package filestore

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"clearance/internal/core/domain/model/kernel"
)

// LocalStore implements ports.FileStore by writing files under a base
// directory and serving them back under a base URL.
type LocalStore struct {
	baseDir string
	baseURL string
}

// NewLocalStore creates the store, ensuring the base directory exists.
func NewLocalStore(baseDir, baseURL string) (*LocalStore, error) {
	if baseDir == "" {
		return nil, fmt.Errorf("base directory is required")
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create attachment directory: %w", err)
	}

	return &LocalStore{baseDir: baseDir, baseURL: baseURL}, nil
}

// Save writes the content under a random name, keeping the original extension,
// and returns the URL it will be served from.
func (s *LocalStore) Save(_ context.Context, name string, content io.Reader) (string, error) {
	stored := kernel.NewUUID().String() + filepath.Ext(name)

	file, err := os.Create(filepath.Join(s.baseDir, stored))
	if err != nil {
		return "", fmt.Errorf("create attachment file: %w", err)
	}
	defer file.Close()

	if _, err = io.Copy(file, content); err != nil {
		return "", fmt.Errorf("write attachment: %w", err)
	}

	return s.baseURL + "/" + stored, nil
}
