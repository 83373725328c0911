package document

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Storage persists document blobs and returns the path they can be served
// from. Implementations must be safe for concurrent use.
type Storage interface {
	Store(ctx context.Context, data []byte, path string) (string, error)
	Load(ctx context.Context, path string) ([]byte, error)
	Remove(ctx context.Context, path string) error
}

// LocalStorage keeps blobs on the local filesystem under a base directory.
type LocalStorage struct {
	baseDir string
}

func NewLocalStorage(baseDir string) *LocalStorage {
	if baseDir == "" {
		baseDir = "./uploads/documents"
	}
	return &LocalStorage{baseDir: baseDir}
}

func (s *LocalStorage) Store(ctx context.Context, data []byte, path string) (string, error) {
	clean, err := s.resolve(path)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(clean), 0o755); err != nil {
		return "", fmt.Errorf("create document directory: %w", err)
	}
	if err := os.WriteFile(clean, data, 0o644); err != nil {
		return "", fmt.Errorf("write document: %w", err)
	}
	return clean, nil
}

func (s *LocalStorage) Load(ctx context.Context, path string) ([]byte, error) {
	clean, err := s.resolve(path)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(clean)
}

func (s *LocalStorage) Remove(ctx context.Context, path string) error {
	clean, err := s.resolve(path)
	if err != nil {
		return err
	}
	return os.Remove(clean)
}

// resolve joins the path under the base directory and rejects traversal out
// of it.
func (s *LocalStorage) resolve(path string) (string, error) {
	clean := filepath.Join(s.baseDir, filepath.Clean("/"+path))
	base := filepath.Clean(s.baseDir)
	if clean != base && !strings.HasPrefix(clean, base+string(os.PathSeparator)) {
		return "", fmt.Errorf("path %q escapes storage root", path)
	}
	return clean, nil
}
