package export

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// LocalStorage stores export bundles on the local filesystem.
type LocalStorage struct {
	outputDir string
}

// NewLocalStorage creates a local bundle store rooted at outputDir.
func NewLocalStorage(outputDir string) (*LocalStorage, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory %s: %w", outputDir, err)
	}
	return &LocalStorage{outputDir: outputDir}, nil
}

func (s *LocalStorage) SaveBundle(_ context.Context, name string, data []byte) (string, error) {
	path := filepath.Join(s.outputDir, SanitizeFilename(name))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write bundle %s: %w", path, err)
	}
	return path, nil
}

func (s *LocalStorage) GetBundle(_ context.Context, name string) (io.ReadCloser, error) {
	path := filepath.Join(s.outputDir, SanitizeFilename(name))
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open bundle %s: %w", path, err)
	}
	return file, nil
}

func (s *LocalStorage) ListBundles(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.outputDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read output directory: %w", err)
	}
	var names []string
	for _, entry := range entries {
		if !entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	return names, nil
}
