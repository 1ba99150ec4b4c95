package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// LocalStorage keeps backup snapshots on the local filesystem, organized by
// year/month under the base path.
type LocalStorage struct {
	basePath string
}

// NewLocalStorage creates a new local storage instance
func NewLocalStorage(basePath string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &LocalStorage{basePath: basePath}, nil
}

// WriteSnapshot saves a snapshot file and returns its relative path
func (s *LocalStorage) WriteSnapshot(data []byte, filename string) (string, error) {
	dir := filepath.Join(s.basePath, "backups", time.Now().Format("2006/01"))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	filePath := filepath.Join(dir, filename)
	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write snapshot: %w", err)
	}

	relPath, _ := filepath.Rel(s.basePath, filePath)
	return relPath, nil
}

// Read returns the contents of a stored file by relative path
func (s *LocalStorage) Read(relativePath string) ([]byte, error) {
	fullPath := filepath.Join(s.basePath, relativePath)

	// Keep reads inside the base directory
	absBase, err := filepath.Abs(s.basePath)
	if err != nil {
		return nil, err
	}
	absPath, err := filepath.Abs(fullPath)
	if err != nil {
		return nil, err
	}
	if len(absPath) < len(absBase) || absPath[:len(absBase)] != absBase {
		return nil, fmt.Errorf("invalid path: %s", relativePath)
	}

	return os.ReadFile(fullPath)
}

// ListSnapshots returns the relative paths of all stored snapshots, newest
// first.
func (s *LocalStorage) ListSnapshots() ([]string, error) {
	root := filepath.Join(s.basePath, "backups")
	var paths []string

	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if info.IsDir() {
			return nil
		}
		rel, relErr := filepath.Rel(s.basePath, path)
		if relErr != nil {
			return relErr
		}
		paths = append(paths, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Sort(sort.Reverse(sort.StringSlice(paths)))
	return paths, nil
}
