package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	model "github.com/SpecCon-Team/asset-app-sub001/pkg/upload"
)

// DiskStore keeps uploads in a flat local directory
type DiskStore struct {
	dir string
}

// NewDiskStore creates the directory if needed
func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %v", err)
	}
	return &DiskStore{dir: dir}, nil
}

// Dir returns the destination directory
func (s *DiskStore) Dir() string {
	return s.dir
}

// Location implements Store
func (s *DiskStore) Location() string {
	return s.dir
}

// Put writes the file with O_EXCL so a name is never overwritten
func (s *DiskStore) Put(ctx context.Context, name string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	path, err := s.path(name)
	if err != nil {
		return "", err
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, FileMode)
	if err != nil {
		if os.IsExist(err) {
			return "", ErrExists
		}
		return "", fmt.Errorf("error creating file: %v", err)
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("error writing file content: %v", err)
	}
	// umask may have narrowed the create mode
	if err := f.Chmod(FileMode); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("error setting file mode: %v", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("error closing file: %v", err)
	}
	return path, nil
}

// Open implements Store
func (s *DiskStore) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	path, err := s.path(name)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error opening file: %v", err)
	}
	return f, nil
}

// Remove implements Store
func (s *DiskStore) Remove(ctx context.Context, name string) error {
	path, err := s.path(name)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return ErrNotFound
		}
		return fmt.Errorf("error removing file: %v", err)
	}
	return nil
}

// Sweep lists the directory once and removes regular files whose
// modification time is before cutoff. Subdirectories are left alone.
func (s *DiskStore) Sweep(ctx context.Context, cutoff time.Time) ([]model.SweptFile, []string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, nil, fmt.Errorf("error reading directory: %v", err)
	}

	var swept []model.SweptFile
	var failures []string
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return swept, failures, err
		}
		if entry.IsDir() {
			continue
		}

		path := filepath.Join(s.dir, entry.Name())
		info, err := os.Lstat(path)
		if err != nil {
			failures = append(failures, fmt.Sprintf("Error accessing path %s: %v", path, err))
			continue
		}
		if !info.ModTime().Before(cutoff) {
			continue
		}

		if err := os.Remove(path); err != nil {
			failures = append(failures, fmt.Sprintf("Error removing %s: %v", path, err))
			continue
		}
		swept = append(swept, model.SweptFile{
			Name:    info.Name(),
			Path:    path,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}
	return swept, failures, nil
}

// path resolves a flat name inside the store directory
func (s *DiskStore) path(name string) (string, error) {
	if name == "" || name != filepath.Base(name) || name == "." || name == ".." {
		return "", fmt.Errorf("invalid file name: %q", name)
	}
	return filepath.Join(s.dir, name), nil
}
