package storage

import (
	"context"
	"errors"
	"io"
	"time"

	model "github.com/SpecCon-Team/asset-app-sub001/pkg/upload"
)

// FileMode is applied to every persisted upload
const FileMode = 0644

// ErrNotFound is returned when a stored object does not exist
var ErrNotFound = errors.New("storage: file not found")

// ErrExists is returned when a name is already taken
var ErrExists = errors.New("storage: file already exists")

// Store persists accepted uploads under their secure names
type Store interface {
	// Put writes data under name and returns the location it was written to
	Put(ctx context.Context, name string, data []byte) (string, error)
	// Open returns the content of a stored file
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	// Remove deletes a stored file
	Remove(ctx context.Context, name string) error
	// Sweep deletes every file last modified before cutoff. Per-file
	// failures are collected in the returned slice and do not stop the sweep.
	Sweep(ctx context.Context, cutoff time.Time) ([]model.SweptFile, []string, error)
	// Location describes where files are kept, for logs
	Location() string
}
