package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiskStorePutWritesWithMode0644(t *testing.T) {
	old := syscall.Umask(0077)
	defer syscall.Umask(old)

	store, err := NewDiskStore(filepath.Join(t.TempDir(), "uploads"))
	require.NoError(t, err)

	path, err := store.Put(context.Background(), "photo_1_deadbeef.png", []byte("data"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(store.Dir(), "photo_1_deadbeef.png"), path)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0644), info.Mode().Perm())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "data", string(content))
}

func TestDiskStorePutNeverOverwrites(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	_, err = store.Put(ctx, "a.txt", []byte("first"))
	require.NoError(t, err)
	_, err = store.Put(ctx, "a.txt", []byte("second"))
	assert.ErrorIs(t, err, ErrExists)

	rc, err := store.Open(ctx, "a.txt")
	require.NoError(t, err)
	defer rc.Close()
	content, _ := io.ReadAll(rc)
	assert.Equal(t, "first", string(content))
}

func TestDiskStoreRejectsNestedNames(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	for _, name := range []string{"", ".", "..", "../escape.txt", "sub/file.txt"} {
		_, err := store.Put(ctx, name, []byte("x"))
		assert.Error(t, err, name)
	}
}

func TestDiskStoreRemove(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	_, err = store.Put(ctx, "gone.pdf", []byte("%PDF"))
	require.NoError(t, err)
	require.NoError(t, store.Remove(ctx, "gone.pdf"))
	assert.ErrorIs(t, store.Remove(ctx, "gone.pdf"), ErrNotFound)

	_, err = store.Open(ctx, "gone.pdf")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDiskStoreSweepRemovesOnlyOldFiles(t *testing.T) {
	dir := t.TempDir()
	store, err := NewDiskStore(dir)
	require.NoError(t, err)
	ctx := context.Background()
	now := time.Now()

	oldPath, err := store.Put(ctx, "old.png", []byte("old"))
	require.NoError(t, err)
	require.NoError(t, os.Chtimes(oldPath, now.Add(-8*24*time.Hour), now.Add(-8*24*time.Hour)))

	freshPath, err := store.Put(ctx, "fresh.png", []byte("fresh"))
	require.NoError(t, err)
	require.NoError(t, os.Chtimes(freshPath, now.Add(-time.Hour), now.Add(-time.Hour)))

	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0755))
	require.NoError(t, os.Chtimes(filepath.Join(dir, "nested"), now.Add(-30*24*time.Hour), now.Add(-30*24*time.Hour)))

	swept, failures, err := store.Sweep(ctx, now.Add(-7*24*time.Hour))
	require.NoError(t, err)
	assert.Empty(t, failures)
	require.Len(t, swept, 1)
	assert.Equal(t, "old.png", swept[0].Name)
	assert.Equal(t, int64(3), swept[0].Size)

	assert.NoFileExists(t, oldPath)
	assert.FileExists(t, freshPath)
	assert.DirExists(t, filepath.Join(dir, "nested"))
}

func TestDiskStoreSweepStopsOnCancelledContext(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	require.NoError(t, err)

	path, err := store.Put(context.Background(), "old.txt", []byte("x"))
	require.NoError(t, err)
	past := time.Now().Add(-48 * time.Hour)
	require.NoError(t, os.Chtimes(path, past, past))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err = store.Sweep(ctx, time.Now())
	assert.ErrorIs(t, err, context.Canceled)
	assert.FileExists(t, path)
}
