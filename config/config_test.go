package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SpecCon-Team/asset-app-sub001/internal/storage"
	"github.com/SpecCon-Team/asset-app-sub001/pkg/logger"
)

func TestDefaults(t *testing.T) {
	assert.Equal(t, 28090, GetServerPort())
	assert.Equal(t, "0 0 * * *", GetCleanupSchedule())
	assert.Equal(t, 7*24*time.Hour, GetCleanupMaxAge())
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("CLEANUP_SCHEDULE", "@hourly")
	t.Setenv("CLEANUP_MAX_AGE", "48h")

	assert.Equal(t, 9999, GetServerPort())
	assert.Equal(t, "@hourly", GetCleanupSchedule())
	assert.Equal(t, 48*time.Hour, GetCleanupMaxAge())
}

func TestTrustedProxiesFromEnv(t *testing.T) {
	assert.Empty(t, GetTrustedProxies())

	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8 127.0.0.1")
	assert.Equal(t, []string{"10.0.0.0/8", "127.0.0.1"}, GetTrustedProxies())
}

func TestUploadConfigFromEnv(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "uploads")
	db := filepath.Join(root, "meta", "uploads.db")
	t.Setenv("UPLOAD_DIR", dir)
	t.Setenv("UPLOAD_DB_PATH", db)

	cfg := NewUploadConfig()
	require.NoError(t, cfg.Initialize(logger.New()))
	assert.Equal(t, dir, cfg.Dir)
	assert.Equal(t, db, cfg.RegistryPath)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	_, err = os.Stat(filepath.Dir(db))
	assert.NoError(t, err)
}

func TestStorageConfig(t *testing.T) {
	t.Run("disk by default", func(t *testing.T) {
		cfg := NewStorageConfig()
		require.NoError(t, cfg.Initialize(logger.New()))
		assert.Equal(t, BackendDisk, cfg.Backend)
	})

	t.Run("s3 requires bucket", func(t *testing.T) {
		t.Setenv("STORAGE_BACKEND", "s3")
		cfg := NewStorageConfig()
		assert.Error(t, cfg.Initialize(logger.New()))
	})

	t.Run("s3 settings", func(t *testing.T) {
		t.Setenv("STORAGE_BACKEND", "s3")
		t.Setenv("S3_BUCKET", "assets")
		t.Setenv("S3_ENDPOINT", "http://localhost:9000")
		t.Setenv("S3_USE_PATH_STYLE", "true")

		cfg := NewStorageConfig()
		require.NoError(t, cfg.Initialize(logger.New()))
		assert.Equal(t, "assets", cfg.S3.Bucket)
		assert.Equal(t, "uploads", cfg.S3.Prefix)
		assert.Equal(t, "http://localhost:9000", cfg.S3.Endpoint)
		assert.True(t, cfg.S3.UsePathStyle)
	})

	t.Run("unknown backend", func(t *testing.T) {
		t.Setenv("STORAGE_BACKEND", "ftp")
		assert.Error(t, NewStorageConfig().Initialize(logger.New()))
	})
}

func TestStorageConfigNewStore(t *testing.T) {
	t.Run("disk", func(t *testing.T) {
		dir := t.TempDir()
		cfg := NewStorageConfig()
		require.NoError(t, cfg.Initialize(logger.New()))

		store, err := cfg.NewStore(dir)
		require.NoError(t, err)
		assert.IsType(t, &storage.DiskStore{}, store)
		assert.Equal(t, dir, store.Location())
	})

	t.Run("s3", func(t *testing.T) {
		t.Setenv("STORAGE_BACKEND", "s3")
		t.Setenv("S3_BUCKET", "assets")

		cfg := NewStorageConfig()
		require.NoError(t, cfg.Initialize(logger.New()))

		store, err := cfg.NewStore(t.TempDir())
		require.NoError(t, err)
		assert.IsType(t, &storage.S3Store{}, store)
		assert.Equal(t, "s3://assets/uploads/", store.Location())
	})
}
