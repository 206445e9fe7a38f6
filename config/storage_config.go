package config

import (
	"fmt"

	"github.com/SpecCon-Team/asset-app-sub001/internal/storage"
	"github.com/SpecCon-Team/asset-app-sub001/pkg/logger"
)

// Storage backends
const (
	BackendDisk = "disk"
	BackendS3   = "s3"
)

// StorageConfig selects where accepted files are written
type StorageConfig struct {
	Backend string
	S3      storage.S3Config
}

// NewStorageConfig creates a new StorageConfig
func NewStorageConfig() *StorageConfig {
	return &StorageConfig{}
}

// Initialize reads the backend selection and validates S3 settings
func (c *StorageConfig) Initialize(logger *logger.Logger) error {
	c.Backend = v.GetString("storage.backend")

	switch c.Backend {
	case BackendDisk:
		logger.Info("Using local disk storage")
		return nil
	case BackendS3:
		c.S3 = storage.S3Config{
			Bucket:          v.GetString("s3.bucket"),
			Prefix:          v.GetString("s3.prefix"),
			Region:          v.GetString("s3.region"),
			Endpoint:        v.GetString("s3.endpoint"),
			AccessKeyID:     v.GetString("s3.access_key_id"),
			SecretAccessKey: v.GetString("s3.secret_access_key"),
			UsePathStyle:    v.GetBool("s3.use_path_style"),
		}
		if c.S3.Bucket == "" {
			return fmt.Errorf("s3 storage requires a bucket (S3_BUCKET)")
		}
		logger.Info("Using S3 storage with bucket: \"%s\"", c.S3.Bucket)
		return nil
	default:
		return fmt.Errorf("unsupported storage backend: %s", c.Backend)
	}
}

// NewStore opens the configured backend. dir is the upload directory used
// by the disk backend.
func (c *StorageConfig) NewStore(dir string) (storage.Store, error) {
	if c.Backend == BackendS3 {
		client := storage.NewS3Client(c.S3)
		return storage.NewS3Store(client, c.S3.Bucket, c.S3.Prefix), nil
	}
	return storage.NewDiskStore(dir)
}
