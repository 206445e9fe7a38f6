package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"

	"github.com/SpecCon-Team/asset-app-sub001/pkg/logger"
)

const appName = "assettrack"

// UploadConfig resolves where accepted files and their metadata live
type UploadConfig struct {
	Dir          string
	RegistryPath string
}

// NewUploadConfig creates a new UploadConfig
func NewUploadConfig() *UploadConfig {
	return &UploadConfig{}
}

// Initialize resolves the upload directory and registry path, creating
// both parent directories
func (c *UploadConfig) Initialize(logger *logger.Logger) error {
	if dir := v.GetString("upload.dir"); dir != "" {
		c.Dir = dir
		logger.Info("Using configured upload directory: \"%s\"", c.Dir)
	} else {
		c.Dir = filepath.Join(xdg.DataHome, appName, "uploads")
		logger.Info("Using default upload directory: \"%s\"", c.Dir)
	}

	if path := v.GetString("registry.path"); path != "" {
		c.RegistryPath = path
	} else {
		c.RegistryPath = filepath.Join(xdg.DataHome, appName, "uploads.db")
	}
	logger.Info("Using upload registry: \"%s\"", c.RegistryPath)

	if err := os.MkdirAll(c.Dir, 0755); err != nil {
		return fmt.Errorf("failed to create upload directory: %v", err)
	}
	if c.RegistryPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(c.RegistryPath), 0755); err != nil {
			return fmt.Errorf("failed to create registry directory: %v", err)
		}
	}
	return nil
}
