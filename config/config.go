package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"

	"github.com/SpecCon-Team/asset-app-sub001/pkg/logger"
)

// Config is the interface that wraps configuration sections resolved at startup
type Config interface {
	// Initialize resolves and validates the section
	Initialize(logger *logger.Logger) error
}

var v *viper.Viper

func init() {
	v = viper.New()
	setDefaults(v)

	// Environment variables
	v.AutomaticEnv()
	v.BindEnv("server.port", "PORT")
	v.BindEnv("server.trusted_proxies", "TRUSTED_PROXIES")
	v.BindEnv("upload.dir", "UPLOAD_DIR")
	v.BindEnv("registry.path", "UPLOAD_DB_PATH")
	v.BindEnv("storage.backend", "STORAGE_BACKEND")
	v.BindEnv("s3.bucket", "S3_BUCKET")
	v.BindEnv("s3.prefix", "S3_PREFIX")
	v.BindEnv("s3.region", "S3_REGION", "AWS_REGION")
	v.BindEnv("s3.endpoint", "S3_ENDPOINT")
	v.BindEnv("s3.access_key_id", "S3_ACCESS_KEY_ID", "AWS_ACCESS_KEY_ID")
	v.BindEnv("s3.secret_access_key", "S3_SECRET_ACCESS_KEY", "AWS_SECRET_ACCESS_KEY")
	v.BindEnv("s3.use_path_style", "S3_USE_PATH_STYLE")
	v.BindEnv("cleanup.schedule", "CLEANUP_SCHEDULE")
	v.BindEnv("cleanup.max_age", "CLEANUP_MAX_AGE")

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// Look for config in the following paths
	configPaths := []string{
		".",
		"$HOME/.assettrack",
		"/etc/assettrack",
	}

	for _, path := range configPaths {
		v.AddConfigPath(os.ExpandEnv(path))
	}

	// Read config file if it exists
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			panic(fmt.Sprintf("Fatal error reading config file: %s", err))
		}
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 28090)
	v.SetDefault("storage.backend", BackendDisk)
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.prefix", "uploads")
	v.SetDefault("cleanup.schedule", "0 0 * * *")
	v.SetDefault("cleanup.max_age", "168h")
}

// GetServerPort returns the configured server port
func GetServerPort() int {
	return v.GetInt("server.port")
}

// GetTrustedProxies returns the proxy addresses or CIDR ranges whose
// X-Forwarded-For header is honoured. TRUSTED_PROXIES is space separated.
func GetTrustedProxies() []string {
	return v.GetStringSlice("server.trusted_proxies")
}

// GetCleanupSchedule returns the cron expression of the cleanup sweep
func GetCleanupSchedule() string {
	return v.GetString("cleanup.schedule")
}

// GetCleanupMaxAge returns the age after which stored files are swept.
// Unparsable values yield zero so callers fall back to their default.
func GetCleanupMaxAge() time.Duration {
	return v.GetDuration("cleanup.max_age")
}
