package model

import "github.com/SpecCon-Team/asset-app-sub001/pkg/upload"

// VersionInfo represents server version information
type VersionInfo struct {
	// Version is the version of the server
	Version string `json:"version"`
	// APIVersion is the version of the API
	APIVersion string `json:"apiVersion"`
	// GoVersion is the version of Go used to build the server
	GoVersion string `json:"goVersion"`
	// GitCommit is the git commit ID of the server
	GitCommit string `json:"gitCommit"`
	// BuildTime is the time when the server was built
	BuildTime string `json:"buildTime"`
	// FormattedTime is the formatted build time
	FormattedTime string `json:"formattedTime"`
	OS            string `json:"os"`
	Arch          string `json:"arch"`
}

// PolicyInfo is the upload policy as exposed to clients
type PolicyInfo struct {
	Entries             []upload.PolicyEntry `json:"entries" yaml:"entries"`
	DangerousExtensions []string            `json:"dangerousExtensions" yaml:"dangerousExtensions"`
	MaxRequestBytes     int64               `json:"maxRequestBytes" yaml:"maxRequestBytes"`
	MaxFilesPerRequest  int                 `json:"maxFilesPerRequest" yaml:"maxFilesPerRequest"`
}
