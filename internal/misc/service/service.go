package service

import (
	"runtime"
	"time"

	"github.com/SpecCon-Team/asset-app-sub001/internal/misc/model"
	"github.com/SpecCon-Team/asset-app-sub001/internal/upload/policy"
)

var (
	// Version is the version of the server
	Version = "dev"
	// BuildTime is the time when the server was built
	BuildTime = "unknown"
	// CommitID is the git commit ID of the server
	CommitID = "unknown"
)

// MiscService serves build and policy information
type MiscService struct {
	policy *policy.Policy
}

// New creates a new MiscService
func New(p *policy.Policy) *MiscService {
	return &MiscService{policy: p}
}

func formatBuildTime() string {
	if BuildTime == "unknown" {
		return BuildTime
	}

	t, err := time.Parse(time.RFC3339, BuildTime)
	if err != nil {
		return BuildTime
	}

	return t.Format("Mon Jan 2 15:04:05 2006")
}

// GetVersion returns server version information
func (s *MiscService) GetVersion() *model.VersionInfo {
	return &model.VersionInfo{
		Version:       Version,
		APIVersion:    "v1",
		GoVersion:     runtime.Version(),
		GitCommit:     CommitID,
		BuildTime:     BuildTime,
		FormattedTime: formatBuildTime(),
		OS:            runtime.GOOS,
		Arch:          runtime.GOARCH,
	}
}

// GetPolicy returns the enforced upload policy
func (s *MiscService) GetPolicy() *model.PolicyInfo {
	return &model.PolicyInfo{
		Entries:             s.policy.Entries(),
		DangerousExtensions: s.policy.DangerousExtensions(),
		MaxRequestBytes:     policy.MaxRequestBytes,
		MaxFilesPerRequest:  policy.MaxFilesPerBatch,
	}
}
