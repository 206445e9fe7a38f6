package service

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/SpecCon-Team/asset-app-sub001/internal/upload/policy"
)

func TestGetVersion(t *testing.T) {
	info := New(policy.Default()).GetVersion()

	assert.Equal(t, "v1", info.APIVersion)
	assert.Equal(t, runtime.Version(), info.GoVersion)
	assert.Equal(t, "unknown", info.FormattedTime)
}

func TestFormatBuildTime(t *testing.T) {
	orig := BuildTime
	t.Cleanup(func() { BuildTime = orig })

	BuildTime = "2024-03-01T10:20:30Z"
	assert.Equal(t, "Fri Mar 1 10:20:30 2024", formatBuildTime())

	BuildTime = "yesterday"
	assert.Equal(t, "yesterday", formatBuildTime())
}

func TestGetPolicy(t *testing.T) {
	info := New(policy.Default()).GetPolicy()

	assert.Len(t, info.Entries, 14)
	assert.Contains(t, info.DangerousExtensions, ".exe")
	assert.Equal(t, int64(20*1024*1024), info.MaxRequestBytes)
	assert.Equal(t, 5, info.MaxFilesPerRequest)
}
