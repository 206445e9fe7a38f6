package cron

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SpecCon-Team/asset-app-sub001/pkg/logger"
	model "github.com/SpecCon-Team/asset-app-sub001/pkg/upload"
)

type fakeCleaner struct {
	mu     sync.Mutex
	calls  []time.Duration
	result *model.CleanupResult
	err    error
}

func (f *fakeCleaner) CleanupOldFiles(ctx context.Context, maxAge time.Duration) (*model.CleanupResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, maxAge)
	return f.result, f.err
}

func TestNewManagerDefaultSchedule(t *testing.T) {
	m := NewManager(logger.New(), &fakeCleaner{}, "", 0)
	assert.Equal(t, DefaultSchedule, m.schedule)
}

func TestStartRejectsInvalidSchedule(t *testing.T) {
	m := NewManager(logger.New(), &fakeCleaner{}, "not a schedule", 0)
	assert.Error(t, m.Start())
}

func TestCleanupFilesPassesMaxAge(t *testing.T) {
	cleaner := &fakeCleaner{result: &model.CleanupResult{Success: true}}
	m := NewManager(logger.New(), cleaner, DefaultSchedule, 48*time.Hour)

	m.cleanupFiles()

	require.Len(t, cleaner.calls, 1)
	assert.Equal(t, 48*time.Hour, cleaner.calls[0])
}

func TestCleanupFilesSurvivesError(t *testing.T) {
	cleaner := &fakeCleaner{err: errors.New("boom")}
	m := NewManager(logger.New(), cleaner, DefaultSchedule, 0)

	assert.NotPanics(t, m.cleanupFiles)
	assert.Len(t, cleaner.calls, 1)
}

func TestStartAndStop(t *testing.T) {
	m := NewManager(logger.New(), &fakeCleaner{}, "@every 1h", 0)
	require.NoError(t, m.Start())
	assert.Len(t, m.cron.Entries(), 1)
	m.Stop()
}
