package cron

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/SpecCon-Team/asset-app-sub001/pkg/logger"
	model "github.com/SpecCon-Team/asset-app-sub001/pkg/upload"
)

const (
	// DefaultSchedule runs the sweep daily at midnight
	DefaultSchedule = "0 0 * * *"
	// Timeout for a single cleanup sweep
	cleanupTimeout = 10 * time.Minute
)

// Cleaner removes stored files older than maxAge
type Cleaner interface {
	CleanupOldFiles(ctx context.Context, maxAge time.Duration) (*model.CleanupResult, error)
}

// Manager manages cron jobs
type Manager struct {
	cron     *cron.Cron
	logger   *logger.Logger
	cleaner  Cleaner
	schedule string
	maxAge   time.Duration
}

// NewManager creates a new cron manager. An empty schedule uses DefaultSchedule.
func NewManager(logger *logger.Logger, cleaner Cleaner, schedule string, maxAge time.Duration) *Manager {
	if schedule == "" {
		schedule = DefaultSchedule
	}
	return &Manager{
		cron:     cron.New(cron.WithLogger(cron.DefaultLogger)),
		logger:   logger,
		cleaner:  cleaner,
		schedule: schedule,
		maxAge:   maxAge,
	}
}

// Start registers the cleanup job and starts the scheduler
func (m *Manager) Start() error {
	if _, err := m.cron.AddFunc(m.schedule, m.cleanupFiles); err != nil {
		return err
	}

	m.cron.Start()
	m.logger.Info("Cron manager started, cleanup schedule: %s", m.schedule)
	return nil
}

// Stop stops the scheduler and waits for a running sweep to finish
func (m *Manager) Stop() {
	<-m.cron.Stop().Done()
	m.logger.Info("Cron manager stopped")
}

// cleanupFiles runs the cleanup sweep
func (m *Manager) cleanupFiles() {
	m.logger.Info("Running scheduled upload cleanup")
	ctx, cancel := context.WithTimeout(context.Background(), cleanupTimeout)
	defer cancel()

	result, err := m.cleaner.CleanupOldFiles(ctx, m.maxAge)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			m.logger.Error("Upload cleanup timed out after %v", cleanupTimeout)
		} else {
			m.logger.Error("Failed to clean up uploads: %v", err)
		}
		return
	}
	m.logger.Info("Upload cleanup removed %d file(s), %d error(s)", len(result.Deleted), len(result.Errors))
}
