package jobs

import (
	"time"

	"golfcart-dashboard/internal/config"
	"golfcart-dashboard/internal/logger"
	"golfcart-dashboard/internal/service"
)

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	calendar service.CalendarService
	config   *config.Config
	timeout  time.Duration
	now      func() time.Time
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(calendar service.CalendarService, cfg *config.Config) *JobRunner {
	return &JobRunner{
		calendar: calendar,
		config:   cfg,
		timeout:  cfg.RefreshTimeout(),
		now:      time.Now,
	}
}

func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("Starting job", "job", jobName)
	jobFunc()
	logger.Info("Job completed", "job", jobName)
}

// RunOnce runs a job by name outside the scheduler. It reports false for an
// unknown name.
func (jr *JobRunner) RunOnce(name string) bool {
	switch name {
	case "refresh":
		jr.RefreshSnapshot()
	case "overdue":
		jr.ReportOverdueRentals()
	default:
		return false
	}
	return true
}
