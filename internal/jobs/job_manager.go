package jobs

import (
	"fmt"

	"github.com/rs/zerolog"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	expiryReminderJob *ExpiryReminderJob
	log               zerolog.Logger
}

// NewJobManager creates a new job manager owning the background jobs.
func NewJobManager(expiryReminderJob *ExpiryReminderJob, log zerolog.Logger) *JobManager {
	return &JobManager{
		expiryReminderJob: expiryReminderJob,
		log:               log.With().Str("component", "job_manager").Logger(),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.expiryReminderJob.Start(); err != nil {
		return fmt.Errorf("failed to start expiry reminder job: %w", err)
	}

	jm.log.Info().Msg("background jobs started")
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.expiryReminderJob.Stop()
	jm.log.Info().Msg("background jobs stopped")
}
