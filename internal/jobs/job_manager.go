package jobs

import (
	"fmt"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	errorStatusReportJob *ErrorStatusReportJob
	telemetryReportJob   *TelemetryReportJob
}

// NewJobManager creates a job manager for the given jobs.
func NewJobManager(errorStatusReportJob *ErrorStatusReportJob, telemetryReportJob *TelemetryReportJob) *JobManager {
	return &JobManager{
		errorStatusReportJob: errorStatusReportJob,
		telemetryReportJob:   telemetryReportJob,
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.errorStatusReportJob.Start(); err != nil {
		return fmt.Errorf("failed to start error status report job: %w", err)
	}

	if err := jm.telemetryReportJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.errorStatusReportJob.Stop()
		return fmt.Errorf("failed to start telemetry report job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.telemetryReportJob.Stop()
	jm.errorStatusReportJob.Stop()
}
