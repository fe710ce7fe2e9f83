// Package jobs provides scheduled background tasks for the warehouse.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. ErrorStatusReportJob - collects the locations flagged ERROR and publishes the report
// through a ports.ErrorStatusNotifier (MQTT in production)
// 2. TelemetryReportJob - logs the per-operation performance statistics
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(
//		jobs.NewErrorStatusReportJob(inErrorHandler, notifier, "0 * * * * *", logger),
//		jobs.NewTelemetryReportJob(auditor, "", logger),
//	)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Scheduling
//
// Schedules are six-field cron expressions with a leading seconds field. The report runs
// every minute unless ERROR_REPORT_SCHEDULE says otherwise.
//
// # Error Handling
//
// - A failed report is logged and retried on the next tick
// - Failed job starts will stop any already running jobs
package jobs
