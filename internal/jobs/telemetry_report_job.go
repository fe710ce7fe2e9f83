package jobs

import (
	"context"
	"log/slog"

	"warehouse/internal/pkg/telemetry"

	"github.com/robfig/cron/v3"
)

// DefaultTelemetryReportSchedule logs the statistics every five minutes.
const DefaultTelemetryReportSchedule = "0 */5 * * * *"

// TelemetryReportJob periodically logs the performance statistics of every operation.
type TelemetryReportJob struct {
	auditor  *telemetry.Auditor
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

func NewTelemetryReportJob(auditor *telemetry.Auditor, schedule string, logger *slog.Logger) *TelemetryReportJob {
	if schedule == "" {
		schedule = DefaultTelemetryReportSchedule
	}
	return &TelemetryReportJob{
		auditor:  auditor,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "telemetry_report_job"),
	}
}

func (j *TelemetryReportJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		j.Run(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Telemetry report job started", "schedule", j.schedule)
	return nil
}

func (j *TelemetryReportJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Telemetry report job stopped")
}

// Run logs one line per operation seen so far.
func (j *TelemetryReportJob) Run(ctx context.Context) {
	for _, op := range j.auditor.Snapshot().Operations {
		j.logger.InfoContext(ctx, "Operation statistics",
			"operation", op.Name,
			"invocations", op.Invocations,
			"errors", op.Errors,
			"avg_duration", op.AverageDuration(),
			"max_duration", op.MaxDuration,
		)
	}
}
