package jobs

import (
	"context"
	"log/slog"
	"time"

	"warehouse/internal/core/application/usecases/queries"
	"warehouse/internal/core/domain/model/location"
	"warehouse/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// DefaultErrorReportSchedule runs the report at the start of every minute.
const DefaultErrorReportSchedule = "0 * * * * *"

type errorStatusFinder interface {
	Handle(ctx context.Context, query queries.GetAllInErrorStatusQuery) ([]queries.LocationResponse, error)
}

// ErrorStatusReportJob periodically collects the locations flagged ERROR, logs them and
// hands the report to the notifier.
type ErrorStatusReportJob struct {
	finder   errorStatusFinder
	notifier ports.ErrorStatusNotifier
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewErrorStatusReportJob creates the job. A nil notifier only logs the reports; an empty
// schedule falls back to DefaultErrorReportSchedule.
func NewErrorStatusReportJob(
	finder errorStatusFinder,
	notifier ports.ErrorStatusNotifier,
	schedule string,
	logger *slog.Logger,
) *ErrorStatusReportJob {
	if schedule == "" {
		schedule = DefaultErrorReportSchedule
	}
	return &ErrorStatusReportJob{
		finder:   finder,
		notifier: notifier,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "error_status_report_job"),
	}
}

// Start registers the report on the cron schedule. An invalid schedule is returned as is.
func (j *ErrorStatusReportJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()
		if err := j.Run(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Error status report job failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Error status report job started", "schedule", j.schedule)
	return nil
}

// Stop stops the scheduler and waits for a running report to finish.
func (j *ErrorStatusReportJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Error status report job stopped")
}

// Run builds and delivers one report.
func (j *ErrorStatusReportJob) Run(ctx context.Context) error {
	query, err := queries.NewGetAllInErrorStatusQuery(location.ErrorStatusError)
	if err != nil {
		return err
	}
	flagged, err := j.finder.Handle(ctx, query)
	if err != nil {
		return err
	}

	report := ports.ErrorStatusReport{
		GeneratedAt: time.Now().UTC(),
		Locations:   make([]ports.FlaggedLocation, 0, len(flagged)),
	}
	for _, loc := range flagged {
		report.Locations = append(report.Locations, ports.FlaggedLocation{
			ID:         loc.ID.String(),
			AccessKind: loc.AccessKind.String(),
			UpdatedBy:  loc.UpdatedBy,
			UpdatedAt:  loc.UpdatedAt,
		})
	}

	if len(report.Locations) > 0 {
		j.logger.WarnContext(ctx, "Locations in error status", "count", len(report.Locations))
	}
	if j.notifier == nil {
		return nil
	}
	return j.notifier.Notify(ctx, report)
}
