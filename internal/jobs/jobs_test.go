package jobs_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"warehouse/internal/core/application/usecases/queries"
	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/location"
	"warehouse/internal/core/ports"
	"warehouse/internal/jobs"
	"warehouse/internal/pkg/telemetry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockErrorStatusFinder struct {
	mock.Mock
}

func (m *MockErrorStatusFinder) Handle(
	ctx context.Context,
	query queries.GetAllInErrorStatusQuery,
) ([]queries.LocationResponse, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]queries.LocationResponse), args.Error(1)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Notify(ctx context.Context, report ports.ErrorStatusReport) error {
	return m.Called(ctx, report).Error(0)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func flaggedLocation(t *testing.T, id string) queries.LocationResponse {
	t.Helper()
	locationID, err := kernel.NewID(id)
	require.NoError(t, err)
	return queries.LocationResponse{
		ID:          locationID,
		AccessKind:  location.LIFO,
		ErrorStatus: location.ErrorStatusError,
		UpdatedBy:   "picker",
		UpdatedAt:   time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC),
	}
}

func TestErrorStatusReportJob_Run_PublishesReport(t *testing.T) {
	finder := new(MockErrorStatusFinder)
	notifier := new(MockNotifier)
	finder.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.GetAllInErrorStatusQuery) bool {
		return q.Status() == location.ErrorStatusError
	})).Return([]queries.LocationResponse{flaggedLocation(t, "A-01")}, nil).Once()
	notifier.On("Notify", mock.Anything, mock.MatchedBy(func(r ports.ErrorStatusReport) bool {
		return len(r.Locations) == 1 &&
			r.Locations[0].ID == "A-01" &&
			r.Locations[0].AccessKind == "LIFO" &&
			r.Locations[0].UpdatedBy == "picker" &&
			!r.GeneratedAt.IsZero()
	})).Return(nil).Once()

	job := jobs.NewErrorStatusReportJob(finder, notifier, "", discardLogger())

	require.NoError(t, job.Run(t.Context()))
	finder.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestErrorStatusReportJob_Run_EmptyReportStillPublished(t *testing.T) {
	finder := new(MockErrorStatusFinder)
	notifier := new(MockNotifier)
	finder.On("Handle", mock.Anything, mock.Anything).Return([]queries.LocationResponse{}, nil)
	notifier.On("Notify", mock.Anything, mock.MatchedBy(func(r ports.ErrorStatusReport) bool {
		return r.Locations != nil && len(r.Locations) == 0
	})).Return(nil).Once()

	job := jobs.NewErrorStatusReportJob(finder, notifier, "", discardLogger())

	require.NoError(t, job.Run(t.Context()))
	notifier.AssertExpectations(t)
}

func TestErrorStatusReportJob_Run_Errors(t *testing.T) {
	queryErr := errors.New("database unavailable")
	finder := new(MockErrorStatusFinder)
	notifier := new(MockNotifier)
	finder.On("Handle", mock.Anything, mock.Anything).Return(nil, queryErr)

	job := jobs.NewErrorStatusReportJob(finder, notifier, "", discardLogger())

	require.ErrorIs(t, job.Run(t.Context()), queryErr)
	notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)

	publishErr := errors.New("broker down")
	finder = new(MockErrorStatusFinder)
	finder.On("Handle", mock.Anything, mock.Anything).Return([]queries.LocationResponse{}, nil)
	notifier.On("Notify", mock.Anything, mock.Anything).Return(publishErr)

	job = jobs.NewErrorStatusReportJob(finder, notifier, "", discardLogger())

	require.ErrorIs(t, job.Run(t.Context()), publishErr)
}

func TestErrorStatusReportJob_Run_WithoutNotifier(t *testing.T) {
	finder := new(MockErrorStatusFinder)
	finder.On("Handle", mock.Anything, mock.Anything).Return([]queries.LocationResponse{flaggedLocation(t, "A")}, nil)

	job := jobs.NewErrorStatusReportJob(finder, nil, "", discardLogger())

	require.NoError(t, job.Run(t.Context()))
}

func TestErrorStatusReportJob_StartRejectsInvalidSchedule(t *testing.T) {
	job := jobs.NewErrorStatusReportJob(new(MockErrorStatusFinder), nil, "every minute", discardLogger())

	require.Error(t, job.Start())
}

func TestJobManager_StartAll(t *testing.T) {
	finder := new(MockErrorStatusFinder)
	finder.On("Handle", mock.Anything, mock.Anything).Return([]queries.LocationResponse{}, nil).Maybe()
	auditor := telemetry.NewAuditor(discardLogger())

	manager := jobs.NewJobManager(
		jobs.NewErrorStatusReportJob(finder, nil, "", discardLogger()),
		jobs.NewTelemetryReportJob(auditor, "", discardLogger()),
	)

	require.NoError(t, manager.StartAll())
	manager.StopAll()
}

func TestJobManager_StartAll_StopsStartedJobsOnFailure(t *testing.T) {
	auditor := telemetry.NewAuditor(discardLogger())

	manager := jobs.NewJobManager(
		jobs.NewErrorStatusReportJob(new(MockErrorStatusFinder), nil, "", discardLogger()),
		jobs.NewTelemetryReportJob(auditor, "not a schedule", discardLogger()),
	)

	err := manager.StartAll()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "telemetry report job")
}

func TestTelemetryReportJob_Run(t *testing.T) {
	auditor := telemetry.NewAuditor(discardLogger())
	auditor.Record(t.Context(), "drop", time.Millisecond, nil)

	assert.NotPanics(t, func() {
		jobs.NewTelemetryReportJob(auditor, "", discardLogger()).Run(t.Context())
	})
}
