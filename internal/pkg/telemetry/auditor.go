// Package telemetry records how often each use case runs, how long it takes and how often
// it fails. Handlers are wrapped with Measure or MeasureResult; the collected figures are
// exposed through Snapshot.
package telemetry

import (
	"context"
	"log/slog"
	"runtime"
	"slices"
	"strings"
	"sync"
	"time"
)

// OperationStats aggregates the invocations of one operation.
type OperationStats struct {
	Name          string        `json:"name"`
	Invocations   int64         `json:"invocations"`
	Errors        int64         `json:"errors"`
	TotalDuration time.Duration `json:"totalDurationNs"`
	MaxDuration   time.Duration `json:"maxDurationNs"`
	LastInvoked   time.Time     `json:"lastInvoked"`
}

// AverageDuration is zero before the first invocation.
func (s OperationStats) AverageDuration() time.Duration {
	if s.Invocations == 0 {
		return 0
	}
	return s.TotalDuration / time.Duration(s.Invocations)
}

// Snapshot is a point-in-time copy of all statistics, ordered by operation name.
type Snapshot struct {
	Timestamp     time.Time        `json:"timestamp"`
	UptimeSeconds int64            `json:"uptimeSeconds"`
	Goroutines    int              `json:"goroutines"`
	Operations    []OperationStats `json:"operations"`
}

// Auditor collects operation statistics. The zero value is not usable; use NewAuditor.
//
// Thread Safety:
//   - All methods are safe for concurrent use.
type Auditor struct {
	mu        sync.Mutex
	stats     map[string]*OperationStats
	startTime time.Time
	now       func() time.Time
	logger    *slog.Logger
}

func NewAuditor(logger *slog.Logger) *Auditor {
	return &Auditor{
		stats:     make(map[string]*OperationStats),
		startTime: time.Now(),
		now:       time.Now,
		logger:    logger.With("component", "performance_auditor"),
	}
}

// Record adds one invocation. Failed invocations are logged at warn level, the rest at
// debug level.
func (a *Auditor) Record(ctx context.Context, name string, duration time.Duration, err error) {
	a.mu.Lock()
	s, ok := a.stats[name]
	if !ok {
		s = &OperationStats{Name: name}
		a.stats[name] = s
	}
	s.Invocations++
	s.TotalDuration += duration
	s.MaxDuration = max(s.MaxDuration, duration)
	s.LastInvoked = a.now()
	if err != nil {
		s.Errors++
	}
	a.mu.Unlock()

	if err != nil {
		a.logger.WarnContext(ctx, "operation failed", "operation", name, "duration", duration, "error", err)
		return
	}
	a.logger.DebugContext(ctx, "operation completed", "operation", name, "duration", duration)
}

func (a *Auditor) Snapshot() Snapshot {
	a.mu.Lock()
	operations := make([]OperationStats, 0, len(a.stats))
	for _, s := range a.stats {
		operations = append(operations, *s)
	}
	a.mu.Unlock()

	slices.SortFunc(operations, func(x, y OperationStats) int {
		return strings.Compare(x.Name, y.Name)
	})
	now := a.now()
	return Snapshot{
		Timestamp:     now.UTC(),
		UptimeSeconds: int64(now.Sub(a.startTime).Seconds()),
		Goroutines:    runtime.NumGoroutine(),
		Operations:    operations,
	}
}

// Reset forgets every statistic collected so far.
func (a *Auditor) Reset() {
	a.mu.Lock()
	a.stats = make(map[string]*OperationStats)
	a.mu.Unlock()
}

// Measure wraps a handler that returns only an error.
//
// Example:
//
//	drop := telemetry.Measure(auditor, "drop", commands.NewDropCommandHandler(uow, logger).Handle)
//	err := drop(ctx, cmd)
func Measure[C any](a *Auditor, name string, handle func(context.Context, C) error) func(context.Context, C) error {
	return func(ctx context.Context, command C) error {
		start := time.Now()
		err := handle(ctx, command)
		a.Record(ctx, name, time.Since(start), err)
		return err
	}
}

// MeasureResult wraps a handler that returns a value and an error.
func MeasureResult[C, R any](
	a *Auditor,
	name string,
	handle func(context.Context, C) (R, error),
) func(context.Context, C) (R, error) {
	return func(ctx context.Context, query C) (R, error) {
		start := time.Now()
		result, err := handle(ctx, query)
		a.Record(ctx, name, time.Since(start), err)
		return result, err
	}
}
