package ports

import (
	"context"
	"time"
)

// FlaggedLocation is one entry of an ErrorStatusReport.
type FlaggedLocation struct {
	ID         string    `json:"id"`
	AccessKind string    `json:"accessKind"`
	UpdatedBy  string    `json:"updatedBy"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// ErrorStatusReport lists the locations flagged ERROR at a point in time.
type ErrorStatusReport struct {
	GeneratedAt time.Time         `json:"generatedAt"`
	Locations   []FlaggedLocation `json:"locations"`
}

// ErrorStatusNotifier publishes error status reports to operators.
type ErrorStatusNotifier interface {
	Notify(ctx context.Context, report ErrorStatusReport) error
}
