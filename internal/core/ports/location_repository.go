// Package ports defines the contracts between the warehouse core and its adapters:
// persistence of locations, handling units and zones, the unit of work, and outbound
// notifications.
package ports

import (
	"context"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/location"
)

// LocationRepository defines the persistence contract for location aggregates.
type LocationRepository interface {
	// Add persists a new location. Returns errs.ErrObjectAlreadyExists when the id is taken.
	Add(ctx context.Context, loc *location.Location) error

	// Update writes the location if its stored version still equals loc.Version(), then
	// increments the in-memory version. Returns errs.ErrConcurrentModification otherwise.
	Update(ctx context.Context, loc *location.Location) error

	// Delete removes the location if its stored version still equals loc.Version(). Returns
	// errs.ErrConcurrentModification otherwise. Units placed on it must be released beforehand;
	// zone memberships of the location go with it.
	Delete(ctx context.Context, loc *location.Location) error

	// Get returns errs.ErrObjectNotFound when no location has the id.
	Get(ctx context.Context, id kernel.ID) (*location.Location, error)

	// GetAll returns every location ordered by id.
	GetAll(ctx context.Context) ([]*location.Location, error)

	// GetAllInErrorStatus returns the locations whose error status equals status, ordered by id.
	GetAllInErrorStatus(ctx context.Context, status location.ErrorStatus) ([]*location.Location, error)

	Count(ctx context.Context) (int64, error)
}
