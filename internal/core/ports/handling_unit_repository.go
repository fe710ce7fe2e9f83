package ports

import (
	"context"

	"warehouse/internal/core/domain/model/handlingunit"
	"warehouse/internal/core/domain/model/kernel"
)

// HandlingUnitRepository defines the persistence contract for handling unit aggregates.
//
// The contains set of a unit is derived from the base reference of its children, so
// writing a child is enough to persist a composition edge.
type HandlingUnitRepository interface {
	// Add persists a new unit. Returns errs.ErrObjectAlreadyExists when the id is taken.
	Add(ctx context.Context, hu *handlingunit.HandlingUnit) error

	// Update writes the unit with a compare-and-swap on its version, then increments the
	// in-memory version. Returns errs.ErrConcurrentModification on a version mismatch.
	Update(ctx context.Context, hu *handlingunit.HandlingUnit) error

	// Delete removes the unit with the same compare-and-swap as Update.
	Delete(ctx context.Context, hu *handlingunit.HandlingUnit) error

	// Get returns errs.ErrObjectNotFound when no unit has the id.
	Get(ctx context.Context, id kernel.ID) (*handlingunit.HandlingUnit, error)

	// GetAll returns a page of units ordered by id. A count of 0 means no limit.
	GetAll(ctx context.Context, offset, count int) ([]*handlingunit.HandlingUnit, error)

	// GetAllOnLocation returns the units placed on a location ordered by position, then id.
	GetAllOnLocation(ctx context.Context, locationID kernel.ID) ([]*handlingunit.HandlingUnit, error)

	// GetChildren returns the direct composition children of a unit ordered by id.
	GetChildren(ctx context.Context, baseID kernel.ID) ([]*handlingunit.HandlingUnit, error)

	Count(ctx context.Context) (int64, error)
}
