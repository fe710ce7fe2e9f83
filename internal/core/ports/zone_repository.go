package ports

import (
	"context"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/zone"
)

// ZoneRepository defines the persistence contract for zone aggregates. Membership is
// written together with the zone; every member must name a stored location.
type ZoneRepository interface {
	// Add persists a new zone. Returns errs.ErrObjectAlreadyExists when the id is taken and
	// errs.ErrObjectNotFound when a member location does not exist.
	Add(ctx context.Context, z *zone.Zone) error

	// Update writes rating and membership with a compare-and-swap on the version, then
	// increments the in-memory version.
	Update(ctx context.Context, z *zone.Zone) error

	// Delete removes the zone and its membership with the same compare-and-swap as Update.
	// The member locations are left untouched.
	Delete(ctx context.Context, z *zone.Zone) error

	// Get returns errs.ErrObjectNotFound when no zone has the id.
	Get(ctx context.Context, id kernel.ID) (*zone.Zone, error)

	// GetAll returns a page of zones ordered by id. A count of 0 means no limit.
	GetAll(ctx context.Context, offset, count int) ([]*zone.Zone, error)

	// GetAllContaining returns the zones the location is a member of, ordered by id.
	GetAllContaining(ctx context.Context, locationID kernel.ID) ([]*zone.Zone, error)

	Count(ctx context.Context) (int64, error)
}
