// Package postgres provides GORM-based implementation of the Unit of Work pattern.
// The Unit of Work pattern maintains a list of objects affected by a business
// transaction and coordinates writing out changes and resolving concurrency problems.
//
// Key Features:
//   - Transaction management across the location, handling unit and zone repositories
//   - Identity map: one in-memory instance per aggregate id and unit of work
//   - Compare-and-swap writes on the version column of every aggregate
//
// Usage Patterns:
//
//	factory := NewGormUnitOfWorkFactory(db)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer uow.Rollback(ctx)
//
//	loc, err := uow.LocationRepository().Get(ctx, locationID)
//	if err != nil {
//	    return err
//	}
//	units, err := uow.HandlingUnitRepository().GetAllOnLocation(ctx, locationID)
//	// ... mutate, then
//	if err := uow.LocationRepository().Update(ctx, loc); err != nil {
//	    return err // errs.ErrConcurrentModification when someone else wrote first
//	}
//
//	return uow.Commit(ctx)
//
// Concurrency Considerations:
//   - Each UnitOfWork instance provides isolated transactions
//   - Multiple goroutines should use separate UnitOfWork instances
//   - Conflicting writers are detected through the version column, not through locks
package postgres

import (
	"context"

	"warehouse/internal/adapters/out/postgres/handlingunitrepo"
	"warehouse/internal/adapters/out/postgres/locationrepo"
	"warehouse/internal/adapters/out/postgres/zonerepo"
	"warehouse/internal/core/domain/model/handlingunit"
	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/location"
	"warehouse/internal/core/domain/model/zone"
	"warehouse/internal/core/ports"

	"gorm.io/gorm"
)

// identityMap holds the aggregates loaded or written during one unit of work.
// Location, handling unit and zone ids live in separate namespaces.
type identityMap struct {
	locations     map[kernel.ID]*location.Location
	handlingUnits map[kernel.ID]*handlingunit.HandlingUnit
	zones         map[kernel.ID]*zone.Zone
}

func newIdentityMap() identityMap {
	return identityMap{
		locations:     make(map[kernel.ID]*location.Location),
		handlingUnits: make(map[kernel.ID]*handlingunit.HandlingUnit),
		zones:         make(map[kernel.ID]*zone.Zone),
	}
}

// GormUnitOfWorkFactory creates UnitOfWork instances using GORM database connections.
// Factory ensures each business operation gets a fresh unit of work instance
// with proper isolation from other concurrent operations.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work instances.
//
// Example:
//
//	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
//	if err != nil {
//	    log.Fatal("failed to connect database")
//	}
//	factory := NewGormUnitOfWorkFactory(db)
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a new UnitOfWork with an empty identity map.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:       f.db,
		identity: newIdentityMap(),
	}
}

// GormUnitOfWork coordinates database transactions and keeps the identity map of the
// aggregates touched by one business operation.
type GormUnitOfWork struct {
	db       *gorm.DB
	tx       *gorm.DB
	identity identityMap
}

// Begin initiates a new database transaction for the unit of work.
// Multiple calls to Begin on the same instance are safe and will not create nested transactions.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	return nil
}

// Commit finalizes all changes made within the current transaction and forgets the
// tracked aggregates. Returns gorm.ErrInvalidTransaction if no transaction is active.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	uow.identity = newIdentityMap()
	return err
}

// Rollback discards all changes made within the current transaction.
// Aggregates mutated in memory are forgotten; callers must re-fetch them.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.identity = newIdentityMap()
	return err
}

// LocationRepository provides access to location persistence operations within the unit of work.
// Repository operations will execute within the current transaction if one is active,
// otherwise they use the main database connection for immediate execution.
func (uow *GormUnitOfWork) LocationRepository() ports.LocationRepository {
	return locationrepo.NewGormLocationRepository(uow.conn(), uow)
}

// HandlingUnitRepository provides access to handling unit persistence operations within
// the unit of work.
func (uow *GormUnitOfWork) HandlingUnitRepository() ports.HandlingUnitRepository {
	return handlingunitrepo.NewGormHandlingUnitRepository(uow.conn(), uow)
}

// ZoneRepository provides access to zone persistence operations within the unit of work.
func (uow *GormUnitOfWork) ZoneRepository() ports.ZoneRepository {
	return zonerepo.NewGormZoneRepository(uow.conn(), uow)
}

// TrackAggregate registers an aggregate loaded or written within this unit of work.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.ID, aggregate any) {
	switch a := aggregate.(type) {
	case *location.Location:
		uow.identity.locations[id] = a
	case *handlingunit.HandlingUnit:
		uow.identity.handlingUnits[id] = a
	case *zone.Zone:
		uow.identity.zones[id] = a
	}
}

// UntrackAggregate forgets a deleted aggregate. aggregate only selects the namespace and
// may be a typed nil.
func (uow *GormUnitOfWork) UntrackAggregate(id kernel.ID, aggregate any) {
	switch aggregate.(type) {
	case *location.Location:
		delete(uow.identity.locations, id)
	case *handlingunit.HandlingUnit:
		delete(uow.identity.handlingUnits, id)
	case *zone.Zone:
		delete(uow.identity.zones, id)
	}
}

// TrackedLocation returns the instance already handed out for id, if any.
func (uow *GormUnitOfWork) TrackedLocation(id kernel.ID) (*location.Location, bool) {
	loc, ok := uow.identity.locations[id]
	return loc, ok
}

// TrackedHandlingUnit returns the instance already handed out for id, if any.
func (uow *GormUnitOfWork) TrackedHandlingUnit(id kernel.ID) (*handlingunit.HandlingUnit, bool) {
	hu, ok := uow.identity.handlingUnits[id]
	return hu, ok
}

// TrackedZone returns the instance already handed out for id, if any.
func (uow *GormUnitOfWork) TrackedZone(id kernel.ID) (*zone.Zone, bool) {
	z, ok := uow.identity.zones[id]
	return z, ok
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}
