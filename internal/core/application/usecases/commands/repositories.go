// Package commands contains business operations that modify warehouse state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"warehouse/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure every aggregate touched by one operation is written together.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// LocationRepoFactory provides access to the location repository within a transaction.
	LocationRepoFactory interface {
		LocationRepository() ports.LocationRepository
	}

	// HandlingUnitRepoFactory provides access to the handling unit repository within a transaction.
	HandlingUnitRepoFactory interface {
		HandlingUnitRepository() ports.HandlingUnitRepository
	}

	// ZoneRepoFactory provides access to the zone repository within a transaction.
	ZoneRepoFactory interface {
		ZoneRepository() ports.ZoneRepository
	}

	// LocationUoW manages transactions for location-only operations.
	LocationUoW interface {
		TxManager
		LocationRepoFactory
	}

	// LocationUoWFactory creates new location unit of work instances.
	LocationUoWFactory interface {
		Create() LocationUoW
	}

	// HandlingUnitUoW manages transactions for operations that only touch handling units,
	// such as composition changes.
	HandlingUnitUoW interface {
		TxManager
		HandlingUnitRepoFactory
	}

	// HandlingUnitUoWFactory creates new handling unit unit of work instances.
	HandlingUnitUoWFactory interface {
		Create() HandlingUnitUoW
	}

	// UoW manages transactions across locations and handling units.
	// Used by drop, pick and every delete that has to release placements.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   locations := uow.LocationRepository()
	//   units := uow.HandlingUnitRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		LocationRepoFactory
		HandlingUnitRepoFactory
	}

	// UoWFactory creates new unit of work instances for cross-aggregate operations.
	UoWFactory interface {
		Create() UoW
	}

	// ZoneUoW manages transactions for zone membership changes. Locations are read to
	// confirm that a new member exists.
	ZoneUoW interface {
		TxManager
		LocationRepoFactory
		ZoneRepoFactory
	}

	ZoneUoWFactory interface {
		Create() ZoneUoW
	}
)

// Function adapters let a single storage-level factory serve every unit of work flavour.
//
// Example:
//
//	var f UoWFactory = FuncUoWFactory(func() UoW {
//	    return storageFactory.Create()
//	})
type (
	FuncLocationUoWFactory     func() LocationUoW
	FuncHandlingUnitUoWFactory func() HandlingUnitUoW
	FuncUoWFactory             func() UoW
	FuncZoneUoWFactory         func() ZoneUoW
)

func (f FuncLocationUoWFactory) Create() LocationUoW {
	return f()
}

func (f FuncHandlingUnitUoWFactory) Create() HandlingUnitUoW {
	return f()
}

func (f FuncUoWFactory) Create() UoW {
	return f()
}

func (f FuncZoneUoWFactory) Create() ZoneUoW {
	return f()
}
