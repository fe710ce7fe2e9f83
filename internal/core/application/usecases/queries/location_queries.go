package queries

import (
	"errors"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/location"
	"warehouse/internal/pkg/guard"
)

var (
	ErrGetLocationQueryIsNotConstructed = errors.New(
		"GetLocationQuery must be created via NewGetLocationQuery constructor",
	)
	ErrGetAllLocationsQueryIsNotConstructed = errors.New(
		"GetAllLocationsQuery must be created via NewGetAllLocationsQuery constructor",
	)
	ErrGetAllContainingQueryIsNotConstructed = errors.New(
		"GetAllContainingQuery must be created via NewGetAllContainingQuery constructor",
	)
	ErrGetAllInErrorStatusQueryIsNotConstructed = errors.New(
		"GetAllInErrorStatusQuery must be created via NewGetAllInErrorStatusQuery constructor",
	)
	ErrIsFullQueryIsNotConstructed = errors.New(
		"IsFullQuery must be created via NewIsFullQuery constructor",
	)
	ErrGetAllFullQueryIsNotConstructed = errors.New(
		"GetAllFullQuery must be created via NewGetAllFullQuery constructor",
	)
	ErrGetAllWithFreeCapacityQueryIsNotConstructed = errors.New(
		"GetAllWithFreeCapacityQuery must be created via NewGetAllWithFreeCapacityQuery constructor",
	)
)

// GetLocationQuery retrieves one location with its occupancy.
type GetLocationQuery struct {
	locationID kernel.ID

	guard guard.ConstructorGuard
}

func NewGetLocationQuery(locationID kernel.ID) (GetLocationQuery, error) {
	if err := locationID.Validate(); err != nil {
		return GetLocationQuery{}, err
	}
	return GetLocationQuery{locationID: locationID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetLocationQuery) Validate() error {
	return q.guard.Validate(ErrGetLocationQueryIsNotConstructed)
}

func (q GetLocationQuery) LocationID() kernel.ID {
	return q.locationID
}

// GetAllLocationsQuery retrieves every location ordered by id.
//
// Example:
//
//	query := NewGetAllLocationsQuery()
//	handler := NewGetAllLocationsQueryHandler(readerFactory)
//
//	locations, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to retrieve locations: %w", err)
//	}
//
//	for _, loc := range locations {
//	    fmt.Printf("%s %s %d units\n", loc.ID, loc.AccessKind, loc.UnitCount)
//	}
type GetAllLocationsQuery struct {
	guard guard.ConstructorGuard
}

func NewGetAllLocationsQuery() GetAllLocationsQuery {
	return GetAllLocationsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetAllLocationsQuery) Validate() error {
	return q.guard.Validate(ErrGetAllLocationsQueryIsNotConstructed)
}

// GetAllContainingQuery retrieves the locations a handling unit is placed on. The records
// allow at most one.
type GetAllContainingQuery struct {
	handlingUnitID kernel.ID

	guard guard.ConstructorGuard
}

func NewGetAllContainingQuery(handlingUnitID kernel.ID) (GetAllContainingQuery, error) {
	if err := handlingUnitID.Validate(); err != nil {
		return GetAllContainingQuery{}, err
	}
	return GetAllContainingQuery{handlingUnitID: handlingUnitID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetAllContainingQuery) Validate() error {
	return q.guard.Validate(ErrGetAllContainingQueryIsNotConstructed)
}

func (q GetAllContainingQuery) HandlingUnitID() kernel.ID {
	return q.handlingUnitID
}

// GetAllInErrorStatusQuery retrieves the locations whose error status equals a given value.
// Used by operators to find locations that need a manual check.
type GetAllInErrorStatusQuery struct {
	status location.ErrorStatus

	guard guard.ConstructorGuard
}

func NewGetAllInErrorStatusQuery(status location.ErrorStatus) (GetAllInErrorStatusQuery, error) {
	if err := status.Validate(); err != nil {
		return GetAllInErrorStatusQuery{}, err
	}
	return GetAllInErrorStatusQuery{status: status, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetAllInErrorStatusQuery) Validate() error {
	return q.guard.Validate(ErrGetAllInErrorStatusQueryIsNotConstructed)
}

func (q GetAllInErrorStatusQuery) Status() location.ErrorStatus {
	return q.status
}

// IsFullQuery asks whether a location reached its capacity.
type IsFullQuery struct {
	locationID kernel.ID

	guard guard.ConstructorGuard
}

func NewIsFullQuery(locationID kernel.ID) (IsFullQuery, error) {
	if err := locationID.Validate(); err != nil {
		return IsFullQuery{}, err
	}
	return IsFullQuery{locationID: locationID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q IsFullQuery) Validate() error {
	return q.guard.Validate(ErrIsFullQueryIsNotConstructed)
}

func (q IsFullQuery) LocationID() kernel.ID {
	return q.locationID
}

// GetAllFullQuery retrieves the locations that reached their capacity.
type GetAllFullQuery struct {
	guard guard.ConstructorGuard
}

func NewGetAllFullQuery() GetAllFullQuery {
	return GetAllFullQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetAllFullQuery) Validate() error {
	return q.guard.Validate(ErrGetAllFullQueryIsNotConstructed)
}

// GetAllWithFreeCapacityQuery retrieves the locations that can take at least one more unit.
// Unlimited locations always qualify.
type GetAllWithFreeCapacityQuery struct {
	guard guard.ConstructorGuard
}

func NewGetAllWithFreeCapacityQuery() GetAllWithFreeCapacityQuery {
	return GetAllWithFreeCapacityQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetAllWithFreeCapacityQuery) Validate() error {
	return q.guard.Validate(ErrGetAllWithFreeCapacityQueryIsNotConstructed)
}
