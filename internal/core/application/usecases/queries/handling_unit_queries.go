package queries

import (
	"errors"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/errs"
	"warehouse/internal/pkg/guard"
)

var (
	ErrGetHandlingUnitQueryIsNotConstructed = errors.New(
		"GetHandlingUnitQuery must be created via NewGetHandlingUnitQuery constructor",
	)
	ErrGetAllHandlingUnitsQueryIsNotConstructed = errors.New(
		"GetAllHandlingUnitsQuery must be created via NewGetAllHandlingUnitsQuery constructor",
	)
	ErrGetHandlingUnitsOnLocationQueryIsNotConstructed = errors.New(
		"GetHandlingUnitsOnLocationQuery must be created via NewGetHandlingUnitsOnLocationQuery constructor",
	)
	ErrGetAvailablePicksQueryIsNotConstructed = errors.New(
		"GetAvailablePicksQuery must be created via NewGetAvailablePicksQuery constructor",
	)
	ErrFlatContainsQueryIsNotConstructed = errors.New(
		"FlatContainsQuery must be created via NewFlatContainsQuery constructor",
	)
)

type GetHandlingUnitQuery struct {
	handlingUnitID kernel.ID

	guard guard.ConstructorGuard
}

func NewGetHandlingUnitQuery(handlingUnitID kernel.ID) (GetHandlingUnitQuery, error) {
	if err := handlingUnitID.Validate(); err != nil {
		return GetHandlingUnitQuery{}, err
	}
	return GetHandlingUnitQuery{handlingUnitID: handlingUnitID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetHandlingUnitQuery) Validate() error {
	return q.guard.Validate(ErrGetHandlingUnitQueryIsNotConstructed)
}

func (q GetHandlingUnitQuery) HandlingUnitID() kernel.ID {
	return q.handlingUnitID
}

// GetAllHandlingUnitsQuery retrieves one page of handling units ordered by id.
// A count of 0 returns everything from offset on.
type GetAllHandlingUnitsQuery struct {
	offset int
	count  int

	guard guard.ConstructorGuard
}

func NewGetAllHandlingUnitsQuery(offset, count int) (GetAllHandlingUnitsQuery, error) {
	if offset < 0 {
		return GetAllHandlingUnitsQuery{}, errs.NewValueIsOutOfRangeError("offset", offset, 0, "unbounded")
	}
	if count < 0 {
		return GetAllHandlingUnitsQuery{}, errs.NewValueIsOutOfRangeError("count", count, 0, "unbounded")
	}
	return GetAllHandlingUnitsQuery{offset: offset, count: count, guard: guard.NewConstructorGuard()}, nil
}

func (q GetAllHandlingUnitsQuery) Validate() error {
	return q.guard.Validate(ErrGetAllHandlingUnitsQueryIsNotConstructed)
}

func (q GetAllHandlingUnitsQuery) Offset() int {
	return q.offset
}

func (q GetAllHandlingUnitsQuery) Count() int {
	return q.count
}

// GetHandlingUnitsOnLocationQuery lists the units placed on a location in position order.
type GetHandlingUnitsOnLocationQuery struct {
	locationID kernel.ID

	guard guard.ConstructorGuard
}

func NewGetHandlingUnitsOnLocationQuery(locationID kernel.ID) (GetHandlingUnitsOnLocationQuery, error) {
	if err := locationID.Validate(); err != nil {
		return GetHandlingUnitsOnLocationQuery{}, err
	}
	return GetHandlingUnitsOnLocationQuery{locationID: locationID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetHandlingUnitsOnLocationQuery) Validate() error {
	return q.guard.Validate(ErrGetHandlingUnitsOnLocationQueryIsNotConstructed)
}

func (q GetHandlingUnitsOnLocationQuery) LocationID() kernel.ID {
	return q.locationID
}

// GetAvailablePicksQuery lists the units the access policy of a location allows to be
// picked next: the lowest position for FIFO, the highest for LIFO, all of them for RANDOM.
type GetAvailablePicksQuery struct {
	locationID kernel.ID

	guard guard.ConstructorGuard
}

func NewGetAvailablePicksQuery(locationID kernel.ID) (GetAvailablePicksQuery, error) {
	if err := locationID.Validate(); err != nil {
		return GetAvailablePicksQuery{}, err
	}
	return GetAvailablePicksQuery{locationID: locationID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetAvailablePicksQuery) Validate() error {
	return q.guard.Validate(ErrGetAvailablePicksQueryIsNotConstructed)
}

func (q GetAvailablePicksQuery) LocationID() kernel.ID {
	return q.locationID
}

// FlatContainsQuery resolves every unit carried by a base, directly or through
// intermediate units.
type FlatContainsQuery struct {
	baseID kernel.ID

	guard guard.ConstructorGuard
}

func NewFlatContainsQuery(baseID kernel.ID) (FlatContainsQuery, error) {
	if err := baseID.Validate(); err != nil {
		return FlatContainsQuery{}, err
	}
	return FlatContainsQuery{baseID: baseID, guard: guard.NewConstructorGuard()}, nil
}

func (q FlatContainsQuery) Validate() error {
	return q.guard.Validate(ErrFlatContainsQueryIsNotConstructed)
}

func (q FlatContainsQuery) BaseID() kernel.ID {
	return q.baseID
}
