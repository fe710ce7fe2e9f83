package queries

import (
	"errors"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/errs"
	"warehouse/internal/pkg/guard"
)

var (
	ErrGetZoneQueryIsNotConstructed = errors.New(
		"GetZoneQuery must be created via NewGetZoneQuery constructor",
	)
	ErrGetAllZonesQueryIsNotConstructed = errors.New(
		"GetAllZonesQuery must be created via NewGetAllZonesQuery constructor",
	)
	ErrGetZonesOfLocationQueryIsNotConstructed = errors.New(
		"GetZonesOfLocationQuery must be created via NewGetZonesOfLocationQuery constructor",
	)
)

type GetZoneQuery struct {
	zoneID kernel.ID

	guard guard.ConstructorGuard
}

func NewGetZoneQuery(zoneID kernel.ID) (GetZoneQuery, error) {
	if err := zoneID.Validate(); err != nil {
		return GetZoneQuery{}, err
	}
	return GetZoneQuery{zoneID: zoneID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetZoneQuery) Validate() error {
	return q.guard.Validate(ErrGetZoneQueryIsNotConstructed)
}

func (q GetZoneQuery) ZoneID() kernel.ID {
	return q.zoneID
}

// GetAllZonesQuery retrieves one page of zones ordered by id. A count of 0 returns
// everything from offset on.
type GetAllZonesQuery struct {
	offset int
	count  int

	guard guard.ConstructorGuard
}

func NewGetAllZonesQuery(offset, count int) (GetAllZonesQuery, error) {
	if offset < 0 {
		return GetAllZonesQuery{}, errs.NewValueIsOutOfRangeError("offset", offset, 0, "unbounded")
	}
	if count < 0 {
		return GetAllZonesQuery{}, errs.NewValueIsOutOfRangeError("count", count, 0, "unbounded")
	}
	return GetAllZonesQuery{offset: offset, count: count, guard: guard.NewConstructorGuard()}, nil
}

func (q GetAllZonesQuery) Validate() error {
	return q.guard.Validate(ErrGetAllZonesQueryIsNotConstructed)
}

func (q GetAllZonesQuery) Offset() int {
	return q.offset
}

func (q GetAllZonesQuery) Count() int {
	return q.count
}

// GetZonesOfLocationQuery lists the zones a location is a member of.
type GetZonesOfLocationQuery struct {
	locationID kernel.ID

	guard guard.ConstructorGuard
}

func NewGetZonesOfLocationQuery(locationID kernel.ID) (GetZonesOfLocationQuery, error) {
	if err := locationID.Validate(); err != nil {
		return GetZonesOfLocationQuery{}, err
	}
	return GetZonesOfLocationQuery{locationID: locationID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetZonesOfLocationQuery) Validate() error {
	return q.guard.Validate(ErrGetZonesOfLocationQueryIsNotConstructed)
}

func (q GetZonesOfLocationQuery) LocationID() kernel.ID {
	return q.locationID
}
