// Package zone provides the Zone aggregate: a named, rated group of locations such as
// "Cooler" or "Freezer".
//
// A location may belong to any number of zones. The zone owns the membership, so adding
// or removing a location is a write of the zone, never of the location.
package zone

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/errs"
)

// DefaultRating is the rating of a zone created without one.
const DefaultRating = 0

var ErrZoneIsNotConstructed = errors.New("Zone must be created via NewZone constructor")

// Zone groups locations under a rating. Membership is kept sorted by location id.
type Zone struct {
	id        kernel.ID
	version   int
	rating    int
	locations []kernel.ID
	audit     kernel.Audit

	isConstructed bool
}

// NewZone creates an empty zone at version 0.
func NewZone(id kernel.ID, rating int) (*Zone, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	return &Zone{
		id:            id,
		rating:        rating,
		locations:     []kernel.ID{},
		audit:         kernel.NewAudit("", time.Time{}),
		isConstructed: true,
	}, nil
}

// RestoreZone rebuilds a zone from persisted state. Duplicate location ids are collapsed.
func RestoreZone(id kernel.ID, version, rating int, locations []kernel.ID, audit kernel.Audit) (*Zone, error) {
	z, err := NewZone(id, rating)
	if err != nil {
		return nil, err
	}
	if version < 0 {
		return nil, errs.NewVersionIsInvalidError("version", fmt.Errorf("%d is negative", version))
	}
	if err = z.Replace(locations); err != nil {
		return nil, err
	}
	z.version = version
	z.audit = audit
	return z, nil
}

func (z *Zone) Validate() error {
	if z == nil || !z.isConstructed {
		return ErrZoneIsNotConstructed
	}
	return nil
}

func (z *Zone) ID() kernel.ID {
	return z.id
}

func (z *Zone) Version() int {
	return z.version
}

func (z *Zone) Rating() int {
	return z.rating
}

// Locations returns a copy of the member ids in id order.
func (z *Zone) Locations() []kernel.ID {
	return slices.Clone(z.locations)
}

func (z *Zone) Audit() kernel.Audit {
	return z.audit
}

// Contains reports whether the location is a member.
func (z *Zone) Contains(locationID kernel.ID) bool {
	_, found := z.search(locationID)
	return found
}

// ChangeRating reports whether the rating changed.
func (z *Zone) ChangeRating(rating int) bool {
	if z.rating == rating {
		return false
	}
	z.rating = rating
	return true
}

// Add makes the location a member. It reports false when it already was one.
func (z *Zone) Add(locationID kernel.ID) (bool, error) {
	if err := locationID.Validate(); err != nil {
		return false, err
	}
	i, found := z.search(locationID)
	if found {
		return false, nil
	}
	z.locations = slices.Insert(z.locations, i, locationID)
	return true, nil
}

// Remove drops the location from the zone. It reports false when it was not a member.
func (z *Zone) Remove(locationID kernel.ID) bool {
	i, found := z.search(locationID)
	if !found {
		return false
	}
	z.locations = slices.Delete(z.locations, i, i+1)
	return true
}

// Replace sets the membership to exactly locationIDs.
func (z *Zone) Replace(locationIDs []kernel.ID) error {
	members := make([]kernel.ID, 0, len(locationIDs))
	for _, id := range locationIDs {
		if err := id.Validate(); err != nil {
			return err
		}
		members = append(members, id)
	}
	slices.SortFunc(members, compareIDs)
	z.locations = slices.CompactFunc(members, kernel.ID.IsEqual)
	return nil
}

// Clear removes every member. It reports whether the zone had any.
func (z *Zone) Clear() bool {
	if len(z.locations) == 0 {
		return false
	}
	z.locations = []kernel.ID{}
	return true
}

func (z *Zone) Touch(audit kernel.Audit) {
	z.audit = audit
}

// IncrementVersion is called by repositories after a successful compare-and-swap write.
func (z *Zone) IncrementVersion() {
	z.version++
}

func (z *Zone) String() string {
	return fmt.Sprintf("Zone[%s rating=%d locations=%d v%d]", z.id, z.rating, len(z.locations), z.version)
}

func (z *Zone) search(locationID kernel.ID) (int, bool) {
	return slices.BinarySearchFunc(z.locations, locationID, compareIDs)
}

func compareIDs(a, b kernel.ID) int {
	switch {
	case a.Less(b):
		return -1
	case b.Less(a):
		return 1
	}
	return 0
}
