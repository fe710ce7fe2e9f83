package services

import (
	"warehouse/internal/core/domain/model/handlingunit"
	"warehouse/internal/core/domain/model/location"
)

// Site is a location together with the units currently placed on it.
type Site struct {
	Location *location.Location
	Units    []*handlingunit.HandlingUnit
}

// IsEmpty reports whether no unit is placed on the site.
func (s Site) IsEmpty() bool {
	return len(s.Units) == 0
}

// Outcome lists every aggregate a domain service mutated. The application layer writes all
// of them in one unit of work, even when the service also returned an error.
type Outcome struct {
	Locations     []*location.Location
	HandlingUnits []*handlingunit.HandlingUnit

	// AlreadyPlaced is set when a drop targeted the location the unit already sits on.
	AlreadyPlaced bool
}

// IsEmpty reports whether nothing needs to be written.
func (o *Outcome) IsEmpty() bool {
	return len(o.Locations) == 0 && len(o.HandlingUnits) == 0
}

func (o *Outcome) touchLocation(loc *location.Location) {
	if loc == nil {
		return
	}
	for _, l := range o.Locations {
		if l.ID().IsEqual(loc.ID()) {
			return
		}
	}
	o.Locations = append(o.Locations, loc)
}

func (o *Outcome) touchUnits(units ...*handlingunit.HandlingUnit) {
	for _, hu := range units {
		if hu == nil || o.hasUnit(hu) {
			continue
		}
		o.HandlingUnits = append(o.HandlingUnits, hu)
	}
}

func (o *Outcome) hasUnit(hu *handlingunit.HandlingUnit) bool {
	for _, u := range o.HandlingUnits {
		if u.IsEqual(hu) {
			return true
		}
	}
	return false
}

// Merge adds the aggregates of other that are not listed yet. Entries keep their first
// position.
func (o *Outcome) Merge(other Outcome) {
	for _, loc := range other.Locations {
		o.touchLocation(loc)
	}
	o.touchUnits(other.HandlingUnits...)
	o.AlreadyPlaced = o.AlreadyPlaced || other.AlreadyPlaced
}
