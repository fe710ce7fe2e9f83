package memory

import (
	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/errs"
)

type changeKind int

const (
	changeAdd changeKind = iota
	changeUpdate
	changeDelete
)

// namespace separates location, unit and zone ids, which may overlap.
type namespace int

const (
	nsLocation namespace = iota
	nsUnit
	nsZone
)

func (n namespace) paramName() string {
	switch n {
	case nsUnit:
		return "handlingUnit"
	case nsZone:
		return "zone"
	}
	return "location"
}

// change is one staged write. Adds and updates carry the record of their namespace;
// deletes only carry the id, the namespace and the expected version.
type change struct {
	kind     changeKind
	ns       namespace
	id       kernel.ID
	expected int
	location *locationRecord
	unit     *unitRecord
	zone     *zoneRecord
}

func (c change) stored(state memoryState) (int, bool) {
	switch c.ns {
	case nsUnit:
		r, ok := state.units[c.id]
		return r.version, ok
	case nsZone:
		r, ok := state.zones[c.id]
		return r.version, ok
	}
	r, ok := state.locations[c.id]
	return r.version, ok
}

func (c change) check(state memoryState) error {
	version, ok := c.stored(state)
	switch c.kind {
	case changeAdd:
		if ok {
			return errs.NewObjectAlreadyExistsError(c.ns.paramName(), c.id.String())
		}
	case changeUpdate, changeDelete:
		if !ok {
			return errs.NewObjectNotFoundError(c.ns.paramName(), c.id.String())
		}
		if version != c.expected {
			return errs.NewConcurrentModificationError(c.ns.paramName(), c.id.String(), c.expected)
		}
	}
	if c.zone != nil {
		for _, locationID := range c.zone.locations {
			if _, found := state.locations[locationID]; !found {
				return errs.NewObjectNotFoundError("location", locationID.String())
			}
		}
	}
	return nil
}

func (c change) write(state memoryState) {
	if c.kind == changeDelete {
		switch c.ns {
		case nsUnit:
			delete(state.units, c.id)
		case nsZone:
			delete(state.zones, c.id)
		default:
			delete(state.locations, c.id)
			dropMembership(state, c.id)
		}
		return
	}
	switch c.ns {
	case nsUnit:
		state.units[c.id] = *c.unit
	case nsZone:
		state.zones[c.id] = *c.zone
	default:
		state.locations[c.id] = *c.location
	}
}

// dropMembership removes a deleted location from every zone, the way the join table's
// cascade does. Zone versions are left alone.
func dropMembership(state memoryState, locationID kernel.ID) {
	for id, rec := range state.zones {
		kept := make([]kernel.ID, 0, len(rec.locations))
		for _, member := range rec.locations {
			if !member.IsEqual(locationID) {
				kept = append(kept, member)
			}
		}
		if len(kept) != len(rec.locations) {
			rec.locations = kept
			state.zones[id] = rec
		}
	}
}
