package location

import (
	"slices"

	"warehouse/internal/core/domain/model/handlingunit"
	"warehouse/internal/core/domain/model/kernel"
)

// AccessPolicy governs how units enter and leave a location. Implementations are stateless;
// the placed units are always passed in.
type AccessPolicy interface {
	// Add places unit on the location and assigns its position.
	Add(locationID kernel.ID, placed []*handlingunit.HandlingUnit, unit *handlingunit.HandlingUnit) error

	// Remove clears the placement of unit and returns the remaining units whose position
	// changed as a consequence.
	Remove(placed []*handlingunit.HandlingUnit, unit *handlingunit.HandlingUnit) []*handlingunit.HandlingUnit

	// AvailablePicks returns the units that may be picked next.
	AvailablePicks(placed []*handlingunit.HandlingUnit) []*handlingunit.HandlingUnit

	// Next returns the unit a policy-driven pick takes, if any.
	Next(placed []*handlingunit.HandlingUnit) (*handlingunit.HandlingUnit, bool)
}

// PolicyFor returns the policy of an access kind. None shares the Random policy.
func PolicyFor(kind AccessKind) AccessPolicy {
	switch kind {
	case FIFO:
		return orderedPolicy{pickHead: true}
	case LIFO:
		return orderedPolicy{pickHead: false}
	case Random, None, AccessKindUnknown:
	}
	return randomPolicy{}
}

// candidates drops units whose base is placed on the same location; those travel with it.
func candidates(placed []*handlingunit.HandlingUnit) []*handlingunit.HandlingUnit {
	present := make(map[kernel.ID]struct{}, len(placed))
	for _, hu := range placed {
		present[hu.ID()] = struct{}{}
	}
	result := make([]*handlingunit.HandlingUnit, 0, len(placed))
	for _, hu := range placed {
		if base := hu.Base(); base != nil {
			if _, ok := present[*base]; ok {
				continue
			}
		}
		result = append(result, hu)
	}
	return result
}

func byID(a, b *handlingunit.HandlingUnit) int {
	switch {
	case a.ID().Less(b.ID()):
		return -1
	case b.ID().Less(a.ID()):
		return 1
	}
	return 0
}

func position(hu *handlingunit.HandlingUnit) int {
	if pos := hu.LocaPos(); pos != nil {
		return *pos
	}
	return 0
}

// orderedPolicy implements FIFO (pickHead) and LIFO. Positions are 1-based and contiguous.
type orderedPolicy struct {
	pickHead bool
}

func (p orderedPolicy) Add(locationID kernel.ID, placed []*handlingunit.HandlingUnit, unit *handlingunit.HandlingUnit) error {
	highest := 0
	for _, hu := range placed {
		if hu.ID().IsEqual(unit.ID()) {
			continue
		}
		highest = max(highest, position(hu))
	}
	next := highest + 1
	return unit.PlaceOn(locationID, &next)
}

func (p orderedPolicy) Remove(placed []*handlingunit.HandlingUnit, unit *handlingunit.HandlingUnit) []*handlingunit.HandlingUnit {
	removed := position(unit)
	unit.ClearPlacement()
	if removed == 0 {
		return nil
	}

	var shifted []*handlingunit.HandlingUnit
	for _, hu := range placed {
		if hu.ID().IsEqual(unit.ID()) {
			continue
		}
		if position(hu) > removed {
			hu.ShiftDown()
			shifted = append(shifted, hu)
		}
	}
	return shifted
}

func (p orderedPolicy) AvailablePicks(placed []*handlingunit.HandlingUnit) []*handlingunit.HandlingUnit {
	if next, ok := p.Next(placed); ok {
		return []*handlingunit.HandlingUnit{next}
	}
	return nil
}

func (p orderedPolicy) Next(placed []*handlingunit.HandlingUnit) (*handlingunit.HandlingUnit, bool) {
	cands := candidates(placed)
	if len(cands) == 0 {
		return nil, false
	}
	compare := func(a, b *handlingunit.HandlingUnit) int {
		if d := position(a) - position(b); d != 0 {
			return d
		}
		return byID(a, b)
	}
	if p.pickHead {
		return slices.MinFunc(cands, compare), true
	}
	return slices.MaxFunc(cands, compare), true
}

type randomPolicy struct{}

func (randomPolicy) Add(locationID kernel.ID, _ []*handlingunit.HandlingUnit, unit *handlingunit.HandlingUnit) error {
	return unit.PlaceOn(locationID, nil)
}

func (randomPolicy) Remove(_ []*handlingunit.HandlingUnit, unit *handlingunit.HandlingUnit) []*handlingunit.HandlingUnit {
	unit.ClearPlacement()
	return nil
}

func (randomPolicy) AvailablePicks(placed []*handlingunit.HandlingUnit) []*handlingunit.HandlingUnit {
	cands := candidates(placed)
	slices.SortFunc(cands, byID)
	return cands
}

func (p randomPolicy) Next(placed []*handlingunit.HandlingUnit) (*handlingunit.HandlingUnit, bool) {
	cands := p.AvailablePicks(placed)
	if len(cands) == 0 {
		return nil, false
	}
	return cands[0], true
}
