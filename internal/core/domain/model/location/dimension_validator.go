package location

import (
	"fmt"

	"warehouse/internal/core/domain/model/handlingunit"
)

// ValidatePlacement checks whether unit fits on a location with the given limits, next to
// the units already placed there. A unit already present in placed is not counted twice,
// so re-validating a placed unit is idempotent.
//
// The checks run in a fixed order: capacity, weight, height, length, width. The first
// violation is returned wrapped with details.
func ValidatePlacement(dim Dimension, placed []*handlingunit.HandlingUnit, unit *handlingunit.HandlingUnit) error {
	others := 0
	weight := 0
	for _, hu := range placed {
		if hu.ID().IsEqual(unit.ID()) {
			continue
		}
		others++
		weight += hu.Weight()
	}

	if dim.MaxCapacity() > 0 && others+1 > dim.MaxCapacity() {
		return fmt.Errorf("%w: %d units placed, capacity is %d", ErrCapacityExceeded, others, dim.MaxCapacity())
	}
	if dim.MaxWeight() > 0 && weight+unit.Weight() > dim.MaxWeight() {
		return fmt.Errorf("%w: total would be %d, limit is %d",
			ErrWeightExceeded, weight+unit.Weight(), dim.MaxWeight())
	}
	if unit.Height().Exceeds(dim.MaxHeight()) {
		return fmt.Errorf("%w: %s above %s", ErrOverheight, unit.Height(), dim.MaxHeight())
	}
	if unit.Length().Exceeds(dim.MaxLength()) {
		return fmt.Errorf("%w: %s above %s", ErrOverlength, unit.Length(), dim.MaxLength())
	}
	if unit.Width().Exceeds(dim.MaxWidth()) {
		return fmt.Errorf("%w: %s above %s", ErrOverwidth, unit.Width(), dim.MaxWidth())
	}
	return nil
}
