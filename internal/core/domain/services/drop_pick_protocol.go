package services

import (
	"fmt"

	"warehouse/internal/core/domain/model/handlingunit"
	"warehouse/internal/core/domain/model/location"
)

// DropPickProtocol moves handling units onto and off locations and keeps the error status of
// the involved locations consistent with what the warehouse physically observed.
//
// The protocol is pure: callers load the sites and units, the protocol mutates them and
// reports every touched aggregate in the returned Outcome.
//
// Business rules:
//   - a drop is validated against the target's dimension before anything changes
//   - a unit dropped onto one location is taken off any other location, which is then
//     flagged ERROR because the unit left it without a pick
//   - a drop detaches the unit from its composition base
//   - a drop onto an empty location clears its error flag
//   - a targeted pick that does not match the records flags every involved location
//
// Example usage:
//
//	protocol := services.NewDropPickProtocol()
//	outcome, err := protocol.Drop(target, unit, source, base)
//	if err != nil {
//	    // dimension violation, nothing changed
//	}
type DropPickProtocol struct{}

func NewDropPickProtocol() DropPickProtocol {
	return DropPickProtocol{}
}

// Drop places unit on target.
//
// Parameters:
//   - target: destination location and its current units
//   - unit: unit to drop, nil is a no-op
//   - source: location the unit currently sits on, nil when unplaced or already on target
//   - base: composition parent of the unit, nil when the unit is a root
//
// Returns an Outcome with AlreadyPlaced set and nothing touched when the unit already sits on
// target. The target location is always part of a non-empty Outcome so that concurrent drops
// onto the same location conflict on its version.
func (p DropPickProtocol) Drop(
	target Site,
	unit *handlingunit.HandlingUnit,
	source *Site,
	base *handlingunit.HandlingUnit,
) (Outcome, error) {
	var outcome Outcome
	if unit == nil {
		return outcome, nil
	}
	if err := target.Location.Validate(); err != nil {
		return outcome, err
	}
	if err := unit.Validate(); err != nil {
		return outcome, err
	}

	if unit.IsOn(target.Location.ID()) {
		outcome.AlreadyPlaced = true
		return outcome, nil
	}

	if err := location.ValidatePlacement(target.Location.Dimension(), target.Units, unit); err != nil {
		return outcome, fmt.Errorf("drop %s on %s: %w", unit.ID(), target.Location.ID(), err)
	}

	if base != nil && unit.IsChildOf(base.ID()) {
		base.RemoveChild(unit.ID())
		unit.Detach()
		outcome.touchUnits(base)
	}

	if source != nil && unit.IsOn(source.Location.ID()) {
		shifted := source.Location.Release(source.Units, unit)
		source.Location.MarkError()
		outcome.touchLocation(source.Location)
		outcome.touchUnits(shifted...)
	}

	if target.IsEmpty() {
		target.Location.ClearError()
	}

	if err := target.Location.Accept(target.Units, unit); err != nil {
		return Outcome{}, err
	}
	outcome.touchLocation(target.Location)
	outcome.touchUnits(unit)

	return outcome, nil
}

// Pick takes unit off target. A nil unit delegates to PickNext.
//
// holder is the location the records place the unit on when that is not target, nil
// otherwise. On a mismatch the returned Outcome carries the locations flagged ERROR and must
// be persisted even though an error is returned.
func (p DropPickProtocol) Pick(
	target Site,
	unit *handlingunit.HandlingUnit,
	holder *Site,
) (*handlingunit.HandlingUnit, Outcome, error) {
	if unit == nil {
		return p.PickNext(target)
	}

	var outcome Outcome
	if err := target.Location.Validate(); err != nil {
		return nil, outcome, err
	}

	flagHolder := func() {
		if holder != nil && !holder.Location.ID().IsEqual(target.Location.ID()) && holder.Location.MarkError() {
			outcome.touchLocation(holder.Location)
		}
	}

	if target.IsEmpty() {
		flagHolder()
		return nil, outcome, fmt.Errorf("pick %s from %s: %w", unit.ID(), target.Location.ID(), location.ErrLocationIsEmpty)
	}

	if !unit.IsOn(target.Location.ID()) {
		if target.Location.MarkError() {
			outcome.touchLocation(target.Location)
		}
		flagHolder()
		return nil, outcome, fmt.Errorf("pick %s from %s: %w",
			unit.ID(), target.Location.ID(), location.ErrHandlingUnitNotOnLocation)
	}

	shifted := target.Location.Release(target.Units, unit)
	outcome.touchLocation(target.Location)
	outcome.touchUnits(unit)
	outcome.touchUnits(shifted...)
	return unit, outcome, nil
}

// PickNext takes the unit selected by the target's access policy.
func (p DropPickProtocol) PickNext(target Site) (*handlingunit.HandlingUnit, Outcome, error) {
	var outcome Outcome
	if err := target.Location.Validate(); err != nil {
		return nil, outcome, err
	}

	next, ok := target.Location.Policy().Next(target.Units)
	if !ok {
		return nil, outcome, fmt.Errorf("pick from %s: %w", target.Location.ID(), location.ErrLocationIsEmpty)
	}

	shifted := target.Location.Release(target.Units, next)
	outcome.touchLocation(target.Location)
	outcome.touchUnits(next)
	outcome.touchUnits(shifted...)
	return next, outcome, nil
}
