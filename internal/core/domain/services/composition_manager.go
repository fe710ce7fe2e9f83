package services

import (
	"errors"
	"fmt"

	"warehouse/internal/core/domain/model/handlingunit"
	"warehouse/internal/core/domain/model/kernel"
)

var (
	// ErrCompositionCycle is returned when an assignment would make a unit its own ancestor.
	ErrCompositionCycle = errors.New("composition cycle")

	// ErrHandlingUnitNotInBase is returned when a unit is removed from a base it is not
	// a direct child of.
	ErrHandlingUnitNotInBase = errors.New("handling unit is not in base")
)

// HandlingUnitLookup resolves a unit by id. The application layer backs it with the
// repository of the current unit of work.
type HandlingUnitLookup func(id kernel.ID) (*handlingunit.HandlingUnit, error)

// CompositionManager maintains the composition forest: every unit has at most one base, and
// both ends of an edge (baseID on the child, contains on the base) always agree.
//
// Composition never touches placement or error status.
type CompositionManager struct {
	lookup HandlingUnitLookup
}

func NewCompositionManager(lookup HandlingUnitLookup) CompositionManager {
	return CompositionManager{lookup: lookup}
}

// Assign makes unit a direct child of base, detaching it from its previous base first.
// It returns the outcome and base.
func (m CompositionManager) Assign(unit, base *handlingunit.HandlingUnit) (Outcome, error) {
	var outcome Outcome
	if err := errors.Join(unit.Validate(), base.Validate()); err != nil {
		return outcome, err
	}
	if unit.IsEqual(base) {
		return outcome, handlingunit.ErrSelfComposition
	}
	if unit.IsChildOf(base.ID()) && base.HasChild(unit.ID()) {
		return outcome, nil
	}
	if err := m.checkCycle(unit, base); err != nil {
		return outcome, err
	}

	if err := m.detach(&outcome, unit); err != nil {
		return outcome, err
	}
	if err := unit.AttachTo(base.ID()); err != nil {
		return Outcome{}, err
	}
	if err := base.AddChild(unit.ID()); err != nil {
		return Outcome{}, err
	}
	outcome.touchUnits(unit, base)
	return outcome, nil
}

// Remove deletes the edge between unit and base.
func (m CompositionManager) Remove(unit, base *handlingunit.HandlingUnit) (Outcome, error) {
	var outcome Outcome
	if err := errors.Join(unit.Validate(), base.Validate()); err != nil {
		return outcome, err
	}
	if !base.HasChild(unit.ID()) {
		return outcome, fmt.Errorf("%w: %s is not a child of %s", ErrHandlingUnitNotInBase, unit.ID(), base.ID())
	}

	base.RemoveChild(unit.ID())
	if unit.IsChildOf(base.ID()) {
		unit.Detach()
	}
	outcome.touchUnits(unit, base)
	return outcome, nil
}

// Move re-parents unit under newBase in one step.
func (m CompositionManager) Move(unit, newBase *handlingunit.HandlingUnit) (Outcome, error) {
	return m.Assign(unit, newBase)
}

// Free detaches every direct child of base and returns their ids. Grandchildren keep their
// own edges.
func (m CompositionManager) Free(base *handlingunit.HandlingUnit) (Outcome, []kernel.ID, error) {
	var outcome Outcome
	if err := base.Validate(); err != nil {
		return outcome, nil, err
	}

	children := base.Contains()
	for _, id := range children {
		child, err := m.lookup(id)
		if err != nil {
			return Outcome{}, nil, err
		}
		if child.IsChildOf(base.ID()) {
			child.Detach()
			outcome.touchUnits(child)
		}
	}
	freed := base.ClearChildren()
	outcome.touchUnits(base)
	return outcome, freed, nil
}

// FlatContains returns the transitive closure of base's contains set in breadth-first order.
func (m CompositionManager) FlatContains(base *handlingunit.HandlingUnit) ([]kernel.ID, error) {
	if err := base.Validate(); err != nil {
		return nil, err
	}

	var result []kernel.ID
	seen := map[kernel.ID]struct{}{base.ID(): {}}
	queue := base.Contains()
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)

		child, err := m.lookup(id)
		if err != nil {
			return nil, err
		}
		queue = append(queue, child.Contains()...)
	}
	return result, nil
}

// checkCycle walks from base to its root. Meeting unit on the way means unit is an ancestor
// of base.
func (m CompositionManager) checkCycle(unit, base *handlingunit.HandlingUnit) error {
	seen := map[kernel.ID]struct{}{base.ID(): {}}
	current := base
	for current.HasBase() {
		parentID := *current.Base()
		if parentID.IsEqual(unit.ID()) {
			return fmt.Errorf("%w: %s is an ancestor of %s", ErrCompositionCycle, unit.ID(), base.ID())
		}
		if _, ok := seen[parentID]; ok {
			return fmt.Errorf("%w: ancestors of %s loop at %s", ErrCompositionCycle, base.ID(), parentID)
		}
		seen[parentID] = struct{}{}

		parent, err := m.lookup(parentID)
		if err != nil {
			return err
		}
		current = parent
	}
	return nil
}

func (m CompositionManager) detach(outcome *Outcome, unit *handlingunit.HandlingUnit) error {
	if !unit.HasBase() {
		return nil
	}
	old, err := m.lookup(*unit.Base())
	if err != nil {
		return err
	}
	old.RemoveChild(unit.ID())
	unit.Detach()
	outcome.touchUnits(old)
	return nil
}
