package commands

import (
	"context"
	"errors"

	"warehouse/internal/core/domain/model/handlingunit"
	"warehouse/internal/core/domain/services"
	"warehouse/internal/pkg/errs"
)

// DeleteHandlingUnitCommandHandler removes a unit together with every reference to it.
//
// The unit is taken off its location (positions above it move down), its children become
// roots, it is removed from its base, and finally its record is deleted. The location is
// not flagged: a deletion is a bookkeeping operation, not an unexpected disappearance.
type DeleteHandlingUnitCommandHandler struct {
	uowFactory UoWFactory
}

func NewDeleteHandlingUnitCommandHandler(uowFactory UoWFactory) DeleteHandlingUnitCommandHandler {
	return DeleteHandlingUnitCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle returns errs.ErrObjectNotFound when the unit does not exist.
func (h DeleteHandlingUnitCommandHandler) Handle(ctx context.Context, command DeleteHandlingUnitCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	locations := uow.LocationRepository()
	units := uow.HandlingUnitRepository()

	hu, err := units.Get(ctx, command.HandlingUnitID())
	if err != nil {
		return err
	}

	var outcome services.Outcome
	if hu.IsPlaced() {
		site, siteErr := loadSite(ctx, locations, units, *hu.Location())
		switch {
		case errors.Is(siteErr, errs.ErrObjectNotFound):
			hu.ClearPlacement()
		case siteErr != nil:
			return siteErr
		default:
			shifted := site.Location.Release(site.Units, hu)
			outcome.Locations = append(outcome.Locations, site.Location)
			outcome.HandlingUnits = append(outcome.HandlingUnits, shifted...)
		}
	}

	composition := services.NewCompositionManager(lookupIn(ctx, units))

	freed, _, err := composition.Free(hu)
	if err != nil {
		return err
	}
	outcome.Merge(freed)

	if hu.HasBase() {
		base, baseErr := units.Get(ctx, *hu.Base())
		if baseErr != nil {
			return baseErr
		}
		removed, removeErr := composition.Remove(hu, base)
		if removeErr != nil {
			return removeErr
		}
		outcome.Merge(removed)
	}

	outcome.HandlingUnits = without(outcome.HandlingUnits, hu)
	if err = writeOutcome(ctx, locations, units, outcome, command.User()); err != nil {
		return err
	}

	if err = units.Delete(ctx, hu); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func without(units []*handlingunit.HandlingUnit, unit *handlingunit.HandlingUnit) []*handlingunit.HandlingUnit {
	kept := make([]*handlingunit.HandlingUnit, 0, len(units))
	for _, hu := range units {
		if !hu.IsEqual(unit) {
			kept = append(kept, hu)
		}
	}
	return kept
}
