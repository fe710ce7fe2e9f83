package commands

import (
	"context"
	"errors"
	"log/slog"

	"warehouse/internal/core/domain/model/handlingunit"
	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/location"
	"warehouse/internal/core/domain/services"
	"warehouse/internal/core/ports"
	"warehouse/internal/pkg/errs"
)

// PickCommandHandler takes a handling unit off a location through the drop/pick protocol.
//
// A pick that contradicts the records (empty location, unit elsewhere) still commits the
// ERROR flags it raised before the error is returned to the caller.
type PickCommandHandler struct {
	uowFactory UoWFactory
	logger     *slog.Logger
}

func NewPickCommandHandler(uowFactory UoWFactory, logger *slog.Logger) PickCommandHandler {
	return PickCommandHandler{
		uowFactory: uowFactory,
		logger:     logger.With("component", "pick_command_handler"),
	}
}

// Handle returns the picked unit. It fails with location.ErrLocationIsEmpty or
// location.ErrHandlingUnitNotOnLocation when the location does not hold what was asked for.
func (h PickCommandHandler) Handle(ctx context.Context, command PickCommand) (*handlingunit.HandlingUnit, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	locations := uow.LocationRepository()
	units := uow.HandlingUnitRepository()

	target, err := loadSite(ctx, locations, units, command.LocationID())
	if err != nil {
		return nil, err
	}

	var unit *handlingunit.HandlingUnit
	var holder *services.Site
	if command.IsTargeted() {
		if unit, err = units.Get(ctx, *command.HandlingUnitID()); err != nil {
			return nil, err
		}
		if holder, err = loadHolder(ctx, locations, units, unit, command.LocationID()); err != nil {
			return nil, err
		}
	}

	picked, outcome, pickErr := services.NewDropPickProtocol().Pick(target, unit, holder)
	if pickErr != nil && !isStateError(pickErr) {
		return nil, pickErr
	}

	if pickErr != nil {
		for _, loc := range outcome.Locations {
			h.logger.WarnContext(ctx, "Pick contradicts the records, location flagged",
				"location", loc.ID().String(), "error", pickErr)
		}
	}

	if err = writeOutcome(ctx, locations, units, outcome, command.User()); err != nil {
		return nil, err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	if pickErr != nil {
		return nil, pickErr
	}
	return picked, nil
}

// loadHolder returns the site the records place unit on when that is not the pick target.
// A unit that refers to a location which no longer exists has no holder.
func loadHolder(
	ctx context.Context,
	locations ports.LocationRepository,
	units ports.HandlingUnitRepository,
	unit *handlingunit.HandlingUnit,
	target kernel.ID,
) (*services.Site, error) {
	if !unit.IsPlaced() || unit.IsOn(target) {
		return nil, nil
	}

	site, err := loadSite(ctx, locations, units, *unit.Location())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &site, nil
}

func isStateError(err error) bool {
	return errors.Is(err, location.ErrLocationIsEmpty) || errors.Is(err, location.ErrHandlingUnitNotOnLocation)
}
