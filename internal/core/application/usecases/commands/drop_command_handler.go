package commands

import (
	"context"
	"errors"
	"log/slog"

	"warehouse/internal/core/domain/model/handlingunit"
	"warehouse/internal/core/domain/services"
	"warehouse/internal/pkg/errs"
)

// DropCommandHandler places a handling unit on a location through the drop/pick protocol.
// Every location and unit the protocol touched is written in the same transaction, so two
// concurrent drops onto one location cannot both succeed.
type DropCommandHandler struct {
	uowFactory UoWFactory
	logger     *slog.Logger
}

func NewDropCommandHandler(uowFactory UoWFactory, logger *slog.Logger) DropCommandHandler {
	return DropCommandHandler{
		uowFactory: uowFactory,
		logger:     logger.With("component", "drop_command_handler"),
	}
}

// Handle returns a location.ErrDimensionExceeded error when the unit does not fit and
// errs.ErrObjectNotFound when the location or the unit is unknown.
func (h DropCommandHandler) Handle(ctx context.Context, command DropCommand) error {
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

	target, err := loadSite(ctx, locations, units, command.LocationID())
	if err != nil {
		return err
	}

	unit, err := units.Get(ctx, command.HandlingUnitID())
	if err != nil {
		return err
	}

	var source *services.Site
	if unit.IsPlaced() && !unit.IsOn(command.LocationID()) {
		site, siteErr := loadSite(ctx, locations, units, *unit.Location())
		switch {
		case errors.Is(siteErr, errs.ErrObjectNotFound):
			h.logger.WarnContext(ctx, "Unit refers to a missing location",
				"handling_unit", unit.ID().String(), "location", unit.Location().String())
		case siteErr != nil:
			return siteErr
		default:
			source = &site
		}
	}

	var base *handlingunit.HandlingUnit
	if unit.HasBase() {
		if base, err = units.Get(ctx, *unit.Base()); err != nil {
			return err
		}
	}

	outcome, err := services.NewDropPickProtocol().Drop(target, unit, source, base)
	if err != nil {
		return err
	}

	if outcome.AlreadyPlaced {
		h.logger.WarnContext(ctx, "Unit dropped onto the location it already occupies",
			"handling_unit", unit.ID().String(), "location", command.LocationID().String())
		return nil
	}
	if source != nil {
		h.logger.WarnContext(ctx, "Unit left its location without a pick, location flagged",
			"handling_unit", unit.ID().String(), "location", source.Location.ID().String())
	}

	if err = writeOutcome(ctx, locations, units, outcome, command.User()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
