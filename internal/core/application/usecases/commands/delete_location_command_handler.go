package commands

import (
	"context"
	"time"

	"warehouse/internal/core/domain/model/kernel"
)

// DeleteLocationCommandHandler clears the placement of every unit on the location and
// deletes the location in the same transaction. The delete is checked against the version
// read here, so a drop or pick committed in between fails the whole operation.
type DeleteLocationCommandHandler struct {
	uowFactory UoWFactory
}

func NewDeleteLocationCommandHandler(uowFactory UoWFactory) DeleteLocationCommandHandler {
	return DeleteLocationCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle returns errs.ErrObjectNotFound when the location does not exist.
func (h DeleteLocationCommandHandler) Handle(ctx context.Context, command DeleteLocationCommand) error {
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

	loc, err := locations.Get(ctx, command.LocationID())
	if err != nil {
		return err
	}

	placed, err := units.GetAllOnLocation(ctx, command.LocationID())
	if err != nil {
		return err
	}
	for _, hu := range placed {
		hu.ClearPlacement()
	}

	if err = writeUnits(ctx, units, placed, kernel.NewAudit(command.User(), time.Time{})); err != nil {
		return err
	}

	if err = locations.Delete(ctx, loc); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
