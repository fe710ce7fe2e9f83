package commands

import (
	"context"
	"time"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/location"
)

type UpdateLocationStatusCommandHandler struct {
	uowFactory LocationUoWFactory
}

func NewUpdateLocationStatusCommandHandler(uowFactory LocationUoWFactory) UpdateLocationStatusCommandHandler {
	return UpdateLocationStatusCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle replaces the LTOS and lock components and keeps the current error component.
func (h UpdateLocationStatusCommandHandler) Handle(ctx context.Context, command UpdateLocationStatusCommand) error {
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

	repo := uow.LocationRepository()
	loc, err := repo.Get(ctx, command.LocationID())
	if err != nil {
		return err
	}

	status, err := location.NewStatus(loc.Status().ErrorStatus(), command.Ltos(), command.Lock())
	if err != nil {
		return err
	}
	if err = loc.ChangeStatus(status); err != nil {
		return err
	}
	loc.Touch(kernel.NewAudit(command.User(), time.Time{}))

	if err = repo.Update(ctx, loc); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
