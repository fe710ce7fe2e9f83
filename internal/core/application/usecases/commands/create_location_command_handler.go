package commands

import (
	"context"
	"time"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/location"
)

// CreateLocationCommandHandler processes location registration requests.
// Returns errs.ErrObjectAlreadyExists when the id is already taken.
type CreateLocationCommandHandler struct {
	uowFactory LocationUoWFactory
}

// NewCreateLocationCommandHandler creates a handler for location registration.
func NewCreateLocationCommandHandler(uowFactory LocationUoWFactory) CreateLocationCommandHandler {
	return CreateLocationCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle creates the location aggregate and persists it in one transaction.
func (h CreateLocationCommandHandler) Handle(ctx context.Context, command CreateLocationCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	loc, err := location.NewLocation(command.LocationID(), command.AccessKind(), command.Dimension())
	if err != nil {
		return err
	}
	loc.Touch(kernel.NewAudit(command.User(), time.Time{}))

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.LocationRepository().Add(ctx, loc); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
