package commands

import (
	"context"
	"time"

	"warehouse/internal/core/domain/model/kernel"
)

type ResetErrorStatusCommandHandler struct {
	uowFactory LocationUoWFactory
}

func NewResetErrorStatusCommandHandler(uowFactory LocationUoWFactory) ResetErrorStatusCommandHandler {
	return ResetErrorStatusCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle clears the error flag. It reports whether the location was flagged; an unflagged
// location is left untouched and its version does not move.
func (h ResetErrorStatusCommandHandler) Handle(ctx context.Context, command ResetErrorStatusCommand) (bool, error) {
	if err := command.Validate(); err != nil {
		return false, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.LocationRepository()
	loc, err := repo.Get(ctx, command.LocationID())
	if err != nil {
		return false, err
	}

	if !loc.ClearError() {
		return false, nil
	}
	loc.Touch(kernel.NewAudit(command.User(), time.Time{}))

	if err = repo.Update(ctx, loc); err != nil {
		return false, err
	}

	return true, uow.Commit(ctx)
}
