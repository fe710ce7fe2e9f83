package commands

import (
	"context"
	"time"

	"warehouse/internal/core/domain/model/handlingunit"
	"warehouse/internal/core/domain/model/kernel"
)

// CreateHandlingUnitCommandHandler processes handling unit registration requests.
// Returns errs.ErrObjectAlreadyExists when the id is already taken.
type CreateHandlingUnitCommandHandler struct {
	uowFactory HandlingUnitUoWFactory
}

func NewCreateHandlingUnitCommandHandler(uowFactory HandlingUnitUoWFactory) CreateHandlingUnitCommandHandler {
	return CreateHandlingUnitCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle creates the handling unit aggregate and persists it in one transaction.
func (h CreateHandlingUnitCommandHandler) Handle(ctx context.Context, command CreateHandlingUnitCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	m := command.Measures()
	hu, err := handlingunit.NewHandlingUnit(command.HandlingUnitID(), m.Weight, m.Volume, m.Height, m.Length, m.Width)
	if err != nil {
		return err
	}
	hu.Touch(kernel.NewAudit(command.User(), time.Time{}))

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.HandlingUnitRepository().Add(ctx, hu); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
