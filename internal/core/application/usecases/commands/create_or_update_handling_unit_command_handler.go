package commands

import (
	"context"
	"errors"
	"time"

	"warehouse/internal/core/domain/model/handlingunit"
	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/errs"
)

type CreateOrUpdateHandlingUnitCommandHandler struct {
	uowFactory HandlingUnitUoWFactory
}

func NewCreateOrUpdateHandlingUnitCommandHandler(
	uowFactory HandlingUnitUoWFactory,
) CreateOrUpdateHandlingUnitCommandHandler {
	return CreateOrUpdateHandlingUnitCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle reports true when the unit was created and false when an existing unit was updated.
// The new measures are not checked against the location the unit sits on; the next drop
// validates them.
func (h CreateOrUpdateHandlingUnitCommandHandler) Handle(
	ctx context.Context,
	command CreateOrUpdateHandlingUnitCommand,
) (bool, error) {
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

	repo := uow.HandlingUnitRepository()
	audit := kernel.NewAudit(command.User(), time.Time{})
	m := command.Measures()

	hu, err := repo.Get(ctx, command.HandlingUnitID())
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		hu, err = handlingunit.NewHandlingUnit(command.HandlingUnitID(), m.Weight, m.Volume, m.Height, m.Length, m.Width)
		if err != nil {
			return false, err
		}
		hu.Touch(audit)
		if err = repo.Add(ctx, hu); err != nil {
			return false, err
		}
		return true, uow.Commit(ctx)
	case err != nil:
		return false, err
	}

	if err = hu.UpdateMeasures(m.Weight, m.Volume, m.Height, m.Length, m.Width); err != nil {
		return false, err
	}
	hu.Touch(audit)
	if err = repo.Update(ctx, hu); err != nil {
		return false, err
	}

	return false, uow.Commit(ctx)
}
