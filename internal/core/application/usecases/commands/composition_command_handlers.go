package commands

import (
	"context"
	"time"

	"warehouse/internal/core/domain/model/handlingunit"
	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/services"
	"warehouse/internal/core/ports"
)

// compositionStep runs one composition manager operation on a loaded child and base.
type compositionStep func(
	manager services.CompositionManager,
	unit, base *handlingunit.HandlingUnit,
) (services.Outcome, error)

// runComposition loads both ends of an edge, applies step and writes its outcome in one
// transaction. Composition never touches locations.
func runComposition(
	ctx context.Context,
	uowFactory HandlingUnitUoWFactory,
	edge compositionEdge,
	step compositionStep,
) (unit, base *handlingunit.HandlingUnit, err error) {
	uow := uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.HandlingUnitRepository()
	if unit, err = repo.Get(ctx, edge.HandlingUnitID()); err != nil {
		return nil, nil, err
	}
	if base, err = repo.Get(ctx, edge.BaseID()); err != nil {
		return nil, nil, err
	}

	outcome, err := step(services.NewCompositionManager(lookupIn(ctx, repo)), unit, base)
	if err != nil {
		return nil, nil, err
	}

	if err = writeCompositionOutcome(ctx, repo, outcome, edge.User()); err != nil {
		return nil, nil, err
	}

	return unit, base, uow.Commit(ctx)
}

func writeCompositionOutcome(
	ctx context.Context,
	repo ports.HandlingUnitRepository,
	outcome services.Outcome,
	user string,
) error {
	return writeUnits(ctx, repo, outcome.HandlingUnits, kernel.NewAudit(user, time.Time{}))
}

// AssignCommandHandler makes a unit a direct child of a base. Fails with
// services.ErrCompositionCycle when the base is inside the unit.
type AssignCommandHandler struct {
	uowFactory HandlingUnitUoWFactory
}

func NewAssignCommandHandler(uowFactory HandlingUnitUoWFactory) AssignCommandHandler {
	return AssignCommandHandler{uowFactory: uowFactory}
}

// Handle returns the base after the assignment.
func (h AssignCommandHandler) Handle(ctx context.Context, command AssignCommand) (*handlingunit.HandlingUnit, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	_, base, err := runComposition(ctx, h.uowFactory, command.compositionEdge, services.CompositionManager.Assign)
	return base, err
}

// RemoveCommandHandler deletes a composition edge. Fails with
// services.ErrHandlingUnitNotInBase when the unit is not a direct child of the base.
type RemoveCommandHandler struct {
	uowFactory HandlingUnitUoWFactory
}

func NewRemoveCommandHandler(uowFactory HandlingUnitUoWFactory) RemoveCommandHandler {
	return RemoveCommandHandler{uowFactory: uowFactory}
}

// Handle returns the base after the removal.
func (h RemoveCommandHandler) Handle(ctx context.Context, command RemoveCommand) (*handlingunit.HandlingUnit, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	_, base, err := runComposition(ctx, h.uowFactory, command.compositionEdge, services.CompositionManager.Remove)
	return base, err
}

type MoveCommandHandler struct {
	uowFactory HandlingUnitUoWFactory
}

func NewMoveCommandHandler(uowFactory HandlingUnitUoWFactory) MoveCommandHandler {
	return MoveCommandHandler{uowFactory: uowFactory}
}

// Handle returns the moved unit. The old base, the new base and the unit are written
// together.
func (h MoveCommandHandler) Handle(ctx context.Context, command MoveCommand) (*handlingunit.HandlingUnit, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	unit, _, err := runComposition(ctx, h.uowFactory, command.compositionEdge, services.CompositionManager.Move)
	return unit, err
}

type FreeCommandHandler struct {
	uowFactory HandlingUnitUoWFactory
}

func NewFreeCommandHandler(uowFactory HandlingUnitUoWFactory) FreeCommandHandler {
	return FreeCommandHandler{uowFactory: uowFactory}
}

// Handle returns the ids of the former direct children, ordered by id.
func (h FreeCommandHandler) Handle(ctx context.Context, command FreeCommand) ([]kernel.ID, error) {
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

	repo := uow.HandlingUnitRepository()
	base, err := repo.Get(ctx, command.BaseID())
	if err != nil {
		return nil, err
	}

	outcome, freed, err := services.NewCompositionManager(lookupIn(ctx, repo)).Free(base)
	if err != nil {
		return nil, err
	}

	if err = writeCompositionOutcome(ctx, repo, outcome, command.User()); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return freed, nil
}
