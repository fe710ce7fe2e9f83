package commands

import (
	"errors"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/guard"
)

var (
	ErrAssignCommandIsNotConstructed = errors.New("AssignCommand must be created via NewAssignCommand constructor")
	ErrRemoveCommandIsNotConstructed = errors.New("RemoveCommand must be created via NewRemoveCommand constructor")
	ErrMoveCommandIsNotConstructed   = errors.New("MoveCommand must be created via NewMoveCommand constructor")
	ErrFreeCommandIsNotConstructed   = errors.New("FreeCommand must be created via NewFreeCommand constructor")
)

// compositionEdge names a child and its (future or former) base.
type compositionEdge struct {
	handlingUnitID kernel.ID
	baseID         kernel.ID
	user           string
}

func newCompositionEdge(handlingUnitID, baseID kernel.ID, user string) (compositionEdge, error) {
	if err := errors.Join(handlingUnitID.Validate(), baseID.Validate()); err != nil {
		return compositionEdge{}, err
	}

	return compositionEdge{handlingUnitID: handlingUnitID, baseID: baseID, user: user}, nil
}

func (e compositionEdge) HandlingUnitID() kernel.ID {
	return e.handlingUnitID
}

func (e compositionEdge) BaseID() kernel.ID {
	return e.baseID
}

func (e compositionEdge) User() string {
	return e.user
}

// AssignCommand puts a handling unit into a base unit.
//
// Example:
//
//	cmd, err := NewAssignCommand(cartonID, palletID, "packing")
//	if err != nil {
//	    return err
//	}
//	pallet, err := handler.Handle(ctx, cmd)
type AssignCommand struct { //nolint:recvcheck //using for validation
	compositionEdge

	guard guard.ConstructorGuard
}

func NewAssignCommand(handlingUnitID, baseID kernel.ID, user string) (AssignCommand, error) {
	edge, err := newCompositionEdge(handlingUnitID, baseID, user)
	if err != nil {
		return AssignCommand{}, err
	}

	return AssignCommand{compositionEdge: edge, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignCommand) Validate() error {
	return c.guard.Validate(ErrAssignCommandIsNotConstructed)
}

// RemoveCommand takes a handling unit out of its base unit.
type RemoveCommand struct { //nolint:recvcheck //using for validation
	compositionEdge

	guard guard.ConstructorGuard
}

func NewRemoveCommand(handlingUnitID, baseID kernel.ID, user string) (RemoveCommand, error) {
	edge, err := newCompositionEdge(handlingUnitID, baseID, user)
	if err != nil {
		return RemoveCommand{}, err
	}

	return RemoveCommand{compositionEdge: edge, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the command was created through the constructor.
func (c RemoveCommand) Validate() error {
	return c.guard.Validate(ErrRemoveCommandIsNotConstructed)
}

// MoveCommand re-parents a handling unit under a new base in one step.
type MoveCommand struct { //nolint:recvcheck //using for validation
	compositionEdge

	guard guard.ConstructorGuard
}

func NewMoveCommand(handlingUnitID, newBaseID kernel.ID, user string) (MoveCommand, error) {
	edge, err := newCompositionEdge(handlingUnitID, newBaseID, user)
	if err != nil {
		return MoveCommand{}, err
	}

	return MoveCommand{compositionEdge: edge, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the command was created through the constructor.
func (c MoveCommand) Validate() error {
	return c.guard.Validate(ErrMoveCommandIsNotConstructed)
}

// FreeCommand empties a base unit. Its direct children become roots.
type FreeCommand struct { //nolint:recvcheck //using for validation
	baseID kernel.ID
	user   string

	guard guard.ConstructorGuard
}

func NewFreeCommand(baseID kernel.ID, user string) (FreeCommand, error) {
	if err := baseID.Validate(); err != nil {
		return FreeCommand{}, err
	}

	return FreeCommand{baseID: baseID, user: user, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the command was created through the constructor.
func (c FreeCommand) Validate() error {
	return c.guard.Validate(ErrFreeCommandIsNotConstructed)
}

func (c FreeCommand) BaseID() kernel.ID {
	return c.baseID
}

func (c FreeCommand) User() string {
	return c.user
}
