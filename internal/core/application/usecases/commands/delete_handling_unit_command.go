package commands

import (
	"errors"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/guard"
)

var ErrDeleteHandlingUnitCommandIsNotConstructed = errors.New(
	"DeleteHandlingUnitCommand must be created via NewDeleteHandlingUnitCommand constructor",
)

// DeleteHandlingUnitCommand removes a handling unit from the warehouse records.
type DeleteHandlingUnitCommand struct { //nolint:recvcheck //using for validation
	handlingUnitID kernel.ID
	user           string

	guard guard.ConstructorGuard
}

func NewDeleteHandlingUnitCommand(handlingUnitID kernel.ID, user string) (DeleteHandlingUnitCommand, error) {
	if err := handlingUnitID.Validate(); err != nil {
		return DeleteHandlingUnitCommand{}, err
	}

	return DeleteHandlingUnitCommand{
		handlingUnitID: handlingUnitID,
		user:           user,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c DeleteHandlingUnitCommand) Validate() error {
	return c.guard.Validate(ErrDeleteHandlingUnitCommandIsNotConstructed)
}

func (c DeleteHandlingUnitCommand) HandlingUnitID() kernel.ID {
	return c.handlingUnitID
}

func (c DeleteHandlingUnitCommand) User() string {
	return c.user
}
