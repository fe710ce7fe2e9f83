package commands

import (
	"errors"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/guard"
)

var ErrCreateOrUpdateHandlingUnitCommandIsNotConstructed = errors.New(
	"CreateOrUpdateHandlingUnitCommand must be created via NewCreateOrUpdateHandlingUnitCommand constructor",
)

// CreateOrUpdateHandlingUnitCommand registers a unit or replaces the measures of an existing
// one. Placement and composition of an existing unit are kept.
type CreateOrUpdateHandlingUnitCommand struct { //nolint:recvcheck //using for validation
	handlingUnitID kernel.ID
	measures       HandlingUnitMeasures
	user           string

	guard guard.ConstructorGuard
}

func NewCreateOrUpdateHandlingUnitCommand(
	handlingUnitID kernel.ID,
	measures HandlingUnitMeasures,
	user string,
) (CreateOrUpdateHandlingUnitCommand, error) {
	if err := errors.Join(handlingUnitID.Validate(), measures.Validate()); err != nil {
		return CreateOrUpdateHandlingUnitCommand{}, err
	}

	return CreateOrUpdateHandlingUnitCommand{
		handlingUnitID: handlingUnitID,
		measures:       measures,
		user:           user,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrUpdateHandlingUnitCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrUpdateHandlingUnitCommandIsNotConstructed)
}

func (c CreateOrUpdateHandlingUnitCommand) HandlingUnitID() kernel.ID {
	return c.handlingUnitID
}

func (c CreateOrUpdateHandlingUnitCommand) Measures() HandlingUnitMeasures {
	return c.measures
}

func (c CreateOrUpdateHandlingUnitCommand) User() string {
	return c.user
}
