package commands

import (
	"errors"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/guard"
)

var ErrCreateHandlingUnitCommandIsNotConstructed = errors.New(
	"CreateHandlingUnitCommand must be created via NewCreateHandlingUnitCommand constructor",
)

// CreateHandlingUnitCommand registers a new, unplaced handling unit without composition.
//
// Example:
//
//	id, _ := kernel.NewID("PAL-0001")
//	cmd, err := NewCreateHandlingUnitCommand(id, HandlingUnitMeasures{
//	    Weight: 250,
//	    Volume: 1.2,
//	    Height: kernel.HeightMiddle,
//	    Length: kernel.LengthNotRelevant,
//	    Width:  kernel.WidthNotRelevant,
//	}, "receiving")
type CreateHandlingUnitCommand struct { //nolint:recvcheck //using for validation
	handlingUnitID kernel.ID
	measures       HandlingUnitMeasures
	user           string

	guard guard.ConstructorGuard
}

// NewCreateHandlingUnitCommand validates the id and the measures.
func NewCreateHandlingUnitCommand(
	handlingUnitID kernel.ID,
	measures HandlingUnitMeasures,
	user string,
) (CreateHandlingUnitCommand, error) {
	if err := errors.Join(handlingUnitID.Validate(), measures.Validate()); err != nil {
		return CreateHandlingUnitCommand{}, err
	}

	return CreateHandlingUnitCommand{
		handlingUnitID: handlingUnitID,
		measures:       measures,
		user:           user,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateHandlingUnitCommand) Validate() error {
	return c.guard.Validate(ErrCreateHandlingUnitCommandIsNotConstructed)
}

func (c CreateHandlingUnitCommand) HandlingUnitID() kernel.ID {
	return c.handlingUnitID
}

func (c CreateHandlingUnitCommand) Measures() HandlingUnitMeasures {
	return c.measures
}

func (c CreateHandlingUnitCommand) User() string {
	return c.user
}
