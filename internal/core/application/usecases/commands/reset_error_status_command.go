package commands

import (
	"errors"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/guard"
)

var ErrResetErrorStatusCommandIsNotConstructed = errors.New(
	"ResetErrorStatusCommand must be created via NewResetErrorStatusCommand constructor",
)

// ResetErrorStatusCommand clears the ERROR flag of a location after an operator checked it.
//
// Example:
//
//	cmd, err := NewResetErrorStatusCommand(locationID, "inventory-team")
//	if err != nil {
//	    return err
//	}
//	changed, err := handler.Handle(ctx, cmd)
type ResetErrorStatusCommand struct { //nolint:recvcheck //using for validation
	locationID kernel.ID
	user       string

	guard guard.ConstructorGuard
}

func NewResetErrorStatusCommand(locationID kernel.ID, user string) (ResetErrorStatusCommand, error) {
	if err := locationID.Validate(); err != nil {
		return ResetErrorStatusCommand{}, err
	}

	return ResetErrorStatusCommand{
		locationID: locationID,
		user:       user,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ResetErrorStatusCommand) Validate() error {
	return c.guard.Validate(ErrResetErrorStatusCommandIsNotConstructed)
}

func (c ResetErrorStatusCommand) LocationID() kernel.ID {
	return c.locationID
}

func (c ResetErrorStatusCommand) User() string {
	return c.user
}
