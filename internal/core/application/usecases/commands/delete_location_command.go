package commands

import (
	"errors"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/guard"
)

var ErrDeleteLocationCommandIsNotConstructed = errors.New(
	"DeleteLocationCommand must be created via NewDeleteLocationCommand constructor",
)

// DeleteLocationCommand removes a location. Units still placed on it become unplaced.
type DeleteLocationCommand struct { //nolint:recvcheck //using for validation
	locationID kernel.ID
	user       string

	guard guard.ConstructorGuard
}

func NewDeleteLocationCommand(locationID kernel.ID, user string) (DeleteLocationCommand, error) {
	if err := locationID.Validate(); err != nil {
		return DeleteLocationCommand{}, err
	}

	return DeleteLocationCommand{
		locationID: locationID,
		user:       user,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c DeleteLocationCommand) Validate() error {
	return c.guard.Validate(ErrDeleteLocationCommandIsNotConstructed)
}

func (c DeleteLocationCommand) LocationID() kernel.ID {
	return c.locationID
}

func (c DeleteLocationCommand) User() string {
	return c.user
}
