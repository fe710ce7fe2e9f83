package commands

import (
	"errors"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/location"
	"warehouse/internal/pkg/guard"
)

var ErrUpdateLocationStatusCommandIsNotConstructed = errors.New(
	"UpdateLocationStatusCommand must be created via NewUpdateLocationStatusCommand constructor",
)

// UpdateLocationStatusCommand sets the LTOS and lock components of a location status.
// The error component is owned by the drop/pick protocol and by ResetErrorStatusCommand.
type UpdateLocationStatusCommand struct { //nolint:recvcheck //using for validation
	locationID kernel.ID
	ltos       location.LtosStatus
	lock       location.LockStatus
	user       string

	guard guard.ConstructorGuard
}

func NewUpdateLocationStatusCommand(
	locationID kernel.ID,
	ltos location.LtosStatus,
	lock location.LockStatus,
	user string,
) (UpdateLocationStatusCommand, error) {
	if err := errors.Join(locationID.Validate(), ltos.Validate(), lock.Validate()); err != nil {
		return UpdateLocationStatusCommand{}, err
	}

	return UpdateLocationStatusCommand{
		locationID: locationID,
		ltos:       ltos,
		lock:       lock,
		user:       user,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateLocationStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateLocationStatusCommandIsNotConstructed)
}

func (c UpdateLocationStatusCommand) LocationID() kernel.ID {
	return c.locationID
}

func (c UpdateLocationStatusCommand) Ltos() location.LtosStatus {
	return c.ltos
}

func (c UpdateLocationStatusCommand) Lock() location.LockStatus {
	return c.lock
}

func (c UpdateLocationStatusCommand) User() string {
	return c.user
}
