package commands

import (
	"errors"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/guard"
)

var ErrDropCommandIsNotConstructed = errors.New("DropCommand must be created via NewDropCommand constructor")

// DropCommand reports that a handling unit was physically put onto a location.
//
// Example:
//
//	cmd, err := NewDropCommand(locationID, handlingUnitID, "forklift-7")
//	if err != nil {
//	    return err
//	}
//	err = handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, location.ErrDimensionExceeded):
//	    // the unit does not fit, nothing changed
//	case errors.Is(err, errs.ErrConcurrentModification):
//	    // someone else changed the location or the unit, re-read and retry
//	}
type DropCommand struct { //nolint:recvcheck //using for validation
	locationID     kernel.ID
	handlingUnitID kernel.ID
	user           string

	guard guard.ConstructorGuard
}

func NewDropCommand(locationID, handlingUnitID kernel.ID, user string) (DropCommand, error) {
	if err := errors.Join(locationID.Validate(), handlingUnitID.Validate()); err != nil {
		return DropCommand{}, err
	}

	return DropCommand{
		locationID:     locationID,
		handlingUnitID: handlingUnitID,
		user:           user,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c DropCommand) Validate() error {
	return c.guard.Validate(ErrDropCommandIsNotConstructed)
}

func (c DropCommand) LocationID() kernel.ID {
	return c.locationID
}

func (c DropCommand) HandlingUnitID() kernel.ID {
	return c.handlingUnitID
}

func (c DropCommand) User() string {
	return c.user
}
