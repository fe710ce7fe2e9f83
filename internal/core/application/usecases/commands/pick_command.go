package commands

import (
	"errors"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/guard"
)

var ErrPickCommandIsNotConstructed = errors.New("PickCommand must be created via NewPickCommand constructor")

// PickCommand reports that a handling unit was taken off a location. Without a unit id the
// location's access policy selects the unit.
type PickCommand struct { //nolint:recvcheck //using for validation
	locationID     kernel.ID
	handlingUnitID *kernel.ID
	user           string

	guard guard.ConstructorGuard
}

// NewPickCommand creates a targeted pick when handlingUnitID is not nil and a policy pick
// otherwise.
func NewPickCommand(locationID kernel.ID, handlingUnitID *kernel.ID, user string) (PickCommand, error) {
	command := PickCommand{
		user:  user,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setLocationID(locationID),
		command.setHandlingUnitID(handlingUnitID),
	); err != nil {
		return PickCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c PickCommand) Validate() error {
	return c.guard.Validate(ErrPickCommandIsNotConstructed)
}

func (c PickCommand) LocationID() kernel.ID {
	return c.locationID
}

// HandlingUnitID returns nil for a policy pick.
func (c PickCommand) HandlingUnitID() *kernel.ID {
	if c.handlingUnitID == nil {
		return nil
	}
	id := *c.handlingUnitID
	return &id
}

func (c PickCommand) IsTargeted() bool {
	return c.handlingUnitID != nil
}

func (c PickCommand) User() string {
	return c.user
}

func (c *PickCommand) setLocationID(id kernel.ID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.locationID = id
	return nil
}

func (c *PickCommand) setHandlingUnitID(id *kernel.ID) error {
	if id == nil {
		return nil
	}
	if err := id.Validate(); err != nil {
		return err
	}

	copied := *id
	c.handlingUnitID = &copied
	return nil
}
