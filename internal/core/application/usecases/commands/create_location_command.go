package commands

import (
	"errors"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/location"
	"warehouse/internal/pkg/guard"
)

var ErrCreateLocationCommandIsNotConstructed = errors.New(
	"CreateLocationCommand must be created via NewCreateLocationCommand constructor",
)

// CreateLocationCommand represents a request to register a new storage location.
// A new location starts with error status NONE, LTOS NO and lock UNLOCKED.
//
// Example:
//
//	id, _ := kernel.NewID("A-01-01")
//	dim, _ := location.NewDimension(4, 1000, kernel.HeightMiddle, kernel.LengthNotRelevant, kernel.WidthNotRelevant)
//	cmd, err := NewCreateLocationCommand(id, location.FIFO, dim, "operator")
//	if err != nil {
//	    return fmt.Errorf("invalid location data: %w", err)
//	}
//
//	handler := NewCreateLocationCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create location: %w", err)
//	}
type CreateLocationCommand struct { //nolint:recvcheck //using for validation
	locationID kernel.ID
	accessKind location.AccessKind
	dimension  location.Dimension
	user       string

	guard guard.ConstructorGuard
}

// NewCreateLocationCommand creates a command to register a location.
// Validates the id and the access kind. A zero dimension means the location is unlimited.
func NewCreateLocationCommand(
	locationID kernel.ID,
	accessKind location.AccessKind,
	dimension location.Dimension,
	user string,
) (CreateLocationCommand, error) {
	command := CreateLocationCommand{
		dimension: dimension,
		user:      user,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setLocationID(locationID),
		command.setAccessKind(accessKind),
	); err != nil {
		return CreateLocationCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateLocationCommand) Validate() error {
	return c.guard.Validate(ErrCreateLocationCommandIsNotConstructed)
}

func (c CreateLocationCommand) LocationID() kernel.ID {
	return c.locationID
}

func (c CreateLocationCommand) AccessKind() location.AccessKind {
	return c.accessKind
}

func (c CreateLocationCommand) Dimension() location.Dimension {
	return c.dimension
}

func (c CreateLocationCommand) User() string {
	return c.user
}

func (c *CreateLocationCommand) setLocationID(id kernel.ID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.locationID = id
	return nil
}

func (c *CreateLocationCommand) setAccessKind(kind location.AccessKind) error {
	if err := kind.Validate(); err != nil {
		return err
	}

	c.accessKind = kind
	return nil
}
