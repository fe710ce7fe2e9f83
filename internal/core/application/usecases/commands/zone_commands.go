package commands

import (
	"errors"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/guard"
)

var (
	ErrCreateOrUpdateZoneCommandIsNotConstructed = errors.New(
		"CreateOrUpdateZoneCommand must be created via NewCreateOrUpdateZoneCommand constructor",
	)
	ErrDeleteZoneCommandIsNotConstructed = errors.New(
		"DeleteZoneCommand must be created via NewDeleteZoneCommand constructor",
	)
	ErrAddLocationToZoneCommandIsNotConstructed = errors.New(
		"AddLocationToZoneCommand must be created via NewAddLocationToZoneCommand constructor",
	)
	ErrMoveLocationToZoneCommandIsNotConstructed = errors.New(
		"MoveLocationToZoneCommand must be created via NewMoveLocationToZoneCommand constructor",
	)
	ErrInitZoneCommandIsNotConstructed = errors.New(
		"InitZoneCommand must be created via NewInitZoneCommand constructor",
	)
	ErrClearZoneCommandIsNotConstructed = errors.New(
		"ClearZoneCommand must be created via NewClearZoneCommand constructor",
	)
	ErrClearAllZonesCommandIsNotConstructed = errors.New(
		"ClearAllZonesCommand must be created via NewClearAllZonesCommand constructor",
	)
)

// CreateOrUpdateZoneCommand registers a zone or changes the rating of an existing one.
// Membership is never touched by it.
//
// Example:
//
//	id, _ := kernel.NewID("Cooler")
//	cmd, err := NewCreateOrUpdateZoneCommand(id, 5, "operator")
//	if err != nil {
//	    return err
//	}
//	created, err := handler.Handle(ctx, cmd)
type CreateOrUpdateZoneCommand struct { //nolint:recvcheck //using for validation
	zoneID kernel.ID
	rating int
	user   string

	guard guard.ConstructorGuard
}

func NewCreateOrUpdateZoneCommand(zoneID kernel.ID, rating int, user string) (CreateOrUpdateZoneCommand, error) {
	if err := zoneID.Validate(); err != nil {
		return CreateOrUpdateZoneCommand{}, err
	}
	return CreateOrUpdateZoneCommand{
		zoneID: zoneID,
		rating: rating,
		user:   user,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrUpdateZoneCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrUpdateZoneCommandIsNotConstructed)
}

func (c CreateOrUpdateZoneCommand) ZoneID() kernel.ID {
	return c.zoneID
}

func (c CreateOrUpdateZoneCommand) Rating() int {
	return c.rating
}

func (c CreateOrUpdateZoneCommand) User() string {
	return c.user
}

// DeleteZoneCommand removes a zone. Its locations stay.
type DeleteZoneCommand struct { //nolint:recvcheck //using for validation
	zoneID kernel.ID
	user   string

	guard guard.ConstructorGuard
}

func NewDeleteZoneCommand(zoneID kernel.ID, user string) (DeleteZoneCommand, error) {
	if err := zoneID.Validate(); err != nil {
		return DeleteZoneCommand{}, err
	}
	return DeleteZoneCommand{zoneID: zoneID, user: user, guard: guard.NewConstructorGuard()}, nil
}

func (c DeleteZoneCommand) Validate() error {
	return c.guard.Validate(ErrDeleteZoneCommandIsNotConstructed)
}

func (c DeleteZoneCommand) ZoneID() kernel.ID {
	return c.zoneID
}

func (c DeleteZoneCommand) User() string {
	return c.user
}

// zoneMembership names a location and the zone it should end up in.
type zoneMembership struct {
	zoneID     kernel.ID
	locationID kernel.ID
	user       string
}

func newZoneMembership(zoneID, locationID kernel.ID, user string) (zoneMembership, error) {
	if err := errors.Join(zoneID.Validate(), locationID.Validate()); err != nil {
		return zoneMembership{}, err
	}
	return zoneMembership{zoneID: zoneID, locationID: locationID, user: user}, nil
}

func (m zoneMembership) ZoneID() kernel.ID {
	return m.zoneID
}

func (m zoneMembership) LocationID() kernel.ID {
	return m.locationID
}

func (m zoneMembership) User() string {
	return m.user
}

// AddLocationToZoneCommand makes a location a member of one more zone.
type AddLocationToZoneCommand struct { //nolint:recvcheck //using for validation
	zoneMembership

	guard guard.ConstructorGuard
}

func NewAddLocationToZoneCommand(zoneID, locationID kernel.ID, user string) (AddLocationToZoneCommand, error) {
	m, err := newZoneMembership(zoneID, locationID, user)
	if err != nil {
		return AddLocationToZoneCommand{}, err
	}
	return AddLocationToZoneCommand{zoneMembership: m, guard: guard.NewConstructorGuard()}, nil
}

func (c AddLocationToZoneCommand) Validate() error {
	return c.guard.Validate(ErrAddLocationToZoneCommandIsNotConstructed)
}

// MoveLocationToZoneCommand makes the target zone the only zone of a location.
type MoveLocationToZoneCommand struct { //nolint:recvcheck //using for validation
	zoneMembership

	guard guard.ConstructorGuard
}

func NewMoveLocationToZoneCommand(zoneID, locationID kernel.ID, user string) (MoveLocationToZoneCommand, error) {
	m, err := newZoneMembership(zoneID, locationID, user)
	if err != nil {
		return MoveLocationToZoneCommand{}, err
	}
	return MoveLocationToZoneCommand{zoneMembership: m, guard: guard.NewConstructorGuard()}, nil
}

func (c MoveLocationToZoneCommand) Validate() error {
	return c.guard.Validate(ErrMoveLocationToZoneCommandIsNotConstructed)
}

// InitZoneCommand sets the members of a zone to exactly the given locations and takes each
// of them out of every other zone.
type InitZoneCommand struct { //nolint:recvcheck //using for validation
	zoneID      kernel.ID
	locationIDs []kernel.ID
	user        string

	guard guard.ConstructorGuard
}

func NewInitZoneCommand(zoneID kernel.ID, locationIDs []kernel.ID, user string) (InitZoneCommand, error) {
	errList := []error{zoneID.Validate()}
	for _, id := range locationIDs {
		errList = append(errList, id.Validate())
	}
	if err := errors.Join(errList...); err != nil {
		return InitZoneCommand{}, err
	}
	return InitZoneCommand{
		zoneID:      zoneID,
		locationIDs: append([]kernel.ID(nil), locationIDs...),
		user:        user,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c InitZoneCommand) Validate() error {
	return c.guard.Validate(ErrInitZoneCommandIsNotConstructed)
}

func (c InitZoneCommand) ZoneID() kernel.ID {
	return c.zoneID
}

func (c InitZoneCommand) LocationIDs() []kernel.ID {
	return append([]kernel.ID(nil), c.locationIDs...)
}

func (c InitZoneCommand) User() string {
	return c.user
}

// ClearZoneCommand removes every member of one zone.
type ClearZoneCommand struct { //nolint:recvcheck //using for validation
	zoneID kernel.ID
	user   string

	guard guard.ConstructorGuard
}

func NewClearZoneCommand(zoneID kernel.ID, user string) (ClearZoneCommand, error) {
	if err := zoneID.Validate(); err != nil {
		return ClearZoneCommand{}, err
	}
	return ClearZoneCommand{zoneID: zoneID, user: user, guard: guard.NewConstructorGuard()}, nil
}

func (c ClearZoneCommand) Validate() error {
	return c.guard.Validate(ErrClearZoneCommandIsNotConstructed)
}

func (c ClearZoneCommand) ZoneID() kernel.ID {
	return c.zoneID
}

func (c ClearZoneCommand) User() string {
	return c.user
}

// ClearAllZonesCommand removes every member of every zone. The zones themselves stay.
type ClearAllZonesCommand struct { //nolint:recvcheck //using for validation
	user string

	guard guard.ConstructorGuard
}

func NewClearAllZonesCommand(user string) ClearAllZonesCommand {
	return ClearAllZonesCommand{user: user, guard: guard.NewConstructorGuard()}
}

func (c ClearAllZonesCommand) Validate() error {
	return c.guard.Validate(ErrClearAllZonesCommandIsNotConstructed)
}

func (c ClearAllZonesCommand) User() string {
	return c.user
}
