package commands

import (
	"context"
	"errors"
	"slices"
	"time"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/zone"
	"warehouse/internal/core/ports"
	"warehouse/internal/pkg/errs"
)

// inZoneTx runs apply in one zone transaction and commits when it succeeds.
func inZoneTx(ctx context.Context, uowFactory ZoneUoWFactory, apply func(uow ZoneUoW) error) error {
	uow := uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := apply(uow); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// zoneBatch collects the zones an operation changed so that each is written once.
type zoneBatch struct {
	zones []*zone.Zone
}

func (b *zoneBatch) add(z *zone.Zone) {
	if !slices.Contains(b.zones, z) {
		b.zones = append(b.zones, z)
	}
}

func (b *zoneBatch) write(ctx context.Context, repo ports.ZoneRepository, user string) error {
	audit := kernel.NewAudit(user, time.Time{})
	for _, z := range b.zones {
		z.Touch(audit)
		if err := repo.Update(ctx, z); err != nil {
			return err
		}
	}
	return nil
}

// leaveOtherZones takes a location out of every zone except keep.
func leaveOtherZones(
	ctx context.Context,
	repo ports.ZoneRepository,
	locationID, keep kernel.ID,
	batch *zoneBatch,
) error {
	containing, err := repo.GetAllContaining(ctx, locationID)
	if err != nil {
		return err
	}
	for _, z := range containing {
		if z.ID().IsEqual(keep) {
			continue
		}
		if z.Remove(locationID) {
			batch.add(z)
		}
	}
	return nil
}

// CreateOrUpdateZoneCommandHandler upserts a zone by id.
type CreateOrUpdateZoneCommandHandler struct {
	uowFactory ZoneUoWFactory
}

func NewCreateOrUpdateZoneCommandHandler(uowFactory ZoneUoWFactory) CreateOrUpdateZoneCommandHandler {
	return CreateOrUpdateZoneCommandHandler{uowFactory: uowFactory}
}

// Handle reports whether the zone was created. Updating an existing zone with its current
// rating writes nothing.
func (h CreateOrUpdateZoneCommandHandler) Handle(ctx context.Context, command CreateOrUpdateZoneCommand) (bool, error) {
	if err := command.Validate(); err != nil {
		return false, err
	}

	var created bool
	err := inZoneTx(ctx, h.uowFactory, func(uow ZoneUoW) error {
		repo := uow.ZoneRepository()
		audit := kernel.NewAudit(command.User(), time.Time{})

		existing, err := repo.Get(ctx, command.ZoneID())
		switch {
		case errors.Is(err, errs.ErrObjectNotFound):
			fresh, newErr := zone.NewZone(command.ZoneID(), command.Rating())
			if newErr != nil {
				return newErr
			}
			fresh.Touch(audit)
			created = true
			return repo.Add(ctx, fresh)
		case err != nil:
			return err
		}

		if !existing.ChangeRating(command.Rating()) {
			return nil
		}
		existing.Touch(audit)
		return repo.Update(ctx, existing)
	})
	if err != nil {
		return false, err
	}
	return created, nil
}

type DeleteZoneCommandHandler struct {
	uowFactory ZoneUoWFactory
}

func NewDeleteZoneCommandHandler(uowFactory ZoneUoWFactory) DeleteZoneCommandHandler {
	return DeleteZoneCommandHandler{uowFactory: uowFactory}
}

// Handle returns errs.ErrObjectNotFound when the zone does not exist.
func (h DeleteZoneCommandHandler) Handle(ctx context.Context, command DeleteZoneCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	return inZoneTx(ctx, h.uowFactory, func(uow ZoneUoW) error {
		repo := uow.ZoneRepository()
		z, err := repo.Get(ctx, command.ZoneID())
		if err != nil {
			return err
		}
		return repo.Delete(ctx, z)
	})
}

type AddLocationToZoneCommandHandler struct {
	uowFactory ZoneUoWFactory
}

func NewAddLocationToZoneCommandHandler(uowFactory ZoneUoWFactory) AddLocationToZoneCommandHandler {
	return AddLocationToZoneCommandHandler{uowFactory: uowFactory}
}

// Handle returns the zone after the addition. Adding a member twice is a no-op.
func (h AddLocationToZoneCommandHandler) Handle(ctx context.Context, command AddLocationToZoneCommand) (*zone.Zone, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	var target *zone.Zone
	err := inZoneTx(ctx, h.uowFactory, func(uow ZoneUoW) error {
		repo := uow.ZoneRepository()
		z, err := repo.Get(ctx, command.ZoneID())
		if err != nil {
			return err
		}
		if _, err = uow.LocationRepository().Get(ctx, command.LocationID()); err != nil {
			return err
		}

		target = z
		added, err := z.Add(command.LocationID())
		if err != nil || !added {
			return err
		}
		z.Touch(kernel.NewAudit(command.User(), time.Time{}))
		return repo.Update(ctx, z)
	})
	if err != nil {
		return nil, err
	}
	return target, nil
}

type MoveLocationToZoneCommandHandler struct {
	uowFactory ZoneUoWFactory
}

func NewMoveLocationToZoneCommandHandler(uowFactory ZoneUoWFactory) MoveLocationToZoneCommandHandler {
	return MoveLocationToZoneCommandHandler{uowFactory: uowFactory}
}

// Handle returns the target zone. Every zone the location leaves is written in the same
// transaction.
func (h MoveLocationToZoneCommandHandler) Handle(
	ctx context.Context,
	command MoveLocationToZoneCommand,
) (*zone.Zone, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	var target *zone.Zone
	err := inZoneTx(ctx, h.uowFactory, func(uow ZoneUoW) error {
		repo := uow.ZoneRepository()
		z, err := repo.Get(ctx, command.ZoneID())
		if err != nil {
			return err
		}
		if _, err = uow.LocationRepository().Get(ctx, command.LocationID()); err != nil {
			return err
		}

		var batch zoneBatch
		if err = leaveOtherZones(ctx, repo, command.LocationID(), z.ID(), &batch); err != nil {
			return err
		}
		added, err := z.Add(command.LocationID())
		if err != nil {
			return err
		}
		if added {
			batch.add(z)
		}

		target = z
		return batch.write(ctx, repo, command.User())
	})
	if err != nil {
		return nil, err
	}
	return target, nil
}

// InitZoneCommandHandler replaces the membership of a zone. The given locations leave every
// other zone, so afterwards each of them belongs to this zone only.
type InitZoneCommandHandler struct {
	uowFactory ZoneUoWFactory
}

func NewInitZoneCommandHandler(uowFactory ZoneUoWFactory) InitZoneCommandHandler {
	return InitZoneCommandHandler{uowFactory: uowFactory}
}

func (h InitZoneCommandHandler) Handle(ctx context.Context, command InitZoneCommand) (*zone.Zone, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	var target *zone.Zone
	err := inZoneTx(ctx, h.uowFactory, func(uow ZoneUoW) error {
		repo := uow.ZoneRepository()
		z, err := repo.Get(ctx, command.ZoneID())
		if err != nil {
			return err
		}

		var batch zoneBatch
		for _, locationID := range command.LocationIDs() {
			if _, err = uow.LocationRepository().Get(ctx, locationID); err != nil {
				return err
			}
			if err = leaveOtherZones(ctx, repo, locationID, z.ID(), &batch); err != nil {
				return err
			}
		}

		if err = z.Replace(command.LocationIDs()); err != nil {
			return err
		}
		batch.add(z)

		target = z
		return batch.write(ctx, repo, command.User())
	})
	if err != nil {
		return nil, err
	}
	return target, nil
}

type ClearZoneCommandHandler struct {
	uowFactory ZoneUoWFactory
}

func NewClearZoneCommandHandler(uowFactory ZoneUoWFactory) ClearZoneCommandHandler {
	return ClearZoneCommandHandler{uowFactory: uowFactory}
}

// Handle returns the emptied zone. The former member locations are left untouched.
func (h ClearZoneCommandHandler) Handle(ctx context.Context, command ClearZoneCommand) (*zone.Zone, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	var target *zone.Zone
	err := inZoneTx(ctx, h.uowFactory, func(uow ZoneUoW) error {
		repo := uow.ZoneRepository()
		z, err := repo.Get(ctx, command.ZoneID())
		if err != nil {
			return err
		}

		target = z
		if !z.Clear() {
			return nil
		}
		z.Touch(kernel.NewAudit(command.User(), time.Time{}))
		return repo.Update(ctx, z)
	})
	if err != nil {
		return nil, err
	}
	return target, nil
}

type ClearAllZonesCommandHandler struct {
	uowFactory ZoneUoWFactory
}

func NewClearAllZonesCommandHandler(uowFactory ZoneUoWFactory) ClearAllZonesCommandHandler {
	return ClearAllZonesCommandHandler{uowFactory: uowFactory}
}

// Handle returns the number of zones that had members.
func (h ClearAllZonesCommandHandler) Handle(ctx context.Context, command ClearAllZonesCommand) (int, error) {
	if err := command.Validate(); err != nil {
		return 0, err
	}

	var cleared int
	err := inZoneTx(ctx, h.uowFactory, func(uow ZoneUoW) error {
		repo := uow.ZoneRepository()
		all, err := repo.GetAll(ctx, 0, 0)
		if err != nil {
			return err
		}

		var batch zoneBatch
		for _, z := range all {
			if z.Clear() {
				batch.add(z)
			}
		}

		cleared = len(batch.zones)
		return batch.write(ctx, repo, command.User())
	})
	if err != nil {
		return 0, err
	}
	return cleared, nil
}
