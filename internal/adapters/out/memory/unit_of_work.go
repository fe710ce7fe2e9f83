package memory

import (
	"context"
	"errors"

	"warehouse/internal/core/domain/model/handlingunit"
	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/location"
	"warehouse/internal/core/domain/model/zone"
	"warehouse/internal/core/ports"
	"warehouse/internal/pkg/errs"
)

// ErrNoTransaction is returned by Commit and Rollback without a preceding Begin.
var ErrNoTransaction = errors.New("no active transaction")

// UnitOfWork stages writes in memory and hands them to the Store on Commit. Without Begin
// every write is applied immediately.
type UnitOfWork struct {
	store  *Store
	active bool
	staged []change

	locations     map[kernel.ID]*location.Location
	handlingUnits map[kernel.ID]*handlingunit.HandlingUnit
	zones         map[kernel.ID]*zone.Zone
}

func newUnitOfWork(store *Store) *UnitOfWork {
	uow := &UnitOfWork{store: store}
	uow.reset()
	return uow
}

func (u *UnitOfWork) reset() {
	u.staged = nil
	u.locations = make(map[kernel.ID]*location.Location)
	u.handlingUnits = make(map[kernel.ID]*handlingunit.HandlingUnit)
	u.zones = make(map[kernel.ID]*zone.Zone)
}

func (u *UnitOfWork) Begin(_ context.Context) error {
	u.active = true
	return nil
}

// Commit applies the staged writes atomically. On a version conflict nothing is written
// and the error matches errs.ErrConcurrentModification.
func (u *UnitOfWork) Commit(_ context.Context) error {
	if !u.active {
		return ErrNoTransaction
	}
	err := u.store.apply(u.staged)
	u.active = false
	u.reset()
	return err
}

func (u *UnitOfWork) Rollback(_ context.Context) error {
	if !u.active {
		return ErrNoTransaction
	}
	u.active = false
	u.reset()
	return nil
}

func (u *UnitOfWork) LocationRepository() ports.LocationRepository {
	return &LocationRepository{uow: u}
}

func (u *UnitOfWork) HandlingUnitRepository() ports.HandlingUnitRepository {
	return &HandlingUnitRepository{uow: u}
}

func (u *UnitOfWork) ZoneRepository() ports.ZoneRepository {
	return &ZoneRepository{uow: u}
}

// stage records c, or applies it right away outside of a transaction. Writes to an
// aggregate already staged in this unit of work are folded into the earlier change so that
// commit compares against the version read at the start.
func (u *UnitOfWork) stage(c change) error {
	view := u.view()
	if err := c.check(view); err != nil {
		return err
	}
	if !u.active {
		return u.store.apply([]change{c})
	}

	for i, prev := range u.staged {
		if prev.ns != c.ns || !prev.id.IsEqual(c.id) {
			continue
		}
		switch {
		case c.kind == changeDelete && prev.kind == changeAdd:
			u.staged = append(u.staged[:i], u.staged[i+1:]...)
		case c.kind == changeDelete:
			u.staged[i].kind = changeDelete
			u.staged[i].location, u.staged[i].unit, u.staged[i].zone = nil, nil, nil
		case c.kind == changeAdd && prev.kind == changeDelete:
			u.staged[i].kind = changeUpdate
			u.staged[i].location, u.staged[i].unit, u.staged[i].zone = c.location, c.unit, c.zone
		default:
			u.staged[i].location, u.staged[i].unit, u.staged[i].zone = c.location, c.unit, c.zone
		}
		return nil
	}
	u.staged = append(u.staged, c)
	return nil
}

// view returns the committed state with this unit of work's staged changes applied.
func (u *UnitOfWork) view() memoryState {
	var view memoryState
	u.store.read(func(state memoryState) {
		view = state.clone()
	})
	for _, c := range u.staged {
		c.write(view)
	}
	return view
}

func (u *UnitOfWork) trackedLocation(r locationRecord) (*location.Location, error) {
	if loc, ok := u.locations[r.id]; ok {
		return loc, nil
	}
	loc, err := r.restore()
	if err != nil {
		return nil, err
	}
	u.locations[r.id] = loc
	return loc, nil
}

func (u *UnitOfWork) trackedUnit(r unitRecord, view memoryState) (*handlingunit.HandlingUnit, error) {
	if hu, ok := u.handlingUnits[r.id]; ok {
		return hu, nil
	}
	hu, err := r.restore(childrenOf(view, r.id))
	if err != nil {
		return nil, err
	}
	u.handlingUnits[r.id] = hu
	return hu, nil
}

func (u *UnitOfWork) trackedZone(r zoneRecord) (*zone.Zone, error) {
	if z, ok := u.zones[r.id]; ok {
		return z, nil
	}
	z, err := r.restore()
	if err != nil {
		return nil, err
	}
	u.zones[r.id] = z
	return z, nil
}

func notFound(paramName string, id kernel.ID) error {
	return errs.NewObjectNotFoundError(paramName, id.String())
}
