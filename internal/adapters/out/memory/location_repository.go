package memory

import (
	"context"
	"slices"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/location"
)

// LocationRepository implements ports.LocationRepository on top of a UnitOfWork.
type LocationRepository struct {
	uow *UnitOfWork
}

func (r *LocationRepository) Add(_ context.Context, loc *location.Location) error {
	if err := loc.Validate(); err != nil {
		return err
	}
	rec := locationToRecord(loc, loc.Version())
	if err := r.uow.stage(change{kind: changeAdd, id: loc.ID(), location: &rec}); err != nil {
		return err
	}
	r.uow.locations[loc.ID()] = loc
	return nil
}

func (r *LocationRepository) Update(_ context.Context, loc *location.Location) error {
	if err := loc.Validate(); err != nil {
		return err
	}
	expected := loc.Version()
	rec := locationToRecord(loc, expected+1)
	if err := r.uow.stage(change{kind: changeUpdate, id: loc.ID(), expected: expected, location: &rec}); err != nil {
		return err
	}
	loc.IncrementVersion()
	r.uow.locations[loc.ID()] = loc
	return nil
}

func (r *LocationRepository) Delete(_ context.Context, loc *location.Location) error {
	if err := loc.Validate(); err != nil {
		return err
	}
	if err := r.uow.stage(change{kind: changeDelete, id: loc.ID(), expected: loc.Version()}); err != nil {
		return err
	}
	delete(r.uow.locations, loc.ID())
	return nil
}

func (r *LocationRepository) Get(_ context.Context, id kernel.ID) (*location.Location, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if loc, ok := r.uow.locations[id]; ok {
		return loc, nil
	}
	rec, ok := r.uow.view().locations[id]
	if !ok {
		return nil, notFound("location", id)
	}
	return r.uow.trackedLocation(rec)
}

func (r *LocationRepository) GetAll(_ context.Context) ([]*location.Location, error) {
	return r.filter(func(locationRecord) bool { return true })
}

func (r *LocationRepository) GetAllInErrorStatus(
	_ context.Context,
	status location.ErrorStatus,
) ([]*location.Location, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}
	return r.filter(func(rec locationRecord) bool { return rec.status.ErrorStatus() == status })
}

func (r *LocationRepository) Count(_ context.Context) (int64, error) {
	return int64(len(r.uow.view().locations)), nil
}

func (r *LocationRepository) filter(keep func(locationRecord) bool) ([]*location.Location, error) {
	view := r.uow.view()
	records := make([]locationRecord, 0, len(view.locations))
	for _, rec := range view.locations {
		if keep(rec) {
			records = append(records, rec)
		}
	}
	slices.SortFunc(records, func(a, b locationRecord) int { return compareIDs(a.id, b.id) })

	result := make([]*location.Location, 0, len(records))
	for _, rec := range records {
		loc, err := r.uow.trackedLocation(rec)
		if err != nil {
			return nil, err
		}
		result = append(result, loc)
	}
	return result, nil
}

func compareIDs(a, b kernel.ID) int {
	switch {
	case a.Less(b):
		return -1
	case b.Less(a):
		return 1
	}
	return 0
}
