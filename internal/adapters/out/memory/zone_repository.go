package memory

import (
	"context"
	"slices"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/zone"
)

// ZoneRepository implements ports.ZoneRepository on top of a UnitOfWork. Member locations
// are checked against the same view the write is staged on.
type ZoneRepository struct {
	uow *UnitOfWork
}

func (r *ZoneRepository) Add(_ context.Context, z *zone.Zone) error {
	if err := z.Validate(); err != nil {
		return err
	}
	rec := zoneToRecord(z, z.Version())
	if err := r.uow.stage(change{kind: changeAdd, ns: nsZone, id: z.ID(), zone: &rec}); err != nil {
		return err
	}
	r.uow.zones[z.ID()] = z
	return nil
}

func (r *ZoneRepository) Update(_ context.Context, z *zone.Zone) error {
	if err := z.Validate(); err != nil {
		return err
	}
	expected := z.Version()
	rec := zoneToRecord(z, expected+1)
	c := change{kind: changeUpdate, ns: nsZone, id: z.ID(), expected: expected, zone: &rec}
	if err := r.uow.stage(c); err != nil {
		return err
	}
	z.IncrementVersion()
	r.uow.zones[z.ID()] = z
	return nil
}

func (r *ZoneRepository) Delete(_ context.Context, z *zone.Zone) error {
	if err := z.Validate(); err != nil {
		return err
	}
	c := change{kind: changeDelete, ns: nsZone, id: z.ID(), expected: z.Version()}
	if err := r.uow.stage(c); err != nil {
		return err
	}
	delete(r.uow.zones, z.ID())
	return nil
}

func (r *ZoneRepository) Get(_ context.Context, id kernel.ID) (*zone.Zone, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if z, ok := r.uow.zones[id]; ok {
		return z, nil
	}
	rec, ok := r.uow.view().zones[id]
	if !ok {
		return nil, notFound("zone", id)
	}
	return r.uow.trackedZone(rec)
}

func (r *ZoneRepository) GetAll(_ context.Context, offset, count int) ([]*zone.Zone, error) {
	records := r.collect(func(zoneRecord) bool { return true })
	if offset >= len(records) {
		return []*zone.Zone{}, nil
	}
	records = records[offset:]
	if count > 0 && count < len(records) {
		records = records[:count]
	}
	return r.restoreAll(records)
}

func (r *ZoneRepository) GetAllContaining(_ context.Context, locationID kernel.ID) ([]*zone.Zone, error) {
	if err := locationID.Validate(); err != nil {
		return nil, err
	}
	records := r.collect(func(rec zoneRecord) bool {
		return slices.ContainsFunc(rec.locations, locationID.IsEqual)
	})
	return r.restoreAll(records)
}

func (r *ZoneRepository) Count(_ context.Context) (int64, error) {
	return int64(len(r.uow.view().zones)), nil
}

func (r *ZoneRepository) collect(keep func(zoneRecord) bool) []zoneRecord {
	view := r.uow.view()
	records := make([]zoneRecord, 0, len(view.zones))
	for _, rec := range view.zones {
		if keep(rec) {
			records = append(records, rec)
		}
	}
	slices.SortFunc(records, func(a, b zoneRecord) int { return compareIDs(a.id, b.id) })
	return records
}

func (r *ZoneRepository) restoreAll(records []zoneRecord) ([]*zone.Zone, error) {
	result := make([]*zone.Zone, 0, len(records))
	for _, rec := range records {
		z, err := r.uow.trackedZone(rec)
		if err != nil {
			return nil, err
		}
		result = append(result, z)
	}
	return result, nil
}
