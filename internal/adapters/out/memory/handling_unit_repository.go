package memory

import (
	"context"
	"slices"

	"warehouse/internal/core/domain/model/handlingunit"
	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/errs"
)

// HandlingUnitRepository implements ports.HandlingUnitRepository on top of a UnitOfWork.
// Like the PostgreSQL adapter it derives contains from the base reference of the children.
type HandlingUnitRepository struct {
	uow *UnitOfWork
}

func (r *HandlingUnitRepository) Add(_ context.Context, hu *handlingunit.HandlingUnit) error {
	if err := hu.Validate(); err != nil {
		return err
	}
	rec := unitToRecord(hu, hu.Version())
	if err := r.uow.stage(change{kind: changeAdd, id: hu.ID(), unit: &rec, ns: nsUnit}); err != nil {
		return err
	}
	r.uow.handlingUnits[hu.ID()] = hu
	return nil
}

func (r *HandlingUnitRepository) Update(_ context.Context, hu *handlingunit.HandlingUnit) error {
	if err := hu.Validate(); err != nil {
		return err
	}
	expected := hu.Version()
	rec := unitToRecord(hu, expected+1)
	c := change{kind: changeUpdate, id: hu.ID(), expected: expected, unit: &rec, ns: nsUnit}
	if err := r.uow.stage(c); err != nil {
		return err
	}
	hu.IncrementVersion()
	r.uow.handlingUnits[hu.ID()] = hu
	return nil
}

func (r *HandlingUnitRepository) Delete(_ context.Context, hu *handlingunit.HandlingUnit) error {
	if err := hu.Validate(); err != nil {
		return err
	}
	c := change{kind: changeDelete, id: hu.ID(), expected: hu.Version(), ns: nsUnit}
	if err := r.uow.stage(c); err != nil {
		return err
	}
	delete(r.uow.handlingUnits, hu.ID())
	return nil
}

func (r *HandlingUnitRepository) Get(_ context.Context, id kernel.ID) (*handlingunit.HandlingUnit, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if hu, ok := r.uow.handlingUnits[id]; ok {
		return hu, nil
	}
	view := r.uow.view()
	rec, ok := view.units[id]
	if !ok {
		return nil, notFound("handlingUnit", id)
	}
	return r.uow.trackedUnit(rec, view)
}

func (r *HandlingUnitRepository) GetAll(_ context.Context, offset, count int) ([]*handlingunit.HandlingUnit, error) {
	if offset < 0 {
		return nil, errs.NewValueIsOutOfRangeError("offset", offset, 0, "unbounded")
	}
	if count < 0 {
		return nil, errs.NewValueIsOutOfRangeError("count", count, 0, "unbounded")
	}

	view := r.uow.view()
	records := r.collect(view, func(unitRecord) bool { return true }, byID)
	if offset >= len(records) {
		return []*handlingunit.HandlingUnit{}, nil
	}
	records = records[offset:]
	if count > 0 && count < len(records) {
		records = records[:count]
	}
	return r.restoreAll(view, records)
}

func (r *HandlingUnitRepository) GetAllOnLocation(
	_ context.Context,
	locationID kernel.ID,
) ([]*handlingunit.HandlingUnit, error) {
	if err := locationID.Validate(); err != nil {
		return nil, err
	}
	view := r.uow.view()
	records := r.collect(view, func(rec unitRecord) bool {
		return rec.locationID != nil && rec.locationID.IsEqual(locationID)
	}, byPosition)
	return r.restoreAll(view, records)
}

func (r *HandlingUnitRepository) GetChildren(
	_ context.Context,
	baseID kernel.ID,
) ([]*handlingunit.HandlingUnit, error) {
	if err := baseID.Validate(); err != nil {
		return nil, err
	}
	view := r.uow.view()
	records := r.collect(view, func(rec unitRecord) bool {
		return rec.baseID != nil && rec.baseID.IsEqual(baseID)
	}, byID)
	return r.restoreAll(view, records)
}

func (r *HandlingUnitRepository) Count(_ context.Context) (int64, error) {
	return int64(len(r.uow.view().units)), nil
}

func (r *HandlingUnitRepository) collect(
	view memoryState,
	keep func(unitRecord) bool,
	order func(a, b unitRecord) int,
) []unitRecord {
	records := make([]unitRecord, 0)
	for _, rec := range view.units {
		if keep(rec) {
			records = append(records, rec)
		}
	}
	slices.SortFunc(records, order)
	return records
}

func (r *HandlingUnitRepository) restoreAll(view memoryState, records []unitRecord) ([]*handlingunit.HandlingUnit, error) {
	result := make([]*handlingunit.HandlingUnit, 0, len(records))
	for _, rec := range records {
		hu, err := r.uow.trackedUnit(rec, view)
		if err != nil {
			return nil, err
		}
		result = append(result, hu)
	}
	return result, nil
}

func byID(a, b unitRecord) int {
	return compareIDs(a.id, b.id)
}

// byPosition sorts by locaPos with unpositioned units last, then by id.
func byPosition(a, b unitRecord) int {
	switch {
	case a.locaPos != nil && b.locaPos != nil && *a.locaPos != *b.locaPos:
		return *a.locaPos - *b.locaPos
	case a.locaPos != nil && b.locaPos == nil:
		return -1
	case a.locaPos == nil && b.locaPos != nil:
		return 1
	}
	return byID(a, b)
}

func childrenOf(view memoryState, baseID kernel.ID) []kernel.ID {
	var children []kernel.ID
	for _, rec := range view.units {
		if rec.baseID != nil && rec.baseID.IsEqual(baseID) {
			children = append(children, rec.id)
		}
	}
	slices.SortFunc(children, compareIDs)
	return children
}
