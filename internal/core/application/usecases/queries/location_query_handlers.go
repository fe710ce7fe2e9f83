package queries

import (
	"context"

	"warehouse/internal/core/domain/model/location"
)

// GetLocationQueryHandler returns errs.ErrObjectNotFound for an unknown id.
type GetLocationQueryHandler struct {
	readerFactory ReaderFactory
}

func NewGetLocationQueryHandler(readerFactory ReaderFactory) GetLocationQueryHandler {
	return GetLocationQueryHandler{readerFactory: readerFactory}
}

func (h GetLocationQueryHandler) Handle(ctx context.Context, query GetLocationQuery) (LocationResponse, error) {
	if err := query.Validate(); err != nil {
		return LocationResponse{}, err
	}

	reader := h.readerFactory.Create()
	loc, err := reader.LocationRepository().Get(ctx, query.LocationID())
	if err != nil {
		return LocationResponse{}, err
	}

	described, err := describeLocations(ctx, reader.HandlingUnitRepository(), []*location.Location{loc}, nil)
	if err != nil {
		return LocationResponse{}, err
	}
	return described[0], nil
}

// GetAllLocationsQueryHandler retrieves every location ordered by id.
type GetAllLocationsQueryHandler struct {
	readerFactory ReaderFactory
}

func NewGetAllLocationsQueryHandler(readerFactory ReaderFactory) GetAllLocationsQueryHandler {
	return GetAllLocationsQueryHandler{readerFactory: readerFactory}
}

func (h GetAllLocationsQueryHandler) Handle(
	ctx context.Context,
	query GetAllLocationsQuery,
) ([]LocationResponse, error) {
	return h.filter(ctx, query.Validate(), nil)
}

func (h GetAllLocationsQueryHandler) filter(
	ctx context.Context,
	validationErr error,
	keep func(loc *location.Location, unitCount int) bool,
) ([]LocationResponse, error) {
	if validationErr != nil {
		return nil, validationErr
	}

	reader := h.readerFactory.Create()
	locations, err := reader.LocationRepository().GetAll(ctx)
	if err != nil {
		return nil, err
	}

	return describeLocations(ctx, reader.HandlingUnitRepository(), locations, keep)
}

// GetAllContainingQueryHandler looks the unit up and returns the location it is placed on.
// An unplaced unit yields an empty slice; an unknown unit errs.ErrObjectNotFound.
type GetAllContainingQueryHandler struct {
	readerFactory ReaderFactory
}

func NewGetAllContainingQueryHandler(readerFactory ReaderFactory) GetAllContainingQueryHandler {
	return GetAllContainingQueryHandler{readerFactory: readerFactory}
}

func (h GetAllContainingQueryHandler) Handle(
	ctx context.Context,
	query GetAllContainingQuery,
) ([]LocationResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	reader := h.readerFactory.Create()
	hu, err := reader.HandlingUnitRepository().Get(ctx, query.HandlingUnitID())
	if err != nil {
		return nil, err
	}
	if !hu.IsPlaced() {
		return []LocationResponse{}, nil
	}

	loc, err := reader.LocationRepository().Get(ctx, *hu.Location())
	if err != nil {
		return nil, err
	}

	return describeLocations(ctx, reader.HandlingUnitRepository(), []*location.Location{loc}, nil)
}

type GetAllInErrorStatusQueryHandler struct {
	readerFactory ReaderFactory
}

func NewGetAllInErrorStatusQueryHandler(readerFactory ReaderFactory) GetAllInErrorStatusQueryHandler {
	return GetAllInErrorStatusQueryHandler{readerFactory: readerFactory}
}

func (h GetAllInErrorStatusQueryHandler) Handle(
	ctx context.Context,
	query GetAllInErrorStatusQuery,
) ([]LocationResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	reader := h.readerFactory.Create()
	locations, err := reader.LocationRepository().GetAllInErrorStatus(ctx, query.Status())
	if err != nil {
		return nil, err
	}

	return describeLocations(ctx, reader.HandlingUnitRepository(), locations, nil)
}

// IsFullQueryHandler reports whether a location holds at least maxCapacity units. A
// location without a capacity limit is never full.
type IsFullQueryHandler struct {
	readerFactory ReaderFactory
}

func NewIsFullQueryHandler(readerFactory ReaderFactory) IsFullQueryHandler {
	return IsFullQueryHandler{readerFactory: readerFactory}
}

func (h IsFullQueryHandler) Handle(ctx context.Context, query IsFullQuery) (bool, error) {
	if err := query.Validate(); err != nil {
		return false, err
	}

	reader := h.readerFactory.Create()
	loc, err := reader.LocationRepository().Get(ctx, query.LocationID())
	if err != nil {
		return false, err
	}

	placed, err := reader.HandlingUnitRepository().GetAllOnLocation(ctx, loc.ID())
	if err != nil {
		return false, err
	}
	return loc.IsFull(len(placed)), nil
}

type GetAllFullQueryHandler struct {
	all GetAllLocationsQueryHandler
}

func NewGetAllFullQueryHandler(readerFactory ReaderFactory) GetAllFullQueryHandler {
	return GetAllFullQueryHandler{all: NewGetAllLocationsQueryHandler(readerFactory)}
}

func (h GetAllFullQueryHandler) Handle(ctx context.Context, query GetAllFullQuery) ([]LocationResponse, error) {
	return h.all.filter(ctx, query.Validate(), func(loc *location.Location, unitCount int) bool {
		return loc.IsFull(unitCount)
	})
}

type GetAllWithFreeCapacityQueryHandler struct {
	all GetAllLocationsQueryHandler
}

func NewGetAllWithFreeCapacityQueryHandler(readerFactory ReaderFactory) GetAllWithFreeCapacityQueryHandler {
	return GetAllWithFreeCapacityQueryHandler{all: NewGetAllLocationsQueryHandler(readerFactory)}
}

func (h GetAllWithFreeCapacityQueryHandler) Handle(
	ctx context.Context,
	query GetAllWithFreeCapacityQuery,
) ([]LocationResponse, error) {
	return h.all.filter(ctx, query.Validate(), func(loc *location.Location, unitCount int) bool {
		return loc.HasFreeCapacity(unitCount)
	})
}
