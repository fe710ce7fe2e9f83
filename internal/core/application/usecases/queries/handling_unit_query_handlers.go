package queries

import (
	"context"

	"warehouse/internal/core/domain/model/handlingunit"
	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/services"
)

// HandlingUnitPage is one page of handling units plus the total number of units stored.
type HandlingUnitPage struct {
	Items []HandlingUnitResponse
	Total int64
}

type GetHandlingUnitQueryHandler struct {
	readerFactory ReaderFactory
}

func NewGetHandlingUnitQueryHandler(readerFactory ReaderFactory) GetHandlingUnitQueryHandler {
	return GetHandlingUnitQueryHandler{readerFactory: readerFactory}
}

func (h GetHandlingUnitQueryHandler) Handle(
	ctx context.Context,
	query GetHandlingUnitQuery,
) (HandlingUnitResponse, error) {
	if err := query.Validate(); err != nil {
		return HandlingUnitResponse{}, err
	}

	hu, err := h.readerFactory.Create().HandlingUnitRepository().Get(ctx, query.HandlingUnitID())
	if err != nil {
		return HandlingUnitResponse{}, err
	}
	return newHandlingUnitResponse(hu), nil
}

type GetAllHandlingUnitsQueryHandler struct {
	readerFactory ReaderFactory
}

func NewGetAllHandlingUnitsQueryHandler(readerFactory ReaderFactory) GetAllHandlingUnitsQueryHandler {
	return GetAllHandlingUnitsQueryHandler{readerFactory: readerFactory}
}

func (h GetAllHandlingUnitsQueryHandler) Handle(
	ctx context.Context,
	query GetAllHandlingUnitsQuery,
) (HandlingUnitPage, error) {
	if err := query.Validate(); err != nil {
		return HandlingUnitPage{}, err
	}

	repo := h.readerFactory.Create().HandlingUnitRepository()
	units, err := repo.GetAll(ctx, query.Offset(), query.Count())
	if err != nil {
		return HandlingUnitPage{}, err
	}
	total, err := repo.Count(ctx)
	if err != nil {
		return HandlingUnitPage{}, err
	}

	return HandlingUnitPage{Items: newHandlingUnitResponses(units), Total: total}, nil
}

// GetHandlingUnitsOnLocationQueryHandler returns errs.ErrObjectNotFound for an unknown
// location rather than an empty list.
type GetHandlingUnitsOnLocationQueryHandler struct {
	readerFactory ReaderFactory
}

func NewGetHandlingUnitsOnLocationQueryHandler(readerFactory ReaderFactory) GetHandlingUnitsOnLocationQueryHandler {
	return GetHandlingUnitsOnLocationQueryHandler{readerFactory: readerFactory}
}

func (h GetHandlingUnitsOnLocationQueryHandler) Handle(
	ctx context.Context,
	query GetHandlingUnitsOnLocationQuery,
) ([]HandlingUnitResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	reader := h.readerFactory.Create()
	if _, err := reader.LocationRepository().Get(ctx, query.LocationID()); err != nil {
		return nil, err
	}

	units, err := reader.HandlingUnitRepository().GetAllOnLocation(ctx, query.LocationID())
	if err != nil {
		return nil, err
	}
	return newHandlingUnitResponses(units), nil
}

type GetAvailablePicksQueryHandler struct {
	readerFactory ReaderFactory
}

func NewGetAvailablePicksQueryHandler(readerFactory ReaderFactory) GetAvailablePicksQueryHandler {
	return GetAvailablePicksQueryHandler{readerFactory: readerFactory}
}

func (h GetAvailablePicksQueryHandler) Handle(
	ctx context.Context,
	query GetAvailablePicksQuery,
) ([]HandlingUnitResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	reader := h.readerFactory.Create()
	loc, err := reader.LocationRepository().Get(ctx, query.LocationID())
	if err != nil {
		return nil, err
	}

	placed, err := reader.HandlingUnitRepository().GetAllOnLocation(ctx, loc.ID())
	if err != nil {
		return nil, err
	}
	return newHandlingUnitResponses(loc.Policy().AvailablePicks(placed)), nil
}

// FlatContainsQueryHandler walks the composition tree below a base breadth first.
type FlatContainsQueryHandler struct {
	readerFactory ReaderFactory
}

func NewFlatContainsQueryHandler(readerFactory ReaderFactory) FlatContainsQueryHandler {
	return FlatContainsQueryHandler{readerFactory: readerFactory}
}

func (h FlatContainsQueryHandler) Handle(ctx context.Context, query FlatContainsQuery) ([]kernel.ID, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	repo := h.readerFactory.Create().HandlingUnitRepository()
	base, err := repo.Get(ctx, query.BaseID())
	if err != nil {
		return nil, err
	}

	manager := services.NewCompositionManager(func(id kernel.ID) (*handlingunit.HandlingUnit, error) {
		return repo.Get(ctx, id)
	})
	ids, err := manager.FlatContains(base)
	if err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []kernel.ID{}
	}
	return ids, nil
}
