package queries

import (
	"context"
)

// ZonePage is one page of zones plus the total number of zones stored.
type ZonePage struct {
	Items []ZoneResponse
	Total int64
}

type GetZoneQueryHandler struct {
	readerFactory ReaderFactory
}

func NewGetZoneQueryHandler(readerFactory ReaderFactory) GetZoneQueryHandler {
	return GetZoneQueryHandler{readerFactory: readerFactory}
}

func (h GetZoneQueryHandler) Handle(ctx context.Context, query GetZoneQuery) (ZoneResponse, error) {
	if err := query.Validate(); err != nil {
		return ZoneResponse{}, err
	}

	z, err := h.readerFactory.Create().ZoneRepository().Get(ctx, query.ZoneID())
	if err != nil {
		return ZoneResponse{}, err
	}
	return newZoneResponse(z), nil
}

type GetAllZonesQueryHandler struct {
	readerFactory ReaderFactory
}

func NewGetAllZonesQueryHandler(readerFactory ReaderFactory) GetAllZonesQueryHandler {
	return GetAllZonesQueryHandler{readerFactory: readerFactory}
}

func (h GetAllZonesQueryHandler) Handle(ctx context.Context, query GetAllZonesQuery) (ZonePage, error) {
	if err := query.Validate(); err != nil {
		return ZonePage{}, err
	}

	repo := h.readerFactory.Create().ZoneRepository()
	zones, err := repo.GetAll(ctx, query.Offset(), query.Count())
	if err != nil {
		return ZonePage{}, err
	}
	total, err := repo.Count(ctx)
	if err != nil {
		return ZonePage{}, err
	}

	return ZonePage{Items: newZoneResponses(zones), Total: total}, nil
}

// GetZonesOfLocationQueryHandler returns errs.ErrObjectNotFound for an unknown location
// rather than an empty list.
type GetZonesOfLocationQueryHandler struct {
	readerFactory ReaderFactory
}

func NewGetZonesOfLocationQueryHandler(readerFactory ReaderFactory) GetZonesOfLocationQueryHandler {
	return GetZonesOfLocationQueryHandler{readerFactory: readerFactory}
}

func (h GetZonesOfLocationQueryHandler) Handle(
	ctx context.Context,
	query GetZonesOfLocationQuery,
) ([]ZoneResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	reader := h.readerFactory.Create()
	if _, err := reader.LocationRepository().Get(ctx, query.LocationID()); err != nil {
		return nil, err
	}

	zones, err := reader.ZoneRepository().GetAllContaining(ctx, query.LocationID())
	if err != nil {
		return nil, err
	}
	return newZoneResponses(zones), nil
}
