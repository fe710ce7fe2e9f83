package queries_test

import (
	"testing"

	"warehouse/internal/core/application/usecases/queries"
	"warehouse/internal/core/domain/model/location"
	"warehouse/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZoneQueries_RejectInvalidArguments(t *testing.T) {
	_, err := queries.NewGetAllZonesQuery(-1, 0)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

	_, err = queries.NewGetAllZonesQuery(0, -1)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

	require.ErrorIs(t, queries.GetZoneQuery{}.Validate(), queries.ErrGetZoneQueryIsNotConstructed)
}

func TestGetZoneQueryHandler(t *testing.T) {
	f := newFixture(t)
	f.location("A", location.Random, 0)
	f.location("B", location.Random, 0)
	f.zone("Cooler", 5, "B", "A")

	query, err := queries.NewGetZoneQuery(mustID(t, "Cooler"))
	require.NoError(t, err)

	got, err := queries.NewGetZoneQueryHandler(f.readers()).Handle(t.Context(), query)
	require.NoError(t, err)
	assert.Equal(t, 5, got.Rating)
	assert.Equal(t, ids(t, "A", "B"), got.Locations)

	query, err = queries.NewGetZoneQuery(mustID(t, "Freezer"))
	require.NoError(t, err)
	_, err = queries.NewGetZoneQueryHandler(f.readers()).Handle(t.Context(), query)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestGetAllZonesQueryHandler(t *testing.T) {
	f := newFixture(t)
	f.zone("Freezer", 10)
	f.zone("Bulk", 0)
	f.zone("Cooler", 5)

	query, err := queries.NewGetAllZonesQuery(1, 1)
	require.NoError(t, err)

	page, err := queries.NewGetAllZonesQueryHandler(f.readers()).Handle(t.Context(), query)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Cooler", page.Items[0].ID.String())
	assert.Equal(t, int64(3), page.Total)
}

func TestGetZonesOfLocationQueryHandler(t *testing.T) {
	f := newFixture(t)
	f.location("A", location.Random, 0)
	f.location("B", location.Random, 0)
	f.zone("Freezer", 10, "A")
	f.zone("Cooler", 5, "A", "B")
	f.zone("Bulk", 0, "B")

	handler := queries.NewGetZonesOfLocationQueryHandler(f.readers())

	query, err := queries.NewGetZonesOfLocationQuery(mustID(t, "A"))
	require.NoError(t, err)
	zones, err := handler.Handle(t.Context(), query)
	require.NoError(t, err)
	require.Len(t, zones, 2)
	assert.Equal(t, "Cooler", zones[0].ID.String())
	assert.Equal(t, "Freezer", zones[1].ID.String())

	query, err = queries.NewGetZonesOfLocationQuery(mustID(t, "NOPE"))
	require.NoError(t, err)
	_, err = handler.Handle(t.Context(), query)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}
