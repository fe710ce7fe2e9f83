package queries_test

import (
	"testing"

	"warehouse/internal/adapters/out/memory"
	"warehouse/internal/core/application/usecases/queries"
	"warehouse/internal/core/domain/model/handlingunit"
	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/location"
	"warehouse/internal/core/domain/model/zone"

	"github.com/stretchr/testify/require"
)

// fixture seeds a memory store directly through its repositories.
type fixture struct {
	t     *testing.T
	store *memory.Store
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return &fixture{t: t, store: memory.NewStore()}
}

func (f *fixture) readers() queries.ReaderFactory {
	return queries.FuncReaderFactory(func() queries.Reader { return f.store.Create() })
}

func (f *fixture) location(id string, kind location.AccessKind, capacity int) *location.Location {
	f.t.Helper()
	dim, err := location.NewDimension(capacity, 0,
		kernel.HeightNotRelevant, kernel.LengthNotRelevant, kernel.WidthNotRelevant)
	require.NoError(f.t, err)
	loc, err := location.NewLocation(mustID(f.t, id), kind, dim)
	require.NoError(f.t, err)
	require.NoError(f.t, f.store.Create().LocationRepository().Add(f.t.Context(), loc))
	return loc
}

func (f *fixture) flag(id string) {
	f.t.Helper()
	repo := f.store.Create().LocationRepository()
	loc, err := repo.Get(f.t.Context(), mustID(f.t, id))
	require.NoError(f.t, err)
	loc.MarkError()
	require.NoError(f.t, repo.Update(f.t.Context(), loc))
}

// unit adds a unit placed on locationID at pos. An empty locationID leaves it unplaced and
// a non-empty baseID attaches it to that base.
func (f *fixture) unit(id, locationID string, pos int, baseID string) *handlingunit.HandlingUnit {
	f.t.Helper()
	hu, err := handlingunit.NewHandlingUnit(mustID(f.t, id), 10, 0.5,
		kernel.HeightLow, kernel.LengthShort, kernel.WidthNarrow)
	require.NoError(f.t, err)
	if locationID != "" {
		var p *int
		if pos > 0 {
			p = &pos
		}
		require.NoError(f.t, hu.PlaceOn(mustID(f.t, locationID), p))
	}
	if baseID != "" {
		require.NoError(f.t, hu.AttachTo(mustID(f.t, baseID)))
	}
	require.NoError(f.t, f.store.Create().HandlingUnitRepository().Add(f.t.Context(), hu))
	return hu
}

func (f *fixture) zone(id string, rating int, members ...string) *zone.Zone {
	f.t.Helper()
	z, err := zone.NewZone(mustID(f.t, id), rating)
	require.NoError(f.t, err)
	require.NoError(f.t, z.Replace(ids(f.t, members...)))
	require.NoError(f.t, f.store.Create().ZoneRepository().Add(f.t.Context(), z))
	return z
}

func mustID(t *testing.T, s string) kernel.ID {
	t.Helper()
	id, err := kernel.NewID(s)
	require.NoError(t, err)
	return id
}

func ids(t *testing.T, values ...string) []kernel.ID {
	t.Helper()
	result := make([]kernel.ID, 0, len(values))
	for _, v := range values {
		result = append(result, mustID(t, v))
	}
	return result
}
