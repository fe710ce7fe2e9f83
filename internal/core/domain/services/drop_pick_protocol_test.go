package services_test

import (
	"testing"

	"warehouse/internal/core/domain/model/handlingunit"
	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/location"
	"warehouse/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustID(t *testing.T, s string) kernel.ID {
	t.Helper()
	id, err := kernel.NewID(s)
	require.NoError(t, err)
	return id
}

func newUnit(t *testing.T, id string) *handlingunit.HandlingUnit {
	t.Helper()
	hu, err := handlingunit.NewHandlingUnit(mustID(t, id), 10, 0,
		kernel.HeightLow, kernel.LengthNotRelevant, kernel.WidthNotRelevant)
	require.NoError(t, err)
	return hu
}

func newSite(t *testing.T, id string, kind location.AccessKind, dim location.Dimension) *services.Site {
	t.Helper()
	loc, err := location.NewLocation(mustID(t, id), kind, dim)
	require.NoError(t, err)
	return &services.Site{Location: loc}
}

// drop runs the protocol and keeps the sites' unit lists in sync the way a repository would.
func drop(t *testing.T, target *services.Site, unit *handlingunit.HandlingUnit, source *services.Site) services.Outcome {
	t.Helper()
	outcome, err := services.NewDropPickProtocol().Drop(*target, unit, source, nil)
	require.NoError(t, err)
	if source != nil {
		source.Units = without(source.Units, unit)
	}
	if !outcome.AlreadyPlaced {
		target.Units = append(target.Units, unit)
	}
	return outcome
}

func without(units []*handlingunit.HandlingUnit, unit *handlingunit.HandlingUnit) []*handlingunit.HandlingUnit {
	result := make([]*handlingunit.HandlingUnit, 0, len(units))
	for _, hu := range units {
		if !hu.IsEqual(unit) {
			result = append(result, hu)
		}
	}
	return result
}

func pickAll(t *testing.T, site *services.Site) []string {
	t.Helper()
	protocol := services.NewDropPickProtocol()
	var picked []string
	for !site.IsEmpty() {
		hu, _, err := protocol.PickNext(*site)
		require.NoError(t, err)
		site.Units = without(site.Units, hu)
		picked = append(picked, hu.ID().String())
	}
	return picked
}

func TestDropPickProtocol_PolicyOrder(t *testing.T) {
	tests := []struct {
		kind location.AccessKind
		want []string
	}{
		{location.FIFO, []string{"1", "2", "3", "4"}},
		{location.LIFO, []string{"4", "3", "2", "1"}},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			site := newSite(t, "A", tt.kind, location.Dimension{})
			for _, id := range []string{"1", "2", "3", "4"} {
				drop(t, site, newUnit(t, id), nil)
			}

			assert.Equal(t, tt.want, pickAll(t, site))
		})
	}
}

func TestDropPickProtocol_RandomOffersDroppedSet(t *testing.T) {
	site := newSite(t, "A", location.Random, location.Dimension{})
	for _, id := range []string{"3", "1", "2"} {
		drop(t, site, newUnit(t, id), nil)
	}

	var ids []string
	for _, hu := range site.Location.Policy().AvailablePicks(site.Units) {
		ids = append(ids, hu.ID().String())
	}
	assert.ElementsMatch(t, []string{"1", "2", "3"}, ids)
}

func TestDropPickProtocol_Drop(t *testing.T) {
	t.Run("nil unit is a no-op", func(t *testing.T) {
		site := newSite(t, "A", location.FIFO, location.Dimension{})
		outcome, err := services.NewDropPickProtocol().Drop(*site, nil, nil, nil)
		require.NoError(t, err)
		assert.True(t, outcome.IsEmpty())
	})

	t.Run("dropping elsewhere flags the source and renumbers it", func(t *testing.T) {
		source := newSite(t, "A", location.FIFO, location.Dimension{})
		target := newSite(t, "B", location.FIFO, location.Dimension{})
		first, second := newUnit(t, "1"), newUnit(t, "2")
		drop(t, source, first, nil)
		drop(t, source, second, nil)

		outcome := drop(t, target, first, source)

		assert.True(t, source.Location.Status().IsError())
		assert.False(t, target.Location.Status().IsError())
		assert.True(t, first.IsOn(target.Location.ID()))
		assert.Equal(t, 1, *first.LocaPos())
		assert.Equal(t, 1, *second.LocaPos())
		assert.Len(t, outcome.Locations, 2)
		assert.Len(t, outcome.HandlingUnits, 2)
	})

	t.Run("first drop on an empty location clears its error", func(t *testing.T) {
		target := newSite(t, "A", location.Random, location.Dimension{})
		target.Location.MarkError()

		drop(t, target, newUnit(t, "1"), nil)
		assert.False(t, target.Location.Status().IsError())

		target.Location.MarkError()
		drop(t, target, newUnit(t, "2"), nil)
		assert.True(t, target.Location.Status().IsError(), "only an empty location is cleared")
	})

	t.Run("re-dropping on the same location changes nothing", func(t *testing.T) {
		site := newSite(t, "A", location.FIFO, location.Dimension{})
		hu := newUnit(t, "1")
		drop(t, site, hu, nil)

		outcome := drop(t, site, hu, nil)

		assert.True(t, outcome.AlreadyPlaced)
		assert.True(t, outcome.IsEmpty())
		assert.Len(t, site.Units, 1)
		assert.Equal(t, 1, *hu.LocaPos())
		assert.False(t, site.Location.Status().IsError())
	})

	t.Run("dimension violation leaves everything unchanged", func(t *testing.T) {
		dim, err := location.NewDimension(1, 0, kernel.HeightNotRelevant, kernel.LengthNotRelevant, kernel.WidthNotRelevant)
		require.NoError(t, err)
		site := newSite(t, "A", location.FIFO, dim)
		drop(t, site, newUnit(t, "1"), nil)

		extra := newUnit(t, "2")
		outcome, err := services.NewDropPickProtocol().Drop(*site, extra, nil, nil)

		require.ErrorIs(t, err, location.ErrCapacityExceeded)
		assert.True(t, outcome.IsEmpty())
		assert.False(t, extra.IsPlaced())
		assert.Len(t, site.Units, 1)
	})

	t.Run("drop detaches the unit from its base", func(t *testing.T) {
		base, child := newUnit(t, "base"), newUnit(t, "child")
		lookup := lookupOf(base, child)
		_, err := services.NewCompositionManager(lookup).Assign(child, base)
		require.NoError(t, err)

		site := newSite(t, "A", location.FIFO, location.Dimension{})
		outcome, err := services.NewDropPickProtocol().Drop(*site, child, nil, base)

		require.NoError(t, err)
		assert.False(t, child.HasBase())
		assert.Empty(t, base.Contains())
		assert.Len(t, outcome.HandlingUnits, 2)
	})
}

func TestDropPickProtocol_Pick(t *testing.T) {
	protocol := services.NewDropPickProtocol()

	t.Run("empty location fails and keeps its status", func(t *testing.T) {
		site := newSite(t, "A", location.FIFO, location.Dimension{})

		_, outcome, err := protocol.Pick(*site, newUnit(t, "1"), nil)

		require.ErrorIs(t, err, location.ErrLocationIsEmpty)
		assert.False(t, site.Location.Status().IsError())
		assert.True(t, outcome.IsEmpty())

		_, _, err = protocol.PickNext(*site)
		require.ErrorIs(t, err, location.ErrLocationIsEmpty)
	})

	t.Run("empty location flags the location that holds the unit", func(t *testing.T) {
		site := newSite(t, "A", location.FIFO, location.Dimension{})
		holder := newSite(t, "B", location.FIFO, location.Dimension{})
		hu := newUnit(t, "1")
		drop(t, holder, hu, nil)

		_, outcome, err := protocol.Pick(*site, hu, holder)

		require.ErrorIs(t, err, location.ErrLocationIsEmpty)
		assert.False(t, site.Location.Status().IsError())
		assert.True(t, holder.Location.Status().IsError())
		require.Len(t, outcome.Locations, 1)
		assert.True(t, hu.IsOn(holder.Location.ID()))
	})

	t.Run("absent unit flags the location and keeps its contents", func(t *testing.T) {
		site := newSite(t, "A", location.FIFO, location.Dimension{})
		present := newUnit(t, "1")
		drop(t, site, present, nil)

		_, outcome, err := protocol.Pick(*site, newUnit(t, "2"), nil)

		require.ErrorIs(t, err, location.ErrHandlingUnitNotOnLocation)
		assert.True(t, site.Location.Status().IsError())
		assert.True(t, present.IsOn(site.Location.ID()))
		assert.Len(t, outcome.Locations, 1)
		assert.Empty(t, outcome.HandlingUnits)
	})

	t.Run("targeted pick clears placement and keeps status", func(t *testing.T) {
		site := newSite(t, "A", location.LIFO, location.Dimension{})
		first, second := newUnit(t, "1"), newUnit(t, "2")
		drop(t, site, first, nil)
		drop(t, site, second, nil)

		picked, outcome, err := protocol.Pick(*site, first, nil)

		require.NoError(t, err)
		assert.True(t, picked.IsEqual(first))
		assert.False(t, first.IsPlaced())
		assert.Equal(t, 1, *second.LocaPos())
		assert.False(t, site.Location.Status().IsError())
		assert.Len(t, outcome.HandlingUnits, 2)
	})

	t.Run("nil unit picks by policy", func(t *testing.T) {
		site := newSite(t, "A", location.FIFO, location.Dimension{})
		drop(t, site, newUnit(t, "1"), nil)
		drop(t, site, newUnit(t, "2"), nil)

		picked, _, err := protocol.Pick(*site, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, "1", picked.ID().String())
	})
}
