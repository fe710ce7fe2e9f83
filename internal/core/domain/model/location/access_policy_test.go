package location_test

import (
	"testing"

	"warehouse/internal/core/domain/model/handlingunit"
	"warehouse/internal/core/domain/model/location"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dropAll(t *testing.T, kind location.AccessKind, ids ...string) (*location.Location, []*handlingunit.HandlingUnit) {
	t.Helper()
	loc := newLocation(t, "L", kind, location.Dimension{})
	var placed []*handlingunit.HandlingUnit
	for _, id := range ids {
		hu := newUnit(t, id, 1)
		require.NoError(t, loc.Accept(placed, hu))
		placed = append(placed, hu)
	}
	return loc, placed
}

func positions(placed []*handlingunit.HandlingUnit) map[string]int {
	result := make(map[string]int, len(placed))
	for _, hu := range placed {
		if hu.LocaPos() != nil {
			result[hu.ID().String()] = *hu.LocaPos()
		}
	}
	return result
}

func TestOrderedPolicies_AssignContiguousPositions(t *testing.T) {
	for _, kind := range []location.AccessKind{location.FIFO, location.LIFO} {
		t.Run(kind.String(), func(t *testing.T) {
			_, placed := dropAll(t, kind, "a", "b", "c")
			assert.Equal(t, map[string]int{"a": 1, "b": 2, "c": 3}, positions(placed))
		})
	}
}

func TestOrderedPolicies_RenumberOnRemove(t *testing.T) {
	loc, placed := dropAll(t, location.FIFO, "a", "b", "c", "d")

	shifted := loc.Release(placed, placed[1])
	remaining := []*handlingunit.HandlingUnit{placed[0], placed[2], placed[3]}

	assert.Len(t, shifted, 2)
	assert.Equal(t, map[string]int{"a": 1, "c": 2, "d": 3}, positions(remaining))

	next := newUnit(t, "e", 1)
	require.NoError(t, loc.Accept(remaining, next))
	assert.Equal(t, 4, *next.LocaPos())
}

func TestFIFO_PicksHead(t *testing.T) {
	loc, placed := dropAll(t, location.FIFO, "b", "a", "c")

	picks := loc.Policy().AvailablePicks(placed)
	require.Len(t, picks, 1)
	assert.Equal(t, "b", picks[0].ID().String())

	next, ok := loc.Policy().Next(placed)
	require.True(t, ok)
	assert.Equal(t, "b", next.ID().String())
}

func TestLIFO_PicksTail(t *testing.T) {
	loc, placed := dropAll(t, location.LIFO, "b", "a", "c")

	picks := loc.Policy().AvailablePicks(placed)
	require.Len(t, picks, 1)
	assert.Equal(t, "c", picks[0].ID().String())
}

func TestRandom_OffersAllTopLevelUnits(t *testing.T) {
	for _, kind := range []location.AccessKind{location.Random, location.None} {
		t.Run(kind.String(), func(t *testing.T) {
			loc, placed := dropAll(t, kind, "c", "a", "b")
			assert.Empty(t, positions(placed))

			picks := loc.Policy().AvailablePicks(placed)
			require.Len(t, picks, 3)
			assert.Equal(t, "a", picks[0].ID().String())
			assert.Equal(t, "c", picks[2].ID().String())

			next, ok := loc.Policy().Next(placed)
			require.True(t, ok)
			assert.Equal(t, "a", next.ID().String())
		})
	}
}

func TestPolicies_SkipUnitsCarriedByBase(t *testing.T) {
	loc, placed := dropAll(t, location.FIFO, "child", "base")
	require.NoError(t, placed[0].AttachTo(placed[1].ID()))

	picks := loc.Policy().AvailablePicks(placed)
	require.Len(t, picks, 1)
	assert.Equal(t, "base", picks[0].ID().String())
}

func TestPolicies_EmptyLocation(t *testing.T) {
	for _, kind := range []location.AccessKind{location.FIFO, location.LIFO, location.Random} {
		policy := location.PolicyFor(kind)
		assert.Empty(t, policy.AvailablePicks(nil))
		_, ok := policy.Next(nil)
		assert.False(t, ok)
	}
}
