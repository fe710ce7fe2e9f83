package services_test

import (
	"testing"

	"warehouse/internal/core/domain/model/handlingunit"
	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/location"
	"warehouse/internal/core/domain/services"
	"warehouse/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookupOf(units ...*handlingunit.HandlingUnit) services.HandlingUnitLookup {
	byID := make(map[kernel.ID]*handlingunit.HandlingUnit, len(units))
	for _, hu := range units {
		byID[hu.ID()] = hu
	}
	return func(id kernel.ID) (*handlingunit.HandlingUnit, error) {
		if hu, ok := byID[id]; ok {
			return hu, nil
		}
		return nil, errs.NewObjectNotFoundError("handlingUnit", id)
	}
}

func ids(t *testing.T, values ...string) []kernel.ID {
	t.Helper()
	result := make([]kernel.ID, 0, len(values))
	for _, v := range values {
		result = append(result, mustID(t, v))
	}
	return result
}

func TestCompositionManager_AssignAndRemove(t *testing.T) {
	base, unit := newUnit(t, "base"), newUnit(t, "unit")
	manager := services.NewCompositionManager(lookupOf(base, unit))

	outcome, err := manager.Assign(unit, base)
	require.NoError(t, err)
	assert.True(t, unit.IsChildOf(base.ID()))
	assert.True(t, base.HasChild(unit.ID()))
	assert.Len(t, outcome.HandlingUnits, 2)

	outcome, err = manager.Remove(unit, base)
	require.NoError(t, err)
	assert.False(t, unit.HasBase())
	assert.Empty(t, base.Contains())
	assert.Len(t, outcome.HandlingUnits, 2)

	_, err = manager.Remove(unit, base)
	require.ErrorIs(t, err, services.ErrHandlingUnitNotInBase)
}

func TestCompositionManager_AssignRejectsCycles(t *testing.T) {
	a, b, c := newUnit(t, "a"), newUnit(t, "b"), newUnit(t, "c")
	manager := services.NewCompositionManager(lookupOf(a, b, c))

	_, err := manager.Assign(a, a)
	require.ErrorIs(t, err, handlingunit.ErrSelfComposition)

	// a > b > c
	_, err = manager.Assign(b, a)
	require.NoError(t, err)
	_, err = manager.Assign(c, b)
	require.NoError(t, err)

	_, err = manager.Assign(a, c)
	require.ErrorIs(t, err, services.ErrCompositionCycle)
	assert.False(t, a.HasBase())
	assert.Empty(t, c.Contains())
}

func TestCompositionManager_Move(t *testing.T) {
	oldBase, newBase, unit := newUnit(t, "old"), newUnit(t, "new"), newUnit(t, "unit")
	manager := services.NewCompositionManager(lookupOf(oldBase, newBase, unit))

	_, err := manager.Assign(unit, oldBase)
	require.NoError(t, err)

	outcome, err := manager.Move(unit, newBase)
	require.NoError(t, err)

	assert.True(t, unit.IsChildOf(newBase.ID()))
	assert.Empty(t, oldBase.Contains())
	assert.Equal(t, ids(t, "unit"), newBase.Contains())
	assert.Len(t, outcome.HandlingUnits, 3)
}

func TestCompositionManager_Free(t *testing.T) {
	base := newUnit(t, "1")
	units := []*handlingunit.HandlingUnit{base}
	for _, id := range []string{"2", "3", "4", "5"} {
		units = append(units, newUnit(t, id))
	}
	grandchild := newUnit(t, "6")
	units = append(units, grandchild)
	manager := services.NewCompositionManager(lookupOf(units...))

	for _, child := range units[1:5] {
		_, err := manager.Assign(child, base)
		require.NoError(t, err)
	}
	_, err := manager.Assign(grandchild, units[1])
	require.NoError(t, err)

	_, freed, err := manager.Free(base)
	require.NoError(t, err)

	assert.Equal(t, ids(t, "2", "3", "4", "5"), freed)
	assert.Empty(t, base.Contains())
	for _, child := range units[1:5] {
		assert.False(t, child.HasBase())
	}
	assert.True(t, grandchild.IsChildOf(units[1].ID()), "grandchildren keep their edges")
}

func TestCompositionManager_FlatContains(t *testing.T) {
	root, mid, leaf, other := newUnit(t, "root"), newUnit(t, "mid"), newUnit(t, "leaf"), newUnit(t, "other")
	manager := services.NewCompositionManager(lookupOf(root, mid, leaf, other))

	_, err := manager.Assign(mid, root)
	require.NoError(t, err)
	_, err = manager.Assign(leaf, mid)
	require.NoError(t, err)
	_, err = manager.Assign(other, root)
	require.NoError(t, err)

	flat, err := manager.FlatContains(root)
	require.NoError(t, err)
	assert.ElementsMatch(t, ids(t, "mid", "leaf", "other"), flat)

	t.Run("dropping a nested unit takes its subtree out of the closure", func(t *testing.T) {
		site := newSite(t, "A", location.Random, location.Dimension{})
		_, err := services.NewDropPickProtocol().Drop(*site, mid, nil, root)
		require.NoError(t, err)

		flat, err := manager.FlatContains(root)
		require.NoError(t, err)
		assert.Equal(t, ids(t, "other"), flat)

		sub, err := manager.FlatContains(mid)
		require.NoError(t, err)
		assert.Equal(t, ids(t, "leaf"), sub)
	})
}
