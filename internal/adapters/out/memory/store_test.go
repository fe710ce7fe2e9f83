package memory_test

import (
	"testing"

	"warehouse/internal/adapters/out/memory"
	"warehouse/internal/core/domain/model/handlingunit"
	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/location"
	"warehouse/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustID(t *testing.T, s string) kernel.ID {
	t.Helper()
	id, err := kernel.NewID(s)
	require.NoError(t, err)
	return id
}

func newLocation(t *testing.T, id string) *location.Location {
	t.Helper()
	loc, err := location.NewLocation(mustID(t, id), location.FIFO, location.Dimension{})
	require.NoError(t, err)
	return loc
}

func newUnit(t *testing.T, id string) *handlingunit.HandlingUnit {
	t.Helper()
	hu, err := handlingunit.NewHandlingUnit(mustID(t, id), 1, 0,
		kernel.HeightNotRelevant, kernel.LengthNotRelevant, kernel.WidthNotRelevant)
	require.NoError(t, err)
	return hu
}

func TestUnitOfWork_TransactionLifecycle(t *testing.T) {
	store := memory.NewStore()
	uow := store.Create()

	require.ErrorIs(t, uow.Commit(t.Context()), memory.ErrNoTransaction)
	require.ErrorIs(t, uow.Rollback(t.Context()), memory.ErrNoTransaction)

	require.NoError(t, uow.Begin(t.Context()))
	require.NoError(t, uow.LocationRepository().Add(t.Context(), newLocation(t, "A")))
	require.NoError(t, uow.Rollback(t.Context()))

	count, err := store.Create().LocationRepository().Count(t.Context())
	require.NoError(t, err)
	assert.Zero(t, count)

	require.NoError(t, uow.Begin(t.Context()))
	require.NoError(t, uow.LocationRepository().Add(t.Context(), newLocation(t, "A")))

	other := store.Create()
	count, err = other.LocationRepository().Count(t.Context())
	require.NoError(t, err)
	assert.Zero(t, count, "staged writes are invisible to other units of work")

	require.NoError(t, uow.Commit(t.Context()))
	count, err = other.LocationRepository().Count(t.Context())
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestUnitOfWork_AddDuplicate(t *testing.T) {
	store := memory.NewStore()
	repo := store.Create().LocationRepository()

	require.NoError(t, repo.Add(t.Context(), newLocation(t, "A")))
	require.ErrorIs(t, repo.Add(t.Context(), newLocation(t, "A")), errs.ErrObjectAlreadyExists)
}

func TestUnitOfWork_CompareAndSwap(t *testing.T) {
	store := memory.NewStore()
	require.NoError(t, store.Create().LocationRepository().Add(t.Context(), newLocation(t, "A")))

	first, second := store.Create(), store.Create()
	require.NoError(t, first.Begin(t.Context()))
	require.NoError(t, second.Begin(t.Context()))

	a, err := first.LocationRepository().Get(t.Context(), mustID(t, "A"))
	require.NoError(t, err)
	b, err := second.LocationRepository().Get(t.Context(), mustID(t, "A"))
	require.NoError(t, err)

	a.MarkError()
	require.NoError(t, first.LocationRepository().Update(t.Context(), a))
	a.ClearError()
	require.NoError(t, first.LocationRepository().Update(t.Context(), a), "repeated writes fold into one change")
	assert.Equal(t, 2, a.Version())

	b.MarkError()
	require.NoError(t, second.LocationRepository().Update(t.Context(), b))

	require.NoError(t, first.Commit(t.Context()))
	err = second.Commit(t.Context())
	require.ErrorIs(t, err, errs.ErrConcurrentModification)

	stored, err := store.Create().LocationRepository().Get(t.Context(), mustID(t, "A"))
	require.NoError(t, err)
	assert.Equal(t, 2, stored.Version())
	assert.False(t, stored.Status().IsError(), "the losing writer changed nothing")

	stale := store.Create()
	require.NoError(t, stale.Begin(t.Context()))
	b.MarkError()
	err = stale.LocationRepository().Update(t.Context(), b)
	require.ErrorIs(t, err, errs.ErrConcurrentModification, "stale versions fail before commit")
}

func TestUnitOfWork_IdentityMap(t *testing.T) {
	store := memory.NewStore()
	hu := newUnit(t, "1")
	require.NoError(t, hu.PlaceOn(mustID(t, "A"), nil))
	require.NoError(t, store.Create().HandlingUnitRepository().Add(t.Context(), hu))

	uow := store.Create()
	require.NoError(t, uow.Begin(t.Context()))

	onLocation, err := uow.HandlingUnitRepository().GetAllOnLocation(t.Context(), mustID(t, "A"))
	require.NoError(t, err)
	require.Len(t, onLocation, 1)

	byID, err := uow.HandlingUnitRepository().Get(t.Context(), mustID(t, "1"))
	require.NoError(t, err)
	assert.Same(t, onLocation[0], byID)
	assert.NotSame(t, hu, byID, "records are restored, never shared across units of work")
}

func TestHandlingUnitRepository_DerivesContains(t *testing.T) {
	store := memory.NewStore()
	repo := store.Create().HandlingUnitRepository()

	base := newUnit(t, "base")
	require.NoError(t, repo.Add(t.Context(), base))
	for _, id := range []string{"c2", "c1"} {
		child := newUnit(t, id)
		require.NoError(t, child.AttachTo(base.ID()))
		require.NoError(t, repo.Add(t.Context(), child))
	}

	fresh := store.Create().HandlingUnitRepository()
	stored, err := fresh.Get(t.Context(), base.ID())
	require.NoError(t, err)
	assert.Equal(t, []kernel.ID{mustID(t, "c1"), mustID(t, "c2")}, stored.Contains())

	children, err := fresh.GetChildren(t.Context(), base.ID())
	require.NoError(t, err)
	assert.Len(t, children, 2)
}

func TestHandlingUnitRepository_Ordering(t *testing.T) {
	store := memory.NewStore()
	repo := store.Create().HandlingUnitRepository()
	loc := mustID(t, "A")

	for i, id := range []string{"x", "y", "z"} {
		hu := newUnit(t, id)
		pos := 3 - i
		require.NoError(t, hu.PlaceOn(loc, &pos))
		require.NoError(t, repo.Add(t.Context(), hu))
	}
	for _, id := range []string{"b", "a"} {
		require.NoError(t, repo.Add(t.Context(), newUnit(t, id)))
	}

	onLocation, err := repo.GetAllOnLocation(t.Context(), loc)
	require.NoError(t, err)
	require.Len(t, onLocation, 3)
	assert.Equal(t, "z", onLocation[0].ID().String())
	assert.Equal(t, "x", onLocation[2].ID().String())

	page, err := repo.GetAll(t.Context(), 1, 2)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "b", page[0].ID().String())
	assert.Equal(t, "x", page[1].ID().String())

	empty, err := repo.GetAll(t.Context(), 10, 0)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestHandlingUnitRepository_KeepsFractionalVolume(t *testing.T) {
	store := memory.NewStore()
	hu, err := handlingunit.NewHandlingUnit(mustID(t, "1"), 7, 0.25,
		kernel.HeightLow, kernel.LengthNotRelevant, kernel.WidthNotRelevant)
	require.NoError(t, err)
	require.NoError(t, store.Create().HandlingUnitRepository().Add(t.Context(), hu))

	stored, err := store.Create().HandlingUnitRepository().Get(t.Context(), hu.ID())
	require.NoError(t, err)
	assert.InDelta(t, 0.25, stored.Volume(), 1e-9)
	assert.Equal(t, 7, stored.Weight())
}

func TestRepositories_Delete(t *testing.T) {
	store := memory.NewStore()
	uow := store.Create()
	require.NoError(t, uow.Begin(t.Context()))

	loc := newLocation(t, "A")
	require.NoError(t, uow.LocationRepository().Add(t.Context(), loc))
	require.NoError(t, uow.LocationRepository().Delete(t.Context(), loc))
	require.ErrorIs(t, uow.LocationRepository().Delete(t.Context(), loc), errs.ErrObjectNotFound)
	require.NoError(t, uow.Commit(t.Context()))

	_, err := store.Create().LocationRepository().Get(t.Context(), mustID(t, "A"))
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestRepositories_DeleteComparesVersion(t *testing.T) {
	ctx := t.Context()
	store := memory.NewStore()
	seed := store.Create()
	require.NoError(t, seed.LocationRepository().Add(ctx, newLocation(t, "A")))
	require.NoError(t, seed.HandlingUnitRepository().Add(ctx, newUnit(t, "1")))

	stale := store.Create()
	require.NoError(t, stale.Begin(ctx))
	loc, err := stale.LocationRepository().Get(ctx, mustID(t, "A"))
	require.NoError(t, err)
	hu, err := stale.HandlingUnitRepository().Get(ctx, mustID(t, "1"))
	require.NoError(t, err)
	require.NoError(t, stale.HandlingUnitRepository().Delete(ctx, hu))
	require.NoError(t, stale.LocationRepository().Delete(ctx, loc))

	writer := store.Create()
	current, err := writer.LocationRepository().Get(ctx, mustID(t, "A"))
	require.NoError(t, err)
	require.NoError(t, writer.LocationRepository().Update(ctx, current))

	require.ErrorIs(t, stale.Commit(ctx), errs.ErrConcurrentModification)

	reader := store.Create()
	_, err = reader.LocationRepository().Get(ctx, mustID(t, "A"))
	require.NoError(t, err)
	_, err = reader.HandlingUnitRepository().Get(ctx, mustID(t, "1"))
	require.NoError(t, err, "nothing of a conflicting commit is written")

	late := store.Create()
	require.NoError(t, late.Begin(ctx))
	require.ErrorIs(t, late.LocationRepository().Delete(ctx, loc), errs.ErrConcurrentModification)
}
