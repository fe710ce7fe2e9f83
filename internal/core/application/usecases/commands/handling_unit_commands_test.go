package commands_test

import (
	"testing"

	"warehouse/internal/core/application/usecases/commands"
	"warehouse/internal/core/domain/model/handlingunit"
	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/location"
	"warehouse/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewCreateHandlingUnitCommand_RejectsInvalidMeasures(t *testing.T) {
	_, err := commands.NewCreateHandlingUnitCommand(mustID(t, "1"), commands.HandlingUnitMeasures{
		Weight: -1,
		Volume: -0.5,
		Height: kernel.HeightCategory(42),
	}, "")

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.Contains(t, err.Error(), "weight")
	assert.Contains(t, err.Error(), "volume")
	assert.Contains(t, err.Error(), "height")
}

func TestCreateHandlingUnitCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewCreateHandlingUnitCommand(mustID(t, "PAL-1"), commands.HandlingUnitMeasures{
		Weight: 250,
		Volume: 1.2,
		Height: kernel.HeightMiddle,
	}, "receiving")
	require.NoError(t, err)

	repo := new(MockHandlingUnitRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("HandlingUnitRepository").Return(repo).Once(),
		repo.On("Add", ctx, mock.MatchedBy(func(hu *handlingunit.HandlingUnit) bool {
			return hu.ID().String() == "PAL-1" &&
				hu.Weight() == 250 &&
				hu.Height() == kernel.HeightMiddle &&
				!hu.IsPlaced() &&
				hu.Audit().UpdatedBy() == "receiving"
		})).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := new(MockHandlingUnitUoWFactory)
	factory.On("Create").Return(uow).Once()

	err = commands.NewCreateHandlingUnitCommandHandler(factory).Handle(ctx, cmd)

	require.NoError(t, err)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestCreateOrUpdateHandlingUnitCommandHandler_Handle(t *testing.T) {
	t.Run("creates a missing unit", func(t *testing.T) {
		w := newWarehouse(t)
		cmd, err := commands.NewCreateOrUpdateHandlingUnitCommand(mustID(t, "1"),
			commands.HandlingUnitMeasures{Weight: 5}, "")
		require.NoError(t, err)

		created, err := commands.NewCreateOrUpdateHandlingUnitCommandHandler(w.handlingUnitUoW()).Handle(t.Context(), cmd)

		require.NoError(t, err)
		assert.True(t, created)
		assert.Equal(t, 5, w.unit("1").Weight())
	})

	t.Run("updates measures and keeps placement", func(t *testing.T) {
		w := newWarehouse(t)
		w.addLocation("A", location.FIFO, location.Dimension{})
		w.addUnits("1")
		require.NoError(t, w.drop("A", "1"))

		cmd, err := commands.NewCreateOrUpdateHandlingUnitCommand(mustID(t, "1"),
			commands.HandlingUnitMeasures{Weight: 99, Volume: 2, Width: kernel.WidthWide}, "ops")
		require.NoError(t, err)

		created, err := commands.NewCreateOrUpdateHandlingUnitCommandHandler(w.handlingUnitUoW()).Handle(t.Context(), cmd)

		require.NoError(t, err)
		assert.False(t, created)
		hu := w.unit("1")
		assert.Equal(t, 99, hu.Weight())
		assert.Equal(t, kernel.WidthWide, hu.Width())
		assert.True(t, hu.IsOn(mustID(t, "A")))
		assert.Equal(t, "ops", hu.Audit().UpdatedBy())
	})
}

func TestDeleteHandlingUnitCommandHandler_Handle(t *testing.T) {
	w := newWarehouse(t)
	w.addLocation("A", location.FIFO, location.Dimension{})
	w.addUnits("top", "1", "2", "3", "c1", "c2")
	for _, id := range []string{"1", "2", "3"} {
		require.NoError(t, w.drop("A", id))
	}
	require.NoError(t, w.assign("2", "top"))
	require.NoError(t, w.assign("c1", "2"))
	require.NoError(t, w.assign("c2", "2"))

	cmd, err := commands.NewDeleteHandlingUnitCommand(mustID(t, "2"), "ops")
	require.NoError(t, err)
	handler := commands.NewDeleteHandlingUnitCommandHandler(w.uow())

	require.NoError(t, handler.Handle(t.Context(), cmd))

	assert.Equal(t, []string{"1", "3"}, w.unitsOn("A"))
	assert.Equal(t, 2, *w.unit("3").LocaPos())
	assert.False(t, w.location("A").Status().IsError())
	assert.False(t, w.unit("c1").HasBase())
	assert.False(t, w.unit("c2").HasBase())
	assert.Empty(t, w.unit("top").Contains())

	_, err = w.store.Create().HandlingUnitRepository().Get(t.Context(), mustID(t, "2"))
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	require.ErrorIs(t, handler.Handle(t.Context(), cmd), errs.ErrObjectNotFound)
}

func TestDeleteHandlingUnitCommandHandler_Handle_ConflictsWithDropCommittedMeanwhile(t *testing.T) {
	w := newWarehouse(t)
	w.addLocation("A", location.FIFO, location.Dimension{})
	w.addUnits("1")

	handler := commands.NewDeleteHandlingUnitCommandHandler(w.uowCommittingAfter(func() {
		require.NoError(t, w.drop("A", "1"))
	}))
	cmd, err := commands.NewDeleteHandlingUnitCommand(mustID(t, "1"), "ops")
	require.NoError(t, err)

	require.ErrorIs(t, handler.Handle(t.Context(), cmd), errs.ErrConcurrentModification)

	assert.Equal(t, []string{"1"}, w.unitsOn("A"))
	assert.Equal(t, 1, *w.unit("1").LocaPos())
}
