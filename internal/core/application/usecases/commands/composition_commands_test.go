package commands_test

import (
	"testing"

	"warehouse/internal/core/application/usecases/commands"
	"warehouse/internal/core/domain/model/handlingunit"
	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/location"
	"warehouse/internal/core/domain/services"
	"warehouse/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAssignCommand_RequiresBothIDs(t *testing.T) {
	_, err := commands.NewAssignCommand(mustID(t, "1"), kernel.ID{}, "")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	var zero commands.AssignCommand
	require.ErrorIs(t, zero.Validate(), commands.ErrAssignCommandIsNotConstructed)
}

func TestAssignAndRemove_RoundTrip(t *testing.T) {
	w := newWarehouse(t)
	w.addUnits("base", "1")

	assignCmd, err := commands.NewAssignCommand(mustID(t, "1"), mustID(t, "base"), "")
	require.NoError(t, err)
	base, err := commands.NewAssignCommandHandler(w.handlingUnitUoW()).Handle(t.Context(), assignCmd)
	require.NoError(t, err)
	assert.Equal(t, []kernel.ID{mustID(t, "1")}, base.Contains())
	assert.True(t, w.unit("1").IsChildOf(mustID(t, "base")))

	removeCmd, err := commands.NewRemoveCommand(mustID(t, "1"), mustID(t, "base"), "")
	require.NoError(t, err)
	handler := commands.NewRemoveCommandHandler(w.handlingUnitUoW())
	base, err = handler.Handle(t.Context(), removeCmd)
	require.NoError(t, err)
	assert.Empty(t, base.Contains())
	assert.False(t, w.unit("1").HasBase())
	assert.Empty(t, w.unit("base").Contains())

	_, err = handler.Handle(t.Context(), removeCmd)
	require.ErrorIs(t, err, services.ErrHandlingUnitNotInBase)
}

func TestAssign_RejectsCyclesAndSelf(t *testing.T) {
	w := newWarehouse(t)
	w.addUnits("a", "b", "c")
	require.NoError(t, w.assign("b", "a"))
	require.NoError(t, w.assign("c", "b"))

	require.ErrorIs(t, w.assign("a", "c"), services.ErrCompositionCycle)
	require.ErrorIs(t, w.assign("a", "a"), handlingunit.ErrSelfComposition)
	assert.False(t, w.unit("a").HasBase())
}

func TestAssign_DoesNotTouchLocations(t *testing.T) {
	w := newWarehouse(t)
	w.addLocation("A", location.FIFO, location.Dimension{})
	w.addUnits("base", "1")
	require.NoError(t, w.drop("A", "1"))
	before := w.location("A").Version()

	require.NoError(t, w.assign("1", "base"))

	assert.True(t, w.unit("1").IsOn(mustID(t, "A")))
	assert.Equal(t, before, w.location("A").Version())
}

func TestMove_ReparentsInOneStep(t *testing.T) {
	w := newWarehouse(t)
	w.addUnits("old", "new", "1")
	require.NoError(t, w.assign("1", "old"))

	cmd, err := commands.NewMoveCommand(mustID(t, "1"), mustID(t, "new"), "")
	require.NoError(t, err)
	unit, err := commands.NewMoveCommandHandler(w.handlingUnitUoW()).Handle(t.Context(), cmd)

	require.NoError(t, err)
	assert.True(t, unit.IsChildOf(mustID(t, "new")))
	assert.Empty(t, w.unit("old").Contains())
	assert.Equal(t, []kernel.ID{mustID(t, "1")}, w.unit("new").Contains())
}

func TestFree_ReturnsDirectChildren(t *testing.T) {
	w := newWarehouse(t)
	w.addUnits("1", "2", "3", "4", "5", "6")
	for _, id := range []string{"2", "3", "4", "5"} {
		require.NoError(t, w.assign(id, "1"))
	}
	require.NoError(t, w.assign("6", "5"))

	cmd, err := commands.NewFreeCommand(mustID(t, "1"), "")
	require.NoError(t, err)
	freed, err := commands.NewFreeCommandHandler(w.handlingUnitUoW()).Handle(t.Context(), cmd)

	require.NoError(t, err)
	assert.Equal(t, []kernel.ID{mustID(t, "2"), mustID(t, "3"), mustID(t, "4"), mustID(t, "5")}, freed)
	assert.Empty(t, w.unit("1").Contains())
	for _, id := range []string{"2", "3", "4", "5"} {
		assert.False(t, w.unit(id).HasBase())
	}
	assert.True(t, w.unit("6").IsChildOf(mustID(t, "5")), "grandchildren keep their edges")
}

func TestFree_UnknownBase(t *testing.T) {
	w := newWarehouse(t)

	cmd, err := commands.NewFreeCommand(mustID(t, "missing"), "")
	require.NoError(t, err)
	_, err = commands.NewFreeCommandHandler(w.handlingUnitUoW()).Handle(t.Context(), cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}
