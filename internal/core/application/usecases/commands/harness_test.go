package commands_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"warehouse/internal/adapters/out/memory"
	"warehouse/internal/core/application/usecases/commands"
	"warehouse/internal/core/domain/model/handlingunit"
	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/location"

	"github.com/stretchr/testify/require"
)

// warehouse wires command handlers to an in-memory store for scenario tests.
type warehouse struct {
	t     *testing.T
	store *memory.Store
}

func newWarehouse(t *testing.T) *warehouse {
	t.Helper()
	return &warehouse{t: t, store: memory.NewStore()}
}

func (w *warehouse) uow() commands.UoWFactory {
	return commands.FuncUoWFactory(func() commands.UoW { return w.store.Create() })
}

func (w *warehouse) handlingUnitUoW() commands.HandlingUnitUoWFactory {
	return commands.FuncHandlingUnitUoWFactory(func() commands.HandlingUnitUoW { return w.store.Create() })
}

func (w *warehouse) locationUoW() commands.LocationUoWFactory {
	return commands.FuncLocationUoWFactory(func() commands.LocationUoW { return w.store.Create() })
}

func (w *warehouse) zoneUoW() commands.ZoneUoWFactory {
	return commands.FuncZoneUoWFactory(func() commands.ZoneUoW { return w.store.Create() })
}

// interleavedUoW runs beforeCommit right before the wrapped unit of work commits, standing in
// for a concurrent operation that wins the race.
type interleavedUoW struct {
	commands.UoW
	beforeCommit func()
}

func (u interleavedUoW) Commit(ctx context.Context) error {
	u.beforeCommit()
	return u.UoW.Commit(ctx)
}

func (w *warehouse) uowCommittingAfter(concurrent func()) commands.UoWFactory {
	return commands.FuncUoWFactory(func() commands.UoW {
		return interleavedUoW{UoW: w.store.Create(), beforeCommit: concurrent}
	})
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func mustID(t *testing.T, s string) kernel.ID {
	t.Helper()
	id, err := kernel.NewID(s)
	require.NoError(t, err)
	return id
}

func (w *warehouse) addLocation(id string, kind location.AccessKind, dim location.Dimension) {
	w.t.Helper()
	cmd, err := commands.NewCreateLocationCommand(mustID(w.t, id), kind, dim, "test")
	require.NoError(w.t, err)
	require.NoError(w.t, commands.NewCreateLocationCommandHandler(w.locationUoW()).Handle(w.t.Context(), cmd))
}

func (w *warehouse) addUnits(ids ...string) {
	w.t.Helper()
	for _, id := range ids {
		w.addUnit(id, commands.HandlingUnitMeasures{Weight: 10, Volume: 0.1})
	}
}

func (w *warehouse) addUnit(id string, measures commands.HandlingUnitMeasures) {
	w.t.Helper()
	cmd, err := commands.NewCreateHandlingUnitCommand(mustID(w.t, id), measures, "test")
	require.NoError(w.t, err)
	require.NoError(w.t, commands.NewCreateHandlingUnitCommandHandler(w.handlingUnitUoW()).Handle(w.t.Context(), cmd))
}

func (w *warehouse) drop(locationID, unitID string) error {
	w.t.Helper()
	cmd, err := commands.NewDropCommand(mustID(w.t, locationID), mustID(w.t, unitID), "test")
	require.NoError(w.t, err)
	return commands.NewDropCommandHandler(w.uow(), discardLogger()).Handle(w.t.Context(), cmd)
}

func (w *warehouse) pick(locationID string, unitID *string) (*handlingunit.HandlingUnit, error) {
	w.t.Helper()
	var target *kernel.ID
	if unitID != nil {
		id := mustID(w.t, *unitID)
		target = &id
	}
	cmd, err := commands.NewPickCommand(mustID(w.t, locationID), target, "test")
	require.NoError(w.t, err)
	return commands.NewPickCommandHandler(w.uow(), discardLogger()).Handle(w.t.Context(), cmd)
}

func (w *warehouse) assign(unitID, baseID string) error {
	w.t.Helper()
	cmd, err := commands.NewAssignCommand(mustID(w.t, unitID), mustID(w.t, baseID), "test")
	require.NoError(w.t, err)
	_, err = commands.NewAssignCommandHandler(w.handlingUnitUoW()).Handle(w.t.Context(), cmd)
	return err
}

func (w *warehouse) location(id string) *location.Location {
	w.t.Helper()
	loc, err := w.store.Create().LocationRepository().Get(w.t.Context(), mustID(w.t, id))
	require.NoError(w.t, err)
	return loc
}

func (w *warehouse) unit(id string) *handlingunit.HandlingUnit {
	w.t.Helper()
	hu, err := w.store.Create().HandlingUnitRepository().Get(w.t.Context(), mustID(w.t, id))
	require.NoError(w.t, err)
	return hu
}

func (w *warehouse) unitsOn(id string) []string {
	w.t.Helper()
	units, err := w.store.Create().HandlingUnitRepository().GetAllOnLocation(w.t.Context(), mustID(w.t, id))
	require.NoError(w.t, err)
	ids := make([]string, 0, len(units))
	for _, hu := range units {
		ids = append(ids, hu.ID().String())
	}
	return ids
}

func ptr(s string) *string {
	return &s
}
