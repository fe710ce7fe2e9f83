package cmd

import (
	"context"
	"log/slog"

	httpin "warehouse/internal/adapters/in/http"
	"warehouse/internal/adapters/in/topology"
	"warehouse/internal/core/application/usecases/commands"
	"warehouse/internal/core/application/usecases/queries"
	"warehouse/internal/core/ports"
	"warehouse/internal/jobs"
	"warehouse/internal/pkg/telemetry"
)

// CompositionRoot builds every handler, job and adapter from one storage-level unit of work
// factory. Postgres and the in-memory store both satisfy ports.UnitOfWorkFactory.
type CompositionRoot struct {
	configs    Config
	uowFactory ports.UnitOfWorkFactory
	notifier   ports.ErrorStatusNotifier
	auditor    *telemetry.Auditor
	logger     *slog.Logger
}

// NewCompositionRoot wires the application. notifier may be nil, error status reports are
// then only logged.
func NewCompositionRoot(
	configs Config,
	uowFactory ports.UnitOfWorkFactory,
	notifier ports.ErrorStatusNotifier,
	logger *slog.Logger,
) *CompositionRoot {
	return &CompositionRoot{
		configs:    configs,
		uowFactory: uowFactory,
		notifier:   notifier,
		auditor:    telemetry.NewAuditor(logger),
		logger:     logger,
	}
}

func (c *CompositionRoot) locationUoWFactory() commands.LocationUoWFactory {
	return commands.FuncLocationUoWFactory(func() commands.LocationUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) handlingUnitUoWFactory() commands.HandlingUnitUoWFactory {
	return commands.FuncHandlingUnitUoWFactory(func() commands.HandlingUnitUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) crossUoWFactory() commands.UoWFactory {
	return commands.FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) zoneUoWFactory() commands.ZoneUoWFactory {
	return commands.FuncZoneUoWFactory(func() commands.ZoneUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) readerFactory() queries.ReaderFactory {
	return queries.FuncReaderFactory(func() queries.Reader {
		return c.uowFactory.Create()
	})
}

// Command handlers

func (c *CompositionRoot) CreateCreateLocationCommandHandler() commands.CreateLocationCommandHandler {
	return commands.NewCreateLocationCommandHandler(c.locationUoWFactory())
}

func (c *CompositionRoot) CreateDeleteLocationCommandHandler() commands.DeleteLocationCommandHandler {
	return commands.NewDeleteLocationCommandHandler(c.crossUoWFactory())
}

func (c *CompositionRoot) CreateUpdateLocationStatusCommandHandler() commands.UpdateLocationStatusCommandHandler {
	return commands.NewUpdateLocationStatusCommandHandler(c.locationUoWFactory())
}

func (c *CompositionRoot) CreateResetErrorStatusCommandHandler() commands.ResetErrorStatusCommandHandler {
	return commands.NewResetErrorStatusCommandHandler(c.locationUoWFactory())
}

func (c *CompositionRoot) CreateCreateHandlingUnitCommandHandler() commands.CreateHandlingUnitCommandHandler {
	return commands.NewCreateHandlingUnitCommandHandler(c.handlingUnitUoWFactory())
}

func (c *CompositionRoot) CreateCreateOrUpdateHandlingUnitCommandHandler() commands.CreateOrUpdateHandlingUnitCommandHandler {
	return commands.NewCreateOrUpdateHandlingUnitCommandHandler(c.handlingUnitUoWFactory())
}

func (c *CompositionRoot) CreateDeleteHandlingUnitCommandHandler() commands.DeleteHandlingUnitCommandHandler {
	return commands.NewDeleteHandlingUnitCommandHandler(c.crossUoWFactory())
}

func (c *CompositionRoot) CreateDropCommandHandler() commands.DropCommandHandler {
	return commands.NewDropCommandHandler(c.crossUoWFactory(), c.logger)
}

func (c *CompositionRoot) CreatePickCommandHandler() commands.PickCommandHandler {
	return commands.NewPickCommandHandler(c.crossUoWFactory(), c.logger)
}

func (c *CompositionRoot) CreateAssignCommandHandler() commands.AssignCommandHandler {
	return commands.NewAssignCommandHandler(c.handlingUnitUoWFactory())
}

func (c *CompositionRoot) CreateRemoveCommandHandler() commands.RemoveCommandHandler {
	return commands.NewRemoveCommandHandler(c.handlingUnitUoWFactory())
}

func (c *CompositionRoot) CreateMoveCommandHandler() commands.MoveCommandHandler {
	return commands.NewMoveCommandHandler(c.handlingUnitUoWFactory())
}

func (c *CompositionRoot) CreateFreeCommandHandler() commands.FreeCommandHandler {
	return commands.NewFreeCommandHandler(c.handlingUnitUoWFactory())
}

func (c *CompositionRoot) CreateCreateOrUpdateZoneCommandHandler() commands.CreateOrUpdateZoneCommandHandler {
	return commands.NewCreateOrUpdateZoneCommandHandler(c.zoneUoWFactory())
}

func (c *CompositionRoot) CreateDeleteZoneCommandHandler() commands.DeleteZoneCommandHandler {
	return commands.NewDeleteZoneCommandHandler(c.zoneUoWFactory())
}

func (c *CompositionRoot) CreateAddLocationToZoneCommandHandler() commands.AddLocationToZoneCommandHandler {
	return commands.NewAddLocationToZoneCommandHandler(c.zoneUoWFactory())
}

func (c *CompositionRoot) CreateMoveLocationToZoneCommandHandler() commands.MoveLocationToZoneCommandHandler {
	return commands.NewMoveLocationToZoneCommandHandler(c.zoneUoWFactory())
}

func (c *CompositionRoot) CreateInitZoneCommandHandler() commands.InitZoneCommandHandler {
	return commands.NewInitZoneCommandHandler(c.zoneUoWFactory())
}

func (c *CompositionRoot) CreateClearZoneCommandHandler() commands.ClearZoneCommandHandler {
	return commands.NewClearZoneCommandHandler(c.zoneUoWFactory())
}

func (c *CompositionRoot) CreateClearAllZonesCommandHandler() commands.ClearAllZonesCommandHandler {
	return commands.NewClearAllZonesCommandHandler(c.zoneUoWFactory())
}

// Query handlers

func (c *CompositionRoot) CreateGetLocationQueryHandler() queries.GetLocationQueryHandler {
	return queries.NewGetLocationQueryHandler(c.readerFactory())
}

func (c *CompositionRoot) CreateGetAllLocationsQueryHandler() queries.GetAllLocationsQueryHandler {
	return queries.NewGetAllLocationsQueryHandler(c.readerFactory())
}

func (c *CompositionRoot) CreateGetAllContainingQueryHandler() queries.GetAllContainingQueryHandler {
	return queries.NewGetAllContainingQueryHandler(c.readerFactory())
}

func (c *CompositionRoot) CreateGetAllInErrorStatusQueryHandler() queries.GetAllInErrorStatusQueryHandler {
	return queries.NewGetAllInErrorStatusQueryHandler(c.readerFactory())
}

func (c *CompositionRoot) CreateGetAllFullQueryHandler() queries.GetAllFullQueryHandler {
	return queries.NewGetAllFullQueryHandler(c.readerFactory())
}

func (c *CompositionRoot) CreateGetAllWithFreeCapacityQueryHandler() queries.GetAllWithFreeCapacityQueryHandler {
	return queries.NewGetAllWithFreeCapacityQueryHandler(c.readerFactory())
}

func (c *CompositionRoot) CreateIsFullQueryHandler() queries.IsFullQueryHandler {
	return queries.NewIsFullQueryHandler(c.readerFactory())
}

func (c *CompositionRoot) CreateGetHandlingUnitQueryHandler() queries.GetHandlingUnitQueryHandler {
	return queries.NewGetHandlingUnitQueryHandler(c.readerFactory())
}

func (c *CompositionRoot) CreateGetAllHandlingUnitsQueryHandler() queries.GetAllHandlingUnitsQueryHandler {
	return queries.NewGetAllHandlingUnitsQueryHandler(c.readerFactory())
}

func (c *CompositionRoot) CreateGetHandlingUnitsOnLocationQueryHandler() queries.GetHandlingUnitsOnLocationQueryHandler {
	return queries.NewGetHandlingUnitsOnLocationQueryHandler(c.readerFactory())
}

func (c *CompositionRoot) CreateGetAvailablePicksQueryHandler() queries.GetAvailablePicksQueryHandler {
	return queries.NewGetAvailablePicksQueryHandler(c.readerFactory())
}

func (c *CompositionRoot) CreateFlatContainsQueryHandler() queries.FlatContainsQueryHandler {
	return queries.NewFlatContainsQueryHandler(c.readerFactory())
}

func (c *CompositionRoot) CreateGetZoneQueryHandler() queries.GetZoneQueryHandler {
	return queries.NewGetZoneQueryHandler(c.readerFactory())
}

func (c *CompositionRoot) CreateGetAllZonesQueryHandler() queries.GetAllZonesQueryHandler {
	return queries.NewGetAllZonesQueryHandler(c.readerFactory())
}

func (c *CompositionRoot) CreateGetZonesOfLocationQueryHandler() queries.GetZonesOfLocationQueryHandler {
	return queries.NewGetZonesOfLocationQueryHandler(c.readerFactory())
}

// HTTPCommands returns the command handlers the REST surface dispatches to, each measured
// by the auditor under its operation name.
func (c *CompositionRoot) HTTPCommands() httpin.Commands {
	a := c.auditor
	return httpin.Commands{
		CreateLocation:             telemetry.Measure(a, "createLocation", c.CreateCreateLocationCommandHandler().Handle),
		DeleteLocation:             telemetry.Measure(a, "deleteLocation", c.CreateDeleteLocationCommandHandler().Handle),
		UpdateLocationStatus:       telemetry.Measure(a, "updateLocationStatus", c.CreateUpdateLocationStatusCommandHandler().Handle),
		ResetErrorStatus:           telemetry.MeasureResult(a, "resetErrorStatus", c.CreateResetErrorStatusCommandHandler().Handle),
		CreateHandlingUnit:         telemetry.Measure(a, "createHandlingUnit", c.CreateCreateHandlingUnitCommandHandler().Handle),
		CreateOrUpdateHandlingUnit: telemetry.MeasureResult(a, "createOrUpdateHandlingUnit", c.CreateCreateOrUpdateHandlingUnitCommandHandler().Handle),
		DeleteHandlingUnit:         telemetry.Measure(a, "deleteHandlingUnit", c.CreateDeleteHandlingUnitCommandHandler().Handle),
		Drop:                       telemetry.Measure(a, "drop", c.CreateDropCommandHandler().Handle),
		Pick:                       telemetry.MeasureResult(a, "pick", c.CreatePickCommandHandler().Handle),
		Assign:                     telemetry.MeasureResult(a, "assign", c.CreateAssignCommandHandler().Handle),
		Remove:                     telemetry.MeasureResult(a, "remove", c.CreateRemoveCommandHandler().Handle),
		Move:                       telemetry.MeasureResult(a, "move", c.CreateMoveCommandHandler().Handle),
		Free:                       telemetry.MeasureResult(a, "free", c.CreateFreeCommandHandler().Handle),
		CreateOrUpdateZone:         telemetry.MeasureResult(a, "createOrUpdateZone", c.CreateCreateOrUpdateZoneCommandHandler().Handle),
		DeleteZone:                 telemetry.Measure(a, "deleteZone", c.CreateDeleteZoneCommandHandler().Handle),
		AddLocationToZone:          telemetry.MeasureResult(a, "addLocationToZone", c.CreateAddLocationToZoneCommandHandler().Handle),
		MoveLocationToZone:         telemetry.MeasureResult(a, "moveLocationToZone", c.CreateMoveLocationToZoneCommandHandler().Handle),
		InitZone:                   telemetry.MeasureResult(a, "initZone", c.CreateInitZoneCommandHandler().Handle),
		ClearZone:                  telemetry.MeasureResult(a, "clearZone", c.CreateClearZoneCommandHandler().Handle),
		ClearAllZones:              telemetry.MeasureResult(a, "clearAllZones", c.CreateClearAllZonesCommandHandler().Handle),
	}
}

// HTTPQueries returns the measured query handlers of the REST surface.
func (c *CompositionRoot) HTTPQueries() httpin.Queries {
	a := c.auditor
	return httpin.Queries{
		GetLocation:                telemetry.MeasureResult(a, "getLocation", c.CreateGetLocationQueryHandler().Handle),
		GetAllLocations:            telemetry.MeasureResult(a, "getAllLocations", c.CreateGetAllLocationsQueryHandler().Handle),
		GetAllContaining:           telemetry.MeasureResult(a, "getAllContaining", c.CreateGetAllContainingQueryHandler().Handle),
		GetAllInErrorStatus:        telemetry.MeasureResult(a, "getAllInErrorStatus", c.CreateGetAllInErrorStatusQueryHandler().Handle),
		GetAllFull:                 telemetry.MeasureResult(a, "getAllFull", c.CreateGetAllFullQueryHandler().Handle),
		GetAllWithFreeCapacity:     telemetry.MeasureResult(a, "getAllWithFreeCapacity", c.CreateGetAllWithFreeCapacityQueryHandler().Handle),
		IsFull:                     telemetry.MeasureResult(a, "isFull", c.CreateIsFullQueryHandler().Handle),
		GetHandlingUnit:            telemetry.MeasureResult(a, "getHandlingUnit", c.CreateGetHandlingUnitQueryHandler().Handle),
		GetAllHandlingUnits:        telemetry.MeasureResult(a, "getAllHandlingUnits", c.CreateGetAllHandlingUnitsQueryHandler().Handle),
		GetHandlingUnitsOnLocation: telemetry.MeasureResult(a, "getHandlingUnitsOnLocation", c.CreateGetHandlingUnitsOnLocationQueryHandler().Handle),
		GetAvailablePicks:          telemetry.MeasureResult(a, "getAvailablePicks", c.CreateGetAvailablePicksQueryHandler().Handle),
		FlatContains:               telemetry.MeasureResult(a, "flatContains", c.CreateFlatContainsQueryHandler().Handle),
		GetZone:                    telemetry.MeasureResult(a, "getZone", c.CreateGetZoneQueryHandler().Handle),
		GetAllZones:                telemetry.MeasureResult(a, "getAllZones", c.CreateGetAllZonesQueryHandler().Handle),
		GetZonesOfLocation:         telemetry.MeasureResult(a, "getZonesOfLocation", c.CreateGetZonesOfLocationQueryHandler().Handle),
	}
}

// NewHTTPServer builds the REST server. Changes without an X-User header are recorded under
// AUDIT_USER.
func (c *CompositionRoot) NewHTTPServer(ctx context.Context) (*httpin.Server, error) {
	return httpin.NewServer(ctx, c.HTTPCommands(), c.HTTPQueries(), c.auditor, c.configs.AuditUser, c.logger)
}

// NewSeeder returns a seeder that applies topologies through the command handlers.
func (c *CompositionRoot) NewSeeder() *topology.Seeder {
	return topology.NewSeeder(
		c.CreateCreateLocationCommandHandler(),
		c.CreateCreateHandlingUnitCommandHandler(),
		c.CreateDropCommandHandler(),
		c.CreateAssignCommandHandler(),
		c.CreateCreateOrUpdateZoneCommandHandler(),
		c.CreateInitZoneCommandHandler(),
		c.logger,
	)
}

// NewJobManager builds the error status report and telemetry report jobs.
func (c *CompositionRoot) NewJobManager() *jobs.JobManager {
	errorStatusReportJob := jobs.NewErrorStatusReportJob(
		c.CreateGetAllInErrorStatusQueryHandler(),
		c.notifier,
		c.configs.ErrorReportSchedule,
		c.logger,
	)
	telemetryReportJob := jobs.NewTelemetryReportJob(c.auditor, c.configs.TelemetryReportSchedule, c.logger)
	return jobs.NewJobManager(errorStatusReportJob, telemetryReportJob)
}
