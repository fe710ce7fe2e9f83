package http

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"warehouse/internal/core/application/usecases/commands"
	"warehouse/internal/core/application/usecases/queries"
	"warehouse/internal/core/domain/model/handlingunit"
	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/zone"
	"warehouse/internal/pkg/errs"
	"warehouse/internal/pkg/telemetry"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/oapi-codegen/runtime"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// UserHeader names the acting user of a request. Requests without it act as the server's
// default user.
const UserHeader = "X-User"

// Commands holds the write use cases the server dispatches to. Every field is the Handle
// method of a command handler, usually wrapped by telemetry.Measure.
type Commands struct {
	CreateLocation             func(context.Context, commands.CreateLocationCommand) error
	DeleteLocation             func(context.Context, commands.DeleteLocationCommand) error
	UpdateLocationStatus       func(context.Context, commands.UpdateLocationStatusCommand) error
	ResetErrorStatus           func(context.Context, commands.ResetErrorStatusCommand) (bool, error)
	CreateHandlingUnit         func(context.Context, commands.CreateHandlingUnitCommand) error
	CreateOrUpdateHandlingUnit func(context.Context, commands.CreateOrUpdateHandlingUnitCommand) (bool, error)
	DeleteHandlingUnit         func(context.Context, commands.DeleteHandlingUnitCommand) error
	Drop                       func(context.Context, commands.DropCommand) error
	Pick                       func(context.Context, commands.PickCommand) (*handlingunit.HandlingUnit, error)
	Assign                     func(context.Context, commands.AssignCommand) (*handlingunit.HandlingUnit, error)
	Remove                     func(context.Context, commands.RemoveCommand) (*handlingunit.HandlingUnit, error)
	Move                       func(context.Context, commands.MoveCommand) (*handlingunit.HandlingUnit, error)
	Free                       func(context.Context, commands.FreeCommand) ([]kernel.ID, error)
	CreateOrUpdateZone         func(context.Context, commands.CreateOrUpdateZoneCommand) (bool, error)
	DeleteZone                 func(context.Context, commands.DeleteZoneCommand) error
	AddLocationToZone          func(context.Context, commands.AddLocationToZoneCommand) (*zone.Zone, error)
	MoveLocationToZone         func(context.Context, commands.MoveLocationToZoneCommand) (*zone.Zone, error)
	InitZone                   func(context.Context, commands.InitZoneCommand) (*zone.Zone, error)
	ClearZone                  func(context.Context, commands.ClearZoneCommand) (*zone.Zone, error)
	ClearAllZones              func(context.Context, commands.ClearAllZonesCommand) (int, error)
}

// Queries holds the read use cases the server dispatches to.
type Queries struct {
	GetLocation                func(context.Context, queries.GetLocationQuery) (queries.LocationResponse, error)
	GetAllLocations            func(context.Context, queries.GetAllLocationsQuery) ([]queries.LocationResponse, error)
	GetAllContaining           func(context.Context, queries.GetAllContainingQuery) ([]queries.LocationResponse, error)
	GetAllInErrorStatus        func(context.Context, queries.GetAllInErrorStatusQuery) ([]queries.LocationResponse, error)
	GetAllFull                 func(context.Context, queries.GetAllFullQuery) ([]queries.LocationResponse, error)
	GetAllWithFreeCapacity     func(context.Context, queries.GetAllWithFreeCapacityQuery) ([]queries.LocationResponse, error)
	IsFull                     func(context.Context, queries.IsFullQuery) (bool, error)
	GetHandlingUnit            func(context.Context, queries.GetHandlingUnitQuery) (queries.HandlingUnitResponse, error)
	GetAllHandlingUnits        func(context.Context, queries.GetAllHandlingUnitsQuery) (queries.HandlingUnitPage, error)
	GetHandlingUnitsOnLocation func(context.Context, queries.GetHandlingUnitsOnLocationQuery) ([]queries.HandlingUnitResponse, error)
	GetAvailablePicks          func(context.Context, queries.GetAvailablePicksQuery) ([]queries.HandlingUnitResponse, error)
	FlatContains               func(context.Context, queries.FlatContainsQuery) ([]kernel.ID, error)
	GetZone                    func(context.Context, queries.GetZoneQuery) (queries.ZoneResponse, error)
	GetAllZones                func(context.Context, queries.GetAllZonesQuery) (queries.ZonePage, error)
	GetZonesOfLocation         func(context.Context, queries.GetZonesOfLocationQuery) ([]queries.ZoneResponse, error)
}

// Server exposes the warehouse use cases over REST. It coordinates between HTTP handlers
// and application use cases.
type Server struct {
	commands    Commands
	queries     Queries
	auditor     *telemetry.Auditor
	doc         *openapi3.T
	defaultUser string
	logger      *slog.Logger
}

// NewServer loads the embedded OpenAPI document and prepares the handlers. defaultUser is
// recorded as the author of changes made by requests without a UserHeader.
func NewServer(
	ctx context.Context,
	cmds Commands,
	qrs Queries,
	auditor *telemetry.Auditor,
	defaultUser string,
	logger *slog.Logger,
) (*Server, error) {
	doc, err := LoadOpenAPI(ctx)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(defaultUser) == "" {
		defaultUser = kernel.DefaultAuditUser
	}
	return &Server{
		commands:    cmds,
		queries:     qrs,
		auditor:     auditor,
		doc:         doc,
		defaultUser: defaultUser,
		logger:      logger.With("component", "http_server"),
	}, nil
}

// Register installs middleware and routes on e.
func (s *Server) Register(e *echo.Echo) error {
	validator, err := requestValidator(s.doc)
	if err != nil {
		return err
	}
	if err = registerSwaggerDoc(s.doc); err != nil {
		return err
	}

	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{"method", v.Method, "uri", v.URI, "status", v.Status, "latency", v.Latency}
			if v.Error != nil {
				s.logger.WarnContext(c.Request().Context(), "Request", append(attrs, "error", v.Error)...)
				return nil
			}
			s.logger.InfoContext(c.Request().Context(), "Request", attrs...)
			return nil
		},
	}))

	e.GET("/health", s.Health)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	v1 := e.Group("/api/v1", validator)

	v1.GET("/locations", s.GetLocations)
	v1.POST("/locations", s.CreateLocation)
	v1.GET("/locations/in-error", s.GetLocationsInErrorStatus)
	v1.GET("/locations/full", s.GetFullLocations)
	v1.GET("/locations/free-capacity", s.GetLocationsWithFreeCapacity)
	v1.GET("/locations/:id", s.GetLocation)
	v1.DELETE("/locations/:id", s.DeleteLocation)
	v1.GET("/locations/:id/is-full", s.IsLocationFull)
	v1.PUT("/locations/:id/status", s.UpdateLocationStatus)
	v1.POST("/locations/:id/reset-error", s.ResetErrorStatus)
	v1.GET("/locations/:id/handling-units", s.GetHandlingUnitsOnLocation)
	v1.GET("/locations/:id/available-picks", s.GetAvailablePicks)
	v1.POST("/locations/:id/drop", s.Drop)
	v1.POST("/locations/:id/pick", s.Pick)
	v1.GET("/locations/:id/zones", s.GetZonesOfLocation)

	v1.GET("/handling-units", s.GetHandlingUnits)
	v1.POST("/handling-units", s.CreateHandlingUnit)
	v1.GET("/handling-units/:id", s.GetHandlingUnit)
	v1.PUT("/handling-units/:id", s.CreateOrUpdateHandlingUnit)
	v1.DELETE("/handling-units/:id", s.DeleteHandlingUnit)
	v1.GET("/handling-units/:id/locations", s.GetLocationsContaining)
	v1.GET("/handling-units/:id/flat-contains", s.GetFlatContains)
	v1.POST("/handling-units/:id/assign", s.Assign)
	v1.POST("/handling-units/:id/remove", s.Remove)
	v1.POST("/handling-units/:id/move", s.Move)
	v1.POST("/handling-units/:id/free", s.Free)

	v1.GET("/zones", s.GetZones)
	v1.POST("/zones/clear", s.ClearAllZones)
	v1.GET("/zones/:id", s.GetZone)
	v1.PUT("/zones/:id", s.CreateOrUpdateZone)
	v1.DELETE("/zones/:id", s.DeleteZone)
	v1.POST("/zones/:id/locations", s.AddLocationToZone)
	v1.PUT("/zones/:id/locations", s.InitZone)
	v1.POST("/zones/:id/move", s.MoveLocationToZone)
	v1.POST("/zones/:id/clear", s.ClearZone)

	v1.GET("/monitoring", s.GetMonitoring)
	return nil
}

// Health handles GET /health.
func (s *Server) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// GetMonitoring handles GET /api/v1/monitoring - per-operation statistics.
func (s *Server) GetMonitoring(c echo.Context) error {
	return c.JSON(http.StatusOK, s.auditor.Snapshot())
}

func (s *Server) user(c echo.Context) string {
	if user := strings.TrimSpace(c.Request().Header.Get(UserHeader)); user != "" {
		return user
	}
	return s.defaultUser
}

// pathID binds the id path parameter the way generated servers do.
func pathID(c echo.Context) (kernel.ID, error) {
	var raw string
	err := runtime.BindStyledParameterWithOptions("simple", "id", c.Param("id"), &raw,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Required: true})
	if err != nil {
		return kernel.ID{}, errs.NewValueIsInvalidErrorWithCause("id", err)
	}
	return kernel.NewID(raw)
}
