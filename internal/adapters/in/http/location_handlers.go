package http

import (
	"net/http"

	"warehouse/internal/core/application/usecases/commands"
	"warehouse/internal/core/application/usecases/queries"
	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/location"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// GetLocationsInErrorStatusParams defines parameters for GetLocationsInErrorStatus.
type GetLocationsInErrorStatusParams struct {
	Status *string `form:"status,omitempty" json:"status,omitempty"`
}

// GetLocations handles GET /api/v1/locations.
func (s *Server) GetLocations(c echo.Context) error {
	locations, err := s.queries.GetAllLocations(c.Request().Context(), queries.NewGetAllLocationsQuery())
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, fromLocationResponses(locations))
}

// CreateLocation handles POST /api/v1/locations.
func (s *Server) CreateLocation(c echo.Context) error {
	var body NewLocation
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}

	id, err := kernel.NewID(body.ID)
	if err != nil {
		return s.fail(c, err)
	}
	kind, err := location.ParseAccessKind(body.AccessKind)
	if err != nil {
		return s.fail(c, err)
	}
	dim, err := body.Dimension.toDomain()
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewCreateLocationCommand(id, kind, dim, s.user(c))
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.commands.CreateLocation(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return s.respondLocation(c, http.StatusCreated, id)
}

// GetLocation handles GET /api/v1/locations/{id}.
func (s *Server) GetLocation(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return s.fail(c, err)
	}
	return s.respondLocation(c, http.StatusOK, id)
}

// DeleteLocation handles DELETE /api/v1/locations/{id}.
func (s *Server) DeleteLocation(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return s.fail(c, err)
	}
	cmd, err := commands.NewDeleteLocationCommand(id, s.user(c))
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.commands.DeleteLocation(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// IsLocationFull handles GET /api/v1/locations/{id}/is-full.
func (s *Server) IsLocationFull(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return s.fail(c, err)
	}
	query, err := queries.NewIsFullQuery(id)
	if err != nil {
		return s.fail(c, err)
	}
	full, err := s.queries.IsFull(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, IsFull{IsFull: full})
}

// UpdateLocationStatus handles PUT /api/v1/locations/{id}/status. The error status is
// left unchanged; only reset-error clears it.
func (s *Server) UpdateLocationStatus(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return s.fail(c, err)
	}
	var body StatusUpdate
	if err = c.Bind(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}
	ltos, err := location.ParseLtosStatus(body.LtosStatus)
	if err != nil {
		return s.fail(c, err)
	}
	lock, err := location.ParseLockStatus(body.LockStatus)
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewUpdateLocationStatusCommand(id, ltos, lock, s.user(c))
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.commands.UpdateLocationStatus(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ResetErrorStatus handles POST /api/v1/locations/{id}/reset-error.
func (s *Server) ResetErrorStatus(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return s.fail(c, err)
	}
	cmd, err := commands.NewResetErrorStatusCommand(id, s.user(c))
	if err != nil {
		return s.fail(c, err)
	}
	reset, err := s.commands.ResetErrorStatus(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, ResetResult{Reset: reset})
}

// GetHandlingUnitsOnLocation handles GET /api/v1/locations/{id}/handling-units.
func (s *Server) GetHandlingUnitsOnLocation(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return s.fail(c, err)
	}
	query, err := queries.NewGetHandlingUnitsOnLocationQuery(id)
	if err != nil {
		return s.fail(c, err)
	}
	units, err := s.queries.GetHandlingUnitsOnLocation(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, fromHandlingUnitResponses(units))
}

// GetAvailablePicks handles GET /api/v1/locations/{id}/available-picks.
func (s *Server) GetAvailablePicks(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return s.fail(c, err)
	}
	query, err := queries.NewGetAvailablePicksQuery(id)
	if err != nil {
		return s.fail(c, err)
	}
	units, err := s.queries.GetAvailablePicks(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, fromHandlingUnitResponses(units))
}

// Drop handles POST /api/v1/locations/{id}/drop.
func (s *Server) Drop(c echo.Context) error {
	locationID, err := pathID(c)
	if err != nil {
		return s.fail(c, err)
	}
	var body UnitReference
	if err = c.Bind(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}
	unitID, err := kernel.NewID(body.HandlingUnitID)
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewDropCommand(locationID, unitID, s.user(c))
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.commands.Drop(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Pick handles POST /api/v1/locations/{id}/pick. Without a handlingUnitId the location's
// access policy chooses the unit.
func (s *Server) Pick(c echo.Context) error {
	locationID, err := pathID(c)
	if err != nil {
		return s.fail(c, err)
	}
	var body PickRequest
	if c.Request().ContentLength != 0 {
		if err = c.Bind(&body); err != nil {
			return badRequest(c, "Invalid request body")
		}
	}

	var unitID *kernel.ID
	if body.HandlingUnitID != nil {
		id, idErr := kernel.NewID(*body.HandlingUnitID)
		if idErr != nil {
			return s.fail(c, idErr)
		}
		unitID = &id
	}

	cmd, err := commands.NewPickCommand(locationID, unitID, s.user(c))
	if err != nil {
		return s.fail(c, err)
	}
	picked, err := s.commands.Pick(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, fromHandlingUnit(picked))
}

// GetLocationsInErrorStatus handles GET /api/v1/locations/in-error. The status defaults
// to ERROR.
func (s *Server) GetLocationsInErrorStatus(c echo.Context) error {
	var params GetLocationsInErrorStatusParams
	err := runtime.BindQueryParameter("form", true, false, "status", c.QueryParams(), &params.Status)
	if err != nil {
		return badRequest(c, "Invalid format for parameter status: "+err.Error())
	}

	status := location.ErrorStatusError
	if params.Status != nil {
		if status, err = location.ParseErrorStatus(*params.Status); err != nil {
			return s.fail(c, err)
		}
	}

	query, err := queries.NewGetAllInErrorStatusQuery(status)
	if err != nil {
		return s.fail(c, err)
	}
	locations, err := s.queries.GetAllInErrorStatus(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, fromLocationResponses(locations))
}

// GetFullLocations handles GET /api/v1/locations/full.
func (s *Server) GetFullLocations(c echo.Context) error {
	locations, err := s.queries.GetAllFull(c.Request().Context(), queries.NewGetAllFullQuery())
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, fromLocationResponses(locations))
}

// GetLocationsWithFreeCapacity handles GET /api/v1/locations/free-capacity.
func (s *Server) GetLocationsWithFreeCapacity(c echo.Context) error {
	locations, err := s.queries.GetAllWithFreeCapacity(c.Request().Context(), queries.NewGetAllWithFreeCapacityQuery())
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, fromLocationResponses(locations))
}

func (s *Server) respondLocation(c echo.Context, code int, id kernel.ID) error {
	query, err := queries.NewGetLocationQuery(id)
	if err != nil {
		return s.fail(c, err)
	}
	loc, err := s.queries.GetLocation(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(code, fromLocationResponse(loc))
}
