package http

import (
	"net/http"

	"warehouse/internal/core/application/usecases/commands"
	"warehouse/internal/core/application/usecases/queries"
	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/zone"
	"warehouse/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// GetZonesParams defines parameters for GetZones.
type GetZonesParams struct {
	Offset *int `form:"offset,omitempty" json:"offset,omitempty"`
	Count  *int `form:"count,omitempty" json:"count,omitempty"`
}

// GetZones handles GET /api/v1/zones?offset=&count=.
func (s *Server) GetZones(c echo.Context) error {
	var params GetZonesParams
	if err := runtime.BindQueryParameter("form", true, false, "offset", c.QueryParams(), &params.Offset); err != nil {
		return badRequest(c, "Invalid format for parameter offset: "+err.Error())
	}
	if err := runtime.BindQueryParameter("form", true, false, "count", c.QueryParams(), &params.Count); err != nil {
		return badRequest(c, "Invalid format for parameter count: "+err.Error())
	}

	offset, count := 0, 0
	if params.Offset != nil {
		offset = *params.Offset
	}
	if params.Count != nil {
		count = *params.Count
	}

	query, err := queries.NewGetAllZonesQuery(offset, count)
	if err != nil {
		return s.fail(c, err)
	}
	page, err := s.queries.GetAllZones(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, ZonePage{
		Items:  fromZoneResponses(page.Items),
		Total:  page.Total,
		Offset: offset,
		Count:  count,
	})
}

// GetZone handles GET /api/v1/zones/{id}.
func (s *Server) GetZone(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return s.fail(c, err)
	}
	return s.respondZone(c, http.StatusOK, id)
}

// CreateOrUpdateZone handles PUT /api/v1/zones/{id}. It answers 201 when the zone was
// created and 200 when only its rating changed.
func (s *Server) CreateOrUpdateZone(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return s.fail(c, err)
	}
	var body ZoneRating
	if err = c.Bind(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}

	cmd, err := commands.NewCreateOrUpdateZoneCommand(id, body.Rating, s.user(c))
	if err != nil {
		return s.fail(c, err)
	}
	created, err := s.commands.CreateOrUpdateZone(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	if created {
		return s.respondZone(c, http.StatusCreated, id)
	}
	return s.respondZone(c, http.StatusOK, id)
}

// DeleteZone handles DELETE /api/v1/zones/{id}.
func (s *Server) DeleteZone(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return s.fail(c, err)
	}
	cmd, err := commands.NewDeleteZoneCommand(id, s.user(c))
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.commands.DeleteZone(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// AddLocationToZone handles POST /api/v1/zones/{id}/locations.
func (s *Server) AddLocationToZone(c echo.Context) error {
	zoneID, locationID, err := zoneMember(c)
	if err != nil {
		return s.fail(c, err)
	}
	cmd, err := commands.NewAddLocationToZoneCommand(zoneID, locationID, s.user(c))
	if err != nil {
		return s.fail(c, err)
	}
	return s.respondZoneChange(c, func() (*zone.Zone, error) {
		return s.commands.AddLocationToZone(c.Request().Context(), cmd)
	})
}

// MoveLocationToZone handles POST /api/v1/zones/{id}/move. The location leaves every other
// zone.
func (s *Server) MoveLocationToZone(c echo.Context) error {
	zoneID, locationID, err := zoneMember(c)
	if err != nil {
		return s.fail(c, err)
	}
	cmd, err := commands.NewMoveLocationToZoneCommand(zoneID, locationID, s.user(c))
	if err != nil {
		return s.fail(c, err)
	}
	return s.respondZoneChange(c, func() (*zone.Zone, error) {
		return s.commands.MoveLocationToZone(c.Request().Context(), cmd)
	})
}

// InitZone handles PUT /api/v1/zones/{id}/locations.
func (s *Server) InitZone(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return s.fail(c, err)
	}
	var body LocationList
	if err = c.Bind(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}
	locationIDs := make([]kernel.ID, 0, len(body.LocationIDs))
	for _, raw := range body.LocationIDs {
		locationID, err := kernel.NewID(raw)
		if err != nil {
			return s.fail(c, err)
		}
		locationIDs = append(locationIDs, locationID)
	}

	cmd, err := commands.NewInitZoneCommand(id, locationIDs, s.user(c))
	if err != nil {
		return s.fail(c, err)
	}
	return s.respondZoneChange(c, func() (*zone.Zone, error) {
		return s.commands.InitZone(c.Request().Context(), cmd)
	})
}

// ClearZone handles POST /api/v1/zones/{id}/clear.
func (s *Server) ClearZone(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return s.fail(c, err)
	}
	cmd, err := commands.NewClearZoneCommand(id, s.user(c))
	if err != nil {
		return s.fail(c, err)
	}
	return s.respondZoneChange(c, func() (*zone.Zone, error) {
		return s.commands.ClearZone(c.Request().Context(), cmd)
	})
}

// ClearAllZones handles POST /api/v1/zones/clear.
func (s *Server) ClearAllZones(c echo.Context) error {
	cleared, err := s.commands.ClearAllZones(c.Request().Context(), commands.NewClearAllZonesCommand(s.user(c)))
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, ClearResult{Cleared: cleared})
}

// GetZonesOfLocation handles GET /api/v1/locations/{id}/zones.
func (s *Server) GetZonesOfLocation(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return s.fail(c, err)
	}
	query, err := queries.NewGetZonesOfLocationQuery(id)
	if err != nil {
		return s.fail(c, err)
	}
	zones, err := s.queries.GetZonesOfLocation(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, fromZoneResponses(zones))
}

// zoneMember reads the zone id from the path and the location id from the body.
func zoneMember(c echo.Context) (kernel.ID, kernel.ID, error) {
	zoneID, err := pathID(c)
	if err != nil {
		return kernel.ID{}, kernel.ID{}, err
	}
	var body LocationReference
	if err = c.Bind(&body); err != nil {
		return kernel.ID{}, kernel.ID{}, errs.NewValueIsInvalidErrorWithCause("body", err)
	}
	locationID, err := kernel.NewID(body.LocationID)
	if err != nil {
		return kernel.ID{}, kernel.ID{}, err
	}
	return zoneID, locationID, nil
}

func (s *Server) respondZoneChange(c echo.Context, run func() (*zone.Zone, error)) error {
	z, err := run()
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, fromZone(z))
}

func (s *Server) respondZone(c echo.Context, code int, id kernel.ID) error {
	query, err := queries.NewGetZoneQuery(id)
	if err != nil {
		return s.fail(c, err)
	}
	z, err := s.queries.GetZone(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(code, fromZoneResponse(z))
}
