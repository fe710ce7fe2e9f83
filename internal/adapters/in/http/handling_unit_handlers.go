package http

import (
	"net/http"

	"warehouse/internal/core/application/usecases/commands"
	"warehouse/internal/core/application/usecases/queries"
	"warehouse/internal/core/domain/model/handlingunit"
	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// GetHandlingUnitsParams defines parameters for GetHandlingUnits.
type GetHandlingUnitsParams struct {
	Offset *int `form:"offset,omitempty" json:"offset,omitempty"`
	Count  *int `form:"count,omitempty" json:"count,omitempty"`
}

// GetHandlingUnits handles GET /api/v1/handling-units?offset=&count=.
func (s *Server) GetHandlingUnits(c echo.Context) error {
	var params GetHandlingUnitsParams
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

	query, err := queries.NewGetAllHandlingUnitsQuery(offset, count)
	if err != nil {
		return s.fail(c, err)
	}
	page, err := s.queries.GetAllHandlingUnits(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, HandlingUnitPage{
		Items:  fromHandlingUnitResponses(page.Items),
		Total:  page.Total,
		Offset: offset,
		Count:  count,
	})
}

// CreateHandlingUnit handles POST /api/v1/handling-units. A missing id is generated.
func (s *Server) CreateHandlingUnit(c echo.Context) error {
	var body NewHandlingUnit
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}

	id := kernel.NewRandomID()
	if body.ID != nil {
		var err error
		if id, err = kernel.NewID(*body.ID); err != nil {
			return s.fail(c, err)
		}
	}
	measures, err := body.Measures.toCommand()
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewCreateHandlingUnitCommand(id, measures, s.user(c))
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.commands.CreateHandlingUnit(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return s.respondHandlingUnit(c, http.StatusCreated, id)
}

// GetHandlingUnit handles GET /api/v1/handling-units/{id}.
func (s *Server) GetHandlingUnit(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return s.fail(c, err)
	}
	return s.respondHandlingUnit(c, http.StatusOK, id)
}

// CreateOrUpdateHandlingUnit handles PUT /api/v1/handling-units/{id}. It answers 201 when
// the unit was created and 200 when its measures were replaced.
func (s *Server) CreateOrUpdateHandlingUnit(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return s.fail(c, err)
	}
	var body Measures
	if err = c.Bind(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}
	measures, err := body.toCommand()
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewCreateOrUpdateHandlingUnitCommand(id, measures, s.user(c))
	if err != nil {
		return s.fail(c, err)
	}
	created, err := s.commands.CreateOrUpdateHandlingUnit(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	if created {
		return s.respondHandlingUnit(c, http.StatusCreated, id)
	}
	return s.respondHandlingUnit(c, http.StatusOK, id)
}

// DeleteHandlingUnit handles DELETE /api/v1/handling-units/{id}.
func (s *Server) DeleteHandlingUnit(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return s.fail(c, err)
	}
	cmd, err := commands.NewDeleteHandlingUnitCommand(id, s.user(c))
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.commands.DeleteHandlingUnit(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// GetLocationsContaining handles GET /api/v1/handling-units/{id}/locations.
func (s *Server) GetLocationsContaining(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return s.fail(c, err)
	}
	query, err := queries.NewGetAllContainingQuery(id)
	if err != nil {
		return s.fail(c, err)
	}
	locations, err := s.queries.GetAllContaining(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, fromLocationResponses(locations))
}

// GetFlatContains handles GET /api/v1/handling-units/{id}/flat-contains.
func (s *Server) GetFlatContains(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return s.fail(c, err)
	}
	query, err := queries.NewFlatContainsQuery(id)
	if err != nil {
		return s.fail(c, err)
	}
	ids, err := s.queries.FlatContains(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, idStrings(ids))
}

// Assign handles POST /api/v1/handling-units/{id}/assign and answers with the base.
func (s *Server) Assign(c echo.Context) error {
	unitID, baseID, err := compositionEdge(c)
	if err != nil {
		return s.fail(c, err)
	}
	cmd, err := commands.NewAssignCommand(unitID, baseID, s.user(c))
	if err != nil {
		return s.fail(c, err)
	}
	return s.respondComposition(c, func() (*handlingunit.HandlingUnit, error) {
		return s.commands.Assign(c.Request().Context(), cmd)
	})
}

// Remove handles POST /api/v1/handling-units/{id}/remove and answers with the base.
func (s *Server) Remove(c echo.Context) error {
	unitID, baseID, err := compositionEdge(c)
	if err != nil {
		return s.fail(c, err)
	}
	cmd, err := commands.NewRemoveCommand(unitID, baseID, s.user(c))
	if err != nil {
		return s.fail(c, err)
	}
	return s.respondComposition(c, func() (*handlingunit.HandlingUnit, error) {
		return s.commands.Remove(c.Request().Context(), cmd)
	})
}

// Move handles POST /api/v1/handling-units/{id}/move and answers with the moved unit.
func (s *Server) Move(c echo.Context) error {
	unitID, baseID, err := compositionEdge(c)
	if err != nil {
		return s.fail(c, err)
	}
	cmd, err := commands.NewMoveCommand(unitID, baseID, s.user(c))
	if err != nil {
		return s.fail(c, err)
	}
	return s.respondComposition(c, func() (*handlingunit.HandlingUnit, error) {
		return s.commands.Move(c.Request().Context(), cmd)
	})
}

// Free handles POST /api/v1/handling-units/{id}/free and answers with the released ids.
func (s *Server) Free(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return s.fail(c, err)
	}
	cmd, err := commands.NewFreeCommand(id, s.user(c))
	if err != nil {
		return s.fail(c, err)
	}
	released, err := s.commands.Free(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, idStrings(released))
}

// compositionEdge reads the unit id from the path and the base id from the body.
func compositionEdge(c echo.Context) (kernel.ID, kernel.ID, error) {
	unitID, err := pathID(c)
	if err != nil {
		return kernel.ID{}, kernel.ID{}, err
	}
	var body BaseReference
	if err = c.Bind(&body); err != nil {
		return kernel.ID{}, kernel.ID{}, errs.NewValueIsInvalidErrorWithCause("body", err)
	}
	baseID, err := kernel.NewID(body.BaseID)
	if err != nil {
		return kernel.ID{}, kernel.ID{}, err
	}
	return unitID, baseID, nil
}

func (s *Server) respondComposition(c echo.Context, run func() (*handlingunit.HandlingUnit, error)) error {
	hu, err := run()
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, fromHandlingUnit(hu))
}

func (s *Server) respondHandlingUnit(c echo.Context, code int, id kernel.ID) error {
	query, err := queries.NewGetHandlingUnitQuery(id)
	if err != nil {
		return s.fail(c, err)
	}
	hu, err := s.queries.GetHandlingUnit(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(code, fromHandlingUnitResponse(hu))
}
