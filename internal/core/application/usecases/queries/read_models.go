package queries

import (
	"context"
	"time"

	"warehouse/internal/core/domain/model/handlingunit"
	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/location"
	"warehouse/internal/core/domain/model/zone"
	"warehouse/internal/core/ports"
)

// LocationResponse is the read model of a location together with its occupancy.
type LocationResponse struct {
	ID          kernel.ID
	Version     int
	AccessKind  location.AccessKind
	Dimension   location.Dimension
	ErrorStatus location.ErrorStatus
	LtosStatus  location.LtosStatus
	LockStatus  location.LockStatus
	UnitCount   int
	IsFull      bool
	UpdatedBy   string
	UpdatedAt   time.Time
}

// HandlingUnitResponse is the read model of a handling unit.
type HandlingUnitResponse struct {
	ID         kernel.ID
	Version    int
	Weight     int
	Volume     float64
	Height     kernel.HeightCategory
	Length     kernel.LengthCategory
	Width      kernel.WidthCategory
	LocationID *kernel.ID
	LocaPos    *int
	BaseID     *kernel.ID
	Contains   []kernel.ID
	UpdatedBy  string
	UpdatedAt  time.Time
}

// ZoneResponse is the read model of a zone with its member locations ordered by id.
type ZoneResponse struct {
	ID        kernel.ID
	Version   int
	Rating    int
	Locations []kernel.ID
	UpdatedBy string
	UpdatedAt time.Time
}

func newLocationResponse(loc *location.Location, unitCount int) LocationResponse {
	status := loc.Status()
	return LocationResponse{
		ID:          loc.ID(),
		Version:     loc.Version(),
		AccessKind:  loc.AccessKind(),
		Dimension:   loc.Dimension(),
		ErrorStatus: status.ErrorStatus(),
		LtosStatus:  status.LtosStatus(),
		LockStatus:  status.LockStatus(),
		UnitCount:   unitCount,
		IsFull:      loc.IsFull(unitCount),
		UpdatedBy:   loc.Audit().UpdatedBy(),
		UpdatedAt:   loc.Audit().UpdatedAt(),
	}
}

func newHandlingUnitResponse(hu *handlingunit.HandlingUnit) HandlingUnitResponse {
	return HandlingUnitResponse{
		ID:         hu.ID(),
		Version:    hu.Version(),
		Weight:     hu.Weight(),
		Volume:     hu.Volume(),
		Height:     hu.Height(),
		Length:     hu.Length(),
		Width:      hu.Width(),
		LocationID: hu.Location(),
		LocaPos:    hu.LocaPos(),
		BaseID:     hu.Base(),
		Contains:   hu.Contains(),
		UpdatedBy:  hu.Audit().UpdatedBy(),
		UpdatedAt:  hu.Audit().UpdatedAt(),
	}
}

func newHandlingUnitResponses(units []*handlingunit.HandlingUnit) []HandlingUnitResponse {
	responses := make([]HandlingUnitResponse, 0, len(units))
	for _, hu := range units {
		responses = append(responses, newHandlingUnitResponse(hu))
	}
	return responses
}

// describeLocations attaches the occupancy of every location, keeping only those accepted
// by keep. A nil keep accepts all.
func describeLocations(
	ctx context.Context,
	units ports.HandlingUnitRepository,
	locations []*location.Location,
	keep func(loc *location.Location, unitCount int) bool,
) ([]LocationResponse, error) {
	responses := make([]LocationResponse, 0, len(locations))
	for _, loc := range locations {
		placed, err := units.GetAllOnLocation(ctx, loc.ID())
		if err != nil {
			return nil, err
		}
		if keep != nil && !keep(loc, len(placed)) {
			continue
		}
		responses = append(responses, newLocationResponse(loc, len(placed)))
	}
	return responses, nil
}

func newZoneResponse(z *zone.Zone) ZoneResponse {
	return ZoneResponse{
		ID:        z.ID(),
		Version:   z.Version(),
		Rating:    z.Rating(),
		Locations: z.Locations(),
		UpdatedBy: z.Audit().UpdatedBy(),
		UpdatedAt: z.Audit().UpdatedAt(),
	}
}

func newZoneResponses(zones []*zone.Zone) []ZoneResponse {
	out := make([]ZoneResponse, 0, len(zones))
	for _, z := range zones {
		out = append(out, newZoneResponse(z))
	}
	return out
}
