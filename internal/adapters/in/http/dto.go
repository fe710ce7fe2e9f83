package http

import (
	"errors"
	"time"

	"warehouse/internal/core/application/usecases/commands"
	"warehouse/internal/core/application/usecases/queries"
	"warehouse/internal/core/domain/model/handlingunit"
	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/location"
	"warehouse/internal/core/domain/model/zone"
)

// Dimension is the wire form of location.Dimension. Empty categories mean NOT_RELEVANT.
type Dimension struct {
	MaxCapacity int    `json:"maxCapacity"`
	MaxWeight   int    `json:"maxWeight"`
	MaxHeight   string `json:"maxHeight,omitempty"`
	MaxLength   string `json:"maxLength,omitempty"`
	MaxWidth    string `json:"maxWidth,omitempty"`
}

type NewLocation struct {
	ID         string    `json:"id"`
	AccessKind string    `json:"accessKind"`
	Dimension  Dimension `json:"dimension"`
}

type StatusUpdate struct {
	LtosStatus string `json:"ltosStatus"`
	LockStatus string `json:"lockStatus"`
}

type UnitReference struct {
	HandlingUnitID string `json:"handlingUnitId"`
}

type PickRequest struct {
	HandlingUnitID *string `json:"handlingUnitId,omitempty"`
}

type BaseReference struct {
	BaseID string `json:"baseId"`
}

// Measures is the wire form of commands.HandlingUnitMeasures. Empty categories mean
// NOT_RELEVANT.
type Measures struct {
	Weight int     `json:"weight"`
	Volume float64 `json:"volume"`
	Height string  `json:"height,omitempty"`
	Length string  `json:"length,omitempty"`
	Width  string  `json:"width,omitempty"`
}

type NewHandlingUnit struct {
	ID *string `json:"id,omitempty"`
	Measures
}

type Location struct {
	ID          string    `json:"id"`
	Version     int       `json:"version"`
	AccessKind  string    `json:"accessKind"`
	Dimension   Dimension `json:"dimension"`
	ErrorStatus string    `json:"errorStatus"`
	LtosStatus  string    `json:"ltosStatus"`
	LockStatus  string    `json:"lockStatus"`
	UnitCount   int       `json:"unitCount"`
	IsFull      bool      `json:"isFull"`
	UpdatedBy   string    `json:"updatedBy"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type HandlingUnit struct {
	ID         string    `json:"id"`
	Version    int       `json:"version"`
	Weight     int       `json:"weight"`
	Volume     float64   `json:"volume"`
	Height     string    `json:"height"`
	Length     string    `json:"length"`
	Width      string    `json:"width"`
	LocationID *string   `json:"locationId,omitempty"`
	LocaPos    *int      `json:"locaPos,omitempty"`
	BaseID     *string   `json:"baseId,omitempty"`
	Contains   []string  `json:"contains"`
	UpdatedBy  string    `json:"updatedBy"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type HandlingUnitPage struct {
	Items  []HandlingUnit `json:"items"`
	Total  int64          `json:"total"`
	Offset int            `json:"offset"`
	Count  int            `json:"count"`
}

type ZoneRating struct {
	Rating int `json:"rating"`
}

type LocationReference struct {
	LocationID string `json:"locationId"`
}

type LocationList struct {
	LocationIDs []string `json:"locationIds"`
}

type Zone struct {
	ID        string    `json:"id"`
	Version   int       `json:"version"`
	Rating    int       `json:"rating"`
	Locations []string  `json:"locations"`
	UpdatedBy string    `json:"updatedBy"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type ZonePage struct {
	Items  []Zone `json:"items"`
	Total  int64  `json:"total"`
	Offset int    `json:"offset"`
	Count  int    `json:"count"`
}

type ClearResult struct {
	Cleared int `json:"cleared"`
}

type IsFull struct {
	IsFull bool `json:"isFull"`
}

type ResetResult struct {
	Reset bool `json:"reset"`
}

func (d Dimension) toDomain() (location.Dimension, error) {
	height, heightErr := parseOr(d.MaxHeight, kernel.HeightNotRelevant, kernel.ParseHeightCategory)
	length, lengthErr := parseOr(d.MaxLength, kernel.LengthNotRelevant, kernel.ParseLengthCategory)
	width, widthErr := parseOr(d.MaxWidth, kernel.WidthNotRelevant, kernel.ParseWidthCategory)
	if err := errors.Join(heightErr, lengthErr, widthErr); err != nil {
		return location.Dimension{}, err
	}
	return location.NewDimension(d.MaxCapacity, d.MaxWeight, height, length, width)
}

func (m Measures) toCommand() (commands.HandlingUnitMeasures, error) {
	height, heightErr := parseOr(m.Height, kernel.HeightNotRelevant, kernel.ParseHeightCategory)
	length, lengthErr := parseOr(m.Length, kernel.LengthNotRelevant, kernel.ParseLengthCategory)
	width, widthErr := parseOr(m.Width, kernel.WidthNotRelevant, kernel.ParseWidthCategory)
	if err := errors.Join(heightErr, lengthErr, widthErr); err != nil {
		return commands.HandlingUnitMeasures{}, err
	}
	return commands.HandlingUnitMeasures{
		Weight: m.Weight,
		Volume: m.Volume,
		Height: height,
		Length: length,
		Width:  width,
	}, nil
}

func parseOr[T any](value string, fallback T, parse func(string) (T, error)) (T, error) {
	if value == "" {
		return fallback, nil
	}
	return parse(value)
}

func fromDimension(d location.Dimension) Dimension {
	return Dimension{
		MaxCapacity: d.MaxCapacity(),
		MaxWeight:   d.MaxWeight(),
		MaxHeight:   d.MaxHeight().String(),
		MaxLength:   d.MaxLength().String(),
		MaxWidth:    d.MaxWidth().String(),
	}
}

func fromLocationResponse(r queries.LocationResponse) Location {
	return Location{
		ID:          r.ID.String(),
		Version:     r.Version,
		AccessKind:  r.AccessKind.String(),
		Dimension:   fromDimension(r.Dimension),
		ErrorStatus: r.ErrorStatus.String(),
		LtosStatus:  r.LtosStatus.String(),
		LockStatus:  r.LockStatus.String(),
		UnitCount:   r.UnitCount,
		IsFull:      r.IsFull,
		UpdatedBy:   r.UpdatedBy,
		UpdatedAt:   r.UpdatedAt,
	}
}

func fromLocationResponses(responses []queries.LocationResponse) []Location {
	locations := make([]Location, 0, len(responses))
	for _, r := range responses {
		locations = append(locations, fromLocationResponse(r))
	}
	return locations
}

func fromHandlingUnitResponse(r queries.HandlingUnitResponse) HandlingUnit {
	return HandlingUnit{
		ID:         r.ID.String(),
		Version:    r.Version,
		Weight:     r.Weight,
		Volume:     r.Volume,
		Height:     r.Height.String(),
		Length:     r.Length.String(),
		Width:      r.Width.String(),
		LocationID: idString(r.LocationID),
		LocaPos:    r.LocaPos,
		BaseID:     idString(r.BaseID),
		Contains:   idStrings(r.Contains),
		UpdatedBy:  r.UpdatedBy,
		UpdatedAt:  r.UpdatedAt,
	}
}

func fromHandlingUnitResponses(responses []queries.HandlingUnitResponse) []HandlingUnit {
	units := make([]HandlingUnit, 0, len(responses))
	for _, r := range responses {
		units = append(units, fromHandlingUnitResponse(r))
	}
	return units
}

// fromHandlingUnit renders an aggregate returned by a command handler.
func fromHandlingUnit(hu *handlingunit.HandlingUnit) HandlingUnit {
	return HandlingUnit{
		ID:         hu.ID().String(),
		Version:    hu.Version(),
		Weight:     hu.Weight(),
		Volume:     hu.Volume(),
		Height:     hu.Height().String(),
		Length:     hu.Length().String(),
		Width:      hu.Width().String(),
		LocationID: idString(hu.Location()),
		LocaPos:    hu.LocaPos(),
		BaseID:     idString(hu.Base()),
		Contains:   idStrings(hu.Contains()),
		UpdatedBy:  hu.Audit().UpdatedBy(),
		UpdatedAt:  hu.Audit().UpdatedAt(),
	}
}

func fromZoneResponse(r queries.ZoneResponse) Zone {
	return Zone{
		ID:        r.ID.String(),
		Version:   r.Version,
		Rating:    r.Rating,
		Locations: idStrings(r.Locations),
		UpdatedBy: r.UpdatedBy,
		UpdatedAt: r.UpdatedAt,
	}
}

func fromZoneResponses(responses []queries.ZoneResponse) []Zone {
	zones := make([]Zone, 0, len(responses))
	for _, r := range responses {
		zones = append(zones, fromZoneResponse(r))
	}
	return zones
}

func fromZone(z *zone.Zone) Zone {
	return Zone{
		ID:        z.ID().String(),
		Version:   z.Version(),
		Rating:    z.Rating(),
		Locations: idStrings(z.Locations()),
		UpdatedBy: z.Audit().UpdatedBy(),
		UpdatedAt: z.Audit().UpdatedAt(),
	}
}

func idString(id *kernel.ID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

func idStrings(ids []kernel.ID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}
	return out
}
