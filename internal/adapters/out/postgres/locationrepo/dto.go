// Package locationrepo maps location aggregates onto the locations table.
package locationrepo

import (
	"errors"
	"time"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/location"
)

// LocationDTO represents the database structure for persisting location aggregates.
// The dimension and the status record are embedded into the same row.
type LocationDTO struct {
	ID         string       `gorm:"type:varchar(200);primaryKey"`
	Version    int          `gorm:"type:int;not null;default:0"`
	AccessKind string       `gorm:"type:varchar(16);not null"`
	Dimension  DimensionDTO `gorm:"embedded;embeddedPrefix:max_"`
	Status     StatusDTO    `gorm:"embedded"`
	UpdatedBy  string       `gorm:"type:varchar(255);not null"`
	UpdatedAt  time.Time    `gorm:"not null;autoUpdateTime:false"`
}

// TableName overrides GORM's default "location_dtos".
func (LocationDTO) TableName() string {
	return "locations"
}

// DimensionDTO holds the limits, stored as max_capacity, max_weight, max_height, ...
type DimensionDTO struct {
	Capacity int    `gorm:"type:int;not null;default:0"`
	Weight   int    `gorm:"type:int;not null;default:0"`
	Height   string `gorm:"type:varchar(16);not null"`
	Length   string `gorm:"type:varchar(16);not null"`
	Width    string `gorm:"type:varchar(16);not null"`
}

// StatusDTO holds the status record.
type StatusDTO struct {
	ErrorStatus string `gorm:"type:varchar(16);not null;index"`
	LtosStatus  string `gorm:"type:varchar(16);not null"`
	LockStatus  string `gorm:"type:varchar(16);not null"`
}

func fromDomain(loc *location.Location) LocationDTO {
	dim := loc.Dimension()
	status := loc.Status()
	return LocationDTO{
		ID:         loc.ID().String(),
		Version:    loc.Version(),
		AccessKind: loc.AccessKind().String(),
		Dimension: DimensionDTO{
			Capacity: dim.MaxCapacity(),
			Weight:   dim.MaxWeight(),
			Height:   dim.MaxHeight().String(),
			Length:   dim.MaxLength().String(),
			Width:    dim.MaxWidth().String(),
		},
		Status: StatusDTO{
			ErrorStatus: status.ErrorStatus().String(),
			LtosStatus:  status.LtosStatus().String(),
			LockStatus:  status.LockStatus().String(),
		},
		UpdatedBy: loc.Audit().UpdatedBy(),
		UpdatedAt: loc.Audit().UpdatedAt(),
	}
}

func toDomain(dto LocationDTO) (*location.Location, error) {
	id, err := kernel.NewID(dto.ID)
	if err != nil {
		return nil, err
	}

	kind, err := location.ParseAccessKind(dto.AccessKind)
	if err != nil {
		return nil, err
	}

	dim, err := dimensionToDomain(dto.Dimension)
	if err != nil {
		return nil, err
	}

	status, err := statusToDomain(dto.Status)
	if err != nil {
		return nil, err
	}

	return location.RestoreLocation(id, dto.Version, kind, dim, status, kernel.NewAudit(dto.UpdatedBy, dto.UpdatedAt))
}

func dimensionToDomain(dto DimensionDTO) (location.Dimension, error) {
	height, hErr := kernel.ParseHeightCategory(dto.Height)
	length, lErr := kernel.ParseLengthCategory(dto.Length)
	width, wErr := kernel.ParseWidthCategory(dto.Width)
	if err := errors.Join(hErr, lErr, wErr); err != nil {
		return location.Dimension{}, err
	}
	return location.NewDimension(dto.Capacity, dto.Weight, height, length, width)
}

func statusToDomain(dto StatusDTO) (location.Status, error) {
	errorStatus, eErr := location.ParseErrorStatus(dto.ErrorStatus)
	ltos, lErr := location.ParseLtosStatus(dto.LtosStatus)
	lock, kErr := location.ParseLockStatus(dto.LockStatus)
	if err := errors.Join(eErr, lErr, kErr); err != nil {
		return location.Status{}, err
	}
	return location.NewStatus(errorStatus, ltos, lock)
}
