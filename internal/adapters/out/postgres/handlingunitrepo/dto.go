// Package handlingunitrepo maps handling unit aggregates onto the handling_units table.
//
// Composition edges are stored once, as base_id on the child row. The contains set of a
// unit is rebuilt from its children when the unit is loaded. location_id references the
// locations table and is nulled when the location row goes away.
package handlingunitrepo

import (
	"errors"
	"time"

	"warehouse/internal/adapters/out/postgres/locationrepo"
	"warehouse/internal/core/domain/model/handlingunit"
	"warehouse/internal/core/domain/model/kernel"
)

// HandlingUnitDTO represents the database structure for persisting handling unit aggregates.
type HandlingUnitDTO struct {
	ID         string                    `gorm:"type:varchar(200);primaryKey"`
	Version    int                       `gorm:"type:int;not null;default:0"`
	Weight     int                       `gorm:"type:int;not null;default:0"`
	Volume     float64                   `gorm:"type:double precision;not null;default:0"`
	Height     string                    `gorm:"type:varchar(16);not null"`
	Length     string                    `gorm:"type:varchar(16);not null"`
	Width      string                    `gorm:"type:varchar(16);not null"`
	LocationID *string                   `gorm:"type:varchar(200);index"`
	Location   *locationrepo.LocationDTO `gorm:"foreignKey:LocationID;references:ID;constraint:OnDelete:SET NULL"`
	LocaPos    *int                      `gorm:"type:int"`
	BaseID     *string                   `gorm:"type:varchar(200);index"`
	UpdatedBy  string                    `gorm:"type:varchar(255);not null"`
	UpdatedAt  time.Time                 `gorm:"not null;autoUpdateTime:false"`
}

// TableName overrides GORM's default "handling_unit_dtos".
func (HandlingUnitDTO) TableName() string {
	return "handling_units"
}

func fromDomain(hu *handlingunit.HandlingUnit) HandlingUnitDTO {
	return HandlingUnitDTO{
		ID:         hu.ID().String(),
		Version:    hu.Version(),
		Weight:     hu.Weight(),
		Volume:     hu.Volume(),
		Height:     hu.Height().String(),
		Length:     hu.Length().String(),
		Width:      hu.Width().String(),
		LocationID: idToColumn(hu.Location()),
		LocaPos:    hu.LocaPos(),
		BaseID:     idToColumn(hu.Base()),
		UpdatedBy:  hu.Audit().UpdatedBy(),
		UpdatedAt:  hu.Audit().UpdatedAt(),
	}
}

func toDomain(dto HandlingUnitDTO, children []kernel.ID) (*handlingunit.HandlingUnit, error) {
	id, err := kernel.NewID(dto.ID)
	if err != nil {
		return nil, err
	}

	height, hErr := kernel.ParseHeightCategory(dto.Height)
	length, lErr := kernel.ParseLengthCategory(dto.Length)
	width, wErr := kernel.ParseWidthCategory(dto.Width)
	locationID, locErr := columnToID(dto.LocationID)
	baseID, baseErr := columnToID(dto.BaseID)
	if err = errors.Join(hErr, lErr, wErr, locErr, baseErr); err != nil {
		return nil, err
	}

	return handlingunit.RestoreHandlingUnit(
		id,
		dto.Version,
		dto.Weight,
		dto.Volume,
		height,
		length,
		width,
		locationID,
		dto.LocaPos,
		baseID,
		children,
		kernel.NewAudit(dto.UpdatedBy, dto.UpdatedAt),
	)
}

func idToColumn(id *kernel.ID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

func columnToID(column *string) (*kernel.ID, error) {
	if column == nil {
		return nil, nil
	}
	id, err := kernel.NewID(*column)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
