// Package zonerepo maps zone aggregates onto the zones table and their membership onto the
// zone_locations join table.
//
// Both columns of zone_locations are foreign keys with ON DELETE CASCADE: deleting a zone
// or a location removes the rows that link them.
package zonerepo

import (
	"time"

	"warehouse/internal/adapters/out/postgres/locationrepo"
	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/zone"
)

// ZoneDTO represents the database structure for persisting zone aggregates.
type ZoneDTO struct {
	ID        string    `gorm:"type:varchar(200);primaryKey"`
	Version   int       `gorm:"type:int;not null;default:0"`
	Rating    int       `gorm:"type:int;not null;default:0"`
	UpdatedBy string    `gorm:"type:varchar(255);not null"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime:false"`
}

// TableName overrides GORM's default "zone_dtos".
func (ZoneDTO) TableName() string {
	return "zones"
}

// MembershipDTO is one row of the many-to-many link between zones and locations.
type MembershipDTO struct {
	ZoneID     string                    `gorm:"type:varchar(200);primaryKey"`
	Zone       *ZoneDTO                  `gorm:"foreignKey:ZoneID;references:ID;constraint:OnDelete:CASCADE"`
	LocationID string                    `gorm:"type:varchar(200);primaryKey;index"`
	Location   *locationrepo.LocationDTO `gorm:"foreignKey:LocationID;references:ID;constraint:OnDelete:CASCADE"`
}

func (MembershipDTO) TableName() string {
	return "zone_locations"
}

func fromDomain(z *zone.Zone) (ZoneDTO, []MembershipDTO) {
	dto := ZoneDTO{
		ID:        z.ID().String(),
		Version:   z.Version(),
		Rating:    z.Rating(),
		UpdatedBy: z.Audit().UpdatedBy(),
		UpdatedAt: z.Audit().UpdatedAt(),
	}
	members := make([]MembershipDTO, 0, len(z.Locations()))
	for _, locationID := range z.Locations() {
		members = append(members, MembershipDTO{ZoneID: dto.ID, LocationID: locationID.String()})
	}
	return dto, members
}

func toDomain(dto ZoneDTO, members []kernel.ID) (*zone.Zone, error) {
	id, err := kernel.NewID(dto.ID)
	if err != nil {
		return nil, err
	}
	return zone.RestoreZone(id, dto.Version, dto.Rating, members, kernel.NewAudit(dto.UpdatedBy, dto.UpdatedAt))
}
