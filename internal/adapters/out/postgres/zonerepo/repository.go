package zonerepo

import (
	"context"
	"errors"
	"slices"

	"warehouse/internal/adapters/out/postgres/locationrepo"
	"warehouse/internal/adapters/out/postgres/pgerr"
	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/zone"
	"warehouse/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormZoneRepository implements ZoneRepository using GORM. The zone row and its
// zone_locations rows are written by the same call.
type GormZoneRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker is the identity map of the surrounding unit of work.
type aggregateTracker interface {
	TrackAggregate(id kernel.ID, aggregate any)
	UntrackAggregate(id kernel.ID, aggregate any)
	TrackedZone(id kernel.ID) (*zone.Zone, bool)
}

// NewGormZoneRepository creates a new GORM zone repository.
func NewGormZoneRepository(db *gorm.DB, tracker aggregateTracker) *GormZoneRepository {
	return &GormZoneRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new zone together with its membership.
func (r *GormZoneRepository) Add(ctx context.Context, aggregate *zone.Zone) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, members := fromDomain(aggregate)
	if err := r.requireLocations(ctx, members); err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerr.Translate(err, "zone", dto.ID)
	}
	if err := r.insertMembers(ctx, members); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes the zone row only if the stored version still matches, then replaces its
// membership rows.
func (r *GormZoneRepository) Update(ctx context.Context, aggregate *zone.Zone) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	expected := aggregate.Version()
	dto, members := fromDomain(aggregate)
	dto.Version = expected + 1
	if err := r.requireLocations(ctx, members); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&dto).
		Select("*").
		Where("version = ?", expected).
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return r.conflictOrMissing(ctx, aggregate.ID(), expected)
	}

	if err := r.db.WithContext(ctx).Where("zone_id = ?", dto.ID).Delete(&MembershipDTO{}).Error; err != nil {
		return err
	}
	if err := r.insertMembers(ctx, members); err != nil {
		return err
	}

	aggregate.IncrementVersion()
	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Delete removes the zone only if the stored version still matches. Its membership rows
// go with it through the cascade.
func (r *GormZoneRepository) Delete(ctx context.Context, aggregate *zone.Zone) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	expected := aggregate.Version()
	result := r.db.WithContext(ctx).
		Where("id = ? AND version = ?", aggregate.ID().String(), expected).
		Delete(&ZoneDTO{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return r.conflictOrMissing(ctx, aggregate.ID(), expected)
	}

	r.tracker.UntrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a zone by id together with its members.
func (r *GormZoneRepository) Get(ctx context.Context, id kernel.ID) (*zone.Zone, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if tracked, ok := r.tracker.TrackedZone(id); ok {
		return tracked, nil
	}

	var dto ZoneDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.String()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("zone", id.String())
		}
		return nil, err
	}

	zones, err := r.trackAll(ctx, []ZoneDTO{dto})
	if err != nil {
		return nil, err
	}
	return zones[0], nil
}

// GetAll retrieves a page of zones ordered by id. count 0 returns everything after offset.
func (r *GormZoneRepository) GetAll(ctx context.Context, offset, count int) ([]*zone.Zone, error) {
	if offset < 0 {
		return nil, errs.NewValueIsOutOfRangeError("offset", offset, 0, "unbounded")
	}
	if count < 0 {
		return nil, errs.NewValueIsOutOfRangeError("count", count, 0, "unbounded")
	}

	query := r.db.WithContext(ctx).Order("id").Offset(offset)
	if count > 0 {
		query = query.Limit(count)
	}

	var dtos []ZoneDTO
	if err := query.Find(&dtos).Error; err != nil {
		return nil, err
	}
	return r.trackAll(ctx, dtos)
}

// GetAllContaining retrieves the zones a location belongs to, ordered by id.
func (r *GormZoneRepository) GetAllContaining(ctx context.Context, locationID kernel.ID) ([]*zone.Zone, error) {
	if err := locationID.Validate(); err != nil {
		return nil, err
	}

	db := r.db.WithContext(ctx)
	memberOf := db.Model(&MembershipDTO{}).Select("zone_id").Where("location_id = ?", locationID.String())

	var dtos []ZoneDTO
	if err := db.Where("id IN (?)", memberOf).Order("id").Find(&dtos).Error; err != nil {
		return nil, err
	}
	return r.trackAll(ctx, dtos)
}

// Count returns the number of stored zones.
func (r *GormZoneRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&ZoneDTO{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// requireLocations reports the first member without a locations row. Checking up front
// keeps the transaction usable; the foreign key still guards against a concurrent delete.
func (r *GormZoneRepository) requireLocations(ctx context.Context, members []MembershipDTO) error {
	if len(members) == 0 {
		return nil
	}
	wanted := locationIDs(members)

	var found []string
	if err := r.db.WithContext(ctx).
		Model(&locationrepo.LocationDTO{}).
		Where("id IN ?", wanted).
		Pluck("id", &found).Error; err != nil {
		return err
	}
	for _, id := range wanted {
		if !slices.Contains(found, id) {
			return errs.NewObjectNotFoundError("location", id)
		}
	}
	return nil
}

func (r *GormZoneRepository) insertMembers(ctx context.Context, members []MembershipDTO) error {
	if len(members) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).Create(&members).Error; err != nil {
		return pgerr.TranslateReference(err, "location", locationIDs(members))
	}
	return nil
}

func locationIDs(members []MembershipDTO) []string {
	ids := make([]string, 0, len(members))
	for _, m := range members {
		ids = append(ids, m.LocationID)
	}
	return ids
}

func (r *GormZoneRepository) conflictOrMissing(ctx context.Context, id kernel.ID, expected int) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&ZoneDTO{}).Where("id = ?", id.String()).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return errs.NewObjectNotFoundError("zone", id.String())
	}
	return errs.NewConcurrentModificationError("zone", id.String(), expected)
}

// trackAll restores the rows that are not yet in the identity map, loading their members
// in one query.
func (r *GormZoneRepository) trackAll(ctx context.Context, dtos []ZoneDTO) ([]*zone.Zone, error) {
	zones := make([]*zone.Zone, len(dtos))
	var missing []string
	for i, dto := range dtos {
		id, err := kernel.NewID(dto.ID)
		if err != nil {
			return nil, err
		}
		if tracked, ok := r.tracker.TrackedZone(id); ok {
			zones[i] = tracked
			continue
		}
		missing = append(missing, dto.ID)
	}
	if len(missing) == 0 {
		return zones, nil
	}

	members, err := r.loadMembers(ctx, missing)
	if err != nil {
		return nil, err
	}

	for i, dto := range dtos {
		if zones[i] != nil {
			continue
		}
		z, err := toDomain(dto, members[dto.ID])
		if err != nil {
			return nil, err
		}
		r.tracker.TrackAggregate(z.ID(), z)
		zones[i] = z
	}
	return zones, nil
}

func (r *GormZoneRepository) loadMembers(ctx context.Context, zoneIDs []string) (map[string][]kernel.ID, error) {
	var rows []MembershipDTO
	if err := r.db.WithContext(ctx).
		Where("zone_id IN ?", zoneIDs).
		Order("location_id").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	members := make(map[string][]kernel.ID, len(zoneIDs))
	for _, row := range rows {
		id, err := kernel.NewID(row.LocationID)
		if err != nil {
			return nil, err
		}
		members[row.ZoneID] = append(members[row.ZoneID], id)
	}
	return members, nil
}
