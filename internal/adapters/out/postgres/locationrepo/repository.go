package locationrepo

import (
	"context"
	"errors"

	"warehouse/internal/adapters/out/postgres/pgerr"
	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/location"
	"warehouse/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormLocationRepository implements LocationRepository using GORM.
type GormLocationRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker is the identity map of the surrounding unit of work.
type aggregateTracker interface {
	TrackAggregate(id kernel.ID, aggregate any)
	UntrackAggregate(id kernel.ID, aggregate any)
	TrackedLocation(id kernel.ID) (*location.Location, bool)
}

// NewGormLocationRepository creates a new GORM location repository.
func NewGormLocationRepository(db *gorm.DB, tracker aggregateTracker) *GormLocationRepository {
	return &GormLocationRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new location to the database.
func (r *GormLocationRepository) Add(ctx context.Context, aggregate *location.Location) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerr.Translate(err, "location", dto.ID)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes the location only if the stored version still matches.
func (r *GormLocationRepository) Update(ctx context.Context, aggregate *location.Location) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	expected := aggregate.Version()
	dto := fromDomain(aggregate)
	dto.Version = expected + 1

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

	aggregate.IncrementVersion()
	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Delete removes the location only if the stored version still matches.
func (r *GormLocationRepository) Delete(ctx context.Context, aggregate *location.Location) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	expected := aggregate.Version()
	result := r.db.WithContext(ctx).
		Where("id = ? AND version = ?", aggregate.ID().String(), expected).
		Delete(&LocationDTO{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return r.conflictOrMissing(ctx, aggregate.ID(), expected)
	}

	r.tracker.UntrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a location by id. A location already loaded by this unit of work is
// returned as is.
func (r *GormLocationRepository) Get(ctx context.Context, id kernel.ID) (*location.Location, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if tracked, ok := r.tracker.TrackedLocation(id); ok {
		return tracked, nil
	}

	var dto LocationDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.String()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("location", id.String())
		}
		return nil, err
	}

	return r.track(dto)
}

// GetAll retrieves every location ordered by id.
func (r *GormLocationRepository) GetAll(ctx context.Context) ([]*location.Location, error) {
	var dtos []LocationDTO
	if err := r.db.WithContext(ctx).Order("id").Find(&dtos).Error; err != nil {
		return nil, err
	}
	return r.trackAll(dtos)
}

// GetAllInErrorStatus retrieves the locations with the given error status ordered by id.
func (r *GormLocationRepository) GetAllInErrorStatus(
	ctx context.Context,
	status location.ErrorStatus,
) ([]*location.Location, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}

	var dtos []LocationDTO
	if err := r.db.WithContext(ctx).
		Where("error_status = ?", status.String()).
		Order("id").
		Find(&dtos).Error; err != nil {
		return nil, err
	}
	return r.trackAll(dtos)
}

// Count returns the number of stored locations.
func (r *GormLocationRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&LocationDTO{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormLocationRepository) conflictOrMissing(ctx context.Context, id kernel.ID, expected int) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&LocationDTO{}).Where("id = ?", id.String()).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return errs.NewObjectNotFoundError("location", id.String())
	}
	return errs.NewConcurrentModificationError("location", id.String(), expected)
}

func (r *GormLocationRepository) track(dto LocationDTO) (*location.Location, error) {
	id, err := kernel.NewID(dto.ID)
	if err != nil {
		return nil, err
	}
	if tracked, ok := r.tracker.TrackedLocation(id); ok {
		return tracked, nil
	}

	loc, err := toDomain(dto)
	if err != nil {
		return nil, err
	}
	r.tracker.TrackAggregate(loc.ID(), loc)
	return loc, nil
}

func (r *GormLocationRepository) trackAll(dtos []LocationDTO) ([]*location.Location, error) {
	locations := make([]*location.Location, 0, len(dtos))
	for _, dto := range dtos {
		loc, err := r.track(dto)
		if err != nil {
			return nil, err
		}
		locations = append(locations, loc)
	}
	return locations, nil
}
