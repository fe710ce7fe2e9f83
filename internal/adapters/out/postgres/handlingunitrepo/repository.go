package handlingunitrepo

import (
	"context"
	"errors"

	"warehouse/internal/adapters/out/postgres/pgerr"
	"warehouse/internal/core/domain/model/handlingunit"
	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormHandlingUnitRepository implements HandlingUnitRepository using GORM.
type GormHandlingUnitRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker is the identity map of the surrounding unit of work.
type aggregateTracker interface {
	TrackAggregate(id kernel.ID, aggregate any)
	UntrackAggregate(id kernel.ID, aggregate any)
	TrackedHandlingUnit(id kernel.ID) (*handlingunit.HandlingUnit, bool)
}

// NewGormHandlingUnitRepository creates a new GORM handling unit repository.
func NewGormHandlingUnitRepository(db *gorm.DB, tracker aggregateTracker) *GormHandlingUnitRepository {
	return &GormHandlingUnitRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new unit. Its contains set is not written: children reference the unit
// through their own base_id.
func (r *GormHandlingUnitRepository) Add(ctx context.Context, aggregate *handlingunit.HandlingUnit) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerr.Translate(err, "handlingUnit", dto.ID)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes the unit only if the stored version still matches.
func (r *GormHandlingUnitRepository) Update(ctx context.Context, aggregate *handlingunit.HandlingUnit) error {
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

// Delete removes the unit only if the stored version still matches. Callers release its
// placement and composition edges first.
func (r *GormHandlingUnitRepository) Delete(ctx context.Context, aggregate *handlingunit.HandlingUnit) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	expected := aggregate.Version()
	result := r.db.WithContext(ctx).
		Where("id = ? AND version = ?", aggregate.ID().String(), expected).
		Delete(&HandlingUnitDTO{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return r.conflictOrMissing(ctx, aggregate.ID(), expected)
	}

	r.tracker.UntrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a unit by id together with its contains set.
func (r *GormHandlingUnitRepository) Get(ctx context.Context, id kernel.ID) (*handlingunit.HandlingUnit, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if tracked, ok := r.tracker.TrackedHandlingUnit(id); ok {
		return tracked, nil
	}

	var dto HandlingUnitDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.String()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("handlingUnit", id.String())
		}
		return nil, err
	}

	units, err := r.trackAll(ctx, []HandlingUnitDTO{dto})
	if err != nil {
		return nil, err
	}
	return units[0], nil
}

// GetAll retrieves a page of units ordered by id. count 0 returns everything after offset.
func (r *GormHandlingUnitRepository) GetAll(
	ctx context.Context,
	offset int,
	count int,
) ([]*handlingunit.HandlingUnit, error) {
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

	var dtos []HandlingUnitDTO
	if err := query.Find(&dtos).Error; err != nil {
		return nil, err
	}
	return r.trackAll(ctx, dtos)
}

// GetAllOnLocation retrieves the units placed on a location ordered by position, then id.
// Units without a position (random access) sort last.
func (r *GormHandlingUnitRepository) GetAllOnLocation(
	ctx context.Context,
	locationID kernel.ID,
) ([]*handlingunit.HandlingUnit, error) {
	if err := locationID.Validate(); err != nil {
		return nil, err
	}

	var dtos []HandlingUnitDTO
	if err := r.db.WithContext(ctx).
		Where("location_id = ?", locationID.String()).
		Order("loca_pos ASC NULLS LAST").
		Order("id").
		Find(&dtos).Error; err != nil {
		return nil, err
	}
	return r.trackAll(ctx, dtos)
}

// GetChildren retrieves the direct composition children of a unit ordered by id.
func (r *GormHandlingUnitRepository) GetChildren(
	ctx context.Context,
	baseID kernel.ID,
) ([]*handlingunit.HandlingUnit, error) {
	if err := baseID.Validate(); err != nil {
		return nil, err
	}

	var dtos []HandlingUnitDTO
	if err := r.db.WithContext(ctx).
		Where("base_id = ?", baseID.String()).
		Order("id").
		Find(&dtos).Error; err != nil {
		return nil, err
	}
	return r.trackAll(ctx, dtos)
}

// Count returns the number of stored units.
func (r *GormHandlingUnitRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&HandlingUnitDTO{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormHandlingUnitRepository) conflictOrMissing(ctx context.Context, id kernel.ID, expected int) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&HandlingUnitDTO{}).Where("id = ?", id.String()).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return errs.NewObjectNotFoundError("handlingUnit", id.String())
	}
	return errs.NewConcurrentModificationError("handlingUnit", id.String(), expected)
}

// trackAll restores the rows that are not yet in the identity map, loading their children
// in one query.
func (r *GormHandlingUnitRepository) trackAll(
	ctx context.Context,
	dtos []HandlingUnitDTO,
) ([]*handlingunit.HandlingUnit, error) {
	units := make([]*handlingunit.HandlingUnit, len(dtos))
	var missing []string
	for i, dto := range dtos {
		id, err := kernel.NewID(dto.ID)
		if err != nil {
			return nil, err
		}
		if tracked, ok := r.tracker.TrackedHandlingUnit(id); ok {
			units[i] = tracked
			continue
		}
		missing = append(missing, dto.ID)
	}
	if len(missing) == 0 {
		return units, nil
	}

	children, err := r.loadChildren(ctx, missing)
	if err != nil {
		return nil, err
	}

	for i, dto := range dtos {
		if units[i] != nil {
			continue
		}
		hu, err := toDomain(dto, children[dto.ID])
		if err != nil {
			return nil, err
		}
		r.tracker.TrackAggregate(hu.ID(), hu)
		units[i] = hu
	}
	return units, nil
}

type childRow struct {
	ID     string
	BaseID string
}

func (r *GormHandlingUnitRepository) loadChildren(ctx context.Context, baseIDs []string) (map[string][]kernel.ID, error) {
	var rows []childRow
	if err := r.db.WithContext(ctx).
		Model(&HandlingUnitDTO{}).
		Select("id", "base_id").
		Where("base_id IN ?", baseIDs).
		Order("id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	children := make(map[string][]kernel.ID, len(baseIDs))
	for _, row := range rows {
		id, err := kernel.NewID(row.ID)
		if err != nil {
			return nil, err
		}
		children[row.BaseID] = append(children[row.BaseID], id)
	}
	return children, nil
}
