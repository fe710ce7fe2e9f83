package commands_test

import (
	"context"

	"warehouse/internal/core/application/usecases/commands"
	"warehouse/internal/core/domain/model/handlingunit"
	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/location"
	"warehouse/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockLocationRepository struct{ mock.Mock }

func (m *MockLocationRepository) Add(ctx context.Context, loc *location.Location) error {
	args := m.Called(ctx, loc)
	return args.Error(0)
}

func (m *MockLocationRepository) Update(ctx context.Context, loc *location.Location) error {
	args := m.Called(ctx, loc)
	return args.Error(0)
}

func (m *MockLocationRepository) Delete(ctx context.Context, loc *location.Location) error {
	args := m.Called(ctx, loc)
	return args.Error(0)
}

func (m *MockLocationRepository) Get(ctx context.Context, id kernel.ID) (*location.Location, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*location.Location), args.Error(1)
}

func (m *MockLocationRepository) GetAll(ctx context.Context) ([]*location.Location, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*location.Location), args.Error(1)
}

func (m *MockLocationRepository) GetAllInErrorStatus(
	ctx context.Context,
	status location.ErrorStatus,
) ([]*location.Location, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*location.Location), args.Error(1)
}

func (m *MockLocationRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockHandlingUnitRepository struct{ mock.Mock }

func (m *MockHandlingUnitRepository) Add(ctx context.Context, hu *handlingunit.HandlingUnit) error {
	args := m.Called(ctx, hu)
	return args.Error(0)
}

func (m *MockHandlingUnitRepository) Update(ctx context.Context, hu *handlingunit.HandlingUnit) error {
	args := m.Called(ctx, hu)
	return args.Error(0)
}

func (m *MockHandlingUnitRepository) Delete(ctx context.Context, hu *handlingunit.HandlingUnit) error {
	args := m.Called(ctx, hu)
	return args.Error(0)
}

func (m *MockHandlingUnitRepository) Get(ctx context.Context, id kernel.ID) (*handlingunit.HandlingUnit, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*handlingunit.HandlingUnit), args.Error(1)
}

func (m *MockHandlingUnitRepository) GetAll(
	ctx context.Context,
	offset, count int,
) ([]*handlingunit.HandlingUnit, error) {
	args := m.Called(ctx, offset, count)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*handlingunit.HandlingUnit), args.Error(1)
}

func (m *MockHandlingUnitRepository) GetAllOnLocation(
	ctx context.Context,
	locationID kernel.ID,
) ([]*handlingunit.HandlingUnit, error) {
	args := m.Called(ctx, locationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*handlingunit.HandlingUnit), args.Error(1)
}

func (m *MockHandlingUnitRepository) GetChildren(
	ctx context.Context,
	baseID kernel.ID,
) ([]*handlingunit.HandlingUnit, error) {
	args := m.Called(ctx, baseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*handlingunit.HandlingUnit), args.Error(1)
}

func (m *MockHandlingUnitRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockUoW satisfies every unit of work flavour of the commands package.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) LocationRepository() ports.LocationRepository {
	args := m.Called()
	return args.Get(0).(ports.LocationRepository)
}

func (m *MockUoW) HandlingUnitRepository() ports.HandlingUnitRepository {
	args := m.Called()
	return args.Get(0).(ports.HandlingUnitRepository)
}

type MockLocationUoWFactory struct{ mock.Mock }

func (m *MockLocationUoWFactory) Create() commands.LocationUoW {
	args := m.Called()
	return args.Get(0).(commands.LocationUoW)
}

type MockHandlingUnitUoWFactory struct{ mock.Mock }

func (m *MockHandlingUnitUoWFactory) Create() commands.HandlingUnitUoW {
	args := m.Called()
	return args.Get(0).(commands.HandlingUnitUoW)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}
