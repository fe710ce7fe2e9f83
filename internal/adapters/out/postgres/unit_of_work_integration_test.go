package postgres_test

import (
	"context"
	"testing"

	postgres_adapter "warehouse/internal/adapters/out/postgres"
	"warehouse/internal/adapters/out/postgres/handlingunitrepo"
	"warehouse/internal/adapters/out/postgres/locationrepo"
	"warehouse/internal/adapters/out/postgres/zonerepo"
	"warehouse/internal/core/domain/model/handlingunit"
	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/location"
	"warehouse/internal/core/domain/model/zone"
	"warehouse/internal/core/ports"
	"warehouse/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite provides integration testing for the GORM-based Unit of
// Work with a real PostgreSQL database.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(
		&locationrepo.LocationDTO{},
		&handlingunitrepo.HandlingUnitDTO{},
		&zonerepo.ZoneDTO{},
		&zonerepo.MembershipDTO{},
	)
	suite.Require().NoError(err)

	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE zone_locations, zones, handling_units, locations").Error
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx), "Multiple begin calls should be safe")
	suite.Require().NoError(uow.Commit(ctx))

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Rollback(ctx))

	suite.Require().ErrorIs(uow.Commit(ctx), gorm.ErrInvalidTransaction)
	suite.Require().ErrorIs(uow.Rollback(ctx), gorm.ErrInvalidTransaction)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_CommitWritesBothRepositories() {
	ctx := context.Background()
	loc := suite.newLocation("A", location.FIFO)
	hu := suite.newUnit("1")

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.LocationRepository().Add(ctx, loc))
	suite.Require().NoError(uow.HandlingUnitRepository().Add(ctx, hu))

	pos := 1
	suite.Require().NoError(hu.PlaceOn(loc.ID(), &pos))
	suite.Require().NoError(uow.HandlingUnitRepository().Update(ctx, hu))
	suite.Require().NoError(uow.Commit(ctx))

	fresh := suite.factory.Create()
	units, err := fresh.HandlingUnitRepository().GetAllOnLocation(ctx, loc.ID())
	suite.Require().NoError(err)
	suite.Require().Len(units, 1)
	suite.Equal(1, units[0].Version())
	suite.Equal(1, *units[0].LocaPos())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RollbackDiscardsWrites() {
	ctx := context.Background()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.LocationRepository().Add(ctx, suite.newLocation("A", location.LIFO)))
	suite.Require().NoError(uow.HandlingUnitRepository().Add(ctx, suite.newUnit("1")))
	suite.Require().NoError(uow.Rollback(ctx))

	fresh := suite.factory.Create()
	count, err := fresh.LocationRepository().Count(ctx)
	suite.Require().NoError(err)
	suite.Zero(count)
	count, err = fresh.HandlingUnitRepository().Count(ctx)
	suite.Require().NoError(err)
	suite.Zero(count)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_IdentityMap() {
	ctx := context.Background()
	loc := suite.newLocation("A", location.Random)
	hu := suite.newUnit("1")
	suite.Require().NoError(hu.PlaceOn(loc.ID(), nil))

	setup := suite.factory.Create()
	suite.Require().NoError(setup.LocationRepository().Add(ctx, loc))
	suite.Require().NoError(setup.HandlingUnitRepository().Add(ctx, hu))

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	defer func() { _ = uow.Rollback(ctx) }()

	onLocation, err := uow.HandlingUnitRepository().GetAllOnLocation(ctx, loc.ID())
	suite.Require().NoError(err)
	suite.Require().Len(onLocation, 1)

	byID, err := uow.HandlingUnitRepository().Get(ctx, hu.ID())
	suite.Require().NoError(err)
	suite.Same(onLocation[0], byID, "one instance per id within a unit of work")

	first, err := uow.LocationRepository().Get(ctx, loc.ID())
	suite.Require().NoError(err)
	second, err := uow.LocationRepository().Get(ctx, loc.ID())
	suite.Require().NoError(err)
	suite.Same(first, second)

	other := suite.factory.Create()
	foreign, err := other.LocationRepository().Get(ctx, loc.ID())
	suite.Require().NoError(err)
	suite.NotSame(first, foreign, "units of work do not share instances")
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_ConcurrentWritersConflict() {
	ctx := context.Background()
	setup := suite.factory.Create()
	suite.Require().NoError(setup.LocationRepository().Add(ctx, suite.newLocation("A", location.FIFO)))
	id := suite.mustID("A")

	first := suite.factory.Create()
	second := suite.factory.Create()

	a, err := first.LocationRepository().Get(ctx, id)
	suite.Require().NoError(err)
	b, err := second.LocationRepository().Get(ctx, id)
	suite.Require().NoError(err)

	a.MarkError()
	suite.Require().NoError(first.LocationRepository().Update(ctx, a))
	suite.Equal(1, a.Version())

	b.ClearError()
	err = second.LocationRepository().Update(ctx, b)
	suite.Require().ErrorIs(err, errs.ErrConcurrentModification)

	check := suite.factory.Create()
	stored, err := check.LocationRepository().Get(ctx, id)
	suite.Require().NoError(err)
	suite.True(stored.Status().IsError())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_ZoneMembership() {
	ctx := context.Background()
	cooler, err := zone.NewZone(suite.mustID("Cooler"), 5)
	suite.Require().NoError(err)
	_, err = cooler.Add(suite.mustID("LOCA"))
	suite.Require().NoError(err)
	_, err = cooler.Add(suite.mustID("LOCB"))
	suite.Require().NoError(err)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.LocationRepository().Add(ctx, suite.newLocation("LOCA", location.Random)))
	suite.Require().NoError(uow.LocationRepository().Add(ctx, suite.newLocation("LOCB", location.Random)))
	suite.Require().NoError(uow.ZoneRepository().Add(ctx, cooler))
	suite.Require().NoError(uow.Commit(ctx))

	missing, err := zone.NewZone(suite.mustID("Freezer"), 10)
	suite.Require().NoError(err)
	_, err = missing.Add(suite.mustID("LOCX"))
	suite.Require().NoError(err)
	suite.Require().ErrorIs(suite.factory.Create().ZoneRepository().Add(ctx, missing), errs.ErrObjectNotFound)

	setup := suite.factory.Create()
	locA, err := setup.LocationRepository().Get(ctx, suite.mustID("LOCA"))
	suite.Require().NoError(err)
	suite.Require().NoError(setup.LocationRepository().Delete(ctx, locA))

	fresh := suite.factory.Create()
	stored, err := fresh.ZoneRepository().Get(ctx, suite.mustID("Cooler"))
	suite.Require().NoError(err)
	suite.Equal([]kernel.ID{suite.mustID("LOCB")}, stored.Locations(), "deleting a location drops its membership")

	suite.Require().NoError(fresh.ZoneRepository().Delete(ctx, stored))
	count, err := fresh.LocationRepository().Count(ctx)
	suite.Require().NoError(err)
	suite.Equal(int64(1), count, "deleting a zone keeps its locations")
}

func (suite *UnitOfWorkIntegrationTestSuite) mustID(s string) kernel.ID {
	id, err := kernel.NewID(s)
	suite.Require().NoError(err)
	return id
}

func (suite *UnitOfWorkIntegrationTestSuite) newLocation(id string, kind location.AccessKind) *location.Location {
	loc, err := location.NewLocation(suite.mustID(id), kind, location.Dimension{})
	suite.Require().NoError(err)
	return loc
}

func (suite *UnitOfWorkIntegrationTestSuite) newUnit(id string) *handlingunit.HandlingUnit {
	hu, err := handlingunit.NewHandlingUnit(suite.mustID(id), 5, 0.25,
		kernel.HeightLow, kernel.LengthShort, kernel.WidthNarrow)
	suite.Require().NoError(err)
	return hu
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
