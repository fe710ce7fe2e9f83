package zonerepo_test

import (
	"context"
	"testing"
	"time"

	"warehouse/internal/adapters/out/postgres/locationrepo"
	"warehouse/internal/adapters/out/postgres/zonerepo"
	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/zone"
	"warehouse/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker never has anything tracked.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.ID, aggregate any) {
	m.Called(id, aggregate)
}

func (m *MockAggregateTracker) UntrackAggregate(id kernel.ID, aggregate any) {
	m.Called(id, aggregate)
}

func (m *MockAggregateTracker) TrackedZone(id kernel.ID) (*zone.Zone, bool) {
	args := m.Called(id)
	return args.Get(0).(*zone.Zone), args.Bool(1)
}

// ZoneRepositoryIntegrationTestSuite verifies ZoneRepository against PostgreSQL.
type ZoneRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *zonerepo.GormZoneRepository
	tracker    *MockAggregateTracker
}

func (suite *ZoneRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&locationrepo.LocationDTO{}, &zonerepo.ZoneDTO{}, &zonerepo.MembershipDTO{}))
}

func (suite *ZoneRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE zone_locations, zones, locations").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackedZone", mock.Anything).Return((*zone.Zone)(nil), false).Maybe()
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.tracker.On("UntrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.repository = zonerepo.NewGormZoneRepository(suite.db, suite.tracker)

	suite.addLocations("LOCA", "LOCB", "LOCC")
}

func (suite *ZoneRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *ZoneRepositoryIntegrationTestSuite) TestAdd_ThenGet_LoadsMembers() {
	ctx := context.Background()
	cooler := suite.newZone("Cooler", 5, "LOCB", "LOCA")

	suite.Require().NoError(suite.repository.Add(ctx, cooler))

	stored, err := suite.repository.Get(ctx, cooler.ID())
	suite.Require().NoError(err)
	suite.NotSame(cooler, stored)
	suite.Equal(5, stored.Rating())
	suite.Equal([]kernel.ID{suite.mustID("LOCA"), suite.mustID("LOCB")}, stored.Locations())

	suite.Require().ErrorIs(suite.repository.Add(ctx, suite.newZone("Cooler", 1)), errs.ErrObjectAlreadyExists)
}

func (suite *ZoneRepositoryIntegrationTestSuite) TestAdd_UnknownLocation_NotFound() {
	err := suite.repository.Add(context.Background(), suite.newZone("Cooler", 5, "LOCA", "NOPE"))
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
	suite.Contains(err.Error(), "NOPE")

	count, err := suite.repository.Count(context.Background())
	suite.Require().NoError(err)
	suite.Zero(count)
}

func (suite *ZoneRepositoryIntegrationTestSuite) TestUpdate_ReplacesMembersAndChecksVersion() {
	ctx := context.Background()
	z := suite.newZone("Freezer", 10, "LOCA")
	suite.Require().NoError(suite.repository.Add(ctx, z))

	stale, err := suite.repository.Get(ctx, z.ID())
	suite.Require().NoError(err)

	suite.Require().NoError(z.Replace([]kernel.ID{suite.mustID("LOCB"), suite.mustID("LOCC")}))
	z.ChangeRating(7)
	suite.Require().NoError(suite.repository.Update(ctx, z))
	suite.Equal(1, z.Version())

	stale.Clear()
	suite.Require().ErrorIs(suite.repository.Update(ctx, stale), errs.ErrConcurrentModification)
	suite.Require().ErrorIs(suite.repository.Delete(ctx, stale), errs.ErrConcurrentModification)

	stored, err := suite.repository.Get(ctx, z.ID())
	suite.Require().NoError(err)
	suite.Equal(7, stored.Rating())
	suite.Equal([]kernel.ID{suite.mustID("LOCB"), suite.mustID("LOCC")}, stored.Locations())
}

func (suite *ZoneRepositoryIntegrationTestSuite) TestGetAll_PagesAndGetAllContaining() {
	ctx := context.Background()
	suite.Require().NoError(suite.repository.Add(ctx, suite.newZone("Bulk", 0)))
	suite.Require().NoError(suite.repository.Add(ctx, suite.newZone("Cooler", 5, "LOCA", "LOCB")))
	suite.Require().NoError(suite.repository.Add(ctx, suite.newZone("Freezer", 10, "LOCA")))

	page, err := suite.repository.GetAll(ctx, 1, 5)
	suite.Require().NoError(err)
	suite.Require().Len(page, 2)
	suite.Equal("Cooler", page[0].ID().String())
	suite.Equal("Freezer", page[1].ID().String())

	containing, err := suite.repository.GetAllContaining(ctx, suite.mustID("LOCA"))
	suite.Require().NoError(err)
	suite.Require().Len(containing, 2)
	suite.Equal("Cooler", containing[0].ID().String())

	_, err = suite.repository.GetAll(ctx, -1, 0)
	suite.Require().ErrorIs(err, errs.ErrValueIsOutOfRange)
}

func (suite *ZoneRepositoryIntegrationTestSuite) TestDelete_CascadesMembershipOnly() {
	ctx := context.Background()
	z := suite.newZone("Cooler", 5, "LOCA")
	suite.Require().NoError(suite.repository.Add(ctx, z))

	suite.Require().NoError(suite.repository.Delete(ctx, z))

	var members int64
	suite.Require().NoError(suite.db.Model(&zonerepo.MembershipDTO{}).Count(&members).Error)
	suite.Zero(members)
	var locations int64
	suite.Require().NoError(suite.db.Model(&locationrepo.LocationDTO{}).Count(&locations).Error)
	suite.Equal(int64(3), locations)

	_, err := suite.repository.Get(ctx, z.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *ZoneRepositoryIntegrationTestSuite) addLocations(ids ...string) {
	for _, id := range ids {
		row := locationrepo.LocationDTO{
			ID:         id,
			AccessKind: "RANDOM",
			Dimension: locationrepo.DimensionDTO{
				Height: "NOT_RELEVANT", Length: "NOT_RELEVANT", Width: "NOT_RELEVANT",
			},
			Status: locationrepo.StatusDTO{
				ErrorStatus: "NONE", LtosStatus: "NO", LockStatus: "UNLOCKED",
			},
			UpdatedBy: "test",
			UpdatedAt: time.Now().UTC(),
		}
		suite.Require().NoError(suite.db.Create(&row).Error)
	}
}

func (suite *ZoneRepositoryIntegrationTestSuite) mustID(s string) kernel.ID {
	id, err := kernel.NewID(s)
	suite.Require().NoError(err)
	return id
}

func (suite *ZoneRepositoryIntegrationTestSuite) newZone(id string, rating int, members ...string) *zone.Zone {
	z, err := zone.NewZone(suite.mustID(id), rating)
	suite.Require().NoError(err)
	for _, m := range members {
		_, err = z.Add(suite.mustID(m))
		suite.Require().NoError(err)
	}
	return z
}

func TestZoneRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(ZoneRepositoryIntegrationTestSuite))
}
