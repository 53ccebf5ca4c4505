package courierrepo_test

import (
	"context"
	"testing"
	"time"

	"mekina/internal/adapters/out/postgres/courierrepo"
	"mekina/internal/core/domain/model/courier"
	"mekina/internal/core/domain/model/kernel"
	"mekina/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	m.Called(id, aggregate)
}

// CourierRepositoryIntegrationTestSuite verifies courier persistence against PostgreSQL.
type CourierRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *courierrepo.GormCourierRepository
	tracker    *MockAggregateTracker
}

func (suite *CourierRepositoryIntegrationTestSuite) SetupSuite() {
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

	suite.Require().NoError(db.AutoMigrate(&courierrepo.CourierDTO{}))
}

func (suite *CourierRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE couriers").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = courierrepo.NewGormCourierRepository(suite.db, suite.tracker)
}

func (suite *CourierRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *CourierRepositoryIntegrationTestSuite) TestAdd_ValidCourier_Success() {
	ctx := context.Background()
	testCourier := suite.createTestCourier("Abebe", kernel.Motorbike)

	suite.tracker.On("TrackAggregate", testCourier.ID(), testCourier).Once()

	suite.Require().NoError(suite.repository.Add(ctx, testCourier))

	got, err := suite.repository.Get(ctx, testCourier.ID())
	suite.Require().NoError(err)
	suite.Equal("Abebe", got.Name())
	suite.Equal(kernel.Motorbike, got.Vehicle())
	_, ok := got.Location()
	suite.False(ok, "a new courier has no location yet")

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *CourierRepositoryIntegrationTestSuite) TestGet_NonExistentCourier_ReturnsNotFoundError() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *CourierRepositoryIntegrationTestSuite) TestUpdate_PersistsLocation() {
	ctx := context.Background()
	testCourier := suite.createTestCourier("Sara", kernel.Vehicle)
	suite.tracker.On("TrackAggregate", testCourier.ID(), testCourier).Twice()
	suite.Require().NoError(suite.repository.Add(ctx, testCourier))

	loc, err := kernel.NewLocation(9.0227, 38.7468)
	suite.Require().NoError(err)
	suite.Require().NoError(testCourier.MoveTo(loc))
	suite.Require().NoError(suite.repository.Update(ctx, testCourier))

	got, err := suite.repository.Get(ctx, testCourier.ID())
	suite.Require().NoError(err)
	stored, ok := got.Location()
	suite.Require().True(ok)
	suite.InDelta(9.0227, stored.Lat(), 1e-9)
	suite.InDelta(38.7468, stored.Lng(), 1e-9)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *CourierRepositoryIntegrationTestSuite) TestUpdate_NonExistentCourier_ReturnsError() {
	testCourier := suite.createTestCourier("Ghost", kernel.Vehicle)

	err := suite.repository.Update(context.Background(), testCourier)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
	suite.tracker.AssertNotCalled(suite.T(), "TrackAggregate", mock.Anything, mock.Anything)
}

func (suite *CourierRepositoryIntegrationTestSuite) TestGetAll_OrderedByName() {
	ctx := context.Background()
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)

	for _, name := range []string{"Tigist", "Abebe", "Hana"} {
		suite.Require().NoError(suite.repository.Add(ctx, suite.createTestCourier(name, kernel.Motorbike)))
	}

	all, err := suite.repository.GetAll(ctx)
	suite.Require().NoError(err)
	suite.Require().Len(all, 3)
	suite.Equal("Abebe", all[0].Name())
	suite.Equal("Hana", all[1].Name())
	suite.Equal("Tigist", all[2].Name())
}

func (suite *CourierRepositoryIntegrationTestSuite) TestGetAll_Empty() {
	all, err := suite.repository.GetAll(context.Background())
	suite.Require().NoError(err)
	suite.Empty(all)
}

func (suite *CourierRepositoryIntegrationTestSuite) createTestCourier(name string, vehicle kernel.DeliveryOption) *courier.Courier {
	c, err := courier.NewCourier(kernel.NewUUID(), name, vehicle)
	suite.Require().NoError(err)
	return c
}

func TestCourierRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(CourierRepositoryIntegrationTestSuite))
}
