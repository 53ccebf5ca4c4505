package shoprepo_test

import (
	"context"
	"testing"
	"time"

	"mekina/internal/adapters/out/postgres/shoprepo"
	"mekina/internal/core/domain/model/kernel"
	"mekina/internal/core/domain/model/shop"
	"mekina/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type ShopRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *shoprepo.GormShopRepository
}

func (suite *ShopRepositoryIntegrationTestSuite) SetupSuite() {
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

	suite.Require().NoError(db.AutoMigrate(&shoprepo.ShopDTO{}))
}

func (suite *ShopRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE shops").Error)
	suite.repository = shoprepo.NewGormShopRepository(suite.db)
}

func (suite *ShopRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *ShopRepositoryIntegrationTestSuite) TestAddAndGet_WithCoordinates() {
	ctx := context.Background()
	loc, err := kernel.NewLocation(9.0100, 38.7500)
	suite.Require().NoError(err)
	address, err := kernel.NewAddress(&loc, "Merkato, block 4")
	suite.Require().NoError(err)
	s, err := shop.NewShop(kernel.NewUUID(), kernel.NewUUID(), "Merkato Spares", address)
	suite.Require().NoError(err)

	suite.Require().NoError(suite.repository.Add(ctx, s))

	got, err := suite.repository.Get(ctx, s.ID())
	suite.Require().NoError(err)
	suite.Equal("Merkato Spares", got.Name())
	suite.True(got.SellerID().IsEqual(s.SellerID()))
	stored, ok := got.Location()
	suite.Require().True(ok)
	suite.InDelta(9.01, stored.Lat(), 1e-9)
	suite.Equal("Merkato, block 4", got.Address().Text())
}

func (suite *ShopRepositoryIntegrationTestSuite) TestAddAndGet_TextOnly() {
	ctx := context.Background()
	address, err := kernel.NewAddress(nil, "Piassa, next to the post office")
	suite.Require().NoError(err)
	s, err := shop.NewShop(kernel.NewUUID(), kernel.NewUUID(), "Piassa Parts", address)
	suite.Require().NoError(err)

	suite.Require().NoError(suite.repository.Add(ctx, s))

	got, err := suite.repository.Get(ctx, s.ID())
	suite.Require().NoError(err)
	_, ok := got.Location()
	suite.False(ok)
}

func (suite *ShopRepositoryIntegrationTestSuite) TestAdd_DuplicateID_Fails() {
	ctx := context.Background()
	address, err := kernel.NewAddress(nil, "Kazanchis")
	suite.Require().NoError(err)
	s, err := shop.NewShop(kernel.NewUUID(), kernel.NewUUID(), "Kazanchis Motors", address)
	suite.Require().NoError(err)

	suite.Require().NoError(suite.repository.Add(ctx, s))
	suite.Error(suite.repository.Add(ctx, s))
}

func (suite *ShopRepositoryIntegrationTestSuite) TestGet_NonExistentShop_ReturnsNotFoundError() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func TestShopRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(ShopRepositoryIntegrationTestSuite))
}
