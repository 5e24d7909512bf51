package postgres_test

import (
	"context"
	"testing"
	"time"

	"clearance/internal/adapters/out/postgres"
	"clearance/internal/adapters/out/postgres/bidrepo"
	"clearance/internal/adapters/out/postgres/noterepo"
	"clearance/internal/adapters/out/postgres/orderrepo"
	"clearance/internal/core/domain/model/bid"
	"clearance/internal/core/domain/model/kernel"
	"clearance/internal/core/domain/model/note"
	"clearance/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	pgcontainer "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite verifies transaction boundaries across the
// order, bid and note repositories.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *pgcontainer.PostgresContainer
	db        *gorm.DB
	factory   *postgres.GormUnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := pgcontainer.Run(ctx,
		"postgres:15-alpine",
		pgcontainer.WithDatabase("testdb"),
		pgcontainer.WithUsername("testuser"),
		pgcontainer.WithPassword("testpass"),
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

	suite.Require().NoError(db.AutoMigrate(
		&orderrepo.OrderDTO{}, &bidrepo.BidDTO{}, &noterepo.NoteDTO{},
	))
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders, bids, notes").Error)
	suite.factory = postgres.NewGormUnitOfWorkFactory(suite.db)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_PersistsOrderAndBidTogether() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))

	newOrder, err := order.NewOrder(kernel.NewUUID(), "Jeddah Islamic Port", "2 containers", time.Now())
	suite.Require().NoError(err)
	suite.Require().NoError(uow.OrderRepository().Add(ctx, newOrder))

	newBid, err := bid.NewBid(newOrder.ID(), kernel.NewUUID(), decimal.NewFromInt(1500))
	suite.Require().NoError(err)
	suite.Require().NoError(uow.BidRepository().Add(ctx, newBid))

	suite.Require().NoError(uow.Commit(ctx))

	suite.assertCount("orders", 1)
	suite.assertCount("bids", 1)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_DiscardsEverything() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))

	newOrder, err := order.NewOrder(kernel.NewUUID(), "Jeddah Islamic Port", "", time.Now())
	suite.Require().NoError(err)
	suite.Require().NoError(uow.OrderRepository().Add(ctx, newOrder))

	newBid, err := bid.NewBid(newOrder.ID(), kernel.NewUUID(), decimal.NewFromInt(900))
	suite.Require().NoError(err)
	suite.Require().NoError(uow.BidRepository().Add(ctx, newBid))

	suite.Require().NoError(uow.Rollback(ctx))

	suite.assertCount("orders", 0)
	suite.assertCount("bids", 0)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_WithoutBegin_ReturnsError() {
	uow := suite.factory.Create()

	suite.ErrorIs(uow.Commit(context.Background()), gorm.ErrInvalidTransaction)
	suite.ErrorIs(uow.Rollback(context.Background()), gorm.ErrInvalidTransaction)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestNoteRepository_SharesTransaction() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))

	newOrder, err := order.NewOrder(kernel.NewUUID(), "Jeddah Islamic Port", "", time.Now())
	suite.Require().NoError(err)
	suite.Require().NoError(uow.OrderRepository().Add(ctx, newOrder))

	newNote, err := note.NewNote(newOrder.ID(), kernel.NewUUID(), note.StageCustomerService, "looks fine", "")
	suite.Require().NoError(err)
	suite.Require().NoError(uow.NoteRepository().Add(ctx, newNote))

	// Not visible outside the transaction before commit.
	suite.assertCount("notes", 0)

	suite.Require().NoError(uow.Commit(ctx))
	suite.assertCount("notes", 1)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRepositories_WithoutBegin_UseBaseConnection() {
	ctx := context.Background()
	uow := suite.factory.Create()

	newOrder, err := order.NewOrder(kernel.NewUUID(), "Jeddah Islamic Port", "", time.Now())
	suite.Require().NoError(err)
	suite.Require().NoError(uow.OrderRepository().Add(ctx, newOrder))

	suite.assertCount("orders", 1)
}

func (suite *UnitOfWorkIntegrationTestSuite) assertCount(table string, expected int) {
	var count int64
	suite.Require().NoError(suite.db.Table(table).Count(&count).Error)
	suite.Equal(int64(expected), count)
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
