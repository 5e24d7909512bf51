package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"clearance/internal/adapters/out/postgres/orderrepo"
	"clearance/internal/core/domain/model/kernel"
	"clearance/internal/core/domain/model/order"
	"clearance/internal/pkg/errs"

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

func (m *MockAggregateTracker) TrackAggregate(id int64, aggregate interface{}) {
	m.Called(id, aggregate)
}

// OrderRepositoryIntegrationTestSuite provides integration tests for OrderRepository
// using PostgreSQL containers to verify database persistence behavior.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
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

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_AssignsStoreIdentity() {
	ctx := context.Background()

	newOrder := suite.newPendingOrder()
	suite.Require().Zero(newOrder.ID())

	suite.tracker.On("TrackAggregate", mock.AnythingOfType("int64"), newOrder).Once()

	suite.Require().NoError(suite.repository.Add(ctx, newOrder))
	suite.Positive(newOrder.ID())

	suite.assertOrderCount(1)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_RoundTripsAllFields() {
	ctx := context.Background()

	requesterID := kernel.NewUUID()
	brokerID := kernel.NewUUID()
	jobHandle := kernel.NewUUID()
	createdAt := time.Now().UTC().Truncate(time.Microsecond)

	original, err := order.RestoreOrder(
		77, requesterID, createdAt, "King Abdulaziz Port", "3 containers, HS 8471", "priority",
		order.UnderExecution, &brokerID, nil, nil,
		[order.CheckpointCount]bool{true, false, true}, &jobHandle,
	)
	suite.Require().NoError(err)

	suite.tracker.On("TrackAggregate", int64(77), original).Once()
	suite.Require().NoError(suite.repository.Add(ctx, original))

	retrieved, err := suite.repository.Get(ctx, 77)
	suite.Require().NoError(err)

	suite.Equal(int64(77), retrieved.ID())
	suite.Equal(requesterID, retrieved.RequesterID())
	suite.Equal("King Abdulaziz Port", retrieved.Location())
	suite.Equal("3 containers, HS 8471", retrieved.LineItems())
	suite.Equal("priority", retrieved.Notes())
	suite.Equal(order.UnderExecution, retrieved.Status())
	suite.Require().NotNil(retrieved.Broker())
	suite.Equal(brokerID, *retrieved.Broker())
	suite.Equal([order.CheckpointCount]bool{true, false, true}, retrieved.Checkpoints())
	suite.Require().NotNil(retrieved.JobHandle())
	suite.Equal(jobHandle, *retrieved.JobHandle())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NonExistentOrder_ReturnsNotFoundError() {
	ctx := context.Background()

	retrieved, err := suite.repository.Get(ctx, 424242)

	suite.Nil(retrieved)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_PersistsClearedFields() {
	ctx := context.Background()

	requesterID := kernel.NewUUID()
	brokerID := kernel.NewUUID()
	executing, err := order.RestoreOrder(
		5, requesterID, time.Now(), "Jeddah Islamic Port", "", "",
		order.UnderExecution, &brokerID, nil, nil,
		[order.CheckpointCount]bool{true, true, false}, nil,
	)
	suite.Require().NoError(err)

	suite.tracker.On("TrackAggregate", int64(5), mock.Anything).Times(2)
	suite.Require().NoError(suite.repository.Add(ctx, executing))

	// Reopened orders lose their broker and checkpoint progress.
	reopened, err := order.RestoreOrder(
		5, requesterID, executing.CreatedAt(), "Jeddah Islamic Port", "", "",
		order.Pending, nil, nil, nil, [order.CheckpointCount]bool{}, nil,
	)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Update(ctx, reopened))

	retrieved, err := suite.repository.Get(ctx, 5)
	suite.Require().NoError(err)
	suite.Equal(order.Pending, retrieved.Status())
	suite.Nil(retrieved.Broker())
	suite.Equal([order.CheckpointCount]bool{}, retrieved.Checkpoints())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_NonExistentOrder_ReturnsError() {
	ctx := context.Background()

	missing, err := order.RestoreOrder(
		999, kernel.NewUUID(), time.Now(), "Jeddah Islamic Port", "", "",
		order.Pending, nil, nil, nil, [order.CheckpointCount]bool{}, nil,
	)
	suite.Require().NoError(err)

	suite.Require().Error(suite.repository.Update(ctx, missing))
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetForUpdate_ReturnsOrder() {
	ctx := context.Background()

	newOrder := suite.newPendingOrder()
	suite.tracker.On("TrackAggregate", mock.AnythingOfType("int64"), newOrder).Once()
	suite.Require().NoError(suite.repository.Add(ctx, newOrder))

	tx := suite.db.Begin()
	suite.Require().NoError(tx.Error)
	defer tx.Rollback()

	txRepo := orderrepo.NewGormOrderRepository(tx, suite.tracker)
	locked, err := txRepo.GetForUpdate(ctx, newOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(newOrder.ID(), locked.ID())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestSetJobHandle_PersistsHandle() {
	ctx := context.Background()

	newOrder := suite.newPendingOrder()
	suite.tracker.On("TrackAggregate", mock.AnythingOfType("int64"), newOrder).Once()
	suite.Require().NoError(suite.repository.Add(ctx, newOrder))

	handle := kernel.NewUUID()
	suite.Require().NoError(suite.repository.SetJobHandle(ctx, newOrder.ID(), handle))

	retrieved, err := suite.repository.Get(ctx, newOrder.ID())
	suite.Require().NoError(err)
	suite.Require().NotNil(retrieved.JobHandle())
	suite.Equal(handle, *retrieved.JobHandle())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestSetJobHandle_NonExistentOrder_ReturnsNotFoundError() {
	err := suite.repository.SetJobHandle(context.Background(), 424242, kernel.NewUUID())

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func (suite *OrderRepositoryIntegrationTestSuite) newPendingOrder() *order.Order {
	newOrder, err := order.NewOrder(kernel.NewUUID(), "Jeddah Islamic Port", "2 containers", time.Now())
	suite.Require().NoError(err)
	return newOrder
}

func (suite *OrderRepositoryIntegrationTestSuite) assertOrderCount(expected int) {
	var count int64
	err := suite.db.Model(&orderrepo.OrderDTO{}).Count(&count).Error
	suite.Require().NoError(err)
	suite.Equal(int64(expected), count)
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
