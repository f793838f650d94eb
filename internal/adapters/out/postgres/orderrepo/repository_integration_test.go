package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"dentallab/internal/adapters/out/postgres/orderrepo"
	"dentallab/internal/core/domain/model/actor"
	"dentallab/internal/core/domain/model/kernel"
	"dentallab/internal/core/domain/model/order"
	"dentallab/internal/pkg/errs"

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

	// Start PostgreSQL container
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

	// Get connection string and connect to database
	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	// Auto-migrate the schema
	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	// Clean the database before each test
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders").Error)

	// Create fresh repository and tracker for each test
	suite.tracker = new(MockAggregateTracker)
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_ValidOrder_Success() {
	ctx := context.Background()

	testOrder := suite.createPendingOrder()

	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Once()

	err := suite.repository.Add(ctx, testOrder)
	suite.Require().NoError(err)

	suite.assertOrderCount(1)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_ExistingOrder_ReturnsOrder() {
	ctx := context.Background()

	id := kernel.NewUUID()
	clinicID := kernel.NewUUID()
	originalOrder, err := order.NewOrder(id, clinicID, "bridge", 3)
	suite.Require().NoError(err)

	suite.tracker.On("TrackAggregate", id, originalOrder).Once()

	err = suite.repository.Add(ctx, originalOrder)
	suite.Require().NoError(err)

	retrievedOrder, err := suite.repository.Get(ctx, id)
	suite.Require().NoError(err)

	suite.Equal(id, retrievedOrder.ID())
	suite.Equal(clinicID, retrievedOrder.ClinicID())
	suite.Equal("bridge", retrievedOrder.Category())
	suite.Equal(3, retrievedOrder.ToothCount())
	suite.Equal(order.Pending, retrievedOrder.Status())
	suite.Equal(1, retrievedOrder.Version())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NonExistentOrder_ReturnsNotFoundError() {
	ctx := context.Background()

	nonExistentID := kernel.NewUUID()
	retrievedOrder, err := suite.repository.Get(ctx, nonExistentID)

	suite.Nil(retrievedOrder)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_TransitionedOrder_BumpsVersion() {
	ctx := context.Background()

	testOrder := suite.createPendingOrder()
	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Twice()

	err := suite.repository.Add(ctx, testOrder)
	suite.Require().NoError(err)

	technician, err := actor.NewActor("tech-7", actor.RoleTechnician)
	suite.Require().NoError(err)

	_, err = testOrder.TransitionTo(order.InProgress, technician, "", time.Now().UTC())
	suite.Require().NoError(err)

	err = suite.repository.Update(ctx, testOrder)
	suite.Require().NoError(err)

	retrievedOrder, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.InProgress, retrievedOrder.Status())
	suite.Equal(2, retrievedOrder.Version())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_StaleVersion_ReturnsConcurrentModificationError() {
	ctx := context.Background()

	testOrder := suite.createPendingOrder()
	suite.tracker.On("TrackAggregate", mock.AnythingOfType("kernel.UUID"), mock.Anything).Twice()

	err := suite.repository.Add(ctx, testOrder)
	suite.Require().NoError(err)

	technician, err := actor.NewActor("tech-7", actor.RoleTechnician)
	suite.Require().NoError(err)

	// two aggregates loaded from the same row, both at version 1
	first, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	second, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)

	_, err = first.TransitionTo(order.InProgress, technician, "", time.Now().UTC())
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Update(ctx, first))

	// the loser still thinks the stored version is 1
	_, err = second.TransitionTo(order.Cancelled, technician, "", time.Now().UTC())
	suite.Require().NoError(err)

	err = suite.repository.Update(ctx, second)
	suite.Require().Error(err)

	var conflictErr *errs.ConcurrentModificationError
	suite.Require().ErrorAs(err, &conflictErr)

	// the first write stays
	retrievedOrder, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.InProgress, retrievedOrder.Status())
	suite.Equal(2, retrievedOrder.Version())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_NonExistentOrder_ReturnsNotFoundError() {
	ctx := context.Background()

	ghost, err := order.RestoreOrder(kernel.NewUUID(), kernel.NewUUID(), "crown", 2, order.InProgress, 2)
	suite.Require().NoError(err)

	err = suite.repository.Update(ctx, ghost)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestSave_RepairsStatusWithoutVersionBump() {
	ctx := context.Background()

	drifted, err := order.RestoreOrder(kernel.NewUUID(), kernel.NewUUID(), "crown", 2, order.Pending, 2)
	suite.Require().NoError(err)

	suite.tracker.On("TrackAggregate", mock.AnythingOfType("kernel.UUID"), mock.Anything).Twice()

	err = suite.repository.Add(ctx, drifted)
	suite.Require().NoError(err)

	repaired, err := order.RestoreOrder(
		drifted.ID(),
		drifted.ClinicID(),
		drifted.Category(),
		drifted.ToothCount(),
		order.InProgress,
		drifted.Version(),
	)
	suite.Require().NoError(err)

	err = suite.repository.Save(ctx, repaired)
	suite.Require().NoError(err)

	retrievedOrder, err := suite.repository.Get(ctx, drifted.ID())
	suite.Require().NoError(err)
	suite.Equal(order.InProgress, retrievedOrder.Status())
	suite.Equal(2, retrievedOrder.Version())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestSave_StaleVersion_ReturnsConcurrentModificationError() {
	ctx := context.Background()

	stored, err := order.RestoreOrder(kernel.NewUUID(), kernel.NewUUID(), "crown", 2, order.InProgress, 3)
	suite.Require().NoError(err)

	suite.tracker.On("TrackAggregate", mock.AnythingOfType("kernel.UUID"), mock.Anything).Once()

	err = suite.repository.Add(ctx, stored)
	suite.Require().NoError(err)

	stale, err := order.RestoreOrder(
		stored.ID(),
		stored.ClinicID(),
		stored.Category(),
		stored.ToothCount(),
		order.TrialReady,
		2, // version moved on since this aggregate was loaded
	)
	suite.Require().NoError(err)

	err = suite.repository.Save(ctx, stale)
	suite.Require().Error(err)

	var conflictErr *errs.ConcurrentModificationError
	suite.Require().ErrorAs(err, &conflictErr)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetAllActive_ExcludesTerminalStatuses() {
	ctx := context.Background()

	statuses := []order.Status{
		order.Pending,
		order.InProgress,
		order.TrialReady,
		order.Completed,
		order.Rejected,
		order.Delivered,
		order.Cancelled,
	}

	suite.tracker.On("TrackAggregate", mock.AnythingOfType("kernel.UUID"), mock.Anything).Times(len(statuses))

	for _, status := range statuses {
		testOrder, err := order.RestoreOrder(kernel.NewUUID(), kernel.NewUUID(), "crown", 2, status, 1)
		suite.Require().NoError(err)
		suite.Require().NoError(suite.repository.Add(ctx, testOrder))
	}

	activeOrders, err := suite.repository.GetAllActive(ctx)
	suite.Require().NoError(err)

	suite.Len(activeOrders, 5)
	for _, activeOrder := range activeOrders {
		suite.False(activeOrder.Status().IsTerminal())
	}

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetAllActive_NoActiveOrders_ReturnsEmptySlice() {
	ctx := context.Background()

	suite.tracker.On("TrackAggregate", mock.AnythingOfType("kernel.UUID"), mock.Anything).Once()

	delivered, err := order.RestoreOrder(kernel.NewUUID(), kernel.NewUUID(), "crown", 2, order.Delivered, 5)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(ctx, delivered))

	activeOrders, err := suite.repository.GetAllActive(ctx)
	suite.Require().NoError(err)
	suite.Empty(activeOrders)
}

// createPendingOrder creates a basic test order with default values.
func (suite *OrderRepositoryIntegrationTestSuite) createPendingOrder() *order.Order {
	testOrder, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), "crown", 2)
	suite.Require().NoError(err)
	return testOrder
}

// assertOrderCount verifies the number of orders in the database.
func (suite *OrderRepositoryIntegrationTestSuite) assertOrderCount(expected int) {
	var count int64
	err := suite.db.Model(&orderrepo.OrderDTO{}).Count(&count).Error
	suite.Require().NoError(err)
	suite.Equal(int64(expected), count)
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
