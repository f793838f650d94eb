package historyrepo_test

import (
	"context"
	"testing"
	"time"

	"dentallab/internal/adapters/out/postgres/historyrepo"
	"dentallab/internal/core/domain/model/actor"
	"dentallab/internal/core/domain/model/kernel"
	"dentallab/internal/core/domain/model/order"
	"dentallab/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// HistoryRepositoryIntegrationTestSuite provides integration tests for the
// append-only order history ledger backed by PostgreSQL containers.
type HistoryRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *historyrepo.GormHistoryRepository
}

func (suite *HistoryRepositoryIntegrationTestSuite) SetupSuite() {
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
	suite.Require().NoError(db.AutoMigrate(&historyrepo.HistoryEntryDTO{}))
}

func (suite *HistoryRepositoryIntegrationTestSuite) SetupTest() {
	// Clean the database before each test
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE order_history").Error)

	suite.repository = historyrepo.NewGormHistoryRepository(suite.db)
}

func (suite *HistoryRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *HistoryRepositoryIntegrationTestSuite) TestAppend_SeedEntry_RoundTrips() {
	ctx := context.Background()

	orderID := kernel.NewUUID()
	occurredAt := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	seed := suite.restoreEntry(orderID, nil, order.Pending, "clinic-1", actor.RoleClinic, occurredAt, "")

	err := suite.repository.Append(ctx, seed)
	suite.Require().NoError(err)

	entries, err := suite.repository.GetByOrderID(ctx, orderID)
	suite.Require().NoError(err)
	suite.Require().Len(entries, 1)

	entry := entries[0]
	suite.Equal(orderID, entry.OrderID())
	suite.Nil(entry.FromStatus())
	suite.Equal(order.Pending, entry.ToStatus())
	suite.Equal("clinic-1", entry.PerformedBy().ID())
	suite.Equal(actor.RoleClinic, entry.PerformedBy().Role())
	suite.WithinDuration(occurredAt, entry.OccurredAt(), time.Second)
	suite.Empty(entry.Reason())
}

func (suite *HistoryRepositoryIntegrationTestSuite) TestAppend_TransitionEntry_PreservesAllFields() {
	ctx := context.Background()

	orderID := kernel.NewUUID()
	from := order.TrialReady
	occurredAt := time.Date(2025, 3, 11, 14, 30, 0, 0, time.UTC)
	entry := suite.restoreEntry(orderID, &from, order.Rejected, "tech-9", actor.RoleTechnician, occurredAt, "fit check failed")

	err := suite.repository.Append(ctx, entry)
	suite.Require().NoError(err)

	latest, err := suite.repository.GetLatest(ctx, orderID)
	suite.Require().NoError(err)

	suite.Require().NotNil(latest.FromStatus())
	suite.Equal(order.TrialReady, *latest.FromStatus())
	suite.Equal(order.Rejected, latest.ToStatus())
	suite.Equal("tech-9", latest.PerformedBy().ID())
	suite.Equal(actor.RoleTechnician, latest.PerformedBy().Role())
	suite.Equal("fit check failed", latest.Reason())
}

func (suite *HistoryRepositoryIntegrationTestSuite) TestGetByOrderID_ReturnsEntriesOldestFirst() {
	ctx := context.Background()

	orderID := kernel.NewUUID()
	base := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	pending := order.Pending
	inProgress := order.InProgress

	// Append out of chronological order to prove ordering comes from the query.
	second := suite.restoreEntry(orderID, &pending, order.InProgress, "tech-1", actor.RoleTechnician, base.Add(time.Hour), "")
	third := suite.restoreEntry(orderID, &inProgress, order.TrialReady, "tech-1", actor.RoleTechnician, base.Add(2*time.Hour), "")
	first := suite.restoreEntry(orderID, nil, order.Pending, "clinic-1", actor.RoleClinic, base, "")

	suite.Require().NoError(suite.repository.Append(ctx, second))
	suite.Require().NoError(suite.repository.Append(ctx, third))
	suite.Require().NoError(suite.repository.Append(ctx, first))

	entries, err := suite.repository.GetByOrderID(ctx, orderID)
	suite.Require().NoError(err)
	suite.Require().Len(entries, 3)

	suite.Equal(order.Pending, entries[0].ToStatus())
	suite.Equal(order.InProgress, entries[1].ToStatus())
	suite.Equal(order.TrialReady, entries[2].ToStatus())
}

func (suite *HistoryRepositoryIntegrationTestSuite) TestGetByOrderID_IgnoresOtherOrders() {
	ctx := context.Background()

	orderID := kernel.NewUUID()
	otherOrderID := kernel.NewUUID()
	occurredAt := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	mine := suite.restoreEntry(orderID, nil, order.Pending, "clinic-1", actor.RoleClinic, occurredAt, "")
	other := suite.restoreEntry(otherOrderID, nil, order.Pending, "clinic-2", actor.RoleClinic, occurredAt, "")

	suite.Require().NoError(suite.repository.Append(ctx, mine))
	suite.Require().NoError(suite.repository.Append(ctx, other))

	entries, err := suite.repository.GetByOrderID(ctx, orderID)
	suite.Require().NoError(err)
	suite.Require().Len(entries, 1)
	suite.Equal(orderID, entries[0].OrderID())
}

func (suite *HistoryRepositoryIntegrationTestSuite) TestGetByOrderID_EmptyLedger_ReturnsEmptySlice() {
	ctx := context.Background()

	entries, err := suite.repository.GetByOrderID(ctx, kernel.NewUUID())
	suite.Require().NoError(err)
	suite.Empty(entries)
}

func (suite *HistoryRepositoryIntegrationTestSuite) TestGetLatest_ReturnsMostRecentEntry() {
	ctx := context.Background()

	orderID := kernel.NewUUID()
	base := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	pending := order.Pending

	seed := suite.restoreEntry(orderID, nil, order.Pending, "clinic-1", actor.RoleClinic, base, "")
	latest := suite.restoreEntry(orderID, &pending, order.InProgress, "tech-1", actor.RoleTechnician, base.Add(time.Hour), "")

	suite.Require().NoError(suite.repository.Append(ctx, seed))
	suite.Require().NoError(suite.repository.Append(ctx, latest))

	got, err := suite.repository.GetLatest(ctx, orderID)
	suite.Require().NoError(err)
	suite.Equal(order.InProgress, got.ToStatus())
}

func (suite *HistoryRepositoryIntegrationTestSuite) TestGetLatest_EmptyLedger_ReturnsNotFoundError() {
	ctx := context.Background()

	_, err := suite.repository.GetLatest(ctx, kernel.NewUUID())
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

// restoreEntry builds a valid ledger entry, failing the test on invalid input.
func (suite *HistoryRepositoryIntegrationTestSuite) restoreEntry(
	orderID kernel.UUID,
	fromStatus *order.Status,
	toStatus order.Status,
	performedByID string,
	role actor.Role,
	occurredAt time.Time,
	reason string,
) order.HistoryEntry {
	performedBy, err := actor.RestoreActor(performedByID, role)
	suite.Require().NoError(err)

	entry, err := order.RestoreHistoryEntry(orderID, fromStatus, toStatus, performedBy, occurredAt, reason)
	suite.Require().NoError(err)
	return entry
}

func TestHistoryRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(HistoryRepositoryIntegrationTestSuite))
}
