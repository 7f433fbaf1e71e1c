package transitrepo_test

import (
	"context"
	"testing"
	"time"

	"freight/internal/adapters/out/postgres/transitrepo"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/shipment"
	"freight/internal/core/domain/model/transit"
	"freight/internal/pkg/errs"

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

// TransitRepositoryIntegrationTestSuite provides integration tests for
// TransitRepository using PostgreSQL containers.
type TransitRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *transitrepo.GormTransitRepository
	tracker    *MockAggregateTracker
}

func (suite *TransitRepositoryIntegrationTestSuite) SetupSuite() {
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

	suite.Require().NoError(db.AutoMigrate(&transitrepo.TransitDTO{}))

	// The exclusivity index normally comes from the schema migrations.
	err = db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS uidx_transit_details_active_gr_no
		ON transit_details (gr_no) WHERE is_active`).Error
	suite.Require().NoError(err)
}

func (suite *TransitRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE transit_details").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = transitrepo.NewGormTransitRepository(suite.db, suite.tracker)
}

func (suite *TransitRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *TransitRepositoryIntegrationTestSuite) TestAdd_ValidRecord_Success() {
	ctx := context.Background()

	record := suite.createTestRecord("JPR101")
	suite.tracker.On("TrackAggregate", record.ID(), record).Once()

	err := suite.repository.Add(ctx, record)
	suite.Require().NoError(err)

	suite.assertRecordCount(1)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *TransitRepositoryIntegrationTestSuite) TestAdd_DuplicateActiveGRNo_Rejected() {
	ctx := context.Background()

	first := suite.createTestRecord("JPR101")
	suite.tracker.On("TrackAggregate", first.ID(), first).Once()
	suite.Require().NoError(suite.repository.Add(ctx, first))

	// Same GR number on another challan while the first record is still active.
	second := suite.createTestRecord("JPR101")

	err := suite.repository.Add(ctx, second)
	suite.Require().Error(err)

	suite.assertRecordCount(1)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *TransitRepositoryIntegrationTestSuite) TestAdd_SameGRNoAfterRemoval_Allowed() {
	ctx := context.Background()

	first := suite.createTestRecord("JPR101")
	suite.tracker.On("TrackAggregate", first.ID(), first).Once()
	suite.Require().NoError(suite.repository.Add(ctx, first))

	suite.Require().NoError(first.Deactivate(time.Now().UTC(), "wrong challan"))
	suite.tracker.On("TrackAggregate", first.ID(), first).Once()
	suite.Require().NoError(suite.repository.Update(ctx, first))

	// With the old row deactivated the partial index no longer blocks the GR number.
	second := suite.createTestRecord("JPR101")
	suite.tracker.On("TrackAggregate", second.ID(), second).Once()

	err := suite.repository.Add(ctx, second)
	suite.Require().NoError(err)

	suite.assertRecordCount(2)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *TransitRepositoryIntegrationTestSuite) TestAddBatch_AllRowsWritten() {
	ctx := context.Background()

	records := []*transit.TransitDetails{
		suite.createTestRecord("JPR101"),
		suite.createTestRecord("JPR102"),
		suite.createTestRecord("JPR103"),
	}
	for _, record := range records {
		suite.tracker.On("TrackAggregate", record.ID(), record).Once()
	}

	err := suite.repository.AddBatch(ctx, records)
	suite.Require().NoError(err)

	suite.assertRecordCount(3)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *TransitRepositoryIntegrationTestSuite) TestAddBatch_DuplicateInBatch_NothingWritten() {
	ctx := context.Background()

	records := []*transit.TransitDetails{
		suite.createTestRecord("JPR101"),
		suite.createTestRecord("JPR101"),
	}

	err := suite.repository.AddBatch(ctx, records)
	suite.Require().Error(err)

	suite.assertRecordCount(0)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *TransitRepositoryIntegrationTestSuite) TestGet_RoundTripsMilestonesAndState() {
	ctx := context.Background()

	record := suite.createTestRecord("JPR101")
	advancedAt := time.Now().UTC().Truncate(time.Microsecond)
	suite.Require().NoError(record.Advance(transit.OutFromBranch1, advancedAt))
	suite.Require().NoError(record.Advance(transit.DeliveredAtBranch2, advancedAt.Add(time.Hour)))

	suite.tracker.On("TrackAggregate", record.ID(), record).Once()
	suite.Require().NoError(suite.repository.Add(ctx, record))

	retrieved, err := suite.repository.Get(ctx, record.ID())
	suite.Require().NoError(err)

	suite.Equal(record.ID(), retrieved.ID())
	suite.Equal(record.GRNo().String(), retrieved.GRNo().String())
	suite.Equal(record.ChallanID(), retrieved.ChallanID())
	suite.Equal(record.ChallanNo(), retrieved.ChallanNo())
	suite.Equal(transit.TwoHop, retrieved.RouteClass())
	suite.Equal(shipment.Godown, retrieved.DeliveryType())
	suite.True(retrieved.IsActive())
	suite.True(retrieved.MilestoneSet(transit.OutFromBranch1))
	suite.True(retrieved.MilestoneSet(transit.DeliveredAtBranch2))
	suite.False(retrieved.MilestoneSet(transit.OutFromBranch2))
	suite.Require().NotNil(retrieved.MilestoneAt(transit.OutFromBranch1))
	suite.WithinDuration(advancedAt, *retrieved.MilestoneAt(transit.OutFromBranch1), time.Millisecond)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *TransitRepositoryIntegrationTestSuite) TestGet_NonExistentRecord_ReturnsNotFoundError() {
	ctx := context.Background()

	retrieved, err := suite.repository.Get(ctx, kernel.NewUUID())

	suite.Nil(retrieved)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *TransitRepositoryIntegrationTestSuite) TestUpdate_DeactivationRoundTrips() {
	ctx := context.Background()

	record := suite.createTestRecord("JPR101")
	suite.tracker.On("TrackAggregate", record.ID(), record).Once()
	suite.Require().NoError(suite.repository.Add(ctx, record))

	removedAt := time.Now().UTC().Truncate(time.Microsecond)
	suite.Require().NoError(record.Deactivate(removedAt, "loaded on wrong truck"))
	suite.tracker.On("TrackAggregate", record.ID(), record).Once()
	suite.Require().NoError(suite.repository.Update(ctx, record))

	retrieved, err := suite.repository.Get(ctx, record.ID())
	suite.Require().NoError(err)

	suite.False(retrieved.IsActive())
	suite.Equal("loaded on wrong truck", retrieved.State().Reason())
	suite.Require().NotNil(retrieved.State().DeactivatedAt())
	suite.WithinDuration(removedAt, *retrieved.State().DeactivatedAt(), time.Millisecond)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *TransitRepositoryIntegrationTestSuite) TestGetActiveByChallanID_SkipsRemovedRecords() {
	ctx := context.Background()

	challanID := kernel.NewUUID()
	active1 := suite.createTestRecordOnChallan("JPR101", challanID)
	active2 := suite.createTestRecordOnChallan("JPR102", challanID)
	removed := suite.createTestRecordOnChallan("JPR103", challanID)
	suite.Require().NoError(removed.Deactivate(time.Now().UTC(), "shortage"))
	otherChallan := suite.createTestRecord("JPR104")

	for _, record := range []*transit.TransitDetails{active1, active2, removed, otherChallan} {
		suite.tracker.On("TrackAggregate", record.ID(), record).Once()
		suite.Require().NoError(suite.repository.Add(ctx, record))
	}

	records, err := suite.repository.GetActiveByChallanID(ctx, challanID)
	suite.Require().NoError(err)

	suite.Len(records, 2)
	for _, record := range records {
		suite.Equal(challanID, record.ChallanID())
		suite.True(record.IsActive())
	}

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *TransitRepositoryIntegrationTestSuite) TestGetActiveGRNosByOriginBranch() {
	ctx := context.Background()

	branchID := kernel.NewUUID()
	inBranch := suite.createTestRecordAtBranch("JPR101", branchID)
	removedInBranch := suite.createTestRecordAtBranch("JPR102", branchID)
	suite.Require().NoError(removedInBranch.Deactivate(time.Now().UTC(), "shortage"))
	elsewhere := suite.createTestRecord("JPR103")

	for _, record := range []*transit.TransitDetails{inBranch, removedInBranch, elsewhere} {
		suite.tracker.On("TrackAggregate", record.ID(), record).Once()
		suite.Require().NoError(suite.repository.Add(ctx, record))
	}

	grNos, err := suite.repository.GetActiveGRNosByOriginBranch(ctx, branchID)
	suite.Require().NoError(err)

	suite.Require().Len(grNos, 1)
	suite.Equal("JPR101", grNos[0].String())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *TransitRepositoryIntegrationTestSuite) TestGetActiveByGRNo() {
	ctx := context.Background()

	record := suite.createTestRecord("JPR101")
	suite.tracker.On("TrackAggregate", record.ID(), record).Once()
	suite.Require().NoError(suite.repository.Add(ctx, record))

	retrieved, err := suite.repository.GetActiveByGRNo(ctx, record.GRNo())
	suite.Require().NoError(err)
	suite.Equal(record.ID(), retrieved.ID())

	missing, _ := kernel.NewGRNo("JPR999")
	retrieved, err = suite.repository.GetActiveByGRNo(ctx, missing)
	suite.Nil(retrieved)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *TransitRepositoryIntegrationTestSuite) TestCountActiveByChallanID() {
	ctx := context.Background()

	challanID := kernel.NewUUID()
	active1 := suite.createTestRecordOnChallan("JPR101", challanID)
	active2 := suite.createTestRecordOnChallan("JPR102", challanID)
	removed := suite.createTestRecordOnChallan("JPR103", challanID)
	suite.Require().NoError(removed.Deactivate(time.Now().UTC(), "shortage"))

	for _, record := range []*transit.TransitDetails{active1, active2, removed} {
		suite.tracker.On("TrackAggregate", record.ID(), record).Once()
		suite.Require().NoError(suite.repository.Add(ctx, record))
	}

	count, err := suite.repository.CountActiveByChallanID(ctx, challanID)
	suite.Require().NoError(err)
	suite.Equal(2, count)

	count, err = suite.repository.CountActiveByChallanID(ctx, kernel.NewUUID())
	suite.Require().NoError(err)
	suite.Equal(0, count)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *TransitRepositoryIntegrationTestSuite) createTestRecord(grNo string) *transit.TransitDetails {
	return suite.createTestRecordOnChallan(grNo, kernel.NewUUID())
}

func (suite *TransitRepositoryIntegrationTestSuite) createTestRecordOnChallan(
	grNo string, challanID kernel.UUID,
) *transit.TransitDetails {
	gr, err := kernel.NewGRNo(grNo)
	suite.Require().NoError(err)

	record, err := transit.NewTransitDetails(kernel.NewUUID(), gr, challanID, "JPR-000001/A",
		kernel.NewUUID(), kernel.NewUUID(), shipment.Godown, transit.TwoHop)
	suite.Require().NoError(err)
	return record
}

func (suite *TransitRepositoryIntegrationTestSuite) createTestRecordAtBranch(
	grNo string, fromBranchID kernel.UUID,
) *transit.TransitDetails {
	gr, err := kernel.NewGRNo(grNo)
	suite.Require().NoError(err)

	record, err := transit.NewTransitDetails(kernel.NewUUID(), gr, kernel.NewUUID(), "JPR-000001/A",
		fromBranchID, kernel.NewUUID(), shipment.Godown, transit.TwoHop)
	suite.Require().NoError(err)
	return record
}

func (suite *TransitRepositoryIntegrationTestSuite) assertRecordCount(expected int) {
	var count int64
	err := suite.db.Model(&transitrepo.TransitDTO{}).Count(&count).Error
	suite.Require().NoError(err)
	suite.Equal(int64(expected), count)
}

func TestTransitRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(TransitRepositoryIntegrationTestSuite))
}
