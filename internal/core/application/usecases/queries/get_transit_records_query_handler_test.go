package queries_test

import (
	"context"
	"testing"
	"time"

	"freight/internal/adapters/out/postgres/transitrepo"
	"freight/internal/core/application/usecases/queries"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/shipment"
	"freight/internal/core/domain/model/transit"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type GetTransitRecordsQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.GetTransitRecordsQueryHandler
	transits  *transitrepo.GormTransitRepository
}

func (suite *GetTransitRecordsQueryHandlerTestSuite) SetupSuite() {
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

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&transitrepo.TransitDTO{}))

	suite.handler = queries.NewGetTransitRecordsQueryHandler(db)
	suite.transits = transitrepo.NewGormTransitRepository(db, &mockAggregateTracker{})
}

func (suite *GetTransitRecordsQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *GetTransitRecordsQueryHandlerTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE transit_details").Error)
}

func (suite *GetTransitRecordsQueryHandlerTestSuite) TestHandle_ByChallan_ActiveRecordsInGROrder() {
	ctx := context.Background()

	challanID := kernel.NewUUID()
	suite.seedRecord("JPR10", challanID, kernel.NewUUID(), shipment.Godown, transit.TwoHop)
	suite.seedRecord("JPR9", challanID, kernel.NewUUID(), shipment.Godown, transit.TwoHop)
	removed := suite.seedRecord("JPR8", challanID, kernel.NewUUID(), shipment.Godown, transit.TwoHop)
	suite.Require().NoError(removed.Deactivate(time.Now().UTC(), "shortage"))
	suite.Require().NoError(suite.transits.Update(ctx, removed))
	suite.seedRecord("JPR7", kernel.NewUUID(), kernel.NewUUID(), shipment.Godown, transit.TwoHop)

	query, err := queries.NewGetTransitRecordsByChallanQuery(challanID)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(ctx, query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 2)
	suite.Equal("JPR9", result[0].GRNo)
	suite.Equal("JPR10", result[1].GRNo)
	for _, row := range result {
		suite.Equal(challanID, row.ChallanID)
		suite.Equal(transit.LabelPending, row.StatusLabel)
		suite.False(row.Delivered)
	}
}

func (suite *GetTransitRecordsQueryHandlerTestSuite) TestHandle_ByBranch_SpansChallans() {
	ctx := context.Background()

	branchID := kernel.NewUUID()
	suite.seedRecord("JPR101", kernel.NewUUID(), branchID, shipment.Godown, transit.TwoHop)
	suite.seedRecord("JPR102", kernel.NewUUID(), branchID, shipment.Godown, transit.TwoHop)
	suite.seedRecord("JPR103", kernel.NewUUID(), kernel.NewUUID(), shipment.Godown, transit.TwoHop)

	query, err := queries.NewGetTransitRecordsByBranchQuery(branchID)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(ctx, query)

	suite.Require().NoError(err)
	suite.Len(result, 2)
}

func (suite *GetTransitRecordsQueryHandlerTestSuite) TestHandle_MilestoneViewsFollowRecordPath() {
	ctx := context.Background()

	challanID := kernel.NewUUID()
	record := suite.seedRecord("JPR101", challanID, kernel.NewUUID(), shipment.Door, transit.TwoHop)

	advancedAt := time.Now().UTC().Truncate(time.Microsecond)
	suite.Require().NoError(record.Advance(transit.OutFromBranch1, advancedAt))
	suite.Require().NoError(suite.transits.Update(ctx, record))

	query, err := queries.NewGetTransitRecordsByChallanQuery(challanID)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(ctx, query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 1)

	row := result[0]
	suite.Equal(transit.LabelInTransit, row.StatusLabel)
	suite.False(row.Delivered)

	// Two-hop door delivery walks all five milestones in order.
	suite.Require().Len(row.Milestones, 5)
	suite.Equal(transit.OutFromBranch1.String(), row.Milestones[0].Milestone)
	suite.True(row.Milestones[0].Set)
	suite.Require().NotNil(row.Milestones[0].At)
	suite.WithinDuration(advancedAt, *row.Milestones[0].At, time.Millisecond)
	suite.Equal(transit.OutForDoorDelivery.String(), row.Milestones[3].Milestone)
	suite.False(row.Milestones[1].Set)
	suite.Nil(row.Milestones[1].At)
}

func (suite *GetTransitRecordsQueryHandlerTestSuite) TestHandle_DirectRouteTerminalIsDelivered() {
	ctx := context.Background()

	challanID := kernel.NewUUID()
	record := suite.seedRecord("JPR101", challanID, kernel.NewUUID(), shipment.Godown, transit.DirectDestination)

	now := time.Now().UTC()
	suite.Require().NoError(record.Advance(transit.OutFromBranch1, now))
	suite.Require().NoError(record.Advance(transit.DeliveredAtBranch2, now))
	suite.Require().NoError(suite.transits.Update(ctx, record))

	query, err := queries.NewGetTransitRecordsByChallanQuery(challanID)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(ctx, query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.Equal(transit.LabelDelivered, result[0].StatusLabel)
	suite.True(result[0].Delivered)
	suite.Len(result[0].Milestones, 2)
}

func (suite *GetTransitRecordsQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	invalidQuery := queries.GetTransitRecordsQuery{}

	result, err := suite.handler.Handle(context.Background(), invalidQuery)

	suite.Require().Error(err)
	suite.Nil(result)
}

func (suite *GetTransitRecordsQueryHandlerTestSuite) seedRecord(
	grNo string, challanID, fromBranchID kernel.UUID,
	deliveryType shipment.DeliveryType, routeClass transit.RouteClass,
) *transit.TransitDetails {
	gr, err := kernel.NewGRNo(grNo)
	suite.Require().NoError(err)

	record, err := transit.NewTransitDetails(kernel.NewUUID(), gr, challanID, "JPR-000001/A",
		fromBranchID, kernel.NewUUID(), deliveryType, routeClass)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.transits.Add(context.Background(), record))
	return record
}

func TestGetTransitRecordsQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetTransitRecordsQueryHandlerTestSuite))
}
