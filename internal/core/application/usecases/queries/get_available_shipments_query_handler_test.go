package queries_test

import (
	"context"
	"testing"
	"time"

	"freight/internal/adapters/out/postgres/shipmentrepo"
	"freight/internal/adapters/out/postgres/transitrepo"
	"freight/internal/core/application/usecases/queries"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/shipment"
	"freight/internal/core/domain/model/transit"
	"freight/internal/core/domain/services"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// mockAggregateTracker is a no-op tracker for seeding test data through the repositories.
type mockAggregateTracker struct{}

func (m *mockAggregateTracker) TrackAggregate(_ kernel.UUID, _ any) {
}

type GetAvailableShipmentsQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.GetAvailableShipmentsQueryHandler
	shipments *shipmentrepo.GormShipmentRepository
	transits  *transitrepo.GormTransitRepository
	branchID  kernel.UUID
}

func (suite *GetAvailableShipmentsQueryHandlerTestSuite) SetupSuite() {
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

	err = db.AutoMigrate(&shipmentrepo.ShipmentDTO{}, &transitrepo.TransitDTO{})
	suite.Require().NoError(err)

	suite.handler = queries.NewGetAvailableShipmentsQueryHandler(db)
	suite.shipments = shipmentrepo.NewGormShipmentRepository(db, &mockAggregateTracker{})
	suite.transits = transitrepo.NewGormTransitRepository(db, &mockAggregateTracker{})
}

func (suite *GetAvailableShipmentsQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *GetAvailableShipmentsQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE shipments, transit_details").Error
	suite.Require().NoError(err)
	suite.branchID = kernel.NewUUID()
}

func (suite *GetAvailableShipmentsQueryHandlerTestSuite) TestHandle_EmptyDatabase_ReturnsEmptySlice() {
	query, err := queries.NewGetAvailableShipmentsQuery(suite.branchID, services.SortByGR)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *GetAvailableShipmentsQueryHandlerTestSuite) TestHandle_ExcludesAssignedDraftCancelledAndForeign() {
	ctx := context.Background()

	available := suite.seedShipment("JPR102", suite.branchID, shipment.Saved, "Jaipur")
	assigned := suite.seedShipment("JPR103", suite.branchID, shipment.Saved, "Jaipur")
	suite.seedShipment("JPR104", suite.branchID, shipment.Draft, "Jaipur")
	cancelled := suite.seedShipment("JPR105", suite.branchID, shipment.Saved, "Jaipur")
	suite.Require().NoError(cancelled.Cancel())
	suite.Require().NoError(suite.shipments.Update(ctx, cancelled))
	suite.seedShipment("JPR106", kernel.NewUUID(), shipment.Saved, "Jaipur")

	suite.seedActiveTransit(assigned.GRNo())

	query, err := queries.NewGetAvailableShipmentsQuery(suite.branchID, services.SortByGR)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(ctx, query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.Equal(available.ID(), result[0].ShipmentID)
	suite.Equal("JPR102", result[0].GRNo)
}

func (suite *GetAvailableShipmentsQueryHandlerTestSuite) TestHandle_RemovedTransitFreesTheGRNo() {
	ctx := context.Background()

	s := suite.seedShipment("JPR102", suite.branchID, shipment.Saved, "Jaipur")
	record := suite.seedActiveTransit(s.GRNo())

	suite.Require().NoError(record.Deactivate(time.Now().UTC(), "wrong truck"))
	suite.Require().NoError(suite.transits.Update(ctx, record))

	query, err := queries.NewGetAvailableShipmentsQuery(suite.branchID, services.SortByGR)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(ctx, query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.Equal("JPR102", result[0].GRNo)
}

func (suite *GetAvailableShipmentsQueryHandlerTestSuite) TestHandle_SortByGR_NumericRunsOrderNumerically() {
	ctx := context.Background()

	suite.seedShipment("JPR10", suite.branchID, shipment.Saved, "Jaipur")
	suite.seedShipment("JPR9", suite.branchID, shipment.Saved, "Kota")
	suite.seedShipment("JPR100", suite.branchID, shipment.Saved, "Ajmer")

	query, err := queries.NewGetAvailableShipmentsQuery(suite.branchID, services.SortByGR)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(ctx, query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 3)
	suite.Equal("JPR9", result[0].GRNo)
	suite.Equal("JPR10", result[1].GRNo)
	suite.Equal("JPR100", result[2].GRNo)
}

func (suite *GetAvailableShipmentsQueryHandlerTestSuite) TestHandle_SortByDestination_CityFirstThenGR() {
	ctx := context.Background()

	suite.seedShipment("JPR10", suite.branchID, shipment.Saved, "Kota")
	suite.seedShipment("JPR9", suite.branchID, shipment.Saved, "Kota")
	suite.seedShipment("JPR100", suite.branchID, shipment.Saved, "Ajmer")

	query, err := queries.NewGetAvailableShipmentsQuery(suite.branchID, services.SortByDestination)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(ctx, query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 3)
	suite.Equal("JPR100", result[0].GRNo)
	suite.Equal("JPR9", result[1].GRNo)
	suite.Equal("JPR10", result[2].GRNo)
}

func (suite *GetAvailableShipmentsQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	invalidQuery := queries.GetAvailableShipmentsQuery{}

	result, err := suite.handler.Handle(context.Background(), invalidQuery)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.Contains(err.Error(), "must be created via NewGetAvailableShipmentsQuery constructor")
}

func (suite *GetAvailableShipmentsQueryHandlerTestSuite) seedShipment(
	grNo string, branchID kernel.UUID, stage shipment.Stage, city string,
) *shipment.Shipment {
	gr, err := kernel.NewGRNo(grNo)
	suite.Require().NoError(err)

	s, err := shipment.NewShipment(kernel.NewUUID(), gr, branchID, city,
		3, 120.5, 1500, shipment.ToPay, shipment.Godown, shipment.Regular, stage)
	suite.Require().NoError(err)

	suite.Require().NoError(suite.shipments.Add(context.Background(), s))
	return s
}

func (suite *GetAvailableShipmentsQueryHandlerTestSuite) seedActiveTransit(
	grNo kernel.GRNo,
) *transit.TransitDetails {
	record, err := transit.NewTransitDetails(kernel.NewUUID(), grNo, kernel.NewUUID(),
		"JPR-000001/A", suite.branchID, kernel.NewUUID(), shipment.Godown, transit.TwoHop)
	suite.Require().NoError(err)

	suite.Require().NoError(suite.transits.Add(context.Background(), record))
	return record
}

func TestGetAvailableShipmentsQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetAvailableShipmentsQueryHandlerTestSuite))
}
