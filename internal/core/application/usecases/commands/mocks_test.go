package commands_test

import (
	"context"

	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/domain/model/challan"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/shipment"
	"freight/internal/core/domain/model/transit"
	"freight/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockShipmentRepository struct{ mock.Mock }

func (m *MockShipmentRepository) Add(ctx context.Context, s *shipment.Shipment) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockShipmentRepository) Update(ctx context.Context, s *shipment.Shipment) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockShipmentRepository) Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipment.Shipment), args.Error(1)
}

func (m *MockShipmentRepository) GetByIDs(ctx context.Context, ids []kernel.UUID) ([]*shipment.Shipment, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*shipment.Shipment), args.Error(1)
}

func (m *MockShipmentRepository) GetLoadableByOriginBranch(
	ctx context.Context,
	branchID kernel.UUID,
) ([]*shipment.Shipment, error) {
	args := m.Called(ctx, branchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*shipment.Shipment), args.Error(1)
}

type MockChallanRepository struct{ mock.Mock }

func (m *MockChallanRepository) Add(ctx context.Context, c *challan.Challan) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockChallanRepository) Update(ctx context.Context, c *challan.Challan) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockChallanRepository) Get(ctx context.Context, id kernel.UUID) (*challan.Challan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*challan.Challan), args.Error(1)
}

func (m *MockChallanRepository) GetAllActiveByOriginBranch(
	ctx context.Context,
	branchID kernel.UUID,
) ([]*challan.Challan, error) {
	args := m.Called(ctx, branchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*challan.Challan), args.Error(1)
}

type MockChallanBookRepository struct{ mock.Mock }

func (m *MockChallanBookRepository) Add(ctx context.Context, b *challan.ChallanBook) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockChallanBookRepository) Update(ctx context.Context, b *challan.ChallanBook) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockChallanBookRepository) Get(ctx context.Context, id kernel.UUID) (*challan.ChallanBook, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*challan.ChallanBook), args.Error(1)
}

func (m *MockChallanBookRepository) GetAllByOriginBranch(
	ctx context.Context,
	branchID kernel.UUID,
) ([]*challan.ChallanBook, error) {
	args := m.Called(ctx, branchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*challan.ChallanBook), args.Error(1)
}

type MockTransitRepository struct{ mock.Mock }

func (m *MockTransitRepository) Add(ctx context.Context, t *transit.TransitDetails) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTransitRepository) AddBatch(ctx context.Context, ts []*transit.TransitDetails) error {
	args := m.Called(ctx, ts)
	return args.Error(0)
}

func (m *MockTransitRepository) Update(ctx context.Context, t *transit.TransitDetails) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTransitRepository) Get(ctx context.Context, id kernel.UUID) (*transit.TransitDetails, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*transit.TransitDetails), args.Error(1)
}

func (m *MockTransitRepository) GetActiveByChallanID(
	ctx context.Context,
	challanID kernel.UUID,
) ([]*transit.TransitDetails, error) {
	args := m.Called(ctx, challanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*transit.TransitDetails), args.Error(1)
}

func (m *MockTransitRepository) GetActiveGRNosByOriginBranch(
	ctx context.Context,
	branchID kernel.UUID,
) ([]kernel.GRNo, error) {
	args := m.Called(ctx, branchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]kernel.GRNo), args.Error(1)
}

func (m *MockTransitRepository) GetActiveByGRNo(
	ctx context.Context,
	grNo kernel.GRNo,
) (*transit.TransitDetails, error) {
	args := m.Called(ctx, grNo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*transit.TransitDetails), args.Error(1)
}

func (m *MockTransitRepository) CountActiveByChallanID(ctx context.Context, challanID kernel.UUID) (int, error) {
	args := m.Called(ctx, challanID)
	return args.Int(0), args.Error(1)
}

// mockTx implements the Begin/Commit/Rollback trio shared by every UoW mock.
type mockTx struct{ mock.Mock }

func (m *mockTx) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *mockTx) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *mockTx) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockAssignmentUoW struct{ mockTx }

func (m *MockAssignmentUoW) ChallanRepository() ports.ChallanRepository {
	args := m.Called()
	return args.Get(0).(ports.ChallanRepository)
}

func (m *MockAssignmentUoW) ChallanBookRepository() ports.ChallanBookRepository {
	args := m.Called()
	return args.Get(0).(ports.ChallanBookRepository)
}

func (m *MockAssignmentUoW) ShipmentRepository() ports.ShipmentRepository {
	args := m.Called()
	return args.Get(0).(ports.ShipmentRepository)
}

func (m *MockAssignmentUoW) TransitRepository() ports.TransitRepository {
	args := m.Called()
	return args.Get(0).(ports.TransitRepository)
}

type MockAssignmentUoWFactory struct{ mock.Mock }

func (m *MockAssignmentUoWFactory) Create() commands.AssignmentUoW {
	args := m.Called()
	return args.Get(0).(commands.AssignmentUoW)
}

type MockChallanTransitUoW struct{ mockTx }

func (m *MockChallanTransitUoW) ChallanRepository() ports.ChallanRepository {
	args := m.Called()
	return args.Get(0).(ports.ChallanRepository)
}

func (m *MockChallanTransitUoW) TransitRepository() ports.TransitRepository {
	args := m.Called()
	return args.Get(0).(ports.TransitRepository)
}

type MockChallanTransitUoWFactory struct{ mock.Mock }

func (m *MockChallanTransitUoWFactory) Create() commands.ChallanTransitUoW {
	args := m.Called()
	return args.Get(0).(commands.ChallanTransitUoW)
}

type MockChallanBookUoW struct{ mockTx }

func (m *MockChallanBookUoW) ChallanRepository() ports.ChallanRepository {
	args := m.Called()
	return args.Get(0).(ports.ChallanRepository)
}

func (m *MockChallanBookUoW) ChallanBookRepository() ports.ChallanBookRepository {
	args := m.Called()
	return args.Get(0).(ports.ChallanBookRepository)
}

type MockChallanBookUoWFactory struct{ mock.Mock }

func (m *MockChallanBookUoWFactory) Create() commands.ChallanBookUoW {
	args := m.Called()
	return args.Get(0).(commands.ChallanBookUoW)
}

type MockShipmentUoW struct{ mockTx }

func (m *MockShipmentUoW) ShipmentRepository() ports.ShipmentRepository {
	args := m.Called()
	return args.Get(0).(ports.ShipmentRepository)
}

type MockShipmentUoWFactory struct{ mock.Mock }

func (m *MockShipmentUoWFactory) Create() commands.ShipmentUoW {
	args := m.Called()
	return args.Get(0).(commands.ShipmentUoW)
}

type MockShipmentTransitUoW struct{ mockTx }

func (m *MockShipmentTransitUoW) ShipmentRepository() ports.ShipmentRepository {
	args := m.Called()
	return args.Get(0).(ports.ShipmentRepository)
}

func (m *MockShipmentTransitUoW) TransitRepository() ports.TransitRepository {
	args := m.Called()
	return args.Get(0).(ports.TransitRepository)
}

type MockShipmentTransitUoWFactory struct{ mock.Mock }

func (m *MockShipmentTransitUoWFactory) Create() commands.ShipmentTransitUoW {
	args := m.Called()
	return args.Get(0).(commands.ShipmentTransitUoW)
}
