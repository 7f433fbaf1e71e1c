package commands

import (
	"context"

	"freight/internal/core/domain/model/shipment"
)

// CreateShipmentCommandHandler handles booking new shipment records.
type CreateShipmentCommandHandler struct {
	uowFactory ShipmentUoWFactory
}

// NewCreateShipmentCommandHandler creates a handler for shipment creation.
// Requires a ShipmentUoWFactory for transactional persistence.
func NewCreateShipmentCommandHandler(uowFactory ShipmentUoWFactory) CreateShipmentCommandHandler {
	return CreateShipmentCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the shipment creation command.
// The shipment constructor enforces the freight-data invariants; the handler
// only persists what survives it.
func (h *CreateShipmentCommandHandler) Handle(ctx context.Context, cmd CreateShipmentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	newShipment, err := shipment.NewShipment(
		cmd.ShipmentID(),
		cmd.GRNo(),
		cmd.OriginBranchID(),
		cmd.DestinationCity(),
		cmd.Packages(),
		cmd.WeightKg(),
		cmd.Amount(),
		cmd.PaymentMode(),
		cmd.DeliveryType(),
		cmd.Source(),
		cmd.Stage(),
	)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.ShipmentRepository().Add(ctx, newShipment); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
