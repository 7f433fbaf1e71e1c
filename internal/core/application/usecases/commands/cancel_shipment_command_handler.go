package commands

import (
	"context"
	"errors"
	"fmt"

	"freight/internal/pkg/errs"
)

// ErrShipmentInTransit is returned when cancelling a shipment that is assigned
// to a challan. The operator must remove it from transit first, so a cancelled
// record can never ride on an active manifest.
var ErrShipmentInTransit = errors.New("shipment is in active transit")

// CancelShipmentCommandHandler handles shipment cancellation, the engine's one
// write into booking data. Cancellation is a soft delete.
type CancelShipmentCommandHandler struct {
	uowFactory ShipmentTransitUoWFactory
}

// NewCancelShipmentCommandHandler creates a handler for shipment cancellation.
// Requires a ShipmentTransitUoWFactory for transactional persistence.
func NewCancelShipmentCommandHandler(uowFactory ShipmentTransitUoWFactory) CancelShipmentCommandHandler {
	return CancelShipmentCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the cancellation command.
// Refuses with ErrShipmentInTransit while an active transit record holds the
// shipment's GR number; cancelling twice returns the shipment's own error.
func (h *CancelShipmentCommandHandler) Handle(ctx context.Context, cmd CancelShipmentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	shipmentRepo := uow.ShipmentRepository()
	transitRepo := uow.TransitRepository()

	target, err := shipmentRepo.Get(ctx, cmd.ShipmentID())
	if err != nil {
		return err
	}

	_, err = transitRepo.GetActiveByGRNo(ctx, target.GRNo())
	switch {
	case err == nil:
		return fmt.Errorf("%w: %s", ErrShipmentInTransit, target.GRNo())
	case !errors.Is(err, errs.ErrObjectNotFound):
		return err
	}

	if err = target.Cancel(); err != nil {
		return err
	}

	if err = shipmentRepo.Update(ctx, target); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
