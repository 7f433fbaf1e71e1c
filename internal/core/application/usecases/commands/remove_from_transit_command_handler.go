package commands

import (
	"context"
	"time"
)

// RemovalResult reports the challan's bilty count after a removal.
type RemovalResult struct {
	NewCount int
}

// RemoveFromTransitCommandHandler handles taking a single shipment off its
// challan: the transit record is deactivated and the challan's count drops by
// one, floored at zero, in one transaction.
type RemoveFromTransitCommandHandler struct {
	uowFactory ChallanTransitUoWFactory
}

// NewRemoveFromTransitCommandHandler creates a handler for removal operations.
// Requires a ChallanTransitUoWFactory for transactional persistence.
func NewRemoveFromTransitCommandHandler(uowFactory ChallanTransitUoWFactory) RemoveFromTransitCommandHandler {
	return RemoveFromTransitCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the removal command.
// Refuses when the owning challan is dispatched; deactivating an already
// removed record is an error so double submissions surface to the operator.
func (h *RemoveFromTransitCommandHandler) Handle(
	ctx context.Context,
	cmd RemoveFromTransitCommand,
) (RemovalResult, error) {
	if err := cmd.Validate(); err != nil {
		return RemovalResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return RemovalResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	challanRepo := uow.ChallanRepository()
	transitRepo := uow.TransitRepository()

	record, err := transitRepo.Get(ctx, cmd.TransitID())
	if err != nil {
		return RemovalResult{}, err
	}

	owningChallan, err := challanRepo.Get(ctx, record.ChallanID())
	if err != nil {
		return RemovalResult{}, err
	}
	if err = owningChallan.EnsureMutable(); err != nil {
		return RemovalResult{}, err
	}

	if err = record.Deactivate(time.Now().UTC(), cmd.Reason()); err != nil {
		return RemovalResult{}, err
	}

	if err = owningChallan.RemoveBilty(); err != nil {
		return RemovalResult{}, err
	}

	if err = transitRepo.Update(ctx, record); err != nil {
		return RemovalResult{}, err
	}

	if err = challanRepo.Update(ctx, owningChallan); err != nil {
		return RemovalResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return RemovalResult{}, err
	}

	return RemovalResult{NewCount: owningChallan.TotalBiltyCount()}, nil
}
