package commands

import (
	"context"
	"time"
)

// AdvanceResult reports the record's progress after an advancement.
type AdvanceResult struct {
	// StatusLabel is the operator-facing label after the change.
	StatusLabel string

	// Delivered reports whether the record reached its terminal milestone.
	Delivered bool
}

// AdvanceMilestoneCommandHandler handles delivery-progress updates. Setting an
// already set milestone is a harmless no-op so gateway retries and duplicate
// scans never error; setting a milestone whose predecessors are unset is
// refused by the record itself.
type AdvanceMilestoneCommandHandler struct {
	uowFactory ChallanTransitUoWFactory
}

// NewAdvanceMilestoneCommandHandler creates a handler for milestone updates.
// Requires a ChallanTransitUoWFactory for transactional persistence.
func NewAdvanceMilestoneCommandHandler(uowFactory ChallanTransitUoWFactory) AdvanceMilestoneCommandHandler {
	return AdvanceMilestoneCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the milestone advancement command.
// The owning challan must not be dispatched: after dispatch the manifest and
// everything on it is frozen, and progress updates are refused like any other
// mutation.
func (h *AdvanceMilestoneCommandHandler) Handle(
	ctx context.Context,
	cmd AdvanceMilestoneCommand,
) (AdvanceResult, error) {
	if err := cmd.Validate(); err != nil {
		return AdvanceResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return AdvanceResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	challanRepo := uow.ChallanRepository()
	transitRepo := uow.TransitRepository()

	record, err := transitRepo.Get(ctx, cmd.TransitID())
	if err != nil {
		return AdvanceResult{}, err
	}

	owningChallan, err := challanRepo.Get(ctx, record.ChallanID())
	if err != nil {
		return AdvanceResult{}, err
	}
	if err = owningChallan.EnsureMutable(); err != nil {
		return AdvanceResult{}, err
	}

	if err = record.Advance(cmd.Milestone(), time.Now().UTC()); err != nil {
		return AdvanceResult{}, err
	}

	if err = transitRepo.Update(ctx, record); err != nil {
		return AdvanceResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return AdvanceResult{}, err
	}

	return AdvanceResult{
		StatusLabel: record.StatusLabel(),
		Delivered:   record.IsDelivered(),
	}, nil
}
