package commands

import (
	"context"
	"errors"
	"time"

	"freight/internal/core/domain/model/transit"
)

// ErrDispatchEmptyChallan is returned when dispatching a challan that carries
// no active transit records. An empty truck leaving is always a data-entry
// mistake.
var ErrDispatchEmptyChallan = errors.New("challan has no active transit records to dispatch")

// DispatchChallanCommandHandler handles the dispatch workflow: every active
// record on the challan is marked out-from-branch1 and the challan's dispatch
// lock is set, all in one transaction. The milestone writes happen before the
// lock is observable, so the lock never blocks its own dispatch.
type DispatchChallanCommandHandler struct {
	uowFactory ChallanTransitUoWFactory
}

// NewDispatchChallanCommandHandler creates a handler for dispatch operations.
// Requires a ChallanTransitUoWFactory for transactional persistence.
func NewDispatchChallanCommandHandler(uowFactory ChallanTransitUoWFactory) DispatchChallanCommandHandler {
	return DispatchChallanCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the dispatch command.
// Dispatching an already dispatched challan returns
// challan.ErrChallanAlreadyDispatched; after a successful dispatch every
// further mutation of the challan or its records is refused.
func (h *DispatchChallanCommandHandler) Handle(ctx context.Context, cmd DispatchChallanCommand) error {
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

	challanRepo := uow.ChallanRepository()
	transitRepo := uow.TransitRepository()

	targetChallan, err := challanRepo.Get(ctx, cmd.ChallanID())
	if err != nil {
		return err
	}
	if err = targetChallan.Dispatch(); err != nil {
		return err
	}

	records, err := transitRepo.GetActiveByChallanID(ctx, cmd.ChallanID())
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return ErrDispatchEmptyChallan
	}

	// The lock only becomes observable at commit, after the out-from-branch1
	// writes below.
	now := time.Now().UTC()
	for _, record := range records {
		if err = record.Advance(transit.OutFromBranch1, now); err != nil {
			return err
		}
		if err = transitRepo.Update(ctx, record); err != nil {
			return err
		}
	}

	if err = challanRepo.Update(ctx, targetChallan); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
