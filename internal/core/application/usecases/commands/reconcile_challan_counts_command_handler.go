package commands

import (
	"context"

	"freight/internal/core/domain/model/kernel"
)

// CountCorrection records one repaired challan counter.
type CountCorrection struct {
	ChallanID kernel.UUID
	ChallanNo string
	From      int
	To        int
}

// ReconciliationResult lists the corrections a reconciliation run applied.
// An empty list means every counter already matched its live records.
type ReconciliationResult struct {
	Corrections []CountCorrection
}

// ReconcileChallanCountsCommandHandler recomputes each active challan's bilty
// count from its live transit records and overwrites drifted counters. It runs
// from the reconciliation job but can be invoked directly.
//
// Reconciliation repairs dispatched challans too: it only moves the counter
// toward the stored truth and never touches transit records, so the dispatch
// lock does not apply.
type ReconcileChallanCountsCommandHandler struct {
	uowFactory ChallanTransitUoWFactory
}

// NewReconcileChallanCountsCommandHandler creates a handler for count
// reconciliation. Requires a ChallanTransitUoWFactory for transactional
// persistence.
func NewReconcileChallanCountsCommandHandler(
	uowFactory ChallanTransitUoWFactory,
) ReconcileChallanCountsCommandHandler {
	return ReconcileChallanCountsCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the reconciliation command for one branch.
// All corrections commit together; a run that finds no drift writes nothing.
func (h *ReconcileChallanCountsCommandHandler) Handle(
	ctx context.Context,
	cmd ReconcileChallanCountsCommand,
) (ReconciliationResult, error) {
	if err := cmd.Validate(); err != nil {
		return ReconciliationResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return ReconciliationResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	challanRepo := uow.ChallanRepository()
	transitRepo := uow.TransitRepository()

	challans, err := challanRepo.GetAllActiveByOriginBranch(ctx, cmd.BranchID())
	if err != nil {
		return ReconciliationResult{}, err
	}

	var result ReconciliationResult
	for _, c := range challans {
		live, countErr := transitRepo.CountActiveByChallanID(ctx, c.ID())
		if countErr != nil {
			return ReconciliationResult{}, countErr
		}
		if live == c.TotalBiltyCount() {
			continue
		}

		correction := CountCorrection{
			ChallanID: c.ID(),
			ChallanNo: c.ChallanNo(),
			From:      c.TotalBiltyCount(),
			To:        live,
		}

		if err = c.CorrectBiltyCount(live); err != nil {
			return ReconciliationResult{}, err
		}
		if err = challanRepo.Update(ctx, c); err != nil {
			return ReconciliationResult{}, err
		}

		result.Corrections = append(result.Corrections, correction)
	}

	if err = uow.Commit(ctx); err != nil {
		return ReconciliationResult{}, err
	}

	return result, nil
}
