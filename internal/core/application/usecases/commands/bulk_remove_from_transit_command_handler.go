package commands

import (
	"context"
	"errors"
	"time"

	"freight/internal/core/domain/model/challan"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/ports"
)

var (
	// ErrPartialBatchFailure is returned when a bulk removal removed some
	// records but not all. The successes are committed; the result lists which
	// records failed and why.
	ErrPartialBatchFailure = errors.New("some records could not be removed")

	// ErrBatchFailed is returned when no record in a bulk removal could be
	// removed. Nothing is committed.
	ErrBatchFailed = errors.New("no record could be removed")
)

// RemovalFailure describes one record a bulk removal could not remove.
type RemovalFailure struct {
	TransitID kernel.UUID
	Err       error
}

// BulkRemovalResult reports the per-record outcome of a bulk removal.
type BulkRemovalResult struct {
	Removed []kernel.UUID
	Failed  []RemovalFailure
}

// BulkRemoveFromTransitCommandHandler handles batch removals. Unlike
// assignment, the batch is not atomic: each record is removed independently,
// the successes commit together, and the failures are reported per record.
// A locked challan fails its records without blocking the rest of the batch.
type BulkRemoveFromTransitCommandHandler struct {
	uowFactory ChallanTransitUoWFactory
}

// NewBulkRemoveFromTransitCommandHandler creates a handler for bulk removal
// operations. Requires a ChallanTransitUoWFactory for transactional persistence.
func NewBulkRemoveFromTransitCommandHandler(
	uowFactory ChallanTransitUoWFactory,
) BulkRemoveFromTransitCommandHandler {
	return BulkRemoveFromTransitCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the bulk removal command.
//
// Returns a nil error when every record was removed, ErrPartialBatchFailure
// when the outcome is mixed and ErrBatchFailed when nothing was removed. The
// result carries the exact split in all three cases.
func (h *BulkRemoveFromTransitCommandHandler) Handle(
	ctx context.Context,
	cmd BulkRemoveFromTransitCommand,
) (BulkRemovalResult, error) {
	if err := cmd.Validate(); err != nil {
		return BulkRemovalResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return BulkRemovalResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	challanRepo := uow.ChallanRepository()
	transitRepo := uow.TransitRepository()

	// Challans are cached so several removals from the same challan mutate one
	// instance and its count is written once.
	challans := make(map[kernel.UUID]*challan.Challan)
	now := time.Now().UTC()

	var result BulkRemovalResult
	for _, transitID := range cmd.TransitIDs() {
		if err := h.removeOne(ctx, challanRepo, transitRepo, challans, transitID, cmd.Reason(), now); err != nil {
			result.Failed = append(result.Failed, RemovalFailure{TransitID: transitID, Err: err})
			continue
		}
		result.Removed = append(result.Removed, transitID)
	}

	if len(result.Removed) == 0 {
		return result, ErrBatchFailed
	}

	for _, touched := range challans {
		if err := challanRepo.Update(ctx, touched); err != nil {
			return BulkRemovalResult{}, err
		}
	}

	if err := uow.Commit(ctx); err != nil {
		return BulkRemovalResult{}, err
	}

	if len(result.Failed) > 0 {
		return result, ErrPartialBatchFailure
	}
	return result, nil
}

// removeOne deactivates a single record and decrements its challan's count.
// Challans already seen in this batch are reused from the cache; a challan that
// fails EnsureMutable is not cached as mutated.
func (h *BulkRemoveFromTransitCommandHandler) removeOne(
	ctx context.Context,
	challanRepo ports.ChallanRepository,
	transitRepo ports.TransitRepository,
	challans map[kernel.UUID]*challan.Challan,
	transitID kernel.UUID,
	reason string,
	now time.Time,
) error {
	record, err := transitRepo.Get(ctx, transitID)
	if err != nil {
		return err
	}

	owningChallan, cached := challans[record.ChallanID()]
	if !cached {
		owningChallan, err = challanRepo.Get(ctx, record.ChallanID())
		if err != nil {
			return err
		}
	}
	if err = owningChallan.EnsureMutable(); err != nil {
		return err
	}

	if err = record.Deactivate(now, reason); err != nil {
		return err
	}

	// Write the record before touching the count: a cached challan from an
	// earlier success in this batch must not carry a decrement for a record
	// that was never deactivated.
	if err = transitRepo.Update(ctx, record); err != nil {
		return err
	}

	if err = owningChallan.RemoveBilty(); err != nil {
		return err
	}

	challans[record.ChallanID()] = owningChallan
	return nil
}
