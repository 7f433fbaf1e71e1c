package ports

import (
	"context"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/transit"
)

// TransitRepository defines the persistence contract for transit records.
//
// The store backing this interface carries a partial unique index on the GR
// number of active records, so a concurrent double-assignment of the same
// shipment fails at AddBatch instead of silently breaking exclusivity.
type TransitRepository interface {
	// Add persists a single new transit record.
	Add(ctx context.Context, aggregate *transit.TransitDetails) error

	// AddBatch persists an assignment batch. The rows are written together in
	// the surrounding transaction; a failure fails the whole batch.
	AddBatch(ctx context.Context, aggregates []*transit.TransitDetails) error

	// Update persists milestone and state changes of an existing record.
	Update(ctx context.Context, aggregate *transit.TransitDetails) error

	// Get retrieves a transit record by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*transit.TransitDetails, error)

	// GetActiveByChallanID retrieves the active records assigned to a challan.
	GetActiveByChallanID(ctx context.Context, challanID kernel.UUID) ([]*transit.TransitDetails, error)

	// GetActiveGRNosByOriginBranch retrieves the GR numbers currently held by
	// active records originating at the given branch. The availability filter
	// subtracts these from the candidate pool.
	GetActiveGRNosByOriginBranch(ctx context.Context, branchID kernel.UUID) ([]kernel.GRNo, error)

	// GetActiveByGRNo retrieves the active record holding the given GR number.
	// Returns an ObjectNotFoundError when the shipment is not in transit.
	GetActiveByGRNo(ctx context.Context, grNo kernel.GRNo) (*transit.TransitDetails, error)

	// CountActiveByChallanID returns the live count of active records on a
	// challan, the ground truth for count reconciliation.
	CountActiveByChallanID(ctx context.Context, challanID kernel.UUID) (int, error)
}
