package ports

import (
	"context"

	"freight/internal/core/domain/model/challan"
	"freight/internal/core/domain/model/kernel"
)

// ChallanRepository defines the persistence contract for challan aggregates.
type ChallanRepository interface {
	// Add persists a new challan.
	Add(ctx context.Context, aggregate *challan.Challan) error

	// Update persists changes to an existing challan (count, dispatch flag).
	Update(ctx context.Context, aggregate *challan.Challan) error

	// Get retrieves a challan by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*challan.Challan, error)

	// GetAllActiveByOriginBranch retrieves the active challans originating at
	// the given branch, for loading screens and count reconciliation.
	GetAllActiveByOriginBranch(ctx context.Context, branchID kernel.UUID) ([]*challan.Challan, error)
}

// ChallanBookRepository defines the persistence contract for challan numbering
// sequences. Consuming a number mutates the book, so Update runs in the same
// transaction as the challan insert that used the number.
type ChallanBookRepository interface {
	// Add persists a new numbering sequence.
	Add(ctx context.Context, aggregate *challan.ChallanBook) error

	// Update persists the advanced counter of a sequence.
	Update(ctx context.Context, aggregate *challan.ChallanBook) error

	// Get retrieves a numbering sequence by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*challan.ChallanBook, error)

	// GetAllByOriginBranch retrieves the sequences whose lane starts at the
	// given branch.
	GetAllByOriginBranch(ctx context.Context, branchID kernel.UUID) ([]*challan.ChallanBook, error)
}
