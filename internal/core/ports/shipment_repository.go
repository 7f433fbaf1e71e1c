package ports

import (
	"context"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/shipment"
)

// ShipmentRepository defines the persistence contract for shipment records.
// The transit engine mostly reads shipments; Update exists for the
// cancellation soft-delete.
type ShipmentRepository interface {
	// Add persists a new shipment record.
	Add(ctx context.Context, aggregate *shipment.Shipment) error

	// Update persists changes to an existing shipment record.
	Update(ctx context.Context, aggregate *shipment.Shipment) error

	// Get retrieves a shipment by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error)

	// GetByIDs retrieves the shipments for the given identifiers.
	// Returns an ObjectNotFoundError if any identifier has no record.
	GetByIDs(ctx context.Context, ids []kernel.UUID) ([]*shipment.Shipment, error)

	// GetLoadableByOriginBranch retrieves the saved, active shipments booked at
	// the given branch, the candidate pool for the availability filter.
	GetLoadableByOriginBranch(ctx context.Context, branchID kernel.UUID) ([]*shipment.Shipment, error)
}
