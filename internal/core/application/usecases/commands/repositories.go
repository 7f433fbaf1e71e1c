// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"freight/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// Each handler depends only on the repositories its operation touches.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// ShipmentRepoFactory provides access to the shipment repository within a transaction.
	ShipmentRepoFactory interface {
		ShipmentRepository() ports.ShipmentRepository
	}

	// ChallanRepoFactory provides access to the challan repository within a transaction.
	ChallanRepoFactory interface {
		ChallanRepository() ports.ChallanRepository
	}

	// ChallanBookRepoFactory provides access to the challan book repository within a transaction.
	ChallanBookRepoFactory interface {
		ChallanBookRepository() ports.ChallanBookRepository
	}

	// TransitRepoFactory provides access to the transit repository within a transaction.
	TransitRepoFactory interface {
		TransitRepository() ports.TransitRepository
	}

	// ShipmentUoW manages transactions for shipment-only operations.
	ShipmentUoW interface {
		TxManager
		ShipmentRepoFactory
	}

	// ShipmentUoWFactory creates new shipment unit of work instances.
	ShipmentUoWFactory interface {
		Create() ShipmentUoW
	}

	// ShipmentTransitUoW manages transactions spanning shipments and their
	// transit assignments. Used by cancellation, which must verify the shipment
	// is not sitting on an active challan.
	ShipmentTransitUoW interface {
		TxManager
		ShipmentRepoFactory
		TransitRepoFactory
	}

	// ShipmentTransitUoWFactory creates new shipment+transit unit of work instances.
	ShipmentTransitUoWFactory interface {
		Create() ShipmentTransitUoW
	}

	// ChallanBookUoW manages transactions spanning challans and their numbering
	// sequences. Consuming a number and inserting the challan commit together.
	ChallanBookUoW interface {
		TxManager
		ChallanRepoFactory
		ChallanBookRepoFactory
	}

	// ChallanBookUoWFactory creates new challan+book unit of work instances.
	ChallanBookUoWFactory interface {
		Create() ChallanBookUoW
	}

	// ChallanTransitUoW manages transactions spanning a challan and its transit
	// records: removal, milestone advancement, dispatch and count reconciliation.
	ChallanTransitUoW interface {
		TxManager
		ChallanRepoFactory
		TransitRepoFactory
	}

	// ChallanTransitUoWFactory creates new challan+transit unit of work instances.
	ChallanTransitUoWFactory interface {
		Create() ChallanTransitUoW
	}

	// AssignmentUoW manages transactions for the assignment operation, which is
	// the one command touching all four aggregates: the challan gains count, the
	// book supplies the lane, shipments supply the freight data and transit rows
	// are inserted.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   challanRepo := uow.ChallanRepository()
	//   transitRepo := uow.TransitRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	AssignmentUoW interface {
		TxManager
		ChallanRepoFactory
		ChallanBookRepoFactory
		ShipmentRepoFactory
		TransitRepoFactory
	}

	// AssignmentUoWFactory creates new assignment unit of work instances.
	AssignmentUoWFactory interface {
		Create() AssignmentUoW
	}
)
