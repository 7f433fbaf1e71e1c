// Package queries contains read-side operations of the CQRS architecture.
// Query handlers read the database directly with raw SQL and return flat read
// models; they never load aggregates or mutate state.
package queries

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/services"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var ErrGetAvailableShipmentsQueryIsNotConstructed = errors.New(
	"GetAvailableShipmentsQuery must be created via NewGetAvailableShipmentsQuery constructor",
)

// GetAvailableShipmentsQuery retrieves the shipments an operator may load onto
// a challan: saved, active, booked at the operator's branch and not already
// held by an active transit record.
//
// Example:
//
//	query, _ := NewGetAvailableShipmentsQuery(branchID, services.SortByGR)
//	handler := NewGetAvailableShipmentsQueryHandler(db)
//
//	available, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get available shipments: %w", err)
//	}
//	fmt.Printf("%d shipments ready for loading\n", len(available))
type GetAvailableShipmentsQuery struct { //nolint:recvcheck //using for validation
	branchID kernel.UUID
	sortMode services.SortMode

	guard guard.ConstructorGuard
}

// NewGetAvailableShipmentsQuery creates a query for a branch's availability list.
func NewGetAvailableShipmentsQuery(
	branchID kernel.UUID,
	sortMode services.SortMode,
) (GetAvailableShipmentsQuery, error) {
	q := GetAvailableShipmentsQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		q.setBranchID(branchID),
		q.setSortMode(sortMode),
	); err != nil {
		return GetAvailableShipmentsQuery{}, err
	}

	return q, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetAvailableShipmentsQueryIsNotConstructed if validation fails.
func (q GetAvailableShipmentsQuery) Validate() error {
	return q.guard.Validate(ErrGetAvailableShipmentsQueryIsNotConstructed)
}

// BranchID returns the branch whose availability list is requested.
func (q GetAvailableShipmentsQuery) BranchID() kernel.UUID {
	return q.branchID
}

// SortMode returns the requested ordering.
func (q GetAvailableShipmentsQuery) SortMode() services.SortMode {
	return q.sortMode
}

func (q *GetAvailableShipmentsQuery) setBranchID(branchID kernel.UUID) error {
	if err := branchID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("branchID", err)
	}

	q.branchID = branchID
	return nil
}

func (q *GetAvailableShipmentsQuery) setSortMode(sortMode services.SortMode) error {
	if err := sortMode.Validate(); err != nil {
		return err
	}

	q.sortMode = sortMode
	return nil
}

// GetAvailableShipmentsQueryResponse is one row of the availability list.
type GetAvailableShipmentsQueryResponse struct {
	ShipmentID      kernel.UUID
	GRNo            string
	DestinationCity string
	Packages        int
	WeightKg        float64
	Amount          float64
	PaymentMode     string
	DeliveryType    string
}
