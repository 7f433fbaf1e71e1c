package queries

import (
	"context"
	"sort"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/shipment"
	"freight/internal/core/domain/services"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetAvailableShipmentsQueryHandler computes a branch's availability list.
// The exclusion of assigned GR numbers happens in SQL against the current
// transit state; the GR ordering happens in Go because the digit-run
// comparison has no SQL equivalent.
//
// Example:
//
//	handler := NewGetAvailableShipmentsQueryHandler(db)
//	query, _ := NewGetAvailableShipmentsQuery(branchID, services.SortByDestination)
//
//	available, err := handler.Handle(ctx, query)
//	if err != nil {
//	    log.Printf("Failed to get availability list: %v", err)
//	    return err
//	}
type GetAvailableShipmentsQueryHandler struct {
	db *gorm.DB
}

// NewGetAvailableShipmentsQueryHandler creates a handler for availability queries.
// Requires a GORM database connection for query execution.
func NewGetAvailableShipmentsQueryHandler(db *gorm.DB) GetAvailableShipmentsQueryHandler {
	return GetAvailableShipmentsQueryHandler{db: db}
}

// Handle executes the availability query.
// A shipment is available when it is saved, active, booked at the requested
// branch and its GR number is absent from active transit. The result must not
// be cached: every assignment and removal changes it.
func (h GetAvailableShipmentsQueryHandler) Handle(
	ctx context.Context,
	query GetAvailableShipmentsQuery,
) ([]GetAvailableShipmentsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	shipments := make([]GetAvailableShipmentsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			gr_no,
			destination_city,
			packages,
			weight_kg,
			amount,
			payment_mode,
			delivery_type
		FROM shipments
		WHERE origin_branch_id = ?
		  AND stage = ?
		  AND is_active
		  AND gr_no NOT IN (
			SELECT gr_no FROM transit_details WHERE is_active
		  )
	`, query.BranchID().Bytes(), shipment.Saved.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetAvailableShipmentsQueryResponse
		var id uuid.UUID

		err = rows.Scan(
			&id,
			&resp.GRNo,
			&resp.DestinationCity,
			&resp.Packages,
			&resp.WeightKg,
			&resp.Amount,
			&resp.PaymentMode,
			&resp.DeliveryType,
		)
		if err != nil {
			return nil, err
		}

		shipmentID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ShipmentID = shipmentID
		shipments = append(shipments, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	sort.SliceStable(shipments, func(i, j int) bool {
		a, b := shipments[i], shipments[j]
		if query.SortMode() == services.SortByDestination && a.DestinationCity != b.DestinationCity {
			return a.DestinationCity < b.DestinationCity
		}
		return kernel.CompareGRNos(a.GRNo, b.GRNo) < 0
	})

	return shipments, nil
}
