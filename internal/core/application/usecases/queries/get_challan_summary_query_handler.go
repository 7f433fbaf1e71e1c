package queries

import (
	"context"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/shipment"
	"freight/internal/core/domain/model/transit"
	"freight/internal/pkg/errs"

	"gorm.io/gorm"
)

// statusLabelRank orders the progress labels so the summary can pick the
// furthest one reached by any record on the challan.
var statusLabelRank = map[string]int{
	transit.LabelNoTransit:    0,
	transit.LabelPending:      1,
	transit.LabelInTransit:    2,
	transit.LabelAtBranch2:    3,
	transit.LabelOutFromB2:    4,
	transit.LabelDoorDelivery: 5,
	transit.LabelDelivered:    6,
}

// GetChallanSummaryQueryHandler builds the manifest header for one challan:
// the challan row, the payment-mode splits joined from shipment data, and the
// overall progress label derived from the active records' milestone flags.
type GetChallanSummaryQueryHandler struct {
	db *gorm.DB
}

// NewGetChallanSummaryQueryHandler creates a handler for challan summaries.
// Requires a GORM database connection for query execution.
func NewGetChallanSummaryQueryHandler(db *gorm.DB) GetChallanSummaryQueryHandler {
	return GetChallanSummaryQueryHandler{db: db}
}

// Handle executes the summary query.
// Returns an ObjectNotFoundError when the challan does not exist. A challan
// without active records reports the "No Transit" label and empty splits.
func (h GetChallanSummaryQueryHandler) Handle(
	ctx context.Context,
	query GetChallanSummaryQuery,
) (GetChallanSummaryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetChallanSummaryQueryResponse{}, err
	}

	resp, err := h.loadChallanHeader(ctx, query.ChallanID())
	if err != nil {
		return GetChallanSummaryQueryResponse{}, err
	}

	if err = h.loadPaymentSplits(ctx, &resp); err != nil {
		return GetChallanSummaryQueryResponse{}, err
	}

	if err = h.loadStatusLabel(ctx, &resp); err != nil {
		return GetChallanSummaryQueryResponse{}, err
	}

	return resp, nil
}

func (h GetChallanSummaryQueryHandler) loadChallanHeader(
	ctx context.Context,
	challanID kernel.UUID,
) (GetChallanSummaryQueryResponse, error) {
	var resp GetChallanSummaryQueryResponse

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			challan_no,
			truck_no,
			driver_name,
			owner_name,
			total_bilty_count,
			is_dispatched
		FROM challans
		WHERE id = ? AND is_active
	`, challanID.Bytes()).Rows()
	if err != nil {
		return GetChallanSummaryQueryResponse{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return GetChallanSummaryQueryResponse{}, err
		}
		return GetChallanSummaryQueryResponse{},
			errs.NewObjectNotFoundError("challanId", challanID.String())
	}

	err = rows.Scan(
		&resp.ChallanNo,
		&resp.TruckNo,
		&resp.DriverName,
		&resp.OwnerName,
		&resp.TotalBiltyCount,
		&resp.IsDispatched,
	)
	if err != nil {
		return GetChallanSummaryQueryResponse{}, err
	}

	resp.ChallanID = challanID
	return resp, nil
}

func (h GetChallanSummaryQueryHandler) loadPaymentSplits(
	ctx context.Context,
	resp *GetChallanSummaryQueryResponse,
) error {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			s.payment_mode,
			COUNT(*),
			COALESCE(SUM(s.packages), 0),
			COALESCE(SUM(s.weight_kg), 0),
			COALESCE(SUM(s.amount), 0)
		FROM transit_details t
		JOIN shipments s ON s.gr_no = t.gr_no AND s.is_active
		WHERE t.challan_id = ? AND t.is_active
		GROUP BY s.payment_mode
		ORDER BY s.payment_mode
	`, resp.ChallanID.Bytes()).Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var split PaymentModeSplit

		err = rows.Scan(
			&split.PaymentMode,
			&split.Bilties,
			&split.Packages,
			&split.WeightKg,
			&split.Amount,
		)
		if err != nil {
			return err
		}

		if _, modeErr := shipment.PaymentModeFromString(split.PaymentMode); modeErr != nil {
			return modeErr
		}

		resp.Splits = append(resp.Splits, split)
		resp.TotalPackages += split.Packages
		resp.TotalWeightKg += split.WeightKg
		resp.TotalAmount += split.Amount
	}

	return rows.Err()
}

func (h GetChallanSummaryQueryHandler) loadStatusLabel(
	ctx context.Context,
	resp *GetChallanSummaryQueryResponse,
) error {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			route_class,
			delivery_type,
			out_from_branch1,
			delivered_at_branch2,
			out_from_branch2,
			out_for_door_delivery,
			delivered_at_destination
		FROM transit_details
		WHERE challan_id = ? AND is_active
	`, resp.ChallanID.Bytes()).Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	resp.StatusLabel = transit.LabelNoTransit
	for rows.Next() {
		var routeClassStr, deliveryTypeStr string
		var flags transit.MilestoneFlags

		err = rows.Scan(
			&routeClassStr,
			&deliveryTypeStr,
			&flags.OutFromBranch1.Set,
			&flags.DeliveredAtBranch2.Set,
			&flags.OutFromBranch2.Set,
			&flags.OutForDoorDelivery.Set,
			&flags.DeliveredAtDestination.Set,
		)
		if err != nil {
			return err
		}

		routeClass, rcErr := transit.RouteClassFromString(routeClassStr)
		if rcErr != nil {
			return rcErr
		}
		deliveryType, dtErr := shipment.DeliveryTypeFromString(deliveryTypeStr)
		if dtErr != nil {
			return dtErr
		}

		label := transit.StatusLabelFor(routeClass, deliveryType, flags)
		if statusLabelRank[label] > statusLabelRank[resp.StatusLabel] {
			resp.StatusLabel = label
		}
	}

	return rows.Err()
}
