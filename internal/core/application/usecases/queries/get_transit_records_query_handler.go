package queries

import (
	"context"
	"sort"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/shipment"
	"freight/internal/core/domain/model/transit"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetTransitRecordsQueryHandler lists active transit records with per-record
// progress labels, for the loading screen (by challan) and the branch transit
// register (by origin branch).
type GetTransitRecordsQueryHandler struct {
	db *gorm.DB
}

// NewGetTransitRecordsQueryHandler creates a handler for transit record queries.
// Requires a GORM database connection for query execution.
func NewGetTransitRecordsQueryHandler(db *gorm.DB) GetTransitRecordsQueryHandler {
	return GetTransitRecordsQueryHandler{db: db}
}

// Handle executes the transit records query.
// Only active records are listed; removed records stay in the store for audit
// but never appear on operational screens. Results follow the GR ordering.
func (h GetTransitRecordsQueryHandler) Handle(
	ctx context.Context,
	query GetTransitRecordsQuery,
) ([]GetTransitRecordsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	filterColumn, filterValue := "from_branch_id", query.BranchID()
	if query.ByChallan() {
		filterColumn, filterValue = "challan_id", query.ChallanID()
	}

	records := make([]GetTransitRecordsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			gr_no,
			challan_id,
			challan_no,
			delivery_type,
			route_class,
			out_from_branch1,
			out_from_branch1_at,
			delivered_at_branch2,
			delivered_at_branch2_at,
			out_from_branch2,
			out_from_branch2_at,
			out_for_door_delivery,
			out_for_door_delivery_at,
			delivered_at_destination,
			delivered_at_destination_at
		FROM transit_details
		WHERE `+filterColumn+` = ? AND is_active
	`, filterValue.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		resp, scanErr := h.scanRecord(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		records = append(records, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	sort.SliceStable(records, func(i, j int) bool {
		return kernel.CompareGRNos(records[i].GRNo, records[j].GRNo) < 0
	})

	return records, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (h GetTransitRecordsQueryHandler) scanRecord(rows rowScanner) (GetTransitRecordsQueryResponse, error) {
	var resp GetTransitRecordsQueryResponse
	var id, challanID uuid.UUID
	var deliveryTypeStr, routeClassStr string
	var flags transit.MilestoneFlags

	err := rows.Scan(
		&id,
		&resp.GRNo,
		&challanID,
		&resp.ChallanNo,
		&deliveryTypeStr,
		&routeClassStr,
		&flags.OutFromBranch1.Set,
		&flags.OutFromBranch1.At,
		&flags.DeliveredAtBranch2.Set,
		&flags.DeliveredAtBranch2.At,
		&flags.OutFromBranch2.Set,
		&flags.OutFromBranch2.At,
		&flags.OutForDoorDelivery.Set,
		&flags.OutForDoorDelivery.At,
		&flags.DeliveredAtDestination.Set,
		&flags.DeliveredAtDestination.At,
	)
	if err != nil {
		return GetTransitRecordsQueryResponse{}, err
	}

	transitID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetTransitRecordsQueryResponse{}, err
	}
	ownerID, err := kernel.UUIDFromBytes(challanID[:])
	if err != nil {
		return GetTransitRecordsQueryResponse{}, err
	}

	deliveryType, err := shipment.DeliveryTypeFromString(deliveryTypeStr)
	if err != nil {
		return GetTransitRecordsQueryResponse{}, err
	}
	routeClass, err := transit.RouteClassFromString(routeClassStr)
	if err != nil {
		return GetTransitRecordsQueryResponse{}, err
	}

	resp.TransitID = transitID
	resp.ChallanID = ownerID
	resp.DeliveryType = deliveryType.String()
	resp.RouteClass = routeClass.String()
	resp.StatusLabel = transit.StatusLabelFor(routeClass, deliveryType, flags)
	resp.Delivered = resp.StatusLabel == transit.LabelDelivered
	resp.Milestones = milestoneViews(routeClass, deliveryType, flags)

	return resp, nil
}

// milestoneViews renders the record's own path in order; milestones that are
// not on the path are omitted rather than shown as unreachable.
func milestoneViews(
	routeClass transit.RouteClass,
	deliveryType shipment.DeliveryType,
	flags transit.MilestoneFlags,
) []MilestoneView {
	flagFor := map[transit.Milestone]transit.MilestoneFlag{
		transit.OutFromBranch1:         flags.OutFromBranch1,
		transit.DeliveredAtBranch2:     flags.DeliveredAtBranch2,
		transit.OutFromBranch2:         flags.OutFromBranch2,
		transit.OutForDoorDelivery:     flags.OutForDoorDelivery,
		transit.DeliveredAtDestination: flags.DeliveredAtDestination,
	}

	path := transit.PathFor(routeClass, deliveryType)
	views := make([]MilestoneView, 0, len(path))
	for _, m := range path {
		flag := flagFor[m]
		var at *time.Time
		if flag.Set {
			at = flag.At
		}
		views = append(views, MilestoneView{
			Milestone: m.String(),
			Set:       flag.Set,
			At:        at,
		})
	}
	return views
}
