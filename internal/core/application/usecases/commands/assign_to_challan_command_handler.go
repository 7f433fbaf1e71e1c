package commands

import (
	"context"
	"errors"
	"fmt"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/shipment"
	"freight/internal/core/domain/model/transit"
	"freight/internal/core/domain/services"
)

var (
	// ErrShipmentNotLoadable is returned when a selected shipment is a draft or
	// has been cancelled since the availability list was rendered.
	ErrShipmentNotLoadable = errors.New("shipment is not loadable")

	// ErrShipmentNotAtBranch is returned when a selected shipment was booked at
	// a different branch than the assigning operator's.
	ErrShipmentNotAtBranch = errors.New("shipment was not booked at this branch")

	// ErrShipmentAlreadyInTransit is returned when a selected shipment's GR
	// number is already held by an active transit record. The store's unique
	// index raises the same condition for races the pre-check cannot see.
	ErrShipmentAlreadyInTransit = errors.New("shipment is already assigned to a challan")
)

// AssignmentResult reports the outcome of a successful assignment batch.
type AssignmentResult struct {
	// NewCount is the challan's bilty count after the batch.
	NewCount int

	// AssignedTransitIDs identifies the created transit records, in the order
	// the shipments were selected.
	AssignedTransitIDs []kernel.UUID
}

// AssignToChallanCommandHandler handles the business logic for loading
// shipments onto a challan. The whole batch succeeds or fails as one
// transaction: transit rows, the challan's count, nothing in between.
//
// Example:
//
//	handler := NewAssignToChallanCommandHandler(uowFactory)
//	cmd, _ := NewAssignToChallanCommand(branchID, challanID, bookID, shipmentIDs, false)
//
//	result, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, challan.ErrChallanLocked) {
//	    // challan was dispatched between render and submit
//	}
type AssignToChallanCommandHandler struct {
	uowFactory   AssignmentUoWFactory
	availability services.AvailabilityFilter
}

// NewAssignToChallanCommandHandler creates a handler for assignment operations.
// Requires an AssignmentUoWFactory for transactional persistence.
func NewAssignToChallanCommandHandler(uowFactory AssignmentUoWFactory) AssignToChallanCommandHandler {
	return AssignToChallanCommandHandler{
		uowFactory:   uowFactory,
		availability: services.NewAvailabilityFilter(),
	}
}

// Handle processes the assignment command.
//
// Preconditions checked in order: the challan exists and is not dispatched,
// every selected shipment exists, is loadable, belongs to the operator's branch
// and is not already in active transit. On success one transit record per
// shipment is created with all milestones unset and the challan's count grows
// by the batch size.
func (h *AssignToChallanCommandHandler) Handle(
	ctx context.Context,
	cmd AssignToChallanCommand,
) (AssignmentResult, error) {
	if err := cmd.Validate(); err != nil {
		return AssignmentResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return AssignmentResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	challanRepo := uow.ChallanRepository()
	bookRepo := uow.ChallanBookRepository()
	shipmentRepo := uow.ShipmentRepository()
	transitRepo := uow.TransitRepository()

	targetChallan, err := challanRepo.Get(ctx, cmd.ChallanID())
	if err != nil {
		return AssignmentResult{}, err
	}
	if err = targetChallan.EnsureMutable(); err != nil {
		return AssignmentResult{}, err
	}

	book, err := bookRepo.Get(ctx, cmd.ChallanBookID())
	if err != nil {
		return AssignmentResult{}, err
	}

	shipments, err := shipmentRepo.GetByIDs(ctx, cmd.ShipmentIDs())
	if err != nil {
		return AssignmentResult{}, err
	}

	assignedGRNos, err := transitRepo.GetActiveGRNosByOriginBranch(ctx, cmd.BranchID())
	if err != nil {
		return AssignmentResult{}, err
	}

	// The availability service is the single authority on loadability and GR
	// exclusivity; the selection must survive it untouched.
	available, err := h.availability.Filter(shipments, assignedGRNos, services.SortByGR)
	if err != nil {
		return AssignmentResult{}, err
	}

	availableIDs := make(map[kernel.UUID]struct{}, len(available))
	for _, s := range available {
		availableIDs[s.ID()] = struct{}{}
	}

	records := make([]*transit.TransitDetails, 0, len(shipments))
	transitIDs := make([]kernel.UUID, 0, len(shipments))
	for _, s := range shipments {
		record, recordErr := h.buildTransitRecord(cmd, targetChallan.ChallanNo(), book.ToBranchID(), availableIDs, s)
		if recordErr != nil {
			return AssignmentResult{}, recordErr
		}

		records = append(records, record)
		transitIDs = append(transitIDs, record.ID())
	}

	if err = transitRepo.AddBatch(ctx, records); err != nil {
		return AssignmentResult{}, err
	}

	if err = targetChallan.AddBilties(len(records)); err != nil {
		return AssignmentResult{}, err
	}

	if err = challanRepo.Update(ctx, targetChallan); err != nil {
		return AssignmentResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return AssignmentResult{}, err
	}

	return AssignmentResult{
		NewCount:           targetChallan.TotalBiltyCount(),
		AssignedTransitIDs: transitIDs,
	}, nil
}

// buildTransitRecord checks one selected shipment against the availability
// service's verdict and constructs its fresh transit record. A shipment the
// filter dropped is classified by cause: not loadable, otherwise its GR number
// is taken.
func (h *AssignToChallanCommandHandler) buildTransitRecord(
	cmd AssignToChallanCommand,
	challanNo string,
	toBranchID kernel.UUID,
	availableIDs map[kernel.UUID]struct{},
	s *shipment.Shipment,
) (*transit.TransitDetails, error) {
	if _, ok := availableIDs[s.ID()]; !ok {
		if !s.IsLoadable() {
			return nil, fmt.Errorf("%w: %s", ErrShipmentNotLoadable, s.GRNo())
		}
		return nil, fmt.Errorf("%w: %s", ErrShipmentAlreadyInTransit, s.GRNo())
	}
	if !s.OriginBranchID().IsEqual(cmd.BranchID()) {
		return nil, fmt.Errorf("%w: %s", ErrShipmentNotAtBranch, s.GRNo())
	}

	routeClass := transit.RouteClassFor(s.Source(), cmd.DirectLane())

	return transit.NewTransitDetails(
		kernel.NewUUID(),
		s.GRNo(),
		cmd.ChallanID(),
		challanNo,
		cmd.BranchID(),
		toBranchID,
		s.DeliveryType(),
		routeClass,
	)
}
