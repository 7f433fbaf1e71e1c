package commands

import (
	"errors"
	"fmt"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var (
	ErrAssignToChallanCommandIsNotConstructed = errors.New(
		"AssignToChallanCommand must be created via NewAssignToChallanCommand constructor",
	)

	// ErrEmptySelection is returned when an assignment or bulk removal is
	// requested with no records selected. Callers surface it as a client error;
	// it never opens a transaction.
	ErrEmptySelection = errors.New("selection is empty")
)

// AssignToChallanCommand represents a request to load a batch of shipments onto
// a challan. The operator's branch becomes the transit origin; the destination
// comes from the challan book's lane.
//
// Example:
//
//	cmd, err := NewAssignToChallanCommand(branchID, challanID, bookID, shipmentIDs, false)
//	if err != nil {
//	    return fmt.Errorf("invalid assignment request: %w", err)
//	}
//
//	handler := NewAssignToChallanCommandHandler(uowFactory)
//	result, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("assignment failed: %w", err)
//	}
//	fmt.Printf("challan now carries %d bilties", result.NewCount)
type AssignToChallanCommand struct { //nolint:recvcheck //using for validation
	branchID      kernel.UUID
	challanID     kernel.UUID
	challanBookID kernel.UUID
	shipmentIDs   []kernel.UUID
	directLane    bool

	guard guard.ConstructorGuard
}

// NewAssignToChallanCommand creates a command to assign shipments to a challan.
// The selection must be non-empty and free of duplicates. directLane marks a
// lane that terminates at the receiving branch, which routes the whole batch on
// the direct delivery graph.
func NewAssignToChallanCommand(
	branchID kernel.UUID,
	challanID kernel.UUID,
	challanBookID kernel.UUID,
	shipmentIDs []kernel.UUID,
	directLane bool,
) (AssignToChallanCommand, error) {
	cmd := AssignToChallanCommand{
		directLane: directLane,
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setBranchID(branchID),
		cmd.setChallanID(challanID),
		cmd.setChallanBookID(challanBookID),
		cmd.setShipmentIDs(shipmentIDs),
	); err != nil {
		return AssignToChallanCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrAssignToChallanCommandIsNotConstructed if validation fails.
func (c AssignToChallanCommand) Validate() error {
	return c.guard.Validate(ErrAssignToChallanCommandIsNotConstructed)
}

// BranchID returns the operator's branch, the origin of the new transit records.
func (c AssignToChallanCommand) BranchID() kernel.UUID {
	return c.branchID
}

// ChallanID returns the target challan's identifier.
func (c AssignToChallanCommand) ChallanID() kernel.UUID {
	return c.challanID
}

// ChallanBookID returns the numbering sequence whose lane supplies the
// transit destination.
func (c AssignToChallanCommand) ChallanBookID() kernel.UUID {
	return c.challanBookID
}

// ShipmentIDs returns the selected shipment identifiers.
func (c AssignToChallanCommand) ShipmentIDs() []kernel.UUID {
	return c.shipmentIDs
}

// DirectLane reports whether the lane terminates at the receiving branch.
func (c AssignToChallanCommand) DirectLane() bool {
	return c.directLane
}

func (c *AssignToChallanCommand) setBranchID(branchID kernel.UUID) error {
	if err := branchID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("branchID", err)
	}

	c.branchID = branchID
	return nil
}

func (c *AssignToChallanCommand) setChallanID(challanID kernel.UUID) error {
	if err := challanID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("challanID", err)
	}

	c.challanID = challanID
	return nil
}

func (c *AssignToChallanCommand) setChallanBookID(challanBookID kernel.UUID) error {
	if err := challanBookID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("challanBookID", err)
	}

	c.challanBookID = challanBookID
	return nil
}

func (c *AssignToChallanCommand) setShipmentIDs(shipmentIDs []kernel.UUID) error {
	if len(shipmentIDs) == 0 {
		return ErrEmptySelection
	}

	seen := make(map[kernel.UUID]struct{}, len(shipmentIDs))
	for _, id := range shipmentIDs {
		if err := id.Validate(); err != nil {
			return errs.NewValueIsRequiredErrorWithCause("shipmentIDs", err)
		}
		if _, dup := seen[id]; dup {
			return errs.NewValueIsInvalidErrorWithCause("shipmentIDs",
				fmt.Errorf("shipment %s is selected twice", id))
		}
		seen[id] = struct{}{}
	}

	c.shipmentIDs = shipmentIDs
	return nil
}
