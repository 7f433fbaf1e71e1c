package transit

import (
	"fmt"

	"freight/internal/pkg/errs"
)

// Milestone is one ordered delivery-progress event on a transit record. Each
// milestone is a boolean flag with a paired timestamp; flags only ever move
// false→true and are never cleared by normal operation. Administrative
// correction is a full deactivation of the record, never a targeted unset,
// which keeps the audit trail append-only.
type Milestone int

const (
	// MilestoneUnknown represents an invalid or undefined milestone.
	MilestoneUnknown Milestone = iota

	// OutFromBranch1 marks the shipment leaving the origin branch on the
	// challan's truck. It is written by the challan dispatch workflow.
	OutFromBranch1

	// DeliveredAtBranch2 marks arrival at the intermediate branch. On the
	// direct-destination route this is the terminal "delivered" event.
	DeliveredAtBranch2

	// OutFromBranch2 marks the onward leg leaving the intermediate branch
	// towards the destination.
	OutFromBranch2

	// OutForDoorDelivery marks the goods leaving for the consignee's address.
	// Only meaningful for door-delivery shipments.
	OutForDoorDelivery

	// DeliveredAtDestination marks the final handover at the destination branch.
	DeliveredAtDestination
)

func getMilestoneStrings() map[Milestone]string {
	return map[Milestone]string{
		MilestoneUnknown:       "unknown",
		OutFromBranch1:         "out-from-branch1",
		DeliveredAtBranch2:     "delivered-at-branch2",
		OutFromBranch2:         "out-from-branch2",
		OutForDoorDelivery:     "out-for-door-delivery",
		DeliveredAtDestination: "delivered-at-destination",
	}
}

// MilestoneFromString parses the wire representation of a milestone.
func MilestoneFromString(s string) (Milestone, error) {
	for m, str := range getMilestoneStrings() {
		if m != MilestoneUnknown && str == s {
			return m, nil
		}
	}
	return MilestoneUnknown, errs.NewValueIsInvalidErrorWithCause(
		"milestone", fmt.Errorf("%q is not a valid milestone", s))
}

// Validate checks if the Milestone value is valid.
func (m Milestone) Validate() error {
	if m < OutFromBranch1 || m > DeliveredAtDestination {
		return errs.NewValueIsInvalidErrorWithCause(
			"milestone", fmt.Errorf("%d is not a valid milestone", m))
	}
	return nil
}

// String returns the canonical name of the milestone.
func (m Milestone) String() string {
	if str, ok := getMilestoneStrings()[m]; ok {
		return str
	}
	return "unknown"
}
