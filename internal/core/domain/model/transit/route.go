package transit

import (
	"fmt"

	"freight/internal/core/domain/model/shipment"
	"freight/internal/pkg/errs"
)

// RouteClass selects which of the two delivery graphs a transit record follows.
//
// Two-hop is the normal lane: origin branch → intermediate branch → onward leg
// → destination. Direct-destination is the shortcut used when the challan's
// lane terminates at the receiving branch, and always for manual-entry
// shipments; there DeliveredAtBranch2 is the terminal "delivered" event.
type RouteClass int

const (
	// RouteClassUnknown represents an invalid or undefined route class.
	RouteClassUnknown RouteClass = iota

	// TwoHop routes through an intermediate branch with an onward leg.
	TwoHop

	// DirectDestination terminates at the first receiving branch.
	DirectDestination
)

// RouteClassFor derives the routing class of a new assignment. Manual-entry
// shipments always take the direct graph; otherwise the lane of the challan
// book decides.
func RouteClassFor(source shipment.Source, directLane bool) RouteClass {
	if source == shipment.ManualEntry || directLane {
		return DirectDestination
	}
	return TwoHop
}

// RouteClassFromString parses the wire/database representation of a route class.
func RouteClassFromString(s string) (RouteClass, error) {
	switch s {
	case "two-hop":
		return TwoHop, nil
	case "direct":
		return DirectDestination, nil
	default:
		return RouteClassUnknown, errs.NewValueIsInvalidErrorWithCause(
			"routeClass", fmt.Errorf("%q is not a valid route class", s))
	}
}

// Validate checks if the RouteClass value is valid.
func (r RouteClass) Validate() error {
	if r != TwoHop && r != DirectDestination {
		return errs.NewValueIsInvalidErrorWithCause(
			"routeClass", fmt.Errorf("%d is not a valid route class", r))
	}
	return nil
}

// String returns the canonical name of the route class.
func (r RouteClass) String() string {
	switch r {
	case TwoHop:
		return "two-hop"
	case DirectDestination:
		return "direct"
	default:
		return "unknown"
	}
}

// PathFor returns the ordered milestones a record with the given routing walks
// through. Door delivery inserts the extra out-for-door-delivery hop; godown
// delivery skips it.
func PathFor(routeClass RouteClass, deliveryType shipment.DeliveryType) []Milestone {
	return deliveryPath(routeClass, deliveryType)
}

func deliveryPath(routeClass RouteClass, deliveryType shipment.DeliveryType) []Milestone {
	switch routeClass {
	case DirectDestination:
		if deliveryType == shipment.Door {
			return []Milestone{OutFromBranch1, OutForDoorDelivery, DeliveredAtBranch2}
		}
		return []Milestone{OutFromBranch1, DeliveredAtBranch2}
	default:
		if deliveryType == shipment.Door {
			return []Milestone{OutFromBranch1, DeliveredAtBranch2, OutFromBranch2,
				OutForDoorDelivery, DeliveredAtDestination}
		}
		return []Milestone{OutFromBranch1, DeliveredAtBranch2, OutFromBranch2,
			DeliveredAtDestination}
	}
}
